package ast

import "wrought/internal/source"

// StmtKind enumerates every statement shape, including the declaration
// forms (module/import/const/global/enum/type/interface/struct/fn) that
// this language allows to appear both at file scope and nested inside a
// block.
type StmtKind uint8

const (
	StmtAssign StmtKind = iota
	StmtExpr
	StmtReturn
	StmtBlock
	StmtFor
	StmtForIn
	StmtForC
	StmtBranch
	StmtGoto
	StmtGotoLabel
	StmtDefer
	StmtHash
	StmtModule
	StmtImport
	StmtConst
	StmtGlobal
	StmtEnum
	StmtTypeDecl
	StmtInterface
	StmtStruct
	StmtAsm
	StmtAssert
	StmtComptimeFor
	StmtSQL
	StmtFnDecl
)

type Stmt struct {
	Kind    StmtKind
	Span    source.Span
	Payload PayloadID
}

type AssignOp uint8

const (
	AssignPlain  AssignOp = iota // =
	AssignDeclare                // :=
	AssignAdd
	AssignSub
	AssignMul
	AssignDiv
	AssignMod
	AssignBitAnd
	AssignBitOr
	AssignBitXor
	AssignShl
	AssignShr
)

type StmtAssignData struct {
	Lhs []ExprID
	Op  AssignOp
	Rhs []ExprID
	// LhsMut records, per Lhs slot, whether a `:=` target carried a
	// leading `mut` (e.g. `mut x := 1`). Meaningless when Op is not
	// AssignDeclare; left nil/zeroed by plain `=` assignments.
	LhsMut []bool
}

type StmtExprData struct {
	Expr ExprID
}

type StmtReturnData struct {
	Values []ExprID
}

type StmtBlockData struct {
	Stmts []StmtID
}

type StmtForData struct {
	Cond ExprID // NoExprID for an infinite `for {}` loop
	Body StmtID
}

type StmtForInData struct {
	VarNames []source.StringID
	Iterable ExprID
	Body     StmtID
}

type StmtForCData struct {
	Init StmtID
	Cond ExprID
	Post StmtID
	Body StmtID
}

type StmtBranchData struct {
	IsBreak bool // false means continue
	Label   source.StringID
}

type StmtGotoData struct {
	Label source.StringID
}

type StmtLabelData struct {
	Label source.StringID
}

type StmtDeferData struct {
	Call ExprID
}

type StmtHashData struct {
	Directive source.StringID
	Args      []source.StringID
}

type StmtModuleData struct {
	Name source.StringID
}

type StmtImportData struct {
	Path    source.StringID
	Alias   source.StringID
	Symbols []ImportSymbol // empty means import the whole module under Alias/basename
}

type StmtConstData struct {
	Name  source.StringID
	Type  TypeID // NoTypeID when inferred from Value
	Value ExprID
	Attrs AttrSet
	IsPub bool
}

type StmtGlobalData struct {
	Name  source.StringID
	Type  TypeID
	Value ExprID // NoExprID for a zero-initialized global
	Attrs AttrSet
	IsPub bool
	IsMut bool
}

type StmtEnumData struct {
	Name     source.StringID
	Generics []GenericParam
	BaseType TypeID // underlying integer type, NoTypeID for the default
	Variants []EnumVariant
	IsFlag   bool // [flag] bitset enum
	Attrs    AttrSet
	IsPub    bool
}

type TypeDeclKind uint8

const (
	TypeDeclAlias TypeDeclKind = iota
	TypeDeclFn
	TypeDeclSum
)

type StmtTypeDeclData struct {
	Name        source.StringID
	Generics    []GenericParam
	Kind        TypeDeclKind
	AliasTarget TypeID   // TypeDeclAlias
	FnSig       TypeID   // TypeDeclFn, a TypeExprFn node
	SumVariants []TypeID // TypeDeclSum
	Attrs       AttrSet
	IsPub       bool
}

type StmtInterfaceData struct {
	Name     source.StringID
	Generics []GenericParam
	Fields   []FieldDecl
	Methods  []FnSigDecl
	Embeds   []TypeID
	Attrs    AttrSet
	IsPub    bool
}

type StmtStructData struct {
	Name     source.StringID
	Generics []GenericParam
	Fields   []FieldDecl
	Embeds   []TypeID
	IsUnion  bool
	Attrs    AttrSet
	IsPub    bool
}

type StmtAsmData struct {
	Raw source.StringID
}

type StmtAssertData struct {
	Cond ExprID
	Msg  ExprID // NoExprID when no message was given
}

type StmtComptimeForData struct {
	VarName  source.StringID
	Iterable ExprID
	Body     StmtID
}

type StmtSQLData struct {
	Raw  source.StringID
	Args []ExprID
}

// StmtFnDeclData is the statement-level wrapper around a function
// declaration: free function, method (Receiver set), or nested fn.
type StmtFnDeclData struct {
	Name         source.StringID
	Mod          source.StringID // NoStringID unless declared `mod foo fn bar(...)`
	Receiver     *ReceiverDecl
	Params       []ParamDecl
	ReturnType   TypeID
	Body         StmtID // NoStmtID when NoBody is true
	Attrs        AttrSet
	GenericNames []GenericParam
	IsMethod     bool
	NoBody       bool // extern/interface method signature with no implementation
	IsPub        bool
}

type Stmts struct {
	Arena       *Arena[Stmt]
	Assigns     *Arena[StmtAssignData]
	Exprs_      *Arena[StmtExprData]
	Returns     *Arena[StmtReturnData]
	Blocks      *Arena[StmtBlockData]
	Fors        *Arena[StmtForData]
	ForIns      *Arena[StmtForInData]
	ForCs       *Arena[StmtForCData]
	Branches    *Arena[StmtBranchData]
	Gotos       *Arena[StmtGotoData]
	Labels      *Arena[StmtLabelData]
	Defers      *Arena[StmtDeferData]
	Hashes      *Arena[StmtHashData]
	Modules     *Arena[StmtModuleData]
	Imports     *Arena[StmtImportData]
	Consts      *Arena[StmtConstData]
	Globals     *Arena[StmtGlobalData]
	Enums       *Arena[StmtEnumData]
	TypeDecls   *Arena[StmtTypeDeclData]
	Interfaces  *Arena[StmtInterfaceData]
	Structs     *Arena[StmtStructData]
	Asms        *Arena[StmtAsmData]
	Asserts     *Arena[StmtAssertData]
	ComptimeFor *Arena[StmtComptimeForData]
	SQLs        *Arena[StmtSQLData]
	FnDecls     *Arena[StmtFnDeclData]
}

func NewStmts(capHint uint) *Stmts {
	if capHint == 0 {
		capHint = 1 << 8
	}
	return &Stmts{
		Arena:       NewArena[Stmt](capHint),
		Assigns:     NewArena[StmtAssignData](capHint),
		Exprs_:      NewArena[StmtExprData](capHint),
		Returns:     NewArena[StmtReturnData](capHint / 4),
		Blocks:      NewArena[StmtBlockData](capHint / 2),
		Fors:        NewArena[StmtForData](capHint / 8),
		ForIns:      NewArena[StmtForInData](capHint / 8),
		ForCs:       NewArena[StmtForCData](capHint / 16),
		Branches:    NewArena[StmtBranchData](capHint / 16),
		Gotos:       NewArena[StmtGotoData](capHint / 32),
		Labels:      NewArena[StmtLabelData](capHint / 32),
		Defers:      NewArena[StmtDeferData](capHint / 16),
		Hashes:      NewArena[StmtHashData](capHint / 32),
		Modules:     NewArena[StmtModuleData](capHint / 32),
		Imports:     NewArena[StmtImportData](capHint / 8),
		Consts:      NewArena[StmtConstData](capHint / 8),
		Globals:     NewArena[StmtGlobalData](capHint / 8),
		Enums:       NewArena[StmtEnumData](capHint / 16),
		TypeDecls:   NewArena[StmtTypeDeclData](capHint / 16),
		Interfaces:  NewArena[StmtInterfaceData](capHint / 16),
		Structs:     NewArena[StmtStructData](capHint / 8),
		Asms:        NewArena[StmtAsmData](capHint / 32),
		Asserts:     NewArena[StmtAssertData](capHint / 16),
		ComptimeFor: NewArena[StmtComptimeForData](capHint / 32),
		SQLs:        NewArena[StmtSQLData](capHint / 32),
		FnDecls:     NewArena[StmtFnDeclData](capHint / 4),
	}
}

func (s *Stmts) Get(id StmtID) *Stmt { return s.Arena.Get(uint32(id)) }

func (s *Stmts) new(kind StmtKind, span source.Span, payload PayloadID) StmtID {
	return StmtID(s.Arena.Allocate(Stmt{Kind: kind, Span: span, Payload: payload}))
}

func (s *Stmts) NewAssign(span source.Span, lhs []ExprID, op AssignOp, rhs []ExprID) StmtID {
	return s.NewAssignDeclare(span, lhs, op, rhs, nil)
}

// NewAssignDeclare is NewAssign plus lhsMut, the per-target `mut` flag a
// `:=` declaration carries (e.g. `mut x := 1`). Callers building a plain
// `=` assignment should keep using NewAssign; lhsMut is only consulted
// when op is AssignDeclare.
func (s *Stmts) NewAssignDeclare(span source.Span, lhs []ExprID, op AssignOp, rhs []ExprID, lhsMut []bool) StmtID {
	p := payloadID(s.Assigns.Allocate(StmtAssignData{Lhs: lhs, Op: op, Rhs: rhs, LhsMut: lhsMut}))
	return s.new(StmtAssign, span, p)
}

func (s *Stmts) Assign(id StmtID) (*StmtAssignData, bool) {
	x := s.Get(id)
	if x == nil || x.Kind != StmtAssign {
		return nil, false
	}
	return s.Assigns.Get(uint32(x.Payload)), true
}

func (s *Stmts) NewExprStmt(span source.Span, expr ExprID) StmtID {
	p := payloadID(s.Exprs_.Allocate(StmtExprData{Expr: expr}))
	return s.new(StmtExpr, span, p)
}

func (s *Stmts) ExprStmt(id StmtID) (*StmtExprData, bool) {
	x := s.Get(id)
	if x == nil || x.Kind != StmtExpr {
		return nil, false
	}
	return s.Exprs_.Get(uint32(x.Payload)), true
}

func (s *Stmts) NewReturn(span source.Span, values []ExprID) StmtID {
	p := payloadID(s.Returns.Allocate(StmtReturnData{Values: values}))
	return s.new(StmtReturn, span, p)
}

func (s *Stmts) Return(id StmtID) (*StmtReturnData, bool) {
	x := s.Get(id)
	if x == nil || x.Kind != StmtReturn {
		return nil, false
	}
	return s.Returns.Get(uint32(x.Payload)), true
}

func (s *Stmts) NewBlock(span source.Span, stmts []StmtID) StmtID {
	p := payloadID(s.Blocks.Allocate(StmtBlockData{Stmts: stmts}))
	return s.new(StmtBlock, span, p)
}

func (s *Stmts) Block(id StmtID) (*StmtBlockData, bool) {
	x := s.Get(id)
	if x == nil || x.Kind != StmtBlock {
		return nil, false
	}
	return s.Blocks.Get(uint32(x.Payload)), true
}

func (s *Stmts) NewFor(span source.Span, cond ExprID, body StmtID) StmtID {
	p := payloadID(s.Fors.Allocate(StmtForData{Cond: cond, Body: body}))
	return s.new(StmtFor, span, p)
}

func (s *Stmts) For(id StmtID) (*StmtForData, bool) {
	x := s.Get(id)
	if x == nil || x.Kind != StmtFor {
		return nil, false
	}
	return s.Fors.Get(uint32(x.Payload)), true
}

func (s *Stmts) NewForIn(span source.Span, names []source.StringID, iterable ExprID, body StmtID) StmtID {
	p := payloadID(s.ForIns.Allocate(StmtForInData{VarNames: names, Iterable: iterable, Body: body}))
	return s.new(StmtForIn, span, p)
}

func (s *Stmts) ForIn(id StmtID) (*StmtForInData, bool) {
	x := s.Get(id)
	if x == nil || x.Kind != StmtForIn {
		return nil, false
	}
	return s.ForIns.Get(uint32(x.Payload)), true
}

func (s *Stmts) NewForC(span source.Span, init StmtID, cond ExprID, post, body StmtID) StmtID {
	p := payloadID(s.ForCs.Allocate(StmtForCData{Init: init, Cond: cond, Post: post, Body: body}))
	return s.new(StmtForC, span, p)
}

func (s *Stmts) ForC(id StmtID) (*StmtForCData, bool) {
	x := s.Get(id)
	if x == nil || x.Kind != StmtForC {
		return nil, false
	}
	return s.ForCs.Get(uint32(x.Payload)), true
}

func (s *Stmts) NewBranch(span source.Span, isBreak bool, label source.StringID) StmtID {
	p := payloadID(s.Branches.Allocate(StmtBranchData{IsBreak: isBreak, Label: label}))
	return s.new(StmtBranch, span, p)
}

func (s *Stmts) Branch(id StmtID) (*StmtBranchData, bool) {
	x := s.Get(id)
	if x == nil || x.Kind != StmtBranch {
		return nil, false
	}
	return s.Branches.Get(uint32(x.Payload)), true
}

func (s *Stmts) NewGoto(span source.Span, label source.StringID) StmtID {
	p := payloadID(s.Gotos.Allocate(StmtGotoData{Label: label}))
	return s.new(StmtGoto, span, p)
}

func (s *Stmts) Goto(id StmtID) (*StmtGotoData, bool) {
	x := s.Get(id)
	if x == nil || x.Kind != StmtGoto {
		return nil, false
	}
	return s.Gotos.Get(uint32(x.Payload)), true
}

func (s *Stmts) NewGotoLabel(span source.Span, label source.StringID) StmtID {
	p := payloadID(s.Labels.Allocate(StmtLabelData{Label: label}))
	return s.new(StmtGotoLabel, span, p)
}

func (s *Stmts) GotoLabel(id StmtID) (*StmtLabelData, bool) {
	x := s.Get(id)
	if x == nil || x.Kind != StmtGotoLabel {
		return nil, false
	}
	return s.Labels.Get(uint32(x.Payload)), true
}

func (s *Stmts) NewDefer(span source.Span, call ExprID) StmtID {
	p := payloadID(s.Defers.Allocate(StmtDeferData{Call: call}))
	return s.new(StmtDefer, span, p)
}

func (s *Stmts) Defer(id StmtID) (*StmtDeferData, bool) {
	x := s.Get(id)
	if x == nil || x.Kind != StmtDefer {
		return nil, false
	}
	return s.Defers.Get(uint32(x.Payload)), true
}

func (s *Stmts) NewHash(span source.Span, directive source.StringID, args []source.StringID) StmtID {
	p := payloadID(s.Hashes.Allocate(StmtHashData{Directive: directive, Args: args}))
	return s.new(StmtHash, span, p)
}

func (s *Stmts) Hash(id StmtID) (*StmtHashData, bool) {
	x := s.Get(id)
	if x == nil || x.Kind != StmtHash {
		return nil, false
	}
	return s.Hashes.Get(uint32(x.Payload)), true
}

func (s *Stmts) NewModule(span source.Span, name source.StringID) StmtID {
	p := payloadID(s.Modules.Allocate(StmtModuleData{Name: name}))
	return s.new(StmtModule, span, p)
}

func (s *Stmts) Module(id StmtID) (*StmtModuleData, bool) {
	x := s.Get(id)
	if x == nil || x.Kind != StmtModule {
		return nil, false
	}
	return s.Modules.Get(uint32(x.Payload)), true
}

func (s *Stmts) NewImport(span source.Span, path, alias source.StringID, symbols []ImportSymbol) StmtID {
	p := payloadID(s.Imports.Allocate(StmtImportData{Path: path, Alias: alias, Symbols: symbols}))
	return s.new(StmtImport, span, p)
}

func (s *Stmts) Import(id StmtID) (*StmtImportData, bool) {
	x := s.Get(id)
	if x == nil || x.Kind != StmtImport {
		return nil, false
	}
	return s.Imports.Get(uint32(x.Payload)), true
}

func (s *Stmts) NewConst(span source.Span, d StmtConstData) StmtID {
	p := payloadID(s.Consts.Allocate(d))
	return s.new(StmtConst, span, p)
}

func (s *Stmts) Const(id StmtID) (*StmtConstData, bool) {
	x := s.Get(id)
	if x == nil || x.Kind != StmtConst {
		return nil, false
	}
	return s.Consts.Get(uint32(x.Payload)), true
}

func (s *Stmts) NewGlobal(span source.Span, d StmtGlobalData) StmtID {
	p := payloadID(s.Globals.Allocate(d))
	return s.new(StmtGlobal, span, p)
}

func (s *Stmts) Global(id StmtID) (*StmtGlobalData, bool) {
	x := s.Get(id)
	if x == nil || x.Kind != StmtGlobal {
		return nil, false
	}
	return s.Globals.Get(uint32(x.Payload)), true
}

func (s *Stmts) NewEnum(span source.Span, d StmtEnumData) StmtID {
	p := payloadID(s.Enums.Allocate(d))
	return s.new(StmtEnum, span, p)
}

func (s *Stmts) Enum(id StmtID) (*StmtEnumData, bool) {
	x := s.Get(id)
	if x == nil || x.Kind != StmtEnum {
		return nil, false
	}
	return s.Enums.Get(uint32(x.Payload)), true
}

func (s *Stmts) NewTypeDecl(span source.Span, d StmtTypeDeclData) StmtID {
	p := payloadID(s.TypeDecls.Allocate(d))
	return s.new(StmtTypeDecl, span, p)
}

func (s *Stmts) TypeDecl(id StmtID) (*StmtTypeDeclData, bool) {
	x := s.Get(id)
	if x == nil || x.Kind != StmtTypeDecl {
		return nil, false
	}
	return s.TypeDecls.Get(uint32(x.Payload)), true
}

func (s *Stmts) NewInterface(span source.Span, d StmtInterfaceData) StmtID {
	p := payloadID(s.Interfaces.Allocate(d))
	return s.new(StmtInterface, span, p)
}

func (s *Stmts) Interface(id StmtID) (*StmtInterfaceData, bool) {
	x := s.Get(id)
	if x == nil || x.Kind != StmtInterface {
		return nil, false
	}
	return s.Interfaces.Get(uint32(x.Payload)), true
}

func (s *Stmts) NewStruct(span source.Span, d StmtStructData) StmtID {
	p := payloadID(s.Structs.Allocate(d))
	return s.new(StmtStruct, span, p)
}

func (s *Stmts) Struct(id StmtID) (*StmtStructData, bool) {
	x := s.Get(id)
	if x == nil || x.Kind != StmtStruct {
		return nil, false
	}
	return s.Structs.Get(uint32(x.Payload)), true
}

func (s *Stmts) NewAsm(span source.Span, raw source.StringID) StmtID {
	p := payloadID(s.Asms.Allocate(StmtAsmData{Raw: raw}))
	return s.new(StmtAsm, span, p)
}

func (s *Stmts) Asm(id StmtID) (*StmtAsmData, bool) {
	x := s.Get(id)
	if x == nil || x.Kind != StmtAsm {
		return nil, false
	}
	return s.Asms.Get(uint32(x.Payload)), true
}

func (s *Stmts) NewAssert(span source.Span, cond, msg ExprID) StmtID {
	p := payloadID(s.Asserts.Allocate(StmtAssertData{Cond: cond, Msg: msg}))
	return s.new(StmtAssert, span, p)
}

func (s *Stmts) Assert(id StmtID) (*StmtAssertData, bool) {
	x := s.Get(id)
	if x == nil || x.Kind != StmtAssert {
		return nil, false
	}
	return s.Asserts.Get(uint32(x.Payload)), true
}

func (s *Stmts) NewComptimeFor(span source.Span, varName source.StringID, iterable ExprID, body StmtID) StmtID {
	p := payloadID(s.ComptimeFor.Allocate(StmtComptimeForData{VarName: varName, Iterable: iterable, Body: body}))
	return s.new(StmtComptimeFor, span, p)
}

func (s *Stmts) ComptimeForStmt(id StmtID) (*StmtComptimeForData, bool) {
	x := s.Get(id)
	if x == nil || x.Kind != StmtComptimeFor {
		return nil, false
	}
	return s.ComptimeFor.Get(uint32(x.Payload)), true
}

func (s *Stmts) NewSQL(span source.Span, raw source.StringID, args []ExprID) StmtID {
	p := payloadID(s.SQLs.Allocate(StmtSQLData{Raw: raw, Args: args}))
	return s.new(StmtSQL, span, p)
}

func (s *Stmts) SQL(id StmtID) (*StmtSQLData, bool) {
	x := s.Get(id)
	if x == nil || x.Kind != StmtSQL {
		return nil, false
	}
	return s.SQLs.Get(uint32(x.Payload)), true
}

func (s *Stmts) NewFnDecl(span source.Span, d StmtFnDeclData) StmtID {
	p := payloadID(s.FnDecls.Allocate(d))
	return s.new(StmtFnDecl, span, p)
}

func (s *Stmts) FnDecl(id StmtID) (*StmtFnDeclData, bool) {
	x := s.Get(id)
	if x == nil || x.Kind != StmtFnDecl {
		return nil, false
	}
	return s.FnDecls.Get(uint32(x.Payload)), true
}
