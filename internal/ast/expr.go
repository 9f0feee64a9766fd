package ast

import (
	"fmt"

	"fortio.org/safecast"

	"wrought/internal/source"
)

// ExprKind enumerates every expression shape the checker dispatches on.
type ExprKind uint8

const (
	ExprIdent ExprKind = iota
	ExprIntegerLiteral
	ExprFloatLiteral
	ExprStringLiteral
	ExprCharLiteral
	ExprBoolLiteral
	ExprNone
	ExprPrefix
	ExprInfix
	ExprPostfix
	ExprIndex
	ExprSelector
	ExprCall
	ExprCast
	ExprAsCast
	ExprMatch
	ExprIf
	ExprIfGuard
	ExprStructInit
	ExprArrayInit
	ExprMapInit
	ExprChanInit
	ExprConcat
	ExprRange
	ExprLock
	ExprUnsafe
	ExprPar
	ExprGo
	ExprSelect
	ExprSizeOf
	ExprOffsetOf
	ExprTypeOf
	ExprAt
	ExprComptimeCall
	ExprComptimeSelector
	ExprStringInterLiteral
	ExprEnumVal
	ExprAssoc
	ExprDump
	ExprLikely
	ExprSQL
)

type Expr struct {
	Kind    ExprKind
	Span    source.Span
	Payload PayloadID
}

// BinaryOp enumerates infix/concat operators.
type BinaryOp uint8

const (
	OpAdd BinaryOp = iota
	OpSub
	OpMul
	OpDiv
	OpMod
	OpBitAnd
	OpBitOr
	OpBitXor
	OpShl
	OpShr
	OpLogicalAnd
	OpLogicalOr
	OpEq
	OpNotEq
	OpLess
	OpLessEq
	OpGreater
	OpGreaterEq
	OpConcat // <<, array append / string concat
	OpNullCoalescing
	OpIs    // `is`: sum/interface type test, narrows on the positive branch
	OpNotIs // `!is`
	OpIn    // `in`: membership test over array/map/chan
	OpNotIn // `!in`
)

func (op BinaryOp) String() string {
	switch op {
	case OpAdd:
		return "+"
	case OpSub:
		return "-"
	case OpMul:
		return "*"
	case OpDiv:
		return "/"
	case OpMod:
		return "%"
	case OpBitAnd:
		return "&"
	case OpBitOr:
		return "|"
	case OpBitXor:
		return "^"
	case OpShl:
		return "<<"
	case OpShr:
		return ">>"
	case OpLogicalAnd:
		return "&&"
	case OpLogicalOr:
		return "||"
	case OpEq:
		return "=="
	case OpNotEq:
		return "!="
	case OpLess:
		return "<"
	case OpLessEq:
		return "<="
	case OpGreater:
		return ">"
	case OpGreaterEq:
		return ">="
	case OpConcat:
		return "<<"
	case OpNullCoalescing:
		return "??"
	case OpIs:
		return "is"
	case OpNotIs:
		return "!is"
	case OpIn:
		return "in"
	case OpNotIn:
		return "!in"
	default:
		return "?"
	}
}

// UnaryOp enumerates prefix/postfix/wrapping operators that share the
// single-operand payload shape.
type UnaryOp uint8

const (
	OpNeg UnaryOp = iota
	OpPlus
	OpNot
	OpDeref
	OpRef
	OpRefMut
	OpParen   // (expr)
	OpGoSpawn // go expr
	OpDumpOp  // $dump(expr)
)

func (op UnaryOp) String() string {
	switch op {
	case OpNeg:
		return "-"
	case OpPlus:
		return "+"
	case OpNot:
		return "!"
	case OpDeref:
		return "*"
	case OpRef:
		return "&"
	case OpRefMut:
		return "&mut"
	case OpParen:
		return "()"
	case OpGoSpawn:
		return "go"
	case OpDumpOp:
		return "$dump"
	default:
		return "?"
	}
}

type LitKind uint8

const (
	LitInt LitKind = iota
	LitFloat
	LitString
	LitChar
	LitBool
)

type ExprIdentData struct {
	Name source.StringID
}

type ExprLiteralData struct {
	Kind  LitKind
	Value source.StringID // raw lexeme, interpreted by the checker
}

type ExprBinaryData struct {
	Op    BinaryOp
	Left  ExprID
	Right ExprID
	// RightType carries the tested type for OpIs/OpNotIs (`x is Variant`),
	// where the right-hand side is a type, not an expression; Right is
	// NoExprID for those two ops. Unused (NoTypeID) for every other Op,
	// including OpIn/OpNotIn, whose Right is the container expression.
	RightType TypeID
}

type ExprUnaryData struct {
	Op      UnaryOp
	Operand ExprID
}

type ExprIndexData struct {
	Target    ExprID
	Index     ExprID
	RangeHigh ExprID // set for a[lo:hi] slicing form
	IsRange   bool
}

type ExprSelectorData struct {
	Target    ExprID
	Name      source.StringID
	Comptime  bool // @Target.field metaprogramming access
}

type CallArg struct {
	Name  source.StringID // NoStringID for positional args
	Value ExprID
}

type ExprCallData struct {
	Callee     ExprID
	Args       []CallArg
	GenericArgs []TypeID
	Comptime   bool
	HasOrBlock bool
	OrBlock    StmtID // `call() or { ... }` fallback block
}

type ExprCastData struct {
	Operand  ExprID
	Target   TypeID
	IsAsCast bool            // `expr as T` (smartcast binding) vs `expr.(T)` (hard cast)
	BindName source.StringID // set for `if x := expr as T`-style narrowing, else NoStringID
}

type MatchCase struct {
	Patterns []ExprID // one or more patterns joined by `,`
	Guard    ExprID   // optional `if cond`
	Body     ExprID
	IsElse   bool
	Span     source.Span
	// As names the smartcast binding a sum-type arm introduces
	// (`match x { .Variant as v => ... }`), NoStringID when the arm
	// binds nothing.
	As source.StringID
}

type ExprMatchData struct {
	Subject ExprID
	Cases   []MatchCase
}

type GuardBinding struct {
	Name source.StringID
	Init ExprID
}

type ExprIfData struct {
	Cond  ExprID
	Then  ExprID
	Else  ExprID // NoExprID when there is no else branch
	Guard *GuardBinding
}

type StructInitField struct {
	Name  source.StringID
	Value ExprID
	Span  source.Span
}

type ExprStructInitData struct {
	Type   TypeID
	Fields []StructInitField
	Spread ExprID // `..base` update syntax, NoExprID otherwise
}

type ExprCollectionData struct {
	Elems    []ExprID
	ElemType TypeID // explicit element type annotation, NoTypeID if inferred
}

type ExprMapInitData struct {
	Keys    []ExprID
	Values  []ExprID
	KeyType TypeID
	ValType TypeID
}

type ExprChanInitData struct {
	ElemType TypeID
	Cap      ExprID // NoExprID for an unbuffered channel
}

type ExprRangeData struct {
	Low       ExprID
	High      ExprID
	Inclusive bool
}

type ExprLockData struct {
	Names   []source.StringID
	IsRLock bool
	Body    StmtID
}

type ExprBlockWrapData struct {
	Body StmtID
}

type SelectCase struct {
	Recv      ExprID
	Body      ExprID
	IsDefault bool
	Span      source.Span
}

type ExprSelectData struct {
	Cases []SelectCase
}

type ExprTypeOpData struct {
	Type     TypeID
	Operand  ExprID          // set for typeof(expr)
	Field    source.StringID // set for offsetof(T, field)
}

type ExprAtData struct {
	Name source.StringID
}

type InterpPart struct {
	Literal source.StringID // NoStringID when this part is an expression
	Expr    ExprID           // NoExprID when this part is literal text
}

type ExprInterpData struct {
	Parts []InterpPart
}

type ExprEnumValData struct {
	EnumType TypeID
	Variant  source.StringID
}

type ExprAssocData struct {
	Type TypeID
	Name source.StringID
}

type ExprLikelyData struct {
	Operand ExprID
	Expect  bool
}

type ExprSQLData struct {
	Raw  source.StringID
	Args []ExprID
}

type Exprs struct {
	Arena       *Arena[Expr]
	Idents      *Arena[ExprIdentData]
	Literals    *Arena[ExprLiteralData]
	Binaries    *Arena[ExprBinaryData]
	Unaries     *Arena[ExprUnaryData]
	Indices     *Arena[ExprIndexData]
	Selectors   *Arena[ExprSelectorData]
	Calls       *Arena[ExprCallData]
	Casts       *Arena[ExprCastData]
	Matches     *Arena[ExprMatchData]
	Ifs         *Arena[ExprIfData]
	StructInits *Arena[ExprStructInitData]
	Collections *Arena[ExprCollectionData]
	MapInits    *Arena[ExprMapInitData]
	ChanInits   *Arena[ExprChanInitData]
	Ranges      *Arena[ExprRangeData]
	Locks       *Arena[ExprLockData]
	BlockWraps  *Arena[ExprBlockWrapData]
	Selects     *Arena[ExprSelectData]
	TypeOps     *Arena[ExprTypeOpData]
	Ats         *Arena[ExprAtData]
	Interps     *Arena[ExprInterpData]
	EnumVals    *Arena[ExprEnumValData]
	Assocs      *Arena[ExprAssocData]
	Likelys     *Arena[ExprLikelyData]
	SQLs        *Arena[ExprSQLData]
}

func NewExprs(capHint uint) *Exprs {
	if capHint == 0 {
		capHint = 1 << 8
	}
	return &Exprs{
		Arena:       NewArena[Expr](capHint),
		Idents:      NewArena[ExprIdentData](capHint),
		Literals:    NewArena[ExprLiteralData](capHint),
		Binaries:    NewArena[ExprBinaryData](capHint),
		Unaries:     NewArena[ExprUnaryData](capHint),
		Indices:     NewArena[ExprIndexData](capHint / 4),
		Selectors:   NewArena[ExprSelectorData](capHint),
		Calls:       NewArena[ExprCallData](capHint),
		Casts:       NewArena[ExprCastData](capHint / 4),
		Matches:     NewArena[ExprMatchData](capHint / 8),
		Ifs:         NewArena[ExprIfData](capHint / 4),
		StructInits: NewArena[ExprStructInitData](capHint / 4),
		Collections: NewArena[ExprCollectionData](capHint / 4),
		MapInits:    NewArena[ExprMapInitData](capHint / 8),
		ChanInits:   NewArena[ExprChanInitData](capHint / 16),
		Ranges:      NewArena[ExprRangeData](capHint / 8),
		Locks:       NewArena[ExprLockData](capHint / 16),
		BlockWraps:  NewArena[ExprBlockWrapData](capHint / 16),
		Selects:     NewArena[ExprSelectData](capHint / 16),
		TypeOps:     NewArena[ExprTypeOpData](capHint / 16),
		Ats:         NewArena[ExprAtData](capHint / 16),
		Interps:     NewArena[ExprInterpData](capHint / 8),
		EnumVals:    NewArena[ExprEnumValData](capHint / 8),
		Assocs:      NewArena[ExprAssocData](capHint / 16),
		Likelys:     NewArena[ExprLikelyData](capHint / 16),
		SQLs:        NewArena[ExprSQLData](capHint / 16),
	}
}

func (e *Exprs) Get(id ExprID) *Expr { return e.Arena.Get(uint32(id)) }

func payloadID(raw uint32) PayloadID {
	v, err := safecast.Conv[uint32](raw)
	if err != nil {
		panic(fmt.Errorf("payload index overflow: %w", err))
	}
	return PayloadID(v)
}

func (e *Exprs) new(kind ExprKind, span source.Span, payload PayloadID) ExprID {
	return ExprID(e.Arena.Allocate(Expr{Kind: kind, Span: span, Payload: payload}))
}

func (e *Exprs) NewIdent(span source.Span, name source.StringID) ExprID {
	p := payloadID(e.Idents.Allocate(ExprIdentData{Name: name}))
	return e.new(ExprIdent, span, p)
}

func (e *Exprs) Ident(id ExprID) (*ExprIdentData, bool) {
	x := e.Get(id)
	if x == nil || x.Kind != ExprIdent {
		return nil, false
	}
	return e.Idents.Get(uint32(x.Payload)), true
}

func (e *Exprs) NewLiteral(kind ExprKind, span source.Span, litKind LitKind, value source.StringID) ExprID {
	p := payloadID(e.Literals.Allocate(ExprLiteralData{Kind: litKind, Value: value}))
	return e.new(kind, span, p)
}

func (e *Exprs) Literal(id ExprID) (*ExprLiteralData, bool) {
	x := e.Get(id)
	if x == nil {
		return nil, false
	}
	switch x.Kind {
	case ExprIntegerLiteral, ExprFloatLiteral, ExprStringLiteral, ExprCharLiteral, ExprBoolLiteral:
		return e.Literals.Get(uint32(x.Payload)), true
	default:
		return nil, false
	}
}

func (e *Exprs) NewNone(span source.Span) ExprID {
	return e.new(ExprNone, span, NoPayloadID)
}

func (e *Exprs) NewBinary(span source.Span, op BinaryOp, left, right ExprID, concat bool) ExprID {
	p := payloadID(e.Binaries.Allocate(ExprBinaryData{Op: op, Left: left, Right: right}))
	kind := ExprInfix
	if concat {
		kind = ExprConcat
	}
	return e.new(kind, span, p)
}

// NewIsTest builds an `is`/`!is` type-test expression: left is the value
// under test, rightType the variant being tested for. not selects `!is`
// over `is`.
func (e *Exprs) NewIsTest(span source.Span, left ExprID, rightType TypeID, not bool) ExprID {
	op := OpIs
	if not {
		op = OpNotIs
	}
	p := payloadID(e.Binaries.Allocate(ExprBinaryData{Op: op, Left: left, Right: NoExprID, RightType: rightType}))
	return e.new(ExprInfix, span, p)
}

func (e *Exprs) Binary(id ExprID) (*ExprBinaryData, bool) {
	x := e.Get(id)
	if x == nil || (x.Kind != ExprInfix && x.Kind != ExprConcat) {
		return nil, false
	}
	return e.Binaries.Get(uint32(x.Payload)), true
}

func (e *Exprs) NewUnary(kind ExprKind, span source.Span, op UnaryOp, operand ExprID) ExprID {
	p := payloadID(e.Unaries.Allocate(ExprUnaryData{Op: op, Operand: operand}))
	return e.new(kind, span, p)
}

func (e *Exprs) Unary(id ExprID) (*ExprUnaryData, bool) {
	x := e.Get(id)
	if x == nil {
		return nil, false
	}
	switch x.Kind {
	case ExprPrefix, ExprPostfix, ExprPar, ExprGo, ExprDump:
		return e.Unaries.Get(uint32(x.Payload)), true
	default:
		return nil, false
	}
}

func (e *Exprs) NewIndex(span source.Span, target, index, rangeHigh ExprID, isRange bool) ExprID {
	p := payloadID(e.Indices.Allocate(ExprIndexData{Target: target, Index: index, RangeHigh: rangeHigh, IsRange: isRange}))
	return e.new(ExprIndex, span, p)
}

func (e *Exprs) Index(id ExprID) (*ExprIndexData, bool) {
	x := e.Get(id)
	if x == nil || x.Kind != ExprIndex {
		return nil, false
	}
	return e.Indices.Get(uint32(x.Payload)), true
}

func (e *Exprs) NewSelector(span source.Span, target ExprID, name source.StringID, comptime bool) ExprID {
	p := payloadID(e.Selectors.Allocate(ExprSelectorData{Target: target, Name: name, Comptime: comptime}))
	kind := ExprSelector
	if comptime {
		kind = ExprComptimeSelector
	}
	return e.new(kind, span, p)
}

func (e *Exprs) Selector(id ExprID) (*ExprSelectorData, bool) {
	x := e.Get(id)
	if x == nil || (x.Kind != ExprSelector && x.Kind != ExprComptimeSelector) {
		return nil, false
	}
	return e.Selectors.Get(uint32(x.Payload)), true
}

func (e *Exprs) NewCall(span source.Span, callee ExprID, args []CallArg, generics []TypeID, comptime, hasOr bool, orBlock StmtID) ExprID {
	p := payloadID(e.Calls.Allocate(ExprCallData{
		Callee: callee, Args: args, GenericArgs: generics,
		Comptime: comptime, HasOrBlock: hasOr, OrBlock: orBlock,
	}))
	kind := ExprCall
	if comptime {
		kind = ExprComptimeCall
	}
	return e.new(kind, span, p)
}

func (e *Exprs) Call(id ExprID) (*ExprCallData, bool) {
	x := e.Get(id)
	if x == nil || (x.Kind != ExprCall && x.Kind != ExprComptimeCall) {
		return nil, false
	}
	return e.Calls.Get(uint32(x.Payload)), true
}

func (e *Exprs) NewCast(span source.Span, operand ExprID, target TypeID, isAs bool, bindName source.StringID) ExprID {
	p := payloadID(e.Casts.Allocate(ExprCastData{Operand: operand, Target: target, IsAsCast: isAs, BindName: bindName}))
	kind := ExprCast
	if isAs {
		kind = ExprAsCast
	}
	return e.new(kind, span, p)
}

func (e *Exprs) Cast(id ExprID) (*ExprCastData, bool) {
	x := e.Get(id)
	if x == nil || (x.Kind != ExprCast && x.Kind != ExprAsCast) {
		return nil, false
	}
	return e.Casts.Get(uint32(x.Payload)), true
}

func (e *Exprs) NewMatch(span source.Span, subject ExprID, cases []MatchCase) ExprID {
	p := payloadID(e.Matches.Allocate(ExprMatchData{Subject: subject, Cases: cases}))
	return e.new(ExprMatch, span, p)
}

func (e *Exprs) Match(id ExprID) (*ExprMatchData, bool) {
	x := e.Get(id)
	if x == nil || x.Kind != ExprMatch {
		return nil, false
	}
	return e.Matches.Get(uint32(x.Payload)), true
}

func (e *Exprs) NewIf(span source.Span, cond, then, elseBranch ExprID, guard *GuardBinding) ExprID {
	p := payloadID(e.Ifs.Allocate(ExprIfData{Cond: cond, Then: then, Else: elseBranch, Guard: guard}))
	kind := ExprIf
	if guard != nil {
		kind = ExprIfGuard
	}
	return e.new(kind, span, p)
}

func (e *Exprs) If(id ExprID) (*ExprIfData, bool) {
	x := e.Get(id)
	if x == nil || (x.Kind != ExprIf && x.Kind != ExprIfGuard) {
		return nil, false
	}
	return e.Ifs.Get(uint32(x.Payload)), true
}

func (e *Exprs) NewStructInit(span source.Span, typ TypeID, fields []StructInitField, spread ExprID) ExprID {
	p := payloadID(e.StructInits.Allocate(ExprStructInitData{Type: typ, Fields: fields, Spread: spread}))
	return e.new(ExprStructInit, span, p)
}

func (e *Exprs) StructInit(id ExprID) (*ExprStructInitData, bool) {
	x := e.Get(id)
	if x == nil || x.Kind != ExprStructInit {
		return nil, false
	}
	return e.StructInits.Get(uint32(x.Payload)), true
}

func (e *Exprs) NewArrayInit(span source.Span, elems []ExprID, elemType TypeID) ExprID {
	p := payloadID(e.Collections.Allocate(ExprCollectionData{Elems: elems, ElemType: elemType}))
	return e.new(ExprArrayInit, span, p)
}

func (e *Exprs) ArrayInit(id ExprID) (*ExprCollectionData, bool) {
	x := e.Get(id)
	if x == nil || x.Kind != ExprArrayInit {
		return nil, false
	}
	return e.Collections.Get(uint32(x.Payload)), true
}

func (e *Exprs) NewMapInit(span source.Span, keys, values []ExprID, keyType, valType TypeID) ExprID {
	p := payloadID(e.MapInits.Allocate(ExprMapInitData{Keys: keys, Values: values, KeyType: keyType, ValType: valType}))
	return e.new(ExprMapInit, span, p)
}

func (e *Exprs) MapInit(id ExprID) (*ExprMapInitData, bool) {
	x := e.Get(id)
	if x == nil || x.Kind != ExprMapInit {
		return nil, false
	}
	return e.MapInits.Get(uint32(x.Payload)), true
}

func (e *Exprs) NewChanInit(span source.Span, elemType TypeID, cap ExprID) ExprID {
	p := payloadID(e.ChanInits.Allocate(ExprChanInitData{ElemType: elemType, Cap: cap}))
	return e.new(ExprChanInit, span, p)
}

func (e *Exprs) ChanInit(id ExprID) (*ExprChanInitData, bool) {
	x := e.Get(id)
	if x == nil || x.Kind != ExprChanInit {
		return nil, false
	}
	return e.ChanInits.Get(uint32(x.Payload)), true
}

func (e *Exprs) NewRange(span source.Span, low, high ExprID, inclusive bool) ExprID {
	p := payloadID(e.Ranges.Allocate(ExprRangeData{Low: low, High: high, Inclusive: inclusive}))
	return e.new(ExprRange, span, p)
}

func (e *Exprs) Range(id ExprID) (*ExprRangeData, bool) {
	x := e.Get(id)
	if x == nil || x.Kind != ExprRange {
		return nil, false
	}
	return e.Ranges.Get(uint32(x.Payload)), true
}

func (e *Exprs) NewLock(span source.Span, names []source.StringID, isRLock bool, body StmtID) ExprID {
	p := payloadID(e.Locks.Allocate(ExprLockData{Names: names, IsRLock: isRLock, Body: body}))
	return e.new(ExprLock, span, p)
}

func (e *Exprs) Lock(id ExprID) (*ExprLockData, bool) {
	x := e.Get(id)
	if x == nil || x.Kind != ExprLock {
		return nil, false
	}
	return e.Locks.Get(uint32(x.Payload)), true
}

func (e *Exprs) NewUnsafe(span source.Span, body StmtID) ExprID {
	p := payloadID(e.BlockWraps.Allocate(ExprBlockWrapData{Body: body}))
	return e.new(ExprUnsafe, span, p)
}

func (e *Exprs) Unsafe(id ExprID) (*ExprBlockWrapData, bool) {
	x := e.Get(id)
	if x == nil || x.Kind != ExprUnsafe {
		return nil, false
	}
	return e.BlockWraps.Get(uint32(x.Payload)), true
}

func (e *Exprs) NewSelect(span source.Span, cases []SelectCase) ExprID {
	p := payloadID(e.Selects.Allocate(ExprSelectData{Cases: cases}))
	return e.new(ExprSelect, span, p)
}

func (e *Exprs) Select(id ExprID) (*ExprSelectData, bool) {
	x := e.Get(id)
	if x == nil || x.Kind != ExprSelect {
		return nil, false
	}
	return e.Selects.Get(uint32(x.Payload)), true
}

func (e *Exprs) NewTypeOp(kind ExprKind, span source.Span, typ TypeID, operand ExprID, field source.StringID) ExprID {
	p := payloadID(e.TypeOps.Allocate(ExprTypeOpData{Type: typ, Operand: operand, Field: field}))
	return e.new(kind, span, p)
}

func (e *Exprs) TypeOp(id ExprID) (*ExprTypeOpData, bool) {
	x := e.Get(id)
	if x == nil {
		return nil, false
	}
	switch x.Kind {
	case ExprSizeOf, ExprOffsetOf, ExprTypeOf:
		return e.TypeOps.Get(uint32(x.Payload)), true
	default:
		return nil, false
	}
}

func (e *Exprs) NewAt(span source.Span, name source.StringID) ExprID {
	p := payloadID(e.Ats.Allocate(ExprAtData{Name: name}))
	return e.new(ExprAt, span, p)
}

func (e *Exprs) At(id ExprID) (*ExprAtData, bool) {
	x := e.Get(id)
	if x == nil || x.Kind != ExprAt {
		return nil, false
	}
	return e.Ats.Get(uint32(x.Payload)), true
}

func (e *Exprs) NewStringInterp(span source.Span, parts []InterpPart) ExprID {
	p := payloadID(e.Interps.Allocate(ExprInterpData{Parts: parts}))
	return e.new(ExprStringInterLiteral, span, p)
}

func (e *Exprs) StringInterp(id ExprID) (*ExprInterpData, bool) {
	x := e.Get(id)
	if x == nil || x.Kind != ExprStringInterLiteral {
		return nil, false
	}
	return e.Interps.Get(uint32(x.Payload)), true
}

func (e *Exprs) NewEnumVal(span source.Span, enumType TypeID, variant source.StringID) ExprID {
	p := payloadID(e.EnumVals.Allocate(ExprEnumValData{EnumType: enumType, Variant: variant}))
	return e.new(ExprEnumVal, span, p)
}

func (e *Exprs) EnumVal(id ExprID) (*ExprEnumValData, bool) {
	x := e.Get(id)
	if x == nil || x.Kind != ExprEnumVal {
		return nil, false
	}
	return e.EnumVals.Get(uint32(x.Payload)), true
}

func (e *Exprs) NewAssoc(span source.Span, typ TypeID, name source.StringID) ExprID {
	p := payloadID(e.Assocs.Allocate(ExprAssocData{Type: typ, Name: name}))
	return e.new(ExprAssoc, span, p)
}

func (e *Exprs) Assoc(id ExprID) (*ExprAssocData, bool) {
	x := e.Get(id)
	if x == nil || x.Kind != ExprAssoc {
		return nil, false
	}
	return e.Assocs.Get(uint32(x.Payload)), true
}

func (e *Exprs) NewLikely(span source.Span, operand ExprID, expect bool) ExprID {
	p := payloadID(e.Likelys.Allocate(ExprLikelyData{Operand: operand, Expect: expect}))
	return e.new(ExprLikely, span, p)
}

func (e *Exprs) Likely(id ExprID) (*ExprLikelyData, bool) {
	x := e.Get(id)
	if x == nil || x.Kind != ExprLikely {
		return nil, false
	}
	return e.Likelys.Get(uint32(x.Payload)), true
}

func (e *Exprs) NewSQL(span source.Span, raw source.StringID, args []ExprID) ExprID {
	p := payloadID(e.SQLs.Allocate(ExprSQLData{Raw: raw, Args: args}))
	return e.new(ExprSQL, span, p)
}

func (e *Exprs) SQL(id ExprID) (*ExprSQLData, bool) {
	x := e.Get(id)
	if x == nil || x.Kind != ExprSQL {
		return nil, false
	}
	return e.SQLs.Get(uint32(x.Payload)), true
}
