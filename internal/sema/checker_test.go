package sema

import (
	"testing"

	"wrought/internal/ast"
	"wrought/internal/diag"
	"wrought/internal/source"
	"wrought/internal/symbols"
	"wrought/internal/types"
)

// harness bundles one check_all run's tables so each scenario test only
// has to build the statements it cares about.
type harness struct {
	b   *ast.Builder
	in  *source.Interner
	bag *diag.Bag
	c   *Checker
}

func newHarness() *harness {
	b := ast.NewBuilder(ast.Hints{})
	in := source.NewInterner()
	bag := diag.NewBag(0)
	c := NewChecker(b, types.NewTable(), symbols.NewTable(symbols.Hints{}), in, diag.BagReporter{Bag: bag}, DefaultLimits())
	c.Bag = bag
	return &harness{b: b, in: in, bag: bag, c: c}
}

func (h *harness) id(s string) source.StringID { return h.in.Intern(s) }

// path builds an unqualified `name` type reference, resolving to a
// builtin primitive when name names one.
func (h *harness) path(name string) ast.TypeID {
	return h.b.Types.NewPath(source.Span{}, source.NoStringID, h.id(name), nil)
}

func (h *harness) intLit(v string) ast.ExprID {
	return h.b.Exprs.NewLiteral(ast.ExprIntegerLiteral, source.Span{}, ast.LitInt, h.id(v))
}

func (h *harness) run(stmts ...ast.StmtID) {
	file := h.b.NewFile("test.wr", source.Span{})
	for _, s := range stmts {
		h.b.PushStmt(file, s)
	}
	h.c.CheckAll([]ast.FileID{file})
}

func (h *harness) has(code diag.Code) bool {
	for _, d := range h.bag.Items() {
		if d.Code == code {
			return true
		}
	}
	return false
}

func (h *harness) codes() []diag.Code {
	codes := make([]diag.Code, len(h.bag.Items()))
	for i, d := range h.bag.Items() {
		codes[i] = d.Code
	}
	return codes
}

// Scenario 1: a constant declared twice in the same file is rejected at
// the second declaration, not silently overwritten.
func TestDuplicateConstIsRejected(t *testing.T) {
	h := newHarness()
	first := h.b.Stmts.NewConst(source.Span{}, ast.StmtConstData{Name: h.id("Limit"), Type: h.path("i32"), Value: h.intLit("1")})
	second := h.b.Stmts.NewConst(source.Span{}, ast.StmtConstData{Name: h.id("Limit"), Type: h.path("i32"), Value: h.intLit("2")})
	h.run(first, second)

	if !h.has(diag.CodeDuplicateConst) {
		t.Fatalf("expected %s, got %v", diag.CodeDuplicateConst, h.codes())
	}
}

// Scenario 2: a `mut` local that is read but never reassigned earns a
// warning that it never needed the `mut` it was declared with.
func TestMutNeverReassignedWarns(t *testing.T) {
	h := newHarness()
	declare := h.b.Stmts.NewAssignDeclare(source.Span{},
		[]ast.ExprID{h.b.Exprs.NewIdent(source.Span{}, h.id("x"))}, ast.AssignDeclare,
		[]ast.ExprID{h.intLit("1")}, []bool{true})
	readX := h.b.Stmts.NewAssignDeclare(source.Span{},
		[]ast.ExprID{h.b.Exprs.NewIdent(source.Span{}, h.id("y"))}, ast.AssignDeclare,
		[]ast.ExprID{h.b.Exprs.NewIdent(source.Span{}, h.id("x"))}, []bool{false})
	body := h.b.Stmts.NewBlock(source.Span{}, []ast.StmtID{declare, readX})
	fn := h.b.Stmts.NewFnDecl(source.Span{}, ast.StmtFnDeclData{Name: h.id("main"), Body: body})
	h.run(fn)

	if !h.has(diag.CodeUnusedMutable) {
		t.Fatalf("expected %s for a mut binding that is only ever read, got %v", diag.CodeUnusedMutable, h.codes())
	}
	for _, d := range h.bag.Items() {
		if d.Code == diag.CodeUnusedMutable && d.Severity != diag.SevWarning {
			t.Fatalf("unused-mutable-is-warning defaults to true: expected a warning, got %v", d.Severity)
		}
	}
}

// A `mut` local that IS reassigned after declaration must not warn.
func TestMutReassignedDoesNotWarn(t *testing.T) {
	h := newHarness()
	declare := h.b.Stmts.NewAssignDeclare(source.Span{},
		[]ast.ExprID{h.b.Exprs.NewIdent(source.Span{}, h.id("x"))}, ast.AssignDeclare,
		[]ast.ExprID{h.intLit("1")}, []bool{true})
	reassign := h.b.Stmts.NewAssign(source.Span{},
		[]ast.ExprID{h.b.Exprs.NewIdent(source.Span{}, h.id("x"))}, ast.AssignPlain,
		[]ast.ExprID{h.intLit("2")})
	body := h.b.Stmts.NewBlock(source.Span{}, []ast.StmtID{declare, reassign})
	fn := h.b.Stmts.NewFnDecl(source.Span{}, ast.StmtFnDeclData{Name: h.id("main"), Body: body})
	h.run(fn)

	if h.has(diag.CodeUnusedMutable) {
		t.Fatalf("did not expect %s once x is reassigned, got %v", diag.CodeUnusedMutable, h.codes())
	}
}

// Scenario 3: `type T = *T` refers to itself through its own alias
// chain and must be rejected rather than silently resolved to void.
func TestTypeSelfReferenceIsRejected(t *testing.T) {
	h := newHarness()
	selfPath := h.b.Types.NewPath(source.Span{}, source.NoStringID, h.id("T"), nil)
	ptr := h.b.Types.NewUnary(ast.TypeExprPointer, source.Span{}, selfPath, false)
	decl := h.b.Stmts.NewTypeDecl(source.Span{}, ast.StmtTypeDeclData{Name: h.id("T"), Kind: ast.TypeDeclAlias, AliasTarget: ptr})
	h.run(decl)

	if !h.has(diag.CodeTypeSelfReference) {
		t.Fatalf("expected %s, got %v", diag.CodeTypeSelfReference, h.codes())
	}
}

// A chain of two distinct aliases that loops back to the first is a
// circular alias, a different diagnostic from direct self-reference.
func TestCircularAliasChainIsRejected(t *testing.T) {
	h := newHarness()
	bPath := h.b.Types.NewPath(source.Span{}, source.NoStringID, h.id("B"), nil)
	aDecl := h.b.Stmts.NewTypeDecl(source.Span{}, ast.StmtTypeDeclData{Name: h.id("A"), Kind: ast.TypeDeclAlias, AliasTarget: bPath})
	aPath := h.b.Types.NewPath(source.Span{}, source.NoStringID, h.id("A"), nil)
	bDecl := h.b.Stmts.NewTypeDecl(source.Span{}, ast.StmtTypeDeclData{Name: h.id("B"), Kind: ast.TypeDeclAlias, AliasTarget: aPath})
	h.run(aDecl, bDecl)

	if !h.has(diag.CodeCircularAlias) {
		t.Fatalf("expected %s, got %v", diag.CodeCircularAlias, h.codes())
	}
}

// Scenario 4: a struct whose method has the wrong return type does not
// satisfy an interface requiring that method, and the mismatch (not
// just a generic failure) is reported at the call site that requires it.
func TestInterfaceIncorrectImplementationIsRejected(t *testing.T) {
	h := newHarness()
	workSig := ast.FnSigDecl{Name: h.id("work"), ReturnType: h.path("i32")}
	ifaceDecl := h.b.Stmts.NewInterface(source.Span{}, ast.StmtInterfaceData{Name: h.id("Worker"), Methods: []ast.FnSigDecl{workSig}})

	structDecl := h.b.Stmts.NewStruct(source.Span{}, ast.StmtStructData{Name: h.id("S")})

	sPath := h.path("S")
	method := h.b.Stmts.NewFnDecl(source.Span{}, ast.StmtFnDeclData{
		Name:       h.id("work"),
		Receiver:   &ast.ReceiverDecl{Name: h.id("s"), Type: sPath},
		ReturnType: h.path("bool"),
		Body:       h.b.Stmts.NewBlock(source.Span{}, nil),
	})

	workerPath := h.path("Worker")
	useFn := h.b.Stmts.NewFnDecl(source.Span{}, ast.StmtFnDeclData{
		Name:   h.id("use"),
		Params: []ast.ParamDecl{{Name: h.id("w"), Type: workerPath}},
		Body:   h.b.Stmts.NewBlock(source.Span{}, nil),
	})

	callUse := h.b.Exprs.NewCall(source.Span{}, h.b.Exprs.NewIdent(source.Span{}, h.id("use")),
		[]ast.CallArg{{Value: h.b.Exprs.NewStructInit(source.Span{}, h.path("S"), nil, ast.NoExprID)}}, nil, false, false, ast.NoStmtID)
	main := h.b.Stmts.NewFnDecl(source.Span{}, ast.StmtFnDeclData{
		Name: h.id("main"),
		Body: h.b.Stmts.NewBlock(source.Span{}, []ast.StmtID{h.b.Stmts.NewExprStmt(source.Span{}, callUse)}),
	})

	h.run(ifaceDecl, structDecl, method, useFn, main)

	if !h.has(diag.CodeInterfaceMethodMismatch) {
		t.Fatalf("expected %s, got %v", diag.CodeInterfaceMethodMismatch, h.codes())
	}
}

// A struct that correctly implements every method and field of an
// interface must not be rejected at a call site requiring it.
func TestInterfaceCorrectImplementationIsAccepted(t *testing.T) {
	h := newHarness()
	workSig := ast.FnSigDecl{Name: h.id("work"), ReturnType: h.path("i32")}
	ifaceDecl := h.b.Stmts.NewInterface(source.Span{}, ast.StmtInterfaceData{Name: h.id("Worker"), Methods: []ast.FnSigDecl{workSig}})
	structDecl := h.b.Stmts.NewStruct(source.Span{}, ast.StmtStructData{Name: h.id("S")})

	sPath := h.path("S")
	method := h.b.Stmts.NewFnDecl(source.Span{}, ast.StmtFnDeclData{
		Name:       h.id("work"),
		Receiver:   &ast.ReceiverDecl{Name: h.id("s"), Type: sPath},
		ReturnType: h.path("i32"),
		Body:       h.b.Stmts.NewBlock(source.Span{}, []ast.StmtID{h.b.Stmts.NewReturn(source.Span{}, []ast.ExprID{h.intLit("0")})}),
	})

	workerPath := h.path("Worker")
	useFn := h.b.Stmts.NewFnDecl(source.Span{}, ast.StmtFnDeclData{
		Name:   h.id("use"),
		Params: []ast.ParamDecl{{Name: h.id("w"), Type: workerPath}},
		Body:   h.b.Stmts.NewBlock(source.Span{}, nil),
	})

	callUse := h.b.Exprs.NewCall(source.Span{}, h.b.Exprs.NewIdent(source.Span{}, h.id("use")),
		[]ast.CallArg{{Value: h.b.Exprs.NewStructInit(source.Span{}, h.path("S"), nil, ast.NoExprID)}}, nil, false, false, ast.NoStmtID)
	main := h.b.Stmts.NewFnDecl(source.Span{}, ast.StmtFnDeclData{
		Name: h.id("main"),
		Body: h.b.Stmts.NewBlock(source.Span{}, []ast.StmtID{h.b.Stmts.NewExprStmt(source.Span{}, callUse)}),
	})

	h.run(ifaceDecl, structDecl, method, useFn, main)

	for _, code := range h.codes() {
		if code == diag.CodeInterfaceMethodMismatch || code == diag.CodeInterfaceMethodMissing || code == diag.CodeArgTypeMismatch {
			t.Fatalf("did not expect an interface-conformance failure for a correct implementation, got %v", h.codes())
		}
	}
}

// Scenario 5: a generic function whose type parameter never appears in
// any parameter can't be inferred from a call that supplies none.
func TestGenericAmbiguousInferenceIsRejected(t *testing.T) {
	h := newHarness()
	tName := h.id("T")
	makeFn := h.b.Stmts.NewFnDecl(source.Span{}, ast.StmtFnDeclData{
		Name:         h.id("make"),
		ReturnType:   h.b.Types.NewPath(source.Span{}, source.NoStringID, tName, nil),
		GenericNames: []ast.GenericParam{{Name: tName}},
		Body:         h.b.Stmts.NewBlock(source.Span{}, nil),
	})

	callMake := h.b.Exprs.NewCall(source.Span{}, h.b.Exprs.NewIdent(source.Span{}, h.id("make")), nil, nil, false, false, ast.NoStmtID)
	main := h.b.Stmts.NewFnDecl(source.Span{}, ast.StmtFnDeclData{
		Name: h.id("main"),
		Body: h.b.Stmts.NewBlock(source.Span{}, []ast.StmtID{h.b.Stmts.NewExprStmt(source.Span{}, callMake)}),
	})

	h.run(makeFn, main)

	if !h.has(diag.CodeGenericAmbiguousInference) {
		t.Fatalf("expected %s, got %v", diag.CodeGenericAmbiguousInference, h.codes())
	}
}

// Scenario 6: mutating a field of a `shared` global outside any lock
// block is rejected, even though the global's declared type is
// otherwise ordinary.
func TestSharedMutationWithoutLockIsRejected(t *testing.T) {
	h := newHarness()
	structDecl := h.b.Stmts.NewStruct(source.Span{}, ast.StmtStructData{
		Name:   h.id("Counter"),
		Fields: []ast.FieldDecl{{Name: h.id("n"), Type: h.path("i32"), Attrs: ast.AttrSet{{Kind: ast.AttrMut}}}},
	})
	sharedType := h.b.Types.NewUnary(ast.TypeExprShared, source.Span{}, h.path("Counter"), false)
	global := h.b.Stmts.NewGlobal(source.Span{}, ast.StmtGlobalData{
		Name:  h.id("counter"),
		Type:  sharedType,
		Value: h.b.Exprs.NewStructInit(source.Span{}, h.path("Counter"), nil, ast.NoExprID),
	})

	target := h.b.Exprs.NewSelector(source.Span{}, h.b.Exprs.NewIdent(source.Span{}, h.id("counter")), h.id("n"), false)
	assign := h.b.Stmts.NewAssign(source.Span{}, []ast.ExprID{target}, ast.AssignPlain, []ast.ExprID{h.intLit("1")})
	main := h.b.Stmts.NewFnDecl(source.Span{}, ast.StmtFnDeclData{
		Name: h.id("main"),
		Body: h.b.Stmts.NewBlock(source.Span{}, []ast.StmtID{assign}),
	})

	h.run(structDecl, global, main)

	if !h.has(diag.CodeAssignToImmutable) {
		t.Fatalf("expected %s for a shared write outside a lock, got %v", diag.CodeAssignToImmutable, h.codes())
	}
}

// A call returning an optional must be handled with `or { ... }` (or
// consumed through `??`); otherwise the checker raises
// optional-propagation-missing rather than letting the optional flow
// silently into non-optional context.
func TestOptionalPropagationRequiresOrBlock(t *testing.T) {
	h := newHarness()
	optRet := h.path("i32")
	findFn := h.b.Stmts.NewFnDecl(source.Span{}, ast.StmtFnDeclData{
		Name:       h.id("find"),
		ReturnType: h.b.Types.NewUnary(ast.TypeExprOptional, source.Span{}, optRet, false),
		Body:       h.b.Stmts.NewBlock(source.Span{}, nil),
	})
	callFind := h.b.Exprs.NewCall(source.Span{}, h.b.Exprs.NewIdent(source.Span{}, h.id("find")), nil, nil, false, false, ast.NoStmtID)
	main := h.b.Stmts.NewFnDecl(source.Span{}, ast.StmtFnDeclData{
		Name: h.id("main"),
		Body: h.b.Stmts.NewBlock(source.Span{}, []ast.StmtID{h.b.Stmts.NewExprStmt(source.Span{}, callFind)}),
	})
	h.run(findFn, main)

	if !h.has(diag.CodeOptionalPropagationMissing) {
		t.Fatalf("expected %s, got %v", diag.CodeOptionalPropagationMissing, h.codes())
	}
}

// The same call guarded by an `or { ... }` block must not raise
// optional-propagation-missing.
func TestOptionalPropagationSatisfiedByOrBlock(t *testing.T) {
	h := newHarness()
	optRet := h.path("i32")
	findFn := h.b.Stmts.NewFnDecl(source.Span{}, ast.StmtFnDeclData{
		Name:       h.id("find"),
		ReturnType: h.b.Types.NewUnary(ast.TypeExprOptional, source.Span{}, optRet, false),
		Body:       h.b.Stmts.NewBlock(source.Span{}, nil),
	})
	orBlock := h.b.Stmts.NewBlock(source.Span{}, []ast.StmtID{h.b.Stmts.NewReturn(source.Span{}, []ast.ExprID{h.intLit("0")})})
	callFind := h.b.Exprs.NewCall(source.Span{}, h.b.Exprs.NewIdent(source.Span{}, h.id("find")), nil, nil, false, true, orBlock)
	main := h.b.Stmts.NewFnDecl(source.Span{}, ast.StmtFnDeclData{
		Name: h.id("main"),
		Body: h.b.Stmts.NewBlock(source.Span{}, []ast.StmtID{h.b.Stmts.NewExprStmt(source.Span{}, callFind)}),
	})
	h.run(findFn, main)

	if h.has(diag.CodeOptionalPropagationMissing) {
		t.Fatalf("did not expect %s once the call is guarded by or { ... }, got %v", diag.CodeOptionalPropagationMissing, h.codes())
	}
}

// A call to an `[if tag]`-gated function is statically elided when the
// tag isn't in the checker's ActiveTags set, and type-checks to void
// rather than resolving against the gated function's real signature.
func TestConditionalCallElidedWhenTagInactive(t *testing.T) {
	h := newHarness()
	debugFn := h.b.Stmts.NewFnDecl(source.Span{}, ast.StmtFnDeclData{
		Name:       h.id("debugDump"),
		Attrs:      ast.AttrSet{{Kind: ast.AttrIf, Arg: h.id("debug")}},
		ReturnType: h.path("i32"),
		Body:       h.b.Stmts.NewBlock(source.Span{}, []ast.StmtID{h.b.Stmts.NewReturn(source.Span{}, []ast.ExprID{h.intLit("1")})}),
	})
	callDebug := h.b.Exprs.NewCall(source.Span{}, h.b.Exprs.NewIdent(source.Span{}, h.id("debugDump")), nil, nil, false, false, ast.NoStmtID)
	main := h.b.Stmts.NewFnDecl(source.Span{}, ast.StmtFnDeclData{
		Name: h.id("main"),
		Body: h.b.Stmts.NewBlock(source.Span{}, []ast.StmtID{h.b.Stmts.NewExprStmt(source.Span{}, callDebug)}),
	})
	h.run(debugFn, main)

	if h.bag.HasErrors() {
		t.Fatalf("expected an elided call to a tag-gated function to type-check cleanly, got %v", h.codes())
	}
	if got := h.c.ExprType(callDebug); got != h.c.Types.Builtins().Void {
		t.Fatalf("expected an elided call to type as void, got %v", got)
	}
}
