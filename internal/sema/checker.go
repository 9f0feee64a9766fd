// Package sema implements the Checker half of the front-end: it walks an
// already-parsed AST, resolves identifiers against the symbol table,
// infers and substitutes types through the shared Type Table, validates
// mutability/locking/unsafe rules, and reports every problem it finds
// through a diag.Reporter instead of failing outright.
package sema

import (
	"wrought/internal/ast"
	"wrought/internal/diag"
	"wrought/internal/source"
	"wrought/internal/symbols"
	"wrought/internal/types"
)

// Limits are the checker's configurable resource cutoffs (§4.2.5/§9).
// internal/config populates one of these from a TOML file; the zero
// value is usable as-is because Checker fills in defaults on construction.
type Limits struct {
	MessageLimit              int
	ExprNestingLimit          int
	StmtNestingLimit          int
	EnumVariantCutoff         int
	InterfaceEmbedDepthCutoff int
	GenericRecheckSafetyCap   int
	StrictMode                bool
	UnusedMutableIsWarning    bool
}

// DefaultLimits mirrors the defaults spec.md names explicitly or leaves
// implementation-defined; §9 resolves the open question on each.
func DefaultLimits() Limits {
	return Limits{
		MessageLimit:              2000,
		ExprNestingLimit:          40,
		StmtNestingLimit:          40,
		EnumVariantCutoff:         24,
		InterfaceEmbedDepthCutoff: 16,
		GenericRecheckSafetyCap:   10,
		StrictMode:                false,
		UnusedMutableIsWarning:    true,
	}
}

// fileState is the per-file lifecycle of §4.2.6.
type fileState uint8

const (
	stateFresh fileState = iota
	stateImportsResolved
	stateConstsTyped
	stateGlobalsTyped
	stateBodyChecked
	stateScopesSwept
)

// lockFrame is one entry of the checker's active lock/rlock stack (§4.2.3).
type lockFrame struct {
	names  map[string]bool // name -> isRLock
	isRead bool
}

// pendingGeneric tracks a generic function whose return type or body
// still needs re-checking against a newly observed concrete tuple, per
// §4.2.1's cross-file fixed-point loop.
type pendingGeneric struct {
	fqName string
	file   ast.FileID
	decl   ast.StmtID
}

// Checker owns one check_all(files) run: it borrows the AST, the Type
// Table, and the Symbol Table mutably for the run's duration (§5) and
// reports every diagnostic it produces through Reporter.
type Checker struct {
	AST      *ast.Builder
	Types    *types.Table
	Symbols  *symbols.Table
	Interner *source.Interner
	Reporter diag.Reporter
	Bag      *diag.Bag // same Bag the Reporter (a diag.BagReporter) drains into, for Full()/should_abort
	Limits   Limits

	file        ast.FileID
	fileStates  map[ast.FileID]fileState
	fileScope   symbols.ScopeID
	moduleScope symbols.ScopeID
	declScope   symbols.ScopeID // where top-level declarations land: fileScope, or moduleScope after a `module` stmt
	moduleName  string

	scopeStack []symbols.ScopeID
	lockStack  []lockFrame

	// optionalPropDepth is >0 while checking the left side of a `??`
	// expression, the only `?`-propagation context the AST can
	// represent today; checkCall reads it to decide whether a call
	// returning an optional needs an `or { ... }` block.
	optionalPropDepth int

	// ActiveTags names the build tags enabled for this check run.
	// checkCall consults it to decide whether a call to a `[if tag]`
	// function is statically elided. Nil means no tags are active.
	ActiveTags map[string]bool

	exprDepth int
	stmtDepth int

	shouldAbort bool

	typeExprCache map[ast.TypeID]types.TypeID

	// exprTypes records the resolved type of every checked expression,
	// the Go-idiomatic stand-in for "mutating the node to record its
	// type": the AST arenas themselves carry no mutable type slot.
	exprTypes map[ast.ExprID]types.TypeID
	exprFlags map[ast.ExprID]exprFlag

	structsByModule map[string][]types.TypeID
	interfaces      []types.TypeID

	// fnDecls maps a registered function's fully-qualified name to the
	// StmtFnDecl that declared it, so runGenericRecheckFixedPoint can
	// re-walk a generic function's body once a new concrete
	// instantiation is observed for it.
	fnDecls map[string]ast.StmtID

	pendingGenerics []pendingGeneric
	seenGenericKeys map[string]bool

	// RequireMain, when set, makes finalize (§4.2.1's post-fixed-point
	// step) raise CodeMissingMain if no checked file declares a
	// `[main]`-attributed function. A driver checking a library rather
	// than an executable leaves this false.
	RequireMain bool
}

// exprFlag records the once-shot per-expression bits §4.2.2 names
// (prevent_sum_type_unwrapping and the like).
type exprFlag uint8

const (
	flagNone                    exprFlag = 0
	flagPreventSumUnwrap        exprFlag = 1 << iota
	flagNoReturnCall
)

// NewChecker wires a checker over tables the driver already constructed.
// A nil Reporter is replaced with diag.NopReporter so every call site can
// report unconditionally. A zero Limits is replaced with DefaultLimits().
func NewChecker(b *ast.Builder, tt *types.Table, st *symbols.Table, in *source.Interner, r diag.Reporter, limits Limits) *Checker {
	if r == nil {
		r = diag.NopReporter{}
	}
	if limits == (Limits{}) {
		limits = DefaultLimits()
	}
	if limits.InterfaceEmbedDepthCutoff > 0 {
		tt.EmbedDepthCutoff = limits.InterfaceEmbedDepthCutoff
	}
	return &Checker{
		AST:             b,
		Types:           tt,
		Symbols:         st,
		Interner:        in,
		Reporter:        r,
		Limits:          limits,
		fileStates:      make(map[ast.FileID]fileState),
		typeExprCache:   make(map[ast.TypeID]types.TypeID),
		exprTypes:       make(map[ast.ExprID]types.TypeID),
		exprFlags:       make(map[ast.ExprID]exprFlag),
		structsByModule: make(map[string][]types.TypeID),
		fnDecls:         make(map[string]ast.StmtID),
		seenGenericKeys: make(map[string]bool),
	}
}

// str resolves a source.StringID through the interner, returning "" for
// NoStringID so callers don't need a defensive IsValid check everywhere.
func (c *Checker) str(id source.StringID) string {
	if id == source.NoStringID || c.Interner == nil {
		return ""
	}
	s, _ := c.Interner.Lookup(id)
	return s
}

// report is the checker's one path into the diagnostics accumulator: it
// honors the message limit and sets should_abort when the bag fills up.
func (c *Checker) report(sev diag.Severity, code diag.Code, span source.Span, format string, args ...any) {
	if c.shouldAbort {
		return
	}
	diag.Reportf(c.Reporter, sev, code, span, format, args...)
	if c.Bag != nil && c.Bag.Full() {
		c.shouldAbort = true
	}
}

func (c *Checker) errorf(code diag.Code, span source.Span, format string, args ...any) {
	c.report(diag.SevError, code, span, format, args...)
}

func (c *Checker) warnf(code diag.Code, span source.Span, format string, args ...any) {
	sev := diag.SevWarning
	if c.Limits.StrictMode {
		sev = diag.SevError
	}
	c.report(sev, code, span, format, args...)
}

func (c *Checker) noticef(code diag.Code, span source.Span, format string, args ...any) {
	c.report(diag.SevNotice, code, span, format, args...)
}

func (c *Checker) currentScope() symbols.ScopeID {
	if len(c.scopeStack) == 0 {
		return c.fileScope
	}
	return c.scopeStack[len(c.scopeStack)-1]
}

func (c *Checker) pushScope(kind symbols.ScopeKind, owner symbols.ScopeOwner, span source.Span) symbols.ScopeID {
	id := c.Symbols.OpenScope(kind, c.currentScope(), owner, span)
	c.scopeStack = append(c.scopeStack, id)
	return id
}

func (c *Checker) popScope() {
	if len(c.scopeStack) == 0 {
		return
	}
	c.scopeStack = c.scopeStack[:len(c.scopeStack)-1]
}

// setExprType records typ as expr's resolved type and returns it, the
// universal tail call of every branch in the expression dispatcher.
func (c *Checker) setExprType(expr ast.ExprID, typ types.TypeID) types.TypeID {
	c.exprTypes[expr] = typ
	return typ
}

// ExprType returns the type a prior walk computed for expr, or
// types.NoTypeID when expr was never visited.
func (c *Checker) ExprType(expr ast.ExprID) types.TypeID {
	return c.exprTypes[expr]
}

func (c *Checker) setFlag(expr ast.ExprID, f exprFlag) {
	c.exprFlags[expr] |= f
}

func (c *Checker) hasFlag(expr ast.ExprID, f exprFlag) bool {
	return c.exprFlags[expr]&f != 0
}

// fqName builds the Type Table / function-registry key for a
// module-qualified declaration, matching the canonical-name convention
// internal/types uses throughout (§4.1.1).
func (c *Checker) fqName(name string) string {
	if c.moduleName == "" || c.moduleName == "main" {
		return name
	}
	return c.moduleName + "." + name
}

// CheckAll implements §4.2.1 check_all(files): the ordered per-file pass
// pipeline, followed by the cross-file generic-recheck fixed point and
// finalization. It never fails; every problem surfaces as a diagnostic.
func (c *Checker) CheckAll(files []ast.FileID) {
	for _, f := range files {
		c.checkFileHeader(f)
		if c.shouldAbort {
			break
		}
	}
	if !c.shouldAbort {
		c.completeInterfaceChecks()
	}
	for _, f := range files {
		if c.shouldAbort {
			break
		}
		c.checkFileBody(f)
	}
	if !c.shouldAbort {
		c.runGenericRecheckFixedPoint()
	}
	c.finalize(files)
}

// completeInterfaceChecks runs §4.1.5's complete_interface_check once
// every file's headers are registered, so every struct/interface pair
// in the program (not just the ones a call site happens to touch) gets
// its conformance memoized before any body is checked.
func (c *Checker) completeInterfaceChecks() {
	c.Types.CompleteInterfaceCheck(c.interfaces, c.structsByModule)
}

// runGenericRecheckFixedPoint implements §4.2.6's cross-file fixed
// point: checking a call site can register a concrete instantiation a
// generic function's own body has never been checked against (a method
// call valid for some substitutions but not others), so each newly
// observed tuple requires one more walk of that function's body. A
// re-check can itself surface further new tuples (nested generic
// calls), so this repeats until a pass adds nothing or the configured
// safety cap trips, at which point non-convergence is itself a
// diagnostic rather than an infinite loop.
func (c *Checker) runGenericRecheckFixedPoint() {
	cap := c.Limits.GenericRecheckSafetyCap
	if cap <= 0 {
		cap = DefaultLimits().GenericRecheckSafetyCap
	}
	for pass := 0; pass < cap; pass++ {
		pending := c.pendingGenerics
		c.pendingGenerics = nil
		if len(pending) == 0 {
			return
		}
		for _, pg := range pending {
			if !pg.decl.IsValid() {
				continue
			}
			c.seenGenericKeys[pg.fqName] = true
			c.file = pg.file
			c.scopeStack = nil
			c.checkFnBody(pg.decl)
			if c.shouldAbort {
				return
			}
		}
	}
	if len(c.pendingGenerics) > 0 {
		c.errorf(diag.CodeGenericRecheckNotConverged, source.Span{},
			"generic instantiation re-check did not converge within %d passes", cap)
	}
}

// finalize implements §4.2.1's post-fixed-point step: once every file's
// generic instantiations have settled, verify the structural
// conventions that only make sense with the whole program assembled —
// that `[test]` functions take no arguments and return nothing, and
// (when the driver opted in via RequireMain) that some file declares a
// `[main]` entrypoint.
func (c *Checker) finalize(files []ast.FileID) {
	if c.shouldAbort {
		return
	}
	c.checkTestFileConventions(files)
	if c.RequireMain {
		c.checkMainExists(files)
	}
}

func (c *Checker) checkTestFileConventions(files []ast.FileID) {
	for _, f := range files {
		file := c.AST.Files.Get(f)
		if file == nil {
			continue
		}
		for _, s := range file.Stmts {
			data, ok := c.AST.Stmts.FnDecl(s)
			if !ok || !data.Attrs.Has(ast.AttrTest) {
				continue
			}
			stmt := c.AST.Stmts.Get(s)
			if len(data.Params) != 0 {
				c.errorf(diag.CodeInvalidTestFile, stmt.Span, "test function %q must take no parameters", c.str(data.Name))
			}
			if data.ReturnType.IsValid() {
				c.errorf(diag.CodeInvalidTestFile, stmt.Span, "test function %q must not declare a return type", c.str(data.Name))
			}
		}
	}
}

func (c *Checker) checkMainExists(files []ast.FileID) {
	for _, f := range files {
		file := c.AST.Files.Get(f)
		if file == nil {
			continue
		}
		for _, s := range file.Stmts {
			if data, ok := c.AST.Stmts.FnDecl(s); ok && data.Attrs.Has(ast.AttrMain) {
				return
			}
		}
	}
	c.errorf(diag.CodeMissingMain, source.Span{}, "program has no [main] entrypoint")
}

// checkFileHeader runs passes 1-3 of §4.2.1 for one file: imports,
// consts/expression-level decls, and global/type/fn declarations. Type
// and function *headers* are registered here so later files in the same
// CheckAll call can already resolve forward references to them.
func (c *Checker) checkFileHeader(f ast.FileID) {
	file := c.AST.Files.Get(f)
	if file == nil {
		return
	}
	c.file = f
	c.scopeStack = nil
	c.fileScope = c.Symbols.FileRoot(f, file.Span)
	c.moduleName = ""
	c.moduleScope = c.fileScope
	c.declScope = c.fileScope

	for _, imp := range file.Imports {
		c.checkImport(imp)
	}
	c.fileStates[f] = stateImportsResolved

	for _, s := range file.Stmts {
		c.registerTopLevel(s)
	}
	c.fileStates[f] = stateGlobalsTyped
}

// checkFileBody runs pass 4 (all other statements, i.e. function bodies
// and any remaining top-level executable statements) and pass 5 (the
// unused-variable scope walk).
func (c *Checker) checkFileBody(f ast.FileID) {
	file := c.AST.Files.Get(f)
	if file == nil {
		return
	}
	c.file = f
	c.scopeStack = nil
	c.fileScope = c.Symbols.FileRoot(f, file.Span)
	c.moduleName = ""
	c.moduleScope = c.fileScope
	c.declScope = c.fileScope

	for _, s := range file.Stmts {
		c.checkTopLevelBody(s)
		if c.shouldAbort {
			return
		}
	}
	c.fileStates[f] = stateBodyChecked

	c.sweepUnused(c.fileScope)
	c.fileStates[f] = stateScopesSwept
}

func (c *Checker) sweepUnused(scope symbols.ScopeID) {
	for _, id := range c.Symbols.UnusedLocals(scope) {
		sym := c.Symbols.Symbols.Get(id)
		if sym == nil {
			continue
		}
		code := diag.CodeUnusedVariable
		if sym.Flags.Has(symbols.FlagMut) {
			code = diag.CodeUnusedMutable
			if c.Limits.UnusedMutableIsWarning {
				c.warnf(code, sym.Span, "variable %q is declared mutable but never reassigned", sym.Name)
				continue
			}
		}
		c.warnf(code, sym.Span, "%q is declared but never used", sym.Name)
	}
}
