package sema

import (
	"wrought/internal/ast"
	"wrought/internal/diag"
	"wrought/internal/source"
	"wrought/internal/symbols"
	"wrought/internal/types"
)

// checkTopLevelBody implements §4.2.1 pass 4 for one top-level
// statement: function bodies are walked in their own scope; const and
// global initializers are type-checked against their declared type.
// Type/struct/interface/enum declarations carry no executable body and
// are skipped here — their header was fully resolved in registerTopLevel.
func (c *Checker) checkTopLevelBody(stmtID ast.StmtID) {
	stmt := c.AST.Stmts.Get(stmtID)
	if stmt == nil {
		return
	}
	switch stmt.Kind {
	case ast.StmtFnDecl:
		c.checkFnBody(stmtID)
	case ast.StmtConst:
		if d, ok := c.AST.Stmts.Const(stmtID); ok && d.Value.IsValid() {
			c.checkExpr(d.Value)
		}
	case ast.StmtGlobal:
		if d, ok := c.AST.Stmts.Global(stmtID); ok && d.Value.IsValid() {
			c.checkExpr(d.Value)
		}
	case ast.StmtExpr, ast.StmtAssign, ast.StmtReturn, ast.StmtBlock, ast.StmtFor,
		ast.StmtForIn, ast.StmtForC, ast.StmtBranch, ast.StmtGoto, ast.StmtGotoLabel,
		ast.StmtDefer, ast.StmtHash, ast.StmtAssert, ast.StmtComptimeFor, ast.StmtSQL:
		c.checkStmt(stmtID)
	}
}

func (c *Checker) checkFnBody(stmtID ast.StmtID) {
	data, ok := c.AST.Stmts.FnDecl(stmtID)
	if !ok {
		return
	}
	stmt := c.AST.Stmts.Get(stmtID)
	scope := c.pushScope(symbols.ScopeFunction, symbols.ScopeOwner{Kind: symbols.ScopeOwnerStmt, Stmt: stmtID}, stmt.Span)
	defer c.popScope()

	if data.Receiver != nil {
		c.Symbols.Declare(scope, symbols.Symbol{
			Name: c.str(data.Receiver.Name), Kind: symbols.KindParam, Scope: scope, Span: data.Receiver.Span,
			Type: c.resolveTypeExpr(data.Receiver.Type), Flags: flagsFor(data.Receiver.IsMut),
		})
	}
	for _, p := range data.Params {
		c.Symbols.Declare(scope, symbols.Symbol{
			Name: c.str(p.Name), Kind: symbols.KindParam, Scope: scope, Span: p.Span,
			Type: c.resolveTypeExpr(p.Type), Flags: flagsFor(p.IsMut),
		})
	}
	if data.NoBody || !data.Body.IsValid() {
		return
	}
	c.checkStmt(data.Body)
}

func flagsFor(isMut bool) symbols.Flags {
	if isMut {
		return symbols.FlagMut
	}
	return 0
}

// checkStmt walks one statement, dispatching on StmtKind. Block-opening
// statements push/pop a symbols.ScopeBlock; stmtDepth enforces
// Limits.StmtNestingLimit (§9's resource-cutoff list).
func (c *Checker) checkStmt(stmtID ast.StmtID) {
	if !stmtID.IsValid() {
		return
	}
	stmt := c.AST.Stmts.Get(stmtID)
	if stmt == nil {
		return
	}
	c.stmtDepth++
	if c.stmtDepth > c.Limits.StmtNestingLimit {
		c.errorf(diag.CodeStmtNestingExceeded, stmt.Span, "statement nesting exceeds the %d-level limit", c.Limits.StmtNestingLimit)
		c.stmtDepth--
		return
	}
	defer func() { c.stmtDepth-- }()

	switch stmt.Kind {
	case ast.StmtBlock:
		c.checkBlock(stmtID)
	case ast.StmtAssign:
		c.checkAssign(stmtID)
	case ast.StmtExpr:
		if d, ok := c.AST.Stmts.ExprStmt(stmtID); ok {
			c.checkExpr(d.Expr)
		}
	case ast.StmtReturn:
		if d, ok := c.AST.Stmts.Return(stmtID); ok {
			for _, v := range d.Values {
				c.checkExpr(v)
			}
		}
	case ast.StmtFor:
		if d, ok := c.AST.Stmts.For(stmtID); ok {
			if d.Cond.IsValid() {
				c.checkExpr(d.Cond)
			}
			c.checkStmt(d.Body)
		}
	case ast.StmtForIn:
		c.checkForIn(stmtID)
	case ast.StmtForC:
		if d, ok := c.AST.Stmts.ForC(stmtID); ok {
			scope := c.pushScope(symbols.ScopeBlock, symbols.ScopeOwner{Kind: symbols.ScopeOwnerStmt, Stmt: stmtID}, stmt.Span)
			_ = scope
			c.checkStmt(d.Init)
			if d.Cond.IsValid() {
				c.checkExpr(d.Cond)
			}
			c.checkStmt(d.Post)
			c.checkStmt(d.Body)
			c.popScope()
		}
	case ast.StmtBranch, ast.StmtGoto, ast.StmtGotoLabel, ast.StmtHash, ast.StmtAsm:
		// no sub-expressions to check
	case ast.StmtDefer:
		if d, ok := c.AST.Stmts.Defer(stmtID); ok {
			c.checkExpr(d.Call)
		}
	case ast.StmtAssert:
		if d, ok := c.AST.Stmts.Assert(stmtID); ok {
			c.checkExpr(d.Cond)
			if d.Msg.IsValid() {
				c.checkExpr(d.Msg)
			}
		}
	case ast.StmtComptimeFor:
		c.checkComptimeFor(stmtID)
	case ast.StmtSQL:
		if d, ok := c.AST.Stmts.SQL(stmtID); ok {
			for _, a := range d.Args {
				c.checkExpr(a)
			}
		}
	}
}

func (c *Checker) checkBlock(stmtID ast.StmtID) {
	d, ok := c.AST.Stmts.Block(stmtID)
	if !ok {
		return
	}
	stmt := c.AST.Stmts.Get(stmtID)
	scope := c.pushScope(symbols.ScopeBlock, symbols.ScopeOwner{Kind: symbols.ScopeOwnerStmt, Stmt: stmtID}, stmt.Span)
	for _, s := range d.Stmts {
		c.checkStmt(s)
	}
	c.sweepUnused(scope)
	c.popScope()
}

func (c *Checker) checkForIn(stmtID ast.StmtID) {
	d, ok := c.AST.Stmts.ForIn(stmtID)
	if !ok {
		return
	}
	stmt := c.AST.Stmts.Get(stmtID)
	iterType := c.checkExpr(d.Iterable)
	elemType := c.elementTypeOf(iterType)

	scope := c.pushScope(symbols.ScopeBlock, symbols.ScopeOwner{Kind: symbols.ScopeOwnerStmt, Stmt: stmtID}, stmt.Span)
	for _, n := range d.VarNames {
		c.Symbols.Declare(scope, symbols.Symbol{Name: c.str(n), Kind: symbols.KindLet, Scope: scope, Span: stmt.Span, Type: elemType})
	}
	c.checkStmt(d.Body)
	c.sweepUnused(scope)
	c.popScope()
}

func (c *Checker) checkComptimeFor(stmtID ast.StmtID) {
	d, ok := c.AST.Stmts.ComptimeForStmt(stmtID)
	if !ok {
		return
	}
	stmt := c.AST.Stmts.Get(stmtID)
	iterType := c.checkExpr(d.Iterable)
	elemType := c.elementTypeOf(iterType)
	scope := c.pushScope(symbols.ScopeBlock, symbols.ScopeOwner{Kind: symbols.ScopeOwnerStmt, Stmt: stmtID}, stmt.Span)
	c.Symbols.Declare(scope, symbols.Symbol{Name: c.str(d.VarName), Kind: symbols.KindLet, Scope: scope, Span: stmt.Span, Type: elemType})
	c.checkStmt(d.Body)
	c.sweepUnused(scope)
	c.popScope()
}

// elementTypeOf returns the iteration element type for an array, fixed
// array, map, or channel; any other type yields Void and a diagnostic
// is left to the caller's later uses of the bogus element type.
func (c *Checker) elementTypeOf(t types.TypeID) types.TypeID {
	if t == types.NoTypeID || !t.IsValid() {
		return c.Types.Builtins().Void
	}
	sym := c.Types.Sym(t.Base())
	switch sym.Kind {
	case types.KindArray:
		return sym.Array.Elem
	case types.KindArrayFixed:
		return sym.ArrayFx.Elem
	case types.KindMap:
		return sym.Map.Value
	case types.KindChan:
		return sym.Chan.Elem
	default:
		return c.Types.Builtins().Void
	}
}

// checkAssign implements the addressability/mutability half of
// §4.2.3: every lvalue must either be a plain mutable local/global or
// a `shared` value currently covered by an active lock of the right
// kind, enforced through failIfImmutable.
func (c *Checker) checkAssign(stmtID ast.StmtID) {
	d, ok := c.AST.Stmts.Assign(stmtID)
	if !ok {
		return
	}
	stmt := c.AST.Stmts.Get(stmtID)
	if len(d.Lhs) != len(d.Rhs) && len(d.Rhs) != 1 {
		c.errorf(diag.CodeAssignCountMismatch, stmt.Span, "assignment has %d targets but %d values", len(d.Lhs), len(d.Rhs))
	}
	rhsTypes := make([]types.TypeID, len(d.Rhs))
	for i, rhs := range d.Rhs {
		rhsTypes[i] = c.checkExpr(rhs)
	}

	if d.Op == ast.AssignDeclare {
		c.checkAssignDeclare(stmtID, d, rhsTypes)
		return
	}

	for _, lhs := range d.Lhs {
		c.checkExpr(lhs)
		if name := c.checkFieldAssignMut(lhs, stmt.Span); name != "" {
			continue
		}
		if name := c.failIfImmutable(lhs); name != "" {
			c.errorf(diag.CodeAssignToImmutable, stmt.Span, "cannot assign to %q: not declared mutable", name)
			continue
		}
		c.markWritten(lhs)
	}
}

// checkFieldAssignMut implements the field half of §4.2.3's lvalue
// check that failIfImmutable's ExprSelector case never covers: it only
// recurses into the base target's mutability, never consulting the
// resolved field's own `mut`. Writing `x.y = v` where `y` isn't
// declared `mut` is rejected here regardless of whether `x` itself is
// mutable. Returns the field name once it has reported
// CodeFieldAssignNotMut, so checkAssign skips both its own generic
// diagnostic and markWritten for this target; returns "" when expr
// isn't a field selector, the field wasn't found, or the field is mut
// (failIfImmutable's base-mutability check still applies in that case).
func (c *Checker) checkFieldAssignMut(expr ast.ExprID, span source.Span) string {
	data, ok := c.AST.Exprs.Selector(expr)
	if !ok {
		return ""
	}
	name := c.str(data.Name)
	field, err := c.Types.FindFieldWithEmbeds(c.ExprType(data.Target), name)
	if err != nil || field == nil || field.IsMut {
		return ""
	}
	c.errorf(diag.CodeFieldAssignNotMut, span, "cannot assign to field %q: not declared mut", name)
	return name
}

// checkAssignDeclare implements the `:=` half of checkAssign: each Lhs
// slot is a fresh binding in the current scope, not a lookup of an
// existing one, the same distinction registerTopLevel's const/global
// handling and the guard-binding/for-in paths (checkIf, checkForIn)
// already draw between "declare" and "resolve". A target whose Lhs
// expression isn't a plain identifier (destructuring into a field, say)
// is only type-checked with checkExpr: nothing is declared for it and no
// mutability check runs.
func (c *Checker) checkAssignDeclare(stmtID ast.StmtID, d *ast.StmtAssignData, rhsTypes []types.TypeID) {
	stmt := c.AST.Stmts.Get(stmtID)
	scope := c.currentScope()
	for i, lhs := range d.Lhs {
		ident, ok := c.AST.Exprs.Ident(lhs)
		if !ok {
			c.checkExpr(lhs)
			continue
		}
		declType := rhsTypes[0]
		if len(rhsTypes) == len(d.Lhs) {
			declType = rhsTypes[i]
		}
		var isMut bool
		if i < len(d.LhsMut) {
			isMut = d.LhsMut[i]
		}
		c.Symbols.Declare(scope, symbols.Symbol{
			Name: c.str(ident.Name), Kind: symbols.KindLet, Scope: scope, Span: stmt.Span,
			Type: declType, Flags: flagsFor(isMut),
		})
		c.setExprType(lhs, declType)
	}
}
