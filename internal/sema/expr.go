package sema

import (
	"strconv"
	"strings"

	"wrought/internal/ast"
	"wrought/internal/diag"
	"wrought/internal/source"
	"wrought/internal/symbols"
	"wrought/internal/types"
)

// checkExpr is the §4.2.2 expression dispatcher: every branch ends by
// calling setExprType, the Go-idiomatic stand-in for mutating the AST
// node in place with its resolved type.
func (c *Checker) checkExpr(id ast.ExprID) types.TypeID {
	if !id.IsValid() {
		return types.NoTypeID
	}
	node := c.AST.Exprs.Get(id)
	if node == nil {
		return types.NoTypeID
	}
	c.exprDepth++
	if c.exprDepth > c.Limits.ExprNestingLimit {
		c.errorf(diag.CodeExprNestingExceeded, node.Span, "expression nesting exceeds the %d-level limit", c.Limits.ExprNestingLimit)
		c.exprDepth--
		return c.setExprType(id, c.Types.Builtins().Void)
	}
	defer func() { c.exprDepth-- }()

	b := c.Types.Builtins()
	switch node.Kind {
	case ast.ExprIdent:
		return c.checkIdent(id)
	case ast.ExprIntegerLiteral:
		return c.setExprType(id, b.I32)
	case ast.ExprFloatLiteral:
		return c.setExprType(id, b.F64)
	case ast.ExprStringLiteral:
		return c.setExprType(id, b.String)
	case ast.ExprCharLiteral:
		return c.setExprType(id, b.Char)
	case ast.ExprBoolLiteral:
		return c.setExprType(id, b.Bool)
	case ast.ExprNone:
		return c.setExprType(id, b.Void.SetFlag(types.FlagOptional))
	case ast.ExprPrefix, ast.ExprPostfix, ast.ExprPar, ast.ExprGo, ast.ExprDump:
		return c.checkUnary(id, node.Kind)
	case ast.ExprInfix, ast.ExprConcat:
		return c.checkBinary(id, node.Kind)
	case ast.ExprIndex:
		return c.checkIndex(id)
	case ast.ExprSelector:
		return c.checkSelector(id)
	case ast.ExprCall:
		return c.checkCall(id)
	case ast.ExprCast, ast.ExprAsCast:
		return c.checkCast(id, node.Kind)
	case ast.ExprMatch:
		return c.checkMatch(id)
	case ast.ExprIf, ast.ExprIfGuard:
		return c.checkIf(id)
	case ast.ExprStructInit:
		return c.checkStructInit(id)
	case ast.ExprArrayInit:
		return c.checkArrayInit(id)
	case ast.ExprMapInit:
		return c.checkMapInit(id)
	case ast.ExprChanInit:
		return c.checkChanInit(id)
	case ast.ExprRange:
		return c.checkRange(id)
	case ast.ExprLock:
		return c.checkLock(id)
	case ast.ExprUnsafe:
		return c.checkUnsafe(id)
	case ast.ExprSelect:
		return c.checkSelect(id)
	case ast.ExprSizeOf, ast.ExprOffsetOf:
		return c.setExprType(id, b.U64)
	case ast.ExprTypeOf:
		return c.checkTypeOf(id)
	case ast.ExprAt:
		return c.checkAt(id)
	case ast.ExprComptimeCall:
		return c.checkCall(id)
	case ast.ExprComptimeSelector:
		return c.checkSelector(id)
	case ast.ExprStringInterLiteral:
		return c.checkInterp(id)
	case ast.ExprEnumVal:
		return c.checkEnumVal(id)
	case ast.ExprAssoc:
		return c.checkAssoc(id)
	case ast.ExprLikely:
		if data, ok := c.exprLikelyData(id); ok {
			c.checkExpr(data.Operand)
		}
		return c.setExprType(id, b.Bool)
	case ast.ExprSQL:
		if data, ok := c.AST.Exprs.SQL(id); ok {
			for _, a := range data.Args {
				c.checkExpr(a)
			}
		}
		return c.setExprType(id, b.String)
	default:
		return c.setExprType(id, b.Void)
	}
}

func (c *Checker) exprLikelyData(id ast.ExprID) (*ast.ExprLikelyData, bool) {
	return c.AST.Exprs.Likely(id)
}

func (c *Checker) checkIdent(id ast.ExprID) types.TypeID {
	data, ok := c.AST.Exprs.Ident(id)
	b := c.Types.Builtins()
	if !ok {
		return c.setExprType(id, b.Void)
	}
	name := c.str(data.Name)
	node := c.AST.Exprs.Get(id)

	if refined, ok := c.Symbols.LookupSmartcast(c.currentScope(), symbols.SmartcastKey{VarName: name}); ok {
		return c.setExprType(id, refined)
	}
	sym := c.Symbols.Lookup(c.currentScope(), name)
	if !sym.IsValid() {
		c.errorf(diag.CodeUnknownIdent, node.Span, "undefined identifier %q", name)
		return c.setExprType(id, b.Void)
	}
	c.Symbols.MarkUsed(sym)
	s := c.Symbols.Symbols.Get(sym)
	if s == nil {
		return c.setExprType(id, b.Void)
	}
	return c.setExprType(id, s.Type)
}

// checkUnary covers prefix (-x, +x, !x, *x, &x, &mut x), parenthesized,
// `go expr`, and `$dump(expr)` forms, all sharing ExprUnaryData.
func (c *Checker) checkUnary(id ast.ExprID, kind ast.ExprKind) types.TypeID {
	data, ok := c.AST.Exprs.Unary(id)
	b := c.Types.Builtins()
	if !ok {
		return c.setExprType(id, b.Void)
	}
	operand := c.checkExpr(data.Operand)
	switch data.Op {
	case ast.OpNeg, ast.OpPlus:
		return c.setExprType(id, c.promoteNum(operand))
	case ast.OpNot:
		return c.setExprType(id, b.Bool)
	case ast.OpDeref:
		return c.setExprType(id, operand.Deref())
	case ast.OpRef, ast.OpRefMut:
		return c.setExprType(id, operand.Ref())
	case ast.OpGoSpawn:
		return c.setExprType(id, c.Types.Thread(operand))
	default:
		return c.setExprType(id, operand)
	}
}

// promoteNum lifts an integer type narrower than 32 bits to i32 (u32
// when unsigned) and returns any other type unchanged. Choosing the wider
// of two operands is widerNumeric's job; checkBinary applies both.
func (c *Checker) promoteNum(t types.TypeID) types.TypeID {
	if !t.IsValid() {
		return t
	}
	sym := c.Types.Sym(t.Base())
	if sym.Kind != types.KindPrimitive || !sym.Primitive.IsInteger() {
		return t
	}
	if sym.Primitive.BitWidth() < 32 {
		if sym.Primitive.IsUnsigned() {
			return c.Types.Builtins().U32
		}
		return c.Types.Builtins().I32
	}
	return t
}

func widerNumeric(c *Checker, a, b types.TypeID) types.TypeID {
	sa, sb := c.Types.Sym(a.Base()), c.Types.Sym(b.Base())
	if sa.Kind != types.KindPrimitive || sb.Kind != types.KindPrimitive {
		return a
	}
	if sa.Primitive.IsFloat() != sb.Primitive.IsFloat() {
		if sa.Primitive.IsFloat() {
			return a
		}
		return b
	}
	if sa.Primitive.BitWidth() >= sb.Primitive.BitWidth() {
		return a
	}
	return b
}

// checkBinary implements the operator ladder of §4.2.2: arithmetic
// widens, comparisons/equality/boolean ops fix to bool, `<<` doubles as
// array append / string concat. `is`/`!is` test a value against a sum
// type variant and, on the positive `is` case, push a smartcast
// refinement visible for the rest of the enclosing branch scope
// (checkIf opens one around every condition for exactly this reason).
// `in`/`!in` test membership in an array/map/chan without narrowing.
func (c *Checker) checkBinary(id ast.ExprID, kind ast.ExprKind) types.TypeID {
	data, ok := c.AST.Exprs.Binary(id)
	b := c.Types.Builtins()
	if !ok {
		return c.setExprType(id, b.Void)
	}
	node := c.AST.Exprs.Get(id)
	// The left side of `??` is the one enclosing `?`-propagation context
	// this checker recognizes (there's no postfix `?` node in the AST);
	// checkCall consults optionalPropDepth to suppress
	// CodeOptionalPropagationMissing for a call guarded this way.
	if data.Op == ast.OpNullCoalescing {
		c.optionalPropDepth++
	}
	left := c.checkExpr(data.Left)
	if data.Op == ast.OpNullCoalescing {
		c.optionalPropDepth--
	}
	right := c.checkExpr(data.Right)

	switch data.Op {
	case ast.OpAdd, ast.OpSub, ast.OpMul, ast.OpDiv, ast.OpMod,
		ast.OpBitAnd, ast.OpBitOr, ast.OpBitXor, ast.OpShl, ast.OpShr:
		if data.Op == ast.OpAdd && kind == ast.ExprConcat {
			return c.setExprType(id, left)
		}
		return c.setExprType(id, c.promoteNum(widerNumeric(c, left, right)))
	case ast.OpLogicalAnd, ast.OpLogicalOr:
		if !isBoolPrecedenceUnambiguous(c, data.Op, data.Left, data.Right) {
			c.warnf(diag.CodeAmbiguousBoolPrecedence, node.Span, "mixing && and || without parentheses is ambiguous")
		}
		return c.setExprType(id, b.Bool)
	case ast.OpEq, ast.OpNotEq:
		return c.setExprType(id, b.Bool)
	case ast.OpLess, ast.OpLessEq, ast.OpGreater, ast.OpGreaterEq:
		if structSym := c.Types.Sym(left.Base()); structSym.Kind == types.KindStruct {
			if _, err := c.Types.FindMethodWithEmbeds(left, "compare"); err != nil {
				c.errorf(diag.CodeInvalidOperands, node.Span, "struct %q has no compare method required for ordering operators", structSym.Name)
			}
		}
		return c.setExprType(id, b.Bool)
	case ast.OpNullCoalescing:
		return c.setExprType(id, left.ClearFlag(types.FlagOptional))
	case ast.OpIs:
		if name := identName(c, data.Left); name != "" {
			refined := c.resolveTypeExpr(data.RightType)
			c.Symbols.PushSmartcast(c.currentScope(), symbols.SmartcastKey{VarName: name}, refined)
		}
		return c.setExprType(id, b.Bool)
	case ast.OpNotIs:
		return c.setExprType(id, b.Bool)
	case ast.OpIn, ast.OpNotIn:
		return c.setExprType(id, b.Bool)
	default:
		return c.setExprType(id, left)
	}
}

// identName returns the plain identifier name expr resolves to, or ""
// when expr isn't a bare identifier (a selector, call result, etc. has
// no single name a smartcast can key on here).
func identName(c *Checker, expr ast.ExprID) string {
	data, ok := c.AST.Exprs.Ident(expr)
	if !ok {
		return ""
	}
	return c.str(data.Name)
}

// isBoolPrecedenceUnambiguous reports whether neither operand of an
// op (&& or ||) expression is a bare use of the other boolean operator,
// as in `a && b || c`. A parenthesized operand is an ExprPar node, not an
// infix one, so `(a && b) || c` and chains of one operator pass.
func isBoolPrecedenceUnambiguous(c *Checker, op ast.BinaryOp, left, right ast.ExprID) bool {
	mixes := func(e ast.ExprID) bool {
		d, ok := c.AST.Exprs.Binary(e)
		return ok && d != nil && d.Op != op && (d.Op == ast.OpLogicalAnd || d.Op == ast.OpLogicalOr)
	}
	return !mixes(left) && !mixes(right)
}

func (c *Checker) checkIndex(id ast.ExprID) types.TypeID {
	data, ok := c.AST.Exprs.Index(id)
	b := c.Types.Builtins()
	if !ok {
		return c.setExprType(id, b.Void)
	}
	node := c.AST.Exprs.Get(id)
	target := c.checkExpr(data.Target)
	c.checkExpr(data.Index)
	if data.IsRange && data.RangeHigh.IsValid() {
		c.checkExpr(data.RangeHigh)
	}

	sym := c.Types.Sym(target.Base())
	var elem types.TypeID
	switch sym.Kind {
	case types.KindArray:
		elem = sym.Array.Elem
	case types.KindArrayFixed:
		elem = sym.ArrayFx.Elem
	case types.KindMap:
		elem = sym.Map.Value
	case types.KindPrimitive:
		if sym.Primitive == types.PrimString {
			elem = b.Char
		} else {
			c.errorf(diag.CodeIndexRequiresSequence, node.Span, "type %q cannot be indexed", sym.Name)
		}
	default:
		if target.NrMuls() > 0 {
			c.warnf(diag.CodeUnsafeRequired, node.Span, "indexing a raw pointer requires an unsafe block")
			elem = target.Deref()
		} else {
			c.errorf(diag.CodeIndexRequiresSequence, node.Span, "type %q cannot be indexed", sym.Name)
		}
	}
	if data.IsRange {
		return c.setExprType(id, target)
	}
	return c.setExprType(id, elem)
}

// checkSelector implements field/method/embed resolution. The target's
// type comes from checkExpr, so an identifier target already carries any
// smartcast refinement checkIdent applies from an enclosing `is` check;
// flagPreventSumUnwrap is not consulted here or anywhere else.
func (c *Checker) checkSelector(id ast.ExprID) types.TypeID {
	data, ok := c.AST.Exprs.Selector(id)
	b := c.Types.Builtins()
	if !ok {
		return c.setExprType(id, b.Void)
	}
	node := c.AST.Exprs.Get(id)
	target := c.checkExpr(data.Target)
	name := c.str(data.Name)

	if field, err := c.Types.FindFieldWithEmbeds(target, name); err == nil {
		if field.IsMut && !field.IsPub && c.Types.Sym(target.Base()).Module != c.moduleName {
			c.errorf(diag.CodeFieldNotMut, node.Span, "field %q is not accessible outside module %q", name, c.Types.Sym(target.Base()).Module)
		}
		return c.setExprType(id, field.Type)
	}
	if fn, err := c.Types.FindMethodWithEmbeds(target, name); err == nil {
		return c.setExprType(id, c.Types.FnType(fn.Module, fn.Name, false, true, paramTypes(fn.Params), fn.Return, fn.Attrs.Has(types.FuncVariadic)))
	}
	c.errorf(diag.CodeNoSuchField, node.Span, "type %q has no field or method %q", c.Types.Sym(target.Base()).Name, name)
	return c.setExprType(id, b.Void)
}

func paramTypes(params []types.Param) []types.TypeID {
	out := make([]types.TypeID, len(params))
	for i, p := range params {
		out[i] = p.Type
	}
	return out
}

func (c *Checker) checkCast(id ast.ExprID, kind ast.ExprKind) types.TypeID {
	data, ok := c.AST.Exprs.Cast(id)
	b := c.Types.Builtins()
	if !ok {
		return c.setExprType(id, b.Void)
	}
	operand := c.checkExpr(data.Operand)
	target := c.resolveTypeExpr(data.Target)
	if kind == ast.ExprAsCast {
		if data.BindName != source.NoStringID {
			c.setFlag(data.Operand, flagPreventSumUnwrap)
			c.Symbols.PushSmartcast(c.currentScope(), symbols.SmartcastKey{VarName: c.str(data.BindName)}, target)
		}
		return c.setExprType(id, target.SetFlag(types.FlagOptional))
	}
	if !c.castCompatible(operand, target) {
		node := c.AST.Exprs.Get(id)
		c.errorf(diag.CodeCastNotAllowed, node.Span, "cannot cast %q to %q", c.Types.Sym(operand.Base()).Name, c.Types.Sym(target.Base()).Name)
	}
	return c.setExprType(id, target)
}

// castCompatible implements the primitive/string/enum/sum-type/
// interface/alias/pointer/struct ladder of §4.2.2's hard-cast rules.
func (c *Checker) castCompatible(from, to types.TypeID) bool {
	if from == to {
		return true
	}
	fromSym, toSym := c.Types.Sym(from.Base()), c.Types.Sym(to.Base())
	if fromSym.Kind == types.KindPrimitive && toSym.Kind == types.KindPrimitive {
		return true
	}
	if toSym.Kind == types.KindInterface {
		return c.Types.DoesTypeImplementInterface(from, to)
	}
	if fromSym.Kind == types.KindEnum && toSym.Kind == types.KindPrimitive && toSym.Primitive.IsInteger() {
		return true
	}
	if toSym.Kind == types.KindSumType {
		for _, v := range toSym.SumType.Variants {
			if v.Base() == from.Base() {
				return true
			}
		}
	}
	if from.NrMuls() > 0 && to.NrMuls() > 0 {
		return true
	}
	return fromSym.Kind == types.KindAlias || toSym.Kind == types.KindAlias
}

func (c *Checker) checkMatch(id ast.ExprID) types.TypeID {
	data, ok := c.AST.Exprs.Match(id)
	b := c.Types.Builtins()
	if !ok {
		return c.setExprType(id, b.Void)
	}
	node := c.AST.Exprs.Get(id)
	subject := c.checkExpr(data.Subject)

	var result types.TypeID = types.NoTypeID
	hasElse := false
	for _, mc := range data.Cases {
		var patternType types.TypeID
		for _, p := range mc.Patterns {
			patternType = c.checkExpr(p)
		}
		if mc.IsElse {
			hasElse = true
		}

		caseScope := c.pushScope(symbols.ScopeBlock, symbols.ScopeOwner{Kind: symbols.ScopeOwnerExpr, Expr: mc.Body}, mc.Span)
		if mc.As != source.NoStringID {
			c.Symbols.Declare(caseScope, symbols.Symbol{
				Name: c.str(mc.As), Kind: symbols.KindLet, Scope: caseScope, Span: mc.Span, Type: patternType,
			})
		}
		if mc.Guard.IsValid() {
			c.checkExpr(mc.Guard)
		}
		branch := c.checkExpr(mc.Body)
		c.popScope()
		if result == types.NoTypeID {
			result = branch
		}
	}
	if !hasElse {
		sym := c.Types.Sym(subject.Base())
		if sym.Kind == types.KindEnum && len(sym.Enum.Variants) > len(data.Cases) {
			c.warnf(diag.CodeNotExhaustive, node.Span, "match on enum %q is not exhaustive", sym.Name)
		}
		if sym.Kind == types.KindSumType && len(sym.SumType.Variants) > len(data.Cases) {
			c.warnf(diag.CodeNotExhaustive, node.Span, "match on sum type %q is not exhaustive", sym.Name)
		}
	}
	if result == types.NoTypeID {
		result = b.Void
	}
	return c.setExprType(id, result)
}

// checkIf always opens a branch scope around the condition and the then
// arm, not only around an explicit guard binding: an `is`/`as` test in
// the condition pushes its smartcast into this same scope (checkBinary,
// checkCast), so the refinement is visible to Then through the normal
// ancestor-scope walk and is gone again once Else is checked outside it.
func (c *Checker) checkIf(id ast.ExprID) types.TypeID {
	data, ok := c.AST.Exprs.If(id)
	b := c.Types.Builtins()
	if !ok {
		return c.setExprType(id, b.Void)
	}
	node := c.AST.Exprs.Get(id)
	branchScope := c.pushScope(symbols.ScopeBlock, symbols.ScopeOwner{Kind: symbols.ScopeOwnerExpr, Expr: id}, node.Span)
	if data.Guard != nil {
		initType := c.checkExpr(data.Guard.Init)
		c.Symbols.Declare(branchScope, symbols.Symbol{
			Name: c.str(data.Guard.Name), Kind: symbols.KindLet, Scope: branchScope, Span: node.Span,
			Type: initType.ClearFlag(types.FlagOptional),
		})
	} else {
		c.checkExpr(data.Cond)
	}
	thenType := c.checkExpr(data.Then)
	c.popScope()
	if !data.Else.IsValid() {
		return c.setExprType(id, b.Void)
	}
	c.checkExpr(data.Else)
	return c.setExprType(id, thenType)
}

func (c *Checker) checkStructInit(id ast.ExprID) types.TypeID {
	data, ok := c.AST.Exprs.StructInit(id)
	if !ok {
		return c.setExprType(id, c.Types.Builtins().Void)
	}
	for _, f := range data.Fields {
		c.checkExpr(f.Value)
	}
	if data.Spread.IsValid() {
		c.checkExpr(data.Spread)
	}
	return c.setExprType(id, c.resolveTypeExpr(data.Type))
}

func (c *Checker) checkArrayInit(id ast.ExprID) types.TypeID {
	data, ok := c.AST.Exprs.ArrayInit(id)
	if !ok {
		return c.setExprType(id, c.Types.Builtins().Void)
	}
	elem := c.resolveTypeExpr(data.ElemType)
	for _, e := range data.Elems {
		t := c.checkExpr(e)
		if !elem.IsValid() {
			elem = t
		}
	}
	return c.setExprType(id, c.Types.FindOrRegisterArray(elem))
}

func (c *Checker) checkMapInit(id ast.ExprID) types.TypeID {
	data, ok := c.AST.Exprs.MapInit(id)
	if !ok {
		return c.setExprType(id, c.Types.Builtins().Void)
	}
	keyT, valT := c.resolveTypeExpr(data.KeyType), c.resolveTypeExpr(data.ValType)
	for i := range data.Keys {
		k := c.checkExpr(data.Keys[i])
		v := c.checkExpr(data.Values[i])
		if !keyT.IsValid() {
			keyT = k
		}
		if !valT.IsValid() {
			valT = v
		}
	}
	return c.setExprType(id, c.Types.Map(keyT, valT))
}

func (c *Checker) checkChanInit(id ast.ExprID) types.TypeID {
	data, ok := c.AST.Exprs.ChanInit(id)
	if !ok {
		return c.setExprType(id, c.Types.Builtins().Void)
	}
	if data.Cap.IsValid() {
		c.checkExpr(data.Cap)
	}
	return c.setExprType(id, c.Types.Chan(c.resolveTypeExpr(data.ElemType), true))
}

func (c *Checker) checkRange(id ast.ExprID) types.TypeID {
	data, ok := c.AST.Exprs.Range(id)
	b := c.Types.Builtins()
	if !ok {
		return c.setExprType(id, b.Void)
	}
	if data.Low.IsValid() {
		c.checkExpr(data.Low)
	}
	if data.High.IsValid() {
		c.checkExpr(data.High)
	}
	return c.setExprType(id, b.I32)
}

// checkLock implements the lock/rlock block rules of §4.2.3: no
// nesting, no re-locking an already-locked name, distinguishing read
// from write locks via lockStack.
func (c *Checker) checkLock(id ast.ExprID) types.TypeID {
	data, ok := c.AST.Exprs.Lock(id)
	b := c.Types.Builtins()
	if !ok {
		return c.setExprType(id, b.Void)
	}
	node := c.AST.Exprs.Get(id)
	if len(c.lockStack) > 0 {
		c.errorf(diag.CodeLockNested, node.Span, "lock blocks cannot be nested")
	}
	frame := lockFrame{names: make(map[string]bool), isRead: data.IsRLock}
	for _, n := range data.Names {
		name := c.str(n)
		sym := c.Symbols.Lookup(c.currentScope(), name)
		if s := c.Symbols.Symbols.Get(sym); s != nil && !s.Flags.Has(symbols.FlagShared) {
			c.errorf(diag.CodeSharedRequiresLock, node.Span, "%q is not a shared value and cannot be locked", name)
		}
		if frame.names[name] {
			c.errorf(diag.CodeLockDuplicate, node.Span, "%q is locked more than once in the same block", name)
		}
		frame.names[name] = data.IsRLock
	}
	c.lockStack = append(c.lockStack, frame)
	c.checkStmt(data.Body)
	c.lockStack = c.lockStack[:len(c.lockStack)-1]
	return c.setExprType(id, b.Void)
}

func (c *Checker) checkUnsafe(id ast.ExprID) types.TypeID {
	data, ok := c.AST.Exprs.Unsafe(id)
	if !ok {
		return c.setExprType(id, c.Types.Builtins().Void)
	}
	c.checkStmt(data.Body)
	return c.setExprType(id, c.Types.Builtins().Void)
}

func (c *Checker) checkSelect(id ast.ExprID) types.TypeID {
	data, ok := c.AST.Exprs.Select(id)
	b := c.Types.Builtins()
	if !ok {
		return c.setExprType(id, b.Void)
	}
	for _, sc := range data.Cases {
		if sc.Recv.IsValid() {
			c.checkExpr(sc.Recv)
		}
		c.checkExpr(sc.Body)
	}
	return c.setExprType(id, b.Void)
}

func (c *Checker) checkTypeOf(id ast.ExprID) types.TypeID {
	data, ok := c.AST.Exprs.TypeOp(id)
	if !ok {
		return c.setExprType(id, c.Types.Builtins().Void)
	}
	if data.Operand.IsValid() {
		c.checkExpr(data.Operand)
	}
	return c.setExprType(id, c.Types.Builtins().String)
}

func (c *Checker) checkAt(id ast.ExprID) types.TypeID {
	return c.setExprType(id, c.Types.Builtins().Void)
}

// checkInterp checks a string-interpolation literal: each embedded
// expression is checked for its own type, and interpolating the result
// of a `[noreturn]` call is reported under CodeRecursiveStr. Format
// specifiers are not validated, and recursive `str()` calls are not
// detected.
func (c *Checker) checkInterp(id ast.ExprID) types.TypeID {
	data, ok := c.AST.Exprs.StringInterp(id)
	b := c.Types.Builtins()
	if !ok {
		return c.setExprType(id, b.String)
	}
	node := c.AST.Exprs.Get(id)
	for _, part := range data.Parts {
		if !part.Expr.IsValid() {
			continue
		}
		t := c.checkExpr(part.Expr)
		if c.hasFlag(part.Expr, flagNoReturnCall) {
			c.errorf(diag.CodeRecursiveStr, node.Span, "cannot interpolate the result of a call marked noreturn")
		}
		_ = t
	}
	return c.setExprType(id, b.String)
}

func (c *Checker) checkEnumVal(id ast.ExprID) types.TypeID {
	data, ok := c.AST.Exprs.EnumVal(id)
	if !ok {
		return c.setExprType(id, c.Types.Builtins().Void)
	}
	enumType := c.resolveTypeExpr(data.EnumType)
	sym := c.Types.Sym(enumType.Base())
	name := c.str(data.Variant)
	found := false
	for _, v := range sym.Enum.Variants {
		if v.Name == name {
			found = true
			break
		}
	}
	if !found {
		node := c.AST.Exprs.Get(id)
		c.errorf(diag.CodeNoSuchField, node.Span, "enum %q has no variant %q", sym.Name, name)
	}
	return c.setExprType(id, enumType)
}

func (c *Checker) checkAssoc(id ast.ExprID) types.TypeID {
	data, ok := c.AST.Exprs.Assoc(id)
	b := c.Types.Builtins()
	if !ok {
		return c.setExprType(id, b.Void)
	}
	name := c.str(data.Name)
	if fn, err := c.Types.FindMethodWithEmbeds(c.resolveTypeExpr(data.Type), name); err == nil {
		return c.setExprType(id, c.Types.FnType(fn.Module, fn.Name, false, true, paramTypes(fn.Params), fn.Return, false))
	}
	return c.setExprType(id, b.Void)
}

// parseNumericLexeme parses an integer literal lexeme (underscores
// ignored, base prefixes honoured) into its value. Nothing in the
// checker calls it.
func parseNumericLexeme(lexeme string) (int64, bool) {
	lexeme = strings.ReplaceAll(lexeme, "_", "")
	v, err := strconv.ParseInt(lexeme, 0, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
