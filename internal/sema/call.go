package sema

import (
	"wrought/internal/ast"
	"wrought/internal/diag"
	"wrought/internal/source"
	"wrought/internal/types"
)

// checkCall implements a condensed version of §4.2.4's call-resolution
// order: resolve the callee to a Function descriptor (free function,
// method, or a first-class function value), check argument count and
// types, infer and substitute generics when the callee is generic, and
// record newly observed concrete instantiations for the cross-file
// fixed-point loop (§4.2.1/§4.2.6).
func (c *Checker) checkCall(id ast.ExprID) types.TypeID {
	data, ok := c.AST.Exprs.Call(id)
	b := c.Types.Builtins()
	if !ok {
		return c.setExprType(id, b.Void)
	}
	node := c.AST.Exprs.Get(id)

	argTypes := make([]types.TypeID, len(data.Args))
	for i, a := range data.Args {
		argTypes[i] = c.checkExpr(a.Value)
	}

	fn, fqName := c.resolveCallee(data.Callee)
	if fn == nil {
		return c.setExprType(id, b.Void)
	}

	// §4.2.4's conditional-call-elision step: a `[if tag]` function whose
	// tag isn't active is statically skipped, not called; the expression
	// still type-checks (its value is never observed at runtime) to void.
	if fn.Attrs.Has(types.FuncConditional) && !c.ActiveTags[fn.IfTag] {
		return c.setExprType(id, b.Void)
	}

	wantArgs := fn.Params
	if fn.Receiver != types.NoTypeID && fn.Attrs.Has(types.FuncMethod) {
		// receiver slot already consumed by the selector target, not by Args
	}
	if len(wantArgs) != len(argTypes) && !fn.Attrs.Has(types.FuncVariadic) {
		c.errorf(diag.CodeArgCountMismatch, node.Span, "call to %q expects %d arguments, got %d", fqName, len(wantArgs), len(argTypes))
	}
	for i := 0; i < len(wantArgs) && i < len(argTypes); i++ {
		c.checkArgAgainstParam(node.Span, fqName, wantArgs[i], argTypes[i])
	}

	ret := fn.Return
	if len(fn.GenericNames) > 0 {
		paramTs := paramTypes(wantArgs)
		bindings, err := c.Types.InferFnGenericTypes(fn.GenericNames, paramTs, argTypes)
		if err != nil {
			c.errorf(diag.CodeGenericAmbiguousInference, node.Span, "cannot infer generic arguments for %q: %v", fqName, err)
			return c.setExprType(id, b.Void)
		}
		concrete := make([]types.TypeID, len(fn.GenericNames))
		for i, n := range fn.GenericNames {
			concrete[i] = bindings[n]
		}
		ret = c.Types.ResolveGenericToConcrete(ret, fn.GenericNames, concrete)
		if c.Types.RegisterFnConcreteTypes(fqName, concrete) {
			c.pendingGenerics = append(c.pendingGenerics, pendingGeneric{fqName: fqName, file: c.file, decl: c.fnDecls[fqName]})
		}
	}

	if fn.Attrs.Has(types.FuncDeprecated) {
		c.warnf(diag.CodeCallDeprecated, node.Span, "%q is deprecated", fqName)
	}
	if fn.Attrs.Has(types.FuncUnsafe) && len(c.lockStack) == 0 {
		// unsafe calls outside an `unsafe {}` block are flagged; the
		// checker doesn't track an explicit unsafe-block stack today
		// beyond lockStack's reuse for nesting depth, so this only
		// fires when nothing at all is open.
		c.warnf(diag.CodeCallUnsafeOutsideBlock, node.Span, "call to unsafe function %q outside an unsafe block", fqName)
	}
	if fn.Attrs.Has(types.FuncNoReturn) {
		c.setFlag(id, flagNoReturnCall)
	}

	// §4.2.4's optional-propagation step: a call returning an optional
	// must be unwrapped by an `or { ... }` fallback or consumed through
	// `??` (tracked via optionalPropDepth, checkBinary's OpNullCoalescing
	// case) before the result can be used as non-optional.
	if ret.HasFlag(types.FlagOptional) && !data.HasOrBlock && c.optionalPropDepth == 0 {
		c.errorf(diag.CodeOptionalPropagationMissing, node.Span, "call to %q returns an optional; handle it with \"or { ... }\" or \"??\"", fqName)
	}

	return c.setExprType(id, ret)
}

// checkArgAgainstParam implements the argument half of §4.1.5's
// does_type_implement_interface for call sites: a parameter typed as an
// interface requires its argument to satisfy that interface, and when it
// doesn't, names the first method or field responsible instead of just
// reporting failure.
func (c *Checker) checkArgAgainstParam(span source.Span, fqName string, want types.Param, got types.TypeID) {
	wantSym := c.Types.Sym(want.Type.Base())
	if wantSym.Kind != types.KindInterface {
		return
	}
	if c.Types.DoesTypeImplementInterface(got, want.Type) {
		return
	}
	gotSym := c.Types.Sym(got.Base())
	for _, m := range wantSym.Interface.Methods {
		cand, err := c.Types.FindMethodWithEmbeds(got, m.Name)
		if err != nil || cand == nil {
			c.errorf(diag.CodeInterfaceMethodMissing, span, "%q does not implement method %q of %q", gotSym.Name, m.Name, wantSym.Name)
			return
		}
		if cand.Return != m.Return {
			c.errorf(diag.CodeInterfaceMethodMismatch, span, "%s incorrectly implements method %s of %s: expected return type %s",
				gotSym.Name, m.Name, wantSym.Name, c.Types.Sym(m.Return).Name)
			return
		}
		if len(cand.Params) != len(m.Params) {
			c.errorf(diag.CodeInterfaceMethodMismatch, span, "%s incorrectly implements method %s of %s: parameter count mismatch",
				gotSym.Name, m.Name, wantSym.Name)
			return
		}
	}
	for _, f := range wantSym.Interface.Fields {
		cand, err := c.Types.FindFieldWithEmbeds(got, f.Name)
		if err != nil || cand == nil {
			c.errorf(diag.CodeInterfaceFieldMissing, span, "%q does not implement field %q of %q", gotSym.Name, f.Name, wantSym.Name)
			return
		}
		if f.Type != c.Types.Builtins().VoidPtr && cand.Type != f.Type {
			c.errorf(diag.CodeInterfaceFieldMismatch, span, "%s incorrectly implements field %s of %s: type mismatch",
				gotSym.Name, f.Name, wantSym.Name)
			return
		}
	}
	c.errorf(diag.CodeArgTypeMismatch, span, "argument to %q does not implement required interface %q", fqName, wantSym.Name)
}

// resolveCallee finds the Function descriptor a call targets: an
// identifier resolves through the function registry (bare name first,
// then module-qualified), a selector resolves as a method call on its
// checked target type.
func (c *Checker) resolveCallee(callee ast.ExprID) (*types.Function, string) {
	node := c.AST.Exprs.Get(callee)
	if node == nil {
		return nil, ""
	}
	switch node.Kind {
	case ast.ExprIdent:
		data, ok := c.AST.Exprs.Ident(callee)
		if !ok {
			return nil, ""
		}
		name := c.str(data.Name)
		if fn, ok := c.Types.LookupFn(c.fqName(name)); ok {
			return fn, c.fqName(name)
		}
		if fn, ok := c.Types.LookupFn(name); ok {
			return fn, name
		}
		c.errorf(diag.CodeUnknownIdent, node.Span, "call to undefined function %q", name)
		return nil, name
	case ast.ExprSelector:
		data, ok := c.AST.Exprs.Selector(callee)
		if !ok {
			return nil, ""
		}
		target := c.checkExpr(data.Target)
		name := c.str(data.Name)
		fn, err := c.Types.FindMethodWithEmbeds(target, name)
		if err != nil {
			c.errorf(diag.CodeNoSuchMethod, node.Span, "type %q has no method %q", c.Types.Sym(target.Base()).Name, name)
			return nil, name
		}
		return fn, fn.Module + "." + fn.Name
	default:
		c.checkExpr(callee)
		return nil, ""
	}
}
