package sema

import (
	"wrought/internal/ast"
	"wrought/internal/types"
)

// resolveTypeExpr bridges the syntactic type half of the AST
// (ast.TypeSyn, addressed by ast.TypeID) to the resolved Type Table
// handle (types.TypeID) every expression/declaration payload eventually
// needs. Results are cached per ast.TypeID for the lifetime of the
// checker run since the same annotation node is frequently revisited
// (e.g. a parameter type checked once per call site).
func (c *Checker) resolveTypeExpr(te ast.TypeID) types.TypeID {
	if !te.IsValid() {
		return types.NoTypeID
	}
	if cached, ok := c.typeExprCache[te]; ok {
		return cached
	}
	// Insert a provisional void before recursing so a self-referential
	// type expression (`type T = *T`) can't recurse forever.
	c.typeExprCache[te] = c.Types.Builtins().Void
	resolved := c.resolveTypeExprUncached(te)
	c.typeExprCache[te] = resolved
	return resolved
}

func (c *Checker) resolveTypeExprUncached(te ast.TypeID) types.TypeID {
	syn := c.AST.Types
	node := syn.Get(te)
	if node == nil {
		return types.NoTypeID
	}
	switch node.Kind {
	case ast.TypeExprPath:
		return c.resolvePathType(te)
	case ast.TypeExprPointer:
		data, _ := syn.Unary_(te)
		inner := c.resolveTypeExpr(data.Inner)
		return inner.Ref()
	case ast.TypeExprRef:
		data, _ := syn.Unary_(te)
		inner := c.resolveTypeExpr(data.Inner)
		return inner.Ref()
	case ast.TypeExprArray:
		data, _ := syn.Array(te)
		elem := c.resolveTypeExpr(data.Elem)
		if data.Fixed {
			return c.Types.ArrayFixed(elem, data.Size, int(data.SizeExpr))
		}
		return c.Types.FindOrRegisterArray(elem)
	case ast.TypeExprMap:
		data, _ := syn.Map(te)
		key := c.resolveTypeExpr(data.Key)
		val := c.resolveTypeExpr(data.Value)
		return c.Types.Map(key, val)
	case ast.TypeExprChan:
		data, _ := syn.Unary_(te)
		elem := c.resolveTypeExpr(data.Inner)
		return c.Types.Chan(elem, data.Mut)
	case ast.TypeExprFn:
		data, _ := syn.Fn(te)
		params := make([]types.TypeID, len(data.Params))
		for i, p := range data.Params {
			params[i] = c.resolveTypeExpr(p)
		}
		ret := c.resolveTypeExpr(data.Return)
		return c.Types.FnType(c.moduleName, "", true, false, params, ret, false)
	case ast.TypeExprTuple:
		data, _ := syn.Tuple(te)
		elems := make([]types.TypeID, len(data.Elems))
		for i, e := range data.Elems {
			elems[i] = c.resolveTypeExpr(e)
		}
		return c.Types.MultiReturn(elems)
	case ast.TypeExprOptional:
		data, _ := syn.Unary_(te)
		inner := c.resolveTypeExpr(data.Inner)
		return inner.SetFlag(types.FlagOptional)
	case ast.TypeExprVariadic:
		data, _ := syn.Unary_(te)
		inner := c.resolveTypeExpr(data.Inner)
		return inner.SetFlag(types.FlagVariadic)
	case ast.TypeExprShared:
		data, _ := syn.Unary_(te)
		inner := c.resolveTypeExpr(data.Inner)
		return inner.SetFlag(types.FlagShared)
	default:
		return c.Types.Builtins().Void
	}
}

// resolvePathType resolves `Name`, `pkg.Name`, or `Name<A, B>` to a
// registered or placeholder symbol. A qualified path is looked up under
// its dotted canonical name directly; an unqualified path falls back to
// the current module and then to the shared "main" unqualified bucket
// the Type Table maintains (FindSymAndIdx already walks that fallback).
func (c *Checker) resolvePathType(te ast.TypeID) types.TypeID {
	syn := c.AST.Types
	data, ok := syn.Path(te)
	if !ok {
		return c.Types.Builtins().Void
	}
	name := c.str(data.Name)
	if builtin, ok := c.lookupBuiltinPrimitive(name); ok {
		return builtin
	}

	qualifier := c.str(data.ModulePrefix)
	canonical := name
	if qualifier != "" {
		canonical = qualifier + "." + name
	} else if c.moduleName != "" {
		canonical = c.moduleName + "." + name
	}

	generics := make([]types.TypeID, len(data.Generics))
	for i, g := range data.Generics {
		generics[i] = c.resolveTypeExpr(g)
	}

	_, base := c.Types.FindSymAndIdx(canonical)
	if base == types.NoTypeID && qualifier == "" && c.moduleName != "" {
		_, base = c.Types.FindSymAndIdx(name)
	}
	if base == types.NoTypeID {
		// Forward reference to a not-yet-registered declaration: record a
		// placeholder so later registration (RegisterSym's "merge into an
		// existing placeholder" rule) reconciles it, per §4.1.1/§4.1.2.
		base = c.Types.AddPlaceholderType(canonical, types.LangNative)
	}
	if len(generics) == 0 {
		return base
	}
	names := c.genericParamNamesOf(base)
	if len(names) == 0 {
		return base
	}
	return c.Types.UnwrapGenericType(base, names, generics)
}

func (c *Checker) genericParamNamesOf(base types.TypeID) []string {
	sym := c.Types.Sym(base)
	switch sym.Kind {
	case types.KindStruct:
		return sym.Struct.GenericParams
	case types.KindInterface:
		return sym.Interface.GenericParams
	case types.KindSumType:
		return sym.SumType.GenericParams
	default:
		return nil
	}
}

func (c *Checker) lookupBuiltinPrimitive(name string) (types.TypeID, bool) {
	b := c.Types.Builtins()
	switch name {
	case "void":
		return b.Void, true
	case "bool":
		return b.Bool, true
	case "i8":
		return b.I8, true
	case "i16":
		return b.I16, true
	case "i32":
		return b.I32, true
	case "i64":
		return b.I64, true
	case "u8":
		return b.U8, true
	case "u16":
		return b.U16, true
	case "u32":
		return b.U32, true
	case "u64":
		return b.U64, true
	case "f32":
		return b.F32, true
	case "f64":
		return b.F64, true
	case "rune":
		return b.Rune, true
	case "string":
		return b.String, true
	case "char":
		return b.Char, true
	case "voidptr":
		return b.VoidPtr, true
	case "error":
		return b.Error, true
	default:
		return types.NoTypeID, false
	}
}
