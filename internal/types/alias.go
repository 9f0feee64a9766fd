package types

// FinalSym implements §4.1.3 final_sym: follows exactly one alias hop
// (Symbol.Alias.Parent) to reach the kind backing typ. When that parent
// is itself an alias, the parent alias's symbol is returned. Alias cycles
// are rejected at registration time (checkAliasCycle in internal/sema),
// not here.
func (t *Table) FinalSym(typ TypeID) *Symbol {
	sym := t.Sym(typ)
	if sym.Kind == KindAlias && sym.Alias.Parent.IsValid() {
		return t.Sym(sym.Alias.Parent)
	}
	return sym
}

// UnaliasNumType implements unalias_num_type(typ): dereferences an alias
// only when its parent is a primitive numeric type; otherwise returns
// typ unchanged.
func (t *Table) UnaliasNumType(typ TypeID) TypeID {
	sym := t.Sym(typ)
	if sym.Kind != KindAlias || !sym.Alias.Parent.IsValid() {
		return typ
	}
	parent := t.Sym(sym.Alias.Parent)
	if parent.Kind == KindPrimitive && (parent.Primitive.IsInteger() || parent.Primitive.IsFloat()) {
		return sym.Alias.Parent
	}
	return typ
}

// ValueType implements value_type(typ): the logical element type for an
// indexed access (a[i]).
func (t *Table) ValueType(typ TypeID) TypeID {
	if typ.NrMuls() > 0 {
		return typ.Deref()
	}
	if typ.HasFlag(FlagVariadic) {
		return typ.ClearFlag(FlagVariadic)
	}
	sym := t.Sym(typ)
	switch sym.Kind {
	case KindArray:
		return sym.Array.Elem
	case KindArrayFixed:
		return sym.ArrayFx.Elem
	case KindMap:
		return sym.Map.Value
	case KindPrimitive:
		if sym.Primitive == PrimString {
			return t.builtins.U8
		}
	}
	return t.builtins.Void
}
