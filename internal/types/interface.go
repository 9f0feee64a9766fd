package types

// DoesTypeImplementInterface implements §4.1.5 does_type_implement_interface.
// On success the interface's Implementing set is extended with typ (plus
// voidptr, the escape hatch any interface method/field check also
// accepts). Interface-to-interface implementation is rejected outright.
func (t *Table) DoesTypeImplementInterface(typ, iface TypeID) bool {
	if typ == iface {
		return true
	}
	ifaceSym := t.Sym(iface)
	if ifaceSym.Kind != KindInterface {
		return false
	}
	t.expandInterfaceEmbeds(ifaceSym, 0)
	if iface == t.builtins.Error {
		base := typ.Base()
		if base == t.builtins.Void || !base.IsValid() {
			return true
		}
	}
	typSym := t.Sym(typ)
	if typSym.Kind == KindInterface {
		return false
	}

	for _, m := range ifaceSym.Interface.Methods {
		cand, err := t.FindMethodWithEmbeds(typ, m.Name)
		if err != nil || cand == nil {
			return false
		}
		if !t.methodsCompatible(m, *cand) {
			return false
		}
	}
	for _, f := range ifaceSym.Interface.Fields {
		cand, err := t.FindFieldWithEmbeds(typ, f.Name)
		if err != nil || cand == nil {
			return false
		}
		if f.Type != t.builtins.VoidPtr && cand.Type != f.Type {
			return false
		}
		if f.IsMut && !cand.IsMut {
			return false
		}
	}

	if ifaceSym.Interface.SingleImpl {
		for existing := range ifaceSym.Interface.Implementing {
			if existing != typ && existing != t.builtins.VoidPtr {
				// §4.1.5's `[single_impl]` rule: typ conforms
				// structurally, but a second distinct implementer of a
				// single_impl interface is rejected rather than recorded.
				return false
			}
		}
	}

	if ifaceSym.Interface.Implementing == nil {
		ifaceSym.Interface.Implementing = make(map[TypeID]struct{})
	}
	ifaceSym.Interface.Implementing[typ] = struct{}{}
	ifaceSym.Interface.Implementing[t.builtins.VoidPtr] = struct{}{}
	return true
}

// methodsCompatible compares return type, parameter count/types (modulo
// the JS bridge, where a looser widening is tolerated), and receiver
// mutability between an interface method and a candidate.
func (t *Table) methodsCompatible(want, have Function) bool {
	if want.Return != have.Return {
		return false
	}
	if len(want.Params) != len(have.Params) {
		return false
	}
	for i := range want.Params {
		if want.Params[i].Type != have.Params[i].Type {
			if have.Lang == LangJS {
				continue
			}
			return false
		}
		if want.Params[i].IsMut && !have.Params[i].IsMut {
			return false
		}
	}
	return true
}

// expandInterfaceEmbeds implements the embed-expansion memoization §3's
// Data Model and §9 call for: flattens iface's own Interface.Methods/
// Fields to also include everything reachable through its embedded
// interfaces, recursively, bounded by EmbedDepthCutoff, and sets
// Interface.expanded so a later call is a no-op. expanded is set before
// recursing into Embeds, so a cyclic embed chain can't loop forever.
func (t *Table) expandInterfaceEmbeds(sym *Symbol, depth int) {
	if sym.Kind != KindInterface || sym.Interface.expanded {
		return
	}
	sym.Interface.expanded = true
	if depth >= t.embedDepthCutoff() {
		return
	}
	for _, embed := range sym.Interface.Embeds {
		embedSym := t.Sym(embed)
		t.expandInterfaceEmbeds(embedSym, depth+1)
		for _, m := range embedSym.Interface.Methods {
			if !methodNamed(sym.Interface.Methods, m.Name) {
				sym.Interface.Methods = append(sym.Interface.Methods, m)
			}
		}
		for _, f := range embedSym.Interface.Fields {
			if !fieldNamed(sym.Interface.Fields, f.Name) {
				sym.Interface.Fields = append(sym.Interface.Fields, f)
			}
		}
	}
}

func methodNamed(methods []Function, name string) bool {
	for _, m := range methods {
		if m.Name == name {
			return true
		}
	}
	return false
}

func fieldNamed(fields []Field, name string) bool {
	for _, f := range fields {
		if f.Name == name {
			return true
		}
	}
	return false
}

// FindFieldWithEmbeds mirrors FindMethodWithEmbeds for fields: direct
// lookup first, then embed search.
func (t *Table) FindFieldWithEmbeds(typ TypeID, name string) (*Field, error) {
	return t.findFieldWithEmbeds(typ, name, 0)
}

func (t *Table) findFieldWithEmbeds(typ TypeID, name string, depth int) (*Field, error) {
	if f, _ := t.FindField(typ, name); f != nil {
		return f, nil
	}
	return t.findFieldFromEmbeds(typ, name, depth)
}

// CompleteInterfaceCheck implements §4.1.5 complete_interface_check: the
// exhaustive sweep run once every declaration is known. structsByModule
// groups candidate struct TypeIDs by the module that declared them, so
// a trivially-empty interface (no fields, no methods) is checked only
// against same-module struct pairs rather than every struct in the
// program.
func (t *Table) CompleteInterfaceCheck(interfaces []TypeID, structsByModule map[string][]TypeID) {
	for _, iface := range interfaces {
		sym := t.Sym(iface)
		if sym.Kind != KindInterface {
			continue
		}
		trivial := len(sym.Interface.Methods) == 0 && len(sym.Interface.Fields) == 0
		if trivial {
			t.DoesTypeImplementInterface(iface, iface)
			for _, s := range structsByModule[sym.Module] {
				t.DoesTypeImplementInterface(s, iface)
			}
			continue
		}
		for _, structs := range structsByModule {
			for _, s := range structs {
				t.DoesTypeImplementInterface(s, iface)
			}
		}
	}
}
