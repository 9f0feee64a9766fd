package types

// genericParamsOf returns the declared generic parameter names of a
// struct/interface/sum-type head, or nil for anything else.
func genericParamsOf(sym *Symbol) []string {
	switch sym.Kind {
	case KindStruct:
		return sym.Struct.GenericParams
	case KindInterface:
		return sym.Interface.GenericParams
	case KindSumType:
		return sym.SumType.GenericParams
	default:
		return nil
	}
}

func concreteParamsOf(sym *Symbol) []TypeID {
	switch sym.Kind {
	case KindStruct:
		return sym.Struct.ConcreteParams
	case KindGenericInst:
		return sym.GenInst.Concrete
	default:
		return nil
	}
}

func (t *Table) resolveBinding(name string, names []string, concrete []TypeID) (TypeID, bool) {
	for i, n := range names {
		if n == name {
			return concrete[i], true
		}
	}
	return NoTypeID, false
}

// reapplyModifiers carries orig's pointer depth and non-generic flags
// onto base, then sets or clears .generic per complete.
func reapplyModifiers(orig, base TypeID, complete bool) TypeID {
	out := base.SetNrMuls(orig.NrMuls())
	for _, fl := range []Flag{FlagOptional, FlagVariadic, FlagShared} {
		if orig.HasFlag(fl) {
			out = out.SetFlag(fl)
		}
	}
	if complete {
		return out.ClearFlag(FlagGeneric)
	}
	return out.SetFlag(FlagGeneric)
}

// ResolveGenericToConcrete implements §4.1.6 resolve_generic_to_concrete:
// a pure substitution of generic_names with concrete_types throughout
// generic_type. Struct/interface/sum-type heads resolve to a (looked up
// or freshly registered) generic_inst placeholder named Name<T1, T2,
// …>; full field/method materialization is unwrap_generic_type's job.
func (t *Table) ResolveGenericToConcrete(generic TypeID, names []string, concrete []TypeID) TypeID {
	result, complete := t.resolveGenericBase(generic.Base(), names, concrete)
	return reapplyModifiers(generic, result, complete)
}

func (t *Table) resolveGenericBase(base TypeID, names []string, concrete []TypeID) (TypeID, bool) {
	sym := t.Sym(base)

	if bound, ok := t.resolveBinding(sym.Name, names, concrete); ok {
		return bound, true
	}

	switch sym.Kind {
	case KindPlaceholder:
		// An unmatched placeholder this deep in a generic substitution is
		// an unbound type parameter reference, not a resolved type: §9
		// "returns none when a parameter has no binding" — the caller's
		// top-level flag stays set and base is reported as unresolved.
		return t.builtins.Void, false

	case KindArray:
		elem, complete := t.resolveGenericBase(sym.Array.Elem, names, concrete)
		return t.arrayWithDims(elem, sym.Array.NrDims), complete

	case KindArrayFixed:
		elem, complete := t.resolveGenericBase(sym.ArrayFx.Elem, names, concrete)
		return t.ArrayFixed(elem, sym.ArrayFx.Size, sym.ArrayFx.SizeExpr), complete

	case KindMap:
		k, kc := t.resolveGenericBase(sym.Map.Key, names, concrete)
		v, vc := t.resolveGenericBase(sym.Map.Value, names, concrete)
		return t.Map(k, v), kc && vc

	case KindChan:
		elem, complete := t.resolveGenericBase(sym.Chan.Elem, names, concrete)
		return t.Chan(elem, sym.Chan.IsMut), complete

	case KindThread:
		ret, complete := t.resolveGenericBase(sym.Ret.Return, names, concrete)
		return t.Thread(ret), complete

	case KindPromise:
		ret, complete := t.resolveGenericBase(sym.Ret.Return, names, concrete)
		return t.Promise(ret), complete

	case KindMultiReturn:
		ts := make([]TypeID, len(sym.MultiRet.Types))
		complete := true
		for i, x := range sym.MultiRet.Types {
			var c bool
			ts[i], c = t.resolveGenericBase(x, names, concrete)
			complete = complete && c
		}
		return t.MultiReturn(ts), complete

	case KindFunction:
		params := make([]TypeID, len(sym.FnType.Params))
		complete := true
		for i, p := range sym.FnType.Params {
			var c bool
			params[i], c = t.resolveGenericBase(p, names, concrete)
			complete = complete && c
		}
		ret, rc := t.resolveGenericBase(sym.FnType.Return, names, concrete)
		return t.FnType(sym.FnType.Module, sym.FnType.FnName, sym.FnType.IsAnon, sym.FnType.HasDecl, params, ret, sym.FnType.Variadic), complete && rc

	case KindStruct, KindInterface, KindSumType:
		params := genericParamsOf(sym)
		if len(params) == 0 {
			return base, true
		}
		headConcrete := make([]TypeID, len(params))
		complete := true
		for i, p := range params {
			bound, ok := t.resolveBinding(p, names, concrete)
			if !ok {
				bound = t.builtins.Void
				complete = false
			}
			headConcrete[i] = bound
		}
		instName := t.CanonicalGenericInstName(base, headConcrete)
		if _, idx := t.FindSymAndIdx(instName); idx != NoTypeID {
			return idx, complete
		}
		return t.registerRaw(Symbol{
			Kind: KindGenericInst, Name: instName, Mangled: mangle(instName), Module: sym.Module,
			GenInst: GenericInstInfo{Parent: base, Concrete: append([]TypeID(nil), headConcrete...)},
		}), complete

	default:
		return base, true
	}
}

func (t *Table) substituteFunctionSig(fn Function, params []string, concrete []TypeID) Function {
	out := fn
	out.Params = make([]Param, len(fn.Params))
	for i, p := range fn.Params {
		out.Params[i] = p
		out.Params[i].Type = t.ResolveGenericToConcrete(p.Type, params, concrete)
	}
	out.Return = t.ResolveGenericToConcrete(fn.Return, params, concrete)
	out.GenericNames = nil
	return out
}

func (t *Table) attachSubstitutedMethods(instID, parentBase TypeID, params []string, concrete []TypeID) {
	parentSym := t.Sym(parentBase)
	methods := make([]Function, len(parentSym.Methods))
	for i, m := range parentSym.Methods {
		sig := t.substituteFunctionSig(m, params, concrete)
		sig.Receiver = instID
		sig.ConcreteSeen = [][]TypeID{append([]TypeID(nil), concrete...)}
		methods[i] = sig
	}
	t.symbols[instID.Idx()].Methods = methods
}

// materializeInto fills dst (already Kind-tagged as the parent's real
// kind) with substituted fields/variants/methods of parentBase, and
// attaches substituted methods under instID.
func (t *Table) materializeInto(instID, parentBase TypeID, params []string, concrete []TypeID) {
	parentSym := t.Sym(parentBase)
	dst := &t.symbols[instID.Idx()]
	switch parentSym.Kind {
	case KindStruct:
		fields := make([]Field, len(parentSym.Struct.Fields))
		for i, f := range parentSym.Struct.Fields {
			fields[i] = f
			fields[i].Type = t.ResolveGenericToConcrete(f.Type, params, concrete)
		}
		dst.Kind = KindStruct
		dst.Struct = StructInfo{
			Fields: fields, Embeds: parentSym.Struct.Embeds,
			ConcreteParams: append([]TypeID(nil), concrete...),
			IsUnion:        parentSym.Struct.IsUnion, IsHeap: parentSym.Struct.IsHeap,
		}
	case KindInterface:
		fields := make([]Field, len(parentSym.Interface.Fields))
		for i, f := range parentSym.Interface.Fields {
			fields[i] = f
			fields[i].Type = t.ResolveGenericToConcrete(f.Type, params, concrete)
		}
		methods := make([]Function, len(parentSym.Interface.Methods))
		for i, m := range parentSym.Interface.Methods {
			methods[i] = t.substituteFunctionSig(m, params, concrete)
		}
		dst.Kind = KindInterface
		dst.Interface = InterfaceInfo{
			Fields: fields, Methods: methods, Embeds: parentSym.Interface.Embeds,
			Implementing: make(map[TypeID]struct{}),
		}
	case KindSumType:
		variants := make([]TypeID, len(parentSym.SumType.Variants))
		for i, v := range parentSym.SumType.Variants {
			variants[i] = t.ResolveGenericToConcrete(v, params, concrete)
		}
		dst.Kind = KindSumType
		dst.SumType = SumTypeInfo{Variants: variants}
	default:
		return
	}
	t.attachSubstitutedMethods(instID, parentBase, params, concrete)
}

// UnwrapGenericType implements §4.1.6 unwrap_generic_type: full
// materialization of a generic struct/interface/sum-type head into a
// freshly registered concrete symbol, reusing one already registered
// under the same materialized name when present.
func (t *Table) UnwrapGenericType(typ TypeID, names []string, concrete []TypeID) TypeID {
	base := typ.Base()
	sym := t.Sym(base)
	params := genericParamsOf(sym)
	if len(params) == 0 {
		return t.ResolveGenericToConcrete(typ, names, concrete)
	}
	headConcrete := make([]TypeID, len(params))
	for i, p := range params {
		bound, ok := t.resolveBinding(p, names, concrete)
		if !ok {
			bound = t.builtins.Void
		}
		headConcrete[i] = bound
	}
	instName := t.CanonicalGenericInstName(base, headConcrete)
	if existing, idx := t.FindSymAndIdx(instName); idx != NoTypeID {
		if existing.Kind != KindGenericInst {
			return idx
		}
		t.materializeInto(idx, base, params, headConcrete)
		return idx
	}
	instID := t.registerRaw(Symbol{Name: instName, Mangled: mangle(instName), Module: sym.Module})
	t.materializeInto(instID, base, params, headConcrete)
	return instID
}

// GenericInstsToConcrete implements §4.1.6 generic_insts_to_concrete:
// sweeps every generic_inst placeholder produced while parsing textual
// instantiations like Foo<int> and rewrites it, in place, into the real
// struct/interface/sum-type instantiation it names. Rewriting in place
// (rather than allocating a fresh index) keeps every TypeID already
// referring to the placeholder valid.
func (t *Table) GenericInstsToConcrete() {
	for i := range t.symbols {
		sym := &t.symbols[i]
		if sym.Kind != KindGenericInst {
			continue
		}
		parentSym := t.Sym(sym.GenInst.Parent)
		params := genericParamsOf(parentSym)
		if len(params) == 0 {
			continue
		}
		concrete := sym.GenInst.Concrete
		id := indexToID(i)
		t.materializeInto(id, sym.GenInst.Parent, params, concrete)
	}
}

// AmbiguousInferenceError backs infer_fn_generic_types's "bound
// inconsistently across positions, and not resolvable by numeric
// promotion" case.
type AmbiguousInferenceError struct {
	Name string
}

func (e *AmbiguousInferenceError) Error() string {
	return "ambiguous inference for generic parameter " + e.Name
}

// UnboundGenericError backs infer_fn_generic_types's "parameter never
// appeared in a position that could bind it" case.
type UnboundGenericError struct {
	Name string
}

func (e *UnboundGenericError) Error() string {
	return "generic parameter " + e.Name + " could not be inferred"
}

func isGenericName(name string, names []string) bool {
	for _, n := range names {
		if n == name {
			return true
		}
	}
	return false
}

func (t *Table) bindGeneric(name string, candidate TypeID, bindings map[string]TypeID) error {
	existing, ok := bindings[name]
	if !ok {
		bindings[name] = candidate
		return nil
	}
	if existing == candidate {
		return nil
	}
	es, cs := t.Sym(existing), t.Sym(candidate)
	if es.Kind == KindPrimitive && cs.Kind == KindPrimitive &&
		(es.Primitive.IsInteger() || es.Primitive.IsFloat()) &&
		(cs.Primitive.IsInteger() || cs.Primitive.IsFloat()) {
		if cs.Primitive.BitWidth() > es.Primitive.BitWidth() || (cs.Primitive.IsFloat() && !es.Primitive.IsFloat()) {
			bindings[name] = candidate
		}
		return nil
	}
	return &AmbiguousInferenceError{Name: name}
}

func (t *Table) unifyGeneric(param, arg TypeID, names []string, bindings map[string]TypeID) error {
	pb := param.Base()
	psym := t.Sym(pb)
	if isGenericName(psym.Name, names) {
		return t.bindGeneric(psym.Name, arg.Base(), bindings)
	}
	ab := arg.Base()
	asym := t.Sym(ab)
	switch psym.Kind {
	case KindArray:
		if asym.Kind == KindArray {
			return t.unifyGeneric(psym.Array.Elem, asym.Array.Elem, names, bindings)
		}
	case KindArrayFixed:
		if asym.Kind == KindArrayFixed {
			return t.unifyGeneric(psym.ArrayFx.Elem, asym.ArrayFx.Elem, names, bindings)
		}
	case KindMap:
		if asym.Kind == KindMap {
			if err := t.unifyGeneric(psym.Map.Key, asym.Map.Key, names, bindings); err != nil {
				return err
			}
			return t.unifyGeneric(psym.Map.Value, asym.Map.Value, names, bindings)
		}
	case KindStruct, KindInterface, KindSumType:
		params := genericParamsOf(psym)
		argConcrete := concreteParamsOf(asym)
		for i := 0; i < len(params) && i < len(argConcrete); i++ {
			if isGenericName(params[i], names) {
				if err := t.bindGeneric(params[i], argConcrete[i], bindings); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

// InferFnGenericTypes implements the Table-assisted half of §4.1.6
// infer_fn_generic_types: given a called function's declared parameter
// types and the call's argument types, infers a binding for every name
// in genericNames. The checker supplies paramTypes/argTypes already
// walked from the AST; this function does the unification.
func (t *Table) InferFnGenericTypes(genericNames []string, paramTypes, argTypes []TypeID) (map[string]TypeID, error) {
	bindings := make(map[string]TypeID, len(genericNames))
	n := len(paramTypes)
	if len(argTypes) < n {
		n = len(argTypes)
	}
	for i := 0; i < n; i++ {
		if err := t.unifyGeneric(paramTypes[i], argTypes[i], genericNames, bindings); err != nil {
			return nil, err
		}
	}
	for _, name := range genericNames {
		if _, ok := bindings[name]; !ok {
			return nil, &UnboundGenericError{Name: name}
		}
	}
	return bindings, nil
}
