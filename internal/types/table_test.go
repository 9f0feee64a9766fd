package types

import "testing"

func TestRegisterSymInterningIsIdempotent(t *testing.T) {
	tb := NewTable()
	a := tb.RegisterSym(Symbol{Kind: KindStruct, Name: "app.Point"})
	b := tb.RegisterSym(Symbol{Kind: KindStruct, Name: "app.Point"})
	if a != b {
		t.Fatalf("registering the same canonical name twice produced different ids: %v != %v", a, b)
	}
}

func TestRegisterSymOverwritesPlaceholder(t *testing.T) {
	tb := NewTable()
	ph := tb.AddPlaceholderType("app.Widget", LangNative)
	real := tb.RegisterSym(Symbol{Kind: KindStruct, Name: "app.Widget"})
	if ph != real {
		t.Fatalf("struct registration should overwrite the placeholder slot in place, got %v and %v", ph, real)
	}
	if tb.Sym(real).Kind != KindStruct {
		t.Fatalf("expected slot to now hold a struct, got %v", tb.Sym(real).Kind)
	}
}

func TestRegisterSymSilentDedupKeepsEarlier(t *testing.T) {
	tb := NewTable()
	first := tb.RegisterSym(Symbol{Kind: KindStruct, Name: "app.Dup", Module: "app"})
	tb.RegisterSym(Symbol{Kind: KindEnum, Name: "app.Dup", Module: "app"})
	if tb.Sym(first).Kind != KindStruct {
		t.Fatalf("later registration of the same name should not overwrite an existing non-placeholder symbol")
	}
}

func TestFindOrRegisterArrayIsStable(t *testing.T) {
	tb := NewTable()
	a := tb.FindOrRegisterArray(tb.Builtins().I32)
	b := tb.FindOrRegisterArray(tb.Builtins().I32)
	if a != b {
		t.Fatalf("array-of-i32 should intern to one id, got %v and %v", a, b)
	}
	if tb.Sym(a).Name != "[]i32" {
		t.Fatalf("unexpected canonical array name: %q", tb.Sym(a).Name)
	}
}

func TestArrayWithDimsNesting(t *testing.T) {
	tb := NewTable()
	nested := tb.ArrayWithDims(tb.Builtins().String, 2)
	if tb.Sym(nested).Name != "[][]string" {
		t.Fatalf("expected [][]string, got %q", tb.Sym(nested).Name)
	}
}

func TestFinalSymFollowsOneAliasHop(t *testing.T) {
	tb := NewTable()
	parent := tb.RegisterSym(Symbol{Kind: KindStruct, Name: "app.Base"})
	alias := tb.RegisterSym(Symbol{Kind: KindAlias, Name: "app.Base2", Alias: AliasInfo{Parent: parent}})
	if got := tb.FinalSym(alias); got.Name != "app.Base" {
		t.Fatalf("FinalSym should resolve through the alias hop, got %q", got.Name)
	}
}

func TestUnaliasNumTypeOnlyUnwrapsNumeric(t *testing.T) {
	tb := NewTable()
	numAlias := tb.RegisterSym(Symbol{Kind: KindAlias, Name: "app.MyInt", Alias: AliasInfo{Parent: tb.Builtins().I32}})
	if got := tb.UnaliasNumType(numAlias); got != tb.Builtins().I32 {
		t.Fatalf("expected numeric alias to unwrap to i32, got %v", tb.Sym(got).Name)
	}

	structType := tb.RegisterSym(Symbol{Kind: KindStruct, Name: "app.Base"})
	strAlias := tb.RegisterSym(Symbol{Kind: KindAlias, Name: "app.BaseAlias", Alias: AliasInfo{Parent: structType}})
	if got := tb.UnaliasNumType(strAlias); got != strAlias {
		t.Fatalf("non-numeric alias must not unwrap")
	}
}

func TestFindMethodWalksAliasChain(t *testing.T) {
	tb := NewTable()
	base := tb.RegisterSym(Symbol{
		Kind: KindStruct, Name: "app.Base",
		Methods: []Function{{Name: "greet", Return: tb.Builtins().String}},
	})
	alias := tb.RegisterSym(Symbol{Kind: KindAlias, Name: "app.Wrapper", Alias: AliasInfo{Parent: base}})
	fn, err := tb.FindMethod(alias, "greet")
	if err != nil || fn == nil {
		t.Fatalf("expected to find greet through the alias chain, got %v, %v", fn, err)
	}
}

func TestFindMethodMissingIsStructuredError(t *testing.T) {
	tb := NewTable()
	base := tb.RegisterSym(Symbol{Kind: KindStruct, Name: "app.Empty"})
	fn, _ := tb.FindMethod(base, "nope")
	if fn != nil {
		t.Fatalf("expected no method, got %v", fn)
	}
	member := tb.RegisterSym(Symbol{Kind: KindStruct, Name: "app.Member"})
	agg := tb.RegisterSym(Symbol{Kind: KindAggregate, Name: "app.Agg", Aggregate: AggregateInfo{Members: []TypeID{member}}})
	_, err := tb.FindMethod(agg, "nope")
	if _, ok := err.(*MissingMemberError); !ok {
		t.Fatalf("expected a MissingMemberError, got %T", err)
	}
}

func TestFindMethodFromEmbedsReportsAmbiguity(t *testing.T) {
	tb := NewTable()
	left := tb.RegisterSym(Symbol{Kind: KindStruct, Name: "app.Left", Methods: []Function{{Name: "dup", Return: tb.Builtins().Void}}})
	right := tb.RegisterSym(Symbol{Kind: KindStruct, Name: "app.Right", Methods: []Function{{Name: "dup", Return: tb.Builtins().Bool}}})
	owner := tb.RegisterSym(Symbol{Kind: KindStruct, Name: "app.Owner", Struct: StructInfo{Embeds: []TypeID{left, right}}})
	_, err := tb.FindMethodFromEmbeds(owner, "dup")
	if _, ok := err.(*AmbiguousError); !ok {
		t.Fatalf("expected an AmbiguousError, got %v (%T)", err, err)
	}
}

func TestAggregateFieldIntersectionCaches(t *testing.T) {
	tb := NewTable()
	v1 := tb.RegisterSym(Symbol{Kind: KindStruct, Name: "app.V1", Struct: StructInfo{Fields: []Field{{Name: "id", Type: tb.Builtins().I32}}}})
	v2 := tb.RegisterSym(Symbol{Kind: KindStruct, Name: "app.V2", Struct: StructInfo{Fields: []Field{{Name: "id", Type: tb.Builtins().I32}}}})
	agg := tb.RegisterSym(Symbol{Kind: KindAggregate, Name: "app.Agg", Aggregate: AggregateInfo{Members: []TypeID{v1, v2}}})
	f, err := tb.FindField(agg, "id")
	if err != nil || f == nil {
		t.Fatalf("expected shared field id, got %v, %v", f, err)
	}
	if tb.Sym(agg).Aggregate.cachedField["id"] != f {
		t.Fatalf("expected the lookup result to populate the aggregate field cache")
	}
}

func TestSumTypeCommonFieldIsLazilyComputed(t *testing.T) {
	tb := NewTable()
	v1 := tb.RegisterSym(Symbol{Kind: KindStruct, Name: "app.A", Struct: StructInfo{Fields: []Field{{Name: "tag", Type: tb.Builtins().String}}}})
	v2 := tb.RegisterSym(Symbol{Kind: KindStruct, Name: "app.B", Struct: StructInfo{Fields: []Field{{Name: "tag", Type: tb.Builtins().String}, {Name: "extra", Type: tb.Builtins().I32}}}})
	sum := tb.RegisterSym(Symbol{Kind: KindSumType, Name: "app.Either", SumType: SumTypeInfo{Variants: []TypeID{v1, v2}}})
	if tb.Sym(sum).SumType.commonValid {
		t.Fatalf("common fields must not be computed before first use")
	}
	f, err := tb.FindField(sum, "tag")
	if err != nil || f == nil {
		t.Fatalf("expected to find the common field tag, got %v, %v", f, err)
	}
	if !tb.Sym(sum).SumType.commonValid {
		t.Fatalf("expected common fields to be memoized after first lookup")
	}
	if _, err := tb.FindField(sum, "extra"); err == nil {
		t.Fatalf("extra only appears on one variant and must not be treated as common")
	}
}

func TestDoesTypeImplementInterface(t *testing.T) {
	tb := NewTable()
	iface := tb.RegisterSym(Symbol{
		Kind: KindInterface, Name: "app.Greeter",
		Interface: InterfaceInfo{Methods: []Function{{Name: "greet", Return: tb.Builtins().String}}, Implementing: map[TypeID]struct{}{}},
	})
	impl := tb.RegisterSym(Symbol{
		Kind: KindStruct, Name: "app.Person",
		Methods: []Function{{Name: "greet", Return: tb.Builtins().String}},
	})
	if !tb.DoesTypeImplementInterface(impl, iface) {
		t.Fatalf("expected app.Person to implement app.Greeter")
	}
	if _, ok := tb.Sym(iface).Interface.Implementing[impl]; !ok {
		t.Fatalf("expected implementing set to record app.Person")
	}
}

func TestDoesTypeImplementInterfaceRejectsInterfaceToInterface(t *testing.T) {
	tb := NewTable()
	iface := tb.RegisterSym(Symbol{Kind: KindInterface, Name: "app.A", Interface: InterfaceInfo{Implementing: map[TypeID]struct{}{}}})
	other := tb.RegisterSym(Symbol{Kind: KindInterface, Name: "app.B"})
	if tb.DoesTypeImplementInterface(other, iface) {
		t.Fatalf("one interface must never be recorded as implementing another")
	}
}

func TestResolveGenericToConcreteSubstitutesArrayElem(t *testing.T) {
	tb := NewTable()
	tParam := tb.RegisterSym(Symbol{Kind: KindPlaceholder, Name: "T"})
	generic := tb.FindOrRegisterArray(tParam)
	got := tb.ResolveGenericToConcrete(generic, []string{"T"}, []TypeID{tb.Builtins().I32})
	if tb.Sym(got.Base()).Name != "[]i32" {
		t.Fatalf("expected []i32, got %q", tb.Sym(got.Base()).Name)
	}
	if got.HasFlag(FlagGeneric) {
		t.Fatalf("fully substituted type should have its generic flag cleared")
	}
}

func TestResolveGenericToConcreteLeavesUnboundParamsFlagged(t *testing.T) {
	tb := NewTable()
	tParam := tb.RegisterSym(Symbol{Kind: KindPlaceholder, Name: "T"})
	uParam := tb.RegisterSym(Symbol{Kind: KindPlaceholder, Name: "U"})
	pair := tb.RegisterSym(Symbol{
		Kind: KindMultiReturn, Name: "app.pair_ph",
		MultiRet: MultiReturnInfo{Types: []TypeID{tParam, uParam}},
	}).SetFlag(FlagGeneric)
	got := tb.ResolveGenericToConcrete(pair, []string{"T"}, []TypeID{tb.Builtins().I32})
	if !got.HasFlag(FlagGeneric) {
		t.Fatalf("U is still unbound, the generic flag must remain set")
	}
}

func TestUnwrapGenericTypeMaterializesFields(t *testing.T) {
	tb := NewTable()
	tParam := tb.RegisterSym(Symbol{Kind: KindPlaceholder, Name: "T"})
	box := tb.RegisterSym(Symbol{
		Kind: KindStruct, Name: "app.Box", Module: "app",
		Struct: StructInfo{GenericParams: []string{"T"}, Fields: []Field{{Name: "value", Type: tParam}}},
	})
	inst := tb.UnwrapGenericType(box, []string{"T"}, []TypeID{tb.Builtins().I32})
	sym := tb.Sym(inst)
	if sym.Kind != KindStruct {
		t.Fatalf("expected a materialized struct, got %v", sym.Kind)
	}
	if sym.Struct.Fields[0].Type != tb.Builtins().I32 {
		t.Fatalf("expected field value to be substituted to i32")
	}
	again := tb.UnwrapGenericType(box, []string{"T"}, []TypeID{tb.Builtins().I32})
	if again != inst {
		t.Fatalf("materializing the same instantiation twice must return the same id")
	}
}

func TestGenericInstsToConcreteRewritesInPlace(t *testing.T) {
	tb := NewTable()
	tParam := tb.RegisterSym(Symbol{Kind: KindPlaceholder, Name: "T"})
	box := tb.RegisterSym(Symbol{
		Kind: KindStruct, Name: "app.Box", Module: "app",
		Struct: StructInfo{GenericParams: []string{"T"}, Fields: []Field{{Name: "value", Type: tParam}}},
	})
	placeholder := tb.ResolveGenericToConcrete(box, []string{"T"}, []TypeID{tb.Builtins().String})
	if tb.Sym(placeholder.Base()).Kind != KindGenericInst {
		t.Fatalf("expected the parser-produced head to still be a generic_inst placeholder")
	}
	tb.GenericInstsToConcrete()
	if tb.Sym(placeholder.Base()).Kind != KindStruct {
		t.Fatalf("expected the sweep to rewrite the placeholder in place to a real struct")
	}
	if tb.Sym(placeholder.Base()).Struct.Fields[0].Type != tb.Builtins().String {
		t.Fatalf("expected the field to be substituted to string after rewriting")
	}
}

func TestInferFnGenericTypesDirectBinding(t *testing.T) {
	tb := NewTable()
	tParam := tb.RegisterSym(Symbol{Kind: KindPlaceholder, Name: "T"})
	bindings, err := tb.InferFnGenericTypes([]string{"T"}, []TypeID{tParam}, []TypeID{tb.Builtins().I32})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if bindings["T"] != tb.Builtins().I32 {
		t.Fatalf("expected T=i32, got %v", tb.Sym(bindings["T"]).Name)
	}
}

func TestInferFnGenericTypesUnwrapsArrayLevel(t *testing.T) {
	tb := NewTable()
	tParam := tb.RegisterSym(Symbol{Kind: KindPlaceholder, Name: "T"})
	paramArr := tb.FindOrRegisterArray(tParam)
	argArr := tb.FindOrRegisterArray(tb.Builtins().String)
	bindings, err := tb.InferFnGenericTypes([]string{"T"}, []TypeID{paramArr}, []TypeID{argArr})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if bindings["T"] != tb.Builtins().String {
		t.Fatalf("expected T=string, got %v", tb.Sym(bindings["T"]).Name)
	}
}

func TestInferFnGenericTypesPromotesNumericMismatch(t *testing.T) {
	tb := NewTable()
	tParam := tb.RegisterSym(Symbol{Kind: KindPlaceholder, Name: "T"})
	bindings, err := tb.InferFnGenericTypes(
		[]string{"T"},
		[]TypeID{tParam, tParam},
		[]TypeID{tb.Builtins().I32, tb.Builtins().I64},
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if bindings["T"] != tb.Builtins().I64 {
		t.Fatalf("expected promotion to the wider type i64, got %v", tb.Sym(bindings["T"]).Name)
	}
}

func TestInferFnGenericTypesAmbiguousOnIncompatibleMismatch(t *testing.T) {
	tb := NewTable()
	tParam := tb.RegisterSym(Symbol{Kind: KindPlaceholder, Name: "T"})
	owner := tb.RegisterSym(Symbol{Kind: KindStruct, Name: "app.Owner"})
	_, err := tb.InferFnGenericTypes(
		[]string{"T"},
		[]TypeID{tParam, tParam},
		[]TypeID{tb.Builtins().I32, owner},
	)
	if _, ok := err.(*AmbiguousInferenceError); !ok {
		t.Fatalf("expected an AmbiguousInferenceError, got %v (%T)", err, err)
	}
}

func TestInferFnGenericTypesUnboundIsHardError(t *testing.T) {
	tb := NewTable()
	_, err := tb.InferFnGenericTypes([]string{"U"}, nil, nil)
	if _, ok := err.(*UnboundGenericError); !ok {
		t.Fatalf("expected an UnboundGenericError, got %v (%T)", err, err)
	}
}

func TestSymPanicsThroughHandlerOnInvalidIndex(t *testing.T) {
	tb := NewTable()
	var called bool
	tb.PanicHandler = func(msg string) { called = true }
	_ = tb.Sym(idOf(999999))
	if !called {
		t.Fatalf("expected the configured panic handler to be invoked for an out-of-range TypeID")
	}
}
