package types

import (
	"fmt"

	"fortio.org/safecast"
)

// Builtins holds the TypeIDs of the table's seeded primitive slots.
type Builtins struct {
	Void    TypeID
	Bool    TypeID
	I8, I16, I32, I64 TypeID
	U8, U16, U32, U64 TypeID
	F32, F64 TypeID
	Rune    TypeID
	String  TypeID
	Char    TypeID
	VoidPtr TypeID
	Error   TypeID // builtin `error` interface, referenced by §4.1.5's none/error rule
}

// PanicHandler is invoked on Type Table invariant violations (§4.1.8,
// §7): by default it aborts with a diagnostic, but a host embedding the
// table for tooling can install a recover-and-continue strategy instead.
// It is a Table field, not a package global — §9 forbids a process-wide
// table pointer, and the same discipline applies to how it fails.
type PanicHandler func(msg string)

// Table is the process-wide registry of types, functions, and module
// metadata described in spec §3. The driver owns one Table and passes
// it explicitly to the checker and to any downstream phase; the Table
// itself is never reached through a package-level variable.
type Table struct {
	symbols   []Symbol
	byName    map[string]TypeID // canonical name -> index, the §4.1.1 intern map
	unqual    map[string]TypeID // unqualified lookup for names declared in module `main`
	functions map[string]*Function
	builtins  Builtins

	genericInstCache map[string]TypeID // (parent, concrete-tuple) -> stable instantiation id, §4.1.6

	PanicHandler PanicHandler

	// EmbedDepthCutoff bounds both interface-embed expansion and the
	// struct/interface embed search (§4.1.4's find_method_from_embeds/
	// find_field_from_embeds) so a cyclic or pathologically deep embed
	// chain degrades to "not found" instead of recursing forever. A
	// driver wires this from sema.Limits.InterfaceEmbedDepthCutoff;
	// NewTable seeds a usable default for callers that build a Table
	// without a Checker.
	EmbedDepthCutoff int
}

func defaultPanicHandler(msg string) {
	panic("types: " + msg)
}

// NewTable constructs a Table seeded with the builtin primitive slots.
func NewTable() *Table {
	t := &Table{
		byName:           make(map[string]TypeID, 128),
		unqual:           make(map[string]TypeID, 128),
		functions:        make(map[string]*Function, 128),
		genericInstCache: make(map[string]TypeID, 64),
		PanicHandler:     defaultPanicHandler,
		EmbedDepthCutoff: 16,
	}
	t.symbols = append(t.symbols, Symbol{Kind: KindPlaceholder, Name: "<invalid>"})
	t.seedBuiltins()
	return t
}

func (t *Table) seedBuiltins() {
	prim := func(name string, p PrimitiveKind) TypeID {
		return t.registerRaw(Symbol{Kind: KindPrimitive, Name: name, Mangled: name, Primitive: p})
	}
	t.builtins.Void = prim("void", PrimVoid)
	t.builtins.Bool = prim("bool", PrimBool)
	t.builtins.I8 = prim("i8", PrimI8)
	t.builtins.I16 = prim("i16", PrimI16)
	t.builtins.I32 = prim("i32", PrimI32)
	t.builtins.I64 = prim("i64", PrimI64)
	t.builtins.U8 = prim("u8", PrimU8)
	t.builtins.U16 = prim("u16", PrimU16)
	t.builtins.U32 = prim("u32", PrimU32)
	t.builtins.U64 = prim("u64", PrimU64)
	t.builtins.F32 = prim("f32", PrimF32)
	t.builtins.F64 = prim("f64", PrimF64)
	t.builtins.Rune = prim("rune", PrimRune)
	t.builtins.String = prim("string", PrimString)
	t.builtins.Char = prim("char", PrimChar)
	t.builtins.VoidPtr = prim("voidptr", PrimVoidPtr)
	t.builtins.Error = t.registerRaw(Symbol{
		Kind: KindInterface, Name: "error", Mangled: "error",
		Interface: InterfaceInfo{
			Methods:      []Function{{Name: "msg", Return: t.builtins.String}},
			Implementing: make(map[TypeID]struct{}),
		},
	})
}

func (t *Table) Builtins() Builtins { return t.builtins }

// embedDepthCutoff is EmbedDepthCutoff with a floor, so a Table built as
// a bare literal (EmbedDepthCutoff left at its zero value) still
// terminates embed recursion rather than returning "not found" on the
// very first step.
func (t *Table) embedDepthCutoff() int {
	if t.EmbedDepthCutoff <= 0 {
		return 16
	}
	return t.EmbedDepthCutoff
}

// Snapshot returns every registered symbol indexed by its TypeID, for a
// downstream phase (the out-of-scope code generator, via internal/wrought's
// msgpack encoding) that needs the whole table rather than one lookup at a
// time. The slice is a copy; mutating it never affects the Table.
func (t *Table) Snapshot() []Symbol {
	out := make([]Symbol, len(t.symbols))
	copy(out, t.symbols)
	return out
}

func indexToID(i int) TypeID {
	v, err := safecast.Conv[uint32](i)
	if err != nil {
		panic(fmt.Errorf("types: symbol index overflow: %w", err))
	}
	return idOf(v)
}

// registerRaw appends sym unconditionally and indexes it by name. Used
// for builtins, by RegisterSym when the name is not yet registered, and
// by the composite and generic constructors after their own name lookup
// missed. RegisterSym's overwrite paths write the existing slot in place
// instead.
func (t *Table) registerRaw(sym Symbol) TypeID {
	id := indexToID(len(t.symbols))
	t.symbols = append(t.symbols, sym)
	if sym.Name != "" {
		t.byName[sym.Name] = id
		if sym.Module == "main" {
			t.unqual[unqualify(sym.Name)] = id
		}
	}
	return id
}

func unqualify(name string) string {
	for i := len(name) - 1; i >= 0; i-- {
		if name[i] == '.' {
			return name[i+1:]
		}
	}
	return name
}

// isBuiltinOverwriteWindow reports whether idx falls in the small
// set of builtin slots (string and error) that a user-mode declaration of the same name is permitted to
// overwrite in place, per §4.1.1.
func (t *Table) isBuiltinOverwriteWindow(idx TypeID) bool {
	return idx == t.builtins.String || idx == t.builtins.Error
}

// RegisterSym implements §4.1.1 register_sym: returns a stable TypeID
// for sym, deduplicating by canonical name.
func (t *Table) RegisterSym(sym Symbol) TypeID {
	existing, idx := t.FindSymAndIdx(sym.Name)
	if idx == NoTypeID {
		return t.registerRaw(sym)
	}
	if existing.Kind == KindPlaceholder {
		methods := t.symbols[idx.Idx()].Methods
		sym.Methods = append(methods, sym.Methods...)
		t.symbols[idx.Idx()] = sym
		return idx
	}
	if t.isBuiltinOverwriteWindow(idx) {
		keep := sym
		keep.Kind = existing.Kind
		t.symbols[idx.Idx()] = keep
		return idx
	}
	// Silent dedup: keep the earlier registration.
	return idx
}

// FindSymAndIdx implements §4.1.1 find_sym_and_idx. The returned Symbol
// is the zero value and idx is NoTypeID when name is unregistered.
func (t *Table) FindSymAndIdx(name string) (Symbol, TypeID) {
	if id, ok := t.byName[name]; ok {
		return t.symbols[id.Idx()], id
	}
	if id, ok := t.unqual[name]; ok {
		return t.symbols[id.Idx()], id
	}
	return Symbol{}, NoTypeID
}

// AddPlaceholderType implements §4.1.2 add_placeholder_type: registers
// a forward-declaration placeholder, inferring Module from the dotted
// prefix of name.
func (t *Table) AddPlaceholderType(name string, lang SourceLang) TypeID {
	mod := ""
	for i := len(name) - 1; i >= 0; i-- {
		if name[i] == '.' {
			mod = name[:i]
			break
		}
	}
	return t.RegisterSym(Symbol{Kind: KindPlaceholder, Name: name, Mangled: mangle(name), Module: mod, Lang: lang})
}

// Sym dereferences id directly, without following aliases. Panics
// (through PanicHandler) on an invalid index, per §4.1.8.
func (t *Table) Sym(id TypeID) *Symbol {
	idx := id.Idx()
	if idx == 0 || int(idx) >= len(t.symbols) {
		t.PanicHandler(fmt.Sprintf("sym(%d): invalid TypeID", id))
		return &t.symbols[0]
	}
	return &t.symbols[idx]
}

// RegisterFn implements §4.1.7 register_fn.
func (t *Table) RegisterFn(fqName string, fn Function) {
	t.functions[fqName] = &fn
}

func (t *Table) LookupFn(fqName string) (*Function, bool) {
	fn, ok := t.functions[fqName]
	return fn, ok
}

// RegisterFnGenericTypes implements §4.1.7
// register_fn_generic_types: it just ensures the per-fn concrete-types
// ledger exists.
func (t *Table) RegisterFnGenericTypes(fqName string) {
	if fn, ok := t.functions[fqName]; ok && fn.ConcreteSeen == nil {
		fn.ConcreteSeen = make([][]TypeID, 0, 4)
	}
}

// RegisterFnConcreteTypes implements §4.1.7 register_fn_concrete_types:
// returns true when this exact tuple had not previously been observed,
// which drives the checker's generic-recheck fixed-point loop.
func (t *Table) RegisterFnConcreteTypes(fqName string, tuple []TypeID) bool {
	fn, ok := t.functions[fqName]
	if !ok {
		return false
	}
	for _, seen := range fn.ConcreteSeen {
		if sameTuple(seen, tuple) {
			return false
		}
	}
	fn.ConcreteSeen = append(fn.ConcreteSeen, append([]TypeID(nil), tuple...))
	return true
}

func sameTuple(a, b []TypeID) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
