package types

import "wrought/internal/source"

// Field, Param, and EnumVariant names are plain strings: the Type Table
// is built by the checker after it has already resolved an ast string ID
// through the source Interner, and operates purely on canonical names
// from there on — it never holds an Interner of its own (see §9, no
// ambient/global state). Source positions keep using source.Span since
// those never need resolving, only comparing/reporting.

// Kind enumerates the closed set of type shapes the table can hold.
type Kind uint8

const (
	KindPlaceholder Kind = iota
	KindPrimitive
	KindLiteral
	KindAlias
	KindArray
	KindArrayFixed
	KindMap
	KindChan
	KindThread
	KindPromise
	KindMultiReturn
	KindFunction
	KindStruct
	KindInterface
	KindSumType
	KindAggregate
	KindEnum
	KindGenericInst
)

func (k Kind) String() string {
	switch k {
	case KindPlaceholder:
		return "placeholder"
	case KindPrimitive:
		return "primitive"
	case KindLiteral:
		return "literal"
	case KindAlias:
		return "alias"
	case KindArray:
		return "array"
	case KindArrayFixed:
		return "array_fixed"
	case KindMap:
		return "map"
	case KindChan:
		return "chan"
	case KindThread:
		return "thread"
	case KindPromise:
		return "promise"
	case KindMultiReturn:
		return "multi_return"
	case KindFunction:
		return "function"
	case KindStruct:
		return "struct"
	case KindInterface:
		return "interface"
	case KindSumType:
		return "sum_type"
	case KindAggregate:
		return "aggregate"
	case KindEnum:
		return "enum"
	case KindGenericInst:
		return "generic_inst"
	default:
		return "unknown"
	}
}

// SourceLang tags which foreign-call-compatibility ladder §4.2.4 applies
// to a function or to a type crossing an extern boundary.
type SourceLang uint8

const (
	LangNative SourceLang = iota
	LangC
	LangJS
)

// PrimitiveKind enumerates the built-in primitives, width-bearing where
// relevant.
type PrimitiveKind uint8

const (
	PrimVoid PrimitiveKind = iota
	PrimBool
	PrimI8
	PrimI16
	PrimI32
	PrimI64
	PrimU8
	PrimU16
	PrimU32
	PrimU64
	PrimF32
	PrimF64
	PrimRune
	PrimString
	PrimChar
	PrimVoidPtr
)

func (p PrimitiveKind) IsInteger() bool {
	switch p {
	case PrimI8, PrimI16, PrimI32, PrimI64, PrimU8, PrimU16, PrimU32, PrimU64:
		return true
	default:
		return false
	}
}

func (p PrimitiveKind) IsUnsigned() bool {
	switch p {
	case PrimU8, PrimU16, PrimU32, PrimU64:
		return true
	default:
		return false
	}
}

func (p PrimitiveKind) IsFloat() bool { return p == PrimF32 || p == PrimF64 }

// BitWidth returns the storage width in bits, or 0 when not applicable.
func (p PrimitiveKind) BitWidth() int {
	switch p {
	case PrimI8, PrimU8, PrimChar:
		return 8
	case PrimI16, PrimU16:
		return 16
	case PrimI32, PrimU32, PrimF32, PrimRune:
		return 32
	case PrimI64, PrimU64, PrimF64:
		return 64
	default:
		return 0
	}
}

type LiteralKind uint8

const (
	LiteralInt LiteralKind = iota
	LiteralFloat
)

// Field is one struct/interface field.
type Field struct {
	Name     string
	Type     TypeID
	IsMut    bool
	IsPub    bool
	IsGlobal bool
	Attrs    []string
	Default  int // opaque ast.ExprID, stored as int to avoid an ast import cycle
}

// Param is one function parameter.
type Param struct {
	Name     string
	Type     TypeID
	IsMut    bool
	IsHidden bool // receiver/closure-capture slots the surface language hides
}

// FuncAttr is the closed attribute set a function descriptor carries.
type FuncAttr uint16

const (
	FuncPub FuncAttr = 1 << iota
	FuncDeprecated
	FuncNoReturn
	FuncUnsafe
	FuncMain
	FuncTest
	FuncVariadic
	FuncKeepAlive
	FuncMethod
	FuncNoBody
	FuncInline
	FuncSingleImpl
	FuncConditional // carries `[if tag]`; IfTag names the build tag gating it
)

func (a FuncAttr) Has(f FuncAttr) bool { return a&f != 0 }

// Function is the descriptor for one registered function or method.
type Function struct {
	Name           string
	Module         string
	Receiver       TypeID // NoTypeID for free functions
	Params         []Param
	Return         TypeID
	Attrs          FuncAttr
	IfTag          string // set when Attrs.Has(FuncConditional); the `[if tag]` tag name
	Lang           SourceLang
	GenericNames   []string
	ConcreteSeen   [][]TypeID // observed instantiations, for fixed-point re-check
	Pos            source.Span
	DeprecatedMsg  string
}

// AliasInfo backs KindAlias: a single parent hop.
type AliasInfo struct {
	Parent TypeID
}

// ArrayInfo backs KindArray (dynamic array / slice).
type ArrayInfo struct {
	Elem   TypeID
	NrDims uint8
}

// ArrayFixedInfo backs KindArrayFixed.
type ArrayFixedInfo struct {
	Elem     TypeID
	Size     uint32
	SizeExpr int // opaque ast.ExprID when the size is a const expression
}

// MapInfo backs KindMap.
type MapInfo struct {
	Key   TypeID
	Value TypeID
}

// ChanInfo backs KindChan.
type ChanInfo struct {
	Elem  TypeID
	IsMut bool
}

// ReturnInfo backs KindThread and KindPromise.
type ReturnInfo struct {
	Return TypeID
}

// MultiReturnInfo backs KindMultiReturn.
type MultiReturnInfo struct {
	Types []TypeID
}

// FnTypeInfo backs KindFunction (a first-class function *type*, not the
// Function descriptor used for registered fn/method symbols — §4.1.2's
// `_fn_type` constructor produces one of these).
type FnTypeInfo struct {
	Module   string
	FnName   string
	IsAnon   bool
	HasDecl  bool
	Params   []TypeID
	Return   TypeID
	Variadic bool
}

// StructInfo backs KindStruct.
type StructInfo struct {
	Fields         []Field
	Embeds         []TypeID
	GenericParams  []string
	ConcreteParams []TypeID // set once this is itself a generic_inst head
	IsGeneric      bool
	IsUnion        bool
	IsHeap         bool
}

// InterfaceInfo backs KindInterface.
type InterfaceInfo struct {
	Fields        []Field
	Methods       []Function
	Embeds        []TypeID
	GenericParams []string
	Implementing  map[TypeID]struct{}
	SingleImpl    bool
	expanded      bool // memoized embed-expansion flag, §4.1.4/§9
}

// SumTypeInfo backs KindSumType.
type SumTypeInfo struct {
	Variants      []TypeID
	GenericParams []string
	commonFields  []Field // lazily computed, §9 "lazy sum-type field common-set"
	commonValid   bool
}

// AggregateInfo backs KindAggregate — the synthetic intersection type
// produced when a match/smartcast unions multiple sum-type variants.
type AggregateInfo struct {
	Members      []TypeID
	cachedMethod map[string]*Function
	cachedField  map[string]*Field
}

// EnumVariant is one (name, value) pair of an enum declaration.
type EnumVariant struct {
	Name  string
	Value int64
}

// EnumInfo backs KindEnum.
type EnumInfo struct {
	Variants []EnumVariant
	IsFlag   bool
	Base     TypeID // underlying integer type
}

// GenericInstInfo backs KindGenericInst: a parsed-but-not-yet-rewritten
// reference to Parent<Concrete...>, per §4.1.6's generic_insts_to_concrete.
type GenericInstInfo struct {
	Parent   TypeID
	Concrete []TypeID
}

// Symbol is the resolved metadata for one TypeID index. Kind-specific
// data lives in exactly one of the payload fields below; which one is
// valid is determined by Kind.
type Symbol struct {
	Name      string // canonical, human-readable, deterministic
	Mangled   string // C-identifier-safe
	Module    string
	Lang      SourceLang
	Kind      Kind
	Parent    TypeID // alias chains; also doubles as generic_inst's base head pointer cache
	Methods   []Function

	Primitive PrimitiveKind
	Literal   LiteralKind
	Alias     AliasInfo
	Array     ArrayInfo
	ArrayFx   ArrayFixedInfo
	Map       MapInfo
	Chan      ChanInfo
	Ret       ReturnInfo
	MultiRet  MultiReturnInfo
	FnType    FnTypeInfo
	Struct    StructInfo
	Interface InterfaceInfo
	SumType   SumTypeInfo
	Aggregate AggregateInfo
	Enum      EnumInfo
	GenInst   GenericInstInfo
}
