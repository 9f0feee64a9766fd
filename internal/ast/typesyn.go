package ast

import "wrought/internal/source"

// TypeExprKind enumerates the syntactic shapes a type annotation can take
// before the checker resolves it to a types.TypeID. This is the "type
// reference" half of the AST; Expr/Stmt below are the "value" half.
type TypeExprKind uint8

const (
	TypeExprPath    TypeExprKind = iota // Name, Name<A, B>, pkg.Name
	TypeExprPointer                     // *T
	TypeExprRef                         // &T / &mut T
	TypeExprArray                       // []T or [N]T
	TypeExprMap                         // map[K]V
	TypeExprChan                        // chan T / chan mut T
	TypeExprFn                          // fn (A, B) R
	TypeExprTuple                       // (A, B)
	TypeExprOptional                    // ?T
	TypeExprVariadic                    // ...T
	TypeExprShared                      // shared T
)

type TypeExpr struct {
	Kind    TypeExprKind
	Span    source.Span
	Payload PayloadID
}

type TypeExprPathData struct {
	ModulePrefix source.StringID // NoStringID when unqualified
	Name         source.StringID
	Generics     []TypeID
}

type TypeExprUnaryData struct {
	Inner TypeID
	Mut   bool // &mut T, chan mut T
}

type TypeExprArrayData struct {
	Elem      TypeID
	Fixed     bool
	Size      uint32
	SizeExpr  ExprID // set when the size is a const expression, not a literal
}

type TypeExprMapData struct {
	Key   TypeID
	Value TypeID
}

type TypeExprFnData struct {
	Params []TypeID
	Return TypeID
}

type TypeExprTupleData struct {
	Elems []TypeID
}

type TypeSyn struct {
	Arena  *Arena[TypeExpr]
	Paths  *Arena[TypeExprPathData]
	Unary  *Arena[TypeExprUnaryData]
	Arrays *Arena[TypeExprArrayData]
	Maps   *Arena[TypeExprMapData]
	Fns    *Arena[TypeExprFnData]
	Tuples *Arena[TypeExprTupleData]
}

func NewTypeSyn(capHint uint) *TypeSyn {
	return &TypeSyn{
		Arena:  NewArena[TypeExpr](capHint),
		Paths:  NewArena[TypeExprPathData](capHint),
		Unary:  NewArena[TypeExprUnaryData](capHint),
		Arrays: NewArena[TypeExprArrayData](capHint),
		Maps:   NewArena[TypeExprMapData](capHint),
		Fns:    NewArena[TypeExprFnData](capHint),
		Tuples: NewArena[TypeExprTupleData](capHint),
	}
}

func (s *TypeSyn) Get(id TypeID) *TypeExpr { return s.Arena.Get(uint32(id)) }

func (s *TypeSyn) new(kind TypeExprKind, span source.Span, payload PayloadID) TypeID {
	return TypeID(s.Arena.Allocate(TypeExpr{Kind: kind, Span: span, Payload: payload}))
}

func (s *TypeSyn) NewPath(span source.Span, modPrefix, name source.StringID, generics []TypeID) TypeID {
	p := PayloadID(s.Paths.Allocate(TypeExprPathData{ModulePrefix: modPrefix, Name: name, Generics: generics}))
	return s.new(TypeExprPath, span, p)
}

func (s *TypeSyn) Path(id TypeID) (*TypeExprPathData, bool) {
	e := s.Get(id)
	if e == nil || e.Kind != TypeExprPath {
		return nil, false
	}
	return s.Paths.Get(uint32(e.Payload)), true
}

func (s *TypeSyn) NewUnary(kind TypeExprKind, span source.Span, inner TypeID, mut bool) TypeID {
	p := PayloadID(s.Unary.Allocate(TypeExprUnaryData{Inner: inner, Mut: mut}))
	return s.new(kind, span, p)
}

func (s *TypeSyn) Unary_(id TypeID) (*TypeExprUnaryData, bool) {
	e := s.Get(id)
	if e == nil {
		return nil, false
	}
	switch e.Kind {
	case TypeExprPointer, TypeExprRef, TypeExprChan, TypeExprOptional, TypeExprVariadic, TypeExprShared:
		return s.Unary.Get(uint32(e.Payload)), true
	default:
		return nil, false
	}
}

func (s *TypeSyn) NewArray(span source.Span, elem TypeID, fixed bool, size uint32, sizeExpr ExprID) TypeID {
	p := PayloadID(s.Arrays.Allocate(TypeExprArrayData{Elem: elem, Fixed: fixed, Size: size, SizeExpr: sizeExpr}))
	return s.new(TypeExprArray, span, p)
}

func (s *TypeSyn) Array(id TypeID) (*TypeExprArrayData, bool) {
	e := s.Get(id)
	if e == nil || e.Kind != TypeExprArray {
		return nil, false
	}
	return s.Arrays.Get(uint32(e.Payload)), true
}

func (s *TypeSyn) NewMap(span source.Span, key, value TypeID) TypeID {
	p := PayloadID(s.Maps.Allocate(TypeExprMapData{Key: key, Value: value}))
	return s.new(TypeExprMap, span, p)
}

func (s *TypeSyn) Map(id TypeID) (*TypeExprMapData, bool) {
	e := s.Get(id)
	if e == nil || e.Kind != TypeExprMap {
		return nil, false
	}
	return s.Maps.Get(uint32(e.Payload)), true
}

func (s *TypeSyn) NewFn(span source.Span, params []TypeID, ret TypeID) TypeID {
	p := PayloadID(s.Fns.Allocate(TypeExprFnData{Params: params, Return: ret}))
	return s.new(TypeExprFn, span, p)
}

func (s *TypeSyn) Fn(id TypeID) (*TypeExprFnData, bool) {
	e := s.Get(id)
	if e == nil || e.Kind != TypeExprFn {
		return nil, false
	}
	return s.Fns.Get(uint32(e.Payload)), true
}

func (s *TypeSyn) NewTuple(span source.Span, elems []TypeID) TypeID {
	p := PayloadID(s.Tuples.Allocate(TypeExprTupleData{Elems: elems}))
	return s.new(TypeExprTuple, span, p)
}

func (s *TypeSyn) Tuple(id TypeID) (*TypeExprTupleData, bool) {
	e := s.Get(id)
	if e == nil || e.Kind != TypeExprTuple {
		return nil, false
	}
	return s.Tuples.Get(uint32(e.Payload)), true
}
