package ast

import "wrought/internal/source"

// Shared declaration shapes referenced from both statement-level and
// top-level declarations: field/param lists, generic parameter lists,
// enum variants, interface method signatures, and import symbols.

type GenericParam struct {
	Name   source.StringID
	Bounds []TypeID // contract/interface bounds this parameter must satisfy
	Span   source.Span
}

type FieldDecl struct {
	Name    source.StringID
	Type    TypeID
	Default ExprID // NoExprID when the field has no default value
	Attrs   AttrSet
	IsPub   bool
	Span    source.Span
}

type ParamDecl struct {
	Name     source.StringID
	Type     TypeID
	Default  ExprID
	IsMut    bool
	Variadic bool
	Span     source.Span
}

type ReceiverDecl struct {
	Name  source.StringID
	Type  TypeID
	IsMut bool
	Span  source.Span
}

type FnSigDecl struct {
	Name       source.StringID
	Params     []ParamDecl
	ReturnType TypeID
	Generics   []GenericParam
	Span       source.Span
}

type EnumVariant struct {
	Name  source.StringID
	Value ExprID // explicit discriminant, NoExprID when auto-assigned
	Attrs AttrSet
	Span  source.Span
}

type ImportSymbol struct {
	Name  source.StringID
	Alias source.StringID // NoStringID when not aliased
	Span  source.Span
}
