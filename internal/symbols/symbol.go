package symbols

import (
	"wrought/internal/ast"
	"wrought/internal/source"
	"wrought/internal/types"
)

// Kind classifies what a name in a scope's NameIndex refers to.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindModule
	KindImport
	KindFunction
	KindLet
	KindConst
	KindGlobal
	KindType
	KindParam
	KindGeneric
)

func (k Kind) String() string {
	switch k {
	case KindModule:
		return "module"
	case KindImport:
		return "import"
	case KindFunction:
		return "function"
	case KindLet:
		return "let"
	case KindConst:
		return "const"
	case KindGlobal:
		return "global"
	case KindType:
		return "type"
	case KindParam:
		return "param"
	case KindGeneric:
		return "generic"
	default:
		return "invalid"
	}
}

// Flags records the quick-check attributes §4.2.3's mutability rules
// consult on every assignment target.
type Flags uint16

const (
	FlagPub Flags = 1 << iota
	FlagMut
	FlagShared
	FlagImported
	FlagBuiltin
	FlagUsed // set the first time a read reaches this symbol, for the unused-variable pass
	FlagWritten // set the first time a plain `=` assignment targets this symbol after its declaration
)

func (f Flags) Has(bit Flags) bool { return f&bit != 0 }

// Decl pins a symbol back to the AST node that introduced it, for
// diagnostics.
type Decl struct {
	File ast.FileID
	Stmt ast.StmtID
	Expr ast.ExprID
}

// Symbol is one named entity visible in a scope.
type Symbol struct {
	Name  string
	Kind  Kind
	Scope ScopeID
	Span  source.Span
	Flags Flags
	Decl  Decl
	Type  types.TypeID
	// LockedName is non-empty only for KindLet symbols backing a lock/
	// rlock binding: the name as it must appear in an enclosing lock
	// list for a mutation to be permitted, per §4.2.3.
	LockedName string
	ModulePath string
}
