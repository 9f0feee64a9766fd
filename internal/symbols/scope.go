package symbols

import (
	"wrought/internal/ast"
	"wrought/internal/source"
)

// ScopeKind enumerates the lexical scope categories §4.2.6's per-file
// check lifecycle pushes and pops.
type ScopeKind uint8

const (
	ScopeInvalid ScopeKind = iota
	ScopeFile              // artificial root per checked file
	ScopeModule            // module-level (top-level declarations)
	ScopeFunction          // function body
	ScopeBlock             // any nested block: if/match/loop/lock body
)

func (k ScopeKind) String() string {
	switch k {
	case ScopeFile:
		return "file"
	case ScopeModule:
		return "module"
	case ScopeFunction:
		return "function"
	case ScopeBlock:
		return "block"
	default:
		return "invalid"
	}
}

// ScopeOwnerKind distinguishes what kind of AST node opened a scope.
type ScopeOwnerKind uint8

const (
	ScopeOwnerUnknown ScopeOwnerKind = iota
	ScopeOwnerFile
	ScopeOwnerStmt
	ScopeOwnerExpr
)

// ScopeOwner references the AST construct a scope was opened for, kept
// around purely for diagnostics and for the checker's scope-by-node
// indexes; the Type Table never inspects it.
type ScopeOwner struct {
	Kind ScopeOwnerKind
	File ast.FileID
	Stmt ast.StmtID
	Expr ast.ExprID
}

// Scope models one lexical scope in a parent-child tree. Ordinary name
// lookup walks NameIndex up the Parent chain; Smartcasts holds the
// narrowing stack described in §9's "lazy sum-type field common-set"
// sibling concept — refinements visible only within this scope and
// its descendants.
type Scope struct {
	Kind       ScopeKind
	Parent     ScopeID
	Owner      ScopeOwner
	Span       source.Span
	NameIndex  map[string][]SymbolID
	Symbols    []SymbolID
	Children   []ScopeID
	Smartcasts []Smartcast
}
