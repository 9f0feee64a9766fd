package symbols

import (
	"fmt"

	"fortio.org/safecast"

	"wrought/internal/ast"
	"wrought/internal/source"
)

// Hints provide optional capacity suggestions for the scope/symbol arenas.
type Hints struct{ Scopes, Symbols uint }

// Table aggregates the scope tree and symbol arena the checker builds
// while walking one program's files. One Table is shared across every
// file in a check_all(files) run so cross-file module lookups resolve
// through the same NameIndex maps.
type Table struct {
	Scopes  *Scopes
	Symbols *Symbols

	fileRoot map[ast.FileID]ScopeID
	modRoot  map[string]ScopeID
}

// NewTable builds a fresh table with optional capacity hints.
func NewTable(h Hints) *Table {
	scopeCap, err := safecast.Conv[uint32](h.Scopes)
	if err != nil {
		panic(fmt.Errorf("symbols: scope capacity overflow: %w", err))
	}
	symCap, err := safecast.Conv[uint32](h.Symbols)
	if err != nil {
		panic(fmt.Errorf("symbols: symbol capacity overflow: %w", err))
	}
	return &Table{
		Scopes:   NewScopes(scopeCap),
		Symbols:  NewSymbols(symCap),
		fileRoot: make(map[ast.FileID]ScopeID),
		modRoot:  make(map[string]ScopeID),
	}
}

// FileRoot returns (creating if needed) the file-level scope for file.
func (t *Table) FileRoot(file ast.FileID, span source.Span) ScopeID {
	if scope, ok := t.fileRoot[file]; ok {
		return scope
	}
	scope := t.Scopes.New(ScopeFile, NoScopeID, ScopeOwner{Kind: ScopeOwnerFile, File: file}, span)
	t.fileRoot[file] = scope
	return scope
}

// ModuleRoot returns (creating if needed) the scope for moduleKey,
// parented directly under fileScope the first time a file declares
// that module.
func (t *Table) ModuleRoot(moduleKey string, fileScope ScopeID, span source.Span) ScopeID {
	if scope, ok := t.modRoot[moduleKey]; ok {
		return scope
	}
	scope := t.Scopes.New(ScopeModule, fileScope, ScopeOwner{Kind: ScopeOwnerFile}, span)
	t.modRoot[moduleKey] = scope
	return scope
}

// OpenScope allocates a child scope of parent and returns its id.
func (t *Table) OpenScope(kind ScopeKind, parent ScopeID, owner ScopeOwner, span source.Span) ScopeID {
	return t.Scopes.New(kind, parent, owner, span)
}

// Declare registers sym in scope's NameIndex and returns its id. Name
// collision policy (shadowing vs. redeclaration error) is the
// checker's call, not the table's: Declare always allocates a fresh
// slot and appends to the bucket so every declaration is visible to
// diagnostics even when the checker later rejects the shadow.
func (t *Table) Declare(scope ScopeID, sym Symbol) SymbolID {
	id := t.Symbols.New(sym)
	s := t.Scopes.Get(scope)
	if s == nil {
		return id
	}
	s.Symbols = append(s.Symbols, id)
	s.NameIndex[sym.Name] = append(s.NameIndex[sym.Name], id)
	return id
}

// Lookup walks from scope up through its ancestors and returns the
// innermost declaration of name, or NoSymbolID when none is visible.
func (t *Table) Lookup(scope ScopeID, name string) SymbolID {
	for cur := scope; cur.IsValid(); {
		s := t.Scopes.Get(cur)
		if s == nil {
			return NoSymbolID
		}
		if ids := s.NameIndex[name]; len(ids) > 0 {
			return ids[len(ids)-1]
		}
		cur = s.Parent
	}
	return NoSymbolID
}

// LookupLocal looks up name only within scope itself, without walking
// to ancestors — used by the redeclaration checks of §4.2.1's pass 1-3.
func (t *Table) LookupLocal(scope ScopeID, name string) SymbolID {
	s := t.Scopes.Get(scope)
	if s == nil {
		return NoSymbolID
	}
	if ids := s.NameIndex[name]; len(ids) > 0 {
		return ids[len(ids)-1]
	}
	return NoSymbolID
}

// UnusedLocals implements the scope-walk of §4.2.1 pass 5: returns
// every KindLet/KindParam symbol declared directly in scope that either
// was never marked FlagUsed, or — for a `mut` declaration — was never
// marked FlagWritten. A `mut` binding that is only ever read is still
// "unused" in the sense that matters to the caller: it never needed the
// mut it was declared with.
func (t *Table) UnusedLocals(scope ScopeID) []SymbolID {
	s := t.Scopes.Get(scope)
	if s == nil {
		return nil
	}
	var unused []SymbolID
	for _, id := range s.Symbols {
		sym := t.Symbols.Get(id)
		if sym == nil {
			continue
		}
		if sym.Kind != KindLet && sym.Kind != KindParam {
			continue
		}
		if sym.Flags.Has(FlagMut) {
			if !sym.Flags.Has(FlagWritten) {
				unused = append(unused, id)
			}
			continue
		}
		if !sym.Flags.Has(FlagUsed) {
			unused = append(unused, id)
		}
	}
	return unused
}

// MarkUsed sets FlagUsed on id, idempotently.
func (t *Table) MarkUsed(id SymbolID) {
	if sym := t.Symbols.Get(id); sym != nil {
		sym.Flags |= FlagUsed
	}
}

// MarkWritten sets FlagWritten on id, idempotently.
func (t *Table) MarkWritten(id SymbolID) {
	if sym := t.Symbols.Get(id); sym != nil {
		sym.Flags |= FlagWritten
	}
}
