package symbols

import (
	"fmt"

	"fortio.org/safecast"

	"wrought/internal/source"
)

// Scopes stores every allocated scope in a dense slice-based arena.
type Scopes struct {
	data []Scope
}

// NewScopes creates an arena with an optional capacity hint.
func NewScopes(capacity uint32) *Scopes {
	if capacity == 0 {
		capacity = 32
	}
	return &Scopes{data: make([]Scope, 1, capacity+1)} // index 0 reserved for NoScopeID
}

// New allocates a scope and links it into its parent's Children.
func (s *Scopes) New(kind ScopeKind, parent ScopeID, owner ScopeOwner, span source.Span) ScopeID {
	value, err := safecast.Conv[uint32](len(s.data))
	if err != nil {
		panic(fmt.Errorf("symbols: scopes arena overflow: %w", err))
	}
	id := ScopeID(value)
	s.data = append(s.data, Scope{
		Kind:      kind,
		Parent:    parent,
		Owner:     owner,
		Span:      span,
		NameIndex: make(map[string][]SymbolID),
	})
	if parent.IsValid() {
		if ps := s.Get(parent); ps != nil {
			ps.Children = append(ps.Children, id)
		}
	}
	return id
}

// Get returns the scope pointer, or nil for an out-of-range or invalid id.
func (s *Scopes) Get(id ScopeID) *Scope {
	if !id.IsValid() || int(id) >= len(s.data) {
		return nil
	}
	return &s.data[id]
}

// Len reports the number of allocated scopes, excluding the sentinel.
func (s *Scopes) Len() int { return len(s.data) - 1 }

// Data exposes the backing slice (including the sentinel at index 0)
// for index-rebuild passes, mirroring how the checker walks it.
func (s *Scopes) Data() []Scope { return s.data }

// Symbols stores every declared Symbol in a dense slice-based arena.
type Symbols struct {
	data []Symbol
}

// NewSymbols creates an arena with an optional capacity hint.
func NewSymbols(capacity uint32) *Symbols {
	if capacity == 0 {
		capacity = 64
	}
	return &Symbols{data: make([]Symbol, 1, capacity+1)}
}

// New allocates sym and returns its id.
func (s *Symbols) New(sym Symbol) SymbolID {
	value, err := safecast.Conv[uint32](len(s.data))
	if err != nil {
		panic(fmt.Errorf("symbols: symbols arena overflow: %w", err))
	}
	id := SymbolID(value)
	s.data = append(s.data, sym)
	return id
}

// Get returns the symbol pointer, or nil for an out-of-range or invalid id.
func (s *Symbols) Get(id SymbolID) *Symbol {
	if !id.IsValid() || int(id) >= len(s.data) {
		return nil
	}
	return &s.data[id]
}

// Data exposes the backing slice, sentinel included.
func (s *Symbols) Data() []Symbol { return s.data }

// Len reports the number of declared symbols, excluding the sentinel.
func (s *Symbols) Len() int { return len(s.data) - 1 }
