package symbols

import "wrought/internal/types"

// SmartcastKey identifies what a narrowing refines, per §9's smartcast
// representation. Ident-based casts (`if x is Foo`) fill only VarName;
// selector-based casts (`if obj.field is Foo`) fill OwnerExpr/OwnerType/
// Field instead, keyed off the owning expression's printed form and
// static type since the AST node identity isn't available to this
// package.
type SmartcastKey struct {
	VarName   string
	OwnerExpr string
	OwnerType types.TypeID
	Field     string
}

// Smartcast is one entry of a scope's narrowing stack: the key being
// refined, and the type it is currently refined to.
type Smartcast struct {
	Key     SmartcastKey
	Refined types.TypeID
}

// PushSmartcast records a refinement on entry to a positive `is`/`as`/
// match-arm branch. The refinement is visible to scope and any scope
// nested under it until the checker leaves scope.
func (t *Table) PushSmartcast(scope ScopeID, key SmartcastKey, refined types.TypeID) {
	s := t.Scopes.Get(scope)
	if s == nil {
		return
	}
	s.Smartcasts = append(s.Smartcasts, Smartcast{Key: key, Refined: refined})
}

// LookupSmartcast walks from scope up through its ancestors, most
// specific first, returning the innermost matching refinement. The
// search naturally stops seeing a refinement once the checker leaves
// the scope that pushed it, since that scope is no longer an ancestor
// of whatever scope is current next.
func (t *Table) LookupSmartcast(scope ScopeID, key SmartcastKey) (types.TypeID, bool) {
	for cur := scope; cur.IsValid(); {
		s := t.Scopes.Get(cur)
		if s == nil {
			return types.NoTypeID, false
		}
		for i := len(s.Smartcasts) - 1; i >= 0; i-- {
			if s.Smartcasts[i].Key == key {
				return s.Smartcasts[i].Refined, true
			}
		}
		cur = s.Parent
	}
	return types.NoTypeID, false
}
