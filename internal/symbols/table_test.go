package symbols

import (
	"testing"

	"wrought/internal/source"
	"wrought/internal/types"
)

func TestDeclareAndLookupWalksAncestors(t *testing.T) {
	tb := NewTable(Hints{})
	file := tb.FileRoot(1, source.Span{})
	fn := tb.OpenScope(ScopeFunction, file, ScopeOwner{}, source.Span{})
	tb.Declare(file, Symbol{Name: "count", Kind: KindGlobal})

	id := tb.Lookup(fn, "count")
	if !id.IsValid() {
		t.Fatalf("expected to find count declared in an ancestor scope")
	}
}

func TestLookupPrefersInnermostDeclaration(t *testing.T) {
	tb := NewTable(Hints{})
	file := tb.FileRoot(1, source.Span{})
	block := tb.OpenScope(ScopeBlock, file, ScopeOwner{}, source.Span{})
	outer := tb.Declare(file, Symbol{Name: "x", Kind: KindLet})
	inner := tb.Declare(block, Symbol{Name: "x", Kind: KindLet})

	got := tb.Lookup(block, "x")
	if got != inner {
		t.Fatalf("expected the inner declaration to shadow the outer one")
	}
	if got == outer {
		t.Fatalf("lookup must not return the shadowed outer symbol")
	}
}

func TestLookupLocalDoesNotWalkAncestors(t *testing.T) {
	tb := NewTable(Hints{})
	file := tb.FileRoot(1, source.Span{})
	block := tb.OpenScope(ScopeBlock, file, ScopeOwner{}, source.Span{})
	tb.Declare(file, Symbol{Name: "y", Kind: KindLet})

	if tb.LookupLocal(block, "y").IsValid() {
		t.Fatalf("LookupLocal must not see declarations from an ancestor scope")
	}
}

func TestUnusedLocalsSkipsMarkedSymbols(t *testing.T) {
	tb := NewTable(Hints{})
	file := tb.FileRoot(1, source.Span{})
	fn := tb.OpenScope(ScopeFunction, file, ScopeOwner{}, source.Span{})
	used := tb.Declare(fn, Symbol{Name: "a", Kind: KindLet})
	tb.Declare(fn, Symbol{Name: "b", Kind: KindLet})
	tb.MarkUsed(used)

	unused := tb.UnusedLocals(fn)
	if len(unused) != 1 {
		t.Fatalf("expected exactly one unused local, got %d", len(unused))
	}
	if sym := tb.Symbols.Get(unused[0]); sym.Name != "b" {
		t.Fatalf("expected b to be reported unused, got %q", sym.Name)
	}
}

func TestSmartcastVisibleToNestedScopeAndGoneAfterSibling(t *testing.T) {
	tb := NewTable(Hints{})
	file := tb.FileRoot(1, source.Span{})
	branch := tb.OpenScope(ScopeBlock, file, ScopeOwner{}, source.Span{})
	key := SmartcastKey{VarName: "v"}
	refined := types.TypeID(42)
	tb.PushSmartcast(branch, key, refined)

	nested := tb.OpenScope(ScopeBlock, branch, ScopeOwner{}, source.Span{})
	got, ok := tb.LookupSmartcast(nested, key)
	if !ok || got != refined {
		t.Fatalf("expected the refinement to be visible in a nested scope, got %v, %v", got, ok)
	}

	sibling := tb.OpenScope(ScopeBlock, file, ScopeOwner{}, source.Span{})
	if _, ok := tb.LookupSmartcast(sibling, key); ok {
		t.Fatalf("a sibling branch must not observe another branch's smartcast refinement")
	}
}

func TestSmartcastSelectorKeyDistinguishesFields(t *testing.T) {
	tb := NewTable(Hints{})
	file := tb.FileRoot(1, source.Span{})
	a := SmartcastKey{OwnerExpr: "obj", OwnerType: types.TypeID(1), Field: "left"}
	b := SmartcastKey{OwnerExpr: "obj", OwnerType: types.TypeID(1), Field: "right"}
	tb.PushSmartcast(file, a, types.TypeID(10))

	if _, ok := tb.LookupSmartcast(file, b); ok {
		t.Fatalf("a refinement on obj.left must not be observed through the key for obj.right")
	}
	if got, ok := tb.LookupSmartcast(file, a); !ok || got != types.TypeID(10) {
		t.Fatalf("expected to find the refinement keyed on obj.left")
	}
}
