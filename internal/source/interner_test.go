package source

import "testing"

func TestInternerNoStringIDIsEmptyString(t *testing.T) {
	in := NewInterner()
	s, ok := in.Lookup(NoStringID)
	if !ok || s != "" {
		t.Fatalf("Lookup(NoStringID) = %q, %v, want \"\", true", s, ok)
	}
	if !in.Has(NoStringID) {
		t.Fatal("Has(NoStringID) = false, want true")
	}
}

func TestInternerDedup(t *testing.T) {
	in := NewInterner()
	a := in.Intern("foo")
	b := in.Intern("foo")
	if a != b {
		t.Fatalf("Intern(%q) twice gave %d and %d, want the same id", "foo", a, b)
	}
	if a == NoStringID {
		t.Fatal("Intern of a non-empty string returned NoStringID")
	}
}

func TestInternerRoundTrip(t *testing.T) {
	in := NewInterner()
	id := in.Intern("module.Type")
	got, ok := in.Lookup(id)
	if !ok || got != "module.Type" {
		t.Fatalf("Lookup(%d) = %q, %v, want %q, true", id, got, ok, "module.Type")
	}
}

func TestInternerInternBytesMatchesIntern(t *testing.T) {
	in := NewInterner()
	a := in.Intern("bar")
	b := in.InternBytes([]byte("bar"))
	if a != b {
		t.Fatalf("Intern and InternBytes disagree on id for %q: %d vs %d", "bar", a, b)
	}
}

func TestInternerLookupOutOfRange(t *testing.T) {
	in := NewInterner()
	if _, ok := in.Lookup(StringID(999)); ok {
		t.Fatal("Lookup of an unregistered id returned ok=true")
	}
}

func TestInternerMustLookupPanicsOnInvalidID(t *testing.T) {
	in := NewInterner()
	defer func() {
		if recover() == nil {
			t.Fatal("MustLookup did not panic on an invalid id")
		}
	}()
	in.MustLookup(StringID(999))
}

func TestInternerCopiesCallerBuffer(t *testing.T) {
	in := NewInterner()
	buf := []byte("mutate-me")
	id := in.InternBytes(buf)
	buf[0] = 'X'
	got := in.MustLookup(id)
	if got != "mutate-me" {
		t.Fatalf("Interner aliased the caller's buffer: got %q, want %q", got, "mutate-me")
	}
}

func TestInternerLenCountsSentinel(t *testing.T) {
	in := NewInterner()
	if in.Len() != 1 {
		t.Fatalf("Len() on an empty interner = %d, want 1 (the NoStringID slot)", in.Len())
	}
	in.Intern("a")
	in.Intern("b")
	in.Intern("a") // dedup, should not grow Len
	if in.Len() != 3 {
		t.Fatalf("Len() after two unique interns = %d, want 3", in.Len())
	}
}

func TestInternerSnapshotIsDefensiveCopy(t *testing.T) {
	in := NewInterner()
	in.Intern("a")
	snap := in.Snapshot()
	snap[0] = "tampered"
	if s, _ := in.Lookup(NoStringID); s != "" {
		t.Fatalf("mutating Snapshot's result affected the interner: Lookup(0) = %q", s)
	}
}
