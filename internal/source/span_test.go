package source

import "testing"

func TestSpanEmptyAndLen(t *testing.T) {
	s := Span{File: 0, Start: 5, End: 5}
	if !s.Empty() {
		t.Fatal("Empty() = false for a zero-width span")
	}
	if s.Len() != 0 {
		t.Fatalf("Len() = %d, want 0", s.Len())
	}
	s.End = 9
	if s.Empty() {
		t.Fatal("Empty() = true for a non-zero-width span")
	}
	if s.Len() != 4 {
		t.Fatalf("Len() = %d, want 4", s.Len())
	}
}

func TestSpanContains(t *testing.T) {
	s := Span{File: 0, Start: 10, End: 20}
	cases := []struct {
		off  uint32
		want bool
	}{
		{9, false}, {10, true}, {15, true}, {19, true}, {20, false},
	}
	for _, c := range cases {
		if got := s.Contains(c.off); got != c.want {
			t.Errorf("Contains(%d) = %v, want %v", c.off, got, c.want)
		}
	}
}

func TestSpanCoverSameFile(t *testing.T) {
	a := Span{File: 1, Start: 10, End: 20}
	b := Span{File: 1, Start: 5, End: 15}
	got := a.Cover(b)
	want := Span{File: 1, Start: 5, End: 20}
	if got != want {
		t.Fatalf("Cover() = %+v, want %+v", got, want)
	}
}

func TestSpanCoverDifferentFilesIsNoop(t *testing.T) {
	a := Span{File: 1, Start: 10, End: 20}
	b := Span{File: 2, Start: 0, End: 100}
	if got := a.Cover(b); got != a {
		t.Fatalf("Cover() across files = %+v, want %+v unchanged", got, a)
	}
}

func TestSpanShift(t *testing.T) {
	s := Span{File: 0, Start: 10, End: 20}
	if got := s.ShiftRight(5); got != (Span{File: 0, Start: 15, End: 25}) {
		t.Fatalf("ShiftRight(5) = %+v", got)
	}
	if got := s.ShiftRight(5).ShiftLeft(5); got != s {
		t.Fatalf("ShiftRight then ShiftLeft did not round-trip: got %+v, want %+v", got, s)
	}
}

func TestSpanString(t *testing.T) {
	s := Span{File: 3, Start: 1, End: 4}
	if got, want := s.String(), "3:1-4"; got != want {
		t.Fatalf("String() = %q, want %q", got, want)
	}
}
