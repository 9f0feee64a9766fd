package source

import "testing"

func TestNormalizeCRLF(t *testing.T) {
	out, changed := normalizeCRLF([]byte("a\r\nb\r\nc"))
	if !changed || string(out) != "a\nb\nc" {
		t.Fatalf("normalizeCRLF = %q, %v, want %q, true", out, changed, "a\nb\nc")
	}
	out, changed = normalizeCRLF([]byte("no-crlf-here"))
	if changed || string(out) != "no-crlf-here" {
		t.Fatalf("normalizeCRLF on clean input changed = %v, out = %q", changed, out)
	}
}

func TestNormalizeCRLFLeavesLoneCR(t *testing.T) {
	out, _ := normalizeCRLF([]byte("a\rb"))
	if string(out) != "a\rb" {
		t.Fatalf("normalizeCRLF touched a lone \\r: got %q", out)
	}
}

func TestRemoveBOM(t *testing.T) {
	withBOM := append([]byte{0xEF, 0xBB, 0xBF}, "hello"...)
	out, had := removeBOM(withBOM)
	if !had || string(out) != "hello" {
		t.Fatalf("removeBOM = %q, %v, want %q, true", out, had, "hello")
	}
	out, had = removeBOM([]byte("hello"))
	if had || string(out) != "hello" {
		t.Fatalf("removeBOM on BOM-less input had=%v out=%q", had, out)
	}
}

func TestBuildLineIndexAndToLineCol(t *testing.T) {
	content := []byte("ab\ncd\ne")
	idx := buildLineIndex(content)
	if len(idx) != 2 {
		t.Fatalf("buildLineIndex found %d newlines, want 2", len(idx))
	}
	cases := []struct {
		off  uint32
		want LineCol
	}{
		{0, LineCol{1, 1}}, // 'a'
		{2, LineCol{1, 3}}, // '\n' itself, still line 1
		{3, LineCol{2, 1}}, // 'c'
		{6, LineCol{3, 1}}, // 'e'
	}
	for _, c := range cases {
		if got := toLineCol(idx, c.off); got != c.want {
			t.Errorf("toLineCol(%d) = %+v, want %+v", c.off, got, c.want)
		}
	}
}

func TestToLineColEmptyIndex(t *testing.T) {
	if got := toLineCol(nil, 7); got != (LineCol{1, 8}) {
		t.Fatalf("toLineCol with no newlines = %+v, want {1, 8}", got)
	}
}

func TestNormalizePath(t *testing.T) {
	if got, want := normalizePath("a/./b/../c"), "a/c"; got != want {
		t.Fatalf("normalizePath = %q, want %q", got, want)
	}
}

func TestRelativePathOutsideBaseFallsBackToAbsolute(t *testing.T) {
	rel, err := RelativePath("/tmp/elsewhere/file.sg", "/tmp/project")
	if err != nil {
		t.Fatalf("RelativePath error: %v", err)
	}
	abs, err := AbsolutePath("/tmp/elsewhere/file.sg")
	if err != nil {
		t.Fatalf("AbsolutePath error: %v", err)
	}
	if rel != abs {
		t.Fatalf("RelativePath escaping baseDir = %q, want the absolute form %q", rel, abs)
	}
}

func TestBaseName(t *testing.T) {
	if got, want := BaseName("/a/b/c.sg"), "c.sg"; got != want {
		t.Fatalf("BaseName = %q, want %q", got, want)
	}
}
