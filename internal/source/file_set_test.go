package source

import (
	"os"
	"testing"
)

func TestFileSetAddAndGet(t *testing.T) {
	fs := NewFileSet()
	id := fs.Add("pkg/a.sg", []byte("fn main() {}"), 0)
	got := fs.Get(id)
	if got.Path != "pkg/a.sg" || string(got.Content) != "fn main() {}" {
		t.Fatalf("Get(%d) = %+v", id, got)
	}
}

func TestFileSetReloadKeepsOldIDResolvable(t *testing.T) {
	fs := NewFileSet()
	first := fs.Add("a.sg", []byte("v1"), 0)
	second := fs.Add("a.sg", []byte("v2"), 0)
	if first == second {
		t.Fatal("reloading the same path returned the same FileID")
	}
	latest, ok := fs.GetLatest("a.sg")
	if !ok || latest != second {
		t.Fatalf("GetLatest(a.sg) = %d, %v, want %d, true", latest, ok, second)
	}
	if string(fs.Get(first).Content) != "v1" {
		t.Fatal("the superseded FileID no longer resolves to its own content")
	}
}

func TestFileSetGetByPath(t *testing.T) {
	fs := NewFileSet()
	fs.Add("pkg/b.sg", []byte("x"), 0)
	f, ok := fs.GetByPath("pkg/b.sg")
	if !ok || f.Path != "pkg/b.sg" {
		t.Fatalf("GetByPath = %+v, %v", f, ok)
	}
	if _, ok := fs.GetByPath("does/not/exist.sg"); ok {
		t.Fatal("GetByPath found a file that was never added")
	}
}

func TestFileSetAddVirtualSetsFlag(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("<stdin>", []byte("x"))
	f := fs.Get(id)
	if f.Flags&FileVirtual == 0 {
		t.Fatal("AddVirtual did not set FileVirtual")
	}
}

func TestFileSetResolve(t *testing.T) {
	fs := NewFileSet()
	id := fs.Add("a.sg", []byte("ab\ncd"), 0)
	start, end := fs.Resolve(Span{File: id, Start: 0, End: 4})
	if start != (LineCol{1, 1}) {
		t.Fatalf("Resolve start = %+v, want {1,1}", start)
	}
	if end != (LineCol{2, 2}) {
		t.Fatalf("Resolve end = %+v, want {2,2}", end)
	}
}

func TestFileGetLine(t *testing.T) {
	fs := NewFileSet()
	id := fs.Add("a.sg", []byte("one\ntwo\nthree"), 0)
	f := fs.Get(id)
	cases := []struct {
		n    uint32
		want string
	}{
		{0, ""},
		{1, "one"},
		{2, "two"},
		{3, "three"},
		{4, ""},
	}
	for _, c := range cases {
		if got := f.GetLine(c.n); got != c.want {
			t.Errorf("GetLine(%d) = %q, want %q", c.n, got, c.want)
		}
	}
}

func TestFileSetLoadNormalizesBOMAndCRLF(t *testing.T) {
	fs := NewFileSet()
	dir := t.TempDir()
	path := dir + "/with_bom.sg"
	content := append([]byte{0xEF, 0xBB, 0xBF}, []byte("a\r\nb\r\nc")...)
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatalf("os.WriteFile: %v", err)
	}
	id, err := fs.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	f := fs.Get(id)
	if string(f.Content) != "a\nb\nc" {
		t.Fatalf("Load did not normalize content: %q", f.Content)
	}
	if f.Flags&FileHadBOM == 0 || f.Flags&FileNormalizedCRLF == 0 {
		t.Fatalf("Load did not set the expected flags: %v", f.Flags)
	}
}

func TestFileFormatPathBasename(t *testing.T) {
	fs := NewFileSet()
	id := fs.Add("/very/long/path/to/some/module/file.sg", []byte("x"), 0)
	f := fs.Get(id)
	if got := f.FormatPath("basename", ""); got != "file.sg" {
		t.Fatalf("FormatPath(basename) = %q, want %q", got, "file.sg")
	}
}
