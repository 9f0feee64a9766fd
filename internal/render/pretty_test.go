package render

import (
	"bytes"
	"strings"
	"testing"

	"golang.org/x/text/language"

	"wrought/internal/diag"
	"wrought/internal/source"
)

func TestPrettyNoColor(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.Add("a.sg", []byte("fn main() {\n  x := 1\n}\n"), 0)

	bag := diag.NewBag(0)
	bag.Add(diag.New(diag.SevWarning, diag.CodeUnusedVariable, source.Span{File: id, Start: 15, End: 16}, `"x" is declared but never used`))
	bag.Sort()

	var buf bytes.Buffer
	if err := Pretty(&buf, bag, fs, Options{Color: false, PathMode: PathBasename, ShowCodes: true}); err != nil {
		t.Fatalf("Pretty: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "a.sg:2:") {
		t.Fatalf("output missing file:line prefix: %q", out)
	}
	if !strings.Contains(out, "WARNING") {
		t.Fatalf("output missing severity label: %q", out)
	}
	if !strings.Contains(out, "unused-variable") {
		t.Fatalf("output missing stable code: %q", out)
	}
	if strings.ContainsRune(out, '\x1b') {
		t.Fatalf("Color: false leaked an ANSI escape: %q", out)
	}
}

func TestPrettyWithDetail(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.Add("a.sg", []byte("const a = 1\nconst a = 2\n"), 0)

	bag := diag.NewBag(0)
	d := diag.NewError(diag.CodeDuplicateConst, source.Span{File: id, Start: 12, End: 23}, `duplicate const "a"`)
	d = d.WithDetail(source.Span{File: id, Start: 0, End: 11}, "previous declaration is here")
	bag.Add(d)

	var buf bytes.Buffer
	if err := Pretty(&buf, bag, fs, Options{Color: false, PathMode: PathBasename}); err != nil {
		t.Fatalf("Pretty: %v", err)
	}
	lines := strings.Split(buf.String(), "\n")
	found := false
	for _, l := range lines {
		if strings.HasPrefix(l, "  ") && strings.Contains(l, "previous declaration") {
			found = true
		}
	}
	if !found {
		t.Fatalf("detail line not indented/rendered: %q", buf.String())
	}
}

func TestGroupByCategory(t *testing.T) {
	bag := diag.NewBag(0)
	bag.Add(diag.NewError(diag.CodeGenericAmbiguousInference, source.Span{}, "x"))
	bag.Add(diag.NewError(diag.CodeGenericUnboundParam, source.Span{}, "y"))
	bag.Add(diag.NewError(diag.CodeUnknownIdent, source.Span{}, "z"))

	grouped := GroupByCategory(bag, language.English)
	if len(grouped["Generic"]) != 2 {
		t.Fatalf("Generic category has %d items, want 2", len(grouped["Generic"]))
	}
	headers := CategoryHeaders(grouped)
	if len(headers) != 2 || headers[0] != "Generic" {
		t.Fatalf("CategoryHeaders = %v, want [Generic Unknown]", headers)
	}
}
