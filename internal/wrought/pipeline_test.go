package wrought

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vmihailenco/msgpack/v5"

	"wrought/internal/ast"
	"wrought/internal/config"
	"wrought/internal/diag"
	"wrought/internal/source"
)

func overwriteSnapshot(t *testing.T, path string, snap Snapshot) {
	t.Helper()
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("os.Create: %v", err)
	}
	defer f.Close()
	if err := msgpack.NewEncoder(f).Encode(&snap); err != nil {
		t.Fatalf("Encode: %v", err)
	}
}

func TestRunEmptyFileListProducesNoDiagnostics(t *testing.T) {
	p := New(config.Default(), nil)
	b := ast.NewBuilder(ast.Hints{})
	interner := source.NewInterner()

	res := p.Run(b, interner, nil)
	if res.Bag.Len() != 0 {
		t.Fatalf("Run with no files reported %d diagnostics", res.Bag.Len())
	}
	if res.Bag.HasErrors() {
		t.Fatal("empty run should not have errors")
	}
}

func TestRenderTerminalWritesSortedDiagnostics(t *testing.T) {
	p := New(config.Default(), nil)
	p.Config.Output.Color = false
	fs := source.NewFileSet()
	id := fs.Add("m.sg", []byte("const a = 1\n"), 0)

	res := &Result{Types: p.Types, Symbols: p.Symbols, Bag: diag.NewBag(0)}
	res.Bag.Add(diag.NewError(diag.CodeUnknownIdent, source.Span{File: id, Start: 6, End: 7}, "boom"))
	res.Bag.Sort()

	var buf bytes.Buffer
	if err := p.RenderTerminal(&buf, res, fs); err != nil {
		t.Fatalf("RenderTerminal: %v", err)
	}
	if !strings.Contains(buf.String(), "m.sg:1:") {
		t.Fatalf("render missing location: %q", buf.String())
	}
}

func TestExportAndLoadSnapshotRoundTrip(t *testing.T) {
	p := New(config.Default(), nil)
	res := &Result{Types: p.Types, Symbols: p.Symbols, Bag: diag.NewBag(0)}
	d := diag.NewError(diag.CodeDuplicateConst, source.Span{File: 3, Start: 1, End: 5}, "dup")
	d = d.WithDetail(source.Span{File: 3, Start: 10, End: 12}, "first here")
	res.Bag.Add(d)

	path := filepath.Join(t.TempDir(), "out.mp")
	if err := p.ExportSnapshot(path, res); err != nil {
		t.Fatalf("ExportSnapshot: %v", err)
	}

	snap, err := LoadSnapshot(path)
	if err != nil {
		t.Fatalf("LoadSnapshot: %v", err)
	}
	if snap.Schema != snapshotSchemaVersion {
		t.Fatalf("Schema = %d, want %d", snap.Schema, snapshotSchemaVersion)
	}
	if len(snap.Types) != len(res.Types.Snapshot()) {
		t.Fatalf("Types len = %d, want %d", len(snap.Types), len(res.Types.Snapshot()))
	}
	if len(snap.Diagnostics) != 1 {
		t.Fatalf("Diagnostics len = %d, want 1", len(snap.Diagnostics))
	}
	got := snap.Diagnostics[0]
	if got.Message != "dup" || got.File != 3 || len(got.Details) != 1 {
		t.Fatalf("round-tripped diagnostic = %+v", got)
	}
	if got.Details[0].Message != "first here" {
		t.Fatalf("round-tripped detail = %+v", got.Details[0])
	}
}

func TestLoadSnapshotRejectsMismatchedSchema(t *testing.T) {
	p := New(config.Default(), nil)
	res := &Result{Types: p.Types, Symbols: p.Symbols, Bag: diag.NewBag(0)}
	path := filepath.Join(t.TempDir(), "out.mp")
	if err := p.ExportSnapshot(path, res); err != nil {
		t.Fatalf("ExportSnapshot: %v", err)
	}

	// Corrupt the on-disk schema by writing a snapshot under a different
	// version and confirming LoadSnapshot refuses to hand it back.
	bad := Snapshot{Schema: snapshotSchemaVersion + 1}
	overwriteSnapshot(t, path, bad)

	if _, err := LoadSnapshot(path); err == nil {
		t.Fatal("LoadSnapshot accepted a mismatched schema version")
	}
}
