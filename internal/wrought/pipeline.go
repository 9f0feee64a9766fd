// Package wrought wires config, the Type Table, the Checker, and the two
// output channels — a terminal render and a msgpack snapshot for an
// out-of-scope downstream code generator — into the single Pipeline a
// driver binary calls. No driver binary lives in this module; Pipeline is
// the seam where one would attach.
package wrought

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/vmihailenco/msgpack/v5"

	"wrought/internal/ast"
	"wrought/internal/config"
	"wrought/internal/diag"
	"wrought/internal/render"
	"wrought/internal/sema"
	"wrought/internal/source"
	"wrought/internal/symbols"
	"wrought/internal/telemetry"
	"wrought/internal/types"
)

// Pipeline owns one check_all run's worth of tables, the way sema.Checker
// documents itself as owning a single run (§5): construct a Pipeline,
// call Run once, read its Result.
type Pipeline struct {
	Config config.Config
	Log    *telemetry.Logger

	Types   *types.Table
	Symbols *symbols.Table
}

// New builds a Pipeline from cfg. A nil log discards every telemetry
// event, which is the right default for a library caller that only wants
// Result.Bag.
func New(cfg config.Config, log *telemetry.Logger) *Pipeline {
	if log == nil {
		log = telemetry.Discard()
	}
	return &Pipeline{
		Config:  cfg,
		Log:     log,
		Types:   types.NewTable(),
		Symbols: symbols.NewTable(symbols.Hints{}),
	}
}

// Result is everything a caller needs after Run: the populated Type
// Table, the Symbol Table the checker built scopes into, and the sorted
// diagnostic bag.
type Result struct {
	Types   *types.Table
	Symbols *symbols.Table
	Bag     *diag.Bag
}

// Run executes check_all(files) over an already-parsed AST (parsing
// itself is out of this module's scope) and returns the diagnostics the
// Checker produced. It is safe to call only once per Pipeline, the same
// one-run-per-instance discipline sema.Checker documents.
func (p *Pipeline) Run(b *ast.Builder, interner *source.Interner, files []ast.FileID) *Result {
	p.Log.Log("pipeline_start", telemetry.F("files", len(files)))
	timer := telemetry.NewTimer(p.Log)

	bag := diag.NewBag(p.Config.Check.MessageLimit)
	reporter := diag.BagReporter{Bag: bag}

	checkPhase := timer.Begin("check_all")
	checker := sema.NewChecker(b, p.Types, p.Symbols, interner, reporter, p.Config.Limits())
	checker.Bag = bag
	checker.ActiveTags = p.Config.ActiveTagSet()
	checker.RequireMain = p.Config.Check.RequireMain
	checker.CheckAll(files)
	timer.End(checkPhase)

	bag.Sort()
	p.Log.Log("pipeline_end", telemetry.F("diagnostics", bag.Len()), telemetry.F("has_errors", bag.HasErrors()))

	return &Result{Types: p.Types, Symbols: p.Symbols, Bag: bag}
}

// RenderTerminal writes res.Bag to w using the checker's own OutputConfig,
// the ANSI-colorized path of §7's two output channels.
func (p *Pipeline) RenderTerminal(w io.Writer, res *Result, fs *source.FileSet) error {
	opts := render.Options{
		Color:     p.Config.Output.Color,
		Context:   p.Config.Output.Context,
		PathMode:  pathModeFromString(p.Config.Output.PathMode),
		ShowCodes: true,
	}
	return render.Pretty(w, res.Bag, fs, opts)
}

func pathModeFromString(s string) render.PathMode {
	switch s {
	case "absolute":
		return render.PathAbsolute
	case "relative":
		return render.PathRelative
	case "basename":
		return render.PathBasename
	default:
		return render.PathAuto
	}
}

// snapshotSchemaVersion is bumped whenever Snapshot's on-disk shape
// changes, so a downstream reader can reject a stale cache instead of
// misinterpreting it.
const snapshotSchemaVersion uint16 = 1

// Snapshot is the msgpack-serialized form of a Result: the full Type
// Table plus every diagnostic, for the out-of-scope code generator that
// consumes this module's output without relinking against it.
type Snapshot struct {
	Schema      uint16
	Types       []types.Symbol
	Diagnostics []SerializedDiagnostic
}

// SerializedDiagnostic flattens diag.Diagnostic into plain fields:
// msgpack can already encode the struct directly, but keeping an explicit
// wire type means a later Diagnostic field never silently changes this
// format's shape.
type SerializedDiagnostic struct {
	Severity uint8
	Code     string
	Message  string
	File     uint32
	Start    uint32
	End      uint32
	Details  []SerializedDetail
}

type SerializedDetail struct {
	Message string
	File    uint32
	Start   uint32
	End     uint32
}

// ExportSnapshot encodes res as a Snapshot and writes it atomically to
// path: encode into a temp file beside path, then rename, so a reader
// never observes a partially written file.
func (p *Pipeline) ExportSnapshot(path string, res *Result) error {
	snap := Snapshot{
		Schema: snapshotSchemaVersion,
		Types:  res.Types.Snapshot(),
	}
	for _, d := range res.Bag.Items() {
		snap.Diagnostics = append(snap.Diagnostics, serializeDiagnostic(d))
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("wrought: %w", err)
	}
	tmp, err := os.CreateTemp(dir, "snapshot-*.mp")
	if err != nil {
		return fmt.Errorf("wrought: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if err := msgpack.NewEncoder(tmp).Encode(&snap); err != nil {
		tmp.Close()
		return fmt.Errorf("wrought: encode snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("wrought: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("wrought: %w", err)
	}
	p.Log.Log("snapshot_written", telemetry.F("path", path), telemetry.F("types", len(snap.Types)), telemetry.F("diagnostics", len(snap.Diagnostics)))
	return nil
}

// LoadSnapshot decodes a Snapshot previously written by ExportSnapshot,
// rejecting one written by a newer or older schema.
func LoadSnapshot(path string) (*Snapshot, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("wrought: %w", err)
	}
	defer f.Close()

	var snap Snapshot
	if err := msgpack.NewDecoder(f).Decode(&snap); err != nil {
		return nil, fmt.Errorf("wrought: decode snapshot: %w", err)
	}
	if snap.Schema != snapshotSchemaVersion {
		return nil, fmt.Errorf("wrought: snapshot schema %d, want %d", snap.Schema, snapshotSchemaVersion)
	}
	return &snap, nil
}

func serializeDiagnostic(d diag.Diagnostic) SerializedDiagnostic {
	sd := SerializedDiagnostic{
		Severity: uint8(d.Severity),
		Code:     d.Code.String(),
		Message:  d.Message,
		File:     uint32(d.Primary.File),
		Start:    d.Primary.Start,
		End:      d.Primary.End,
	}
	for _, det := range d.Details {
		sd.Details = append(sd.Details, SerializedDetail{
			Message: det.Msg,
			File:    uint32(det.Span.File),
			Start:   det.Span.Start,
			End:     det.Span.End,
		})
	}
	return sd
}
