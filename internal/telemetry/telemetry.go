// Package telemetry logs the checker's own operational events — pipeline
// start/stop, config load, file-set construction, generic-recheck pass
// counts — on a channel kept strictly separate from diag.Bag: diagnostics
// are about the checked program, telemetry is about the checker itself.
// Grounded on the teacher's internal/observ phase timer and
// internal/driver.PhaseObserver callback, generalized into a field-value
// line logger so redirecting one channel never swallows the other.
package telemetry

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"sync"
	"time"
)

// Logger writes one structured line per event:
// "<RFC3339Nano UTC timestamp> event key=value key=value".
// It is safe for the driver to share a single Logger across a pipeline run
// even though the checker itself is single-threaded (§5): config loading,
// file-set construction, and the checker's own run can be logged from
// different call sites without interleaving output.
type Logger struct {
	mu  sync.Mutex
	w   io.Writer
	now func() time.Time
}

// NewLogger wraps w (typically os.Stderr) as a telemetry sink.
func NewLogger(w io.Writer) *Logger {
	return &Logger{w: w, now: time.Now}
}

// Discard is a Logger that drops every event, for callers that don't want
// operational output (e.g. a quiet CLI flag, or a test).
func Discard() *Logger { return NewLogger(io.Discard) }

// Field is one key=value pair. Fields preserves caller order except for
// the leading timestamp, which Log always sorts first.
type Field struct {
	Key   string
	Value any
}

// F is shorthand for constructing a Field.
func F(key string, value any) Field { return Field{Key: key, Value: value} }

// Log emits one line for event with the given fields.
func (l *Logger) Log(event string, fields ...Field) {
	if l == nil || l.w == nil {
		return
	}
	var b strings.Builder
	b.WriteString(l.now().UTC().Format(time.RFC3339Nano))
	b.WriteByte(' ')
	b.WriteString(event)
	for _, f := range fields {
		fmt.Fprintf(&b, " %s=%v", f.Key, f.Value)
	}
	b.WriteByte('\n')
	l.mu.Lock()
	defer l.mu.Unlock()
	_, _ = io.WriteString(l.w, b.String())
}

// Phase tracks the wall-clock duration of one named stage of a pipeline
// run (config load, file-set build, check_all, generic-recheck sweep),
// the same boundary the teacher's PhaseObserver reports, generalized to
// accumulate a full run's worth of phases instead of firing a callback
// per boundary.
type Phase struct {
	Name  string
	Start time.Time
	Dur   time.Duration
}

// Timer accumulates Phases across one run and can log each as it
// finishes, or summarize all of them at once.
type Timer struct {
	log    *Logger
	phases []Phase
}

func NewTimer(log *Logger) *Timer {
	if log == nil {
		log = Discard()
	}
	return &Timer{log: log}
}

// Begin starts a phase and returns its index for the matching End call.
func (t *Timer) Begin(name string) int {
	t.phases = append(t.phases, Phase{Name: name, Start: time.Now()})
	t.log.Log("phase_start", F("phase", name))
	return len(t.phases) - 1
}

// End finishes the phase idx started, logging its elapsed duration.
func (t *Timer) End(idx int) {
	if idx < 0 || idx >= len(t.phases) {
		return
	}
	p := &t.phases[idx]
	p.Dur = time.Since(p.Start)
	t.log.Log("phase_end", F("phase", p.Name), F("duration_ms", durationMS(p.Dur)))
}

// Summary renders every begun phase (one not yet ended shows 0 ms) and the
// run's total duration, in
// the Timer.Summary() shape the teacher's observ package reports.
func (t *Timer) Summary() string {
	var b strings.Builder
	var total time.Duration
	for _, p := range t.phases {
		total += p.Dur
		fmt.Fprintf(&b, "%-24s %8.2f ms\n", p.Name, durationMS(p.Dur))
	}
	fmt.Fprintf(&b, "%-24s %8.2f ms\n", "total", durationMS(total))
	return b.String()
}

func durationMS(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}

// RecheckReport logs one generic-recheck fixed-point pass, the event
// spec.md §4.2.6/§9 names explicitly as worth observing: each pass either
// registers at least one new concrete tuple or the loop terminates.
func (l *Logger) RecheckReport(pass int, newTuples int) {
	l.Log("generic_recheck_pass", F("pass", pass), F("new_tuples", newTuples))
}

// SortedFieldKeys is a small helper for tests/snapshots that want a
// deterministic rendering of an ad hoc map as Fields.
func SortedFieldKeys(m map[string]any) []Field {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]Field, len(keys))
	for i, k := range keys {
		out[i] = F(k, m[k])
	}
	return out
}

var _ = os.Stderr // default sink callers typically pass to NewLogger
