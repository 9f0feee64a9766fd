package telemetry

import (
	"bytes"
	"strings"
	"testing"
)

func TestLogWritesEventAndFields(t *testing.T) {
	var buf bytes.Buffer
	log := NewLogger(&buf)
	log.Log("config_loaded", F("path", "wrought.toml"), F("strict_mode", true))

	out := buf.String()
	if !strings.Contains(out, "config_loaded") {
		t.Fatalf("missing event name: %q", out)
	}
	if !strings.Contains(out, "path=wrought.toml") {
		t.Fatalf("missing path field: %q", out)
	}
	if !strings.Contains(out, "strict_mode=true") {
		t.Fatalf("missing strict_mode field: %q", out)
	}
	if !strings.HasSuffix(out, "\n") {
		t.Fatalf("line not newline-terminated: %q", out)
	}
}

func TestDiscardDropsEverything(t *testing.T) {
	log := Discard()
	log.Log("should_not_panic", F("a", 1))
}

func TestNilLoggerIsSafe(t *testing.T) {
	var log *Logger
	log.Log("nil_receiver_is_a_noop")
}

func TestTimerSummaryListsEachPhaseAndTotal(t *testing.T) {
	var buf bytes.Buffer
	tm := NewTimer(NewLogger(&buf))
	i := tm.Begin("parse")
	tm.End(i)
	j := tm.Begin("check_all")
	tm.End(j)

	summary := tm.Summary()
	if !strings.Contains(summary, "parse") || !strings.Contains(summary, "check_all") {
		t.Fatalf("summary missing a phase: %q", summary)
	}
	if !strings.Contains(summary, "total") {
		t.Fatalf("summary missing total line: %q", summary)
	}
	log := buf.String()
	if strings.Count(log, "phase_start") != 2 || strings.Count(log, "phase_end") != 2 {
		t.Fatalf("expected 2 phase_start/phase_end pairs, got: %q", log)
	}
}

func TestTimerEndIgnoresOutOfRangeIndex(t *testing.T) {
	tm := NewTimer(Discard())
	tm.End(5)
	tm.End(-1)
}

func TestRecheckReportFormat(t *testing.T) {
	var buf bytes.Buffer
	log := NewLogger(&buf)
	log.RecheckReport(2, 3)

	out := buf.String()
	if !strings.Contains(out, "generic_recheck_pass") {
		t.Fatalf("missing event: %q", out)
	}
	if !strings.Contains(out, "pass=2") || !strings.Contains(out, "new_tuples=3") {
		t.Fatalf("missing fields: %q", out)
	}
}

func TestSortedFieldKeysIsDeterministic(t *testing.T) {
	m := map[string]any{"c": 3, "a": 1, "b": 2}
	fields := SortedFieldKeys(m)
	if len(fields) != 3 || fields[0].Key != "a" || fields[1].Key != "b" || fields[2].Key != "c" {
		t.Fatalf("SortedFieldKeys = %+v, want sorted a,b,c", fields)
	}
}
