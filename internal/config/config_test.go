package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultMatchesSemaDefaults(t *testing.T) {
	cfg := Default()
	limits := cfg.Limits()
	if limits.ExprNestingLimit != 40 || limits.StmtNestingLimit != 40 {
		t.Fatalf("default nesting limits = %+v, want 40/40", limits)
	}
	if limits.GenericRecheckSafetyCap != 10 {
		t.Fatalf("default GenericRecheckSafetyCap = %d, want 10", limits.GenericRecheckSafetyCap)
	}
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "wrought.toml")
	if err := os.WriteFile(path, []byte("[check]\nstrict_mode = true\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !cfg.Check.StrictMode {
		t.Fatal("Load did not pick up strict_mode = true")
	}
	if cfg.Check.ExprNestingLimit != Default().Check.ExprNestingLimit {
		t.Fatalf("Load overwrote an unset field: ExprNestingLimit = %d", cfg.Check.ExprNestingLimit)
	}
	if cfg.Output.PathMode != "auto" {
		t.Fatalf("Load overwrote the unset [output] section: PathMode = %q", cfg.Output.PathMode)
	}
}

func TestLoadMissingFileIsError(t *testing.T) {
	if _, err := Load("/does/not/exist/wrought.toml"); err == nil {
		t.Fatal("Load of a missing file returned nil error")
	}
}
