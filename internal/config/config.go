// Package config loads the checker's configurable resource knobs from a
// TOML file, the same [section] convention the rest of the codebase uses
// for project manifests.
package config

import (
	"fmt"

	"github.com/BurntSushi/toml"

	"wrought/internal/sema"
)

// Config is the on-disk form of sema.Limits plus the render/output knobs
// a driver binary (out of this module's scope) would otherwise have to
// thread through flags by hand.
type Config struct {
	Check  CheckConfig  `toml:"check"`
	Output OutputConfig `toml:"output"`
}

// CheckConfig mirrors sema.Limits field-for-field so a TOML file can
// override any of spec.md §4.2.5/§9's configurable cutoffs.
type CheckConfig struct {
	MessageLimit              int  `toml:"message_limit"`
	ExprNestingLimit          int  `toml:"expr_nesting_limit"`
	StmtNestingLimit          int  `toml:"stmt_nesting_limit"`
	EnumVariantCutoff         int  `toml:"enum_variant_cutoff"`
	InterfaceEmbedDepthCutoff int  `toml:"interface_embed_depth_cutoff"`
	GenericRecheckSafetyCap   int  `toml:"generic_recheck_safety_cap"`
	StrictMode                bool     `toml:"strict_mode"`
	UnusedMutableIsWarning    bool     `toml:"unused_mutable_is_warning"`
	Tags                      []string `toml:"tags"`        // build tags active for `[if tag]` elision
	RequireMain               bool     `toml:"require_main"` // raise missing-main when no [main] function is declared
}

// ActiveTagSet converts Check.Tags to the lookup set sema.Checker.ActiveTags
// expects.
func (c Config) ActiveTagSet() map[string]bool {
	if len(c.Check.Tags) == 0 {
		return nil
	}
	set := make(map[string]bool, len(c.Check.Tags))
	for _, t := range c.Check.Tags {
		set[t] = true
	}
	return set
}

// OutputConfig configures the terminal/serialized renderer (internal/render,
// internal/wrought), not the checker itself.
type OutputConfig struct {
	Color    bool   `toml:"color"`
	PathMode string `toml:"path_mode"` // "auto" | "absolute" | "relative" | "basename"
	Context  int    `toml:"context"`   // passed to render.Options.Context, which Pretty does not read
}

// Default returns the zero-override configuration: every check limit at
// sema.DefaultLimits, color enabled, auto path mode, 2 lines of context.
func Default() Config {
	l := sema.DefaultLimits()
	return Config{
		Check: CheckConfig{
			MessageLimit:              l.MessageLimit,
			ExprNestingLimit:          l.ExprNestingLimit,
			StmtNestingLimit:          l.StmtNestingLimit,
			EnumVariantCutoff:         l.EnumVariantCutoff,
			InterfaceEmbedDepthCutoff: l.InterfaceEmbedDepthCutoff,
			GenericRecheckSafetyCap:   l.GenericRecheckSafetyCap,
			StrictMode:                l.StrictMode,
			UnusedMutableIsWarning:    l.UnusedMutableIsWarning,
		},
		Output: OutputConfig{Color: true, PathMode: "auto", Context: 2},
	}
}

// Load decodes path into a Config seeded with Default() values, so a
// partial TOML file still yields usable limits. A missing or unreadable
// file is an error.
func Load(path string) (Config, error) {
	cfg := Default()
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

// Limits converts the [check] section to the sema.Limits the Checker
// constructor expects.
func (c Config) Limits() sema.Limits {
	return sema.Limits{
		MessageLimit:              c.Check.MessageLimit,
		ExprNestingLimit:          c.Check.ExprNestingLimit,
		StmtNestingLimit:          c.Check.StmtNestingLimit,
		EnumVariantCutoff:         c.Check.EnumVariantCutoff,
		InterfaceEmbedDepthCutoff: c.Check.InterfaceEmbedDepthCutoff,
		GenericRecheckSafetyCap:   c.Check.GenericRecheckSafetyCap,
		StrictMode:                c.Check.StrictMode,
		UnusedMutableIsWarning:    c.Check.UnusedMutableIsWarning,
	}
}
