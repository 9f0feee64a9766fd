package diag

import "wrought/internal/source"

// Reporter is the minimal contract the type table and checker use to emit
// diagnostics without depending on how they're stored or rendered.
type Reporter interface {
	Report(code Code, sev Severity, primary source.Span, msg string, details []Detail)
}

// BagReporter adapts a Bag to the Reporter contract.
type BagReporter struct{ Bag *Bag }

func (r BagReporter) Report(code Code, sev Severity, primary source.Span, msg string, details []Detail) {
	if r.Bag == nil {
		return
	}
	r.Bag.Add(Diagnostic{Severity: sev, Code: code, Message: msg, Primary: primary, Details: details})
}

// NopReporter discards everything; useful for callers that only want the
// resolved AST/type table and don't care about diagnostics.
type NopReporter struct{}

func (NopReporter) Report(Code, Severity, source.Span, string, []Detail) {}
