package diag

import (
	"fmt"

	"wrought/internal/source"
)

// Reportf formats msg with args and emits it through r at the given
// severity/code. It is the workhorse every checker rule calls through.
func Reportf(r Reporter, sev Severity, code Code, primary source.Span, format string, args ...any) {
	if r == nil {
		return
	}
	r.Report(code, sev, primary, fmt.Sprintf(format, args...), nil)
}

func Errorf(r Reporter, code Code, primary source.Span, format string, args ...any) {
	Reportf(r, SevError, code, primary, format, args...)
}

func Warnf(r Reporter, code Code, primary source.Span, format string, args ...any) {
	Reportf(r, SevWarning, code, primary, format, args...)
}

func Noticef(r Reporter, code Code, primary source.Span, format string, args ...any) {
	Reportf(r, SevNotice, code, primary, format, args...)
}

// ErrorfDetail is Errorf plus a single secondary span, e.g. "previous
// declaration is here".
func ErrorfDetail(r Reporter, code Code, primary source.Span, detailSpan source.Span, detailMsg string, format string, args ...any) {
	if r == nil {
		return
	}
	r.Report(code, SevError, primary, fmt.Sprintf(format, args...), []Detail{{Span: detailSpan, Msg: detailMsg}})
}
