package diag

import "wrought/internal/source"

// Detail is a secondary span/message attached to a Diagnostic, e.g. pointing
// at a previous declaration. Every detail must add new context; repeating
// the primary message is a smell.
type Detail struct {
	Span source.Span
	Msg  string
}

// Diagnostic is the user-visible unit of checker/type-table output:
// (file, position, kind, message, details...).
type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Primary  source.Span
	Details  []Detail
}

func New(sev Severity, code Code, primary source.Span, msg string) Diagnostic {
	return Diagnostic{Severity: sev, Code: code, Message: msg, Primary: primary}
}

func NewError(code Code, primary source.Span, msg string) Diagnostic {
	return New(SevError, code, primary, msg)
}

func (d Diagnostic) WithDetail(sp source.Span, msg string) Diagnostic {
	d.Details = append(d.Details, Detail{Span: sp, Msg: msg})
	return d
}
