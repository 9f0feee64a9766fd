// Package render formats a diag.Bag for a terminal: colorized severities,
// rune-width-aware gutter alignment, and per-category headers. The checker
// and Type Table never import this package — it sits on the consumer side
// of the diagnostic stream, same as the out-of-scope code generator.
package render

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"
	"golang.org/x/term"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"wrought/internal/diag"
	"wrought/internal/source"
)

// PathMode mirrors source.File.FormatPath's mode strings as a closed enum
// so callers get a compile-time checked choice instead of a raw string.
type PathMode uint8

const (
	PathAuto PathMode = iota
	PathAbsolute
	PathRelative
	PathBasename
)

func (m PathMode) String() string {
	switch m {
	case PathAbsolute:
		return "absolute"
	case PathRelative:
		return "relative"
	case PathBasename:
		return "basename"
	default:
		return "auto"
	}
}

// Options configures Pretty.
type Options struct {
	Color     bool // force color on/off; IsTerminal(w) decides when unset via AutoOptions
	Context   int  // not read by Pretty: only the primary span's own line is printed
	PathMode  PathMode
	BaseDir   string
	ShowCodes bool // prefix the message with the diagnostic's stable Code.String() in brackets
}

// AutoOptions detects whether w is a real terminal and sets Color
// accordingly, the same auto/on/off policy the driver's --color flag
// documents.
func AutoOptions(w io.Writer) Options {
	o := Options{Context: 1, PathMode: PathAuto, ShowCodes: true}
	if f, ok := w.(*os.File); ok {
		o.Color = term.IsTerminal(int(f.Fd()))
	}
	return o
}

var (
	errorColor   = color.New(color.FgRed, color.Bold)
	warningColor = color.New(color.FgYellow, color.Bold)
	noticeColor  = color.New(color.FgCyan)
	gutterColor  = color.New(color.FgHiBlack)
	pointerColor = color.New(color.FgRed, color.Bold)
)

func severityColor(sev diag.Severity) *color.Color {
	switch sev {
	case diag.SevError:
		return errorColor
	case diag.SevWarning:
		return warningColor
	default:
		return noticeColor
	}
}

// Pretty writes every diagnostic in bag (call bag.Sort() first for a
// deterministic, file-then-position order) as:
//
//	path:line:col: SEVERITY: [code] message
//	     |
//	     | source line
//	     |   ^
//
// ("[code] " only when ShowCodes is set; the source lines only when the
// line can be resolved), followed by each Detail in the same shape as a
// NOTICE, indented by two spaces.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts Options) error {
	bw := bufio.NewWriter(w)
	noColor := color.NoColor
	color.NoColor = !opts.Color
	defer func() { color.NoColor = noColor }()

	for _, d := range bag.Items() {
		if err := writeOne(bw, d, fs, opts, 0); err != nil {
			return err
		}
		for _, det := range d.Details {
			sub := diag.Diagnostic{Severity: diag.SevNotice, Code: d.Code, Message: det.Msg, Primary: det.Span}
			if err := writeOne(bw, sub, fs, opts, 1); err != nil {
				return err
			}
		}
	}
	return bw.Flush()
}

func writeOne(w *bufio.Writer, d diag.Diagnostic, fs *source.FileSet, opts Options, indent int) error {
	pad := strings.Repeat("  ", indent)
	loc := "?"
	var line string
	var col uint32
	if fs != nil {
		f := fs.Get(d.Primary.File)
		start, _ := fs.Resolve(d.Primary)
		loc = fmt.Sprintf("%s:%d:%d", f.FormatPath(opts.PathMode.String(), opts.BaseDir), start.Line, start.Col)
		line = f.GetLine(start.Line)
		col = start.Col
	}

	sevLabel := severityColor(d.Severity).Sprint(strings.ToUpper(d.Severity.String()))
	msg := d.Message
	if opts.ShowCodes {
		msg = fmt.Sprintf("[%s] %s", d.Code.String(), msg)
	}
	if _, err := fmt.Fprintf(w, "%s%s: %s: %s\n", pad, loc, sevLabel, msg); err != nil {
		return err
	}
	if line == "" {
		return nil
	}
	gutterWidth := 5
	if _, err := fmt.Fprintf(w, "%s%s\n", pad, gutterColor.Sprintf("%*s |", gutterWidth, "")); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "%s%s %s\n", pad, gutterColor.Sprint(padGutter(gutterWidth)), line); err != nil {
		return err
	}
	caretCol := runewidth.StringWidth(line[:min(int(col)-1, len(line))])
	caret := strings.Repeat(" ", caretCol) + pointerColor.Sprint("^")
	_, err := fmt.Fprintf(w, "%s%s %s\n", pad, gutterColor.Sprintf("%*s |", gutterWidth, ""), caret)
	return err
}

func padGutter(width int) string {
	return fmt.Sprintf("%*s|", width, "")
}

// GroupByCategory buckets bag's items by the dashed prefix of their
// Code.String() (e.g. "generic-ambiguous-inference" groups under
// "generic"), Title-Cased via golang.org/x/text/cases so headers render
// correctly under non-English collation locales, matching the rest of the
// toolchain's locale-aware text handling.
func GroupByCategory(bag *diag.Bag, lang language.Tag) map[string][]diag.Diagnostic {
	titler := cases.Title(lang)
	out := make(map[string][]diag.Diagnostic)
	for _, d := range bag.Items() {
		cat := d.Code.String()
		if i := strings.IndexByte(cat, '-'); i >= 0 {
			cat = cat[:i]
		}
		cat = titler.String(cat)
		out[cat] = append(out[cat], d)
	}
	return out
}

// CategoryHeaders returns the keys of a GroupByCategory result sorted
// alphabetically, so a renderer can iterate categories deterministically.
func CategoryHeaders(grouped map[string][]diag.Diagnostic) []string {
	out := make([]string, 0, len(grouped))
	for k := range grouped {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
