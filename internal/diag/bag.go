package diag

import (
	"sort"

	"wrought/internal/source"
)

// Bag accumulates diagnostics for a check_all run and enforces a message
// limit: once reached, Add returns false so callers can set should_abort
// and stop walking statements/expressions.
type Bag struct {
	items []Diagnostic
	max   int
}

// NewBag constructs a Bag capped at max diagnostics. max <= 0 means
// unlimited.
func NewBag(max int) *Bag {
	return &Bag{max: max}
}

// Add appends a diagnostic, honoring the configured limit.
func (b *Bag) Add(d Diagnostic) bool {
	if b.max > 0 && len(b.items) >= b.max {
		return false
	}
	b.items = append(b.items, d)
	return true
}

// Full reports whether the bag has reached its message limit.
func (b *Bag) Full() bool {
	return b.max > 0 && len(b.items) >= b.max
}

func (b *Bag) Len() int { return len(b.items) }

func (b *Bag) HasErrors() bool {
	for _, d := range b.items {
		if d.Severity == SevError {
			return true
		}
	}
	return false
}

func (b *Bag) HasWarnings() bool {
	for _, d := range b.items {
		if d.Severity == SevWarning {
			return true
		}
	}
	return false
}

// Items returns a read-only view of the accumulated diagnostics. Callers
// must not mutate the returned slice.
func (b *Bag) Items() []Diagnostic { return b.items }

func (b *Bag) Merge(other *Bag) {
	if other == nil {
		return
	}
	b.items = append(b.items, other.items...)
}

// Sort orders diagnostics deterministically: file, start, end, severity
// (descending), code (ascending).
func (b *Bag) Sort() {
	sort.SliceStable(b.items, func(i, j int) bool {
		di, dj := b.items[i], b.items[j]
		if di.Primary.File != dj.Primary.File {
			return di.Primary.File < dj.Primary.File
		}
		if di.Primary.Start != dj.Primary.Start {
			return di.Primary.Start < dj.Primary.Start
		}
		if di.Primary.End != dj.Primary.End {
			return di.Primary.End < dj.Primary.End
		}
		if di.Severity != dj.Severity {
			return di.Severity > dj.Severity
		}
		return di.Code < dj.Code
	})
}

// DedupByLine drops diagnostics that land on a source line already covered
// by an earlier, identically-coded diagnostic — this is what keeps one bad
// expression from cascading into a page of near-duplicate errors.
func (b *Bag) DedupByLine(fs *source.FileSet) {
	if fs == nil {
		b.dedupExact()
		return
	}
	type key struct {
		file source.FileID
		line uint32
		code Code
	}
	seen := make(map[key]struct{}, len(b.items))
	out := make([]Diagnostic, 0, len(b.items))
	for _, d := range b.items {
		line, _ := fs.Resolve(d.Primary)
		k := key{file: d.Primary.File, line: line.Line, code: d.Code}
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, d)
	}
	b.items = out
}

func (b *Bag) dedupExact() {
	type key struct {
		file  source.FileID
		start uint32
		end   uint32
		code  Code
	}
	seen := make(map[key]struct{}, len(b.items))
	out := make([]Diagnostic, 0, len(b.items))
	for _, d := range b.items {
		k := key{file: d.Primary.File, start: d.Primary.Start, end: d.Primary.End, code: d.Code}
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, d)
	}
	b.items = out
}
