package ast

import "wrought/internal/source"

// AttrKind enumerates the closed set of compile-time attributes the checker
// understands. Anything else surfaces as CodeUnknownAttribute (a warning,
// never a hard failure).
type AttrKind uint8

const (
	AttrUnknown AttrKind = iota
	AttrPub
	AttrMut
	AttrDeprecated
	AttrNoReturn
	AttrUnsafe
	AttrInline
	AttrIf
	AttrKeepAlive
	AttrConsole
	AttrSingleImpl
	AttrHeap
	AttrFlag
	AttrJSON
	AttrRequired
	AttrSkip
	AttrMain
	AttrTest
	AttrVariadic
)

var attrNames = map[string]AttrKind{
	"pub":         AttrPub,
	"mut":         AttrMut,
	"deprecated":  AttrDeprecated,
	"noreturn":    AttrNoReturn,
	"unsafe":      AttrUnsafe,
	"inline":      AttrInline,
	"if":          AttrIf,
	"keep_alive":  AttrKeepAlive,
	"console":     AttrConsole,
	"single_impl": AttrSingleImpl,
	"heap":        AttrHeap,
	"flag":        AttrFlag,
	"json":        AttrJSON,
	"required":    AttrRequired,
	"skip":        AttrSkip,
	"main":        AttrMain,
	"test":        AttrTest,
	"variadic":    AttrVariadic,
}

// LookupAttr resolves a textual attribute name to its AttrKind. ok is false
// for anything outside the closed set.
func LookupAttr(name string) (AttrKind, bool) {
	k, ok := attrNames[name]
	return k, ok
}

// Attr is one `[name: arg]` or `[name]` decoration on a declaration.
type Attr struct {
	Kind AttrKind
	Name source.StringID
	Arg  source.StringID // NoStringID when the attribute takes no argument
	Span source.Span
}

// AttrSet is the resolved, order-preserving list of attributes attached to
// a declaration.
type AttrSet []Attr

func (s AttrSet) Has(kind AttrKind) bool {
	for _, a := range s {
		if a.Kind == kind {
			return true
		}
	}
	return false
}

func (s AttrSet) Find(kind AttrKind) (Attr, bool) {
	for _, a := range s {
		if a.Kind == kind {
			return a, true
		}
	}
	return Attr{}, false
}
