package types

import (
	"fmt"
	"strings"
)

// mangle produces a C-identifier-safe spelling of a canonical name, per
// the composite constructors of §4.1.2. It is deliberately simple: every
// byte outside [A-Za-z0-9_] becomes '_', with run-length collapsing so
// `[]Foo` and `[ ]Foo` don't collide by accident.
func mangle(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	prevUnderscore := false
	for _, r := range name {
		safe := (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '_'
		if safe {
			b.WriteRune(r)
			prevUnderscore = false
			continue
		}
		if !prevUnderscore {
			b.WriteByte('_')
			prevUnderscore = true
		}
	}
	out := b.String()
	if out == "" {
		return "_"
	}
	return out
}

func (t *Table) canonicalArrayName(elem TypeID) string {
	return "[]" + t.Sym(elem).Name
}

func (t *Table) canonicalArrayFixedName(elem TypeID, size uint32) string {
	return fmt.Sprintf("[%d]%s", size, t.Sym(elem).Name)
}

func (t *Table) canonicalMapName(key, value TypeID) string {
	return fmt.Sprintf("map[%s]%s", t.Sym(key).Name, t.Sym(value).Name)
}

func (t *Table) canonicalChanName(elem TypeID, isMut bool) string {
	if isMut {
		return "chan mut " + t.Sym(elem).Name
	}
	return "chan " + t.Sym(elem).Name
}

func (t *Table) canonicalThreadName(ret TypeID) string {
	return "thread " + t.Sym(ret).Name
}

func (t *Table) canonicalPromiseName(ret TypeID) string {
	return "Promise<" + t.Sym(ret).Name + ">"
}

func (t *Table) canonicalMultiReturnName(ts []TypeID) string {
	parts := make([]string, len(ts))
	for i, id := range ts {
		parts[i] = t.Sym(id).Name
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

func (t *Table) canonicalFnTypeName(fnName string, isAnon bool, params []TypeID, ret TypeID) string {
	parts := make([]string, len(params))
	for i, id := range params {
		parts[i] = t.Sym(id).Name
	}
	retName := t.Sym(ret).Name
	if isAnon || fnName == "" {
		return fmt.Sprintf("fn (%s) %s", strings.Join(parts, ", "), retName)
	}
	return fmt.Sprintf("fn %s(%s) %s", fnName, strings.Join(parts, ", "), retName)
}

// CanonicalGenericInstName produces the materialized `Name<T1, T2, …>`
// key the §4.1.6 operations register instantiations under.
func (t *Table) CanonicalGenericInstName(parent TypeID, concrete []TypeID) string {
	parts := make([]string, len(concrete))
	for i, id := range concrete {
		parts[i] = t.Sym(id).Name
	}
	return fmt.Sprintf("%s<%s>", t.Sym(parent).Name, strings.Join(parts, ", "))
}
