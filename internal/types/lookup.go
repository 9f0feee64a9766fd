package types

import "fmt"

// AmbiguousError is returned by the embed-search helpers of §4.1.4 when
// more than one embedded type contributes a candidate.
type AmbiguousError struct {
	Name  string
	Owner string
}

func (e *AmbiguousError) Error() string {
	return fmt.Sprintf("ambiguous member %q: more than one embedded type of %s provides it", e.Name, e.Owner)
}

// MissingMemberError backs the §4.1.8 "no such field/method" structured
// failure for aggregates.
type MissingMemberError struct {
	Name  string
	Owner string
	Kind  string // "field" or "method"
}

func (e *MissingMemberError) Error() string {
	return fmt.Sprintf("%s %q not found on %s", e.Kind, e.Name, e.Owner)
}

// FindMethod implements §4.1.4 find_method: direct lookup on sym's own
// Methods, walking the alias parent chain upward; for an aggregate it
// computes (and caches) the intersection method across members.
func (t *Table) FindMethod(typ TypeID, name string) (*Function, error) {
	sym := t.Sym(typ)
	if sym.Kind == KindAggregate {
		return t.findAggregateMethod(sym, name)
	}
	if sym.Kind == KindInterface {
		t.expandInterfaceEmbeds(sym, 0)
		for i := range sym.Interface.Methods {
			if sym.Interface.Methods[i].Name == name {
				return &sym.Interface.Methods[i], nil
			}
		}
		return nil, nil
	}
	for cur, id := sym, typ; ; {
		for i := range cur.Methods {
			if cur.Methods[i].Name == name {
				return &cur.Methods[i], nil
			}
		}
		if cur.Kind != KindAlias || !cur.Alias.Parent.IsValid() || cur.Alias.Parent == id {
			return nil, nil
		}
		id = cur.Alias.Parent
		cur = t.Sym(id)
	}
}

func (t *Table) findAggregateMethod(sym *Symbol, name string) (*Function, error) {
	if sym.Aggregate.cachedMethod == nil {
		sym.Aggregate.cachedMethod = make(map[string]*Function)
	}
	if m, ok := sym.Aggregate.cachedMethod[name]; ok {
		if m == nil {
			return nil, &MissingMemberError{Name: name, Owner: sym.Name, Kind: "method"}
		}
		return m, nil
	}
	var found *Function
	for _, member := range sym.Aggregate.Members {
		m, err := t.FindMethod(member, name)
		if err != nil || m == nil {
			sym.Aggregate.cachedMethod[name] = nil
			return nil, &MissingMemberError{Name: name, Owner: sym.Name, Kind: "method"}
		}
		if found == nil {
			found = m
		} else if found.Return != m.Return || len(found.Params) != len(m.Params) {
			sym.Aggregate.cachedMethod[name] = nil
			return nil, &MissingMemberError{Name: name, Owner: sym.Name, Kind: "method"}
		}
	}
	sym.Aggregate.cachedMethod[name] = found
	return found, nil
}

func (t *Table) embedsOf(sym *Symbol) []TypeID {
	switch sym.Kind {
	case KindStruct:
		return sym.Struct.Embeds
	case KindInterface:
		return sym.Interface.Embeds
	case KindAggregate:
		return sym.Aggregate.Members
	case KindAlias:
		if sym.Alias.Parent.IsValid() {
			return []TypeID{sym.Alias.Parent}
		}
	}
	return nil
}

// FindMethodFromEmbeds implements find_method_from_embeds: depth-first
// search of sym's embedded types in declaration order, recursing into each embed's own
// embeds (not just its direct methods) so a method that only exists on
// a grandchild embed still resolves. Bounded by EmbedDepthCutoff so a
// cyclic embed chain terminates instead of recursing forever.
func (t *Table) FindMethodFromEmbeds(typ TypeID, name string) (*Function, error) {
	return t.findMethodFromEmbeds(typ, name, 0)
}

func (t *Table) findMethodFromEmbeds(typ TypeID, name string, depth int) (*Function, error) {
	sym := t.Sym(typ)
	if depth >= t.embedDepthCutoff() {
		return nil, &MissingMemberError{Name: name, Owner: sym.Name, Kind: "method"}
	}
	var found *Function
	var foundIn TypeID
	for _, embed := range t.embedsOf(sym) {
		m, err := t.findMethodWithEmbeds(embed, name, depth+1)
		if err != nil {
			continue
		}
		if m != nil {
			if found != nil && foundIn != embed {
				return nil, &AmbiguousError{Name: name, Owner: sym.Name}
			}
			found, foundIn = m, embed
		}
	}
	if found == nil {
		return nil, &MissingMemberError{Name: name, Owner: sym.Name, Kind: "method"}
	}
	return found, nil
}

// FindMethodWithEmbeds implements find_method_with_embeds: direct lookup
// first, then embed search.
func (t *Table) FindMethodWithEmbeds(typ TypeID, name string) (*Function, error) {
	return t.findMethodWithEmbeds(typ, name, 0)
}

func (t *Table) findMethodWithEmbeds(typ TypeID, name string, depth int) (*Function, error) {
	if m, _ := t.FindMethod(typ, name); m != nil {
		return m, nil
	}
	return t.findMethodFromEmbeds(typ, name, depth)
}

func fieldsOf(sym *Symbol) []Field {
	switch sym.Kind {
	case KindStruct:
		return sym.Struct.Fields
	case KindInterface:
		return sym.Interface.Fields
	}
	return nil
}

// FindField implements §4.1.4 find_field: struct/interface direct
// fields, aggregate intersection, and sum-type lazily-resolved common
// fields.
func (t *Table) FindField(typ TypeID, name string) (*Field, error) {
	sym := t.Sym(typ)
	switch sym.Kind {
	case KindStruct, KindInterface:
		if sym.Kind == KindInterface {
			t.expandInterfaceEmbeds(sym, 0)
		}
		for i, f := range fieldsOf(sym) {
			if f.Name == name {
				fs := fieldsOf(sym)
				return &fs[i], nil
			}
		}
		return nil, &MissingMemberError{Name: name, Owner: sym.Name, Kind: "field"}
	case KindAggregate:
		return t.findAggregateField(sym, name)
	case KindSumType:
		return t.findSumTypeCommonField(sym, name)
	default:
		return nil, &MissingMemberError{Name: name, Owner: sym.Name, Kind: "field"}
	}
}

func (t *Table) findAggregateField(sym *Symbol, name string) (*Field, error) {
	if sym.Aggregate.cachedField == nil {
		sym.Aggregate.cachedField = make(map[string]*Field)
	}
	if f, ok := sym.Aggregate.cachedField[name]; ok {
		if f == nil {
			return nil, &MissingMemberError{Name: name, Owner: sym.Name, Kind: "field"}
		}
		return f, nil
	}
	var found *Field
	for _, member := range sym.Aggregate.Members {
		f, err := t.FindField(member, name)
		if err != nil {
			sym.Aggregate.cachedField[name] = nil
			return nil, &MissingMemberError{Name: name, Owner: sym.Name, Kind: "field"}
		}
		if found == nil {
			found = f
		} else if found.Type != f.Type {
			sym.Aggregate.cachedField[name] = nil
			return nil, &MissingMemberError{Name: name, Owner: sym.Name, Kind: "field"}
		}
	}
	sym.Aggregate.cachedField[name] = found
	return found, nil
}

// findSumTypeCommonField implements the §9 "lazy sum-type field
// common-set": a field is common when it appears, with the same type,
// in every variant.
func (t *Table) findSumTypeCommonField(sym *Symbol, name string) (*Field, error) {
	if !sym.SumType.commonValid {
		sym.SumType.commonFields = t.computeSumTypeCommonFields(sym)
		sym.SumType.commonValid = true
	}
	for i := range sym.SumType.commonFields {
		if sym.SumType.commonFields[i].Name == name {
			return &sym.SumType.commonFields[i], nil
		}
	}
	return nil, &MissingMemberError{Name: name, Owner: sym.Name, Kind: "field"}
}

func (t *Table) computeSumTypeCommonFields(sym *Symbol) []Field {
	if len(sym.SumType.Variants) == 0 {
		return nil
	}
	first := fieldsOf(t.Sym(sym.SumType.Variants[0]))
	common := make([]Field, 0, len(first))
	for _, f := range first {
		sameEverywhere := true
		for _, v := range sym.SumType.Variants[1:] {
			other, err := t.FindField(v, f.Name)
			if err != nil || other.Type != f.Type {
				sameEverywhere = false
				break
			}
		}
		if sameEverywhere {
			common = append(common, f)
		}
	}
	return common
}

// FindFieldFromEmbeds implements find_field_from_embeds, mirroring the
// method case: recurses into each embed's own embeds, bounded by
// EmbedDepthCutoff.
func (t *Table) FindFieldFromEmbeds(typ TypeID, name string) (*Field, error) {
	return t.findFieldFromEmbeds(typ, name, 0)
}

func (t *Table) findFieldFromEmbeds(typ TypeID, name string, depth int) (*Field, error) {
	sym := t.Sym(typ)
	if depth >= t.embedDepthCutoff() {
		return nil, &MissingMemberError{Name: name, Owner: sym.Name, Kind: "field"}
	}
	var found *Field
	var foundIn TypeID
	for _, embed := range t.embedsOf(sym) {
		f, err := t.findFieldWithEmbeds(embed, name, depth+1)
		if err != nil {
			continue
		}
		if f != nil {
			if found != nil && foundIn != embed {
				return nil, &AmbiguousError{Name: name, Owner: sym.Name}
			}
			found, foundIn = f, embed
		}
	}
	if found == nil {
		return nil, &MissingMemberError{Name: name, Owner: sym.Name, Kind: "field"}
	}
	return found, nil
}
