package wikidata

// SnakType distinguishes value-bearing snaks from the explicit
// unknown-value and no-value forms.
type SnakType string

// Snak types.
const (
	SnakTypeValue     SnakType = "value"
	SnakTypeSomeValue SnakType = "somevalue"
	SnakTypeNoValue   SnakType = "novalue"
)

// Snak is a single property assertion: a property id plus either a typed
// data value, or an explicit unknown/no-value marker.
type Snak struct {
	SnakType  SnakType   `json:"snaktype"`
	Property  string     `json:"property"`
	Hash      string     `json:"hash,omitempty"`
	DataType  DataType   `json:"datatype,omitempty"`
	DataValue *DataValue `json:"datavalue,omitempty"`
}

// Clone returns a deep copy.
func (s *Snak) Clone() *Snak {
	if s == nil {
		return nil
	}
	out := *s
	out.DataValue = s.DataValue.Clone()
	return &out
}

// Rank is a statement's rank.
type Rank string

// Statement ranks.
const (
	RankPreferred  Rank = "preferred"
	RankNormal     Rank = "normal"
	RankDeprecated Rank = "deprecated"
)

// IsValid reports whether r is one of the three canonical ranks.
func (r Rank) IsValid() bool {
	return r == RankPreferred || r == RankNormal || r == RankDeprecated
}

// Reference is an ordered group of snaks sourcing a statement. SnaksOrder
// carries the property-id ordering, which is semantically significant.
// Hash is set only on references that already exist server-side.
type Reference struct {
	Hash       string             `json:"hash,omitempty"`
	Snaks      map[string][]*Snak `json:"snaks"`
	SnaksOrder []string           `json:"snaks-order"`
}

// Clone returns a deep copy.
func (r *Reference) Clone() *Reference {
	if r == nil {
		return nil
	}
	out := &Reference{Hash: r.Hash}
	if r.Snaks != nil {
		out.Snaks = make(map[string][]*Snak, len(r.Snaks))
		for pid, snaks := range r.Snaks {
			out.Snaks[pid] = cloneSnaks(snaks)
		}
	}
	if r.SnaksOrder != nil {
		out.SnaksOrder = append([]string(nil), r.SnaksOrder...)
	}
	return out
}

// Statement is one fact attached to an entity: a main snak with a rank,
// optional qualifiers (with their property-id ordering) and references.
// The id is the statement GUID, "<entity-id>$<uuid>".
type Statement struct {
	Type            string             `json:"type"`
	ID              string             `json:"id,omitempty"`
	MainSnak        *Snak              `json:"mainsnak"`
	Rank            Rank               `json:"rank"`
	Qualifiers      map[string][]*Snak `json:"qualifiers,omitempty"`
	QualifiersOrder []string           `json:"qualifiers-order,omitempty"`
	References      []*Reference       `json:"references,omitempty"`
}

// Clone returns a deep copy, preserving nil versus empty containers so a
// clone compares structurally equal to its source.
func (s *Statement) Clone() *Statement {
	if s == nil {
		return nil
	}
	out := &Statement{
		Type:     s.Type,
		ID:       s.ID,
		MainSnak: s.MainSnak.Clone(),
		Rank:     s.Rank,
	}
	if s.Qualifiers != nil {
		out.Qualifiers = make(map[string][]*Snak, len(s.Qualifiers))
		for pid, snaks := range s.Qualifiers {
			out.Qualifiers[pid] = cloneSnaks(snaks)
		}
	}
	if s.QualifiersOrder != nil {
		out.QualifiersOrder = append([]string(nil), s.QualifiersOrder...)
	}
	if s.References != nil {
		out.References = make([]*Reference, len(s.References))
		for i, ref := range s.References {
			out.References[i] = ref.Clone()
		}
	}
	return out
}

func cloneSnaks(snaks []*Snak) []*Snak {
	if snaks == nil {
		return nil
	}
	out := make([]*Snak, len(snaks))
	for i, snak := range snaks {
		out[i] = snak.Clone()
	}
	return out
}
