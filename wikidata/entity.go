package wikidata

import "regexp"

// EntityType distinguishes items from properties.
type EntityType string

// Entity types.
const (
	EntityTypeItem     EntityType = "item"
	EntityTypeProperty EntityType = "property"
)

// LanguageValue is one label or description in a single language.
type LanguageValue struct {
	Language string `json:"language"`
	Value    string `json:"value"`
}

// Entity is a Wikibase item or property. DataType is set for properties
// only. Missing marks an entity the API reported as absent or deleted;
// such entities carry only their ID.
type Entity struct {
	Type         EntityType               `json:"type"`
	ID           string                   `json:"id"`
	Title        string                   `json:"title,omitempty"`
	LastRevID    int64                    `json:"lastrevid,omitempty"`
	DataType     DataType                 `json:"datatype,omitempty"`
	Labels       map[string]LanguageValue `json:"labels,omitempty"`
	Descriptions map[string]LanguageValue `json:"descriptions,omitempty"`
	Claims       map[string][]*Statement  `json:"claims,omitempty"`
	Missing      bool                     `json:"-"`
}

// Clone returns a deep copy, preserving nil versus empty containers.
func (e *Entity) Clone() *Entity {
	if e == nil {
		return nil
	}
	out := *e
	if e.Labels != nil {
		out.Labels = make(map[string]LanguageValue, len(e.Labels))
		for lang, v := range e.Labels {
			out.Labels[lang] = v
		}
	}
	if e.Descriptions != nil {
		out.Descriptions = make(map[string]LanguageValue, len(e.Descriptions))
		for lang, v := range e.Descriptions {
			out.Descriptions[lang] = v
		}
	}
	if e.Claims != nil {
		out.Claims = make(map[string][]*Statement, len(e.Claims))
		for pid, statements := range e.Claims {
			cloned := make([]*Statement, len(statements))
			for i, statement := range statements {
				cloned[i] = statement.Clone()
			}
			out.Claims[pid] = cloned
		}
	}
	return &out
}

// FindStatement returns the statement with the given GUID, or nil.
func (e *Entity) FindStatement(guid string) *Statement {
	for _, statements := range e.Claims {
		for _, statement := range statements {
			if statement.ID == guid {
				return statement
			}
		}
	}
	return nil
}

var (
	itemIDPattern     = regexp.MustCompile(`^Q\d+$`)
	propertyIDPattern = regexp.MustCompile(`^P\d+$`)
	statementIDPrefix = regexp.MustCompile(`^([Qq]\d+)-`)
)

// IsItemID reports whether s is an item id like "Q42".
func IsItemID(s string) bool { return itemIDPattern.MatchString(s) }

// IsPropertyID reports whether s is a property id like "P31".
func IsPropertyID(s string) bool { return propertyIDPattern.MatchString(s) }

// StatementItemID extracts the owning item id from a statement-id local
// name like "Q42-9D3B0F86-..." (lowercase "q" tolerated), or returns
// false if s does not look like one.
func StatementItemID(s string) (string, bool) {
	m := statementIDPrefix.FindStringSubmatch(s)
	if m == nil {
		return "", false
	}
	id := m[1]
	if id[0] == 'q' {
		id = "Q" + id[1:]
	}
	return id, true
}
