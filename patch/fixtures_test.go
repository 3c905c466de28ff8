package patch

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/c360studio/wikipatch/rdf"
	"github.com/c360studio/wikipatch/vocabulary/wikibase"
	"github.com/c360studio/wikipatch/wikidata"
)

// fakeLookup serves fixture entities from memory, recording each batch
// of requested ids. Unknown ids come back flagged missing, like the
// live API reports deleted entities.
type fakeLookup struct {
	entities map[string]*wikidata.Entity
	calls    [][]string
}

func (f *fakeLookup) GetEntities(_ context.Context, ids []string) (map[string]*wikidata.Entity, error) {
	f.calls = append(f.calls, ids)
	out := make(map[string]*wikidata.Entity, len(ids))
	for _, id := range ids {
		if entity, ok := f.entities[id]; ok {
			out[id] = entity.Clone()
			continue
		}
		out[id] = &wikidata.Entity{ID: id, Missing: true}
	}
	return out, nil
}

func property(id string, datatype wikidata.DataType) *wikidata.Entity {
	return &wikidata.Entity{Type: wikidata.EntityTypeProperty, ID: id, DataType: datatype}
}

func valueSnak(property string, datatype wikidata.DataType, value *wikidata.DataValue) *wikidata.Snak {
	return &wikidata.Snak{
		SnakType:  wikidata.SnakTypeValue,
		Property:  property,
		DataType:  datatype,
		DataValue: value,
	}
}

func itemValue(numericID int64, id string) *wikidata.DataValue {
	return wikidata.NewEntityIDValue(wikidata.EntityIDValue{
		EntityType: "item",
		NumericID:  numericID,
		ID:         id,
	})
}

// fixtureLookup builds the test universe: a film item with an external
// id and two cast statements, an item whose external id is deprecated,
// and an empty sandbox item.
func fixtureLookup() *fakeLookup {
	shawshank := &wikidata.Entity{
		Type:      wikidata.EntityTypeItem,
		ID:        "Q172241",
		LastRevID: 1000,
		Claims: map[string][]*wikidata.Statement{
			"P4947": {{
				Type:     "statement",
				ID:       "Q172241$6B571F20-7732-47E1-86B2-1DFA6D0A15F5",
				MainSnak: valueSnak("P4947", wikidata.DataTypeExternalID, wikidata.NewStringValue("278")),
				Rank:     wikidata.RankNormal,
			}},
			"P161": {
				{
					Type:     "statement",
					ID:       "Q172241$E0C7392E-5020-4DC1-8520-EEBF57C3AB66",
					MainSnak: valueSnak("P161", wikidata.DataTypeItem, itemValue(48337, "Q48337")),
					Rank:     wikidata.RankNormal,
					Qualifiers: map[string][]*wikidata.Snak{
						"P4633": {valueSnak("P4633", wikidata.DataTypeString, wikidata.NewStringValue(`Ellis Boyd "Red" Redding`))},
					},
					QualifiersOrder: []string{"P4633"},
				},
				{
					Type:     "statement",
					ID:       "Q172241$91B6C9F4-2F78-4577-9726-6E9D8D76B486",
					MainSnak: valueSnak("P161", wikidata.DataTypeItem, itemValue(25078, "Q25078")),
					Rank:     wikidata.RankNormal,
					Qualifiers: map[string][]*wikidata.Snak{
						"P4633": {valueSnak("P4633", wikidata.DataTypeString, wikidata.NewStringValue("Andy Dufresne"))},
					},
					QualifiersOrder: []string{"P4633"},
				},
			},
		},
	}

	deprecatedItem := &wikidata.Entity{
		Type:      wikidata.EntityTypeItem,
		ID:        "Q1292541",
		LastRevID: 2000,
		Claims: map[string][]*wikidata.Statement{
			"P4947": {{
				Type:     "statement",
				ID:       "Q1292541$2203A57C-488F-4371-9F88-9A5EB91C4883",
				MainSnak: valueSnak("P4947", wikidata.DataTypeExternalID, wikidata.NewStringValue("429486")),
				Rank:     wikidata.RankDeprecated,
				Qualifiers: map[string][]*wikidata.Snak{
					"P2241": {valueSnak("P2241", wikidata.DataTypeItem, itemValue(41755623, "Q41755623"))},
				},
				QualifiersOrder: []string{"P2241"},
			}},
		},
	}

	sandbox := &wikidata.Entity{
		Type:      wikidata.EntityTypeItem,
		ID:        "Q4115189",
		LastRevID: 3000,
	}

	return &fakeLookup{entities: map[string]*wikidata.Entity{
		"Q172241":  shawshank,
		"Q1292541": deprecatedItem,
		"Q4115189": sandbox,
		"Q42":      {Type: wikidata.EntityTypeItem, ID: "Q42", LastRevID: 42},
		"Q48337":   {Type: wikidata.EntityTypeItem, ID: "Q48337", LastRevID: 48337},
		"Q25078":   {Type: wikidata.EntityTypeItem, ID: "Q25078", LastRevID: 25078},
		"Q11573":   {Type: wikidata.EntityTypeItem, ID: "Q11573", LastRevID: 11573},
		"P31":      property("P31", wikidata.DataTypeItem),
		"P161":     property("P161", wikidata.DataTypeItem),
		"P813":     property("P813", wikidata.DataTypeTime),
		"P854":     property("P854", wikidata.DataTypeURL),
		"P1476":    property("P1476", wikidata.DataTypeMonolingualText),
		"P2043":    property("P2043", wikidata.DataTypeQuantity),
		"P2241":    property("P2241", wikidata.DataTypeItem),
		"P4633":    property("P4633", wikidata.DataTypeString),
		"P4947":    property("P4947", wikidata.DataTypeExternalID),
	}}
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func parseDocument(t *testing.T, doc string) *rdf.Graph {
	t.Helper()
	g, err := rdf.DecodeTurtle([]byte(doc), wikibase.Prefixes())
	require.NoError(t, err)
	return g
}

func processDocument(t *testing.T, doc string) ([]Edit, error) {
	t.Helper()
	return ProcessGraph(t.Context(), parseDocument(t, doc), Options{
		Lookup: fixtureLookup(),
		Logger: testLogger(),
	})
}

func mustProcess(t *testing.T, doc string) []Edit {
	t.Helper()
	edits, err := processDocument(t, doc)
	require.NoError(t, err)
	return edits
}
