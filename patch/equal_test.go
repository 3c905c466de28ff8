package patch

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/c360studio/wikipatch/wikidata"
)

func entityValue(entityType string, numericID int64, id string) *wikidata.DataValue {
	return wikidata.NewEntityIDValue(wikidata.EntityIDValue{
		EntityType: entityType,
		NumericID:  numericID,
		ID:         id,
	})
}

func quantityValue(amount, unit, upper, lower string) *wikidata.DataValue {
	return wikidata.NewQuantityValue(wikidata.QuantityValue{
		Amount:     amount,
		Unit:       unit,
		UpperBound: upper,
		LowerBound: lower,
	})
}

func TestDataValueEqualsEntityID(t *testing.T) {
	tests := []struct {
		name string
		a, b *wikidata.DataValue
		want bool
	}{
		{
			name: "numeric ids match",
			a:    entityValue("item", 42, "Q42"),
			b:    entityValue("item", 42, "Q42"),
			want: true,
		},
		{
			name: "numeric id wins over id string",
			a:    entityValue("item", 42, ""),
			b:    entityValue("item", 42, "Q42"),
			want: true,
		},
		{
			name: "id string fallback when a numeric id is absent",
			a:    entityValue("item", 0, "Q42"),
			b:    entityValue("item", 42, "Q42"),
			want: true,
		},
		{
			name: "different entities",
			a:    entityValue("item", 42, "Q42"),
			b:    entityValue("item", 43, "Q43"),
			want: false,
		},
		{
			name: "different entity types",
			a:    entityValue("item", 42, "Q42"),
			b:    entityValue("property", 42, "P42"),
			want: false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, dataValueEquals(tt.a, tt.b))
			assert.Equal(t, tt.want, dataValueEquals(tt.b, tt.a))
		})
	}
}

func TestDataValueEqualsQuantity(t *testing.T) {
	tests := []struct {
		name string
		a, b *wikidata.DataValue
		want bool
	}{
		{
			name: "identical",
			a:    quantityValue("+5", "1", "", ""),
			b:    quantityValue("+5", "1", "", ""),
			want: true,
		},
		{
			name: "unitless alias spellings",
			a:    quantityValue("+5", "1", "", ""),
			b:    quantityValue("+5", "https://www.wikidata.org/wiki/Q199", "", ""),
			want: true,
		},
		{
			name: "bounds on one side only compare by amount",
			a:    quantityValue("+5", "1", "+6", "+4"),
			b:    quantityValue("+5", "1", "", ""),
			want: true,
		},
		{
			name: "bounds on one side ignore the unit too",
			a:    quantityValue("+5", "http://www.wikidata.org/entity/Q11573", "+6", "+4"),
			b:    quantityValue("+5", "1", "", ""),
			want: true,
		},
		{
			name: "bounds on one side still need equal amounts",
			a:    quantityValue("+5", "1", "+6", "+4"),
			b:    quantityValue("+6", "1", "", ""),
			want: false,
		},
		{
			name: "bounds on both sides must match",
			a:    quantityValue("+5", "1", "+6", "+4"),
			b:    quantityValue("+5", "1", "+7", "+3"),
			want: false,
		},
		{
			name: "different amounts",
			a:    quantityValue("+5", "1", "", ""),
			b:    quantityValue("+6", "1", "", ""),
			want: false,
		},
		{
			name: "different units",
			a:    quantityValue("+5", "http://www.wikidata.org/entity/Q11573", "", ""),
			b:    quantityValue("+5", "1", "", ""),
			want: false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, dataValueEquals(tt.a, tt.b))
			assert.Equal(t, tt.want, dataValueEquals(tt.b, tt.a))
		})
	}
}

func TestDataValueEqualsStructural(t *testing.T) {
	assert.True(t, dataValueEquals(wikidata.NewStringValue("a"), wikidata.NewStringValue("a")))
	assert.False(t, dataValueEquals(wikidata.NewStringValue("a"), wikidata.NewStringValue("b")))

	timeA := wikidata.NewTimeValue(wikidata.TimeValue{Time: "+2020-01-01T00:00:00Z", Precision: 11})
	timeB := wikidata.NewTimeValue(wikidata.TimeValue{Time: "+2020-01-01T00:00:00Z", Precision: 11})
	timeC := wikidata.NewTimeValue(wikidata.TimeValue{Time: "+2020-01-01T00:00:00Z", Precision: 9})
	assert.True(t, dataValueEquals(timeA, timeB))
	assert.False(t, dataValueEquals(timeA, timeC))

	// Mixed value types never compare equal.
	assert.False(t, dataValueEquals(wikidata.NewStringValue("1"), quantityValue("+1", "1", "", "")))
}

func TestSnakEqualsIgnoresHashAndDatatype(t *testing.T) {
	a := &wikidata.Snak{
		SnakType:  wikidata.SnakTypeValue,
		Property:  "P4947",
		Hash:      "abc123",
		DataType:  wikidata.DataTypeExternalID,
		DataValue: wikidata.NewStringValue("278"),
	}
	b := &wikidata.Snak{
		SnakType:  wikidata.SnakTypeValue,
		Property:  "P4947",
		DataValue: wikidata.NewStringValue("278"),
	}
	assert.True(t, snakEquals(a, b))

	c := b.Clone()
	c.Property = "P345"
	assert.False(t, snakEquals(a, c))

	d := b.Clone()
	d.SnakType = wikidata.SnakTypeNoValue
	assert.False(t, snakEquals(a, d))
}

func TestSnakListHelpers(t *testing.T) {
	snak := &wikidata.Snak{SnakType: wikidata.SnakTypeValue, Property: "P1", DataValue: wikidata.NewStringValue("x")}
	other := &wikidata.Snak{SnakType: wikidata.SnakTypeValue, Property: "P1", DataValue: wikidata.NewStringValue("y")}

	assert.True(t, anySnakEquals([]*wikidata.Snak{other, snak}, snak))
	assert.False(t, anySnakEquals([]*wikidata.Snak{other}, snak))
	assert.False(t, anySnakEquals(nil, snak))

	assert.True(t, onlySnakEquals([]*wikidata.Snak{snak}, snak))
	assert.False(t, onlySnakEquals([]*wikidata.Snak{snak, other}, snak))
	assert.False(t, onlySnakEquals(nil, snak))

	assert.True(t, snakListsEqual([]*wikidata.Snak{snak, other}, []*wikidata.Snak{snak, other}))
	assert.False(t, snakListsEqual([]*wikidata.Snak{snak, other}, []*wikidata.Snak{other, snak}))
	assert.False(t, snakListsEqual([]*wikidata.Snak{snak}, []*wikidata.Snak{snak, other}))
}

func TestReferenceEquals(t *testing.T) {
	ref := func(hash string) *wikidata.Reference {
		return &wikidata.Reference{
			Hash: hash,
			Snaks: map[string][]*wikidata.Snak{
				"P854": {{SnakType: wikidata.SnakTypeValue, Property: "P854", DataValue: wikidata.NewStringValue("http://example.com")}},
			},
			SnaksOrder: []string{"P854"},
		}
	}

	assert.True(t, referenceEquals(ref("a"), ref("b")), "hashes must not participate")

	reordered := ref("")
	reordered.SnaksOrder = []string{"P813"}
	assert.False(t, referenceEquals(ref(""), reordered))

	different := ref("")
	different.Snaks["P854"][0].DataValue = wikidata.NewStringValue("http://other.example")
	assert.False(t, referenceEquals(ref(""), different))

	assert.True(t, referencesContain([]*wikidata.Reference{ref("x")}, ref("")))
	assert.False(t, referencesContain(nil, ref("")))
}
