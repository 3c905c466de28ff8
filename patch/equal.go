package patch

import (
	"reflect"
	"slices"

	"github.com/c360studio/wikipatch/vocabulary/wikibase"
	"github.com/c360studio/wikipatch/wikidata"
)

// dataValueEquals compares two data values for patch purposes. Stored
// statements carry historical spellings a freshly-resolved value never
// does, so two value types get looser rules than structural equality:
//
//   - entity ids compare by numeric id when both sides carry one, else
//     by id string, tolerating payloads missing either field;
//   - quantities normalize the unitless-unit alias, and when exactly one
//     side carries bounds only the amounts compare: a bare decimal
//     literal must match a stored value that gained bounds or a unit.
func dataValueEquals(a, b *wikidata.DataValue) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.Type != b.Type {
		return false
	}
	if ea, ok := a.EntityID(); ok {
		eb, _ := b.EntityID()
		return entityIDEquals(ea, eb)
	}
	if qa, ok := a.Quantity(); ok {
		qb, _ := b.Quantity()
		return quantityEquals(qa, qb)
	}
	return reflect.DeepEqual(a.Value, b.Value)
}

func entityIDEquals(a, b *wikidata.EntityIDValue) bool {
	if a.EntityType != b.EntityType {
		return false
	}
	if a.NumericID != 0 && b.NumericID != 0 {
		return a.NumericID == b.NumericID
	}
	return a.ID == b.ID
}

func quantityEquals(a, b *wikidata.QuantityValue) bool {
	if a.Amount != b.Amount {
		return false
	}
	boundedA := a.UpperBound != "" || a.LowerBound != ""
	boundedB := b.UpperBound != "" || b.LowerBound != ""
	if boundedA != boundedB {
		return true
	}
	if normalizeUnit(a.Unit) != normalizeUnit(b.Unit) {
		return false
	}
	return a.UpperBound == b.UpperBound && a.LowerBound == b.LowerBound
}

func normalizeUnit(unit string) string {
	if unit == wikibase.UnitlessUnitAlias {
		return wikibase.UnitlessUnit
	}
	return unit
}

// snakEquals compares two snaks by snak type, property and value. Hashes
// and the optional datatype annotation do not participate.
func snakEquals(a, b *wikidata.Snak) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.SnakType == b.SnakType &&
		a.Property == b.Property &&
		dataValueEquals(a.DataValue, b.DataValue)
}

func anySnakEquals(snaks []*wikidata.Snak, snak *wikidata.Snak) bool {
	return slices.ContainsFunc(snaks, func(s *wikidata.Snak) bool {
		return snakEquals(s, snak)
	})
}

func onlySnakEquals(snaks []*wikidata.Snak, snak *wikidata.Snak) bool {
	return len(snaks) == 1 && snakEquals(snaks[0], snak)
}

func snakListsEqual(a, b []*wikidata.Snak) bool {
	return slices.EqualFunc(a, b, snakEquals)
}

// referenceEquals compares two references by snaks-order and snaks,
// ignoring hashes.
func referenceEquals(a, b *wikidata.Reference) bool {
	if a == nil || b == nil {
		return a == b
	}
	if !slices.Equal(a.SnaksOrder, b.SnaksOrder) {
		return false
	}
	if len(a.Snaks) != len(b.Snaks) {
		return false
	}
	for property, snaks := range a.Snaks {
		if !snakListsEqual(snaks, b.Snaks[property]) {
			return false
		}
	}
	return true
}

func referencesContain(refs []*wikidata.Reference, ref *wikidata.Reference) bool {
	return slices.ContainsFunc(refs, func(r *wikidata.Reference) bool {
		return referenceEquals(r, ref)
	})
}
