package patch

import (
	"slices"

	"github.com/c360studio/wikipatch/rdf"
	"github.com/c360studio/wikipatch/vocabulary/wikibase"
	"github.com/c360studio/wikipatch/wikidata"
)

// resolveSnak builds a value snak for property from a graph term,
// checking the resolved value against the property's declared datatype.
func (st *processState) resolveSnak(property string, object rdf.Term) (*wikidata.Snak, error) {
	datatype, ok := st.datatypes[property]
	if !ok {
		return nil, &ResolveError{Term: property, Reason: "property datatype unknown"}
	}
	wantType, ok := datatype.ValueType()
	if !ok {
		return nil, &ResolveError{Term: property, Reason: "unsupported property datatype " + string(datatype)}
	}
	value, err := resolveTerm(st.graph, object)
	if err != nil {
		return nil, err
	}
	if value.Type != wantType {
		return nil, resolveErrorf(object, "value type %s does not satisfy %s property %s",
			value.Type, datatype, property)
	}
	return &wikidata.Snak{
		SnakType:  wikidata.SnakTypeValue,
		Property:  property,
		DataType:  datatype,
		DataValue: value,
	}, nil
}

// resolveReference builds a reference from a wasDerivedFrom object node.
// Snaks are collected from pr: and prv: predicates; the snaks-order list
// records each property at first encounter.
func (st *processState) resolveReference(node rdf.Term) (*wikidata.Reference, error) {
	ref := &wikidata.Reference{Snaks: make(map[string][]*wikidata.Snak)}
	for _, po := range st.graph.PredicateObjects(node) {
		pred := wikibase.ClassifyPredicate(po.Predicate)
		if pred.Kind != wikibase.KindReferenceSnak {
			st.logger.Warn("skipping predicate on reference node",
				"predicate", po.Predicate.String())
			continue
		}
		snak, err := st.resolveSnak(pred.Property, po.Object)
		if err != nil {
			return nil, err
		}
		if !slices.Contains(ref.SnaksOrder, pred.Property) {
			ref.SnaksOrder = append(ref.SnaksOrder, pred.Property)
		}
		ref.Snaks[pred.Property] = append(ref.Snaks[pred.Property], snak)
	}
	if len(ref.Snaks) == 0 {
		return nil, resolveErrorf(node, "reference node has no snaks")
	}
	return ref, nil
}

// appendQualifier adds a qualifier snak unless an equal one is already
// present on the statement.
func appendQualifier(statement *wikidata.Statement, snak *wikidata.Snak) {
	if anySnakEquals(statement.Qualifiers[snak.Property], snak) {
		return
	}
	if statement.Qualifiers == nil {
		statement.Qualifiers = make(map[string][]*wikidata.Snak)
	}
	if !slices.Contains(statement.QualifiersOrder, snak.Property) {
		statement.QualifiersOrder = append(statement.QualifiersOrder, snak.Property)
	}
	statement.Qualifiers[snak.Property] = append(statement.Qualifiers[snak.Property], snak)
}

// setQualifier makes snak the property's only qualifier. A statement
// already holding exactly that one value is left untouched.
func setQualifier(statement *wikidata.Statement, snak *wikidata.Snak) {
	if onlySnakEquals(statement.Qualifiers[snak.Property], snak) {
		return
	}
	if statement.Qualifiers == nil {
		statement.Qualifiers = make(map[string][]*wikidata.Snak)
	}
	if !slices.Contains(statement.QualifiersOrder, snak.Property) {
		statement.QualifiersOrder = append(statement.QualifiersOrder, snak.Property)
	}
	statement.Qualifiers[snak.Property] = []*wikidata.Snak{snak}
}

// deleteQualifiers removes every qualifier of property from the
// statement, including its order entry.
func deleteQualifiers(statement *wikidata.Statement, property string) {
	if _, ok := statement.Qualifiers[property]; !ok {
		return
	}
	delete(statement.Qualifiers, property)
	if len(statement.Qualifiers) == 0 {
		statement.Qualifiers = nil
	}
	statement.QualifiersOrder = slices.DeleteFunc(statement.QualifiersOrder, func(p string) bool {
		return p == property
	})
	if len(statement.QualifiersOrder) == 0 {
		statement.QualifiersOrder = nil
	}
}
