package wikibase

import (
	"strings"

	"github.com/c360studio/wikipatch/rdf"
	"github.com/c360studio/wikipatch/wikidata"
)

// prefixBindings maps prefix labels to namespaces, in the binding order
// of the standard Wikidata Query Service prefix set. Bindings whose
// namespace extends another's must resolve by longest match.
var prefixBindings = []struct {
	label     string
	namespace string
}{
	{"wd", NSEntity},
	{"wds", NSStatement},
	{"wdv", NSValue},
	{"wdref", NSReference},
	{"wdt", NSPropDirect},
	{"p", NSProp},
	{"wdno", NSPropNoValue},
	{"ps", NSPropStatement},
	{"psv", NSPropStatementValue},
	{"pq", NSPropQualifier},
	{"pqv", NSPropQualifierValue},
	{"pqe", NSPropQualifierExclusive},
	{"pqve", NSPropQualifierValueExclusive},
	{"pr", NSPropReference},
	{"prv", NSPropReferenceValue},
	{"wikibase", NSOntology},
	{"prov", NSProv},
	{"geo", NSGeo},
	{"commonsMedia", NSCommonsMedia},
	{"wikidatabots", NSBots},
	{"rdf", rdf.NamespaceRDF},
	{"xsd", rdf.NamespaceXSD},

	// Bound for input compatibility with query-service documents; no
	// patch semantics attach to these.
	{"wdtn", "http://www.wikidata.org/prop/direct-normalized/"},
	{"wdata", "http://www.wikidata.org/wiki/Special:EntityData/"},
	{"psn", "http://www.wikidata.org/prop/statement/value-normalized/"},
	{"pqn", "http://www.wikidata.org/prop/qualifier/value-normalized/"},
	{"prn", "http://www.wikidata.org/prop/reference/value-normalized/"},
	{"rdfs", "http://www.w3.org/2000/01/rdf-schema#"},
	{"owl", "http://www.w3.org/2002/07/owl#"},
	{"skos", "http://www.w3.org/2004/02/skos/core#"},
	{"schema", "http://schema.org/"},
	{"dct", "http://purl.org/dc/terms/"},
	{"cc", "http://creativecommons.org/ns#"},
	{"ontolex", "http://www.w3.org/ns/lemon/ontolex#"},
	{"bd", "http://www.bigdata.com/rdf#"},
	{"hint", "http://www.bigdata.com/queryHints#"},
}

// Prefixes returns the full prefix table for the Turtle decoder, so
// patch documents need no prefix preamble.
func Prefixes() map[string]string {
	out := make(map[string]string, len(prefixBindings))
	for _, b := range prefixBindings {
		out[b.label] = b.namespace
	}
	return out
}

// SplitIRI splits an IRI into a bound prefix label and local name using
// longest-namespace matching. IRIs outside every bound namespace return
// an empty label and the full IRI as the local name.
func SplitIRI(iri rdf.IRI) (label, local string) {
	s := string(iri)
	best := -1
	for i, b := range prefixBindings {
		if strings.HasPrefix(s, b.namespace) {
			if best == -1 || len(b.namespace) > len(prefixBindings[best].namespace) {
				best = i
			}
		}
	}
	if best == -1 {
		return "", s
	}
	return prefixBindings[best].label, s[len(prefixBindings[best].namespace):]
}

// PredicateKind is the closed classification of predicates that drive
// patch semantics. Each predicate is parsed once into a Predicate and
// dispatched on its kind.
type PredicateKind int

// Predicate kinds.
const (
	// KindUnknown covers predicates outside the recognized vocabulary.
	KindUnknown PredicateKind = iota

	// KindDirectValue is wdt:Pnn on an entity subject: assert a truthy
	// value, appending a statement only when no equal value exists.
	KindDirectValue

	// KindStatement is p:Pnn on an entity subject: the object is a blank
	// node describing a brand-new statement.
	KindStatement

	// KindStatementValue is ps:Pnn or psv:Pnn: the statement's main
	// value, replaced only when different.
	KindStatementValue

	// KindQualifier is pq:Pnn or pqv:Pnn: append a qualifier value
	// unless an equal one is present.
	KindQualifier

	// KindQualifierExclusive is pqe:Pnn or pqve:Pnn: a property holds
	// exactly one qualifier value; an empty object node deletes the
	// property's qualifiers entirely.
	KindQualifierExclusive

	// KindReferenceSnak is pr:Pnn or prv:Pnn, valid only on reference
	// nodes hanging off a prov predicate.
	KindReferenceSnak

	// KindRank is wikibase:rank with one of the three rank IRIs.
	KindRank

	// KindDerivedFrom is prov:wasDerivedFrom: add a reference unless an
	// equal one is present.
	KindDerivedFrom

	// KindOnlyDerivedFrom is prov:wasOnlyDerivedFrom: the single new
	// reference replaces the whole reference list unless already equal.
	KindOnlyDerivedFrom

	// KindEditSummary records edit summary text for the owning entity.
	KindEditSummary

	// KindAssertValue is the value-resolution self-test predicate.
	KindAssertValue
)

// Predicate is a classified predicate. Property is set for the
// property-bearing kinds and holds the local property id ("P31").
type Predicate struct {
	Kind     PredicateKind
	Property string
}

var predicateKindsByPrefix = map[string]PredicateKind{
	"wdt":  KindDirectValue,
	"p":    KindStatement,
	"ps":   KindStatementValue,
	"psv":  KindStatementValue,
	"pq":   KindQualifier,
	"pqv":  KindQualifier,
	"pqe":  KindQualifierExclusive,
	"pqve": KindQualifierExclusive,
	"pr":   KindReferenceSnak,
	"prv":  KindReferenceSnak,
}

// ClassifyPredicate parses a predicate IRI into its patch semantics.
// Predicates in a property namespace whose local name is not a property
// id, and predicates outside the vocabulary, classify as KindUnknown.
func ClassifyPredicate(iri rdf.IRI) Predicate {
	switch iri {
	case IRIRank:
		return Predicate{Kind: KindRank}
	case IRIWasDerivedFrom:
		return Predicate{Kind: KindDerivedFrom}
	case IRIWasOnlyDerivedFrom:
		return Predicate{Kind: KindOnlyDerivedFrom}
	case IRIEditSummary:
		return Predicate{Kind: KindEditSummary}
	case IRIAssertValue:
		return Predicate{Kind: KindAssertValue}
	}
	label, local := SplitIRI(iri)
	kind, ok := predicateKindsByPrefix[label]
	if !ok || !wikidata.IsPropertyID(local) {
		return Predicate{Kind: KindUnknown}
	}
	return Predicate{Kind: kind, Property: local}
}

// RankFromIRI maps a rank IRI to its canonical rank.
func RankFromIRI(iri rdf.IRI) (wikidata.Rank, bool) {
	switch iri {
	case IRIPreferredRank:
		return wikidata.RankPreferred, true
	case IRINormalRank:
		return wikidata.RankNormal, true
	case IRIDeprecatedRank:
		return wikidata.RankDeprecated, true
	default:
		return "", false
	}
}

// SubjectKind classifies graph subjects for the patch engine.
type SubjectKind int

// Subject kinds.
const (
	// SubjectUnknown covers subjects outside the recognized vocabulary.
	SubjectUnknown SubjectKind = iota

	// SubjectEntity is wd:Qnn, addressing an entity.
	SubjectEntity

	// SubjectStatement is wds:Qnn-uuid, addressing an existing statement
	// by GUID.
	SubjectStatement

	// SubjectSelfTest is a wikidatabots: subject carrying assertValue
	// smoke tests only.
	SubjectSelfTest
)

// ClassifySubject classifies a subject IRI, returning its local name.
// Unrecognized subjects return the full IRI so skip warnings stay
// unambiguous even for bound namespaces.
func ClassifySubject(iri rdf.IRI) (SubjectKind, string) {
	label, local := SplitIRI(iri)
	switch label {
	case "wd":
		if wikidata.IsItemID(local) {
			return SubjectEntity, local
		}
	case "wds":
		if _, ok := wikidata.StatementItemID(local); ok {
			return SubjectStatement, local
		}
	case "wikidatabots":
		return SubjectSelfTest, local
	}
	return SubjectUnknown, string(iri)
}
