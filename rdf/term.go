package rdf

import "fmt"

// Standard namespace IRIs used by the decoder and term helpers.
const (
	NamespaceRDF = "http://www.w3.org/1999/02/22-rdf-syntax-ns#"
	NamespaceXSD = "http://www.w3.org/2001/XMLSchema#"
)

// Well-known IRIs.
const (
	RDFType = IRI(NamespaceRDF + "type")

	XSDBoolean  = IRI(NamespaceXSD + "boolean")
	XSDDate     = IRI(NamespaceXSD + "date")
	XSDDateTime = IRI(NamespaceXSD + "dateTime")
	XSDDecimal  = IRI(NamespaceXSD + "decimal")
	XSDInteger  = IRI(NamespaceXSD + "integer")
)

// Term is an RDF term: an IRI, a blank node, or a literal.
// All implementations are comparable value types, so terms can be used
// directly as map keys.
type Term interface {
	fmt.Stringer
	isTerm()
}

// IRI is an absolute IRI reference.
type IRI string

func (IRI) isTerm() {}

// String returns the IRI in N-Triples angle-bracket form.
func (i IRI) String() string { return "<" + string(i) + ">" }

// BlankNode is a document-local blank node label.
type BlankNode string

func (BlankNode) isTerm() {}

func (b BlankNode) String() string { return "_:" + string(b) }

// Literal is an RDF literal with an optional language tag or datatype.
// A literal has at most one of the two; a plain literal has neither.
type Literal struct {
	Value    string
	Language string
	Datatype IRI
}

func (Literal) isTerm() {}

func (l Literal) String() string {
	switch {
	case l.Language != "":
		return fmt.Sprintf("%q@%s", l.Value, l.Language)
	case l.Datatype != "":
		return fmt.Sprintf("%q^^%s", l.Value, l.Datatype.String())
	default:
		return fmt.Sprintf("%q", l.Value)
	}
}

// Triple is a single subject-predicate-object assertion.
type Triple struct {
	Subject   Term
	Predicate IRI
	Object    Term
}

// String returns a human-readable representation of the triple.
func (t Triple) String() string {
	return fmt.Sprintf("%s %s %s .", t.Subject, t.Predicate.String(), t.Object)
}
