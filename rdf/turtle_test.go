package rdf

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testPrefixes = map[string]string{
	"ex":  "http://example.org/",
	"xsd": NamespaceXSD,
	"rdf": NamespaceRDF,
}

func decode(t *testing.T, doc string) *Graph {
	t.Helper()
	g, err := DecodeTurtle([]byte(doc), testPrefixes)
	require.NoError(t, err)
	return g
}

func TestDecodeTurtleBasicTriple(t *testing.T) {
	g := decode(t, `ex:s ex:p ex:o .`)
	require.Equal(t, 1, g.Len())

	obj, ok := g.Value(IRI("http://example.org/s"), IRI("http://example.org/p"))
	require.True(t, ok)
	assert.Equal(t, IRI("http://example.org/o"), obj)
}

func TestDecodeTurtlePrefixDirective(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"at form", "@prefix foo: <http://foo.example/> .\nfoo:s foo:p foo:o ."},
		{"sparql form", "PREFIX foo: <http://foo.example/>\nfoo:s foo:p foo:o ."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := decode(t, tt.doc)
			_, ok := g.Value(IRI("http://foo.example/s"), IRI("http://foo.example/p"))
			assert.True(t, ok)
		})
	}
}

func TestDecodeTurtleLiterals(t *testing.T) {
	doc := `
	  ex:s ex:plain "hello" ;
	    ex:lang "bonjour"@fr ;
	    ex:typed "5"^^xsd:decimal ;
	    ex:typedIRI "2020-01-01"^^<http://www.w3.org/2001/XMLSchema#date> ;
	    ex:int 42 ;
	    ex:dec 4.5 ;
	    ex:neg -3 ;
	    ex:bool true .
	`
	g := decode(t, doc)
	s := IRI("http://example.org/s")

	get := func(p string) Term {
		obj, ok := g.Value(s, IRI("http://example.org/"+p))
		require.True(t, ok, p)
		return obj
	}

	assert.Equal(t, Literal{Value: "hello"}, get("plain"))
	assert.Equal(t, Literal{Value: "bonjour", Language: "fr"}, get("lang"))
	assert.Equal(t, Literal{Value: "5", Datatype: XSDDecimal}, get("typed"))
	assert.Equal(t, Literal{Value: "2020-01-01", Datatype: XSDDate}, get("typedIRI"))
	assert.Equal(t, Literal{Value: "42", Datatype: XSDInteger}, get("int"))
	assert.Equal(t, Literal{Value: "4.5", Datatype: XSDDecimal}, get("dec"))
	assert.Equal(t, Literal{Value: "-3", Datatype: XSDInteger}, get("neg"))
	assert.Equal(t, Literal{Value: "true", Datatype: XSDBoolean}, get("bool"))
}

func TestDecodeTurtleStringEscapes(t *testing.T) {
	g := decode(t, `ex:s ex:p "say \"hi\"\nA" .`)
	obj, ok := g.Value(IRI("http://example.org/s"), IRI("http://example.org/p"))
	require.True(t, ok)
	assert.Equal(t, Literal{Value: "say \"hi\"\nA"}, obj)
}

func TestDecodeTurtleLongString(t *testing.T) {
	g := decode(t, "ex:s ex:p \"\"\"line one\nline \"two\" end\"\"\" .")
	obj, ok := g.Value(IRI("http://example.org/s"), IRI("http://example.org/p"))
	require.True(t, ok)
	assert.Equal(t, Literal{Value: "line one\nline \"two\" end"}, obj)
}

func TestDecodeTurtleSemicolonAndCommaLists(t *testing.T) {
	doc := `ex:s ex:p ex:a, ex:b ; ex:q ex:c .`
	g := decode(t, doc)
	s := IRI("http://example.org/s")

	objs := g.Objects(s, IRI("http://example.org/p"))
	require.Len(t, objs, 2)
	assert.Equal(t, IRI("http://example.org/a"), objs[0])
	assert.Equal(t, IRI("http://example.org/b"), objs[1])

	_, ok := g.Value(s, IRI("http://example.org/q"))
	assert.True(t, ok)
}

func TestDecodeTurtleAKeyword(t *testing.T) {
	g := decode(t, `ex:s a ex:Thing .`)
	obj, ok := g.Value(IRI("http://example.org/s"), RDFType)
	require.True(t, ok)
	assert.Equal(t, IRI("http://example.org/Thing"), obj)
}

func TestDecodeTurtleBlankNodes(t *testing.T) {
	doc := `
	  _:b1 ex:p "labelled" .
	  ex:s ex:anon [ ex:q "nested" ] .
	  ex:s ex:empty [] .
	`
	g := decode(t, doc)

	obj, ok := g.Value(BlankNode("b1"), IRI("http://example.org/p"))
	require.True(t, ok)
	assert.Equal(t, Literal{Value: "labelled"}, obj)

	s := IRI("http://example.org/s")
	anon, ok := g.Value(s, IRI("http://example.org/anon"))
	require.True(t, ok)
	require.IsType(t, BlankNode(""), anon)
	nested, ok := g.Value(anon, IRI("http://example.org/q"))
	require.True(t, ok)
	assert.Equal(t, Literal{Value: "nested"}, nested)

	empty, ok := g.Value(s, IRI("http://example.org/empty"))
	require.True(t, ok)
	assert.True(t, g.IsEmptyNode(empty))
	assert.False(t, g.IsEmptyNode(anon))
}

func TestDecodeTurtleComments(t *testing.T) {
	doc := `
	  # leading comment
	  ex:s ex:p ex:o . # trailing comment
	`
	g := decode(t, doc)
	assert.Equal(t, 1, g.Len())
}

func TestDecodeTurtlePercentEncodedLocalName(t *testing.T) {
	g := decode(t, `ex:s ex:p ex:Some%20File.jpg .`)
	obj, ok := g.Value(IRI("http://example.org/s"), IRI("http://example.org/p"))
	require.True(t, ok)
	assert.Equal(t, IRI("http://example.org/Some%20File.jpg"), obj)
}

func TestDecodeTurtleTrailingDotInLocalName(t *testing.T) {
	// The statement terminator must not be eaten by the local name.
	g := decode(t, `ex:s ex:p ex:o.`)
	obj, ok := g.Value(IRI("http://example.org/s"), IRI("http://example.org/p"))
	require.True(t, ok)
	assert.Equal(t, IRI("http://example.org/o"), obj)
}

func TestDecodeTurtleErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"unknown prefix", `nope:s ex:p ex:o .`},
		{"missing dot", `ex:s ex:p ex:o`},
		{"unterminated IRI", `<http://example.org/s ex:p ex:o .`},
		{"unterminated string", `ex:s ex:p "oops .`},
		{"collection", `ex:s ex:p (ex:a ex:b) .`},
		{"base directive", `@base <http://example.org/> .`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeTurtle([]byte(tt.doc), testPrefixes)
			assert.Error(t, err)
		})
	}
}

func TestDecodeTurtleErrorReportsLine(t *testing.T) {
	_, err := DecodeTurtle([]byte("ex:s ex:p ex:o .\nex:s ex:p (ex:a) ."), testPrefixes)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 2")
}
