package rdf

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGraphAddDeduplicates(t *testing.T) {
	g := NewGraph()
	triple := Triple{Subject: IRI("s"), Predicate: IRI("p"), Object: IRI("o")}
	g.Add(triple)
	g.Add(triple)

	assert.Equal(t, 1, g.Len())
	assert.Len(t, g.PredicateObjects(IRI("s")), 1)
}

func TestGraphEncounterOrder(t *testing.T) {
	g := NewGraph()
	g.Add(Triple{Subject: IRI("b"), Predicate: IRI("p"), Object: IRI("1")})
	g.Add(Triple{Subject: IRI("a"), Predicate: IRI("p"), Object: IRI("2")})
	g.Add(Triple{Subject: IRI("b"), Predicate: IRI("q"), Object: IRI("3")})

	require.Equal(t, []Term{IRI("b"), IRI("a")}, g.Subjects())

	pos := g.PredicateObjects(IRI("b"))
	require.Len(t, pos, 2)
	assert.Equal(t, IRI("p"), pos[0].Predicate)
	assert.Equal(t, IRI("q"), pos[1].Predicate)
}

func TestGraphObjectsAndValue(t *testing.T) {
	g := NewGraph()
	g.Add(Triple{Subject: IRI("s"), Predicate: IRI("p"), Object: IRI("first")})
	g.Add(Triple{Subject: IRI("s"), Predicate: IRI("p"), Object: IRI("second")})
	g.Add(Triple{Subject: IRI("s"), Predicate: IRI("q"), Object: Literal{Value: "lit"}})

	assert.Equal(t, []Term{IRI("first"), IRI("second")}, g.Objects(IRI("s"), IRI("p")))

	obj, ok := g.Value(IRI("s"), IRI("p"))
	require.True(t, ok)
	assert.Equal(t, IRI("first"), obj)

	_, ok = g.Value(IRI("s"), IRI("missing"))
	assert.False(t, ok)
}

func TestGraphValueWarnsOnMultipleObjects(t *testing.T) {
	var buf bytes.Buffer
	g := NewGraph()
	g.SetLogger(slog.New(slog.NewTextHandler(&buf, nil)))
	g.Add(Triple{Subject: IRI("s"), Predicate: IRI("p"), Object: IRI("first")})
	g.Add(Triple{Subject: IRI("s"), Predicate: IRI("p"), Object: IRI("second")})
	g.Add(Triple{Subject: IRI("s"), Predicate: IRI("q"), Object: IRI("only")})

	obj, ok := g.Value(IRI("s"), IRI("p"))
	require.True(t, ok)
	assert.Equal(t, IRI("first"), obj)
	assert.Contains(t, buf.String(), "multiple objects")

	buf.Reset()
	_, ok = g.Value(IRI("s"), IRI("q"))
	require.True(t, ok)
	assert.Empty(t, buf.String())
}

func TestGraphIsEmptyNode(t *testing.T) {
	g := NewGraph()
	g.Add(Triple{Subject: IRI("s"), Predicate: IRI("p"), Object: BlankNode("empty")})
	g.Add(Triple{Subject: BlankNode("full"), Predicate: IRI("p"), Object: Literal{Value: "x"}})

	assert.True(t, g.IsEmptyNode(BlankNode("empty")))
	assert.False(t, g.IsEmptyNode(BlankNode("full")))
	assert.False(t, g.IsEmptyNode(IRI("s")))
}

func TestGraphIRIs(t *testing.T) {
	g := NewGraph()
	g.Add(Triple{Subject: IRI("s"), Predicate: IRI("p"), Object: BlankNode("b")})
	g.Add(Triple{Subject: BlankNode("b"), Predicate: IRI("p"), Object: IRI("o")})
	g.Add(Triple{Subject: IRI("s"), Predicate: IRI("q"), Object: Literal{Value: "lit"}})

	assert.Equal(t, []IRI{IRI("s"), IRI("p"), IRI("q"), IRI("o")}, g.IRIs())
}
