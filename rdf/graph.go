package rdf

import "log/slog"

// PredicateObject is one outgoing edge of a subject.
type PredicateObject struct {
	Predicate IRI
	Object    Term
}

// Graph is an in-memory triple store indexed by subject.
//
// Duplicate triples are collapsed on insert. Subjects, and the
// predicate-object pairs within a subject, iterate in first-encounter
// order.
type Graph struct {
	subjects  []Term
	bySubject map[Term][]PredicateObject
	seen      map[Triple]struct{}
	size      int
	logger    *slog.Logger
}

// NewGraph returns an empty graph.
func NewGraph() *Graph {
	return &Graph{
		bySubject: make(map[Term][]PredicateObject),
		seen:      make(map[Triple]struct{}),
		logger:    slog.Default(),
	}
}

// SetLogger sets the logger used for data irregularity warnings.
func (g *Graph) SetLogger(logger *slog.Logger) {
	if logger != nil {
		g.logger = logger
	}
}

// Add inserts a triple, ignoring exact duplicates.
func (g *Graph) Add(t Triple) {
	if _, ok := g.seen[t]; ok {
		return
	}
	g.seen[t] = struct{}{}
	if _, ok := g.bySubject[t.Subject]; !ok {
		g.subjects = append(g.subjects, t.Subject)
	}
	g.bySubject[t.Subject] = append(g.bySubject[t.Subject], PredicateObject{
		Predicate: t.Predicate,
		Object:    t.Object,
	})
	g.size++
}

// Len returns the number of distinct triples.
func (g *Graph) Len() int { return g.size }

// Subjects returns every distinct subject in encounter order.
func (g *Graph) Subjects() []Term { return g.subjects }

// PredicateObjects returns the outgoing edges of subject in encounter order.
func (g *Graph) PredicateObjects(subject Term) []PredicateObject {
	return g.bySubject[subject]
}

// Objects returns every object of (subject, predicate) in encounter order.
func (g *Graph) Objects(subject Term, predicate IRI) []Term {
	var objects []Term
	for _, po := range g.bySubject[subject] {
		if po.Predicate == predicate {
			objects = append(objects, po.Object)
		}
	}
	return objects
}

// Value returns the first object of (subject, predicate), if any.
// Additional objects for the same pair are ignored with a warning.
func (g *Graph) Value(subject Term, predicate IRI) (Term, bool) {
	var first Term
	found := 0
	for _, po := range g.bySubject[subject] {
		if po.Predicate != predicate {
			continue
		}
		if found == 0 {
			first = po.Object
		}
		found++
	}
	if found > 1 {
		g.logger.Warn("multiple objects for subject and predicate, using the first",
			"subject", subject.String(), "predicate", predicate.String(), "objects", found)
	}
	return first, found > 0
}

// IsEmptyNode reports whether term is a blank node with no outgoing triples.
func (g *Graph) IsEmptyNode(term Term) bool {
	if _, ok := term.(BlankNode); !ok {
		return false
	}
	return len(g.bySubject[term]) == 0
}

// IRIs returns every distinct IRI appearing in any triple position, in
// encounter order. Used to scan a document for referenced identifiers.
func (g *Graph) IRIs() []IRI {
	var iris []IRI
	seen := make(map[IRI]struct{})
	add := func(t Term) {
		iri, ok := t.(IRI)
		if !ok {
			return
		}
		if _, dup := seen[iri]; dup {
			return
		}
		seen[iri] = struct{}{}
		iris = append(iris, iri)
	}
	for _, subject := range g.subjects {
		add(subject)
		for _, po := range g.bySubject[subject] {
			add(po.Predicate)
			add(po.Object)
		}
	}
	return iris
}
