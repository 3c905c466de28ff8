package patch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/c360studio/wikipatch/rdf"
	"github.com/c360studio/wikipatch/vocabulary/wikibase"
	"github.com/c360studio/wikipatch/wikidata"
)

// ProcessDocument parses a Turtle patch document and processes it. The
// standard Wikidata prefix set is pre-bound, so documents need no
// prefix preamble.
func ProcessDocument(ctx context.Context, data []byte, opts Options) ([]Edit, error) {
	g, err := rdf.DecodeTurtle(data, wikibase.Prefixes())
	if err != nil {
		return nil, fmt.Errorf("parsing patch document: %w", err)
	}
	return ProcessGraph(ctx, g, opts)
}

// ProcessGraph applies a patch graph to prefetched entity snapshots and
// returns the changed statements per entity, in the order entities were
// first addressed. Entities with zero net change produce no edit.
func ProcessGraph(ctx context.Context, g *rdf.Graph, opts Options) ([]Edit, error) {
	if opts.Lookup == nil {
		return nil, errors.New("patch: Options.Lookup is required")
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	g.SetLogger(logger)

	entities, datatypes, err := prefetch(ctx, opts.Lookup, g)
	if err != nil {
		return nil, err
	}
	working := make(map[string]*wikidata.Entity, len(entities))
	for id, entity := range entities {
		working[id] = entity.Clone()
	}

	st := &processState{
		graph:          g,
		logger:         logger,
		datatypes:      datatypes,
		original:       entities,
		working:        working,
		summaries:      make(map[string]map[string]struct{}),
		statementOrder: make(map[string][]*wikidata.Statement),
		touched:        make(map[*wikidata.Statement]struct{}),
	}

	for _, subject := range g.Subjects() {
		iri, ok := subject.(rdf.IRI)
		if !ok {
			// Blank nodes are reached through their owning predicate.
			continue
		}
		kind, local := wikibase.ClassifySubject(iri)
		switch kind {
		case wikibase.SubjectEntity:
			err = st.updateEntity(local, iri)
		case wikibase.SubjectStatement:
			err = st.updateStatementSubject(local, iri)
		case wikibase.SubjectSelfTest:
			err = st.assertValues(iri)
		default:
			st.logger.Warn("skipping unknown subject", "subject", iri.String())
		}
		if err != nil {
			return nil, err
		}
	}

	return st.detectEdits(opts.Blocklist)
}

// updateEntity applies the outgoing triples of an entity subject.
func (st *processState) updateEntity(qid string, subject rdf.IRI) error {
	entity, ok := st.working[qid]
	if !ok || entity.Missing {
		st.logger.Warn("skipping missing entity", "entity", qid)
		return nil
	}

	for _, po := range st.graph.PredicateObjects(subject) {
		pred := wikibase.ClassifyPredicate(po.Predicate)
		switch pred.Kind {
		case wikibase.KindDirectValue:
			if err := st.assertDirectValue(qid, entity, pred.Property, po.Object); err != nil {
				return err
			}

		case wikibase.KindStatement:
			node, ok := po.Object.(rdf.BlankNode)
			if !ok {
				st.logger.Warn("skipping statement predicate with non-node object",
					"entity", qid, "predicate", po.Predicate.String())
				continue
			}
			if err := st.addStatement(qid, entity, pred.Property, node); err != nil {
				return err
			}

		case wikibase.KindEditSummary:
			lit, ok := po.Object.(rdf.Literal)
			if !ok {
				st.logger.Warn("skipping non-literal edit summary", "entity", qid)
				continue
			}
			st.addSummary(qid, lit.Value)

		default:
			st.logger.Warn("skipping predicate on entity subject",
				"entity", qid, "predicate", po.Predicate.String())
		}
	}
	return nil
}

// assertDirectValue handles a truthy direct-value triple: append a new
// normal-rank statement unless an equal value already exists. An equal
// value held only by a deprecated statement is left alone with a
// warning, so a deprecation is never silently re-asserted.
func (st *processState) assertDirectValue(qid string, entity *wikidata.Entity, property string, object rdf.Term) error {
	snak, err := st.resolveSnak(property, object)
	if err != nil {
		return err
	}

	deprecatedOnly := false
	for _, existing := range entity.Claims[property] {
		if !snakEquals(existing.MainSnak, snak) {
			continue
		}
		if existing.Rank != wikidata.RankDeprecated {
			return nil
		}
		deprecatedOnly = true
	}
	if deprecatedOnly {
		st.logger.Warn("value exists only on a deprecated statement, not re-asserting",
			"entity", qid, "property", property)
		return nil
	}

	statement := newStatement(qid, snak)
	st.appendClaim(entity, property, statement)
	st.touch(qid, statement)
	return nil
}

// addStatement builds a brand-new statement from a blank node. The main
// snak starts as an explicit no-value placeholder and must be replaced
// by a main-value predicate on the node.
func (st *processState) addStatement(qid string, entity *wikidata.Entity, property string, node rdf.BlankNode) error {
	placeholder := &wikidata.Snak{
		SnakType: wikidata.SnakTypeNoValue,
		Property: property,
	}
	statement := newStatement(qid, placeholder)
	st.appendClaim(entity, property, statement)
	if err := st.updateStatement(qid, node, statement); err != nil {
		return err
	}
	if statement.MainSnak.SnakType != wikidata.SnakTypeValue {
		return resolveErrorf(node, "new statement for %s has no main value", property)
	}
	return nil
}

// updateStatementSubject resolves a statement-id subject to its
// statement on the prefetched entity and applies the subject's triples.
func (st *processState) updateStatementSubject(local string, subject rdf.IRI) error {
	qid, ok := wikidata.StatementItemID(local)
	if !ok {
		st.logger.Warn("skipping malformed statement subject", "subject", subject.String())
		return nil
	}
	entity, ok := st.working[qid]
	if !ok || entity.Missing {
		st.logger.Warn("skipping statement of missing entity", "entity", qid)
		return nil
	}

	_, hash, _ := strings.Cut(local, "-")
	guid := qid + "$" + hash
	statement := entity.FindStatement(guid)
	if statement == nil {
		return &StatementNotFoundError{GUID: guid}
	}
	return st.updateStatement(qid, subject, statement)
}

// updateStatement applies the outgoing triples of a statement node,
// existing or brand-new, to the statement in place.
func (st *processState) updateStatement(qid string, subject rdf.Term, statement *wikidata.Statement) error {
	st.touch(qid, statement)

	var cumulative []*wikidata.Reference
	var exclusive *wikidata.Reference

	for _, po := range st.graph.PredicateObjects(subject) {
		pred := wikibase.ClassifyPredicate(po.Predicate)
		switch pred.Kind {
		case wikibase.KindStatementValue:
			snak, err := st.resolveSnak(pred.Property, po.Object)
			if err != nil {
				return err
			}
			if !snakEquals(statement.MainSnak, snak) {
				statement.MainSnak = snak
			}

		case wikibase.KindQualifier:
			snak, err := st.resolveSnak(pred.Property, po.Object)
			if err != nil {
				return err
			}
			appendQualifier(statement, snak)

		case wikibase.KindQualifierExclusive:
			if st.graph.IsEmptyNode(po.Object) {
				deleteQualifiers(statement, pred.Property)
				continue
			}
			snak, err := st.resolveSnak(pred.Property, po.Object)
			if err != nil {
				return err
			}
			setQualifier(statement, snak)

		case wikibase.KindRank:
			iri, ok := po.Object.(rdf.IRI)
			if !ok {
				return resolveErrorf(po.Object, "rank must be a rank IRI")
			}
			rank, ok := wikibase.RankFromIRI(iri)
			if !ok {
				return resolveErrorf(iri, "unknown rank")
			}
			statement.Rank = rank

		case wikibase.KindDerivedFrom:
			ref, err := st.resolveReference(po.Object)
			if err != nil {
				return err
			}
			cumulative = append(cumulative, ref)

		case wikibase.KindOnlyDerivedFrom:
			ref, err := st.resolveReference(po.Object)
			if err != nil {
				return err
			}
			exclusive = ref

		case wikibase.KindEditSummary:
			lit, ok := po.Object.(rdf.Literal)
			if !ok {
				st.logger.Warn("skipping non-literal edit summary", "entity", qid)
				continue
			}
			st.addSummary(qid, lit.Value)

		default:
			st.logger.Warn("skipping predicate on statement",
				"entity", qid, "predicate", po.Predicate.String())
		}
	}

	for _, ref := range cumulative {
		if !referencesContain(statement.References, ref) {
			statement.References = append(statement.References, ref)
		}
	}
	if exclusive != nil {
		if len(statement.References) != 1 || !referenceEquals(statement.References[0], exclusive) {
			statement.References = []*wikidata.Reference{exclusive}
		}
	}
	return nil
}

// assertValues resolves every asserted value on a self-test subject. A
// resolution failure aborts the run; nothing is mutated.
func (st *processState) assertValues(subject rdf.IRI) error {
	for _, po := range st.graph.PredicateObjects(subject) {
		pred := wikibase.ClassifyPredicate(po.Predicate)
		if pred.Kind != wikibase.KindAssertValue {
			st.logger.Warn("skipping predicate on self-test subject",
				"predicate", po.Predicate.String())
			continue
		}
		if _, err := resolveTerm(st.graph, po.Object); err != nil {
			return err
		}
	}
	return nil
}

func (st *processState) appendClaim(entity *wikidata.Entity, property string, statement *wikidata.Statement) {
	if entity.Claims == nil {
		entity.Claims = make(map[string][]*wikidata.Statement)
	}
	entity.Claims[property] = append(entity.Claims[property], statement)
}

func newStatement(qid string, mainSnak *wikidata.Snak) *wikidata.Statement {
	return &wikidata.Statement{
		Type:     "statement",
		ID:       qid + "$" + uuid.NewString(),
		MainSnak: mainSnak,
		Rank:     wikidata.RankNormal,
	}
}
