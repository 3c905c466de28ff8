package patch

import (
	"context"
	"log/slog"
	"sort"
	"strings"

	"github.com/c360studio/wikipatch/rdf"
	"github.com/c360studio/wikipatch/wikidata"
)

// MaxLookupIDs is the largest batch the entity lookup accepts per call.
const MaxLookupIDs = 50

// EntityLookup fetches current entity state. The returned map must
// contain an entry for every requested id; entities the service reports
// missing or deleted carry Missing set.
type EntityLookup interface {
	GetEntities(ctx context.Context, ids []string) (map[string]*wikidata.Entity, error)
}

// Options configures a processing run.
type Options struct {
	// Lookup resolves entity ids and property datatypes. Required.
	Lookup EntityLookup

	// Blocklist contains entity ids whose edits are suppressed.
	Blocklist map[string]struct{}

	// Logger receives warnings about skipped subjects and predicates.
	// Defaults to slog.Default().
	Logger *slog.Logger
}

// Edit is one entity's worth of changed statements, ready for
// submission. Summary is empty when the document recorded none.
type Edit struct {
	EntityID   string                `json:"id"`
	BaseRevID  int64                 `json:"baserevid,omitempty"`
	Statements []*wikidata.Statement `json:"claims"`
	Summary    string                `json:"summary,omitempty"`
}

// processState is the per-run context: the graph, prefetched datatypes,
// the original and working entity maps, accumulated edit summaries, and
// the statement touch log that fixes emission order. It lives for one
// ProcessGraph call only.
type processState struct {
	graph     *rdf.Graph
	logger    *slog.Logger
	datatypes map[string]wikidata.DataType
	original  map[string]*wikidata.Entity
	working   map[string]*wikidata.Entity

	summaries map[string]map[string]struct{}

	entityOrder    []string
	statementOrder map[string][]*wikidata.Statement
	touched        map[*wikidata.Statement]struct{}
}

// touch records a statement the engine created or addressed, preserving
// first-encounter order per entity. The change detector only inspects
// touched statements; nothing else can have been mutated.
func (st *processState) touch(qid string, statement *wikidata.Statement) {
	if _, ok := st.touched[statement]; ok {
		return
	}
	st.touched[statement] = struct{}{}
	if _, ok := st.statementOrder[qid]; !ok {
		st.entityOrder = append(st.entityOrder, qid)
	}
	st.statementOrder[qid] = append(st.statementOrder[qid], statement)
}

// addSummary accumulates edit summary text for an entity.
func (st *processState) addSummary(qid, text string) {
	if st.summaries[qid] == nil {
		st.summaries[qid] = make(map[string]struct{})
	}
	st.summaries[qid][text] = struct{}{}
}

// summary returns the entity's accumulated summary texts joined
// deterministically, or "" when none were recorded.
func (st *processState) summary(qid string) string {
	set := st.summaries[qid]
	if len(set) == 0 {
		return ""
	}
	texts := make([]string, 0, len(set))
	for text := range set {
		texts = append(texts, text)
	}
	sort.Strings(texts)
	return strings.Join(texts, ", ")
}
