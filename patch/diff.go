package patch

import (
	"reflect"

	"github.com/c360studio/wikipatch/wikidata"
)

// detectEdits compares every touched statement against the pristine
// snapshot and assembles one Edit per entity with net changes. Only
// touched statements are inspected; the engine mutates nothing else.
func (st *processState) detectEdits(blocklist map[string]struct{}) ([]Edit, error) {
	originalByGUID := make(map[string]*wikidata.Statement)
	for _, entity := range st.original {
		for _, statements := range entity.Claims {
			for _, statement := range statements {
				originalByGUID[statement.ID] = statement
			}
		}
	}

	var edits []Edit
	for _, qid := range st.entityOrder {
		var changed []*wikidata.Statement
		for _, statement := range st.statementOrder[qid] {
			original, existed := originalByGUID[statement.ID]
			if existed && reflect.DeepEqual(statement, original) {
				continue
			}
			changed = append(changed, statement)
		}
		if len(changed) == 0 {
			continue
		}
		if _, blocked := blocklist[qid]; blocked {
			st.logger.Warn("skipping edit, entity is blocked", "entity", qid)
			continue
		}
		edits = append(edits, Edit{
			EntityID:   qid,
			BaseRevID:  st.working[qid].LastRevID,
			Statements: changed,
			Summary:    st.summary(qid),
		})
	}
	return edits, nil
}
