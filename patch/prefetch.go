package patch

import (
	"context"
	"fmt"
	"slices"

	"github.com/c360studio/wikipatch/rdf"
	"github.com/c360studio/wikipatch/vocabulary/wikibase"
	"github.com/c360studio/wikipatch/wikidata"
)

// referencedIDs scans every IRI in the graph and collects the entity ids
// the run needs: entities addressed directly or through statement GUIDs,
// entities appearing as values, and every property mentioned in any
// property namespace (their datatypes drive value resolution).
func referencedIDs(g *rdf.Graph) []string {
	var ids []string
	seen := make(map[string]struct{})
	add := func(id string) {
		if _, dup := seen[id]; dup {
			return
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	for _, iri := range g.IRIs() {
		label, local := wikibase.SplitIRI(iri)
		switch label {
		case "":
			continue
		case "wd":
			if wikidata.IsItemID(local) || wikidata.IsPropertyID(local) {
				add(local)
			}
		case "wds":
			if qid, ok := wikidata.StatementItemID(local); ok {
				add(qid)
			}
		default:
			if wikidata.IsPropertyID(local) {
				add(local)
			}
		}
	}
	return ids
}

// prefetch fetches every referenced entity in lookup-sized batches and
// splits the result into the entity snapshot map and the property
// datatype table.
func prefetch(ctx context.Context, lookup EntityLookup, g *rdf.Graph) (map[string]*wikidata.Entity, map[string]wikidata.DataType, error) {
	ids := referencedIDs(g)
	entities := make(map[string]*wikidata.Entity, len(ids))
	datatypes := make(map[string]wikidata.DataType)

	for chunk := range slices.Chunk(ids, MaxLookupIDs) {
		fetched, err := lookup.GetEntities(ctx, chunk)
		if err != nil {
			return nil, nil, fmt.Errorf("prefetching entities: %w", err)
		}
		for _, id := range chunk {
			entity, ok := fetched[id]
			if !ok {
				return nil, nil, fmt.Errorf("prefetching entities: lookup omitted %s", id)
			}
			entities[id] = entity
			if entity.Missing {
				continue
			}
			if entity.Type == wikidata.EntityTypeProperty {
				if entity.DataType == "" {
					return nil, nil, fmt.Errorf("prefetching entities: property %s has no datatype", id)
				}
				datatypes[id] = entity.DataType
			}
		}
	}
	return entities, datatypes, nil
}
