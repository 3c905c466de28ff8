// Package patch turns an RDF graph describing desired changes into the
// minimal set of changed statements per entity.
//
// A run is single-threaded and linear: referenced entities and property
// datatypes are prefetched in batches, each graph subject is visited
// once and its predicates applied to an in-memory working copy of the
// entities, and the working copies are diffed against pristine
// snapshots at the end. Entities with zero net change are never
// emitted.
//
// Resolution failures (unknown literal datatypes, malformed values,
// datatype/value-type mismatches) are input-contract violations and
// abort the run. Unrecognized predicates are logged and skipped.
// Entities the lookup reports missing are skipped with a warning.
package patch
