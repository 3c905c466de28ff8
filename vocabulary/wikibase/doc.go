// Package wikibase defines the RDF vocabulary of patch documents: the
// Wikibase namespace table, the predicate families that drive patch
// semantics, statement rank IRIs, and the structured-value node
// vocabulary for quantity and time values.
//
// The namespace IRIs and predicate semantics are the wire contract of
// the system and must not change shape: documents produced for the
// Wikidata Query Service dump vocabulary are consumed as-is.
package wikibase
