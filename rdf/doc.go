// Package rdf provides a minimal RDF term model, an in-memory triple
// graph with subject-indexed queries, and a decoder for the Turtle
// subset used by patch documents.
//
// The graph preserves encounter order for subjects and for the
// predicate-object pairs of each subject, which downstream processing
// relies on for deterministic output.
package rdf
