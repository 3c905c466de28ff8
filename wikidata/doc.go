// Package wikidata defines the Wikibase entity data model: entities,
// statements, snaks, references, and the typed data values they carry.
//
// The structs marshal to and from the JSON shapes of the Wikidata Action
// API (wbgetentities / wbeditentity), so an entity fetched from the API
// can be mutated in memory and its changed statements submitted back
// without translation.
package wikidata
