package wikibase

import "github.com/c360studio/wikipatch/rdf"

// Wikibase namespace IRIs.
// https://www.mediawiki.org/wiki/Wikibase/Indexing/RDF_Dump_Format
const (
	NSEntity    = "http://www.wikidata.org/entity/"
	NSStatement = "http://www.wikidata.org/entity/statement/"
	NSValue     = "http://www.wikidata.org/value/"
	NSReference = "http://www.wikidata.org/reference/"

	NSPropDirect                  = "http://www.wikidata.org/prop/direct/"
	NSProp                        = "http://www.wikidata.org/prop/"
	NSPropNoValue                 = "http://www.wikidata.org/prop/novalue/"
	NSPropStatement               = "http://www.wikidata.org/prop/statement/"
	NSPropStatementValue          = "http://www.wikidata.org/prop/statement/value/"
	NSPropQualifier               = "http://www.wikidata.org/prop/qualifier/"
	NSPropQualifierValue          = "http://www.wikidata.org/prop/qualifier/value/"
	NSPropQualifierExclusive      = "http://www.wikidata.org/prop/qualifier/exclusive/"
	NSPropQualifierValueExclusive = "http://www.wikidata.org/prop/qualifier/value-exclusive/"
	NSPropReference               = "http://www.wikidata.org/prop/reference/"
	NSPropReferenceValue          = "http://www.wikidata.org/prop/reference/value/"

	NSOntology = "http://wikiba.se/ontology#"
)

// External namespace IRIs referenced by patch documents.
const (
	NSProv         = "http://www.w3.org/ns/prov#"
	NSGeo          = "http://www.opengis.net/ont/geosparql#"
	NSCommonsMedia = "http://commons.wikimedia.org/wiki/Special:FilePath/"

	// NSBots is the document-local namespace for out-of-band directives
	// such as edit summaries and value-resolution self tests.
	NSBots = "https://github.com/josh/wikidatabots#"
)

// Ontology IRIs.
const (
	IRIRank = rdf.IRI(NSOntology + "rank")

	IRIPreferredRank  = rdf.IRI(NSOntology + "PreferredRank")
	IRINormalRank     = rdf.IRI(NSOntology + "NormalRank")
	IRIDeprecatedRank = rdf.IRI(NSOntology + "DeprecatedRank")

	IRITimeValue     = rdf.IRI(NSOntology + "TimeValue")
	IRIQuantityValue = rdf.IRI(NSOntology + "QuantityValue")

	IRITimeValueField     = rdf.IRI(NSOntology + "timeValue")
	IRITimePrecision      = rdf.IRI(NSOntology + "timePrecision")
	IRITimeTimezone       = rdf.IRI(NSOntology + "timeTimezone")
	IRITimeCalendarModel  = rdf.IRI(NSOntology + "timeCalendarModel")
	IRIQuantityAmount     = rdf.IRI(NSOntology + "quantityAmount")
	IRIQuantityUpperBound = rdf.IRI(NSOntology + "quantityUpperBound")
	IRIQuantityLowerBound = rdf.IRI(NSOntology + "quantityLowerBound")
	IRIQuantityUnit       = rdf.IRI(NSOntology + "quantityUnit")

	IRIWasDerivedFrom     = rdf.IRI(NSProv + "wasDerivedFrom")
	IRIWasOnlyDerivedFrom = rdf.IRI(NSProv + "wasOnlyDerivedFrom")

	IRIWKTLiteral = rdf.IRI(NSGeo + "wktLiteral")

	IRIEditSummary = rdf.IRI(NSBots + "editSummary")
	IRIAssertValue = rdf.IRI(NSBots + "assertValue")
)

// Default data value constants.
const (
	// GregorianCalendar is the default calendar model for time values.
	GregorianCalendar = "http://www.wikidata.org/entity/Q1985727"

	// EarthGlobe is the default globe for coordinate values.
	EarthGlobe = "http://www.wikidata.org/entity/Q2"

	// UnitlessUnit marks a quantity without a unit.
	UnitlessUnit = "1"

	// UnitlessUnitAlias is a historical spelling of the unitless unit
	// entity still present in stored statements.
	UnitlessUnitAlias = "https://www.wikidata.org/wiki/Q199"
)
