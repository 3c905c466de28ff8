package patch

import (
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/c360studio/wikipatch/rdf"
	"github.com/c360studio/wikipatch/vocabulary/wikibase"
	"github.com/c360studio/wikipatch/wikidata"
)

// resolveTerm converts a graph term into a typed data value. The
// property datatype does not participate here; the snak builder checks
// the resolved value type against it afterwards.
func resolveTerm(g *rdf.Graph, term rdf.Term) (*wikidata.DataValue, error) {
	switch t := term.(type) {
	case rdf.IRI:
		return resolveIRI(t)
	case rdf.BlankNode:
		return resolveValueNode(g, t)
	case rdf.Literal:
		return resolveLiteral(t)
	default:
		return nil, resolveErrorf(term, "unsupported term kind")
	}
}

func resolveIRI(iri rdf.IRI) (*wikidata.DataValue, error) {
	label, local := wikibase.SplitIRI(iri)
	switch label {
	case "wd":
		return resolveEntityIRI(iri, local)
	case "commonsMedia":
		// Filenames arrive percent-encoded in the IRI local name.
		name, err := url.PathUnescape(local)
		if err != nil {
			return nil, resolveErrorf(iri, "malformed percent-encoding: %v", err)
		}
		return wikidata.NewStringValue(name), nil
	case "":
		// An IRI outside every bound namespace is an opaque identifier,
		// e.g. an external URL for a url-datatype property.
		return wikidata.NewStringValue(local), nil
	default:
		return nil, resolveErrorf(iri, "IRI in namespace %q has no value form", label)
	}
}

func resolveEntityIRI(iri rdf.IRI, local string) (*wikidata.DataValue, error) {
	var entityType wikidata.EntityType
	switch {
	case wikidata.IsItemID(local):
		entityType = wikidata.EntityTypeItem
	case wikidata.IsPropertyID(local):
		entityType = wikidata.EntityTypeProperty
	default:
		return nil, resolveErrorf(iri, "not an entity id: %q", local)
	}
	numericID, err := strconv.ParseInt(local[1:], 10, 64)
	if err != nil {
		return nil, resolveErrorf(iri, "entity id out of range: %q", local)
	}
	return wikidata.NewEntityIDValue(wikidata.EntityIDValue{
		EntityType: string(entityType),
		NumericID:  numericID,
		ID:         local,
	}), nil
}

var wktPointPattern = regexp.MustCompile(`^Point\(([-0-9.]+) ([-0-9.]+)\)$`)

func resolveLiteral(lit rdf.Literal) (*wikidata.DataValue, error) {
	switch {
	case lit.Language != "" && lit.Datatype == "":
		return wikidata.NewMonolingualTextValue(wikidata.MonolingualTextValue{
			Language: lit.Language,
			Text:     lit.Value,
		}), nil

	case lit.Language == "" && lit.Datatype == "":
		return wikidata.NewStringValue(lit.Value), nil

	case lit.Datatype == rdf.XSDDecimal:
		return wikidata.NewQuantityValue(wikidata.QuantityValue{
			Amount: signedAmount(lit.Value),
			Unit:   wikibase.UnitlessUnit,
		}), nil

	case lit.Datatype == rdf.XSDDateTime || lit.Datatype == rdf.XSDDate:
		timestamp, err := resolveTimestamp(lit.Value)
		if err != nil {
			return nil, resolveErrorf(lit, "%v", err)
		}
		return wikidata.NewTimeValue(wikidata.TimeValue{
			Time:          timestamp,
			Precision:     11,
			CalendarModel: wikibase.GregorianCalendar,
		}), nil

	case lit.Datatype == wikibase.IRIWKTLiteral:
		m := wktPointPattern.FindStringSubmatch(lit.Value)
		if m == nil {
			return nil, resolveErrorf(lit, "invalid wktLiteral: %q", lit.Value)
		}
		longitude, lonErr := strconv.ParseFloat(m[1], 64)
		latitude, latErr := strconv.ParseFloat(m[2], 64)
		if lonErr != nil || latErr != nil {
			return nil, resolveErrorf(lit, "invalid wktLiteral coordinates: %q", lit.Value)
		}
		precision := 0.0001
		return wikidata.NewGlobeCoordinateValue(wikidata.GlobeCoordinateValue{
			Latitude:  latitude,
			Longitude: longitude,
			Precision: &precision,
			Globe:     wikibase.EarthGlobe,
		}), nil

	default:
		return nil, resolveErrorf(lit, "unsupported literal datatype %s", lit.Datatype.String())
	}
}

// resolveValueNode resolves a structured value node tagged with
// wikibase:QuantityValue or wikibase:TimeValue.
func resolveValueNode(g *rdf.Graph, node rdf.BlankNode) (*wikidata.DataValue, error) {
	nodeType, _ := g.Value(node, rdf.RDFType)
	switch nodeType {
	case wikibase.IRIQuantityValue:
		return resolveQuantityNode(g, node)
	case wikibase.IRITimeValue:
		return resolveTimeNode(g, node)
	default:
		return nil, resolveErrorf(node, "unknown value node type")
	}
}

func resolveQuantityNode(g *rdf.Graph, node rdf.BlankNode) (*wikidata.DataValue, error) {
	value := wikidata.QuantityValue{Unit: wikibase.UnitlessUnit}

	amount, err := valueNodeDecimal(g, node, wikibase.IRIQuantityAmount)
	if err != nil {
		return nil, err
	}
	if amount == "" {
		return nil, resolveErrorf(node, "missing quantity amount")
	}
	value.Amount = signedAmount(amount)

	if upper, err := valueNodeDecimal(g, node, wikibase.IRIQuantityUpperBound); err != nil {
		return nil, err
	} else if upper != "" {
		value.UpperBound = signedAmount(upper)
	}
	if lower, err := valueNodeDecimal(g, node, wikibase.IRIQuantityLowerBound); err != nil {
		return nil, err
	} else if lower != "" {
		value.LowerBound = signedAmount(lower)
	}

	if unit, ok := g.Value(node, wikibase.IRIQuantityUnit); ok {
		iri, ok := unit.(rdf.IRI)
		if !ok {
			return nil, resolveErrorf(node, "quantity unit must be an entity IRI")
		}
		value.Unit = string(iri)
	}

	return wikidata.NewQuantityValue(value), nil
}

func resolveTimeNode(g *rdf.Graph, node rdf.BlankNode) (*wikidata.DataValue, error) {
	value := wikidata.TimeValue{
		Precision:     11,
		CalendarModel: wikibase.GregorianCalendar,
	}

	timeTerm, ok := g.Value(node, wikibase.IRITimeValueField)
	if !ok {
		return nil, resolveErrorf(node, "missing time value")
	}
	lit, ok := timeTerm.(rdf.Literal)
	if !ok || (lit.Datatype != "" && lit.Datatype != rdf.XSDDateTime && lit.Datatype != rdf.XSDDate) {
		return nil, resolveErrorf(node, "time value must be a dateTime literal")
	}
	timestamp, err := resolveTimestamp(lit.Value)
	if err != nil {
		return nil, resolveErrorf(node, "%v", err)
	}
	value.Time = timestamp

	if precision, ok, err := valueNodeInteger(g, node, wikibase.IRITimePrecision); err != nil {
		return nil, err
	} else if ok {
		if precision < 0 || precision > 14 {
			return nil, resolveErrorf(node, "time precision out of range: %d", precision)
		}
		value.Precision = precision
	}
	if timezone, ok, err := valueNodeInteger(g, node, wikibase.IRITimeTimezone); err != nil {
		return nil, err
	} else if ok {
		value.Timezone = timezone
	}
	if calendar, ok := g.Value(node, wikibase.IRITimeCalendarModel); ok {
		iri, ok := calendar.(rdf.IRI)
		if !ok {
			return nil, resolveErrorf(node, "time calendar model must be an entity IRI")
		}
		value.CalendarModel = string(iri)
	}

	return wikidata.NewTimeValue(value), nil
}

func valueNodeDecimal(g *rdf.Graph, node rdf.BlankNode, field rdf.IRI) (string, error) {
	term, ok := g.Value(node, field)
	if !ok {
		return "", nil
	}
	lit, ok := term.(rdf.Literal)
	if !ok || lit.Datatype != rdf.XSDDecimal {
		return "", resolveErrorf(node, "%s must be a decimal literal", field.String())
	}
	return lit.Value, nil
}

func valueNodeInteger(g *rdf.Graph, node rdf.BlankNode, field rdf.IRI) (int, bool, error) {
	term, ok := g.Value(node, field)
	if !ok {
		return 0, false, nil
	}
	lit, ok := term.(rdf.Literal)
	if !ok || lit.Datatype != rdf.XSDInteger {
		return 0, false, resolveErrorf(node, "%s must be an integer literal", field.String())
	}
	n, err := strconv.Atoi(lit.Value)
	if err != nil {
		return 0, false, resolveErrorf(node, "%s is not an integer: %q", field.String(), lit.Value)
	}
	return n, true, nil
}

// signedAmount normalizes a decimal string to the explicit-sign form the
// API requires ("+5", "-5").
func signedAmount(s string) string {
	if strings.HasPrefix(s, "+") || strings.HasPrefix(s, "-") {
		return s
	}
	return "+" + s
}

// timestampLayouts covers the literal forms time values arrive in.
var timestampLayouts = []string{
	"2006-01-02T15:04:05Z07:00",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// resolveTimestamp parses an ISO 8601 date or datetime and renders the
// sign-prefixed timestamp form ("+2024-01-01T00:00:00Z").
func resolveTimestamp(s string) (string, error) {
	for _, layout := range timestampLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return t.UTC().Format("+2006-01-02T15:04:05Z"), nil
		}
	}
	return "", fmt.Errorf("not an ISO 8601 date or datetime: %q", s)
}
