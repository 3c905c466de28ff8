package wikidata

// DataType is a property's declared datatype. It determines which
// ValueType the property's value snaks must carry.
type DataType string

// Property datatypes.
// https://www.wikidata.org/wiki/Help:Data_type#Technical_details
const (
	DataTypeCommonsMedia    DataType = "commonsMedia"
	DataTypeGeoShape        DataType = "geo-shape"
	DataTypeTabularData     DataType = "tabular-data"
	DataTypeURL             DataType = "url"
	DataTypeExternalID      DataType = "external-id"
	DataTypeItem            DataType = "wikibase-item"
	DataTypeProperty        DataType = "wikibase-property"
	DataTypeGlobeCoordinate DataType = "globe-coordinate"
	DataTypeMonolingualText DataType = "monolingualtext"
	DataTypeQuantity        DataType = "quantity"
	DataTypeString          DataType = "string"
	DataTypeTime            DataType = "time"
	DataTypeMusicalNotation DataType = "musical-notation"
	DataTypeMath            DataType = "math"
	DataTypeLexeme          DataType = "wikibase-lexeme"
	DataTypeForm            DataType = "wikibase-form"
	DataTypeSense           DataType = "wikibase-sense"
)

// ValueType is the discriminant of a DataValue.
type ValueType string

// Data value types.
const (
	ValueTypeString          ValueType = "string"
	ValueTypeEntityID        ValueType = "wikibase-entityid"
	ValueTypeGlobeCoordinate ValueType = "globecoordinate"
	ValueTypeMonolingualText ValueType = "monolingualtext"
	ValueTypeQuantity        ValueType = "quantity"
	ValueTypeTime            ValueType = "time"
)

var dataTypeValueTypes = map[DataType]ValueType{
	DataTypeCommonsMedia:    ValueTypeString,
	DataTypeGeoShape:        ValueTypeString,
	DataTypeTabularData:     ValueTypeString,
	DataTypeURL:             ValueTypeString,
	DataTypeExternalID:      ValueTypeString,
	DataTypeItem:            ValueTypeEntityID,
	DataTypeProperty:        ValueTypeEntityID,
	DataTypeGlobeCoordinate: ValueTypeGlobeCoordinate,
	DataTypeMonolingualText: ValueTypeMonolingualText,
	DataTypeQuantity:        ValueTypeQuantity,
	DataTypeString:          ValueTypeString,
	DataTypeTime:            ValueTypeTime,
	DataTypeMusicalNotation: ValueTypeString,
	DataTypeMath:            ValueTypeString,
	DataTypeLexeme:          ValueTypeEntityID,
	DataTypeForm:            ValueTypeEntityID,
	DataTypeSense:           ValueTypeEntityID,
}

// ValueType returns the value type a value snak of this datatype must
// carry, and whether the datatype is known.
func (dt DataType) ValueType() (ValueType, bool) {
	vt, ok := dataTypeValueTypes[dt]
	return vt, ok
}
