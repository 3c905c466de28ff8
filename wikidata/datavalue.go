package wikidata

import (
	"encoding/json"
	"fmt"
)

// DataValue is the typed value carried by a value snak. Value holds one
// of the concrete value structs below (as a pointer), or a plain string
// for ValueTypeString, discriminated by Type.
type DataValue struct {
	Type  ValueType
	Value any
}

// EntityIDValue references another entity. Either NumericID or ID may be
// absent in older API payloads; equality checks tolerate the alias forms.
type EntityIDValue struct {
	EntityType string `json:"entity-type"`
	NumericID  int64  `json:"numeric-id,omitempty"`
	ID         string `json:"id,omitempty"`
}

// QuantityValue is a decimal amount with an optional unit entity IRI
// ("1" means unitless) and optional bounds.
type QuantityValue struct {
	Amount     string `json:"amount"`
	Unit       string `json:"unit"`
	UpperBound string `json:"upperBound,omitempty"`
	LowerBound string `json:"lowerBound,omitempty"`
}

// TimeValue is a point in time with a precision and calendar model.
type TimeValue struct {
	Time          string `json:"time"`
	Timezone      int    `json:"timezone"`
	Before        int    `json:"before"`
	After         int    `json:"after"`
	Precision     int    `json:"precision"`
	CalendarModel string `json:"calendarmodel"`
}

// MonolingualTextValue is text in a single language.
type MonolingualTextValue struct {
	Language string `json:"language"`
	Text     string `json:"text"`
}

// GlobeCoordinateValue is a point on a globe. Altitude is always null in
// current API payloads but the field must be serialized.
type GlobeCoordinateValue struct {
	Latitude  float64  `json:"latitude"`
	Longitude float64  `json:"longitude"`
	Altitude  *float64 `json:"altitude"`
	Precision *float64 `json:"precision"`
	Globe     string   `json:"globe"`
}

// NewStringValue returns a string data value.
func NewStringValue(s string) *DataValue {
	return &DataValue{Type: ValueTypeString, Value: s}
}

// NewEntityIDValue returns an entity-id data value.
func NewEntityIDValue(v EntityIDValue) *DataValue {
	return &DataValue{Type: ValueTypeEntityID, Value: &v}
}

// NewQuantityValue returns a quantity data value.
func NewQuantityValue(v QuantityValue) *DataValue {
	return &DataValue{Type: ValueTypeQuantity, Value: &v}
}

// NewTimeValue returns a time data value.
func NewTimeValue(v TimeValue) *DataValue {
	return &DataValue{Type: ValueTypeTime, Value: &v}
}

// NewMonolingualTextValue returns a monolingual-text data value.
func NewMonolingualTextValue(v MonolingualTextValue) *DataValue {
	return &DataValue{Type: ValueTypeMonolingualText, Value: &v}
}

// NewGlobeCoordinateValue returns a globe-coordinate data value.
func NewGlobeCoordinateValue(v GlobeCoordinateValue) *DataValue {
	return &DataValue{Type: ValueTypeGlobeCoordinate, Value: &v}
}

// String returns the value if this is a string data value.
func (v *DataValue) String() (string, bool) {
	s, ok := v.Value.(string)
	return s, ok
}

// EntityID returns the value if this is an entity-id data value.
func (v *DataValue) EntityID() (*EntityIDValue, bool) {
	e, ok := v.Value.(*EntityIDValue)
	return e, ok
}

// Quantity returns the value if this is a quantity data value.
func (v *DataValue) Quantity() (*QuantityValue, bool) {
	q, ok := v.Value.(*QuantityValue)
	return q, ok
}

// Time returns the value if this is a time data value.
func (v *DataValue) Time() (*TimeValue, bool) {
	t, ok := v.Value.(*TimeValue)
	return t, ok
}

// Clone returns a deep copy.
func (v *DataValue) Clone() *DataValue {
	if v == nil {
		return nil
	}
	out := &DataValue{Type: v.Type}
	switch val := v.Value.(type) {
	case string:
		out.Value = val
	case *EntityIDValue:
		c := *val
		out.Value = &c
	case *QuantityValue:
		c := *val
		out.Value = &c
	case *TimeValue:
		c := *val
		out.Value = &c
	case *MonolingualTextValue:
		c := *val
		out.Value = &c
	case *GlobeCoordinateValue:
		c := *val
		if val.Altitude != nil {
			alt := *val.Altitude
			c.Altitude = &alt
		}
		if val.Precision != nil {
			prec := *val.Precision
			c.Precision = &prec
		}
		out.Value = &c
	default:
		out.Value = val
	}
	return out
}

type dataValueJSON struct {
	Type  ValueType       `json:"type"`
	Value json.RawMessage `json:"value"`
}

// MarshalJSON implements json.Marshaler.
func (v *DataValue) MarshalJSON() ([]byte, error) {
	value, err := json.Marshal(v.Value)
	if err != nil {
		return nil, err
	}
	return json.Marshal(dataValueJSON{Type: v.Type, Value: value})
}

// UnmarshalJSON implements json.Unmarshaler, decoding the value into the
// concrete struct selected by the type discriminant.
func (v *DataValue) UnmarshalJSON(data []byte) error {
	var raw dataValueJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	v.Type = raw.Type
	switch raw.Type {
	case ValueTypeString:
		var s string
		if err := json.Unmarshal(raw.Value, &s); err != nil {
			return err
		}
		v.Value = s
	case ValueTypeEntityID:
		v.Value = new(EntityIDValue)
	case ValueTypeQuantity:
		v.Value = new(QuantityValue)
	case ValueTypeTime:
		v.Value = new(TimeValue)
	case ValueTypeMonolingualText:
		v.Value = new(MonolingualTextValue)
	case ValueTypeGlobeCoordinate:
		v.Value = new(GlobeCoordinateValue)
	default:
		return fmt.Errorf("unknown data value type %q", raw.Type)
	}
	if raw.Type != ValueTypeString {
		if err := json.Unmarshal(raw.Value, v.Value); err != nil {
			return err
		}
	}
	return nil
}
