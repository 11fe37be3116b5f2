package value

import (
	"fmt"
	"time"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type valueBase struct {
	Type    Type     `json:"type"`
	Fields  []string `json:"fields,omitempty"`
	Values  []*Value `json:"values,omitempty"`
	Int64   *int64   `json:"int,omitempty"`
	Float64 *float64 `json:"float,omitempty"`
	Thing   *Thing   `json:"thing,omitempty"`
}

// MarshalJSON encodes v in a typed form which decodes back to an equal
// tree, including identities, durations and datetimes.
func (v *Value) MarshalJSON() ([]byte, error) {
	base := valueBase{
		Type:    v.Type,
		Fields:  v.Fields,
		Values:  v.Values,
		Int64:   v.Int64,
		Float64: v.Float64,
		Thing:   v.Thing,
	}
	switch v.Type {
	case StringType:
		type C struct {
			valueBase
			String string `json:"string"`
		}
		return json.Marshal(C{valueBase: base, String: v.String})
	case BoolType:
		type C struct {
			valueBase
			Bool bool `json:"bool"`
		}
		return json.Marshal(C{valueBase: base, Bool: v.Bool})
	case DurationType:
		type C struct {
			valueBase
			Duration string `json:"duration"`
		}
		return json.Marshal(C{valueBase: base, Duration: v.Duration.String()})
	case DatetimeType:
		type C struct {
			valueBase
			Datetime string `json:"datetime"`
		}
		return json.Marshal(C{valueBase: base, Datetime: v.Time.Format(time.RFC3339Nano)})
	default:
		return json.Marshal(base)
	}
}

func (v *Value) UnmarshalJSON(d []byte) error {
	type C struct {
		valueBase
		String   string `json:"string"`
		Bool     bool   `json:"bool"`
		Duration string `json:"duration"`
		Datetime string `json:"datetime"`
	}
	tmp := &C{}
	if err := json.Unmarshal(d, tmp); err != nil {
		return err
	}
	*v = Value{
		Type:    tmp.Type,
		Fields:  tmp.Fields,
		Values:  tmp.Values,
		Int64:   tmp.Int64,
		Float64: tmp.Float64,
		Thing:   tmp.Thing,
		String:  tmp.String,
		Bool:    tmp.Bool,
	}
	switch v.Type {
	case NumberType:
		if (v.Int64 == nil) == (v.Float64 == nil) {
			return fmt.Errorf("number needs exactly one of int or float")
		}
	case ObjectType:
		if len(v.Fields) != len(v.Values) {
			return fmt.Errorf("object has %d fields and %d values", len(v.Fields), len(v.Values))
		}
	case ThingType:
		if v.Thing == nil {
			return fmt.Errorf("thing value without identity")
		}
	case DurationType:
		dur, err := time.ParseDuration(tmp.Duration)
		if err != nil {
			return fmt.Errorf("invalid duration: %w", err)
		}
		v.Duration = dur
	case DatetimeType:
		t, err := time.Parse(time.RFC3339Nano, tmp.Datetime)
		if err != nil {
			return fmt.Errorf("invalid datetime: %w", err)
		}
		v.Time = t.UTC()
	}
	for i, c := range v.Values {
		if c == nil {
			v.Values[i] = None()
		}
	}
	return nil
}
