package value

import (
	"maps"
	"slices"
	"time"
)

type Value struct {
	Type Type

	// Fields holds object keys; Values holds object values (aligned with
	// Fields) or array elements.
	Fields []string
	Values []*Value

	String   string
	Bool     bool
	Int64    *int64
	Float64  *float64
	Thing    *Thing
	Duration time.Duration
	Time     time.Time
}

func None() *Value {
	return &Value{Type: NoneType}
}

func FromBool(v bool) *Value {
	return &Value{Type: BoolType, Bool: v}
}

func FromInt(v int64) *Value {
	return &Value{Type: NumberType, Int64: &v}
}

func FromFloat(f float64) *Value {
	return &Value{Type: NumberType, Float64: &f}
}

func FromString(v string) *Value {
	return &Value{Type: StringType, String: v}
}

func FromThing(t Thing) *Value {
	return &Value{Type: ThingType, Thing: &t}
}

func FromDuration(d time.Duration) *Value {
	return &Value{Type: DurationType, Duration: d}
}

// FromTime returns a datetime value; the time is normalized to UTC.
func FromTime(t time.Time) *Value {
	return &Value{Type: DatetimeType, Time: t.UTC()}
}

func FromSlice(vs []*Value) *Value {
	res := &Value{Type: ArrayType, Values: make([]*Value, len(vs))}
	for i, v := range vs {
		if v == nil {
			v = None()
		}
		res.Values[i] = v
	}
	return res
}

type KeyVal struct {
	Key string
	Val *Value
}

// FromKeyVals builds an object whose keys are in the order given.
// A later duplicate key replaces the value of the earlier one in place.
func FromKeyVals(kvs []KeyVal) *Value {
	res := &Value{
		Type:   ObjectType,
		Fields: make([]string, 0, len(kvs)),
		Values: make([]*Value, 0, len(kvs)),
	}
	for _, kv := range kvs {
		res.set(kv.Key, kv.Val)
	}
	return res
}

// FromMap builds an object with keys in sorted order.
func FromMap(m map[string]*Value) *Value {
	keys := slices.Sorted(maps.Keys(m))
	kvs := make([]KeyVal, len(keys))
	for i, k := range keys {
		kvs[i] = KeyVal{Key: k, Val: m[k]}
	}
	return FromKeyVals(kvs)
}

func (v *Value) set(key string, val *Value) {
	if val == nil {
		val = None()
	}
	for i, f := range v.Fields {
		if f == key {
			v.Values[i] = val
			return
		}
	}
	v.Fields = append(v.Fields, key)
	v.Values = append(v.Values, val)
}

// Get returns the value of field in an object, or nil if v is not an
// object or has no such field.
func Get(v *Value, field string) *Value {
	res, _ := v.Lookup(field)
	return res
}

// Lookup is like Get but reports presence.
func (v *Value) Lookup(field string) (*Value, bool) {
	if v == nil || v.Type != ObjectType {
		return nil, false
	}
	for i, f := range v.Fields {
		if f == field {
			return v.Values[i], true
		}
	}
	return nil, false
}

// KeyVals returns the entries of an object in order.
func (v *Value) KeyVals() []KeyVal {
	if v == nil || v.Type != ObjectType {
		return nil
	}
	res := make([]KeyVal, len(v.Fields))
	for i := range v.Fields {
		res[i] = KeyVal{Key: v.Fields[i], Val: v.Values[i]}
	}
	return res
}

// Len returns the number of elements of an array or entries of an object.
func (v *Value) Len() int {
	if v == nil {
		return 0
	}
	switch v.Type {
	case ArrayType, ObjectType:
		return len(v.Values)
	}
	return 0
}

// IsNone reports whether v is nil or the None value.
func (v *Value) IsNone() bool {
	return v == nil || v.Type == NoneType
}

func (v *Value) Clone() *Value {
	if v == nil {
		return nil
	}
	res := &Value{
		Type:     v.Type,
		String:   v.String,
		Bool:     v.Bool,
		Duration: v.Duration,
		Time:     v.Time,
	}
	if v.Int64 != nil {
		i := *v.Int64
		res.Int64 = &i
	}
	if v.Float64 != nil {
		f := *v.Float64
		res.Float64 = &f
	}
	if v.Thing != nil {
		res.Thing = &Thing{Table: v.Thing.Table, ID: v.Thing.ID.Clone()}
	}
	if v.Fields != nil {
		res.Fields = slices.Clone(v.Fields)
	}
	if v.Values != nil {
		res.Values = make([]*Value, len(v.Values))
		for i, c := range v.Values {
			res.Values[i] = c.Clone()
		}
	}
	return res
}
