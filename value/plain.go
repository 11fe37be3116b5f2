package value

import (
	"fmt"
	"maps"
	"math"
	"reflect"
	"slices"
	"time"

	"github.com/goccy/go-yaml"
)

// Keys of single-entry objects which FromPlain reads as the store types
// plain data cannot express, and which ToPlain writes for them.
const (
	PlainThingKey    = "$thing"
	PlainDurationKey = "$duration"
	PlainDatetimeKey = "$datetime"
)

// ParsePlain reads a JSON or YAML document into a value tree. Object key
// order in the document is kept.
func ParsePlain(data []byte) (*Value, error) {
	var doc any
	if err := yaml.UnmarshalWithOptions(data, &doc, yaml.UseOrderedMap()); err != nil {
		return nil, fmt.Errorf("error decoding document: %w", err)
	}
	return FromPlain(doc)
}

// FromPlain converts plain Go data to a value tree. Supported inputs are
// nil, bools, integers, floats, strings, time.Time, time.Duration, Thing,
// *Value, slices, string keyed maps (keys sorted) and yaml.MapSlice (keys in
// order).
func FromPlain(x any) (*Value, error) {
	switch t := x.(type) {
	case nil:
		return None(), nil
	case *Value:
		return t.Clone(), nil
	case Thing:
		return FromThing(t), nil
	case time.Time:
		return FromTime(t), nil
	case time.Duration:
		return FromDuration(t), nil
	case yaml.MapSlice:
		return fromMapSlice(t)
	case map[string]any:
		keys := slices.Sorted(maps.Keys(t))
		kvs := make([]KeyVal, len(keys))
		for i, k := range keys {
			v, err := FromPlain(t[k])
			if err != nil {
				return nil, fmt.Errorf("%s: %w", k, err)
			}
			kvs[i] = KeyVal{Key: k, Val: v}
		}
		return fromPlainObject(kvs)
	case []any:
		vs := make([]*Value, len(t))
		for i, e := range t {
			v, err := FromPlain(e)
			if err != nil {
				return nil, fmt.Errorf("[%d]: %w", i, err)
			}
			vs[i] = v
		}
		return FromSlice(vs), nil
	}

	rv := reflect.ValueOf(x)
	switch rv.Kind() {
	case reflect.Bool:
		return FromBool(rv.Bool()), nil
	case reflect.String:
		return FromString(rv.String()), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return FromInt(rv.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		u := rv.Uint()
		if u > math.MaxInt64 {
			return FromFloat(float64(u)), nil
		}
		return FromInt(int64(u)), nil
	case reflect.Float32, reflect.Float64:
		return FromFloat(rv.Float()), nil
	case reflect.Slice, reflect.Array:
		vs := make([]*Value, rv.Len())
		for i := range vs {
			v, err := FromPlain(rv.Index(i).Interface())
			if err != nil {
				return nil, fmt.Errorf("[%d]: %w", i, err)
			}
			vs[i] = v
		}
		return FromSlice(vs), nil
	}
	return nil, fmt.Errorf("unsupported plain type %T", x)
}

func fromMapSlice(ms yaml.MapSlice) (*Value, error) {
	kvs := make([]KeyVal, 0, len(ms))
	for _, item := range ms {
		key, ok := item.Key.(string)
		if !ok {
			key = fmt.Sprint(item.Key)
		}
		v, err := FromPlain(item.Value)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", key, err)
		}
		kvs = append(kvs, KeyVal{Key: key, Val: v})
	}
	return fromPlainObject(kvs)
}

func fromPlainObject(kvs []KeyVal) (*Value, error) {
	if len(kvs) != 1 || kvs[0].Val.Type != StringType {
		return FromKeyVals(kvs), nil
	}
	s := kvs[0].Val.String
	switch kvs[0].Key {
	case PlainThingKey:
		t, err := ParseThing(s)
		if err != nil {
			return nil, err
		}
		return FromThing(t), nil
	case PlainDurationKey:
		d, err := time.ParseDuration(s)
		if err != nil {
			return nil, err
		}
		return FromDuration(d), nil
	case PlainDatetimeKey:
		t, err := time.Parse(time.RFC3339Nano, s)
		if err != nil {
			return nil, err
		}
		return FromTime(t), nil
	}
	return FromKeyVals(kvs), nil
}

// ToPlain converts a value tree to plain Go data. Objects become
// yaml.MapSlice so that key order survives; identities, durations and
// datetimes become single-entry objects keyed by PlainThingKey,
// PlainDurationKey and PlainDatetimeKey.
func ToPlain(v *Value) any {
	if v == nil {
		return nil
	}
	switch v.Type {
	case BoolType:
		return v.Bool
	case NumberType:
		if v.Int64 != nil {
			return *v.Int64
		}
		if v.Float64 != nil {
			return *v.Float64
		}
		return 0
	case StringType:
		return v.String
	case ArrayType:
		res := make([]any, len(v.Values))
		for i, e := range v.Values {
			res[i] = ToPlain(e)
		}
		return res
	case ObjectType:
		res := make(yaml.MapSlice, len(v.Fields))
		for i, f := range v.Fields {
			res[i] = yaml.MapItem{Key: f, Value: ToPlain(v.Values[i])}
		}
		return res
	case ThingType:
		if v.Thing == nil {
			return nil
		}
		return yaml.MapSlice{{Key: PlainThingKey, Value: v.Thing.String()}}
	case DurationType:
		return yaml.MapSlice{{Key: PlainDurationKey, Value: v.Duration.String()}}
	case DatetimeType:
		return yaml.MapSlice{{Key: PlainDatetimeKey, Value: v.Time.Format(time.RFC3339Nano)}}
	}
	return nil
}
