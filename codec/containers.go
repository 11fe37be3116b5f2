package codec

import (
	"reflect"
	"slices"
	"strconv"

	"github.com/cockroachdb/errors"
	"github.com/signadot/go-surreal/value"
)

func (r *Registry) optionalCodec(t reflect.Type) (*typeCodec, error) {
	elem, err := r.build(t.Elem())
	if err != nil {
		return nil, err
	}
	enc := func(rv reflect.Value) (*value.Value, error) {
		if rv.IsNil() {
			return value.None(), nil
		}
		return elem.encode(rv.Elem())
	}
	dec := func(v *value.Value, rv reflect.Value) error {
		if v.IsNone() {
			rv.SetZero()
			return nil
		}
		p := reflect.New(t.Elem())
		if err := elem.decode(v, p.Elem()); err != nil {
			return err
		}
		rv.Set(p)
		return nil
	}
	return &typeCodec{typ: t, shape: ShapeOptional, enc: enc, dec: dec}, nil
}

func index(i int) string {
	return "[" + strconv.Itoa(i) + "]"
}

func (r *Registry) sequenceCodec(t reflect.Type) (*typeCodec, error) {
	elem, err := r.build(t.Elem())
	if err != nil {
		return nil, err
	}
	fixed := t.Kind() == reflect.Array
	enc := func(rv reflect.Value) (*value.Value, error) {
		n := rv.Len()
		vs := make([]*value.Value, n)
		for i := range n {
			ev, err := elem.encode(rv.Index(i))
			if err != nil {
				return nil, atField(index(i), err)
			}
			vs[i] = ev
		}
		return value.FromSlice(vs), nil
	}
	dec := func(v *value.Value, rv reflect.Value) error {
		switch {
		case v.IsNone():
			return missing()
		case v.Type != value.ArrayType:
			return newError(KindExpectedAnArray, v)
		case fixed && len(v.Values) != t.Len():
			return newError(KindExpectedAnArray, v)
		}
		out := rv
		if !fixed {
			out = reflect.MakeSlice(t, len(v.Values), len(v.Values))
		}
		for i, ev := range v.Values {
			if err := elem.decode(ev, out.Index(i)); err != nil {
				return fieldFailed(index(i), err)
			}
		}
		if !fixed {
			rv.Set(out)
		}
		return nil
	}
	return &typeCodec{typ: t, shape: ShapeSequence, enc: enc, dec: dec}, nil
}

func (r *Registry) mapCodec(t reflect.Type) (*typeCodec, error) {
	if t.Key().Kind() != reflect.String {
		return nil, errors.Wrapf(ErrRegistration, "map %s: keys must be strings", t)
	}
	elem, err := r.build(t.Elem())
	if err != nil {
		return nil, err
	}
	enc := func(rv reflect.Value) (*value.Value, error) {
		keys := make([]string, 0, rv.Len())
		for _, k := range rv.MapKeys() {
			keys = append(keys, k.String())
		}
		slices.Sort(keys)
		kvs := make([]value.KeyVal, len(keys))
		for i, k := range keys {
			ev, err := elem.encode(rv.MapIndex(reflect.ValueOf(k).Convert(t.Key())))
			if err != nil {
				return nil, atField(k, err)
			}
			kvs[i] = value.KeyVal{Key: k, Val: ev}
		}
		return value.FromKeyVals(kvs), nil
	}
	dec := func(v *value.Value, rv reflect.Value) error {
		switch {
		case v.IsNone():
			return missing()
		case v.Type != value.ObjectType:
			return newError(KindExpectedAnObject, v)
		}
		m := reflect.MakeMapWithSize(t, len(v.Fields))
		for i, k := range v.Fields {
			ev := reflect.New(t.Elem()).Elem()
			if err := elem.decode(v.Values[i], ev); err != nil {
				return fieldFailed(k, err)
			}
			m.SetMapIndex(reflect.ValueOf(k).Convert(t.Key()), ev)
		}
		rv.Set(m)
		return nil
	}
	return &typeCodec{typ: t, shape: ShapeMap, enc: enc, dec: dec}, nil
}

// dynamicCodec handles empty interfaces: encoding follows the dynamic
// type, decoding yields bool, int64, float64, string, []any,
// map[string]any, value.Thing, time.Duration or time.Time.
func (r *Registry) dynamicCodec(t reflect.Type) *typeCodec {
	enc := func(rv reflect.Value) (*value.Value, error) {
		if rv.IsNil() {
			return value.None(), nil
		}
		return r.encodeValue(rv.Elem())
	}
	dec := func(v *value.Value, rv reflect.Value) error {
		p, err := dynamic(v)
		if err != nil {
			return err
		}
		if p == nil {
			rv.SetZero()
			return nil
		}
		pv := reflect.ValueOf(p)
		if !pv.Type().AssignableTo(t) {
			return unexpected(t.String(), v)
		}
		rv.Set(pv)
		return nil
	}
	return &typeCodec{typ: t, shape: ShapeDynamic, enc: enc, dec: dec}
}

func dynamic(v *value.Value) (any, error) {
	if v == nil {
		return nil, nil
	}
	switch v.Type {
	case value.BoolType:
		return v.Bool, nil
	case value.NumberType:
		switch {
		case v.Int64 != nil:
			return *v.Int64, nil
		case v.Float64 != nil:
			return *v.Float64, nil
		}
		return nil, unexpected("number", v)
	case value.StringType:
		return v.String, nil
	case value.ArrayType:
		res := make([]any, len(v.Values))
		for i, e := range v.Values {
			ev, err := dynamic(e)
			if err != nil {
				return nil, fieldFailed(index(i), err)
			}
			res[i] = ev
		}
		return res, nil
	case value.ObjectType:
		res := make(map[string]any, len(v.Fields))
		for i, f := range v.Fields {
			ev, err := dynamic(v.Values[i])
			if err != nil {
				return nil, fieldFailed(f, err)
			}
			res[f] = ev
		}
		return res, nil
	case value.ThingType:
		if v.Thing == nil {
			return nil, unexpected("thing", v)
		}
		return *v.Thing, nil
	case value.DurationType:
		return v.Duration, nil
	case value.DatetimeType:
		return v.Time, nil
	}
	return nil, nil
}
