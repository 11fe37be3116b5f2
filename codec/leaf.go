package codec

import (
	"math"
	"reflect"
	"time"

	"github.com/signadot/go-surreal/value"
)

var (
	valueType    = reflect.TypeFor[*value.Value]()
	thingType    = reflect.TypeFor[value.Thing]()
	durationType = reflect.TypeFor[time.Duration]()
	timeType     = reflect.TypeFor[time.Time]()
)

// specialCodec returns the codec of types with a dedicated value type, or
// nil.
func specialCodec(t reflect.Type) *typeCodec {
	switch t {
	case valueType:
		return &typeCodec{typ: t, shape: ShapeValue, enc: encodeValuePtr, dec: decodeValuePtr}
	case thingType:
		return &typeCodec{typ: t, shape: ShapeIdentity, enc: encodeThing, dec: decodeThing}
	case durationType:
		return &typeCodec{typ: t, shape: ShapeDuration, enc: encodeDuration, dec: decodeDuration}
	case timeType:
		return &typeCodec{typ: t, shape: ShapeTimestamp, enc: encodeTime, dec: decodeTime}
	}
	return nil
}

func encodeValuePtr(rv reflect.Value) (*value.Value, error) {
	if rv.IsNil() {
		return value.None(), nil
	}
	return rv.Interface().(*value.Value).Clone(), nil
}

func decodeValuePtr(v *value.Value, rv reflect.Value) error {
	if v == nil {
		rv.SetZero()
		return nil
	}
	rv.Set(reflect.ValueOf(v.Clone()))
	return nil
}

func encodeThing(rv reflect.Value) (*value.Value, error) {
	th := rv.Interface().(value.Thing)
	if th.Table == "" || th.ID == nil {
		return value.None(), nil
	}
	return value.FromThing(th), nil
}

// decodeThing reads NONE as the zero Thing, which is what encodeThing
// writes for it.
func decodeThing(v *value.Value, rv reflect.Value) error {
	switch {
	case v == nil:
		return missing()
	case v.IsNone():
		rv.SetZero()
	case v.Type == value.ThingType && v.Thing != nil:
		rv.Set(reflect.ValueOf(*v.Thing))
	case v.Type == value.StringType:
		th, err := value.ParseThing(v.String)
		if err != nil {
			return &Error{Kind: KindUnexpectedType, Expected: "thing", Repr: value.Repr(v), Cause: err}
		}
		rv.Set(reflect.ValueOf(th))
	default:
		return unexpected("thing", v)
	}
	return nil
}

func encodeDuration(rv reflect.Value) (*value.Value, error) {
	return value.FromDuration(time.Duration(rv.Int())), nil
}

func decodeDuration(v *value.Value, rv reflect.Value) error {
	switch {
	case v.IsNone():
		return missing()
	case v.Type == value.DurationType:
		rv.SetInt(int64(v.Duration))
	case v.Type == value.StringType:
		d, err := time.ParseDuration(v.String)
		if err != nil {
			return &Error{Kind: KindUnexpectedType, Expected: "duration", Repr: value.Repr(v), Cause: err}
		}
		rv.SetInt(int64(d))
	default:
		return unexpected("duration", v)
	}
	return nil
}

func encodeTime(rv reflect.Value) (*value.Value, error) {
	return value.FromTime(rv.Interface().(time.Time)), nil
}

func decodeTime(v *value.Value, rv reflect.Value) error {
	switch {
	case v.IsNone():
		return missing()
	case v.Type == value.DatetimeType:
		rv.Set(reflect.ValueOf(v.Time))
	case v.Type == value.StringType:
		t, err := time.Parse(time.RFC3339Nano, v.String)
		if err != nil {
			return &Error{Kind: KindUnexpectedType, Expected: "datetime", Repr: value.Repr(v), Cause: err}
		}
		rv.Set(reflect.ValueOf(t.UTC()))
	default:
		return unexpected("datetime", v)
	}
	return nil
}

func leafCodec(t reflect.Type) *typeCodec {
	c := &typeCodec{typ: t, shape: ShapeLeaf}
	switch t.Kind() {
	case reflect.Bool:
		c.enc = func(rv reflect.Value) (*value.Value, error) {
			return value.FromBool(rv.Bool()), nil
		}
		c.dec = decodeBool
	case reflect.String:
		c.enc = func(rv reflect.Value) (*value.Value, error) {
			return value.FromString(rv.String()), nil
		}
		c.dec = decodeString
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		c.enc = func(rv reflect.Value) (*value.Value, error) {
			return value.FromInt(rv.Int()), nil
		}
		c.dec = decodeInt
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		c.enc = encodeUint
		c.dec = decodeUint
	case reflect.Float32, reflect.Float64:
		c.enc = func(rv reflect.Value) (*value.Value, error) {
			return value.FromFloat(rv.Float()), nil
		}
		c.dec = decodeFloat
	}
	return c
}

func decodeBool(v *value.Value, rv reflect.Value) error {
	switch {
	case v.IsNone():
		return missing()
	case v.Type != value.BoolType:
		return unexpected("bool", v)
	}
	rv.SetBool(v.Bool)
	return nil
}

func decodeString(v *value.Value, rv reflect.Value) error {
	switch {
	case v.IsNone():
		return missing()
	case v.Type != value.StringType:
		return unexpected("string", v)
	}
	rv.SetString(v.String)
	return nil
}

// integral returns the integer held by a number value. Floats are
// accepted when they have no fractional part.
func integral(v *value.Value) (i int64, u uint64, neg, ok bool) {
	if v.Type != value.NumberType {
		return 0, 0, false, false
	}
	if v.Int64 != nil {
		i = *v.Int64
		return i, uint64(i), i < 0, true
	}
	if v.Float64 == nil {
		return 0, 0, false, false
	}
	f := *v.Float64
	if f != math.Trunc(f) || math.IsInf(f, 0) {
		return 0, 0, false, false
	}
	if f < 0 {
		if f < math.MinInt64 {
			return 0, 0, true, false
		}
		return int64(f), 0, true, true
	}
	if f >= math.MaxUint64 {
		return 0, 0, false, false
	}
	return int64(f), uint64(f), false, true
}

func decodeInt(v *value.Value, rv reflect.Value) error {
	if v.IsNone() {
		return missing()
	}
	i, u, neg, ok := integral(v)
	if !ok {
		if v.Type == value.NumberType && v.Float64 != nil && *v.Float64 == math.Trunc(*v.Float64) {
			return &Error{Kind: KindNumberOverflow, Expected: rv.Type().String(), Repr: value.Repr(v)}
		}
		return unexpected("integer", v)
	}
	if (!neg && u > math.MaxInt64) || rv.OverflowInt(i) {
		return &Error{Kind: KindNumberOverflow, Expected: rv.Type().String(), Repr: value.Repr(v)}
	}
	rv.SetInt(i)
	return nil
}

func encodeUint(rv reflect.Value) (*value.Value, error) {
	u := rv.Uint()
	if u > math.MaxInt64 {
		return nil, &MarshalError{Message: "unsigned integer overflows int64"}
	}
	return value.FromInt(int64(u)), nil
}

func decodeUint(v *value.Value, rv reflect.Value) error {
	if v.IsNone() {
		return missing()
	}
	_, u, neg, ok := integral(v)
	if !ok {
		if v.Type == value.NumberType && v.Float64 != nil && *v.Float64 == math.Trunc(*v.Float64) {
			return &Error{Kind: KindNumberOverflow, Expected: rv.Type().String(), Repr: value.Repr(v)}
		}
		return unexpected("integer", v)
	}
	if neg || rv.OverflowUint(u) {
		return &Error{Kind: KindNumberOverflow, Expected: rv.Type().String(), Repr: value.Repr(v)}
	}
	rv.SetUint(u)
	return nil
}

func decodeFloat(v *value.Value, rv reflect.Value) error {
	switch {
	case v.IsNone():
		return missing()
	case v.Type != value.NumberType:
		return unexpected("number", v)
	}
	var f float64
	switch {
	case v.Int64 != nil:
		f = float64(*v.Int64)
	case v.Float64 != nil:
		f = *v.Float64
	default:
		return unexpected("number", v)
	}
	if rv.OverflowFloat(f) {
		return &Error{Kind: KindNumberOverflow, Expected: rv.Type().String(), Repr: value.Repr(v)}
	}
	rv.SetFloat(f)
	return nil
}
