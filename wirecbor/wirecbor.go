// Package wirecbor converts value trees to and from the CBOR encoding
// SurrealDB speaks on its RPC interface.
//
// Values without a CBOR counterpart are tagged:
//
//	tag 6   NONE             null content
//	tag 8   record id        [table, id]
//	tag 12  datetime         [seconds, nanoseconds]
//	tag 14  duration         [seconds, nanoseconds]
//
// Encoding is Core Deterministic (RFC 8949 §4.2), so object keys come out
// sorted, which matches how SurrealDB orders object keys. Decoding also
// accepts the string forms of datetimes (tag 0), uuids (tag 9), decimals
// (tag 10) and durations (tag 13).
package wirecbor

import (
	"maps"
	"math"
	"reflect"
	"slices"
	"strconv"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/fxamacker/cbor/v2"
	"github.com/signadot/go-surreal/value"
)

const (
	TagDatetimeString uint64 = 0
	TagNone           uint64 = 6
	TagTable          uint64 = 7
	TagRecordID       uint64 = 8
	TagUUIDString     uint64 = 9
	TagDecimalString  uint64 = 10
	TagDatetime       uint64 = 12
	TagDurationString uint64 = 13
	TagDuration       uint64 = 14
)

var (
	encMode cbor.EncMode
	decMode cbor.DecMode
)

func init() {
	var err error
	encMode, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic("wirecbor: CBOR encoder initialization failed: " + err.Error())
	}
	decMode, err = cbor.DecOptions{
		DefaultMapType: reflect.TypeOf(map[string]any(nil)),
	}.DecMode()
	if err != nil {
		panic("wirecbor: CBOR decoder initialization failed: " + err.Error())
	}
}

// Marshal encodes v.
func Marshal(v *value.Value) ([]byte, error) {
	x, err := toCBOR(v)
	if err != nil {
		return nil, err
	}
	return encMode.Marshal(x)
}

// Unmarshal decodes a single CBOR data item.
func Unmarshal(data []byte) (*value.Value, error) {
	var x any
	if err := decMode.Unmarshal(data, &x); err != nil {
		return nil, errors.Wrap(err, "wirecbor")
	}
	return fromCBOR(x)
}

// Diagnose returns the diagnostic notation (RFC 8949 §8) of data.
func Diagnose(data []byte) (string, error) {
	return cbor.Diagnose(data)
}

func toCBOR(v *value.Value) (any, error) {
	if v == nil {
		return cbor.Tag{Number: TagNone}, nil
	}
	switch v.Type {
	case value.NoneType:
		return cbor.Tag{Number: TagNone}, nil
	case value.BoolType:
		return v.Bool, nil
	case value.NumberType:
		if v.Int64 != nil {
			return *v.Int64, nil
		}
		if v.Float64 != nil {
			return *v.Float64, nil
		}
		return nil, errors.New("wirecbor: number without a value")
	case value.StringType:
		return v.String, nil
	case value.ArrayType:
		res := make([]any, len(v.Values))
		for i, e := range v.Values {
			x, err := toCBOR(e)
			if err != nil {
				return nil, err
			}
			res[i] = x
		}
		return res, nil
	case value.ObjectType:
		res := make(map[string]any, len(v.Fields))
		for i, f := range v.Fields {
			x, err := toCBOR(v.Values[i])
			if err != nil {
				return nil, errors.Wrapf(err, "key %q", f)
			}
			res[f] = x
		}
		return res, nil
	case value.ThingType:
		if v.Thing == nil {
			return nil, errors.New("wirecbor: thing without a value")
		}
		id, err := toCBOR(v.Thing.ID)
		if err != nil {
			return nil, err
		}
		return cbor.Tag{Number: TagRecordID, Content: []any{v.Thing.Table, id}}, nil
	case value.DatetimeType:
		return cbor.Tag{Number: TagDatetime, Content: []any{v.Time.Unix(), int64(v.Time.Nanosecond())}}, nil
	case value.DurationType:
		d := v.Duration
		if d < 0 {
			return nil, errors.Newf("wirecbor: negative duration %s", d)
		}
		return cbor.Tag{Number: TagDuration, Content: []any{int64(d / time.Second), int64(d % time.Second)}}, nil
	}
	return nil, errors.Newf("wirecbor: unknown value type %s", v.Type)
}

func fromCBOR(x any) (*value.Value, error) {
	switch x := x.(type) {
	case nil:
		return value.None(), nil
	case bool:
		return value.FromBool(x), nil
	case int64:
		return value.FromInt(x), nil
	case uint64:
		if x > math.MaxInt64 {
			return value.FromFloat(float64(x)), nil
		}
		return value.FromInt(int64(x)), nil
	case float32:
		return value.FromFloat(float64(x)), nil
	case float64:
		return value.FromFloat(x), nil
	case string:
		return value.FromString(x), nil
	case time.Time:
		return value.FromTime(x), nil
	case []any:
		vs := make([]*value.Value, len(x))
		for i, e := range x {
			v, err := fromCBOR(e)
			if err != nil {
				return nil, err
			}
			vs[i] = v
		}
		return value.FromSlice(vs), nil
	case map[string]any:
		keys := slices.Sorted(maps.Keys(x))
		kvs := make([]value.KeyVal, len(keys))
		for i, k := range keys {
			v, err := fromCBOR(x[k])
			if err != nil {
				return nil, errors.Wrapf(err, "key %q", k)
			}
			kvs[i] = value.KeyVal{Key: k, Val: v}
		}
		return value.FromKeyVals(kvs), nil
	case cbor.Tag:
		return fromTag(x)
	}
	return nil, errors.Newf("wirecbor: unsupported CBOR item %T", x)
}

func fromTag(t cbor.Tag) (*value.Value, error) {
	switch t.Number {
	case TagNone:
		return value.None(), nil
	case TagTable, TagUUIDString:
		s, ok := t.Content.(string)
		if !ok {
			return nil, errors.Newf("wirecbor: tag %d: expected a string, got %T", t.Number, t.Content)
		}
		return value.FromString(s), nil
	case TagDecimalString:
		s, ok := t.Content.(string)
		if !ok {
			return nil, errors.Newf("wirecbor: tag %d: expected a string, got %T", t.Number, t.Content)
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, errors.Wrapf(err, "wirecbor: decimal %q", s)
		}
		return value.FromFloat(f), nil
	case TagDatetimeString:
		s, ok := t.Content.(string)
		if !ok {
			return nil, errors.Newf("wirecbor: tag %d: expected a string, got %T", t.Number, t.Content)
		}
		ts, err := time.Parse(time.RFC3339Nano, s)
		if err != nil {
			return nil, errors.Wrapf(err, "wirecbor: datetime %q", s)
		}
		return value.FromTime(ts), nil
	case TagDurationString:
		s, ok := t.Content.(string)
		if !ok {
			return nil, errors.Newf("wirecbor: tag %d: expected a string, got %T", t.Number, t.Content)
		}
		d, err := time.ParseDuration(s)
		if err != nil {
			return nil, errors.Wrapf(err, "wirecbor: duration %q", s)
		}
		return value.FromDuration(d), nil
	case TagRecordID:
		parts, ok := t.Content.([]any)
		if !ok || len(parts) != 2 {
			return nil, errors.Newf("wirecbor: record id: expected [table, id], got %v", t.Content)
		}
		table, ok := parts[0].(string)
		if !ok {
			return nil, errors.Newf("wirecbor: record id: table is %T, not a string", parts[0])
		}
		id, err := fromCBOR(parts[1])
		if err != nil {
			return nil, errors.Wrap(err, "wirecbor: record id")
		}
		return value.FromThing(value.Thing{Table: table, ID: id}), nil
	case TagDatetime, TagDuration:
		secs, nanos, err := compact(t)
		if err != nil {
			return nil, err
		}
		if t.Number == TagDatetime {
			return value.FromTime(time.Unix(secs, nanos)), nil
		}
		return value.FromDuration(time.Duration(secs)*time.Second + time.Duration(nanos)), nil
	}
	return nil, errors.Newf("wirecbor: unsupported tag %d", t.Number)
}

// compact reads the [seconds, nanoseconds] content of a compact datetime
// or duration. Trailing zero parts may be omitted.
func compact(t cbor.Tag) (secs, nanos int64, err error) {
	parts, ok := t.Content.([]any)
	if !ok || len(parts) > 2 {
		return 0, 0, errors.Newf("wirecbor: tag %d: expected [seconds, nanoseconds], got %v", t.Number, t.Content)
	}
	var ns [2]int64
	for i, p := range parts {
		switch p := p.(type) {
		case int64:
			ns[i] = p
		case uint64:
			if p > math.MaxInt64 {
				return 0, 0, errors.Newf("wirecbor: tag %d: %d out of range", t.Number, p)
			}
			ns[i] = int64(p)
		default:
			return 0, 0, errors.Newf("wirecbor: tag %d: part %d is %T, not an integer", t.Number, i, p)
		}
	}
	return ns[0], ns[1], nil
}
