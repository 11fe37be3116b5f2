package surql

import (
	"io"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/signadot/go-surreal/codec"
	"github.com/signadot/go-surreal/value"
)

type encState struct {
	indent int
	depth  int
	color  func(value.Type, ColorAttr, string) string
}

func (es *encState) paint(t value.Type, a ColorAttr, s string) string {
	if es.color == nil {
		return s
	}
	return es.color(t, a, s)
}

// Encode writes v to w as a SurrealQL literal.
func Encode(v *value.Value, w io.Writer, opts ...Option) error {
	_, err := io.WriteString(w, Format(v, opts...))
	return err
}

// Format returns v as a SurrealQL literal.
func Format(v *value.Value, opts ...Option) string {
	es := &encState{}
	for _, opt := range opts {
		opt(es)
	}
	var b strings.Builder
	es.write(&b, v)
	return b.String()
}

// Content returns a CONTENT clause for the object v.
func Content(v *value.Value, opts ...Option) (string, error) {
	if v == nil || v.Type != value.ObjectType {
		return "", errors.Newf("content: expected an object, got %s", value.Repr(v))
	}
	return "CONTENT " + Format(v, opts...), nil
}

// Set returns the body of a SET clause, e.g. "name = 'ada', age = 36".
func Set(as []codec.Assignment, opts ...Option) string {
	parts := make([]string, len(as))
	for i, a := range as {
		parts[i] = value.EscapeIdent(a.Field) + " = " + Format(a.Value, opts...)
	}
	return strings.Join(parts, ", ")
}

// ID returns the record id reference of t, e.g. "user:⟨How to use⟩".
func ID(t value.Thing) string {
	return t.String()
}

// Quote returns s as a single-quoted SurrealQL string.
func Quote(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 2)
	b.WriteByte('\'')
	for _, r := range s {
		switch r {
		case '\'':
			b.WriteString(`\'`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('\'')
	return b.String()
}

func objectKey(s string) string {
	if value.IsIdent(s) {
		return s
	}
	return Quote(s)
}

func (es *encState) nl(b *strings.Builder) {
	if es.indent == 0 {
		return
	}
	b.WriteByte('\n')
	b.WriteString(strings.Repeat(" ", es.indent*es.depth))
}

func (es *encState) write(b *strings.Builder, v *value.Value) {
	if v == nil {
		v = value.None()
	}
	switch v.Type {
	case value.ArrayType:
		es.writeArray(b, v)
		return
	case value.ObjectType:
		es.writeObject(b, v)
		return
	}
	b.WriteString(es.paint(v.Type, ValueColor, scalar(v)))
}

func (es *encState) writeArray(b *strings.Builder, v *value.Value) {
	sep := func(s string) string { return es.paint(value.ArrayType, SepColor, s) }
	if len(v.Values) == 0 {
		b.WriteString(sep("[]"))
		return
	}
	b.WriteString(sep("["))
	es.depth++
	for i, e := range v.Values {
		if i > 0 {
			b.WriteString(sep(","))
			if es.indent == 0 {
				b.WriteByte(' ')
			}
		}
		es.nl(b)
		es.write(b, e)
	}
	es.depth--
	es.nl(b)
	b.WriteString(sep("]"))
}

func (es *encState) writeObject(b *strings.Builder, v *value.Value) {
	sep := func(s string) string { return es.paint(value.ObjectType, SepColor, s) }
	if len(v.Fields) == 0 {
		b.WriteString(sep("{}"))
		return
	}
	b.WriteString(sep("{"))
	es.depth++
	for i, f := range v.Fields {
		if i > 0 {
			b.WriteString(sep(","))
		}
		if es.indent == 0 {
			b.WriteByte(' ')
		}
		es.nl(b)
		b.WriteString(es.paint(value.ObjectType, FieldColor, objectKey(f)))
		b.WriteString(sep(":"))
		b.WriteByte(' ')
		es.write(b, v.Values[i])
	}
	es.depth--
	if es.indent == 0 {
		b.WriteByte(' ')
	}
	es.nl(b)
	b.WriteString(sep("}"))
}

func scalar(v *value.Value) string {
	switch v.Type {
	case value.BoolType:
		return strconv.FormatBool(v.Bool)
	case value.NumberType:
		if v.Float64 != nil {
			f := *v.Float64
			switch {
			case math.IsNaN(f):
				return "NaN"
			case math.IsInf(f, 1):
				return "Infinity"
			case math.IsInf(f, -1):
				return "-Infinity"
			}
		}
		return value.FormatNumber(v)
	case value.StringType:
		return Quote(v.String)
	case value.ThingType:
		if v.Thing == nil {
			return "NONE"
		}
		return v.Thing.String()
	case value.DurationType:
		return Duration(v.Duration)
	case value.DatetimeType:
		return "d" + Quote(v.Time.UTC().Format(time.RFC3339Nano))
	}
	return "NONE"
}

var durationUnits = []struct {
	name string
	size time.Duration
}{
	{"y", 365 * 24 * time.Hour},
	{"w", 7 * 24 * time.Hour},
	{"d", 24 * time.Hour},
	{"h", time.Hour},
	{"m", time.Minute},
	{"s", time.Second},
	{"ms", time.Millisecond},
	{"µs", time.Microsecond},
	{"ns", time.Nanosecond},
}

// Duration returns d in SurrealQL duration syntax, e.g. "1h30m" or
// "250ms".
func Duration(d time.Duration) string {
	if d == 0 {
		return "0ns"
	}
	var b strings.Builder
	u := uint64(d)
	if d < 0 {
		b.WriteByte('-')
		u = uint64(-(d + 1)) + 1
	}
	for _, unit := range durationUnits {
		size := uint64(unit.size)
		if n := u / size; n > 0 {
			b.WriteString(strconv.FormatUint(n, 10))
			b.WriteString(unit.name)
			u -= n * size
		}
	}
	return b.String()
}
