package value

import (
	"strconv"
	"strings"
	"time"
)

const maxRepr = 96

// Repr returns a short single-line rendering of v for error messages.
// Long renderings are truncated with "...".
func Repr(v *Value) string {
	var b strings.Builder
	writeRepr(&b, v)
	s := b.String()
	if len(s) > maxRepr {
		return s[:maxRepr-3] + "..."
	}
	return s
}

func writeRepr(b *strings.Builder, v *Value) {
	if v == nil {
		b.WriteString("NONE")
		return
	}
	if b.Len() > maxRepr {
		return
	}
	switch v.Type {
	case NoneType:
		b.WriteString("NONE")
	case BoolType:
		b.WriteString(strconv.FormatBool(v.Bool))
	case NumberType:
		b.WriteString(FormatNumber(v))
	case StringType:
		b.WriteString(strconv.Quote(v.String))
	case DurationType:
		b.WriteString(v.Duration.String())
	case DatetimeType:
		b.WriteString("d'" + v.Time.Format(time.RFC3339Nano) + "'")
	case ThingType:
		if v.Thing == nil {
			b.WriteString("NONE")
			return
		}
		b.WriteString(v.Thing.String())
	case ArrayType:
		b.WriteByte('[')
		for i, e := range v.Values {
			if i > 0 {
				b.WriteString(", ")
			}
			writeRepr(b, e)
		}
		b.WriteByte(']')
	case ObjectType:
		b.WriteByte('{')
		for i, f := range v.Fields {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(strconv.Quote(f))
			b.WriteString(": ")
			writeRepr(b, v.Values[i])
		}
		b.WriteByte('}')
	default:
		b.WriteString(v.Type.String())
	}
}

// FormatNumber formats a number value; floats always carry a decimal
// point or exponent so they read back as floats.
func FormatNumber(v *Value) string {
	switch {
	case v.Int64 != nil:
		return strconv.FormatInt(*v.Int64, 10)
	case v.Float64 != nil:
		s := strconv.FormatFloat(*v.Float64, 'g', -1, 64)
		if !strings.ContainsAny(s, ".eEnN") {
			s += ".0"
		}
		return s
	}
	return "0"
}
