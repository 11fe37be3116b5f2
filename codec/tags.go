package codec

import (
	"reflect"
	"strings"

	"github.com/cockroachdb/errors"
)

// fieldTag is the parsed form of a field's struct tag.
type fieldTag struct {
	ignore            bool
	name              string
	skipSerializing   bool
	skipDeserializing bool
	useDefault        bool
	transparent       bool
}

// ParseStructTag parses a struct tag value into key/value pairs. Parts are
// separated by commas or spaces; a part without '=' is a flag and maps to
// the empty string. Values may be single or double quoted:
//
//	`surreal:"name='created at',default"`
func ParseStructTag(tag string) (map[string]string, error) {
	res := make(map[string]string)
	if tag == "" {
		return res, nil
	}
	var (
		parts   []string
		current strings.Builder
		inS     bool
		inD     bool
	)
	flush := func() {
		if part := strings.TrimSpace(current.String()); part != "" {
			parts = append(parts, part)
		}
		current.Reset()
	}
	for i := 0; i < len(tag); i++ {
		c := tag[i]
		switch {
		case c == '\'' && !inD:
			inS = !inS
			current.WriteByte(c)
		case c == '"' && !inS:
			inD = !inD
			current.WriteByte(c)
		case (c == ',' || c == ' ') && !inS && !inD:
			flush()
		default:
			current.WriteByte(c)
		}
	}
	if inS || inD {
		return nil, errors.Newf("invalid tag %q: unterminated quote", tag)
	}
	flush()

	for _, part := range parts {
		idx := strings.IndexByte(part, '=')
		if idx < 0 {
			res[part] = ""
			continue
		}
		key := strings.TrimSpace(part[:idx])
		if key == "" {
			return nil, errors.Newf("invalid tag: empty key in %q", part)
		}
		res[key] = unquote(strings.TrimSpace(part[idx+1:]))
	}
	return res, nil
}

func unquote(s string) string {
	if len(s) >= 2 && (s[0] == '\'' || s[0] == '"') && s[len(s)-1] == s[0] {
		return s[1 : len(s)-1]
	}
	return s
}

func parseFieldTag(field reflect.StructField, key string) (fieldTag, error) {
	raw, ok := field.Tag.Lookup(key)
	if !ok {
		return fieldTag{}, nil
	}
	if raw == "-" {
		return fieldTag{ignore: true}, nil
	}
	kvs, err := ParseStructTag(raw)
	if err != nil {
		return fieldTag{}, errors.Wrapf(err, "field %s", field.Name)
	}
	var ft fieldTag
	for k, v := range kvs {
		switch k {
		case "name":
			if v == "" {
				return fieldTag{}, errors.Newf("field %s: empty name", field.Name)
			}
			ft.name = v
		case "skip":
			ft.skipSerializing = true
			ft.skipDeserializing = true
		case "skip_serializing":
			ft.skipSerializing = true
		case "skip_deserializing":
			ft.skipDeserializing = true
		case "default":
			ft.useDefault = true
		case "transparent":
			ft.transparent = true
		default:
			return fieldTag{}, errors.Newf("field %s: unknown tag option %q", field.Name, k)
		}
	}
	return ft, nil
}
