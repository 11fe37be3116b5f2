package value

import (
	"fmt"
	"strconv"
	"strings"
)

// Thing is a record identity: a table name and a key within it.
// Keys are normally strings or integers; arrays and objects are accepted
// for composite keys.
type Thing struct {
	Table string `json:"table"`
	ID    *Value `json:"id"`
}

// StringThing returns the identity table:id with a string key.
func StringThing(table, id string) Thing {
	return Thing{Table: table, ID: FromString(id)}
}

// IntThing returns the identity table:id with an integer key.
func IntThing(table string, id int64) Thing {
	return Thing{Table: table, ID: FromInt(id)}
}

// ParseThing parses "table:id". An id wrapped in ⟨⟩ or `` is always a
// string; an id made only of digits is an integer.
func ParseThing(s string) (Thing, error) {
	i := strings.IndexByte(s, ':')
	if i <= 0 {
		return Thing{}, fmt.Errorf("invalid record id %q: expected table:id", s)
	}
	table, id := s[:i], s[i+1:]
	if id == "" {
		return Thing{}, fmt.Errorf("invalid record id %q: empty id", s)
	}
	switch {
	case strings.HasPrefix(id, "⟨") && strings.HasSuffix(id, "⟩"):
		inner := strings.TrimSuffix(strings.TrimPrefix(id, "⟨"), "⟩")
		return StringThing(table, strings.ReplaceAll(inner, `\⟩`, "⟩")), nil
	case len(id) >= 2 && id[0] == '`' && id[len(id)-1] == '`':
		return StringThing(table, id[1:len(id)-1]), nil
	}
	if n, err := strconv.ParseInt(id, 10, 64); err == nil {
		return IntThing(table, n), nil
	}
	return StringThing(table, id), nil
}

// String renders t the way the store prints record ids, for example
// user:Devlog or blogPost:⟨How to use surrealdb⟩.
func (t Thing) String() string {
	return EscapeIdent(t.Table) + ":" + t.idString()
}

func (t Thing) idString() string {
	id := t.ID
	switch {
	case id == nil:
		return "NONE"
	case id.Type == NumberType && id.Int64 != nil:
		return strconv.FormatInt(*id.Int64, 10)
	case id.Type == StringType:
		return escapeID(id.String)
	}
	return Repr(id)
}

func (t Thing) Equal(o Thing) bool {
	return t.Table == o.Table && Equal(t.ID, o.ID)
}

// IsIdent reports whether s can be written without escaping: a non-empty
// run of ASCII letters, digits and '_' that is not purely numeric.
func IsIdent(s string) bool {
	if s == "" {
		return false
	}
	digits := true
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= '0' && c <= '9':
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c == '_':
			digits = false
		default:
			return false
		}
	}
	return !digits
}

// EscapeIdent returns s, or s in backticks when it is not a plain
// identifier.
func EscapeIdent(s string) string {
	if IsIdent(s) {
		return s
	}
	return "`" + strings.ReplaceAll(s, "`", "\\`") + "`"
}

func escapeID(s string) string {
	if IsIdent(s) {
		return s
	}
	return "⟨" + strings.ReplaceAll(s, "⟩", `\⟩`) + "⟩"
}
