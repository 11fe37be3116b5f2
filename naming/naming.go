// Package naming translates identifiers between host (Go) case style and
// the wire case style used for field and variant names.
//
// The two translations are deliberately simple and are not inverses of
// each other for identifiers containing digits or runs of upper-case
// letters:
//
//	CamelToSnake("userType") == "user_type"
//	SnakeToCamel("user_type") == "userType"
//	CamelToSnake("ID") == "i_d"
//
// Wire names must be reproducible byte for byte, so no acronym heuristics
// are applied.
package naming

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// SnakeToCamel splits s on '_', lower-cases the first segment, capitalizes
// the first letter of every following segment and joins the result.
func SnakeToCamel(s string) string {
	segs := strings.Split(s, "_")
	var b strings.Builder
	b.Grow(len(s))
	for i, seg := range segs {
		if i == 0 {
			b.WriteString(strings.ToLower(seg))
			continue
		}
		if seg == "" {
			continue
		}
		r, size := utf8.DecodeRuneInString(seg)
		b.WriteRune(unicode.ToUpper(r))
		b.WriteString(seg[size:])
	}
	return b.String()
}

// CamelToSnake inserts '_' before every upper-case letter other than the
// first character and lower-cases the result.
func CamelToSnake(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 4)
	first := true
	for _, r := range s {
		if unicode.IsUpper(r) && !first {
			b.WriteByte('_')
		}
		first = false
		b.WriteRune(r)
	}
	return strings.ToLower(b.String())
}

// HostName returns the host identifier of a Go identifier: the export
// capital carries no naming information, so the first rune is
// lower-cased.
//
//	HostName("Premium") == "premium"
//	HostName("GoldMember") == "goldMember"
func HostName(goIdent string) string {
	if goIdent == "" {
		return ""
	}
	r, size := utf8.DecodeRuneInString(goIdent)
	return string(unicode.ToLower(r)) + goIdent[size:]
}

// Convention selects the wire case style.
type Convention int

const (
	// SnakeCase produces wire names like "subscription_type".
	SnakeCase Convention = iota
	// CamelCase produces wire names like "subscriptionType".
	CamelCase
)

func (c Convention) String() string {
	switch c {
	case SnakeCase:
		return "snake"
	case CamelCase:
		return "camel"
	}
	return "<unknown convention>"
}

func (c Convention) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

func (c *Convention) UnmarshalText(d []byte) error {
	cc, err := ParseConvention(string(d))
	if err != nil {
		return err
	}
	*c = cc
	return nil
}

// ParseConvention parses "snake" or "camel" (also "snake_case",
// "camelCase").
func ParseConvention(s string) (Convention, error) {
	switch strings.ToLower(s) {
	case "snake", "snake_case", "snakecase", "":
		return SnakeCase, nil
	case "camel", "camel_case", "camelcase":
		return CamelCase, nil
	}
	return SnakeCase, fmt.Errorf("unrecognized naming convention %q", s)
}

// Wire returns the wire name of a host identifier under c.
//
// Host identifiers coming from Go are MixedCaps, so the camel form is
// reached through the snake form. For an identifier already in snake case
// this is the same as SnakeToCamel.
func (c Convention) Wire(host string) string {
	switch c {
	case CamelCase:
		return SnakeToCamel(CamelToSnake(host))
	default:
		return CamelToSnake(host)
	}
}
