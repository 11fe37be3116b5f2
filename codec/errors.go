package codec

import (
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/signadot/go-surreal/value"
)

// Kind classifies decode failures.
type Kind int

const (
	KindExpectedAnObject Kind = iota + 1
	KindExpectedAnArray
	KindExpectedAnArrayWith1ItemToDeserializeToObject
	KindInvalidEnumFormat
	KindUnknownVariant
	KindTypeEnumMustBeString
	KindNumberOfFieldOfLengthOfDbValueNotMatchLengthOfEnum
	KindParsingFieldFailed
	KindUnexpectedType
	KindMissingValue
	KindNumberOverflow
)

var kindNames = map[Kind]string{
	KindExpectedAnObject: "ExpectedAnObject",
	KindExpectedAnArray:  "ExpectedAnArray",
	KindExpectedAnArrayWith1ItemToDeserializeToObject:      "ExpectedAnArrayWith1ItemToDeserializeToObject",
	KindInvalidEnumFormat:                                  "InvalidEnumFormat",
	KindUnknownVariant:                                     "UnknownVariant",
	KindTypeEnumMustBeString:                               "TypeEnumMustBeString",
	KindNumberOfFieldOfLengthOfDbValueNotMatchLengthOfEnum: "NumberOfFieldOfLengthOfDbValueNotMatchLengthOfEnum",
	KindParsingFieldFailed:                                 "ParsingFieldFailed",
	KindUnexpectedType:                                     "UnexpectedType",
	KindMissingValue:                                       "MissingValue",
	KindNumberOverflow:                                     "NumberOverflow",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Error is a decode failure.
//
// Compare kinds with errors.Is against the Err* sentinels below; a
// sentinel matches any *Error of the same Kind.
type Error struct {
	Kind Kind
	// Repr is a rendering of the offending value.
	Repr string
	// Name is the variant name for KindUnknownVariant.
	Name string
	// Field is the wire name of the failing field for
	// KindParsingFieldFailed. Sequence elements and tuple positions
	// use "[i]".
	Field string
	// Expected names the wanted value type for KindUnexpectedType and
	// the target Go type for KindNumberOverflow.
	Expected string
	Cause    error
}

var (
	ErrExpectedAnObject = &Error{Kind: KindExpectedAnObject}
	ErrExpectedAnArray  = &Error{Kind: KindExpectedAnArray}
	ErrExpectedAnArrayWith1ItemToDeserializeToObject = &Error{
		Kind: KindExpectedAnArrayWith1ItemToDeserializeToObject}
	ErrInvalidEnumFormat    = &Error{Kind: KindInvalidEnumFormat}
	ErrUnknownVariant       = &Error{Kind: KindUnknownVariant}
	ErrTypeEnumMustBeString = &Error{Kind: KindTypeEnumMustBeString}
	ErrNumberOfFieldOfLengthOfDbValueNotMatchLengthOfEnum = &Error{
		Kind: KindNumberOfFieldOfLengthOfDbValueNotMatchLengthOfEnum}
	ErrParsingFieldFailed = &Error{Kind: KindParsingFieldFailed}
	ErrUnexpectedType     = &Error{Kind: KindUnexpectedType}
	ErrMissingValue       = &Error{Kind: KindMissingValue}
	ErrNumberOverflow     = &Error{Kind: KindNumberOverflow}
)

// Registration errors.
var (
	ErrInvalidTagKey = errors.New("Invalid tag field name, only \"type\" is allowed.")
	ErrRegistration  = errors.New("invalid registration")
)

func (e *Error) Error() string {
	switch e.Kind {
	case KindParsingFieldFailed:
		if r := e.root(); r != error(e) {
			return fmt.Sprintf("parsing field %s: %v", e.Path(), r)
		}
		return fmt.Sprintf("parsing field %s failed", e.Path())
	case KindUnknownVariant:
		return fmt.Sprintf("unknown variant %q", e.Name)
	case KindUnexpectedType:
		return fmt.Sprintf("expected %s, got %s", e.Expected, e.Repr)
	case KindNumberOverflow:
		return fmt.Sprintf("%s overflows %s", e.Repr, e.Expected)
	case KindMissingValue:
		return "missing value"
	}
	if e.Repr == "" {
		return e.Kind.String()
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Repr)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target is a sentinel of the same kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && t.Repr == "" && t.Name == "" && t.Field == "" && t.Cause == nil
}

// Path returns the wire path of the failing field, e.g. "address.city" or
// "tags[2]". It is empty unless e is a ParsingFieldFailed error.
func (e *Error) Path() string {
	var b strings.Builder
	var cur error = e
	for {
		fe, ok := cur.(*Error)
		if !ok || fe.Kind != KindParsingFieldFailed {
			break
		}
		if b.Len() > 0 && !strings.HasPrefix(fe.Field, "[") {
			b.WriteByte('.')
		}
		b.WriteString(fe.Field)
		cur = fe.Cause
	}
	return b.String()
}

// root returns the innermost error under a chain of field failures.
func (e *Error) root() error {
	var cur error = e
	for {
		fe, ok := cur.(*Error)
		if !ok || fe.Kind != KindParsingFieldFailed || fe.Cause == nil {
			return cur
		}
		cur = fe.Cause
	}
}

// Path returns the failing wire path of a decode error, or "".
func Path(err error) string {
	var e *Error
	if !errors.As(err, &e) {
		return ""
	}
	return e.Path()
}

func newError(k Kind, v *value.Value) *Error {
	return &Error{Kind: k, Repr: value.Repr(v)}
}

func fieldFailed(field string, cause error) *Error {
	return &Error{Kind: KindParsingFieldFailed, Field: field, Cause: cause}
}

func unexpected(expected string, v *value.Value) *Error {
	return &Error{Kind: KindUnexpectedType, Expected: expected, Repr: value.Repr(v)}
}

func missing() *Error {
	return &Error{Kind: KindMissingValue}
}

// MarshalError is an encode failure.
type MarshalError struct {
	FieldPath string
	Message   string
	Err       error
}

func (e *MarshalError) Error() string {
	msg := e.Message
	if msg == "" && e.Err != nil {
		msg = e.Err.Error()
	}
	if e.FieldPath != "" {
		return fmt.Sprintf("marshal error at %s: %s", e.FieldPath, msg)
	}
	return fmt.Sprintf("marshal error: %s", msg)
}

func (e *MarshalError) Unwrap() error {
	return e.Err
}

// atField prefixes the path of an encode error with a field name.
func atField(field string, err error) error {
	var me *MarshalError
	if errors.As(err, &me) {
		sep := "."
		if me.FieldPath == "" || strings.HasPrefix(me.FieldPath, "[") {
			sep = ""
		}
		return &MarshalError{FieldPath: field + sep + me.FieldPath, Message: me.Message, Err: me.Err}
	}
	return &MarshalError{FieldPath: field, Err: err}
}
