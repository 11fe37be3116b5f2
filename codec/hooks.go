package codec

import (
	"encoding"
	"reflect"

	"github.com/signadot/go-surreal/value"
)

// Marshaler is implemented by types that encode themselves.
type Marshaler interface {
	MarshalSurreal() (*value.Value, error)
}

// Unmarshaler is implemented by types that decode themselves. v is nil
// when the key is absent from the enclosing object.
type Unmarshaler interface {
	UnmarshalSurreal(v *value.Value) error
}

var (
	marshalerType       = reflect.TypeFor[Marshaler]()
	unmarshalerType     = reflect.TypeFor[Unmarshaler]()
	textMarshalerType   = reflect.TypeFor[encoding.TextMarshaler]()
	textUnmarshalerType = reflect.TypeFor[encoding.TextUnmarshaler]()
)

// hookCodec builds the codec of a non-pointer type with encode or decode
// methods. Per direction, Marshaler/Unmarshaler wins over the text
// interfaces, which win over the structural codec. ok is false when t has
// no hooks at all.
func (r *Registry) hookCodec(t reflect.Type) (c *typeCodec, ok bool, err error) {
	if t.Kind() == reflect.Interface {
		return nil, false, nil
	}
	pt := reflect.PointerTo(t)
	var (
		enc func(rv reflect.Value) (*value.Value, error)
		dec func(v *value.Value, rv reflect.Value) error
	)
	switch {
	case t.Implements(marshalerType) || pt.Implements(marshalerType):
		enc = func(rv reflect.Value) (*value.Value, error) {
			return addressable(rv).Interface().(Marshaler).MarshalSurreal()
		}
	case t.Implements(textMarshalerType) || pt.Implements(textMarshalerType):
		enc = func(rv reflect.Value) (*value.Value, error) {
			text, err := addressable(rv).Interface().(encoding.TextMarshaler).MarshalText()
			if err != nil {
				return nil, &MarshalError{Err: err}
			}
			return value.FromString(string(text)), nil
		}
	}
	switch {
	case pt.Implements(unmarshalerType):
		dec = func(v *value.Value, rv reflect.Value) error {
			return rv.Addr().Interface().(Unmarshaler).UnmarshalSurreal(v)
		}
	case pt.Implements(textUnmarshalerType):
		dec = func(v *value.Value, rv reflect.Value) error {
			switch {
			case v.IsNone():
				return missing()
			case v.Type != value.StringType:
				return unexpected("string", v)
			}
			if err := rv.Addr().Interface().(encoding.TextUnmarshaler).UnmarshalText([]byte(v.String)); err != nil {
				return &Error{Kind: KindUnexpectedType, Expected: t.String(), Repr: value.Repr(v), Cause: err}
			}
			return nil
		}
	}
	if enc == nil && dec == nil {
		return nil, false, nil
	}
	if enc == nil || dec == nil {
		sc, err := r.structural(t)
		if err != nil {
			return nil, true, err
		}
		if enc == nil {
			enc = sc.enc
		}
		if dec == nil {
			dec = sc.dec
		}
	}
	return &typeCodec{typ: t, shape: ShapeCustom, enc: enc, dec: dec}, true, nil
}

// addressable returns rv's address when it has one, and otherwise a
// pointer to a copy, so pointer receivers are reachable.
func addressable(rv reflect.Value) reflect.Value {
	if rv.CanAddr() {
		return rv.Addr()
	}
	p := reflect.New(rv.Type())
	p.Elem().Set(rv)
	return p
}
