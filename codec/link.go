package codec

import (
	"reflect"

	"github.com/signadot/go-surreal/value"
)

// Identifiable is implemented by records that know their record id.
type Identifiable interface {
	RecordID() value.Thing
}

// Link refers to a record of type T either by id or by the fetched record
// itself. It always encodes as the record id. It decodes from an id or,
// when the query fetched the link, from the record object.
type Link[T Identifiable] struct {
	id     value.Thing
	record *T
}

// LinkTo returns a Link holding only a record id.
func LinkTo[T Identifiable](id value.Thing) Link[T] {
	return Link[T]{id: id}
}

// LinkRecord returns a Link holding a record.
func LinkRecord[T Identifiable](rec T) Link[T] {
	return Link[T]{record: &rec}
}

// ID returns the id of the linked record.
func (l Link[T]) ID() value.Thing {
	if l.record != nil {
		return (*l.record).RecordID()
	}
	return l.id
}

// Record returns the linked record if the link holds one.
func (l Link[T]) Record() (T, bool) {
	if l.record == nil {
		var zero T
		return zero, false
	}
	return *l.record, true
}

// IsZero reports whether l holds neither an id nor a record.
func (l Link[T]) IsZero() bool {
	return l.record == nil && l.id.Table == "" && l.id.ID == nil
}

// Equal reports whether l and o link the same record id and hold
// records in the same cases.
func (l Link[T]) Equal(o Link[T]) bool {
	return (l.record == nil) == (o.record == nil) && l.ID().Equal(o.ID())
}

func (l Link[T]) String() string {
	return l.ID().String()
}

type registryMarshaler interface {
	marshalSurreal(r *Registry) (*value.Value, error)
}

type registryUnmarshaler interface {
	unmarshalSurreal(r *Registry, v *value.Value) error
}

var (
	registryMarshalerType   = reflect.TypeFor[registryMarshaler]()
	registryUnmarshalerType = reflect.TypeFor[registryUnmarshaler]()
)

func (l Link[T]) marshalSurreal(*Registry) (*value.Value, error) {
	if l.IsZero() {
		return value.None(), nil
	}
	id := l.ID()
	if id.Table == "" || id.ID == nil {
		return nil, &MarshalError{Message: "linked record has no id"}
	}
	return value.FromThing(id), nil
}

func (l *Link[T]) unmarshalSurreal(r *Registry, v *value.Value) error {
	switch {
	case v == nil:
		return missing()
	case v.IsNone():
		*l = Link[T]{}
	case v.Type == value.ThingType && v.Thing != nil:
		*l = Link[T]{id: *v.Thing}
	case v.Type == value.StringType:
		id, err := value.ParseThing(v.String)
		if err != nil {
			return &Error{Kind: KindUnexpectedType, Expected: "thing", Repr: value.Repr(v), Cause: err}
		}
		*l = Link[T]{id: id}
	case v.Type == value.ObjectType:
		rec, err := Decode[T](r, v)
		if err != nil {
			return err
		}
		*l = Link[T]{record: &rec}
	default:
		return unexpected("thing or object", v)
	}
	return nil
}

func (r *Registry) linkCodec(t reflect.Type) *typeCodec {
	enc := func(rv reflect.Value) (*value.Value, error) {
		return rv.Interface().(registryMarshaler).marshalSurreal(r)
	}
	dec := func(v *value.Value, rv reflect.Value) error {
		return rv.Addr().Interface().(registryUnmarshaler).unmarshalSurreal(r, v)
	}
	return &typeCodec{typ: t, shape: ShapeIdentity, enc: enc, dec: dec}
}
