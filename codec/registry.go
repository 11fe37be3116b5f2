package codec

import (
	"reflect"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/signadot/go-surreal/naming"
	"github.com/signadot/go-surreal/value"

	"go.uber.org/zap"
)

// typeCodec converts one Go type. enc receives a value of the type; dec
// receives a settable value of the type and a nil v when the key was
// absent.
type typeCodec struct {
	typ    reflect.Type
	shape  Shape
	enc    func(rv reflect.Value) (*value.Value, error)
	dec    func(v *value.Value, rv reflect.Value) error
	fields []*FieldDescriptor
}

func (c *typeCodec) encode(rv reflect.Value) (*value.Value, error) {
	return c.enc(rv)
}

func (c *typeCodec) decode(v *value.Value, rv reflect.Value) error {
	return c.dec(v, rv)
}

// Registry holds the enum registrations and the codecs built for Go
// types. Codecs are built on first use and never change afterwards, so a
// Registry is safe for concurrent use.
type Registry struct {
	cfg Config
	log *zap.Logger

	codecs sync.Map // reflect.Type -> *typeCodec

	mu       sync.Mutex
	enums    map[reflect.Type]*enumInfo
	building map[reflect.Type]*typeCodec
}

// NewRegistry returns an empty Registry.
func NewRegistry(cfg Config) *Registry {
	cfg = cfg.withDefaults()
	return &Registry{
		cfg:   cfg,
		log:   cfg.Logger,
		enums: map[reflect.Type]*enumInfo{},
	}
}

// Naming returns the wire naming convention of r.
func (r *Registry) Naming() naming.Convention {
	return r.cfg.Naming
}

// Encode converts v to a value tree. The codec is chosen from the dynamic
// type of v; use the generic Encode to encode through an enum interface.
func (r *Registry) Encode(v any) (*value.Value, error) {
	if v == nil {
		return value.None(), nil
	}
	return r.encodeValue(reflect.ValueOf(v))
}

// Decode decodes v into the value dst points to. dst is left untouched
// on failure.
func (r *Registry) Decode(v *value.Value, dst any) error {
	rv := reflect.ValueOf(dst)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return errors.Newf("decode destination must be a non-nil pointer, got %T", dst)
	}
	return r.decodeValue(v, rv.Elem())
}

// Encode converts v to a value tree using the static type T, so interface
// types registered as enums encode as such.
func Encode[T any](r *Registry, v T) (*value.Value, error) {
	return r.encodeValue(reflect.ValueOf(&v).Elem())
}

// Decode decodes v as a T.
func Decode[T any](r *Registry, v *value.Value) (T, error) {
	var res T
	err := r.decodeValue(v, reflect.ValueOf(&res).Elem())
	return res, err
}

func (r *Registry) encodeValue(rv reflect.Value) (*value.Value, error) {
	c, err := r.codecFor(rv.Type())
	if err != nil {
		return nil, err
	}
	return c.encode(rv)
}

func (r *Registry) decodeValue(v *value.Value, dst reflect.Value) error {
	c, err := r.codecFor(dst.Type())
	if err != nil {
		return err
	}
	tmp := reflect.New(dst.Type()).Elem()
	if err := c.decode(v, tmp); err != nil {
		r.log.Debug("decode failed", zap.Stringer("type", dst.Type()), zap.Error(err))
		return err
	}
	dst.Set(tmp)
	return nil
}

// Assignment is one wire-name/value pair of an encoded record.
type Assignment struct {
	Field string
	Value *value.Value
}

// Assignments encodes the record v and returns its entries in order.
func (r *Registry) Assignments(v any) ([]Assignment, error) {
	node, err := r.Encode(v)
	if err != nil {
		return nil, err
	}
	if node.Type != value.ObjectType {
		return nil, errors.Newf("assignments of %T: encoded as %s, not an object", v, node.Type)
	}
	res := make([]Assignment, len(node.Fields))
	for i, f := range node.Fields {
		res[i] = Assignment{Field: f, Value: node.Values[i]}
	}
	return res, nil
}

// Fields returns the field descriptors of the struct type t in
// declaration order.
func (r *Registry) Fields(t reflect.Type) ([]FieldDescriptor, error) {
	c, err := r.codecFor(t)
	if err != nil {
		return nil, err
	}
	if c.shape != ShapeRecord {
		return nil, errors.Newf("%s is a %s, not a record", t, c.shape)
	}
	res := make([]FieldDescriptor, len(c.fields))
	for i, fd := range c.fields {
		res[i] = *fd
		res[i].Shape = fd.codec.shape
	}
	return res, nil
}

// codecFor returns the codec of t, building it on first use.
func (r *Registry) codecFor(t reflect.Type) (*typeCodec, error) {
	if c, ok := r.codecs.Load(t); ok {
		return c.(*typeCodec), nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if c, ok := r.codecs.Load(t); ok {
		return c.(*typeCodec), nil
	}
	r.building = map[reflect.Type]*typeCodec{}
	defer func() { r.building = nil }()
	c, err := r.build(t)
	if err != nil {
		return nil, err
	}
	for bt, bc := range r.building {
		r.codecs.Store(bt, bc)
	}
	return c, nil
}

// build returns the codec of t. It is called with r.mu held. A type
// already under construction yields its placeholder, which is filled in
// once the outer build completes.
func (r *Registry) build(t reflect.Type) (*typeCodec, error) {
	if c, ok := r.codecs.Load(t); ok {
		return c.(*typeCodec), nil
	}
	if c, ok := r.building[t]; ok {
		return c, nil
	}
	ph := &typeCodec{typ: t}
	r.building[t] = ph
	c, err := r.construct(t)
	if err != nil {
		return nil, err
	}
	*ph = *c
	if c.shape == ShapeRecord || c.shape == ShapeVariant {
		r.log.Debug("built codec",
			zap.Stringer("type", t),
			zap.Stringer("shape", c.shape),
			zap.Int("fields", len(c.fields)))
	}
	return ph, nil
}

func (r *Registry) construct(t reflect.Type) (*typeCodec, error) {
	if c := specialCodec(t); c != nil {
		return c, nil
	}
	if t.Kind() == reflect.Pointer {
		return r.optionalCodec(t)
	}
	if t.Implements(registryMarshalerType) && reflect.PointerTo(t).Implements(registryUnmarshalerType) {
		return r.linkCodec(t), nil
	}
	if c, ok, err := r.hookCodec(t); ok || err != nil {
		return c, err
	}
	return r.structural(t)
}

func (r *Registry) structural(t reflect.Type) (*typeCodec, error) {
	switch t.Kind() {
	case reflect.Bool, reflect.String,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64:
		return leafCodec(t), nil
	case reflect.Slice, reflect.Array:
		return r.sequenceCodec(t)
	case reflect.Map:
		return r.mapCodec(t)
	case reflect.Struct:
		return r.recordCodec(t)
	case reflect.Interface:
		if info, ok := r.enums[t]; ok {
			return r.enumCodec(info)
		}
		if t.NumMethod() == 0 {
			return r.dynamicCodec(t), nil
		}
		return nil, errors.Wrapf(ErrRegistration, "interface %s is not a registered enum", t)
	}
	return nil, errors.Wrapf(ErrRegistration, "unsupported type %s", t)
}
