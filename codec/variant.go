package codec

import (
	"fmt"
	"reflect"

	"github.com/cockroachdb/errors"
	"github.com/samber/lo"
	"github.com/signadot/go-surreal/naming"
	"github.com/signadot/go-surreal/value"

	"go.uber.org/zap"
)

// VariantShape is the payload form of an enum variant.
type VariantShape int

const (
	// Unit variants carry no data and encode as their bare host name.
	Unit VariantShape = iota
	// Tuple variants encode their exported fields, in order, as an
	// array.
	Tuple
	// Named variants encode their fields as an object.
	Named
)

func (s VariantShape) String() string {
	switch s {
	case Unit:
		return "unit"
	case Tuple:
		return "tuple"
	case Named:
		return "named"
	}
	return fmt.Sprintf("VariantShape(%d)", int(s))
}

// Wire keys of the tagged enum encoding.
const (
	TypeKey  = "type"
	ValueKey = "value"
)

// EnumSpec describes a sum type: an interface type T and the struct types
// implementing it. Build one with Enum and register it with
// Registry.RegisterEnum.
type EnumSpec struct {
	typ      reflect.Type
	tagKey   string
	variants []*variantSpec
}

type variantSpec struct {
	typ    reflect.Type
	shape  VariantShape
	rename string
	host   string
}

// EnumOption configures an EnumSpec.
type EnumOption interface {
	applyEnum(*EnumSpec)
}

type enumOptionFunc func(*EnumSpec)

func (f enumOptionFunc) applyEnum(s *EnumSpec) { f(s) }

// VariantOption configures one variant.
type VariantOption func(*variantSpec)

// Enum returns the spec of the sum type T, which must be an interface
// type.
func Enum[T any](opts ...EnumOption) *EnumSpec {
	spec := &EnumSpec{typ: reflect.TypeFor[T]()}
	for _, opt := range opts {
		opt.applyEnum(spec)
	}
	return spec
}

// TagKey selects the enum encoding: "" for implicit, "type" for tagged.
func TagKey(key string) EnumOption {
	return enumOptionFunc(func(s *EnumSpec) { s.tagKey = key })
}

// Variant adds V, a struct type or pointer to one, as a variant.
func Variant[V any](shape VariantShape, opts ...VariantOption) EnumOption {
	vs := &variantSpec{typ: reflect.TypeFor[V](), shape: shape}
	for _, opt := range opts {
		opt(vs)
	}
	return enumOptionFunc(func(s *EnumSpec) { s.variants = append(s.variants, vs) })
}

// Rename sets the wire name of a variant.
func Rename(wire string) VariantOption {
	return func(vs *variantSpec) { vs.rename = wire }
}

// HostName sets the host name of a variant, which is also the encoding of
// a unit variant. It defaults to the Go type name with its first letter
// lower-cased.
func HostName(name string) VariantOption {
	return func(vs *variantSpec) { vs.host = name }
}

type enumInfo struct {
	typ      reflect.Type
	tagged   bool
	variants []*variantInfo
}

type variantInfo struct {
	hostName string
	wireName string
	shape    VariantShape
	typ      reflect.Type
	st       reflect.Type
	fields   []*FieldDescriptor
}

// RegisterEnum validates spec and makes its interface type encodable.
func (r *Registry) RegisterEnum(spec *EnumSpec) error {
	if spec == nil || spec.typ == nil {
		return errors.Wrap(ErrRegistration, "nil enum spec")
	}
	t := spec.typ
	if spec.tagKey != "" && spec.tagKey != TypeKey {
		return errors.WithDetailf(ErrInvalidTagKey, "enum %s: tag key %q", t, spec.tagKey)
	}
	if t.Kind() != reflect.Interface {
		return errors.Wrapf(ErrRegistration, "enum %s is not an interface type", t)
	}
	if len(spec.variants) == 0 {
		return errors.Wrapf(ErrRegistration, "enum %s has no variants", t)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.enums[t]; ok {
		return errors.Wrapf(ErrRegistration, "enum %s already registered", t)
	}
	if _, ok := r.codecs.Load(t); ok {
		return errors.Wrapf(ErrRegistration, "enum %s already in use", t)
	}
	info := &enumInfo{typ: t, tagged: spec.tagKey == TypeKey}
	names := map[string]*variantInfo{}
	for _, vs := range spec.variants {
		vi, err := r.variant(t, vs)
		if err != nil {
			return err
		}
		for _, name := range []string{vi.wireName, vi.hostName} {
			if prev, ok := names[name]; ok && prev != vi {
				return errors.Wrapf(ErrRegistration, "enum %s: variants %s and %s share the name %q",
					t, prev.typ, vi.typ, name)
			}
			names[name] = vi
		}
		info.variants = append(info.variants, vi)
	}
	if dups := lo.FindDuplicatesBy(info.variants, func(vi *variantInfo) reflect.Type { return vi.st }); len(dups) > 0 {
		return errors.Wrapf(ErrRegistration, "enum %s: %s registered twice", t, dups[0].st)
	}
	r.enums[t] = info
	r.log.Debug("registered enum",
		zap.Stringer("type", t),
		zap.Bool("tagged", info.tagged),
		zap.Strings("variants", lo.Map(info.variants, func(vi *variantInfo, _ int) string { return vi.wireName })))
	return nil
}

// MustRegisterEnum is like RegisterEnum but panics on error.
func (r *Registry) MustRegisterEnum(spec *EnumSpec) {
	if err := r.RegisterEnum(spec); err != nil {
		panic(err)
	}
}

func (r *Registry) variant(enum reflect.Type, vs *variantSpec) (*variantInfo, error) {
	st := vs.typ
	if st.Kind() == reflect.Pointer {
		st = st.Elem()
	}
	if st.Kind() != reflect.Struct || st.Name() == "" {
		return nil, errors.Wrapf(ErrRegistration, "enum %s: variant %s is not a named struct type", enum, vs.typ)
	}
	if !vs.typ.Implements(enum) {
		return nil, errors.Wrapf(ErrRegistration, "enum %s: variant %s does not implement it", enum, vs.typ)
	}
	fields, transparent, err := collectFields(st, r.cfg.TagKey, r.cfg.Naming)
	if err != nil {
		return nil, err
	}
	if transparent {
		return nil, errors.Wrapf(ErrRegistration, "enum %s: variant %s cannot be transparent", enum, st)
	}
	switch vs.shape {
	case Unit:
		if len(fields) != 0 {
			return nil, errors.Wrapf(ErrRegistration, "enum %s: unit variant %s has fields", enum, st)
		}
	case Tuple:
		if len(fields) == 0 {
			return nil, errors.Wrapf(ErrRegistration, "enum %s: tuple variant %s has no fields", enum, st)
		}
		for _, f := range fields {
			if f.SkipSerializing || f.SkipDeserializing || f.UseDefault {
				return nil, errors.Wrapf(ErrRegistration,
					"enum %s: tuple variant %s: field %s cannot be skipped or defaulted", enum, st, f.GoName)
			}
		}
	case Named:
	default:
		return nil, errors.Wrapf(ErrRegistration, "enum %s: variant %s has unknown shape %s", enum, st, vs.shape)
	}
	host := vs.host
	if host == "" {
		host = naming.HostName(st.Name())
	}
	wire := vs.rename
	if wire == "" {
		wire = r.cfg.Naming.Wire(host)
	}
	return &variantInfo{
		hostName: host,
		wireName: wire,
		shape:    vs.shape,
		typ:      vs.typ,
		st:       st,
		fields:   fields,
	}, nil
}

func (r *Registry) enumCodec(info *enumInfo) (*typeCodec, error) {
	byType := map[reflect.Type]*variantInfo{}
	byName := map[string]*variantInfo{}
	for _, vi := range info.variants {
		if err := r.bindFields(vi.fields); err != nil {
			return nil, errors.Wrapf(err, "enum %s: variant %s", info.typ, vi.st)
		}
		byType[vi.st] = vi
		byType[reflect.PointerTo(vi.st)] = vi
		byName[vi.wireName] = vi
		byName[vi.hostName] = vi
	}
	lookup := func(name string) *variantInfo {
		if vi, ok := byName[name]; ok {
			return vi
		}
		return byName[r.cfg.Naming.Wire(name)]
	}

	enc := func(rv reflect.Value) (*value.Value, error) {
		if rv.IsNil() {
			return value.None(), nil
		}
		dv := rv.Elem()
		vi, ok := byType[dv.Type()]
		if !ok {
			return nil, &MarshalError{Message: fmt.Sprintf("%s is not a registered variant of %s", dv.Type(), info.typ)}
		}
		if dv.Kind() == reflect.Pointer {
			if dv.IsNil() {
				return nil, &MarshalError{Message: fmt.Sprintf("nil %s variant of %s", dv.Type(), info.typ)}
			}
			dv = dv.Elem()
		}
		var payload *value.Value
		switch vi.shape {
		case Unit:
			return value.FromString(vi.hostName), nil
		case Tuple:
			vs := make([]*value.Value, len(vi.fields))
			for i, f := range vi.fields {
				ev, err := f.codec.encode(dv.FieldByIndex(f.index))
				if err != nil {
					return nil, atField(index(i), err)
				}
				vs[i] = ev
			}
			payload = value.FromSlice(vs)
		case Named:
			var err error
			if payload, err = encodeFields(dv, vi.fields); err != nil {
				return nil, err
			}
		}
		if info.tagged {
			return value.FromKeyVals([]value.KeyVal{
				{Key: TypeKey, Val: value.FromString(vi.wireName)},
				{Key: ValueKey, Val: payload},
			}), nil
		}
		return value.FromKeyVals([]value.KeyVal{{Key: vi.wireName, Val: payload}}), nil
	}

	dec := func(v *value.Value, rv reflect.Value) error {
		var obj *value.Value
		switch {
		case v == nil:
			return missing()
		case v.IsNone():
			rv.SetZero()
			return nil
		case v.Type == value.StringType:
			key := v.String
			if info.tagged {
				key = TypeKey
			}
			obj = value.FromKeyVals([]value.KeyVal{{Key: key, Val: v}})
		case v.Type == value.ObjectType:
			obj = v
		default:
			return newError(KindInvalidEnumFormat, v)
		}

		var (
			name    string
			payload *value.Value
		)
		if info.tagged {
			tv, ok := obj.Lookup(TypeKey)
			if !ok || tv.Type != value.StringType {
				return newError(KindTypeEnumMustBeString, obj)
			}
			name = tv.String
			if payload, ok = obj.Lookup(ValueKey); !ok {
				payload = tv
			}
		} else {
			if len(obj.Fields) != 1 {
				return newError(KindInvalidEnumFormat, obj)
			}
			name, payload = obj.Fields[0], obj.Values[0]
		}

		if payload == nil {
			payload = value.None()
		}
		vi := lookup(name)
		if vi == nil {
			return &Error{Kind: KindUnknownVariant, Name: name, Repr: value.Repr(obj)}
		}
		sv := reflect.New(vi.st).Elem()
		switch vi.shape {
		case Tuple:
			if payload.Type != value.ArrayType || len(payload.Values) != len(vi.fields) {
				return newError(KindNumberOfFieldOfLengthOfDbValueNotMatchLengthOfEnum, payload)
			}
			for i, f := range vi.fields {
				if err := f.codec.decode(payload.Values[i], sv.FieldByIndex(f.index)); err != nil {
					return fieldFailed(index(i), err)
				}
			}
		case Named:
			if payload.Type != value.ObjectType {
				return newError(KindExpectedAnObject, payload)
			}
			if err := decodeFields(payload, sv, vi.fields); err != nil {
				return err
			}
		}
		if vi.typ.Kind() == reflect.Pointer {
			rv.Set(sv.Addr())
		} else {
			rv.Set(sv)
		}
		return nil
	}
	return &typeCodec{typ: info.typ, shape: ShapeVariant, enc: enc, dec: dec}, nil
}
