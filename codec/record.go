package codec

import (
	"reflect"

	"github.com/cockroachdb/errors"
	"github.com/samber/lo"
	"github.com/signadot/go-surreal/naming"
	"github.com/signadot/go-surreal/value"
)

// collectFields returns the serialized fields of struct type t without
// building their codecs.
func collectFields(t reflect.Type, tagKey string, conv naming.Convention) ([]*FieldDescriptor, bool, error) {
	fields, transparent, err := collect(t, nil, tagKey, conv)
	if err != nil {
		return nil, false, errors.Wrapf(err, "%s", t)
	}
	dups := lo.FindDuplicatesBy(fields, func(f *FieldDescriptor) string { return f.WireName })
	if len(dups) > 0 {
		return nil, false, errors.Wrapf(ErrRegistration, "%s: duplicate wire name %q", t, dups[0].WireName)
	}
	if transparent && len(fields) != 1 {
		return nil, false, errors.Wrapf(ErrRegistration,
			"%s: transparent struct must have exactly one field, has %d", t, len(fields))
	}
	return fields, transparent, nil
}

func collect(t reflect.Type, prefix []int, tagKey string, conv naming.Convention) ([]*FieldDescriptor, bool, error) {
	var (
		res         []*FieldDescriptor
		transparent bool
	)
	for i := range t.NumField() {
		f := t.Field(i)
		ft, err := parseFieldTag(f, tagKey)
		if err != nil {
			return nil, false, err
		}
		if f.Name == "_" {
			transparent = transparent || ft.transparent
			continue
		}
		if ft.ignore {
			continue
		}
		if ft.transparent {
			return nil, false, errors.Newf("field %s: transparent applies to the blank field only", f.Name)
		}
		idx := append(append([]int(nil), prefix...), i)
		if f.Anonymous && flattens(f, tagKey) {
			sub, _, err := collect(f.Type, idx, tagKey, conv)
			if err != nil {
				return nil, false, err
			}
			res = append(res, sub...)
			continue
		}
		if !f.IsExported() {
			continue
		}
		wire := ft.name
		if wire == "" {
			wire = conv.Wire(f.Name)
		}
		et := f.Type
		if et.Kind() == reflect.Pointer {
			et = et.Elem()
		}
		res = append(res, &FieldDescriptor{
			GoName:            f.Name,
			HostName:          naming.HostName(f.Name),
			WireName:          wire,
			Type:              f.Type,
			Optional:          f.Type.Kind() == reflect.Pointer,
			Sequence:          et.Kind() == reflect.Slice || et.Kind() == reflect.Array,
			SkipSerializing:   ft.skipSerializing,
			SkipDeserializing: ft.skipDeserializing,
			UseDefault:        ft.useDefault,
			index:             idx,
		})
	}
	return res, transparent, nil
}

// flattens reports whether the embedded field f contributes its fields to
// the enclosing struct.
func flattens(f reflect.StructField, tagKey string) bool {
	if _, tagged := f.Tag.Lookup(tagKey); tagged || f.Type.Kind() != reflect.Struct {
		return false
	}
	if specialCodec(f.Type) != nil {
		return false
	}
	pt := reflect.PointerTo(f.Type)
	for _, h := range []reflect.Type{marshalerType, unmarshalerType, textMarshalerType, textUnmarshalerType} {
		if pt.Implements(h) {
			return false
		}
	}
	return true
}

func (r *Registry) bindFields(fields []*FieldDescriptor) error {
	for _, f := range fields {
		c, err := r.build(f.Type)
		if err != nil {
			return errors.Wrapf(err, "field %s", f.GoName)
		}
		f.codec = c
	}
	return nil
}

func (r *Registry) recordCodec(t reflect.Type) (*typeCodec, error) {
	fields, transparent, err := collectFields(t, r.cfg.TagKey, r.cfg.Naming)
	if err != nil {
		return nil, err
	}
	if err := r.bindFields(fields); err != nil {
		return nil, errors.Wrapf(err, "%s", t)
	}
	c := &typeCodec{typ: t, shape: ShapeRecord, fields: fields}
	if transparent {
		f := fields[0]
		c.enc = func(rv reflect.Value) (*value.Value, error) {
			return f.codec.encode(rv.FieldByIndex(f.index))
		}
		c.dec = func(v *value.Value, rv reflect.Value) error {
			return f.codec.decode(v, rv.FieldByIndex(f.index))
		}
		return c, nil
	}
	c.enc = func(rv reflect.Value) (*value.Value, error) {
		return encodeFields(rv, fields)
	}
	c.dec = func(v *value.Value, rv reflect.Value) error {
		obj, err := recordObject(v)
		if err != nil {
			return err
		}
		tmp := reflect.New(t).Elem()
		if err := decodeFields(obj, tmp, fields); err != nil {
			return err
		}
		rv.Set(tmp)
		return nil
	}
	return c, nil
}

// recordObject returns the object a record decodes from: v itself, or the
// only element of a one-element array, which is how query results come
// back.
func recordObject(v *value.Value) (*value.Value, error) {
	switch {
	case v.IsNone():
		return nil, missing()
	case v.Type == value.ObjectType:
		return v, nil
	case v.Type == value.ArrayType:
		if len(v.Values) == 1 && v.Values[0].Type == value.ObjectType {
			return v.Values[0], nil
		}
		return nil, newError(KindExpectedAnArrayWith1ItemToDeserializeToObject, v)
	}
	return nil, newError(KindExpectedAnObject, v)
}

func encodeFields(rv reflect.Value, fields []*FieldDescriptor) (*value.Value, error) {
	kvs := make([]value.KeyVal, 0, len(fields))
	for _, f := range fields {
		if f.SkipSerializing {
			continue
		}
		ev, err := f.codec.encode(rv.FieldByIndex(f.index))
		if err != nil {
			return nil, atField(f.WireName, err)
		}
		kvs = append(kvs, value.KeyVal{Key: f.WireName, Val: ev})
	}
	return value.FromKeyVals(kvs), nil
}

// decodeFields fills the fields of rv from obj. Absent keys reach the
// field codec as nil and NONE is passed through, so codecs that write
// NONE for a zero value read it back. Fields that are never written, or
// that take a default, keep their zero value when absent or NONE.
func decodeFields(obj *value.Value, rv reflect.Value, fields []*FieldDescriptor) error {
	for _, f := range fields {
		if f.SkipDeserializing {
			continue
		}
		fv, ok := obj.Lookup(f.WireName)
		if (!ok || fv.IsNone()) && (f.UseDefault || f.SkipSerializing) {
			continue
		}
		if !ok {
			fv = nil
		}
		if err := f.codec.decode(fv, rv.FieldByIndex(f.index)); err != nil {
			return fieldFailed(f.WireName, err)
		}
	}
	return nil
}
