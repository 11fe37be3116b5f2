package codec

import (
	"fmt"
	"reflect"
)

// Shape is the statically resolved encoding strategy of a Go type.
type Shape int

const (
	ShapeLeaf Shape = iota
	ShapeOptional
	ShapeSequence
	ShapeMap
	ShapeRecord
	ShapeVariant
	ShapeDuration
	ShapeTimestamp
	ShapeIdentity
	ShapeValue
	ShapeCustom
	ShapeDynamic
)

var shapeNames = []string{
	ShapeLeaf:      "leaf",
	ShapeOptional:  "optional",
	ShapeSequence:  "sequence",
	ShapeMap:       "map",
	ShapeRecord:    "record",
	ShapeVariant:   "variant",
	ShapeDuration:  "duration",
	ShapeTimestamp: "timestamp",
	ShapeIdentity:  "identity",
	ShapeValue:     "value",
	ShapeCustom:    "custom",
	ShapeDynamic:   "dynamic",
}

func (s Shape) String() string {
	if s >= 0 && int(s) < len(shapeNames) {
		return shapeNames[s]
	}
	return fmt.Sprintf("Shape(%d)", int(s))
}

// FieldDescriptor describes one serialized field of a record.
type FieldDescriptor struct {
	// GoName is the struct field name.
	GoName string
	// HostName is the field's identifier in host naming, the Go name
	// with its first letter lower-cased.
	HostName string
	// WireName is the object key the field is stored under.
	WireName string
	Type     reflect.Type
	Shape    Shape
	// Optional is set for pointer fields: nil encodes as NONE and an
	// absent key decodes to nil.
	Optional bool
	// Sequence is set when the field, after any pointer, is a slice or
	// array.
	Sequence          bool
	SkipSerializing   bool
	SkipDeserializing bool
	UseDefault        bool

	index []int
	codec *typeCodec
}
