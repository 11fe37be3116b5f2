package value

import "fmt"

type Type int

const (
	NoneType Type = iota
	BoolType
	NumberType
	StringType
	ArrayType
	ObjectType
	ThingType
	DurationType
	DatetimeType
)

var typeNames = map[Type]string{
	NoneType:     "None",
	BoolType:     "Bool",
	NumberType:   "Number",
	StringType:   "String",
	ArrayType:    "Array",
	ObjectType:   "Object",
	ThingType:    "Thing",
	DurationType: "Duration",
	DatetimeType: "Datetime",
}

// Types returns all value types in declaration order.
func Types() []Type {
	return []Type{
		NoneType, BoolType, NumberType, StringType, ArrayType,
		ObjectType, ThingType, DurationType, DatetimeType,
	}
}

func (t Type) String() string {
	s, ok := typeNames[t]
	if ok {
		return s
	}
	return "<unknown type>"
}

func (t Type) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *Type) UnmarshalText(d []byte) error {
	for tt, name := range typeNames {
		if name == string(d) {
			*t = tt
			return nil
		}
	}
	return fmt.Errorf("unrecognized type %q", d)
}
