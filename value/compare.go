package value

import (
	"cmp"
	"slices"
	"strings"
)

// Equal reports whether a and b are the same tree. Object key order is
// significant. A nil value equals None.
func Equal(a, b *Value) bool {
	return Compare(a, b) == 0 && sameOrder(a, b)
}

func sameOrder(a, b *Value) bool {
	if a == nil || b == nil {
		return true
	}
	switch a.Type {
	case ObjectType:
		for i := range a.Fields {
			if a.Fields[i] != b.Fields[i] || !sameOrder(a.Values[i], b.Values[i]) {
				return false
			}
		}
	case ArrayType:
		for i := range a.Values {
			if !sameOrder(a.Values[i], b.Values[i]) {
				return false
			}
		}
	}
	return true
}

// Compare returns an integer comparing two values.
// The result will be 0 if a==b, -1 if a < b, and +1 if a > b.
// Objects compare by their entries in key order, so two objects holding
// the same entries in different insertion order compare equal.
func Compare(a, b *Value) int {
	if a == b {
		return 0
	}
	if a == nil {
		a = none
	}
	if b == nil {
		b = none
	}
	rankA := rank(a.Type)
	rankB := rank(b.Type)
	if rankA != rankB {
		return cmp.Compare(rankA, rankB)
	}

	switch a.Type {
	case NumberType:
		return compareNumbers(a, b)
	case StringType:
		return strings.Compare(a.String, b.String)
	case BoolType:
		if a.Bool == b.Bool {
			return 0
		}
		if !a.Bool {
			return -1
		}
		return 1
	case DurationType:
		return cmp.Compare(a.Duration, b.Duration)
	case DatetimeType:
		return a.Time.Compare(b.Time)
	case ThingType:
		return compareThings(a.Thing, b.Thing)
	case ArrayType:
		return compareArrays(a, b)
	case ObjectType:
		return compareObjects(a, b)
	}
	return 0
}

var none = &Value{Type: NoneType}

// rank returns the sorting rank of a type.
// Order: None < Bool < Number < String < Duration < Datetime < Thing < Array < Object
func rank(t Type) int {
	switch t {
	case NoneType:
		return 0
	case BoolType:
		return 1
	case NumberType:
		return 2
	case StringType:
		return 3
	case DurationType:
		return 4
	case DatetimeType:
		return 5
	case ThingType:
		return 6
	case ArrayType:
		return 7
	case ObjectType:
		return 8
	}
	return 100
}

func compareNumbers(a, b *Value) int {
	switch {
	case a.Int64 != nil && b.Int64 != nil:
		return cmp.Compare(*a.Int64, *b.Int64)
	case a.Int64 == nil && b.Int64 == nil:
		return cmp.Compare(floatOf(a), floatOf(b))
	}
	// ints sort before floats of the same magnitude so that 1 and 1.0
	// stay distinct
	if c := cmp.Compare(floatOf(a), floatOf(b)); c != 0 {
		return c
	}
	if a.Int64 != nil {
		return -1
	}
	return 1
}

func floatOf(v *Value) float64 {
	if v.Int64 != nil {
		return float64(*v.Int64)
	}
	if v.Float64 != nil {
		return *v.Float64
	}
	return 0
}

func compareThings(a, b *Thing) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return -1
	case b == nil:
		return 1
	}
	if c := strings.Compare(a.Table, b.Table); c != 0 {
		return c
	}
	return Compare(a.ID, b.ID)
}

func compareArrays(a, b *Value) int {
	lenA := len(a.Values)
	lenB := len(b.Values)
	for i := 0; i < min(lenA, lenB); i++ {
		if c := Compare(a.Values[i], b.Values[i]); c != 0 {
			return c
		}
	}
	return cmp.Compare(lenA, lenB)
}

func compareObjects(a, b *Value) int {
	if c := cmp.Compare(len(a.Fields), len(b.Fields)); c != 0 {
		return c
	}
	ka := sortedIndex(a)
	kb := sortedIndex(b)
	for i := range ka {
		if c := strings.Compare(a.Fields[ka[i]], b.Fields[kb[i]]); c != 0 {
			return c
		}
		if c := Compare(a.Values[ka[i]], b.Values[kb[i]]); c != 0 {
			return c
		}
	}
	return 0
}

func sortedIndex(v *Value) []int {
	idx := make([]int, len(v.Fields))
	for i := range idx {
		idx[i] = i
	}
	slices.SortFunc(idx, func(i, j int) int {
		return strings.Compare(v.Fields[i], v.Fields[j])
	})
	return idx
}
