package libdiff

import (
	"strconv"
	"strings"

	"github.com/samber/lo"
	"github.com/signadot/go-surreal/value"

	diffpatch "github.com/sergi/go-diff/diffmatchpatch"
)

// Change is a difference at one path. From is nil for insertions and To
// is nil for deletions.
type Change struct {
	Path string
	From *value.Value
	To   *value.Value
}

// Diff returns the changes turning from into to, in document order.
// Object key order is not significant.
func Diff(from, to *value.Value) []Change {
	var res []Change
	diff("", from, to, &res)
	return res
}

func diff(path string, from, to *value.Value, res *[]Change) {
	if from == nil {
		from = value.None()
	}
	if to == nil {
		to = value.None()
	}
	switch {
	case from.Type != to.Type:
	case from.Type == value.ObjectType:
		diffObject(path, from, to, res)
		return
	case from.Type == value.ArrayType:
		diffArrayByIndex(path, from, to, res)
		return
	case value.Compare(from, to) == 0:
		return
	}
	*res = append(*res, Change{Path: path, From: from, To: to})
}

func join(path, key string) string {
	if !value.IsIdent(key) {
		key = strconv.Quote(key)
	}
	if path == "" {
		return key
	}
	return path + "." + key
}

func diffObject(path string, from, to *value.Value, res *[]Change) {
	for i, k := range from.Fields {
		tv, ok := to.Lookup(k)
		if !ok {
			*res = append(*res, Change{Path: join(path, k), From: from.Values[i]})
			continue
		}
		diff(join(path, k), from.Values[i], tv, res)
	}
	added := lo.Filter(to.Fields, func(k string, _ int) bool {
		_, ok := from.Lookup(k)
		return !ok
	})
	for _, k := range added {
		*res = append(*res, Change{Path: join(path, k), To: value.Get(to, k)})
	}
}

// diffArrayByIndex summarizes each element as a rune, diffs the rune
// sequences and recurses into elements the diff pairs up.
func diffArrayByIndex(path string, from, to *value.Value, res *[]Change) {
	m := map[string]rune{}
	fromRunes := summaries(m, from)
	toRunes := summaries(m, to)
	diffs := diffpatch.New().DiffMainRunes(fromRunes, toRunes, false)

	elem := func(i int) string { return path + "[" + strconv.Itoa(i) + "]" }
	fi, ti := 0, 0
	for _, d := range diffs {
		n := len([]rune(d.Text))
		switch d.Type {
		case diffpatch.DiffDelete:
			for range n {
				*res = append(*res, Change{Path: elem(fi), From: from.Values[fi]})
				fi++
			}
		case diffpatch.DiffInsert:
			for range n {
				*res = append(*res, Change{Path: elem(ti), To: to.Values[ti]})
				ti++
			}
		case diffpatch.DiffEqual:
			for range n {
				diff(elem(ti), from.Values[fi], to.Values[ti], res)
				fi++
				ti++
			}
		}
	}
}

func summaries(m map[string]rune, v *value.Value) []rune {
	rs := make([]rune, len(v.Values))
	for i, e := range v.Values {
		sum := summary(e)
		r, ok := m[sum]
		if !ok {
			// skip the surrogate range, which does not survive the
			// rune/string round trip inside the diff
			r = rune(len(m))
			if r >= 0xD800 {
				r += 0x800
			}
			m[sum] = r
		}
		rs[i] = r
	}
	return rs
}

// summary identifies scalars by value and composites by type, so equal
// scalars align and composites align for recursion.
func summary(v *value.Value) string {
	if v == nil {
		return value.NoneType.String()
	}
	switch v.Type {
	case value.ArrayType, value.ObjectType, value.NoneType:
		return v.Type.String()
	case value.StringType:
		if strings.Contains(v.String, "\n") {
			return v.Type.String() + "/m"
		}
		return v.Type.String() + "-" + v.String
	}
	return v.Type.String() + "-" + value.Repr(v)
}
