package value

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func sample() *Value {
	return FromKeyVals([]KeyVal{
		{Key: "name", Val: FromString("Alice")},
		{Key: "age", Val: FromInt(30)},
		{Key: "score", Val: FromFloat(9.5)},
		{Key: "active", Val: FromBool(true)},
		{Key: "tags", Val: FromSlice([]*Value{FromString("a"), FromString("b")})},
		{Key: "owner", Val: FromThing(StringThing("user", "Devlog"))},
		{Key: "ttl", Val: FromDuration(90 * time.Minute)},
		{Key: "created", Val: FromTime(time.Date(2024, 5, 1, 12, 0, 0, 42, time.UTC))},
		{Key: "missing", Val: None()},
	})
}

func TestFromKeyValsOrder(t *testing.T) {
	v := sample()
	want := []string{"name", "age", "score", "active", "tags", "owner", "ttl", "created", "missing"}
	if diff := cmp.Diff(want, v.Fields); diff != "" {
		t.Errorf("field order mismatch (-want +got):\n%s", diff)
	}
}

func TestFromKeyValsDuplicate(t *testing.T) {
	v := FromKeyVals([]KeyVal{
		{Key: "a", Val: FromInt(1)},
		{Key: "b", Val: FromInt(2)},
		{Key: "a", Val: FromInt(3)},
	})
	if v.Len() != 2 {
		t.Fatalf("expected 2 entries, got %d", v.Len())
	}
	if got := Get(v, "a"); got == nil || *got.Int64 != 3 {
		t.Errorf("expected a=3, got %s", Repr(got))
	}
	if v.Fields[0] != "a" {
		t.Errorf("replaced key moved to %v", v.Fields)
	}
}

func TestFromMapSorted(t *testing.T) {
	v := FromMap(map[string]*Value{"c": FromInt(3), "a": FromInt(1), "b": FromInt(2)})
	if diff := cmp.Diff([]string{"a", "b", "c"}, v.Fields); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestLookup(t *testing.T) {
	v := sample()
	if _, ok := v.Lookup("nope"); ok {
		t.Error("unexpected field nope")
	}
	got, ok := v.Lookup("missing")
	if !ok || !got.IsNone() {
		t.Errorf("expected present none, got %v %v", got, ok)
	}
	if Get(FromInt(1), "x") != nil {
		t.Error("Get on non-object should be nil")
	}
	var nilV *Value
	if !nilV.IsNone() {
		t.Error("nil should be none")
	}
}

func TestEqual(t *testing.T) {
	a := FromKeyVals([]KeyVal{{Key: "x", Val: FromInt(1)}, {Key: "y", Val: FromInt(2)}})
	b := FromKeyVals([]KeyVal{{Key: "y", Val: FromInt(2)}, {Key: "x", Val: FromInt(1)}})
	if Compare(a, b) != 0 {
		t.Error("expected objects with same entries to compare equal")
	}
	if Equal(a, b) {
		t.Error("expected key order to matter for Equal")
	}
	if !Equal(a, a.Clone()) {
		t.Error("clone not equal")
	}
	if Equal(FromInt(1), FromFloat(1)) {
		t.Error("int 1 and float 1 should differ")
	}
	if !Equal(nil, None()) {
		t.Error("nil should equal None")
	}
	if Equal(FromThing(IntThing("t", 1)), FromThing(StringThing("t", "1"))) {
		t.Error("int and string ids should differ")
	}
}

func TestCompareOrder(t *testing.T) {
	ordered := []*Value{
		None(),
		FromBool(false),
		FromBool(true),
		FromInt(-1),
		FromFloat(0.5),
		FromInt(1),
		FromFloat(1),
		FromString("a"),
		FromString("b"),
		FromDuration(time.Second),
		FromTime(time.Unix(0, 0)),
		FromThing(StringThing("a", "x")),
		FromSlice(nil),
		FromSlice([]*Value{FromInt(1)}),
		FromKeyVals(nil),
	}
	for i := 0; i < len(ordered)-1; i++ {
		if c := Compare(ordered[i], ordered[i+1]); c != -1 {
			t.Errorf("Compare(%s, %s) = %d, want -1", Repr(ordered[i]), Repr(ordered[i+1]), c)
		}
		if c := Compare(ordered[i+1], ordered[i]); c != 1 {
			t.Errorf("Compare(%s, %s) = %d, want 1", Repr(ordered[i+1]), Repr(ordered[i]), c)
		}
	}
}

func TestCloneIndependent(t *testing.T) {
	v := sample()
	c := v.Clone()
	c.Values[0].String = "Bob"
	*c.Values[1].Int64 = 99
	c.Values[5].Thing.Table = "other"
	if Get(v, "name").String != "Alice" || *Get(v, "age").Int64 != 30 || Get(v, "owner").Thing.Table != "user" {
		t.Errorf("clone shares state with original: %s", Repr(v))
	}
}

func TestJSONRoundTrip(t *testing.T) {
	v := FromKeyVals([]KeyVal{
		{Key: "doc", Val: sample()},
		{Key: "empty", Val: FromKeyVals(nil)},
		{Key: "composite", Val: FromThing(Thing{Table: "t", ID: FromSlice([]*Value{FromInt(1), FromString("x")})})},
	})
	d, err := v.MarshalJSON()
	if err != nil {
		t.Fatalf("MarshalJSON: %v", err)
	}
	back := &Value{}
	if err := back.UnmarshalJSON(d); err != nil {
		t.Fatalf("UnmarshalJSON: %v\n%s", err, d)
	}
	if !Equal(v, back) {
		t.Errorf("json round trip mismatch:\n%s\n%s", Repr(v), Repr(back))
	}
}

func TestJSONInvalid(t *testing.T) {
	tests := []string{
		`{"type":"Number"}`,
		`{"type":"Number","int":1,"float":1.5}`,
		`{"type":"Object","fields":["a"]}`,
		`{"type":"Thing"}`,
		`{"type":"Duration","duration":"forever"}`,
		`{"type":"Datetime","datetime":"yesterday"}`,
		`{"type":"Mystery"}`,
	}
	for _, in := range tests {
		v := &Value{}
		if err := v.UnmarshalJSON([]byte(in)); err == nil {
			t.Errorf("expected error for %s", in)
		}
	}
}

func TestParsePlainKeepsOrder(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"json", `{"zeta": 1, "alpha": {"y": true, "b": [1, 2.5, "x"]}, "none": null}`},
		{"yaml", "zeta: 1\nalpha:\n  y: true\n  b: [1, 2.5, x]\nnone: null\n"},
	}
	want := FromKeyVals([]KeyVal{
		{Key: "zeta", Val: FromInt(1)},
		{Key: "alpha", Val: FromKeyVals([]KeyVal{
			{Key: "y", Val: FromBool(true)},
			{Key: "b", Val: FromSlice([]*Value{FromInt(1), FromFloat(2.5), FromString("x")})},
		})},
		{Key: "none", Val: None()},
	})
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParsePlain([]byte(tt.in))
			if err != nil {
				t.Fatalf("ParsePlain: %v", err)
			}
			if !Equal(want, got) {
				t.Errorf("got %s, want %s", Repr(got), Repr(want))
			}
		})
	}
}

func TestPlainSpecialKeys(t *testing.T) {
	in := `{"owner": {"$thing": "user:⟨How to use⟩"}, "ttl": {"$duration": "1h30m"}, "at": {"$datetime": "2024-05-01T12:00:00Z"}}`
	got, err := ParsePlain([]byte(in))
	if err != nil {
		t.Fatal(err)
	}
	owner := Get(got, "owner")
	if owner.Type != ThingType || owner.Thing.Table != "user" || owner.Thing.ID.String != "How to use" {
		t.Errorf("owner = %s", Repr(owner))
	}
	if ttl := Get(got, "ttl"); ttl.Type != DurationType || ttl.Duration != 90*time.Minute {
		t.Errorf("ttl = %s", Repr(ttl))
	}
	if at := Get(got, "at"); at.Type != DatetimeType || !at.Time.Equal(time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)) {
		t.Errorf("at = %s", Repr(at))
	}

	back, err := FromPlain(ToPlain(got))
	if err != nil {
		t.Fatal(err)
	}
	if !Equal(got, back) {
		t.Errorf("plain round trip: got %s, want %s", Repr(back), Repr(got))
	}
}

func TestFromPlainUnsupported(t *testing.T) {
	if _, err := FromPlain(map[string]any{"ch": make(chan int)}); err == nil {
		t.Error("expected error for channel")
	}
}

func TestThing(t *testing.T) {
	tests := []struct {
		in   string
		want Thing
		str  string
	}{
		{"user:Devlog", StringThing("user", "Devlog"), "user:Devlog"},
		{"discuss:0", IntThing("discuss", 0), "discuss:0"},
		{"blogPost:⟨How to use surrealdb⟩", StringThing("blogPost", "How to use surrealdb"), "blogPost:⟨How to use surrealdb⟩"},
		{"t:`123`", StringThing("t", "123"), "t:⟨123⟩"},
		{"t:a:b", StringThing("t", "a:b"), "t:⟨a:b⟩"},
	}
	for _, tt := range tests {
		got, err := ParseThing(tt.in)
		if err != nil {
			t.Errorf("ParseThing(%q): %v", tt.in, err)
			continue
		}
		if !got.Equal(tt.want) {
			t.Errorf("ParseThing(%q) = %s, want %s", tt.in, got, tt.want)
		}
		if s := got.String(); s != tt.str {
			t.Errorf("String() = %q, want %q", s, tt.str)
		}
	}
	for _, bad := range []string{"", "user", ":x", "user:"} {
		if _, err := ParseThing(bad); err == nil {
			t.Errorf("expected error for %q", bad)
		}
	}
	if s := (Thing{Table: "my table", ID: FromInt(1)}).String(); s != "`my table`:1" {
		t.Errorf("got %q", s)
	}
}

func TestRepr(t *testing.T) {
	if got := Repr(FromKeyVals([]KeyVal{{Key: "a", Val: FromSlice([]*Value{FromInt(1), FromFloat(2)})}})); got != `{"a": [1, 2.0]}` {
		t.Errorf("got %s", got)
	}
	long := make([]*Value, 100)
	for i := range long {
		long[i] = FromString("xxxxxxxx")
	}
	got := Repr(FromSlice(long))
	if len(got) != maxRepr || got[len(got)-3:] != "..." {
		t.Errorf("expected truncated repr, got %d bytes: %s", len(got), got)
	}
}

func TestTypeText(t *testing.T) {
	for _, ty := range Types() {
		d, _ := ty.MarshalText()
		var back Type
		if err := back.UnmarshalText(d); err != nil || back != ty {
			t.Errorf("type %s: got %s, %v", ty, back, err)
		}
	}
}
