package codec_test

import (
	"reflect"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/signadot/go-surreal/codec"
	"github.com/signadot/go-surreal/naming"
	"github.com/signadot/go-surreal/value"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordRoundTrip(t *testing.T) {
	reg := newRegistry(t, "", naming.SnakeCase)
	u := User{
		Name:     "ada",
		Kind:     Basic{Plan: "pro", Seats: 2},
		Password: "secret",
		Token:    "tok",
		Session:  "s1",
		Karma:    7,
	}
	got, err := reg.Encode(u)
	require.NoError(t, err)
	want := plain(t, `{"name": "ada", "kind": {"basic": ["pro", 2]}, "nick": null,
		"tags": [], "session": "s1", "score": 7}`)
	requireValue(t, want, got)

	var back User
	require.NoError(t, reg.Decode(got, &back))
	u.Password, u.Token, u.Session = "", "", ""
	if diff := cmp.Diff(u, back, cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("round trip (-want +got):\n%s", diff)
	}
}

type Task struct {
	Role   UserType
	Target value.Thing
	Author codec.Link[Author]
	Notes  []string
}

func TestZeroRecordRoundTrip(t *testing.T) {
	reg := newRegistry(t, "type", naming.SnakeCase)
	got, err := reg.Encode(Task{})
	require.NoError(t, err)
	requireValue(t, plain(t, `{"role": null, "target": null, "author": null, "notes": []}`), got)

	var back Task
	require.NoError(t, reg.Decode(got, &back))
	if diff := cmp.Diff(Task{}, back, cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("round trip (-want +got):\n%s", diff)
	}
	assert.Nil(t, back.Role)

	_, err = codec.Decode[Task](reg, plain(t, `{"target": null, "author": null, "notes": []}`))
	assert.ErrorIs(t, err, codec.ErrMissingValue)
	assert.Equal(t, "role", codec.Path(err))

	_, err = codec.Decode[Task](reg, plain(t, `{"role": null, "author": null, "notes": []}`))
	assert.ErrorIs(t, err, codec.ErrMissingValue)
	assert.Equal(t, "target", codec.Path(err))

	_, err = codec.Decode[Task](reg, plain(t, `{"role": null, "target": null, "notes": []}`))
	assert.ErrorIs(t, err, codec.ErrMissingValue)
	assert.Equal(t, "author", codec.Path(err))
}

func TestOptionalField(t *testing.T) {
	reg := newRegistry(t, "", naming.SnakeCase)
	tests := []struct {
		name string
		in   string
		want *string
	}{
		{"absent", `{"name": "a", "kind": "guest", "tags": []}`, nil},
		{"none", `{"name": "a", "kind": "guest", "tags": [], "nick": null}`, nil},
		{"set", `{"name": "a", "kind": "guest", "tags": [], "nick": "al"}`, ptr("al")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u, err := codec.Decode[User](reg, plain(t, tt.in))
			require.NoError(t, err)
			assert.Equal(t, tt.want, u.Nick)
			assert.Equal(t, UserType(Guest{}), u.Kind)
			assert.Zero(t, u.Karma)
		})
	}
}

func TestRequiredFieldNone(t *testing.T) {
	reg := newRegistry(t, "", naming.SnakeCase)
	for _, in := range []string{
		`{"name": null, "kind": "guest", "tags": []}`,
		`{"kind": "guest", "tags": []}`,
	} {
		_, err := codec.Decode[User](reg, plain(t, in))
		require.Error(t, err, in)
		assert.ErrorIs(t, err, codec.ErrParsingFieldFailed)
		assert.ErrorIs(t, err, codec.ErrMissingValue)
		assert.Equal(t, "name", codec.Path(err))
	}

	_, err := codec.Decode[User](reg, plain(t, `{"name": "a", "kind": "guest", "tags": null}`))
	assert.ErrorIs(t, err, codec.ErrMissingValue)
	assert.Equal(t, "tags", codec.Path(err))
}

func TestEmptySequence(t *testing.T) {
	reg := newRegistry(t, "", naming.SnakeCase)
	u, err := codec.Decode[User](reg, plain(t, `{"name": "a", "kind": "guest", "tags": []}`))
	require.NoError(t, err)
	require.NotNil(t, u.Tags)
	assert.Empty(t, u.Tags)

	got, err := reg.Encode(User{Name: "a", Kind: Guest{}})
	require.NoError(t, err)
	requireValue(t, value.FromSlice(nil), value.Get(got, "tags"))
}

func TestRecordInput(t *testing.T) {
	reg := codec.NewRegistry(codec.Config{})
	tests := []struct {
		in   string
		want error
	}{
		{`{"street": "s", "city": "c", "country": "x"}`, nil},
		{`[{"street": "s", "city": "c", "country": "x"}]`, nil},
		{`[]`, codec.ErrExpectedAnArrayWith1ItemToDeserializeToObject},
		{`[{}, {}]`, codec.ErrExpectedAnArrayWith1ItemToDeserializeToObject},
		{`[1]`, codec.ErrExpectedAnArrayWith1ItemToDeserializeToObject},
		{`"street"`, codec.ErrExpectedAnObject},
		{`12`, codec.ErrExpectedAnObject},
		{`null`, codec.ErrMissingValue},
	}
	for _, tt := range tests {
		a, err := codec.Decode[Address](reg, plain(t, tt.in))
		if tt.want == nil {
			require.NoError(t, err, tt.in)
			assert.Equal(t, Address{Street: "s", City: "c", Country: "x"}, a)
			continue
		}
		assert.ErrorIs(t, err, tt.want, tt.in)
	}
}

func TestDecodeIsAllOrNothing(t *testing.T) {
	reg := codec.NewRegistry(codec.Config{})
	a := Address{Street: "keep", City: "keep", Country: "keep"}
	err := reg.Decode(plain(t, `{"street": "new", "city": 1, "country": "new"}`), &a)
	require.Error(t, err)
	assert.Equal(t, Address{Street: "keep", City: "keep", Country: "keep"}, a)

	assert.Error(t, reg.Decode(plain(t, `{}`), a))
	assert.Error(t, reg.Decode(plain(t, `{}`), (*Address)(nil)))
}

type UserID struct {
	_  struct{} `surreal:"transparent"`
	ID string
}

type Session struct {
	Owner   UserID
	Viewers []UserID
}

func TestTransparent(t *testing.T) {
	reg := codec.NewRegistry(codec.Config{})
	s := Session{Owner: UserID{ID: "u1"}, Viewers: []UserID{{ID: "u2"}}}
	got, err := reg.Encode(s)
	require.NoError(t, err)
	requireValue(t, plain(t, `{"owner": "u1", "viewers": ["u2"]}`), got)

	back, err := codec.Decode[Session](reg, got)
	require.NoError(t, err)
	assert.Equal(t, s, back)
}

type BadTransparent struct {
	_ struct{} `surreal:"transparent"`
	A string
	B string
}

type Timestamps struct {
	Created int
	Updated int
}

type Post struct {
	Timestamps
	Title string
	Body  string `surreal:"name=content"`
	note  string
}

func TestEmbeddedFlatten(t *testing.T) {
	reg := codec.NewRegistry(codec.Config{})
	p := Post{Timestamps: Timestamps{Created: 1, Updated: 2}, Title: "t", Body: "b", note: "n"}
	got, err := reg.Encode(p)
	require.NoError(t, err)
	requireValue(t, plain(t, `{"created": 1, "updated": 2, "title": "t", "content": "b"}`), got)

	back, err := codec.Decode[Post](reg, got)
	require.NoError(t, err)
	p.note = ""
	assert.Equal(t, p, back)
}

type Comment struct {
	Body    string
	Replies []Comment
	Parent  *Comment
}

func TestRecursiveType(t *testing.T) {
	reg := codec.NewRegistry(codec.Config{})
	c := Comment{
		Body: "root",
		Replies: []Comment{
			{Body: "a", Replies: []Comment{}, Parent: &Comment{Body: "p", Replies: []Comment{}}},
		},
	}
	got, err := reg.Encode(c)
	require.NoError(t, err)
	back, err := codec.Decode[Comment](reg, got)
	require.NoError(t, err)
	if diff := cmp.Diff(c, back); diff != "" {
		t.Errorf("round trip (-want +got):\n%s", diff)
	}
}

type Inventory struct {
	Counts map[string]int
	Slots  [2]string
}

func TestMapAndArray(t *testing.T) {
	reg := codec.NewRegistry(codec.Config{})
	inv := Inventory{Counts: map[string]int{"pear": 2, "apple": 1}, Slots: [2]string{"x", "y"}}
	got, err := reg.Encode(inv)
	require.NoError(t, err)
	requireValue(t, plain(t, `{"counts": {"apple": 1, "pear": 2}, "slots": ["x", "y"]}`), got)

	back, err := codec.Decode[Inventory](reg, got)
	require.NoError(t, err)
	assert.Equal(t, inv, back)

	_, err = codec.Decode[Inventory](reg, plain(t, `{"counts": {}, "slots": ["x"]}`))
	assert.ErrorIs(t, err, codec.ErrExpectedAnArray)
	_, err = codec.Decode[Inventory](reg, plain(t, `{"counts": [], "slots": ["x", "y"]}`))
	assert.ErrorIs(t, err, codec.ErrExpectedAnObject)
	assert.Equal(t, "counts", codec.Path(err))
}

func TestFields(t *testing.T) {
	reg := newRegistry(t, "", naming.CamelCase)
	fds, err := reg.Fields(reflect.TypeFor[User]())
	require.NoError(t, err)

	type row struct {
		Wire     string
		Shape    codec.Shape
		Optional bool
		Sequence bool
		Skip     [2]bool
		Default  bool
	}
	var got []row
	for _, fd := range fds {
		got = append(got, row{fd.WireName, fd.Shape, fd.Optional, fd.Sequence,
			[2]bool{fd.SkipSerializing, fd.SkipDeserializing}, fd.UseDefault})
	}
	want := []row{
		{Wire: "name", Shape: codec.ShapeLeaf},
		{Wire: "kind", Shape: codec.ShapeVariant},
		{Wire: "nick", Shape: codec.ShapeOptional, Optional: true},
		{Wire: "tags", Shape: codec.ShapeSequence, Sequence: true},
		{Wire: "password", Shape: codec.ShapeLeaf, Skip: [2]bool{true, true}},
		{Wire: "token", Shape: codec.ShapeLeaf, Skip: [2]bool{true, false}},
		{Wire: "session", Shape: codec.ShapeLeaf, Skip: [2]bool{false, true}},
		{Wire: "score", Shape: codec.ShapeLeaf, Default: true},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("fields (-want +got):\n%s", diff)
	}
	assert.Equal(t, "Name", fds[0].GoName)
	assert.Equal(t, "name", fds[0].HostName)

	_, err = reg.Fields(reflect.TypeFor[[]int]())
	assert.Error(t, err)
}

func TestAssignments(t *testing.T) {
	reg := codec.NewRegistry(codec.Config{})
	as, err := reg.Assignments(Address{Street: "s", City: "c", Country: "x"})
	require.NoError(t, err)
	require.Len(t, as, 3)
	assert.Equal(t, "street", as[0].Field)
	assert.Equal(t, "country", as[2].Field)
	requireValue(t, value.FromString("c"), as[1].Value)

	_, err = reg.Assignments(42)
	assert.Error(t, err)
}

type clash struct {
	A int `surreal:"name=x"`
	B int `surreal:"name=x"`
}

type typo struct {
	A int `surreal:"nmae=x"`
}

func TestRecordRegistrationErrors(t *testing.T) {
	reg := codec.NewRegistry(codec.Config{})
	_, err := reg.Encode(clash{})
	assert.ErrorIs(t, err, codec.ErrRegistration)
	_, err = reg.Encode(typo{})
	assert.Error(t, err)
	_, err = reg.Encode(BadTransparent{})
	assert.ErrorIs(t, err, codec.ErrRegistration)
	_, err = reg.Encode(map[int]string{})
	assert.ErrorIs(t, err, codec.ErrRegistration)
	_, err = reg.Encode(make(chan int))
	assert.ErrorIs(t, err, codec.ErrRegistration)
}

func TestCamelCaseRecord(t *testing.T) {
	reg := codec.NewRegistry(codec.Config{Naming: naming.CamelCase})
	got, err := reg.Encode(premium)
	require.NoError(t, err)
	requireValue(t, plain(t, `{"level": 3, "subscriptionType": "gold",
		"address": {"street": "123 Main St", "city": "Tech City", "country": "Codeland"}}`), got)
}
