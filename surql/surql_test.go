package surql

import (
	"testing"
	"time"

	"github.com/signadot/go-surreal/codec"
	"github.com/signadot/go-surreal/value"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormat(t *testing.T) {
	at := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	tests := []struct {
		in   *value.Value
		want string
	}{
		{value.None(), "NONE"},
		{nil, "NONE"},
		{value.FromBool(true), "true"},
		{value.FromInt(-3), "-3"},
		{value.FromFloat(2), "2.0"},
		{value.FromFloat(0.25), "0.25"},
		{value.FromString("it's"), `'it\'s'`},
		{value.FromString("a\\b\nc"), `'a\\b\nc'`},
		{value.FromThing(value.StringThing("user", "Devlog")), "user:Devlog"},
		{value.FromThing(value.StringThing("blogPost", "How to use surrealdb")), "blogPost:⟨How to use surrealdb⟩"},
		{value.FromThing(value.IntThing("post", 7)), "post:7"},
		{value.FromDuration(90 * time.Minute), "1h30m"},
		{value.FromTime(at), "d'2024-05-01T12:00:00Z'"},
		{value.FromSlice(nil), "[]"},
		{value.FromKeyVals(nil), "{}"},
		{value.FromSlice([]*value.Value{value.FromInt(1), value.FromString("x")}), "[1, 'x']"},
		{value.FromKeyVals([]value.KeyVal{
			{Key: "name", Val: value.FromString("ada")},
			{Key: "created at", Val: value.None()},
			{Key: "tags", Val: value.FromSlice([]*value.Value{value.FromString("a")})},
		}), "{ name: 'ada', 'created at': NONE, tags: ['a'] }"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Format(tt.in))
	}
}

func TestPretty(t *testing.T) {
	v := value.FromKeyVals([]value.KeyVal{
		{Key: "a", Val: value.FromInt(1)},
		{Key: "b", Val: value.FromSlice([]*value.Value{value.FromInt(2), value.FromKeyVals(nil)})},
	})
	want := "{\n  a: 1,\n  b: [\n    2,\n    {}\n  ]\n}"
	assert.Equal(t, want, Format(v, Pretty(2)))
}

func TestDuration(t *testing.T) {
	tests := []struct {
		in   time.Duration
		want string
	}{
		{0, "0ns"},
		{250 * time.Millisecond, "250ms"},
		{90 * time.Minute, "1h30m"},
		{8*24*time.Hour + time.Second, "1w1d1s"},
		{366 * 24 * time.Hour, "1y1d"},
		{1500 * time.Nanosecond, "1µs500ns"},
		{-time.Minute, "-1m"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Duration(tt.in))
	}
	assert.NotPanics(t, func() { Duration(time.Duration(-1 << 63)) })
}

func TestContentAndSet(t *testing.T) {
	type Post struct {
		Title   string
		Content string
	}
	reg := codec.NewRegistry(codec.Config{})
	node, err := reg.Encode(Post{Title: "How to use surrealdb", Content: "It's easy"})
	require.NoError(t, err)

	content, err := Content(node)
	require.NoError(t, err)
	assert.Equal(t, `CONTENT { title: 'How to use surrealdb', content: 'It\'s easy' }`, content)

	_, err = Content(value.FromInt(1))
	assert.Error(t, err)

	as, err := reg.Assignments(Post{Title: "t", Content: "c"})
	require.NoError(t, err)
	assert.Equal(t, "title = 't', content = 'c'", Set(as))
	assert.Equal(t, "`my field` = 1", Set([]codec.Assignment{{Field: "my field", Value: value.FromInt(1)}}))

	assert.Equal(t, "blogPost:⟨How to use surrealdb⟩", ID(value.StringThing("blogPost", "How to use surrealdb")))
}

func TestColors(t *testing.T) {
	c := NewColors()
	c.Map = map[Colorable]func(string, ...any) string{
		{Type: value.StringType, Attr: ValueColor}: func(s string, _ ...any) string { return "<" + s + ">" },
	}
	got := Format(value.FromSlice([]*value.Value{value.FromString("x"), value.FromInt(1)}), WithColors(c))
	assert.Equal(t, "[<'x'>, 1]", got)

	// the stock palette must not treat '%' as a verb
	plain := NewColors()
	assert.Contains(t, Format(value.FromString("100%"), WithColors(plain)), "100%")
}
