package codec_test

import (
	"testing"

	"github.com/signadot/go-surreal/codec"
	"github.com/signadot/go-surreal/naming"
	"github.com/signadot/go-surreal/value"
	"github.com/stretchr/testify/require"
)

type Address struct {
	Street  string
	City    string
	Country string
}

type UserType interface{ isUserType() }

type Guest struct{}

type Basic struct {
	Plan  string
	Seats int
}

type Premium struct {
	Level            int
	SubscriptionType string
	Address          Address
}

type Banned struct {
	Reason string
}

func (Guest) isUserType()   {}
func (Basic) isUserType()   {}
func (Premium) isUserType() {}
func (*Banned) isUserType() {}

type User struct {
	Name     string
	Kind     UserType
	Nick     *string
	Tags     []string
	Password string `surreal:"skip"`
	Token    string `surreal:"skip_serializing"`
	Session  string `surreal:"skip_deserializing"`
	Karma    int    `surreal:"name=score,default"`
}

func userTypeSpec(tagKey string) *codec.EnumSpec {
	return codec.Enum[UserType](
		codec.TagKey(tagKey),
		codec.Variant[Guest](codec.Unit),
		codec.Variant[Basic](codec.Tuple),
		codec.Variant[Premium](codec.Named),
		codec.Variant[*Banned](codec.Tuple, codec.Rename("banned_user")),
	)
}

func newRegistry(t *testing.T, tagKey string, conv naming.Convention) *codec.Registry {
	t.Helper()
	reg := codec.NewRegistry(codec.Config{Naming: conv})
	require.NoError(t, reg.RegisterEnum(userTypeSpec(tagKey)))
	return reg
}

func plain(t *testing.T, src string) *value.Value {
	t.Helper()
	v, err := value.ParsePlain([]byte(src))
	require.NoError(t, err)
	return v
}

func requireValue(t *testing.T, want, got *value.Value) {
	t.Helper()
	if !value.Equal(want, got) {
		t.Fatalf("value mismatch\nwant %s\ngot  %s", value.Repr(want), value.Repr(got))
	}
}

func ptr[T any](v T) *T { return &v }
