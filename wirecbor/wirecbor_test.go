package wirecbor

import (
	"encoding/hex"
	"testing"
	"time"

	"github.com/fxamacker/cbor/v2"
	"github.com/signadot/go-surreal/value"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundTrip(t *testing.T) {
	at := time.Date(2024, 5, 1, 12, 0, 0, 42, time.UTC)
	tests := []*value.Value{
		value.None(),
		value.FromBool(true),
		value.FromInt(-7),
		value.FromInt(1 << 40),
		value.FromFloat(2.5),
		value.FromString("héllo"),
		value.FromThing(value.StringThing("user", "Devlog")),
		value.FromThing(value.Thing{Table: "temp", ID: value.FromSlice([]*value.Value{
			value.FromString("london"), value.FromInt(3)})}),
		value.FromTime(at),
		value.FromDuration(90*time.Minute + 5*time.Nanosecond),
		value.FromSlice([]*value.Value{value.FromInt(1), value.None()}),
		value.FromKeyVals([]value.KeyVal{
			{Key: "a", Val: value.FromInt(1)},
			{Key: "b", Val: value.FromSlice(nil)},
		}),
	}
	for _, v := range tests {
		data, err := Marshal(v)
		require.NoError(t, err, value.Repr(v))
		back, err := Unmarshal(data)
		require.NoError(t, err, value.Repr(v))
		assert.True(t, value.Equal(v, back), "%s != %s", value.Repr(v), value.Repr(back))
	}
}

func TestObjectKeysSorted(t *testing.T) {
	v := value.FromKeyVals([]value.KeyVal{
		{Key: "zeta", Val: value.FromInt(1)},
		{Key: "alpha", Val: value.FromInt(2)},
	})
	data, err := Marshal(v)
	require.NoError(t, err)
	back, err := Unmarshal(data)
	require.NoError(t, err)
	assert.Equal(t, []string{"alpha", "zeta"}, back.Fields)
	assert.Equal(t, 0, value.Compare(v, back))

	again, err := Marshal(back)
	require.NoError(t, err)
	assert.Equal(t, data, again)
}

func TestTags(t *testing.T) {
	data, err := Marshal(value.None())
	require.NoError(t, err)
	assert.Equal(t, "c6f6", hex.EncodeToString(data))

	data, err = Marshal(value.FromThing(value.IntThing("t", 1)))
	require.NoError(t, err)
	diag, err := Diagnose(data)
	require.NoError(t, err)
	assert.Equal(t, `8(["t", 1])`, diag)

	data, err = Marshal(value.FromDuration(1500 * time.Millisecond))
	require.NoError(t, err)
	diag, err = Diagnose(data)
	require.NoError(t, err)
	assert.Equal(t, `14([1, 500000000])`, diag)
}

func TestStringTags(t *testing.T) {
	enc := func(tag uint64, s string) []byte {
		data, err := cbor.Marshal(cbor.Tag{Number: tag, Content: s})
		require.NoError(t, err)
		return data
	}
	v, err := Unmarshal(enc(TagDurationString, "1h"))
	require.NoError(t, err)
	assert.Equal(t, time.Hour, v.Duration)

	v, err = Unmarshal(enc(TagDecimalString, "1.25"))
	require.NoError(t, err)
	assert.Equal(t, 1.25, *v.Float64)

	v, err = Unmarshal(enc(TagUUIDString, "0190d5a0-0000-7000-8000-000000000000"))
	require.NoError(t, err)
	assert.Equal(t, value.StringType, v.Type)

	_, err = Unmarshal(enc(99, "x"))
	assert.Error(t, err)
}

func TestCompactParts(t *testing.T) {
	data, err := cbor.Marshal(cbor.Tag{Number: TagDuration, Content: []any{}})
	require.NoError(t, err)
	v, err := Unmarshal(data)
	require.NoError(t, err)
	assert.Equal(t, time.Duration(0), v.Duration)

	data, err = cbor.Marshal(cbor.Tag{Number: TagDatetime, Content: []any{"x"}})
	require.NoError(t, err)
	_, err = Unmarshal(data)
	assert.Error(t, err)
}

func TestMarshalErrors(t *testing.T) {
	_, err := Marshal(value.FromDuration(-time.Second))
	assert.Error(t, err)
	_, err = Unmarshal([]byte{0xff})
	assert.Error(t, err)
}
