package codec

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/signadot/go-surreal/value"
	"github.com/stretchr/testify/assert"
)

func TestErrorMessages(t *testing.T) {
	leaf := unexpected("string", value.FromInt(7))
	nested := fieldFailed("address", fieldFailed("tags", fieldFailed("[2]", leaf)))

	assert.Equal(t, "expected string, got 7", leaf.Error())
	assert.Equal(t, "address.tags[2]", nested.Path())
	assert.Equal(t, "parsing field address.tags[2]: expected string, got 7", nested.Error())
	assert.Equal(t, `unknown variant "gold"`, (&Error{Kind: KindUnknownVariant, Name: "gold"}).Error())
	assert.Equal(t, "ExpectedAnObject: [1]",
		newError(KindExpectedAnObject, value.FromSlice([]*value.Value{value.FromInt(1)})).Error())
	assert.Equal(t, "parsing field x failed", fieldFailed("x", nil).Error())

	wrapped := errors.Wrap(nested, "decoding user")
	assert.True(t, errors.Is(wrapped, ErrUnexpectedType))
	assert.True(t, errors.Is(wrapped, ErrParsingFieldFailed))
	assert.False(t, errors.Is(wrapped, ErrMissingValue))
	assert.Equal(t, "address.tags[2]", Path(wrapped))
	assert.Equal(t, "", Path(errors.New("other")))
}

func TestMarshalErrorPath(t *testing.T) {
	err := atField("address", atField("[0]", &MarshalError{Message: "bad"}))
	assert.Equal(t, "marshal error at address[0]: bad", err.Error())
	err = atField("a", atField("b", errors.New("boom")))
	assert.Equal(t, "marshal error at a.b: boom", err.Error())
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "NumberOfFieldOfLengthOfDbValueNotMatchLengthOfEnum",
		KindNumberOfFieldOfLengthOfDbValueNotMatchLengthOfEnum.String())
	assert.Equal(t, "Kind(99)", Kind(99).String())
}
