package kernel_test

import (
	"strings"
	"testing"

	"shipment/internal/core/domain/model/kernel"
	"shipment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBytes32FromString(t *testing.T) {
	t.Run("should encode left aligned and zero padded", func(t *testing.T) {
		id, err := kernel.Bytes32FromString("First Order")

		require.NoError(t, err)
		raw := id.Array()
		assert.Equal(t, []byte("First Order"), raw[:11])
		for _, b := range raw[11:] {
			assert.Equal(t, byte(0), b)
		}
		assert.Equal(t, "First Order", id.String())
		assert.False(t, id.IsZero())
	})

	t.Run("should encode empty string as the zero identifier", func(t *testing.T) {
		id, err := kernel.Bytes32FromString("")

		require.NoError(t, err)
		assert.True(t, id.IsZero())
		assert.Empty(t, id.String())
	})

	t.Run("should accept 31 bytes", func(t *testing.T) {
		s := strings.Repeat("a", 31)

		id, err := kernel.Bytes32FromString(s)

		require.NoError(t, err)
		assert.Equal(t, s, id.String())
	})

	t.Run("should reject 32 bytes or more", func(t *testing.T) {
		_, err := kernel.Bytes32FromString(strings.Repeat("a", 32))

		require.Error(t, err)
		var outOfRange *errs.ValueIsOutOfRangeError
		require.ErrorAs(t, err, &outOfRange)
		assert.Equal(t, 32, outOfRange.Value)
		assert.Equal(t, 31, outOfRange.Max)
	})

	t.Run("should count bytes not runes", func(t *testing.T) {
		_, err := kernel.Bytes32FromString(strings.Repeat("é", 16))

		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})
}

func TestBytes32_RoundTrips(t *testing.T) {
	original := kernel.MustBytes32FromString("distributor 1")

	t.Run("hex", func(t *testing.T) {
		parsed, err := kernel.Bytes32FromHex(original.Hex())

		require.NoError(t, err)
		assert.True(t, parsed.IsEqual(original))
		assert.Equal(t, 66, len(original.Hex()))
	})

	t.Run("bytes", func(t *testing.T) {
		parsed, err := kernel.Bytes32FromBytes(original.Bytes())

		require.NoError(t, err)
		assert.Equal(t, original, parsed)
	})

	t.Run("array", func(t *testing.T) {
		assert.Equal(t, original, kernel.Bytes32FromArray(original.Array()))
	})
}

func TestBytes32FromBytes_RejectsWrongLength(t *testing.T) {
	_, err := kernel.Bytes32FromBytes([]byte{1, 2, 3})

	require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
}

func TestBytes32FromHex_RejectsGarbage(t *testing.T) {
	_, err := kernel.Bytes32FromHex("0xnothex")

	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestBytes32_BytesIsACopy(t *testing.T) {
	id := kernel.MustBytes32FromString("receptor 1")

	b := id.Bytes()
	b[0] = 'X'

	assert.Equal(t, "receptor 1", id.String())
}

func TestMustBytes32FromString_Panics(t *testing.T) {
	assert.Panics(t, func() {
		kernel.MustBytes32FromString(strings.Repeat("x", 40))
	})
}
