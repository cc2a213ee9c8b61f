package kernel_test

import (
	"testing"

	"shipment/internal/core/domain/model/kernel"
	"shipment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Well-known development key, never funded outside local networks.
const devKey = "ac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80"

func TestAddressFromPrivateKey(t *testing.T) {
	key, err := kernel.ParsePrivateKey("0x" + devKey)
	require.NoError(t, err)

	addr := kernel.AddressFromPrivateKey(key)

	assert.Equal(t, "0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266", addr.String())
	require.NoError(t, addr.Validate())
}

func TestParsePrivateKey_Invalid(t *testing.T) {
	_, err := kernel.ParsePrivateKey("not a key")

	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestAddressFromHex(t *testing.T) {
	t.Run("should parse checksummed address", func(t *testing.T) {
		addr, err := kernel.AddressFromHex("0x70997970C51812dc3A010C7d01b50e0d17dc79C8")

		require.NoError(t, err)
		assert.Equal(t, "0x70997970C51812dc3A010C7d01b50e0d17dc79C8", addr.String())
	})

	t.Run("should reject malformed input", func(t *testing.T) {
		_, err := kernel.AddressFromHex("0x1234")

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("should reject zero address", func(t *testing.T) {
		_, err := kernel.AddressFromHex("0x0000000000000000000000000000000000000000")

		require.ErrorIs(t, err, kernel.ErrAddressIsNotConstructed)
	})
}

func TestAddress_IsEqual(t *testing.T) {
	a, _ := kernel.AddressFromHex("0x70997970C51812dc3A010C7d01b50e0d17dc79C8")
	b, _ := kernel.AddressFromHex("0x70997970c51812dc3a010c7d01b50e0d17dc79c8")
	c, _ := kernel.AddressFromHex("0x3C44CdDdB6a900fa2b585dd299e03d12FA4293BC")

	assert.True(t, a.IsEqual(b))
	assert.False(t, a.IsEqual(c))
}

func TestAddressFromBytes(t *testing.T) {
	a, _ := kernel.AddressFromHex("0x70997970C51812dc3A010C7d01b50e0d17dc79C8")

	parsed, err := kernel.AddressFromBytes(a.Bytes())
	require.NoError(t, err)
	assert.True(t, parsed.IsEqual(a))

	_, err = kernel.AddressFromBytes([]byte{1})
	require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
}

func TestKeccak256(t *testing.T) {
	h := kernel.Keccak256([]byte("First Order"))

	assert.False(t, h.IsZero())
	assert.Equal(t, h, kernel.HashFromHex(h.String()))
	assert.NotEqual(t, h, kernel.Keccak256([]byte("Second Order")))
}
