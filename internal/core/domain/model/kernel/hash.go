package kernel

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

// Hash identifies a ledger transaction.
type Hash struct {
	h common.Hash
}

// HashFromCommon wraps a go-ethereum hash.
func HashFromCommon(h common.Hash) Hash {
	return Hash{h: h}
}

// HashFromHex parses a 0x-prefixed hex hash. Invalid input yields the zero hash.
func HashFromHex(s string) Hash {
	return Hash{h: common.HexToHash(s)}
}

// Keccak256 hashes the concatenation of data.
func Keccak256(data ...[]byte) Hash {
	return Hash{h: crypto.Keccak256Hash(data...)}
}

// Common returns the go-ethereum representation.
func (h Hash) Common() common.Hash {
	return h.h
}

// Bytes returns the 32 raw bytes.
func (h Hash) Bytes() []byte {
	return h.h.Bytes()
}

// String returns the 0x-prefixed hex form.
func (h Hash) String() string {
	return h.h.Hex()
}

// IsZero reports whether h is the zero hash.
func (h Hash) IsZero() bool {
	return h.h == (common.Hash{})
}
