package kernel

import (
	"encoding/hex"
	"fmt"
	"strings"

	"shipment/internal/pkg/errs"
)

// Bytes32Length is the width of every identifier stored on the ledger.
const Bytes32Length = 32

// maxBytes32StringLength leaves room for the zero terminator that marks the end of
// an encoded string.
const maxBytes32StringLength = Bytes32Length - 1

// Bytes32 is a fixed-width ledger identifier. Human-readable strings are stored
// left-aligned and zero-padded, so "First Order" becomes 0x4669727374204f72646572 followed
// by 21 zero bytes.
//
// The zero value is the reserved empty identifier. It is a legal value to hold and to
// submit: the ledger, not the encoder, decides that an empty code is unacceptable.
type Bytes32 struct {
	b [Bytes32Length]byte
}

// Bytes32FromString encodes s into a Bytes32. The empty string encodes to the zero
// identifier. Strings that do not leave room for a terminating zero byte are rejected.
//
// Example:
//
//	code, err := kernel.Bytes32FromString("First Order")
//	if err != nil {
//	    return err // longer than 31 bytes
//	}
func Bytes32FromString(s string) (Bytes32, error) {
	if len(s) > maxBytes32StringLength {
		return Bytes32{}, errs.NewValueIsOutOfRangeErrorWithCause(
			"bytes32 string length", len(s), 0, maxBytes32StringLength,
			fmt.Errorf("%q does not fit a 32-byte identifier", s),
		)
	}

	var id Bytes32
	copy(id.b[:], s)
	return id, nil
}

// MustBytes32FromString is like Bytes32FromString but panics on error. Intended for
// constants and tests.
func MustBytes32FromString(s string) Bytes32 {
	id, err := Bytes32FromString(s)
	if err != nil {
		panic(err)
	}
	return id
}

// Bytes32FromBytes copies b into a Bytes32. b must be exactly 32 bytes long.
func Bytes32FromBytes(b []byte) (Bytes32, error) {
	if len(b) != Bytes32Length {
		return Bytes32{}, errs.NewValueIsOutOfRangeError("bytes32 length", len(b), Bytes32Length, Bytes32Length)
	}

	var id Bytes32
	copy(id.b[:], b)
	return id, nil
}

// Bytes32FromArray wraps a raw array as returned by ABI decoding.
func Bytes32FromArray(a [Bytes32Length]byte) Bytes32 {
	return Bytes32{b: a}
}

// Bytes32FromHex parses a 0x-prefixed or bare 64 character hex string.
func Bytes32FromHex(s string) (Bytes32, error) {
	raw, err := hex.DecodeString(strings.TrimPrefix(s, "0x"))
	if err != nil {
		return Bytes32{}, errs.NewValueIsInvalidErrorWithCause("bytes32 hex", err)
	}
	return Bytes32FromBytes(raw)
}

// String decodes the identifier back to text, stopping at the first zero byte.
func (id Bytes32) String() string {
	n := 0
	for n < Bytes32Length && id.b[n] != 0 {
		n++
	}
	return string(id.b[:n])
}

// Hex returns the 0x-prefixed hex form of all 32 bytes.
func (id Bytes32) Hex() string {
	return "0x" + hex.EncodeToString(id.b[:])
}

// Array returns a copy of the raw bytes for ABI encoding.
func (id Bytes32) Array() [Bytes32Length]byte {
	return id.b
}

// Bytes returns a copy of the raw bytes.
func (id Bytes32) Bytes() []byte {
	out := make([]byte, Bytes32Length)
	copy(out, id.b[:])
	return out
}

// IsZero reports whether id is the reserved empty identifier.
func (id Bytes32) IsZero() bool {
	return id.b == [Bytes32Length]byte{}
}

// IsEqual compares two identifiers byte by byte.
func (id Bytes32) IsEqual(other Bytes32) bool {
	return id.b == other.b
}
