package kernel

import (
	"crypto/ecdsa"
	"fmt"
	"strings"

	"shipment/internal/pkg/errs"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

// ErrAddressIsNotConstructed is returned when validating the zero address.
var ErrAddressIsNotConstructed = errs.NewValueIsRequiredError("address must be created via AddressFromHex or AddressFromPrivateKey")

// Address is the identity of an account submitting ledger operations. The creator of
// an order is the only identity allowed to change its status.
type Address struct {
	a common.Address
}

// AddressFromHex parses a 0x-prefixed 20-byte hex address.
func AddressFromHex(s string) (Address, error) {
	if !common.IsHexAddress(s) {
		return Address{}, errs.NewValueIsInvalidErrorWithCause("address", fmt.Errorf("%q is not a hex address", s))
	}

	addr := Address{a: common.HexToAddress(s)}
	if err := addr.Validate(); err != nil {
		return Address{}, err
	}
	return addr, nil
}

// AddressFromCommon wraps a go-ethereum address.
func AddressFromCommon(a common.Address) Address {
	return Address{a: a}
}

// AddressFromBytes builds an address from its 20 raw bytes.
func AddressFromBytes(b []byte) (Address, error) {
	if len(b) != common.AddressLength {
		return Address{}, errs.NewValueIsOutOfRangeError("address length", len(b), common.AddressLength, common.AddressLength)
	}
	return Address{a: common.BytesToAddress(b)}, nil
}

// AddressFromPrivateKey derives the account address controlled by key.
func AddressFromPrivateKey(key *ecdsa.PrivateKey) Address {
	return Address{a: crypto.PubkeyToAddress(key.PublicKey)}
}

// ParsePrivateKey decodes a hex private key with or without 0x prefix.
func ParsePrivateKey(s string) (*ecdsa.PrivateKey, error) {
	key, err := crypto.HexToECDSA(strings.TrimPrefix(s, "0x"))
	if err != nil {
		return nil, errs.NewValueIsInvalidErrorWithCause("private key", err)
	}
	return key, nil
}

// Common returns the go-ethereum representation.
func (a Address) Common() common.Address {
	return a.a
}

// Bytes returns the 20 raw bytes.
func (a Address) Bytes() []byte {
	return a.a.Bytes()
}

// String returns the EIP-55 checksummed hex form.
func (a Address) String() string {
	return a.a.Hex()
}

// IsEqual compares two addresses.
func (a Address) IsEqual(other Address) bool {
	return a.a == other.a
}

// Validate rejects the zero address.
func (a Address) Validate() error {
	if a.a == (common.Address{}) {
		return ErrAddressIsNotConstructed
	}
	return nil
}
