package ledger

import (
	"errors"

	"shipment/internal/core/domain/model/kernel"
	"shipment/internal/core/domain/model/order"
)

// ErrTransactionNotFound is returned when the ledger has no record of a hash.
var ErrTransactionNotFound = errors.New("transaction not found")

// PendingTransaction is the handle returned by a successful submission. It becomes
// final once awaited.
type PendingTransaction struct {
	Hash kernel.Hash
}

// Receipt is the proof that a transaction was included in a block.
type Receipt struct {
	Hash        kernel.Hash
	BlockNumber uint64
	From        kernel.Address
	Call        Call
	Events      []order.Event
}

// Confirmations returns how many blocks have been sealed on top of the receipt's
// block, given the current head.
func (r *Receipt) Confirmations(head uint64) uint64 {
	if head <= r.BlockNumber {
		return 0
	}
	return head - r.BlockNumber
}
