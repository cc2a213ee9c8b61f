package ports

import (
	"context"

	"shipment/internal/core/domain/model/kernel"
	"shipment/internal/core/domain/model/ledger"
)

// ChainRepository stores the block head and the receipts of accepted transactions
// of a local ledger.
type ChainRepository interface {
	// Head returns the number of the last sealed block, 0 for an empty chain.
	Head(ctx context.Context) (uint64, error)

	SetHead(ctx context.Context, height uint64) error

	AddReceipt(ctx context.Context, receipt *ledger.Receipt) error

	// GetReceipt returns ledger.ErrTransactionNotFound for unknown hashes.
	GetReceipt(ctx context.Context, hash kernel.Hash) (*ledger.Receipt, error)
}
