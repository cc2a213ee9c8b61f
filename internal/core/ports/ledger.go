// Package ports defines the contracts between the shipment domain and the outside
// world: the ledger the orchestrator talks to, the stores a local ledger keeps its
// state in, and where confirmed events are published.
package ports

import (
	"context"

	"shipment/internal/core/domain/model/kernel"
	"shipment/internal/core/domain/model/ledger"
	"shipment/internal/core/domain/model/order"
)

// Ledger is a client of the append-only ledger bound to one signing identity.
// Submission and confirmation are separate steps so a caller can bound, or give
// up on, the wait without losing the transaction handle.
type Ledger interface {
	// Submit sends call and returns as soon as the ledger has accepted it.
	// Rejections are returned as *ledger.RevertError.
	Submit(ctx context.Context, call ledger.Call) (ledger.PendingTransaction, error)

	// Await blocks until the transaction is included and confirmations further
	// blocks have been sealed on top of it, or ctx is done.
	Await(ctx context.Context, tx ledger.PendingTransaction, confirmations uint64) (*ledger.Receipt, error)

	// OrderCodes lists every order code in creation order.
	OrderCodes(ctx context.Context) ([]kernel.Bytes32, error)

	// GetOrder reads one order. Unknown codes yield an error wrapping order.ErrOrderNotFound.
	GetOrder(ctx context.Context, code kernel.Bytes32) (*order.Order, error)
}

// EventPublisher forwards the events of a confirmed transaction to subscribers.
type EventPublisher interface {
	Publish(ctx context.Context, receipt *ledger.Receipt) error
}
