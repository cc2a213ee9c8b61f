package ports

import (
	"context"

	"shipment/internal/core/domain/model/kernel"
	"shipment/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for the ledger's order registry.
// Orders are never removed, and the registry remembers the order in which codes
// were first added.
type OrderRepository interface {
	// Add persists a new order. Adding a code that is already present must fail
	// with order.ErrOrderAlreadyExists.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists a status change of an existing order.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order by code. Returns an error wrapping
	// order.ErrOrderNotFound when the code is unknown.
	Get(ctx context.Context, code kernel.Bytes32) (*order.Order, error)

	// Codes lists every code in the order it was added.
	Codes(ctx context.Context) ([]kernel.Bytes32, error)
}
