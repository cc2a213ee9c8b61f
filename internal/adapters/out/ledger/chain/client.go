package chain

import (
	"context"

	"shipment/internal/core/domain/model/kernel"
	"shipment/internal/core/domain/model/ledger"
	"shipment/internal/core/domain/model/order"
)

// Client is a ports.Ledger bound to one sender.
type Client struct {
	chain  *Chain
	sender kernel.Address
}

// Address returns the identity calls are made as.
func (c *Client) Address() kernel.Address {
	return c.sender
}

func (c *Client) Submit(ctx context.Context, call ledger.Call) (ledger.PendingTransaction, error) {
	return c.chain.submit(ctx, c.sender, call)
}

func (c *Client) Await(ctx context.Context, tx ledger.PendingTransaction, confirmations uint64) (*ledger.Receipt, error) {
	return c.chain.await(ctx, tx, confirmations)
}

func (c *Client) OrderCodes(ctx context.Context) ([]kernel.Bytes32, error) {
	return c.chain.uowFactory.Create().OrderRepository().Codes(ctx)
}

func (c *Client) GetOrder(ctx context.Context, code kernel.Bytes32) (*order.Order, error) {
	return c.chain.uowFactory.Create().OrderRepository().Get(ctx, code)
}
