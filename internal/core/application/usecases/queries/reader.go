// Package queries contains read operations over the ledger's order registry.
// Queries return plain read models with identifiers decoded back to text.
package queries

import (
	"context"
	"time"

	"shipment/internal/core/domain/model/kernel"
	"shipment/internal/core/domain/model/order"

	"github.com/patrickmn/go-cache"
)

// Reader is the read side of ports.Ledger.
type Reader interface {
	OrderCodes(ctx context.Context) ([]kernel.Bytes32, error)
	GetOrder(ctx context.Context, code kernel.Bytes32) (*order.Order, error)
}

// OrderResponse is the read model of one order.
type OrderResponse struct {
	Code          string
	DistributorID string
	ReceptorID    string
	Status        order.Status
	Creator       string
}

func newOrderResponse(o *order.Order) OrderResponse {
	return OrderResponse{
		Code:          o.Code().String(),
		DistributorID: o.DistributorID().String(),
		ReceptorID:    o.ReceptorID().String(),
		Status:        o.Status(),
		Creator:       o.Creator().String(),
	}
}

// OrderCache keeps orders that reached a terminal status, which never change
// again. Pending orders are always read from the ledger.
type OrderCache struct {
	c *cache.Cache
}

// NewOrderCache creates a cache whose entries expire after ttl. A non-positive ttl
// keeps entries forever.
func NewOrderCache(ttl time.Duration) *OrderCache {
	if ttl <= 0 {
		ttl = cache.NoExpiration
	}
	return &OrderCache{c: cache.New(ttl, 10*time.Minute)}
}

func (c *OrderCache) get(code kernel.Bytes32) (OrderResponse, bool) {
	if c == nil {
		return OrderResponse{}, false
	}
	v, ok := c.c.Get(code.Hex())
	if !ok {
		return OrderResponse{}, false
	}
	return v.(OrderResponse), true
}

func (c *OrderCache) put(code kernel.Bytes32, o OrderResponse) {
	if c == nil || !o.Status.IsTerminal() {
		return
	}
	c.c.SetDefault(code.Hex(), o)
}

// Len returns the number of cached orders.
func (c *OrderCache) Len() int {
	if c == nil {
		return 0
	}
	return c.c.ItemCount()
}

func readOrder(ctx context.Context, reader Reader, oc *OrderCache, code kernel.Bytes32) (OrderResponse, error) {
	if cached, ok := oc.get(code); ok {
		return cached, nil
	}

	o, err := reader.GetOrder(ctx, code)
	if err != nil {
		return OrderResponse{}, err
	}

	resp := newOrderResponse(o)
	oc.put(code, resp)
	return resp, nil
}
