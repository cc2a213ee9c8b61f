package queries

import (
	"context"
	"errors"

	"shipment/internal/core/domain/model/order"
	"shipment/internal/pkg/errs"
)

// GetOrderQueryHandler serves GetOrderQuery from the ledger, or from the cache for
// orders that are already delivered or cancelled.
type GetOrderQueryHandler struct {
	reader Reader
	cache  *OrderCache
}

// NewGetOrderQueryHandler creates the handler. cache may be nil.
func NewGetOrderQueryHandler(reader Reader, cache *OrderCache) GetOrderQueryHandler {
	return GetOrderQueryHandler{reader: reader, cache: cache}
}

// Handle returns an *errs.ObjectNotFoundError when the ledger has no such order.
func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (OrderResponse, error) {
	if err := query.Validate(); err != nil {
		return OrderResponse{}, err
	}

	resp, err := readOrder(ctx, h.reader, h.cache, query.Code())
	if errors.Is(err, order.ErrOrderNotFound) {
		return OrderResponse{}, errs.NewObjectNotFoundErrorWithCause("code", query.Code().String(), err)
	}
	return resp, err
}
