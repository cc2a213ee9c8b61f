package queries

import (
	"context"
	"fmt"
)

// GetAllOrdersQueryHandler lists the registry by reading the code index and then
// each order.
type GetAllOrdersQueryHandler struct {
	reader Reader
	cache  *OrderCache
}

func NewGetAllOrdersQueryHandler(reader Reader, cache *OrderCache) GetAllOrdersQueryHandler {
	return GetAllOrdersQueryHandler{reader: reader, cache: cache}
}

func (h GetAllOrdersQueryHandler) Handle(ctx context.Context, query GetAllOrdersQuery) ([]OrderResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	codes, err := h.reader.OrderCodes(ctx)
	if err != nil {
		return nil, err
	}

	orders := make([]OrderResponse, 0, len(codes))
	for _, code := range codes {
		resp, err := readOrder(ctx, h.reader, h.cache, code)
		if err != nil {
			return nil, fmt.Errorf("read order %s: %w", code, err)
		}
		orders = append(orders, resp)
	}
	return orders, nil
}
