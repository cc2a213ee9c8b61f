package ethereum

import (
	"fmt"

	"shipment/internal/core/domain/model/order"
)

// The contract numbers statuses from zero: Pending=0, Delivered=1, Cancelled=2.

func statusFromWire(s uint8) (order.Status, error) {
	status := order.Status(int(s) + 1)
	if err := status.Validate(); err != nil {
		return order.Unknown, fmt.Errorf("wire status %d: %w", s, err)
	}
	return status, nil
}
