package order

import "shipment/internal/core/domain/model/kernel"

// EventKind distinguishes the two notifications the ledger emits.
type EventKind string

const (
	EventCreated       EventKind = "OrderCreated"
	EventStatusChanged EventKind = "StatusChanged"
)

// Event is emitted by every successful state change. Creator is set for
// EventCreated; From and To are set for EventStatusChanged.
type Event struct {
	Kind          EventKind
	Code          kernel.Bytes32
	DistributorID kernel.Bytes32
	ReceptorID    kernel.Bytes32
	Creator       kernel.Address
	From          Status
	To            Status
}

// NewCreatedEvent describes the creation of o.
func NewCreatedEvent(o *Order) Event {
	return Event{
		Kind:          EventCreated,
		Code:          o.Code(),
		DistributorID: o.DistributorID(),
		ReceptorID:    o.ReceptorID(),
		Creator:       o.Creator(),
	}
}

func newStatusChangedEvent(o *Order, from, to Status) Event {
	return Event{
		Kind:          EventStatusChanged,
		Code:          o.Code(),
		DistributorID: o.DistributorID(),
		ReceptorID:    o.ReceptorID(),
		From:          from,
		To:            to,
	}
}
