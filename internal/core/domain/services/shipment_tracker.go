package services

import (
	"context"
	"errors"

	"shipment/internal/core/domain/model/kernel"
	"shipment/internal/core/domain/model/ledger"
	"shipment/internal/core/domain/model/order"
	"shipment/internal/core/ports"
)

// ShipmentTracker applies ledger calls to the order registry.
//
// Business rules:
//   - create rejects empty fields (code, then distributor id, then receptor id)
//     and then codes already registered
//   - deliver and cancel reject unknown codes, then callers other than the
//     creator, then orders that are no longer Pending
//   - a rejected call leaves the registry untouched
//
// Rejections are returned as the order package sentinels; any other error comes
// from the repository.
//
// Example usage:
//
//	tracker := services.NewShipmentTracker()
//	events, err := tracker.Execute(ctx, uow.OrderRepository(), sender, call)
//	if order.IsRejection(err) {
//	    return ledger.NewRevertError(err)
//	}
type ShipmentTracker struct{}

func NewShipmentTracker() ShipmentTracker {
	return ShipmentTracker{}
}

// Execute applies call on behalf of sender and returns the events it emitted.
func (t ShipmentTracker) Execute(
	ctx context.Context,
	orders ports.OrderRepository,
	sender kernel.Address,
	call ledger.Call,
) ([]order.Event, error) {
	if err := call.Method.Validate(); err != nil {
		return nil, err
	}

	switch call.Method {
	case ledger.MethodCreate:
		return t.create(ctx, orders, sender, call)
	case ledger.MethodDeliver:
		return t.changeStatus(ctx, orders, call.Code, (*order.Order).Deliver, sender)
	default:
		return t.changeStatus(ctx, orders, call.Code, (*order.Order).Cancel, sender)
	}
}

func (t ShipmentTracker) create(
	ctx context.Context,
	orders ports.OrderRepository,
	sender kernel.Address,
	call ledger.Call,
) ([]order.Event, error) {
	o, err := order.NewOrder(call.Code, call.DistributorID, call.ReceptorID, sender)
	if err != nil {
		return nil, err
	}

	_, err = orders.Get(ctx, call.Code)
	switch {
	case err == nil:
		return nil, order.ErrOrderAlreadyExists
	case !errors.Is(err, order.ErrOrderNotFound):
		return nil, err
	}

	if err := orders.Add(ctx, o); err != nil {
		return nil, err
	}
	return []order.Event{order.NewCreatedEvent(o)}, nil
}

func (t ShipmentTracker) changeStatus(
	ctx context.Context,
	orders ports.OrderRepository,
	code kernel.Bytes32,
	transition func(*order.Order, kernel.Address) (order.Event, error),
	sender kernel.Address,
) ([]order.Event, error) {
	o, err := orders.Get(ctx, code)
	if err != nil {
		return nil, err
	}

	event, err := transition(o, sender)
	if err != nil {
		return nil, err
	}

	if err := orders.Update(ctx, o); err != nil {
		return nil, err
	}
	return []order.Event{event}, nil
}
