package order

import "shipment/internal/core/domain/model/kernel"

// Order is a shipping order as recorded on the ledger. It is keyed by its code,
// which is unique across the whole ledger.
//
// Order follows these invariants:
//   - Code, distributor id and receptor id are never the empty identifier
//   - Creator is the identity that submitted the create operation and never changes
//   - Status starts Pending and changes at most once
//   - Can only be created through NewOrder or RestoreOrder
type Order struct {
	code          kernel.Bytes32
	distributorID kernel.Bytes32
	receptorID    kernel.Bytes32
	status        Status
	creator       kernel.Address

	isConstructed bool
}

// NewOrder creates a Pending order owned by creator.
//
// Empty fields are checked in declaration order and the first one found is
// reported, the same way the ledger reports a single revert reason:
//
//	o, err := order.NewOrder(code, distributorID, receptorID, sender)
//	if errors.Is(err, order.ErrDistributorIDIsEmpty) {
//	    // code was fine, distributor id was not
//	}
func NewOrder(code, distributorID, receptorID kernel.Bytes32, creator kernel.Address) (*Order, error) {
	switch {
	case code.IsZero():
		return nil, ErrCodeIsEmpty
	case distributorID.IsZero():
		return nil, ErrDistributorIDIsEmpty
	case receptorID.IsZero():
		return nil, ErrReceptorIDIsEmpty
	}
	if err := creator.Validate(); err != nil {
		return nil, err
	}

	return &Order{
		code:          code,
		distributorID: distributorID,
		receptorID:    receptorID,
		status:        Pending,
		creator:       creator,
		isConstructed: true,
	}, nil
}

// RestoreOrder rebuilds an order read back from storage. Unlike NewOrder it accepts
// any valid status.
func RestoreOrder(
	code, distributorID, receptorID kernel.Bytes32,
	status Status,
	creator kernel.Address,
) (*Order, error) {
	o, err := NewOrder(code, distributorID, receptorID, creator)
	if err != nil {
		return nil, err
	}
	if err := status.Validate(); err != nil {
		return nil, err
	}
	o.status = status
	return o, nil
}

// Validate ensures the order was built through a constructor.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by code.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.code.IsEqual(other.code)
}

func (o *Order) Code() kernel.Bytes32          { return o.code }
func (o *Order) DistributorID() kernel.Bytes32 { return o.distributorID }
func (o *Order) ReceptorID() kernel.Bytes32    { return o.receptorID }
func (o *Order) Status() Status                { return o.status }
func (o *Order) Creator() kernel.Address       { return o.creator }

// Deliver marks a pending order Delivered on behalf of caller.
//
// Ownership is checked before status, so a stranger touching a terminal order
// learns only that they are not the owner.
func (o *Order) Deliver(caller kernel.Address) (Event, error) {
	return o.transition(caller, Status.Deliver)
}

// Cancel marks a pending order Cancelled on behalf of caller.
func (o *Order) Cancel(caller kernel.Address) (Event, error) {
	return o.transition(caller, Status.Cancel)
}

func (o *Order) transition(caller kernel.Address, next func(Status) (Status, error)) (Event, error) {
	if !o.creator.IsEqual(caller) {
		return Event{}, ErrNotOwner
	}

	to, err := next(o.status)
	if err != nil {
		return Event{}, err
	}

	from := o.status
	o.status = to
	return newStatusChangedEvent(o, from, to), nil
}
