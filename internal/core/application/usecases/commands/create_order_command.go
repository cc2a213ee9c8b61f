package commands

import (
	"errors"

	"shipment/internal/pkg/errs"
	"shipment/internal/pkg/guard"
)

// ShippingOrderIsEmptyMessage is the message of the ValidationError returned for a create
// request that carries no field at all.
const ShippingOrderIsEmptyMessage = "Shipping order is empty"

// Keys of a create request record.
const (
	FieldCode          = "code"
	FieldDistributorID = "distributorId"
	FieldReceptorID    = "receptorId"
)

var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// CreateOrderCommand registers a new shipping order.
//
// Only a record without any key is rejected here. Any other record, even one
// holding only empty or unknown keys, is passed through so the ledger can name
// the missing field.
//
// Example:
//
//	cmd, err := NewCreateOrderCommand(map[string]string{
//	    FieldCode:          "First Order",
//	    FieldDistributorID: "distributor 1",
//	    FieldReceptorID:    "receptor 1",
//	})
//	if err != nil {
//	    return err // *errs.ValidationError
//	}
//	receipt, err := handler.Handle(ctx, cmd)
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	order ShippingOrder

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand builds the command from the record a caller submitted.
// Missing known keys read as empty strings; unknown keys are ignored.
func NewCreateOrderCommand(record map[string]string) (CreateOrderCommand, error) {
	if len(record) == 0 {
		return CreateOrderCommand{}, errs.NewValidationError(ShippingOrderIsEmptyMessage)
	}

	return CreateOrderCommand{
		order: ShippingOrder{
			Code:          record[FieldCode],
			DistributorID: record[FieldDistributorID],
			ReceptorID:    record[FieldReceptorID],
		},
		guard: guard.NewConstructorGuard(),
	}, nil
}

func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

func (c CreateOrderCommand) Order() ShippingOrder {
	return c.order
}
