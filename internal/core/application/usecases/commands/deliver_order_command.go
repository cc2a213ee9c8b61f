package commands

import (
	"errors"

	"shipment/internal/pkg/guard"
)

var ErrDeliverOrderCommandIsNotConstructed = errors.New(
	"DeliverOrderCommand must be created via NewDeliverOrderCommand constructor",
)

// DeliverOrderCommand asks the ledger to mark the order with the given code delivered.
// The code is not checked locally: an unknown or empty code is the ledger's to reject.
type DeliverOrderCommand struct { //nolint:recvcheck //using for validation
	code string

	guard guard.ConstructorGuard
}

func NewDeliverOrderCommand(code string) DeliverOrderCommand {
	return DeliverOrderCommand{
		code:  code,
		guard: guard.NewConstructorGuard(),
	}
}

func (c DeliverOrderCommand) Validate() error {
	return c.guard.Validate(ErrDeliverOrderCommandIsNotConstructed)
}

func (c DeliverOrderCommand) Code() string {
	return c.code
}
