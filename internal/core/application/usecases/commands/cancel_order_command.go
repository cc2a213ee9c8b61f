package commands

import (
	"errors"

	"shipment/internal/pkg/guard"
)

var ErrCancelOrderCommandIsNotConstructed = errors.New(
	"CancelOrderCommand must be created via NewCancelOrderCommand constructor",
)

// CancelOrderCommand asks the ledger to mark the order with the given code cancelled.
// The code is not checked locally: an unknown or empty code is the ledger's to reject.
type CancelOrderCommand struct { //nolint:recvcheck //using for validation
	code string

	guard guard.ConstructorGuard
}

func NewCancelOrderCommand(code string) CancelOrderCommand {
	return CancelOrderCommand{
		code:  code,
		guard: guard.NewConstructorGuard(),
	}
}

func (c CancelOrderCommand) Validate() error {
	return c.guard.Validate(ErrCancelOrderCommandIsNotConstructed)
}

func (c CancelOrderCommand) Code() string {
	return c.code
}
