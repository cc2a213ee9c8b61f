package commands

import (
	"context"

	"shipment/internal/core/domain/model/kernel"
	"shipment/internal/core/domain/model/ledger"
	"shipment/internal/pkg/errs"
)

// DeliverOrderCommandHandler submits deliver operations.
type DeliverOrderCommandHandler struct {
	transactor *Transactor
}

func NewDeliverOrderCommandHandler(transactor *Transactor) DeliverOrderCommandHandler {
	return DeliverOrderCommandHandler{transactor: transactor}
}

func (h DeliverOrderCommandHandler) Handle(ctx context.Context, cmd DeliverOrderCommand) (*Receipt, error) {
	if err := cmd.Validate(); err != nil {
		return nil, errs.NewValidationError(err.Error())
	}
	return changeStatus(ctx, h.transactor, cmd.Code(), ledger.NewDeliverCall)
}

// CancelOrderCommandHandler submits cancel operations.
type CancelOrderCommandHandler struct {
	transactor *Transactor
}

func NewCancelOrderCommandHandler(transactor *Transactor) CancelOrderCommandHandler {
	return CancelOrderCommandHandler{transactor: transactor}
}

func (h CancelOrderCommandHandler) Handle(ctx context.Context, cmd CancelOrderCommand) (*Receipt, error) {
	if err := cmd.Validate(); err != nil {
		return nil, errs.NewValidationError(err.Error())
	}
	return changeStatus(ctx, h.transactor, cmd.Code(), ledger.NewCancelCall)
}

func changeStatus(
	ctx context.Context,
	transactor *Transactor,
	rawCode string,
	newCall func(kernel.Bytes32) ledger.Call,
) (*Receipt, error) {
	code, err := kernel.Bytes32FromString(rawCode)
	if err != nil {
		return nil, errs.NewContractError(err)
	}
	return transactor.Execute(ctx, newCall(code))
}
