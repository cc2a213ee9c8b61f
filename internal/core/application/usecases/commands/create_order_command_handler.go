package commands

import (
	"context"

	"shipment/internal/core/domain/model/kernel"
	"shipment/internal/core/domain/model/ledger"
	"shipment/internal/pkg/errs"
)

// CreateOrderCommandHandler submits create operations and echoes the submitted
// order in the receipt.
type CreateOrderCommandHandler struct {
	transactor *Transactor
}

func NewCreateOrderCommandHandler(transactor *Transactor) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{transactor: transactor}
}

// Handle returns either a receipt, an *errs.ValidationError or an *errs.ContractError.
func (h CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (*Receipt, error) {
	if err := cmd.Validate(); err != nil {
		return nil, errs.NewValidationError(ShippingOrderIsEmptyMessage)
	}

	o := cmd.Order()
	call, err := encodeCreateCall(o)
	if err != nil {
		return nil, errs.NewContractError(err)
	}

	receipt, err := h.transactor.Execute(ctx, call)
	if err != nil {
		return nil, err
	}

	receipt.Order = &o
	return receipt, nil
}

func encodeCreateCall(o ShippingOrder) (ledger.Call, error) {
	code, err := kernel.Bytes32FromString(o.Code)
	if err != nil {
		return ledger.Call{}, err
	}
	distributorID, err := kernel.Bytes32FromString(o.DistributorID)
	if err != nil {
		return ledger.Call{}, err
	}
	receptorID, err := kernel.Bytes32FromString(o.ReceptorID)
	if err != nil {
		return ledger.Call{}, err
	}
	return ledger.NewCreateCall(code, distributorID, receptorID), nil
}
