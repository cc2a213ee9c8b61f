package queries

import (
	"errors"

	"shipment/internal/core/domain/model/kernel"
	"shipment/internal/pkg/guard"
)

var ErrGetOrderQueryIsNotConstructed = errors.New(
	"GetOrderQuery must be created via NewGetOrderQuery constructor",
)

// GetOrderQuery reads a single order by its readable code.
//
// Example:
//
//	query, err := NewGetOrderQuery("First Order")
//	if err != nil {
//	    return err // code does not fit a ledger identifier
//	}
//	o, err := handler.Handle(ctx, query)
//	if errors.Is(err, errs.ErrObjectNotFound) {
//	    // no such order
//	}
type GetOrderQuery struct {
	code kernel.Bytes32

	guard guard.ConstructorGuard
}

func NewGetOrderQuery(code string) (GetOrderQuery, error) {
	encoded, err := kernel.Bytes32FromString(code)
	if err != nil {
		return GetOrderQuery{}, err
	}
	return GetOrderQuery{code: encoded, guard: guard.NewConstructorGuard()}, nil
}

func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

func (q GetOrderQuery) Code() kernel.Bytes32 {
	return q.code
}
