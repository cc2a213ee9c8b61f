package order

import "errors"

// Rejection reasons. Their messages are what callers see when the ledger refuses
// an operation, so they are part of the external contract.
var (
	ErrCodeIsEmpty          = errors.New("Shipping order code is empty")
	ErrDistributorIDIsEmpty = errors.New("Shipping order distributorId is empty")
	ErrReceptorIDIsEmpty    = errors.New("Shipping order receptorId is empty")
	ErrOrderAlreadyExists   = errors.New("Shipping order already exists")
	ErrOrderNotFound        = errors.New("Non existent shipping order")
	ErrNotOwner             = errors.New("Not the order owner. Only the owner can change the status")
	ErrNotPending           = errors.New("Shipping order is not in pending status")

	// ErrOrderIsNotConstructed is returned when an Order was not created through
	// NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder constructor")
)

var rejections = []error{
	ErrCodeIsEmpty,
	ErrDistributorIDIsEmpty,
	ErrReceptorIDIsEmpty,
	ErrOrderAlreadyExists,
	ErrOrderNotFound,
	ErrNotOwner,
	ErrNotPending,
}

// RejectionFromReason maps a ledger revert reason back to its sentinel, so that
// reasons decoded from a remote ledger compare equal with errors.Is.
func RejectionFromReason(reason string) (error, bool) {
	for _, r := range rejections {
		if r.Error() == reason {
			return r, true
		}
	}
	return nil, false
}

// IsRejection reports whether err is one of the rejection reasons.
func IsRejection(err error) bool {
	_, ok := AsRejection(err)
	return ok
}

// AsRejection returns the rejection sentinel err wraps, if any.
func AsRejection(err error) (error, bool) {
	for _, r := range rejections {
		if errors.Is(err, r) {
			return r, true
		}
	}
	return nil, false
}
