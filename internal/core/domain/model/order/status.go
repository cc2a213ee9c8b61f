package order

import (
	"fmt"

	"shipment/internal/pkg/errs"
)

// Status represents the lifecycle state of a shipping order.
//
// State transitions:
//
//	          ┌──> Delivered
//	Pending ──┤
//	          └──> Cancelled
//
// Delivered and Cancelled are terminal.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	Unknown Status = iota

	// Pending is the initial status of every order.
	Pending

	// Delivered is terminal.
	Delivered

	// Cancelled is terminal.
	Cancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "Unknown",
		Pending:   "Pending",
		Delivered: "Delivered",
		Cancelled: "Cancelled",
	}
}

// Validate checks that s is Pending, Delivered or Cancelled.
func (s Status) Validate() error {
	if s != Pending && s != Delivered && s != Cancelled {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String implements fmt.Stringer. Invalid values render as "Unknown".
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// ParseStatus is the inverse of String for valid statuses.
func ParseStatus(s string) (Status, error) {
	for status, str := range getStatusStrings() {
		if str == s && status != Unknown {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%q is not a valid status", s))
}

// IsTerminal reports whether no further transition is possible.
func (s Status) IsTerminal() bool {
	return s == Delivered || s == Cancelled
}

// Deliver transitions Pending -> Delivered.
func (s Status) Deliver() (Status, error) {
	if s != Pending {
		return Unknown, ErrNotPending
	}
	return Delivered, nil
}

// Cancel transitions Pending -> Cancelled.
func (s Status) Cancel() (Status, error) {
	if s != Pending {
		return Unknown, ErrNotPending
	}
	return Cancelled, nil
}
