// Package guard provides ConstructorGuard, a marker that lets commands, queries and
// value objects detect that they were built as a zero value instead of through
// their constructor.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when no specific error is supplied.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard is embedded in types whose zero value is not usable.
// Only NewConstructorGuard produces a guard that validates.
//
// Example usage:
//
//	var ErrDeliverOrderCommandIsNotConstructed = errors.New("DeliverOrderCommand must be created via NewDeliverOrderCommand")
//
//	type DeliverOrderCommand struct {
//	    code  string
//	    guard guard.ConstructorGuard
//	}
//
//	func (c DeliverOrderCommand) Validate() error {
//	    return c.guard.Validate(ErrDeliverOrderCommandIsNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard returns a guard marked as constructed.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns validationError (or ErrDefaultConstructorGuard when it is nil)
// if the guard is a zero value, and nil otherwise.
func (g ConstructorGuard) Validate(validationError error) error {
	if validationError == nil {
		validationError = ErrDefaultConstructorGuard
	}
	if !g.isConstructed {
		return validationError
	}
	return nil
}
