// Package errs provides standardized error types for the shipment application.
// It implements a consistent pattern for error creation, formatting, and unwrapping
// that is used throughout the application.
//
// The package includes several error types for common error scenarios:
//   - ValueIsRequiredError: For when a required value is missing
//   - ValueIsInvalidError: For when a value is invalid
//   - ValueIsOutOfRangeError: For when a value does not fit its bounds
//   - ObjectNotFoundError: For when an object cannot be found
//
// Two further types form the caller-facing taxonomy of ledger operations:
//   - ValidationError: input rejected before the ledger is contacted (bad request)
//   - ContractError: any failure reported by the ledger, message preserved (conflict)
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g., ErrValueIsRequired)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method for error wrapping/unwrapping support
package errs
