// Package order provides the shipping order aggregate recorded on the ledger.
//
// The package includes:
//   - Order: the record keyed by its unique code, with distributor, receptor,
//     status and creator
//   - Status: the lifecycle state machine Pending -> Delivered | Cancelled
//   - Event: the OrderCreated and StatusChanged notifications emitted on change
//   - the rejection reasons reported when an operation breaks an invariant
//
// Key business rules:
//   - Code, distributor id and receptor id must be non-empty at creation
//   - Orders start Pending and change status exactly once, to Delivered or Cancelled
//   - Only the creator may change an order's status
//   - Orders are never deleted
package order
