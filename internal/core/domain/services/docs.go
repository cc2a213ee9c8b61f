// Package services provides the domain services of the shipment ledger.
//
// The package includes:
//   - ShipmentTracker: the ledger state machine that applies create, deliver and
//     cancel operations to the order registry
//
// ShipmentTracker holds no state of its own. It reads and writes through the
// OrderRepository it is given, so the caller decides the transaction boundary.
package services
