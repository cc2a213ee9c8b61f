// Package kernel provides core domain primitives for the shipment tracker.
//
// The package includes:
//   - Bytes32: the fixed-width identifier the ledger stores for order codes,
//     distributor ids and receptor ids, with the zero value reserved for "empty"
//   - Address: the account identity that submits ledger operations and owns orders
//   - Hash: a ledger transaction hash
//
// All types are immutable values and safe for concurrent use.
package kernel
