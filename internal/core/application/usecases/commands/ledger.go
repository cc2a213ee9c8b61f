// Package commands contains the operations that change ledger state.
// Every command follows the same pattern: validate locally, encode, submit to the
// ledger, await confirmation, report a receipt.
package commands

import (
	"context"
	"time"

	"shipment/internal/core/domain/model/ledger"
)

type (
	// Ledger is the part of ports.Ledger the orchestrator writes through.
	Ledger interface {
		Submit(ctx context.Context, call ledger.Call) (ledger.PendingTransaction, error)
		Await(ctx context.Context, tx ledger.PendingTransaction, confirmations uint64) (*ledger.Receipt, error)
	}

	// TransactionRecorder observes the outcome and latency of every operation.
	TransactionRecorder interface {
		RecordTransaction(method ledger.Method, outcome string, elapsed time.Duration)
	}
)

// Transaction outcomes reported to the TransactionRecorder.
const (
	OutcomeConfirmed = "confirmed"
	OutcomeRejected  = "rejected"
	OutcomeFailed    = "failed"
)
