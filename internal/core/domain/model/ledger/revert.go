package ledger

import (
	"errors"
	"strings"

	"shipment/internal/core/domain/model/order"
)

// RevertPrefix precedes every revert reason in ledger error messages.
const RevertPrefix = "execution reverted: "

// ErrTransactionFailed is the reason reported when a mined transaction failed
// without a decodable reason.
var ErrTransactionFailed = errors.New("transaction failed")

// RevertError is returned when the ledger refuses an operation. Reason is the
// ledger's message; Error carries it in the form clients are used to matching on.
type RevertError struct {
	Reason string
}

// NewRevertError wraps a rejection raised by the state machine.
func NewRevertError(cause error) *RevertError {
	return &RevertError{Reason: cause.Error()}
}

// NewRevertErrorFromMessage parses an error message returned by a remote ledger,
// with or without the revert prefix.
func NewRevertErrorFromMessage(msg string) *RevertError {
	if i := strings.Index(msg, RevertPrefix); i >= 0 {
		msg = msg[i+len(RevertPrefix):]
	}
	return &RevertError{Reason: msg}
}

func (e *RevertError) Error() string {
	return RevertPrefix + e.Reason
}

// Unwrap links the reason back to its order rejection sentinel, when it has one.
func (e *RevertError) Unwrap() error {
	if err, ok := order.RejectionFromReason(e.Reason); ok {
		return err
	}
	if e.Reason == ErrTransactionFailed.Error() {
		return ErrTransactionFailed
	}
	return nil
}
