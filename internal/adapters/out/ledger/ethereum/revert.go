package ethereum

import (
	"errors"
	"strings"

	"shipment/internal/core/domain/model/ledger"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/rpc"
)

// revertFromError extracts the revert reason from a node error. It prefers the
// ABI-encoded revert data and falls back to the message. nil means err is not a revert.
func revertFromError(err error) *ledger.RevertError {
	var dataErr rpc.DataError
	if errors.As(err, &dataErr) {
		if data, ok := dataErr.ErrorData().(string); ok {
			if raw, decodeErr := hexutil.Decode(data); decodeErr == nil {
				if reason, unpackErr := abi.UnpackRevert(raw); unpackErr == nil {
					return &ledger.RevertError{Reason: reason}
				}
			}
		}
	}

	if strings.Contains(err.Error(), ledger.RevertPrefix) {
		return ledger.NewRevertErrorFromMessage(err.Error())
	}
	return nil
}
