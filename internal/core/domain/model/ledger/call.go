// Package ledger models the operations submitted to an append-only ledger and
// what comes back from it.
package ledger

import (
	"fmt"

	"shipment/internal/core/domain/model/kernel"
	"shipment/internal/pkg/errs"
)

// Method names a state-changing ledger operation.
type Method string

const (
	MethodCreate  Method = "create"
	MethodDeliver Method = "deliver"
	MethodCancel  Method = "cancel"
)

// Validate rejects unknown methods.
func (m Method) Validate() error {
	switch m {
	case MethodCreate, MethodDeliver, MethodCancel:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("method", fmt.Errorf("%q is not a ledger method", string(m)))
	}
}

// Call is an encoded state-changing operation. DistributorID and ReceptorID are only
// meaningful for MethodCreate.
//
// Arguments are passed as given, empty identifiers included: deciding that an
// argument is unacceptable is the ledger's job.
type Call struct {
	Method        Method
	Code          kernel.Bytes32
	DistributorID kernel.Bytes32
	ReceptorID    kernel.Bytes32
}

func NewCreateCall(code, distributorID, receptorID kernel.Bytes32) Call {
	return Call{
		Method:        MethodCreate,
		Code:          code,
		DistributorID: distributorID,
		ReceptorID:    receptorID,
	}
}

func NewDeliverCall(code kernel.Bytes32) Call {
	return Call{Method: MethodDeliver, Code: code}
}

func NewCancelCall(code kernel.Bytes32) Call {
	return Call{Method: MethodCancel, Code: code}
}

// Encode returns a canonical byte form of the call, used to derive transaction hashes.
func (c Call) Encode() []byte {
	out := make([]byte, 0, len(c.Method)+3*kernel.Bytes32Length)
	out = append(out, string(c.Method)...)
	out = append(out, c.Code.Bytes()...)
	if c.Method == MethodCreate {
		out = append(out, c.DistributorID.Bytes()...)
		out = append(out, c.ReceptorID.Bytes()...)
	}
	return out
}
