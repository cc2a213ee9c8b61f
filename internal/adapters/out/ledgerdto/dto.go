// Package ledgerdto maps ledger receipts to the JSON documents the local ledger
// stores keep them as.
package ledgerdto

import (
	"encoding/json"
	"fmt"

	"shipment/internal/core/domain/model/kernel"
	"shipment/internal/core/domain/model/ledger"
	"shipment/internal/core/domain/model/order"
)

// EventDTO is the stored form of an order event. Identifiers are hex encoded.
type EventDTO struct {
	Kind          string `json:"kind"`
	Code          string `json:"code"`
	DistributorID string `json:"distributorId"`
	ReceptorID    string `json:"receptorId"`
	Creator       string `json:"creator,omitempty"`
	From          int    `json:"from,omitempty"`
	To            int    `json:"to,omitempty"`
}

// ReceiptDTO is the stored form of a receipt.
type ReceiptDTO struct {
	Hash          string     `json:"hash"`
	BlockNumber   uint64     `json:"blockNumber"`
	From          string     `json:"from"`
	Method        string     `json:"method"`
	Code          string     `json:"code"`
	DistributorID string     `json:"distributorId,omitempty"`
	ReceptorID    string     `json:"receptorId,omitempty"`
	Events        []EventDTO `json:"events"`
}

func EventsFromDomain(events []order.Event) []EventDTO {
	out := make([]EventDTO, 0, len(events))
	for _, e := range events {
		dto := EventDTO{
			Kind:          string(e.Kind),
			Code:          e.Code.Hex(),
			DistributorID: e.DistributorID.Hex(),
			ReceptorID:    e.ReceptorID.Hex(),
			From:          int(e.From),
			To:            int(e.To),
		}
		if e.Kind == order.EventCreated {
			dto.Creator = e.Creator.String()
		}
		out = append(out, dto)
	}
	return out
}

func EventsToDomain(dtos []EventDTO) ([]order.Event, error) {
	out := make([]order.Event, 0, len(dtos))
	for _, dto := range dtos {
		e := order.Event{
			Kind: order.EventKind(dto.Kind),
			From: order.Status(dto.From),
			To:   order.Status(dto.To),
		}

		var err error
		if e.Code, err = kernel.Bytes32FromHex(dto.Code); err != nil {
			return nil, err
		}
		if e.DistributorID, err = kernel.Bytes32FromHex(dto.DistributorID); err != nil {
			return nil, err
		}
		if e.ReceptorID, err = kernel.Bytes32FromHex(dto.ReceptorID); err != nil {
			return nil, err
		}
		if dto.Creator != "" {
			if e.Creator, err = kernel.AddressFromHex(dto.Creator); err != nil {
				return nil, err
			}
		}
		out = append(out, e)
	}
	return out, nil
}

func FromDomain(r *ledger.Receipt) ReceiptDTO {
	dto := ReceiptDTO{
		Hash:        r.Hash.String(),
		BlockNumber: r.BlockNumber,
		From:        r.From.String(),
		Method:      string(r.Call.Method),
		Code:        r.Call.Code.Hex(),
		Events:      EventsFromDomain(r.Events),
	}
	if r.Call.Method == ledger.MethodCreate {
		dto.DistributorID = r.Call.DistributorID.Hex()
		dto.ReceptorID = r.Call.ReceptorID.Hex()
	}
	return dto
}

func ToDomain(dto ReceiptDTO) (*ledger.Receipt, error) {
	from, err := kernel.AddressFromHex(dto.From)
	if err != nil {
		return nil, fmt.Errorf("receipt %s sender: %w", dto.Hash, err)
	}

	call := ledger.Call{Method: ledger.Method(dto.Method)}
	if err := call.Method.Validate(); err != nil {
		return nil, err
	}
	if call.Code, err = kernel.Bytes32FromHex(dto.Code); err != nil {
		return nil, err
	}
	if call.Method == ledger.MethodCreate {
		if call.DistributorID, err = kernel.Bytes32FromHex(dto.DistributorID); err != nil {
			return nil, err
		}
		if call.ReceptorID, err = kernel.Bytes32FromHex(dto.ReceptorID); err != nil {
			return nil, err
		}
	}

	events, err := EventsToDomain(dto.Events)
	if err != nil {
		return nil, err
	}

	return &ledger.Receipt{
		Hash:        kernel.HashFromHex(dto.Hash),
		BlockNumber: dto.BlockNumber,
		From:        from,
		Call:        call,
		Events:      events,
	}, nil
}

// Marshal encodes a receipt as JSON.
func Marshal(r *ledger.Receipt) ([]byte, error) {
	return json.Marshal(FromDomain(r))
}

// Unmarshal decodes a receipt written by Marshal.
func Unmarshal(data []byte) (*ledger.Receipt, error) {
	var dto ReceiptDTO
	if err := json.Unmarshal(data, &dto); err != nil {
		return nil, err
	}
	return ToDomain(dto)
}
