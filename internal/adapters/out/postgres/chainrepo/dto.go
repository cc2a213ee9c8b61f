// Package chainrepo persists the block head and transaction receipts of the
// local ledger in Postgres.
package chainrepo

import (
	"shipment/internal/adapters/out/ledgerdto"
	"shipment/internal/core/domain/model/kernel"
	"shipment/internal/core/domain/model/ledger"
)

// HeadDTO is the single row holding the last sealed block.
type HeadDTO struct {
	ID     int16  `gorm:"primaryKey"`
	Height uint64 `gorm:"not null"`
}

func (HeadDTO) TableName() string {
	return "ledger_head"
}

const headID = 1

// TransactionDTO is a row of ledger_transactions.
type TransactionDTO struct {
	Hash          []byte               `gorm:"type:bytea;primaryKey"`
	BlockNumber   uint64               `gorm:"not null;uniqueIndex"`
	Sender        []byte               `gorm:"type:bytea;not null"`
	Method        string               `gorm:"not null"`
	Code          []byte               `gorm:"type:bytea;not null"`
	DistributorID []byte               `gorm:"type:bytea"`
	ReceptorID    []byte               `gorm:"type:bytea"`
	Events        []ledgerdto.EventDTO `gorm:"type:jsonb;serializer:json;not null"`
}

func (TransactionDTO) TableName() string {
	return "ledger_transactions"
}

func fromDomain(r *ledger.Receipt) TransactionDTO {
	dto := TransactionDTO{
		Hash:        r.Hash.Bytes(),
		BlockNumber: r.BlockNumber,
		Sender:      r.From.Bytes(),
		Method:      string(r.Call.Method),
		Code:        r.Call.Code.Bytes(),
		Events:      ledgerdto.EventsFromDomain(r.Events),
	}
	if r.Call.Method == ledger.MethodCreate {
		dto.DistributorID = r.Call.DistributorID.Bytes()
		dto.ReceptorID = r.Call.ReceptorID.Bytes()
	}
	return dto
}

func toDomain(dto TransactionDTO) (*ledger.Receipt, error) {
	from, err := kernel.AddressFromBytes(dto.Sender)
	if err != nil {
		return nil, err
	}

	call := ledger.Call{Method: ledger.Method(dto.Method)}
	if err = call.Method.Validate(); err != nil {
		return nil, err
	}
	if call.Code, err = kernel.Bytes32FromBytes(dto.Code); err != nil {
		return nil, err
	}
	if call.Method == ledger.MethodCreate {
		if call.DistributorID, err = kernel.Bytes32FromBytes(dto.DistributorID); err != nil {
			return nil, err
		}
		if call.ReceptorID, err = kernel.Bytes32FromBytes(dto.ReceptorID); err != nil {
			return nil, err
		}
	}

	events, err := ledgerdto.EventsToDomain(dto.Events)
	if err != nil {
		return nil, err
	}

	var hash [32]byte
	copy(hash[:], dto.Hash)
	return &ledger.Receipt{
		Hash:        kernel.HashFromCommon(hash),
		BlockNumber: dto.BlockNumber,
		From:        from,
		Call:        call,
		Events:      events,
	}, nil
}
