// Package orderrepo persists the ledger's order registry in Postgres.
package orderrepo

import (
	"shipment/internal/core/domain/model/kernel"
	"shipment/internal/core/domain/model/order"
)

// OrderDTO is a row of the orders table. Seq is assigned by the database and
// records creation order.
type OrderDTO struct {
	Code          []byte `gorm:"type:bytea;primaryKey"`
	Seq           int64  `gorm:"->;column:seq"`
	DistributorID []byte `gorm:"type:bytea;not null"`
	ReceptorID    []byte `gorm:"type:bytea;not null"`
	Status        int    `gorm:"type:smallint;not null"`
	Creator       []byte `gorm:"type:bytea;not null"`
}

func (OrderDTO) TableName() string {
	return "orders"
}

func fromDomain(o *order.Order) OrderDTO {
	return OrderDTO{
		Code:          o.Code().Bytes(),
		DistributorID: o.DistributorID().Bytes(),
		ReceptorID:    o.ReceptorID().Bytes(),
		Status:        int(o.Status()),
		Creator:       o.Creator().Bytes(),
	}
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	code, err := kernel.Bytes32FromBytes(dto.Code)
	if err != nil {
		return nil, err
	}
	distributorID, err := kernel.Bytes32FromBytes(dto.DistributorID)
	if err != nil {
		return nil, err
	}
	receptorID, err := kernel.Bytes32FromBytes(dto.ReceptorID)
	if err != nil {
		return nil, err
	}
	creator, err := kernel.AddressFromBytes(dto.Creator)
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(code, distributorID, receptorID, order.Status(dto.Status), creator)
}
