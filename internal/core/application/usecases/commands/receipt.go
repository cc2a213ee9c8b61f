package commands

import (
	"time"
)

// ShippingOrder is the order as submitted by the caller, in readable form.
type ShippingOrder struct {
	Code          string
	DistributorID string
	ReceptorID    string
}

// Receipt is returned for every confirmed operation. Order is only set for create.
type Receipt struct {
	TransactionHash string
	BlockNumber     uint64
	CreatedAt       time.Time
	Order           *ShippingOrder
}
