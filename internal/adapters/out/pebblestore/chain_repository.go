package pebblestore

import (
	"context"
	"fmt"

	"shipment/internal/adapters/out/ledgerdto"
	"shipment/internal/core/domain/model/kernel"
	"shipment/internal/core/domain/model/ledger"
)

type ChainRepository struct {
	rw readWriter
}

func (r *ChainRepository) Head(_ context.Context) (uint64, error) {
	return r.rw.getUint64(keyHead)
}

func (r *ChainRepository) SetHead(_ context.Context, height uint64) error {
	return r.rw.setUint64(keyHead, height)
}

func (r *ChainRepository) AddReceipt(_ context.Context, receipt *ledger.Receipt) error {
	data, err := ledgerdto.Marshal(receipt)
	if err != nil {
		return err
	}
	return r.rw.set(txKey(receipt.Hash), data)
}

func (r *ChainRepository) GetReceipt(_ context.Context, hash kernel.Hash) (*ledger.Receipt, error) {
	val, ok, err := r.rw.get(txKey(hash))
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%s: %w", hash, ledger.ErrTransactionNotFound)
	}
	return ledgerdto.Unmarshal(val)
}

func txKey(hash kernel.Hash) []byte {
	return []byte("tx/" + hash.String())
}
