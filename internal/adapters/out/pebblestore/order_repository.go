package pebblestore

import (
	"context"
	"fmt"

	"shipment/internal/core/domain/model/kernel"
	"shipment/internal/core/domain/model/order"

	"github.com/cockroachdb/pebble"
	"github.com/ethereum/go-ethereum/common"
)

// record encoding: [distributor:32][receptor:32][status:1][creator:20]
const recordLength = 2*kernel.Bytes32Length + 1 + common.AddressLength

type OrderRepository struct {
	rw readWriter
}

func (r *OrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	key := orderKey(aggregate.Code())
	if _, exists, err := r.rw.get(key); err != nil {
		return err
	} else if exists {
		return order.ErrOrderAlreadyExists
	}

	count, err := r.rw.getUint64(keyOrderCount)
	if err != nil {
		return err
	}

	if err := r.rw.set(key, encodeOrder(aggregate)); err != nil {
		return err
	}
	if err := r.rw.set(seqKey(count), aggregate.Code().Bytes()); err != nil {
		return err
	}
	return r.rw.setUint64(keyOrderCount, count+1)
}

func (r *OrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	key := orderKey(aggregate.Code())
	if _, exists, err := r.rw.get(key); err != nil {
		return err
	} else if !exists {
		return fmt.Errorf("update %s: %w", aggregate.Code(), order.ErrOrderNotFound)
	}
	return r.rw.set(key, encodeOrder(aggregate))
}

func (r *OrderRepository) Get(_ context.Context, code kernel.Bytes32) (*order.Order, error) {
	val, ok, err := r.rw.get(orderKey(code))
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("get %s: %w", code, order.ErrOrderNotFound)
	}
	return decodeOrder(code, val)
}

func (r *OrderRepository) Codes(_ context.Context) ([]kernel.Bytes32, error) {
	iter, err := r.rw.r.NewIter(&pebble.IterOptions{
		LowerBound: []byte("seq/"),
		UpperBound: []byte("seq/~"),
	})
	if err != nil {
		return nil, err
	}
	defer iter.Close()

	codes := make([]kernel.Bytes32, 0)
	for iter.First(); iter.Valid(); iter.Next() {
		code, err := kernel.Bytes32FromBytes(iter.Value())
		if err != nil {
			return nil, fmt.Errorf("corrupt index entry %s: %w", iter.Key(), err)
		}
		codes = append(codes, code)
	}
	return codes, iter.Error()
}

func orderKey(code kernel.Bytes32) []byte {
	return []byte("order/" + code.Hex())
}

func seqKey(index uint64) []byte {
	return []byte(fmt.Sprintf("seq/%020d", index))
}

func encodeOrder(o *order.Order) []byte {
	buf := make([]byte, 0, recordLength)
	buf = append(buf, o.DistributorID().Bytes()...)
	buf = append(buf, o.ReceptorID().Bytes()...)
	buf = append(buf, byte(o.Status()))
	buf = append(buf, o.Creator().Bytes()...)
	return buf
}

func decodeOrder(code kernel.Bytes32, b []byte) (*order.Order, error) {
	if len(b) != recordLength {
		return nil, fmt.Errorf("invalid order record length %d", len(b))
	}

	distributorID, err := kernel.Bytes32FromBytes(b[0:32])
	if err != nil {
		return nil, err
	}
	receptorID, err := kernel.Bytes32FromBytes(b[32:64])
	if err != nil {
		return nil, err
	}
	creator, err := kernel.AddressFromBytes(b[65:])
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(code, distributorID, receptorID, order.Status(b[64]), creator)
}
