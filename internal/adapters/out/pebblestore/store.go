// Package pebblestore keeps the local ledger in an embedded Pebble database.
//
// Layout:
//
//	order/<code hex>       distributor | receptor | status | creator
//	seq/<20 digit index>   code, in creation order
//	meta/order_count       number of orders
//	meta/head              last sealed block
//	tx/<hash hex>          receipt document
//
// Writers are serialized by the store. A unit of work stages its writes in an
// indexed batch, so it reads its own writes, and commits them with one synced write.
package pebblestore

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"

	"shipment/internal/core/ports"

	"github.com/cockroachdb/pebble"
	"github.com/cockroachdb/pebble/vfs"
)

var (
	keyOrderCount = []byte("meta/order_count")
	keyHead       = []byte("meta/head")
)

// ErrNoTransaction is returned by writes outside Begin/Commit.
var ErrNoTransaction = errors.New("pebblestore: no active transaction")

type Store struct {
	db *pebble.DB

	// writer holds a token while a unit of work is open.
	writer chan struct{}
}

// Open opens or creates a store in dir.
func Open(dir string) (*Store, error) {
	return open(dir, &pebble.Options{})
}

// OpenInMemory creates a store that lives only as long as the process.
func OpenInMemory() (*Store, error) {
	return open("", &pebble.Options{FS: vfs.NewMem()})
}

func open(dir string, opts *pebble.Options) (*Store, error) {
	db, err := pebble.Open(dir, opts)
	if err != nil {
		return nil, fmt.Errorf("open pebble store: %w", err)
	}
	return &Store{db: db, writer: make(chan struct{}, 1)}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// UnitOfWorkFactory implements ports.UnitOfWorkFactory over a Store.
type UnitOfWorkFactory struct {
	store *Store
}

func NewUnitOfWorkFactory(store *Store) *UnitOfWorkFactory {
	return &UnitOfWorkFactory{store: store}
}

func (f *UnitOfWorkFactory) Create() ports.UnitOfWork {
	return &UnitOfWork{store: f.store}
}

// UnitOfWork stages writes in a batch. Repositories obtained outside Begin read
// committed state directly.
type UnitOfWork struct {
	store *Store
	batch *pebble.Batch
}

func (u *UnitOfWork) Begin(ctx context.Context) error {
	if u.batch != nil {
		return nil
	}

	select {
	case u.store.writer <- struct{}{}:
	case <-ctx.Done():
		return ctx.Err()
	}

	u.batch = u.store.db.NewIndexedBatch()
	return nil
}

func (u *UnitOfWork) Commit(_ context.Context) error {
	if u.batch == nil {
		return ErrNoTransaction
	}
	defer u.release()

	return u.batch.Commit(pebble.Sync)
}

func (u *UnitOfWork) Rollback(_ context.Context) error {
	if u.batch == nil {
		return nil
	}
	u.release()
	return nil
}

func (u *UnitOfWork) release() {
	_ = u.batch.Close()
	u.batch = nil
	<-u.store.writer
}

func (u *UnitOfWork) OrderRepository() ports.OrderRepository {
	return &OrderRepository{rw: u.readWriter()}
}

func (u *UnitOfWork) ChainRepository() ports.ChainRepository {
	return &ChainRepository{rw: u.readWriter()}
}

func (u *UnitOfWork) readWriter() readWriter {
	if u.batch != nil {
		return readWriter{r: u.batch, w: u.batch}
	}
	return readWriter{r: u.store.db}
}

// readWriter pairs the reader a repository uses with the batch it writes to.
// w is nil outside a transaction.
type readWriter struct {
	r pebble.Reader
	w *pebble.Batch
}

func (rw readWriter) get(key []byte) ([]byte, bool, error) {
	val, closer, err := rw.r.Get(key)
	if errors.Is(err, pebble.ErrNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	defer closer.Close()

	out := make([]byte, len(val))
	copy(out, val)
	return out, true, nil
}

func (rw readWriter) set(key, value []byte) error {
	if rw.w == nil {
		return ErrNoTransaction
	}
	return rw.w.Set(key, value, nil)
}

func (rw readWriter) getUint64(key []byte) (uint64, error) {
	val, ok, err := rw.get(key)
	if err != nil || !ok {
		return 0, err
	}
	if len(val) != 8 {
		return 0, fmt.Errorf("corrupt counter %s", key)
	}
	return binary.BigEndian.Uint64(val), nil
}

func (rw readWriter) setUint64(key []byte, v uint64) error {
	buf := make([]byte, 8)
	binary.BigEndian.PutUint64(buf, v)
	return rw.set(key, buf)
}
