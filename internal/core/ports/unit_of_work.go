package ports

import (
	"context"
)

// UnitOfWorkFactory creates new UnitOfWork instances for each ledger operation.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork is the transaction boundary of a local ledger. Writers are serialized:
// Begin takes the ledger's write lock and holds it until Commit or Rollback.
type UnitOfWork interface {
	// Begin starts a transaction and takes the write lock.
	Begin(ctx context.Context) error

	// Commit makes every change since Begin durable and releases the lock.
	Commit(ctx context.Context) error

	// Rollback discards every change since Begin and releases the lock.
	// Calling it after Commit is a no-op.
	Rollback(ctx context.Context) error

	// OrderRepository returns a repository bound to the current transaction.
	OrderRepository() OrderRepository

	// ChainRepository returns a repository bound to the current transaction.
	ChainRepository() ChainRepository
}
