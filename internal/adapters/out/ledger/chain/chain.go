// Package chain implements an append-only ledger on top of a unit-of-work store.
//
// Every accepted transaction is sealed in a block of its own as soon as it is
// submitted, the way a development node automines. Rejected transactions leave no
// trace. Empty blocks can be sealed with Mine to let confirmations accrue.
package chain

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"shipment/internal/core/domain/model/kernel"
	"shipment/internal/core/domain/model/ledger"
	"shipment/internal/core/domain/model/order"
	"shipment/internal/core/domain/services"
	"shipment/internal/core/ports"
	"shipment/internal/pkg/confirm"
)

// BlockObserver is told about every sealed block.
type BlockObserver interface {
	SetBlockHeight(height uint64)
}

type Config struct {
	// PollInterval is how often Await checks for progress.
	PollInterval time.Duration

	Observer BlockObserver
	Logger   *slog.Logger
}

type Chain struct {
	uowFactory   ports.UnitOfWorkFactory
	tracker      services.ShipmentTracker
	pollInterval time.Duration
	observer     BlockObserver
	logger       *slog.Logger
}

func New(uowFactory ports.UnitOfWorkFactory, cfg Config) *Chain {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	interval := cfg.PollInterval
	if interval <= 0 {
		interval = confirm.DefaultInterval
	}

	return &Chain{
		uowFactory:   uowFactory,
		tracker:      services.NewShipmentTracker(),
		pollInterval: interval,
		observer:     cfg.Observer,
		logger:       logger.With("component", "chain"),
	}
}

// Connect returns a client that signs every call as sender.
func (c *Chain) Connect(sender kernel.Address) *Client {
	return &Client{chain: c, sender: sender}
}

// Head returns the number of the last sealed block.
func (c *Chain) Head(ctx context.Context) (uint64, error) {
	return c.uowFactory.Create().ChainRepository().Head(ctx)
}

// Mine seals an empty block and returns its number.
func (c *Chain) Mine(ctx context.Context) (uint64, error) {
	uow := c.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	chain := uow.ChainRepository()
	head, err := chain.Head(ctx)
	if err != nil {
		return 0, err
	}

	block := head + 1
	if err = chain.SetHead(ctx, block); err != nil {
		return 0, err
	}
	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	c.sealed(block)
	return block, nil
}

func (c *Chain) submit(ctx context.Context, sender kernel.Address, call ledger.Call) (ledger.PendingTransaction, error) {
	uow := c.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return ledger.PendingTransaction{}, err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	chain := uow.ChainRepository()
	head, err := chain.Head(ctx)
	if err != nil {
		return ledger.PendingTransaction{}, err
	}

	events, err := c.tracker.Execute(ctx, uow.OrderRepository(), sender, call)
	if err != nil {
		if reason, ok := order.AsRejection(err); ok {
			c.logger.Debug("transaction reverted",
				"method", string(call.Method),
				"sender", sender.String(),
				"reason", reason.Error(),
			)
			return ledger.PendingTransaction{}, ledger.NewRevertError(reason)
		}
		return ledger.PendingTransaction{}, err
	}

	block := head + 1
	receipt := &ledger.Receipt{
		Hash:        transactionHash(block, sender, call),
		BlockNumber: block,
		From:        sender,
		Call:        call,
		Events:      events,
	}

	if err = chain.AddReceipt(ctx, receipt); err != nil {
		return ledger.PendingTransaction{}, err
	}
	if err = chain.SetHead(ctx, block); err != nil {
		return ledger.PendingTransaction{}, err
	}
	if err = uow.Commit(ctx); err != nil {
		return ledger.PendingTransaction{}, err
	}

	c.sealed(block)
	c.logger.Debug("transaction sealed",
		"method", string(call.Method),
		"hash", receipt.Hash.String(),
		"block", block,
	)
	return ledger.PendingTransaction{Hash: receipt.Hash}, nil
}

func (c *Chain) await(ctx context.Context, tx ledger.PendingTransaction, confirmations uint64) (*ledger.Receipt, error) {
	var receipt *ledger.Receipt
	err := confirm.Until(ctx, c.pollInterval, func(ctx context.Context) error {
		r, err := c.uowFactory.Create().ChainRepository().GetReceipt(ctx, tx.Hash)
		if errors.Is(err, ledger.ErrTransactionNotFound) {
			return confirm.ErrNotYet
		}
		if err != nil {
			return err
		}
		receipt = r
		return nil
	})
	if err != nil {
		return nil, err
	}

	if confirmations == 0 {
		return receipt, nil
	}

	target := receipt.BlockNumber + confirmations
	if _, err = confirm.WaitForHeight(ctx, c.pollInterval, c.Head, target); err != nil {
		return nil, fmt.Errorf("waiting for block %d: %w", target, err)
	}
	return receipt, nil
}

func (c *Chain) sealed(block uint64) {
	if c.observer != nil {
		c.observer.SetBlockHeight(block)
	}
}

func transactionHash(block uint64, sender kernel.Address, call ledger.Call) kernel.Hash {
	var height [8]byte
	binary.BigEndian.PutUint64(height[:], block)
	return kernel.Keccak256(height[:], sender.Bytes(), call.Encode())
}
