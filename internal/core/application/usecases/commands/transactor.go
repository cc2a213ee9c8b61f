package commands

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"shipment/internal/core/domain/model/ledger"
	"shipment/internal/core/ports"
	"shipment/internal/pkg/errs"
)

// DefaultAwaitTimeout bounds how long an operation waits for its confirmations.
const DefaultAwaitTimeout = 2 * time.Minute

// DefaultPublishTimeout bounds how long a confirmed operation waits for its events
// to be handed to the publisher.
const DefaultPublishTimeout = 5 * time.Second

var ErrLedgerIsRequired = errors.New("ledger is required")

// TransactorConfig configures a Transactor. Zero values select the defaults.
type TransactorConfig struct {
	// Confirmations is the number of blocks to await on top of the inclusion block.
	Confirmations uint64

	// Timeout bounds Await. Defaults to DefaultAwaitTimeout.
	Timeout time.Duration

	// Publisher receives the events of every confirmed transaction. Optional.
	Publisher ports.EventPublisher

	// PublishTimeout bounds each Publish call. Defaults to DefaultPublishTimeout.
	PublishTimeout time.Duration

	// Recorder observes every outcome. Optional.
	Recorder TransactionRecorder

	Logger *slog.Logger
}

// Transactor drives one ledger call from submission to confirmation. It keeps no
// locks of its own: concurrent calls are ordered by the ledger.
//
// Every failure it returns is an *errs.ContractError whose message is the ledger's.
// Nothing is retried.
type Transactor struct {
	ledger        Ledger
	confirmations uint64
	timeout       time.Duration
	publisher     ports.EventPublisher
	publishWithin time.Duration
	recorder      TransactionRecorder
	logger        *slog.Logger
	now           func() time.Time
}

func NewTransactor(l Ledger, cfg TransactorConfig) (*Transactor, error) {
	if l == nil {
		return nil, ErrLedgerIsRequired
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultAwaitTimeout
	}

	publishWithin := cfg.PublishTimeout
	if publishWithin <= 0 {
		publishWithin = DefaultPublishTimeout
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Transactor{
		ledger:        l,
		confirmations: cfg.Confirmations,
		timeout:       timeout,
		publisher:     cfg.Publisher,
		publishWithin: publishWithin,
		recorder:      cfg.Recorder,
		logger:        logger.With("component", "transactor"),
		now:           time.Now,
	}, nil
}

// Confirmations returns the configured confirmation depth.
func (t *Transactor) Confirmations() uint64 {
	return t.confirmations
}

// Execute submits call, waits for it to be confirmed and returns its receipt.
func (t *Transactor) Execute(ctx context.Context, call ledger.Call) (*Receipt, error) {
	start := t.now()
	log := t.logger.With("method", string(call.Method), "code", call.Code.String())

	pending, err := t.ledger.Submit(ctx, call)
	if err != nil {
		t.record(call.Method, outcomeOf(err), start)
		log.Warn("ledger refused transaction", "error", err)
		return nil, errs.NewContractError(err)
	}

	awaitCtx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()

	receipt, err := t.ledger.Await(awaitCtx, pending, t.confirmations)
	if err != nil {
		t.record(call.Method, outcomeOf(err), start)
		log.Warn("transaction was not confirmed", "hash", pending.Hash.String(), "error", err)
		return nil, errs.NewContractError(err)
	}

	t.record(call.Method, OutcomeConfirmed, start)
	log.Info("transaction confirmed",
		"hash", receipt.Hash.String(),
		"block", receipt.BlockNumber,
		"confirmations", t.confirmations,
	)

	t.publish(ctx, receipt, log)

	return &Receipt{
		TransactionHash: receipt.Hash.String(),
		BlockNumber:     receipt.BlockNumber,
		CreatedAt:       t.now(),
	}, nil
}

func (t *Transactor) publish(ctx context.Context, receipt *ledger.Receipt, log *slog.Logger) {
	if t.publisher == nil || len(receipt.Events) == 0 {
		return
	}
	// Events of a confirmed transaction are published even after the caller is
	// gone. Only publishWithin bounds the wait.
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), t.publishWithin)
	defer cancel()

	if err := t.publisher.Publish(ctx, receipt); err != nil {
		log.Error("failed to publish ledger events", "hash", receipt.Hash.String(), "error", err)
	}
}

func (t *Transactor) record(method ledger.Method, outcome string, start time.Time) {
	if t.recorder == nil {
		return
	}
	t.recorder.RecordTransaction(method, outcome, t.now().Sub(start))
}

func outcomeOf(err error) string {
	var revert *ledger.RevertError
	if errors.As(err, &revert) {
		return OutcomeRejected
	}
	return OutcomeFailed
}
