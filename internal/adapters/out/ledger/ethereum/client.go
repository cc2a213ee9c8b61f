// Package ethereum is a ports.Ledger backed by the ShipmentTracker contract on an
// Ethereum-compatible node.
package ethereum

import (
	"context"
	"crypto/ecdsa"
	"errors"
	"fmt"
	"log/slog"
	"math/big"
	"time"

	"shipment/internal/core/domain/model/kernel"
	"shipment/internal/core/domain/model/ledger"
	"shipment/internal/core/domain/model/order"
	"shipment/internal/pkg/confirm"

	goethereum "github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient"
)

// ErrContractNotFound is returned when no code is deployed at the configured address.
var ErrContractNotFound = errors.New("contract not found")

// Backend is the part of an Ethereum node the client needs. *ethclient.Client
// satisfies it.
type Backend interface {
	bind.ContractBackend
	ChainID(ctx context.Context) (*big.Int, error)
	BlockNumber(ctx context.Context) (uint64, error)
	TransactionReceipt(ctx context.Context, txHash common.Hash) (*types.Receipt, error)
}

type Config struct {
	Contract   common.Address
	PrivateKey *ecdsa.PrivateKey

	// PollInterval is how often Await asks the node for progress.
	PollInterval time.Duration

	Logger *slog.Logger
}

type Client struct {
	backend      Backend
	abi          abi.ABI
	contract     *bind.BoundContract
	address      common.Address
	opts         *bind.TransactOpts
	sender       kernel.Address
	pollInterval time.Duration
	logger       *slog.Logger
	closeBackend func()
}

// Dial connects to the node at rpcURL and binds the contract.
func Dial(ctx context.Context, rpcURL string, cfg Config) (*Client, error) {
	backend, err := ethclient.DialContext(ctx, rpcURL)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", rpcURL, err)
	}
	c, err := New(ctx, backend, cfg)
	if err != nil {
		backend.Close()
		return nil, err
	}
	c.closeBackend = backend.Close
	return c, nil
}

// Close releases the node connection opened by Dial.
func (c *Client) Close() error {
	if c.closeBackend != nil {
		c.closeBackend()
		c.closeBackend = nil
	}
	return nil
}

// New binds the contract over backend. It fails with ErrContractNotFound when the
// address holds no code.
func New(ctx context.Context, backend Backend, cfg Config) (*Client, error) {
	if cfg.PrivateKey == nil {
		return nil, errors.New("private key is required")
	}

	code, err := backend.CodeAt(ctx, cfg.Contract, nil)
	if err != nil {
		return nil, err
	}
	if len(code) == 0 {
		return nil, ErrContractNotFound
	}

	chainID, err := backend.ChainID(ctx)
	if err != nil {
		return nil, fmt.Errorf("chain id: %w", err)
	}
	opts, err := bind.NewKeyedTransactorWithChainID(cfg.PrivateKey, chainID)
	if err != nil {
		return nil, err
	}

	parsed, err := parseABI()
	if err != nil {
		return nil, err
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	interval := cfg.PollInterval
	if interval <= 0 {
		interval = confirm.DefaultInterval
	}

	return &Client{
		backend:      backend,
		abi:          parsed,
		contract:     bind.NewBoundContract(cfg.Contract, parsed, backend, backend, backend),
		address:      cfg.Contract,
		opts:         opts,
		sender:       kernel.AddressFromPrivateKey(cfg.PrivateKey),
		pollInterval: interval,
		logger:       logger.With("component", "ethereum", "contract", cfg.Contract.Hex()),
	}, nil
}

// Address returns the account transactions are signed with.
func (c *Client) Address() kernel.Address {
	return c.sender
}

// Head returns the node's latest block number.
func (c *Client) Head(ctx context.Context) (uint64, error) {
	return c.backend.BlockNumber(ctx)
}

// Submit estimates, signs and sends call. Reverts found while estimating are
// returned as *ledger.RevertError without sending anything.
func (c *Client) Submit(ctx context.Context, call ledger.Call) (ledger.PendingTransaction, error) {
	if err := call.Method.Validate(); err != nil {
		return ledger.PendingTransaction{}, err
	}

	opts := *c.opts
	opts.Context = ctx

	var args []any
	switch call.Method {
	case ledger.MethodCreate:
		args = []any{call.Code.Array(), call.DistributorID.Array(), call.ReceptorID.Array()}
	default:
		args = []any{call.Code.Array()}
	}

	tx, err := c.contract.Transact(&opts, string(call.Method), args...)
	if err != nil {
		if revert := revertFromError(err); revert != nil {
			return ledger.PendingTransaction{}, revert
		}
		return ledger.PendingTransaction{}, err
	}

	c.logger.DebugContext(ctx, "transaction sent", "method", call.Method, "hash", tx.Hash().Hex())
	return ledger.PendingTransaction{Hash: kernel.HashFromCommon(tx.Hash())}, nil
}

// Await polls for the receipt of tx, then for the block that gives it the
// requested number of confirmations.
func (c *Client) Await(ctx context.Context, tx ledger.PendingTransaction, confirmations uint64) (*ledger.Receipt, error) {
	var receipt *types.Receipt
	err := confirm.Until(ctx, c.pollInterval, func(ctx context.Context) error {
		r, err := c.backend.TransactionReceipt(ctx, tx.Hash.Common())
		if errors.Is(err, goethereum.NotFound) {
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

	if receipt.Status == types.ReceiptStatusFailed {
		return nil, &ledger.RevertError{Reason: ledger.ErrTransactionFailed.Error()}
	}

	block := receipt.BlockNumber.Uint64()
	if confirmations > 0 {
		if _, err = confirm.WaitForHeight(ctx, c.pollInterval, c.backend.BlockNumber, block+confirmations); err != nil {
			return nil, fmt.Errorf("waiting for block %d: %w", block+confirmations, err)
		}
	}

	events, err := c.decodeEvents(receipt.Logs)
	if err != nil {
		return nil, err
	}

	return &ledger.Receipt{
		Hash:        tx.Hash,
		BlockNumber: block,
		From:        c.sender,
		Call:        callFromEvents(events),
		Events:      events,
	}, nil
}

// OrderCodes reads the contract's code registry.
func (c *Client) OrderCodes(ctx context.Context) ([]kernel.Bytes32, error) {
	var out []any
	if err := c.contract.Call(&bind.CallOpts{Context: ctx}, &out, "getOrderCodes"); err != nil {
		return nil, err
	}

	raw, ok := out[0].([][32]byte)
	if !ok {
		return nil, fmt.Errorf("getOrderCodes: unexpected result %T", out[0])
	}

	codes := make([]kernel.Bytes32, 0, len(raw))
	for _, code := range raw {
		codes = append(codes, kernel.Bytes32FromArray(code))
	}
	return codes, nil
}

// GetOrder reads one order. The contract returns a zero record for unknown codes.
func (c *Client) GetOrder(ctx context.Context, code kernel.Bytes32) (*order.Order, error) {
	var out []any
	if err := c.contract.Call(&bind.CallOpts{Context: ctx}, &out, "orders", code.Array()); err != nil {
		return nil, err
	}
	if len(out) != 5 {
		return nil, fmt.Errorf("orders: unexpected result length %d", len(out))
	}

	stored, _ := out[0].([32]byte)
	distributorID, _ := out[1].([32]byte)
	receptorID, _ := out[2].([32]byte)
	wireStatus, _ := out[3].(uint8)
	creator, _ := out[4].(common.Address)

	if kernel.Bytes32FromArray(stored).IsZero() {
		return nil, fmt.Errorf("get %s: %w", code, order.ErrOrderNotFound)
	}

	status, err := statusFromWire(wireStatus)
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(
		kernel.Bytes32FromArray(stored),
		kernel.Bytes32FromArray(distributorID),
		kernel.Bytes32FromArray(receptorID),
		status,
		kernel.AddressFromCommon(creator),
	)
}

func (c *Client) decodeEvents(logs []*types.Log) ([]order.Event, error) {
	created := c.abi.Events[eventOrderCreated].ID
	changed := c.abi.Events[eventStatusChanged].ID

	events := make([]order.Event, 0, len(logs))
	for _, l := range logs {
		if l == nil || l.Address != c.address || len(l.Topics) == 0 {
			continue
		}

		switch l.Topics[0] {
		case created:
			var ev orderCreatedLog
			if err := c.contract.UnpackLog(&ev, eventOrderCreated, *l); err != nil {
				return nil, fmt.Errorf("decode %s: %w", eventOrderCreated, err)
			}
			events = append(events, order.Event{
				Kind:          order.EventCreated,
				Code:          kernel.Bytes32FromArray(ev.Code),
				DistributorID: kernel.Bytes32FromArray(ev.DistributorID),
				ReceptorID:    kernel.Bytes32FromArray(ev.ReceptorID),
				Creator:       kernel.AddressFromCommon(ev.Creator),
			})
		case changed:
			var ev statusChangedLog
			if err := c.contract.UnpackLog(&ev, eventStatusChanged, *l); err != nil {
				return nil, fmt.Errorf("decode %s: %w", eventStatusChanged, err)
			}
			from, err := statusFromWire(ev.OldStatus)
			if err != nil {
				return nil, err
			}
			to, err := statusFromWire(ev.NewStatus)
			if err != nil {
				return nil, err
			}
			events = append(events, order.Event{
				Kind:          order.EventStatusChanged,
				Code:          kernel.Bytes32FromArray(ev.Code),
				DistributorID: kernel.Bytes32FromArray(ev.DistributorID),
				ReceptorID:    kernel.Bytes32FromArray(ev.ReceptorID),
				From:          from,
				To:            to,
			})
		}
	}
	return events, nil
}

// callFromEvents rebuilds the call a receipt answers from what it emitted.
func callFromEvents(events []order.Event) ledger.Call {
	for _, ev := range events {
		switch {
		case ev.Kind == order.EventCreated:
			return ledger.NewCreateCall(ev.Code, ev.DistributorID, ev.ReceptorID)
		case ev.Kind == order.EventStatusChanged && ev.To == order.Delivered:
			return ledger.NewDeliverCall(ev.Code)
		case ev.Kind == order.EventStatusChanged && ev.To == order.Cancelled:
			return ledger.NewCancelCall(ev.Code)
		}
	}
	return ledger.Call{}
}
