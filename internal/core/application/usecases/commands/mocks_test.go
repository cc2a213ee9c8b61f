package commands_test

import (
	"context"
	"time"

	"shipment/internal/core/domain/model/ledger"

	"github.com/stretchr/testify/mock"
)

type MockLedger struct{ mock.Mock }

func (m *MockLedger) Submit(ctx context.Context, call ledger.Call) (ledger.PendingTransaction, error) {
	args := m.Called(ctx, call)
	return args.Get(0).(ledger.PendingTransaction), args.Error(1)
}

func (m *MockLedger) Await(ctx context.Context, tx ledger.PendingTransaction, confirmations uint64) (*ledger.Receipt, error) {
	args := m.Called(ctx, tx, confirmations)
	receipt, _ := args.Get(0).(*ledger.Receipt)
	return receipt, args.Error(1)
}

type MockPublisher struct{ mock.Mock }

func (m *MockPublisher) Publish(ctx context.Context, receipt *ledger.Receipt) error {
	args := m.Called(ctx, receipt)
	return args.Error(0)
}

type MockRecorder struct{ mock.Mock }

func (m *MockRecorder) RecordTransaction(method ledger.Method, outcome string, elapsed time.Duration) {
	m.Called(method, outcome, elapsed)
}
