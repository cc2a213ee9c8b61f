package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"shipment/internal/core/domain/model/kernel"
	"shipment/internal/core/domain/model/ledger"
	"shipment/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockWriter struct {
	mock.Mock
}

func (m *MockWriter) WriteMessages(ctx context.Context, msgs ...kafka.Message) error {
	args := m.Called(ctx, msgs)
	return args.Error(0)
}

func (m *MockWriter) Close() error {
	return m.Called().Error(0)
}

func TestOrderChangedPublisher_Publish(t *testing.T) {
	ctx := context.Background()
	creator, err := kernel.AddressFromHex("0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266")
	require.NoError(t, err)
	code := kernel.MustBytes32FromString("First Order")
	fixed := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	receipt := &ledger.Receipt{
		Hash:        kernel.Keccak256([]byte("deliver")),
		BlockNumber: 7,
		From:        creator,
		Call:        ledger.NewDeliverCall(code),
		Events: []order.Event{{
			Kind:          order.EventStatusChanged,
			Code:          code,
			DistributorID: kernel.MustBytes32FromString("distributor 1"),
			ReceptorID:    kernel.MustBytes32FromString("receptor 1"),
			From:          order.Pending,
			To:            order.Delivered,
		}},
	}

	t.Run("one_message_per_event_keyed_by_code", func(t *testing.T) {
		writer := new(MockWriter)
		publisher := newOrderChangedPublisher(writer)
		publisher.now = func() time.Time { return fixed }

		var sent []kafka.Message
		writer.On("WriteMessages", ctx, mock.Anything).
			Run(func(args mock.Arguments) { sent = args.Get(1).([]kafka.Message) }).
			Return(nil).Once()

		require.NoError(t, publisher.Publish(ctx, receipt))

		require.Len(t, sent, 1)
		assert.Equal(t, "First Order", string(sent[0].Key))

		var msg OrderChangedMessage
		require.NoError(t, json.Unmarshal(sent[0].Value, &msg))
		_, err := uuid.Parse(msg.ID)
		require.NoError(t, err)
		assert.Equal(t, "StatusChanged", msg.Kind)
		assert.Equal(t, receipt.Hash.String(), msg.TransactionHash)
		assert.Equal(t, uint64(7), msg.BlockNumber)
		assert.Equal(t, "distributor 1", msg.DistributorID)
		assert.Equal(t, "Pending", msg.From)
		assert.Equal(t, "Delivered", msg.To)
		assert.Empty(t, msg.Creator)
		assert.True(t, fixed.Equal(msg.OccurredAt))
		writer.AssertExpectations(t)
	})

	t.Run("nothing_to_publish", func(t *testing.T) {
		writer := new(MockWriter)
		publisher := newOrderChangedPublisher(writer)

		require.NoError(t, publisher.Publish(ctx, &ledger.Receipt{}))
		require.NoError(t, publisher.Publish(ctx, nil))

		writer.AssertNotCalled(t, "WriteMessages", mock.Anything, mock.Anything)
	})

	t.Run("writer_error_is_returned", func(t *testing.T) {
		writer := new(MockWriter)
		publisher := newOrderChangedPublisher(writer)
		errBroker := errors.New("broker unavailable")
		writer.On("WriteMessages", ctx, mock.Anything).Return(errBroker).Once()

		err := publisher.Publish(ctx, receipt)

		require.ErrorIs(t, err, errBroker)
	})
}

func TestNewOrderChangedPublisher(t *testing.T) {
	_, err := NewOrderChangedPublisher(nil, "order.changed")
	require.Error(t, err)

	_, err = NewOrderChangedPublisher([]string{"localhost:9092"}, "")
	require.Error(t, err)

	p, err := NewOrderChangedPublisher([]string{"localhost:9092"}, "order.changed")
	require.NoError(t, err)
	require.NoError(t, p.Close())
}
