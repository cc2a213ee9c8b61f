package queries_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"shipment/internal/core/application/usecases/queries"
	"shipment/internal/core/domain/model/kernel"
	"shipment/internal/core/domain/model/order"
	"shipment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockReader struct{ mock.Mock }

func (m *MockReader) OrderCodes(ctx context.Context) ([]kernel.Bytes32, error) {
	args := m.Called(ctx)
	codes, _ := args.Get(0).([]kernel.Bytes32)
	return codes, args.Error(1)
}

func (m *MockReader) GetOrder(ctx context.Context, code kernel.Bytes32) (*order.Order, error) {
	args := m.Called(ctx, code)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

var (
	firstCode  = kernel.MustBytes32FromString("First Order")
	secondCode = kernel.MustBytes32FromString("Second Order")
	creator, _ = kernel.AddressFromHex("0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266")
)

func restore(t *testing.T, code kernel.Bytes32, status order.Status) *order.Order {
	t.Helper()
	o, err := order.RestoreOrder(
		code,
		kernel.MustBytes32FromString("distributor 1"),
		kernel.MustBytes32FromString("receptor 1"),
		status,
		creator,
	)
	require.NoError(t, err)
	return o
}

func TestNewGetOrderQuery(t *testing.T) {
	q, err := queries.NewGetOrderQuery("First Order")
	require.NoError(t, err)
	require.NoError(t, q.Validate())
	assert.Equal(t, firstCode, q.Code())

	_, err = queries.NewGetOrderQuery(strings.Repeat("x", 40))
	require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)

	assert.Equal(t, queries.ErrGetOrderQueryIsNotConstructed, queries.GetOrderQuery{}.Validate())
	assert.Equal(t, queries.ErrGetAllOrdersQueryIsNotConstructed, queries.GetAllOrdersQuery{}.Validate())
}

func TestGetOrderQueryHandler_Handle(t *testing.T) {
	ctx := t.Context()

	t.Run("decodes identifiers", func(t *testing.T) {
		reader := new(MockReader)
		reader.On("GetOrder", ctx, firstCode).Return(restore(t, firstCode, order.Pending), nil).Once()
		h := queries.NewGetOrderQueryHandler(reader, nil)
		q, _ := queries.NewGetOrderQuery("First Order")

		resp, err := h.Handle(ctx, q)

		require.NoError(t, err)
		assert.Equal(t, queries.OrderResponse{
			Code:          "First Order",
			DistributorID: "distributor 1",
			ReceptorID:    "receptor 1",
			Status:        order.Pending,
			Creator:       "0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266",
		}, resp)
		reader.AssertExpectations(t)
	})

	t.Run("unknown order is not found", func(t *testing.T) {
		reader := new(MockReader)
		reader.On("GetOrder", ctx, firstCode).
			Return(nil, fmt.Errorf("read: %w", order.ErrOrderNotFound)).Once()
		h := queries.NewGetOrderQueryHandler(reader, nil)
		q, _ := queries.NewGetOrderQuery("First Order")

		_, err := h.Handle(ctx, q)

		var notFound *errs.ObjectNotFoundError
		require.ErrorAs(t, err, &notFound)
		assert.Equal(t, "First Order", notFound.ID)
	})

	t.Run("other failures pass through", func(t *testing.T) {
		reader := new(MockReader)
		reader.On("GetOrder", ctx, firstCode).Return(nil, errors.New("dial tcp: refused")).Once()
		h := queries.NewGetOrderQueryHandler(reader, nil)
		q, _ := queries.NewGetOrderQuery("First Order")

		_, err := h.Handle(ctx, q)

		require.Error(t, err)
		assert.NotErrorIs(t, err, errs.ErrObjectNotFound)
	})

	t.Run("terminal orders are served from cache", func(t *testing.T) {
		reader := new(MockReader)
		reader.On("GetOrder", ctx, firstCode).Return(restore(t, firstCode, order.Delivered), nil).Once()
		oc := queries.NewOrderCache(time.Minute)
		h := queries.NewGetOrderQueryHandler(reader, oc)
		q, _ := queries.NewGetOrderQuery("First Order")

		for range 3 {
			resp, err := h.Handle(ctx, q)
			require.NoError(t, err)
			assert.Equal(t, order.Delivered, resp.Status)
		}

		assert.Equal(t, 1, oc.Len())
		reader.AssertNumberOfCalls(t, "GetOrder", 1)
	})

	t.Run("pending orders are always read from the ledger", func(t *testing.T) {
		reader := new(MockReader)
		reader.On("GetOrder", ctx, firstCode).Return(restore(t, firstCode, order.Pending), nil).Twice()
		oc := queries.NewOrderCache(0)
		h := queries.NewGetOrderQueryHandler(reader, oc)
		q, _ := queries.NewGetOrderQuery("First Order")

		_, _ = h.Handle(ctx, q)
		_, _ = h.Handle(ctx, q)

		assert.Equal(t, 0, oc.Len())
		reader.AssertExpectations(t)
	})
}

func TestGetAllOrdersQueryHandler_Handle(t *testing.T) {
	ctx := t.Context()

	t.Run("empty registry", func(t *testing.T) {
		reader := new(MockReader)
		reader.On("OrderCodes", ctx).Return([]kernel.Bytes32{}, nil).Once()
		h := queries.NewGetAllOrdersQueryHandler(reader, nil)

		orders, err := h.Handle(ctx, queries.NewGetAllOrdersQuery())

		require.NoError(t, err)
		assert.NotNil(t, orders)
		assert.Empty(t, orders)
	})

	t.Run("keeps creation order", func(t *testing.T) {
		reader := new(MockReader)
		reader.On("OrderCodes", ctx).Return([]kernel.Bytes32{secondCode, firstCode}, nil).Once()
		reader.On("GetOrder", ctx, secondCode).Return(restore(t, secondCode, order.Cancelled), nil).Once()
		reader.On("GetOrder", ctx, firstCode).Return(restore(t, firstCode, order.Pending), nil).Once()
		h := queries.NewGetAllOrdersQueryHandler(reader, queries.NewOrderCache(time.Minute))

		orders, err := h.Handle(ctx, queries.NewGetAllOrdersQuery())

		require.NoError(t, err)
		require.Len(t, orders, 2)
		assert.Equal(t, "Second Order", orders[0].Code)
		assert.Equal(t, order.Cancelled, orders[0].Status)
		assert.Equal(t, "First Order", orders[1].Code)
		reader.AssertExpectations(t)
	})

	t.Run("index failure", func(t *testing.T) {
		reader := new(MockReader)
		reader.On("OrderCodes", ctx).Return(nil, errors.New("boom")).Once()
		h := queries.NewGetAllOrdersQueryHandler(reader, nil)

		_, err := h.Handle(ctx, queries.NewGetAllOrdersQuery())

		require.EqualError(t, err, "boom")
	})
}
