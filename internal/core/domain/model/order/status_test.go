package order_test

import (
	"testing"

	"shipment/internal/core/domain/model/order"
	"shipment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus_Validate(t *testing.T) {
	for _, s := range []order.Status{order.Pending, order.Delivered, order.Cancelled} {
		require.NoError(t, s.Validate(), s.String())
	}

	for _, s := range []order.Status{order.Unknown, order.Status(42), order.Status(-1)} {
		err := s.Validate()
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Contains(t, err.Error(), "status is invalid")
	}
}

func TestStatus_String(t *testing.T) {
	tests := []struct {
		status   order.Status
		expected string
	}{
		{order.Unknown, "Unknown"},
		{order.Pending, "Pending"},
		{order.Delivered, "Delivered"},
		{order.Cancelled, "Cancelled"},
		{order.Status(99), "Unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.status.String())
		})
	}
}

func TestParseStatus(t *testing.T) {
	s, err := order.ParseStatus("Delivered")
	require.NoError(t, err)
	assert.Equal(t, order.Delivered, s)

	_, err = order.ParseStatus("Unknown")
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)

	_, err = order.ParseStatus("delivered")
	require.Error(t, err)
}

func TestStatus_Transitions(t *testing.T) {
	t.Run("pending can be delivered", func(t *testing.T) {
		s, err := order.Pending.Deliver()
		require.NoError(t, err)
		assert.Equal(t, order.Delivered, s)
		assert.True(t, s.IsTerminal())
	})

	t.Run("pending can be cancelled", func(t *testing.T) {
		s, err := order.Pending.Cancel()
		require.NoError(t, err)
		assert.Equal(t, order.Cancelled, s)
		assert.True(t, s.IsTerminal())
	})

	t.Run("terminal statuses reject every transition", func(t *testing.T) {
		for _, from := range []order.Status{order.Delivered, order.Cancelled, order.Unknown} {
			_, err := from.Deliver()
			require.ErrorIs(t, err, order.ErrNotPending, from.String())

			_, err = from.Cancel()
			require.ErrorIs(t, err, order.ErrNotPending, from.String())
		}
	})

	assert.False(t, order.Pending.IsTerminal())
}
