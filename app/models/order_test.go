package models

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseOrderStatus(t *testing.T) {
	status, err := ParseOrderStatus(" shipped ")
	require.NoError(t, err)
	assert.Equal(t, OrderStatusShipped, status)

	_, err = ParseOrderStatus("LOST")
	require.Error(t, err)
}

func TestOrderStatusTransitions(t *testing.T) {
	tests := []struct {
		from, to OrderStatus
		allowed  bool
	}{
		{OrderStatusPending, OrderStatusProcessing, true},
		{OrderStatusProcessing, OrderStatusShipped, true},
		{OrderStatusShipped, OrderStatusDelivered, true},
		{OrderStatusPending, OrderStatusCancelled, true},
		{OrderStatusProcessing, OrderStatusCancelled, true},
		{OrderStatusShipped, OrderStatusCancelled, true},
		{OrderStatusPending, OrderStatusShipped, false},
		{OrderStatusPending, OrderStatusPending, false},
		{OrderStatusDelivered, OrderStatusCancelled, false},
		{OrderStatusCancelled, OrderStatusPending, false},
		{OrderStatusShipped, OrderStatusProcessing, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.allowed, tt.from.CanTransitionTo(tt.to))
		})
	}

	assert.True(t, OrderStatusDelivered.Terminal())
	assert.True(t, OrderStatusCancelled.Terminal())
	assert.False(t, OrderStatusPending.Terminal())
	assert.False(t, OrderStatus("LOST").Valid())
	assert.Len(t, OrderStatuses(), 5)
}

func TestCartLineSubtotal(t *testing.T) {
	line := CartLine{CartItem: CartItem{Quantity: 2}, Product: Product{Price: decimal.RequireFromString("45.99")}}
	assert.Equal(t, "91.98", line.Subtotal().StringFixed(2))
}
