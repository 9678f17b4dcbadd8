package trade

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestItem(t *testing.T, price string, quantity int) OrderItem {
	t.Helper()
	item, err := NewOrderItem(uuid.New(), "Assiette", decimal.RequireFromString(price), quantity, "assiette.jpg")
	require.NoError(t, err)
	return item
}

func newTestOrder(t *testing.T) *Order {
	t.Helper()
	order, err := NewOrder("Camille Martin", "camille@example.com", []OrderItem{
		newTestItem(t, "12.50", 2),
		newTestItem(t, "30", 1),
	})
	require.NoError(t, err)
	return order
}

func TestOrderStatus_CanTransitionTo(t *testing.T) {
	tests := []struct {
		from   OrderStatus
		to     OrderStatus
		expect bool
	}{
		{OrderStatusPending, OrderStatusConfirmed, true},
		{OrderStatusPending, OrderStatusCancelled, true},
		{OrderStatusPending, OrderStatusShipped, false},
		{OrderStatusConfirmed, OrderStatusShipped, true},
		{OrderStatusConfirmed, OrderStatusCancelled, true},
		{OrderStatusShipped, OrderStatusDelivered, true},
		{OrderStatusShipped, OrderStatusCancelled, false},
		{OrderStatusDelivered, OrderStatusCancelled, false},
		{OrderStatusCancelled, OrderStatusPending, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.expect, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestNewOrderItem(t *testing.T) {
	t.Run("rejects zero quantity", func(t *testing.T) {
		_, err := NewOrderItem(uuid.New(), "Bol", decimal.NewFromInt(5), 0, "")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Quantity must be positive")
	})

	t.Run("rejects missing product", func(t *testing.T) {
		_, err := NewOrderItem(uuid.Nil, "Bol", decimal.NewFromInt(5), 1, "")
		require.Error(t, err)
	})

	t.Run("computes line total", func(t *testing.T) {
		item := newTestItem(t, "12.50", 3)
		assert.True(t, item.LineTotal().Equal(decimal.RequireFromString("37.5")))
	})
}

func TestNewOrder(t *testing.T) {
	t.Run("creates pending order with computed total", func(t *testing.T) {
		order := newTestOrder(t)

		assert.Equal(t, OrderStatusPending, order.Status)
		assert.True(t, order.TotalAmount.Equal(decimal.NewFromInt(55)))
		assert.Equal(t, 3, order.ItemCount())

		events := order.GetDomainEvents()
		require.Len(t, events, 1)
		placed, ok := events[0].(*OrderPlacedEvent)
		require.True(t, ok)
		assert.Equal(t, order.ID, placed.OrderID)
		assert.Equal(t, "camille@example.com", placed.CustomerEmail)
		assert.Len(t, placed.Items, 2)
	})

	t.Run("requires customer name", func(t *testing.T) {
		_, err := NewOrder(" ", "camille@example.com", []OrderItem{newTestItem(t, "1", 1)})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Customer name is required")
	})

	t.Run("validates email", func(t *testing.T) {
		for _, email := range []string{"", "camille", "camille@example", "ca mille@example.com"} {
			_, err := NewOrder("Camille", email, []OrderItem{newTestItem(t, "1", 1)})
			assert.Error(t, err, email)
		}
	})

	t.Run("requires items", func(t *testing.T) {
		_, err := NewOrder("Camille", "camille@example.com", nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "at least one item")
	})

	t.Run("requires positive total", func(t *testing.T) {
		_, err := NewOrder("Camille", "camille@example.com", []OrderItem{newTestItem(t, "0", 1)})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "total must be positive")
	})
}

func TestOrder_ChangeStatus(t *testing.T) {
	t.Run("walks the happy path", func(t *testing.T) {
		order := newTestOrder(t)
		order.ClearDomainEvents()

		for _, status := range []OrderStatus{OrderStatusConfirmed, OrderStatusShipped, OrderStatusDelivered} {
			changed, err := order.ChangeStatus(status)
			require.NoError(t, err)
			assert.True(t, changed)
		}

		assert.Equal(t, OrderStatusDelivered, order.Status)
		assert.NotNil(t, order.ConfirmedAt)
		assert.NotNil(t, order.ShippedAt)
		assert.NotNil(t, order.DeliveredAt)
		assert.Len(t, order.GetDomainEvents(), 3)
	})

	t.Run("same status is a no-op", func(t *testing.T) {
		order := newTestOrder(t)
		version := order.GetVersion()

		changed, err := order.ChangeStatus(OrderStatusPending)
		require.NoError(t, err)
		assert.False(t, changed)
		assert.Equal(t, version, order.GetVersion())
	})

	t.Run("rejects illegal transition", func(t *testing.T) {
		order := newTestOrder(t)
		_, err := order.ChangeStatus(OrderStatusDelivered)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Cannot move order from pending to delivered")
	})

	t.Run("rejects unknown status", func(t *testing.T) {
		order := newTestOrder(t)
		_, err := order.ChangeStatus("lost")
		require.Error(t, err)
	})

	t.Run("cancel records previous status", func(t *testing.T) {
		order := newTestOrder(t)
		order.ClearDomainEvents()

		_, err := order.ChangeStatus(OrderStatusCancelled)
		require.NoError(t, err)
		assert.NotNil(t, order.CancelledAt)

		events := order.GetDomainEvents()
		require.Len(t, events, 1)
		changed := events[0].(*OrderStatusChangedEvent)
		assert.Equal(t, OrderStatusPending, changed.FromStatus)
		assert.Equal(t, OrderStatusCancelled, changed.ToStatus)
	})
}
