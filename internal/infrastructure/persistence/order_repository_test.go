package persistence

import (
	"context"
	"testing"

	"github.com/atelier/storefront/internal/domain/shared"
	"github.com/atelier/storefront/internal/domain/trade"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestOrder(t *testing.T, email string, price int64, qty int) *trade.Order {
	t.Helper()
	item, err := trade.NewOrderItem(uuid.New(), "Vase", decimal.NewFromInt(price), qty, "https://cdn.example.com/vase.jpg")
	require.NoError(t, err)
	order, err := trade.NewOrder("Ada Lovelace", email, []trade.OrderItem{item})
	require.NoError(t, err)
	return order
}

func TestGormOrderRepository_SaveAndFind(t *testing.T) {
	ctx := context.Background()
	repo := NewGormOrderRepository(newTestDB(t))

	order := newTestOrder(t, "ada@example.com", 25, 2)
	require.NoError(t, repo.Save(ctx, order))

	found, err := repo.FindByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, trade.OrderStatusPending, found.Status)
	assert.True(t, found.TotalAmount.Equal(decimal.NewFromInt(50)))
	require.Len(t, found.Items, 1)
	assert.Equal(t, order.Items[0].ProductID, found.Items[0].ProductID)
	assert.Equal(t, 2, found.Items[0].Quantity)

	_, err = found.ChangeStatus(trade.OrderStatusConfirmed)
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, found))

	reloaded, err := repo.FindByIDForUpdate(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, trade.OrderStatusConfirmed, reloaded.Status)
	assert.NotNil(t, reloaded.ConfirmedAt)

	_, err = repo.FindByID(ctx, uuid.New())
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestGormOrderRepository_Aggregates(t *testing.T) {
	ctx := context.Background()
	repo := NewGormOrderRepository(newTestDB(t))

	pending := newTestOrder(t, "a@example.com", 10, 1)
	confirmed := newTestOrder(t, "b@example.com", 20, 2)
	cancelled := newTestOrder(t, "c@example.com", 99, 1)
	_, err := confirmed.ChangeStatus(trade.OrderStatusConfirmed)
	require.NoError(t, err)
	_, err = cancelled.ChangeStatus(trade.OrderStatusCancelled)
	require.NoError(t, err)
	for _, o := range []*trade.Order{pending, confirmed, cancelled} {
		require.NoError(t, repo.Save(ctx, o))
	}

	counts, err := repo.CountByStatus(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), counts[trade.OrderStatusPending])
	assert.Equal(t, int64(1), counts[trade.OrderStatusConfirmed])
	assert.Equal(t, int64(1), counts[trade.OrderStatusCancelled])
	assert.Equal(t, int64(0), counts[trade.OrderStatusShipped])

	revenue, err := repo.SumRevenue(ctx)
	require.NoError(t, err)
	assert.True(t, revenue.Equal(decimal.NewFromInt(50)), revenue.String())

	filter := shared.DefaultFilter()
	filter.Filters["status"] = trade.OrderStatusConfirmed
	orders, err := repo.FindAll(ctx, filter)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, confirmed.ID, orders[0].ID)

	filter = shared.DefaultFilter()
	filter.OrderBy = "total_amount"
	filter.OrderDir = "desc"
	orders, err = repo.FindAll(ctx, filter)
	require.NoError(t, err)
	require.Len(t, orders, 3)
	assert.Equal(t, cancelled.ID, orders[0].ID)

	total, err := repo.Count(ctx, shared.DefaultFilter())
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
}

func TestGormOrderRepository_SaveRejectsStaleVersion(t *testing.T) {
	ctx := context.Background()
	repo := NewGormOrderRepository(newTestDB(t))

	order := newTestOrder(t, "ada@example.com", 25, 1)
	require.NoError(t, repo.Save(ctx, order))

	first, err := repo.FindByID(ctx, order.ID)
	require.NoError(t, err)
	second, err := repo.FindByID(ctx, order.ID)
	require.NoError(t, err)

	_, err = first.ChangeStatus(trade.OrderStatusCancelled)
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, first))

	_, err = second.ChangeStatus(trade.OrderStatusConfirmed)
	require.NoError(t, err)
	assert.ErrorIs(t, repo.Save(ctx, second), shared.ErrConcurrencyConflict)

	found, err := repo.FindByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, trade.OrderStatusCancelled, found.Status)
}
