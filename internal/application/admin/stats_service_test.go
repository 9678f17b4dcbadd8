package admin

import (
	"context"
	"errors"
	"testing"

	"github.com/atelier/storefront/internal/domain/catalog"
	"github.com/atelier/storefront/internal/domain/shared"
	"github.com/atelier/storefront/internal/domain/trade"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockProductRepository struct {
	mock.Mock
	catalog.ProductRepository
}

func (m *mockProductRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

type mockOrderRepository struct {
	mock.Mock
	trade.OrderRepository
}

func (m *mockOrderRepository) CountByStatus(ctx context.Context) (map[trade.OrderStatus]int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(map[trade.OrderStatus]int64), args.Error(1)
}

func (m *mockOrderRepository) SumRevenue(ctx context.Context) (decimal.Decimal, error) {
	args := m.Called(ctx)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *mockOrderRepository) FindAll(ctx context.Context, filter shared.Filter) ([]trade.Order, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]trade.Order), args.Error(1)
}

func TestStatsService_Stats(t *testing.T) {
	products := new(mockProductRepository)
	orders := new(mockOrderRepository)
	svc := NewStatsService(products, orders)

	item, err := trade.NewOrderItem(uuid.New(), "Mug", decimal.NewFromInt(20), 1, "")
	require.NoError(t, err)
	recent, err := trade.NewOrder("Ada", "ada@example.com", []trade.OrderItem{item})
	require.NoError(t, err)

	products.On("Count", mock.Anything, mock.Anything).Return(int64(12), nil)
	orders.On("CountByStatus", mock.Anything).Return(map[trade.OrderStatus]int64{
		trade.OrderStatusPending:   2,
		trade.OrderStatusCancelled: 1,
	}, nil)
	orders.On("SumRevenue", mock.Anything).Return(decimal.RequireFromString("140.50"), nil)
	orders.On("FindAll", mock.Anything, mock.MatchedBy(func(f shared.Filter) bool {
		return f.PageSize == 5 && f.OrderBy == "created_at" && f.OrderDir == "desc"
	})).Return([]trade.Order{*recent}, nil)

	resp, err := svc.Stats(context.Background())

	require.NoError(t, err)
	assert.Equal(t, int64(12), resp.TotalProducts)
	assert.Equal(t, int64(3), resp.TotalOrders)
	assert.Equal(t, int64(0), resp.OrdersByStatus["shipped"])
	assert.Equal(t, int64(2), resp.OrdersByStatus["pending"])
	assert.True(t, resp.Revenue.Equal(decimal.RequireFromString("140.50")))
	assert.Len(t, resp.RecentActivity, 1)
}

func TestStatsService_StatsError(t *testing.T) {
	products := new(mockProductRepository)
	orders := new(mockOrderRepository)
	svc := NewStatsService(products, orders)

	products.On("Count", mock.Anything, mock.Anything).Return(int64(0), errors.New("db down"))
	orders.On("CountByStatus", mock.Anything).Return(map[trade.OrderStatus]int64{}, nil)
	orders.On("SumRevenue", mock.Anything).Return(decimal.Zero, nil)
	orders.On("FindAll", mock.Anything, mock.Anything).Return([]trade.Order{}, nil)

	_, err := svc.Stats(context.Background())

	assert.Error(t, err)
}
