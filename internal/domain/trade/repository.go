package trade

import (
	"context"

	"github.com/atelier/storefront/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderRepository defines the interface for order persistence
type OrderRepository interface {
	// FindByID finds an order by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Order, error)

	// FindByIDForUpdate finds an order and locks its row for the current transaction
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*Order, error)

	// FindAll finds orders matching the filter ("status" is the supported filter key)
	FindAll(ctx context.Context, filter shared.Filter) ([]Order, error)

	// Count counts orders matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// CountByStatus returns the number of orders in each status
	CountByStatus(ctx context.Context) (map[OrderStatus]int64, error)

	// SumRevenue sums the totals of all orders that were not cancelled
	SumRevenue(ctx context.Context) (decimal.Decimal, error)

	// Save creates or updates an order
	Save(ctx context.Context, order *Order) error
}
