package telemetry

import (
	"context"
	"fmt"

	"github.com/atelier/storefront/internal/domain/catalog"
	"github.com/atelier/storefront/internal/domain/shared"
	"github.com/atelier/storefront/internal/domain/trade"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// StoreMetrics records shop activity from domain events.
// It is registered on the event bus like any other handler.
type StoreMetrics struct {
	ordersPlaced   metric.Int64Counter
	orderValue     metric.Float64Histogram
	unitsSold      metric.Int64Counter
	statusChanges  metric.Int64Counter
	productSoldOut metric.Int64Counter
}

// NewStoreMetrics creates the shop instruments on the given meter.
func NewStoreMetrics(meter metric.Meter) (*StoreMetrics, error) {
	var (
		m   StoreMetrics
		err error
	)
	if m.ordersPlaced, err = meter.Int64Counter("store.orders.placed",
		metric.WithDescription("Orders captured at checkout"),
		metric.WithUnit("{order}")); err != nil {
		return nil, fmt.Errorf("failed to create orders counter: %w", err)
	}
	if m.orderValue, err = meter.Float64Histogram("store.orders.value",
		metric.WithDescription("Order totals"),
		metric.WithUnit("{currency}"),
		metric.WithExplicitBucketBoundaries(10, 25, 50, 100, 250, 500, 1000, 2500)); err != nil {
		return nil, fmt.Errorf("failed to create order value histogram: %w", err)
	}
	if m.unitsSold, err = meter.Int64Counter("store.units.sold",
		metric.WithDescription("Product units reserved by orders"),
		metric.WithUnit("{unit}")); err != nil {
		return nil, fmt.Errorf("failed to create units counter: %w", err)
	}
	if m.statusChanges, err = meter.Int64Counter("store.orders.status_changes",
		metric.WithDescription("Order lifecycle transitions"),
		metric.WithUnit("{transition}")); err != nil {
		return nil, fmt.Errorf("failed to create status counter: %w", err)
	}
	if m.productSoldOut, err = meter.Int64Counter("store.products.sold_out",
		metric.WithDescription("Products whose last unit was sold"),
		metric.WithUnit("{product}")); err != nil {
		return nil, fmt.Errorf("failed to create sold out counter: %w", err)
	}
	return &m, nil
}

// EventTypes returns the events this handler records.
func (m *StoreMetrics) EventTypes() []string {
	return []string{
		trade.EventTypeOrderPlaced,
		trade.EventTypeOrderStatusChanged,
		catalog.EventTypeProductSoldOut,
	}
}

// Handle records the event.
func (m *StoreMetrics) Handle(ctx context.Context, event shared.DomainEvent) error {
	switch e := event.(type) {
	case *trade.OrderPlacedEvent:
		units := 0
		for _, item := range e.Items {
			units += item.Quantity
		}
		m.ordersPlaced.Add(ctx, 1)
		m.unitsSold.Add(ctx, int64(units))
		m.orderValue.Record(ctx, e.TotalAmount.InexactFloat64())
	case *trade.OrderStatusChangedEvent:
		m.statusChanges.Add(ctx, 1, metric.WithAttributes(
			attribute.String("from", e.FromStatus.String()),
			attribute.String("to", e.ToStatus.String()),
		))
	case *catalog.ProductSoldOutEvent:
		m.productSoldOut.Add(ctx, 1, metric.WithAttributes(attribute.Bool("unique", e.IsUnique)))
	}
	return nil
}

var _ shared.EventHandler = (*StoreMetrics)(nil)
