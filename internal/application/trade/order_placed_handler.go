package trade

import (
	"context"
	"fmt"
	"time"

	"github.com/atelier/storefront/internal/domain/shared"
	"github.com/atelier/storefront/internal/domain/trade"
	"github.com/google/uuid"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// OrderConfirmationLine is one row of the confirmation email
type OrderConfirmationLine struct {
	Name      string
	Quantity  int
	UnitPrice decimal.Decimal
	LineTotal decimal.Decimal
}

// OrderConfirmation is what the customer receives after checkout
type OrderConfirmation struct {
	OrderID       uuid.UUID
	CustomerName  string
	CustomerEmail string
	Lines         []OrderConfirmationLine
	Total         decimal.Decimal
	PlacedAt      time.Time
}

// OrderNotifier delivers order confirmations to customers
type OrderNotifier interface {
	SendOrderConfirmation(ctx context.Context, confirmation OrderConfirmation) error
}

// OrderPlacedHandler sends the confirmation email when an order is placed.
// Delivery failures are logged and never affect the order.
type OrderPlacedHandler struct {
	notifier OrderNotifier
	logger   *zap.Logger
}

// NewOrderPlacedHandler creates a new handler for order placed events
func NewOrderPlacedHandler(notifier OrderNotifier, logger *zap.Logger) *OrderPlacedHandler {
	return &OrderPlacedHandler{notifier: notifier, logger: logger}
}

// EventTypes returns the event types this handler is interested in
func (h *OrderPlacedHandler) EventTypes() []string {
	return []string{trade.EventTypeOrderPlaced}
}

// Handle processes an OrderPlacedEvent
func (h *OrderPlacedHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	placed, ok := event.(*trade.OrderPlacedEvent)
	if !ok {
		h.logger.Error("unexpected event type",
			zap.String("expected", trade.EventTypeOrderPlaced),
			zap.String("actual", event.EventType()),
		)
		return fmt.Errorf("unexpected event type: expected %s, got %s",
			trade.EventTypeOrderPlaced, event.EventType())
	}

	confirmation := NewOrderConfirmation(placed)
	if err := h.notifier.SendOrderConfirmation(ctx, confirmation); err != nil {
		h.logger.Warn("failed to send order confirmation",
			zap.String("order_id", placed.OrderID.String()),
			zap.Error(err),
		)
		return nil
	}

	h.logger.Info("order confirmation sent", zap.String("order_id", placed.OrderID.String()))
	return nil
}

// NewOrderConfirmation builds the confirmation content from the event snapshot
func NewOrderConfirmation(event *trade.OrderPlacedEvent) OrderConfirmation {
	return OrderConfirmation{
		OrderID:       event.OrderID,
		CustomerName:  event.CustomerName,
		CustomerEmail: event.CustomerEmail,
		Lines: lo.Map(event.Items, func(item trade.OrderItemInfo, _ int) OrderConfirmationLine {
			return OrderConfirmationLine{
				Name:      item.Name,
				Quantity:  item.Quantity,
				UnitPrice: item.Price,
				LineTotal: item.Price.Mul(decimal.NewFromInt(int64(item.Quantity))),
			}
		}),
		Total:    event.TotalAmount,
		PlacedAt: event.OccurredAt(),
	}
}
