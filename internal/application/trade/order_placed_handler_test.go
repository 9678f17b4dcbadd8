package trade

import (
	"context"
	"errors"
	"testing"

	"github.com/atelier/storefront/internal/domain/catalog"
	"github.com/atelier/storefront/internal/domain/trade"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	"go.uber.org/zap/zapcore"
)

type MockOrderNotifier struct {
	mock.Mock
}

func (m *MockOrderNotifier) SendOrderConfirmation(ctx context.Context, confirmation OrderConfirmation) error {
	return m.Called(ctx, confirmation).Error(0)
}

func placedEvent(t *testing.T) *trade.OrderPlacedEvent {
	t.Helper()
	p := testProduct(t, "teapot", "32.25")
	item, err := trade.NewOrderItem(p.ID, p.Name, p.Price, 2, p.MainImageURL())
	require.NoError(t, err)
	order, err := trade.NewOrder("Ada", "ada@example.com", []trade.OrderItem{item})
	require.NoError(t, err)
	return trade.NewOrderPlacedEvent(order)
}

func TestOrderPlacedHandler_SendsConfirmation(t *testing.T) {
	ctx := context.Background()
	notifier := new(MockOrderNotifier)
	h := NewOrderPlacedHandler(notifier, zap.NewNop())
	event := placedEvent(t)

	notifier.On("SendOrderConfirmation", ctx, mock.MatchedBy(func(c OrderConfirmation) bool {
		return c.CustomerEmail == "ada@example.com" &&
			len(c.Lines) == 1 &&
			c.Lines[0].LineTotal.Equal(decimal.RequireFromString("64.50")) &&
			c.Total.Equal(decimal.RequireFromString("64.50"))
	})).Return(nil)

	assert.Equal(t, []string{trade.EventTypeOrderPlaced}, h.EventTypes())
	require.NoError(t, h.Handle(ctx, event))
	notifier.AssertExpectations(t)
}

func TestOrderPlacedHandler_DeliveryFailureIsLogged(t *testing.T) {
	ctx := context.Background()
	core, logs := observer.New(zapcore.WarnLevel)
	notifier := new(MockOrderNotifier)
	h := NewOrderPlacedHandler(notifier, zap.New(core))

	notifier.On("SendOrderConfirmation", ctx, mock.Anything).Return(errors.New("smtp down"))

	require.NoError(t, h.Handle(ctx, placedEvent(t)))
	assert.Equal(t, 1, logs.FilterMessage("failed to send order confirmation").Len())
}

func TestOrderPlacedHandler_RejectsOtherEvents(t *testing.T) {
	h := NewOrderPlacedHandler(new(MockOrderNotifier), zap.NewNop())
	p := testProduct(t, "jug", "15")

	err := h.Handle(context.Background(), catalog.NewProductCreatedEvent(p))

	assert.Error(t, err)
}
