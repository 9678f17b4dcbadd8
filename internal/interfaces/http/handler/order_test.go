package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	cartapp "github.com/atelier/storefront/internal/application/cart"
	tradeapp "github.com/atelier/storefront/internal/application/trade"
	"github.com/atelier/storefront/internal/domain/catalog"
	"github.com/atelier/storefront/internal/domain/trade"
	"github.com/atelier/storefront/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type orderFixture struct {
	products *MockProductRepository
	orders   *MockOrderRepository
	router   *gin.Engine
}

func newOrderFixture() *orderFixture {
	f := &orderFixture{products: new(MockProductRepository), orders: new(MockOrderRepository)}
	scope := &stubTxScope{products: f.products, orders: f.orders}
	h := NewOrderHandler(tradeapp.NewOrderService(f.products, f.orders, scope, zap.NewNop()))
	cart := NewCartHandler(cartapp.NewService(f.products))

	f.router = gin.New()
	f.router.POST("/api/orders", h.Place)
	f.router.GET("/api/orders", h.List)
	f.router.GET("/api/orders/:id", h.GetByID)
	f.router.PUT("/api/orders/:id/status", h.UpdateStatus)
	f.router.POST("/api/cart/verify", cart.Verify)
	return f
}

func checkoutBody(t *testing.T, productID uuid.UUID, quantity int, total string) map[string]any {
	t.Helper()
	body := map[string]any{
		"customerName":  "Ada Lovelace",
		"customerEmail": "ada@example.com",
		"items":         []map[string]any{{"productId": productID.String(), "quantity": quantity}},
	}
	if total != "" {
		body["totalAmount"] = total
	}
	return body
}

func TestOrderHandler_Place(t *testing.T) {
	f := newOrderFixture()
	product := newTestProduct(t, "mug", "24.50")
	qty := 3
	require.NoError(t, product.SetStockQuantity(&qty))

	f.products.On("FindByIDs", mock.Anything, []uuid.UUID{product.ID}).Return([]catalog.Product{*product}, nil)
	f.products.On("FindByIDForUpdate", mock.Anything, product.ID).Return(product, nil)
	f.products.On("Save", mock.Anything, product).Return(nil)
	f.orders.On("Save", mock.Anything, mock.MatchedBy(func(o *trade.Order) bool {
		return o.TotalAmount.Equal(decimal.RequireFromString("49")) && o.Status == trade.OrderStatusPending
	})).Return(nil)

	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/orders", jsonBody(t, checkoutBody(t, product.ID, 2, "49.00"))))

	require.Equal(t, http.StatusCreated, w.Code)
	data := decodeResponse(t, w).Data.(map[string]any)
	assert.Equal(t, "pending", data["status"])
	assert.Equal(t, "49", data["totalAmount"])
	require.NotNil(t, product.StockQuantity)
	assert.Equal(t, 1, *product.StockQuantity)
	f.products.AssertExpectations(t)
	f.orders.AssertExpectations(t)
}

func TestOrderHandler_PlaceCartOutOfDate(t *testing.T) {
	f := newOrderFixture()
	product := newTestProduct(t, "vase", "180")
	product.SetInStock(false)
	f.products.On("FindByIDs", mock.Anything, []uuid.UUID{product.ID}).Return([]catalog.Product{*product}, nil)

	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/orders", jsonBody(t, checkoutBody(t, product.ID, 1, ""))))

	require.Equal(t, http.StatusConflict, w.Code)
	resp := decodeResponse(t, w)
	assert.Equal(t, dto.ErrCodeCartOutOfDate, resp.Error.Code)
	details := resp.Error.Details.(map[string]any)
	assert.Equal(t, []any{product.ID.String()}, details["unavailableItems"])
	f.orders.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestOrderHandler_PlaceTotalMismatch(t *testing.T) {
	f := newOrderFixture()
	product := newTestProduct(t, "bowl", "32")
	f.products.On("FindByIDs", mock.Anything, []uuid.UUID{product.ID}).Return([]catalog.Product{*product}, nil)
	f.products.On("FindByIDForUpdate", mock.Anything, product.ID).Return(product, nil)

	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/orders", jsonBody(t, checkoutBody(t, product.ID, 1, "30.00"))))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, dto.ErrCodeTotalMismatch, decodeResponse(t, w).Error.Code)
	f.orders.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestOrderHandler_PlaceValidation(t *testing.T) {
	tests := []struct {
		name string
		body map[string]any
	}{
		{"missing items", map[string]any{"customerName": "Ada", "customerEmail": "ada@example.com"}},
		{"empty items", map[string]any{"customerName": "Ada", "customerEmail": "ada@example.com", "items": []any{}}},
		{"missing name", map[string]any{"customerEmail": "ada@example.com", "items": []map[string]any{{"productId": uuid.NewString(), "quantity": 1}}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newOrderFixture()
			w := httptest.NewRecorder()
			f.router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/orders", jsonBody(t, tt.body)))

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, dto.ErrCodeValidation, decodeResponse(t, w).Error.Code)
		})
	}

	t.Run("invalid email", func(t *testing.T) {
		f := newOrderFixture()
		body := checkoutBody(t, uuid.New(), 1, "")
		body["customerEmail"] = "not-an-email"

		w := httptest.NewRecorder()
		f.router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/orders", jsonBody(t, body)))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "ERR_INVALID_EMAIL", decodeResponse(t, w).Error.Code)
	})
}

func newTestOrder(t *testing.T) *trade.Order {
	t.Helper()
	item, err := trade.NewOrderItem(uuid.New(), "Mug", decimal.RequireFromString("24.50"), 2, "")
	require.NoError(t, err)
	order, err := trade.NewOrder("Ada", "ada@example.com", []trade.OrderItem{item})
	require.NoError(t, err)
	order.ClearDomainEvents()
	return order
}

func TestOrderHandler_List(t *testing.T) {
	f := newOrderFixture()
	orders := []trade.Order{*newTestOrder(t)}
	f.orders.On("FindAll", mock.Anything, mock.Anything).Return(orders, nil)
	f.orders.On("Count", mock.Anything, mock.Anything).Return(int64(1), nil)

	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/orders?status=pending", nil))

	require.Equal(t, http.StatusOK, w.Code)
	resp := decodeResponse(t, w)
	assert.Len(t, resp.Data, 1)
	assert.Equal(t, int64(1), resp.Meta.Total)
}

func TestOrderHandler_UpdateStatus(t *testing.T) {
	t.Run("confirms a pending order", func(t *testing.T) {
		f := newOrderFixture()
		order := newTestOrder(t)
		f.orders.On("FindByIDForUpdate", mock.Anything, order.ID).Return(order, nil)
		f.orders.On("Save", mock.Anything, order).Return(nil)

		w := httptest.NewRecorder()
		f.router.ServeHTTP(w, httptest.NewRequest(http.MethodPut, "/api/orders/"+order.ID.String()+"/status",
			jsonBody(t, map[string]string{"status": "confirmed"})))

		require.Equal(t, http.StatusOK, w.Code)
		data := decodeResponse(t, w).Data.(map[string]any)
		assert.Equal(t, "confirmed", data["status"])
	})

	t.Run("rejects an illegal transition", func(t *testing.T) {
		f := newOrderFixture()
		order := newTestOrder(t)
		f.orders.On("FindByIDForUpdate", mock.Anything, order.ID).Return(order, nil)

		w := httptest.NewRecorder()
		f.router.ServeHTTP(w, httptest.NewRequest(http.MethodPut, "/api/orders/"+order.ID.String()+"/status",
			jsonBody(t, map[string]string{"status": "delivered"})))

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.Equal(t, dto.ErrCodeInvalidState, decodeResponse(t, w).Error.Code)
	})

	t.Run("rejects an unknown status", func(t *testing.T) {
		f := newOrderFixture()

		w := httptest.NewRecorder()
		f.router.ServeHTTP(w, httptest.NewRequest(http.MethodPut, "/api/orders/"+uuid.NewString()+"/status",
			jsonBody(t, map[string]string{"status": "lost"})))

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestCartHandler_Verify(t *testing.T) {
	f := newOrderFixture()
	inStock := newTestProduct(t, "cup", "12")
	limited := newTestProduct(t, "plate", "18")
	two := 2
	require.NoError(t, limited.SetStockQuantity(&two))
	deleted := uuid.New()

	f.products.On("FindByIDs", mock.Anything, mock.Anything).Return([]catalog.Product{*inStock, *limited}, nil)

	body := map[string]any{"items": []map[string]any{
		{"productId": inStock.ID.String(), "quantity": 1},
		{"productId": limited.ID.String(), "quantity": 5},
		{"productId": deleted.String(), "quantity": 1},
	}}
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/cart/verify", jsonBody(t, body)))

	require.Equal(t, http.StatusOK, w.Code)
	data := decodeResponse(t, w).Data.(map[string]any)
	assert.Equal(t, false, data["valid"])
	assert.Equal(t, []any{deleted.String()}, data["unavailableItems"])

	updates := data["updatesToApply"].([]any)
	require.Len(t, updates, 2)
	byType := make(map[string]map[string]any)
	for _, u := range updates {
		patch := u.(map[string]any)
		byType[patch["type"].(string)] = patch
	}
	assert.Equal(t, "deleted", byType["markUnavailable"]["reason"])
	assert.Equal(t, float64(2), byType["updateQuantity"]["quantity"])
}
