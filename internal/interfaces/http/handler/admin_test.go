package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	adminapp "github.com/atelier/storefront/internal/application/admin"
	"github.com/atelier/storefront/internal/domain/trade"
	"github.com/atelier/storefront/internal/infrastructure/auth"
	"github.com/atelier/storefront/internal/infrastructure/config"
	"github.com/atelier/storefront/internal/interfaces/http/dto"
	"github.com/atelier/storefront/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type adminFixture struct {
	jwt       *auth.JWTService
	blacklist *auth.InMemoryTokenBlacklist
	products  *MockProductRepository
	orders    *MockOrderRepository
	router    *gin.Engine
}

func newAdminFixture(t *testing.T) *adminFixture {
	t.Helper()
	creds, err := auth.NewAdminCredentials(config.AdminConfig{Username: "admin", Password: "s3cret-pass"})
	require.NoError(t, err)

	f := &adminFixture{
		jwt: auth.NewJWTService(config.JWTConfig{
			Secret:     "handler-test-secret-with-32-chars!",
			Expiration: time.Hour,
			Issuer:     "storefront-test",
		}),
		blacklist: auth.NewInMemoryTokenBlacklist(),
		products:  new(MockProductRepository),
		orders:    new(MockOrderRepository),
	}
	h := NewAdminHandler(
		adminapp.NewAuthService(creds, f.jwt, f.blacklist, zap.NewNop()),
		adminapp.NewStatsService(f.products, f.orders),
	)

	guard := middleware.JWTAuthMiddlewareWithConfig(middleware.JWTMiddlewareConfig{
		JWTService:     f.jwt,
		TokenBlacklist: f.blacklist,
	})
	f.router = gin.New()
	f.router.POST("/api/admin/login", h.Login)
	admin := f.router.Group("/api/admin", guard, middleware.RequireAdmin())
	admin.POST("/logout", h.Logout)
	admin.GET("/dashboard", h.Dashboard)
	admin.GET("/stats", h.Stats)
	return f
}

func (f *adminFixture) authorized(t *testing.T, method, path string) *http.Request {
	t.Helper()
	token, err := f.jwt.GenerateToken("admin", auth.RoleAdmin)
	require.NoError(t, err)
	req := httptest.NewRequest(method, path, nil)
	req.Header.Set("Authorization", "Bearer "+token.Value)
	return req
}

func TestAdminHandler_Login(t *testing.T) {
	t.Run("valid credentials", func(t *testing.T) {
		f := newAdminFixture(t)

		w := httptest.NewRecorder()
		body := jsonBody(t, map[string]string{"username": "admin", "password": "s3cret-pass"})
		f.router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/admin/login", body))

		require.Equal(t, http.StatusOK, w.Code)
		data := decodeResponse(t, w).Data.(map[string]any)
		token, ok := data["token"].(string)
		require.True(t, ok)

		claims, err := f.jwt.ValidateToken(token)
		require.NoError(t, err)
		assert.Equal(t, "admin", claims.Username)
		assert.True(t, claims.IsAdmin())
	})

	t.Run("wrong password", func(t *testing.T) {
		f := newAdminFixture(t)

		w := httptest.NewRecorder()
		body := jsonBody(t, map[string]string{"username": "admin", "password": "guess"})
		f.router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/admin/login", body))

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, dto.ErrCodeInvalidCredentials, decodeResponse(t, w).Error.Code)
	})

	t.Run("missing fields", func(t *testing.T) {
		f := newAdminFixture(t)

		w := httptest.NewRecorder()
		f.router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/admin/login", jsonBody(t, map[string]string{})))

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestAdminHandler_Dashboard(t *testing.T) {
	f := newAdminFixture(t)

	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, f.authorized(t, http.MethodGet, "/api/admin/dashboard"))

	require.Equal(t, http.StatusOK, w.Code)
	data := decodeResponse(t, w).Data.(map[string]any)
	user := data["user"].(map[string]any)
	assert.Equal(t, "admin", user["username"])
	assert.Equal(t, auth.RoleAdmin, user["role"])
}

func TestAdminHandler_LogoutRevokesToken(t *testing.T) {
	f := newAdminFixture(t)
	req := f.authorized(t, http.MethodPost, "/api/admin/logout")

	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	require.Equal(t, http.StatusNoContent, w.Code)

	replay := httptest.NewRequest(http.MethodGet, "/api/admin/dashboard", nil)
	replay.Header.Set("Authorization", req.Header.Get("Authorization"))
	w = httptest.NewRecorder()
	f.router.ServeHTTP(w, replay)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, dto.CodeTokenRevoked, decodeResponse(t, w).Error.Code)
}

func TestAdminHandler_Stats(t *testing.T) {
	f := newAdminFixture(t)
	f.products.On("Count", mock.Anything, mock.Anything).Return(int64(12), nil)
	f.orders.On("CountByStatus", mock.Anything).Return(map[trade.OrderStatus]int64{
		trade.OrderStatusPending:   2,
		trade.OrderStatusCancelled: 1,
	}, nil)
	f.orders.On("SumRevenue", mock.Anything).Return(decimal.RequireFromString("310.50"), nil)
	f.orders.On("FindAll", mock.Anything, mock.Anything).Return([]trade.Order{*newTestOrder(t)}, nil)

	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, f.authorized(t, http.MethodGet, "/api/admin/stats"))

	require.Equal(t, http.StatusOK, w.Code)
	data := decodeResponse(t, w).Data.(map[string]any)
	assert.Equal(t, float64(12), data["totalProducts"])
	assert.Equal(t, float64(3), data["totalOrders"])
	assert.Equal(t, "310.5", data["revenue"])
	assert.Len(t, data["recentActivity"], 1)
	byStatus := data["ordersByStatus"].(map[string]any)
	assert.Equal(t, float64(0), byStatus["shipped"])
}

func TestAdminHandler_RequiresToken(t *testing.T) {
	f := newAdminFixture(t)

	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/admin/stats", nil))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	f.orders.AssertNotCalled(t, "SumRevenue", mock.Anything)
}
