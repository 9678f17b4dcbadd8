package middleware

import (
	"net"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func newSwaggerRouter(cfg SwaggerConfig) *gin.Engine {
	router := gin.New()
	router.GET("/swagger/*any", SwaggerProtection(cfg), func(c *gin.Context) {
		c.String(http.StatusOK, "docs")
	})
	return router
}

func swaggerRequest(router *gin.Engine, remoteAddr string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/swagger/index.html", nil)
	req.RemoteAddr = remoteAddr
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestSwaggerProtection(t *testing.T) {
	t.Run("disabled", func(t *testing.T) {
		w := swaggerRequest(newSwaggerRouter(SwaggerConfig{Enabled: false}), "127.0.0.1:1")
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("open", func(t *testing.T) {
		w := swaggerRequest(newSwaggerRouter(SwaggerConfig{Enabled: true}), "203.0.113.9:1")
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("ip and cidr allow list", func(t *testing.T) {
		router := newSwaggerRouter(SwaggerConfig{
			Enabled:    true,
			AllowedIPs: []string{"127.0.0.1", "10.0.0.0/8"},
		})

		assert.Equal(t, http.StatusOK, swaggerRequest(router, "127.0.0.1:1").Code)
		assert.Equal(t, http.StatusOK, swaggerRequest(router, "10.20.30.40:1").Code)
		assert.Equal(t, http.StatusForbidden, swaggerRequest(router, "192.168.1.1:1").Code)
	})
}

func TestIsIPAllowed(t *testing.T) {
	ips, nets := parseAllowList([]string{"192.168.1.10", "172.16.0.0/12", "not-an-ip"})

	assert.True(t, isIPAllowed(net.ParseIP("192.168.1.10"), ips, nets))
	assert.True(t, isIPAllowed(net.ParseIP("172.20.1.1"), ips, nets))
	assert.False(t, isIPAllowed(net.ParseIP("8.8.8.8"), ips, nets))
	assert.False(t, isIPAllowed(nil, ips, nets))
	assert.Len(t, ips, 1)
	assert.Len(t, nets, 1)
}
