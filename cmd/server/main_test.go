package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/atelier/storefront/internal/infrastructure/storage"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServeMemoryMedia(t *testing.T) {
	gin.SetMode(gin.TestMode)
	store := storage.NewMemoryMediaStore("http://localhost:8080/media")
	_, err := store.Put(context.Background(), "projet-personnel/products/1-bowl.png", []byte("png"), "image/png")
	require.NoError(t, err)

	r := gin.New()
	r.GET("/media/*key", serveMemoryMedia(store))

	t.Run("stored object", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/media/projet-personnel/products/1-bowl.png", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "image/png", w.Header().Get("Content-Type"))
		assert.Equal(t, "png", w.Body.String())
	})

	t.Run("unknown key", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/media/missing.png", nil))

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
