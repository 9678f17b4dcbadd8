package handler

import (
	"bytes"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"

	mediaapp "github.com/atelier/storefront/internal/application/media"
	"github.com/atelier/storefront/internal/infrastructure/storage"
	"github.com/atelier/storefront/internal/interfaces/http/dto"
	"github.com/atelier/storefront/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type uploadPart struct {
	field       string
	filename    string
	contentType string
	data        []byte
}

func multipartBody(t *testing.T, parts ...uploadPart) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for _, p := range parts {
		header := make(textproto.MIMEHeader)
		header.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, p.field, p.filename))
		header.Set("Content-Type", p.contentType)
		w, err := mw.CreatePart(header)
		require.NoError(t, err)
		_, err = w.Write(p.data)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func setupUploadRouter(store *storage.MemoryMediaStore, cfg mediaapp.Config, bodyLimit int64) *gin.Engine {
	h := NewUploadHandler(mediaapp.NewService(store, cfg, zap.NewNop()))
	r := gin.New()
	r.Use(middleware.BodyLimit(bodyLimit))
	r.POST("/api/upload", h.UploadImage)
	r.POST("/api/upload/multiple", h.UploadImages)
	r.DELETE("/api/upload", h.DeleteImage)
	return r
}

func TestUploadHandler_UploadImage(t *testing.T) {
	store := storage.NewMemoryMediaStore("https://media.example.com")
	router := setupUploadRouter(store, mediaapp.DefaultConfig(), 0)

	body, contentType := multipartBody(t, uploadPart{"image", "Blue Bowl.JPG", "image/jpeg", []byte("jpeg-bytes")})
	req := httptest.NewRequest(http.MethodPost, "/api/upload?folder=Portfolio!", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	data := decodeResponse(t, w).Data.(map[string]any)
	key := data["key"].(string)
	assert.True(t, strings.HasPrefix(key, "projet-personnel/portfolio/"), key)
	assert.True(t, strings.HasSuffix(key, "-Blue-Bowl.jpg"), key)
	assert.Equal(t, "https://media.example.com/"+key, data["imageUrl"])

	_, ok := store.Get(key)
	assert.True(t, ok)
}

func TestUploadHandler_UploadImageRejections(t *testing.T) {
	tests := []struct {
		name string
		part uploadPart
	}{
		{"not an image", uploadPart{"image", "notes.txt", "text/plain", []byte("hello")}},
		{"disallowed extension", uploadPart{"image", "anim.gif", "image/gif", []byte("gif")}},
		{"empty file", uploadPart{"image", "empty.png", "image/png", nil}},
		{"wrong field", uploadPart{"file", "bowl.png", "image/png", []byte("png")}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := setupUploadRouter(storage.NewMemoryMediaStore(""), mediaapp.DefaultConfig(), 0)
			body, contentType := multipartBody(t, tt.part)
			req := httptest.NewRequest(http.MethodPost, "/api/upload", body)
			req.Header.Set("Content-Type", contentType)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestUploadHandler_FileTooLarge(t *testing.T) {
	cfg := mediaapp.DefaultConfig()
	cfg.MaxFileSize = 16
	router := setupUploadRouter(storage.NewMemoryMediaStore(""), cfg, 0)

	body, contentType := multipartBody(t, uploadPart{"image", "big.png", "image/png", bytes.Repeat([]byte("x"), 64)})
	req := httptest.NewRequest(http.MethodPost, "/api/upload", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decodeResponse(t, w).Error.Message, "exceeds")
}

func TestUploadHandler_BodyTooLarge(t *testing.T) {
	router := setupUploadRouter(storage.NewMemoryMediaStore(""), mediaapp.DefaultConfig(), 128)

	body, contentType := multipartBody(t, uploadPart{"image", "big.png", "image/png", bytes.Repeat([]byte("x"), 1024)})
	req := httptest.NewRequest(http.MethodPost, "/api/upload", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	assert.Equal(t, dto.ErrCodePayloadTooLarge, decodeResponse(t, w).Error.Code)
}

func TestUploadHandler_UploadImages(t *testing.T) {
	t.Run("stores every file", func(t *testing.T) {
		store := storage.NewMemoryMediaStore("")
		router := setupUploadRouter(store, mediaapp.DefaultConfig(), 0)

		body, contentType := multipartBody(t,
			uploadPart{"images", "a.png", "image/png", []byte("a")},
			uploadPart{"images", "b.jpg", "image/jpeg", []byte("b")},
		)
		req := httptest.NewRequest(http.MethodPost, "/api/upload/multiple", body)
		req.Header.Set("Content-Type", contentType)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		data := decodeResponse(t, w).Data.(map[string]any)
		assert.Len(t, data["images"], 2)
	})

	t.Run("one bad file rejects the batch", func(t *testing.T) {
		store := storage.NewMemoryMediaStore("")
		router := setupUploadRouter(store, mediaapp.DefaultConfig(), 0)

		body, contentType := multipartBody(t,
			uploadPart{"images", "a.png", "image/png", []byte("a")},
			uploadPart{"images", "b.txt", "text/plain", []byte("b")},
		)
		req := httptest.NewRequest(http.MethodPost, "/api/upload/multiple", body)
		req.Header.Set("Content-Type", contentType)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Zero(t, store.Len())
	})

	t.Run("too many files", func(t *testing.T) {
		cfg := mediaapp.DefaultConfig()
		cfg.MaxFiles = 1
		router := setupUploadRouter(storage.NewMemoryMediaStore(""), cfg, 0)

		body, contentType := multipartBody(t,
			uploadPart{"images", "a.png", "image/png", []byte("a")},
			uploadPart{"images", "b.png", "image/png", []byte("b")},
		)
		req := httptest.NewRequest(http.MethodPost, "/api/upload/multiple", body)
		req.Header.Set("Content-Type", contentType)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, decodeResponse(t, w).Error.Message, "At most 1")
	})
}

func TestUploadHandler_DeleteImage(t *testing.T) {
	store := storage.NewMemoryMediaStore("")
	router := setupUploadRouter(store, mediaapp.DefaultConfig(), 0)
	_, err := store.Put(t.Context(), "projet-personnel/products/1-bowl.png", []byte("x"), "image/png")
	require.NoError(t, err)

	t.Run("inside the media root", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/api/upload",
			jsonBody(t, map[string]string{"key": "projet-personnel/products/1-bowl.png"})))

		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Zero(t, store.Len())
	})

	t.Run("outside the media root", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/api/upload",
			jsonBody(t, map[string]string{"key": "other-site/logo.png"})))

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("missing key", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/api/upload", jsonBody(t, map[string]string{})))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, dto.ErrCodeValidation, decodeResponse(t, w).Error.Code)
	})
}
