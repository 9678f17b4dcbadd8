package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryMediaStore(t *testing.T) {
	store := NewMemoryMediaStore("http://localhost:8080/media/")
	ctx := context.Background()

	url, err := store.Put(ctx, "shop/products/a.png", []byte("png"), "image/png")
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080/media/shop/products/a.png", url)

	obj, ok := store.Get("shop/products/a.png")
	require.True(t, ok)
	assert.Equal(t, "image/png", obj.ContentType)
	assert.Equal(t, 1, store.Len())

	key, ok := store.KeyFromURL(url)
	require.True(t, ok)
	require.NoError(t, store.Delete(ctx, key))
	assert.Equal(t, 0, store.Len())

	require.NoError(t, store.Delete(ctx, "missing"))
	assert.Error(t, store.Delete(ctx, ""))
}
