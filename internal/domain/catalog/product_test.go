package catalog

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

func newTestProduct(t *testing.T) *Product {
	t.Helper()
	product, err := NewProduct("Vase en grès", decimal.NewFromFloat(45.5), []ImageInput{
		{URL: "https://cdn.example.com/a.jpg"},
		{URL: "https://cdn.example.com/b.jpg"},
	})
	require.NoError(t, err)
	return product
}

func TestNewProduct(t *testing.T) {
	t.Run("creates product with valid inputs", func(t *testing.T) {
		product := newTestProduct(t)

		assert.Equal(t, "Vase en grès", product.Name)
		assert.True(t, product.Price.Equal(decimal.NewFromFloat(45.5)))
		assert.True(t, product.InStock)
		assert.False(t, product.IsUnique)
		assert.Nil(t, product.StockQuantity)
		assert.NotEmpty(t, product.ID)
		assert.Equal(t, 1, product.GetVersion())
		assert.Equal(t, "https://cdn.example.com/a.jpg", product.ImageURL)
		assert.Equal(t, "https://cdn.example.com/a.jpg", product.MainImageURL())
	})

	t.Run("publishes ProductCreated event", func(t *testing.T) {
		product := newTestProduct(t)

		events := product.GetDomainEvents()
		require.Len(t, events, 1)
		assert.Equal(t, EventTypeProductCreated, events[0].EventType())

		event, ok := events[0].(*ProductCreatedEvent)
		require.True(t, ok)
		assert.Equal(t, product.ID, event.ProductID)
		assert.Equal(t, product.Name, event.Name)
	})

	t.Run("fails without images", func(t *testing.T) {
		_, err := NewProduct("Bol", decimal.NewFromInt(10), nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "at least one image is required")
	})

	t.Run("fails with empty name", func(t *testing.T) {
		_, err := NewProduct("  ", decimal.NewFromInt(10), []ImageInput{{URL: "x"}})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "name cannot be empty")
	})

	t.Run("fails with name too long", func(t *testing.T) {
		_, err := NewProduct(strings.Repeat("a", 201), decimal.NewFromInt(10), []ImageInput{{URL: "x"}})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "cannot exceed 200 characters")
	})

	t.Run("counts accented names in characters", func(t *testing.T) {
		name := strings.Repeat("é", 200)
		product, err := NewProduct(name, decimal.NewFromInt(10), []ImageInput{{URL: "x"}})
		require.NoError(t, err)
		assert.Equal(t, name, product.Name)

		_, err = NewProduct(strings.Repeat("é", 201), decimal.NewFromInt(10), []ImageInput{{URL: "x"}})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "cannot exceed 200 characters")
	})

	t.Run("fails with negative price", func(t *testing.T) {
		_, err := NewProduct("Bol", decimal.NewFromInt(-1), []ImageInput{{URL: "x"}})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Price cannot be negative")
	})
}

func TestNormalizeImages(t *testing.T) {
	t.Run("first image is main when none flagged", func(t *testing.T) {
		images, err := NormalizeImages([]ImageInput{{URL: "a"}, {URL: "b"}})
		require.NoError(t, err)
		require.Len(t, images, 2)
		assert.True(t, images[0].IsMain)
		assert.False(t, images[1].IsMain)
		assert.Equal(t, 0, images[0].Order)
		assert.Equal(t, 1, images[1].Order)
	})

	t.Run("first flagged image wins", func(t *testing.T) {
		images, err := NormalizeImages([]ImageInput{{URL: "a"}, {URL: "b", IsMain: true}, {URL: "c", IsMain: true}})
		require.NoError(t, err)
		main := 0
		for _, img := range images {
			if img.IsMain {
				main++
				assert.Equal(t, "b", img.URL)
			}
		}
		assert.Equal(t, 1, main)
	})

	t.Run("explicit order sorts the gallery", func(t *testing.T) {
		images, err := NormalizeImages([]ImageInput{
			{URL: "a", Order: intPtr(5)},
			{URL: "b", Order: intPtr(2)},
		})
		require.NoError(t, err)
		assert.Equal(t, "b", images[0].URL)
		assert.Equal(t, "a", images[1].URL)
		assert.True(t, images[1].IsMain)
	})

	t.Run("rejects blank url", func(t *testing.T) {
		_, err := NormalizeImages([]ImageInput{{URL: " "}})
		require.Error(t, err)
	})
}

func TestProduct_SetLegacyImage(t *testing.T) {
	product := newTestProduct(t)

	require.NoError(t, product.SetLegacyImage("https://cdn.example.com/new.jpg"))

	require.Len(t, product.Images, 1)
	assert.True(t, product.Images[0].IsMain)
	assert.Equal(t, "https://cdn.example.com/new.jpg", product.ImageURL)
	assert.Equal(t, 2, product.GetVersion())
}

func TestProduct_MainImageURL_FallsBackToLegacy(t *testing.T) {
	product := &Product{ImageURL: "legacy.jpg"}
	assert.Equal(t, "legacy.jpg", product.MainImageURL())

	empty := &Product{}
	assert.Empty(t, empty.MainImageURL())
}

func TestProduct_Stock(t *testing.T) {
	t.Run("zero quantity takes product out of stock", func(t *testing.T) {
		product := newTestProduct(t)
		require.NoError(t, product.SetStockQuantity(intPtr(0)))
		assert.False(t, product.InStock)
		assert.False(t, product.IsAvailable())

		require.NoError(t, product.SetStockQuantity(intPtr(3)))
		assert.True(t, product.InStock)
		assert.True(t, product.IsAvailable())
	})

	t.Run("rejects negative quantity", func(t *testing.T) {
		product := newTestProduct(t)
		err := product.SetStockQuantity(intPtr(-1))
		require.Error(t, err)
	})

	t.Run("unique piece holds a single unit", func(t *testing.T) {
		product := newTestProduct(t)
		product.MarkUnique(true)
		require.NotNil(t, product.StockQuantity)
		assert.Equal(t, 1, *product.StockQuantity)

		err := product.SetStockQuantity(intPtr(2))
		require.Error(t, err)
	})

	t.Run("untracked stock is available while in stock", func(t *testing.T) {
		product := newTestProduct(t)
		assert.True(t, product.IsAvailable())
		product.SetInStock(false)
		assert.False(t, product.IsAvailable())
	})
}

func TestProduct_Reserve(t *testing.T) {
	t.Run("decrements tracked stock", func(t *testing.T) {
		product := newTestProduct(t)
		require.NoError(t, product.SetStockQuantity(intPtr(3)))
		product.ClearDomainEvents()

		require.NoError(t, product.Reserve(2))
		assert.Equal(t, 1, *product.StockQuantity)
		assert.True(t, product.InStock)
		assert.Empty(t, product.GetDomainEvents())
	})

	t.Run("last unit sells the product out", func(t *testing.T) {
		product := newTestProduct(t)
		require.NoError(t, product.SetStockQuantity(intPtr(2)))
		product.ClearDomainEvents()

		require.NoError(t, product.Reserve(2))
		assert.Equal(t, 0, *product.StockQuantity)
		assert.False(t, product.InStock)

		events := product.GetDomainEvents()
		require.Len(t, events, 1)
		assert.Equal(t, EventTypeProductSoldOut, events[0].EventType())
	})

	t.Run("fails when stock is short", func(t *testing.T) {
		product := newTestProduct(t)
		require.NoError(t, product.SetStockQuantity(intPtr(1)))

		err := product.Reserve(2)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Only 1 unit(s)")
		assert.Equal(t, 1, *product.StockQuantity)
	})

	t.Run("fails when out of stock", func(t *testing.T) {
		product := newTestProduct(t)
		product.SetInStock(false)
		err := product.Reserve(1)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no longer available")
	})

	t.Run("unique piece is sold with its first reservation", func(t *testing.T) {
		product := newTestProduct(t)
		product.MarkUnique(true)

		require.NoError(t, product.Reserve(1))
		assert.False(t, product.InStock)
		assert.Equal(t, 0, *product.StockQuantity)

		require.Error(t, product.Reserve(1))
	})

	t.Run("untracked stock is left untouched", func(t *testing.T) {
		product := newTestProduct(t)
		require.NoError(t, product.Reserve(10))
		assert.True(t, product.InStock)
		assert.Nil(t, product.StockQuantity)
	})

	t.Run("rejects non positive quantity", func(t *testing.T) {
		product := newTestProduct(t)
		require.Error(t, product.Reserve(0))
	})
}

func TestProduct_Release(t *testing.T) {
	t.Run("restores tracked stock", func(t *testing.T) {
		product := newTestProduct(t)
		require.NoError(t, product.SetStockQuantity(intPtr(1)))
		require.NoError(t, product.Reserve(1))

		require.NoError(t, product.Release(1))
		assert.Equal(t, 1, *product.StockQuantity)
		assert.True(t, product.InStock)
	})

	t.Run("unique piece comes back on sale", func(t *testing.T) {
		product := newTestProduct(t)
		product.MarkUnique(true)
		require.NoError(t, product.Reserve(1))

		require.NoError(t, product.Release(3))
		assert.Equal(t, 1, *product.StockQuantity)
		assert.True(t, product.InStock)
	})
}
