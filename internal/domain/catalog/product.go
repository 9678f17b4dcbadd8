package catalog

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/atelier/storefront/internal/domain/shared"
	"github.com/shopspring/decimal"
)

const maxProductNameLength = 200

// Product is a sellable item of the shop catalog.
// It is the aggregate root for the product gallery and its inventory state.
type Product struct {
	shared.BaseAggregateRoot
	Name          string
	Description   string
	Price         decimal.Decimal
	Images        []ProductImage
	ImageURL      string // legacy single image, mirrors the main image
	InStock       bool
	IsUnique      bool
	StockQuantity *int // nil means quantity is not tracked
}

// NewProduct creates a new in-stock product with a normalized gallery
func NewProduct(name string, price decimal.Decimal, images []ImageInput) (*Product, error) {
	if err := validateProductName(name); err != nil {
		return nil, err
	}
	if err := validatePrice(price); err != nil {
		return nil, err
	}
	gallery, err := NormalizeImages(images)
	if err != nil {
		return nil, err
	}

	product := &Product{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              strings.TrimSpace(name),
		Price:             price,
		InStock:           true,
	}
	product.setGallery(gallery)

	product.AddDomainEvent(NewProductCreatedEvent(product))

	return product, nil
}

// Rename changes the product name
func (p *Product) Rename(name string) error {
	if err := validateProductName(name); err != nil {
		return err
	}
	p.Name = strings.TrimSpace(name)
	p.touch()
	return nil
}

// SetDescription replaces the product description
func (p *Product) SetDescription(description string) {
	p.Description = description
	p.touch()
}

// SetPrice changes the selling price
func (p *Product) SetPrice(price decimal.Decimal) error {
	if err := validatePrice(price); err != nil {
		return err
	}
	p.Price = price
	p.touch()
	return nil
}

// ReplaceImages replaces the whole gallery
func (p *Product) ReplaceImages(images []ImageInput) error {
	gallery, err := NormalizeImages(images)
	if err != nil {
		return err
	}
	p.setGallery(gallery)
	p.touch()
	return nil
}

// SetLegacyImage replaces the gallery with a single main image
func (p *Product) SetLegacyImage(url string) error {
	return p.ReplaceImages([]ImageInput{{URL: url, IsMain: true}})
}

// MarkUnique flags the product as a one-off piece. A unique piece holds a
// single unit of stock.
func (p *Product) MarkUnique(unique bool) {
	p.IsUnique = unique
	if unique {
		one := 1
		if !p.InStock {
			one = 0
		}
		p.StockQuantity = &one
	}
	p.touch()
}

// SetStockQuantity sets the tracked quantity, or stops tracking it when nil.
// A zero quantity takes the product out of stock and a positive one puts it back.
func (p *Product) SetStockQuantity(quantity *int) error {
	if quantity != nil {
		if *quantity < 0 {
			return shared.NewDomainError("INVALID_QUANTITY", "Stock quantity cannot be negative")
		}
		if p.IsUnique && *quantity > 1 {
			return shared.NewDomainError("INVALID_QUANTITY", "A unique piece cannot hold more than one unit")
		}
		q := *quantity
		p.StockQuantity = &q
		p.InStock = q > 0
	} else {
		p.StockQuantity = nil
	}
	p.touch()
	return nil
}

// SetInStock toggles availability without changing the tracked quantity
func (p *Product) SetInStock(inStock bool) {
	p.InStock = inStock
	p.touch()
}

// MainImageURL returns the URL shown on listings
func (p *Product) MainImageURL() string {
	if img, ok := mainImage(p.Images); ok {
		return img.URL
	}
	return p.ImageURL
}

// IsAvailable reports whether at least one unit can be sold
func (p *Product) IsAvailable() bool {
	if !p.InStock {
		return false
	}
	return p.StockQuantity == nil || *p.StockQuantity > 0
}

// Reserve takes quantity units out of stock for an order
func (p *Product) Reserve(quantity int) error {
	if quantity < 1 {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if !p.IsAvailable() {
		return shared.NewDomainError("INSUFFICIENT_STOCK", fmt.Sprintf("%s is no longer available", p.Name))
	}
	if p.IsUnique && quantity > 1 {
		return shared.NewDomainError("INSUFFICIENT_STOCK", fmt.Sprintf("%s is a unique piece", p.Name))
	}
	if p.StockQuantity != nil {
		if *p.StockQuantity < quantity {
			return shared.NewDomainError("INSUFFICIENT_STOCK",
				fmt.Sprintf("Only %d unit(s) of %s left", *p.StockQuantity, p.Name))
		}
		left := *p.StockQuantity - quantity
		p.StockQuantity = &left
		if left == 0 {
			p.InStock = false
		}
	}
	if p.IsUnique {
		p.InStock = false
	}
	p.touch()

	if !p.InStock {
		p.AddDomainEvent(NewProductSoldOutEvent(p))
	}
	return nil
}

// Release puts quantity units back in stock, typically after a cancellation
func (p *Product) Release(quantity int) error {
	if quantity < 1 {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if p.StockQuantity != nil {
		restored := *p.StockQuantity + quantity
		if p.IsUnique && restored > 1 {
			restored = 1
		}
		p.StockQuantity = &restored
		p.InStock = true
	} else if p.IsUnique {
		p.InStock = true
	}
	p.touch()
	return nil
}

func (p *Product) touch() {
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
}

func (p *Product) setGallery(images []ProductImage) {
	p.Images = images
	if img, ok := mainImage(images); ok {
		p.ImageURL = img.URL
	}
}

func validateProductName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Product name cannot be empty")
	}
	if utf8.RuneCountInString(name) > maxProductNameLength {
		return shared.NewDomainError("INVALID_NAME", "Product name cannot exceed 200 characters")
	}
	return nil
}

func validatePrice(price decimal.Decimal) error {
	if price.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Price cannot be negative")
	}
	return nil
}
