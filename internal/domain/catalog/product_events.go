package catalog

import (
	"github.com/atelier/storefront/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Aggregate type constant
const AggregateTypeProduct = "Product"

// Event type constants
const (
	EventTypeProductCreated = "ProductCreated"
	EventTypeProductSoldOut = "ProductSoldOut"
)

// ProductCreatedEvent is published when a new product is added to the catalog
type ProductCreatedEvent struct {
	shared.BaseDomainEvent
	ProductID uuid.UUID       `json:"product_id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
}

// NewProductCreatedEvent creates a new ProductCreatedEvent
func NewProductCreatedEvent(product *Product) *ProductCreatedEvent {
	return &ProductCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeProductCreated, AggregateTypeProduct, product.ID),
		ProductID:       product.ID,
		Name:            product.Name,
		Price:           product.Price,
	}
}

// ProductSoldOutEvent is published when the last unit of a product is reserved
type ProductSoldOutEvent struct {
	shared.BaseDomainEvent
	ProductID uuid.UUID `json:"product_id"`
	Name      string    `json:"name"`
	IsUnique  bool      `json:"is_unique"`
}

// NewProductSoldOutEvent creates a new ProductSoldOutEvent
func NewProductSoldOutEvent(product *Product) *ProductSoldOutEvent {
	return &ProductSoldOutEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeProductSoldOut, AggregateTypeProduct, product.ID),
		ProductID:       product.ID,
		Name:            product.Name,
		IsUnique:        product.IsUnique,
	}
}
