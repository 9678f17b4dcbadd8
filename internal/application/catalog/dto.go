package catalog

import (
	"time"

	"github.com/atelier/storefront/internal/domain/catalog"
	"github.com/google/uuid"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

// ImageRequest is one gallery image submitted by the back office
type ImageRequest struct {
	URL    string `json:"url" binding:"required"`
	IsMain bool   `json:"isMain"`
	Order  *int   `json:"order" binding:"omitempty,min=0"`
}

// CreateProductRequest represents a request to create a new product
type CreateProductRequest struct {
	Name          string          `json:"name" binding:"required,min=1,max=200"`
	Description   string          `json:"description"`
	Price         decimal.Decimal `json:"price" binding:"required"`
	Images        []ImageRequest  `json:"images" binding:"omitempty,dive"`
	ImageURL      string          `json:"imageUrl"`
	InStock       *bool           `json:"inStock"`
	IsUnique      bool            `json:"isUnique"`
	StockQuantity *int            `json:"stockQuantity" binding:"omitempty,min=0"`
}

// UpdateProductRequest represents a partial product update
type UpdateProductRequest struct {
	Name          *string          `json:"name" binding:"omitempty,min=1,max=200"`
	Description   *string          `json:"description"`
	Price         *decimal.Decimal `json:"price"`
	Images        []ImageRequest   `json:"images" binding:"omitempty,dive"`
	ImageURL      *string          `json:"imageUrl"`
	InStock       *bool            `json:"inStock"`
	IsUnique      *bool            `json:"isUnique"`
	StockQuantity *int             `json:"stockQuantity" binding:"omitempty,min=0"`
}

// CheckAvailabilityRequest lists the products a client wants fresh data for
type CheckAvailabilityRequest struct {
	ProductIDs []uuid.UUID `json:"productIds" binding:"required"`
}

// ProductListFilter represents filter options for the product list
type ProductListFilter struct {
	Search   string `form:"search"`
	InStock  *bool  `form:"in_stock"`
	Page     int    `form:"page" binding:"min=0"`
	PageSize int    `form:"page_size" binding:"min=0,max=100"`
	OrderBy  string `form:"order_by" binding:"omitempty,oneof=created_at name price"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// ProductImageResponse is one gallery image in API responses
type ProductImageResponse struct {
	URL    string `json:"url"`
	IsMain bool   `json:"isMain"`
	Order  int    `json:"order"`
}

// ProductResponse represents a product in API responses
type ProductResponse struct {
	ID            uuid.UUID              `json:"id"`
	Name          string                 `json:"name"`
	Description   string                 `json:"description"`
	Price         decimal.Decimal        `json:"price"`
	Images        []ProductImageResponse `json:"images"`
	ImageURL      string                 `json:"imageUrl"`
	MainImageURL  string                 `json:"mainImageUrl"`
	InStock       bool                   `json:"inStock"`
	IsUnique      bool                   `json:"isUnique"`
	StockQuantity *int                   `json:"stockQuantity"`
	CreatedAt     time.Time              `json:"createdAt"`
	UpdatedAt     time.Time              `json:"updatedAt"`
	Version       int                    `json:"version"`
}

// CheckAvailabilityResponse carries the current state of the requested products
type CheckAvailabilityResponse struct {
	Products []ProductResponse `json:"products"`
}

// ToProductResponse converts a domain Product to ProductResponse
func ToProductResponse(p *catalog.Product) ProductResponse {
	return ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Images: lo.Map(p.Images, func(img catalog.ProductImage, _ int) ProductImageResponse {
			return ProductImageResponse{URL: img.URL, IsMain: img.IsMain, Order: img.Order}
		}),
		ImageURL:      p.ImageURL,
		MainImageURL:  p.MainImageURL(),
		InStock:       p.InStock,
		IsUnique:      p.IsUnique,
		StockQuantity: p.StockQuantity,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
		Version:       p.Version,
	}
}

// ToProductResponses converts a slice of domain Products to responses
func ToProductResponses(products []catalog.Product) []ProductResponse {
	return lo.Map(products, func(p catalog.Product, _ int) ProductResponse {
		return ToProductResponse(&p)
	})
}

func toImageInputs(images []ImageRequest) []catalog.ImageInput {
	return lo.Map(images, func(img ImageRequest, _ int) catalog.ImageInput {
		return catalog.ImageInput{URL: img.URL, IsMain: img.IsMain, Order: img.Order}
	})
}
