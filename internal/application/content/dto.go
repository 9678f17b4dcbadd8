package content

import (
	"time"

	"github.com/atelier/storefront/internal/domain/content"
	"github.com/google/uuid"
	"github.com/samber/lo"
)

// UpsertPageContentRequest is the editable content of a page
type UpsertPageContentRequest struct {
	Title   string `json:"title" binding:"required"`
	Content string `json:"content" binding:"required"`
}

// PageContentResponse represents a page in API responses
type PageContentResponse struct {
	ID          uuid.UUID `json:"id"`
	PageID      string    `json:"pageId"`
	Title       string    `json:"title"`
	Content     string    `json:"content"`
	LastUpdated time.Time `json:"lastUpdated"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// CreatePortfolioItemRequest represents a new gallery entry
type CreatePortfolioItemRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	ImageURL    string `json:"imageUrl" binding:"required"`
	Featured    bool   `json:"featured"`
}

// UpdatePortfolioItemRequest represents a partial gallery entry update
type UpdatePortfolioItemRequest struct {
	Title        *string `json:"title" binding:"omitempty,min=1"`
	Description  *string `json:"description"`
	ImageURL     *string `json:"imageUrl" binding:"omitempty,min=1"`
	DisplayOrder *int    `json:"displayOrder" binding:"omitempty,min=0"`
	Featured     *bool   `json:"featured"`
}

// ReorderItemRequest is one entry of a reorder submission
type ReorderItemRequest struct {
	ID           uuid.UUID `json:"id" binding:"required"`
	DisplayOrder int       `json:"displayOrder"`
}

// ReorderPortfolioRequest lists gallery entries in their new order
type ReorderPortfolioRequest struct {
	Items []ReorderItemRequest `json:"items" binding:"required,min=1,dive"`
}

// PortfolioItemResponse represents a gallery entry in API responses
type PortfolioItemResponse struct {
	ID           uuid.UUID `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	ImageURL     string    `json:"imageUrl"`
	DisplayOrder int       `json:"displayOrder"`
	Featured     bool      `json:"featured"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// ToPageContentResponse converts a domain PageContent
func ToPageContentResponse(p *content.PageContent) PageContentResponse {
	return PageContentResponse{
		ID:          p.ID,
		PageID:      p.PageID,
		Title:       p.Title,
		Content:     p.Content,
		LastUpdated: p.LastUpdated,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

// ToPortfolioItemResponse converts a domain PortfolioItem
func ToPortfolioItemResponse(i *content.PortfolioItem) PortfolioItemResponse {
	return PortfolioItemResponse{
		ID:           i.ID,
		Title:        i.Title,
		Description:  i.Description,
		ImageURL:     i.ImageURL,
		DisplayOrder: i.DisplayOrder,
		Featured:     i.Featured,
		CreatedAt:    i.CreatedAt,
		UpdatedAt:    i.UpdatedAt,
	}
}

// ToPortfolioItemResponses converts a slice of domain PortfolioItems
func ToPortfolioItemResponses(items []content.PortfolioItem) []PortfolioItemResponse {
	return lo.Map(items, func(i content.PortfolioItem, _ int) PortfolioItemResponse {
		return ToPortfolioItemResponse(&i)
	})
}
