package content

import (
	"context"

	"github.com/google/uuid"
)

// PageContentRepository defines the interface for page content persistence
type PageContentRepository interface {
	// FindByPageID finds the content of a page by its slug
	FindByPageID(ctx context.Context, pageID string) (*PageContent, error)

	// FindAll lists every page ordered by slug
	FindAll(ctx context.Context) ([]PageContent, error)

	// Save creates or updates page content
	Save(ctx context.Context, page *PageContent) error
}

// PortfolioRepository defines the interface for portfolio persistence
type PortfolioRepository interface {
	// FindByID finds a portfolio item by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*PortfolioItem, error)

	// FindAll lists items by display order, newest first among equals
	FindAll(ctx context.Context) ([]PortfolioItem, error)

	// MaxDisplayOrder returns the highest display order, or -1 when the gallery is empty
	MaxDisplayOrder(ctx context.Context) (int, error)

	// Save creates or updates a portfolio item
	Save(ctx context.Context, item *PortfolioItem) error

	// Delete deletes a portfolio item
	Delete(ctx context.Context, id uuid.UUID) error
}
