package content

import (
	"strings"
	"time"

	"github.com/atelier/storefront/internal/domain/shared"
)

// PortfolioItem is a showcased piece of work in the public gallery
type PortfolioItem struct {
	shared.BaseAggregateRoot
	Title        string
	Description  string
	ImageURL     string
	DisplayOrder int
	Featured     bool
}

// NewPortfolioItem creates a gallery entry placed at displayOrder
func NewPortfolioItem(title, imageURL string, displayOrder int) (*PortfolioItem, error) {
	if err := validatePortfolioTitle(title); err != nil {
		return nil, err
	}
	if err := validatePortfolioImage(imageURL); err != nil {
		return nil, err
	}
	if displayOrder < 0 {
		return nil, shared.NewDomainError("INVALID_ORDER", "Display order cannot be negative")
	}
	return &PortfolioItem{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Title:             strings.TrimSpace(title),
		ImageURL:          strings.TrimSpace(imageURL),
		DisplayOrder:      displayOrder,
	}, nil
}

// Retitle changes the title
func (i *PortfolioItem) Retitle(title string) error {
	if err := validatePortfolioTitle(title); err != nil {
		return err
	}
	i.Title = strings.TrimSpace(title)
	i.touch()
	return nil
}

// SetDescription replaces the description
func (i *PortfolioItem) SetDescription(description string) {
	i.Description = description
	i.touch()
}

// SetImage replaces the image
func (i *PortfolioItem) SetImage(imageURL string) error {
	if err := validatePortfolioImage(imageURL); err != nil {
		return err
	}
	i.ImageURL = strings.TrimSpace(imageURL)
	i.touch()
	return nil
}

// SetFeatured toggles the featured flag
func (i *PortfolioItem) SetFeatured(featured bool) {
	i.Featured = featured
	i.touch()
}

// MoveTo changes the position in the gallery
func (i *PortfolioItem) MoveTo(displayOrder int) error {
	if displayOrder < 0 {
		return shared.NewDomainError("INVALID_ORDER", "Display order cannot be negative")
	}
	i.DisplayOrder = displayOrder
	i.touch()
	return nil
}

func (i *PortfolioItem) touch() {
	i.UpdatedAt = time.Now()
	i.IncrementVersion()
}

func validatePortfolioTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return shared.NewDomainError("INVALID_INPUT", "Title is required")
	}
	return nil
}

func validatePortfolioImage(imageURL string) error {
	if strings.TrimSpace(imageURL) == "" {
		return shared.NewDomainError("INVALID_INPUT", "Image URL is required")
	}
	return nil
}

