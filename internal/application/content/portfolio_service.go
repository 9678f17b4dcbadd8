package content

import (
	"context"
	"strings"

	"github.com/atelier/storefront/internal/domain/content"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// portfolioFolder is the media folder gallery images are uploaded to
const portfolioFolder = "/portfolio/"

// PortfolioTransactionScope runs a batch of gallery updates atomically
type PortfolioTransactionScope interface {
	Execute(ctx context.Context, fn func(repo content.PortfolioRepository) error) error
}

// ImageRemover deletes hosted images that are no longer referenced
type ImageRemover interface {
	RemoveImages(ctx context.Context, urls ...string)
}

// PortfolioService handles portfolio gallery operations
type PortfolioService struct {
	repo         content.PortfolioRepository
	txScope      PortfolioTransactionScope
	imageRemover ImageRemover
	logger       *zap.Logger
}

// NewPortfolioService creates a new PortfolioService
func NewPortfolioService(repo content.PortfolioRepository, txScope PortfolioTransactionScope, logger *zap.Logger) *PortfolioService {
	return &PortfolioService{repo: repo, txScope: txScope, logger: logger}
}

// SetImageRemover sets the media cleanup used when items are deleted
func (s *PortfolioService) SetImageRemover(remover ImageRemover) {
	s.imageRemover = remover
}

// List returns the gallery by display order, newest first among equals
func (s *PortfolioService) List(ctx context.Context) ([]PortfolioItemResponse, error) {
	items, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return ToPortfolioItemResponses(items), nil
}

// Create appends an entry at the end of the gallery
func (s *PortfolioService) Create(ctx context.Context, req CreatePortfolioItemRequest) (*PortfolioItemResponse, error) {
	highest, err := s.repo.MaxDisplayOrder(ctx)
	if err != nil {
		return nil, err
	}
	next := highest + 1
	if highest < 0 {
		next = 1
	}

	item, err := content.NewPortfolioItem(req.Title, req.ImageURL, next)
	if err != nil {
		return nil, err
	}
	item.SetDescription(req.Description)
	item.SetFeatured(req.Featured)

	if err := s.repo.Save(ctx, item); err != nil {
		return nil, err
	}

	s.logger.Info("Portfolio item created",
		zap.String("item_id", item.ID.String()),
		zap.Int("display_order", item.DisplayOrder),
	)
	response := ToPortfolioItemResponse(item)
	return &response, nil
}

// Update applies a partial update to a gallery entry
func (s *PortfolioService) Update(ctx context.Context, id uuid.UUID, req UpdatePortfolioItemRequest) (*PortfolioItemResponse, error) {
	item, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		if err := item.Retitle(*req.Title); err != nil {
			return nil, err
		}
	}
	if req.Description != nil {
		item.SetDescription(*req.Description)
	}
	if req.ImageURL != nil {
		if err := item.SetImage(*req.ImageURL); err != nil {
			return nil, err
		}
	}
	if req.DisplayOrder != nil {
		if err := item.MoveTo(*req.DisplayOrder); err != nil {
			return nil, err
		}
	}
	if req.Featured != nil {
		item.SetFeatured(*req.Featured)
	}

	if err := s.repo.Save(ctx, item); err != nil {
		return nil, err
	}
	response := ToPortfolioItemResponse(item)
	return &response, nil
}

// Delete removes a gallery entry and its uploaded image
func (s *PortfolioService) Delete(ctx context.Context, id uuid.UUID) error {
	item, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	if s.imageRemover != nil && strings.Contains(item.ImageURL, portfolioFolder) {
		s.imageRemover.RemoveImages(ctx, item.ImageURL)
	}
	s.logger.Info("Portfolio item deleted", zap.String("item_id", id.String()))
	return nil
}

// Reorder sets each entry's display order to its position in the request.
// An unknown ID rolls the whole batch back.
func (s *PortfolioService) Reorder(ctx context.Context, req ReorderPortfolioRequest) ([]PortfolioItemResponse, error) {
	err := s.txScope.Execute(ctx, func(repo content.PortfolioRepository) error {
		for index, entry := range req.Items {
			item, err := repo.FindByID(ctx, entry.ID)
			if err != nil {
				return err
			}
			if err := item.MoveTo(index); err != nil {
				return err
			}
			if err := repo.Save(ctx, item); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.List(ctx)
}
