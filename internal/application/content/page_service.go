// Package content serves editable page texts and the portfolio gallery.
package content

import (
	"context"
	"errors"

	"github.com/atelier/storefront/internal/domain/content"
	"github.com/atelier/storefront/internal/domain/shared"
	"github.com/samber/lo"
	"go.uber.org/zap"
)

// PageCache is a read-through cache of rendered pages keyed by page ID
type PageCache interface {
	Get(ctx context.Context, key string) (*PageContentResponse, bool)
	Set(ctx context.Context, key string, value *PageContentResponse)
	Invalidate(ctx context.Context, key string)
}

// PageService handles page content operations
type PageService struct {
	repo   content.PageContentRepository
	cache  PageCache
	logger *zap.Logger
}

// NewPageService creates a new PageService. cache may be nil.
func NewPageService(repo content.PageContentRepository, cache PageCache, logger *zap.Logger) *PageService {
	return &PageService{repo: repo, cache: cache, logger: logger}
}

// Get returns the content of a page
func (s *PageService) Get(ctx context.Context, pageID string) (*PageContentResponse, error) {
	if err := content.ValidatePageID(pageID); err != nil {
		return nil, err
	}
	if s.cache != nil {
		if cached, ok := s.cache.Get(ctx, pageID); ok {
			return cached, nil
		}
	}

	page, err := s.repo.FindByPageID(ctx, pageID)
	if err != nil {
		return nil, err
	}
	response := ToPageContentResponse(page)
	if s.cache != nil {
		s.cache.Set(ctx, pageID, &response)
	}
	return &response, nil
}

// List returns every page ordered by page ID
func (s *PageService) List(ctx context.Context) ([]PageContentResponse, error) {
	pages, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return lo.Map(pages, func(p content.PageContent, _ int) PageContentResponse {
		return ToPageContentResponse(&p)
	}), nil
}

// Upsert creates or replaces the content of a page
func (s *PageService) Upsert(ctx context.Context, pageID string, req UpsertPageContentRequest) (*PageContentResponse, error) {
	if err := content.ValidatePageID(pageID); err != nil {
		return nil, err
	}

	page, err := s.repo.FindByPageID(ctx, pageID)
	switch {
	case errors.Is(err, shared.ErrNotFound):
		page, err = content.NewPageContent(pageID, req.Title, req.Content)
		if err != nil {
			return nil, err
		}
	case err != nil:
		return nil, err
	default:
		if err := page.Edit(req.Title, req.Content); err != nil {
			return nil, err
		}
	}

	if err := s.repo.Save(ctx, page); err != nil {
		return nil, err
	}
	if s.cache != nil {
		s.cache.Invalidate(ctx, pageID)
	}

	s.logger.Info("Page content saved", zap.String("page_id", pageID))
	response := ToPageContentResponse(page)
	return &response, nil
}
