package persistence

import (
	"context"
	"errors"

	"github.com/atelier/storefront/internal/domain/content"
	"github.com/atelier/storefront/internal/domain/shared"
	"github.com/atelier/storefront/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormPageContentRepository implements PageContentRepository using GORM
type GormPageContentRepository struct {
	db *gorm.DB
}

// NewGormPageContentRepository creates a new GormPageContentRepository
func NewGormPageContentRepository(db *gorm.DB) *GormPageContentRepository {
	return &GormPageContentRepository{db: db}
}

// FindByPageID finds the content of a page by its slug
func (r *GormPageContentRepository) FindByPageID(ctx context.Context, pageID string) (*content.PageContent, error) {
	var model models.PageContentModel
	if err := r.db.WithContext(ctx).First(&model, "page_id = ?", pageID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll lists every page ordered by slug
func (r *GormPageContentRepository) FindAll(ctx context.Context) ([]content.PageContent, error) {
	var rows []models.PageContentModel
	if err := r.db.WithContext(ctx).Order("page_id ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	pages := make([]content.PageContent, len(rows))
	for i := range rows {
		pages[i] = *rows[i].ToDomain()
	}
	return pages, nil
}

// Save creates or updates the page identified by its slug
func (r *GormPageContentRepository) Save(ctx context.Context, page *content.PageContent) error {
	model := &models.PageContentModel{}
	model.FromDomain(page)

	result := r.db.WithContext(ctx).Model(&models.PageContentModel{}).
		Where("page_id = ?", page.PageID).
		Updates(map[string]any{
			"title":        model.Title,
			"content":      model.Content,
			"last_updated": model.LastUpdated,
			"updated_at":   model.UpdatedAt,
			"version":      model.Version,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected > 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(model).Error
}

// Ensure GormPageContentRepository implements PageContentRepository
var _ content.PageContentRepository = (*GormPageContentRepository)(nil)
