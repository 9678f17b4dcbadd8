package persistence

import (
	"context"
	"errors"

	"github.com/atelier/storefront/internal/domain/content"
	"github.com/atelier/storefront/internal/domain/shared"
	"github.com/atelier/storefront/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormPortfolioRepository implements PortfolioRepository using GORM
type GormPortfolioRepository struct {
	db *gorm.DB
}

// NewGormPortfolioRepository creates a new GormPortfolioRepository
func NewGormPortfolioRepository(db *gorm.DB) *GormPortfolioRepository {
	return &GormPortfolioRepository{db: db}
}

// WithTx returns a copy of the repository bound to the given transaction
func (r *GormPortfolioRepository) WithTx(tx *gorm.DB) *GormPortfolioRepository {
	return &GormPortfolioRepository{db: tx}
}

// FindByID finds a portfolio item by its ID
func (r *GormPortfolioRepository) FindByID(ctx context.Context, id uuid.UUID) (*content.PortfolioItem, error) {
	var model models.PortfolioItemModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll lists items by display order, newest first among equals
func (r *GormPortfolioRepository) FindAll(ctx context.Context) ([]content.PortfolioItem, error) {
	var rows []models.PortfolioItemModel
	if err := r.db.WithContext(ctx).
		Order("display_order ASC").
		Order("created_at DESC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	items := make([]content.PortfolioItem, len(rows))
	for i := range rows {
		items[i] = *rows[i].ToDomain()
	}
	return items, nil
}

// MaxDisplayOrder returns the highest display order, or -1 when the gallery is empty
func (r *GormPortfolioRepository) MaxDisplayOrder(ctx context.Context) (int, error) {
	var max int
	row := r.db.WithContext(ctx).Model(&models.PortfolioItemModel{}).
		Select("COALESCE(MAX(display_order), -1)").
		Row()
	if err := row.Scan(&max); err != nil {
		return 0, err
	}
	return max, nil
}

// Save creates or updates a portfolio item
func (r *GormPortfolioRepository) Save(ctx context.Context, item *content.PortfolioItem) error {
	model := &models.PortfolioItemModel{}
	model.FromDomain(item)
	return saveVersioned(r.db.WithContext(ctx), model, &item.BaseAggregateRoot)
}

// Delete deletes a portfolio item
func (r *GormPortfolioRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.PortfolioItemModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Ensure GormPortfolioRepository implements PortfolioRepository
var _ content.PortfolioRepository = (*GormPortfolioRepository)(nil)
