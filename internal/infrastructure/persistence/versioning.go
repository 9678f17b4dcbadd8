package persistence

import (
	"github.com/atelier/storefront/internal/domain/shared"
	"gorm.io/gorm"
)

// saveVersioned inserts a new aggregate, or updates a stored one only while its row
// still carries the version the aggregate was loaded at.
func saveVersioned(db *gorm.DB, model any, root *shared.BaseAggregateRoot) error {
	if root.IsNew() {
		if err := db.Create(model).Error; err != nil {
			return err
		}
		root.MarkPersisted()
		return nil
	}

	result := db.Model(model).
		Where("id = ? AND version = ?", root.ID, root.PersistedVersion()).
		Select("*").
		Omit("created_at").
		Updates(model)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrConcurrencyConflict
	}
	root.MarkPersisted()
	return nil
}
