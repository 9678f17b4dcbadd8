package models

import (
	"time"

	"github.com/atelier/storefront/internal/domain/content"
)

// PageContentModel is the persistence model for the PageContent domain entity.
type PageContentModel struct {
	AggregateModel
	PageID      string    `gorm:"type:varchar(64);not null;uniqueIndex"`
	Title       string    `gorm:"type:varchar(255);not null"`
	Content     string    `gorm:"type:text;not null"`
	LastUpdated time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (PageContentModel) TableName() string {
	return "page_contents"
}

// ToDomain converts the persistence model to a domain PageContent entity.
func (m *PageContentModel) ToDomain() *content.PageContent {
	p := &content.PageContent{
		PageID:      m.PageID,
		Title:       m.Title,
		Content:     m.Content,
		LastUpdated: m.LastUpdated,
	}
	m.PopulateAggregateRoot(&p.BaseAggregateRoot)
	return p
}

// FromDomain populates the persistence model from a domain PageContent entity.
func (m *PageContentModel) FromDomain(p *content.PageContent) {
	m.FromDomainAggregateRoot(p.BaseAggregateRoot)
	m.PageID = p.PageID
	m.Title = p.Title
	m.Content = p.Content
	m.LastUpdated = p.LastUpdated
}

// PortfolioItemModel is the persistence model for the PortfolioItem domain entity.
type PortfolioItemModel struct {
	AggregateModel
	Title        string `gorm:"type:varchar(255);not null"`
	Description  string `gorm:"type:text"`
	ImageURL     string `gorm:"type:varchar(1024);not null"`
	DisplayOrder int    `gorm:"not null;default:0;index"`
	Featured     bool   `gorm:"not null;default:false"`
}

// TableName returns the table name for GORM
func (PortfolioItemModel) TableName() string {
	return "portfolio_items"
}

// ToDomain converts the persistence model to a domain PortfolioItem entity.
func (m *PortfolioItemModel) ToDomain() *content.PortfolioItem {
	i := &content.PortfolioItem{
		Title:        m.Title,
		Description:  m.Description,
		ImageURL:     m.ImageURL,
		DisplayOrder: m.DisplayOrder,
		Featured:     m.Featured,
	}
	m.PopulateAggregateRoot(&i.BaseAggregateRoot)
	return i
}

// FromDomain populates the persistence model from a domain PortfolioItem entity.
func (m *PortfolioItemModel) FromDomain(i *content.PortfolioItem) {
	m.FromDomainAggregateRoot(i.BaseAggregateRoot)
	m.Title = i.Title
	m.Description = i.Description
	m.ImageURL = i.ImageURL
	m.DisplayOrder = i.DisplayOrder
	m.Featured = i.Featured
}

// AllModels returns every persistence model, in creation order, for AutoMigrate
func AllModels() []any {
	return []any{
		&ProductModel{},
		&OrderModel{},
		&PageContentModel{},
		&PortfolioItemModel{},
	}
}
