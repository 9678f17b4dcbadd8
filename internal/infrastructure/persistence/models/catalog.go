package models

import (
	"github.com/atelier/storefront/internal/domain/catalog"
	"github.com/shopspring/decimal"
)

// ProductImageDocument is one entry of the images JSON document
type ProductImageDocument struct {
	URL    string `json:"url"`
	IsMain bool   `json:"isMain"`
	Order  int    `json:"order"`
}

// ProductModel is the persistence model for the Product domain entity.
type ProductModel struct {
	AggregateModel
	Name          string                 `gorm:"type:varchar(200);not null;index"`
	Description   string                 `gorm:"type:text"`
	Price         decimal.Decimal        `gorm:"type:decimal(12,2);not null"`
	Images        []ProductImageDocument `gorm:"type:jsonb;serializer:json;not null"`
	ImageURL      string                 `gorm:"type:varchar(1024)"`
	InStock       bool                   `gorm:"not null;default:true;index"`
	IsUnique      bool                   `gorm:"not null;default:false"`
	StockQuantity *int
}

// TableName returns the table name for GORM
func (ProductModel) TableName() string {
	return "products"
}

// ToDomain converts the persistence model to a domain Product entity.
func (m *ProductModel) ToDomain() *catalog.Product {
	p := &catalog.Product{
		Name:        m.Name,
		Description: m.Description,
		Price:       m.Price,
		Images:      make([]catalog.ProductImage, len(m.Images)),
		ImageURL:    m.ImageURL,
		InStock:     m.InStock,
		IsUnique:    m.IsUnique,
	}
	m.PopulateAggregateRoot(&p.BaseAggregateRoot)
	for i, img := range m.Images {
		p.Images[i] = catalog.ProductImage{URL: img.URL, IsMain: img.IsMain, Order: img.Order}
	}
	if m.StockQuantity != nil {
		q := *m.StockQuantity
		p.StockQuantity = &q
	}
	return p
}

// FromDomain populates the persistence model from a domain Product entity.
func (m *ProductModel) FromDomain(p *catalog.Product) {
	m.FromDomainAggregateRoot(p.BaseAggregateRoot)
	m.Name = p.Name
	m.Description = p.Description
	m.Price = p.Price
	m.Images = make([]ProductImageDocument, len(p.Images))
	for i, img := range p.Images {
		m.Images[i] = ProductImageDocument{URL: img.URL, IsMain: img.IsMain, Order: img.Order}
	}
	m.ImageURL = p.ImageURL
	m.InStock = p.InStock
	m.IsUnique = p.IsUnique
	m.StockQuantity = p.StockQuantity
}

// ProductModelFromDomain creates a new persistence model from a domain Product entity.
func ProductModelFromDomain(p *catalog.Product) *ProductModel {
	m := &ProductModel{}
	m.FromDomain(p)
	return m
}
