package models

import (
	"time"

	"github.com/atelier/storefront/internal/domain/trade"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderItemDocument is one line of the items JSON document
type OrderItemDocument struct {
	ProductID uuid.UUID       `json:"productId"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
	ImageURL  string          `json:"imageUrl,omitempty"`
}

// OrderModel is the persistence model for the Order domain entity.
type OrderModel struct {
	AggregateModel
	CustomerName  string              `gorm:"type:varchar(200);not null"`
	CustomerEmail string              `gorm:"type:varchar(254);not null;index"`
	Items         []OrderItemDocument `gorm:"type:jsonb;serializer:json;not null"`
	TotalAmount   decimal.Decimal     `gorm:"type:decimal(12,2);not null"`
	Status        trade.OrderStatus   `gorm:"type:varchar(20);not null;default:'pending';index"`
	ConfirmedAt   *time.Time
	ShippedAt     *time.Time
	DeliveredAt   *time.Time
	CancelledAt   *time.Time
}

// TableName returns the table name for GORM
func (OrderModel) TableName() string {
	return "orders"
}

// ToDomain converts the persistence model to a domain Order entity.
func (m *OrderModel) ToDomain() *trade.Order {
	o := &trade.Order{
		CustomerName:  m.CustomerName,
		CustomerEmail: m.CustomerEmail,
		Items:         make([]trade.OrderItem, len(m.Items)),
		TotalAmount:   m.TotalAmount,
		Status:        m.Status,
		ConfirmedAt:   m.ConfirmedAt,
		ShippedAt:     m.ShippedAt,
		DeliveredAt:   m.DeliveredAt,
		CancelledAt:   m.CancelledAt,
	}
	m.PopulateAggregateRoot(&o.BaseAggregateRoot)
	for i, item := range m.Items {
		o.Items[i] = trade.OrderItem{
			ProductID: item.ProductID,
			Name:      item.Name,
			Price:     item.Price,
			Quantity:  item.Quantity,
			ImageURL:  item.ImageURL,
		}
	}
	return o
}

// FromDomain populates the persistence model from a domain Order entity.
func (m *OrderModel) FromDomain(o *trade.Order) {
	m.FromDomainAggregateRoot(o.BaseAggregateRoot)
	m.CustomerName = o.CustomerName
	m.CustomerEmail = o.CustomerEmail
	m.Items = make([]OrderItemDocument, len(o.Items))
	for i, item := range o.Items {
		m.Items[i] = OrderItemDocument{
			ProductID: item.ProductID,
			Name:      item.Name,
			Price:     item.Price,
			Quantity:  item.Quantity,
			ImageURL:  item.ImageURL,
		}
	}
	m.TotalAmount = o.TotalAmount
	m.Status = o.Status
	m.ConfirmedAt = o.ConfirmedAt
	m.ShippedAt = o.ShippedAt
	m.DeliveredAt = o.DeliveredAt
	m.CancelledAt = o.CancelledAt
}

// OrderModelFromDomain creates a new persistence model from a domain Order entity.
func OrderModelFromDomain(o *trade.Order) *OrderModel {
	m := &OrderModel{}
	m.FromDomain(o)
	return m
}
