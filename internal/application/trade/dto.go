package trade

import (
	"time"

	"github.com/atelier/storefront/internal/domain/trade"
	"github.com/google/uuid"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

// PlaceOrderItemRequest is one line of the checkout cart.
// Name and price sent by the client are ignored; the catalog values are snapshotted.
type PlaceOrderItemRequest struct {
	ProductID uuid.UUID `json:"productId" binding:"required"`
	Quantity  int       `json:"quantity" binding:"required"`
}

// PlaceOrderRequest represents a checkout submission
type PlaceOrderRequest struct {
	CustomerName  string                  `json:"customerName" binding:"required,max=200"`
	CustomerEmail string                  `json:"customerEmail" binding:"required,max=320"`
	Items         []PlaceOrderItemRequest `json:"items" binding:"required,min=1,dive"`
	TotalAmount   *decimal.Decimal        `json:"totalAmount"`
}

// UpdateOrderStatusRequest represents an order status change
type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=pending confirmed shipped delivered cancelled"`
}

// OrderListFilter represents filter options for the order list
type OrderListFilter struct {
	Status   string `form:"status" binding:"omitempty,oneof=pending confirmed shipped delivered cancelled"`
	Page     int    `form:"page" binding:"min=0"`
	PageSize int    `form:"page_size" binding:"min=0,max=100"`
	OrderBy  string `form:"order_by" binding:"omitempty,oneof=created_at total_amount"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// OrderItemResponse is one snapshotted order line
type OrderItemResponse struct {
	ProductID uuid.UUID       `json:"productId"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
	ImageURL  string          `json:"imageUrl"`
	LineTotal decimal.Decimal `json:"lineTotal"`
}

// OrderResponse represents an order in API responses
type OrderResponse struct {
	ID            uuid.UUID           `json:"id"`
	CustomerName  string              `json:"customerName"`
	CustomerEmail string              `json:"customerEmail"`
	Items         []OrderItemResponse `json:"items"`
	TotalAmount   decimal.Decimal     `json:"totalAmount"`
	Status        string              `json:"status"`
	ItemCount     int                 `json:"itemCount"`
	ConfirmedAt   *time.Time          `json:"confirmedAt,omitempty"`
	ShippedAt     *time.Time          `json:"shippedAt,omitempty"`
	DeliveredAt   *time.Time          `json:"deliveredAt,omitempty"`
	CancelledAt   *time.Time          `json:"cancelledAt,omitempty"`
	CreatedAt     time.Time           `json:"createdAt"`
	UpdatedAt     time.Time           `json:"updatedAt"`
	Version       int                 `json:"version"`
}

// ToOrderResponse converts a domain Order to OrderResponse
func ToOrderResponse(o *trade.Order) OrderResponse {
	return OrderResponse{
		ID:            o.ID,
		CustomerName:  o.CustomerName,
		CustomerEmail: o.CustomerEmail,
		Items: lo.Map(o.Items, func(item trade.OrderItem, _ int) OrderItemResponse {
			return OrderItemResponse{
				ProductID: item.ProductID,
				Name:      item.Name,
				Price:     item.Price,
				Quantity:  item.Quantity,
				ImageURL:  item.ImageURL,
				LineTotal: item.LineTotal(),
			}
		}),
		TotalAmount: o.TotalAmount,
		Status:      string(o.Status),
		ItemCount:   o.ItemCount(),
		ConfirmedAt: o.ConfirmedAt,
		ShippedAt:   o.ShippedAt,
		DeliveredAt: o.DeliveredAt,
		CancelledAt: o.CancelledAt,
		CreatedAt:   o.CreatedAt,
		UpdatedAt:   o.UpdatedAt,
		Version:     o.Version,
	}
}

// ToOrderResponses converts a slice of domain Orders to responses
func ToOrderResponses(orders []trade.Order) []OrderResponse {
	return lo.Map(orders, func(o trade.Order, _ int) OrderResponse {
		return ToOrderResponse(&o)
	})
}
