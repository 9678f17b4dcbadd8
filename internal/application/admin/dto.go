package admin

import (
	"time"

	apptrade "github.com/atelier/storefront/internal/application/trade"
	"github.com/shopspring/decimal"
)

// LoginRequest carries the back-office credentials
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse is the issued bearer token
type LoginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// DashboardResponse greets the signed-in administrator
type DashboardResponse struct {
	Message string      `json:"message"`
	User    CurrentUser `json:"user"`
}

// CurrentUser is the identity carried by the token
type CurrentUser struct {
	Username string `json:"username"`
	Role     string `json:"role"`
}

// StatsResponse summarizes the shop activity
type StatsResponse struct {
	TotalProducts  int64                    `json:"totalProducts"`
	TotalOrders    int64                    `json:"totalOrders"`
	OrdersByStatus map[string]int64         `json:"ordersByStatus"`
	Revenue        decimal.Decimal          `json:"revenue"`
	RecentActivity []apptrade.OrderResponse `json:"recentActivity"`
}
