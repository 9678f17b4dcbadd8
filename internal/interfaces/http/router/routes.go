package router

import (
	"slices"

	"github.com/atelier/storefront/internal/interfaces/http/handler"
	"github.com/gin-gonic/gin"
)

// Handlers groups the HTTP handlers served under the API base path
type Handlers struct {
	Product     *handler.ProductHandler
	Cart        *handler.CartHandler
	Order       *handler.OrderHandler
	PageContent *handler.PageContentHandler
	Portfolio   *handler.PortfolioHandler
	Admin       *handler.AdminHandler
	Upload      *handler.UploadHandler
}

// Guards holds the middleware placed in front of protected routes
type Guards struct {
	// Admin runs before every back-office route (JWT check, admin role)
	Admin []gin.HandlerFunc
	// Login runs before the login endpoint (rate limiting)
	Login []gin.HandlerFunc
}

// StorefrontGroups builds the public storefront routes and the back-office
// routes. Both share resource prefixes; only the admin group is guarded.
func StorefrontGroups(h Handlers, guards Guards) []*DomainGroup {
	public := NewDomainGroup("storefront", "")
	public.GET("/products", h.Product.List)
	public.GET("/products/:id", h.Product.GetByID)
	public.POST("/products/check-availability", h.Product.CheckAvailability)
	public.POST("/cart/verify", h.Cart.Verify)
	public.POST("/orders", h.Order.Place)
	public.GET("/page-content/:pageId", h.PageContent.Get)
	public.GET("/portfolio", h.Portfolio.List)
	public.POST("/admin/login", append(slices.Clone(guards.Login), h.Admin.Login)...)

	admin := NewDomainGroup("admin", "").Use(guards.Admin...)

	catalog := admin.Group("catalog", "/products")
	catalog.POST("", h.Product.Create)
	catalog.PUT("/:id", h.Product.Update)
	catalog.DELETE("/:id", h.Product.Delete)

	orders := admin.Group("orders", "/orders")
	orders.GET("", h.Order.List)
	orders.GET("/:id", h.Order.GetByID)
	orders.PUT("/:id/status", h.Order.UpdateStatus)

	pages := admin.Group("page-content", "/page-content")
	pages.GET("", h.PageContent.List)
	pages.PUT("/:pageId", h.PageContent.Upsert)

	portfolio := admin.Group("portfolio", "/portfolio")
	portfolio.POST("", h.Portfolio.Create)
	portfolio.POST("/reorder", h.Portfolio.Reorder)
	portfolio.PUT("/:id", h.Portfolio.Update)
	portfolio.DELETE("/:id", h.Portfolio.Delete)

	backOffice := admin.Group("back-office", "/admin")
	backOffice.POST("/logout", h.Admin.Logout)
	backOffice.GET("/dashboard", h.Admin.Dashboard)
	backOffice.GET("/stats", h.Admin.Stats)

	upload := admin.Group("upload", "/upload")
	upload.POST("", h.Upload.UploadImage)
	upload.POST("/multiple", h.Upload.UploadImages)
	upload.DELETE("", h.Upload.DeleteImage)

	return []*DomainGroup{public, admin}
}
