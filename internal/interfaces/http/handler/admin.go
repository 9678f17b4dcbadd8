package handler

import (
	adminapp "github.com/atelier/storefront/internal/application/admin"
	"github.com/atelier/storefront/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
)

// AdminHandler handles back-office authentication and the dashboard
type AdminHandler struct {
	BaseHandler
	authService  *adminapp.AuthService
	statsService *adminapp.StatsService
}

// NewAdminHandler creates a new AdminHandler
func NewAdminHandler(authService *adminapp.AuthService, statsService *adminapp.StatsService) *AdminHandler {
	return &AdminHandler{
		authService:  authService,
		statsService: statsService,
	}
}

// Login godoc
// @Summary      Admin login
// @Description  Exchanges the back-office credentials for a bearer token
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        request body adminapp.LoginRequest true "Credentials"
// @Success      200 {object} dto.Response{data=adminapp.LoginResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      429 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /admin/login [post]
func (h *AdminHandler) Login(c *gin.Context) {
	var req adminapp.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	token, err := h.authService.Login(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, token)
}

// Logout godoc
// @Summary      Admin logout
// @Description  Revokes the presented token until it expires
// @Tags         admin
// @Success      204
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /admin/logout [post]
func (h *AdminHandler) Logout(c *gin.Context) {
	if err := h.authService.Logout(c.Request.Context(), middleware.GetJWTClaims(c)); err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.NoContent(c)
}

// Dashboard godoc
// @Summary      Admin dashboard
// @Tags         admin
// @Produce      json
// @Success      200 {object} dto.Response{data=adminapp.DashboardResponse}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /admin/dashboard [get]
func (h *AdminHandler) Dashboard(c *gin.Context) {
	claims := middleware.GetJWTClaims(c)
	if claims == nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	h.Success(c, h.authService.Dashboard(claims))
}

// Stats godoc
// @Summary      Shop statistics
// @Description  Product and order counts, revenue of non-cancelled orders and the latest orders
// @Tags         admin
// @Produce      json
// @Success      200 {object} dto.Response{data=adminapp.StatsResponse}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /admin/stats [get]
func (h *AdminHandler) Stats(c *gin.Context) {
	stats, err := h.statsService.Stats(c.Request.Context())
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, stats)
}
