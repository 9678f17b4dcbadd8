package handler

import (
	cartapp "github.com/atelier/storefront/internal/application/cart"
	"github.com/gin-gonic/gin"
)

// CartHandler verifies client-side carts against inventory
type CartHandler struct {
	BaseHandler
	cartService *cartapp.Service
}

// NewCartHandler creates a new CartHandler
func NewCartHandler(cartService *cartapp.Service) *CartHandler {
	return &CartHandler{cartService: cartService}
}

// Verify godoc
// @Summary      Verify a cart
// @Description  Reconciles cart lines with current stock and returns the patches the client should apply
// @Tags         cart
// @Accept       json
// @Produce      json
// @Param        request body cartapp.VerifyRequest true "Cart lines"
// @Success      200 {object} dto.Response{data=cartapp.VerifyResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /cart/verify [post]
func (h *CartHandler) Verify(c *gin.Context) {
	var req cartapp.VerifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	result, err := h.cartService.Verify(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, result)
}
