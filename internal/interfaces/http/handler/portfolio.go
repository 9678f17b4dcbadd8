package handler

import (
	contentapp "github.com/atelier/storefront/internal/application/content"
	"github.com/gin-gonic/gin"
)

// PortfolioHandler manages the gallery of past work
type PortfolioHandler struct {
	BaseHandler
	portfolioService *contentapp.PortfolioService
}

// NewPortfolioHandler creates a new PortfolioHandler
func NewPortfolioHandler(portfolioService *contentapp.PortfolioService) *PortfolioHandler {
	return &PortfolioHandler{portfolioService: portfolioService}
}

// List godoc
// @Summary      List portfolio items
// @Description  Sorted by display order, newest first on ties
// @Tags         portfolio
// @Produce      json
// @Success      200 {object} dto.Response{data=[]contentapp.PortfolioItemResponse}
// @Router       /portfolio [get]
func (h *PortfolioHandler) List(c *gin.Context) {
	items, err := h.portfolioService.List(c.Request.Context())
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, items)
}

// Create godoc
// @Summary      Add a portfolio item
// @Description  The item is appended after the current last position
// @Tags         portfolio
// @Accept       json
// @Produce      json
// @Param        request body contentapp.CreatePortfolioItemRequest true "Item"
// @Success      201 {object} dto.Response{data=contentapp.PortfolioItemResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /portfolio [post]
func (h *PortfolioHandler) Create(c *gin.Context) {
	var req contentapp.CreatePortfolioItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	item, err := h.portfolioService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Created(c, item)
}

// Update godoc
// @Summary      Update a portfolio item
// @Tags         portfolio
// @Accept       json
// @Produce      json
// @Param        id path string true "Item ID" format(uuid)
// @Param        request body contentapp.UpdatePortfolioItemRequest true "Fields to change"
// @Success      200 {object} dto.Response{data=contentapp.PortfolioItemResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /portfolio/{id} [put]
func (h *PortfolioHandler) Update(c *gin.Context) {
	id, ok := h.parseIDParam(c, "id", "portfolio item")
	if !ok {
		return
	}

	var req contentapp.UpdatePortfolioItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	item, err := h.portfolioService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, item)
}

// Delete godoc
// @Summary      Delete a portfolio item
// @Tags         portfolio
// @Param        id path string true "Item ID" format(uuid)
// @Success      204
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /portfolio/{id} [delete]
func (h *PortfolioHandler) Delete(c *gin.Context) {
	id, ok := h.parseIDParam(c, "id", "portfolio item")
	if !ok {
		return
	}

	if err := h.portfolioService.Delete(c.Request.Context(), id); err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.NoContent(c)
}

// Reorder godoc
// @Summary      Reorder the portfolio
// @Description  Each item takes its index in the submitted list as display order
// @Tags         portfolio
// @Accept       json
// @Produce      json
// @Param        request body contentapp.ReorderPortfolioRequest true "New order"
// @Success      200 {object} dto.Response{data=[]contentapp.PortfolioItemResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /portfolio/reorder [post]
func (h *PortfolioHandler) Reorder(c *gin.Context) {
	var req contentapp.ReorderPortfolioRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	items, err := h.portfolioService.Reorder(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, items)
}
