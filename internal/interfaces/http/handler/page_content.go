package handler

import (
	contentapp "github.com/atelier/storefront/internal/application/content"
	"github.com/gin-gonic/gin"
)

// PageContentHandler serves the editable site pages
type PageContentHandler struct {
	BaseHandler
	pageService *contentapp.PageService
}

// NewPageContentHandler creates a new PageContentHandler
func NewPageContentHandler(pageService *contentapp.PageService) *PageContentHandler {
	return &PageContentHandler{pageService: pageService}
}

// Get godoc
// @Summary      Get page content
// @Tags         page-content
// @Produce      json
// @Param        pageId path string true "Page slug" example(about)
// @Success      200 {object} dto.Response{data=contentapp.PageContentResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /page-content/{pageId} [get]
func (h *PageContentHandler) Get(c *gin.Context) {
	page, err := h.pageService.Get(c.Request.Context(), c.Param("pageId"))
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, page)
}

// List godoc
// @Summary      List all pages
// @Tags         page-content
// @Produce      json
// @Success      200 {object} dto.Response{data=[]contentapp.PageContentResponse}
// @Security     BearerAuth
// @Router       /page-content [get]
func (h *PageContentHandler) List(c *gin.Context) {
	pages, err := h.pageService.List(c.Request.Context())
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, pages)
}

// Upsert godoc
// @Summary      Create or replace page content
// @Tags         page-content
// @Accept       json
// @Produce      json
// @Param        pageId path string true "Page slug" example(about)
// @Param        request body contentapp.UpsertPageContentRequest true "Content"
// @Success      200 {object} dto.Response{data=contentapp.PageContentResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /page-content/{pageId} [put]
func (h *PageContentHandler) Upsert(c *gin.Context) {
	var req contentapp.UpsertPageContentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	page, err := h.pageService.Upsert(c.Request.Context(), c.Param("pageId"), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, page)
}
