package handler

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	mediaapp "github.com/atelier/storefront/internal/application/media"
	"github.com/atelier/storefront/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
)

// UploadHandler stores images on the media service
type UploadHandler struct {
	BaseHandler
	mediaService *mediaapp.Service
}

// NewUploadHandler creates a new UploadHandler
func NewUploadHandler(mediaService *mediaapp.Service) *UploadHandler {
	return &UploadHandler{mediaService: mediaService}
}

// UploadImage godoc
// @Summary      Upload an image
// @Description  Stores one jpg/jpeg/png image of at most 5 MB
// @Tags         upload
// @Accept       multipart/form-data
// @Produce      json
// @Param        folder query string false "Target folder" default(products)
// @Param        image formData file true "Image file"
// @Success      200 {object} dto.Response{data=mediaapp.UploadedImage}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      413 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /upload [post]
func (h *UploadHandler) UploadImage(c *gin.Context) {
	header, err := c.FormFile("image")
	if err != nil {
		h.uploadError(c, err, "No image provided")
		return
	}

	file, err := h.readFile(header)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	uploaded, err := h.mediaService.Upload(c.Request.Context(), c.Query("folder"), file)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, uploaded)
}

// UploadImages godoc
// @Summary      Upload several images
// @Description  Stores up to 10 images; the request fails as a whole if one file is rejected
// @Tags         upload
// @Accept       multipart/form-data
// @Produce      json
// @Param        folder query string false "Target folder" default(products)
// @Param        images formData file true "Image files"
// @Success      200 {object} dto.Response{data=mediaapp.UploadedImages}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      413 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /upload/multiple [post]
func (h *UploadHandler) UploadImages(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		h.uploadError(c, err, "Invalid multipart form")
		return
	}
	headers := form.File["images"]
	if len(headers) == 0 {
		h.BadRequest(c, "No image provided")
		return
	}
	if len(headers) > h.mediaService.MaxFiles() {
		h.BadRequest(c, fmt.Sprintf("At most %d images can be uploaded at once", h.mediaService.MaxFiles()))
		return
	}

	files := make([]mediaapp.File, 0, len(headers))
	for _, header := range headers {
		file, err := h.readFile(header)
		if err != nil {
			h.HandleDomainError(c, err)
			return
		}
		files = append(files, file)
	}

	uploaded, err := h.mediaService.UploadMany(c.Request.Context(), c.Query("folder"), files)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, uploaded)
}

// DeleteImage godoc
// @Summary      Delete an image
// @Description  Removes an object stored under the media root
// @Tags         upload
// @Accept       json
// @Param        request body mediaapp.DeleteImageRequest true "Object key"
// @Success      204
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /upload [delete]
func (h *UploadHandler) DeleteImage(c *gin.Context) {
	var req mediaapp.DeleteImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	if err := h.mediaService.Delete(c.Request.Context(), req.Key); err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.NoContent(c)
}

// readFile loads a multipart file, reading at most one byte past the size limit
// so oversized files are still detected by the media service.
func (h *UploadHandler) readFile(header *multipart.FileHeader) (mediaapp.File, error) {
	f, err := header.Open()
	if err != nil {
		return mediaapp.File{}, fmt.Errorf("failed to open upload %s: %w", header.Filename, err)
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, h.mediaService.MaxFileSize()+1))
	if err != nil {
		return mediaapp.File{}, fmt.Errorf("failed to read upload %s: %w", header.Filename, err)
	}
	return mediaapp.File{
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Data:        data,
	}, nil
}

// uploadError answers a multipart parsing failure, distinguishing oversized bodies
func (h *UploadHandler) uploadError(c *gin.Context, err error, message string) {
	var maxBytesErr *http.MaxBytesError
	if errors.As(err, &maxBytesErr) {
		h.Error(c, http.StatusRequestEntityTooLarge, dto.ErrCodePayloadTooLarge, "Request body exceeds maximum allowed size")
		return
	}
	h.BadRequest(c, message)
}
