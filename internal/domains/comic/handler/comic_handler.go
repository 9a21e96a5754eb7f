package handler

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"comicvault-backend/internal/domains/comic/model"
	"comicvault-backend/internal/domains/comic/service"
	"comicvault-backend/internal/shared/response"
)

// MaxUploadSize - giới hạn ảnh upload (10MiB)
const MaxUploadSize = 10 << 20

// Handler - HTTP Handler (single file)
type Handler struct {
	service service.ServiceInterface
}

// NewHandler - Constructor with DI
func NewHandler(service service.ServiceInterface) *Handler {
	return &Handler{
		service: service,
	}
}

// SearchComics - GET /api/comics
// Query params: search (raw UPC, whitespace được strip trước khi validate)
func (h *Handler) SearchComics(c *gin.Context) {
	rawUPC := c.Query("search")

	comic, err := h.service.SearchByUPC(c.Request.Context(), rawUPC)
	if err != nil {
		model.HandleComicError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Comic found", comic)
}

// UploadScanImage - POST /api/upload
// Multipart form, field "image". Decode barcode rồi lookup metadata.
func (h *Handler) UploadScanImage(c *gin.Context) {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		model.HandleComicError(c, model.ErrMissingImage)
		return
	}

	if fileHeader.Size > MaxUploadSize {
		model.HandleComicError(c, model.ErrImageTooLarge)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		response.InternalServerError(c, "Failed to read uploaded image")
		return
	}
	defer file.Close()

	image, err := io.ReadAll(io.LimitReader(file, MaxUploadSize+1))
	if err != nil {
		response.InternalServerError(c, "Failed to read uploaded image")
		return
	}
	if len(image) > MaxUploadSize {
		model.HandleComicError(c, model.ErrImageTooLarge)
		return
	}

	comic, err := h.service.ScanImage(c.Request.Context(), image, fileHeader.Filename)
	if err != nil {
		model.HandleComicError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Comic found", comic)
}
