package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"comicvault-backend/internal/domains/collection/model"
	"comicvault-backend/internal/domains/collection/service"
	"comicvault-backend/internal/shared/response"
)

// MaxImportSize - giới hạn file import (5MiB)
const MaxImportSize = 5 << 20

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

// currentUserID - AuthMiddleware đã set "userID", thiếu là bug config router
func currentUserID(c *gin.Context) (uuid.UUID, bool) {
	value, exists := c.Get("userID")
	if !exists {
		response.Unauthorized(c, "Authentication required")
		return uuid.Nil, false
	}

	userID, ok := value.(uuid.UUID)
	if !ok {
		response.Unauthorized(c, "Authentication required")
		return uuid.Nil, false
	}

	return userID, true
}

// ListCollection - GET /api/collection
// Query params: sort (custom|asc|desc, default custom)
func (h *Handler) ListCollection(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	mode := model.ParseSortMode(c.DefaultQuery("sort", "custom"))

	result, err := h.service.List(c.Request.Context(), userID, mode)
	if err != nil {
		model.HandleCollectionError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Collection retrieved", result)
}

// AddItem - POST /api/collection
func (h *Handler) AddItem(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req model.AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	item, err := h.service.Add(c.Request.Context(), userID, req)
	if err != nil {
		model.HandleCollectionError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, "Comic added to collection", item)
}

// RemoveItem - DELETE /api/collection/:upc
func (h *Handler) RemoveItem(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	if err := h.service.Remove(c.Request.Context(), userID, c.Param("upc")); err != nil {
		model.HandleCollectionError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Comic removed from collection", nil)
}

// ClearCollection - DELETE /api/collection
func (h *Handler) ClearCollection(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	removed, err := h.service.Clear(c.Request.Context(), userID)
	if err != nil {
		model.HandleCollectionError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Collection cleared", gin.H{
		"removed": removed,
	})
}

// UpdateItem - PATCH /api/collection/:upc
func (h *Handler) UpdateItem(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req model.UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		model.HandleCollectionError(c, err)
		return
	}

	item, err := h.service.SetStarred(c.Request.Context(), userID, c.Param("upc"), *req.Starred)
	if err != nil {
		model.HandleCollectionError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Comic updated", item)
}

// ReorderCollection - PUT /api/collection/reorder
func (h *Handler) ReorderCollection(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req model.ReorderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	if err := h.service.Reorder(c.Request.Context(), userID, req); err != nil {
		model.HandleCollectionError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Collection reordered", nil)
}

// ExportCollection - GET /api/collection/export
// Query params: format (csv|xlsx, default csv)
func (h *Handler) ExportCollection(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	filename := fmt.Sprintf("collection-%s", time.Now().UTC().Format("2006-01-02"))

	switch c.DefaultQuery("format", "csv") {
	case "xlsx":
		c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s.xlsx"`, filename))
		if err := h.service.ExportXLSX(c.Request.Context(), userID, c.Writer); err != nil {
			model.HandleCollectionError(c, err)
		}

	case "csv":
		c.Header("Content-Type", "text/csv; charset=utf-8")
		c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s.csv"`, filename))
		if err := h.service.ExportCSV(c.Request.Context(), userID, c.Writer); err != nil {
			model.HandleCollectionError(c, err)
		}

	default:
		response.BadRequest(c, "Unsupported export format")
	}
}

// ImportCollection - POST /api/collection/import
// Multipart form, field "file" (CSV)
func (h *Handler) ImportCollection(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.BadRequest(c, "Import file is required")
		return
	}
	if fileHeader.Size > MaxImportSize {
		response.BadRequest(c, "Import file exceeds maximum size (5MB)")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		response.InternalServerError(c, "Failed to read import file")
		return
	}
	defer file.Close()

	result, err := h.service.ImportCSV(c.Request.Context(), userID, file)
	if err != nil {
		model.HandleCollectionError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Collection imported", result)
}
