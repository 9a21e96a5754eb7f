package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"comicvault-backend/internal/domains/user/model"
	"comicvault-backend/internal/domains/user/service"
	"comicvault-backend/internal/shared/response"
)

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

// Register - POST /api/auth/register
func (h *Handler) Register(c *gin.Context) {
	var req model.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	user, err := h.service.Register(c.Request.Context(), req)
	if err != nil {
		model.HandleUserError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, "Account created", user)
}

// Login - POST /api/auth/login
func (h *Handler) Login(c *gin.Context) {
	var req model.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	result, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		model.HandleUserError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Login successful", result)
}

// Refresh - POST /api/auth/refresh
func (h *Handler) Refresh(c *gin.Context) {
	var req model.RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	result, err := h.service.Refresh(c.Request.Context(), req)
	if err != nil {
		model.HandleUserError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Token refreshed", result)
}
