package model

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/rs/zerolog/log"

	"comicvault-backend/internal/shared/response"
)

var (
	ErrEmailAlreadyExists = errors.New("email already registered")

	// ErrInvalidCredentials - một message cho cả sai email lẫn sai
	// password, không leak account tồn tại hay không
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrInvalidRefreshToken - token hết hạn, sai type, hoặc user đã bị xóa
	ErrInvalidRefreshToken = errors.New("invalid or expired refresh token")
)

// HandleUserError translates domain errors sang HTTP response
func HandleUserError(c *gin.Context, err error) bool {
	if err == nil {
		return false
	}

	var vErrs validation.Errors
	if errors.As(err, &vErrs) {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Validation failed", vErrs)
		return true
	}

	switch {
	case errors.Is(err, ErrEmailAlreadyExists):
		response.ErrorResponse(c, http.StatusConflict, "EMAIL_EXISTS", err.Error())
		return true

	case errors.Is(err, ErrInvalidCredentials):
		response.ErrorResponse(c, http.StatusUnauthorized, "INVALID_CREDENTIALS", err.Error())
		return true

	case errors.Is(err, ErrInvalidRefreshToken):
		response.ErrorResponse(c, http.StatusUnauthorized, "INVALID_REFRESH_TOKEN", err.Error())
		return true
	}

	log.Error().Err(err).Msg("[User] Unexpected error")
	response.InternalServerError(c, "Internal server error")
	return true
}
