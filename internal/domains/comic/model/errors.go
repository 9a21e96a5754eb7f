package model

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"comicvault-backend/internal/shared/response"
	"comicvault-backend/internal/shared/upc"
)

var (
	// ErrBarcodeNotFound covers "no barcode in image" AND decoder
	// timeout/transport failure - callers cannot tell them apart
	ErrBarcodeNotFound = errors.New("no barcode detected in image")

	// ErrIssueNotFound - UPC valid nhưng Metron không có record
	ErrIssueNotFound = errors.New("comic not found for this UPC")

	// ErrLookupTimeout - metadata lookup vượt quá METRON_TIMEOUT_SECONDS
	ErrLookupTimeout = errors.New("metadata lookup timed out")

	ErrMissingImage  = errors.New("image file is required")
	ErrImageTooLarge = errors.New("image exceeds maximum size (10MB)")
)

// ProviderError - Metron trả về non-success status
type ProviderError struct {
	Status int
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("metadata provider returned status %d", e.Status)
}

// HandleComicError translates domain errors sang HTTP response.
// Returns true nếu err đã được handle (caller phải return).
func HandleComicError(c *gin.Context, err error) bool {
	if err == nil {
		return false
	}

	switch {
	case errors.Is(err, upc.ErrMissingInput),
		errors.Is(err, upc.ErrNonDigitCharacters),
		errors.Is(err, upc.ErrWrongLength):
		response.ErrorResponse(c, http.StatusBadRequest, "INVALID_UPC", err.Error())
		return true

	case errors.Is(err, ErrMissingImage):
		response.ErrorResponse(c, http.StatusBadRequest, "MISSING_IMAGE", err.Error())
		return true

	case errors.Is(err, ErrImageTooLarge):
		response.ErrorResponse(c, http.StatusBadRequest, "IMAGE_TOO_LARGE", err.Error())
		return true

	case errors.Is(err, ErrBarcodeNotFound):
		response.ErrorResponse(c, http.StatusBadRequest, "BARCODE_NOT_FOUND", err.Error())
		return true

	case errors.Is(err, ErrIssueNotFound):
		response.ErrorResponse(c, http.StatusNotFound, "NOT_FOUND", err.Error())
		return true

	case errors.Is(err, ErrLookupTimeout):
		response.ErrorResponse(c, http.StatusInternalServerError, "LOOKUP_TIMEOUT", err.Error())
		return true
	}

	var provErr *ProviderError
	if errors.As(err, &provErr) {
		log.Error().Int("status", provErr.Status).Msg("[Comic] Metadata provider error")
		response.ErrorResponse(c, http.StatusInternalServerError, "PROVIDER_ERROR", "metadata provider request failed")
		return true
	}

	// Lỗi không xác định
	log.Error().Err(err).Msg("[Comic] Unexpected error")
	response.InternalServerError(c, "Internal server error")
	return true
}
