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
	// ErrDuplicateUPC - UPC đã tồn tại trong collection của user
	ErrDuplicateUPC = errors.New("comic already in collection")

	ErrItemNotFound = errors.New("comic not in collection")

	// ErrStoreUnavailable wraps mọi database failure; repo layer
	// wrap thêm chi tiết qua fmt.Errorf("%w: ...")
	ErrStoreUnavailable = errors.New("collection store unavailable")

	// ErrInvalidImport - file import không parse được
	ErrInvalidImport = errors.New("import file could not be parsed")
)

// HandleCollectionError translates domain errors sang HTTP response.
// Returns true nếu err đã được handle.
func HandleCollectionError(c *gin.Context, err error) bool {
	if err == nil {
		return false
	}

	var vErrs validation.Errors
	if errors.As(err, &vErrs) {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Validation failed", vErrs)
		return true
	}

	switch {
	case errors.Is(err, ErrDuplicateUPC):
		response.ErrorResponse(c, http.StatusConflict, "DUPLICATE_UPC", err.Error())
		return true

	case errors.Is(err, ErrItemNotFound):
		response.ErrorResponse(c, http.StatusNotFound, "NOT_FOUND", err.Error())
		return true

	case errors.Is(err, ErrInvalidImport):
		response.ErrorResponse(c, http.StatusBadRequest, "INVALID_IMPORT", err.Error())
		return true

	case errors.Is(err, ErrStoreUnavailable):
		log.Error().Err(err).Msg("[Collection] Store unavailable")
		response.ErrorResponse(c, http.StatusInternalServerError, "STORE_UNAVAILABLE", ErrStoreUnavailable.Error())
		return true
	}

	log.Error().Err(err).Msg("[Collection] Unexpected error")
	response.InternalServerError(c, "Internal server error")
	return true
}
