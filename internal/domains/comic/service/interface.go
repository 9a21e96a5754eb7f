package service

import (
	"context"

	"comicvault-backend/internal/domains/comic/model"
)

// ServiceInterface - comic lookup pipeline
type ServiceInterface interface {
	// SearchByUPC validates the raw UPC string and resolves it to a
	// comic record. Không có network call nào xảy ra khi validation fail.
	SearchByUPC(ctx context.Context, rawUPC string) (*model.Comic, error)

	// ScanImage decodes the barcode in image bytes, extends the short
	// code to the 17-digit form and resolves it to a comic record
	ScanImage(ctx context.Context, image []byte, filename string) (*model.Comic, error)
}
