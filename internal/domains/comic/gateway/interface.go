package gateway

import (
	"context"

	"comicvault-backend/internal/domains/comic/model"
)

// BarcodeGateway wraps the external barcode-detection service.
// Scan trả về found=false cho cả "không có barcode", timeout, và
// transport failure - caller không phân biệt được.
type BarcodeGateway interface {
	Scan(ctx context.Context, image []byte, filename string) (*model.ScanResult, bool)
}

// MetadataGateway wraps the external comic-metadata provider (Metron).
// Khác với BarcodeGateway, timeout được surface riêng
// (model.ErrLookupTimeout) vì caller cần biết để retry.
type MetadataGateway interface {
	SearchByUPC(ctx context.Context, upc string) (*model.MetronIssue, error)
}
