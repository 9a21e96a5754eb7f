package service

import (
	"context"
	"io"

	"github.com/google/uuid"

	"comicvault-backend/internal/domains/collection/model"
)

// ServiceInterface - business logic layer của collection domain
type ServiceInterface interface {
	// List returns the user's collection, starred items first,
	// sorted theo mode
	List(ctx context.Context, userID uuid.UUID, mode model.SortMode) (*model.ListResponse, error)

	// Add appends a comic to the collection
	Add(ctx context.Context, userID uuid.UUID, req model.AddItemRequest) (*model.Item, error)

	// Remove deletes a comic. Idempotent.
	Remove(ctx context.Context, userID uuid.UUID, upc string) error

	// SetStarred toggles the starred flag. Idempotent: UPC không có
	// trong collection là no-op, trả về nil item
	SetStarred(ctx context.Context, userID uuid.UUID, upc string, starred bool) (*model.Item, error)

	// Clear removes every comic, returns số item đã xóa
	Clear(ctx context.Context, userID uuid.UUID) (int, error)

	// Reorder persists a new custom ordering
	Reorder(ctx context.Context, userID uuid.UUID, req model.ReorderRequest) error

	// ExportCSV writes the collection ra CSV
	ExportCSV(ctx context.Context, userID uuid.UUID, w io.Writer) error

	// ExportXLSX writes the collection ra Excel workbook
	ExportXLSX(ctx context.Context, userID uuid.UUID, w io.Writer) error

	// ImportCSV merges an uploaded CSV vào collection, skip UPC trùng
	ImportCSV(ctx context.Context, userID uuid.UUID, r io.Reader) (*model.ImportResult, error)
}
