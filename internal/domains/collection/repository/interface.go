package repository

import (
	"context"

	"github.com/google/uuid"

	"comicvault-backend/internal/domains/collection/model"
)

// RepositoryInterface defines data access methods for collections
type RepositoryInterface interface {
	// ListByUser retrieves toàn bộ collection của user.
	// Unsorted - sorting là việc của service layer.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Item, error)

	// GetItem retrieves one item
	// Returns: model.ErrItemNotFound nếu không có
	GetItem(ctx context.Context, userID uuid.UUID, upc string) (*model.Item, error)

	// Add inserts item, sort_order lấy max+1 và ghi ngược vào item
	// Returns: model.ErrDuplicateUPC nếu UPC đã tồn tại
	Add(ctx context.Context, item *model.Item) error

	// Remove deletes item. Idempotent: UPC không tồn tại không phải error
	Remove(ctx context.Context, userID uuid.UUID, upc string) error

	// SetStarred updates starred flag. Idempotent: UPC không tồn tại là no-op
	SetStarred(ctx context.Context, userID uuid.UUID, upc string, starred bool) error

	// Clear deletes toàn bộ collection của user
	// Returns: số row đã xóa
	Clear(ctx context.Context, userID uuid.UUID) (int, error)

	// Reorder bulk-updates sort_order trong một transaction.
	// UPC không có trong collection bị bỏ qua.
	Reorder(ctx context.Context, userID uuid.UUID, order []string) error

	// BulkImport inserts nhiều items, UPC trùng bị skip
	// Returns: số row thực sự insert
	BulkImport(ctx context.Context, userID uuid.UUID, items []model.Item) (int, error)
}
