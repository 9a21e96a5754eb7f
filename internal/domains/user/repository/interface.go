package repository

import (
	"context"

	"github.com/google/uuid"

	"comicvault-backend/internal/domains/user/model"
)

// RepositoryInterface defines data access methods for users
type RepositoryInterface interface {
	// Create inserts user mới
	// Returns: model.ErrEmailAlreadyExists nếu email trùng
	Create(ctx context.Context, user *model.User) error

	// GetByEmail retrieves user theo email
	// Returns: nil nếu không tồn tại (không phải error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)

	// GetByID retrieves user theo id
	// Returns: nil nếu không tồn tại (không phải error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.User, error)
}
