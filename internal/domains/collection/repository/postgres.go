package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"comicvault-backend/internal/domains/collection/model"
)

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) RepositoryInterface {
	return &postgresRepository{
		pool: pool,
	}
}

const itemColumns = `
	user_id, upc, name, issue_number, series_name, series_volume,
	series_year, cover_image, variant_number, printing, starred,
	sort_order, created_at, updated_at
`

func scanItem(row pgx.Row, item *model.Item) error {
	return row.Scan(
		&item.UserID,
		&item.UPC,
		&item.Name,
		&item.IssueNumber,
		&item.SeriesName,
		&item.SeriesVolume,
		&item.SeriesYear,
		&item.CoverImage,
		&item.VariantNumber,
		&item.Printing,
		&item.Starred,
		&item.SortOrder,
		&item.CreatedAt,
		&item.UpdatedAt,
	)
}

// ListByUser implements RepositoryInterface.ListByUser
func (r *postgresRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Item, error) {
	query := `
		SELECT ` + itemColumns + `
		FROM collection_items
		WHERE user_id = $1
		ORDER BY sort_order ASC
	`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrStoreUnavailable, err)
	}
	defer rows.Close()

	items := []model.Item{}
	for rows.Next() {
		var item model.Item
		if err := scanItem(rows, &item); err != nil {
			return nil, fmt.Errorf("%w: %v", model.ErrStoreUnavailable, err)
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrStoreUnavailable, err)
	}

	return items, nil
}

// GetItem implements RepositoryInterface.GetItem
func (r *postgresRepository) GetItem(ctx context.Context, userID uuid.UUID, upc string) (*model.Item, error) {
	query := `
		SELECT ` + itemColumns + `
		FROM collection_items
		WHERE user_id = $1 AND upc = $2
	`

	var item model.Item
	err := scanItem(r.pool.QueryRow(ctx, query, userID, upc), &item)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrItemNotFound
		}
		return nil, fmt.Errorf("%w: %v", model.ErrStoreUnavailable, err)
	}

	return &item, nil
}

// Add implements RepositoryInterface.Add
func (r *postgresRepository) Add(ctx context.Context, item *model.Item) error {
	// sort_order = max+1 để item mới xuống cuối custom order
	query := `
		INSERT INTO collection_items (
			user_id, upc, name, issue_number, series_name, series_volume,
			series_year, cover_image, variant_number, printing, starred,
			sort_order, created_at, updated_at
		)
		SELECT $1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11,
			COALESCE(MAX(sort_order) + 1, 0), $12, $13
		FROM collection_items
		WHERE user_id = $1
		RETURNING sort_order
	`

	err := r.pool.QueryRow(ctx, query,
		item.UserID,
		item.UPC,
		item.Name,
		item.IssueNumber,
		item.SeriesName,
		item.SeriesVolume,
		item.SeriesYear,
		item.CoverImage,
		item.VariantNumber,
		item.Printing,
		item.Starred,
		item.CreatedAt,
		item.UpdatedAt,
	).Scan(&item.SortOrder)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return model.ErrDuplicateUPC
		}
		return fmt.Errorf("%w: %v", model.ErrStoreUnavailable, err)
	}

	return nil
}

// Remove implements RepositoryInterface.Remove
func (r *postgresRepository) Remove(ctx context.Context, userID uuid.UUID, upc string) error {
	query := `DELETE FROM collection_items WHERE user_id = $1 AND upc = $2`

	// Idempotent: không check RowsAffected
	if _, err := r.pool.Exec(ctx, query, userID, upc); err != nil {
		return fmt.Errorf("%w: %v", model.ErrStoreUnavailable, err)
	}

	return nil
}

// SetStarred implements RepositoryInterface.SetStarred
func (r *postgresRepository) SetStarred(ctx context.Context, userID uuid.UUID, upc string, starred bool) error {
	query := `
		UPDATE collection_items
		SET starred = $3, updated_at = NOW()
		WHERE user_id = $1 AND upc = $2
	`

	// Idempotent: UPC không tồn tại thì không match row nào, vẫn OK
	if _, err := r.pool.Exec(ctx, query, userID, upc, starred); err != nil {
		return fmt.Errorf("%w: %v", model.ErrStoreUnavailable, err)
	}

	return nil
}

// Clear implements RepositoryInterface.Clear
func (r *postgresRepository) Clear(ctx context.Context, userID uuid.UUID) (int, error) {
	query := `DELETE FROM collection_items WHERE user_id = $1`

	tag, err := r.pool.Exec(ctx, query, userID)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", model.ErrStoreUnavailable, err)
	}

	return int(tag.RowsAffected()), nil
}

// Reorder implements RepositoryInterface.Reorder
func (r *postgresRepository) Reorder(ctx context.Context, userID uuid.UUID, order []string) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("%w: %v", model.ErrStoreUnavailable, err)
	}
	defer tx.Rollback(ctx)

	query := `
		UPDATE collection_items
		SET sort_order = $3, updated_at = NOW()
		WHERE user_id = $1 AND upc = $2
	`

	for position, upc := range order {
		// UPC lạ không match row nào - bỏ qua được
		if _, err := tx.Exec(ctx, query, userID, upc, position); err != nil {
			return fmt.Errorf("%w: %v", model.ErrStoreUnavailable, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("%w: %v", model.ErrStoreUnavailable, err)
	}

	return nil
}

// BulkImport implements RepositoryInterface.BulkImport
func (r *postgresRepository) BulkImport(ctx context.Context, userID uuid.UUID, items []model.Item) (int, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", model.ErrStoreUnavailable, err)
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO collection_items (
			user_id, upc, name, issue_number, series_name, series_volume,
			series_year, cover_image, variant_number, printing, starred,
			sort_order, created_at, updated_at
		)
		SELECT $1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11,
			COALESCE(MAX(sort_order) + 1, 0), NOW(), NOW()
		FROM collection_items
		WHERE user_id = $1
		ON CONFLICT (user_id, upc) DO NOTHING
	`

	imported := 0
	for _, item := range items {
		tag, err := tx.Exec(ctx, query,
			userID,
			item.UPC,
			item.Name,
			item.IssueNumber,
			item.SeriesName,
			item.SeriesVolume,
			item.SeriesYear,
			item.CoverImage,
			item.VariantNumber,
			item.Printing,
			item.Starred,
		)
		if err != nil {
			return 0, fmt.Errorf("%w: %v", model.ErrStoreUnavailable, err)
		}
		imported += int(tag.RowsAffected())
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("%w: %v", model.ErrStoreUnavailable, err)
	}

	return imported, nil
}
