package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/xuri/excelize/v2"

	"comicvault-backend/internal/domains/collection/model"
	"comicvault-backend/internal/domains/collection/repository"
	"comicvault-backend/pkg/cache"
)

const (
	cacheTTL        = 10 * time.Minute
	cacheKeyPattern = "collection:%s"
)

// CollectionService - Implements ServiceInterface
type CollectionService struct {
	repo  repository.RepositoryInterface
	cache cache.Cache
}

// NewService - Constructor with DI
func NewService(repo repository.RepositoryInterface, cache cache.Cache) ServiceInterface {
	return &CollectionService{
		repo:  repo,
		cache: cache,
	}
}

func cacheKey(userID uuid.UUID) string {
	return fmt.Sprintf(cacheKeyPattern, userID)
}

// listItems loads từ cache, miss thì query DB rồi fill cache.
// Cache error không fatal - fall through xuống DB.
func (s *CollectionService) listItems(ctx context.Context, userID uuid.UUID) ([]model.Item, error) {
	key := cacheKey(userID)

	var cached []model.Item
	found, err := s.cache.Get(ctx, key, &cached)
	if err != nil {
		log.Warn().Err(err).Msg("[Collection] Cache read failed")
	}
	if found {
		return cached, nil
	}

	items, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, key, items, cacheTTL); err != nil {
		log.Warn().Err(err).Msg("[Collection] Cache write failed")
	}

	return items, nil
}

// invalidate - best effort, mutation đã commit rồi
func (s *CollectionService) invalidate(ctx context.Context, userID uuid.UUID) {
	if err := s.cache.Delete(ctx, cacheKey(userID)); err != nil {
		log.Warn().Err(err).Msg("[Collection] Cache invalidation failed")
	}
}

// List implements ServiceInterface.List
func (s *CollectionService) List(ctx context.Context, userID uuid.UUID, mode model.SortMode) (*model.ListResponse, error) {
	items, err := s.listItems(ctx, userID)
	if err != nil {
		return nil, err
	}

	model.SortItems(items, mode)

	return &model.ListResponse{
		Items: items,
		Total: len(items),
	}, nil
}

// Add implements ServiceInterface.Add
func (s *CollectionService) Add(ctx context.Context, userID uuid.UUID, req model.AddItemRequest) (*model.Item, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	item := req.ToItem(userID)
	if err := s.repo.Add(ctx, &item); err != nil {
		return nil, err
	}

	s.invalidate(ctx, userID)

	log.Info().
		Str("user_id", userID.String()).
		Str("upc", item.UPC).
		Msg("[Collection] Comic added")

	return &item, nil
}

// Remove implements ServiceInterface.Remove
func (s *CollectionService) Remove(ctx context.Context, userID uuid.UUID, upc string) error {
	if err := s.repo.Remove(ctx, userID, upc); err != nil {
		return err
	}

	s.invalidate(ctx, userID)
	return nil
}

// SetStarred implements ServiceInterface.SetStarred
// No-op khi UPC không có trong collection: trả về (nil, nil)
func (s *CollectionService) SetStarred(ctx context.Context, userID uuid.UUID, upc string, starred bool) (*model.Item, error) {
	if err := s.repo.SetStarred(ctx, userID, upc, starred); err != nil {
		return nil, err
	}

	s.invalidate(ctx, userID)

	item, err := s.repo.GetItem(ctx, userID, upc)
	if errors.Is(err, model.ErrItemNotFound) {
		return nil, nil
	}
	return item, err
}

// Clear implements ServiceInterface.Clear
func (s *CollectionService) Clear(ctx context.Context, userID uuid.UUID) (int, error) {
	removed, err := s.repo.Clear(ctx, userID)
	if err != nil {
		return 0, err
	}

	s.invalidate(ctx, userID)

	log.Info().
		Str("user_id", userID.String()).
		Int("removed", removed).
		Msg("[Collection] Collection cleared")

	return removed, nil
}

// Reorder implements ServiceInterface.Reorder
func (s *CollectionService) Reorder(ctx context.Context, userID uuid.UUID, req model.ReorderRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	if err := s.repo.Reorder(ctx, userID, req.Order); err != nil {
		return err
	}

	s.invalidate(ctx, userID)
	return nil
}

// ExportCSV implements ServiceInterface.ExportCSV
// Export luôn theo custom order để file giữ đúng thứ tự kệ
func (s *CollectionService) ExportCSV(ctx context.Context, userID uuid.UUID, w io.Writer) error {
	items, err := s.listItems(ctx, userID)
	if err != nil {
		return err
	}

	model.SortItems(items, model.SortCustom)
	return model.WriteCSV(w, items)
}

// ExportXLSX implements ServiceInterface.ExportXLSX
func (s *CollectionService) ExportXLSX(ctx context.Context, userID uuid.UUID, w io.Writer) error {
	items, err := s.listItems(ctx, userID)
	if err != nil {
		return err
	}

	model.SortItems(items, model.SortCustom)

	f := excelize.NewFile()
	defer f.Close()

	sheet := "Collection"
	f.SetSheetName("Sheet1", sheet)

	header := []interface{}{
		"UPC", "Name", "Series", "Volume", "Year",
		"Issue", "Printing", "Variant", "Starred", "Cover",
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("write xlsx header: %w", err)
	}

	for i, item := range items {
		starred := ""
		if item.Starred {
			starred = "yes"
		}
		row := []interface{}{
			item.UPC,
			item.Name,
			item.SeriesName,
			item.SeriesVolume,
			item.SeriesYear,
			item.IssueNumber,
			item.Printing,
			item.VariantNumber,
			starred,
			item.CoverImage,
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("build xlsx cell name: %w", err)
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("write xlsx row: %w", err)
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write xlsx: %w", err)
	}

	return nil
}

// ImportCSV implements ServiceInterface.ImportCSV
func (s *CollectionService) ImportCSV(ctx context.Context, userID uuid.UUID, r io.Reader) (*model.ImportResult, error) {
	items, err := model.ReadCSV(r)
	if err != nil {
		return nil, err
	}

	if len(items) == 0 {
		return &model.ImportResult{}, nil
	}

	imported, err := s.repo.BulkImport(ctx, userID, items)
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx, userID)

	log.Info().
		Str("user_id", userID.String()).
		Int("imported", imported).
		Int("skipped", len(items)-imported).
		Msg("[Collection] CSV import completed")

	return &model.ImportResult{
		Imported: imported,
		Skipped:  len(items) - imported,
	}, nil
}
