package service

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"comicvault-backend/internal/domains/collection/model"
)

// ============ FAKES ============

type fakeRepo struct {
	items     map[string]model.Item // key = upc
	listCalls int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{items: map[string]model.Item{}}
}

func (f *fakeRepo) ListByUser(_ context.Context, _ uuid.UUID) ([]model.Item, error) {
	f.listCalls++
	out := make([]model.Item, 0, len(f.items))
	for _, item := range f.items {
		out = append(out, item)
	}
	return out, nil
}

func (f *fakeRepo) GetItem(_ context.Context, _ uuid.UUID, upc string) (*model.Item, error) {
	item, ok := f.items[upc]
	if !ok {
		return nil, model.ErrItemNotFound
	}
	return &item, nil
}

func (f *fakeRepo) Add(_ context.Context, item *model.Item) error {
	if _, exists := f.items[item.UPC]; exists {
		return model.ErrDuplicateUPC
	}
	item.SortOrder = len(f.items)
	f.items[item.UPC] = *item
	return nil
}

func (f *fakeRepo) Remove(_ context.Context, _ uuid.UUID, upc string) error {
	delete(f.items, upc)
	return nil
}

func (f *fakeRepo) SetStarred(_ context.Context, _ uuid.UUID, upc string, starred bool) error {
	if item, ok := f.items[upc]; ok {
		item.Starred = starred
		f.items[upc] = item
	}
	return nil
}

func (f *fakeRepo) Clear(_ context.Context, _ uuid.UUID) (int, error) {
	removed := len(f.items)
	f.items = map[string]model.Item{}
	return removed, nil
}

func (f *fakeRepo) Reorder(_ context.Context, _ uuid.UUID, order []string) error {
	for position, upc := range order {
		if item, ok := f.items[upc]; ok {
			item.SortOrder = position
			f.items[upc] = item
		}
	}
	return nil
}

func (f *fakeRepo) BulkImport(_ context.Context, _ uuid.UUID, items []model.Item) (int, error) {
	imported := 0
	for _, item := range items {
		if _, exists := f.items[item.UPC]; exists {
			continue
		}
		item.SortOrder = len(f.items)
		f.items[item.UPC] = item
		imported++
	}
	return imported, nil
}

type fakeCache struct {
	entries map[string][]byte
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: map[string][]byte{}}
}

func (f *fakeCache) Get(_ context.Context, key string, dest interface{}) (bool, error) {
	raw, ok := f.entries[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(raw, dest)
}

func (f *fakeCache) Set(_ context.Context, key string, value interface{}, _ time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	f.entries[key] = raw
	return nil
}

func (f *fakeCache) Delete(_ context.Context, keys ...string) error {
	for _, key := range keys {
		delete(f.entries, key)
	}
	return nil
}

func (f *fakeCache) Ping(_ context.Context) error { return nil }

// ============ TESTS ============

func addReq(upc, series string) model.AddItemRequest {
	return model.AddItemRequest{UPC: upc, SeriesName: series}
}

func TestAdd_Validation(t *testing.T) {
	svc := NewService(newFakeRepo(), newFakeCache())
	userID := uuid.New()

	_, err := svc.Add(context.Background(), userID, addReq("", "Saga"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "UPC is required")

	_, err = svc.Add(context.Background(), userID, addReq("12a45678901234567", "Saga"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "UPC must contain only digits")

	_, err = svc.Add(context.Background(), userID, addReq("036785500167", "Saga"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "UPC must be 17 digits")
}

func TestAdd_ReportsAssignedSortOrder(t *testing.T) {
	svc := NewService(newFakeRepo(), newFakeCache())
	userID := uuid.New()

	first, err := svc.Add(context.Background(), userID, addReq("03678550016700111", "Avengers"))
	require.NoError(t, err)
	assert.Equal(t, 0, first.SortOrder)

	second, err := svc.Add(context.Background(), userID, addReq("76156800229400311", "Zorro"))
	require.NoError(t, err)
	assert.Equal(t, 1, second.SortOrder)
}

func TestAdd_Duplicate(t *testing.T) {
	svc := NewService(newFakeRepo(), newFakeCache())
	userID := uuid.New()

	_, err := svc.Add(context.Background(), userID, addReq("03678550016700111", "Saga"))
	require.NoError(t, err)

	_, err = svc.Add(context.Background(), userID, addReq("03678550016700111", "Saga"))
	assert.ErrorIs(t, err, model.ErrDuplicateUPC)
}

func TestList_CachesAndInvalidates(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, newFakeCache())
	userID := uuid.New()

	_, err := svc.Add(context.Background(), userID, addReq("03678550016700111", "Saga"))
	require.NoError(t, err)

	_, err = svc.List(context.Background(), userID, model.SortCustom)
	require.NoError(t, err)
	_, err = svc.List(context.Background(), userID, model.SortAsc)
	require.NoError(t, err)

	// Lần hai đọc từ cache
	assert.Equal(t, 1, repo.listCalls)

	// Mutation phải invalidate
	_, err = svc.Add(context.Background(), userID, addReq("76156800229400311", "Hellboy"))
	require.NoError(t, err)

	result, err := svc.List(context.Background(), userID, model.SortCustom)
	require.NoError(t, err)
	assert.Equal(t, 2, repo.listCalls)
	assert.Equal(t, 2, result.Total)
}

func TestList_StarredFirst(t *testing.T) {
	svc := NewService(newFakeRepo(), newFakeCache())
	userID := uuid.New()

	_, err := svc.Add(context.Background(), userID, addReq("03678550016700111", "Avengers"))
	require.NoError(t, err)
	_, err = svc.Add(context.Background(), userID, addReq("76156800229400311", "Zorro"))
	require.NoError(t, err)

	_, err = svc.SetStarred(context.Background(), userID, "76156800229400311", true)
	require.NoError(t, err)

	result, err := svc.List(context.Background(), userID, model.SortAsc)
	require.NoError(t, err)
	require.Equal(t, 2, result.Total)
	assert.Equal(t, "76156800229400311", result.Items[0].UPC)
}

func TestSetStarred_AbsentUPCIsNoop(t *testing.T) {
	svc := NewService(newFakeRepo(), newFakeCache())

	item, err := svc.SetStarred(context.Background(), uuid.New(), "03678550016700111", true)
	require.NoError(t, err)
	assert.Nil(t, item)
}

func TestSetStarred_ReturnsUpdatedItem(t *testing.T) {
	svc := NewService(newFakeRepo(), newFakeCache())
	userID := uuid.New()

	_, err := svc.Add(context.Background(), userID, addReq("03678550016700111", "Avengers"))
	require.NoError(t, err)

	item, err := svc.SetStarred(context.Background(), userID, "03678550016700111", true)
	require.NoError(t, err)
	require.NotNil(t, item)
	assert.True(t, item.Starred)
}

func TestReorder(t *testing.T) {
	svc := NewService(newFakeRepo(), newFakeCache())
	userID := uuid.New()

	for _, upc := range []string{"03678550016700111", "76156800229400311", "75960608936700811"} {
		_, err := svc.Add(context.Background(), userID, addReq(upc, "Series"))
		require.NoError(t, err)
	}

	err := svc.Reorder(context.Background(), userID, model.ReorderRequest{
		Order: []string{"75960608936700811", "03678550016700111", "76156800229400311"},
	})
	require.NoError(t, err)

	result, err := svc.List(context.Background(), userID, model.SortCustom)
	require.NoError(t, err)
	assert.Equal(t, "75960608936700811", result.Items[0].UPC)
	assert.Equal(t, "03678550016700111", result.Items[1].UPC)
	assert.Equal(t, "76156800229400311", result.Items[2].UPC)
}

func TestClear(t *testing.T) {
	svc := NewService(newFakeRepo(), newFakeCache())
	userID := uuid.New()

	for _, upc := range []string{"03678550016700111", "76156800229400311"} {
		_, err := svc.Add(context.Background(), userID, addReq(upc, "Series"))
		require.NoError(t, err)
	}

	removed, err := svc.Clear(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, 2, removed)

	result, err := svc.List(context.Background(), userID, model.SortCustom)
	require.NoError(t, err)
	assert.Equal(t, 0, result.Total)
}

func TestImportCSV(t *testing.T) {
	svc := NewService(newFakeRepo(), newFakeCache())
	userID := uuid.New()

	_, err := svc.Add(context.Background(), userID, addReq("03678550016700111", "Saga"))
	require.NoError(t, err)

	input := strings.Join([]string{
		"upc,name,seriesName,seriesVolume,seriesYear,issueNumber",
		"03678550016700111,Saga #54,Saga,1,2012,54",
		"76156800229400311,Hellboy #3,Hellboy,1,1994,3",
	}, "\n")

	result, err := svc.ImportCSV(context.Background(), userID, strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, 1, result.Imported)
	assert.Equal(t, 1, result.Skipped)
}

func TestExportCSV(t *testing.T) {
	svc := NewService(newFakeRepo(), newFakeCache())
	userID := uuid.New()

	_, err := svc.Add(context.Background(), userID, addReq("03678550016700111", "Saga"))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, svc.ExportCSV(context.Background(), userID, &buf))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "upc,"))
	assert.True(t, strings.HasPrefix(lines[1], "03678550016700111,"))
}
