package job

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	"comicvault-backend/internal/infrastructure/storage"
	"comicvault-backend/internal/shared"
)

// ArchiveScanImageHandler lưu ảnh scan gốc vào MinIO để debug decode fail
type ArchiveScanImageHandler struct {
	storage *storage.MinIOStorage
}

func NewArchiveScanImageHandler(storage *storage.MinIOStorage) *ArchiveScanImageHandler {
	return &ArchiveScanImageHandler{
		storage: storage,
	}
}

// ProcessTask upload ảnh vào bucket theo key scans/{date}/{upc}-{ts}
func (h *ArchiveScanImageHandler) ProcessTask(ctx context.Context, task *asynq.Task) error {
	var payload shared.ArchiveScanImagePayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		log.Error().Err(err).Msg("Failed to unmarshal ArchiveScanImage payload")
		return fmt.Errorf("unmarshal payload: %w", err)
	}

	if len(payload.Image) == 0 {
		log.Warn().Str("upc", payload.UPC).Msg("ArchiveScanImage payload has no image data, skipping")
		return nil
	}

	now := time.Now().UTC()
	key := fmt.Sprintf("scans/%s/%s-%d.jpg", now.Format("2006-01-02"), payload.UPC, now.UnixNano())

	contentType := payload.ContentType
	if contentType == "" {
		contentType = "image/jpeg"
	}

	url, err := h.storage.Upload(ctx, key, payload.Image, contentType)
	if err != nil {
		log.Error().
			Err(err).
			Str("upc", payload.UPC).
			Str("key", key).
			Msg("Failed to archive scan image")
		return fmt.Errorf("archive scan image: %w", err)
	}

	log.Info().
		Str("upc", payload.UPC).
		Str("url", url).
		Int("size", len(payload.Image)).
		Msg("Scan image archived")

	return nil
}
