package job

import (
	"context"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	"comicvault-backend/internal/config"
	"comicvault-backend/internal/infrastructure/storage"
)

// ================================================
// PURGE SCAN ARCHIVE JOB HANDLER (cron)
// ================================================

type PurgeScanArchiveHandler struct {
	storage *storage.MinIOStorage
	cfg     config.MinIOConfig
}

func NewPurgeScanArchiveHandler(storage *storage.MinIOStorage, cfg config.MinIOConfig) *PurgeScanArchiveHandler {
	return &PurgeScanArchiveHandler{
		storage: storage,
		cfg:     cfg,
	}
}

// ProcessTask xoá ảnh archive cũ hơn retention window
func (h *PurgeScanArchiveHandler) ProcessTask(ctx context.Context, _ *asynq.Task) error {
	retention := time.Duration(h.cfg.ArchiveRetentionDays) * 24 * time.Hour
	cutoff := time.Now().UTC().Add(-retention)

	log.Info().
		Int("retention_days", h.cfg.ArchiveRetentionDays).
		Time("cutoff", cutoff).
		Msg("Starting PurgeScanArchive job")

	removed, err := h.storage.RemoveOlderThan(ctx, "scans/", cutoff)
	if err != nil {
		return fmt.Errorf("purge scan archive: %w", err)
	}

	log.Info().
		Int("removed_count", removed).
		Msg("Completed PurgeScanArchive job")

	return nil
}
