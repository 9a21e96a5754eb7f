package main

import (
	"github.com/hibiken/asynq"

	comicJob "comicvault-backend/internal/domains/comic/job"
	"comicvault-backend/internal/shared"
	"comicvault-backend/pkg/container"
)

// HandlerRegistry holds all job handlers
type HandlerRegistry struct {
	archiveScanImage *comicJob.ArchiveScanImageHandler
	purgeScanArchive *comicJob.PurgeScanArchiveHandler
}

// initializeHandlers creates all job handlers with their dependencies
func initializeHandlers(c *container.Container) *HandlerRegistry {
	return &HandlerRegistry{
		archiveScanImage: comicJob.NewArchiveScanImageHandler(c.Storage),
		purgeScanArchive: comicJob.NewPurgeScanArchiveHandler(c.Storage, c.Config.MinIO),
	}
}

// RegisterHandlers registers all handlers with the mux
func (h *HandlerRegistry) RegisterHandlers(mux *asynq.ServeMux) {
	mux.HandleFunc(shared.TypeArchiveScanImage, h.archiveScanImage.ProcessTask)
	mux.HandleFunc(shared.TypePurgeScanArchive, h.purgeScanArchive.ProcessTask)
}
