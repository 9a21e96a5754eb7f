package service

import (
	"context"
	"encoding/json"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	"comicvault-backend/internal/domains/comic/gateway"
	"comicvault-backend/internal/domains/comic/model"
	"comicvault-backend/internal/shared"
	"comicvault-backend/internal/shared/upc"
)

// ComicService - Implements ServiceInterface
type ComicService struct {
	barcode     gateway.BarcodeGateway
	metadata    gateway.MetadataGateway
	asynqClient *asynq.Client
}

// NewService - Constructor with DI
// asynqClient có thể nil (worker không chạy) - archive jobs bị skip
func NewService(
	barcode gateway.BarcodeGateway,
	metadata gateway.MetadataGateway,
	asynqClient *asynq.Client,
) ServiceInterface {
	return &ComicService{
		barcode:     barcode,
		metadata:    metadata,
		asynqClient: asynqClient,
	}
}

// SearchByUPC - validate trước, external call sau
func (s *ComicService) SearchByUPC(ctx context.Context, rawUPC string) (*model.Comic, error) {
	code, err := upc.Normalize(rawUPC)
	if err != nil {
		// Short-circuit: validation fail thì không có network request nào
		return nil, err
	}

	issue, err := s.metadata.SearchByUPC(ctx, code)
	if err != nil {
		return nil, err
	}

	comic := model.FromMetron(*issue, code)
	return &comic, nil
}

// ScanImage - decode ảnh, extend code, rồi chạy search pipeline
func (s *ComicService) ScanImage(ctx context.Context, image []byte, filename string) (*model.Comic, error) {
	if len(image) == 0 {
		return nil, model.ErrMissingImage
	}

	result, found := s.barcode.Scan(ctx, image, filename)
	if !found {
		return nil, model.ErrBarcodeNotFound
	}

	// Short code + 5-digit extension (hoặc default) = 17-digit form
	code := upc.ExtendCode(result.UPC, result.Extension)

	comic, err := s.SearchByUPC(ctx, code)
	if err != nil {
		return nil, err
	}

	// Fire-and-forget: archive ảnh gốc qua worker. Enqueue fail chỉ
	// được log, không ảnh hưởng response.
	s.enqueueArchive(comic.UPC, image, filename)

	return comic, nil
}

func (s *ComicService) enqueueArchive(upcCode string, image []byte, filename string) {
	if s.asynqClient == nil {
		return
	}

	payload, err := json.Marshal(shared.ArchiveScanImagePayload{
		UPC:         upcCode,
		Filename:    filename,
		ContentType: "image/jpeg",
		Image:       image,
	})
	if err != nil {
		log.Error().Err(err).Msg("[Comic] Failed to marshal archive payload")
		return
	}

	task := asynq.NewTask(shared.TypeArchiveScanImage, payload)
	if _, err := s.asynqClient.Enqueue(task, asynq.Queue(shared.QueueLow)); err != nil {
		log.Error().Err(err).Str("upc", upcCode).Msg("[Comic] Failed to enqueue scan archive job")
	}
}
