package barcode

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"comicvault-backend/internal/config"
	"comicvault-backend/internal/domains/comic/gateway"
	"comicvault-backend/internal/domains/comic/model"
)

// Client gọi Python barcode-detection service
type Client struct {
	baseURL    string
	timeout    time.Duration
	httpClient *http.Client
}

// NewClient creates the barcode service client
func NewClient(cfg config.BarcodeConfig) gateway.BarcodeGateway {
	return &Client{
		baseURL: cfg.ServiceURL,
		timeout: cfg.Timeout,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
	}
}

// Scan posts the image to the decoder service.
// Mọi failure mode (timeout, transport error, non-2xx, không có
// barcode) đều collapse thành found=false; chi tiết chỉ được log.
func (c *Client) Scan(ctx context.Context, image []byte, filename string) (*model.ScanResult, bool) {
	// Cancellable wait: bỏ cuộc là connection được giải phóng
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	part, err := writer.CreateFormFile("image", filename)
	if err != nil {
		log.Error().Err(err).Msg("[Barcode] Failed to build multipart body")
		return nil, false
	}
	if _, err := part.Write(image); err != nil {
		log.Error().Err(err).Msg("[Barcode] Failed to write image part")
		return nil, false
	}
	if err := writer.Close(); err != nil {
		log.Error().Err(err).Msg("[Barcode] Failed to close multipart writer")
		return nil, false
	}

	url := fmt.Sprintf("%s/scan", c.baseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, body)
	if err != nil {
		log.Error().Err(err).Msg("[Barcode] Failed to create request")
		return nil, false
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			log.Warn().Dur("timeout", c.timeout).Msg("[Barcode] Decoder service timeout")
		} else {
			log.Error().Err(err).Msg("[Barcode] Decoder service unreachable")
		}
		return nil, false
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Warn().Int("status", resp.StatusCode).Msg("[Barcode] Decoder returned non-success status")
		return nil, false
	}

	var result model.ScanResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		log.Error().Err(err).Msg("[Barcode] Failed to decode response")
		return nil, false
	}

	if result.UPC == "" {
		return nil, false
	}

	log.Info().
		Str("upc", result.UPC).
		Str("extension", result.Extension).
		Msg("[Barcode] UPC scanned")

	return &result, true
}
