package metron

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog/log"

	"comicvault-backend/internal/config"
	"comicvault-backend/internal/domains/comic/gateway"
	"comicvault-backend/internal/domains/comic/model"
)

// Client gọi Metron comic-metadata API (basic auth)
type Client struct {
	baseURL    string
	username   string
	password   string
	timeout    time.Duration
	httpClient *http.Client
}

// NewClient creates the Metron client.
// Thiếu credentials là fatal config error - fail fast ở đây,
// không phải per-request failure.
func NewClient(cfg config.MetronConfig) (gateway.MetadataGateway, error) {
	if cfg.Username == "" || cfg.Password == "" {
		return nil, fmt.Errorf("metron credentials not configured")
	}

	return &Client{
		baseURL:  cfg.BaseURL,
		username: cfg.Username,
		password: cfg.Password,
		timeout:  cfg.Timeout,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
	}, nil
}

// SearchByUPC looks up one issue by its full 17-digit UPC.
// Timeout → model.ErrLookupTimeout; non-2xx → *model.ProviderError;
// empty result set → model.ErrIssueNotFound.
func (c *Client) SearchByUPC(ctx context.Context, upcCode string) (*model.MetronIssue, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	endpoint := fmt.Sprintf("%s/api/issue/?upc=%s", c.baseURL, url.QueryEscape(upcCode))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.SetBasicAuth(c.username, c.password)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			log.Warn().Str("upc", upcCode).Dur("timeout", c.timeout).Msg("[Metron] Lookup timeout")
			return nil, model.ErrLookupTimeout
		}
		return nil, fmt.Errorf("metron request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &model.ProviderError{Status: resp.StatusCode}
	}

	var data model.MetronResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, fmt.Errorf("failed to decode metron response: %w", err)
	}

	if len(data.Results) == 0 {
		return nil, model.ErrIssueNotFound
	}

	return &data.Results[0], nil
}
