package downloader

import (
	"context"
	"io"
	"net/http"
	"time"

	"streamthumb/internal/core/domain"
)

// HTTPFetcher implements ports.ThumbnailFetcher using standard HTTP.
type HTTPFetcher struct {
	client *http.Client
}

// NewHTTPFetcher creates a new HTTPFetcher.
func NewHTTPFetcher() *HTTPFetcher {
	return &HTTPFetcher{
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Fetch downloads the resolved thumbnail URL and returns the raw bytes.
// The request is unauthenticated and the payload is treated as an opaque
// image blob.
func (f *HTTPFetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, domain.Failf(domain.ReasonFetch, "failed to create request: %w", err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, domain.Failf(domain.ReasonFetch, "failed to download thumbnail: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, domain.Failf(domain.ReasonFetch, "unexpected status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, domain.Failf(domain.ReasonFetch, "failed to read thumbnail body: %w", err)
	}

	return body, nil
}
