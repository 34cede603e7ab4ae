package fetch

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/hashicorp/go-retryablehttp"
)

// maxAssetBytes caps the size of a single downloaded asset.
const maxAssetBytes = 32 << 20 // 32 MiB

// HTTP serves assets from a base URL. Transient failures (connection
// errors, 5xx, 429) are retried with backoff.
type HTTP struct {
	base   *url.URL
	client *retryablehttp.Client
}

// HTTPOption configures an HTTP fetcher.
type HTTPOption func(*retryablehttp.Client)

// WithRetryMax sets the number of retries after the first attempt.
func WithRetryMax(n int) HTTPOption {
	return func(c *retryablehttp.Client) {
		c.RetryMax = n
	}
}

// WithRetryWait bounds the backoff between attempts.
func WithRetryWait(minWait, maxWait time.Duration) HTTPOption {
	return func(c *retryablehttp.Client) {
		c.RetryWaitMin = minWait
		c.RetryWaitMax = maxWait
	}
}

// WithTimeout sets the per-attempt request timeout.
func WithTimeout(d time.Duration) HTTPOption {
	return func(c *retryablehttp.Client) {
		c.HTTPClient.Timeout = d
	}
}

// WithLogger routes retry diagnostics to l. By default they are dropped.
func WithLogger(l *slog.Logger) HTTPOption {
	return func(c *retryablehttp.Client) {
		if l == nil {
			c.Logger = nil
			return
		}
		c.Logger = l
	}
}

// NewHTTP creates a fetcher resolving asset identifiers against baseURL.
func NewHTTP(baseURL string, opts ...HTTPOption) (*HTTP, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("fetch: parse base URL: %w", err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, fmt.Errorf("fetch: unsupported URL scheme %q", base.Scheme)
	}

	client := retryablehttp.NewClient()
	client.RetryMax = 2
	client.HTTPClient.Timeout = 10 * time.Second
	client.Logger = nil // suppress retryablehttp's default logging
	for _, opt := range opts {
		opt(client)
	}
	return &HTTP{base: base, client: client}, nil
}

// URL returns the address an asset is fetched from.
func (h *HTTP) URL(assetID string) string {
	return h.base.JoinPath(assetID).String()
}

// Fetch implements Fetcher.
func (h *HTTP) Fetch(ctx context.Context, assetID string) ([]byte, error) {
	u := h.URL(assetID)
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, &AssetFetchError{AssetID: assetID, Err: err}
	}

	resp, err := h.client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			err = ctx.Err()
		}
		return nil, &AssetFetchError{AssetID: assetID, Err: fmt.Errorf("GET %s: %w", u, err)}
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, &AssetFetchError{AssetID: assetID, Err: ErrNotFound}
	case resp.StatusCode != http.StatusOK:
		return nil, &AssetFetchError{AssetID: assetID, Err: fmt.Errorf("GET %s: status %d", u, resp.StatusCode)}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxAssetBytes+1))
	if err != nil {
		return nil, &AssetFetchError{AssetID: assetID, Err: fmt.Errorf("reading response from %s: %w", u, err)}
	}
	if len(body) > maxAssetBytes {
		return nil, &AssetFetchError{AssetID: assetID, Err: fmt.Errorf("response from %s exceeds %d bytes", u, maxAssetBytes)}
	}
	return body, nil
}
