// Package fetch retrieves animation assets by identifier.
//
// Three sources are provided: a directory on disk (Dir), an HTTP base URL
// with retries (HTTP), and an in-memory map (Memory). All of them report
// failures as *AssetFetchError.
package fetch

import (
	"context"
	"errors"
	"fmt"
)

// ErrNotFound is returned when an asset does not exist at the source.
var ErrNotFound = errors.New("fetch: asset not found")

// Fetcher returns the raw bytes of an asset.
type Fetcher interface {
	Fetch(ctx context.Context, assetID string) ([]byte, error)
}

// AssetFetchError reports a failed asset retrieval. A pipeline treats it
// as recoverable: the frame is skipped.
type AssetFetchError struct {
	AssetID string
	Err     error
}

func (e *AssetFetchError) Error() string {
	return fmt.Sprintf("fetch %s: %v", e.AssetID, e.Err)
}

func (e *AssetFetchError) Unwrap() error {
	return e.Err
}
