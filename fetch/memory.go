package fetch

import (
	"context"
	"slices"
)

// Memory serves assets from a map keyed by asset identifier.
type Memory map[string][]byte

// Fetch implements Fetcher. The returned slice is a copy.
func (m Memory) Fetch(ctx context.Context, assetID string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, &AssetFetchError{AssetID: assetID, Err: err}
	}
	data, ok := m[assetID]
	if !ok {
		return nil, &AssetFetchError{AssetID: assetID, Err: ErrNotFound}
	}
	return slices.Clone(data), nil
}
