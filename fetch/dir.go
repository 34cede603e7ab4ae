package fetch

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"slices"

	"github.com/bmatcuk/doublestar/v4"
)

// Dir serves assets from a file system, typically a local directory.
type Dir struct {
	fsys fs.FS
}

// NewDir serves assets from the directory root.
func NewDir(root string) *Dir {
	return &Dir{fsys: os.DirFS(root)}
}

// NewFS serves assets from an arbitrary file system.
func NewFS(fsys fs.FS) *Dir {
	return &Dir{fsys: fsys}
}

// Fetch implements Fetcher. assetID is a slash-separated path relative to
// the root; paths escaping the root are rejected.
func (d *Dir) Fetch(ctx context.Context, assetID string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, &AssetFetchError{AssetID: assetID, Err: err}
	}
	if !fs.ValidPath(assetID) {
		return nil, &AssetFetchError{AssetID: assetID, Err: fs.ErrInvalid}
	}
	data, err := fs.ReadFile(d.fsys, assetID)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, &AssetFetchError{AssetID: assetID, Err: ErrNotFound}
	}
	if err != nil {
		return nil, &AssetFetchError{AssetID: assetID, Err: err}
	}
	return data, nil
}

// List returns the asset identifiers matching a doublestar pattern such
// as "nonnon*.gif" or "**/*.gif", sorted.
func (d *Dir) List(pattern string) ([]string, error) {
	matches, err := doublestar.Glob(d.fsys, pattern, doublestar.WithFilesOnly())
	if err != nil {
		return nil, err
	}
	slices.Sort(matches)
	return matches, nil
}
