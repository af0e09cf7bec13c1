package fetcher

import (
	"context"
	"path/filepath"

	"github.com/cockroachdb/errors"
	"github.com/spf13/afero"
)

// FsFetcher serves objects from a filesystem tree: {root}/{bucket}/{key}.
// Useful for local development and tests without an object store.
type FsFetcher struct {
	fs   afero.Fs
	root string
}

// NewFsFetcher returns an FsFetcher over the OS filesystem rooted at root.
func NewFsFetcher(root string) *FsFetcher {
	return &FsFetcher{fs: afero.NewOsFs(), root: root}
}

// NewFsFetcherFrom returns an FsFetcher over an arbitrary afero filesystem.
func NewFsFetcherFrom(fs afero.Fs, root string) *FsFetcher {
	return &FsFetcher{fs: fs, root: root}
}

func (f *FsFetcher) FetchFile(ctx context.Context, bucket string, key string) ([]byte, error) {
	path := filepath.Join(f.root, bucket, filepath.FromSlash(key))
	data, err := afero.ReadFile(f.fs, path)
	if err != nil {
		return nil, errors.Wrapf(err, "read %s", path)
	}
	return data, nil
}
