package fetcher

import (
	"context"
	"sync"

	"github.com/cockroachdb/errors"
)

// MemoryFetcher serves objects from memory. It doubles as the "memory" object
// store and as the test double for the orchestrator.
type MemoryFetcher struct {
	mu      sync.RWMutex
	objects map[string][]byte

	// Err, when set, is returned by every fetch. Test hook for fetch failures.
	Err error

	FetchCalls int
}

// NewMemoryFetcher returns an empty MemoryFetcher.
func NewMemoryFetcher() *MemoryFetcher {
	return &MemoryFetcher{objects: make(map[string][]byte)}
}

// PutObject registers object bytes under bucket/key.
func (f *MemoryFetcher) PutObject(bucket string, key string, data []byte) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.objects[bucket+"/"+key] = data
}

func (f *MemoryFetcher) FetchFile(ctx context.Context, bucket string, key string) ([]byte, error) {
	f.mu.Lock()
	f.FetchCalls++
	f.mu.Unlock()

	f.mu.RLock()
	defer f.mu.RUnlock()
	if f.Err != nil {
		return nil, f.Err
	}
	data, found := f.objects[bucket+"/"+key]
	if !found {
		return nil, errors.Newf("object %s/%s not found", bucket, key)
	}
	out := make([]byte, len(data))
	copy(out, data)
	return out, nil
}
