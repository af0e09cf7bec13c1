// Package fetcher retrieves raw object bytes for a bucket/key reference.
package fetcher

import "context"

// FileFetcher is the object-retrieval capability the orchestrator depends on.
// No retry policy is part of the contract; redelivery is the trigger layer's
// concern. Implementations must be safe under concurrent invocation.
type FileFetcher interface {
	FetchFile(ctx context.Context, bucket string, key string) ([]byte, error)
}
