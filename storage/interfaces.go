package storage

import (
	"context"

	"github.com/poiesic/webdex/core"
)

// Partition is one independently addressable document collection,
// corresponding to a single data source. Partitions are disjoint
// namespaces: the same URL may exist in several partitions without
// conflict. Implementations must be thread-safe and support concurrent
// access; concurrent upserts of the same URL are last-writer-wins.
type Partition interface {
	// Name returns the partition's configured source name.
	Name() string

	// Upsert inserts or fully replaces the document stored under
	// doc.URL. The replacement is atomic: vector and text are never
	// mixed between an old and a new record.
	Upsert(ctx context.Context, doc *core.Document) error

	// Query returns up to k candidates ordered by this partition's own
	// relevance ranking (most similar first, Rank ascending from 0).
	// An empty result is valid and means "no matches"; errors signal
	// partition-level unavailability, never the absence of matches.
	Query(ctx context.Context, vector []float32, k int) ([]core.QueryCandidate, error)

	// Count returns the number of documents stored in the partition.
	Count(ctx context.Context) (int, error)

	// Close releases resources held by the partition.
	Close() error
}
