package retrieval

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/poiesic/webdex/ai"
	"github.com/poiesic/webdex/core"
	"github.com/poiesic/webdex/storage"
)

// DefaultTopK is the per-partition candidate count used when the caller
// passes a non-positive k.
const DefaultTopK = 5

// Aggregator fans one query out to every configured partition and
// merges the answers into a single deduplicated context.
//
// Partition order is significant: it encodes the priority among
// overlapping data sources. Merging always happens in configuration
// order regardless of which partition answered first, and when two
// partitions return the same URL, the earlier partition's candidate
// wins.
type Aggregator struct {
	partitions []storage.Partition
	embedder   ai.Embedder
	timeout    time.Duration // per-partition query budget, 0 = none
	logger     *slog.Logger
}

// Option configures an Aggregator.
type Option func(*Aggregator) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(a *Aggregator) error {
		if logger == nil {
			logger = slog.Default()
		}
		a.logger = logger
		return nil
	}
}

// WithPartitionTimeout bounds each partition's query independently.
// A timed-out partition contributes zero candidates, exactly like a
// failed one; it never aborts the other partitions or the operation.
func WithPartitionTimeout(timeout time.Duration) Option {
	return func(a *Aggregator) error {
		if timeout < 0 {
			timeout = 0
		}
		a.timeout = timeout
		return nil
	}
}

// NewAggregator creates an aggregator over the given partitions.
// The slice order defines merge priority and is preserved.
func NewAggregator(partitions []storage.Partition, embedder ai.Embedder, opts ...Option) (*Aggregator, error) {
	if len(partitions) == 0 {
		return nil, ErrPartitionsRequired
	}
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}

	a := &Aggregator{
		partitions: partitions,
		embedder:   embedder,
		logger:     slog.Default(),
	}

	for _, opt := range opts {
		if err := opt(a); err != nil {
			return nil, err
		}
	}

	return a, nil
}

// Retrieve embeds the query once, queries all partitions, and returns
// the merged, deduplicated context. A nil, nil return means no
// partition had matches; that is a normal result, distinct from an error.
// The only error case is a failed query embedding.
func (a *Aggregator) Retrieve(ctx context.Context, query string, k int) ([]core.QueryCandidate, error) {
	return a.RetrieveWithMonitor(ctx, query, k, nil)
}

// RetrieveWithMonitor is Retrieve with observation hooks; the monitor
// receives callbacks at each stage of the retrieval process.
func (a *Aggregator) RetrieveWithMonitor(ctx context.Context, query string, k int, monitor RetrieveMonitor) ([]core.QueryCandidate, error) {
	if monitor == nil {
		monitor = &noopMonitor{}
	}
	if k <= 0 {
		k = DefaultTopK
	}

	monitor.Start(query)

	vector, err := a.embedder.EmbedText(ctx, query)
	if err != nil {
		a.logger.Error("error generating embedding for query", "query", query, "err", err)
		return nil, fmt.Errorf("%w: %w", ErrQueryEmbeddingFailed, err)
	}
	monitor.AfterQueryEmbedding(vector)

	// Fan out to all partitions concurrently. Results land in a slice
	// indexed by configured partition position, so merge order stays
	// deterministic no matter the arrival order of responses.
	type partitionResult struct {
		candidates []core.QueryCandidate
		err        error
	}
	results := make([]partitionResult, len(a.partitions))

	var wg sync.WaitGroup
	for i, partition := range a.partitions {
		wg.Add(1)
		go func() {
			defer wg.Done()

			queryCtx := ctx
			if a.timeout > 0 {
				var cancel context.CancelFunc
				queryCtx, cancel = context.WithTimeout(ctx, a.timeout)
				defer cancel()
			}

			candidates, err := partition.Query(queryCtx, vector, k)
			results[i] = partitionResult{candidates: candidates, err: err}
		}()
	}
	wg.Wait()

	// Merge in configuration order, dedup by URL: the first occurrence
	// (earliest partition, lowest rank) wins. A failed partition simply
	// contributes nothing.
	seen := make(map[string]bool)
	var merged []core.QueryCandidate
	for i, result := range results {
		name := a.partitions[i].Name()
		if result.err != nil {
			a.logger.Warn("partition query failed", "partition", name, "err", result.err)
			monitor.PartitionFailed(name, result.err)
			continue
		}
		monitor.PartitionResult(name, result.candidates)
		for _, candidate := range result.candidates {
			if seen[candidate.URL] {
				continue
			}
			seen[candidate.URL] = true
			merged = append(merged, candidate)
		}
	}

	monitor.Finish(merged)

	if len(merged) == 0 {
		a.logger.Info("no matches found across partitions", "query", query)
		return nil, nil
	}

	return merged, nil
}
