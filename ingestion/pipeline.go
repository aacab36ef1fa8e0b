package ingestion

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/webdex/ai"
	"github.com/poiesic/webdex/core"
	"github.com/poiesic/webdex/storage"
	"github.com/poiesic/webdex/textclean"
)

// Pipeline turns raw page text into embedded documents inside one
// designated partition. Each input is processed independently: a
// failure for one URL never aborts the rest of a batch, and a document
// is written only after its embedding succeeded, so records are never
// partially populated.
type Pipeline struct {
	partition  storage.Partition
	embedder   ai.Embedder
	pool       *ants.Pool
	minContent int
	logger     *slog.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline) error

// WithPoolSize sets the worker pool size for concurrent batch
// ingestion. The pool bounds concurrent embedding calls so a batch
// cannot overrun backend rate limits.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(p *Pipeline) error {
		if size < 1 {
			size = 1
		}

		if p.pool != nil {
			p.pool.Release()
		}

		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		p.pool = pool
		return nil
	}
}

// WithMinContentLength sets the minimum cleaned-text length below which
// a page is skipped. Default is textclean.MinContentLength.
func WithMinContentLength(length int) Option {
	return func(p *Pipeline) error {
		if length < 0 {
			length = 0
		}
		p.minContent = length
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) error {
		if logger == nil {
			logger = slog.Default()
		}
		p.logger = logger
		return nil
	}
}

// NewPipeline creates an ingestion pipeline bound to one partition.
func NewPipeline(partition storage.Partition, embedder ai.Embedder, opts ...Option) (*Pipeline, error) {
	if partition == nil {
		return nil, ErrPartitionRequired
	}
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}

	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}

	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	p := &Pipeline{
		partition:  partition,
		embedder:   embedder,
		pool:       pool,
		minContent: textclean.MinContentLength,
		logger:     slog.Default(),
	}

	for _, opt := range opts {
		if optErr := opt(p); optErr != nil {
			p.Release()
			return nil, optErr
		}
	}

	return p, nil
}

// Ingest cleans, embeds, and upserts a single page. The returned
// Outcome is never an abort signal: callers processing many URLs keep
// going regardless of individual results.
func (p *Pipeline) Ingest(ctx context.Context, url, rawText string) Outcome {
	cleaned := textclean.Clean(rawText)
	if len(cleaned) < p.minContent {
		p.logger.Debug("skipping page with insufficient content", "url", url, "cleanedLength", len(cleaned))
		return Outcome{URL: url, Status: StatusSkipped, Err: ErrInsufficientContent}
	}

	vector, err := p.embedder.EmbedText(ctx, cleaned)
	if err != nil {
		p.logger.Error("error generating embedding", "url", url, "err", err)
		return Outcome{URL: url, Status: StatusFailed, Err: fmt.Errorf("%w: %w", ErrEmbeddingUnavailable, err)}
	}

	doc := &core.Document{
		URL:       url,
		Text:      cleaned,
		Vector:    vector,
		FetchedAt: time.Now().UTC(),
	}
	if err := p.partition.Upsert(ctx, doc); err != nil {
		p.logger.Error("error upserting document", "url", url, "partition", p.partition.Name(), "err", err)
		return Outcome{URL: url, Status: StatusFailed, Err: err}
	}

	p.logger.Info("stored document", "url", url, "partition", p.partition.Name(), "textLength", len(cleaned))
	return Outcome{URL: url, Status: StatusStored}
}

// IngestBatch processes entries concurrently through the worker pool
// and returns one Outcome per entry, positionally aligned with the
// input. Outcomes are accumulated per entry rather than counted in
// shared state, so batches may run concurrently with each other.
func (p *Pipeline) IngestBatch(ctx context.Context, entries []Entry) []Outcome {
	outcomes := make([]Outcome, len(entries))

	var wg sync.WaitGroup
	for i, entry := range entries {
		wg.Add(1)
		err := p.pool.Submit(func() {
			defer wg.Done()
			outcomes[i] = p.Ingest(ctx, entry.URL, entry.RawText)
		})
		if err != nil {
			// Pool unavailable; fall back to processing inline.
			outcomes[i] = p.Ingest(ctx, entry.URL, entry.RawText)
			wg.Done()
		}
	}
	wg.Wait()

	return outcomes
}

// Release releases the worker pool.
// The pipeline should not be used after calling Release.
func (p *Pipeline) Release() {
	if p.pool != nil {
		p.pool.Release()
	}
}
