package badger

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"slices"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/webdex/core"
	"github.com/poiesic/webdex/storage"
)

// Partition implements storage.Partition for BadgerDB. One Partition
// per configured data source; all partitions share a Backend and are
// kept disjoint through their key prefixes.
type Partition struct {
	backend *Backend
	name    string
	prefix  []byte
	logger  *slog.Logger
}

var _ storage.Partition = (*Partition)(nil)

// NewPartition creates a partition named after a data source.
func NewPartition(backend *Backend, name string) (*Partition, error) {
	if backend == nil {
		return nil, errors.New("backend required")
	}
	if name == "" {
		return nil, errors.New("partition name required")
	}

	return &Partition{
		backend: backend,
		name:    name,
		prefix:  makeDocPrefix(name),
		logger:  slog.Default().With("partition", name),
	}, nil
}

// Name returns the partition's source name.
func (p *Partition) Name() string {
	return p.name
}

// Upsert inserts or fully replaces the document stored under doc.URL.
// A prior record under the same URL is replaced wholesale; vector and
// text always change together.
func (p *Partition) Upsert(ctx context.Context, doc *core.Document) error {
	if err := core.ValidateDocument(doc); err != nil {
		return err
	}
	if p.backend.IsClosed() {
		return storage.ErrStorageClosed
	}

	stored := *doc
	stored.UpdatedAt = time.Now().UTC()
	if stored.FetchedAt.IsZero() {
		stored.FetchedAt = stored.UpdatedAt
	}

	err := p.backend.WithTx(func(tx *badger.Txn) error {
		if err := tx.Set(makeDocKey(p.name, doc.URL), storage.MarshalDocument(&stored)); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
	if err != nil {
		return fmt.Errorf("%w: %w", storage.ErrUnreachable, err)
	}

	p.logger.Debug("upserted document", "url", doc.URL, "textLength", len(doc.Text))
	return nil
}

// Query returns up to k candidates ranked by cosine similarity to the
// given vector, most similar first. An empty result is a valid "no
// matches" outcome, distinct from any error.
func (p *Partition) Query(ctx context.Context, vector []float32, k int) ([]core.QueryCandidate, error) {
	if len(vector) == 0 || k <= 0 {
		return nil, storage.ErrInvalidQuery
	}
	if p.backend.IsClosed() {
		return nil, storage.ErrStorageClosed
	}

	var results []core.QueryCandidate

	err := p.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = p.prefix
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			var doc *core.Document
			err := iter.Item().Value(func(val []byte) error {
				var err error
				doc, err = storage.UnmarshalDocument(val)
				return err
			})
			if err != nil {
				return err
			}
			if doc == nil || len(doc.Vector) == 0 {
				continue
			}

			results = append(results, core.QueryCandidate{
				Partition: p.name,
				URL:       doc.URL,
				Text:      doc.Text,
				Score:     cosineSimilarity(vector, doc.Vector),
			})
		}
		return nil
	}, false)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", storage.ErrUnreachable, err)
	}

	// Sort by similarity descending; tie-break on URL so result order
	// stays deterministic across runs.
	slices.SortFunc(results, func(a, b core.QueryCandidate) int {
		if a.Score > b.Score {
			return -1
		}
		if a.Score < b.Score {
			return 1
		}
		if a.URL < b.URL {
			return -1
		}
		if a.URL > b.URL {
			return 1
		}
		return 0
	})

	if len(results) > k {
		results = results[:k]
	}
	for i := range results {
		results[i].Rank = i
	}

	return results, nil
}

// Count returns the number of documents stored in the partition.
func (p *Partition) Count(ctx context.Context) (int, error) {
	if p.backend.IsClosed() {
		return 0, storage.ErrStorageClosed
	}

	count := 0
	err := p.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = p.prefix
		opts.PrefetchValues = false
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			count++
		}
		return nil
	}, false)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", storage.ErrUnreachable, err)
	}

	return count, nil
}

// Close releases partition resources. The shared backend stays open;
// it is closed by whoever opened it.
func (p *Partition) Close() error {
	return nil
}

// cosineSimilarity computes the cosine of the angle between two vectors.
// Returns 0 when either vector has zero magnitude.
func cosineSimilarity(a, b []float32) float32 {
	minLen := len(a)
	if len(b) < minLen {
		minLen = len(b)
	}

	var dot, normA, normB float64
	for i := 0; i < minLen; i++ {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return float32(dot / (math.Sqrt(normA) * math.Sqrt(normB)))
}
