package ingestion

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/poiesic/webdex/ai/mock"
	"github.com/poiesic/webdex/core"
	"github.com/poiesic/webdex/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakePartition records upserts in memory and can be told to fail.
type fakePartition struct {
	mu        sync.Mutex
	docs      map[string]*core.Document
	upsertErr error
}

func newFakePartition() *fakePartition {
	return &fakePartition{docs: make(map[string]*core.Document)}
}

func (f *fakePartition) Name() string { return "fake" }

func (f *fakePartition) Upsert(ctx context.Context, doc *core.Document) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.upsertErr != nil {
		return f.upsertErr
	}
	f.docs[doc.URL] = doc
	return nil
}

func (f *fakePartition) Query(ctx context.Context, vector []float32, k int) ([]core.QueryCandidate, error) {
	return nil, nil
}

func (f *fakePartition) Count(ctx context.Context) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.docs), nil
}

func (f *fakePartition) Close() error { return nil }

func (f *fakePartition) get(url string) *core.Document {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.docs[url]
}

func TestNewPipeline(t *testing.T) {
	t.Run("nil partition", func(t *testing.T) {
		_, err := NewPipeline(nil, mock.NewMockEmbedder())
		assert.ErrorIs(t, err, ErrPartitionRequired)
	})

	t.Run("nil embedder", func(t *testing.T) {
		_, err := NewPipeline(newFakePartition(), nil)
		assert.ErrorIs(t, err, ErrEmbedderRequired)
	})

	t.Run("valid", func(t *testing.T) {
		pipeline, err := NewPipeline(newFakePartition(), mock.NewMockEmbedder())
		require.NoError(t, err)
		defer pipeline.Release()
	})
}

func TestIngestStoresCleanedText(t *testing.T) {
	partition := newFakePartition()
	pipeline, err := NewPipeline(partition, mock.NewMockEmbedder(), WithMinContentLength(10))
	require.NoError(t, err)
	defer pipeline.Release()

	outcome := pipeline.Ingest(context.Background(), "https://docs.example/page",
		"Reach out at support@example.com! Audience segments group users by behavior.")

	assert.Equal(t, StatusStored, outcome.Status)
	assert.NoError(t, outcome.Err)

	doc := partition.get("https://docs.example/page")
	require.NotNil(t, doc)
	assert.NotContains(t, doc.Text, "@", "email addresses are stripped before storage")
	assert.NotContains(t, doc.Text, "!")
	assert.NotEmpty(t, doc.Vector)
	assert.False(t, doc.FetchedAt.IsZero())
}

func TestIngestSkipsThinContent(t *testing.T) {
	partition := newFakePartition()
	pipeline, err := NewPipeline(partition, mock.NewMockEmbedder())
	require.NoError(t, err)
	defer pipeline.Release()

	// Well under the default 100-char minimum once cleaned.
	outcome := pipeline.Ingest(context.Background(), "https://docs.example/stub", "404 - not found")

	assert.Equal(t, StatusSkipped, outcome.Status)
	assert.ErrorIs(t, outcome.Err, ErrInsufficientContent)
	assert.Nil(t, partition.get("https://docs.example/stub"))
}

func TestIngestEmbeddingFailure(t *testing.T) {
	partition := newFakePartition()
	embedder := mock.NewMockEmbedder()
	embedder.EmbedTextFunc = func(ctx context.Context, text string) ([]float32, error) {
		return nil, errors.New("model unreachable")
	}

	pipeline, err := NewPipeline(partition, embedder, WithMinContentLength(10))
	require.NoError(t, err)
	defer pipeline.Release()

	outcome := pipeline.Ingest(context.Background(), "https://docs.example/page", "plenty of content for this page")

	assert.Equal(t, StatusFailed, outcome.Status)
	assert.ErrorIs(t, outcome.Err, ErrEmbeddingUnavailable)
	assert.Nil(t, partition.get("https://docs.example/page"), "no document is written when embedding fails")
}

func TestIngestUpsertFailure(t *testing.T) {
	partition := newFakePartition()
	partition.upsertErr = storage.ErrUnreachable

	pipeline, err := NewPipeline(partition, mock.NewMockEmbedder(), WithMinContentLength(10))
	require.NoError(t, err)
	defer pipeline.Release()

	outcome := pipeline.Ingest(context.Background(), "https://docs.example/page", "plenty of content for this page")

	assert.Equal(t, StatusFailed, outcome.Status)
	assert.ErrorIs(t, outcome.Err, storage.ErrUnreachable)
}

func TestIngestBatchIsolatesFailures(t *testing.T) {
	partition := newFakePartition()
	embedder := mock.NewMockEmbedder()
	embedder.EmbedTextFunc = func(ctx context.Context, text string) ([]float32, error) {
		if strings.Contains(text, "poison") {
			return nil, errors.New("model unreachable")
		}
		return []float32{0.1, 0.2}, nil
	}

	pipeline, err := NewPipeline(partition, embedder, WithMinContentLength(10), WithPoolSize(2))
	require.NoError(t, err)
	defer pipeline.Release()

	entries := []Entry{
		{URL: "https://docs.example/a", RawText: "first page with enough content"},
		{URL: "https://docs.example/b", RawText: "poison page with enough content"},
		{URL: "https://docs.example/c", RawText: "third page with enough content"},
	}

	outcomes := pipeline.IngestBatch(context.Background(), entries)
	require.Len(t, outcomes, 3)

	// Outcomes line up with the input positions.
	assert.Equal(t, "https://docs.example/a", outcomes[0].URL)
	assert.Equal(t, StatusStored, outcomes[0].Status)
	assert.Equal(t, "https://docs.example/b", outcomes[1].URL)
	assert.Equal(t, StatusFailed, outcomes[1].Status)
	assert.Equal(t, "https://docs.example/c", outcomes[2].URL)
	assert.Equal(t, StatusStored, outcomes[2].Status)

	count, _ := partition.Count(context.Background())
	assert.Equal(t, 2, count)
}

func TestIngestBatchEmpty(t *testing.T) {
	pipeline, err := NewPipeline(newFakePartition(), mock.NewMockEmbedder())
	require.NoError(t, err)
	defer pipeline.Release()

	outcomes := pipeline.IngestBatch(context.Background(), nil)
	assert.Empty(t, outcomes)
}

func TestStatusString(t *testing.T) {
	assert.Equal(t, "stored", StatusStored.String())
	assert.Equal(t, "skipped", StatusSkipped.String())
	assert.Equal(t, "failed", StatusFailed.String())
}
