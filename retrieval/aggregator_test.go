package retrieval

import (
	"context"
	"errors"
	"testing"

	"github.com/poiesic/webdex/ai/mock"
	"github.com/poiesic/webdex/core"
	"github.com/poiesic/webdex/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubPartition answers every query with a fixed candidate list or error.
type stubPartition struct {
	name       string
	candidates []core.QueryCandidate
	err        error
	queries    int
}

func (s *stubPartition) Name() string { return s.name }

func (s *stubPartition) Upsert(ctx context.Context, doc *core.Document) error { return nil }

func (s *stubPartition) Query(ctx context.Context, vector []float32, k int) ([]core.QueryCandidate, error) {
	s.queries++
	if s.err != nil {
		return nil, s.err
	}
	if len(s.candidates) > k {
		return s.candidates[:k], nil
	}
	return s.candidates, nil
}

func (s *stubPartition) Count(ctx context.Context) (int, error) { return len(s.candidates), nil }

func (s *stubPartition) Close() error { return nil }

func candidate(partition, url string, rank int, score float32) core.QueryCandidate {
	return core.QueryCandidate{Partition: partition, URL: url, Text: "text for " + url, Rank: rank, Score: score}
}

// recordingMonitor captures the hook sequence for assertions.
type recordingMonitor struct {
	started    bool
	embedded   bool
	results    []string
	failures   []string
	finalCount int
}

func (m *recordingMonitor) Start(query string)                 { m.started = true }
func (m *recordingMonitor) AfterQueryEmbedding(vec []float32)  { m.embedded = true }
func (m *recordingMonitor) PartitionResult(name string, c []core.QueryCandidate) {
	m.results = append(m.results, name)
}
func (m *recordingMonitor) PartitionFailed(name string, err error) {
	m.failures = append(m.failures, name)
}
func (m *recordingMonitor) Finish(merged []core.QueryCandidate) { m.finalCount = len(merged) }

func TestNewAggregator(t *testing.T) {
	t.Run("no partitions", func(t *testing.T) {
		_, err := NewAggregator(nil, mock.NewMockEmbedder())
		assert.ErrorIs(t, err, ErrPartitionsRequired)
	})

	t.Run("nil embedder", func(t *testing.T) {
		_, err := NewAggregator([]storage.Partition{&stubPartition{name: "a"}}, nil)
		assert.ErrorIs(t, err, ErrEmbedderRequired)
	})
}

func TestRetrieveMergesInConfigOrder(t *testing.T) {
	first := &stubPartition{name: "lytics", candidates: []core.QueryCandidate{
		candidate("lytics", "https://lytics.example/a", 0, 0.9),
		candidate("lytics", "https://lytics.example/b", 1, 0.8),
	}}
	second := &stubPartition{name: "segment", candidates: []core.QueryCandidate{
		candidate("segment", "https://segment.example/c", 0, 0.95),
	}}

	agg, err := NewAggregator([]storage.Partition{first, second}, mock.NewMockEmbedder())
	require.NoError(t, err)

	merged, err := agg.Retrieve(context.Background(), "how do segments work", 5)
	require.NoError(t, err)
	require.Len(t, merged, 3)

	// Configuration order, not score order, drives the merge.
	assert.Equal(t, "https://lytics.example/a", merged[0].URL)
	assert.Equal(t, "https://lytics.example/b", merged[1].URL)
	assert.Equal(t, "https://segment.example/c", merged[2].URL)
}

func TestRetrieveDedupsByEarliestPartition(t *testing.T) {
	shared := "https://shared.example/page"
	first := &stubPartition{name: "lytics", candidates: []core.QueryCandidate{
		candidate("lytics", shared, 0, 0.7),
	}}
	second := &stubPartition{name: "segment", candidates: []core.QueryCandidate{
		candidate("segment", shared, 0, 0.99),
		candidate("segment", "https://segment.example/only", 1, 0.5),
	}}

	agg, err := NewAggregator([]storage.Partition{first, second}, mock.NewMockEmbedder())
	require.NoError(t, err)

	merged, err := agg.Retrieve(context.Background(), "query", 5)
	require.NoError(t, err)
	require.Len(t, merged, 2)

	// The earlier partition keeps the shared URL even with a lower score.
	assert.Equal(t, "lytics", merged[0].Partition)
	assert.Equal(t, shared, merged[0].URL)
	assert.Equal(t, "https://segment.example/only", merged[1].URL)
}

func TestRetrieveToleratesPartitionFailure(t *testing.T) {
	healthy := func(name string) *stubPartition {
		return &stubPartition{name: name, candidates: []core.QueryCandidate{
			candidate(name, "https://"+name+".example/a", 0, 0.9),
			candidate(name, "https://"+name+".example/b", 1, 0.8),
		}}
	}
	broken := &stubPartition{name: "zeotap", err: storage.ErrUnreachable}

	partitions := []storage.Partition{healthy("lytics"), broken, healthy("mparticle"), healthy("segment")}
	agg, err := NewAggregator(partitions, mock.NewMockEmbedder())
	require.NoError(t, err)

	monitor := &recordingMonitor{}
	merged, err := agg.RetrieveWithMonitor(context.Background(), "query", 5, monitor)
	require.NoError(t, err, "a failed partition must not abort retrieval")
	assert.Len(t, merged, 6)

	assert.Equal(t, []string{"zeotap"}, monitor.failures)
	assert.Equal(t, []string{"lytics", "mparticle", "segment"}, monitor.results)
	assert.Equal(t, 6, monitor.finalCount)
}

func TestRetrieveAllEmpty(t *testing.T) {
	partitions := []storage.Partition{
		&stubPartition{name: "lytics"},
		&stubPartition{name: "segment"},
	}
	agg, err := NewAggregator(partitions, mock.NewMockEmbedder())
	require.NoError(t, err)

	merged, err := agg.Retrieve(context.Background(), "query", 5)
	assert.NoError(t, err)
	assert.Nil(t, merged, "no matches anywhere is a normal empty result")
}

func TestRetrieveEmbeddingFailureAborts(t *testing.T) {
	partition := &stubPartition{name: "lytics", candidates: []core.QueryCandidate{
		candidate("lytics", "https://lytics.example/a", 0, 0.9),
	}}
	embedder := mock.NewMockEmbedder()
	embedder.EmbedTextFunc = func(ctx context.Context, text string) ([]float32, error) {
		return nil, errors.New("model unreachable")
	}

	agg, err := NewAggregator([]storage.Partition{partition}, embedder)
	require.NoError(t, err)

	_, err = agg.Retrieve(context.Background(), "query", 5)
	assert.ErrorIs(t, err, ErrQueryEmbeddingFailed)
	assert.Zero(t, partition.queries, "partitions are never queried when the embedding fails")
}

func TestRetrieveDefaultsTopK(t *testing.T) {
	var candidates []core.QueryCandidate
	for i := 0; i < 10; i++ {
		candidates = append(candidates, candidate("lytics", "https://lytics.example/"+string(rune('a'+i)), i, 1.0-float32(i)*0.05))
	}
	partition := &stubPartition{name: "lytics", candidates: candidates}

	agg, err := NewAggregator([]storage.Partition{partition}, mock.NewMockEmbedder())
	require.NoError(t, err)

	merged, err := agg.Retrieve(context.Background(), "query", 0)
	require.NoError(t, err)
	assert.Len(t, merged, DefaultTopK)
}
