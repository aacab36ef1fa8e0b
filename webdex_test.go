package webdex

import (
	"context"
	"errors"
	"testing"

	"github.com/poiesic/webdex/ai"
	"github.com/poiesic/webdex/ai/mock"
	"github.com/poiesic/webdex/config"
	"github.com/poiesic/webdex/ingestion"
	"github.com/poiesic/webdex/retrieval"
	"github.com/poiesic/webdex/summarize"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	return &config.Config{
		DataDir:          "unused-in-memory",
		MinContentLength: 10,
		Sources: []config.Source{
			{Name: "lytics"},
			{Name: "segment"},
		},
	}
}

func newTestService(t *testing.T, provider ai.AIProvider) *Service {
	t.Helper()
	svc, err := New(testConfig(), WithInMemoryStorage(), WithAIProvider(provider))
	require.NoError(t, err)
	t.Cleanup(func() { svc.Close() })
	return svc
}

func TestNewValidatesConfig(t *testing.T) {
	cfg := testConfig()
	cfg.Sources = nil
	_, err := New(cfg, WithInMemoryStorage(), WithAIProvider(mock.NewMockProvider()))
	assert.Error(t, err)
}

func TestServiceIngestAndSearch(t *testing.T) {
	svc := newTestService(t, mock.NewMockProvider())
	ctx := context.Background()

	outcomes, err := svc.IngestBatch(ctx, "lytics", []ingestion.Entry{
		{URL: "https://docs.lytics.example/segments", RawText: "Audience segments group users by shared behavior and refresh continuously."},
	})
	require.NoError(t, err)
	require.Len(t, outcomes, 1)
	assert.Equal(t, ingestion.StatusStored, outcomes[0].Status)

	outcomes, err = svc.IngestBatch(ctx, "segment", []ingestion.Entry{
		{URL: "https://docs.segment.example/sources", RawText: "A source sends event data into the pipeline from a website or server."},
	})
	require.NoError(t, err)
	require.Len(t, outcomes, 1)
	assert.Equal(t, ingestion.StatusStored, outcomes[0].Status)

	result, err := svc.Search(ctx, "how do audience segments work")
	require.NoError(t, err)
	require.NotNil(t, result)

	assert.NotEmpty(t, result.Text)
	assert.NotEqual(t, summarize.FallbackText, result.Text)
	require.Len(t, result.Sources, 2, "both sources contribute candidates")

	// Sources come back in configured priority order.
	assert.Equal(t, "lytics", result.Sources[0].Partition)
	assert.Equal(t, "segment", result.Sources[1].Partition)
}

func TestServiceSearchNoMatches(t *testing.T) {
	svc := newTestService(t, mock.NewMockProvider())

	result, err := svc.Search(context.Background(), "anything at all")
	assert.NoError(t, err, "an empty index is not an error")
	assert.Nil(t, result)
}

func TestServiceSearchEmbeddingFailure(t *testing.T) {
	embedder := mock.NewMockEmbedder()
	embedder.EmbedTextFunc = func(ctx context.Context, text string) ([]float32, error) {
		return nil, errors.New("model unreachable")
	}
	svc := newTestService(t, mock.NewMockProviderWithServices(embedder, mock.NewMockSummarizer()))

	_, err := svc.Search(context.Background(), "query")
	assert.ErrorIs(t, err, retrieval.ErrQueryEmbeddingFailed)
}

func TestServiceSearchSummarizerFailure(t *testing.T) {
	summarizer := mock.NewMockSummarizer()
	summarizer.SummarizeFunc = func(ctx context.Context, content string) (string, error) {
		return "", errors.New("model unreachable")
	}
	svc := newTestService(t, mock.NewMockProviderWithServices(mock.NewMockEmbedder(), summarizer))
	ctx := context.Background()

	_, err := svc.IngestBatch(ctx, "lytics", []ingestion.Entry{
		{URL: "https://docs.lytics.example/segments", RawText: "Audience segments group users by shared behavior and refresh continuously."},
	})
	require.NoError(t, err)

	result, err := svc.Search(ctx, "how do audience segments work")
	require.NoError(t, err, "a failed summary still returns the retrieved sources")
	require.NotNil(t, result)
	assert.Equal(t, summarize.FallbackText, result.Text)
	assert.NotEmpty(t, result.Sources)
}

func TestServiceIngestUnknownSource(t *testing.T) {
	svc := newTestService(t, mock.NewMockProvider())

	_, err := svc.IngestBatch(context.Background(), "nope", nil)
	assert.Error(t, err)

	_, err = svc.Pipeline("nope")
	assert.Error(t, err)
}

func TestServicePartitionsOrder(t *testing.T) {
	svc := newTestService(t, mock.NewMockProvider())

	partitions := svc.Partitions()
	require.Len(t, partitions, 2)
	assert.Equal(t, "lytics", partitions[0].Name())
	assert.Equal(t, "segment", partitions[1].Name())
}
