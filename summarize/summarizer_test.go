package summarize

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/poiesic/webdex/ai/mock"
	"github.com/poiesic/webdex/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleCandidates() []core.QueryCandidate {
	return []core.QueryCandidate{
		{Partition: "lytics", URL: "https://lytics.example/a", Text: "Segments group users by behavior", Rank: 0, Score: 0.9},
		{Partition: "segment", URL: "https://segment.example/b", Text: "Sources send events into the pipeline", Rank: 0, Score: 0.8},
	}
}

func TestNewSummarizer(t *testing.T) {
	_, err := NewSummarizer(nil)
	assert.ErrorIs(t, err, ErrModelRequired)

	summarizer, err := NewSummarizer(mock.NewMockSummarizer())
	require.NoError(t, err)
	require.NotNil(t, summarizer)
}

func TestSummarizeJoinsContextInOrder(t *testing.T) {
	model := mock.NewMockSummarizer()
	var seen string
	model.SummarizeFunc = func(ctx context.Context, content string) (string, error) {
		seen = content
		return "the condensed answer", nil
	}

	summarizer, err := NewSummarizer(model)
	require.NoError(t, err)

	candidates := sampleCandidates()
	result := summarizer.Summarize(context.Background(), candidates)
	require.NotNil(t, result)

	assert.Equal(t, "the condensed answer", result.Text)
	assert.Equal(t, candidates, result.Sources)

	// The model sees the candidate texts joined with blank lines, in
	// the same order retrieval merged them.
	parts := strings.Split(seen, "\n\n")
	require.Len(t, parts, 2)
	assert.Equal(t, candidates[0].Text, parts[0])
	assert.Equal(t, candidates[1].Text, parts[1])
}

func TestSummarizeModelFailureFallsBack(t *testing.T) {
	model := mock.NewMockSummarizer()
	model.SummarizeFunc = func(ctx context.Context, content string) (string, error) {
		return "", errors.New("model unreachable")
	}

	summarizer, err := NewSummarizer(model)
	require.NoError(t, err)

	candidates := sampleCandidates()
	result := summarizer.Summarize(context.Background(), candidates)
	require.NotNil(t, result)

	assert.Equal(t, FallbackText, result.Text)
	assert.Equal(t, candidates, result.Sources, "sources survive a failed model call")
}

func TestSummarizeEmptyContext(t *testing.T) {
	summarizer, err := NewSummarizer(mock.NewMockSummarizer())
	require.NoError(t, err)

	result := summarizer.Summarize(context.Background(), nil)
	require.NotNil(t, result)
	assert.Empty(t, result.Sources)
}
