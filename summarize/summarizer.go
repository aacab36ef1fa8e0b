package summarize

import (
	"context"
	"log/slog"
	"strings"

	"github.com/poiesic/webdex/ai"
	"github.com/poiesic/webdex/core"
)

// FallbackText is returned as the summary when the model call fails.
// Retrieval already succeeded at that point; the caller still gets the
// raw sources.
const FallbackText = "Summarization failed."

// Summarizer condenses an aggregated retrieval context into a single
// natural-language answer.
type Summarizer struct {
	model  ai.Summarizer
	logger *slog.Logger
}

// Option configures a Summarizer.
type Option func(*Summarizer) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Summarizer) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
		return nil
	}
}

// NewSummarizer creates a summarizer over the given model.
func NewSummarizer(model ai.Summarizer, opts ...Option) (*Summarizer, error) {
	if model == nil {
		return nil, ErrModelRequired
	}

	s := &Summarizer{
		model:  model,
		logger: slog.Default(),
	}

	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// Summarize joins the candidates' texts in context order and asks the
// model to condense them. Model failure degrades to FallbackText; it
// never propagates as an error, so the retrieved sources always reach
// the caller.
func (s *Summarizer) Summarize(ctx context.Context, candidates []core.QueryCandidate) *core.SummaryResult {
	texts := make([]string, 0, len(candidates))
	for _, candidate := range candidates {
		texts = append(texts, candidate.Text)
	}

	summary, err := s.model.Summarize(ctx, strings.Join(texts, "\n\n"))
	if err != nil {
		s.logger.Error("error summarizing retrieved context", "candidates", len(candidates), "err", err)
		return &core.SummaryResult{Text: FallbackText, Sources: candidates}
	}

	return &core.SummaryResult{Text: summary, Sources: candidates}
}
