// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


// Package webdex answers natural-language questions from text scraped
// off several independently maintained web sources.
//
// Service is the caller-facing facade: it owns the storage backend,
// one partition plus ingestion pipeline per configured source, the AI
// provider, the retrieval aggregator, and the summarizer. Search
// distinguishes three outcomes: a SummaryResult (matches found, summary
// possibly degraded to a fallback), nil-nil (the search ran and found
// nothing), and an error (the search itself could not run).
package webdex

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/poiesic/webdex/ai"
	"github.com/poiesic/webdex/ai/openai"
	"github.com/poiesic/webdex/config"
	"github.com/poiesic/webdex/core"
	"github.com/poiesic/webdex/ingestion"
	"github.com/poiesic/webdex/retrieval"
	"github.com/poiesic/webdex/storage"
	"github.com/poiesic/webdex/storage/badger"
	"github.com/poiesic/webdex/summarize"
	"github.com/poiesic/webdex/textclean"
)

// Service wires the full ingestion and query paths for one deployment.
type Service struct {
	backend    *badger.Backend
	partitions []storage.Partition
	pipelines  map[string]*ingestion.Pipeline
	provider   ai.AIProvider
	aggregator *retrieval.Aggregator
	summarizer *summarize.Summarizer
	topK       int
	logger     *slog.Logger
}

// Option configures a Service.
type Option func(*serviceOptions)

type serviceOptions struct {
	provider ai.AIProvider
	inMemory bool
}

// WithAIProvider injects a pre-built AI provider instead of
// constructing one from the configuration. Used by tests to supply
// mocks; also handy when one provider is shared across services.
func WithAIProvider(provider ai.AIProvider) Option {
	return func(o *serviceOptions) {
		o.provider = provider
	}
}

// WithInMemoryStorage keeps all partitions in memory. Nothing is
// persisted; intended for tests and experiments.
func WithInMemoryStorage() Option {
	return func(o *serviceOptions) {
		o.inMemory = true
	}
}

// New creates a Service from configuration. The configured source
// order is preserved everywhere it matters: partition setup, query
// fan-out, and merge priority.
func New(cfg *config.Config, opts ...Option) (*Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	options := &serviceOptions{}
	for _, opt := range opts {
		opt(options)
	}

	backend, err := badger.OpenBackend(cfg.DataDir, options.inMemory)
	if err != nil {
		return nil, err
	}

	partitions := make([]storage.Partition, 0, len(cfg.Sources))
	for _, source := range cfg.Sources {
		partition, err := badger.NewPartition(backend, source.Name)
		if err != nil {
			backend.Close()
			return nil, err
		}
		partitions = append(partitions, partition)
	}

	provider := options.provider
	if provider == nil {
		provider, err = openai.NewProvider(aiConfigFrom(&cfg.AI))
		if err != nil {
			backend.Close()
			return nil, err
		}
	}

	aggregator, err := retrieval.NewAggregator(partitions, provider.Embedder(),
		retrieval.WithPartitionTimeout(time.Duration(cfg.PartitionTimeout)))
	if err != nil {
		provider.Close()
		backend.Close()
		return nil, err
	}

	summarizer, err := summarize.NewSummarizer(provider.Summarizer())
	if err != nil {
		provider.Close()
		backend.Close()
		return nil, err
	}

	minContent := cfg.MinContentLength
	if minContent == 0 {
		minContent = textclean.MinContentLength
	}

	pipelines := make(map[string]*ingestion.Pipeline, len(partitions))
	for _, partition := range partitions {
		pipelineOpts := []ingestion.Option{ingestion.WithMinContentLength(minContent)}
		if cfg.PoolSize > 0 {
			pipelineOpts = append(pipelineOpts, ingestion.WithPoolSize(cfg.PoolSize))
		}
		pipeline, err := ingestion.NewPipeline(partition, provider.Embedder(), pipelineOpts...)
		if err != nil {
			for _, p := range pipelines {
				p.Release()
			}
			provider.Close()
			backend.Close()
			return nil, err
		}
		pipelines[partition.Name()] = pipeline
	}

	topK := cfg.TopK
	if topK == 0 {
		topK = retrieval.DefaultTopK
	}

	return &Service{
		backend:    backend,
		partitions: partitions,
		pipelines:  pipelines,
		provider:   provider,
		aggregator: aggregator,
		summarizer: summarizer,
		topK:       topK,
		logger:     slog.Default(),
	}, nil
}

// Search answers a query from all configured sources.
//
// Returns (nil, nil) when no source had matches, a normal result.
// Returns an error only when the query itself could not be embedded;
// individual partition failures degrade to missing candidates, and
// summarization failure degrades to summarize.FallbackText inside the
// returned SummaryResult.
func (s *Service) Search(ctx context.Context, query string) (*core.SummaryResult, error) {
	candidates, err := s.aggregator.Retrieve(ctx, query, s.topK)
	if err != nil {
		return nil, err
	}
	if len(candidates) == 0 {
		return nil, nil
	}
	return s.summarizer.Summarize(ctx, candidates), nil
}

// IngestBatch ingests entries into the named source's partition and
// returns one outcome per entry, positionally aligned.
func (s *Service) IngestBatch(ctx context.Context, source string, entries []ingestion.Entry) ([]ingestion.Outcome, error) {
	pipeline, err := s.Pipeline(source)
	if err != nil {
		return nil, err
	}
	return pipeline.IngestBatch(ctx, entries), nil
}

// Pipeline returns the ingestion pipeline bound to the named source.
func (s *Service) Pipeline(source string) (*ingestion.Pipeline, error) {
	pipeline, ok := s.pipelines[source]
	if !ok {
		return nil, fmt.Errorf("unknown source %q", source)
	}
	return pipeline, nil
}

// Partitions returns the partitions in configured priority order.
func (s *Service) Partitions() []storage.Partition {
	return s.partitions
}

// Close releases all resources: pipelines, AI provider, partitions,
// and the storage backend.
func (s *Service) Close() error {
	for _, pipeline := range s.pipelines {
		pipeline.Release()
	}

	if err := s.provider.Close(); err != nil {
		s.logger.Error("error closing AI provider", "err", err)
	}

	for _, partition := range s.partitions {
		if err := partition.Close(); err != nil {
			s.logger.Error("error closing partition", "partition", partition.Name(), "err", err)
		}
	}

	if err := s.backend.Close(); err != nil {
		s.logger.Error("error closing storage backend", "err", err)
		return err
	}
	return nil
}

// aiConfigFrom maps service configuration onto ai.Config, keeping the
// ai package defaults for any field left empty.
func aiConfigFrom(aiCfg *config.AI) *ai.Config {
	var opts []ai.ConfigOption
	if aiCfg.EmbeddingHost != "" {
		opts = append(opts, ai.WithEmbeddingHost(aiCfg.EmbeddingHost))
	}
	if aiCfg.SummarizerHost != "" {
		opts = append(opts, ai.WithSummarizerHost(aiCfg.SummarizerHost))
	}
	if aiCfg.EmbeddingModel != "" {
		opts = append(opts, ai.WithEmbeddingModel(aiCfg.EmbeddingModel))
	}
	if aiCfg.SummarizerModel != "" {
		opts = append(opts, ai.WithSummarizerModel(aiCfg.SummarizerModel))
	}
	return ai.NewConfig(opts...)
}
