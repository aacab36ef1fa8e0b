package ingestion

import "errors"

var (
	// ErrPartitionRequired is returned when a partition is not provided.
	ErrPartitionRequired = errors.New("partition required")

	// ErrEmbedderRequired is returned when an embedder is not provided.
	ErrEmbedderRequired = errors.New("embedder required")

	// ErrInsufficientContent marks a skipped outcome: the cleaned text
	// fell below the minimum content length.
	ErrInsufficientContent = errors.New("insufficient content after cleaning")

	// ErrEmbeddingUnavailable marks a failed outcome: the embedding
	// backend did not produce a vector, so no record was written.
	ErrEmbeddingUnavailable = errors.New("embedding unavailable")
)
