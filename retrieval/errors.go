package retrieval

import "errors"

var (
	// ErrPartitionsRequired is returned when no partitions are provided.
	ErrPartitionsRequired = errors.New("at least one partition required")

	// ErrEmbedderRequired is returned when an embedder is not provided.
	ErrEmbedderRequired = errors.New("embedder required")

	// ErrQueryEmbeddingFailed aborts a whole retrieval: without a query
	// vector no partition can be searched. It is the only failure that
	// escalates out of Retrieve.
	ErrQueryEmbeddingFailed = errors.New("query embedding failed")
)
