package core

import "time"

// Document is a single ingested web page, keyed by its source URL.
// Re-ingesting the same URL fully replaces the stored record; there is
// never more than one Document per URL within a partition.
type Document struct {
	URL       string
	Text      string    // Cleaned page text
	Vector    []float32 // Embedding vector for semantic search
	FetchedAt time.Time // When the page content was obtained
	UpdatedAt time.Time // When the record was last written
}

// QueryCandidate is one retrieval hit from a single partition.
// Rank is the candidate's position within that partition's result list
// (0 = most relevant). Scores from different partitions come from
// independent collections and are not comparable; they are retained
// for display only, never for cross-partition ordering.
type QueryCandidate struct {
	Partition string
	URL       string
	Text      string
	Rank      int
	Score     float32
}

// SummaryResult is the caller-facing answer for one query: the
// generated summary plus the retrieval candidates it was built from.
// Sources is always populated, even when summarization degraded to the
// fallback text.
type SummaryResult struct {
	Text    string
	Sources []QueryCandidate
}
