package ingestion

// Status classifies the result of ingesting a single URL.
type Status int

const (
	// StatusStored means the document was embedded and upserted.
	StatusStored Status = iota + 1
	// StatusSkipped means the cleaned text was too short to be worth storing.
	StatusSkipped
	// StatusFailed means embedding or storage failed; nothing was written.
	StatusFailed
)

// String returns a human-readable status name.
func (s Status) String() string {
	switch s {
	case StatusStored:
		return "stored"
	case StatusSkipped:
		return "skipped"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Outcome reports what happened to one ingested URL. A batch yields one
// Outcome per input, positionally aligned, regardless of individual
// failures. Err is set for skipped and failed outcomes, nil for stored.
type Outcome struct {
	URL    string
	Status Status
	Err    error
}

// Entry is one (url, raw text) pair submitted for ingestion.
type Entry struct {
	URL     string
	RawText string
}
