package summarize

import "errors"

// ErrModelRequired is returned when a summarization model is not provided.
var ErrModelRequired = errors.New("summarization model required")
