package core

import "fmt"

// ValidateDocument checks that a document is complete enough to be
// stored. A storable document has a URL, cleaned text, and an
// embedding vector.
func ValidateDocument(doc *Document) error {
	if doc == nil {
		return ErrInvalidDocument
	}
	if doc.URL == "" {
		return fmt.Errorf("%w: %w", ErrInvalidDocument, ErrEmptyURL)
	}
	if doc.Text == "" {
		return fmt.Errorf("%w: %w", ErrInvalidDocument, ErrEmptyText)
	}
	if len(doc.Vector) == 0 {
		return fmt.Errorf("%w: %w", ErrInvalidDocument, ErrEmptyVector)
	}
	return nil
}
