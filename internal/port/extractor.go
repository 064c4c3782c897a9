package port

import "voicetutor/internal/domain"

// Extractor pulls per-page plain text out of a source document.
// Pages with no extractable text are skipped, not emitted empty.
type Extractor interface {
	// Extract returns the document's non-empty pages in order. A document
	// that cannot be opened or yields zero pages fails with
	// *domain.ExtractionError.
	Extract(path string) ([]domain.Page, error)
}
