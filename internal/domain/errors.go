package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for the core pipeline. Adapters wrap these with context;
// callers classify with errors.Is.
var (
	// ErrEmptyQuery indicates a blank question was submitted.
	ErrEmptyQuery = errors.New("query is empty")

	// ErrEmptyText indicates blank text was submitted for synthesis.
	ErrEmptyText = errors.New("text is empty")

	// ErrDimensionMismatch indicates vectors of the wrong width were
	// offered to an existing index. The index is left untouched.
	ErrDimensionMismatch = errors.New("embedding dimension mismatch")

	// ErrIndexCorrupt indicates the persisted index exists but cannot be
	// trusted (unreadable, or vector and passage counts disagree).
	ErrIndexCorrupt = errors.New("vector index corrupt")

	// Collaborator errors. HTTP adapters classify responses into these
	// instead of substring-matching error messages.

	// ErrUnauthorized indicates a rejected or missing API credential.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrRateLimited indicates the collaborator's rate or quota limit was hit.
	ErrRateLimited = errors.New("rate limited")

	// ErrUnavailable indicates the collaborator could not be reached or
	// failed server-side.
	ErrUnavailable = errors.New("service unavailable")
)

// ExtractionError is a fatal per-upload failure: the document could not be
// opened, parsed, or yielded no extractable text.
type ExtractionError struct {
	DocumentID string
	Err        error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extraction failed for %s: %v", e.DocumentID, e.Err)
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}
