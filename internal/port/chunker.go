package port

import "voicetutor/internal/domain"

// Chunker splits extracted pages into passages. Both chunking strategies
// produce the same Chunk shape so downstream components are agnostic to
// which one was used.
type Chunker interface {
	// Chunk produces passages for the given pages, assigning sequential
	// chunk ids starting at nextID. Pages with only whitespace contribute
	// zero chunks.
	Chunk(pages []domain.Page, nextID int) ([]domain.Chunk, error)
}

// MergeJudge decides whether two consecutive paragraphs discuss the same
// topic and should become one chunk. A judge failure must be treated as
// "do not merge".
type MergeJudge interface {
	ShouldMerge(first, second string) (bool, error)
}
