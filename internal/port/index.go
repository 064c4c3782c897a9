package port

import "voicetutor/internal/domain"

// VectorIndex is the append-only nearest-neighbor store over the corpus.
// Vectors and their passages are persisted as a single unit: a search can
// never observe one without the other.
type VectorIndex interface {
	// Add appends vectors and their passages in input order. It requires
	// len(vectors) == len(entries) and, once the index holds vectors,
	// rejects any vector whose width differs from the index dimension
	// with domain.ErrDimensionMismatch, leaving the index untouched.
	// An empty index takes its dimension from the first batch.
	Add(vectors [][]float32, entries []domain.Chunk) error

	// Search returns up to topK passages ordered by ascending exact L2
	// distance. An empty index yields an empty result, not an error.
	Search(query []float32, topK int) ([]domain.RetrievedPassage, error)

	// Size returns the total vector count.
	Size() int

	// Sources returns the distinct document ids in the corpus.
	Sources() []string

	// Dimension returns the fixed vector width, 0 while the index is empty.
	Dimension() int

	// NextChunkID returns the id the next appended chunk must carry.
	NextChunkID() int

	// Clear discards all state, in memory and on disk. Idempotent.
	Clear() error

	Close() error
}
