package domain

import "math"

// Page is the text of one physical page of a source document, after
// cleaning. Pages with no extractable text are never materialized.
type Page struct {
	DocumentID string
	Number     int // 1-based
	Text       string
}

// Chunk is one retrievable passage of a page. ID is globally sequential
// across the whole corpus and doubles as the chunk's position in the
// vector index.
type Chunk struct {
	ID         int    `json:"chunk_id"`
	DocumentID string `json:"document_id"`
	Page       int    `json:"page"`
	Text       string `json:"text"`
}

// RetrievedPassage is a Chunk decorated with its query-time L2 distance.
// Produced per query, never persisted.
type RetrievedPassage struct {
	Chunk
	Distance float64
}

// Score returns the distance rounded to 4 decimal places for display.
// Threshold comparisons must use Distance, which keeps full precision.
func (p RetrievedPassage) Score() float64 {
	return math.Round(p.Distance*1e4) / 1e4
}

// IngestResult summarizes one document's contribution to the corpus.
type IngestResult struct {
	DocumentID     string
	PagesExtracted int
	ChunksIndexed  int
	TotalVectors   int
}

// CorpusStats describes the current state of the vector index.
type CorpusStats struct {
	TotalVectors int
	Dimension    int
	Sources      []string
}

// Answer is the outcome of one question against the corpus.
type Answer struct {
	Question  string
	Text      string
	Passages  []RetrievedPassage
	AudioPath string
	Engine    string
	Cached    bool
}
