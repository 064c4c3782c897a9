package retriever

import (
	"errors"
	"testing"

	"voicetutor/internal/adapter/memstore"
	"voicetutor/internal/domain"
)

// fixedEmbedder returns the same vector for every query.
type fixedEmbedder struct {
	vector []float32
	err    error
}

func (e *fixedEmbedder) Embed(texts []string) ([][]float32, error) {
	if e.err != nil {
		return nil, e.err
	}
	out := make([][]float32, len(texts))
	for i := range out {
		out[i] = e.vector
	}
	return out, nil
}

func (e *fixedEmbedder) EmbedOne(text string) ([]float32, error) {
	if e.err != nil {
		return nil, e.err
	}
	return e.vector, nil
}

func (e *fixedEmbedder) Dimension() int { return len(e.vector) }

func (e *fixedEmbedder) ModelName() string { return "fixed" }

// capturingIndex records the topK requested from Search.
type capturingIndex struct {
	*memstore.MemoryIndex
	lastTopK int
}

func (c *capturingIndex) Search(query []float32, topK int) ([]domain.RetrievedPassage, error) {
	c.lastTopK = topK
	return c.MemoryIndex.Search(query, topK)
}

func seedIndex(t *testing.T) *memstore.MemoryIndex {
	t.Helper()
	idx := memstore.NewMemoryIndex()

	// Distances from the query vector {1, 0}:
	//   chunk 0: 0.0, chunk 1: ~0.89, chunk 2: ~1.41
	vectors := [][]float32{
		{1, 0},
		{0.6, 0.8},
		{0, 1},
	}
	entries := []domain.Chunk{
		{ID: 0, DocumentID: "bio.pdf", Page: 1, Text: "osmosis"},
		{ID: 1, DocumentID: "bio.pdf", Page: 2, Text: "diffusion"},
		{ID: 2, DocumentID: "chem.pdf", Page: 9, Text: "entropy"},
	}
	if err := idx.Add(vectors, entries); err != nil {
		t.Fatal(err)
	}
	return idx
}

func TestRetrieveFiltersByThreshold(t *testing.T) {
	idx := seedIndex(t)
	r := NewSemanticRetriever(&fixedEmbedder{vector: []float32{1, 0}}, idx, 1.2)

	passages, err := r.Retrieve("what is osmosis", 5, "")
	if err != nil {
		t.Fatal(err)
	}

	if len(passages) != 2 {
		t.Fatalf("got %d passages, want 2 under threshold", len(passages))
	}
	if passages[0].ID != 0 || passages[1].ID != 1 {
		t.Errorf("unexpected order: %d, %d", passages[0].ID, passages[1].ID)
	}
	for _, p := range passages {
		if p.Distance > 1.2 {
			t.Errorf("passage %d has distance %f above threshold", p.ID, p.Distance)
		}
	}
}

func TestRetrieveTighterThresholdShrinksResults(t *testing.T) {
	idx := seedIndex(t)

	loose := NewSemanticRetriever(&fixedEmbedder{vector: []float32{1, 0}}, idx, 1.2)
	tight := NewSemanticRetriever(&fixedEmbedder{vector: []float32{1, 0}}, idx, 0.5)

	loosePassages, err := loose.Retrieve("q", 5, "")
	if err != nil {
		t.Fatal(err)
	}
	tightPassages, err := tight.Retrieve("q", 5, "")
	if err != nil {
		t.Fatal(err)
	}

	if len(tightPassages) >= len(loosePassages) {
		t.Errorf("tighter threshold returned %d passages, loose returned %d",
			len(tightPassages), len(loosePassages))
	}
	if len(tightPassages) != 1 || tightPassages[0].ID != 0 {
		t.Errorf("unexpected tight results: %+v", tightPassages)
	}
}

func TestRetrieveEmptyQuery(t *testing.T) {
	idx := seedIndex(t)
	r := NewSemanticRetriever(&fixedEmbedder{vector: []float32{1, 0}}, idx, 1.2)

	for _, q := range []string{"", "   ", "\n\t"} {
		if _, err := r.Retrieve(q, 5, ""); !errors.Is(err, domain.ErrEmptyQuery) {
			t.Errorf("query %q: got %v, want ErrEmptyQuery", q, err)
		}
	}
}

func TestRetrieveSourceFilter(t *testing.T) {
	idx := seedIndex(t)
	capture := &capturingIndex{MemoryIndex: idx}
	r := NewSemanticRetriever(&fixedEmbedder{vector: []float32{1, 0}}, capture, 2.0)

	passages, err := r.Retrieve("q", 2, "chem.pdf")
	if err != nil {
		t.Fatal(err)
	}

	if capture.lastTopK != 6 {
		t.Errorf("fetched %d candidates, want 3x top-k", capture.lastTopK)
	}
	if len(passages) != 1 {
		t.Fatalf("got %d passages, want 1", len(passages))
	}
	if passages[0].DocumentID != "chem.pdf" {
		t.Errorf("filter leaked passage from %s", passages[0].DocumentID)
	}
}

func TestRetrieveNoMatchesIsNotAnError(t *testing.T) {
	idx := seedIndex(t)
	r := NewSemanticRetriever(&fixedEmbedder{vector: []float32{1, 0}}, idx, 2.0)

	passages, err := r.Retrieve("q", 5, "physics.pdf")
	if err != nil {
		t.Fatal(err)
	}
	if len(passages) != 0 {
		t.Errorf("got %d passages for an absent source", len(passages))
	}
}

func TestRetrieveEmbedderFailure(t *testing.T) {
	idx := seedIndex(t)
	r := NewSemanticRetriever(&fixedEmbedder{err: domain.ErrRateLimited}, idx, 1.2)

	_, err := r.Retrieve("q", 5, "")
	if !errors.Is(err, domain.ErrRateLimited) {
		t.Fatalf("got %v, want wrapped ErrRateLimited", err)
	}
}
