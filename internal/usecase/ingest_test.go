package usecase

import (
	"errors"
	"testing"

	"voicetutor/internal/adapter/memstore"
	"voicetutor/internal/domain"
)

// fakeExtractor returns canned pages.
type fakeExtractor struct {
	pages []domain.Page
	err   error
}

func (f *fakeExtractor) Extract(path string) ([]domain.Page, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.pages, nil
}

// passthroughChunker makes one chunk per page.
type passthroughChunker struct{}

func (passthroughChunker) Chunk(pages []domain.Page, nextID int) ([]domain.Chunk, error) {
	chunks := make([]domain.Chunk, len(pages))
	for i, p := range pages {
		chunks[i] = domain.Chunk{
			ID:         nextID + i,
			DocumentID: p.DocumentID,
			Page:       p.Number,
			Text:       p.Text,
		}
	}
	return chunks, nil
}

// countingEmbedder returns unit vectors and counts batch calls.
type countingEmbedder struct {
	dimension int
	batches   int
	err       error
}

func (e *countingEmbedder) Embed(texts []string) ([][]float32, error) {
	e.batches++
	if e.err != nil {
		return nil, e.err
	}
	out := make([][]float32, len(texts))
	for i := range out {
		v := make([]float32, e.dimension)
		v[0] = 1
		out[i] = v
	}
	return out, nil
}

func (e *countingEmbedder) EmbedOne(text string) ([]float32, error) {
	vectors, err := e.Embed([]string{text})
	if err != nil {
		return nil, err
	}
	return vectors[0], nil
}

func (e *countingEmbedder) Dimension() int { return e.dimension }

func (e *countingEmbedder) ModelName() string { return "counting" }

func testPages(doc string, n int) []domain.Page {
	pages := make([]domain.Page, n)
	for i := range pages {
		pages[i] = domain.Page{DocumentID: doc, Number: i + 1, Text: "page text"}
	}
	return pages
}

func TestIngestHappyPath(t *testing.T) {
	idx := memstore.NewMemoryIndex()
	uc := NewIngestUseCase(
		&fakeExtractor{pages: testPages("bio.pdf", 3)},
		passthroughChunker{},
		&countingEmbedder{dimension: 4},
		idx,
		100,
	)

	var lastProcessed, lastTotal int
	result, err := uc.Ingest("bio.pdf", func(processed, total int) {
		lastProcessed, lastTotal = processed, total
	})
	if err != nil {
		t.Fatal(err)
	}

	if result.DocumentID != "bio.pdf" {
		t.Errorf("document id %q", result.DocumentID)
	}
	if result.PagesExtracted != 3 || result.ChunksIndexed != 3 || result.TotalVectors != 3 {
		t.Errorf("unexpected result: %+v", result)
	}
	if idx.Size() != 3 {
		t.Errorf("index holds %d vectors", idx.Size())
	}
	if lastProcessed != 3 || lastTotal != 3 {
		t.Errorf("final progress %d/%d", lastProcessed, lastTotal)
	}
}

func TestIngestContinuesChunkIDs(t *testing.T) {
	idx := memstore.NewMemoryIndex()
	embedder := &countingEmbedder{dimension: 4}

	uc := NewIngestUseCase(&fakeExtractor{pages: testPages("a.pdf", 2)}, passthroughChunker{}, embedder, idx, 100)
	if _, err := uc.Ingest("a.pdf", nil); err != nil {
		t.Fatal(err)
	}

	uc2 := NewIngestUseCase(&fakeExtractor{pages: testPages("b.pdf", 2)}, passthroughChunker{}, embedder, idx, 100)
	if _, err := uc2.Ingest("b.pdf", nil); err != nil {
		t.Fatal(err)
	}

	results, err := idx.Search([]float32{1, 0, 0, 0}, 10)
	if err != nil {
		t.Fatal(err)
	}
	seen := make(map[int]bool)
	for _, r := range results {
		if seen[r.ID] {
			t.Errorf("duplicate chunk id %d across documents", r.ID)
		}
		seen[r.ID] = true
	}
	for id := 0; id < 4; id++ {
		if !seen[id] {
			t.Errorf("chunk id %d missing", id)
		}
	}
}

func TestIngestBatchesEmbedding(t *testing.T) {
	idx := memstore.NewMemoryIndex()
	embedder := &countingEmbedder{dimension: 4}
	uc := NewIngestUseCase(&fakeExtractor{pages: testPages("a.pdf", 5)}, passthroughChunker{}, embedder, idx, 2)

	if _, err := uc.Ingest("a.pdf", nil); err != nil {
		t.Fatal(err)
	}
	if embedder.batches != 3 {
		t.Errorf("embedded in %d batches, want 3", embedder.batches)
	}
}

func TestIngestEmbedFailureLeavesIndexUntouched(t *testing.T) {
	idx := memstore.NewMemoryIndex()
	uc := NewIngestUseCase(
		&fakeExtractor{pages: testPages("a.pdf", 2)},
		passthroughChunker{},
		&countingEmbedder{dimension: 4, err: domain.ErrRateLimited},
		idx,
		100,
	)

	_, err := uc.Ingest("a.pdf", nil)
	if !errors.Is(err, domain.ErrRateLimited) {
		t.Fatalf("got %v, want wrapped ErrRateLimited", err)
	}
	if idx.Size() != 0 {
		t.Errorf("failed ingest left %d vectors behind", idx.Size())
	}
}

func TestIngestExtractionFailure(t *testing.T) {
	idx := memstore.NewMemoryIndex()
	extractErr := &domain.ExtractionError{DocumentID: "bad.pdf", Err: errors.New("no text")}
	uc := NewIngestUseCase(&fakeExtractor{err: extractErr}, passthroughChunker{}, &countingEmbedder{dimension: 4}, idx, 100)

	_, err := uc.Ingest("bad.pdf", nil)
	var got *domain.ExtractionError
	if !errors.As(err, &got) {
		t.Fatalf("got %T, want *domain.ExtractionError", err)
	}
	if idx.Size() != 0 {
		t.Errorf("failed ingest left %d vectors behind", idx.Size())
	}
}
