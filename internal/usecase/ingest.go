package usecase

import (
	"fmt"

	"voicetutor/internal/adapter/fs"
	"voicetutor/internal/domain"
	"voicetutor/internal/logger"
	"voicetutor/internal/port"
)

// IngestUseCase runs the ingestion path: extract, chunk, embed, index.
type IngestUseCase struct {
	extractor port.Extractor
	chunker   port.Chunker
	embedder  port.Embedder
	index     port.VectorIndex
	batchSize int
}

func NewIngestUseCase(
	extractor port.Extractor,
	chunker port.Chunker,
	embedder port.Embedder,
	index port.VectorIndex,
	batchSize int,
) *IngestUseCase {
	if batchSize <= 0 {
		batchSize = 100
	}
	return &IngestUseCase{
		extractor: extractor,
		chunker:   chunker,
		embedder:  embedder,
		index:     index,
		batchSize: batchSize,
	}
}

// ProgressFunc reports embedding progress: chunks processed out of total.
type ProgressFunc func(processed, total int)

// Ingest indexes one document. The document's contribution is
// all-or-nothing: every failure before the final index append leaves the
// corpus untouched, and the append itself is atomic.
func (u *IngestUseCase) Ingest(path string, progress ProgressFunc) (*domain.IngestResult, error) {
	pages, err := u.extractor.Extract(path)
	if err != nil {
		return nil, err
	}

	chunks, err := u.chunker.Chunk(pages, u.index.NextChunkID())
	if err != nil {
		return nil, fmt.Errorf("chunking failed: %w", err)
	}
	if len(chunks) == 0 {
		return nil, &domain.ExtractionError{
			DocumentID: pages[0].DocumentID,
			Err:        fmt.Errorf("no chunks produced"),
		}
	}

	vectors := make([][]float32, 0, len(chunks))
	for i := 0; i < len(chunks); i += u.batchSize {
		end := i + u.batchSize
		if end > len(chunks) {
			end = len(chunks)
		}

		texts := make([]string, end-i)
		for j, c := range chunks[i:end] {
			texts[j] = c.Text
		}

		batch, err := u.embedder.Embed(texts)
		if err != nil {
			return nil, fmt.Errorf("embedding failed: %w", err)
		}
		vectors = append(vectors, batch...)

		if progress != nil {
			progress(end, len(chunks))
		}
	}

	if err := u.index.Add(vectors, chunks); err != nil {
		return nil, fmt.Errorf("indexing failed: %w", err)
	}

	result := &domain.IngestResult{
		DocumentID:     chunks[0].DocumentID,
		PagesExtracted: len(pages),
		ChunksIndexed:  len(chunks),
		TotalVectors:   u.index.Size(),
	}

	logger.Info("ingested %s: %d pages, %d chunks, %d total vectors",
		result.DocumentID, result.PagesExtracted, result.ChunksIndexed, result.TotalVectors)
	return result, nil
}

// DirResult aggregates a directory ingestion.
type DirResult struct {
	Ingested []domain.IngestResult
	Errors   []string
}

// IngestDir ingests every PDF under root. Per-document failures are
// collected rather than aborting the batch; each successful document's
// contribution is still atomic.
func (u *IngestUseCase) IngestDir(root string, progress ProgressFunc) (*DirResult, error) {
	walker := fs.NewWalker([]string{"**/*.pdf", "**/*.PDF"}, nil)
	paths, err := walker.Walk(root)
	if err != nil {
		return nil, fmt.Errorf("failed to walk %s: %w", root, err)
	}

	result := &DirResult{}
	for _, path := range paths {
		r, err := u.Ingest(path, progress)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", path, err))
			continue
		}
		result.Ingested = append(result.Ingested, *r)
	}

	return result, nil
}
