package retriever

import (
	"fmt"
	"strings"

	"voicetutor/internal/domain"
	"voicetutor/internal/logger"
	"voicetutor/internal/port"
)

// SemanticRetriever embeds the query, searches the vector index, and
// filters candidates by distance threshold and optional source document.
type SemanticRetriever struct {
	embedder  port.Embedder
	index     port.VectorIndex
	threshold float64 // max L2 distance considered relevant
}

func NewSemanticRetriever(embedder port.Embedder, index port.VectorIndex, threshold float64) *SemanticRetriever {
	return &SemanticRetriever{
		embedder:  embedder,
		index:     index,
		threshold: threshold,
	}
}

// Retrieve returns up to topK passages under the threshold, nearest
// first. When sourceFilter is set, three times as many candidates are
// fetched to compensate for post-filtering shrinkage. An empty result is
// the "not found in corpus" signal, not an error.
func (r *SemanticRetriever) Retrieve(query string, topK int, sourceFilter string) ([]domain.RetrievedPassage, error) {
	if strings.TrimSpace(query) == "" {
		return nil, domain.ErrEmptyQuery
	}

	embedding, err := r.embedder.EmbedOne(query)
	if err != nil {
		return nil, fmt.Errorf("failed to embed query: %w", err)
	}

	fetchK := topK
	if sourceFilter != "" {
		fetchK = topK * 3
	}

	candidates, err := r.index.Search(embedding, fetchK)
	if err != nil {
		return nil, fmt.Errorf("vector search failed: %w", err)
	}

	// Threshold comparison uses full-precision distances; rounding is for
	// display only.
	passages := make([]domain.RetrievedPassage, 0, topK)
	for _, c := range candidates {
		if c.Distance > r.threshold {
			continue
		}
		if sourceFilter != "" && c.DocumentID != sourceFilter {
			continue
		}
		passages = append(passages, c)
		if len(passages) >= topK {
			break
		}
	}

	logger.Info("retrieved %d relevant passages (threshold=%.2f)", len(passages), r.threshold)
	return passages, nil
}
