// Package memstore provides an ephemeral vector index with the same
// semantics as the persistent one. Used by tests and throwaway sessions.
package memstore

import (
	"fmt"
	"math"
	"sort"
	"sync"

	"voicetutor/internal/domain"
)

type MemoryIndex struct {
	mu        sync.RWMutex
	dimension int
	vectors   [][]float32
	entries   []domain.Chunk
}

func NewMemoryIndex() *MemoryIndex {
	return &MemoryIndex{}
}

func (s *MemoryIndex) Add(vectors [][]float32, entries []domain.Chunk) error {
	if len(vectors) != len(entries) {
		return fmt.Errorf("vector count %d != passage count %d", len(vectors), len(entries))
	}
	if len(vectors) == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	dim := s.dimension
	if len(s.vectors) == 0 {
		dim = len(vectors[0])
	}
	for _, v := range vectors {
		if len(v) != dim {
			return fmt.Errorf("expected width %d, got %d: %w", dim, len(v), domain.ErrDimensionMismatch)
		}
	}

	s.dimension = dim
	s.vectors = append(s.vectors, vectors...)
	s.entries = append(s.entries, entries...)
	return nil
}

func (s *MemoryIndex) Search(query []float32, topK int) ([]domain.RetrievedPassage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.vectors) == 0 || topK <= 0 {
		return nil, nil
	}
	if len(query) != s.dimension {
		return nil, fmt.Errorf("query width %d, index width %d: %w",
			len(query), s.dimension, domain.ErrDimensionMismatch)
	}

	results := make([]domain.RetrievedPassage, len(s.vectors))
	for i, v := range s.vectors {
		var sum float64
		for j := range v {
			d := float64(query[j]) - float64(v[j])
			sum += d * d
		}
		results[i] = domain.RetrievedPassage{
			Chunk:    s.entries[i],
			Distance: math.Sqrt(sum),
		}
	}

	sort.Slice(results, func(i, j int) bool {
		return results[i].Distance < results[j].Distance
	})

	if topK < len(results) {
		results = results[:topK]
	}
	return results, nil
}

func (s *MemoryIndex) Size() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.vectors)
}

func (s *MemoryIndex) Dimension() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.dimension
}

func (s *MemoryIndex) Sources() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	seen := make(map[string]struct{})
	var sources []string
	for _, e := range s.entries {
		if _, ok := seen[e.DocumentID]; !ok {
			seen[e.DocumentID] = struct{}{}
			sources = append(sources, e.DocumentID)
		}
	}
	return sources
}

func (s *MemoryIndex) NextChunkID() int {
	return s.Size()
}

func (s *MemoryIndex) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.dimension = 0
	s.vectors = nil
	s.entries = nil
	return nil
}

func (s *MemoryIndex) Close() error {
	return nil
}
