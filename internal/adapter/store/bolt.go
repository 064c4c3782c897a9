package store

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"sync"

	"go.etcd.io/bbolt"

	"voicetutor/internal/domain"
)

var (
	bucketVectors  = []byte("vectors")
	bucketPassages = []byte("passages")
	bucketState    = []byte("state")
	keyDimension   = []byte("dimension")
)

// BoltIndex is the append-only vector index. Each entry is a (vector,
// passage) pair stored under the same sequence key; every Add writes both
// buckets in one transaction, so no reader can ever observe a vector
// without its passage. The full corpus is mirrored in memory for search;
// the mutex serializes writers and gives readers consistent snapshots.
//
// Search is an exact L2 scan over all stored vectors. That is linear in
// corpus size, which is fine for a shelf of textbooks but not for
// millions of vectors.
type BoltIndex struct {
	db *bbolt.DB

	mu        sync.RWMutex
	dimension int
	vectors   [][]float32
	entries   []domain.Chunk
}

type storedVector struct {
	Vector []float32 `json:"v"`
}

// OpenBoltIndex opens (or creates) the index database and loads it into
// memory. A database whose vector and passage counts disagree, or whose
// records cannot be decoded, fails with domain.ErrIndexCorrupt rather
// than silently starting empty.
func OpenBoltIndex(path string) (*BoltIndex, error) {
	db, err := bbolt.Open(path, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open index db: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		for _, b := range [][]byte{bucketVectors, bucketPassages, bucketState} {
			if _, err := tx.CreateBucketIfNotExists(b); err != nil {
				return fmt.Errorf("failed to create bucket %s: %w", b, err)
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	idx := &BoltIndex{db: db}
	if err := idx.load(); err != nil {
		db.Close()
		return nil, err
	}

	return idx, nil
}

func (s *BoltIndex) load() error {
	return s.db.View(func(tx *bbolt.Tx) error {
		vectors := tx.Bucket(bucketVectors)
		passages := tx.Bucket(bucketPassages)

		vCount := vectors.Stats().KeyN
		pCount := passages.Stats().KeyN
		if vCount != pCount {
			return fmt.Errorf("%d vectors but %d passages: %w", vCount, pCount, domain.ErrIndexCorrupt)
		}

		err := vectors.ForEach(func(k, v []byte) error {
			var stored storedVector
			if err := json.Unmarshal(v, &stored); err != nil {
				return fmt.Errorf("vector %d undecodable: %w", seqOf(k), domain.ErrIndexCorrupt)
			}
			s.vectors = append(s.vectors, stored.Vector)
			return nil
		})
		if err != nil {
			return err
		}

		err = passages.ForEach(func(k, v []byte) error {
			var chunk domain.Chunk
			if err := json.Unmarshal(v, &chunk); err != nil {
				return fmt.Errorf("passage %d undecodable: %w", seqOf(k), domain.ErrIndexCorrupt)
			}
			s.entries = append(s.entries, chunk)
			return nil
		})
		if err != nil {
			return err
		}

		if data := tx.Bucket(bucketState).Get(keyDimension); data != nil {
			if len(data) != 8 {
				return fmt.Errorf("dimension record unreadable: %w", domain.ErrIndexCorrupt)
			}
			s.dimension = int(binary.BigEndian.Uint64(data))
		} else if len(s.vectors) > 0 {
			return fmt.Errorf("dimension record missing: %w", domain.ErrIndexCorrupt)
		}

		for _, v := range s.vectors {
			if len(v) != s.dimension {
				return fmt.Errorf("stored vector width %d != dimension %d: %w",
					len(v), s.dimension, domain.ErrIndexCorrupt)
			}
		}

		return nil
	})
}

// Add appends vectors and their passages in input order. The first batch
// on an empty index fixes the dimension for the index's lifetime.
func (s *BoltIndex) Add(vectors [][]float32, entries []domain.Chunk) error {
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

	start := uint64(len(s.vectors))
	err := s.db.Update(func(tx *bbolt.Tx) error {
		vBucket := tx.Bucket(bucketVectors)
		pBucket := tx.Bucket(bucketPassages)

		for i := range vectors {
			key := seqKey(start + uint64(i))

			vData, err := json.Marshal(storedVector{Vector: vectors[i]})
			if err != nil {
				return err
			}
			if err := vBucket.Put(key, vData); err != nil {
				return err
			}

			pData, err := json.Marshal(entries[i])
			if err != nil {
				return err
			}
			if err := pBucket.Put(key, pData); err != nil {
				return err
			}
		}

		dimData := make([]byte, 8)
		binary.BigEndian.PutUint64(dimData, uint64(dim))
		return tx.Bucket(bucketState).Put(keyDimension, dimData)
	})
	if err != nil {
		return fmt.Errorf("failed to persist index: %w", err)
	}

	// Memory is updated only after the transaction committed, so a failed
	// write leaves the index in its prior valid state.
	s.dimension = dim
	s.vectors = append(s.vectors, vectors...)
	s.entries = append(s.entries, entries...)

	return nil
}

// Search returns up to topK passages by ascending exact L2 distance.
func (s *BoltIndex) Search(query []float32, topK int) ([]domain.RetrievedPassage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return scan(s.vectors, s.entries, s.dimension, query, topK)
}

func (s *BoltIndex) Size() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.vectors)
}

func (s *BoltIndex) Dimension() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.dimension
}

func (s *BoltIndex) Sources() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return distinctSources(s.entries)
}

// NextChunkID returns the id the next appended chunk must carry, which is
// its position in the index.
func (s *BoltIndex) NextChunkID() int {
	return s.Size()
}

// Clear discards all state, in memory and on disk. Idempotent.
func (s *BoltIndex) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.db.Update(func(tx *bbolt.Tx) error {
		for _, b := range [][]byte{bucketVectors, bucketPassages, bucketState} {
			if err := tx.DeleteBucket(b); err != nil {
				return err
			}
			if _, err := tx.CreateBucket(b); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to clear index: %w", err)
	}

	s.dimension = 0
	s.vectors = nil
	s.entries = nil

	return nil
}

func (s *BoltIndex) Close() error {
	return s.db.Close()
}

func seqKey(seq uint64) []byte {
	key := make([]byte, 8)
	binary.BigEndian.PutUint64(key, seq)
	return key
}

func seqOf(key []byte) uint64 {
	if len(key) != 8 {
		return 0
	}
	return binary.BigEndian.Uint64(key)
}

// scan is the shared brute-force search over an in-memory corpus.
func scan(vectors [][]float32, entries []domain.Chunk, dimension int, query []float32, topK int) ([]domain.RetrievedPassage, error) {
	if len(vectors) == 0 {
		return nil, nil
	}
	if len(query) != dimension {
		return nil, fmt.Errorf("query width %d, index width %d: %w",
			len(query), dimension, domain.ErrDimensionMismatch)
	}
	if topK <= 0 {
		return nil, nil
	}

	results := make([]domain.RetrievedPassage, len(vectors))
	for i, v := range vectors {
		results[i] = domain.RetrievedPassage{
			Chunk:    entries[i],
			Distance: l2Distance(query, v),
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

func distinctSources(entries []domain.Chunk) []string {
	seen := make(map[string]struct{})
	var sources []string
	for _, e := range entries {
		if _, ok := seen[e.DocumentID]; !ok {
			seen[e.DocumentID] = struct{}{}
			sources = append(sources, e.DocumentID)
		}
	}
	return sources
}

// l2Distance is the Euclidean distance between two equal-width vectors.
func l2Distance(a, b []float32) float64 {
	var sum float64
	for i := range a {
		d := float64(a[i]) - float64(b[i])
		sum += d * d
	}
	return math.Sqrt(sum)
}
