package chunker

import (
	"strings"

	"voicetutor/internal/domain"
)

// Default separators, tried in priority order: paragraph breaks, line
// breaks, sentence boundaries, spaces, then arbitrary character splits.
var defaultSeparators = []string{"\n\n", "\n", ". ", " ", ""}

// RecursiveSplitter splits text into pieces at most chunkSize characters
// long, preferring the earliest separator that keeps pieces under the
// target. Overlap is carried from the tail of one piece into the next.
type RecursiveSplitter struct {
	chunkSize  int
	overlap    int
	separators []string
}

func NewRecursiveSplitter(chunkSize, overlap int) *RecursiveSplitter {
	return &RecursiveSplitter{
		chunkSize:  chunkSize,
		overlap:    overlap,
		separators: defaultSeparators,
	}
}

// Split breaks text into overlapping pieces of at most chunkSize
// characters.
func (s *RecursiveSplitter) Split(text string) []string {
	return s.split(text, s.separators)
}

func (s *RecursiveSplitter) split(text string, separators []string) []string {
	sep := separators[len(separators)-1]
	var remaining []string
	for i, candidate := range separators {
		if candidate == "" || strings.Contains(text, candidate) {
			sep = candidate
			remaining = separators[i+1:]
			break
		}
	}

	splits := strings.Split(text, sep)

	var pieces []string
	var pending []string
	for _, piece := range splits {
		if len(piece) < s.chunkSize {
			pending = append(pending, piece)
			continue
		}

		if len(pending) > 0 {
			pieces = append(pieces, s.merge(pending, sep)...)
			pending = nil
		}

		// Piece is still too large for this separator; recurse with the
		// finer-grained ones.
		if len(remaining) == 0 {
			pieces = append(pieces, piece)
		} else {
			pieces = append(pieces, s.split(piece, remaining)...)
		}
	}
	if len(pending) > 0 {
		pieces = append(pieces, s.merge(pending, sep)...)
	}

	return pieces
}

// merge greedily joins splits with sep up to chunkSize, then slides a
// window: pieces totaling at most overlap characters are retained from
// the tail of one chunk and prepended to the next.
func (s *RecursiveSplitter) merge(splits []string, sep string) []string {
	var chunks []string
	var window []string
	total := 0

	for _, piece := range splits {
		addition := len(piece)
		if len(window) > 0 {
			addition += len(sep)
		}

		if total+addition > s.chunkSize && len(window) > 0 {
			if chunk := joinPieces(window, sep); chunk != "" {
				chunks = append(chunks, chunk)
			}

			// Shrink the window to the overlap budget, or further if the
			// incoming piece would still not fit.
			for len(window) > 0 &&
				(total > s.overlap || total+addition > s.chunkSize) {
				total -= len(window[0])
				if len(window) > 1 {
					total -= len(sep)
				}
				window = window[1:]
			}
		}

		window = append(window, piece)
		total += len(piece)
		if len(window) > 1 {
			total += len(sep)
		}
	}

	if chunk := joinPieces(window, sep); chunk != "" {
		chunks = append(chunks, chunk)
	}

	return chunks
}

func joinPieces(pieces []string, sep string) string {
	return strings.TrimSpace(strings.Join(pieces, sep))
}

// PageChunker turns extracted pages into passages with globally
// sequential ids. The id sequence continues wherever the corpus left off;
// it is the passage's position in the vector index.
type PageChunker struct {
	splitter *RecursiveSplitter
}

func NewPageChunker(chunkSize, overlap int) *PageChunker {
	return &PageChunker{splitter: NewRecursiveSplitter(chunkSize, overlap)}
}

func (c *PageChunker) Chunk(pages []domain.Page, nextID int) ([]domain.Chunk, error) {
	var chunks []domain.Chunk
	id := nextID

	for _, page := range pages {
		if strings.TrimSpace(page.Text) == "" {
			continue
		}

		for _, piece := range c.splitter.Split(page.Text) {
			chunks = append(chunks, domain.Chunk{
				ID:         id,
				DocumentID: page.DocumentID,
				Page:       page.Number,
				Text:       piece,
			})
			id++
		}
	}

	return chunks, nil
}
