package chunker

import (
	"strings"
	"unicode"

	"voicetutor/internal/domain"
	"voicetutor/internal/logger"
	"voicetutor/internal/port"
)

// SemanticChunker splits pages into heading and paragraph units, then
// greedily merges adjacent paragraphs while the size budget holds and the
// merge judge agrees. It trades determinism and latency for topic-coherent
// chunks; the output shape is identical to the default splitter's.
type SemanticChunker struct {
	judge port.MergeJudge
	limit int // merge budget in characters
}

func NewSemanticChunker(judge port.MergeJudge, limit int) *SemanticChunker {
	return &SemanticChunker{judge: judge, limit: limit}
}

func (c *SemanticChunker) Chunk(pages []domain.Page, nextID int) ([]domain.Chunk, error) {
	var chunks []domain.Chunk
	id := nextID

	for _, page := range pages {
		if strings.TrimSpace(page.Text) == "" {
			continue
		}

		units := detectUnits(page.Text)
		texts := make([]string, 0, len(units))
		for _, u := range units {
			if u.heading {
				// Keep headings attached to the following paragraph.
				texts = append(texts, "## "+u.text)
			} else {
				texts = append(texts, u.text)
			}
		}
		if len(texts) == 0 {
			continue
		}

		for _, merged := range c.mergeUnits(texts) {
			chunks = append(chunks, domain.Chunk{
				ID:         id,
				DocumentID: page.DocumentID,
				Page:       page.Number,
				Text:       merged,
			})
			id++
		}
	}

	return chunks, nil
}

// mergeUnits folds consecutive paragraphs into one chunk while the budget
// holds and the judge agrees. A judge failure means "do not merge".
func (c *SemanticChunker) mergeUnits(units []string) []string {
	if len(units) <= 1 {
		return units
	}

	var merged []string
	current := units[0]

	for _, next := range units[1:] {
		candidate := current + "\n\n" + next
		if len(candidate) > c.limit {
			merged = append(merged, current)
			current = next
			continue
		}

		ok, err := c.judge.ShouldMerge(current, next)
		if err != nil {
			logger.Warn("merge judge failed, not merging: %v", err)
			ok = false
		}

		if ok {
			current = candidate
		} else {
			merged = append(merged, current)
			current = next
		}
	}

	if current != "" {
		merged = append(merged, current)
	}

	return merged
}

type textUnit struct {
	text    string
	heading bool
}

// detectUnits splits text into paragraphs on blank lines and flags
// heading-like lines: all-caps lines, short lines without a trailing
// period, and lines starting with chapter or section markers.
func detectUnits(text string) []textUnit {
	var units []textUnit
	var current []string

	flush := func() {
		if len(current) == 0 {
			return
		}
		para := strings.TrimSpace(strings.Join(current, "\n"))
		if para != "" {
			units = append(units, textUnit{text: para})
		}
		current = nil
	}

	for _, line := range strings.Split(text, "\n") {
		stripped := strings.TrimSpace(line)
		if stripped == "" {
			flush()
			continue
		}

		if isHeading(stripped) {
			flush()
			units = append(units, textUnit{text: stripped, heading: true})
			continue
		}

		current = append(current, line)
	}
	flush()

	return units
}

func isHeading(line string) bool {
	if strings.HasPrefix(line, "Chapter") || strings.HasPrefix(line, "Section") ||
		strings.HasPrefix(line, "CHAPTER") || strings.HasPrefix(line, "SECTION") {
		return true
	}
	if isAllUpper(line) {
		return true
	}
	return len(line) < 60 && !strings.HasSuffix(line, ".")
}

func isAllUpper(s string) bool {
	hasLetter := false
	for _, r := range s {
		if unicode.IsLetter(r) {
			hasLetter = true
			if !unicode.IsUpper(r) {
				return false
			}
		}
	}
	return hasLetter
}
