package extractor

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"

	"voicetutor/internal/domain"
	"voicetutor/internal/logger"
)

// PDFExtractor pulls per-page text out of PDF files. Alongside returning
// pages it writes the full extracted text to textDir as a human-readable
// audit artifact; nothing reads that file back.
type PDFExtractor struct {
	textDir string
}

func NewPDFExtractor(textDir string) *PDFExtractor {
	return &PDFExtractor{textDir: textDir}
}

// Extract returns the document's non-empty pages in order. Pages whose
// text is blank after cleaning are skipped entirely.
func (e *PDFExtractor) Extract(path string) ([]domain.Page, error) {
	docID := filepath.Base(path)

	f, reader, err := pdf.Open(path)
	if err != nil {
		return nil, &domain.ExtractionError{DocumentID: docID, Err: err}
	}
	defer f.Close()

	var pages []domain.Page
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			logger.Warn("page %d of %s unreadable: %v", i, docID, err)
			continue
		}

		cleaned := cleanText(text)
		if cleaned == "" {
			continue
		}

		pages = append(pages, domain.Page{
			DocumentID: docID,
			Number:     i,
			Text:       cleaned,
		})
	}

	if len(pages) == 0 {
		return nil, &domain.ExtractionError{
			DocumentID: docID,
			Err:        fmt.Errorf("no extractable text"),
		}
	}

	if err := e.saveAuditText(docID, pages); err != nil {
		logger.Warn("failed to save extracted text for %s: %v", docID, err)
	}

	logger.Info("extracted %d pages from %s", len(pages), docID)
	return pages, nil
}

// cleanText collapses layout artifacts: intra-line whitespace runs become
// single spaces, blank lines are dropped, and surviving lines are joined
// with single spaces. Exact layout fidelity is traded for chunking
// stability.
func cleanText(text string) string {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.Join(strings.Fields(line), " ")
		if line != "" {
			lines = append(lines, line)
		}
	}
	return strings.Join(lines, " ")
}

// saveAuditText persists the extracted text with per-page banners, keyed
// by document id.
func (e *PDFExtractor) saveAuditText(docID string, pages []domain.Page) error {
	if e.textDir == "" {
		return nil
	}

	name := strings.TrimSuffix(docID, filepath.Ext(docID)) + ".txt"

	var b strings.Builder
	banner := strings.Repeat("=", 60)
	for _, page := range pages {
		fmt.Fprintf(&b, "\n%s\nPAGE %d\n%s\n%s\n", banner, page.Number, banner, page.Text)
	}

	return os.WriteFile(filepath.Join(e.textDir, name), []byte(b.String()), 0644)
}
