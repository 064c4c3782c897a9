package extractor

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"voicetutor/internal/domain"
)

func TestExtractMissingFile(t *testing.T) {
	e := NewPDFExtractor(t.TempDir())

	_, err := e.Extract(filepath.Join(t.TempDir(), "absent.pdf"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}

	var extErr *domain.ExtractionError
	if !errors.As(err, &extErr) {
		t.Fatalf("got %T, want *domain.ExtractionError", err)
	}
	if extErr.DocumentID != "absent.pdf" {
		t.Errorf("error names document %q", extErr.DocumentID)
	}
}

func TestCleanText(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			"whitespace runs collapsed",
			"Water   moves\tacross    membranes",
			"Water moves across membranes",
		},
		{
			"lines joined with spaces",
			"Water moves\nacross membranes",
			"Water moves across membranes",
		},
		{
			"blank lines dropped",
			"First\n\n\nSecond",
			"First Second",
		},
		{
			"all whitespace becomes empty",
			"  \n \t \n ",
			"",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := cleanText(tt.in); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSaveAuditTextFormat(t *testing.T) {
	dir := t.TempDir()
	e := NewPDFExtractor(dir)

	pages := []domain.Page{
		{DocumentID: "bio.pdf", Number: 1, Text: "Cells divide."},
		{DocumentID: "bio.pdf", Number: 3, Text: "Tissues form."},
	}
	if err := e.saveAuditText("bio.pdf", pages); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "bio.txt"))
	if err != nil {
		t.Fatal(err)
	}

	for _, want := range []string{"PAGE 1", "PAGE 3", "Cells divide.", "Tissues form."} {
		if !strings.Contains(string(data), want) {
			t.Errorf("audit text missing %q", want)
		}
	}
}
