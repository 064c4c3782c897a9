package cli

import (
	"fmt"
	"os"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"voicetutor/internal/adapter/extractor"
	"voicetutor/internal/usecase"
)

var ingestCmd = &cobra.Command{
	Use:   "ingest <path>",
	Short: "Index a textbook PDF or a directory of PDFs",
	Long: `Extract text from PDFs, split it into passages, embed the passages,
and append them to the local vector index.

Examples:
  voicetutor ingest biology.pdf
  voicetutor ingest ./textbooks`,
	Args: cobra.ExactArgs(1),
	RunE: runIngest,
}

func init() {
	rootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, args []string) error {
	cfg := GetConfig()
	path := args[0]

	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("cannot access %s: %w", path, err)
	}

	idx, err := openIndex(cfg)
	if err != nil {
		return err
	}
	defer idx.Close()

	embedder, err := newEmbedder(cfg)
	if err != nil {
		return fmt.Errorf("failed to create embedder: %w", err)
	}

	chk, err := newChunker(cfg)
	if err != nil {
		return err
	}

	ext := extractor.NewPDFExtractor(cfg.TextDir())
	ingestUC := usecase.NewIngestUseCase(ext, chk, embedder, idx, cfg.Embedding.BatchSize)

	// Progress bar is created lazily, once the chunk total is known, and
	// restarted for each document.
	var bar *progressbar.ProgressBar
	var barTotal, lastProcessed int
	progress := func(processed, total int) {
		if bar == nil || total != barTotal || processed < lastProcessed {
			barTotal = total
			bar = progressbar.NewOptions(total,
				progressbar.OptionEnableColorCodes(true),
				progressbar.OptionShowBytes(false),
				progressbar.OptionSetWidth(40),
				progressbar.OptionShowCount(),
				progressbar.OptionSetDescription("[cyan]Embedding[reset]"),
				progressbar.OptionSetTheme(progressbar.Theme{
					Saucer:        "[green]=[reset]",
					SaucerHead:    "[green]>[reset]",
					SaucerPadding: " ",
					BarStart:      "[",
					BarEnd:        "]",
				}),
				progressbar.OptionOnCompletion(func() {
					fmt.Println()
				}),
			)
		}
		lastProcessed = processed
		bar.Set(processed)
	}

	if info.IsDir() {
		fmt.Printf("Scanning %s...\n", path)
		result, err := ingestUC.IngestDir(path, progress)
		if err != nil {
			return err
		}

		for _, r := range result.Ingested {
			fmt.Printf("  %s: %d pages, %d chunks\n", r.DocumentID, r.PagesExtracted, r.ChunksIndexed)
		}
		for _, e := range result.Errors {
			fmt.Fprintf(os.Stderr, "  skipped %s\n", e)
		}

		fmt.Printf("\nIndexed %d document(s), %d vectors total (%d failed)\n",
			len(result.Ingested), idx.Size(), len(result.Errors))
		return nil
	}

	fmt.Printf("Ingesting %s...\n", path)
	result, err := ingestUC.Ingest(path, progress)
	if err != nil {
		return err
	}

	fmt.Printf("\nIndexed %s: %d pages, %d chunks, %d vectors total\n",
		result.DocumentID, result.PagesExtracted, result.ChunksIndexed, result.TotalVectors)
	return nil
}
