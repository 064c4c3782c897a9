package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"voicetutor/internal/adapter/retriever"
)

var (
	querySource string
	queryTopK   int
	queryJSON   bool
)

var queryCmd = &cobra.Command{
	Use:   "query <text>",
	Short: "Retrieve passages without generating an answer",
	Long: `Run the retrieval stage only and show the matching passages with
their distances. Useful for inspecting what the tutor would ground an
answer on.

Examples:
  voicetutor query "cell membrane transport"
  voicetutor query "Newton's second law" --top-k 10 --json`,
	Args: cobra.ExactArgs(1),
	RunE: runQuery,
}

// queryResult is the JSON output shape for one retrieved passage.
type queryResult struct {
	ChunkID    int     `json:"chunk_id"`
	DocumentID string  `json:"document_id"`
	Page       int     `json:"page"`
	Distance   float64 `json:"distance"`
	Text       string  `json:"text"`
}

func init() {
	rootCmd.AddCommand(queryCmd)
	queryCmd.Flags().StringVarP(&querySource, "source", "s", "", "restrict retrieval to one document")
	queryCmd.Flags().IntVarP(&queryTopK, "top-k", "k", 0, "number of results (default from config)")
	queryCmd.Flags().BoolVar(&queryJSON, "json", false, "output as JSON")
}

func runQuery(cmd *cobra.Command, args []string) error {
	cfg := GetConfig()

	if _, err := os.Stat(cfg.IndexDBPath()); os.IsNotExist(err) {
		return fmt.Errorf("no index found. Run 'voicetutor ingest' first")
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

	topK := cfg.Retrieve.TopK
	if queryTopK > 0 {
		topK = queryTopK
	}

	ret := retriever.NewSemanticRetriever(embedder, idx, cfg.Retrieve.Threshold)
	passages, err := ret.Retrieve(args[0], topK, querySource)
	if err != nil {
		return fmt.Errorf("retrieval failed: %w", err)
	}

	if queryJSON {
		results := make([]queryResult, 0, len(passages))
		for _, p := range passages {
			results = append(results, queryResult{
				ChunkID:    p.ID,
				DocumentID: p.DocumentID,
				Page:       p.Page,
				Distance:   p.Score(),
				Text:       p.Text,
			})
		}
		output, _ := json.MarshalIndent(results, "", "  ")
		fmt.Println(string(output))
		return nil
	}

	if len(passages) == 0 {
		fmt.Println("No passages within the relevance threshold.")
		return nil
	}

	fmt.Printf("Found %d passage(s) for: %s\n\n", len(passages), args[0])
	for i, p := range passages {
		fmt.Printf("--- [%d] %s, page %d (distance %.4f) ---\n", i+1, p.DocumentID, p.Page, p.Score())
		text := p.Text
		if len(text) > 500 {
			text = text[:500] + "..."
		}
		fmt.Println(text)
		fmt.Println()
	}

	return nil
}
