package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"voicetutor/internal/adapter/generator"
	"voicetutor/internal/adapter/retriever"
	"voicetutor/internal/usecase"
)

var (
	askSource string
	askTopK   int
	askSpeak  bool
)

var askCmd = &cobra.Command{
	Use:   "ask <question>",
	Short: "Ask a question grounded in the indexed textbooks",
	Long: `Retrieve the most relevant passages and generate an answer from them.
The answer cites sources and never draws on anything outside the corpus.

Examples:
  voicetutor ask "What is photosynthesis?"
  voicetutor ask "Define entropy" --source thermo.pdf
  voicetutor ask "What is osmosis?" --speak`,
	Args: cobra.ExactArgs(1),
	RunE: runAsk,
}

func init() {
	rootCmd.AddCommand(askCmd)
	askCmd.Flags().StringVarP(&askSource, "source", "s", "", "restrict retrieval to one document")
	askCmd.Flags().IntVarP(&askTopK, "top-k", "k", 0, "passages to retrieve (default from config)")
	askCmd.Flags().BoolVar(&askSpeak, "speak", false, "synthesize the answer to audio")
}

func runAsk(cmd *cobra.Command, args []string) error {
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

	client, err := newLLM(cfg)
	if err != nil {
		return fmt.Errorf("failed to create language model client: %w", err)
	}

	var speaker usecase.Speaker
	if askSpeak || cfg.Speech.Enabled {
		mgr, err := newSpeaker(cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "speech disabled: %v\n", err)
		} else {
			speaker = mgr
		}
	}

	topK := cfg.Retrieve.TopK
	if askTopK > 0 {
		topK = askTopK
	}

	ret := retriever.NewSemanticRetriever(embedder, idx, cfg.Retrieve.Threshold)
	gen := generator.NewContextAnswerer(client)
	askUC := usecase.NewAskUseCase(ret, gen, speaker, topK)

	answer, err := askUC.Ask(args[0], askSource)
	if err != nil {
		return err
	}

	fmt.Println(answer.Text)

	if len(answer.Passages) > 0 {
		fmt.Println("\nSources:")
		for _, p := range answer.Passages {
			fmt.Printf("  %s, page %d (distance %.4f)\n", p.DocumentID, p.Page, p.Score())
		}
	}

	if answer.AudioPath != "" {
		if answer.Cached {
			fmt.Printf("\nAudio (cached): %s\n", answer.AudioPath)
		} else {
			fmt.Printf("\nAudio (%s): %s\n", answer.Engine, answer.AudioPath)
		}
	}

	return nil
}
