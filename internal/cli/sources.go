package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"voicetutor/internal/domain"
)

var sourcesCmd = &cobra.Command{
	Use:   "sources",
	Short: "Show what is indexed",
	Long:  `List the indexed documents along with corpus statistics.`,
	RunE:  runSources,
}

func init() {
	rootCmd.AddCommand(sourcesCmd)
}

func runSources(cmd *cobra.Command, args []string) error {
	cfg := GetConfig()

	if _, err := os.Stat(cfg.IndexDBPath()); os.IsNotExist(err) {
		fmt.Println("No index found. Run 'voicetutor ingest' first.")
		return nil
	}

	idx, err := openIndex(cfg)
	if err != nil {
		return err
	}
	defer idx.Close()

	stats := domain.CorpusStats{
		TotalVectors: idx.Size(),
		Dimension:    idx.Dimension(),
		Sources:      idx.Sources(),
	}

	if len(stats.Sources) == 0 {
		fmt.Println("The index is empty.")
		return nil
	}

	fmt.Printf("Indexed documents (%d):\n", len(stats.Sources))
	for _, s := range stats.Sources {
		fmt.Printf("  %s\n", s)
	}
	fmt.Printf("\nVectors: %d\n", stats.TotalVectors)
	fmt.Printf("Dimension: %d\n", stats.Dimension)
	return nil
}
