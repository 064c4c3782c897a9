package cli

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"voicetutor/config"
	"voicetutor/internal/logger"
)

var (
	cfgFile string
	verbose bool
	cfg     *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "voicetutor",
	Short: "Voice Tutor - Ask questions against your textbook PDFs",
	Long: `Voice Tutor indexes textbook PDFs into a local vector index and
answers natural-language questions grounded in them, with optional
spoken answers.

Example usage:
  voicetutor ingest book.pdf          # Index one textbook
  voicetutor ingest ./pdfs            # Index a directory of textbooks
  voicetutor ask "What is osmosis?"   # Ask a question
  voicetutor sources                  # Show what is indexed`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// API keys commonly live in a .env next to the corpus.
		_ = godotenv.Load()

		var err error
		if cfgFile != "" {
			cfg, err = config.Load(cfgFile)
		} else {
			cwd, werr := os.Getwd()
			if werr != nil {
				return fmt.Errorf("failed to get working directory: %w", werr)
			}
			cfg, err = config.LoadFromDir(cwd)
		}
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		logger.SetVerbose(verbose || cfg.Logging.Verbose)
		return nil
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./tutor.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose pipeline logging")
}

func GetConfig() *config.Config {
	return cfg
}
