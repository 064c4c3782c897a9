package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var speakCmd = &cobra.Command{
	Use:   "speak <text>",
	Short: "Synthesize text to audio",
	Long: `Normalize the given text for listening and synthesize it with the
configured speech engine. Repeated text is served from the audio cache.

Example:
  voicetutor speak "The mitochondrion is the powerhouse of the cell."`,
	Args: cobra.ExactArgs(1),
	RunE: runSpeak,
}

func init() {
	rootCmd.AddCommand(speakCmd)
}

func runSpeak(cmd *cobra.Command, args []string) error {
	cfg := GetConfig()

	if err := cfg.EnsureDirs(); err != nil {
		return fmt.Errorf("failed to create data directories: %w", err)
	}

	mgr, err := newSpeaker(cfg)
	if err != nil {
		return fmt.Errorf("failed to create speech engine: %w", err)
	}

	result, err := mgr.Speak(args[0])
	if err != nil {
		return err
	}

	if result.Cached {
		fmt.Printf("Audio (cached): %s\n", result.AudioPath)
	} else {
		fmt.Printf("Audio (%s): %s\n", result.Engine, result.AudioPath)
	}
	return nil
}
