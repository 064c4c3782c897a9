package port

// Synthesizer converts plain answer text to an audio artifact and returns
// its path. Input is expected to already be stripped of markup.
type Synthesizer interface {
	Synthesize(text string) (string, error)

	// Name identifies the engine for status reporting.
	Name() string
}
