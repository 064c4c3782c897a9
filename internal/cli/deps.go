package cli

import (
	"fmt"

	"voicetutor/config"
	"voicetutor/internal/adapter/chunker"
	"voicetutor/internal/adapter/embedding"
	"voicetutor/internal/adapter/llm"
	"voicetutor/internal/adapter/speech"
	"voicetutor/internal/adapter/store"
	"voicetutor/internal/port"
)

// Adapters are constructed once per command and injected; nothing in the
// pipeline reaches for global state.

func openIndex(cfg *config.Config) (*store.BoltIndex, error) {
	if err := cfg.EnsureDirs(); err != nil {
		return nil, fmt.Errorf("failed to create data directories: %w", err)
	}

	idx, err := store.OpenBoltIndex(cfg.IndexDBPath())
	if err != nil {
		return nil, fmt.Errorf("failed to open vector index: %w", err)
	}
	return idx, nil
}

func newEmbedder(cfg *config.Config) (port.Embedder, error) {
	e := cfg.Embedding
	switch e.Provider {
	case "openai":
		if e.BaseURL != "" {
			return embedding.NewOpenAICompatibleEmbedder(e.APIKeyEnv, e.Model, e.BaseURL, e.BatchSize)
		}
		return embedding.NewOpenAIEmbedder(e.APIKeyEnv, e.Model, e.BatchSize)
	case "ollama":
		return embedding.NewOllamaEmbedder(e.Model, e.BaseURL, e.BatchSize)
	case "mock":
		return embedding.NewMockEmbedder(e.Dimension), nil
	default:
		return nil, fmt.Errorf("unsupported embedding provider: %s", e.Provider)
	}
}

func newLLM(cfg *config.Config) (*llm.Client, error) {
	g := cfg.Generator
	return llm.NewClient(g.Provider, g.Model, g.BaseURL, g.APIKeyEnv)
}

func newChunker(cfg *config.Config) (port.Chunker, error) {
	c := cfg.Chunking
	if !c.Semantic {
		return chunker.NewPageChunker(c.ChunkSize, c.ChunkOverlap), nil
	}

	client, err := newLLM(cfg)
	if err != nil {
		return nil, fmt.Errorf("semantic chunking needs a language model: %w", err)
	}
	// Low temperature keeps merge decisions consistent.
	judge := chunker.NewLLMJudge(client.WithTemperature(0.1))
	return chunker.NewSemanticChunker(judge, c.SemanticLimit), nil
}

func newSpeaker(cfg *config.Config) (*speech.Manager, error) {
	s := cfg.Speech
	cache := speech.NewAudioCache(cfg.AudioDir())

	engine, err := speech.NewHTTPEngine(s.Engine, s.BaseURL, s.APIKeyEnv, s.Voice, cache)
	if err != nil {
		return nil, err
	}
	return speech.NewManager(cache, engine), nil
}
