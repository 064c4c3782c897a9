package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the voice tutor backend.
type Config struct {
	Data      DataConfig      `yaml:"data"`
	Chunking  ChunkingConfig  `yaml:"chunking"`
	Retrieve  RetrieveConfig  `yaml:"retrieve"`
	Embedding EmbeddingConfig `yaml:"embedding"`
	Generator GeneratorConfig `yaml:"generator"`
	Speech    SpeechConfig    `yaml:"speech"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// DataConfig holds filesystem layout configuration.
type DataConfig struct {
	Dir string `yaml:"dir"` // root for index db, extracted text, audio
}

// ChunkingConfig holds passage splitting configuration.
type ChunkingConfig struct {
	ChunkSize     int  `yaml:"chunk_size"`     // characters per chunk
	ChunkOverlap  int  `yaml:"chunk_overlap"`  // characters carried between chunks
	Semantic      bool `yaml:"semantic"`       // judge-merged chunking instead of the splitter
	SemanticLimit int  `yaml:"semantic_limit"` // merge budget in characters
}

// RetrieveConfig holds retrieval configuration.
type RetrieveConfig struct {
	TopK      int     `yaml:"top_k"`
	Threshold float64 `yaml:"threshold"` // max L2 distance considered relevant
}

// EmbeddingConfig holds embedding configuration.
type EmbeddingConfig struct {
	Provider  string `yaml:"provider"`    // "openai", "ollama", "mock"
	Model     string `yaml:"model"`       // e.g. "text-embedding-3-small"
	APIKeyEnv string `yaml:"api_key_env"` // environment variable for API key
	BaseURL   string `yaml:"base_url"`
	Dimension int    `yaml:"dimension"`
	BatchSize int    `yaml:"batch_size"`
}

// GeneratorConfig holds answer generation configuration.
type GeneratorConfig struct {
	Provider  string `yaml:"provider"` // "openai", "deepseek", "local"
	Model     string `yaml:"model"`
	APIKeyEnv string `yaml:"api_key_env"`
	BaseURL   string `yaml:"base_url"`
}

// SpeechConfig holds text-to-speech configuration.
type SpeechConfig struct {
	Enabled   bool   `yaml:"enabled"`
	Engine    string `yaml:"engine"` // preferred engine, falls back in order
	Voice     string `yaml:"voice"`
	APIKeyEnv string `yaml:"api_key_env"`
	BaseURL   string `yaml:"base_url"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Verbose bool `yaml:"verbose"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Data: DataConfig{
			Dir: ".tutor",
		},
		Chunking: ChunkingConfig{
			ChunkSize:     800,
			ChunkOverlap:  150,
			Semantic:      false,
			SemanticLimit: 1200,
		},
		Retrieve: RetrieveConfig{
			TopK:      5,
			Threshold: 1.2,
		},
		Embedding: EmbeddingConfig{
			Provider:  "openai",
			Model:     "text-embedding-3-small",
			APIKeyEnv: "OPENAI_API_KEY",
			Dimension: 1536,
			BatchSize: 100,
		},
		Generator: GeneratorConfig{
			Provider:  "openai",
			Model:     "gpt-4o-mini",
			APIKeyEnv: "OPENAI_API_KEY",
		},
		Speech: SpeechConfig{
			Enabled:   false,
			Engine:    "openai",
			Voice:     "alloy",
			APIKeyEnv: "OPENAI_API_KEY",
		},
		Logging: LoggingConfig{
			Verbose: false,
		},
	}
}

// Load loads configuration from a YAML file.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil // Return defaults if no config file
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadFromDir loads configuration from a directory (looks for tutor.yaml).
func LoadFromDir(dir string) (*Config, error) {
	path := filepath.Join(dir, "tutor.yaml")
	if _, err := os.Stat(path); err == nil {
		return Load(path)
	}

	path = filepath.Join(dir, ".tutor", "config.yaml")
	if _, err := os.Stat(path); err == nil {
		return Load(path)
	}

	return DefaultConfig(), nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// IndexDBPath returns the path to the vector index database.
func (c *Config) IndexDBPath() string {
	return filepath.Join(c.Data.Dir, "index.db")
}

// TextDir returns the directory for extracted-text audit artifacts.
func (c *Config) TextDir() string {
	return filepath.Join(c.Data.Dir, "extracted_text")
}

// AudioDir returns the directory for synthesized audio.
func (c *Config) AudioDir() string {
	return filepath.Join(c.Data.Dir, "audio")
}

// EnsureDirs creates the data directory tree.
func (c *Config) EnsureDirs() error {
	for _, dir := range []string{c.Data.Dir, c.TextDir(), c.AudioDir()} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	return nil
}
