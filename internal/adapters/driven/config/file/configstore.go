package file

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
)

// configFileName is the config file inside the config directory.
const configFileName = "config.toml"

// Provider names accepted in the embedding and llm blocks.
const (
	ProviderOllama = "ollama"
	ProviderOpenAI = "openai"
)

// Config is the full pagerag configuration. Zero values are filled from
// Default(). Nothing in the pipeline reads configuration globally; the
// loaded struct is passed into each component at construction.
type Config struct {
	// DataDir is the directory of source PDF files.
	DataDir string `toml:"data_dir"`

	// StoreDir is the directory holding the persistent vector store.
	StoreDir string `toml:"store_dir"`

	// ChunkSize is the maximum characters per chunk.
	ChunkSize int `toml:"chunk_size"`

	// ChunkOverlap is the characters shared between consecutive chunks.
	ChunkOverlap int `toml:"chunk_overlap"`

	// TopK is the number of chunks retrieved per query.
	TopK int `toml:"top_k"`

	// Embedding configures the embedding provider.
	Embedding Provider `toml:"embedding"`

	// LLM configures the generation provider.
	LLM Provider `toml:"llm"`
}

// Provider configures one model service.
type Provider struct {
	// Provider is "ollama" or "openai".
	Provider string `toml:"provider"`

	// BaseURL overrides the provider's default endpoint.
	BaseURL string `toml:"base_url"`

	// Model overrides the provider's default model.
	Model string `toml:"model"`

	// APIKey authenticates hosted providers. Falls back to the
	// OPENAI_API_KEY environment variable (a .env file is honoured).
	APIKey string `toml:"api_key"`
}

// Default returns the built-in configuration: local Ollama models over
// a ./books source directory and a ./chroma store directory.
func Default() Config {
	return Config{
		DataDir:      "books",
		StoreDir:     "chroma",
		ChunkSize:    1000,
		ChunkOverlap: 200,
		TopK:         5,
		Embedding: Provider{
			Provider: ProviderOllama,
			Model:    "nomic-embed-text",
		},
		LLM: Provider{
			Provider: ProviderOllama,
			Model:    "mistral",
		},
	}
}

// Load reads the configuration from configDir/config.toml, filling
// unset fields with defaults. A missing file yields pure defaults.
// If configDir is empty, ~/.pagerag is used.
func Load(configDir string) (Config, error) {
	// A .env next to the working directory may carry API keys.
	_ = godotenv.Load()

	cfg := Default()

	if configDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return cfg, fmt.Errorf("get home directory: %w", err)
		}
		configDir = filepath.Join(home, ".pagerag")
	}

	path := filepath.Join(configDir, configFileName)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			cfg.applyEnv()
			return cfg, nil
		}
		return cfg, fmt.Errorf("read %s: %w", path, err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}

	cfg.applyDefaults()
	cfg.applyEnv()
	return cfg, nil
}

// applyDefaults restores built-in values for fields the file left empty.
func (c *Config) applyDefaults() {
	def := Default()
	if c.DataDir == "" {
		c.DataDir = def.DataDir
	}
	if c.StoreDir == "" {
		c.StoreDir = def.StoreDir
	}
	if c.ChunkSize <= 0 {
		c.ChunkSize = def.ChunkSize
	}
	if c.ChunkOverlap < 0 {
		c.ChunkOverlap = def.ChunkOverlap
	}
	if c.TopK <= 0 {
		c.TopK = def.TopK
	}
	if c.Embedding.Provider == "" {
		c.Embedding.Provider = def.Embedding.Provider
	}
	if c.LLM.Provider == "" {
		c.LLM.Provider = def.LLM.Provider
	}
}

// applyEnv fills API keys from the environment when the file has none.
func (c *Config) applyEnv() {
	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		if c.Embedding.Provider == ProviderOpenAI && c.Embedding.APIKey == "" {
			c.Embedding.APIKey = key
		}
		if c.LLM.Provider == ProviderOpenAI && c.LLM.APIKey == "" {
			c.LLM.APIKey = key
		}
	}
}
