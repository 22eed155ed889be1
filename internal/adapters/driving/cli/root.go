// Package cli provides the pagerag command-line interface.
package cli

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/pagerag/internal/adapters/driven/config/file"
	ollamaembed "github.com/custodia-labs/pagerag/internal/adapters/driven/embedding/ollama"
	openaiembed "github.com/custodia-labs/pagerag/internal/adapters/driven/embedding/openai"
	ollamallm "github.com/custodia-labs/pagerag/internal/adapters/driven/llm/ollama"
	openaillm "github.com/custodia-labs/pagerag/internal/adapters/driven/llm/openai"
	"github.com/custodia-labs/pagerag/internal/adapters/driven/loader/pdf"
	"github.com/custodia-labs/pagerag/internal/adapters/driven/vectorstore/sqlite"
	"github.com/custodia-labs/pagerag/internal/core/ports/driven"
	"github.com/custodia-labs/pagerag/internal/core/ports/driving"
	"github.com/custodia-labs/pagerag/internal/core/services"
	"github.com/custodia-labs/pagerag/internal/logger"
	"github.com/custodia-labs/pagerag/internal/splitter"
)

var version = "dev"

var (
	verboseFlag   bool
	configDirFlag string
)

// Injected services override the real wiring. Tests set these to stubs;
// when nil, commands build adapters from the loaded configuration.
var (
	ingestService driving.IngestService
	queryService  driving.QueryService
)

var rootCmd = &cobra.Command{
	Use:   "pagerag",
	Short: "Retrieval-augmented question answering over a directory of PDFs",
	Long: `pagerag ingests a directory of PDF files into a persistent vector
store and answers natural-language questions by retrieving the most
similar chunks and prompting a language model with them.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verboseFlag)
	},
}

// Execute runs the root command with the given build version.
func Execute(v string) error {
	version = v
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&configDirFlag, "config-dir", "", "configuration directory (default ~/.pagerag)")
}

// loadConfig loads the configuration honouring the --config-dir flag.
func loadConfig() (file.Config, error) {
	return file.Load(configDirFlag)
}

// buildEmbedding constructs the configured embedding client.
func buildEmbedding(p file.Provider) driven.EmbeddingService {
	if p.Provider == file.ProviderOpenAI {
		return openaiembed.New(openaiembed.Config{
			BaseURL: p.BaseURL,
			APIKey:  p.APIKey,
			Model:   p.Model,
		})
	}
	return ollamaembed.New(ollamaembed.Config{
		BaseURL: p.BaseURL,
		Model:   p.Model,
	})
}

// buildLLM constructs the configured generation client.
func buildLLM(p file.Provider) driven.LLMService {
	if p.Provider == file.ProviderOpenAI {
		return openaillm.New(openaillm.Config{
			BaseURL: p.BaseURL,
			APIKey:  p.APIKey,
			Model:   p.Model,
		})
	}
	return ollamallm.New(ollamallm.Config{
		BaseURL: p.BaseURL,
		Model:   p.Model,
	})
}

// buildIngest returns the ingest service and a cleanup function.
func buildIngest(cfg file.Config) (driving.IngestService, func(), error) {
	if ingestService != nil {
		return ingestService, func() {}, nil
	}

	embedder := buildEmbedding(cfg.Embedding)
	store, err := sqlite.NewStore(cfg.StoreDir, embedder)
	if err != nil {
		return nil, nil, err
	}

	split := splitter.New(
		splitter.WithChunkSize(cfg.ChunkSize),
		splitter.WithOverlap(cfg.ChunkOverlap),
	)

	svc, err := services.NewIngestService(pdf.New(), split, store, cfg.DataDir)
	if err != nil {
		store.Close()
		return nil, nil, err
	}

	cleanup := func() {
		store.Close()
		embedder.Close()
	}
	return svc, cleanup, nil
}

// buildQuery returns the query service and a cleanup function.
func buildQuery(cfg file.Config) (driving.QueryService, func(), error) {
	if queryService != nil {
		return queryService, func() {}, nil
	}

	embedder := buildEmbedding(cfg.Embedding)
	store, err := sqlite.NewStore(cfg.StoreDir, embedder)
	if err != nil {
		return nil, nil, err
	}

	llm := buildLLM(cfg.LLM)

	svc, err := services.NewQueryService(store, embedder, llm)
	if err != nil {
		store.Close()
		return nil, nil, err
	}

	prompts, err := file.NewPromptStore(promptDir())
	if err != nil {
		logger.Warn("Prompt store unavailable, using embedded prompts: %v", err)
	} else {
		svc.SetPromptStore(prompts)
	}

	cleanup := func() {
		store.Close()
		embedder.Close()
		llm.Close()
	}
	return svc, cleanup, nil
}

// promptDir returns the prompt directory under the configured config
// directory, or empty for the default location.
func promptDir() string {
	if configDirFlag == "" {
		return ""
	}
	return filepath.Join(configDirFlag, "prompts")
}
