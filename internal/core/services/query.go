package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/custodia-labs/pagerag/internal/core/domain"
	"github.com/custodia-labs/pagerag/internal/core/ports/driven"
	"github.com/custodia-labs/pagerag/internal/core/ports/driving"
	"github.com/custodia-labs/pagerag/internal/logger"
)

// Ensure QueryService implements the interface.
var _ driving.QueryService = (*QueryService)(nil)

// DefaultTopK is the number of chunks retrieved when none is requested.
const DefaultTopK = 5

// contextSeparator joins retrieved chunk texts inside the prompt.
const contextSeparator = "\n\n---\n\n"

// defaultAnswerPrompt is used when no prompt store is configured or the
// store cannot provide the answer template.
const defaultAnswerPrompt = `Answer the question based only on the following context:

%s

---

Answer the question based on the above context: %s`

// QueryService answers questions from stored chunks.
type QueryService struct {
	store    driven.VectorStore
	embedder driven.EmbeddingService
	llm      driven.LLMService
	prompts  driven.PromptStore
}

// NewQueryService creates a new query service.
func NewQueryService(
	store driven.VectorStore,
	embedder driven.EmbeddingService,
	llm driven.LLMService,
) (*QueryService, error) {
	if store == nil || embedder == nil || llm == nil {
		return nil, fmt.Errorf("%w: store, embedder and llm are required", domain.ErrInvalidInput)
	}

	return &QueryService{
		store:    store,
		embedder: embedder,
		llm:      llm,
	}, nil
}

// SetPromptStore sets the prompt store for loading a customised answer
// template. If not set, the embedded default template is used.
func (s *QueryService) SetPromptStore(store driven.PromptStore) {
	s.prompts = store
}

// Query embeds the query text, retrieves the top-k most similar chunks,
// fills the answer template with their concatenated text and the query,
// and returns the generated response with the source chunk ids in ranked
// order. Collaborator failures propagate; there is no retry or fallback.
func (s *QueryService) Query(
	ctx context.Context, query string, opts driving.QueryOptions,
) (*domain.Answer, error) {
	logger.Section("Query Execution")
	logger.Debug("Query: %q", query)

	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("%w: empty query", domain.ErrInvalidInput)
	}

	k := opts.TopK
	if k <= 0 {
		k = DefaultTopK
	}
	logger.Debug("Top-k: %d", k)

	embedding, err := s.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embedding query: %w", err)
	}

	hits, err := s.store.Search(ctx, embedding, k)
	if err != nil {
		return nil, fmt.Errorf("searching store: %w", err)
	}
	logger.Info("Retrieved %d chunks", len(hits))

	texts := make([]string, len(hits))
	sources := make([]string, len(hits))
	for i, hit := range hits {
		texts[i] = hit.Chunk.Text
		sources[i] = hit.Chunk.ID
		logger.Debug("  [%d] %s (%.4f)", i, hit.Chunk.ID, hit.Score)
	}

	prompt := fmt.Sprintf(s.answerTemplate(), strings.Join(texts, contextSeparator), query)

	response, err := s.llm.Generate(ctx, prompt, driven.GenerateOptions{})
	if err != nil {
		return nil, fmt.Errorf("generating response: %w", err)
	}

	return &domain.Answer{
		Response: response,
		Sources:  sources,
	}, nil
}

// answerTemplate returns the answer prompt template, preferring the
// prompt store over the embedded default.
func (s *QueryService) answerTemplate() string {
	if s.prompts == nil {
		return defaultAnswerPrompt
	}
	tpl, err := s.prompts.Load(driven.PromptAnswer)
	if err != nil {
		logger.Warn("Falling back to embedded answer prompt: %v", err)
		return defaultAnswerPrompt
	}
	if tpl == "" {
		logger.Warn("Answer prompt template is empty, falling back to embedded default")
		return defaultAnswerPrompt
	}
	return tpl
}
