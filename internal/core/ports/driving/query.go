package driving

import (
	"context"

	"github.com/custodia-labs/pagerag/internal/core/domain"
)

// QueryOptions configures a query.
type QueryOptions struct {
	// TopK is the number of chunks to retrieve as context (default 5).
	TopK int
}

// QueryService answers natural-language questions from stored chunks.
type QueryService interface {
	// Query retrieves the most similar chunks, prompts the language
	// model with them and returns the generated answer together with
	// the ids of the chunks used.
	Query(ctx context.Context, query string, opts QueryOptions) (*domain.Answer, error)
}
