package driven

import (
	"context"

	"github.com/custodia-labs/pagerag/internal/core/domain"
)

// Splitter cuts page documents into chunks suitable for embedding.
// Output preserves document order and within-document left-to-right
// order; the id-assignment pass depends on that ordering.
type Splitter interface {
	// Split chunks the given documents. It fails with
	// domain.ErrEmptyInput when docs is empty.
	Split(ctx context.Context, docs []domain.Document) ([]domain.Chunk, error)
}
