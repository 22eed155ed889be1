package driven

import (
	"context"

	"github.com/custodia-labs/pagerag/internal/core/domain"
)

// VectorStore persists chunks with their embeddings and answers
// nearest-neighbour queries. Records are keyed by chunk id and are
// insert-only: adding an id that already exists is a no-op, never an
// update. Re-ingesting unchanged input is therefore idempotent.
type VectorStore interface {
	// IDs returns the set of all stored chunk ids. Only ids are read;
	// no text or embeddings are transferred.
	IDs(ctx context.Context) (map[string]struct{}, error)

	// Add embeds and inserts the given chunks. Chunks whose id is
	// already stored are left untouched.
	Add(ctx context.Context, chunks []domain.Chunk) error

	// Search returns up to k stored chunks ranked by similarity to the
	// query embedding, highest score first.
	Search(ctx context.Context, embedding []float32, k int) ([]domain.SearchHit, error)

	// Persist flushes the store to durable storage.
	Persist(ctx context.Context) error

	// Close releases resources.
	Close() error
}
