// Package memory provides an in-memory vector store. It backs service
// tests and throwaway runs where nothing should touch disk.
package memory

import (
	"context"
	"fmt"
	"math"
	"sort"
	"sync"

	"github.com/custodia-labs/pagerag/internal/core/domain"
	"github.com/custodia-labs/pagerag/internal/core/ports/driven"
)

// Ensure Store implements the interface.
var _ driven.VectorStore = (*Store)(nil)

// Store holds chunks and embeddings in process memory.
type Store struct {
	mu       sync.RWMutex
	embedder driven.EmbeddingService
	records  map[string]domain.Chunk
	order    []string // insertion order, for stable tie-breaking
	persists int
}

// NewStore creates a new in-memory vector store.
func NewStore(embedder driven.EmbeddingService) *Store {
	return &Store{
		embedder: embedder,
		records:  make(map[string]domain.Chunk),
	}
}

// IDs returns the set of all stored chunk ids.
func (s *Store) IDs(_ context.Context) (map[string]struct{}, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make(map[string]struct{}, len(s.records))
	for id := range s.records {
		ids[id] = struct{}{}
	}
	return ids, nil
}

// Add embeds and stores the chunks. Existing ids are left untouched.
func (s *Store) Add(ctx context.Context, chunks []domain.Chunk) error {
	if len(chunks) == 0 {
		return nil
	}

	texts := make([]string, len(chunks))
	for i, chunk := range chunks {
		texts[i] = chunk.Text
	}

	embeddings, err := s.embedder.EmbedBatch(ctx, texts)
	if err != nil {
		return fmt.Errorf("embedding chunks: %w", err)
	}
	if len(embeddings) != len(chunks) {
		return fmt.Errorf("embedding service returned %d vectors for %d chunks", len(embeddings), len(chunks))
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i, chunk := range chunks {
		if _, ok := s.records[chunk.ID]; ok {
			continue
		}
		chunk.Embedding = embeddings[i]
		s.records[chunk.ID] = chunk
		s.order = append(s.order, chunk.ID)
	}
	return nil
}

// Search returns up to k chunks ranked by cosine similarity, highest
// first; equal scores keep insertion order.
func (s *Store) Search(_ context.Context, embedding []float32, k int) ([]domain.SearchHit, error) {
	if k <= 0 {
		return nil, fmt.Errorf("%w: k must be positive", domain.ErrInvalidInput)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	hits := make([]domain.SearchHit, 0, len(s.order))
	for _, id := range s.order {
		chunk := s.records[id]
		hits = append(hits, domain.SearchHit{
			Chunk: chunk,
			Score: cosineSimilarity(embedding, chunk.Embedding),
		})
	}

	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].Score > hits[j].Score
	})

	if len(hits) > k {
		hits = hits[:k]
	}
	return hits, nil
}

// Persist is a no-op; it only counts calls so tests can assert on it.
func (s *Store) Persist(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.persists++
	return nil
}

// Persists reports how many times Persist has been called.
func (s *Store) Persists() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.persists
}

// Close releases nothing; the store lives and dies with the process.
func (s *Store) Close() error {
	return nil
}

func cosineSimilarity(a, b []float32) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
