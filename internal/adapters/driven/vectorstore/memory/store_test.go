package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/pagerag/internal/core/domain"
)

// stubEmbedder returns canned vectors per text.
type stubEmbedder struct {
	vectors map[string][]float32
}

func (s *stubEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	if v, ok := s.vectors[text]; ok {
		return v, nil
	}
	return []float32{1, 0}, nil
}

func (s *stubEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i, text := range texts {
		v, err := s.Embed(ctx, text)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func (s *stubEmbedder) Dimensions() int              { return 2 }
func (s *stubEmbedder) ModelName() string            { return "stub" }
func (s *stubEmbedder) Ping(_ context.Context) error { return nil }
func (s *stubEmbedder) Close() error                 { return nil }

func TestStore_AddIDsSearch(t *testing.T) {
	embedder := &stubEmbedder{vectors: map[string][]float32{
		"near": {1, 0},
		"far":  {0, 1},
	}}
	store := NewStore(embedder)
	ctx := context.Background()

	require.NoError(t, store.Add(ctx, []domain.Chunk{
		{ID: "doc.pdf:0:0", Text: "far"},
		{ID: "doc.pdf:0:1", Text: "near"},
	}))

	ids, err := store.IDs(ctx)
	require.NoError(t, err)
	assert.Len(t, ids, 2)

	hits, err := store.Search(ctx, []float32{1, 0}, 1)
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, "doc.pdf:0:1", hits[0].Chunk.ID)
}

func TestStore_AddSkipsExisting(t *testing.T) {
	store := NewStore(&stubEmbedder{})
	ctx := context.Background()

	require.NoError(t, store.Add(ctx, []domain.Chunk{{ID: "doc.pdf:0:0", Text: "first"}}))
	require.NoError(t, store.Add(ctx, []domain.Chunk{{ID: "doc.pdf:0:0", Text: "second"}}))

	hits, err := store.Search(ctx, []float32{1, 0}, 5)
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, "first", hits[0].Chunk.Text)
}

func TestStore_PersistCounted(t *testing.T) {
	store := NewStore(&stubEmbedder{})
	ctx := context.Background()

	assert.Zero(t, store.Persists())
	require.NoError(t, store.Persist(ctx))
	assert.Equal(t, 1, store.Persists())
}
