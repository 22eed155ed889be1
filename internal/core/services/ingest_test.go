package services

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/pagerag/internal/adapters/driven/vectorstore/memory"
	"github.com/custodia-labs/pagerag/internal/core/domain"
)

// stubLoader returns canned documents.
type stubLoader struct {
	docs []domain.Document
	err  error
}

func (s *stubLoader) Load(_ context.Context, _ string) ([]domain.Document, error) {
	return s.docs, s.err
}

// stubSplitter emits one chunk per document.
type stubSplitter struct{}

func (stubSplitter) Split(_ context.Context, docs []domain.Document) ([]domain.Chunk, error) {
	if len(docs) == 0 {
		return nil, fmt.Errorf("%w: no documents to split", domain.ErrEmptyInput)
	}
	chunks := make([]domain.Chunk, len(docs))
	for i, doc := range docs {
		chunks[i] = domain.Chunk{
			SourcePath: doc.SourcePath,
			PageNumber: doc.PageNumber,
			Text:       doc.Text,
		}
	}
	return chunks, nil
}

// stubEmbedder produces a fixed vector for any text.
type stubEmbedder struct{}

func (stubEmbedder) Embed(_ context.Context, _ string) ([]float32, error) {
	return []float32{1, 0}, nil
}

func (s stubEmbedder) EmbedBatch(_ context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i := range texts {
		out[i] = []float32{1, 0}
	}
	return out, nil
}

func (stubEmbedder) Dimensions() int              { return 2 }
func (stubEmbedder) ModelName() string            { return "stub" }
func (stubEmbedder) Ping(_ context.Context) error { return nil }
func (stubEmbedder) Close() error                 { return nil }

func twoPageLoader() *stubLoader {
	return &stubLoader{docs: []domain.Document{
		{SourcePath: "doc.pdf", PageNumber: 0, Text: "page zero"},
		{SourcePath: "doc.pdf", PageNumber: 1, Text: "page one"},
	}}
}

func TestNewIngestService_RequiresDependencies(t *testing.T) {
	store := memory.NewStore(stubEmbedder{})

	_, err := NewIngestService(nil, stubSplitter{}, store, "books")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = NewIngestService(twoPageLoader(), stubSplitter{}, store, "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestIngest_StoresAllChunksFirstRun(t *testing.T) {
	store := memory.NewStore(stubEmbedder{})
	svc, err := NewIngestService(twoPageLoader(), stubSplitter{}, store, "books")
	require.NoError(t, err)

	stats, err := svc.Ingest(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 0, stats.Existing)
	assert.Equal(t, 2, stats.Added)
	assert.NotEmpty(t, stats.RunID)

	ids, err := store.IDs(context.Background())
	require.NoError(t, err)
	assert.Contains(t, ids, "doc.pdf:0:0")
	assert.Contains(t, ids, "doc.pdf:1:0")
	assert.Equal(t, 1, store.Persists())
}

func TestIngest_SecondRunIsNoOp(t *testing.T) {
	store := memory.NewStore(stubEmbedder{})
	svc, err := NewIngestService(twoPageLoader(), stubSplitter{}, store, "books")
	require.NoError(t, err)

	_, err = svc.Ingest(context.Background())
	require.NoError(t, err)

	stats, err := svc.Ingest(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, stats.Existing)
	assert.Equal(t, 0, stats.Added)

	// The store is only flushed for a non-empty batch.
	assert.Equal(t, 1, store.Persists())
}

func TestIngest_OnlyNewChunksSubmitted(t *testing.T) {
	store := memory.NewStore(stubEmbedder{})
	svc, err := NewIngestService(twoPageLoader(), stubSplitter{}, store, "books")
	require.NoError(t, err)

	_, err = svc.Ingest(context.Background())
	require.NoError(t, err)

	// A third page appears; only its chunk is added.
	loader := twoPageLoader()
	loader.docs = append(loader.docs, domain.Document{
		SourcePath: "doc.pdf", PageNumber: 2, Text: "page two",
	})
	svc, err = NewIngestService(loader, stubSplitter{}, store, "books")
	require.NoError(t, err)

	stats, err := svc.Ingest(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, stats.Existing)
	assert.Equal(t, 1, stats.Added)

	ids, err := store.IDs(context.Background())
	require.NoError(t, err)
	assert.Len(t, ids, 3)
	assert.Contains(t, ids, "doc.pdf:2:0")
}

func TestIngest_LoaderErrorPropagates(t *testing.T) {
	store := memory.NewStore(stubEmbedder{})
	loader := &stubLoader{err: fmt.Errorf("%w: directory books does not exist", domain.ErrNotFound)}
	svc, err := NewIngestService(loader, stubSplitter{}, store, "books")
	require.NoError(t, err)

	_, err = svc.Ingest(context.Background())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestIngest_SplitterErrorPropagates(t *testing.T) {
	store := memory.NewStore(stubEmbedder{})
	loader := &stubLoader{docs: nil}
	svc, err := NewIngestService(loader, stubSplitter{}, store, "books")
	require.NoError(t, err)

	_, err = svc.Ingest(context.Background())
	assert.ErrorIs(t, err, domain.ErrEmptyInput)
}

func TestIngest_StoreErrorPropagates(t *testing.T) {
	svc, err := NewIngestService(twoPageLoader(), stubSplitter{}, failingStore{}, "books")
	require.NoError(t, err)

	_, err = svc.Ingest(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, errStoreDown))
}

var errStoreDown = errors.New("store down")

// failingStore fails every operation.
type failingStore struct{}

func (failingStore) IDs(_ context.Context) (map[string]struct{}, error) { return nil, errStoreDown }
func (failingStore) Add(_ context.Context, _ []domain.Chunk) error      { return errStoreDown }
func (failingStore) Search(_ context.Context, _ []float32, _ int) ([]domain.SearchHit, error) {
	return nil, errStoreDown
}
func (failingStore) Persist(_ context.Context) error { return errStoreDown }
func (failingStore) Close() error                    { return nil }
