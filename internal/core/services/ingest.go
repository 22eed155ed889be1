package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/custodia-labs/pagerag/internal/core/domain"
	"github.com/custodia-labs/pagerag/internal/core/ports/driven"
	"github.com/custodia-labs/pagerag/internal/core/ports/driving"
	"github.com/custodia-labs/pagerag/internal/logger"
)

// Ensure IngestService implements the interface.
var _ driving.IngestService = (*IngestService)(nil)

// IngestService runs the ingestion pipeline against one source directory.
type IngestService struct {
	loader   driven.DocumentLoader
	splitter driven.Splitter
	store    driven.VectorStore
	dataDir  string
}

// NewIngestService creates a new ingestion service.
func NewIngestService(
	loader driven.DocumentLoader,
	splitter driven.Splitter,
	store driven.VectorStore,
	dataDir string,
) (*IngestService, error) {
	if loader == nil || splitter == nil || store == nil {
		return nil, fmt.Errorf("%w: loader, splitter and store are required", domain.ErrInvalidInput)
	}
	if dataDir == "" {
		return nil, fmt.Errorf("%w: data directory is required", domain.ErrInvalidInput)
	}

	return &IngestService{
		loader:   loader,
		splitter: splitter,
		store:    store,
		dataDir:  dataDir,
	}, nil
}

// Ingest loads every page document under the data directory, splits them
// into chunks, assigns deterministic ids and inserts only the chunks whose
// id is not yet stored. The store is flushed after a non-empty batch.
// Re-running against unchanged input adds nothing.
func (s *IngestService) Ingest(ctx context.Context) (driving.IngestStats, error) {
	runID := uuid.New().String()
	logger.Section("Ingestion")
	logger.Debug("Run %s: loading documents from %s", runID, s.dataDir)

	stats := driving.IngestStats{RunID: runID}

	docs, err := s.loader.Load(ctx, s.dataDir)
	if err != nil {
		return stats, fmt.Errorf("loading documents: %w", err)
	}
	logger.Debug("Loaded %d page documents", len(docs))

	chunks, err := s.splitter.Split(ctx, docs)
	if err != nil {
		return stats, fmt.Errorf("splitting documents: %w", err)
	}
	chunks = domain.AssignChunkIDs(chunks)
	logger.Debug("Split into %d chunks", len(chunks))

	existing, err := s.store.IDs(ctx)
	if err != nil {
		return stats, fmt.Errorf("reading stored ids: %w", err)
	}
	stats.Existing = len(existing)
	logger.Info("Store holds %d chunks", stats.Existing)

	newChunks := make([]domain.Chunk, 0, len(chunks))
	for _, chunk := range chunks {
		if _, ok := existing[chunk.ID]; !ok {
			newChunks = append(newChunks, chunk)
		}
	}
	stats.Added = len(newChunks)

	if len(newChunks) == 0 {
		logger.Info("No new chunks to add")
		return stats, nil
	}

	logger.Info("Adding %d new chunks", len(newChunks))
	if err := s.store.Add(ctx, newChunks); err != nil {
		return stats, fmt.Errorf("adding chunks: %w", err)
	}
	if err := s.store.Persist(ctx); err != nil {
		return stats, fmt.Errorf("persisting store: %w", err)
	}

	return stats, nil
}
