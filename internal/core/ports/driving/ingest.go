package driving

import "context"

// IngestStats summarises one ingestion run.
type IngestStats struct {
	// RunID identifies the run in logs.
	RunID string

	// Existing is the number of chunk ids already present in the store
	// before the run.
	Existing int

	// Added is the number of new chunks inserted by the run.
	Added int
}

// IngestService loads, splits, dedups and stores source documents.
type IngestService interface {
	// Ingest runs the full ingestion pipeline once.
	Ingest(ctx context.Context) (IngestStats, error)
}
