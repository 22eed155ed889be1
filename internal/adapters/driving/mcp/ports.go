// Package mcp exposes the pipeline to Model Context Protocol clients.
package mcp

import (
	"errors"

	"github.com/custodia-labs/pagerag/internal/core/ports/driving"
)

// Ports holds the driving-port implementations the server exposes.
type Ports struct {
	// Query answers questions from the vector store.
	Query driving.QueryService

	// Ingest refreshes the vector store from the data directory.
	Ingest driving.IngestService
}

// Validate checks that all required ports are present.
func (p *Ports) Validate() error {
	if p == nil {
		return errors.New("ports are required")
	}
	if p.Query == nil {
		return errors.New("query service is required")
	}
	if p.Ingest == nil {
		return errors.New("ingest service is required")
	}
	return nil
}
