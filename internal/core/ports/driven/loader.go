package driven

import (
	"context"

	"github.com/custodia-labs/pagerag/internal/core/domain"
)

// DocumentLoader reads source files from a directory and produces one
// Document per page, in directory enumeration order.
type DocumentLoader interface {
	// Load returns the page documents found under dir.
	// It fails with domain.ErrNotFound if dir does not exist and with
	// domain.ErrEmptyInput if dir contains no ingestible files.
	Load(ctx context.Context, dir string) ([]domain.Document, error)
}

// CommandRunner executes an external command and returns its stdout.
// It exists so adapters that shell out (PDF text extraction) can be
// tested without the underlying binary.
type CommandRunner interface {
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
}
