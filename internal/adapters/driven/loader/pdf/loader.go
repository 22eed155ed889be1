// Package pdf provides a document loader that extracts per-page text
// from a directory of PDF files using the pdftotext binary.
package pdf

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/custodia-labs/pagerag/internal/core/domain"
	"github.com/custodia-labs/pagerag/internal/core/ports/driven"
	"github.com/custodia-labs/pagerag/internal/logger"
)

// Ensure Loader implements the interface.
var _ driven.DocumentLoader = (*Loader)(nil)

// Extension is the file extension of ingestible files.
const Extension = ".pdf"

// pageSeparator is the form feed pdftotext emits after every page.
const pageSeparator = "\f"

// Loader walks a directory and produces one Document per PDF page.
type Loader struct {
	runner driven.CommandRunner
}

// Option configures the loader.
type Option func(*Loader)

// WithRunner overrides the command runner. Used in tests to avoid
// requiring the pdftotext binary.
func WithRunner(runner driven.CommandRunner) Option {
	return func(l *Loader) {
		if runner != nil {
			l.runner = runner
		}
	}
}

// New creates a new PDF directory loader.
func New(opts ...Option) *Loader {
	l := &Loader{
		runner: ExecRunner{},
	}

	for _, opt := range opts {
		opt(l)
	}

	return l
}

// Load returns one Document per page of every PDF found directly under
// dir, in directory enumeration order, pages in ascending order within
// a file. It fails with domain.ErrNotFound when dir does not exist and
// with domain.ErrEmptyInput when dir holds no PDF files.
func (l *Loader) Load(ctx context.Context, dir string) ([]domain.Document, error) {
	info, err := os.Stat(dir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: directory %s does not exist", domain.ErrNotFound, dir)
	}
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", dir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", domain.ErrInvalidInput, dir)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading directory %s: %w", dir, err)
	}

	var docs []domain.Document
	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), Extension) {
			continue
		}

		path := filepath.Join(dir, entry.Name())
		pages, err := l.extractPages(ctx, path)
		if err != nil {
			return nil, fmt.Errorf("extracting %s: %w", path, err)
		}
		logger.Debug("Extracted %d pages from %s", len(pages), path)

		for i, text := range pages {
			docs = append(docs, domain.Document{
				SourcePath: path,
				PageNumber: i,
				Text:       text,
			})
		}
	}

	if len(docs) == 0 {
		return nil, fmt.Errorf("%w: directory %s contains no PDF files", domain.ErrEmptyInput, dir)
	}

	return docs, nil
}

// extractPages runs pdftotext and splits its output on the form feeds
// that terminate each page. The empty element after the final form feed
// is dropped; interior blank pages are kept so page numbers stay aligned.
func (l *Loader) extractPages(ctx context.Context, path string) ([]string, error) {
	out, err := l.runner.Run(ctx, "pdftotext", path, "-")
	if err != nil {
		return nil, fmt.Errorf("pdftotext: %w", err)
	}

	pages := strings.Split(string(out), pageSeparator)
	if len(pages) > 1 && strings.TrimSpace(pages[len(pages)-1]) == "" {
		pages = pages[:len(pages)-1]
	}

	return pages, nil
}
