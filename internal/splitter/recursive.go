// Package splitter provides recursive character text splitting with
// overlap between consecutive chunks.
package splitter

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/custodia-labs/pagerag/internal/core/domain"
	"github.com/custodia-labs/pagerag/internal/core/ports/driven"
)

// Ensure Recursive implements the interface.
var _ driven.Splitter = (*Recursive)(nil)

// DefaultChunkSize is the default maximum number of characters per chunk.
const DefaultChunkSize = 1000

// DefaultChunkOverlap is the default number of characters shared between
// consecutive chunks of the same page.
const DefaultChunkOverlap = 200

// separators are tried in order when looking for a break point within
// the chunk-size window: paragraph, line, sentence, word, character.
var separators = []string{"\n\n", "\n", ". ", " ", ""}

// Recursive splits page text into chunks of at most chunkSize characters,
// preferring to break at the coarsest separator that fits. The last
// overlap characters of a chunk are re-included at the start of the next.
type Recursive struct {
	chunkSize int
	overlap   int
}

// Option configures the splitter.
type Option func(*Recursive)

// WithChunkSize sets the maximum chunk size in characters.
func WithChunkSize(size int) Option {
	return func(r *Recursive) {
		if size > 0 {
			r.chunkSize = size
		}
	}
}

// WithOverlap sets the overlap between consecutive chunks in characters.
func WithOverlap(overlap int) Option {
	return func(r *Recursive) {
		if overlap >= 0 {
			r.overlap = overlap
		}
	}
}

// New creates a new recursive splitter with the given options.
func New(opts ...Option) *Recursive {
	r := &Recursive{
		chunkSize: DefaultChunkSize,
		overlap:   DefaultChunkOverlap,
	}

	for _, opt := range opts {
		opt(r)
	}

	// Overlap must stay below chunk size or splitting cannot advance.
	if r.overlap >= r.chunkSize {
		r.overlap = r.chunkSize / 4
	}

	return r
}

// Split chunks the given documents, preserving document order and
// within-document left-to-right order. A page whose text is only
// whitespace yields no chunks.
func (r *Recursive) Split(_ context.Context, docs []domain.Document) ([]domain.Chunk, error) {
	if len(docs) == 0 {
		return nil, fmt.Errorf("%w: no documents to split", domain.ErrEmptyInput)
	}

	var chunks []domain.Chunk
	for _, doc := range docs {
		for _, text := range r.splitText(doc.Text) {
			chunks = append(chunks, domain.Chunk{
				SourcePath: doc.SourcePath,
				PageNumber: doc.PageNumber,
				Text:       text,
			})
		}
	}

	return chunks, nil
}

// splitText cuts text into pieces of at most chunkSize characters.
// Sizes and offsets are counted in runes, so multibyte text is never
// cut mid-character.
func (r *Recursive) splitText(text string) []string {
	var pieces []string

	rest := []rune(text)
	for len(rest) > 0 {
		end := r.breakPoint(rest)

		if piece := string(rest[:end]); strings.TrimSpace(piece) != "" {
			pieces = append(pieces, piece)
		}

		if end >= len(rest) {
			break
		}

		// Re-include the tail of this chunk at the start of the next.
		start := end - r.overlap
		if start < 1 {
			start = end
		}
		rest = rest[start:]
	}

	return pieces
}

// breakPoint returns the end offset of the next chunk of s, in runes.
// When s exceeds the chunk size, the latest occurrence of the coarsest
// fitting separator inside the window wins; with no separator at all
// the chunk is cut at exactly chunkSize characters.
func (r *Recursive) breakPoint(s []rune) int {
	if len(s) <= r.chunkSize {
		return len(s)
	}

	window := string(s[:r.chunkSize])
	for _, sep := range separators {
		if sep == "" {
			break
		}
		if i := strings.LastIndex(window, sep); i > 0 {
			return utf8.RuneCountInString(window[:i]) + utf8.RuneCountInString(sep)
		}
	}

	return r.chunkSize
}
