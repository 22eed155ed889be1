package domain

import "fmt"

// Document is the extracted text of a single page of a source file.
// It is produced by the loader and discarded after splitting.
type Document struct {
	// SourcePath is the path of the file the page came from.
	SourcePath string

	// PageNumber is the zero-based page index within the source file.
	PageNumber int

	// Text is the raw extracted page text.
	Text string
}

// PageKey returns the "source:page" key that groups chunks of one page.
func (d Document) PageKey() string {
	return fmt.Sprintf("%s:%d", d.SourcePath, d.PageNumber)
}

// Chunk is a bounded, possibly overlapping substring of a page.
// It is the unit of embedding, storage and retrieval.
type Chunk struct {
	// ID is the deterministic chunk identifier,
	// formatted as "source:page:sequence". Assigned by AssignChunkIDs.
	ID string

	// SourcePath is inherited from the parent Document.
	SourcePath string

	// PageNumber is inherited from the parent Document.
	PageNumber int

	// SequenceIndex is the zero-based position among chunks that share
	// the same page key. Assigned by AssignChunkIDs.
	SequenceIndex int

	// Text is the chunk content.
	Text string

	// Embedding is the vector representation, populated by the store.
	Embedding []float32
}

// PageKey returns the "source:page" key that groups chunks of one page.
func (c Chunk) PageKey() string {
	return fmt.Sprintf("%s:%d", c.SourcePath, c.PageNumber)
}

// SearchHit is a retrieved chunk with its similarity score.
type SearchHit struct {
	Chunk Chunk
	Score float64
}

// Answer is the result of a query: the generated response and the ids
// of the chunks that provided its context, in ranked order.
type Answer struct {
	Response string
	Sources  []string
}
