package splitter

import (
	"context"
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/custodia-labs/pagerag/internal/core/domain"
)

func TestNew(t *testing.T) {
	t.Run("default values", func(t *testing.T) {
		r := New()
		if r.chunkSize != DefaultChunkSize {
			t.Errorf("expected chunkSize %d, got %d", DefaultChunkSize, r.chunkSize)
		}
		if r.overlap != DefaultChunkOverlap {
			t.Errorf("expected overlap %d, got %d", DefaultChunkOverlap, r.overlap)
		}
	})

	t.Run("custom values", func(t *testing.T) {
		r := New(WithChunkSize(500), WithOverlap(100))
		if r.chunkSize != 500 {
			t.Errorf("expected chunkSize 500, got %d", r.chunkSize)
		}
		if r.overlap != 100 {
			t.Errorf("expected overlap 100, got %d", r.overlap)
		}
	})

	t.Run("overlap exceeds chunk size", func(t *testing.T) {
		r := New(WithChunkSize(100), WithOverlap(150))
		if r.overlap >= r.chunkSize {
			t.Error("overlap should be reduced when it exceeds chunk size")
		}
	})

	t.Run("zero values ignored", func(t *testing.T) {
		r := New(WithChunkSize(0), WithOverlap(-1))
		if r.chunkSize != DefaultChunkSize {
			t.Errorf("expected default chunkSize, got %d", r.chunkSize)
		}
		if r.overlap != DefaultChunkOverlap {
			t.Errorf("expected default overlap, got %d", r.overlap)
		}
	})
}

func TestSplit_EmptyDocuments(t *testing.T) {
	r := New()
	_, err := r.Split(context.Background(), nil)
	if !errors.Is(err, domain.ErrEmptyInput) {
		t.Errorf("expected ErrEmptyInput, got %v", err)
	}
}

func TestSplit_ShortTextSingleChunk(t *testing.T) {
	r := New()
	docs := []domain.Document{{SourcePath: "doc.pdf", PageNumber: 0, Text: "short page"}}

	chunks, err := r.Split(context.Background(), docs)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(chunks) != 1 {
		t.Fatalf("expected 1 chunk, got %d", len(chunks))
	}
	if chunks[0].Text != "short page" {
		t.Errorf("expected text preserved, got %q", chunks[0].Text)
	}
	if chunks[0].SourcePath != "doc.pdf" || chunks[0].PageNumber != 0 {
		t.Errorf("expected source metadata inherited, got %+v", chunks[0])
	}
}

func TestSplit_WhitespacePageYieldsNothing(t *testing.T) {
	r := New()
	docs := []domain.Document{
		{SourcePath: "doc.pdf", PageNumber: 0, Text: "  \n\n  "},
		{SourcePath: "doc.pdf", PageNumber: 1, Text: "real content"},
	}

	chunks, err := r.Split(context.Background(), docs)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(chunks) != 1 {
		t.Fatalf("expected 1 chunk, got %d", len(chunks))
	}
	if chunks[0].PageNumber != 1 {
		t.Errorf("expected chunk from page 1, got page %d", chunks[0].PageNumber)
	}
}

func TestSplit_ChunkSizeRespected(t *testing.T) {
	r := New(WithChunkSize(50), WithOverlap(10))
	text := strings.Repeat("word ", 40) // 200 chars
	docs := []domain.Document{{SourcePath: "doc.pdf", PageNumber: 0, Text: text}}

	chunks, err := r.Split(context.Background(), docs)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(chunks) < 2 {
		t.Fatalf("expected multiple chunks, got %d", len(chunks))
	}
	for i, chunk := range chunks {
		if len(chunk.Text) > 50 {
			t.Errorf("chunk %d exceeds size limit: %d chars", i, len(chunk.Text))
		}
	}
}

func TestSplit_PrefersParagraphBreak(t *testing.T) {
	r := New(WithChunkSize(30), WithOverlap(0))
	text := "first paragraph here.\n\nsecond one."
	docs := []domain.Document{{SourcePath: "doc.pdf", PageNumber: 0, Text: text}}

	chunks, err := r.Split(context.Background(), docs)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(chunks) != 2 {
		t.Fatalf("expected 2 chunks, got %d: %v", len(chunks), chunks)
	}
	if !strings.HasPrefix(chunks[1].Text, "second") {
		t.Errorf("expected break at paragraph boundary, second chunk is %q", chunks[1].Text)
	}
}

func TestSplit_OverlapCarriedForward(t *testing.T) {
	r := New(WithChunkSize(20), WithOverlap(5))
	text := strings.Repeat("a", 15) + " " + strings.Repeat("b", 15)
	docs := []domain.Document{{SourcePath: "doc.pdf", PageNumber: 0, Text: text}}

	chunks, err := r.Split(context.Background(), docs)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(chunks) != 2 {
		t.Fatalf("expected 2 chunks, got %d", len(chunks))
	}

	// The tail of the first chunk reappears at the head of the second.
	tail := chunks[0].Text[len(chunks[0].Text)-5:]
	if !strings.HasPrefix(chunks[1].Text, tail) {
		t.Errorf("expected second chunk to start with %q, got %q", tail, chunks[1].Text)
	}
}

func TestSplit_UnbreakableTextHardCut(t *testing.T) {
	r := New(WithChunkSize(10), WithOverlap(0))
	text := strings.Repeat("x", 25)
	docs := []domain.Document{{SourcePath: "doc.pdf", PageNumber: 0, Text: text}}

	chunks, err := r.Split(context.Background(), docs)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(chunks) != 3 {
		t.Fatalf("expected 3 chunks, got %d", len(chunks))
	}
	for i, chunk := range chunks {
		if len(chunk.Text) > 10 {
			t.Errorf("chunk %d exceeds size limit: %d chars", i, len(chunk.Text))
		}
	}
}

func TestSplit_CountsRunesNotBytes(t *testing.T) {
	r := New()
	// 600 characters but 1200 bytes; fits in one default-sized chunk.
	text := strings.Repeat("é", 600)
	docs := []domain.Document{{SourcePath: "doc.pdf", PageNumber: 0, Text: text}}

	chunks, err := r.Split(context.Background(), docs)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(chunks) != 1 {
		t.Fatalf("expected 1 chunk for a 600-character page, got %d", len(chunks))
	}
	if chunks[0].Text != text {
		t.Errorf("expected text preserved, got %d runes", utf8.RuneCountInString(chunks[0].Text))
	}
}

func TestSplit_MultibyteHardCutOnRuneBoundary(t *testing.T) {
	r := New(WithChunkSize(10), WithOverlap(2))
	text := strings.Repeat("世", 25)
	docs := []domain.Document{{SourcePath: "doc.pdf", PageNumber: 0, Text: text}}

	chunks, err := r.Split(context.Background(), docs)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(chunks) < 3 {
		t.Fatalf("expected at least 3 chunks, got %d", len(chunks))
	}
	for i, chunk := range chunks {
		if !utf8.ValidString(chunk.Text) {
			t.Errorf("chunk %d contains invalid UTF-8", i)
		}
		if n := utf8.RuneCountInString(chunk.Text); n > 10 {
			t.Errorf("chunk %d exceeds size limit: %d runes", i, n)
		}
	}
}

func TestSplit_MultibyteOverlapOnRuneBoundary(t *testing.T) {
	r := New(WithChunkSize(8), WithOverlap(3))
	text := strings.Repeat("ü", 6) + " " + strings.Repeat("ö", 6)
	docs := []domain.Document{{SourcePath: "doc.pdf", PageNumber: 0, Text: text}}

	chunks, err := r.Split(context.Background(), docs)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(chunks) < 2 {
		t.Fatalf("expected multiple chunks, got %d", len(chunks))
	}

	for i, chunk := range chunks {
		if !utf8.ValidString(chunk.Text) {
			t.Errorf("chunk %d contains invalid UTF-8", i)
		}
	}

	// The last 3 runes of the first chunk reappear at the head of the second.
	head := []rune(chunks[0].Text)
	tail := string(head[len(head)-3:])
	if !strings.HasPrefix(chunks[1].Text, tail) {
		t.Errorf("expected second chunk to start with %q, got %q", tail, chunks[1].Text)
	}
}

func TestSplit_PreservesDocumentOrder(t *testing.T) {
	r := New()
	docs := []domain.Document{
		{SourcePath: "a.pdf", PageNumber: 0, Text: "page a0"},
		{SourcePath: "a.pdf", PageNumber: 1, Text: "page a1"},
		{SourcePath: "b.pdf", PageNumber: 0, Text: "page b0"},
	}

	chunks, err := r.Split(context.Background(), docs)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(chunks) != 3 {
		t.Fatalf("expected 3 chunks, got %d", len(chunks))
	}

	wantKeys := []string{"a.pdf:0", "a.pdf:1", "b.pdf:0"}
	for i, key := range wantKeys {
		if chunks[i].PageKey() != key {
			t.Errorf("chunk %d: expected page key %q, got %q", i, key, chunks[i].PageKey())
		}
	}
}
