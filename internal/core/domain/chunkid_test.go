package domain

import "testing"

func chunk(source string, page int) Chunk {
	return Chunk{SourcePath: source, PageNumber: page, Text: "text"}
}

func TestAssignChunkIDs_SinglePage(t *testing.T) {
	chunks := []Chunk{
		chunk("books/doc.pdf", 0),
		chunk("books/doc.pdf", 0),
		chunk("books/doc.pdf", 0),
	}

	chunks = AssignChunkIDs(chunks)

	want := []string{"books/doc.pdf:0:0", "books/doc.pdf:0:1", "books/doc.pdf:0:2"}
	for i, id := range want {
		if chunks[i].ID != id {
			t.Errorf("chunk %d: expected id %q, got %q", i, id, chunks[i].ID)
		}
		if chunks[i].SequenceIndex != i {
			t.Errorf("chunk %d: expected sequence index %d, got %d", i, i, chunks[i].SequenceIndex)
		}
	}
}

func TestAssignChunkIDs_ResetsOnPageChange(t *testing.T) {
	chunks := []Chunk{
		chunk("books/doc.pdf", 0),
		chunk("books/doc.pdf", 0),
		chunk("books/doc.pdf", 1),
		chunk("books/other.pdf", 0),
	}

	chunks = AssignChunkIDs(chunks)

	want := []string{
		"books/doc.pdf:0:0",
		"books/doc.pdf:0:1",
		"books/doc.pdf:1:0",
		"books/other.pdf:0:0",
	}
	for i, id := range want {
		if chunks[i].ID != id {
			t.Errorf("chunk %d: expected id %q, got %q", i, id, chunks[i].ID)
		}
	}
}

func TestAssignChunkIDs_ReappearingKeyStartsOver(t *testing.T) {
	// Only the immediately preceding page key is remembered: a key that
	// reappears after an interruption restarts at zero.
	chunks := []Chunk{
		chunk("a.pdf", 0),
		chunk("b.pdf", 0),
		chunk("a.pdf", 0),
	}

	chunks = AssignChunkIDs(chunks)

	want := []string{"a.pdf:0:0", "b.pdf:0:0", "a.pdf:0:0"}
	for i, id := range want {
		if chunks[i].ID != id {
			t.Errorf("chunk %d: expected id %q, got %q", i, id, chunks[i].ID)
		}
	}
}

func TestAssignChunkIDs_Empty(t *testing.T) {
	if got := AssignChunkIDs(nil); len(got) != 0 {
		t.Errorf("expected no chunks, got %d", len(got))
	}
}

func TestAssignChunkIDs_Stable(t *testing.T) {
	make2 := func() []Chunk {
		return []Chunk{
			chunk("doc.pdf", 0),
			chunk("doc.pdf", 1),
			chunk("doc.pdf", 1),
		}
	}

	first := AssignChunkIDs(make2())
	second := AssignChunkIDs(make2())

	for i := range first {
		if first[i].ID != second[i].ID {
			t.Errorf("chunk %d: ids differ across runs: %q vs %q", i, first[i].ID, second[i].ID)
		}
	}
}
