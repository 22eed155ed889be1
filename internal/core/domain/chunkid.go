package domain

import "fmt"

// AssignChunkIDs assigns each chunk its sequence index and id in a single
// left-to-right pass. The index increments while consecutive chunks share a
// page key and resets to zero whenever the key changes. Only the immediately
// preceding key is remembered: a page key that reappears later starts again
// at zero. Ids are therefore stable across runs as long as the splitter
// keeps chunks grouped by page and in left-to-right order.
//
// The slice is modified in place and returned for convenience.
func AssignChunkIDs(chunks []Chunk) []Chunk {
	lastPageKey := ""
	index := 0

	for i := range chunks {
		key := chunks[i].PageKey()
		if i > 0 && key == lastPageKey {
			index++
		} else {
			index = 0
		}

		chunks[i].SequenceIndex = index
		chunks[i].ID = fmt.Sprintf("%s:%d", key, index)
		lastPageKey = key
	}

	return chunks
}
