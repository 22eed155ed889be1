package file

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/pagerag/internal/core/ports/driven"
)

func TestPromptStore_LoadCreatesDefaultFiles(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "prompts")
	store, err := NewPromptStore(dir)
	require.NoError(t, err)

	prompt, err := store.Load(driven.PromptAnswer)
	require.NoError(t, err)
	assert.Equal(t, defaultPrompts[driven.PromptAnswer], prompt)

	// First Load materialises the editable default file.
	data, err := os.ReadFile(filepath.Join(dir, driven.PromptAnswer+".txt"))
	require.NoError(t, err)
	assert.Equal(t, defaultPrompts[driven.PromptAnswer]+"\n", string(data))
}

func TestPromptStore_UserFileWins(t *testing.T) {
	dir := t.TempDir()
	custom := "Context: %s Question: %s"
	require.NoError(t, os.WriteFile(
		filepath.Join(dir, driven.PromptAnswer+".txt"), []byte(custom+"\n"), 0600))

	store, err := NewPromptStore(dir)
	require.NoError(t, err)

	prompt, err := store.Load(driven.PromptAnswer)
	require.NoError(t, err)
	assert.Equal(t, custom, prompt)
}

func TestPromptStore_UnknownPrompt(t *testing.T) {
	store, err := NewPromptStore(t.TempDir())
	require.NoError(t, err)

	_, err = store.Load("nonexistent")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nonexistent")
}

func TestPromptStore_ReloadPicksUpEdits(t *testing.T) {
	dir := t.TempDir()
	store, err := NewPromptStore(dir)
	require.NoError(t, err)

	first, err := store.Load(driven.PromptAnswer)
	require.NoError(t, err)

	edited := "Edited: %s / %s"
	require.NoError(t, os.WriteFile(
		filepath.Join(dir, driven.PromptAnswer+".txt"), []byte(edited+"\n"), 0600))

	// Cached until Reload.
	cached, err := store.Load(driven.PromptAnswer)
	require.NoError(t, err)
	assert.Equal(t, first, cached)

	store.Reload()

	fresh, err := store.Load(driven.PromptAnswer)
	require.NoError(t, err)
	assert.Equal(t, edited, fresh)
}
