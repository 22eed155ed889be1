package file

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/custodia-labs/pagerag/internal/core/ports/driven"
)

// Ensure PromptStore implements the interface.
var _ driven.PromptStore = (*PromptStore)(nil)

// PromptStore loads LLM prompts from user-editable files on disk.
// Prompts are loaded from a configurable directory with fallback to
// embedded defaults.
//
// The store uses lazy initialisation - files are only created when first
// accessed, not in the constructor. This makes testing easier and avoids
// unexpected I/O.
type PromptStore struct {
	mu        sync.RWMutex
	promptDir string
	cache     map[string]string
	initOnce  sync.Once
	initErr   error
}

// defaultPrompts contains embedded default prompts.
// These are used when user files don't exist and as the initial content
// for new files.
var defaultPrompts = map[string]string{
	driven.PromptAnswer: `Answer the question based only on the following context:

%s

---

Answer the question based on the above context: %s`,
}

// NewPromptStore creates a new file-based prompt store.
// If promptDir is empty, defaults to ~/.pagerag/prompts/.
//
// The constructor does not perform any I/O - directory creation and
// file writes happen lazily on first Load() call.
func NewPromptStore(promptDir string) (*PromptStore, error) {
	if promptDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("get home directory: %w", err)
		}
		promptDir = filepath.Join(home, ".pagerag", "prompts")
	}

	return &PromptStore{
		promptDir: promptDir,
		cache:     make(map[string]string),
	}, nil
}

// Load returns the prompt template for the given name.
// On first call, initialises the prompt directory and creates default
// files. Returns cached value if available, otherwise loads from file.
// Falls back to the embedded default if the file doesn't exist.
func (s *PromptStore) Load(name string) (string, error) {
	s.initOnce.Do(s.initialise)
	if s.initErr != nil {
		// Fall back to embedded defaults if init failed
		if prompt, ok := defaultPrompts[name]; ok {
			return prompt, nil
		}
		return "", fmt.Errorf("prompt store init failed: %w", s.initErr)
	}

	s.mu.RLock()
	if prompt, ok := s.cache[name]; ok {
		s.mu.RUnlock()
		return prompt, nil
	}
	s.mu.RUnlock()

	s.mu.Lock()
	defer s.mu.Unlock()

	// Re-check under the write lock
	if prompt, ok := s.cache[name]; ok {
		return prompt, nil
	}

	data, err := os.ReadFile(s.promptPath(name))
	if err != nil {
		if prompt, ok := defaultPrompts[name]; ok {
			s.cache[name] = prompt
			return prompt, nil
		}
		return "", fmt.Errorf("load prompt %q: %w", name, err)
	}

	prompt := strings.TrimRight(string(data), "\n")
	s.cache[name] = prompt
	return prompt, nil
}

// Reload clears the cache, forcing fresh loads on next access.
func (s *PromptStore) Reload() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cache = make(map[string]string)
}

// initialise creates the prompt directory and writes default files for
// prompts that don't exist yet, so users can discover and edit them.
func (s *PromptStore) initialise() {
	if err := os.MkdirAll(s.promptDir, 0700); err != nil {
		s.initErr = err
		return
	}

	for name, content := range defaultPrompts {
		path := s.promptPath(name)
		if _, err := os.Stat(path); err == nil {
			continue
		}
		if err := os.WriteFile(path, []byte(content+"\n"), 0600); err != nil {
			s.initErr = err
			return
		}
	}
}

// promptPath returns the file path for a named prompt.
func (s *PromptStore) promptPath(name string) string {
	return filepath.Join(s.promptDir, name+".txt")
}
