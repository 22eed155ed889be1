package driven

// PromptStore provides access to LLM prompt templates.
// Implementations may load prompts from files, embed them in the binary,
// or fetch them from a remote configuration service.
type PromptStore interface {
	// Load returns the prompt template for the given name.
	Load(name string) (string, error)

	// Reload clears any cached prompts, forcing fresh loads on next
	// access. Useful when prompts have been edited on disk.
	Reload()
}

// Well-known prompt names used throughout the application.
const (
	// PromptAnswer is the two-slot template used to answer a query from
	// retrieved context. It expects two %s placeholders: the
	// concatenated context and the question, in that order.
	PromptAnswer = "answer"
)
