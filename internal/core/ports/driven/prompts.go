package driven

// PromptStore provides access to LLM prompt templates.
// Implementations may load prompts from files, embed them in the binary,
// or fetch them from a remote configuration service.
type PromptStore interface {
	// Load returns the prompt template for the given name.
	// Returns the prompt content and any error encountered.
	// If the prompt is not found, implementations should return a sensible default
	// or an error, depending on whether the prompt is required.
	Load(name string) (string, error)

	// Reload clears any cached prompts, forcing fresh loads on next access.
	// This is useful when prompts may have been edited on disk.
	Reload()
}

// Well-known prompt names used throughout the application.
// These constants define the contract between prompt consumers and providers.
const (
	// PromptAnswer generates a grounded answer from retrieved segments.
	// The prompt template expects %s placeholders for conversation history,
	// context segments, and the question, in that order.
	PromptAnswer = "answer"

	// PromptSummarise creates summaries of document content.
	// The prompt template expects a %s placeholder for the content.
	PromptSummarise = "summarise"

	// PromptTranslate translates document content.
	// The prompt template expects %s placeholders for the target language
	// and the content, in that order.
	PromptTranslate = "translate"
)
