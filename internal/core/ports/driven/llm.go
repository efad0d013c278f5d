package driven

import (
	"context"

	"github.com/custodia-labs/quaero-cli/internal/core/domain"
)

// LLMService is the generation collaborator: retrieved segments plus an
// instruction go in, text comes out. The retrieval engine treats it as a
// pure function and never depends on it for correctness.
//
// This is an optional service - when nil, the answer layer is disabled
// and only raw retrieval is available.
//
// Implementations may include:
//   - OpenAI (GPT-4class chat models)
//   - Ollama (local models)
//   - LM Studio (local inference server)
type LLMService interface {
	// Answer generates an answer to the question grounded in the given
	// segments, with recent conversation history for context.
	Answer(ctx context.Context, question string, segments []string, history []domain.Message) (string, error)

	// Summarise produces a short bullet-point summary of the content.
	Summarise(ctx context.Context, content string) (string, error)

	// Translate renders the content in the target language.
	Translate(ctx context.Context, content, targetLanguage string) (string, error)

	// ModelName returns the name of the model being used.
	ModelName() string

	// Ping validates the service is reachable by making a lightweight test request.
	Ping(ctx context.Context) error

	// Close releases resources.
	Close() error
}
