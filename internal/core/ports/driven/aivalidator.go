package driven

import "github.com/custodia-labs/quaero-cli/internal/core/domain"

// AIConfigValidator validates AI provider configurations by reaching
// out to the configured provider.
type AIConfigValidator interface {
	// ValidateEmbedding checks that the embedding configuration is
	// usable, typically by pinging the provider.
	ValidateEmbedding(config *domain.EmbeddingSettings) error

	// ValidateLLM checks that the LLM configuration is usable.
	ValidateLLM(config *domain.LLMSettings) error
}
