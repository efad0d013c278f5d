package driving

import "github.com/custodia-labs/quaero-cli/internal/core/domain"

// SettingsService manages application settings.
type SettingsService interface {
	// Get retrieves current application settings.
	Get() (*domain.AppSettings, error)

	// Save persists application settings.
	Save(settings *domain.AppSettings) error

	// SetRetrievalMode updates the default retrieval mode.
	SetRetrievalMode(mode domain.RetrievalMode) error

	// SetFusionWeights updates the semantic/lexical fusion weights.
	SetFusionWeights(semantic, lexical float64) error

	// SetChunking updates the chunk size and overlap.
	SetChunking(size, overlap int) error

	// SetTopK updates the default number of results returned.
	SetTopK(k int) error

	// SetEmbeddingProvider configures the embedding provider.
	SetEmbeddingProvider(provider domain.AIProvider, model, apiKey string) error

	// SetLLMProvider configures the LLM provider.
	SetLLMProvider(provider domain.AIProvider, model, apiKey string) error

	// Validate checks that current settings form a usable configuration.
	Validate() error

	// ValidateEmbeddingConfig validates the current embedding
	// configuration by pinging the provider.
	ValidateEmbeddingConfig() error

	// ValidateLLMConfig validates the current LLM configuration by
	// pinging the provider.
	ValidateLLMConfig() error

	// GetDefaults returns default settings.
	GetDefaults() domain.AppSettings
}
