package domain

import "fmt"

// Default configuration values.
const (
	// DefaultChunkSize is the default chunk window in characters.
	DefaultChunkSize = 500

	// DefaultChunkOverlap is the default overlap between adjacent chunks.
	DefaultChunkOverlap = 50

	// DefaultWeightSemantic is the default vector-side fusion weight.
	DefaultWeightSemantic = 0.7

	// DefaultWeightLexical is the default keyword-side fusion weight.
	DefaultWeightLexical = 0.3

	// DefaultTopK is the default number of results returned.
	DefaultTopK = 5
)

// Config is the retrieval engine configuration surface.
// Weights need not sum to 1; a zero weight on one side degenerates
// to pure single-mode ranking through the same fusion path.
type Config struct {
	// ChunkSize is the chunk window in characters.
	ChunkSize int

	// ChunkOverlap is the overlap between adjacent chunks in characters.
	ChunkOverlap int

	// Mode is the default retrieval mode.
	Mode RetrievalMode

	// WeightSemantic is the fusion weight for the vector ranking.
	WeightSemantic float64

	// WeightLexical is the fusion weight for the keyword ranking.
	WeightLexical float64

	// TopK is the default number of results returned.
	TopK int
}

// DefaultConfig returns the documented default configuration.
func DefaultConfig() Config {
	return Config{
		ChunkSize:      DefaultChunkSize,
		ChunkOverlap:   DefaultChunkOverlap,
		Mode:           ModeHybrid,
		WeightSemantic: DefaultWeightSemantic,
		WeightLexical:  DefaultWeightLexical,
		TopK:           DefaultTopK,
	}
}

// Validate rejects invalid combinations before any indexing or query work.
func (c Config) Validate() error {
	if c.ChunkSize <= 0 {
		return fmt.Errorf("%w: chunk size must be positive, got %d", ErrInvalidConfig, c.ChunkSize)
	}
	if c.ChunkOverlap < 0 {
		return fmt.Errorf("%w: chunk overlap must be non-negative, got %d", ErrInvalidConfig, c.ChunkOverlap)
	}
	if c.ChunkOverlap >= c.ChunkSize {
		return fmt.Errorf("%w: chunk overlap %d must be smaller than chunk size %d",
			ErrInvalidConfig, c.ChunkOverlap, c.ChunkSize)
	}
	if !c.Mode.IsValid() {
		return fmt.Errorf("%w: unknown retrieval mode %q", ErrInvalidConfig, c.Mode)
	}
	if c.WeightSemantic < 0 {
		return fmt.Errorf("%w: semantic weight must be non-negative, got %g", ErrInvalidConfig, c.WeightSemantic)
	}
	if c.WeightLexical < 0 {
		return fmt.Errorf("%w: lexical weight must be non-negative, got %g", ErrInvalidConfig, c.WeightLexical)
	}
	if c.TopK <= 0 {
		return fmt.Errorf("%w: top-k must be positive, got %d", ErrInvalidConfig, c.TopK)
	}
	return nil
}

// AIProvider identifies an AI service provider for embeddings or LLM.
type AIProvider string

// Available AI providers.
const (
	// AIProviderOllama is local Ollama instance.
	AIProviderOllama AIProvider = "ollama"

	// AIProviderOpenAI is OpenAI cloud API.
	AIProviderOpenAI AIProvider = "openai"
)

// IsValid returns true if the AI provider is recognised.
func (p AIProvider) IsValid() bool {
	switch p {
	case AIProviderOllama, AIProviderOpenAI:
		return true
	default:
		return false
	}
}

// RequiresAPIKey returns true if this provider needs an API key.
func (p AIProvider) RequiresAPIKey() bool {
	return p == AIProviderOpenAI
}

// IsLocal returns true if this provider runs on the local machine.
func (p AIProvider) IsLocal() bool {
	return p == AIProviderOllama
}

// Description returns a human-readable description of the provider.
func (p AIProvider) Description() string {
	switch p {
	case AIProviderOllama:
		return "Ollama (local, no API key required)"
	case AIProviderOpenAI:
		return "OpenAI (cloud, requires API key)"
	default:
		return unknownDescription
	}
}

// String returns the string representation.
func (p AIProvider) String() string {
	return string(p)
}

// AllAIProviders returns every recognised provider, in display order.
func AllAIProviders() []AIProvider {
	return []AIProvider{AIProviderOllama, AIProviderOpenAI}
}
