package domain

const unknownDescription = "Unknown"

// RetrievalMode defines which indexes a retrieval consults.
type RetrievalMode string

// Available retrieval modes.
const (
	// ModeSemantic uses only the vector index.
	ModeSemantic RetrievalMode = "semantic"

	// ModeHybrid fuses vector and keyword (BM25) rankings.
	ModeHybrid RetrievalMode = "hybrid"
)

// IsValid returns true if the retrieval mode is recognised.
func (m RetrievalMode) IsValid() bool {
	switch m {
	case ModeSemantic, ModeHybrid:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (m RetrievalMode) String() string {
	return string(m)
}

// Description returns a human-readable description of the mode.
func (m RetrievalMode) Description() string {
	switch m {
	case ModeSemantic:
		return "Semantic (vector search only)"
	case ModeHybrid:
		return "Hybrid (vector + keyword search)"
	default:
		return unknownDescription
	}
}

// AllRetrievalModes returns every recognised retrieval mode, in
// display order.
func AllRetrievalModes() []RetrievalMode {
	return []RetrievalMode{ModeHybrid, ModeSemantic}
}

// Provenance records which side of the hybrid ranking produced a result.
type Provenance string

// Provenance values.
const (
	// ProvenanceSemantic means the chunk appeared only in the vector ranking.
	ProvenanceSemantic Provenance = "semantic"

	// ProvenanceLexical means the chunk appeared only in the keyword ranking.
	ProvenanceLexical Provenance = "lexical"

	// ProvenanceBoth means the chunk appeared in both rankings.
	ProvenanceBoth Provenance = "both"
)

// RetrievalOptions configures a retrieval call.
type RetrievalOptions struct {
	// Mode selects semantic-only or hybrid retrieval.
	// Empty falls back to the configured default.
	Mode RetrievalMode

	// TopK bounds the number of results returned.
	// Non-positive falls back to the configured default.
	TopK int

	// SessionID is an opaque tag for caller-side logging.
	// The engine never reads or writes conversation history.
	SessionID string
}

// RetrievalResult is a single fused retrieval hit, resolvable back to
// full chunk text and source document metadata for citation.
type RetrievalResult struct {
	// Chunk is the matched chunk.
	Chunk Chunk

	// Document is the chunk's owning document.
	Document Document

	// Score is the fused relevance score.
	Score float64

	// Provenance records which ranking(s) produced the hit.
	Provenance Provenance
}
