package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidConfig indicates a rejected configuration
	// (negative weights, non-positive chunk size, overlap >= chunk size).
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrDimensionMismatch indicates an embedding vector whose shape is
	// inconsistent with the vector index. The offending operation fails
	// and index state is unchanged.
	ErrDimensionMismatch = errors.New("embedding dimension mismatch")

	// ErrIndexing indicates an embedding or tokenization collaborator
	// failed during indexing. Prior index state is preserved.
	ErrIndexing = errors.New("indexing failed")

	// ErrEmbeddingUnavailable indicates the embedding service is not configured.
	// Vector/semantic retrieval is disabled without embeddings.
	ErrEmbeddingUnavailable = errors.New("embedding service unavailable")

	// ErrLLMUnavailable indicates the LLM service is not configured.
	// Answer generation, summarisation and translation are disabled.
	ErrLLMUnavailable = errors.New("LLM service unavailable")

	// ErrVectorIndexUnavailable indicates the vector index is not configured.
	ErrVectorIndexUnavailable = errors.New("vector index unavailable")

	// ErrLexicalIndexUnavailable indicates the keyword index is not configured.
	ErrLexicalIndexUnavailable = errors.New("lexical index unavailable")
)
