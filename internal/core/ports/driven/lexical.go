package driven

import (
	"context"

	"github.com/custodia-labs/quaero-cli/internal/core/domain"
)

// LexicalIndex provides keyword search operations.
// Backed by an in-memory inverted index with BM25 scoring over the
// current chunk set; length statistics are recomputed on every publish.
//
// Mutations follow the same atomic-snapshot discipline as VectorIndex.
type LexicalIndex interface {
	// Replace atomically replaces all postings for the given document.
	// An empty chunks slice removes the document.
	Replace(ctx context.Context, documentID string, chunks []domain.Chunk) error

	// RemoveDocument removes all postings for the given document.
	RemoveDocument(ctx context.Context, documentID string) error

	// Search performs a keyword search and returns matching chunks with
	// scores. A query with no matching terms yields an empty result.
	Search(ctx context.Context, query string, k int) ([]LexicalHit, error)

	// Len reports the number of indexed chunks.
	Len() int

	// Close releases resources.
	Close() error
}

// LexicalHit represents a keyword search result.
type LexicalHit struct {
	// ChunkID is the matched chunk.
	ChunkID string

	// Score is the BM25 relevance score; higher is better.
	Score float64

	// Seq is the chunk's insertion sequence, used for deterministic
	// tie-breaking (earlier wins).
	Seq uint64
}

// Tokenizer turns text into the token set used for lexical indexing
// and querying. It is a pluggable collaborator; the default lower-cases,
// strips punctuation and splits on whitespace.
type Tokenizer interface {
	// Tokenize returns the tokens for the given text.
	Tokenize(text string) ([]string, error)
}
