package driven

import "context"

// VectorIndex provides semantic similarity search operations.
// The default implementation is exact brute-force cosine ranking;
// an ANN backend can be swapped in behind the same contract.
//
// Mutations are atomic: a new snapshot is built off to the side and
// published in one step, so concurrent searches observe either the
// prior or the fully-updated state, never an interleaved view.
type VectorIndex interface {
	// Replace atomically replaces all entries for the given document.
	// An empty entries slice removes the document. Returns
	// domain.ErrDimensionMismatch if any embedding's dimensionality
	// differs from the index's, leaving state unchanged.
	Replace(ctx context.Context, documentID string, entries []VectorEntry) error

	// RemoveDocument removes all entries for the given document.
	RemoveDocument(ctx context.Context, documentID string) error

	// Search finds the k most similar entries to the query vector.
	// An empty index yields an empty result, not an error.
	Search(ctx context.Context, query []float32, k int) ([]VectorHit, error)

	// Len reports the number of indexed entries.
	Len() int

	// Close releases resources.
	Close() error
}

// VectorEntry pairs a chunk with its embedding.
type VectorEntry struct {
	// ChunkID is the chunk the embedding belongs to.
	ChunkID string

	// Embedding is the chunk's vector, dimensionality fixed per index.
	Embedding []float32
}

// VectorHit represents a similarity search result.
type VectorHit struct {
	// ChunkID is the matched chunk.
	ChunkID string

	// Similarity is the cosine similarity score; higher is better.
	Similarity float64

	// Seq is the entry's insertion sequence, used for deterministic
	// tie-breaking (earlier wins).
	Seq uint64
}
