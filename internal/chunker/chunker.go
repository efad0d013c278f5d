// Package chunker splits raw document text into overlapping fixed-size
// segments with stable identifiers.
package chunker

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/custodia-labs/quaero-cli/internal/core/domain"
)

// chunkNamespace is the UUIDv5 namespace for chunk identifiers.
// IDs derived from it are pure functions of (documentID, ordinal), so
// re-chunking identical input yields identical IDs and re-indexing is
// idempotent.
var chunkNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("quaero://chunk"))

// Chunker splits text into fixed-size chunks with overlap.
// It is stateless; Split is a pure function over its inputs.
type Chunker struct {
	chunkSize int
	overlap   int
}

// Option configures the chunker.
type Option func(*Chunker)

// WithChunkSize sets the chunk window in characters.
func WithChunkSize(size int) Option {
	return func(c *Chunker) {
		c.chunkSize = size
	}
}

// WithOverlap sets the overlap between adjacent chunks in characters.
func WithOverlap(overlap int) Option {
	return func(c *Chunker) {
		c.overlap = overlap
	}
}

// New creates a chunker. The window must be larger than the overlap,
// which must be non-negative; anything else is rejected up front.
func New(opts ...Option) (*Chunker, error) {
	c := &Chunker{
		chunkSize: domain.DefaultChunkSize,
		overlap:   domain.DefaultChunkOverlap,
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.chunkSize <= 0 {
		return nil, fmt.Errorf("%w: chunk size must be positive, got %d", domain.ErrInvalidConfig, c.chunkSize)
	}
	if c.overlap < 0 {
		return nil, fmt.Errorf("%w: overlap must be non-negative, got %d", domain.ErrInvalidConfig, c.overlap)
	}
	if c.overlap >= c.chunkSize {
		return nil, fmt.Errorf("%w: overlap %d must be smaller than chunk size %d",
			domain.ErrInvalidConfig, c.overlap, c.chunkSize)
	}

	return c, nil
}

// ChunkSize returns the configured window in characters.
func (c *Chunker) ChunkSize() int {
	return c.chunkSize
}

// Overlap returns the configured overlap in characters.
func (c *Chunker) Overlap() int {
	return c.overlap
}

// Split slides a window of chunkSize characters across the text,
// advancing by chunkSize-overlap each step. The final window is
// truncated to whatever remains. Empty text produces no chunks.
// Sizes are measured in runes so multi-byte text never splits
// mid-character.
func (c *Chunker) Split(documentID, text string) []domain.Chunk {
	if text == "" {
		return nil
	}

	runes := []rune(text)
	total := len(runes)
	stride := c.chunkSize - c.overlap

	chunks := make([]domain.Chunk, 0, total/stride+1)

	position := 0
	for start := 0; start < total; start += stride {
		end := start + c.chunkSize
		if end > total {
			end = total
		}

		chunks = append(chunks, domain.Chunk{
			ID:         ChunkID(documentID, position),
			DocumentID: documentID,
			Position:   position,
			Content:    string(runes[start:end]),
		})
		position++
	}

	return chunks
}

// ChunkID derives the stable identifier for the chunk at the given
// ordinal within a document.
func ChunkID(documentID string, position int) string {
	return uuid.NewSHA1(chunkNamespace, fmt.Appendf(nil, "%s:%d", documentID, position)).String()
}
