package driving

import (
	"context"

	"github.com/custodia-labs/quaero-cli/internal/core/domain"
)

// RetrievalService exposes the hybrid retrieval engine to external actors.
type RetrievalService interface {
	// IndexDocument chunks and indexes the document's raw text in both
	// indexes, fully replacing any prior version of the document.
	// Returns the number of chunks indexed.
	IndexDocument(ctx context.Context, doc domain.Document, rawText string) (int, error)

	// Retrieve returns the top-k fused results for the query.
	Retrieve(ctx context.Context, query string, opts domain.RetrievalOptions) ([]domain.RetrievalResult, error)

	// RemoveDocument removes a document and its chunks from both indexes.
	RemoveDocument(ctx context.Context, documentID string) error

	// ListDocuments returns all indexed documents.
	ListDocuments(ctx context.Context) ([]domain.Document, error)
}
