package driven

import (
	"context"

	"github.com/custodia-labs/quaero-cli/internal/core/domain"
)

// Normaliser converts raw fetched document bytes into plain UTF-8 text
// ready for chunking. Implementations live in internal/normalisers,
// one per origin format.
type Normaliser interface {
	// Normalise extracts plain text and a title from the raw document.
	Normalise(ctx context.Context, raw *domain.RawDocument) (*domain.ExtractedText, error)

	// Origin returns the document origin this normaliser handles.
	Origin() domain.Origin
}
