// Package normalisers provides implementations of the Normaliser
// interface for the supported document origins. Each normaliser knows
// how to extract plain text from one format; the retrieval engine only
// ever sees the extracted text.
package normalisers

import (
	"fmt"

	"github.com/custodia-labs/quaero-cli/internal/core/domain"
	"github.com/custodia-labs/quaero-cli/internal/core/ports/driven"
	"github.com/custodia-labs/quaero-cli/internal/normalisers/html"
	"github.com/custodia-labs/quaero-cli/internal/normalisers/pdf"
	"github.com/custodia-labs/quaero-cli/internal/normalisers/plaintext"
)

// ForOrigin returns the normaliser for a document origin.
func ForOrigin(origin domain.Origin) (driven.Normaliser, error) {
	switch origin {
	case domain.OriginText:
		return plaintext.New(), nil
	case domain.OriginURL:
		return html.New(), nil
	case domain.OriginPDF:
		return pdf.New(), nil
	default:
		return nil, fmt.Errorf("%w: no normaliser for origin %q", domain.ErrInvalidInput, origin)
	}
}
