package plaintext

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/custodia-labs/quaero-cli/internal/core/domain"
	"github.com/custodia-labs/quaero-cli/internal/core/ports/driven"
)

// Ensure Normaliser implements the interface.
var _ driven.Normaliser = (*Normaliser)(nil)

// maxTitleLength bounds how long a first line may be to count as a title.
const maxTitleLength = 120

// Normaliser handles plain text documents.
type Normaliser struct{}

// New creates a new plain text normaliser.
func New() *Normaliser {
	return &Normaliser{}
}

// Origin returns the document origin this normaliser handles.
func (n *Normaliser) Origin() domain.Origin {
	return domain.OriginText
}

// Normalise converts raw text bytes into extracted text. The content
// must be valid UTF-8; line endings are normalised to \n.
func (n *Normaliser) Normalise(_ context.Context, raw *domain.RawDocument) (*domain.ExtractedText, error) {
	if raw == nil {
		return nil, domain.ErrInvalidInput
	}
	if !utf8.Valid(raw.Content) {
		return nil, fmt.Errorf("%w: content of %q is not valid UTF-8", domain.ErrInvalidInput, raw.URI)
	}

	text := normaliseLineEndings(string(raw.Content))

	return &domain.ExtractedText{
		Title: extractTitle(text, raw.URI),
		Text:  strings.TrimSpace(text),
	}, nil
}

// extractTitle uses the first non-empty line when it is short enough
// to plausibly be a heading, otherwise falls back to the filename.
func extractTitle(text, uri string) string {
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(strings.TrimLeft(line, "# "))
		if line == "" {
			continue
		}
		if utf8.RuneCountInString(line) <= maxTitleLength {
			return line
		}
		break
	}
	return titleFromFilename(uri)
}

// titleFromFilename derives a human-readable title from a URI.
func titleFromFilename(uri string) string {
	filename := filepath.Base(uri)
	ext := filepath.Ext(filename)
	if ext != "" {
		filename = strings.TrimSuffix(filename, ext)
	}
	filename = strings.ReplaceAll(filename, "_", " ")
	filename = strings.ReplaceAll(filename, "-", " ")
	return filename
}

func normaliseLineEndings(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}
