package pdf

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"

	"github.com/custodia-labs/quaero-cli/internal/core/domain"
	"github.com/custodia-labs/quaero-cli/internal/core/ports/driven"
)

// Ensure Normaliser implements the interface.
var _ driven.Normaliser = (*Normaliser)(nil)

// maxTitleLength bounds how long a first line may be to count as a title.
const maxTitleLength = 120

// Normaliser extracts text from PDF documents.
type Normaliser struct{}

// New creates a new PDF normaliser.
func New() *Normaliser {
	return &Normaliser{}
}

// Origin returns the document origin this normaliser handles.
func (n *Normaliser) Origin() domain.Origin {
	return domain.OriginPDF
}

// Normalise extracts the plain text of a PDF. The title is taken from
// the first short line of extracted text, falling back to the filename.
func (n *Normaliser) Normalise(_ context.Context, raw *domain.RawDocument) (*domain.ExtractedText, error) {
	if raw == nil {
		return nil, domain.ErrInvalidInput
	}

	text, err := extractText(raw.Content)
	if err != nil {
		return nil, fmt.Errorf("extract pdf text from %q: %w", raw.URI, err)
	}

	return &domain.ExtractedText{
		Title: extractTitle(text, raw.URI),
		Text:  strings.TrimSpace(text),
	}, nil
}

// extractText runs the PDF reader over the raw bytes. The reader
// panics on some malformed files, so the panic is converted to an
// error here.
func extractText(content []byte) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("malformed pdf: %v", r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return "", err
	}

	plain, err := reader.GetPlainText()
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(plain); err != nil {
		return "", err
	}

	return buf.String(), nil
}

// extractTitle uses the first non-empty line when it is short enough
// to plausibly be a heading, otherwise falls back to the filename.
func extractTitle(text, uri string) string {
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
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
