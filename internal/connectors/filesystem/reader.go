package filesystem

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/custodia-labs/quaero-cli/internal/core/domain"
)

// MaxFileSizeBytes caps how large a local file may be before it is
// rejected instead of read into memory.
const MaxFileSizeBytes = 16 * 1024 * 1024

// OriginForPath returns the document origin for a local file path.
func OriginForPath(path string) domain.Origin {
	if strings.EqualFold(filepath.Ext(path), ".pdf") {
		return domain.OriginPDF
	}
	return domain.OriginText
}

// Read loads a local file into a RawDocument. The URI is the absolute
// path, so the same file always maps to the same document.
func Read(path string) (*domain.RawDocument, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve path %q: %w", path, err)
	}

	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("stat %q: %w", abs, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w: %q is a directory", domain.ErrInvalidInput, abs)
	}
	if info.Size() > MaxFileSizeBytes {
		return nil, fmt.Errorf("%w: %q exceeds maximum size of %d bytes",
			domain.ErrInvalidInput, abs, MaxFileSizeBytes)
	}

	data, err := os.ReadFile(abs)
	if err != nil {
		return nil, fmt.Errorf("read %q: %w", abs, err)
	}

	return &domain.RawDocument{
		Origin:  OriginForPath(abs),
		URI:     abs,
		Content: data,
	}, nil
}
