package plaintext

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/quaero-cli/internal/core/domain"
)

func TestNew(t *testing.T) {
	normaliser := New()
	require.NotNil(t, normaliser)
	assert.Equal(t, domain.OriginText, normaliser.Origin())
}

func TestNormalise_NilDocument(t *testing.T) {
	normaliser := New()

	result, err := normaliser.Normalise(context.Background(), nil)

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Nil(t, result)
}

func TestNormalise_InvalidUTF8(t *testing.T) {
	normaliser := New()
	raw := &domain.RawDocument{
		Origin:  domain.OriginText,
		URI:     "/notes/bad.txt",
		Content: []byte{0xff, 0xfe, 0xfd},
	}

	result, err := normaliser.Normalise(context.Background(), raw)

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Nil(t, result)
}

func TestNormalise_ExtractsContent(t *testing.T) {
	normaliser := New()
	raw := &domain.RawDocument{
		Origin:  domain.OriginText,
		URI:     "/notes/meeting.txt",
		Content: []byte("Weekly Sync\n\nDiscussed the roadmap.\n"),
	}

	result, err := normaliser.Normalise(context.Background(), raw)

	require.NoError(t, err)
	assert.Equal(t, "Weekly Sync", result.Title)
	assert.Equal(t, "Weekly Sync\n\nDiscussed the roadmap.", result.Text)
}

func TestNormalise_NormalisesLineEndings(t *testing.T) {
	normaliser := New()
	raw := &domain.RawDocument{
		Origin:  domain.OriginText,
		URI:     "/notes/dos.txt",
		Content: []byte("line one\r\nline two\rline three"),
	}

	result, err := normaliser.Normalise(context.Background(), raw)

	require.NoError(t, err)
	assert.Equal(t, "line one\nline two\nline three", result.Text)
}

func TestExtractTitle(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		uri      string
		expected string
	}{
		{
			name:     "first line as title",
			text:     "Document Title\n\nSome content here.",
			uri:      "/doc.txt",
			expected: "Document Title",
		},
		{
			name:     "skips empty lines",
			text:     "\n\n\nActual Title\nContent",
			uri:      "/doc.txt",
			expected: "Actual Title",
		},
		{
			name:     "strips markdown heading marker",
			text:     "# Heading\nBody",
			uri:      "/doc.md",
			expected: "Heading",
		},
		{
			name:     "fallback to filename when empty",
			text:     "",
			uri:      "/path/to/my_document.txt",
			expected: "my document",
		},
		{
			name:     "fallback to filename for very long first line",
			text:     strings.Repeat("x", 200) + "\nShort Title",
			uri:      "/path/quarterly-report.txt",
			expected: "quarterly report",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, extractTitle(tt.text, tt.uri))
		})
	}
}
