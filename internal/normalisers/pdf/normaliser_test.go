package pdf

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/quaero-cli/internal/core/domain"
)

func TestNew(t *testing.T) {
	normaliser := New()
	require.NotNil(t, normaliser)
	assert.Equal(t, domain.OriginPDF, normaliser.Origin())
}

func TestNormalise_NilDocument(t *testing.T) {
	normaliser := New()

	result, err := normaliser.Normalise(context.Background(), nil)

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Nil(t, result)
}

func TestNormalise_NotAPDF(t *testing.T) {
	normaliser := New()
	raw := &domain.RawDocument{
		Origin:  domain.OriginPDF,
		URI:     "/docs/fake.pdf",
		Content: []byte("this is not a pdf"),
	}

	result, err := normaliser.Normalise(context.Background(), raw)

	require.Error(t, err)
	assert.Nil(t, result)
}

func TestNormalise_EmptyContent(t *testing.T) {
	normaliser := New()
	raw := &domain.RawDocument{
		Origin:  domain.OriginPDF,
		URI:     "/docs/empty.pdf",
		Content: nil,
	}

	result, err := normaliser.Normalise(context.Background(), raw)

	require.Error(t, err)
	assert.Nil(t, result)
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
			text:     "Annual Report\nChapter one begins here.",
			uri:      "/docs/report.pdf",
			expected: "Annual Report",
		},
		{
			name:     "skips empty lines",
			text:     "\n\nIntroduction\nBody",
			uri:      "/docs/report.pdf",
			expected: "Introduction",
		},
		{
			name:     "fallback to filename",
			text:     "",
			uri:      "/docs/user_manual.pdf",
			expected: "user manual",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, extractTitle(tt.text, tt.uri))
		})
	}
}
