package html

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
	assert.Equal(t, domain.OriginURL, normaliser.Origin())
}

func TestNormalise_Success(t *testing.T) {
	normaliser := New()
	ctx := context.Background()

	raw := &domain.RawDocument{
		Origin:  domain.OriginURL,
		URI:     "https://example.com/docs/getting-started",
		Content: []byte("<html><head><title>Test Page</title></head><body><p>Hello World</p></body></html>"),
	}

	result, err := normaliser.Normalise(ctx, raw)
	require.NoError(t, err)
	require.NotNil(t, result)

	assert.Equal(t, "Test Page", result.Title)
	assert.Contains(t, result.Text, "Hello World")
	assert.NotContains(t, result.Text, "<p>")
}

func TestNormalise_NilDocument(t *testing.T) {
	normaliser := New()

	result, err := normaliser.Normalise(context.Background(), nil)

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Nil(t, result)
}

func TestNormalise_EmptyContent(t *testing.T) {
	normaliser := New()

	raw := &domain.RawDocument{
		Origin:  domain.OriginURL,
		URI:     "https://example.com/empty.html",
		Content: []byte(""),
	}

	result, err := normaliser.Normalise(context.Background(), raw)

	require.NoError(t, err)
	assert.Empty(t, result.Text)
}

func TestExtractHTMLTitle(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		uri      string
		expected string
	}{
		{
			name:     "title tag",
			content:  "<html><head><title>My Document</title></head><body></body></html>",
			uri:      "https://example.com/doc.html",
			expected: "My Document",
		},
		{
			name:     "title with extra spaces",
			content:  "<title>   Spaced Title   </title>",
			uri:      "https://example.com/doc.html",
			expected: "Spaced Title",
		},
		{
			name:     "title with HTML entities",
			content:  "<title>Tom &amp; Jerry</title>",
			uri:      "https://example.com/doc.html",
			expected: "Tom & Jerry",
		},
		{
			name:     "no title falls back to URL path",
			content:  "<html><body>Just content</body></html>",
			uri:      "https://example.com/user-guide.html",
			expected: "user guide",
		},
		{
			name:     "empty title falls back to URL path",
			content:  "<title>   </title>",
			uri:      "https://example.com/release_notes",
			expected: "release notes",
		},
		{
			name:     "trailing slash ignored",
			content:  "",
			uri:      "https://example.com/handbook/",
			expected: "handbook",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, extractHTMLTitle(tt.content, tt.uri))
		})
	}
}

func TestStripHTML(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		expected string
	}{
		{
			name:     "paragraphs become lines",
			content:  "<p>First</p><p>Second</p>",
			expected: "First\nSecond",
		},
		{
			name:     "script and style removed",
			content:  "<script>alert(1)</script><style>p{}</style><p>Visible</p>",
			expected: "Visible",
		},
		{
			name:     "comments removed",
			content:  "<!-- hidden --><div>Shown</div>",
			expected: "Shown",
		},
		{
			name:     "entities decoded",
			content:  "<p>a &lt; b &amp;&amp; c</p>",
			expected: "a < b && c",
		},
		{
			name:     "br becomes newline",
			content:  "line one<br/>line two",
			expected: "line one\nline two",
		},
		{
			name:     "whitespace collapsed",
			content:  "<p>spaced     out\t\ttext</p>",
			expected: "spaced out text",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, stripHTML(tt.content))
		})
	}
}
