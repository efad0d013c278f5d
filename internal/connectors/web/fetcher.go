package web

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/custodia-labs/quaero-cli/internal/core/domain"
)

// DefaultTimeout is the default timeout for page fetches.
const DefaultTimeout = 30 * time.Second

// MaxFetchBytes caps how much of a response body is read.
const MaxFetchBytes = 16 * 1024 * 1024

// userAgent identifies fetches made by the CLI.
const userAgent = "quaero/1.0"

// Fetcher retrieves web pages for indexing. PDF responses are routed
// to the PDF normaliser; everything else is treated as HTML.
type Fetcher struct {
	client *http.Client
}

// NewFetcher creates a web fetcher with the default timeout.
func NewFetcher() *Fetcher {
	return &Fetcher{
		client: &http.Client{Timeout: DefaultTimeout},
	}
}

// Fetch downloads the page at the given URL into a RawDocument.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (*domain.RawDocument, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid URL %q: %v", domain.ErrInvalidInput, rawURL, err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, fmt.Errorf("%w: unsupported URL scheme %q", domain.ErrInvalidInput, parsed.Scheme)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request for %q: %w", rawURL, err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %q: %w", rawURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch %q: unexpected status %s", rawURL, resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, MaxFetchBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read %q: %w", rawURL, err)
	}
	if len(body) > MaxFetchBytes {
		return nil, fmt.Errorf("%w: %q exceeds maximum size of %d bytes",
			domain.ErrInvalidInput, rawURL, MaxFetchBytes)
	}

	origin := domain.OriginURL
	if isPDFContentType(resp.Header.Get("Content-Type")) {
		origin = domain.OriginPDF
	}

	return &domain.RawDocument{
		Origin:  origin,
		URI:     rawURL,
		Content: body,
	}, nil
}

func isPDFContentType(contentType string) bool {
	return strings.HasPrefix(strings.ToLower(contentType), "application/pdf")
}

// IsURL reports whether the argument looks like a fetchable URL.
func IsURL(arg string) bool {
	return strings.HasPrefix(arg, "http://") || strings.HasPrefix(arg, "https://")
}
