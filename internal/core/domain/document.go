package domain

import "time"

// Origin identifies how a document entered the system.
type Origin string

// Recognised document origins.
const (
	// OriginPDF is text extracted from an uploaded PDF.
	OriginPDF Origin = "pdf"

	// OriginURL is text scraped from a web page.
	OriginURL Origin = "url"

	// OriginText is plain text handed over directly (files, stdin).
	OriginText Origin = "text"
)

// IsValid returns true if the origin is recognised.
func (o Origin) IsValid() bool {
	switch o {
	case OriginPDF, OriginURL, OriginText:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (o Origin) String() string {
	return string(o)
}

// Document represents an ingested source of raw text.
// Parsing (PDF extraction, scraping) happens upstream; the engine
// only ever sees the document's UTF-8 text and its derived chunks.
type Document struct {
	// ID is the unique identifier for the document.
	ID string

	// Origin records how the document was ingested.
	Origin Origin

	// URI is the original locator (file path or URL).
	URI string

	// Title is the human-readable title.
	Title string

	// IngestedAt is when the document was last indexed.
	IngestedAt time.Time
}

// Chunk is the atomic retrievable unit within a document.
// Chunks are immutable once created; re-indexing a document
// replaces its whole chunk set.
type Chunk struct {
	// ID is the unique identifier for the chunk. It is a deterministic
	// function of (DocumentID, Position) so re-chunking identical input
	// yields identical IDs.
	ID string

	// DocumentID links to the owning Document.
	DocumentID string

	// Position is the ordinal position within the document.
	Position int

	// Content is the text content of this chunk.
	Content string

	// Embedding is the vector representation for semantic search.
	Embedding []float32
}
