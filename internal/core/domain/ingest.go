package domain

// RawDocument is fetched-but-unparsed document content, as handed over
// by a connector (file read, URL fetch, stdin). Normalisers turn it
// into plain text; the retrieval engine never sees raw bytes.
type RawDocument struct {
	// Origin records how the content was obtained.
	Origin Origin

	// URI is the original locator (file path or URL).
	URI string

	// Content is the raw bytes as fetched.
	Content []byte
}

// ExtractedText is the plain-text outcome of normalising a RawDocument.
type ExtractedText struct {
	// Title is a human-readable title derived from the content or URI.
	Title string

	// Text is the extracted UTF-8 text, ready for chunking.
	Text string
}
