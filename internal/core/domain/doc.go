// Package domain defines the core business entities for Quaero.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Document: An ingested source of raw text
//   - Chunk: The atomic retrievable unit derived from a document
//   - RetrievalResult: A fused, ranked retrieval hit
//   - Config: The retrieval configuration surface
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
