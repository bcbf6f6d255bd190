// Package domain defines the core business entities for Docchat.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Page: A single page of text extracted from a PDF
//   - Chunk: A bounded slice of page text, the unit of embedding
//   - IndexEntry: A chunk paired with its embedding inside the index
//   - Answer: A model response with its supporting passages
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
