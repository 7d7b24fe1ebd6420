// Package domain defines the core business entities of the knowledge base.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Document: A scraped (or fallback) web page
//   - Chunk: A bounded slice of a document's text
//   - VectorRecord: An embedded chunk ready for the vector store
//   - QueryResult: A match returned to callers of the query pipeline
//   - ScrapeResult: The outcome of fetching one URL
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
