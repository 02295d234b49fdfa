// Package domain defines the core business entities for askdoc.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Document: an uploaded file with processing status and metadata
//   - Chunk: a bounded slice of a document's text, the unit of retrieval
//   - Query: an immutable record of one answered question
//
// All other packages depend on domain; domain depends on nothing.
package domain
