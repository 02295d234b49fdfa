package domain

import (
	"strconv"
	"time"
)

// DocumentStatus tracks a document through the ingestion pipeline.
type DocumentStatus string

const (
	// StatusUploading means the raw bytes are being received.
	StatusUploading DocumentStatus = "uploading"

	// StatusProcessing means extraction, chunking and indexing are underway.
	StatusProcessing DocumentStatus = "processing"

	// StatusProcessed means the document and all its chunks are stored.
	StatusProcessed DocumentStatus = "processed"

	// StatusFailed means processing failed; Error holds the cause.
	StatusFailed DocumentStatus = "failed"
)

// Valid reports whether s is a known status value.
func (s DocumentStatus) Valid() bool {
	switch s {
	case StatusUploading, StatusProcessing, StatusProcessed, StatusFailed:
		return true
	}
	return false
}

// Terminal reports whether the status permits no further transitions.
func (s DocumentStatus) Terminal() bool {
	return s == StatusProcessed || s == StatusFailed
}

// CanTransitionTo reports whether the transition s -> next is allowed.
// The only legal paths are uploading -> processing -> processed|failed.
func (s DocumentStatus) CanTransitionTo(next DocumentStatus) bool {
	switch s {
	case StatusUploading:
		return next == StatusProcessing
	case StatusProcessing:
		return next == StatusProcessed || next == StatusFailed
	}
	return false
}

// DocumentMetadata carries free-form descriptive fields supplied at upload.
type DocumentMetadata struct {
	// Title is the human-readable title.
	Title string

	// Author is the document author.
	Author string

	// Category groups related documents.
	Category string

	// Tags are free-form labels.
	Tags []string

	// Description is a short summary.
	Description string
}

// Document represents an uploaded file and its processing state.
// It is the authoritative record; the similarity index is always
// derivable from documents and their chunks.
type Document struct {
	// ID is the unique identifier for the document.
	ID string

	// Filename is the original upload filename.
	Filename string

	// ContentType is the MIME type supplied at upload.
	ContentType string

	// Status is the current processing status.
	Status DocumentStatus

	// UploadedAt is when the upload was received.
	UploadedAt time.Time

	// ChunkCount is the number of chunks produced at ingestion.
	ChunkCount int

	// FileSize is the size of the uploaded content in bytes.
	FileSize int64

	// ProcessingTime is how long ingestion took, in seconds.
	// For failed documents it measures up to the failure point.
	ProcessingTime float64

	// Error records the failure cause when Status is failed.
	Error string

	// Metadata contains the descriptive fields supplied at upload.
	Metadata DocumentMetadata
}

// Chunk represents a retrievable unit within a document.
// Chunk identity is deterministic: document ID plus sequence index.
type Chunk struct {
	// ID is the unique identifier, derived from DocumentID and Position.
	ID string

	// DocumentID links to the owning Document.
	DocumentID string

	// Content is the text content of this chunk.
	Content string

	// Position is the ordinal position within the document.
	Position int

	// Metadata carries the chunk-local view: filename, position and a
	// copy of the document metadata, so search results can be rendered
	// without re-querying the store.
	Metadata map[string]any
}

// ChunkID builds the deterministic chunk identifier for a document
// and sequence index.
func ChunkID(documentID string, position int) string {
	return documentID + "_chunk_" + strconv.Itoa(position)
}
