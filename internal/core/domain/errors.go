package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnsupportedType indicates a content type no extractor handles.
	// It is reported before any store mutation.
	ErrUnsupportedType = errors.New("unsupported content type")

	// ErrQuestionTooShort indicates the question is below the minimum
	// length. This is a client error, not a server fault.
	ErrQuestionTooShort = errors.New("question too short")

	// ErrEmbeddingFailed indicates the embedding capability failed.
	ErrEmbeddingFailed = errors.New("embedding failed")

	// ErrGenerationFailed indicates the generation capability failed.
	// The query engine recovers locally with a degraded answer.
	ErrGenerationFailed = errors.New("generation failed")

	// ErrIndexUnavailable indicates the similarity index is not
	// configured or has been closed.
	ErrIndexUnavailable = errors.New("similarity index unavailable")

	// ErrInvalidStatusTransition indicates a document status change
	// outside uploading -> processing -> processed|failed.
	ErrInvalidStatusTransition = errors.New("invalid status transition")
)
