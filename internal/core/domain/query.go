package domain

import "time"

// Default and boundary values for answer requests.
const (
	// MinQuestionLength is the minimum question length in characters.
	MinQuestionLength = 3

	// MaxQuestionLength is the maximum question length in characters.
	MaxQuestionLength = 1000

	// DefaultMaxResults is the default number of chunks to retrieve.
	DefaultMaxResults = 5

	// MaxMaxResults caps the number of chunks a request may ask for.
	MaxMaxResults = 20

	// DefaultTemperature is the default generation temperature.
	DefaultTemperature = 0.3

	// MaxConfidence is the ceiling on reported confidence. The system
	// never claims near-certainty because generated answers are not
	// verified against source text.
	MaxConfidence = 0.95

	// SourceSnippetLength is the truncation length for source excerpts.
	SourceSnippetLength = 300
)

// AnswerRequest is a question with retrieval parameters.
type AnswerRequest struct {
	// Question is the natural-language question text.
	Question string

	// MaxResults is the number of chunks to retrieve (1-20, default 5).
	MaxResults int

	// IncludeSources controls whether source excerpts are returned.
	IncludeSources bool

	// Temperature controls generation randomness (0.0-1.0, default 0.3).
	Temperature float64

	// ContextFilter optionally narrows retrieval; recorded on the query.
	ContextFilter string
}

// SourceDocument is one retrieved chunk as presented in an answer.
type SourceDocument struct {
	// Content is the chunk text, truncated to SourceSnippetLength.
	Content string

	// Metadata is the chunk-local metadata copy.
	Metadata map[string]any

	// RelevanceScore is 1 - distance, clamped to [0, 1].
	RelevanceScore float64

	// DocumentID is the owning document.
	DocumentID string

	// ChunkIndex is the chunk's position within the document.
	ChunkIndex int
}

// Query is the immutable record of one answered question. It is created
// once per question and persisted append-only for analytics.
type Query struct {
	// ID is the unique query identifier.
	ID string

	// Question is the question as asked.
	Question string

	// Answer is the synthesized answer text.
	Answer string

	// Confidence is the derived score in [0, MaxConfidence].
	Confidence float64

	// Sources are the retrieved excerpts, empty when IncludeSources
	// was false or retrieval found nothing.
	Sources []SourceDocument

	// SourcesUsed is the number of chunks retrieved.
	SourcesUsed int

	// ProcessingTime is the answer latency in seconds.
	ProcessingTime float64

	// ModelUsed identifies the generation model.
	ModelUsed string

	// Timestamp is when the question was asked.
	Timestamp time.Time

	// MaxResults, ContextFilter and Temperature record the retrieval
	// parameters used, for later analysis.
	MaxResults    int
	ContextFilter string
	Temperature   float64
}
