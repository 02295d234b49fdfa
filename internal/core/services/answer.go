package services

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/askdoc-labs/askdoc-cli/internal/core/domain"
	"github.com/askdoc-labs/askdoc-cli/internal/core/ports/driven"
	"github.com/askdoc-labs/askdoc-cli/internal/core/ports/driving"
	"github.com/askdoc-labs/askdoc-cli/internal/logger"
)

// Ensure AnswerService implements the interface.
var _ driving.AnswerService = (*AnswerService)(nil)

// noResultsAnswer is returned when retrieval finds nothing relevant.
const noResultsAnswer = "I couldn't find any relevant information in the uploaded documents to answer your question."

// answerLengthNorm is the answer length at which the length factor of
// the confidence score saturates.
const answerLengthNorm = 200

// DefaultGenerateTimeout bounds one LLM generation call.
const DefaultGenerateTimeout = 2 * time.Minute

// DefaultSearchTimeout bounds one retrieval call, including the query
// embedding it performs.
const DefaultSearchTimeout = 30 * time.Second

// AnswerService answers questions with retrieval-augmented generation.
type AnswerService struct {
	index           driven.SimilarityIndex
	llm             driven.LLMService
	queryStore      driven.QueryStore
	generateTimeout time.Duration
	searchTimeout   time.Duration
}

// AnswerOption configures the answer service.
type AnswerOption func(*AnswerService)

// WithGenerateTimeout overrides the LLM generation timeout.
func WithGenerateTimeout(d time.Duration) AnswerOption {
	return func(s *AnswerService) {
		if d > 0 {
			s.generateTimeout = d
		}
	}
}

// WithSearchTimeout overrides the retrieval timeout.
func WithSearchTimeout(d time.Duration) AnswerOption {
	return func(s *AnswerService) {
		if d > 0 {
			s.searchTimeout = d
		}
	}
}

// NewAnswerService creates a new answer service. The queryStore is
// optional (can be nil); without it answers are not recorded.
func NewAnswerService(
	index driven.SimilarityIndex,
	llm driven.LLMService,
	queryStore driven.QueryStore,
	opts ...AnswerOption,
) *AnswerService {
	s := &AnswerService{
		index:           index,
		llm:             llm,
		queryStore:      queryStore,
		generateTimeout: DefaultGenerateTimeout,
		searchTimeout:   DefaultSearchTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Answer retrieves relevant chunks and synthesizes an answer. It fails
// only on invalid requests; retrieval and generation faults degrade to
// a zero-confidence answer that is still recorded.
func (s *AnswerService) Answer(ctx context.Context, req domain.AnswerRequest) (*domain.Query, error) {
	logger.Section("Question Answering")
	logger.Debug("Question: %q", req.Question)

	req, err := validateRequest(req)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	q := &domain.Query{
		ID:            uuid.New().String(),
		Question:      req.Question,
		ModelUsed:     s.llm.ModelName(),
		Timestamp:     start.UTC(),
		MaxResults:    req.MaxResults,
		ContextFilter: req.ContextFilter,
		Temperature:   req.Temperature,
	}

	searchCtx, cancelSearch := context.WithTimeout(ctx, s.searchTimeout)
	results, err := s.index.Search(searchCtx, req.Question, req.MaxResults)
	cancelSearch()
	if err != nil {
		logger.Warn("Retrieval failed: %v", err)
		return s.finish(ctx, q, errorAnswer(err), 0, nil, start), nil
	}

	logger.Debug("Retrieved %d chunks", len(results))

	if len(results) == 0 {
		return s.finish(ctx, q, noResultsAnswer, 0, nil, start), nil
	}

	q.SourcesUsed = len(results)
	sources := buildSources(results)
	contextText := buildContext(results)

	genCtx, cancel := context.WithTimeout(ctx, s.generateTimeout)
	defer cancel()

	answer, err := s.llm.Generate(genCtx, req.Question, contextText, driven.GenerateOptions{
		Temperature: req.Temperature,
	})
	if err != nil {
		logger.Warn("Generation failed: %v", err)
		// The degraded answer uses no sources, so the record must not
		// claim any.
		q.SourcesUsed = 0
		return s.finish(ctx, q, errorAnswer(err), 0, nil, start), nil
	}

	confidence := confidenceScore(sources, answer)
	logger.Info("Answered with confidence %.2f using %d sources", confidence, len(sources))

	if !req.IncludeSources {
		sources = nil
	}
	return s.finish(ctx, q, answer, confidence, sources, start), nil
}

// History returns recent query records, newest first.
func (s *AnswerService) History(ctx context.Context, limit, offset int) ([]domain.Query, error) {
	if s.queryStore == nil {
		return nil, nil
	}
	queries, err := s.queryStore.ListQueries(ctx, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list queries: %w", err)
	}
	return queries, nil
}

// finish completes the record, persists it best-effort and returns it.
func (s *AnswerService) finish(
	ctx context.Context, q *domain.Query, answer string, confidence float64,
	sources []domain.SourceDocument, start time.Time,
) *domain.Query {
	q.Answer = answer
	q.Confidence = confidence
	q.Sources = sources
	q.ProcessingTime = time.Since(start).Seconds()

	if s.queryStore != nil {
		if err := s.queryStore.InsertQuery(ctx, q); err != nil {
			// An analytics write must never fail the answer.
			logger.Warn("Failed to record query %s: %v", q.ID, err)
		}
	}
	return q
}

// validateRequest normalizes the request, applying defaults and bounds.
func validateRequest(req domain.AnswerRequest) (domain.AnswerRequest, error) {
	req.Question = strings.TrimSpace(req.Question)
	n := utf8.RuneCountInString(req.Question)
	if n < domain.MinQuestionLength {
		return req, fmt.Errorf("%w: need at least %d characters", domain.ErrQuestionTooShort, domain.MinQuestionLength)
	}
	if n > domain.MaxQuestionLength {
		return req, fmt.Errorf("%w: question exceeds %d characters", domain.ErrInvalidInput, domain.MaxQuestionLength)
	}

	if req.MaxResults == 0 {
		req.MaxResults = domain.DefaultMaxResults
	}
	if req.MaxResults < 1 || req.MaxResults > domain.MaxMaxResults {
		return req, fmt.Errorf("%w: max results must be between 1 and %d", domain.ErrInvalidInput, domain.MaxMaxResults)
	}

	if req.Temperature == 0 {
		req.Temperature = domain.DefaultTemperature
	}
	if req.Temperature < 0 || req.Temperature > 1 {
		return req, fmt.Errorf("%w: temperature must be between 0 and 1", domain.ErrInvalidInput)
	}

	return req, nil
}

// buildSources converts scored chunks into presentable source excerpts.
func buildSources(results []driven.ScoredChunk) []domain.SourceDocument {
	sources := make([]domain.SourceDocument, len(results))
	for i, r := range results {
		content := r.Chunk.Content
		if utf8.RuneCountInString(content) > domain.SourceSnippetLength {
			content = string([]rune(content)[:domain.SourceSnippetLength]) + "..."
		}
		sources[i] = domain.SourceDocument{
			Content:        content,
			Metadata:       r.Chunk.Metadata,
			RelevanceScore: clamp01(1 - r.Distance),
			DocumentID:     r.Chunk.DocumentID,
			ChunkIndex:     r.Chunk.Position,
		}
	}
	return sources
}

// buildContext concatenates retrieved chunk texts for the LLM prompt.
func buildContext(results []driven.ScoredChunk) string {
	parts := make([]string, len(results))
	for i, r := range results {
		parts[i] = r.Chunk.Content
	}
	return strings.Join(parts, "\n\n")
}

// confidenceScore derives the answer confidence from source relevance
// and answer length. Longer answers against closer sources score
// higher, capped at MaxConfidence.
func confidenceScore(sources []domain.SourceDocument, answer string) float64 {
	if len(sources) == 0 {
		return 0
	}
	var sum float64
	for _, s := range sources {
		sum += s.RelevanceScore
	}
	avgRelevance := sum / float64(len(sources))

	lengthFactor := float64(len(answer)) / answerLengthNorm
	if lengthFactor > 1 {
		lengthFactor = 1
	}

	confidence := (avgRelevance + lengthFactor) / 2
	if confidence > domain.MaxConfidence {
		confidence = domain.MaxConfidence
	}
	if confidence < 0 {
		confidence = 0
	}
	return confidence
}

// errorAnswer is the degraded answer text for a capability failure.
func errorAnswer(err error) string {
	return "I encountered an error while processing your question: " + err.Error()
}

// clamp01 clamps v to [0, 1].
func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
