package mcp

import (
	"context"
	"errors"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/askdoc-labs/askdoc-cli/internal/core/domain"
)

// AskInput is the input schema for the ask tool.
type AskInput struct {
	Question    string  `json:"question" jsonschema:"the natural-language question to answer"`
	MaxResults  int     `json:"max_results,omitempty" jsonschema:"number of document chunks to retrieve (1-20, default 5)"`
	NoSources   bool    `json:"no_sources,omitempty" jsonschema:"omit source excerpts from the output"`
	Filter      string  `json:"filter,omitempty" jsonschema:"context filter recorded with the query"`
	Temperature float64 `json:"temperature,omitempty" jsonschema:"generation temperature (0.0-1.0, default 0.3)"`
}

// AskOutput is the output schema for the ask tool.
type AskOutput struct {
	Answer      string         `json:"answer"`
	Confidence  float64        `json:"confidence"`
	SourcesUsed int            `json:"sources_used"`
	Sources     []SourceOutput `json:"sources,omitempty"`
	ModelUsed   string         `json:"model_used"`
}

// SourceOutput is one retrieved excerpt in an answer.
type SourceOutput struct {
	DocumentID string  `json:"document_id"`
	Filename   string  `json:"filename,omitempty"`
	Content    string  `json:"content"`
	Relevance  float64 `json:"relevance"`
	ChunkIndex int     `json:"chunk_index"`
}

// UploadInput is the input schema for the upload tool.
type UploadInput struct {
	Filename    string `json:"filename" jsonschema:"the filename, used to detect the content type"`
	Content     string `json:"content" jsonschema:"the document text content"`
	ContentType string `json:"content_type,omitempty" jsonschema:"MIME type override (default text/plain)"`
	Title       string `json:"title,omitempty" jsonschema:"document title"`
}

// UploadOutput is the output schema for the upload tool.
type UploadOutput struct {
	DocumentID string `json:"document_id"`
	Status     string `json:"status"`
	ChunkCount int    `json:"chunk_count"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "ask",
		Description: "Ask a question answered from the uploaded documents",
	}, s.handleAsk)

	if s.ports.Ingest != nil {
		mcp.AddTool(s.server, &mcp.Tool{
			Name:        "upload",
			Description: "Upload a text document for indexing",
		}, s.handleUpload)
	}
}

// handleAsk handles the ask tool invocation.
func (s *Server) handleAsk(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input AskInput,
) (*mcp.CallToolResult, AskOutput, error) {
	req := domain.AnswerRequest{
		Question:       input.Question,
		MaxResults:     input.MaxResults,
		IncludeSources: !input.NoSources,
		Temperature:    input.Temperature,
		ContextFilter:  input.Filter,
	}

	query, err := s.ports.Answer.Answer(ctx, req)
	if err != nil {
		return nil, AskOutput{}, err
	}

	output := AskOutput{
		Answer:      query.Answer,
		Confidence:  query.Confidence,
		SourcesUsed: query.SourcesUsed,
		ModelUsed:   query.ModelUsed,
		Sources:     make([]SourceOutput, len(query.Sources)),
	}

	for i := range query.Sources {
		src := &query.Sources[i]
		filename, _ := src.Metadata["filename"].(string)
		output.Sources[i] = SourceOutput{
			DocumentID: src.DocumentID,
			Filename:   filename,
			Content:    src.Content,
			Relevance:  src.RelevanceScore,
			ChunkIndex: src.ChunkIndex,
		}
	}

	return nil, output, nil
}

// handleUpload handles the upload tool invocation. It waits for the
// ingestion pipeline so the caller sees the final status.
func (s *Server) handleUpload(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input UploadInput,
) (*mcp.CallToolResult, UploadOutput, error) {
	contentType := input.ContentType
	if contentType == "" {
		contentType = "text/plain"
	}

	meta := domain.DocumentMetadata{Title: input.Title}
	doc, err := s.ports.Ingest.Ingest(ctx, []byte(input.Content), input.Filename, contentType, meta)
	if err != nil {
		return nil, UploadOutput{}, err
	}

	s.ports.Ingest.Wait(doc.ID)

	if s.ports.Document != nil {
		final, err := s.ports.Document.Get(ctx, doc.ID)
		if err != nil {
			return nil, UploadOutput{}, err
		}
		if final.Status == domain.StatusFailed {
			return nil, UploadOutput{}, errors.New(final.Error)
		}
		return nil, UploadOutput{
			DocumentID: final.ID,
			Status:     string(final.Status),
			ChunkCount: final.ChunkCount,
		}, nil
	}

	return nil, UploadOutput{
		DocumentID: doc.ID,
		Status:     string(doc.Status),
	}, nil
}
