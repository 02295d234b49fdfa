package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	// uriScheme is the custom URI scheme for Askdoc resources.
	uriScheme = "askdoc://"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	// Static resource for listing documents.
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "documents",
		Name:        "documents",
		Description: "List of all uploaded documents",
		MIMEType:    "application/json",
	}, s.handleDocumentsResource)

	// Template for a single document's details.
	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "documents/{documentId}",
		Name:        "document-details",
		Description: "Details and metadata of a specific document",
		MIMEType:    "application/json",
	}, s.handleDocumentDetailsResource)
}

// handleDocumentsResource returns a list of all uploaded documents.
func (s *Server) handleDocumentsResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Document == nil {
		return &mcp.ReadResourceResult{
			Contents: []*mcp.ResourceContents{{
				URI:      req.Params.URI,
				MIMEType: "application/json",
				Text:     "[]",
			}},
		}, nil
	}

	docs, err := s.ports.Document.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing documents: %w", err)
	}

	// Build simplified document list.
	type docInfo struct {
		ID         string `json:"id"`
		Filename   string `json:"filename"`
		Status     string `json:"status"`
		ChunkCount int    `json:"chunk_count"`
		UploadedAt string `json:"uploaded_at"`
	}

	infos := make([]docInfo, len(docs))
	for i := range docs {
		infos[i] = docInfo{
			ID:         docs[i].ID,
			Filename:   docs[i].Filename,
			Status:     string(docs[i].Status),
			ChunkCount: docs[i].ChunkCount,
			UploadedAt: docs[i].UploadedAt.Format("2006-01-02T15:04:05Z07:00"),
		}
	}

	data, err := json.MarshalIndent(infos, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling documents: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// handleDocumentDetailsResource returns details for a specific document.
func (s *Server) handleDocumentDetailsResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Document == nil {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	// Extract documentId from URI: askdoc://documents/{documentId}
	documentID := extractDocumentID(req.Params.URI)
	if documentID == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	details, err := s.ports.Document.GetDetails(ctx, documentID)
	if err != nil {
		return nil, fmt.Errorf("getting document details: %w", err)
	}

	out := map[string]any{
		"id":           details.ID,
		"filename":     details.Filename,
		"content_type": details.ContentType,
		"status":       string(details.Status),
		"chunk_count":  details.ChunkCount,
		"file_size":    details.FileSize,
		"metadata":     details.Metadata,
	}
	if details.Error != "" {
		out["error"] = details.Error
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling details: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// extractDocumentID pulls the document ID out of an
// askdoc://documents/{documentId} URI.
func extractDocumentID(uri string) string {
	rest, ok := strings.CutPrefix(uri, uriScheme+"documents/")
	if !ok || rest == "" || strings.Contains(rest, "/") {
		return ""
	}
	return rest
}
