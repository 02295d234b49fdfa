package mcp

import (
	"github.com/askdoc-labs/askdoc-cli/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Answer answers questions against the indexed documents.
	Answer driving.AnswerService

	// Document manages uploaded documents.
	Document driving.DocumentService

	// Ingest uploads and indexes new documents.
	Ingest driving.IngestService
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Answer == nil {
		return ErrMissingAnswerService
	}
	// Document and Ingest are optional; the corresponding resources and
	// tools degrade gracefully without them.
	return nil
}
