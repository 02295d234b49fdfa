// Package mcp provides an MCP (Model Context Protocol) server adapter
// for Askdoc. It lets AI assistants ask questions against the indexed
// documents and browse what has been uploaded.
package mcp

import "errors"

// ErrMissingAnswerService is returned when the answer service is not provided.
var ErrMissingAnswerService = errors.New("mcp: answer service is required")
