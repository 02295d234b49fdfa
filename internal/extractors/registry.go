// Package extractors converts uploaded bytes into plain text by content
// type. The registry is consulted before any store mutation, so an
// unsupported type never leaves a document record behind.
package extractors

import (
	"context"
	"fmt"
	"sync"

	"github.com/askdoc-labs/askdoc-cli/internal/core/domain"
	"github.com/askdoc-labs/askdoc-cli/internal/core/ports/driven"
)

// Ensure Registry implements the interface.
var _ driven.ExtractorRegistry = (*Registry)(nil)

// Registry selects an extractor by MIME type.
type Registry struct {
	mu         sync.RWMutex
	extractors map[string]driven.Extractor
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{extractors: make(map[string]driven.Extractor)}
}

// NewDefaultRegistry creates a registry with all built-in extractors.
func NewDefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(NewPlaintext())
	r.Register(NewPDF())
	return r
}

// Register adds an extractor for each of its supported MIME types.
// Later registrations win on conflict.
func (r *Registry) Register(e driven.Extractor) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, mime := range e.SupportedMIMETypes() {
		r.extractors[mime] = e
	}
}

// Supports reports whether any registered extractor handles the content type.
func (r *Registry) Supports(contentType string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.extractors[contentType]
	return ok
}

// SupportedTypes returns all registered MIME types.
func (r *Registry) SupportedTypes() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	types := make([]string, 0, len(r.extractors))
	for mime := range r.extractors {
		types = append(types, mime)
	}
	return types
}

// Extract dispatches to the extractor for the content type.
func (r *Registry) Extract(ctx context.Context, content []byte, contentType string) (string, error) {
	r.mu.RLock()
	e, ok := r.extractors[contentType]
	r.mu.RUnlock()
	if !ok {
		return "", fmt.Errorf("%w: %s", domain.ErrUnsupportedType, contentType)
	}
	return e.Extract(ctx, content)
}
