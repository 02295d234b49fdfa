package driven

import "context"

// Extractor converts raw uploaded bytes of one content type into plain
// text ready for chunking.
type Extractor interface {
	// SupportedMIMETypes returns the MIME types this extractor handles.
	SupportedMIMETypes() []string

	// Extract returns the plain text content of the raw bytes.
	Extract(ctx context.Context, content []byte) (string, error)
}

// ExtractorRegistry selects an extractor by content type.
type ExtractorRegistry interface {
	// Supports reports whether any registered extractor handles the
	// content type.
	Supports(contentType string) bool

	// Extract dispatches to the extractor for the content type.
	// Unknown types return domain.ErrUnsupportedType.
	Extract(ctx context.Context, content []byte, contentType string) (string, error)
}
