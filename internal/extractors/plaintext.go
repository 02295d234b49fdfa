package extractors

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/askdoc-labs/askdoc-cli/internal/core/ports/driven"
)

// Ensure Plaintext implements the interface.
var _ driven.Extractor = (*Plaintext)(nil)

// Plaintext handles text-based content types. The bytes are taken as
// UTF-8; invalid sequences are replaced rather than rejected.
type Plaintext struct{}

// NewPlaintext creates a new plain text extractor.
func NewPlaintext() *Plaintext {
	return &Plaintext{}
}

// SupportedMIMETypes returns the MIME types this extractor handles.
func (p *Plaintext) SupportedMIMETypes() []string {
	return []string{
		"text/plain",
		"text/csv",
		"text/markdown",
	}
}

// Extract returns the content as text, normalising line endings.
func (p *Plaintext) Extract(_ context.Context, content []byte) (string, error) {
	text := string(content)
	if !utf8.ValidString(text) {
		text = strings.ToValidUTF8(text, "�")
	}
	return strings.ReplaceAll(text, "\r\n", "\n"), nil
}
