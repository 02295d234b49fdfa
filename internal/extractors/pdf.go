package extractors

import (
	"context"
	"fmt"
	"strings"

	"github.com/gen2brain/go-fitz"

	"github.com/askdoc-labs/askdoc-cli/internal/core/ports/driven"
)

// Ensure PDF implements the interface.
var _ driven.Extractor = (*PDF)(nil)

// PDF extracts text from PDF documents using MuPDF via go-fitz.
type PDF struct{}

// NewPDF creates a new PDF extractor.
func NewPDF() *PDF {
	return &PDF{}
}

// SupportedMIMETypes returns the MIME types this extractor handles.
func (p *PDF) SupportedMIMETypes() []string {
	return []string{"application/pdf"}
}

// Extract returns the concatenated text of all pages. Pages that fail
// to render are skipped; a document where every page fails is an error.
func (p *PDF) Extract(ctx context.Context, content []byte) (string, error) {
	doc, err := fitz.NewFromMemory(content)
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}
	defer doc.Close()

	var pages []string
	for i := 0; i < doc.NumPage(); i++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		text, err := doc.Text(i)
		if err != nil {
			continue
		}
		if strings.TrimSpace(text) != "" {
			pages = append(pages, text)
		}
	}

	if len(pages) == 0 && doc.NumPage() > 0 {
		return "", fmt.Errorf("pdf: no extractable text in %d pages", doc.NumPage())
	}

	return strings.Join(pages, "\n"), nil
}
