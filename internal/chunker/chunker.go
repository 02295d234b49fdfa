// Package chunker splits document text into overlapping fixed-size chunks.
package chunker

import (
	"unicode"
	"unicode/utf8"

	"github.com/askdoc-labs/askdoc-cli/internal/core/domain"
)

// DefaultChunkSize is the default number of characters per chunk.
const DefaultChunkSize = 1000

// DefaultChunkOverlap is the default number of overlapping characters.
const DefaultChunkOverlap = 200

// Chunker splits document content into fixed-size chunks with overlap.
// Chunk starts advance by a fixed stride of size-overlap; within a
// lookahead window bounded by the overlap, each chunk's end prefers a
// clean split at whitespace over a hard cut. The fixed stride guarantees
// every input character lands in at least one chunk.
type Chunker struct {
	chunkSize int
	overlap   int
}

// Option configures the chunker.
type Option func(*Chunker)

// WithChunkSize sets the chunk size in characters.
func WithChunkSize(size int) Option {
	return func(c *Chunker) {
		if size > 0 {
			c.chunkSize = size
		}
	}
}

// WithOverlap sets the overlap between chunks in characters.
func WithOverlap(overlap int) Option {
	return func(c *Chunker) {
		if overlap >= 0 {
			c.overlap = overlap
		}
	}
}

// New creates a new chunker with the given options.
func New(opts ...Option) *Chunker {
	c := &Chunker{
		chunkSize: DefaultChunkSize,
		overlap:   DefaultChunkOverlap,
	}

	for _, opt := range opts {
		opt(c)
	}

	// Ensure overlap stays strictly below chunk size
	if c.overlap >= c.chunkSize {
		c.overlap = c.chunkSize / 4
	}

	return c
}

// ChunkSize returns the configured chunk size.
func (c *Chunker) ChunkSize() int { return c.chunkSize }

// Overlap returns the configured overlap.
func (c *Chunker) Overlap() int { return c.overlap }

// Split chunks the text of a document. Empty text produces no chunks;
// callers treat that as "no content to index" rather than an error.
// Chunk IDs are deterministic from the document ID and sequence index.
func (c *Chunker) Split(documentID, filename, text string, meta domain.DocumentMetadata) []domain.Chunk {
	if text == "" {
		return nil
	}

	contentLen := len(text)
	stride := c.chunkSize - c.overlap

	estimated := (contentLen / stride) + 1
	chunks := make([]domain.Chunk, 0, estimated)

	position := 0
	for start := 0; start < contentLen; start += stride {
		end := start + c.chunkSize
		if end > contentLen {
			end = contentLen
		} else if end < contentLen {
			// Prefer a whitespace boundary within the lookahead window.
			// The window never exceeds the overlap, so the shortened
			// tail is still covered by the next chunk.
			end = cleanSplit(text, start, end, c.overlap)
		}

		// Byte offsets can land inside a multibyte rune; back both
		// bounds off so chunk content is always valid UTF-8. Both back
		// off monotonically, so coverage of every byte is preserved.
		from := runeStart(text, start)
		if end < contentLen {
			end = runeStart(text, end)
		}
		if end <= from {
			// Chunk size smaller than one rune; take the whole rune.
			_, width := utf8.DecodeRuneInString(text[from:])
			end = from + width
		}

		chunks = append(chunks, domain.Chunk{
			ID:         domain.ChunkID(documentID, position),
			DocumentID: documentID,
			Content:    text[from:end],
			Position:   position,
			Metadata:   chunkMetadata(filename, position, meta),
		})
		position++
	}

	return chunks
}

// cleanSplit walks backwards from end looking for whitespace within the
// window. It returns end unchanged when no boundary exists. Only rune
// starts are inspected so a continuation byte never passes for a space.
func cleanSplit(text string, start, end, window int) int {
	lo := end - window
	if lo <= start {
		lo = start + 1
	}
	for i := end - 1; i >= lo; i-- {
		if !utf8.RuneStart(text[i]) {
			continue
		}
		r, width := utf8.DecodeRuneInString(text[i:])
		if i+width <= end && unicode.IsSpace(r) {
			return i + width
		}
	}
	return end
}

// runeStart backs i off to the nearest rune boundary at or before it.
func runeStart(text string, i int) int {
	for i > 0 && !utf8.RuneStart(text[i]) {
		i--
	}
	return i
}

// chunkMetadata builds the chunk-local metadata copy so search results
// can be rendered without re-querying the document store.
func chunkMetadata(filename string, position int, meta domain.DocumentMetadata) map[string]any {
	docMeta := map[string]any{
		"title":       meta.Title,
		"author":      meta.Author,
		"category":    meta.Category,
		"description": meta.Description,
	}
	if len(meta.Tags) > 0 {
		tags := make([]any, len(meta.Tags))
		for i, tag := range meta.Tags {
			tags[i] = tag
		}
		docMeta["tags"] = tags
	}

	return map[string]any{
		"filename":          filename,
		"chunk_index":       position,
		"document_metadata": docMeta,
	}
}
