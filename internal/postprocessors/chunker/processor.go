// Package chunker provides a sentence-aware text chunking processor.
package chunker

import (
	"context"
	"fmt"
	"strings"

	"github.com/22Ujjwal/Multimodal-Agent/internal/core/domain"
	"github.com/22Ujjwal/Multimodal-Agent/internal/core/ports/driven"
)

// DefaultChunkSize is the default number of characters per chunk.
const DefaultChunkSize = domain.DefaultChunkSize

// DefaultChunkOverlap is the default number of overlapping characters.
const DefaultChunkOverlap = domain.DefaultChunkOverlap

var _ driven.PostProcessor = (*Processor)(nil)

// Processor splits document content into overlapping chunks.
// It implements the PostProcessor interface.
type Processor struct {
	chunkSize int
	overlap   int
}

// Option configures the chunker processor.
type Option func(*Processor)

// WithChunkSize sets the chunk size in characters.
func WithChunkSize(size int) Option {
	return func(p *Processor) {
		if size > 0 {
			p.chunkSize = size
		}
	}
}

// WithOverlap sets the overlap between chunks in characters.
func WithOverlap(overlap int) Option {
	return func(p *Processor) {
		if overlap >= 0 {
			p.overlap = overlap
		}
	}
}

// New creates a new chunker processor with the given options.
func New(opts ...Option) *Processor {
	p := &Processor{
		chunkSize: DefaultChunkSize,
		overlap:   DefaultChunkOverlap,
	}

	for _, opt := range opts {
		opt(p)
	}

	// Ensure overlap doesn't exceed chunk size
	if p.overlap >= p.chunkSize {
		p.overlap = p.chunkSize / 4
	}

	return p
}

// Name returns the processor name.
func (p *Processor) Name() string {
	return "chunker"
}

// ChunkSize returns the configured chunk size.
func (p *Processor) ChunkSize() int {
	return p.chunkSize
}

// Overlap returns the configured overlap.
func (p *Processor) Overlap() int {
	return p.overlap
}

// Process splits the document content into chunks.
// Input chunks are ignored; this processor creates new chunks from document content.
// Chunk indexes are positions in the split output.
func (p *Processor) Process(_ context.Context, doc *domain.Document, _ []domain.Chunk) ([]domain.Chunk, error) {
	texts, err := Split(doc.Content, p.chunkSize, p.overlap)
	if err != nil {
		return nil, err
	}

	chunks := make([]domain.Chunk, len(texts))
	for i, text := range texts {
		chunks[i] = domain.Chunk{
			SourceURL: doc.URL,
			Index:     i,
			Text:      text,
		}
	}
	return chunks, nil
}

// Split cuts content into chunks of at most size characters, where
// consecutive chunks share up to overlap characters.
//
// Content no longer than size is returned as a single trimmed chunk, so
// empty content yields one empty chunk. Longer content is scanned in windows
// of size characters. A window that does not reach the end of the content is
// shortened to end just after its last '.' or newline, provided that break
// lies beyond the window's midpoint. Every chunk is trimmed of surrounding
// whitespace.
//
// Lengths are counted in runes. Split returns domain.ErrInvalidConfig unless
// size > 0 and 0 <= overlap < size.
func Split(content string, size, overlap int) ([]string, error) {
	if size <= 0 || overlap < 0 || overlap >= size {
		return nil, fmt.Errorf("%w: chunk size %d with overlap %d", domain.ErrInvalidConfig, size, overlap)
	}

	runes := []rune(content)
	n := len(runes)
	if n <= size {
		return []string{strings.TrimSpace(content)}, nil
	}

	chunks := make([]string, 0, n/(size-overlap)+1)
	start := 0
	for start < n {
		end := start + size
		stop := min(end, n)

		if end < n {
			if bp := lastBreak(runes[start:stop]); bp > size/2 {
				end = start + bp + 1
				stop = end
			}
		}

		chunks = append(chunks, strings.TrimSpace(string(runes[start:stop])))

		next := end - overlap
		if next <= start {
			// A sentence snap shorter than the overlap would stall the scan.
			next = end
		}
		start = next
	}

	return chunks, nil
}

// lastBreak returns the index of the last '.' or '\n' in window, or -1.
func lastBreak(window []rune) int {
	for i := len(window) - 1; i >= 0; i-- {
		if window[i] == '.' || window[i] == '\n' {
			return i
		}
	}
	return -1
}
