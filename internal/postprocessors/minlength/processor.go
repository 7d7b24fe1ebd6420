// Package minlength provides a processor that drops low-signal chunks.
package minlength

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/22Ujjwal/Multimodal-Agent/internal/core/domain"
	"github.com/22Ujjwal/Multimodal-Agent/internal/core/ports/driven"
)

// DefaultMinLength is the default minimum chunk length in characters.
const DefaultMinLength = domain.DefaultMinChunkLength

var _ driven.PostProcessor = (*Processor)(nil)

// Processor discards chunks whose trimmed text is shorter than a minimum.
// Surviving chunks keep their original indexes.
type Processor struct {
	minLength int
}

// New creates a filter with the given minimum. Negative values use the default.
func New(minLength int) *Processor {
	if minLength < 0 {
		minLength = DefaultMinLength
	}
	return &Processor{minLength: minLength}
}

// Name returns the processor name.
func (p *Processor) Name() string {
	return "min_length"
}

// Process returns the chunks that meet the minimum length.
func (p *Processor) Process(_ context.Context, _ *domain.Document, chunks []domain.Chunk) ([]domain.Chunk, error) {
	kept := chunks[:0:0]
	for _, c := range chunks {
		if utf8.RuneCountInString(strings.TrimSpace(c.Text)) < p.minLength {
			continue
		}
		kept = append(kept, c)
	}
	return kept, nil
}
