// Package postprocessors turns document text into the chunks that get embedded.
package postprocessors

import (
	"context"
	"fmt"

	"github.com/22Ujjwal/Multimodal-Agent/internal/core/domain"
	"github.com/22Ujjwal/Multimodal-Agent/internal/core/ports/driven"
)

var _ driven.PostProcessorPipeline = (*Pipeline)(nil)

// Pipeline runs processors in order. The first one creates chunks from the
// document; later ones filter or rewrite them.
type Pipeline struct {
	processors []driven.PostProcessor
}

// NewPipeline creates a pipeline of processors.
func NewPipeline(processors ...driven.PostProcessor) *Pipeline {
	return &Pipeline{processors: processors}
}

// Process chunks doc. An empty pipeline returns no chunks.
func (p *Pipeline) Process(ctx context.Context, doc *domain.Document) ([]domain.Chunk, error) {
	if doc == nil {
		return nil, fmt.Errorf("%w: nil document", domain.ErrInvalidInput)
	}

	var chunks []domain.Chunk
	for _, proc := range p.processors {
		out, err := proc.Process(ctx, doc, chunks)
		if err != nil {
			return nil, fmt.Errorf("processor %s on %s: %w", proc.Name(), doc.URL, err)
		}
		chunks = out
	}
	return chunks, nil
}

// Names returns the processor names in execution order.
func (p *Pipeline) Names() []string {
	names := make([]string, len(p.processors))
	for i, proc := range p.processors {
		names[i] = proc.Name()
	}
	return names
}
