package driven

import (
	"context"

	"github.com/22Ujjwal/Multimodal-Agent/internal/core/domain"
)

// PostProcessor is one step that turns a scraped page into index chunks.
// The first step in a chain receives nil chunks and splits the document;
// later steps filter or rewrite what they are given.
type PostProcessor interface {
	Name() string
	Process(ctx context.Context, doc *domain.Document, chunks []domain.Chunk) ([]domain.Chunk, error)
}

// PostProcessorPipeline runs a document through an ordered chain of
// PostProcessors and returns the chunks left at the end.
type PostProcessorPipeline interface {
	Process(ctx context.Context, doc *domain.Document) ([]domain.Chunk, error)
}
