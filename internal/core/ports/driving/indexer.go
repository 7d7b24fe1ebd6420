package driving

import (
	"context"

	"github.com/22Ujjwal/Multimodal-Agent/internal/core/domain"
)

// Indexer chunks, embeds and stores documents.
type Indexer interface {
	// Index processes docs and returns the number of records attempted.
	Index(ctx context.Context, docs []domain.Document) (int, error)
}
