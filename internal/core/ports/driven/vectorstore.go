package driven

import (
	"context"

	"github.com/22Ujjwal/Multimodal-Agent/internal/core/domain"
)

// VectorStore is a hosted vector database holding one index.
// Similarity search itself is delegated entirely to the store.
type VectorStore interface {
	// EnsureIndex creates the index if it does not exist.
	// Calling it for an existing index is a no-op.
	EnsureIndex(ctx context.Context, spec domain.IndexSpec) error

	// Upsert inserts or overwrites records by ID.
	Upsert(ctx context.Context, records []domain.VectorRecord) error

	// Query returns up to topK matches ordered by descending similarity.
	Query(ctx context.Context, vector []float32, topK int, includeMetadata bool) ([]domain.VectorMatch, error)

	// Stats returns the index summary.
	Stats(ctx context.Context) (domain.IndexStats, error)

	// Close releases resources.
	Close() error
}
