package driving

import (
	"context"

	"github.com/22Ujjwal/Multimodal-Agent/internal/core/domain"
)

// KnowledgeBase orchestrates whole-pipeline operations.
type KnowledgeBase interface {
	// Setup ensures the index, collects documents, indexes them and runs
	// the smoke queries. The run is recorded when a RunStore is configured.
	Setup(ctx context.Context) (*domain.SetupReport, error)

	// SelfTest checks the embedding service, the vector store and a sample query.
	// Failed checks are reported in the results, not as an error.
	SelfTest(ctx context.Context) []domain.CheckResult

	// Stats returns the vector index summary.
	Stats(ctx context.Context) (domain.IndexStats, error)

	// History returns up to limit recorded runs, newest first.
	History(ctx context.Context, limit int) ([]domain.IndexRun, error)
}
