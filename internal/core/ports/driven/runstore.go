package driven

import (
	"context"

	"github.com/22Ujjwal/Multimodal-Agent/internal/core/domain"
)

// RunStore persists the history of index runs.
type RunStore interface {
	// SaveRun stores or updates a run.
	SaveRun(ctx context.Context, run domain.IndexRun) error

	// GetRun retrieves a run by ID.
	// Returns domain.ErrNotFound if it does not exist.
	GetRun(ctx context.Context, id string) (*domain.IndexRun, error)

	// ListRuns returns up to limit runs, newest first.
	ListRuns(ctx context.Context, limit int) ([]domain.IndexRun, error)

	// SaveDocuments records the documents collected by a run.
	SaveDocuments(ctx context.Context, docs []domain.CollectedDocument) error

	// ListDocuments returns the documents recorded for a run.
	ListDocuments(ctx context.Context, runID string) ([]domain.CollectedDocument, error)
}
