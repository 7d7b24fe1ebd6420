package driving

import (
	"context"

	"github.com/22Ujjwal/Multimodal-Agent/internal/core/domain"
)

// RunHistory reads recorded index runs without touching any remote service.
type RunHistory interface {
	// List returns up to limit runs, newest first.
	List(ctx context.Context, limit int) ([]domain.IndexRun, error)

	// Get returns a run and the documents it collected.
	// Returns domain.ErrNotFound if the run does not exist.
	Get(ctx context.Context, id string) (*domain.IndexRun, []domain.CollectedDocument, error)
}
