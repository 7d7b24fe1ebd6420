package driving

import (
	"context"

	"github.com/22Ujjwal/Multimodal-Agent/internal/core/domain"
)

// QueryService answers natural-language queries against the vector index.
type QueryService interface {
	// Query embeds text and returns up to topK matches.
	// Failures degrade to an empty result; a non-nil error is only
	// returned for invalid input.
	Query(ctx context.Context, text string, topK int) ([]domain.QueryResult, error)
}
