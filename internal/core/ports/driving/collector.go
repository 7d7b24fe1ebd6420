package driving

import (
	"context"

	"github.com/22Ujjwal/Multimodal-Agent/internal/core/domain"
)

// Collector gathers documents from the configured target pages.
type Collector interface {
	// Collect scrapes every target URL in order, substituting fallback
	// content per URL on failure and the whole fallback corpus when
	// nothing is usable.
	Collect(ctx context.Context) (domain.Collection, error)

	// ScrapeOne scrapes a single URL without fallback substitution.
	ScrapeOne(ctx context.Context, url string) (domain.Document, error)
}
