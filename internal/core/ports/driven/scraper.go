package driven

import (
	"context"

	"github.com/22Ujjwal/Multimodal-Agent/internal/core/domain"
)

// Scraper fetches the main content of a single web page.
//
// Implementations never return a Go error: every provider outcome, including
// transport failures, is normalised into domain.ScrapeSuccess or
// domain.ScrapeFailure. Implementations request main content only and do not
// parse PDFs.
type Scraper interface {
	// Name returns the provider name for logging.
	Name() string

	// Scrape fetches url and returns its markdown content and title.
	Scrape(ctx context.Context, url string) domain.ScrapeResult
}
