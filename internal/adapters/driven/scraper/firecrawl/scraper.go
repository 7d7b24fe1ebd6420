// Package firecrawl provides a scraper adapter for the Firecrawl scrape API.
package firecrawl

import (
	"context"
	"fmt"
	"time"

	"github.com/mendableai/firecrawl-go"

	"github.com/22Ujjwal/Multimodal-Agent/internal/core/domain"
	"github.com/22Ujjwal/Multimodal-Agent/internal/core/ports/driven"
)

// Ensure Scraper implements the interface.
var _ driven.Scraper = (*Scraper)(nil)

// Default configuration values.
const (
	DefaultBaseURL = "https://api.firecrawl.dev"
	DefaultTimeout = 60 * time.Second
)

// Config holds configuration for the Firecrawl scraper.
type Config struct {
	// APIKey is the Firecrawl API key (required).
	APIKey string

	// BaseURL is the API base URL (default: https://api.firecrawl.dev).
	BaseURL string

	// Timeout is the per-page timeout (default: 60s).
	Timeout time.Duration
}

// Scraper fetches pages through Firecrawl as markdown.
type Scraper struct {
	app     *firecrawl.FirecrawlApp
	timeout time.Duration
}

// NewScraper creates a Firecrawl scraper.
func NewScraper(cfg Config) (*Scraper, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("%w: Firecrawl API key", domain.ErrMissingCredentials)
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}

	app, err := firecrawl.NewFirecrawlApp(cfg.APIKey, cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("creating Firecrawl client: %w", err)
	}

	return &Scraper{app: app, timeout: cfg.Timeout}, nil
}

// Name returns the provider name.
func (s *Scraper) Name() string {
	return string(domain.ScraperFirecrawl)
}

type scrapeOutcome struct {
	doc *firecrawl.FirecrawlDocument
	err error
}

// Scrape fetches the main content of url as markdown.
func (s *Scraper) Scrape(ctx context.Context, url string) domain.ScrapeResult {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	if err := ctx.Err(); err != nil {
		return failure("scrape cancelled: %v", err)
	}

	onlyMain := true
	params := &firecrawl.ScrapeParams{
		Formats:         []string{"markdown"},
		OnlyMainContent: &onlyMain,
	}

	// The SDK call takes no context; the buffered channel lets it finish
	// after an abandoned wait.
	done := make(chan scrapeOutcome, 1)
	go func() {
		doc, err := s.app.ScrapeURL(url, params)
		done <- scrapeOutcome{doc: doc, err: err}
	}()

	var out scrapeOutcome
	select {
	case <-ctx.Done():
		return failure("scrape cancelled: %v", ctx.Err())
	case out = <-done:
	}

	if out.err != nil {
		return failure("firecrawl: %v", out.err)
	}
	if out.doc == nil {
		return failure("firecrawl: empty response")
	}

	var title string
	if out.doc.Metadata != nil && out.doc.Metadata.Title != nil {
		title = *out.doc.Metadata.Title
	}

	return domain.ScrapeSuccess{
		Markdown:      out.doc.Markdown,
		Title:         title,
		ExtractedData: out.doc.Extract,
	}
}

func failure(format string, args ...any) domain.ScrapeFailure {
	return domain.ScrapeFailure{Reason: fmt.Sprintf(format, args...)}
}
