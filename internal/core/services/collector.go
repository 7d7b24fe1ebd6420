package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/22Ujjwal/Multimodal-Agent/internal/core/domain"
	"github.com/22Ujjwal/Multimodal-Agent/internal/core/ports/driving"
)

var _ driving.Collector = (*Collector)(nil)

// Collector scrapes the configured target pages with fallback substitution.
type Collector struct {
	p         *Pipeline
	scheduler *Scheduler
}

// NewCollector creates a collector whose fetches are spaced by the
// configured scraper delay.
func NewCollector(p *Pipeline) *Collector {
	return &Collector{
		p:         p,
		scheduler: NewScheduler(p.Settings.Scraper.Delay),
	}
}

// Collect scrapes each target URL in order.
//
// A page that fails or comes back empty is replaced by the fallback
// document with the same URL, or omitted if there is none. When no target
// yields a document at all, the entire fallback corpus is returned instead.
func (c *Collector) Collect(ctx context.Context) (domain.Collection, error) {
	if c.p.Scraper == nil {
		return domain.Collection{}, errors.New("collector: scraper is not configured")
	}

	targets := c.p.Settings.Scraper.Targets
	log := c.p.Log.With("stage", "collect")
	log.Info("Scraping %d URLs with %s (delay %s)", len(targets), c.p.Scraper.Name(), c.scheduler.Delay())

	out := domain.Collection{
		Documents:    make([]domain.Document, 0, len(targets)),
		FromFallback: make(map[string]bool),
	}
	scraped := 0

	err := c.scheduler.Run(ctx, len(targets), func(ctx context.Context, i int) {
		url := targets[i]

		doc, err := c.ScrapeOne(ctx, url)
		if err == nil {
			scraped++
			out.Documents = append(out.Documents, doc)
			log.Info("Scraped %s - %d words", url, doc.WordCount)
			return
		}
		log.Warn("Failed to scrape %s: %v", url, err)

		if c.p.Fallback == nil {
			return
		}
		if fb, ok := c.p.Fallback.Lookup(url); ok {
			out.Documents = append(out.Documents, fb)
			out.FromFallback[url] = true
			log.Info("Using fallback data for %s", url)
		}
	})
	if err != nil {
		return domain.Collection{}, fmt.Errorf("collect: %w", err)
	}

	if len(out.Documents) == 0 {
		log.Warn("No URLs scraped successfully, using all fallback data")
		var all []domain.Document
		if c.p.Fallback != nil {
			all = c.p.Fallback.Documents()
		}
		if len(all) == 0 {
			return domain.Collection{}, domain.ErrNoDocuments
		}
		return domain.Collection{
			Documents:    all,
			FromFallback: map[string]bool{},
			FullFallback: true,
		}, nil
	}

	log.Info("Successfully scraped %d out of %d URLs (%d from fallback)",
		scraped, len(targets), len(out.FromFallback))
	return out, nil
}

// ScrapeOne scrapes a single URL without fallback substitution.
// Empty content is reported as a failure.
func (c *Collector) ScrapeOne(ctx context.Context, url string) (domain.Document, error) {
	if c.p.Scraper == nil {
		return domain.Document{}, errors.New("collector: scraper is not configured")
	}

	switch r := c.p.Scraper.Scrape(ctx, url).(type) {
	case domain.ScrapeSuccess:
		if strings.TrimSpace(r.Markdown) == "" {
			return domain.Document{}, domain.ScrapeFailure{Reason: "empty content"}
		}
		return domain.Document{
			URL:           url,
			Title:         r.Title,
			Content:       r.Markdown,
			ScrapedAt:     c.p.Now(),
			WordCount:     domain.CountWords(r.Markdown),
			ExtractedData: r.ExtractedData,
		}, nil
	case domain.ScrapeFailure:
		return domain.Document{}, r
	default:
		return domain.Document{}, domain.ScrapeFailure{Reason: fmt.Sprintf("unexpected result %T", r)}
	}
}
