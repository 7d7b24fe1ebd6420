package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/22Ujjwal/Multimodal-Agent/internal/core/domain"
)

const (
	urlA = "https://www.aven.com/"
	urlB = "https://www.aven.com/support"
	urlC = "https://www.aven.com/about"
	urlZ = "https://www.aven.com/unlisted"
)

func scraped(markdown, title string) domain.ScrapeSuccess {
	return domain.ScrapeSuccess{Markdown: markdown, Title: title}
}

func fallbackDoc(url, title string) domain.Document {
	return domain.Document{URL: url, Title: title, Content: "Fallback content for " + title, WordCount: 4}
}

func TestCollector_Collect_AllSucceed(t *testing.T) {
	s := testSettings()
	s.Scraper.Targets = []string{urlA, urlB}
	tp := newTestPipeline(t, s)
	tp.scraper.results[urlA] = scraped("Aven card home page", "Home")
	tp.scraper.results[urlB] = scraped("Support answers here", "Support")

	coll, err := NewCollector(tp.Pipeline).Collect(context.Background())

	require.NoError(t, err)
	require.Len(t, coll.Documents, 2)
	assert.Equal(t, urlA, coll.Documents[0].URL)
	assert.Equal(t, "Home", coll.Documents[0].Title)
	assert.Equal(t, 4, coll.Documents[0].WordCount)
	assert.Equal(t, testNow, coll.Documents[0].ScrapedAt)
	assert.Equal(t, urlB, coll.Documents[1].URL)
	assert.False(t, coll.FullFallback)
	assert.Zero(t, coll.FallbackCount())
	assert.Equal(t, []string{urlA, urlB}, tp.scraper.calls)
}

func TestCollector_Collect_PerURLFallback(t *testing.T) {
	s := testSettings()
	s.Scraper.Targets = []string{urlA, urlB, urlC}
	tp := newTestPipeline(t, s)
	tp.scraper.results[urlA] = domain.ScrapeFailure{Reason: "timeout"}
	tp.scraper.results[urlB] = scraped("Live support page", "Support")
	// urlC fails and has no fallback entry
	tp.fallback.docs = []domain.Document{fallbackDoc(urlA, "Home (cached)")}

	coll, err := NewCollector(tp.Pipeline).Collect(context.Background())

	require.NoError(t, err)
	require.Len(t, coll.Documents, 2)
	assert.Equal(t, "Home (cached)", coll.Documents[0].Title)
	assert.Equal(t, "Support", coll.Documents[1].Title)
	assert.True(t, coll.FromFallback[urlA])
	assert.False(t, coll.FromFallback[urlB])
	assert.False(t, coll.FullFallback)
	assert.Equal(t, 1, coll.FallbackCount())
}

func TestCollector_Collect_AllFailUsesMatchingSubset(t *testing.T) {
	s := testSettings()
	s.Scraper.Targets = []string{urlC, urlA, urlB}
	tp := newTestPipeline(t, s)
	tp.fallback.docs = []domain.Document{
		fallbackDoc(urlA, "A"),
		fallbackDoc(urlZ, "Z"),
		fallbackDoc(urlC, "C"),
	}

	coll, err := NewCollector(tp.Pipeline).Collect(context.Background())

	require.NoError(t, err)
	// Target order, only entries matching a target
	require.Len(t, coll.Documents, 2)
	assert.Equal(t, urlC, coll.Documents[0].URL)
	assert.Equal(t, urlA, coll.Documents[1].URL)
	assert.False(t, coll.FullFallback)
}

func TestCollector_Collect_NothingUsableUsesWholeCorpus(t *testing.T) {
	s := testSettings()
	s.Scraper.Targets = []string{urlA, urlB}
	tp := newTestPipeline(t, s)
	tp.fallback.docs = []domain.Document{fallbackDoc(urlZ, "Z"), fallbackDoc(urlC, "C")}

	coll, err := NewCollector(tp.Pipeline).Collect(context.Background())

	require.NoError(t, err)
	require.Len(t, coll.Documents, 2)
	assert.Equal(t, urlZ, coll.Documents[0].URL)
	assert.Equal(t, urlC, coll.Documents[1].URL)
	assert.True(t, coll.FullFallback)
	assert.Equal(t, 2, coll.FallbackCount())
}

func TestCollector_Collect_NoDocumentsAtAll(t *testing.T) {
	s := testSettings()
	s.Scraper.Targets = []string{urlA}
	tp := newTestPipeline(t, s)

	_, err := NewCollector(tp.Pipeline).Collect(context.Background())

	assert.ErrorIs(t, err, domain.ErrNoDocuments)
}

func TestCollector_Collect_EmptyMarkdownFallsBack(t *testing.T) {
	s := testSettings()
	s.Scraper.Targets = []string{urlA}
	tp := newTestPipeline(t, s)
	tp.scraper.results[urlA] = scraped("   \n", "Blank")
	tp.fallback.docs = []domain.Document{fallbackDoc(urlA, "Cached")}

	coll, err := NewCollector(tp.Pipeline).Collect(context.Background())

	require.NoError(t, err)
	require.Len(t, coll.Documents, 1)
	assert.Equal(t, "Cached", coll.Documents[0].Title)
	assert.True(t, coll.FromFallback[urlA])
}

func TestCollector_Collect_Cancelled(t *testing.T) {
	s := testSettings()
	s.Scraper.Targets = []string{urlA, urlB}
	tp := newTestPipeline(t, s)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewCollector(tp.Pipeline).Collect(ctx)

	assert.ErrorIs(t, err, context.Canceled)
}

func TestCollector_Collect_NoScraper(t *testing.T) {
	tp := newTestPipeline(t, testSettings())
	tp.Scraper = nil

	_, err := NewCollector(tp.Pipeline).Collect(context.Background())

	assert.Error(t, err)
}

func TestCollector_ScrapeOne(t *testing.T) {
	tp := newTestPipeline(t, testSettings())
	tp.scraper.results[urlA] = domain.ScrapeSuccess{
		Markdown:      "# Aven\nHome equity card",
		Title:         "Aven",
		ExtractedData: map[string]any{"company_name": "Aven"},
	}
	tp.scraper.results[urlB] = domain.ScrapeFailure{Reason: "HTTP 403"}
	c := NewCollector(tp.Pipeline)

	doc, err := c.ScrapeOne(context.Background(), urlA)
	require.NoError(t, err)
	assert.Equal(t, "Aven", doc.Title)
	assert.Equal(t, 5, doc.WordCount)
	assert.Equal(t, "Aven", doc.ExtractedData["company_name"])

	_, err = c.ScrapeOne(context.Background(), urlB)
	var failure domain.ScrapeFailure
	require.True(t, errors.As(err, &failure))
	assert.Equal(t, "HTTP 403", failure.Reason)
}
