package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScrapeResult_Variants(t *testing.T) {
	results := []ScrapeResult{
		ScrapeSuccess{Markdown: "# Home", Title: "Home"},
		ScrapeFailure{Reason: "timeout"},
	}

	var successes, failures int
	for _, r := range results {
		switch v := r.(type) {
		case ScrapeSuccess:
			successes++
			assert.Equal(t, "Home", v.Title)
		case ScrapeFailure:
			failures++
			assert.Equal(t, "scrape failed: timeout", v.Error())
		}
	}

	assert.Equal(t, 1, successes)
	assert.Equal(t, 1, failures)
}

func TestScrape_CollectionFallbackCount(t *testing.T) {
	c := Collection{
		Documents:    []Document{{URL: "a"}, {URL: "b"}, {URL: "c"}},
		FromFallback: map[string]bool{"b": true},
	}
	assert.Equal(t, 1, c.FallbackCount())

	c.FullFallback = true
	assert.Equal(t, 3, c.FallbackCount())
}

func TestScrape_CountWords(t *testing.T) {
	assert.Equal(t, 0, CountWords(""))
	assert.Equal(t, 3, CountWords("  one two\nthree  "))
}
