package domain

// ScrapeResult is the outcome of scraping one URL.
// It is either a ScrapeSuccess or a ScrapeFailure; scraper adapters
// normalise every provider response into one of the two.
type ScrapeResult interface {
	scrapeResult()
}

// ScrapeSuccess carries the main content of a page.
type ScrapeSuccess struct {
	Markdown string
	Title    string
	// ExtractedData is optional structured output from the provider.
	ExtractedData map[string]any
}

// ScrapeFailure records why a page could not be scraped.
type ScrapeFailure struct {
	Reason string
}

func (ScrapeSuccess) scrapeResult() {}
func (ScrapeFailure) scrapeResult() {}

// Error implements error so failures can be logged and wrapped directly.
func (f ScrapeFailure) Error() string {
	return "scrape failed: " + f.Reason
}
