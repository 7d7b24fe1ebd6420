package domain

import (
	"strings"
	"time"
)

// Document represents a single web page's worth of text.
// Documents are produced by the collector and never mutated afterwards.
type Document struct {
	// URL is the page location and the document's unique key.
	URL string

	// Title is the human-readable page title.
	Title string

	// Content is the page text as markdown or plain text.
	Content string

	// ScrapedAt is when the content was fetched.
	ScrapedAt time.Time

	// WordCount is the number of whitespace-separated words in Content.
	WordCount int

	// ExtractedData holds optional structured data returned by the scraper.
	// It is appended to Content before chunking.
	ExtractedData map[string]any
}

// Chunk is a bounded slice of a document's text.
// Chunks are transient: they live only between chunking and embedding.
type Chunk struct {
	// SourceURL is the URL of the document the chunk came from.
	SourceURL string

	// Index is the chunk's position in the chunker's output for its document.
	Index int

	// Text is the trimmed chunk content.
	Text string
}

// CountWords returns the number of whitespace-separated words in s.
func CountWords(s string) int {
	return len(strings.Fields(s))
}
