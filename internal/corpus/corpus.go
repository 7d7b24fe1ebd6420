// Package corpus provides the static fallback documents substituted when
// live scraping fails.
package corpus

import (
	_ "embed"
	"fmt"
	"sync"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/22Ujjwal/Multimodal-Agent/internal/core/domain"
	"github.com/22Ujjwal/Multimodal-Agent/internal/core/ports/driven"
)

//go:embed corpus.toml
var defaultData []byte

const timestampLayout = "2006-01-02T15:04:05"

type file struct {
	Documents []entry `toml:"document"`
}

type entry struct {
	URL       string `toml:"url"`
	Title     string `toml:"title"`
	Content   string `toml:"content"`
	ScrapedAt string `toml:"scraped_at"`
	WordCount int    `toml:"word_count"`
}

var _ driven.FallbackCorpus = (*Corpus)(nil)

// Corpus is an ordered, URL-indexed set of fallback documents.
type Corpus struct {
	docs  []domain.Document
	byURL map[string]int
}

var (
	defaultOnce   sync.Once
	defaultCorpus *Corpus
)

// Default returns the built-in fallback corpus.
// It panics if the embedded data is malformed.
func Default() *Corpus {
	defaultOnce.Do(func() {
		c, err := Parse(defaultData)
		if err != nil {
			panic(fmt.Sprintf("corpus: embedded data: %v", err))
		}
		defaultCorpus = c
	})
	return defaultCorpus
}

// Parse decodes a TOML corpus with [[document]] tables.
// Duplicate URLs are rejected.
func Parse(data []byte) (*Corpus, error) {
	var f file
	if err := toml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("decode corpus: %w", err)
	}

	c := &Corpus{
		docs:  make([]domain.Document, 0, len(f.Documents)),
		byURL: make(map[string]int, len(f.Documents)),
	}

	for i, e := range f.Documents {
		if e.URL == "" {
			return nil, fmt.Errorf("document %d: %w: url is empty", i, domain.ErrInvalidInput)
		}
		if _, dup := c.byURL[e.URL]; dup {
			return nil, fmt.Errorf("document %d: %w: duplicate url %s", i, domain.ErrInvalidInput, e.URL)
		}

		var scrapedAt time.Time
		if e.ScrapedAt != "" {
			t, err := time.Parse(timestampLayout, e.ScrapedAt)
			if err != nil {
				return nil, fmt.Errorf("document %d: parse scraped_at: %w", i, err)
			}
			scrapedAt = t
		}

		wc := e.WordCount
		if wc == 0 {
			wc = domain.CountWords(e.Content)
		}

		c.byURL[e.URL] = len(c.docs)
		c.docs = append(c.docs, domain.Document{
			URL:       e.URL,
			Title:     e.Title,
			Content:   e.Content,
			ScrapedAt: scrapedAt,
			WordCount: wc,
		})
	}

	return c, nil
}

// Documents returns a copy of every document in corpus order.
func (c *Corpus) Documents() []domain.Document {
	out := make([]domain.Document, len(c.docs))
	copy(out, c.docs)
	return out
}

// Lookup returns the document with exactly the given URL.
func (c *Corpus) Lookup(url string) (domain.Document, bool) {
	i, ok := c.byURL[url]
	if !ok {
		return domain.Document{}, false
	}
	return c.docs[i], true
}

// Len returns the number of documents.
func (c *Corpus) Len() int {
	return len(c.docs)
}
