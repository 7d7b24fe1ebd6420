package driven

import "github.com/22Ujjwal/Multimodal-Agent/internal/core/domain"

// FallbackCorpus is a static set of documents substituted for pages that
// cannot be scraped.
type FallbackCorpus interface {
	// Documents returns every document in corpus order.
	Documents() []domain.Document

	// Lookup returns the document with exactly the given URL.
	Lookup(url string) (domain.Document, bool)
}
