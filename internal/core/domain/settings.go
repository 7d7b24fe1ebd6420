package domain

import (
	"fmt"
	"time"
)

const unknownDescription = "Unknown"

// ScraperProvider identifies the service used to fetch pages.
type ScraperProvider string

// Available scraper providers.
const (
	// ScraperFirecrawl uses the hosted Firecrawl scrape API.
	ScraperFirecrawl ScraperProvider = "firecrawl"

	// ScraperDirect fetches pages over HTTP and converts HTML locally.
	ScraperDirect ScraperProvider = "direct"
)

// IsValid returns true if the scraper provider is recognised.
func (p ScraperProvider) IsValid() bool {
	return p == ScraperFirecrawl || p == ScraperDirect
}

// Description returns a human-readable description of the provider.
func (p ScraperProvider) Description() string {
	switch p {
	case ScraperFirecrawl:
		return "Firecrawl (hosted scrape API)"
	case ScraperDirect:
		return "Direct (HTTP fetch + HTML to markdown)"
	default:
		return unknownDescription
	}
}

// EmbeddingProvider identifies the embedding service.
type EmbeddingProvider string

// Available embedding providers.
const (
	EmbeddingGemini EmbeddingProvider = "gemini"
	EmbeddingOpenAI EmbeddingProvider = "openai"
	EmbeddingOllama EmbeddingProvider = "ollama"
)

// IsValid returns true if the embedding provider is recognised.
func (p EmbeddingProvider) IsValid() bool {
	switch p {
	case EmbeddingGemini, EmbeddingOpenAI, EmbeddingOllama:
		return true
	default:
		return false
	}
}

// DefaultModel returns the model used when none is configured.
func (p EmbeddingProvider) DefaultModel() string {
	switch p {
	case EmbeddingGemini:
		return "embedding-001"
	case EmbeddingOpenAI:
		return "text-embedding-3-small"
	case EmbeddingOllama:
		return "nomic-embed-text"
	default:
		return ""
	}
}

// Description returns a human-readable description of the provider.
func (p EmbeddingProvider) Description() string {
	switch p {
	case EmbeddingGemini:
		return "Google Gemini"
	case EmbeddingOpenAI:
		return "OpenAI"
	case EmbeddingOllama:
		return "Ollama (local)"
	default:
		return unknownDescription
	}
}

// VectorStoreProvider identifies the vector database.
type VectorStoreProvider string

// Available vector store providers.
const (
	VectorStorePinecone VectorStoreProvider = "pinecone"
	VectorStoreMilvus   VectorStoreProvider = "milvus"
)

// IsValid returns true if the vector store provider is recognised.
func (p VectorStoreProvider) IsValid() bool {
	return p == VectorStorePinecone || p == VectorStoreMilvus
}

// Default pipeline values.
const (
	DefaultChunkSize      = 1000
	DefaultChunkOverlap   = 200
	DefaultMinChunkLength = 50
	DefaultPreviewLength  = 1000
	DefaultBatchSize      = 100
	DefaultScrapeDelay    = 2 * time.Second
	DefaultTopK           = 5
	DefaultDimension      = 768
	DefaultIndexName      = "customer-support-kb"
	DefaultRegion         = "us-west1-gcp"
	DefaultCloud          = "gcp"
	DefaultSourceTag      = "aven_website"
	DefaultConcurrency    = 1
)

// DefaultTargetURLs are the pages scraped when no targets are configured.
var DefaultTargetURLs = []string{
	"https://www.aven.com/",
	"https://www.aven.com/education",
	"https://www.aven.com/reviews",
	"https://www.aven.com/support",
	"https://www.aven.com/app",
	"https://www.aven.com/about",
	"https://www.aven.com/contact",
}

// ScraperSettings configures the collector.
type ScraperSettings struct {
	Provider ScraperProvider
	// Delay is the politeness interval between consecutive fetches.
	Delay   time.Duration
	Targets []string
}

// EmbeddingSettings configures the embedding service.
type EmbeddingSettings struct {
	Provider   EmbeddingProvider
	Model      string
	Dimensions int
	// Concurrency bounds parallel embedding calls during indexing.
	// A value of 1 keeps indexing strictly sequential.
	Concurrency int
}

// VectorStoreSettings configures the vector database.
type VectorStoreSettings struct {
	Provider VectorStoreProvider
	Index    string
	Metric   Metric
	Cloud    string
	Region   string
}

// ChunkingSettings configures the chunker and chunk filter.
type ChunkingSettings struct {
	Size      int
	Overlap   int
	MinLength int
}

// IndexingSettings configures record construction and upsert batching.
type IndexingSettings struct {
	BatchSize     int
	PreviewLength int
	SourceTag     string
}

// Settings aggregates every tunable of the pipeline.
type Settings struct {
	Scraper     ScraperSettings
	Embedding   EmbeddingSettings
	VectorStore VectorStoreSettings
	Chunking    ChunkingSettings
	Indexing    IndexingSettings
	TopK        int
}

// DefaultSettings returns the settings used when nothing is configured.
func DefaultSettings() Settings {
	targets := make([]string, len(DefaultTargetURLs))
	copy(targets, DefaultTargetURLs)

	return Settings{
		Scraper: ScraperSettings{
			Provider: ScraperFirecrawl,
			Delay:    DefaultScrapeDelay,
			Targets:  targets,
		},
		Embedding: EmbeddingSettings{
			Provider:    EmbeddingGemini,
			Model:       EmbeddingGemini.DefaultModel(),
			Dimensions:  DefaultDimension,
			Concurrency: DefaultConcurrency,
		},
		VectorStore: VectorStoreSettings{
			Provider: VectorStorePinecone,
			Index:    DefaultIndexName,
			Metric:   MetricCosine,
			Cloud:    DefaultCloud,
			Region:   DefaultRegion,
		},
		Chunking: ChunkingSettings{
			Size:      DefaultChunkSize,
			Overlap:   DefaultChunkOverlap,
			MinLength: DefaultMinChunkLength,
		},
		Indexing: IndexingSettings{
			BatchSize:     DefaultBatchSize,
			PreviewLength: DefaultPreviewLength,
			SourceTag:     DefaultSourceTag,
		},
		TopK: DefaultTopK,
	}
}

// IndexSpec returns the index the pipeline should ensure.
func (s Settings) IndexSpec() IndexSpec {
	return IndexSpec{
		Name:      s.VectorStore.Index,
		Dimension: s.Embedding.Dimensions,
		Metric:    s.VectorStore.Metric,
		Cloud:     s.VectorStore.Cloud,
		Region:    s.VectorStore.Region,
	}
}

// Validate reports the first unusable value, wrapped in ErrInvalidConfig.
func (s Settings) Validate() error {
	switch {
	case !s.Scraper.Provider.IsValid():
		return fmt.Errorf("%w: scraper provider %q", ErrUnsupportedProvider, s.Scraper.Provider)
	case !s.Embedding.Provider.IsValid():
		return fmt.Errorf("%w: embedding provider %q", ErrUnsupportedProvider, s.Embedding.Provider)
	case !s.VectorStore.Provider.IsValid():
		return fmt.Errorf("%w: vector store provider %q", ErrUnsupportedProvider, s.VectorStore.Provider)
	case s.Scraper.Delay < 0:
		return fmt.Errorf("%w: scraper delay must not be negative", ErrInvalidConfig)
	case s.Chunking.Size <= 0:
		return fmt.Errorf("%w: chunk size must be positive", ErrInvalidConfig)
	case s.Chunking.Overlap < 0 || s.Chunking.Overlap >= s.Chunking.Size:
		return fmt.Errorf("%w: chunk overlap %d must be in [0, %d)", ErrInvalidConfig, s.Chunking.Overlap, s.Chunking.Size)
	case s.Chunking.MinLength < 0:
		return fmt.Errorf("%w: minimum chunk length must not be negative", ErrInvalidConfig)
	case s.Embedding.Dimensions <= 0:
		return fmt.Errorf("%w: embedding dimensions must be positive", ErrInvalidConfig)
	case s.Embedding.Concurrency <= 0:
		return fmt.Errorf("%w: embedding concurrency must be positive", ErrInvalidConfig)
	case s.VectorStore.Index == "":
		return fmt.Errorf("%w: index name is empty", ErrInvalidConfig)
	case !s.VectorStore.Metric.IsValid():
		return fmt.Errorf("%w: metric %q", ErrInvalidConfig, s.VectorStore.Metric)
	case s.Indexing.BatchSize <= 0:
		return fmt.Errorf("%w: batch size must be positive", ErrInvalidConfig)
	case s.Indexing.PreviewLength <= 0:
		return fmt.Errorf("%w: preview length must be positive", ErrInvalidConfig)
	case s.TopK <= 0:
		return fmt.Errorf("%w: top_k must be positive", ErrInvalidConfig)
	}
	return nil
}
