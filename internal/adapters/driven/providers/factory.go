// Package providers builds the scraper, embedding and vector store adapters
// selected by the settings.
package providers

import (
	"context"
	"errors"
	"fmt"
	"time"

	geminiembed "github.com/22Ujjwal/Multimodal-Agent/internal/adapters/driven/embedding/gemini"
	ollamaembed "github.com/22Ujjwal/Multimodal-Agent/internal/adapters/driven/embedding/ollama"
	openaiembed "github.com/22Ujjwal/Multimodal-Agent/internal/adapters/driven/embedding/openai"
	"github.com/22Ujjwal/Multimodal-Agent/internal/adapters/driven/scraper/direct"
	"github.com/22Ujjwal/Multimodal-Agent/internal/adapters/driven/scraper/firecrawl"
	"github.com/22Ujjwal/Multimodal-Agent/internal/adapters/driven/vectorstore/milvus"
	"github.com/22Ujjwal/Multimodal-Agent/internal/adapters/driven/vectorstore/pinecone"
	"github.com/22Ujjwal/Multimodal-Agent/internal/config"
	"github.com/22Ujjwal/Multimodal-Agent/internal/core/domain"
	"github.com/22Ujjwal/Multimodal-Agent/internal/core/ports/driven"
)

// pingTimeout is the maximum time to wait for service connectivity validation.
const pingTimeout = 5 * time.Second

// InitResult holds the adapters for one pipeline.
type InitResult struct {
	Scraper  driven.Scraper
	Embedder driven.EmbeddingService
	Store    driven.VectorStore
}

// Close releases all resources held by InitResult.
func (r *InitResult) Close() error {
	var errs []error
	if r.Embedder != nil {
		errs = append(errs, r.Embedder.Close())
	}
	if r.Store != nil {
		errs = append(errs, r.Store.Close())
	}
	return errors.Join(errs...)
}

// Options tune Build.
type Options struct {
	// WithScraper also builds the scraper. Query-only commands leave it off.
	WithScraper bool

	// Ping checks embedding connectivity before returning.
	Ping bool
}

// Build validates credentials and creates every adapter the settings select.
func Build(ctx context.Context, settings domain.Settings, creds config.Credentials, opts Options) (*InitResult, error) {
	if err := creds.Validate(settings); err != nil {
		return nil, err
	}

	result := &InitResult{}

	if opts.WithScraper {
		scraper, err := CreateScraper(settings.Scraper, creds)
		if err != nil {
			return nil, err
		}
		result.Scraper = scraper
	}

	var (
		embedder driven.EmbeddingService
		err      error
	)
	if opts.Ping {
		embedder, err = CreateAndValidateEmbeddingService(ctx, settings.Embedding, creds)
	} else {
		embedder, err = CreateEmbeddingService(ctx, settings.Embedding, creds)
	}
	if err != nil {
		return nil, err
	}
	result.Embedder = embedder

	store, err := CreateVectorStore(ctx, settings.VectorStore, creds)
	if err != nil {
		_ = result.Close()
		return nil, err
	}
	result.Store = store

	return result, nil
}

// CreateScraper creates the scraper for the configured provider.
func CreateScraper(settings domain.ScraperSettings, creds config.Credentials) (driven.Scraper, error) {
	switch settings.Provider {
	case domain.ScraperFirecrawl:
		return firecrawl.NewScraper(firecrawl.Config{APIKey: creds.FirecrawlAPIKey})

	case domain.ScraperDirect:
		return direct.NewScraper(direct.Config{}), nil

	default:
		return nil, fmt.Errorf("%w: scraper %q", domain.ErrUnsupportedProvider, settings.Provider)
	}
}

// CreateEmbeddingService creates the embedding service for the configured provider.
func CreateEmbeddingService(ctx context.Context, settings domain.EmbeddingSettings, creds config.Credentials) (driven.EmbeddingService, error) {
	switch settings.Provider {
	case domain.EmbeddingGemini:
		return geminiembed.NewEmbeddingService(ctx, geminiembed.Config{
			APIKey:     creds.GeminiAPIKey,
			Model:      settings.Model,
			Dimensions: settings.Dimensions,
		})

	case domain.EmbeddingOpenAI:
		return openaiembed.NewEmbeddingService(openaiembed.Config{
			APIKey:     creds.OpenAIAPIKey,
			Model:      settings.Model,
			Dimensions: settings.Dimensions,
		})

	case domain.EmbeddingOllama:
		return ollamaembed.NewEmbeddingService(ollamaembed.Config{
			BaseURL:    creds.OllamaHost,
			Model:      settings.Model,
			Dimensions: settings.Dimensions,
		})

	default:
		return nil, fmt.Errorf("%w: embedding %q", domain.ErrUnsupportedProvider, settings.Provider)
	}
}

// CreateAndValidateEmbeddingService creates an embedding service and validates connectivity.
func CreateAndValidateEmbeddingService(ctx context.Context, settings domain.EmbeddingSettings, creds config.Credentials) (driven.EmbeddingService, error) {
	svc, err := CreateEmbeddingService(ctx, settings, creds)
	if err != nil {
		return nil, err
	}

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := svc.Ping(pingCtx); err != nil {
		_ = svc.Close()
		return nil, fmt.Errorf("%w: %s unreachable (%w)", domain.ErrEmbeddingUnavailable, settings.Provider, err)
	}
	return svc, nil
}

// CreateVectorStore creates the vector store for the configured provider.
// The store targets settings.Index; EnsureIndex creates it on first setup.
func CreateVectorStore(ctx context.Context, settings domain.VectorStoreSettings, creds config.Credentials) (driven.VectorStore, error) {
	switch settings.Provider {
	case domain.VectorStorePinecone:
		return pinecone.NewStore(pinecone.Config{
			APIKey: creds.PineconeAPIKey,
			Index:  settings.Index,
		})

	case domain.VectorStoreMilvus:
		connectCtx, cancel := context.WithTimeout(ctx, pingTimeout)
		defer cancel()
		return milvus.NewStore(connectCtx, milvus.Config{
			Address:    creds.MilvusAddress,
			APIKey:     creds.MilvusToken,
			Collection: settings.Index,
			Metric:     settings.Metric,
		})

	default:
		return nil, fmt.Errorf("%w: vector store %q", domain.ErrUnsupportedProvider, settings.Provider)
	}
}
