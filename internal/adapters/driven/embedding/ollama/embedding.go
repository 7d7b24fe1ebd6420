// Package ollama provides an embedding service adapter using Ollama.
package ollama

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	ollama "github.com/ollama/ollama/api"

	"github.com/22Ujjwal/Multimodal-Agent/internal/core/domain"
	"github.com/22Ujjwal/Multimodal-Agent/internal/core/ports/driven"
)

// Ensure EmbeddingService implements the interface.
var _ driven.EmbeddingService = (*EmbeddingService)(nil)

// Default configuration values.
const (
	DefaultBaseURL    = "http://localhost:11434"
	DefaultModel      = "nomic-embed-text"
	DefaultTimeout    = 120 * time.Second
	DefaultDimensions = 768 // nomic-embed-text default
)

// Config holds configuration for the Ollama embedding service.
type Config struct {
	// BaseURL is the Ollama API base URL (default: http://localhost:11434).
	BaseURL string

	// Model is the embedding model to use (default: nomic-embed-text).
	Model string

	// Timeout is the request timeout (default: 120s).
	Timeout time.Duration

	// Dimensions is the embedding vector size (model-dependent).
	Dimensions int
}

// EmbeddingService generates embeddings using Ollama.
type EmbeddingService struct {
	client     *ollama.Client
	model      string
	dimensions int
}

// NewEmbeddingService creates a new Ollama embedding service.
func NewEmbeddingService(cfg Config) (*EmbeddingService, error) {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.Dimensions == 0 {
		cfg.Dimensions = DefaultDimensions
	}

	base, err := url.Parse(cfg.BaseURL)
	if err != nil || base.Host == "" {
		return nil, fmt.Errorf("%w: ollama base URL %q", domain.ErrInvalidConfig, cfg.BaseURL)
	}

	return &EmbeddingService{
		client:     ollama.NewClient(base, &http.Client{Timeout: cfg.Timeout}),
		model:      cfg.Model,
		dimensions: cfg.Dimensions,
	}, nil
}

// Embed generates a vector embedding for the given text.
func (s *EmbeddingService) Embed(ctx context.Context, text string) ([]float32, error) {
	resp, err := s.client.Embed(ctx, &ollama.EmbedRequest{
		Model: s.model,
		Input: text,
	})
	if err != nil {
		return nil, fmt.Errorf("ollama embed: %w", err)
	}
	if len(resp.Embeddings) == 0 || len(resp.Embeddings[0]) == 0 {
		return nil, domain.ErrEmptyEmbedding
	}
	return resp.Embeddings[0], nil
}

// Dimensions returns the configured embedding size.
func (s *EmbeddingService) Dimensions() int {
	return s.dimensions
}

// ModelName returns the model identifier.
func (s *EmbeddingService) ModelName() string {
	return s.model
}

// Ping checks that the Ollama server is reachable.
func (s *EmbeddingService) Ping(ctx context.Context) error {
	if err := s.client.Heartbeat(ctx); err != nil {
		return fmt.Errorf("ollama not reachable: %w", err)
	}
	return nil
}

// Close releases resources.
func (s *EmbeddingService) Close() error {
	return nil
}
