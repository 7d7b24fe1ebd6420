// Package openai provides an embedding service adapter using OpenAI API.
package openai

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/22Ujjwal/Multimodal-Agent/internal/core/domain"
	"github.com/22Ujjwal/Multimodal-Agent/internal/core/ports/driven"
)

// Ensure EmbeddingService implements the interface.
var _ driven.EmbeddingService = (*EmbeddingService)(nil)

// Default configuration values.
const (
	DefaultModel      = "text-embedding-3-small"
	DefaultTimeout    = 60 * time.Second
	DefaultDimensions = 768
)

// Config holds configuration for the OpenAI embedding service.
type Config struct {
	// APIKey is the OpenAI API key (required).
	APIKey string

	// BaseURL is the API base URL (default: https://api.openai.com/v1).
	// Can be changed for Azure OpenAI or compatible APIs.
	BaseURL string

	// Model is the embedding model to use (default: text-embedding-3-small).
	Model string

	// Timeout is the request timeout (default: 60s).
	Timeout time.Duration

	// Dimensions is requested from text-embedding-3-* models so vectors
	// fit an index created for another provider (default: 768).
	Dimensions int
}

// EmbeddingService generates embeddings using OpenAI API.
type EmbeddingService struct {
	client     *openai.Client
	model      string
	dimensions int
}

// NewEmbeddingService creates a new OpenAI embedding service.
func NewEmbeddingService(cfg Config) (*EmbeddingService, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("%w: OpenAI API key", domain.ErrMissingCredentials)
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

	config := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		config.BaseURL = strings.TrimSuffix(cfg.BaseURL, "/")
	}
	config.HTTPClient = &http.Client{Timeout: cfg.Timeout}

	return &EmbeddingService{
		client:     openai.NewClientWithConfig(config),
		model:      cfg.Model,
		dimensions: cfg.Dimensions,
	}, nil
}

// Embed generates a vector embedding for the given text.
func (s *EmbeddingService) Embed(ctx context.Context, text string) ([]float32, error) {
	req := openai.EmbeddingRequest{
		Input: []string{text},
		Model: openai.EmbeddingModel(s.model),
	}
	// Only the v3 models accept a dimensions parameter.
	if strings.HasPrefix(s.model, "text-embedding-3") {
		req.Dimensions = s.dimensions
	}

	resp, err := s.client.CreateEmbeddings(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("openai embed: %w", err)
	}
	if len(resp.Data) == 0 || len(resp.Data[0].Embedding) == 0 {
		return nil, domain.ErrEmptyEmbedding
	}

	values := resp.Data[0].Embedding
	vec := make([]float32, len(values))
	for i := range values {
		vec[i] = float32(values[i])
	}
	return vec, nil
}

// Dimensions returns the configured embedding size.
func (s *EmbeddingService) Dimensions() int {
	return s.dimensions
}

// ModelName returns the model identifier.
func (s *EmbeddingService) ModelName() string {
	return s.model
}

// Ping verifies the API key by listing models.
func (s *EmbeddingService) Ping(ctx context.Context) error {
	if _, err := s.client.ListModels(ctx); err != nil {
		return fmt.Errorf("openai not reachable: %w", err)
	}
	return nil
}

// Close releases resources.
func (s *EmbeddingService) Close() error {
	return nil
}
