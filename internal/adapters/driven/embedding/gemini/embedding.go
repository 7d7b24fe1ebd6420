// Package gemini provides an embedding service adapter using Google Gemini.
package gemini

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/22Ujjwal/Multimodal-Agent/internal/core/domain"
	"github.com/22Ujjwal/Multimodal-Agent/internal/core/ports/driven"
)

// Ensure EmbeddingService implements the interface.
var _ driven.EmbeddingService = (*EmbeddingService)(nil)

// Default configuration values.
const (
	DefaultModel      = "embedding-001"
	DefaultDimensions = 768
)

// Config holds configuration for the Gemini embedding service.
type Config struct {
	// APIKey is the Gemini API key (required).
	APIKey string

	// Model is the embedding model (default: embedding-001).
	// A "models/" prefix is optional.
	Model string

	// Dimensions is the size of the returned vectors (default: 768).
	Dimensions int

	// Options are passed to the underlying client, e.g. a custom endpoint.
	Options []option.ClientOption
}

// EmbeddingService generates embeddings using the Gemini API.
// Every text is embedded with the retrieval-document task type.
type EmbeddingService struct {
	client     *genai.Client
	model      *genai.EmbeddingModel
	name       string
	dimensions int
}

// NewEmbeddingService creates a new Gemini embedding service.
func NewEmbeddingService(ctx context.Context, cfg Config) (*EmbeddingService, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("%w: Gemini API key", domain.ErrMissingCredentials)
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.Dimensions == 0 {
		cfg.Dimensions = DefaultDimensions
	}

	opts := append([]option.ClientOption{option.WithAPIKey(cfg.APIKey)}, cfg.Options...)
	client, err := genai.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating gemini client: %w", err)
	}

	name := ModelName(cfg.Model)
	model := client.EmbeddingModel(name)
	model.TaskType = genai.TaskTypeRetrievalDocument

	return &EmbeddingService{
		client:     client,
		model:      model,
		name:       name,
		dimensions: cfg.Dimensions,
	}, nil
}

// ModelName strips the optional "models/" prefix.
func ModelName(model string) string {
	return strings.TrimPrefix(strings.TrimSpace(model), "models/")
}

// Embed generates a vector embedding for the given text.
func (s *EmbeddingService) Embed(ctx context.Context, text string) ([]float32, error) {
	res, err := s.model.EmbedContent(ctx, genai.Text(text))
	if err != nil {
		return nil, fmt.Errorf("gemini embed: %w", err)
	}
	if res == nil || res.Embedding == nil || len(res.Embedding.Values) == 0 {
		return nil, domain.ErrEmptyEmbedding
	}
	return res.Embedding.Values, nil
}

// Dimensions returns the configured embedding size.
func (s *EmbeddingService) Dimensions() int {
	return s.dimensions
}

// ModelName returns the model identifier.
func (s *EmbeddingService) ModelName() string {
	return s.name
}

// Ping embeds a short probe string.
func (s *EmbeddingService) Ping(ctx context.Context) error {
	if _, err := s.Embed(ctx, "ping"); err != nil {
		return fmt.Errorf("gemini not reachable: %w", err)
	}
	return nil
}

// Close releases the underlying client.
func (s *EmbeddingService) Close() error {
	return s.client.Close()
}
