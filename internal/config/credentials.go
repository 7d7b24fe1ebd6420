// Package config loads credentials and environment overrides.
//
// Secrets are read from the process environment only. A .env.local and a
// .env file in the working directory are loaded first when present; values
// already set in the environment take precedence.
package config

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/joho/godotenv"

	"github.com/22Ujjwal/Multimodal-Agent/internal/core/domain"
)

// Environment variable names.
//
//nolint:gosec // G101: These are variable names, not credentials.
const (
	EnvFirecrawlAPIKey = "FIRECRAWL_API_KEY"
	EnvGeminiAPIKey    = "GEMINI_API_KEY"
	EnvPineconeAPIKey  = "PINECONE_API_KEY"
	EnvPineconeIndex   = "PINECONE_INDEX_NAME"
	EnvPineconeRegion  = "PINECONE_ENVIRONMENT"
	EnvOpenAIAPIKey    = "OPENAI_API_KEY"
	EnvOllamaHost      = "OLLAMA_HOST"
	EnvMilvusAddress   = "MILVUS_ADDRESS"
	EnvMilvusToken     = "MILVUS_TOKEN"
)

// DefaultEnvFiles are loaded by LoadEnv, in order.
var DefaultEnvFiles = []string{".env.local", ".env"}

// Credentials holds API keys and service endpoints.
type Credentials struct {
	FirecrawlAPIKey string
	GeminiAPIKey    string
	PineconeAPIKey  string
	OpenAIAPIKey    string
	OllamaHost      string
	MilvusAddress   string
	MilvusToken     string

	// IndexName and Region override the configured index location when set.
	IndexName string
	Region    string
}

// LoadEnv loads the given dotenv files, skipping any that do not exist.
// godotenv never overwrites variables that are already set.
func LoadEnv(files ...string) error {
	if len(files) == 0 {
		files = DefaultEnvFiles
	}
	for _, f := range files {
		if _, err := os.Stat(f); err != nil {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			return fmt.Errorf("load %s: %w", f, err)
		}
	}
	return nil
}

// LoadCredentials reads credentials from the environment.
func LoadCredentials() Credentials {
	return Credentials{
		FirecrawlAPIKey: env(EnvFirecrawlAPIKey),
		GeminiAPIKey:    env(EnvGeminiAPIKey),
		PineconeAPIKey:  env(EnvPineconeAPIKey),
		OpenAIAPIKey:    env(EnvOpenAIAPIKey),
		OllamaHost:      env(EnvOllamaHost),
		MilvusAddress:   env(EnvMilvusAddress),
		MilvusToken:     env(EnvMilvusToken),
		IndexName:       env(EnvPineconeIndex),
		Region:          env(EnvPineconeRegion),
	}
}

// Missing returns the names of variables required by the selected
// providers that are not set, sorted.
func (c Credentials) Missing(s domain.Settings) []string {
	var missing []string

	if s.Scraper.Provider == domain.ScraperFirecrawl && c.FirecrawlAPIKey == "" {
		missing = append(missing, EnvFirecrawlAPIKey)
	}

	switch s.Embedding.Provider {
	case domain.EmbeddingGemini:
		if c.GeminiAPIKey == "" {
			missing = append(missing, EnvGeminiAPIKey)
		}
	case domain.EmbeddingOpenAI:
		if c.OpenAIAPIKey == "" {
			missing = append(missing, EnvOpenAIAPIKey)
		}
	}

	switch s.VectorStore.Provider {
	case domain.VectorStorePinecone:
		if c.PineconeAPIKey == "" {
			missing = append(missing, EnvPineconeAPIKey)
		}
	case domain.VectorStoreMilvus:
		if c.MilvusAddress == "" {
			missing = append(missing, EnvMilvusAddress)
		}
	}

	sort.Strings(missing)
	return missing
}

// Validate returns domain.ErrMissingCredentials naming every missing variable.
func (c Credentials) Validate(s domain.Settings) error {
	missing := c.Missing(s)
	if len(missing) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %s", domain.ErrMissingCredentials, strings.Join(missing, ", "))
}

// Apply overlays environment overrides onto settings.
func (c Credentials) Apply(s domain.Settings) domain.Settings {
	if c.IndexName != "" {
		s.VectorStore.Index = c.IndexName
	}
	if c.Region != "" {
		s.VectorStore.Region = c.Region
	}
	return s
}

func env(key string) string {
	return strings.TrimSpace(os.Getenv(key))
}
