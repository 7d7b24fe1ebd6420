package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/22Ujjwal/Multimodal-Agent/internal/core/domain"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		EnvFirecrawlAPIKey, EnvGeminiAPIKey, EnvPineconeAPIKey, EnvPineconeIndex,
		EnvPineconeRegion, EnvOpenAIAPIKey, EnvOllamaHost, EnvMilvusAddress, EnvMilvusToken,
	} {
		t.Setenv(k, "")
	}
}

func TestLoadCredentials(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvFirecrawlAPIKey, "fc-key")
	t.Setenv(EnvGeminiAPIKey, " gm-key ")
	t.Setenv(EnvPineconeIndex, "kb")

	c := LoadCredentials()

	assert.Equal(t, "fc-key", c.FirecrawlAPIKey)
	assert.Equal(t, "gm-key", c.GeminiAPIKey)
	assert.Equal(t, "", c.PineconeAPIKey)
	assert.Equal(t, "kb", c.IndexName)
}

func TestCredentials_Validate(t *testing.T) {
	defaults := domain.DefaultSettings()

	t.Run("all present", func(t *testing.T) {
		c := Credentials{FirecrawlAPIKey: "a", GeminiAPIKey: "b", PineconeAPIKey: "c"}
		assert.NoError(t, c.Validate(defaults))
	})

	t.Run("lists every missing key", func(t *testing.T) {
		err := Credentials{GeminiAPIKey: "b"}.Validate(defaults)

		require.Error(t, err)
		assert.True(t, errors.Is(err, domain.ErrMissingCredentials))
		assert.Contains(t, err.Error(), "FIRECRAWL_API_KEY, PINECONE_API_KEY")
	})

	t.Run("direct scraper needs no firecrawl key", func(t *testing.T) {
		s := defaults
		s.Scraper.Provider = domain.ScraperDirect

		missing := Credentials{GeminiAPIKey: "b", PineconeAPIKey: "c"}.Missing(s)

		assert.Empty(t, missing)
	})

	t.Run("provider specific keys", func(t *testing.T) {
		s := defaults
		s.Embedding.Provider = domain.EmbeddingOpenAI
		s.VectorStore.Provider = domain.VectorStoreMilvus

		missing := Credentials{FirecrawlAPIKey: "a"}.Missing(s)

		assert.Equal(t, []string{EnvMilvusAddress, EnvOpenAIAPIKey}, missing)
	})

	t.Run("ollama needs no key", func(t *testing.T) {
		s := defaults
		s.Embedding.Provider = domain.EmbeddingOllama

		missing := Credentials{FirecrawlAPIKey: "a", PineconeAPIKey: "c"}.Missing(s)

		assert.Empty(t, missing)
	})
}

func TestCredentials_Apply(t *testing.T) {
	s := domain.DefaultSettings()

	got := Credentials{IndexName: "other-kb", Region: "us-east1-gcp"}.Apply(s)

	assert.Equal(t, "other-kb", got.VectorStore.Index)
	assert.Equal(t, "us-east1-gcp", got.VectorStore.Region)
	assert.Equal(t, domain.DefaultIndexName, s.VectorStore.Index, "input must not change")

	unchanged := Credentials{}.Apply(s)
	assert.Equal(t, s, unchanged)
}

func TestLoadEnv(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	local := filepath.Join(dir, ".env.local")
	shared := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(local, []byte("GEMINI_API_KEY=from-local\n"), 0o600))
	require.NoError(t, os.WriteFile(shared, []byte("GEMINI_API_KEY=from-env\nPINECONE_API_KEY=pc\n"), 0o600))
	// godotenv.Load sets variables with os.Setenv; unset them when done.
	t.Cleanup(func() {
		os.Unsetenv(EnvGeminiAPIKey)
		os.Unsetenv(EnvPineconeAPIKey)
	})
	os.Unsetenv(EnvGeminiAPIKey)
	os.Unsetenv(EnvPineconeAPIKey)

	err := LoadEnv(local, shared, filepath.Join(dir, "missing.env"))

	require.NoError(t, err)
	assert.Equal(t, "from-local", os.Getenv(EnvGeminiAPIKey))
	assert.Equal(t, "pc", os.Getenv(EnvPineconeAPIKey))
}
