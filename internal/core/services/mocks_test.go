package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/22Ujjwal/Multimodal-Agent/internal/adapters/driven/storage/memory"
	"github.com/22Ujjwal/Multimodal-Agent/internal/core/domain"
)

// mockScraper returns canned results per URL. Unknown URLs fail.
type mockScraper struct {
	mu      sync.Mutex
	results map[string]domain.ScrapeResult
	calls   []string
}

func (m *mockScraper) Name() string { return "mock" }

func (m *mockScraper) Scrape(_ context.Context, url string) domain.ScrapeResult {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, url)
	if r, ok := m.results[url]; ok {
		return r
	}
	return domain.ScrapeFailure{Reason: "HTTP 500"}
}

// mockEmbeddingService returns a fixed-size vector derived from the text
// length, unless fn is set.
type mockEmbeddingService struct {
	dims  int
	fn    func(text string) ([]float32, error)
	mu    sync.Mutex
	texts []string
}

func (m *mockEmbeddingService) Embed(_ context.Context, text string) ([]float32, error) {
	m.mu.Lock()
	m.texts = append(m.texts, text)
	m.mu.Unlock()
	if m.fn != nil {
		return m.fn(text)
	}
	v := make([]float32, m.dims)
	v[0] = float32(len(text))
	return v, nil
}

func (m *mockEmbeddingService) Dimensions() int              { return m.dims }
func (m *mockEmbeddingService) ModelName() string            { return "mock-embed" }
func (m *mockEmbeddingService) Ping(_ context.Context) error { return nil }
func (m *mockEmbeddingService) Close() error                 { return nil }

// mockVectorStore records upserts and serves canned matches.
type mockVectorStore struct {
	mu         sync.Mutex
	ensureErr  error
	failBatch  map[int]bool // 1-based batch numbers that fail
	batches    [][]domain.VectorRecord
	matches    []domain.VectorMatch
	queryErr   error
	lastTopK   int
	stats      domain.IndexStats
	statsErr   error
	ensured    []domain.IndexSpec
	closeCount int
}

func (m *mockVectorStore) EnsureIndex(_ context.Context, spec domain.IndexSpec) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ensured = append(m.ensured, spec)
	return m.ensureErr
}

func (m *mockVectorStore) Upsert(_ context.Context, records []domain.VectorRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.batches = append(m.batches, records)
	if m.failBatch[len(m.batches)] {
		return errors.New("upsert rejected")
	}
	return nil
}

func (m *mockVectorStore) Query(_ context.Context, _ []float32, topK int, _ bool) ([]domain.VectorMatch, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lastTopK = topK
	if m.queryErr != nil {
		return nil, m.queryErr
	}
	if len(m.matches) > topK {
		return m.matches[:topK], nil
	}
	return m.matches, nil
}

func (m *mockVectorStore) Stats(_ context.Context) (domain.IndexStats, error) {
	return m.stats, m.statsErr
}

func (m *mockVectorStore) Close() error {
	m.closeCount++
	return nil
}

func (m *mockVectorStore) records() []domain.VectorRecord {
	var out []domain.VectorRecord
	for _, b := range m.batches {
		out = append(out, b...)
	}
	return out
}

// stored returns the records as an index keyed by ID would hold them,
// with later upserts replacing earlier ones.
func (m *mockVectorStore) stored() map[string]domain.VectorRecord {
	out := map[string]domain.VectorRecord{}
	for _, r := range m.records() {
		out[r.ID] = r
	}
	return out
}

// mockFallback is a tiny fallback corpus.
type mockFallback struct {
	docs []domain.Document
}

func (m *mockFallback) Documents() []domain.Document {
	out := make([]domain.Document, len(m.docs))
	copy(out, m.docs)
	return out
}

func (m *mockFallback) Lookup(url string) (domain.Document, bool) {
	for _, d := range m.docs {
		if d.URL == url {
			return d, true
		}
	}
	return domain.Document{}, false
}

var testNow = time.Date(2025, 7, 27, 14, 0, 0, 0, time.UTC)

// testSettings returns defaults with no politeness delay and tiny chunks.
func testSettings() domain.Settings {
	s := domain.DefaultSettings()
	s.Scraper.Delay = 0
	s.Embedding.Dimensions = 4
	return s
}

type testPipeline struct {
	*Pipeline
	scraper  *mockScraper
	embedder *mockEmbeddingService
	store    *mockVectorStore
	fallback *mockFallback
	runs     *memory.RunStore
}

func newTestPipeline(t *testing.T, settings domain.Settings) *testPipeline {
	t.Helper()
	tp := &testPipeline{
		scraper:  &mockScraper{results: map[string]domain.ScrapeResult{}},
		embedder: &mockEmbeddingService{dims: settings.Embedding.Dimensions},
		store:    &mockVectorStore{},
		fallback: &mockFallback{},
		runs:     memory.NewRunStore(),
	}
	p, err := NewPipeline(settings, Deps{
		Scraper:  tp.scraper,
		Embedder: tp.embedder,
		Store:    tp.store,
		Fallback: tp.fallback,
		Runs:     tp.runs,
	})
	require.NoError(t, err)
	p.Now = func() time.Time { return testNow }
	tp.Pipeline = p
	return tp
}

func repeatSentence(sentence string, n int) string {
	out := make([]byte, 0, len(sentence)*n)
	for i := 0; i < n; i++ {
		out = append(out, sentence...)
	}
	return string(out)
}
