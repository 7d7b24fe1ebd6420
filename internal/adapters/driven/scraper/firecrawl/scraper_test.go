package firecrawl

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/22Ujjwal/Multimodal-Agent/internal/core/domain"
)

func newTestScraper(t *testing.T, timeout time.Duration, handler http.HandlerFunc) *Scraper {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	s, err := NewScraper(Config{APIKey: "fc-test", BaseURL: server.URL, Timeout: timeout})
	require.NoError(t, err)
	return s
}

func TestNewScraper_RequiresKey(t *testing.T) {
	_, err := NewScraper(Config{})

	assert.ErrorIs(t, err, domain.ErrMissingCredentials)
}

func TestScraper_Scrape_Success(t *testing.T) {
	s := newTestScraper(t, 2*time.Second, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/scrape", r.URL.Path)
		assert.Equal(t, "Bearer fc-test", r.Header.Get("Authorization"))

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "https://www.aven.com/support", body["url"])
		assert.Equal(t, []any{"markdown"}, body["formats"])
		assert.Equal(t, true, body["onlyMainContent"])

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success":true,"data":{"markdown":"# Support\nCall us.","metadata":{"title":"Aven Support"}}}`))
	})

	res := s.Scrape(context.Background(), "https://www.aven.com/support")

	ok, isSuccess := res.(domain.ScrapeSuccess)
	require.True(t, isSuccess, "got %#v", res)
	assert.Equal(t, "# Support\nCall us.", ok.Markdown)
	assert.Equal(t, "Aven Support", ok.Title)
	assert.Nil(t, ok.ExtractedData)
}

func TestScraper_Scrape_Extract(t *testing.T) {
	s := newTestScraper(t, 2*time.Second, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success":true,"data":{"markdown":"Aven home","extract":{"company_name":"Aven"}}}`))
	})

	res := s.Scrape(context.Background(), "https://www.aven.com/")

	ok, isSuccess := res.(domain.ScrapeSuccess)
	require.True(t, isSuccess, "got %#v", res)
	assert.Equal(t, "Aven home", ok.Markdown)
	assert.Empty(t, ok.Title)
	assert.Equal(t, "Aven", ok.ExtractedData["company_name"])
}

func TestScraper_Scrape_Failures(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{name: "payment required", status: http.StatusPaymentRequired, body: `{"success":false,"error":"Insufficient credits"}`},
		{name: "unsuccessful", status: http.StatusOK, body: `{"success":false,"error":"blocked by robots"}`},
		{name: "bad json", status: http.StatusOK, body: `{`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestScraper(t, 2*time.Second, func(w http.ResponseWriter, _ *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})

			res := s.Scrape(context.Background(), "https://www.aven.com/")

			f, isFailure := res.(domain.ScrapeFailure)
			require.True(t, isFailure, "got %#v", res)
			assert.Contains(t, f.Reason, "firecrawl")
		})
	}
}

func TestScraper_Scrape_Cancelled(t *testing.T) {
	s := newTestScraper(t, 2*time.Second, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"success":true,"data":{"markdown":"x"}}`))
	})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res := s.Scrape(ctx, "https://www.aven.com/")

	f, isFailure := res.(domain.ScrapeFailure)
	require.True(t, isFailure, "got %#v", res)
	assert.Contains(t, f.Reason, "cancelled")
}

func TestScraper_Scrape_Timeout(t *testing.T) {
	release := make(chan struct{})
	s := newTestScraper(t, 50*time.Millisecond, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
		_, _ = w.Write([]byte(`{"success":true,"data":{"markdown":"late"}}`))
	})
	defer close(release)

	start := time.Now()
	res := s.Scrape(context.Background(), "https://www.aven.com/")

	assert.IsType(t, domain.ScrapeFailure{}, res)
	assert.Less(t, time.Since(start), time.Second)
}

func TestScraper_Name(t *testing.T) {
	s, err := NewScraper(Config{APIKey: "k"})
	require.NoError(t, err)
	assert.Equal(t, "firecrawl", s.Name())
}
