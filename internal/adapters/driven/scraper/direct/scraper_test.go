package direct

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"

	"github.com/22Ujjwal/Multimodal-Agent/internal/core/domain"
)

const page = `<!DOCTYPE html>
<html>
<head>
  <title>Aven Support</title>
  <style>body { color: red }</style>
</head>
<body>
  <nav><a href="/">Home</a><a href="/about">About</a></nav>
  <main>
    <h1>How can we help?</h1>
    <p>Call <strong>1-800-AVEN-123</strong> any day.</p>
    <script>trackPageView()</script>
    <footer>Copyright Aven</footer>
  </main>
  <footer>Site footer</footer>
</body>
</html>`

func serve(t *testing.T, contentType, body string, status int) string {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NotEmpty(t, r.Header.Get("User-Agent"))
		if contentType != "" {
			w.Header().Set("Content-Type", contentType)
		}
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)
	return server.URL
}

func TestScraper_Scrape_MainContent(t *testing.T) {
	url := serve(t, "text/html; charset=utf-8", page, http.StatusOK)

	res := NewScraper(Config{}).Scrape(context.Background(), url)

	ok, isSuccess := res.(domain.ScrapeSuccess)
	require.True(t, isSuccess, "got %#v", res)
	assert.Equal(t, "Aven Support", ok.Title)
	assert.Contains(t, ok.Markdown, "# How can we help?")
	assert.Contains(t, ok.Markdown, "**1-800-AVEN-123**")
	assert.NotContains(t, ok.Markdown, "trackPageView")
	assert.NotContains(t, ok.Markdown, "Copyright")
	assert.NotContains(t, ok.Markdown, "About")
}

func TestScraper_Scrape_Failures(t *testing.T) {
	tests := []struct {
		name        string
		contentType string
		status      int
		contain     string
	}{
		{name: "http error", contentType: "text/html", status: http.StatusForbidden, contain: "HTTP 403"},
		{name: "pdf", contentType: "application/pdf", status: http.StatusOK, contain: "application/pdf"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			url := serve(t, tt.contentType, page, tt.status)

			res := NewScraper(Config{}).Scrape(context.Background(), url)

			f, isFailure := res.(domain.ScrapeFailure)
			require.True(t, isFailure, "got %#v", res)
			assert.Contains(t, f.Reason, tt.contain)
		})
	}
}

func TestScraper_Scrape_Unreachable(t *testing.T) {
	res := NewScraper(Config{}).Scrape(context.Background(), "http://127.0.0.1:1/")

	assert.IsType(t, domain.ScrapeFailure{}, res)
}

func TestPageTitle_OpenGraphFallback(t *testing.T) {
	doc, err := html.Parse(strings.NewReader(`<html><head><meta property="og:title" content="Aven App"></head><body></body></html>`))
	require.NoError(t, err)

	assert.Equal(t, "Aven App", pageTitle(doc))
}

func TestMainContent_PrefersMainThenArticle(t *testing.T) {
	doc, err := html.Parse(strings.NewReader(`<html><body><article id="a">x</article></body></html>`))
	require.NoError(t, err)

	n := mainContent(doc)

	require.NotNil(t, n)
	assert.Equal(t, "a", attr(n, "id"))
}

func TestScraper_Name(t *testing.T) {
	assert.Equal(t, "direct", NewScraper(Config{}).Name())
}
