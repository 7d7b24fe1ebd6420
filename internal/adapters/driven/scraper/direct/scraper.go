// Package direct provides a scraper that fetches pages itself and converts
// their main content to markdown locally. It needs no API key.
package direct

import (
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"
	"time"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/22Ujjwal/Multimodal-Agent/internal/core/domain"
	"github.com/22Ujjwal/Multimodal-Agent/internal/core/ports/driven"
)

// Ensure Scraper implements the interface.
var _ driven.Scraper = (*Scraper)(nil)

// Default configuration values.
const (
	DefaultTimeout   = 30 * time.Second
	DefaultUserAgent = "Mozilla/5.0 (compatible; kb-scraper/1.0)"
	DefaultMaxBytes  = 5 << 20
)

// Config holds configuration for the direct scraper.
type Config struct {
	// Timeout is the per-page request timeout (default: 30s).
	Timeout time.Duration

	// UserAgent is sent with every request.
	UserAgent string

	// MaxBytes caps how much of a page is read (default: 5 MiB).
	MaxBytes int64

	// Client overrides the HTTP client. Timeout is ignored when set.
	Client *http.Client
}

// Scraper fetches HTML pages and converts their main content to markdown.
type Scraper struct {
	client    *http.Client
	userAgent string
	maxBytes  int64
}

// NewScraper creates a direct scraper.
func NewScraper(cfg Config) *Scraper {
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = DefaultUserAgent
	}
	if cfg.MaxBytes == 0 {
		cfg.MaxBytes = DefaultMaxBytes
	}
	client := cfg.Client
	if client == nil {
		client = &http.Client{Timeout: cfg.Timeout}
	}

	return &Scraper{
		client:    client,
		userAgent: cfg.UserAgent,
		maxBytes:  cfg.MaxBytes,
	}
}

// Name returns the provider name.
func (s *Scraper) Name() string {
	return string(domain.ScraperDirect)
}

// Scrape fetches url and returns its main content as markdown.
// PDFs and other non-HTML responses are reported as failures.
func (s *Scraper) Scrape(ctx context.Context, url string) domain.ScrapeResult {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return failure("create request: %v", err)
	}
	req.Header.Set("User-Agent", s.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	resp, err := s.client.Do(req)
	if err != nil {
		return failure("send request: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return failure("HTTP %d", resp.StatusCode)
	}

	if ct := resp.Header.Get("Content-Type"); ct != "" {
		mediaType, _, _ := mime.ParseMediaType(ct)
		if mediaType != "text/html" && mediaType != "application/xhtml+xml" {
			return failure("unsupported content type %q", mediaType)
		}
	}

	doc, err := html.Parse(io.LimitReader(resp.Body, s.maxBytes))
	if err != nil {
		return failure("parse html: %v", err)
	}

	title := pageTitle(doc)
	content := mainContent(doc)
	if content == nil {
		return failure("no body")
	}
	stripBoilerplate(content)

	var buf strings.Builder
	if err := html.Render(&buf, content); err != nil {
		return failure("render html: %v", err)
	}

	markdown, err := htmltomarkdown.ConvertString(buf.String())
	if err != nil {
		return failure("convert to markdown: %v", err)
	}

	return domain.ScrapeSuccess{
		Markdown: strings.TrimSpace(markdown),
		Title:    title,
	}
}

// pageTitle returns the <title> text, falling back to og:title.
func pageTitle(doc *html.Node) string {
	if n := find(doc, func(n *html.Node) bool { return n.DataAtom == atom.Title }); n != nil {
		if t := strings.TrimSpace(textContent(n)); t != "" {
			return t
		}
	}
	og := find(doc, func(n *html.Node) bool {
		return n.DataAtom == atom.Meta && attr(n, "property") == "og:title"
	})
	if og != nil {
		return strings.TrimSpace(attr(og, "content"))
	}
	return ""
}

// mainContent picks <main>, then <article>, then <body>.
func mainContent(doc *html.Node) *html.Node {
	for _, a := range []atom.Atom{atom.Main, atom.Article, atom.Body} {
		if n := find(doc, func(n *html.Node) bool { return n.DataAtom == a }); n != nil {
			return n
		}
	}
	return nil
}

var boilerplate = map[atom.Atom]bool{
	atom.Script:   true,
	atom.Style:    true,
	atom.Noscript: true,
	atom.Nav:      true,
	atom.Header:   true,
	atom.Footer:   true,
	atom.Aside:    true,
	atom.Form:     true,
	atom.Svg:      true,
	atom.Iframe:   true,
	atom.Template: true,
}

// stripBoilerplate removes navigation and non-content elements below n.
func stripBoilerplate(n *html.Node) {
	for c := n.FirstChild; c != nil; {
		next := c.NextSibling
		switch {
		case c.Type == html.CommentNode:
			n.RemoveChild(c)
		case c.Type == html.ElementNode && (boilerplate[c.DataAtom] || attr(c, "aria-hidden") == "true"):
			n.RemoveChild(c)
		default:
			stripBoilerplate(c)
		}
		c = next
	}
}

func find(n *html.Node, match func(*html.Node) bool) *html.Node {
	if n.Type == html.ElementNode && match(n) {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := find(c, match); found != nil {
			return found
		}
	}
	return nil
}

func textContent(n *html.Node) string {
	if n.Type == html.TextNode {
		return n.Data
	}
	var sb strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		sb.WriteString(textContent(c))
	}
	return sb.String()
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func failure(format string, args ...any) domain.ScrapeFailure {
	return domain.ScrapeFailure{Reason: fmt.Sprintf(format, args...)}
}
