package cli

import (
	"fmt"
	"strconv"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/22Ujjwal/Multimodal-Agent/internal/adapters/driving/tui/styles"
	"github.com/22Ujjwal/Multimodal-Agent/internal/core/domain"
)

// previewRunes is the length of the content preview printed for a single page.
const previewRunes = 300

var scrapeCmd = &cobra.Command{
	Use:   "scrape",
	Short: "Scrape pages without indexing them",
	Long: `Scrapes the target pages and reports what was collected. Nothing is
embedded or stored.

With --url, a single page is scraped without fallback substitution and its
title, length, word count and a content preview are printed. Without it,
every configured target is collected as setup would, and the table shows
which pages came from the fallback content.`,
	Args: cobra.NoArgs,
	RunE: runScrape,
}

func init() {
	scrapeCmd.Flags().StringP("url", "u", "", "Scrape a single URL")
	rootCmd.AddCommand(scrapeCmd)
}

func runScrape(cmd *cobra.Command, _ []string) error {
	url, err := cmd.Flags().GetString("url")
	if err != nil {
		return fmt.Errorf("getting url flag: %w", err)
	}

	st := styles.NewStyles(nil)
	session, err := newSession(cmd.Context(), SessionOptions{WithScraper: true})
	if err != nil {
		return reportSessionError(cmd, st, err)
	}
	defer session.Close()

	if url != "" {
		return scrapeOne(cmd, st, session, url)
	}
	return scrapeAll(cmd, st, session)
}

func scrapeOne(cmd *cobra.Command, st *styles.Styles, session *Session, url string) error {
	doc, err := session.Collector.ScrapeOne(cmd.Context(), url)
	if err != nil {
		cmd.Printf("%s Failed to scrape %s: %v\n", st.Check(false), url, err)
		return errSilent
	}

	cmd.Printf("%s Successfully scraped %s\n", st.Check(true), url)
	cmd.Printf("Title: %s\n", doc.Title)
	cmd.Printf("Content length: %d characters\n", utf8.RuneCountInString(doc.Content))
	cmd.Printf("Word count: %d\n", doc.WordCount)
	cmd.Printf("Content preview: %s\n", contentPreview(doc.Content, previewRunes))
	return nil
}

func scrapeAll(cmd *cobra.Command, st *styles.Styles, session *Session) error {
	coll, err := session.Collector.Collect(cmd.Context())
	if err != nil {
		cmd.Printf("%s Collection failed: %v\n", st.Check(false), err)
		return errSilent
	}

	t := newTable("URL", "TITLE", "WORDS", "SOURCE")
	for _, doc := range coll.Documents {
		t.Row(doc.URL, doc.Title, strconv.Itoa(doc.WordCount), documentSource(coll, doc))
	}
	cmd.Println(t.String())

	cmd.Printf("\n%d documents, %d from fallback content\n", len(coll.Documents), coll.FallbackCount())
	if coll.FullFallback {
		cmd.Println(st.Warning.Render("No page could be scraped; the full fallback corpus was used."))
	}
	return nil
}

func documentSource(coll domain.Collection, doc domain.Document) string {
	if coll.FullFallback || coll.FromFallback[doc.URL] {
		return "fallback"
	}
	return "scraped"
}

// newTable returns a plain bordered table with the given headers.
func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...)
}

// contentPreview returns the first n runes of s, marking truncation with "...".
func contentPreview(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n]) + "..."
}
