package cli

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/22Ujjwal/Multimodal-Agent/internal/adapters/driving/tui/styles"
	"github.com/22Ujjwal/Multimodal-Agent/internal/core/domain"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Scrape, embed and index the Aven website",
	Long: `Runs the complete pipeline: ensures the vector index exists, scrapes
every target page (with fallback content for pages that fail), chunks and
embeds the text, stores the vectors and finally runs a few sample queries.

Exits with status 1 if the pipeline fails.`,
	Args: cobra.NoArgs,
	RunE: runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

func runSetup(cmd *cobra.Command, _ []string) error {
	st := styles.NewStyles(nil)

	session, err := newSession(cmd.Context(), SessionOptions{WithScraper: true})
	if err != nil {
		return reportSessionError(cmd, st, err)
	}
	defer session.Close()

	cmd.Println(st.Title.Render("Aven knowledge base setup"))
	cmd.Printf("Index: %s\n\n", session.Settings.VectorStore.Index)

	report, err := session.KnowledgeBase.Setup(cmd.Context())
	if err != nil {
		cmd.Printf("%s Setup failed: %v\n", st.Check(false), err)
		return errSilent
	}

	printSetupReport(cmd, st, report)
	return nil
}

func printSetupReport(cmd *cobra.Command, st *styles.Styles, report *domain.SetupReport) {
	run := report.Run
	cmd.Printf("%s Setup completed in %s\n", st.Check(true), run.Duration().Round(time.Millisecond))
	cmd.Printf("  Documents: %d (%d from fallback content)\n", run.Documents, run.FallbackDocuments)
	if report.Collection.FullFallback {
		cmd.Println(st.Warning.Render("  No page could be scraped; the full fallback corpus was indexed."))
	}
	cmd.Printf("  Vectors:   %d\n", run.Vectors)
	cmd.Printf("  Run ID:    %s\n", run.ID)

	if len(report.Smoke) == 0 {
		return
	}
	cmd.Println()
	cmd.Println(st.Subtitle.Render("Sample queries"))
	for _, sq := range report.Smoke {
		line := fmt.Sprintf("  %-36s %d results", sq.Query, len(sq.Results))
		if len(sq.Results) > 0 {
			top := sq.Results[0]
			line += fmt.Sprintf(", top: %s (%.3f)", top.Title, top.Score)
		}
		cmd.Println(line)
	}
	cmd.Println()
	cmd.Println("The knowledge base is ready to use.")
}

// reportSessionError prints a configuration failure and marks the command failed.
func reportSessionError(cmd *cobra.Command, st *styles.Styles, err error) error {
	if errors.Is(err, domain.ErrMissingCredentials) {
		missing := strings.TrimPrefix(err.Error(), domain.ErrMissingCredentials.Error()+": ")
		cmd.Printf("%s Missing environment variables: %s\n", st.Check(false), missing)
		cmd.Println("Please check your .env.local file")
		return errSilent
	}
	return err
}
