package cli

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/22Ujjwal/Multimodal-Agent/internal/core/domain"
)

const timeLayout = "2006-01-02 15:04:05"

var historyCmd = &cobra.Command{
	Use:   "history [run-id]",
	Short: "List recorded setup runs",
	Long: `Lists recorded setup runs, newest first. Given a run ID, shows that run
and the documents it collected. History is read from the local database
and needs no API keys.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runHistoryCmd,
}

func init() {
	historyCmd.Flags().IntP("limit", "n", 10, "Maximum number of runs")
	rootCmd.AddCommand(historyCmd)
}

func runHistoryCmd(cmd *cobra.Command, args []string) error {
	if runHistory == nil {
		return errors.New("run history not configured")
	}

	if len(args) == 1 {
		return showRun(cmd, args[0])
	}

	limit, err := cmd.Flags().GetInt("limit")
	if err != nil {
		return fmt.Errorf("getting limit flag: %w", err)
	}

	runs, err := runHistory.List(cmd.Context(), limit)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		cmd.Println("No runs recorded. Run 'kb setup' to build the knowledge base.")
		return nil
	}

	t := newTable("ID", "STARTED", "STATUS", "DOCUMENTS", "FALLBACK", "VECTORS", "DURATION")
	for _, r := range runs {
		t.Row(
			r.ID,
			r.StartedAt.Local().Format(timeLayout),
			string(r.Status),
			strconv.Itoa(r.Documents),
			strconv.Itoa(r.FallbackDocuments),
			strconv.Itoa(r.Vectors),
			formatDuration(r),
		)
	}
	cmd.Println(t.String())
	return nil
}

func showRun(cmd *cobra.Command, id string) error {
	run, docs, err := runHistory.Get(cmd.Context(), id)
	if errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("run %s not found", id)
	}
	if err != nil {
		return err
	}

	cmd.Printf("Run:       %s\n", run.ID)
	cmd.Printf("Index:     %s\n", run.IndexName)
	cmd.Printf("Started:   %s\n", run.StartedAt.Local().Format(timeLayout))
	cmd.Printf("Status:    %s\n", run.Status)
	cmd.Printf("Duration:  %s\n", formatDuration(*run))
	cmd.Printf("Documents: %d (%d from fallback content)\n", run.Documents, run.FallbackDocuments)
	cmd.Printf("Vectors:   %d\n", run.Vectors)
	if run.Error != "" {
		cmd.Printf("Error:     %s\n", run.Error)
	}

	if len(docs) == 0 {
		return nil
	}
	cmd.Println()
	t := newTable("URL", "TITLE", "WORDS", "SOURCE")
	for _, d := range docs {
		source := "scraped"
		if d.FromFallback {
			source = "fallback"
		}
		t.Row(d.URL, d.Title, strconv.Itoa(d.WordCount), source)
	}
	cmd.Println(t.String())
	return nil
}

func formatDuration(r domain.IndexRun) string {
	d := r.Duration()
	if d == 0 {
		return "-"
	}
	return d.Round(time.Second).String()
}
