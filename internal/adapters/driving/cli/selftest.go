package cli

import (
	"github.com/spf13/cobra"

	"github.com/22Ujjwal/Multimodal-Agent/internal/adapters/driving/tui/styles"
)

var testCmd = &cobra.Command{
	Use:   "test",
	Short: "Check the embedding service, the index and a sample query",
	Long: `Runs a quick check of an existing knowledge base. The index must be
reachable, the embedding service must return a vector of the configured
size and a sample query must complete. An empty index is reported but does
not fail the check.

Exits with status 1 if any check fails.`,
	Args: cobra.NoArgs,
	RunE: runTest,
}

func init() {
	rootCmd.AddCommand(testCmd)
}

func runTest(cmd *cobra.Command, _ []string) error {
	st := styles.NewStyles(nil)

	session, err := newSession(cmd.Context(), SessionOptions{})
	if err != nil {
		return reportSessionError(cmd, st, err)
	}
	defer session.Close()

	cmd.Println(st.Title.Render("Aven knowledge base self-test"))

	failed := 0
	for _, c := range session.KnowledgeBase.SelfTest(cmd.Context()) {
		cmd.Printf("%s %-13s %s\n", st.Check(c.Passed), c.Name, c.Detail)
		if !c.Passed {
			failed++
		}
	}

	if failed > 0 {
		cmd.Printf("\n%d check(s) failed. Please check configuration.\n", failed)
		return errSilent
	}
	cmd.Println("\nAll checks passed.")
	return nil
}
