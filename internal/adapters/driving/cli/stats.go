package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/22Ujjwal/Multimodal-Agent/internal/adapters/driving/tui/styles"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show vector index statistics",
	Args:  cobra.NoArgs,
	RunE:  runStats,
}

func init() {
	statsCmd.Flags().Bool("json", false, "Print the statistics as JSON")
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, _ []string) error {
	asJSON, err := cmd.Flags().GetBool("json")
	if err != nil {
		return fmt.Errorf("getting json flag: %w", err)
	}

	st := styles.NewStyles(nil)
	session, err := newSession(cmd.Context(), SessionOptions{})
	if err != nil {
		return reportSessionError(cmd, st, err)
	}
	defer session.Close()

	stats, err := session.KnowledgeBase.Stats(cmd.Context())
	if err != nil {
		return err
	}

	if asJSON {
		return writeJSON(cmd, stats)
	}
	cmd.Printf("Index:     %s\n", session.Settings.VectorStore.Index)
	cmd.Printf("Vectors:   %d\n", stats.TotalVectorCount)
	cmd.Printf("Dimension: %d\n", stats.Dimension)
	return nil
}
