package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/22Ujjwal/Multimodal-Agent/internal/core/domain"
	"github.com/22Ujjwal/Multimodal-Agent/internal/logger"
)

// msgQueryRequired is reported when the query argument is missing.
const msgQueryRequired = "Query parameter required"

var queryCmd = &cobra.Command{
	Use:   "query <text>",
	Short: "Query the knowledge base and print JSON",
	Long: `Embeds the query text and prints the closest chunks as a single JSON
object on stdout:

  {"success":true,"query":"...","results":[...],"total_results":N}

On failure the object has "success":false and an "error" message, and the
command exits with status 1. Logging is limited to errors so that stdout
stays machine-readable.`,
	// The argument count is checked in runQuery so the failure is reported as JSON.
	Args:              cobra.ArbitraryArgs,
	PersistentPreRunE: initQuery,
	RunE:              runQuery,
}

func init() {
	queryCmd.Flags().IntP("top-k", "k", 0, "Number of results (0 = configured default)")
	rootCmd.AddCommand(queryCmd)
}

func initQuery(cmd *cobra.Command, args []string) error {
	if err := configureLogging(cmd); err != nil {
		return err
	}
	logger.SetQuiet()

	if err := ensureServices(cmd); err != nil {
		query := ""
		if len(args) == 1 {
			query = args[0]
		}
		return writeQueryFailure(cmd, domain.QueryErrorResponse(query, err))
	}
	return nil
}

func runQuery(cmd *cobra.Command, args []string) error {
	if len(args) != 1 {
		return writeQueryFailure(cmd, domain.QueryResponse{
			Error:   msgQueryRequired,
			Results: []domain.QueryResult{},
		})
	}
	query := args[0]

	topK, err := cmd.Flags().GetInt("top-k")
	if err != nil {
		return fmt.Errorf("getting top-k flag: %w", err)
	}

	session, err := newSession(cmd.Context(), SessionOptions{})
	if err != nil {
		return writeQueryFailure(cmd, domain.QueryErrorResponse(query, err))
	}
	defer session.Close()

	results, err := session.Query.Query(cmd.Context(), query, topK)
	if err != nil {
		return writeQueryFailure(cmd, domain.QueryErrorResponse(query, err))
	}
	return writeJSON(cmd, domain.NewQueryResponse(query, results))
}

func writeQueryFailure(cmd *cobra.Command, resp domain.QueryResponse) error {
	if err := writeJSON(cmd, resp); err != nil {
		return err
	}
	return errSilent
}

// writeJSON prints v as a single line of JSON.
func writeJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encoding output: %w", err)
	}
	return nil
}
