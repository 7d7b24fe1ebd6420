package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/22Ujjwal/Multimodal-Agent/internal/adapters/driving/api"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	Long: `Starts the HTTP API used by the chat frontend and the voice assistant.

Endpoints:
  POST /api/knowledge-base   {"query": "..."} -> {"results": {...}}
  POST /api/vapi-functions   voice assistant function calls
  GET  /api/stats            vector index statistics
  GET  /healthz              liveness probe`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().String("addr", ":3001", "Listen address")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	addr, err := cmd.Flags().GetString("addr")
	if err != nil {
		return fmt.Errorf("getting addr flag: %w", err)
	}

	session, err := newSession(cmd.Context(), SessionOptions{Ping: true})
	if err != nil {
		return err
	}
	defer session.Close()

	a, err := api.NewAPI(api.Config{
		Query:         session.Query,
		KnowledgeBase: session.KnowledgeBase,
		TopK:          session.Settings.TopK,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "API listening on http://localhost%s\n", addr)
	return api.Run(cmd.Context(), addr, api.NewRouter(a))
}
