package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/22Ujjwal/Multimodal-Agent/internal/adapters/driving/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Expose the knowledge base to assistants over MCP",
}

var mcpServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server",
	Long: `Starts a Model Context Protocol server offering the search_knowledge_base
tool and the kb://stats and kb://runs resources.

Without --addr the server speaks JSON-RPC on stdin/stdout, which is what
desktop assistants expect when they launch kb themselves. With --addr it
serves the streamable HTTP transport instead.

Examples:
  kb mcp serve
  kb mcp serve --addr :8080`,
	Args: cobra.NoArgs,
	RunE: runMCPServe,
}

func init() {
	mcpServeCmd.Flags().String("addr", "", "HTTP listen address (empty = stdio)")
	mcpCmd.AddCommand(mcpServeCmd)
	rootCmd.AddCommand(mcpCmd)
}

func runMCPServe(cmd *cobra.Command, _ []string) error {
	addr, err := cmd.Flags().GetString("addr")
	if err != nil {
		return fmt.Errorf("getting addr flag: %w", err)
	}

	session, err := newSession(cmd.Context(), SessionOptions{})
	if err != nil {
		return err
	}
	defer session.Close()

	server, err := mcp.NewServer(&mcp.Ports{
		Query:         session.Query,
		KnowledgeBase: session.KnowledgeBase,
		TopK:          session.Settings.TopK,
	})
	if err != nil {
		return fmt.Errorf("creating MCP server: %w", err)
	}

	if addr != "" {
		return server.RunHTTP(cmd.Context(), addr)
	}
	return server.Run(cmd.Context())
}
