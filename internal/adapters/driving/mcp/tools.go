package mcp

import (
	"context"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/22Ujjwal/Multimodal-Agent/internal/core/domain"
)

// ToolSearchKnowledgeBase is the name of the search tool.
const ToolSearchKnowledgeBase = "search_knowledge_base"

// SearchInput is the input schema for the search tool.
type SearchInput struct {
	Query string `json:"query" jsonschema:"the customer question to look up"`
	TopK  int    `json:"top_k,omitempty" jsonschema:"maximum number of results to return (default 5)"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        ToolSearchKnowledgeBase,
		Description: "Search the Aven website knowledge base for passages relevant to a question",
	}, s.handleSearch)
}

// handleSearch handles the search tool invocation. Failures are reported
// in the response body rather than as protocol errors.
func (s *Server) handleSearch(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchInput,
) (*mcp.CallToolResult, domain.QueryResponse, error) {
	query := strings.TrimSpace(input.Query)

	topK := input.TopK
	if topK <= 0 {
		topK = s.ports.TopK
	}
	if topK <= 0 {
		topK = domain.DefaultTopK
	}

	results, err := s.ports.Query.Query(ctx, query, topK)
	if err != nil {
		return nil, domain.QueryErrorResponse(query, err), nil
	}
	return nil, domain.NewQueryResponse(query, results), nil
}
