package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	uriScheme = "kb://"

	// historyLimit caps the runs returned by the history resource.
	historyLimit = 20
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "stats",
		Name:        "stats",
		Description: "Vector index statistics",
		MIMEType:    "application/json",
	}, s.handleStatsResource)

	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "runs",
		Name:        "runs",
		Description: "Recent knowledge base setup runs, newest first",
		MIMEType:    "application/json",
	}, s.handleRunsResource)
}

// handleStatsResource returns the vector index summary.
func (s *Server) handleStatsResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.KnowledgeBase == nil {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	stats, err := s.ports.KnowledgeBase.Stats(ctx)
	if err != nil {
		return nil, fmt.Errorf("getting index stats: %w", err)
	}

	return jsonResource(req.Params.URI, stats)
}

// handleRunsResource returns recent index runs.
func (s *Server) handleRunsResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.KnowledgeBase == nil {
		return jsonResource(req.Params.URI, []runInfo{})
	}

	runs, err := s.ports.KnowledgeBase.History(ctx, historyLimit)
	if err != nil {
		return nil, fmt.Errorf("listing runs: %w", err)
	}

	infos := make([]runInfo, len(runs))
	for i := range runs {
		infos[i] = runInfo{
			ID:                runs[i].ID,
			Index:             runs[i].IndexName,
			Status:            string(runs[i].Status),
			StartedAt:         runs[i].StartedAt.UTC().Format(time.RFC3339),
			Documents:         runs[i].Documents,
			FallbackDocuments: runs[i].FallbackDocuments,
			Vectors:           runs[i].Vectors,
			Error:             runs[i].Error,
		}
	}

	return jsonResource(req.Params.URI, infos)
}

type runInfo struct {
	ID                string `json:"id"`
	Index             string `json:"index"`
	Status            string `json:"status"`
	StartedAt         string `json:"started_at"`
	Documents         int    `json:"documents"`
	FallbackDocuments int    `json:"fallback_documents"`
	Vectors           int    `json:"vectors"`
	Error             string `json:"error,omitempty"`
}

func jsonResource(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling %s: %w", uri, err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}
