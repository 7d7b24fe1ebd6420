package mcp

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/22Ujjwal/Multimodal-Agent/internal/core/domain"
)

// Helper to create a ReadResourceRequest with the given URI.
func makeReadResourceRequest(uri string) *mcp.ReadResourceRequest {
	return &mcp.ReadResourceRequest{
		Params: &mcp.ReadResourceParams{
			URI: uri,
		},
	}
}

func TestServer_handleStatsResource(t *testing.T) {
	ctx := context.Background()

	t.Run("nil knowledge base returns not found", func(t *testing.T) {
		server, err := NewServer(&Ports{Query: &mockQueryService{}})
		require.NoError(t, err)

		_, err = server.handleStatsResource(ctx, makeReadResourceRequest("kb://stats"))
		require.Error(t, err)
	})

	t.Run("returns stats", func(t *testing.T) {
		kb := &mockKnowledgeBase{stats: domain.IndexStats{TotalVectorCount: 42, Dimension: 768}}
		server, err := NewServer(&Ports{Query: &mockQueryService{}, KnowledgeBase: kb})
		require.NoError(t, err)

		result, err := server.handleStatsResource(ctx, makeReadResourceRequest("kb://stats"))

		require.NoError(t, err)
		require.Len(t, result.Contents, 1)
		assert.Equal(t, "application/json", result.Contents[0].MIMEType)
		assert.JSONEq(t, `{"total_vector_count": 42, "dimension": 768}`, result.Contents[0].Text)
	})

	t.Run("returns error on stats failure", func(t *testing.T) {
		kb := &mockKnowledgeBase{err: domain.ErrIndexUnavailable}
		server, err := NewServer(&Ports{Query: &mockQueryService{}, KnowledgeBase: kb})
		require.NoError(t, err)

		_, err = server.handleStatsResource(ctx, makeReadResourceRequest("kb://stats"))

		require.ErrorIs(t, err, domain.ErrIndexUnavailable)
	})
}

func TestServer_handleRunsResource(t *testing.T) {
	ctx := context.Background()

	t.Run("nil knowledge base returns empty list", func(t *testing.T) {
		server, err := NewServer(&Ports{Query: &mockQueryService{}})
		require.NoError(t, err)

		result, err := server.handleRunsResource(ctx, makeReadResourceRequest("kb://runs"))

		require.NoError(t, err)
		require.Len(t, result.Contents, 1)
		assert.Equal(t, "[]", result.Contents[0].Text)
	})

	t.Run("returns runs", func(t *testing.T) {
		kb := &mockKnowledgeBase{
			runs: []domain.IndexRun{
				{
					ID:                "run-1",
					IndexName:         "customer-support-kb",
					Status:            domain.RunStatusSucceeded,
					StartedAt:         time.Date(2025, 7, 27, 14, 0, 0, 0, time.UTC),
					Documents:         7,
					FallbackDocuments: 2,
					Vectors:           31,
				},
			},
		}
		server, err := NewServer(&Ports{Query: &mockQueryService{}, KnowledgeBase: kb})
		require.NoError(t, err)

		result, err := server.handleRunsResource(ctx, makeReadResourceRequest("kb://runs"))

		require.NoError(t, err)
		assert.Equal(t, historyLimit, kb.lastLimit)
		text := result.Contents[0].Text
		assert.Contains(t, text, `"id": "run-1"`)
		assert.Contains(t, text, `"started_at": "2025-07-27T14:00:00Z"`)
		assert.Contains(t, text, `"fallback_documents": 2`)
		assert.NotContains(t, text, `"error"`)
	})

	t.Run("returns error on history failure", func(t *testing.T) {
		kb := &mockKnowledgeBase{err: errors.New("database error")}
		server, err := NewServer(&Ports{Query: &mockQueryService{}, KnowledgeBase: kb})
		require.NoError(t, err)

		_, err = server.handleRunsResource(ctx, makeReadResourceRequest("kb://runs"))

		require.Error(t, err)
		assert.Contains(t, err.Error(), "listing runs")
	})
}
