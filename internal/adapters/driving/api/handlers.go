package api

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/22Ujjwal/Multimodal-Agent/internal/core/domain"
)

// Messages returned to the voice assistant.
const (
	msgNoQuery         = "No search query provided"
	msgUnknownFunction = "Function not recognized"
	msgSearchFailed    = "I encountered an issue searching the knowledge base. Let me provide you with general information about AVEN's services, or you can contact customer service at 1-800-AVEN-123 for specific details."
	msgTechnical       = "I'm experiencing technical difficulties. Please try again or contact AVEN customer service at 1-800-AVEN-123."
)

// FunctionSearchKnowledgeBase is the voice-assistant function served by
// VapiFunctionsHandler.
const FunctionSearchKnowledgeBase = "search_knowledge_base"

// summaryResults and summaryChars bound the voice summary.
const (
	summaryResults = 3
	summaryChars   = 200
)

type knowledgeBaseRequest struct {
	Query string `json:"query"`
}

type functionCallRequest struct {
	Function *struct {
		Name       string `json:"name"`
		Parameters struct {
			Query string `json:"query"`
		} `json:"parameters"`
	} `json:"function"`
}

// HealthHandler reports liveness.
func (a *API) HealthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// KnowledgeBaseHandler answers a query from the web front end.
func (a *API) KnowledgeBaseHandler(c *gin.Context) {
	var payload knowledgeBaseRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		a.log.Warn("Invalid knowledge base request: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query knowledge base"})
		return
	}

	query := strings.TrimSpace(payload.Query)
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Query is required"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"results": a.lookup(c.Request.Context(), query)})
}

// VapiFunctionsHandler serves function calls from the voice assistant.
// Every outcome is a 200 with a spoken result, except malformed bodies.
func (a *API) VapiFunctionsHandler(c *gin.Context) {
	var payload functionCallRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		a.log.Warn("Invalid function call: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"result": msgTechnical})
		return
	}

	if payload.Function == nil || payload.Function.Name != FunctionSearchKnowledgeBase {
		c.JSON(http.StatusOK, gin.H{"result": msgUnknownFunction})
		return
	}

	query := strings.TrimSpace(payload.Function.Parameters.Query)
	if query == "" {
		c.JSON(http.StatusOK, gin.H{"result": msgNoQuery})
		return
	}

	a.log.Info("Searching knowledge base for: %s", query)

	ctx, cancel := context.WithTimeout(c.Request.Context(), a.queryTimeout)
	defer cancel()

	c.JSON(http.StatusOK, gin.H{"result": VoiceSummary(query, a.lookup(ctx, query))})
}

// StatsHandler returns the vector index summary.
func (a *API) StatsHandler(c *gin.Context) {
	if a.kb == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "stats not available"})
		return
	}

	stats, err := a.kb.Stats(c.Request.Context())
	if err != nil {
		a.log.Error("Failed to get index stats: %v", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Failed to get index stats"})
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (a *API) lookup(ctx context.Context, query string) domain.QueryResponse {
	results, err := a.query.Query(ctx, query, a.topK)
	if err != nil {
		return domain.QueryErrorResponse(query, err)
	}
	return domain.NewQueryResponse(query, results)
}

// VoiceSummary renders a query response as text for the voice assistant.
func VoiceSummary(query string, resp domain.QueryResponse) string {
	if !resp.Success {
		return msgSearchFailed
	}
	if len(resp.Results) == 0 {
		return fmt.Sprintf("I searched AVEN's knowledge base for \"%s\" but didn't find specific information. "+
			"However, I can provide general guidance about AVEN's services. "+
			"For detailed information, I recommend contacting AVEN customer service at 1-800-AVEN-123.", query)
	}

	top := resp.Results
	if len(top) > summaryResults {
		top = top[:summaryResults]
	}

	lines := make([]string, len(top))
	for i, r := range top {
		lines[i] = fmt.Sprintf("%d. From %s (Relevance: %.1f%%): %s...",
			i+1, r.Title, r.Score*100, firstRunes(r.Content, summaryChars))
	}

	return fmt.Sprintf("Found %d relevant results for \"%s\":\n\n%s\n\n"+
		"Based on this information from AVEN's website, I can help answer your question.",
		len(resp.Results), query, strings.Join(lines, "\n\n"))
}

func firstRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
