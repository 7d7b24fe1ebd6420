package services

import (
	"context"
	"strings"

	"github.com/22Ujjwal/Multimodal-Agent/internal/core/domain"
	"github.com/22Ujjwal/Multimodal-Agent/internal/core/ports/driving"
)

var _ driving.QueryService = (*QueryService)(nil)

// QueryService answers queries by nearest-neighbour lookup.
type QueryService struct {
	p *Pipeline
}

// NewQueryService creates a query service for the pipeline.
func NewQueryService(p *Pipeline) *QueryService {
	return &QueryService{p: p}
}

// Query embeds text and returns the store's top matches in store order.
//
// An embedding or store failure is logged at error level and yields an
// empty, non-nil slice; no retries are made. A non-positive topK uses the
// configured default. Only an empty query is reported as an error.
func (q *QueryService) Query(ctx context.Context, text string, topK int) ([]domain.QueryResult, error) {
	if strings.TrimSpace(text) == "" {
		return []domain.QueryResult{}, domain.ErrEmptyQuery
	}
	if topK <= 0 {
		topK = q.p.Settings.TopK
	}

	log := q.p.Log.With("stage", "query")

	vector, err := q.p.Embedder.Embed(ctx, text)
	if err != nil {
		log.Error("Error generating query embedding: %v", err)
		return []domain.QueryResult{}, nil
	}
	if len(vector) == 0 {
		log.Error("Error generating query embedding: %v", domain.ErrEmptyEmbedding)
		return []domain.QueryResult{}, nil
	}

	matches, err := q.p.Store.Query(ctx, vector, topK, true)
	if err != nil {
		log.Error("Error querying knowledge base: %v", err)
		return []domain.QueryResult{}, nil
	}

	results := make([]domain.QueryResult, len(matches))
	for i, m := range matches {
		results[i] = domain.QueryResultFromMatch(m)
	}
	log.Debug("Query %q returned %d results", text, len(results))
	return results, nil
}
