package mcp

import (
	"context"

	"github.com/22Ujjwal/Multimodal-Agent/internal/core/domain"
)

// mockQueryService is a mock implementation of driving.QueryService.
type mockQueryService struct {
	results   []domain.QueryResult
	err       error
	lastQuery string
	lastTopK  int
}

func (m *mockQueryService) Query(_ context.Context, text string, topK int) ([]domain.QueryResult, error) {
	m.lastQuery = text
	m.lastTopK = topK
	return m.results, m.err
}

// mockKnowledgeBase is a mock implementation of driving.KnowledgeBase.
type mockKnowledgeBase struct {
	stats     domain.IndexStats
	runs      []domain.IndexRun
	err       error
	lastLimit int
}

func (m *mockKnowledgeBase) Setup(_ context.Context) (*domain.SetupReport, error) {
	return nil, m.err
}

func (m *mockKnowledgeBase) SelfTest(_ context.Context) []domain.CheckResult {
	return nil
}

func (m *mockKnowledgeBase) Stats(_ context.Context) (domain.IndexStats, error) {
	return m.stats, m.err
}

func (m *mockKnowledgeBase) History(_ context.Context, limit int) ([]domain.IndexRun, error) {
	m.lastLimit = limit
	return m.runs, m.err
}
