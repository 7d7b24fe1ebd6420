package services

import (
	"context"
	"fmt"

	"github.com/22Ujjwal/Multimodal-Agent/internal/core/domain"
	"github.com/22Ujjwal/Multimodal-Agent/internal/core/ports/driven"
	"github.com/22Ujjwal/Multimodal-Agent/internal/core/ports/driving"
)

var _ driving.RunHistory = (*RunHistory)(nil)

// RunHistory exposes the run store to driving adapters.
type RunHistory struct {
	runs driven.RunStore
}

// NewRunHistory creates a history reader over runs.
func NewRunHistory(runs driven.RunStore) *RunHistory {
	return &RunHistory{runs: runs}
}

// List returns up to limit runs, newest first.
func (h *RunHistory) List(ctx context.Context, limit int) ([]domain.IndexRun, error) {
	runs, err := h.runs.ListRuns(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	return runs, nil
}

// Get returns a run and its collected documents.
func (h *RunHistory) Get(ctx context.Context, id string) (*domain.IndexRun, []domain.CollectedDocument, error) {
	run, err := h.runs.GetRun(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	docs, err := h.runs.ListDocuments(ctx, id)
	if err != nil {
		return nil, nil, fmt.Errorf("list documents: %w", err)
	}
	return run, docs, nil
}
