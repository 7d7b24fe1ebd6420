package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/22Ujjwal/Multimodal-Agent/internal/core/domain"
	"github.com/22Ujjwal/Multimodal-Agent/internal/core/ports/driven"
)

// Ensure RunStore implements the interface.
var _ driven.RunStore = (*RunStore)(nil)

// RunStore is an in-memory implementation of driven.RunStore.
type RunStore struct {
	mu   sync.RWMutex
	runs map[string]domain.IndexRun
	docs map[string][]domain.CollectedDocument
}

// NewRunStore creates an empty in-memory run ledger.
func NewRunStore() *RunStore {
	return &RunStore{
		runs: make(map[string]domain.IndexRun),
		docs: make(map[string][]domain.CollectedDocument),
	}
}

// SaveRun inserts or replaces a run.
func (s *RunStore) SaveRun(_ context.Context, run domain.IndexRun) error {
	if run.ID == "" {
		return domain.ErrInvalidInput
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.runs[run.ID] = run
	return nil
}

// GetRun returns the run with the given ID.
func (s *RunStore) GetRun(_ context.Context, id string) (*domain.IndexRun, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	run, ok := s.runs[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &run, nil
}

// ListRuns returns runs newest first. A non-positive limit returns all.
func (s *RunStore) ListRuns(_ context.Context, limit int) ([]domain.IndexRun, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	runs := make([]domain.IndexRun, 0, len(s.runs))
	for _, r := range s.runs {
		runs = append(runs, r)
	}
	sort.Slice(runs, func(i, j int) bool {
		return runs[i].StartedAt.After(runs[j].StartedAt)
	})
	if limit > 0 && len(runs) > limit {
		runs = runs[:limit]
	}
	return runs, nil
}

// SaveDocuments appends documents to the runs they reference.
func (s *RunStore) SaveDocuments(_ context.Context, docs []domain.CollectedDocument) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, d := range docs {
		if _, ok := s.runs[d.RunID]; !ok {
			return domain.ErrNotFound
		}
	}
	for _, d := range docs {
		s.docs[d.RunID] = append(s.docs[d.RunID], d)
	}
	return nil
}

// ListDocuments returns the documents recorded for a run in insertion order.
func (s *RunStore) ListDocuments(_ context.Context, runID string) ([]domain.CollectedDocument, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	docs := s.docs[runID]
	out := make([]domain.CollectedDocument, len(docs))
	copy(out, docs)
	return out, nil
}
