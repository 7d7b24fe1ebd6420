package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/22Ujjwal/Multimodal-Agent/internal/core/domain"
	"github.com/22Ujjwal/Multimodal-Agent/internal/core/ports/driven"
	"github.com/22Ujjwal/Multimodal-Agent/internal/logger"
	"github.com/22Ujjwal/Multimodal-Agent/internal/postprocessors"
)

// Pipeline is the explicit context shared by the stages of one run.
// It is built once per command and handed to the collector, indexer and
// query service; nothing in the pipeline relies on package-level state.
type Pipeline struct {
	// RunID identifies this run in logs and run history.
	RunID    string
	Settings domain.Settings
	Log      *logger.Logger

	Scraper  driven.Scraper
	Embedder driven.EmbeddingService
	Store    driven.VectorStore
	Fallback driven.FallbackCorpus
	Chunker  driven.PostProcessorPipeline

	// Runs is optional; when nil, runs are not recorded.
	Runs driven.RunStore

	// Now returns the current time. Tests replace it.
	Now func() time.Time
}

// Deps are the collaborators of a pipeline.
type Deps struct {
	Scraper  driven.Scraper
	Embedder driven.EmbeddingService
	Store    driven.VectorStore
	Fallback driven.FallbackCorpus
	Runs     driven.RunStore
}

// NewPipeline validates settings and builds a pipeline context.
// Scraper and Fallback may be nil for query-only use.
func NewPipeline(settings domain.Settings, deps Deps) (*Pipeline, error) {
	if err := settings.Validate(); err != nil {
		return nil, err
	}
	if deps.Embedder == nil {
		return nil, errors.New("pipeline: embedding service is required")
	}
	if deps.Store == nil {
		return nil, errors.New("pipeline: vector store is required")
	}

	chunker, err := postprocessors.NewDefaultPipeline(settings.Chunking)
	if err != nil {
		return nil, fmt.Errorf("pipeline: %w", err)
	}

	runID := uuid.NewString()
	return &Pipeline{
		RunID:    runID,
		Settings: settings,
		Log:      logger.New("run_id", runID),
		Scraper:  deps.Scraper,
		Embedder: deps.Embedder,
		Store:    deps.Store,
		Fallback: deps.Fallback,
		Chunker:  chunker,
		Runs:     deps.Runs,
		Now:      time.Now,
	}, nil
}

// Close releases the pipeline's collaborators.
func (p *Pipeline) Close() error {
	var errs []error
	if p.Embedder != nil {
		errs = append(errs, p.Embedder.Close())
	}
	if p.Store != nil {
		errs = append(errs, p.Store.Close())
	}
	return errors.Join(errs...)
}
