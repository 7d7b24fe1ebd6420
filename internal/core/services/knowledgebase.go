package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/22Ujjwal/Multimodal-Agent/internal/core/domain"
	"github.com/22Ujjwal/Multimodal-Agent/internal/core/ports/driving"
)

var _ driving.KnowledgeBase = (*KnowledgeBase)(nil)

// smokeTopK is the number of results requested by smoke and self-test queries.
const smokeTopK = 3

// KnowledgeBase runs whole-pipeline operations.
type KnowledgeBase struct {
	p         *Pipeline
	collector *Collector
	indexer   *Indexer
	query     *QueryService
}

// NewKnowledgeBase wires the pipeline stages together.
func NewKnowledgeBase(p *Pipeline) *KnowledgeBase {
	return &KnowledgeBase{
		p:         p,
		collector: NewCollector(p),
		indexer:   NewIndexer(p),
		query:     NewQueryService(p),
	}
}

// Collector returns the collector stage.
func (kb *KnowledgeBase) Collector() *Collector { return kb.collector }

// Query returns the query stage.
func (kb *KnowledgeBase) Query() *QueryService { return kb.query }

// Setup collects and indexes documents, then runs the smoke queries.
func (kb *KnowledgeBase) Setup(ctx context.Context) (*domain.SetupReport, error) {
	log := kb.p.Log
	report := &domain.SetupReport{
		Run: domain.IndexRun{
			ID:        kb.p.RunID,
			StartedAt: kb.p.Now(),
			IndexName: kb.p.Settings.VectorStore.Index,
			Status:    domain.RunStatusRunning,
		},
	}
	kb.saveRun(ctx, report.Run)

	log.Info("Starting knowledge base setup")

	log.Info("Step 1: Scraping websites...")
	coll, err := kb.collector.Collect(ctx)
	if err != nil {
		return report, kb.fail(ctx, report, err)
	}
	report.Collection = coll
	report.Run.Documents = len(coll.Documents)
	report.Run.FallbackDocuments = coll.FallbackCount()
	kb.saveDocuments(ctx, coll)

	log.Info("Step 2: Processing and storing data...")
	n, err := kb.indexer.Index(ctx, coll.Documents)
	report.Run.Vectors = n
	if err != nil {
		return report, kb.fail(ctx, report, err)
	}

	log.Info("Step 3: Testing the system...")
	for _, q := range domain.SmokeQueries {
		results, err := kb.query.Query(ctx, q, smokeTopK)
		if err != nil {
			return report, kb.fail(ctx, report, err)
		}
		report.Smoke = append(report.Smoke, domain.SmokeQuery{Query: q, Results: results})
		log.Info("Query: '%s' - Found %d results", q, len(results))
		if len(results) > 0 {
			log.Info("Top result: %s (score: %.3f)", results[0].Title, results[0].Score)
		}
	}

	report.Run.Status = domain.RunStatusSucceeded
	report.Run.FinishedAt = kb.p.Now()
	kb.saveRun(ctx, report.Run)

	log.Info("Pipeline completed successfully in %s", report.Run.Duration().Round(time.Millisecond))
	return report, nil
}

// SelfTest checks the index, the embedding service and a sample query.
func (kb *KnowledgeBase) SelfTest(ctx context.Context) []domain.CheckResult {
	var checks []domain.CheckResult

	spec := kb.p.Settings.IndexSpec()
	if err := kb.p.Store.EnsureIndex(ctx, spec); err != nil {
		checks = append(checks, domain.CheckResult{Name: "index", Detail: err.Error()})
		return checks
	}
	checks = append(checks, domain.CheckResult{Name: "index", Passed: true, Detail: spec.Name})

	checks = append(checks, kb.checkEmbedding(ctx))

	stats, err := kb.p.Store.Stats(ctx)
	if err != nil {
		checks = append(checks, domain.CheckResult{Name: "vector_store", Detail: err.Error()})
	} else {
		detail := fmt.Sprintf("%d vectors", stats.TotalVectorCount)
		if stats.TotalVectorCount == 0 {
			detail += " (index is empty; run setup)"
		}
		checks = append(checks, domain.CheckResult{Name: "vector_store", Passed: true, Detail: detail})
	}

	checks = append(checks, kb.checkQuery(ctx))
	return checks
}

func (kb *KnowledgeBase) checkEmbedding(ctx context.Context) domain.CheckResult {
	c := domain.CheckResult{Name: "embedding"}

	v, err := kb.p.Embedder.Embed(ctx, "This is a test sentence for embedding generation.")
	want := kb.p.Settings.Embedding.Dimensions
	switch {
	case err != nil:
		c.Detail = err.Error()
	case len(v) != want:
		c.Detail = fmt.Sprintf("%v: got %d, want %d", domain.ErrDimensionMismatch, len(v), want)
	default:
		c.Passed = true
		c.Detail = fmt.Sprintf("%s, %d dimensions", kb.p.Embedder.ModelName(), len(v))
	}
	return c
}

// checkQuery passes whenever the query runs; an empty result only warns.
func (kb *KnowledgeBase) checkQuery(ctx context.Context) domain.CheckResult {
	c := domain.CheckResult{Name: "query"}

	results, err := kb.query.Query(ctx, domain.SelfTestQuery, smokeTopK)
	if err != nil {
		c.Detail = err.Error()
		return c
	}

	c.Passed = true
	if len(results) == 0 {
		c.Detail = "No results found. The knowledge base might be empty."
		return c
	}

	lines := []string{fmt.Sprintf("%q found %d results", domain.SelfTestQuery, len(results))}
	for i, r := range results[:min(2, len(results))] {
		lines = append(lines, fmt.Sprintf("%d. %s (Score: %.3f)", i+1, r.Title, r.Score))
	}
	c.Detail = strings.Join(lines, "\n")
	return c
}

// Stats returns the vector index summary.
func (kb *KnowledgeBase) Stats(ctx context.Context) (domain.IndexStats, error) {
	stats, err := kb.p.Store.Stats(ctx)
	if err != nil {
		return domain.IndexStats{}, fmt.Errorf("index stats: %w", err)
	}
	return stats, nil
}

// History returns recorded runs, newest first.
func (kb *KnowledgeBase) History(ctx context.Context, limit int) ([]domain.IndexRun, error) {
	if kb.p.Runs == nil {
		return []domain.IndexRun{}, nil
	}
	return kb.p.Runs.ListRuns(ctx, limit)
}

func (kb *KnowledgeBase) fail(ctx context.Context, report *domain.SetupReport, err error) error {
	report.Run.Status = domain.RunStatusFailed
	report.Run.Error = err.Error()
	report.Run.FinishedAt = kb.p.Now()
	// The run record outlives a cancelled command context.
	kb.saveRun(context.WithoutCancel(ctx), report.Run)
	kb.p.Log.Error("Pipeline failed: %v", err)
	return fmt.Errorf("setup: %w", err)
}

func (kb *KnowledgeBase) saveRun(ctx context.Context, run domain.IndexRun) {
	if kb.p.Runs == nil {
		return
	}
	if err := kb.p.Runs.SaveRun(ctx, run); err != nil {
		kb.p.Log.Warn("Recording run: %v", err)
	}
}

func (kb *KnowledgeBase) saveDocuments(ctx context.Context, coll domain.Collection) {
	if kb.p.Runs == nil {
		return
	}
	docs := make([]domain.CollectedDocument, len(coll.Documents))
	for i, d := range coll.Documents {
		docs[i] = domain.CollectedDocument{
			RunID:        kb.p.RunID,
			URL:          d.URL,
			Title:        d.Title,
			WordCount:    d.WordCount,
			ScrapedAt:    d.ScrapedAt,
			FromFallback: coll.FullFallback || coll.FromFallback[d.URL],
		}
	}
	if err := kb.p.Runs.SaveDocuments(ctx, docs); err != nil {
		kb.p.Log.Warn("Recording documents: %v", err)
	}
}

// IsConfigError reports whether err stems from configuration rather than
// a runtime failure.
func IsConfigError(err error) bool {
	return errors.Is(err, domain.ErrMissingCredentials) ||
		errors.Is(err, domain.ErrInvalidConfig) ||
		errors.Is(err, domain.ErrUnsupportedProvider)
}
