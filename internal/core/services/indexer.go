package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/22Ujjwal/Multimodal-Agent/internal/core/domain"
	"github.com/22Ujjwal/Multimodal-Agent/internal/core/ports/driving"
	"github.com/22Ujjwal/Multimodal-Agent/internal/logger"
)

var _ driving.Indexer = (*Indexer)(nil)

// Indexer turns documents into vector records and upserts them.
type Indexer struct {
	p *Pipeline
}

// NewIndexer creates an indexer for the pipeline.
func NewIndexer(p *Pipeline) *Indexer {
	return &Indexer{p: p}
}

// Index ensures the vector index exists, then chunks, embeds and stores docs.
//
// Per-item failures never abort the run: documents without content,
// chunks that fail to embed and batches that fail to upsert are logged and
// skipped. The returned count is the number of records handed to the store,
// including those in failed batches. An error is returned only when the
// index cannot be ensured or ctx is cancelled.
func (ix *Indexer) Index(ctx context.Context, docs []domain.Document) (int, error) {
	log := ix.p.Log.With("stage", "index")

	spec := ix.p.Settings.IndexSpec()
	if err := ix.p.Store.EnsureIndex(ctx, spec); err != nil {
		return 0, fmt.Errorf("%w: %s: %w", domain.ErrIndexUnavailable, spec.Name, err)
	}

	var records []domain.VectorRecord
	for i := range docs {
		if err := ctx.Err(); err != nil {
			return 0, err
		}
		records = append(records, ix.documentRecords(ctx, log, &docs[i])...)
	}

	if len(records) == 0 {
		log.Warn("No vectors to store")
		return 0, nil
	}

	failed, err := ix.upsert(ctx, log, records)
	if err != nil {
		return len(records), err
	}

	log.Info("Stored %d vectors in %s (%d in failed batches)", len(records)-failed, spec.Name, failed)
	return len(records), nil
}

// documentRecords builds the records of one document.
func (ix *Indexer) documentRecords(ctx context.Context, log *logger.Logger, doc *domain.Document) []domain.VectorRecord {
	log = log.With("url", doc.URL)

	if strings.TrimSpace(doc.Content) == "" {
		log.Warn("No content found for %s", doc.URL)
		return nil
	}

	full := *doc
	full.Content = withExtractedData(doc.Content, doc.ExtractedData)

	chunks, err := ix.p.Chunker.Process(ctx, &full)
	if err != nil {
		log.Error("Chunking failed: %v", err)
		return nil
	}
	log.Info("Created %d chunks", len(chunks))

	vectors := ix.embedChunks(ctx, log, chunks)

	s := ix.p.Settings.Indexing
	records := make([]domain.VectorRecord, 0, len(chunks))
	for i, c := range chunks {
		if vectors[i] == nil {
			continue
		}
		records = append(records, domain.VectorRecord{
			ID:     domain.VectorID(doc.URL, c.Index),
			Values: vectors[i],
			Metadata: domain.VectorMetadata{
				URL:        doc.URL,
				Title:      doc.Title,
				ChunkIndex: c.Index,
				Content:    truncateRunes(c.Text, s.PreviewLength),
				ScrapedAt:  formatTimestamp(doc.ScrapedAt),
				WordCount:  domain.CountWords(c.Text),
				Source:     s.SourceTag,
			},
		})
	}
	return records
}

// embedChunks embeds every chunk, leaving nil in the slot of any chunk that
// failed. At most Embedding.Concurrency calls run at once.
func (ix *Indexer) embedChunks(ctx context.Context, log *logger.Logger, chunks []domain.Chunk) [][]float32 {
	vectors := make([][]float32, len(chunks))
	dim := ix.p.Settings.Embedding.Dimensions

	var g errgroup.Group
	g.SetLimit(ix.p.Settings.Embedding.Concurrency)

	for i := range chunks {
		g.Go(func() error {
			if ctx.Err() != nil {
				return nil
			}
			v, err := ix.p.Embedder.Embed(ctx, chunks[i].Text)
			switch {
			case err != nil:
				log.Error("Embedding chunk %d failed: %v", chunks[i].Index, err)
			case len(v) == 0:
				log.Error("Embedding chunk %d: %v", chunks[i].Index, domain.ErrEmptyEmbedding)
			case len(v) != dim:
				log.Error("Embedding chunk %d: %v: got %d, want %d",
					chunks[i].Index, domain.ErrDimensionMismatch, len(v), dim)
			default:
				vectors[i] = v
			}
			return nil
		})
	}
	_ = g.Wait()

	return vectors
}

// upsert writes records in batches and returns how many records were in
// batches that failed.
func (ix *Indexer) upsert(ctx context.Context, log *logger.Logger, records []domain.VectorRecord) (int, error) {
	size := ix.p.Settings.Indexing.BatchSize
	total := (len(records) + size - 1) / size
	failed := 0

	for start, n := 0, 1; start < len(records); start, n = start+size, n+1 {
		if err := ctx.Err(); err != nil {
			return failed, err
		}
		end := min(start+size, len(records))

		if err := ix.p.Store.Upsert(ctx, records[start:end]); err != nil {
			failed += end - start
			log.Error("Error upserting batch %d/%d: %v", n, total, err)
			continue
		}
		log.Info("Upserted batch %d/%d", n, total)
	}
	return failed, nil
}

// withExtractedData appends structured scraper output to content.
func withExtractedData(content string, data map[string]any) string {
	if len(data) == 0 {
		return content
	}
	b, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return content
	}
	return content + "\n\nExtracted Information:\n" + string(b)
}

func truncateRunes(s string, n int) string {
	if n <= 0 {
		return s
	}
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}

func formatTimestamp(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.RFC3339)
}
