// Package milvus provides a vector store adapter for Milvus collections.
package milvus

import (
	"context"
	"fmt"
	"strconv"
	"sync"

	"github.com/milvus-io/milvus-sdk-go/v2/client"
	"github.com/milvus-io/milvus-sdk-go/v2/entity"

	"github.com/22Ujjwal/Multimodal-Agent/internal/core/domain"
	"github.com/22Ujjwal/Multimodal-Agent/internal/core/ports/driven"
	"github.com/22Ujjwal/Multimodal-Agent/internal/logger"
)

// Ensure Store implements the interface.
var _ driven.VectorStore = (*Store)(nil)

// DefaultAddress is used when no address is configured.
const DefaultAddress = "localhost:19530"

// Collection fields.
const (
	FieldID         = "id"
	FieldEmbedding  = "embedding"
	FieldURL        = "url"
	FieldTitle      = "title"
	FieldChunkIndex = "chunk_index"
	FieldContent    = "content"
	FieldScrapedAt  = "scraped_at"
	FieldWordCount  = "word_count"
	FieldSource     = "source"
)

// VarChar limits, in bytes.
const (
	maxIDLength      = 64
	maxURLLength     = 2048
	maxTitleLength   = 1024
	maxContentLength = 8192
	maxShortLength   = 64
)

var outputFields = []string{
	FieldURL, FieldTitle, FieldChunkIndex, FieldContent, FieldScrapedAt, FieldWordCount, FieldSource,
}

// Config holds configuration for the Milvus store.
type Config struct {
	// Address is the Milvus gRPC address (default: localhost:19530).
	Address string

	// APIKey authenticates against managed Milvus (Zilliz Cloud). Optional.
	APIKey string

	// Collection is used until EnsureIndex names another.
	Collection string

	// Metric is used for searches until EnsureIndex sets it.
	Metric domain.Metric
}

// Store is a Milvus-backed vector store.
type Store struct {
	client client.Client
	log    *logger.Logger

	mu         sync.Mutex
	collection string
	metric     entity.MetricType
	loaded     bool
}

// NewStore connects to Milvus.
func NewStore(ctx context.Context, cfg Config) (*Store, error) {
	if cfg.Address == "" {
		cfg.Address = DefaultAddress
	}
	if cfg.Metric == "" {
		cfg.Metric = domain.MetricCosine
	}
	metric, err := metricType(cfg.Metric)
	if err != nil {
		return nil, err
	}

	c, err := client.NewClient(ctx, client.Config{Address: cfg.Address, APIKey: cfg.APIKey})
	if err != nil {
		return nil, fmt.Errorf("connecting to milvus at %s: %w", cfg.Address, err)
	}

	return &Store{
		client:     c,
		log:        logger.New("store", "milvus"),
		collection: cfg.Collection,
		metric:     metric,
	}, nil
}

// EnsureIndex creates the collection and its vector index when missing,
// then loads it for search.
func (s *Store) EnsureIndex(ctx context.Context, spec domain.IndexSpec) error {
	if spec.Name == "" {
		return fmt.Errorf("%w: collection name is empty", domain.ErrInvalidInput)
	}
	metric, err := metricType(spec.Metric)
	if err != nil {
		return err
	}

	exists, err := s.client.HasCollection(ctx, spec.Name)
	if err != nil {
		return fmt.Errorf("checking collection %s: %w", spec.Name, err)
	}

	if !exists {
		s.log.Info("Creating Milvus collection: %s", spec.Name)
		if err := s.client.CreateCollection(ctx, collectionSchema(spec), entity.DefaultShardNumber); err != nil {
			return fmt.Errorf("creating collection %s: %w", spec.Name, err)
		}
		idx, err := entity.NewIndexAUTOINDEX(metric)
		if err != nil {
			return fmt.Errorf("building index: %w", err)
		}
		if err := s.client.CreateIndex(ctx, spec.Name, FieldEmbedding, idx, false); err != nil {
			return fmt.Errorf("creating index on %s: %w", FieldEmbedding, err)
		}
	}

	if err := s.client.LoadCollection(ctx, spec.Name, false); err != nil {
		return fmt.Errorf("loading collection %s: %w", spec.Name, err)
	}

	s.mu.Lock()
	s.collection = spec.Name
	s.metric = metric
	s.loaded = true
	s.mu.Unlock()

	s.log.Info("Connected to Milvus collection: %s", spec.Name)
	return nil
}

// Upsert writes records to the collection.
func (s *Store) Upsert(ctx context.Context, records []domain.VectorRecord) error {
	if len(records) == 0 {
		return nil
	}
	coll, err := s.ready(ctx)
	if err != nil {
		return err
	}

	if _, err := s.client.Upsert(ctx, coll, "", recordColumns(records)...); err != nil {
		return fmt.Errorf("upserting into %s: %w", coll, err)
	}
	return nil
}

// Query returns the topK nearest vectors in score order.
func (s *Store) Query(ctx context.Context, values []float32, topK int, includeMetadata bool) ([]domain.VectorMatch, error) {
	coll, err := s.ready(ctx)
	if err != nil {
		return nil, err
	}

	var fields []string
	if includeMetadata {
		fields = outputFields
	}

	sp, _ := entity.NewIndexIvfFlatSearchParam(10)

	s.mu.Lock()
	metric := s.metric
	s.mu.Unlock()

	results, err := s.client.Search(
		ctx, coll, []string{}, "", fields,
		[]entity.Vector{entity.FloatVector(values)},
		FieldEmbedding, metric, topK, sp,
	)
	if err != nil {
		return nil, fmt.Errorf("searching %s: %w", coll, err)
	}

	var matches []domain.VectorMatch
	for _, res := range results {
		matches = append(matches, searchMatches(res)...)
	}
	return matches, nil
}

// Stats flushes pending writes and returns the collection row count.
func (s *Store) Stats(ctx context.Context) (domain.IndexStats, error) {
	coll, err := s.ready(ctx)
	if err != nil {
		return domain.IndexStats{}, err
	}

	if err := s.client.Flush(ctx, coll, false); err != nil {
		return domain.IndexStats{}, fmt.Errorf("flushing %s: %w", coll, err)
	}

	stats, err := s.client.GetCollectionStatistics(ctx, coll)
	if err != nil {
		return domain.IndexStats{}, fmt.Errorf("collection statistics: %w", err)
	}
	count, err := strconv.ParseInt(stats["row_count"], 10, 64)
	if err != nil {
		return domain.IndexStats{}, fmt.Errorf("parsing row_count %q: %w", stats["row_count"], err)
	}

	return domain.IndexStats{TotalVectorCount: count}, nil
}

// Close closes the connection.
func (s *Store) Close() error {
	return s.client.Close()
}

// ready loads the current collection if EnsureIndex has not run.
func (s *Store) ready(ctx context.Context) (string, error) {
	s.mu.Lock()
	coll, loaded := s.collection, s.loaded
	s.mu.Unlock()

	if coll == "" {
		return "", fmt.Errorf("%w: no collection selected", domain.ErrIndexUnavailable)
	}
	if loaded {
		return coll, nil
	}

	exists, err := s.client.HasCollection(ctx, coll)
	if err != nil {
		return "", fmt.Errorf("checking collection %s: %w", coll, err)
	}
	if !exists {
		return "", fmt.Errorf("%w: collection %s does not exist", domain.ErrIndexUnavailable, coll)
	}
	if err := s.client.LoadCollection(ctx, coll, false); err != nil {
		return "", fmt.Errorf("loading collection %s: %w", coll, err)
	}

	s.mu.Lock()
	s.loaded = true
	s.mu.Unlock()
	return coll, nil
}

func metricType(m domain.Metric) (entity.MetricType, error) {
	switch m {
	case domain.MetricCosine:
		return entity.COSINE, nil
	case domain.MetricEuclidean:
		return entity.L2, nil
	case domain.MetricDotProduct:
		return entity.IP, nil
	default:
		return "", fmt.Errorf("%w: metric %q", domain.ErrInvalidConfig, m)
	}
}

func collectionSchema(spec domain.IndexSpec) *entity.Schema {
	varchar := func(name string, max int64) *entity.Field {
		return entity.NewField().WithName(name).WithDataType(entity.FieldTypeVarChar).WithMaxLength(max)
	}

	return entity.NewSchema().
		WithName(spec.Name).
		WithDescription("Knowledge base chunks").
		WithField(varchar(FieldID, maxIDLength).WithIsPrimaryKey(true)).
		WithField(entity.NewField().WithName(FieldEmbedding).
			WithDataType(entity.FieldTypeFloatVector).WithDim(int64(spec.Dimension))).
		WithField(varchar(FieldURL, maxURLLength)).
		WithField(varchar(FieldTitle, maxTitleLength)).
		WithField(entity.NewField().WithName(FieldChunkIndex).WithDataType(entity.FieldTypeInt64)).
		WithField(varchar(FieldContent, maxContentLength)).
		WithField(varchar(FieldScrapedAt, maxShortLength)).
		WithField(entity.NewField().WithName(FieldWordCount).WithDataType(entity.FieldTypeInt64)).
		WithField(varchar(FieldSource, maxShortLength))
}

func recordColumns(records []domain.VectorRecord) []entity.Column {
	n := len(records)
	ids := make([]string, n)
	vectors := make([][]float32, n)
	urls := make([]string, n)
	titles := make([]string, n)
	chunkIdx := make([]int64, n)
	contents := make([]string, n)
	scraped := make([]string, n)
	words := make([]int64, n)
	sources := make([]string, n)

	dim := 0
	for i, r := range records {
		ids[i] = r.ID
		vectors[i] = r.Values
		dim = max(dim, len(r.Values))
		urls[i] = r.Metadata.URL
		titles[i] = truncateBytes(r.Metadata.Title, maxTitleLength)
		chunkIdx[i] = int64(r.Metadata.ChunkIndex)
		contents[i] = truncateBytes(r.Metadata.Content, maxContentLength)
		scraped[i] = r.Metadata.ScrapedAt
		words[i] = int64(r.Metadata.WordCount)
		sources[i] = r.Metadata.Source
	}

	return []entity.Column{
		entity.NewColumnVarChar(FieldID, ids),
		entity.NewColumnFloatVector(FieldEmbedding, dim, vectors),
		entity.NewColumnVarChar(FieldURL, urls),
		entity.NewColumnVarChar(FieldTitle, titles),
		entity.NewColumnInt64(FieldChunkIndex, chunkIdx),
		entity.NewColumnVarChar(FieldContent, contents),
		entity.NewColumnVarChar(FieldScrapedAt, scraped),
		entity.NewColumnInt64(FieldWordCount, words),
		entity.NewColumnVarChar(FieldSource, sources),
	}
}

// searchMatches converts one result set into matches.
func searchMatches(res client.SearchResult) []domain.VectorMatch {
	findColumn := func(name string) entity.Column {
		for _, field := range res.Fields {
			if field.Name() == name {
				return field
			}
		}
		return nil
	}
	varchars := func(name string) []string {
		if col, ok := findColumn(name).(*entity.ColumnVarChar); ok {
			return col.Data()
		}
		return nil
	}
	ints := func(name string) []int64 {
		if col, ok := findColumn(name).(*entity.ColumnInt64); ok {
			return col.Data()
		}
		return nil
	}

	var ids []string
	if col, ok := res.IDs.(*entity.ColumnVarChar); ok {
		ids = col.Data()
	}
	urls, titles, contents := varchars(FieldURL), varchars(FieldTitle), varchars(FieldContent)
	scraped, sources := varchars(FieldScrapedAt), varchars(FieldSource)
	chunkIdx, words := ints(FieldChunkIndex), ints(FieldWordCount)

	matches := make([]domain.VectorMatch, 0, res.ResultCount)
	for i := 0; i < res.ResultCount; i++ {
		m := domain.VectorMatch{
			ID:    at(ids, i),
			Score: float64(at(res.Scores, i)),
			Metadata: domain.VectorMetadata{
				URL:        at(urls, i),
				Title:      at(titles, i),
				ChunkIndex: int(at(chunkIdx, i)),
				Content:    at(contents, i),
				ScrapedAt:  at(scraped, i),
				WordCount:  int(at(words, i)),
				Source:     at(sources, i),
			},
		}
		matches = append(matches, m)
	}
	return matches
}

func at[T any](s []T, i int) T {
	var zero T
	if i < len(s) {
		return s[i]
	}
	return zero
}

// truncateBytes cuts s to at most n bytes on a rune boundary.
func truncateBytes(s string, n int) string {
	if len(s) <= n {
		return s
	}
	cut := 0
	for i := range s {
		if i > n {
			break
		}
		cut = i
	}
	return s[:cut]
}
