// Package pinecone provides a vector store adapter for Pinecone serverless
// indexes, built on the official Go SDK.
package pinecone

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/pinecone-io/go-pinecone/v3/pinecone"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/22Ujjwal/Multimodal-Agent/internal/core/domain"
	"github.com/22Ujjwal/Multimodal-Agent/internal/core/ports/driven"
	"github.com/22Ujjwal/Multimodal-Agent/internal/logger"
)

// Ensure Store implements the interface.
var _ driven.VectorStore = (*Store)(nil)

// Default configuration values.
const (
	DefaultPollInterval = 2 * time.Second
	DefaultReadyTimeout = 2 * time.Minute
)

// sourceTag identifies this client in Pinecone usage reports.
const sourceTag = "aven_kb"

// controlPlane is the part of *pinecone.Client the store uses.
type controlPlane interface {
	ListIndexes(ctx context.Context) ([]*pinecone.Index, error)
	DescribeIndex(ctx context.Context, idxName string) (*pinecone.Index, error)
	CreateServerlessIndex(ctx context.Context, in *pinecone.CreateServerlessIndexRequest) (*pinecone.Index, error)
}

// dataPlane is the part of *pinecone.IndexConnection the store uses.
type dataPlane interface {
	UpsertVectors(ctx context.Context, in []*pinecone.Vector) (uint32, error)
	QueryByVectorValues(ctx context.Context, in *pinecone.QueryByVectorValuesRequest) (*pinecone.QueryVectorsResponse, error)
	DescribeIndexStats(ctx context.Context) (*pinecone.DescribeIndexStatsResponse, error)
	Close() error
}

// Config holds configuration for the Pinecone store.
type Config struct {
	// APIKey is the Pinecone API key (required).
	APIKey string

	// Index is the index name used until EnsureIndex names another.
	Index string

	// PollInterval and ReadyTimeout bound the wait for a new index.
	PollInterval time.Duration
	ReadyTimeout time.Duration
}

// Store is a Pinecone-backed vector store.
type Store struct {
	control      controlPlane
	connect      func(host string) (dataPlane, error)
	pollInterval time.Duration
	readyTimeout time.Duration
	log          *logger.Logger

	mu    sync.Mutex
	index string
	conn  dataPlane
}

// NewStore creates a Pinecone store. No request is made until first use.
func NewStore(cfg Config) (*Store, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("%w: Pinecone API key", domain.ErrMissingCredentials)
	}

	client, err := pinecone.NewClient(pinecone.NewClientParams{
		ApiKey:    cfg.APIKey,
		SourceTag: sourceTag,
	})
	if err != nil {
		return nil, fmt.Errorf("creating Pinecone client: %w", err)
	}

	connect := func(host string) (dataPlane, error) {
		conn, err := client.Index(pinecone.NewIndexConnParams{Host: host})
		if err != nil {
			return nil, err
		}
		return conn, nil
	}
	return newStore(client, connect, cfg), nil
}

func newStore(control controlPlane, connect func(string) (dataPlane, error), cfg Config) *Store {
	if cfg.PollInterval == 0 {
		cfg.PollInterval = DefaultPollInterval
	}
	if cfg.ReadyTimeout == 0 {
		cfg.ReadyTimeout = DefaultReadyTimeout
	}
	return &Store{
		control:      control,
		connect:      connect,
		pollInterval: cfg.PollInterval,
		readyTimeout: cfg.ReadyTimeout,
		log:          logger.New("store", "pinecone"),
		index:        cfg.Index,
	}
}

// EnsureIndex creates the index when it does not exist and waits until it
// is ready. An existing index with a different dimension is an error.
func (s *Store) EnsureIndex(ctx context.Context, spec domain.IndexSpec) error {
	if spec.Name == "" {
		return fmt.Errorf("%w: index name is empty", domain.ErrInvalidInput)
	}

	idx, err := s.find(ctx, spec.Name)
	if err != nil {
		return err
	}

	if idx == nil {
		s.log.Info("Creating new Pinecone index: %s", spec.Name)
		if _, err := s.control.CreateServerlessIndex(ctx, createRequest(spec)); err != nil {
			return fmt.Errorf("creating index %s: %w", spec.Name, err)
		}
		if idx, err = s.waitReady(ctx, spec.Name); err != nil {
			return err
		}
	} else if dim := indexDimension(idx); dim != 0 && spec.Dimension != 0 && dim != spec.Dimension {
		return fmt.Errorf("%w: index %s has dimension %d, want %d",
			domain.ErrDimensionMismatch, spec.Name, dim, spec.Dimension)
	}

	conn, err := s.connect(idx.Host)
	if err != nil {
		return fmt.Errorf("%w: connecting to %s: %w", domain.ErrIndexUnavailable, spec.Name, err)
	}

	s.mu.Lock()
	old := s.conn
	s.index, s.conn = spec.Name, conn
	s.mu.Unlock()
	if old != nil {
		_ = old.Close()
	}

	s.log.Info("Connected to Pinecone index: %s", spec.Name)
	return nil
}

// Upsert writes records to the index.
func (s *Store) Upsert(ctx context.Context, records []domain.VectorRecord) error {
	if len(records) == 0 {
		return nil
	}

	vectors := make([]*pinecone.Vector, len(records))
	for i := range records {
		v, err := toVector(records[i])
		if err != nil {
			return err
		}
		vectors[i] = v
	}

	conn, err := s.data(ctx)
	if err != nil {
		return err
	}
	if _, err := conn.UpsertVectors(ctx, vectors); err != nil {
		return fmt.Errorf("upserting %d vectors: %w", len(vectors), err)
	}
	return nil
}

// Query returns the topK nearest vectors in score order.
func (s *Store) Query(ctx context.Context, values []float32, topK int, includeMetadata bool) ([]domain.VectorMatch, error) {
	conn, err := s.data(ctx)
	if err != nil {
		return nil, err
	}

	resp, err := conn.QueryByVectorValues(ctx, &pinecone.QueryByVectorValuesRequest{
		Vector:          values,
		TopK:            uint32(topK),
		IncludeMetadata: includeMetadata,
	})
	if err != nil {
		return nil, fmt.Errorf("querying index: %w", err)
	}

	matches := make([]domain.VectorMatch, 0, len(resp.Matches))
	for _, m := range resp.Matches {
		if m == nil || m.Vector == nil {
			continue
		}
		matches = append(matches, domain.VectorMatch{
			ID:       m.Vector.Id,
			Score:    float64(m.Score),
			Metadata: fromMetadata(m.Vector.Metadata),
		})
	}
	return matches, nil
}

// Stats returns the index summary.
func (s *Store) Stats(ctx context.Context) (domain.IndexStats, error) {
	conn, err := s.data(ctx)
	if err != nil {
		return domain.IndexStats{}, err
	}

	resp, err := conn.DescribeIndexStats(ctx)
	if err != nil {
		return domain.IndexStats{}, fmt.Errorf("describing index stats: %w", err)
	}

	stats := domain.IndexStats{TotalVectorCount: int64(resp.TotalVectorCount)}
	if resp.Dimension != nil {
		stats.Dimension = int(*resp.Dimension)
	}
	return stats, nil
}

// Close closes the index connection.
func (s *Store) Close() error {
	s.mu.Lock()
	conn := s.conn
	s.conn = nil
	s.mu.Unlock()

	if conn == nil {
		return nil
	}
	return conn.Close()
}

// find returns the named index, or nil when it does not exist.
func (s *Store) find(ctx context.Context, name string) (*pinecone.Index, error) {
	indexes, err := s.control.ListIndexes(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: listing indexes: %w", domain.ErrIndexUnavailable, err)
	}
	for _, idx := range indexes {
		if idx != nil && idx.Name == name {
			return idx, nil
		}
	}
	return nil, nil
}

// waitReady polls the control plane until the index reports ready.
func (s *Store) waitReady(ctx context.Context, name string) (*pinecone.Index, error) {
	ctx, cancel := context.WithTimeout(ctx, s.readyTimeout)
	defer cancel()

	ticker := time.NewTicker(s.pollInterval)
	defer ticker.Stop()

	for {
		idx, err := s.control.DescribeIndex(ctx, name)
		if err == nil && idx != nil && idx.Status != nil && idx.Status.Ready && idx.Host != "" {
			return idx, nil
		}
		if err != nil {
			s.log.Debug("Index %s not described yet: %v", name, err)
		}

		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("waiting for index %s: %w", name, ctx.Err())
		case <-ticker.C:
		}
	}
}

// data returns the index connection, opening it on first use.
func (s *Store) data(ctx context.Context) (dataPlane, error) {
	s.mu.Lock()
	conn, index := s.conn, s.index
	s.mu.Unlock()

	if conn != nil {
		return conn, nil
	}
	if index == "" {
		return nil, fmt.Errorf("%w: no index selected", domain.ErrIndexUnavailable)
	}

	idx, err := s.find(ctx, index)
	if err != nil {
		return nil, err
	}
	if idx == nil {
		return nil, fmt.Errorf("%w: index %s does not exist", domain.ErrIndexUnavailable, index)
	}

	conn, err = s.connect(idx.Host)
	if err != nil {
		return nil, fmt.Errorf("%w: connecting to %s: %w", domain.ErrIndexUnavailable, index, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.conn != nil {
		_ = conn.Close()
		return s.conn, nil
	}
	s.conn = conn
	return conn, nil
}

func createRequest(spec domain.IndexSpec) *pinecone.CreateServerlessIndexRequest {
	dim := int32(spec.Dimension)
	metric := pinecone.IndexMetric(spec.Metric)
	return &pinecone.CreateServerlessIndexRequest{
		Name:      spec.Name,
		Dimension: &dim,
		Metric:    &metric,
		Cloud:     pinecone.Cloud(spec.Cloud),
		Region:    spec.Region,
	}
}

func indexDimension(idx *pinecone.Index) int {
	if idx.Dimension == nil {
		return 0
	}
	return int(*idx.Dimension)
}

func toVector(r domain.VectorRecord) (*pinecone.Vector, error) {
	md, err := structpb.NewStruct(map[string]any{
		"url":         r.Metadata.URL,
		"title":       r.Metadata.Title,
		"chunk_index": r.Metadata.ChunkIndex,
		"content":     r.Metadata.Content,
		"scraped_at":  r.Metadata.ScrapedAt,
		"word_count":  r.Metadata.WordCount,
		"source":      r.Metadata.Source,
	})
	if err != nil {
		return nil, fmt.Errorf("encoding metadata of %s: %w", r.ID, err)
	}
	values := r.Values
	return &pinecone.Vector{Id: r.ID, Values: &values, Metadata: md}, nil
}

// fromMetadata decodes match metadata. Pinecone stores every number as a
// double, so integer fields are converted back.
func fromMetadata(md *pinecone.Metadata) domain.VectorMetadata {
	if md == nil {
		return domain.VectorMetadata{}
	}
	f := md.GetFields()
	return domain.VectorMetadata{
		URL:        f["url"].GetStringValue(),
		Title:      f["title"].GetStringValue(),
		ChunkIndex: int(f["chunk_index"].GetNumberValue()),
		Content:    f["content"].GetStringValue(),
		ScrapedAt:  f["scraped_at"].GetStringValue(),
		WordCount:  int(f["word_count"].GetNumberValue()),
		Source:     f["source"].GetStringValue(),
	}
}
