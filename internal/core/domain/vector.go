package domain

import (
	"crypto/md5" //nolint:gosec // identifier derivation, not security
	"encoding/hex"
	"strconv"
)

// Metric is the similarity metric of a vector index.
type Metric string

// Supported similarity metrics.
const (
	MetricCosine     Metric = "cosine"
	MetricEuclidean  Metric = "euclidean"
	MetricDotProduct Metric = "dotproduct"
)

// IsValid returns true if the metric is recognised.
func (m Metric) IsValid() bool {
	switch m {
	case MetricCosine, MetricEuclidean, MetricDotProduct:
		return true
	default:
		return false
	}
}

// VectorID returns the deterministic identifier of a chunk's vector.
// It is the lowercase hex MD5 digest of url + "_" + index, so re-indexing
// the same page overwrites its previous vectors.
func VectorID(url string, index int) string {
	sum := md5.Sum([]byte(url + "_" + strconv.Itoa(index))) //nolint:gosec // see import
	return hex.EncodeToString(sum[:])
}

// VectorMetadata is stored alongside each vector.
type VectorMetadata struct {
	URL        string `json:"url"`
	Title      string `json:"title"`
	ChunkIndex int    `json:"chunk_index"`
	// Content is a preview of the chunk text, capped at the preview length.
	Content   string `json:"content"`
	ScrapedAt string `json:"scraped_at"`
	WordCount int    `json:"word_count"`
	Source    string `json:"source"`
}

// VectorRecord is an embedded chunk ready to be upserted.
type VectorRecord struct {
	// ID is VectorID(Metadata.URL, Metadata.ChunkIndex).
	ID       string
	Values   []float32
	Metadata VectorMetadata
}

// VectorMatch is a raw match returned by a vector store query.
type VectorMatch struct {
	ID       string
	Score    float64
	Metadata VectorMetadata
}

// IndexSpec describes the vector index the pipeline writes to.
type IndexSpec struct {
	Name      string
	Dimension int
	Metric    Metric
	// Cloud and Region locate a serverless index.
	Cloud  string
	Region string
}

// IndexStats summarises the contents of a vector index.
type IndexStats struct {
	TotalVectorCount int64 `json:"total_vector_count"`
	Dimension        int   `json:"dimension"`
}
