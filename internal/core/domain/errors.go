package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidConfig indicates a setting holds an unusable value.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrMissingCredentials indicates required API keys are not set.
	// It is returned before any pipeline work starts.
	ErrMissingCredentials = errors.New("missing credentials")

	// ErrUnsupportedProvider indicates an unknown scraper, embedding or vector store provider.
	ErrUnsupportedProvider = errors.New("unsupported provider")

	// ErrNoDocuments indicates neither scraping nor the fallback corpus produced documents.
	ErrNoDocuments = errors.New("no documents collected")

	// ErrEmbeddingUnavailable indicates the embedding service could not be reached.
	ErrEmbeddingUnavailable = errors.New("embedding service unavailable")

	// ErrEmptyEmbedding indicates the embedding service returned no values.
	ErrEmptyEmbedding = errors.New("empty embedding")

	// ErrDimensionMismatch indicates an embedding does not match the index dimension.
	ErrDimensionMismatch = errors.New("embedding dimension mismatch")

	// ErrIndexUnavailable indicates the vector index could not be created or reached.
	ErrIndexUnavailable = errors.New("vector index unavailable")

	// ErrEmptyQuery indicates a query with no text.
	ErrEmptyQuery = errors.New("query is empty")
)
