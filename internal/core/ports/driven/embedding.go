package driven

import "context"

// EmbeddingService turns chunk and query text into vectors.
// Every vector it returns has Dimensions() elements, which must equal the
// dimension of the vector index.
type EmbeddingService interface {
	Embed(ctx context.Context, text string) ([]float32, error)
	Dimensions() int

	// ModelName identifies the model in self-test output.
	ModelName() string

	// Ping checks that the service answers with the configured credentials.
	Ping(ctx context.Context) error

	Close() error
}
