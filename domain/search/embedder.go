package search

import "context"

// Embedder turns text into a fixed-dimensionality vector. Implementations
// are expected to truncate oversized input themselves and to return an
// error rather than a vector of unexpected length.
type Embedder interface {
	// Embed returns the embedding vector for the given text.
	Embed(ctx context.Context, text string) ([]float32, error)

	// Model returns the model identifier embeddings are produced with.
	Model() string

	// Dimension returns the expected vector dimensionality.
	Dimension() int
}
