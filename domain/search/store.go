package search

import (
	"context"

	"github.com/creditguardian/lexindex/domain/store"
)

// EmbeddingStore defines persistence operations for article embeddings.
type EmbeddingStore interface {
	// Upsert inserts or replaces the embedding for an article. Vector,
	// norm, content hash and model metadata are written in one atomic
	// statement so readers never observe a half-updated row.
	Upsert(ctx context.Context, record EmbeddingRecord) error

	// Find retrieves embeddings matching the given options.
	Find(ctx context.Context, options ...store.Option) ([]EmbeddingRecord, error)

	// FindOne retrieves a single embedding matching the given options.
	FindOne(ctx context.Context, options ...store.Option) (EmbeddingRecord, error)

	// Count returns the number of matching embeddings.
	Count(ctx context.Context, options ...store.Option) (int64, error)

	// DeleteBy removes embeddings matching the given options.
	DeleteBy(ctx context.Context, options ...store.Option) error
}

// WithArticleID filters by the "article_id" column.
func WithArticleID(id int64) store.Option {
	return store.WithCondition("article_id", id)
}

// WithArticleIDIn filters by the "article_id" column using IN.
func WithArticleIDIn(ids []int64) store.Option {
	return store.WithConditionIn("article_id", ids)
}

// WithDocumentID filters by the "document_id" column.
func WithDocumentID(id int64) store.Option {
	return store.WithCondition("document_id", id)
}

// WithModel filters by the "model_name" column.
func WithModel(model string) store.Option {
	return store.WithCondition("model_name", model)
}
