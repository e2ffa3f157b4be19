package article

import (
	"context"

	"github.com/creditguardian/lexindex/domain/store"
)

// Store defines persistence operations for source articles.
type Store interface {
	// Find retrieves articles matching the given options.
	Find(ctx context.Context, options ...store.Option) ([]Article, error)

	// FindOne retrieves a single article matching the given options.
	FindOne(ctx context.Context, options ...store.Option) (Article, error)

	// Count returns the number of matching articles.
	Count(ctx context.Context, options ...store.Option) (int64, error)

	// SaveAll persists a batch of articles (used by import tooling and tests;
	// the pipeline itself never writes articles).
	SaveAll(ctx context.Context, articles []Article) error
}

// WithDocumentID filters by the "document_id" column.
func WithDocumentID(id int64) store.Option {
	return store.WithCondition("document_id", id)
}

// WithArticleIDIn filters by the "id" column using IN.
func WithArticleIDIn(ids []int64) store.Option {
	return store.WithConditionIn("id", ids)
}
