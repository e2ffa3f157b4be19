package ingestion

import (
	"context"

	"github.com/creditguardian/lexindex/domain/store"
)

// Store defines persistence operations for the materialized ingestion
// table.
type Store interface {
	// ReplaceAll atomically swaps the whole materialization: readers see
	// either the complete prior table or the complete new one.
	ReplaceAll(ctx context.Context, records []Record) error

	// Find retrieves records matching the given options.
	Find(ctx context.Context, options ...store.Option) ([]Record, error)

	// FindOne retrieves a single record matching the given options.
	FindOne(ctx context.Context, options ...store.Option) (Record, error)

	// Count returns the number of matching records.
	Count(ctx context.Context, options ...store.Option) (int64, error)
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

// WithPrimaryTag filters by the "tag_primary" column.
func WithPrimaryTag(tag string) store.Option {
	return store.WithCondition("tag_primary", tag)
}
