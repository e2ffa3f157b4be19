package tagging

import (
	"context"

	"github.com/creditguardian/lexindex/domain/store"
)

// Store defines persistence operations for tag assignments. Assignments
// are only ever rebuilt wholesale: corpus-level statistics invalidate all
// rows whenever any content or the taxonomy changes.
type Store interface {
	// ReplaceAll atomically replaces every stored assignment.
	ReplaceAll(ctx context.Context, assignments []Assignment) error

	// Find retrieves assignments matching the given options, ordered by
	// score descending then tag ascending.
	Find(ctx context.Context, options ...store.Option) ([]Assignment, error)

	// Count returns the number of matching assignments.
	Count(ctx context.Context, options ...store.Option) (int64, error)
}

// WithArticleID filters by the "article_id" column.
func WithArticleID(id int64) store.Option {
	return store.WithCondition("article_id", id)
}

// WithTag filters by the "tag" column.
func WithTag(tag string) store.Option {
	return store.WithCondition("tag", tag)
}
