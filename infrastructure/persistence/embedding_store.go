package persistence

import (
	"context"
	"fmt"

	"github.com/creditguardian/lexindex/domain/search"
	"github.com/creditguardian/lexindex/internal/database"
	"gorm.io/gorm/clause"
)

// EmbeddingStore implements search.EmbeddingStore using GORM. Vectors are
// stored as bracketed text literals and similarity is computed in-process,
// so the same schema works on SQLite and PostgreSQL.
type EmbeddingStore struct {
	database.Repository[search.EmbeddingRecord, EmbeddingModel]
}

// NewEmbeddingStore creates a new EmbeddingStore.
func NewEmbeddingStore(db database.Database) EmbeddingStore {
	return EmbeddingStore{
		Repository: database.NewRepository[search.EmbeddingRecord, EmbeddingModel](db, EmbeddingMapper{}, "embedding"),
	}
}

// Upsert inserts or replaces the embedding for an article in one statement
// keyed by article_id. Vector, norm, hash and model metadata land together.
func (s EmbeddingStore) Upsert(ctx context.Context, record search.EmbeddingRecord) error {
	model := s.Mapper().ToModel(record)

	result := s.DB(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "article_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"document_id", "model_name", "embedding_dim",
			"embedding", "norm", "content_hash", "updated_at",
		}),
	}).Create(&model)
	if result.Error != nil {
		return fmt.Errorf("upsert embedding for article %d: %w", record.ArticleID(), result.Error)
	}
	return nil
}
