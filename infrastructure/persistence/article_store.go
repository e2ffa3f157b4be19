package persistence

import (
	"context"
	"fmt"

	"github.com/creditguardian/lexindex/domain/article"
	"github.com/creditguardian/lexindex/internal/database"
	"gorm.io/gorm/clause"
)

const saveAllBatchSize = 500

// ArticleStore implements article.Store using GORM.
type ArticleStore struct {
	database.Repository[article.Article, ArticleModel]
}

// NewArticleStore creates a new ArticleStore.
func NewArticleStore(db database.Database) ArticleStore {
	return ArticleStore{
		Repository: database.NewRepository[article.Article, ArticleModel](db, ArticleMapper{}, "article"),
	}
}

// SaveAll persists articles using batched upsert keyed by id.
func (s ArticleStore) SaveAll(ctx context.Context, articles []article.Article) error {
	if len(articles) == 0 {
		return nil
	}

	models := make([]ArticleModel, len(articles))
	for i, a := range articles {
		models[i] = s.Mapper().ToModel(a)
	}

	result := s.DB(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"document_id", "article_number", "content",
			"chapter_number", "chapter_title", "section_number", "section_title",
			"updated_at",
		}),
	}).CreateInBatches(models, saveAllBatchSize)
	if result.Error != nil {
		return fmt.Errorf("save articles: %w", result.Error)
	}
	return nil
}
