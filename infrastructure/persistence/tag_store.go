package persistence

import (
	"context"
	"fmt"

	"github.com/creditguardian/lexindex/domain/store"
	"github.com/creditguardian/lexindex/domain/tagging"
	"github.com/creditguardian/lexindex/internal/database"
	"gorm.io/gorm"
)

// TagStore implements tagging.Store using GORM.
type TagStore struct {
	database.Repository[tagging.Assignment, TagAssignmentModel]
	db database.Database
}

// NewTagStore creates a new TagStore.
func NewTagStore(db database.Database) TagStore {
	return TagStore{
		Repository: database.NewRepository[tagging.Assignment, TagAssignmentModel](db, TagAssignmentMapper{}, "tag assignment"),
		db:         db,
	}
}

// ReplaceAll swaps the whole assignment table in one transaction. Scores
// depend on corpus-wide statistics, so partial updates are never valid.
func (s TagStore) ReplaceAll(ctx context.Context, assignments []tagging.Assignment) error {
	models := make([]TagAssignmentModel, len(assignments))
	for i, a := range assignments {
		models[i] = s.Mapper().ToModel(a)
	}

	err := database.WithTransaction(ctx, s.db, func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&TagAssignmentModel{}).Error; err != nil {
			return err
		}
		if len(models) == 0 {
			return nil
		}
		return tx.CreateInBatches(models, saveAllBatchSize).Error
	})
	if err != nil {
		return fmt.Errorf("replace tag assignments: %w", err)
	}
	return nil
}

// Find retrieves assignments ordered by score descending then tag ascending.
func (s TagStore) Find(ctx context.Context, options ...store.Option) ([]tagging.Assignment, error) {
	options = append(options, store.WithOrderDesc("score"), store.WithOrderAsc("tag"))
	return s.Repository.Find(ctx, options...)
}
