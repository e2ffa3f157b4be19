package persistence

import (
	"context"
	"fmt"

	"github.com/creditguardian/lexindex/domain/ingestion"
	"github.com/creditguardian/lexindex/internal/database"
	"gorm.io/gorm"
)

// IngestionStore implements ingestion.Store using GORM.
type IngestionStore struct {
	database.Repository[ingestion.Record, IngestionModel]
	db database.Database
}

// NewIngestionStore creates a new IngestionStore.
func NewIngestionStore(db database.Database) IngestionStore {
	return IngestionStore{
		Repository: database.NewRepository[ingestion.Record, IngestionModel](db, IngestionMapper{}, "ingestion record"),
		db:         db,
	}
}

// ReplaceAll rebuilds the materialization in one transaction, so readers
// never see a mix of old and new rows.
func (s IngestionStore) ReplaceAll(ctx context.Context, records []ingestion.Record) error {
	models := make([]IngestionModel, len(records))
	for i, r := range records {
		models[i] = s.Mapper().ToModel(r)
	}

	err := database.WithTransaction(ctx, s.db, func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&IngestionModel{}).Error; err != nil {
			return err
		}
		if len(models) == 0 {
			return nil
		}
		return tx.CreateInBatches(models, saveAllBatchSize).Error
	})
	if err != nil {
		return fmt.Errorf("replace ingestion records: %w", err)
	}
	return nil
}
