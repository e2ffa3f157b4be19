package persistence

import (
	"time"

	"github.com/creditguardian/lexindex/internal/database"
)

// ArticleModel represents a legal article in the database.
type ArticleModel struct {
	ID            int64     `gorm:"primaryKey;autoIncrement"`
	DocumentID    int64     `gorm:"column:document_id;index"`
	ArticleNumber string    `gorm:"column:article_number;size:255"`
	Content       string    `gorm:"column:content;type:text"`
	ChapterNumber string    `gorm:"column:chapter_number;size:255"`
	ChapterTitle  string    `gorm:"column:chapter_title;size:1024"`
	SectionNumber string    `gorm:"column:section_number;size:255"`
	SectionTitle  string    `gorm:"column:section_title;size:1024"`
	CreatedAt     time.Time `gorm:"column:created_at"`
	UpdatedAt     time.Time `gorm:"column:updated_at"`
}

// TableName returns the table name.
func (ArticleModel) TableName() string {
	return "legal_articles"
}

// TagAssignmentModel represents one weighted tag on one article.
type TagAssignmentModel struct {
	ID        int64   `gorm:"primaryKey;autoIncrement"`
	ArticleID int64   `gorm:"column:article_id;index;uniqueIndex:idx_article_tag"`
	Tag       string  `gorm:"column:tag;index;size:255;uniqueIndex:idx_article_tag"`
	Score     float64 `gorm:"column:score"`
}

// TableName returns the table name.
func (TagAssignmentModel) TableName() string {
	return "legal_article_tags"
}

// IngestionModel is the denormalized ingestion row for one article. Tags
// are stored twice: as a JSON document carrying scores and order, and as a
// comma-joined hint column for cheap textual filtering.
type IngestionModel struct {
	ArticleID     int64     `gorm:"column:article_id;primaryKey"`
	DocumentID    int64     `gorm:"column:document_id;index"`
	ArticleNumber string    `gorm:"column:article_number;size:255"`
	Content       string    `gorm:"column:content;type:text"`
	ChapterNumber string    `gorm:"column:chapter_number;size:255"`
	ChapterTitle  string    `gorm:"column:chapter_title;size:1024"`
	SectionNumber string    `gorm:"column:section_number;size:255"`
	SectionTitle  string    `gorm:"column:section_title;size:1024"`
	Tags          string    `gorm:"column:tags;type:text"`
	TagPrimary    string    `gorm:"column:tag_primary;index;size:255"`
	TagHint       string    `gorm:"column:tag_hint;size:1024"`
	CreatedAt     time.Time `gorm:"column:created_at"`
}

// TableName returns the table name.
func (IngestionModel) TableName() string {
	return "article_ingestion"
}

// EmbeddingModel represents one stored article vector.
type EmbeddingModel struct {
	ID           int64           `gorm:"primaryKey;autoIncrement"`
	ArticleID    int64           `gorm:"column:article_id;uniqueIndex"`
	DocumentID   int64           `gorm:"column:document_id;index"`
	ModelName    string          `gorm:"column:model_name;size:255"`
	EmbeddingDim int             `gorm:"column:embedding_dim"`
	Embedding    database.Vector `gorm:"column:embedding;type:text"`
	Norm         float64         `gorm:"column:norm"`
	ContentHash  string          `gorm:"column:content_hash;size:64"`
	CreatedAt    time.Time       `gorm:"column:created_at"`
	UpdatedAt    time.Time       `gorm:"column:updated_at"`
}

// TableName returns the table name.
func (EmbeddingModel) TableName() string {
	return "article_embeddings"
}
