package persistence

import (
	"encoding/json"

	"github.com/creditguardian/lexindex/domain/article"
	"github.com/creditguardian/lexindex/domain/ingestion"
	"github.com/creditguardian/lexindex/domain/search"
	"github.com/creditguardian/lexindex/domain/tagging"
	"github.com/creditguardian/lexindex/internal/database"
)

// ArticleMapper maps between domain Article and persistence ArticleModel.
type ArticleMapper struct{}

// ToDomain converts an ArticleModel to a domain Article.
func (m ArticleMapper) ToDomain(e ArticleModel) article.Article {
	return article.New(e.ID, e.DocumentID, e.ArticleNumber, e.Content).
		WithStructure(e.ChapterNumber, e.ChapterTitle, e.SectionNumber, e.SectionTitle).
		WithTimestamps(e.CreatedAt, e.UpdatedAt)
}

// ToModel converts a domain Article to an ArticleModel.
func (m ArticleMapper) ToModel(a article.Article) ArticleModel {
	return ArticleModel{
		ID:            a.ID(),
		DocumentID:    a.DocumentID(),
		ArticleNumber: a.Number(),
		Content:       a.Content(),
		ChapterNumber: a.ChapterNumber(),
		ChapterTitle:  a.ChapterTitle(),
		SectionNumber: a.SectionNumber(),
		SectionTitle:  a.SectionTitle(),
		CreatedAt:     a.CreatedAt(),
		UpdatedAt:     a.UpdatedAt(),
	}
}

// TagAssignmentMapper maps between tagging.Assignment and TagAssignmentModel.
type TagAssignmentMapper struct{}

// ToDomain converts a TagAssignmentModel to a tagging.Assignment.
func (m TagAssignmentMapper) ToDomain(e TagAssignmentModel) tagging.Assignment {
	return tagging.NewAssignment(e.ArticleID, e.Tag, e.Score)
}

// ToModel converts a tagging.Assignment to a TagAssignmentModel.
func (m TagAssignmentMapper) ToModel(a tagging.Assignment) TagAssignmentModel {
	return TagAssignmentModel{
		ArticleID: a.ArticleID(),
		Tag:       a.Tag(),
		Score:     a.Score(),
	}
}

// IngestionMapper maps between ingestion.Record and IngestionModel.
type IngestionMapper struct{}

// ToDomain converts an IngestionModel to an ingestion.Record. A corrupt
// tags document degrades to an untagged record rather than failing the
// whole read; the materialization is rebuilt wholesale anyway.
func (m IngestionMapper) ToDomain(e IngestionModel) ingestion.Record {
	var tags []ingestion.TagScore
	if e.Tags != "" {
		_ = json.Unmarshal([]byte(e.Tags), &tags)
	}
	return ingestion.NewRecord(e.ArticleID, e.DocumentID, e.ArticleNumber, e.Content, tags).
		WithStructure(e.ChapterNumber, e.ChapterTitle, e.SectionNumber, e.SectionTitle)
}

// ToModel converts an ingestion.Record to an IngestionModel.
func (m IngestionMapper) ToModel(r ingestion.Record) IngestionModel {
	tags := r.Tags()
	var tagsJSON string
	if len(tags) > 0 {
		raw, err := json.Marshal(tags)
		if err == nil {
			tagsJSON = string(raw)
		}
	}
	return IngestionModel{
		ArticleID:     r.ArticleID(),
		DocumentID:    r.DocumentID(),
		ArticleNumber: r.ArticleNumber(),
		Content:       r.Content(),
		ChapterNumber: r.ChapterNumber(),
		ChapterTitle:  r.ChapterTitle(),
		SectionNumber: r.SectionNumber(),
		SectionTitle:  r.SectionTitle(),
		Tags:          tagsJSON,
		TagPrimary:    r.PrimaryTag(),
		TagHint:       r.TagHint(),
	}
}

// EmbeddingMapper maps between search.EmbeddingRecord and EmbeddingModel.
type EmbeddingMapper struct{}

// ToDomain converts an EmbeddingModel to a search.EmbeddingRecord.
func (m EmbeddingMapper) ToDomain(e EmbeddingModel) search.EmbeddingRecord {
	return search.NewEmbeddingRecord(e.ArticleID, e.DocumentID, e.ModelName, e.Embedding.Floats(), e.ContentHash).
		WithTimestamps(e.CreatedAt, e.UpdatedAt)
}

// ToModel converts a search.EmbeddingRecord to an EmbeddingModel.
func (m EmbeddingMapper) ToModel(r search.EmbeddingRecord) EmbeddingModel {
	return EmbeddingModel{
		ArticleID:    r.ArticleID(),
		DocumentID:   r.DocumentID(),
		ModelName:    r.Model(),
		EmbeddingDim: r.Dimension(),
		Embedding:    database.NewVector(r.Vector()),
		Norm:         r.Norm(),
		ContentHash:  r.ContentHash(),
		CreatedAt:    r.CreatedAt(),
		UpdatedAt:    r.UpdatedAt(),
	}
}
