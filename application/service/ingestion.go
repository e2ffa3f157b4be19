package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/creditguardian/lexindex/domain/article"
	"github.com/creditguardian/lexindex/domain/ingestion"
	"github.com/creditguardian/lexindex/domain/tagging"
)

// IngestionReport summarizes one materialization rebuild.
type IngestionReport struct {
	records  int
	tagged   int
	duration time.Duration
}

// Records returns how many rows were materialized.
func (r IngestionReport) Records() int { return r.records }

// Tagged returns how many rows carry at least one tag.
func (r IngestionReport) Tagged() int { return r.tagged }

// Duration returns how long the run took.
func (r IngestionReport) Duration() time.Duration { return r.duration }

// Ingestion materializes the denormalized article view: every article
// joined with its current tag assignments, rebuilt wholesale.
type Ingestion struct {
	articles article.Store
	tags     tagging.Store
	records  ingestion.Store
	logger   *slog.Logger
}

// NewIngestion creates an Ingestion service.
func NewIngestion(articles article.Store, tags tagging.Store, records ingestion.Store, logger *slog.Logger) Ingestion {
	if logger == nil {
		logger = slog.Default()
	}
	return Ingestion{
		articles: articles,
		tags:     tags,
		records:  records,
		logger:   logger,
	}
}

// Rebuild drops and rebuilds the ingestion table. Articles without
// assignments are still materialized, with empty tag columns, so the view
// always covers the whole corpus.
func (s Ingestion) Rebuild(ctx context.Context) (IngestionReport, error) {
	start := time.Now()

	articles, err := s.articles.Find(ctx)
	if err != nil {
		return IngestionReport{}, err
	}

	// Store order is score descending then tag ascending, which is also
	// the per-article order the materialization wants.
	assignments, err := s.tags.Find(ctx)
	if err != nil {
		return IngestionReport{}, err
	}

	byArticle := make(map[int64][]ingestion.TagScore)
	for _, a := range assignments {
		byArticle[a.ArticleID()] = append(byArticle[a.ArticleID()], ingestion.TagScore{
			Tag:   a.Tag(),
			Score: a.Score(),
		})
	}

	records := make([]ingestion.Record, len(articles))
	tagged := 0
	for i, a := range articles {
		tags := byArticle[a.ID()]
		if len(tags) > 0 {
			tagged++
		}
		records[i] = ingestion.NewRecord(a.ID(), a.DocumentID(), a.Number(), a.Content(), tags).
			WithStructure(a.ChapterNumber(), a.ChapterTitle(), a.SectionNumber(), a.SectionTitle())
	}

	if err := s.records.ReplaceAll(ctx, records); err != nil {
		return IngestionReport{}, err
	}

	report := IngestionReport{
		records:  len(records),
		tagged:   tagged,
		duration: time.Since(start),
	}

	s.logger.Info("ingestion rebuild complete",
		slog.Int("records", report.Records()),
		slog.Int("tagged", report.Tagged()),
		slog.Duration("duration", report.Duration()),
	)
	return report, nil
}
