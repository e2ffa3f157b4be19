// Package service provides application layer services that orchestrate
// domain operations.
package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/creditguardian/lexindex/domain/article"
	"github.com/creditguardian/lexindex/domain/tagging"
)

// TaggingReport summarizes one tag rebuild run.
type TaggingReport struct {
	articles    int
	tagged      int
	assignments int
	duration    time.Duration
}

// Articles returns how many articles were scored.
func (r TaggingReport) Articles() int { return r.articles }

// Tagged returns how many articles received at least one tag.
func (r TaggingReport) Tagged() int { return r.tagged }

// Assignments returns the total number of assignments written.
func (r TaggingReport) Assignments() int { return r.assignments }

// Duration returns how long the run took.
func (r TaggingReport) Duration() time.Duration { return r.duration }

// Tagging rebuilds the tag assignment table from the article corpus.
// Every run replaces every assignment: TF-IDF scores depend on corpus-wide
// document frequency, so there is no incremental path.
type Tagging struct {
	articles article.Store
	tags     tagging.Store
	scorer   tagging.Scorer
	logger   *slog.Logger
}

// NewTagging creates a Tagging service.
func NewTagging(articles article.Store, tags tagging.Store, scorer tagging.Scorer, logger *slog.Logger) Tagging {
	if logger == nil {
		logger = slog.Default()
	}
	return Tagging{
		articles: articles,
		tags:     tags,
		scorer:   scorer,
		logger:   logger,
	}
}

// Rebuild scores the whole corpus and atomically replaces all stored
// assignments. An empty corpus yields an empty assignment table.
func (s Tagging) Rebuild(ctx context.Context) (TaggingReport, error) {
	start := time.Now()

	articles, err := s.articles.Find(ctx)
	if err != nil {
		return TaggingReport{}, err
	}

	corpus := make([]tagging.Document, len(articles))
	for i, a := range articles {
		corpus[i] = tagging.NewDocument(a.ID(), a.Content())
	}

	s.logger.Info("scoring corpus", slog.Int("articles", len(corpus)))

	assignments, err := s.scorer.Score(ctx, corpus)
	if err != nil {
		return TaggingReport{}, err
	}

	if err := s.tags.ReplaceAll(ctx, assignments); err != nil {
		return TaggingReport{}, err
	}

	tagged := make(map[int64]struct{})
	for _, a := range assignments {
		tagged[a.ArticleID()] = struct{}{}
	}

	report := TaggingReport{
		articles:    len(articles),
		tagged:      len(tagged),
		assignments: len(assignments),
		duration:    time.Since(start),
	}

	s.logger.Info("tag rebuild complete",
		slog.Int("articles", report.Articles()),
		slog.Int("tagged", report.Tagged()),
		slog.Int("assignments", report.Assignments()),
		slog.Duration("duration", report.Duration()),
	)
	return report, nil
}
