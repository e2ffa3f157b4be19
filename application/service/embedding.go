package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/creditguardian/lexindex/domain/ingestion"
	"github.com/creditguardian/lexindex/domain/search"
	"github.com/creditguardian/lexindex/internal/config"
	"golang.org/x/sync/errgroup"
)

// BatchEmbedder extends the single-text embedder with a batched call so a
// full reindex does not pay one HTTP round trip per article.
type BatchEmbedder interface {
	search.Embedder

	// EmbedBatch embeds several texts in one call. Vectors come back in
	// input order and are not dimension-checked; callers decide per item.
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)
}

// BatchReport summarizes one embedding run.
type BatchReport struct {
	articles int
	pending  int
	embedded int
	failed   int
	duration time.Duration
}

// Articles returns how many articles were considered.
func (r BatchReport) Articles() int { return r.articles }

// Pending returns how many articles needed (re-)embedding.
func (r BatchReport) Pending() int { return r.pending }

// Embedded returns how many vectors were written.
func (r BatchReport) Embedded() int { return r.embedded }

// Failed returns how many articles could not be embedded.
func (r BatchReport) Failed() int { return r.failed }

// Duration returns how long the run took.
func (r BatchReport) Duration() time.Duration { return r.duration }

// EmbeddingStats describes index coverage without touching the provider.
type EmbeddingStats struct {
	articles   int
	embedded   int
	missing    int
	stale      int
	byModel    map[string]int
	byDocument map[int64]int
}

// Articles returns the number of materialized articles.
func (s EmbeddingStats) Articles() int { return s.articles }

// Embedded returns how many articles have an up-to-date vector.
func (s EmbeddingStats) Embedded() int { return s.embedded }

// Missing returns how many articles have no vector at all.
func (s EmbeddingStats) Missing() int { return s.missing }

// Stale returns how many vectors no longer match their article content or
// were produced by a different model.
func (s EmbeddingStats) Stale() int { return s.stale }

// ByModel returns stored vector counts grouped by model name (copy).
func (s EmbeddingStats) ByModel() map[string]int {
	cp := make(map[string]int, len(s.byModel))
	for k, v := range s.byModel {
		cp[k] = v
	}
	return cp
}

// ByDocument returns stored vector counts grouped by document (copy).
func (s EmbeddingStats) ByDocument() map[int64]int {
	cp := make(map[int64]int, len(s.byDocument))
	for k, v := range s.byDocument {
		cp[k] = v
	}
	return cp
}

// Embedding generates article vectors incrementally. The content hash
// decides what to embed: an article whose stored hash matches its current
// content is skipped, so repeated runs over an unchanged corpus cost zero
// API calls.
type Embedding struct {
	records    ingestion.Store
	embeddings search.EmbeddingStore
	embedder   BatchEmbedder
	batchSize  int
	workers    int
	logger     *slog.Logger
}

// NewEmbedding creates an Embedding service. workers bounds the per-article
// fallback parallelism used when a batched provider call fails.
func NewEmbedding(records ingestion.Store, embeddings search.EmbeddingStore, embedder BatchEmbedder, batchSize, workers int, logger *slog.Logger) Embedding {
	if batchSize <= 0 {
		batchSize = config.DefaultBatchSize
	}
	if workers <= 0 {
		workers = config.DefaultWorkerCount
	}
	if logger == nil {
		logger = slog.Default()
	}
	return Embedding{
		records:    records,
		embeddings: embeddings,
		embedder:   embedder,
		batchSize:  batchSize,
		workers:    workers,
		logger:     logger,
	}
}

// Run embeds every pending article. Pending means no stored vector, a
// content hash that no longer matches, or a vector from a different
// model. A vector of unexpected dimensionality, or an article the provider
// cannot embed, fails that article only; the run continues.
func (s Embedding) Run(ctx context.Context) (BatchReport, error) {
	start := time.Now()

	records, err := s.records.Find(ctx)
	if err != nil {
		return BatchReport{}, err
	}

	pending, err := s.pending(ctx, records)
	if err != nil {
		return BatchReport{}, err
	}

	s.logger.Info("embedding run",
		slog.Int("articles", len(records)),
		slog.Int("pending", len(pending)),
		slog.String("model", s.embedder.Model()),
	)

	report := BatchReport{articles: len(records), pending: len(pending)}

	for lo := 0; lo < len(pending); lo += s.batchSize {
		hi := lo + s.batchSize
		if hi > len(pending) {
			hi = len(pending)
		}
		batch := pending[lo:hi]

		embedded, failed, err := s.embedBatch(ctx, batch)
		if err != nil {
			return report, err
		}
		report.embedded += embedded
		report.failed += failed
	}

	report.duration = time.Since(start)
	s.logger.Info("embedding run complete",
		slog.Int("embedded", report.Embedded()),
		slog.Int("failed", report.Failed()),
		slog.Duration("duration", report.Duration()),
	)
	return report, nil
}

// Stats reports index coverage against the current materialization,
// including stored vector totals grouped by model and by document.
func (s Embedding) Stats(ctx context.Context) (EmbeddingStats, error) {
	records, err := s.records.Find(ctx)
	if err != nil {
		return EmbeddingStats{}, err
	}

	embeddings, err := s.embeddings.Find(ctx)
	if err != nil {
		return EmbeddingStats{}, err
	}

	stats := EmbeddingStats{
		articles:   len(records),
		byModel:    make(map[string]int),
		byDocument: make(map[int64]int),
	}

	existing := make(map[int64]search.EmbeddingRecord, len(embeddings))
	for _, e := range embeddings {
		existing[e.ArticleID()] = e
		stats.byModel[e.Model()]++
		stats.byDocument[e.DocumentID()]++
	}
	for _, rec := range records {
		emb, ok := existing[rec.ArticleID()]
		switch {
		case !ok:
			stats.missing++
		case emb.ContentHash() != search.HashContent(rec.Content()) || emb.Model() != s.embedder.Model():
			stats.stale++
		default:
			stats.embedded++
		}
	}
	return stats, nil
}

// pending filters the materialization down to articles whose stored
// vector is absent or stale.
func (s Embedding) pending(ctx context.Context, records []ingestion.Record) ([]ingestion.Record, error) {
	existing, err := s.existingByArticle(ctx)
	if err != nil {
		return nil, err
	}

	var pending []ingestion.Record
	for _, rec := range records {
		emb, ok := existing[rec.ArticleID()]
		if ok && emb.ContentHash() == search.HashContent(rec.Content()) && emb.Model() == s.embedder.Model() {
			continue
		}
		pending = append(pending, rec)
	}
	return pending, nil
}

func (s Embedding) existingByArticle(ctx context.Context) (map[int64]search.EmbeddingRecord, error) {
	embeddings, err := s.embeddings.Find(ctx)
	if err != nil {
		return nil, err
	}
	existing := make(map[int64]search.EmbeddingRecord, len(embeddings))
	for _, e := range embeddings {
		existing[e.ArticleID()] = e
	}
	return existing, nil
}

// embedBatch embeds one batch in a single provider call and upserts each
// acceptable vector. When the batched call itself fails, the batch falls
// back to per-article calls so one bad input cannot sink its batch mates.
func (s Embedding) embedBatch(ctx context.Context, batch []ingestion.Record) (embedded, failed int, err error) {
	inputs := make([]string, len(batch))
	for i, rec := range batch {
		inputs[i] = search.EmbedInput(rec)
	}

	vectors, err := s.embedder.EmbedBatch(ctx, inputs)
	if err != nil {
		s.logger.Warn("batched embedding call failed, retrying articles individually",
			slog.Int("batch", len(batch)),
			slog.String("error", err.Error()),
		)
		vectors, err = s.embedEach(ctx, batch, inputs)
		if err != nil {
			return 0, 0, err
		}
	}

	return s.upsertVectors(ctx, batch, vectors)
}

// embedEach embeds one article per provider call, bounded by the configured
// worker count. A failed article leaves a nil vector; the caller counts it
// as failed and the run continues.
func (s Embedding) embedEach(ctx context.Context, batch []ingestion.Record, inputs []string) ([][]float32, error) {
	vectors := make([][]float32, len(batch))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)
	for i := range batch {
		g.Go(func() error {
			vec, err := s.embedder.Embed(gctx, inputs[i])
			if err != nil {
				s.logger.Warn("embedding failed, skipping article",
					slog.Int64("article_id", batch[i].ArticleID()),
					slog.String("error", err.Error()),
				)
				return nil
			}
			vectors[i] = vec
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return vectors, nil
}

// upsertVectors stores one vector per batch entry. A nil vector marks an
// article that already failed upstream; a wrong-length vector fails that
// article only.
func (s Embedding) upsertVectors(ctx context.Context, batch []ingestion.Record, vectors [][]float32) (embedded, failed int, err error) {
	for i, rec := range batch {
		if vectors[i] == nil {
			failed++
			continue
		}
		if len(vectors[i]) != s.embedder.Dimension() {
			s.logger.Warn("unexpected embedding dimension, skipping article",
				slog.Int64("article_id", rec.ArticleID()),
				slog.Int("expected", s.embedder.Dimension()),
				slog.Int("got", len(vectors[i])),
			)
			failed++
			continue
		}

		record := search.NewEmbeddingRecord(
			rec.ArticleID(),
			rec.DocumentID(),
			s.embedder.Model(),
			vectors[i],
			search.HashContent(rec.Content()),
		)
		if err := s.embeddings.Upsert(ctx, record); err != nil {
			return embedded, failed, err
		}
		embedded++
	}
	return embedded, failed, nil
}
