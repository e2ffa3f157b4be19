package service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/creditguardian/lexindex/domain/ingestion"
	"github.com/creditguardian/lexindex/domain/search"
	"github.com/creditguardian/lexindex/domain/store"
	"github.com/creditguardian/lexindex/internal/config"
)

// SearchOption configures a search request.
type SearchOption func(*searchConfig)

type searchConfig struct {
	limit         int
	minSimilarity float64
	documentID    int64
}

// WithLimit sets the maximum number of results.
func WithLimit(n int) SearchOption {
	return func(c *searchConfig) {
		if n > 0 {
			c.limit = n
		}
	}
}

// WithMinSimilarity filters results below a similarity threshold.
func WithMinSimilarity(s float64) SearchOption {
	return func(c *searchConfig) {
		if s >= 0 {
			c.minSimilarity = s
		}
	}
}

// WithDocument restricts the search to one source document.
func WithDocument(id int64) SearchOption {
	return func(c *searchConfig) {
		c.documentID = id
	}
}

// SearchReport carries ranked results plus whether the scanned index had
// any vectors at all, so callers can tell "no matches" from "not indexed".
type SearchReport struct {
	results []search.Result
	indexed bool
}

// Results returns the ranked hits (copy).
func (r SearchReport) Results() []search.Result {
	cp := make([]search.Result, len(r.results))
	copy(cp, r.results)
	return cp
}

// Indexed returns false when the search scope contained no embeddings.
func (r SearchReport) Indexed() bool { return r.indexed }

// Count returns the number of hits.
func (r SearchReport) Count() int { return len(r.results) }

// Search answers similarity queries by exhaustively scanning stored
// vectors. Precomputed norms keep the scan to one dot product per article.
type Search struct {
	embedder      search.Embedder
	embeddings    search.EmbeddingStore
	records       ingestion.Store
	limit         int
	minSimilarity float64
	logger        *slog.Logger
}

// NewSearch creates a Search service with default limit and threshold.
func NewSearch(embedder search.Embedder, embeddings search.EmbeddingStore, records ingestion.Store, cfg config.AppConfig, logger *slog.Logger) Search {
	if logger == nil {
		logger = slog.Default()
	}
	return Search{
		embedder:      embedder,
		embeddings:    embeddings,
		records:       records,
		limit:         cfg.SearchLimit(),
		minSimilarity: cfg.MinSimilarity(),
		logger:        logger,
	}
}

// ByText embeds the query and delegates to ByVector. The query is embedded
// with the same model as the corpus; a query against an index built by a
// different model returns no meaningful matches, which is why embeddings
// are filtered to the current model.
func (s Search) ByText(ctx context.Context, query string, options ...SearchOption) (SearchReport, error) {
	if strings.TrimSpace(query) == "" {
		return SearchReport{}, ErrEmptyQuery
	}

	vector, err := s.embedder.Embed(ctx, query)
	if err != nil {
		return SearchReport{}, err
	}
	return s.ByVector(ctx, vector, options...)
}

// ByVector scores every stored embedding against the query vector and
// returns the top matches joined with their ingestion metadata.
func (s Search) ByVector(ctx context.Context, vector []float32, options ...SearchOption) (SearchReport, error) {
	if len(vector) == 0 {
		return SearchReport{}, ErrEmptyVector
	}

	cfg := &searchConfig{limit: s.limit, minSimilarity: s.minSimilarity}
	for _, opt := range options {
		opt(cfg)
	}

	scope := []store.Option{search.WithModel(s.embedder.Model())}
	if cfg.documentID != 0 {
		scope = append(scope, search.WithDocumentID(cfg.documentID))
	}

	embeddings, err := s.embeddings.Find(ctx, scope...)
	if err != nil {
		return SearchReport{}, err
	}
	if len(embeddings) == 0 {
		return SearchReport{indexed: false}, nil
	}

	matches := search.TopK(vector, embeddings, cfg.limit, cfg.minSimilarity)
	if len(matches) == 0 {
		return SearchReport{indexed: true}, nil
	}

	ids := make([]int64, len(matches))
	for i, m := range matches {
		ids[i] = m.ArticleID
	}

	records, err := s.records.Find(ctx, ingestion.WithArticleIDIn(ids))
	if err != nil {
		return SearchReport{}, err
	}
	byID := make(map[int64]ingestion.Record, len(records))
	for _, r := range records {
		byID[r.ArticleID()] = r
	}

	results := make([]search.Result, 0, len(matches))
	for _, m := range matches {
		rec, ok := byID[m.ArticleID]
		if !ok {
			// Vector without a materialized row: the ingestion table was
			// rebuilt after this article disappeared. Skip it.
			s.logger.Debug("embedding without ingestion record", slog.Int64("article_id", m.ArticleID))
			continue
		}
		results = append(results, search.NewResult(m, rec))
	}

	return SearchReport{results: results, indexed: true}, nil
}
