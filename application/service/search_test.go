package service

import (
	"context"
	"testing"

	"github.com/creditguardian/lexindex/domain/article"
	"github.com/creditguardian/lexindex/domain/tagging"
	"github.com/creditguardian/lexindex/infrastructure/persistence"
	"github.com/creditguardian/lexindex/internal/config"
	"github.com/creditguardian/lexindex/internal/testdb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// pipeline wires the full stack over one in-memory database: articles in,
// tags scored, ingestion materialized, vectors indexed.
type pipeline struct {
	articles   persistence.ArticleStore
	tags       persistence.TagStore
	records    persistence.IngestionStore
	embeddings persistence.EmbeddingStore
	embedder   *fakeEmbedder
	cfg        config.AppConfig
}

func newPipeline(t *testing.T) *pipeline {
	t.Helper()
	db := testdb.New(t)
	return &pipeline{
		articles:   persistence.NewArticleStore(db),
		tags:       persistence.NewTagStore(db),
		records:    persistence.NewIngestionStore(db),
		embeddings: persistence.NewEmbeddingStore(db),
		embedder:   &fakeEmbedder{},
		cfg:        config.NewAppConfig(),
	}
}

func (p *pipeline) seedAndIndex(t *testing.T, ctx context.Context) {
	t.Helper()

	require.NoError(t, p.articles.SaveAll(ctx, []article.Article{
		article.New(1, 100, "Чл. 1", "трудовият договор се сключва писмено между работника и работодателя").
			WithStructure("I", "Трудово правоотношение", "1", "Сключване на договора"),
		article.New(2, 100, "Чл. 2", "данъкът се декларира и внася от задълженото лице"),
		article.New(3, 100, "Чл. 3", "нещо съвсем странично без познати понятия"),
	}))

	taxonomy, err := tagging.NewTaxonomy(map[string][]string{
		"labor":         {"труд", "работник", "работодател"},
		"tax_procedure": {"данък", "декларация"},
	})
	require.NoError(t, err)

	_, err = NewTagging(p.articles, p.tags, tagging.NewScorer(taxonomy), nil).Rebuild(ctx)
	require.NoError(t, err)

	_, err = NewIngestion(p.articles, p.tags, p.records, nil).Rebuild(ctx)
	require.NoError(t, err)

	_, err = NewEmbedding(p.records, p.embeddings, p.embedder, 50, 1, nil).Run(ctx)
	require.NoError(t, err)
}

func (p *pipeline) search() Search {
	return NewSearch(p.embedder, p.embeddings, p.records, p.cfg, nil)
}

func TestSearch_ByText(t *testing.T) {
	ctx := context.Background()
	p := newPipeline(t)
	p.seedAndIndex(t, ctx)
	svc := p.search()

	t.Run("ranks the on-topic article first", func(t *testing.T) {
		report, err := svc.ByText(ctx, "трудов договор")
		require.NoError(t, err)
		assert.True(t, report.Indexed())
		require.NotEmpty(t, report.Results())

		top := report.Results()[0]
		assert.Equal(t, int64(1), top.ArticleID())
		assert.InDelta(t, 1.0, top.Similarity(), 1e-6)
		assert.Equal(t, "labor", top.PrimaryTag())
		assert.Equal(t, "Чл. 1", top.ArticleNumber())
	})

	t.Run("carries full content and chapter context", func(t *testing.T) {
		report, err := svc.ByText(ctx, "трудов договор")
		require.NoError(t, err)
		require.NotEmpty(t, report.Results())

		top := report.Results()[0]
		assert.Equal(t, "трудовият договор се сключва писмено между работника и работодателя", top.Content())
		assert.Equal(t, "I", top.ChapterNumber())
		assert.Equal(t, "Трудово правоотношение", top.ChapterTitle())
		assert.Equal(t, "1", top.SectionNumber())
		assert.Equal(t, "Сключване на договора", top.SectionTitle())
	})

	t.Run("threshold filters weak matches", func(t *testing.T) {
		report, err := svc.ByText(ctx, "трудов договор", WithMinSimilarity(0.9))
		require.NoError(t, err)
		require.Len(t, report.Results(), 1)
		assert.Equal(t, int64(1), report.Results()[0].ArticleID())
	})

	t.Run("limit caps results", func(t *testing.T) {
		report, err := svc.ByText(ctx, "трудов договор", WithLimit(1))
		require.NoError(t, err)
		assert.Equal(t, 1, report.Count())
	})

	t.Run("empty query rejected", func(t *testing.T) {
		_, err := svc.ByText(ctx, "   ")
		assert.ErrorIs(t, err, ErrEmptyQuery)
	})

	t.Run("document scope excludes other documents", func(t *testing.T) {
		report, err := svc.ByText(ctx, "трудов договор", WithDocument(999))
		require.NoError(t, err)
		assert.False(t, report.Indexed(), "no vectors in scope means not indexed")
	})
}

func TestSearch_ByVector(t *testing.T) {
	ctx := context.Background()
	p := newPipeline(t)
	p.seedAndIndex(t, ctx)
	svc := p.search()

	t.Run("matches the tax article", func(t *testing.T) {
		report, err := svc.ByVector(ctx, []float32{0, 1, 0})
		require.NoError(t, err)
		require.NotEmpty(t, report.Results())
		assert.Equal(t, int64(2), report.Results()[0].ArticleID())
		assert.Equal(t, "tax_procedure", report.Results()[0].PrimaryTag())
	})

	t.Run("empty vector rejected", func(t *testing.T) {
		_, err := svc.ByVector(ctx, nil)
		assert.ErrorIs(t, err, ErrEmptyVector)
	})
}

func TestSearch_NotIndexed(t *testing.T) {
	ctx := context.Background()
	p := newPipeline(t)

	report, err := p.search().ByText(ctx, "трудов договор")
	require.NoError(t, err)
	assert.False(t, report.Indexed())
	assert.Zero(t, report.Count())
}

func TestTagging_Rebuild(t *testing.T) {
	ctx := context.Background()
	p := newPipeline(t)
	p.seedAndIndex(t, ctx)

	assignments, err := p.tags.Find(ctx, tagging.WithArticleID(1))
	require.NoError(t, err)
	require.NotEmpty(t, assignments)
	assert.Equal(t, "labor", assignments[0].Tag())
	assert.Positive(t, assignments[0].Score())

	// The off-topic article gets nothing.
	none, err := p.tags.Find(ctx, tagging.WithArticleID(3))
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestIngestion_Rebuild_CoversWholeCorpus(t *testing.T) {
	ctx := context.Background()
	p := newPipeline(t)
	p.seedAndIndex(t, ctx)

	count, err := p.records.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), count, "untagged articles are still materialized")
}

func TestTagging_Rebuild_Idempotent(t *testing.T) {
	ctx := context.Background()
	p := newPipeline(t)
	p.seedAndIndex(t, ctx)

	before, err := p.tags.Find(ctx)
	require.NoError(t, err)

	taxonomy, err := tagging.NewTaxonomy(map[string][]string{
		"labor":         {"труд", "работник", "работодател"},
		"tax_procedure": {"данък", "декларация"},
	})
	require.NoError(t, err)

	_, err = NewTagging(p.articles, p.tags, tagging.NewScorer(taxonomy), nil).Rebuild(ctx)
	require.NoError(t, err)

	after, err := p.tags.Find(ctx)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}
