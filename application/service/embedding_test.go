package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/creditguardian/lexindex/domain/ingestion"
	"github.com/creditguardian/lexindex/infrastructure/persistence"
	"github.com/creditguardian/lexindex/internal/testdb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeEmbedder maps texts to fixed vectors by keyword so tests are fully
// deterministic. It counts provider calls to verify the change-detection
// contract: unchanged corpora must cost zero calls. A POISON input fails
// the whole call, mimicking a provider that rejects one bad document.
type fakeEmbedder struct {
	mu    sync.Mutex
	calls int
}

func (f *fakeEmbedder) Model() string  { return "fake-model" }
func (f *fakeEmbedder) Dimension() int { return 3 }

func (f *fakeEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	vectors, err := f.EmbedBatch(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return vectors[0], nil
}

func (f *fakeEmbedder) EmbedBatch(_ context.Context, texts []string) ([][]float32, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()

	vectors := make([][]float32, len(texts))
	for i, text := range texts {
		switch {
		case strings.Contains(text, "POISON"):
			return nil, errors.New("provider rejected input")
		case strings.Contains(text, "BADDIM"):
			vectors[i] = []float32{1, 2}
		case strings.Contains(text, "труд"):
			vectors[i] = []float32{1, 0, 0}
		case strings.Contains(text, "данък"):
			vectors[i] = []float32{0, 1, 0}
		default:
			vectors[i] = []float32{0, 0, 1}
		}
	}
	return vectors, nil
}

func (f *fakeEmbedder) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func seedIngestion(t *testing.T, store persistence.IngestionStore, records ...ingestion.Record) {
	t.Helper()
	require.NoError(t, store.ReplaceAll(context.Background(), records))
}

func TestEmbedding_Run(t *testing.T) {
	ctx := context.Background()
	db := testdb.New(t)
	records := persistence.NewIngestionStore(db)
	embeddings := persistence.NewEmbeddingStore(db)
	embedder := &fakeEmbedder{}

	seedIngestion(t, records,
		ingestion.NewRecord(1, 100, "Чл. 1", "трудов договор", nil),
		ingestion.NewRecord(2, 100, "Чл. 2", "данък върху дохода", nil),
		ingestion.NewRecord(3, 100, "Чл. 3", "нещо друго", nil),
	)

	svc := NewEmbedding(records, embeddings, embedder, 2, 1, nil)

	report, err := svc.Run(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, report.Articles())
	assert.Equal(t, 3, report.Pending())
	assert.Equal(t, 3, report.Embedded())
	assert.Zero(t, report.Failed())
	// Three pending articles at batch size 2 is two provider calls.
	assert.Equal(t, 2, embedder.callCount())

	t.Run("second run is free", func(t *testing.T) {
		before := embedder.callCount()
		report, err := svc.Run(ctx)
		require.NoError(t, err)
		assert.Zero(t, report.Pending())
		assert.Zero(t, report.Embedded())
		assert.Equal(t, before, embedder.callCount(), "unchanged corpus must cost zero provider calls")
	})

	t.Run("only changed article re-embedded", func(t *testing.T) {
		seedIngestion(t, records,
			ingestion.NewRecord(1, 100, "Чл. 1", "трудов договор", nil),
			ingestion.NewRecord(2, 100, "Чл. 2", "данък върху дохода, изменен", nil),
			ingestion.NewRecord(3, 100, "Чл. 3", "нещо друго", nil),
		)

		report, err := svc.Run(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, report.Pending())
		assert.Equal(t, 1, report.Embedded())
	})

	t.Run("tag change alone does not re-embed", func(t *testing.T) {
		seedIngestion(t, records,
			ingestion.NewRecord(1, 100, "Чл. 1", "трудов договор", []ingestion.TagScore{{Tag: "labor", Score: 2}}),
			ingestion.NewRecord(2, 100, "Чл. 2", "данък върху дохода, изменен", nil),
			ingestion.NewRecord(3, 100, "Чл. 3", "нещо друго", nil),
		)

		report, err := svc.Run(ctx)
		require.NoError(t, err)
		assert.Zero(t, report.Pending(), "hash covers raw content, not the enriched embedding input")
	})
}

func TestEmbedding_Run_DimensionGuard(t *testing.T) {
	ctx := context.Background()
	db := testdb.New(t)
	records := persistence.NewIngestionStore(db)
	embeddings := persistence.NewEmbeddingStore(db)

	seedIngestion(t, records,
		ingestion.NewRecord(1, 100, "Чл. 1", "трудов договор", nil),
		ingestion.NewRecord(2, 100, "Чл. 2", "BADDIM текст", nil),
	)

	svc := NewEmbedding(records, embeddings, &fakeEmbedder{}, 50, 1, nil)

	report, err := svc.Run(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, report.Embedded())
	assert.Equal(t, 1, report.Failed(), "wrong-length vector fails that article only")

	count, err := embeddings.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestEmbedding_Run_BatchFailureIsolated(t *testing.T) {
	ctx := context.Background()
	db := testdb.New(t)
	records := persistence.NewIngestionStore(db)
	embeddings := persistence.NewEmbeddingStore(db)
	embedder := &fakeEmbedder{}

	seedIngestion(t, records,
		ingestion.NewRecord(1, 100, "Чл. 1", "трудов договор", nil),
		ingestion.NewRecord(2, 100, "Чл. 2", "POISON текст", nil),
	)

	svc := NewEmbedding(records, embeddings, embedder, 50, 2, nil)

	report, err := svc.Run(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, report.Embedded(), "the healthy article must still be embedded")
	assert.Equal(t, 1, report.Failed(), "a rejected article fails alone, not its batch mates")

	count, err := embeddings.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	// One failed batched call, then one single call per article.
	assert.Equal(t, 3, embedder.callCount())
}

func TestEmbedding_Stats(t *testing.T) {
	ctx := context.Background()
	db := testdb.New(t)
	records := persistence.NewIngestionStore(db)
	embeddings := persistence.NewEmbeddingStore(db)

	seedIngestion(t, records,
		ingestion.NewRecord(1, 100, "Чл. 1", "трудов договор", nil),
		ingestion.NewRecord(2, 100, "Чл. 2", "данък", nil),
		ingestion.NewRecord(3, 200, "Чл. 3", "нещо друго", nil),
	)

	svc := NewEmbedding(records, embeddings, &fakeEmbedder{}, 50, 1, nil)

	stats, err := svc.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, stats.Articles())
	assert.Equal(t, 3, stats.Missing())
	assert.Empty(t, stats.ByModel())
	assert.Empty(t, stats.ByDocument())

	_, err = svc.Run(ctx)
	require.NoError(t, err)

	// Change one article after indexing: it shows up as stale.
	seedIngestion(t, records,
		ingestion.NewRecord(1, 100, "Чл. 1", "трудов договор", nil),
		ingestion.NewRecord(2, 100, "Чл. 2", "данък, изменен", nil),
		ingestion.NewRecord(3, 200, "Чл. 3", "нещо друго", nil),
	)

	stats, err = svc.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.Embedded())
	assert.Equal(t, 1, stats.Stale())
	assert.Zero(t, stats.Missing())

	// Stored vector totals group by model and by owning document.
	assert.Equal(t, map[string]int{"fake-model": 3}, stats.ByModel())
	assert.Equal(t, map[int64]int{100: 2, 200: 1}, stats.ByDocument())
}
