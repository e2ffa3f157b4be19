package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCosine(t *testing.T) {
	tests := []struct {
		name     string
		a        []float32
		b        []float32
		expected float64
	}{
		{name: "identical", a: []float32{1, 0, 0}, b: []float32{1, 0, 0}, expected: 1.0},
		{name: "opposite", a: []float32{1, 0, 0}, b: []float32{-1, 0, 0}, expected: -1.0},
		{name: "orthogonal", a: []float32{1, 0, 0}, b: []float32{0, 1, 0}, expected: 0.0},
		{name: "scaled copies", a: []float32{1, 2, 3}, b: []float32{2, 4, 6}, expected: 1.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Cosine(tt.a, tt.b, Norm(tt.a), Norm(tt.b))
			assert.InDelta(t, tt.expected, got, 1e-6)
		})
	}
}

func TestCosine_ZeroNorm(t *testing.T) {
	zero := []float32{0, 0, 0}
	other := []float32{1, 2, 3}

	assert.Zero(t, Cosine(zero, other, Norm(zero), Norm(other)))
	assert.Zero(t, Cosine(other, zero, Norm(other), Norm(zero)))
}

func TestTopK(t *testing.T) {
	records := []EmbeddingRecord{
		NewEmbeddingRecord(1, 10, "m", []float32{1, 0, 0}, "h1"),
		NewEmbeddingRecord(2, 10, "m", []float32{0.9, 0.1, 0}, "h2"),
		NewEmbeddingRecord(3, 10, "m", []float32{0, 1, 0}, "h3"),
		NewEmbeddingRecord(4, 10, "m", []float32{0, 0, 0}, "h4"),
	}
	query := []float32{1, 0, 0}

	t.Run("ranks by similarity descending", func(t *testing.T) {
		matches := TopK(query, records, 10, 0)
		require.Len(t, matches, 4)
		assert.Equal(t, int64(1), matches[0].ArticleID)
		assert.InDelta(t, 1.0, matches[0].Similarity, 1e-6)
		assert.Equal(t, int64(2), matches[1].ArticleID)
		assert.Equal(t, int64(4), matches[3].ArticleID, "zero vector scores 0, not NaN")
	})

	t.Run("limit truncates", func(t *testing.T) {
		matches := TopK(query, records, 2, 0)
		require.Len(t, matches, 2)
		assert.Equal(t, int64(1), matches[0].ArticleID)
	})

	t.Run("threshold filters", func(t *testing.T) {
		matches := TopK(query, records, 10, 0.5)
		require.Len(t, matches, 2)
		for _, m := range matches {
			assert.GreaterOrEqual(t, m.Similarity, 0.5)
		}
	})

	t.Run("raising threshold never adds results", func(t *testing.T) {
		loose := TopK(query, records, 10, 0.1)
		tight := TopK(query, records, 10, 0.9)
		assert.LessOrEqual(t, len(tight), len(loose))
	})

	t.Run("ties break by article id ascending", func(t *testing.T) {
		dup := []EmbeddingRecord{
			NewEmbeddingRecord(7, 10, "m", []float32{1, 0, 0}, "h"),
			NewEmbeddingRecord(3, 10, "m", []float32{1, 0, 0}, "h"),
			NewEmbeddingRecord(5, 10, "m", []float32{1, 0, 0}, "h"),
		}
		matches := TopK(query, dup, 10, 0)
		require.Len(t, matches, 3)
		assert.Equal(t, int64(3), matches[0].ArticleID)
		assert.Equal(t, int64(5), matches[1].ArticleID)
		assert.Equal(t, int64(7), matches[2].ArticleID)
	})

	t.Run("dimension mismatch skipped", func(t *testing.T) {
		mixed := append(records, NewEmbeddingRecord(9, 10, "m", []float32{1, 0}, "h"))
		matches := TopK(query, mixed, 10, 0)
		for _, m := range matches {
			assert.NotEqual(t, int64(9), m.ArticleID)
		}
	})

	t.Run("empty corpus", func(t *testing.T) {
		assert.Empty(t, TopK(query, nil, 10, 0))
	})
}

func TestEmbeddingRecord_SelfSimilarity(t *testing.T) {
	rec := NewEmbeddingRecord(1, 10, "m", []float32{0.3, -0.2, 0.9, 0.1}, "h")
	sim := Cosine(rec.Vector(), rec.Vector(), rec.Norm(), rec.Norm())
	assert.InDelta(t, 1.0, sim, 1e-6)
}
