package tagging

import (
	"context"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testTaxonomy(t *testing.T, raw map[string][]string) Taxonomy {
	t.Helper()
	tax, err := NewTaxonomy(raw)
	require.NoError(t, err)
	return tax
}

func TestScorer_Score(t *testing.T) {
	ctx := context.Background()

	tax := testTaxonomy(t, map[string][]string{
		"labor":         {"труд", "договор"},
		"tax_procedure": {"данък"},
	})
	scorer := NewScorer(tax)

	t.Run("matches keywords across inflections", func(t *testing.T) {
		corpus := []Document{
			NewDocument(1, "трудовият договор се сключва писмено"),
			NewDocument(2, "данъкът се внася в срок"),
		}

		assignments, err := scorer.Score(ctx, corpus)
		require.NoError(t, err)
		require.Len(t, assignments, 2)

		assert.Equal(t, int64(1), assignments[0].ArticleID())
		assert.Equal(t, "labor", assignments[0].Tag())
		assert.Equal(t, int64(2), assignments[1].ArticleID())
		assert.Equal(t, "tax_procedure", assignments[1].Tag())
	})

	t.Run("score formula", func(t *testing.T) {
		corpus := []Document{
			NewDocument(1, "труд труд"),
			NewDocument(2, "данък"),
		}

		assignments, err := scorer.Score(ctx, corpus)
		require.NoError(t, err)
		require.Len(t, assignments, 2)

		// труд appears in 1 of 2 documents: idf = ln(3/2) + 1.
		// tf = 2, so score = (1 + ln 2) * idf.
		idf := math.Log(3.0/2.0) + 1
		expected := (1 + math.Log(2)) * idf
		assert.InDelta(t, expected, assignments[0].Score(), 1e-9)
	})

	t.Run("no keyword no assignment", func(t *testing.T) {
		corpus := []Document{
			NewDocument(1, "нищо общо с познатите теми"),
		}

		assignments, err := scorer.Score(ctx, corpus)
		require.NoError(t, err)
		assert.Empty(t, assignments)
	})

	t.Run("deterministic across runs", func(t *testing.T) {
		corpus := []Document{
			NewDocument(1, "труд и данък и договор"),
			NewDocument(2, "данък върху труда"),
			NewDocument(3, "без съвпадения тук"),
		}

		first, err := scorer.Score(ctx, corpus)
		require.NoError(t, err)
		second, err := scorer.WithWorkers(1).Score(ctx, corpus)
		require.NoError(t, err)
		assert.Equal(t, first, second)
	})

	t.Run("cancelled context", func(t *testing.T) {
		cancelled, cancel := context.WithCancel(ctx)
		cancel()

		_, err := scorer.Score(cancelled, []Document{NewDocument(1, "труд")})
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestScorer_Score_TagCapAndTieBreak(t *testing.T) {
	ctx := context.Background()

	// Seven tags all keyed to the same keyword score identically; only the
	// first five by name survive the cap.
	raw := make(map[string][]string)
	for _, tag := range []string{"g_tag", "c_tag", "a_tag", "f_tag", "b_tag", "e_tag", "d_tag"} {
		raw[tag] = []string{"труд"}
	}
	scorer := NewScorer(testTaxonomy(t, raw))

	assignments, err := scorer.Score(ctx, []Document{NewDocument(1, "труд")})
	require.NoError(t, err)
	require.Len(t, assignments, MaxTagsPerArticle)

	got := make([]string, len(assignments))
	for i, a := range assignments {
		got[i] = a.Tag()
	}
	assert.Equal(t, []string{"a_tag", "b_tag", "c_tag", "d_tag", "e_tag"}, got)
}

func TestScorer_Score_ContentCap(t *testing.T) {
	ctx := context.Background()
	scorer := NewScorer(testTaxonomy(t, map[string][]string{
		"labor": {"труд"},
	}))

	// The only keyword occurrence sits beyond the cap, so it is invisible
	// to both the frequency pass and the scoring pass.
	padding := strings.Repeat("я ", ContentCap/2)
	corpus := []Document{NewDocument(1, padding+" труд")}

	assignments, err := scorer.Score(ctx, corpus)
	require.NoError(t, err)
	assert.Empty(t, assignments)
}
