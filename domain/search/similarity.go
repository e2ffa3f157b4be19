package search

import (
	"math"
	"sort"
)

// Norm returns the L2 norm of a vector.
func Norm(v []float32) float64 {
	var sum float64
	for _, x := range v {
		sum += float64(x) * float64(x)
	}
	return math.Sqrt(sum)
}

// Cosine returns the cosine similarity between two vectors given their
// precomputed norms. A zero norm on either side yields 0 rather than NaN.
func Cosine(a, b []float32, normA, normB float64) float64 {
	if normA == 0 || normB == 0 {
		return 0
	}
	var dot float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
	}
	return dot / (normA * normB)
}

// Match pairs an article with its similarity to a query vector.
type Match struct {
	ArticleID  int64
	Similarity float64
}

// TopK exhaustively scores every record against the query vector and
// returns at most limit matches with similarity >= minSimilarity, ordered
// by similarity descending. Ties break by article ID ascending so repeated
// searches over the same corpus return the same ranking. Records whose
// dimensionality differs from the query are skipped.
func TopK(query []float32, records []EmbeddingRecord, limit int, minSimilarity float64) []Match {
	queryNorm := Norm(query)

	matches := make([]Match, 0, len(records))
	for _, rec := range records {
		if rec.Dimension() != len(query) {
			continue
		}
		sim := Cosine(query, rec.vector, queryNorm, rec.norm)
		if sim < minSimilarity {
			continue
		}
		matches = append(matches, Match{ArticleID: rec.ArticleID(), Similarity: sim})
	}

	sort.Slice(matches, func(i, j int) bool {
		if matches[i].Similarity != matches[j].Similarity {
			return matches[i].Similarity > matches[j].Similarity
		}
		return matches[i].ArticleID < matches[j].ArticleID
	})

	if limit > 0 && len(matches) > limit {
		matches = matches[:limit]
	}
	return matches
}
