// Package search defines vector embeddings over legal articles and
// exhaustive cosine-similarity retrieval on top of them.
package search

import "time"

// EmbeddingRecord is one stored article vector together with the metadata
// needed for change detection and fast similarity scoring. The invariant
// len(Vector()) == Dimension() is enforced at creation time by the
// embedding service and never re-checked at query time.
type EmbeddingRecord struct {
	articleID   int64
	documentID  int64
	model       string
	dimension   int
	vector      []float32
	norm        float64
	contentHash string
	createdAt   time.Time
	updatedAt   time.Time
}

// NewEmbeddingRecord creates an EmbeddingRecord. The vector is copied
// defensively and its L2 norm is computed once, here.
func NewEmbeddingRecord(articleID, documentID int64, model string, vector []float32, contentHash string) EmbeddingRecord {
	cp := make([]float32, len(vector))
	copy(cp, vector)
	return EmbeddingRecord{
		articleID:   articleID,
		documentID:  documentID,
		model:       model,
		dimension:   len(cp),
		vector:      cp,
		norm:        Norm(cp),
		contentHash: contentHash,
	}
}

// ArticleID returns the article identifier.
func (e EmbeddingRecord) ArticleID() int64 { return e.articleID }

// DocumentID returns the owning document identifier.
func (e EmbeddingRecord) DocumentID() int64 { return e.documentID }

// Model returns the embedding model identifier the vector came from.
func (e EmbeddingRecord) Model() string { return e.model }

// Dimension returns the vector dimensionality.
func (e EmbeddingRecord) Dimension() int { return e.dimension }

// Vector returns the embedding vector (copy).
func (e EmbeddingRecord) Vector() []float32 {
	cp := make([]float32, len(e.vector))
	copy(cp, e.vector)
	return cp
}

// Norm returns the precomputed L2 norm of the vector.
func (e EmbeddingRecord) Norm() float64 { return e.norm }

// ContentHash returns the SHA-256 hex digest of the article content the
// vector was generated from.
func (e EmbeddingRecord) ContentHash() string { return e.contentHash }

// CreatedAt returns when the record was first stored.
func (e EmbeddingRecord) CreatedAt() time.Time { return e.createdAt }

// UpdatedAt returns when the record was last refreshed.
func (e EmbeddingRecord) UpdatedAt() time.Time { return e.updatedAt }

// WithTimestamps returns a copy carrying persistence timestamps.
func (e EmbeddingRecord) WithTimestamps(createdAt, updatedAt time.Time) EmbeddingRecord {
	e.createdAt = createdAt
	e.updatedAt = updatedAt
	return e
}
