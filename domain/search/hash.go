package search

import (
	"crypto/sha256"
	"encoding/hex"
)

// HashContent returns the SHA-256 hex digest of the original article
// content. The hash is taken over the raw stored text, never over the
// enriched embedding input, so changes to tag assignments alone do not
// force re-embedding.
func HashContent(content string) string {
	sum := sha256.Sum256([]byte(content))
	return hex.EncodeToString(sum[:])
}
