package search

import (
	"strings"

	"github.com/creditguardian/lexindex/domain/ingestion"
)

// EmbedTagCount is how many tags are appended to the embedding input.
const EmbedTagCount = 5

// EmbedInput builds the text an article is embedded from: the article
// content enriched with its tag assignments so topically related articles
// land closer together. The content hash is still taken over the raw
// content, not over this enriched form.
func EmbedInput(record ingestion.Record) string {
	var sb strings.Builder
	sb.WriteString(record.Content())

	if primary := record.PrimaryTag(); primary != "" {
		sb.WriteString("\n\nПървичен таг: ")
		sb.WriteString(primary)
	}

	tags := record.TopTags(EmbedTagCount)
	if len(tags) > 0 {
		names := make([]string, len(tags))
		for i, t := range tags {
			names[i] = t.Tag
		}
		sb.WriteString("\nТагове: ")
		sb.WriteString(strings.Join(names, ", "))
	}

	return sb.String()
}
