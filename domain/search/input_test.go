package search

import (
	"strings"
	"testing"

	"github.com/creditguardian/lexindex/domain/ingestion"
	"github.com/stretchr/testify/assert"
)

func TestEmbedInput(t *testing.T) {
	t.Run("enriches with tags", func(t *testing.T) {
		rec := ingestion.NewRecord(1, 10, "Чл. 1", "съдържание", []ingestion.TagScore{
			{Tag: "labor", Score: 2.5},
			{Tag: "tax_procedure", Score: 1.0},
		})

		input := EmbedInput(rec)
		assert.True(t, strings.HasPrefix(input, "съдържание"))
		assert.Contains(t, input, "Първичен таг: labor")
		assert.Contains(t, input, "Тагове: labor, tax_procedure")
	})

	t.Run("untagged article embeds bare content", func(t *testing.T) {
		rec := ingestion.NewRecord(1, 10, "Чл. 1", "съдържание", nil)
		assert.Equal(t, "съдържание", EmbedInput(rec))
	})
}

func TestHashContent(t *testing.T) {
	a := HashContent("текст")
	b := HashContent("текст")
	c := HashContent("друг текст")

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.Len(t, a, 64)

	// The hash covers raw content only; tag changes never affect it.
	tagged := ingestion.NewRecord(1, 10, "Чл. 1", "текст", []ingestion.TagScore{{Tag: "labor", Score: 1}})
	assert.Equal(t, a, HashContent(tagged.Content()))
}

func TestNewResult(t *testing.T) {
	long := strings.Repeat("я", PreviewRunes+50)
	rec := ingestion.NewRecord(1, 10, "Чл. 5", long, []ingestion.TagScore{
		{Tag: "a", Score: 4}, {Tag: "b", Score: 3}, {Tag: "c", Score: 2}, {Tag: "d", Score: 1},
	}).WithStructure("II", "Осигуряване", "3", "Вноски")

	r := NewResult(Match{ArticleID: 1, Similarity: 0.42}, rec)

	assert.Equal(t, int64(1), r.ArticleID())
	assert.Equal(t, "Чл. 5", r.ArticleNumber())
	assert.InDelta(t, 0.42, r.Similarity(), 1e-9)
	assert.Equal(t, PreviewRunes, len([]rune(r.Preview())))
	assert.Equal(t, long, r.Content(), "the preview truncates, the content does not")
	assert.Equal(t, "II", r.ChapterNumber())
	assert.Equal(t, "Осигуряване", r.ChapterTitle())
	assert.Equal(t, "3", r.SectionNumber())
	assert.Equal(t, "Вноски", r.SectionTitle())
	assert.Equal(t, "a", r.PrimaryTag())
	assert.Len(t, r.Tags(), ResultTagCount)
}
