package search

import "github.com/creditguardian/lexindex/domain/ingestion"

// PreviewRunes is how much article content a Result carries for display.
const PreviewRunes = 200

// ResultTagCount is how many leading tags a Result carries.
const ResultTagCount = 3

// Result is one ranked search hit joined with its ingestion metadata. It
// carries both the truncated preview and the full content, plus the
// chapter/section context, so a caller can render a hit without a second
// lookup.
type Result struct {
	articleID     int64
	documentID    int64
	articleNumber string
	similarity    float64
	content       string
	preview       string
	chapterNumber string
	chapterTitle  string
	sectionNumber string
	sectionTitle  string
	primaryTag    string
	tags          []ingestion.TagScore
}

// NewResult creates a Result from a similarity match and the matching
// ingestion record. The preview is the content truncated to PreviewRunes
// runes and tags are the leading ResultTagCount entries.
func NewResult(match Match, record ingestion.Record) Result {
	return Result{
		articleID:     match.ArticleID,
		documentID:    record.DocumentID(),
		articleNumber: record.ArticleNumber(),
		similarity:    match.Similarity,
		content:       record.Content(),
		preview:       truncateRunes(record.Content(), PreviewRunes),
		chapterNumber: record.ChapterNumber(),
		chapterTitle:  record.ChapterTitle(),
		sectionNumber: record.SectionNumber(),
		sectionTitle:  record.SectionTitle(),
		primaryTag:    record.PrimaryTag(),
		tags:          record.TopTags(ResultTagCount),
	}
}

// ArticleID returns the article identifier.
func (r Result) ArticleID() int64 { return r.articleID }

// DocumentID returns the owning document identifier.
func (r Result) DocumentID() int64 { return r.documentID }

// ArticleNumber returns the article number label.
func (r Result) ArticleNumber() string { return r.articleNumber }

// Similarity returns the cosine similarity to the query.
func (r Result) Similarity() float64 { return r.similarity }

// Content returns the full article content.
func (r Result) Content() string { return r.content }

// Preview returns the truncated article content.
func (r Result) Preview() string { return r.preview }

// ChapterNumber returns the chapter number label.
func (r Result) ChapterNumber() string { return r.chapterNumber }

// ChapterTitle returns the chapter title.
func (r Result) ChapterTitle() string { return r.chapterTitle }

// SectionNumber returns the section number label.
func (r Result) SectionNumber() string { return r.sectionNumber }

// SectionTitle returns the section title.
func (r Result) SectionTitle() string { return r.sectionTitle }

// PrimaryTag returns the article's primary tag, or empty.
func (r Result) PrimaryTag() string { return r.primaryTag }

// Tags returns the leading tags (copy).
func (r Result) Tags() []ingestion.TagScore {
	cp := make([]ingestion.TagScore, len(r.tags))
	copy(cp, r.tags)
	return cp
}

func truncateRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
