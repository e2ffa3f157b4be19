// Package ingestion defines the materialized read-model that joins an
// article with its current tag assignments. The table is always rebuilt
// wholesale; it is a cache over the normalized source tables, never a
// source of truth.
package ingestion

import "strings"

// TagScore is one (tag, score) pair carried on a materialized record.
type TagScore struct {
	Tag   string  `json:"tag"`
	Score float64 `json:"score"`
}

// Record is the denormalized ingestion row for one article. Tags preserve
// the score-descending order established by the scorer; PrimaryTag is the
// first entry or empty when the article matched no tags.
type Record struct {
	articleID     int64
	documentID    int64
	articleNumber string
	content       string
	chapterNumber string
	chapterTitle  string
	sectionNumber string
	sectionTitle  string
	tags          []TagScore
}

// NewRecord creates a Record. The tag slice is copied defensively.
func NewRecord(articleID, documentID int64, articleNumber, content string, tags []TagScore) Record {
	cp := make([]TagScore, len(tags))
	copy(cp, tags)
	return Record{
		articleID:     articleID,
		documentID:    documentID,
		articleNumber: articleNumber,
		content:       content,
		tags:          cp,
	}
}

// ArticleID returns the article identifier.
func (r Record) ArticleID() int64 { return r.articleID }

// DocumentID returns the owning document identifier.
func (r Record) DocumentID() int64 { return r.documentID }

// ArticleNumber returns the article number label.
func (r Record) ArticleNumber() string { return r.articleNumber }

// Content returns the article text.
func (r Record) Content() string { return r.content }

// ChapterNumber returns the chapter number label.
func (r Record) ChapterNumber() string { return r.chapterNumber }

// ChapterTitle returns the chapter title.
func (r Record) ChapterTitle() string { return r.chapterTitle }

// SectionNumber returns the section number label.
func (r Record) SectionNumber() string { return r.sectionNumber }

// SectionTitle returns the section title.
func (r Record) SectionTitle() string { return r.sectionTitle }

// Tags returns the ordered tag list (copy).
func (r Record) Tags() []TagScore {
	cp := make([]TagScore, len(r.tags))
	copy(cp, r.tags)
	return cp
}

// PrimaryTag returns the highest-scoring tag, or empty if none matched.
func (r Record) PrimaryTag() string {
	if len(r.tags) == 0 {
		return ""
	}
	return r.tags[0].Tag
}

// TagHint returns the comma-joined tag names for quick textual filtering
// without deserializing the full tag structure.
func (r Record) TagHint() string {
	if len(r.tags) == 0 {
		return ""
	}
	names := make([]string, len(r.tags))
	for i, t := range r.tags {
		names[i] = t.Tag
	}
	return strings.Join(names, ",")
}

// TopTags returns at most n leading tags.
func (r Record) TopTags(n int) []TagScore {
	if n > len(r.tags) {
		n = len(r.tags)
	}
	cp := make([]TagScore, n)
	copy(cp, r.tags[:n])
	return cp
}

// WithStructure returns a copy carrying chapter/section metadata.
func (r Record) WithStructure(chapterNumber, chapterTitle, sectionNumber, sectionTitle string) Record {
	r.chapterNumber = chapterNumber
	r.chapterTitle = chapterTitle
	r.sectionNumber = sectionNumber
	r.sectionTitle = sectionTitle
	return r
}
