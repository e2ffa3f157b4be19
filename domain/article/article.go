// Package article defines the source legal article entity.
package article

import "time"

// Article is a single indexable unit of source legal text. Articles are
// created by the acquisition collaborator and are read-only to the
// tagging and retrieval pipeline.
type Article struct {
	id            int64
	documentID    int64
	number        string
	content       string
	chapterNumber string
	chapterTitle  string
	sectionNumber string
	sectionTitle  string
	createdAt     time.Time
	updatedAt     time.Time
}

// New creates an Article.
func New(id, documentID int64, number, content string) Article {
	return Article{
		id:         id,
		documentID: documentID,
		number:     number,
		content:    content,
	}
}

// ID returns the article identifier.
func (a Article) ID() int64 { return a.id }

// DocumentID returns the owning document identifier.
func (a Article) DocumentID() int64 { return a.documentID }

// Number returns the article number label (e.g. "Чл. 5").
func (a Article) Number() string { return a.number }

// Content returns the raw article text.
func (a Article) Content() string { return a.content }

// ChapterNumber returns the chapter number label.
func (a Article) ChapterNumber() string { return a.chapterNumber }

// ChapterTitle returns the chapter title.
func (a Article) ChapterTitle() string { return a.chapterTitle }

// SectionNumber returns the section number label.
func (a Article) SectionNumber() string { return a.sectionNumber }

// SectionTitle returns the section title.
func (a Article) SectionTitle() string { return a.sectionTitle }

// CreatedAt returns the creation timestamp.
func (a Article) CreatedAt() time.Time { return a.createdAt }

// UpdatedAt returns the last update timestamp.
func (a Article) UpdatedAt() time.Time { return a.updatedAt }

// WithStructure returns a copy carrying chapter/section metadata.
func (a Article) WithStructure(chapterNumber, chapterTitle, sectionNumber, sectionTitle string) Article {
	a.chapterNumber = chapterNumber
	a.chapterTitle = chapterTitle
	a.sectionNumber = sectionNumber
	a.sectionTitle = sectionTitle
	return a
}

// WithTimestamps returns a copy carrying persistence timestamps.
func (a Article) WithTimestamps(createdAt, updatedAt time.Time) Article {
	a.createdAt = createdAt
	a.updatedAt = updatedAt
	return a
}

// IsEmpty returns true when the article has no content to classify.
func (a Article) IsEmpty() bool { return a.content == "" }
