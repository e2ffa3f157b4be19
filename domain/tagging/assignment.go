package tagging

// Assignment is one weighted tag on one article.
type Assignment struct {
	articleID int64
	tag       string
	score     float64
}

// NewAssignment creates an Assignment.
func NewAssignment(articleID int64, tag string, score float64) Assignment {
	return Assignment{
		articleID: articleID,
		tag:       tag,
		score:     score,
	}
}

// ArticleID returns the article identifier.
func (a Assignment) ArticleID() int64 { return a.articleID }

// Tag returns the tag name.
func (a Assignment) Tag() string { return a.tag }

// Score returns the non-negative relevance score.
func (a Assignment) Score() float64 { return a.score }
