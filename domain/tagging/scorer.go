package tagging

import (
	"context"
	"math"
	"runtime"
	"sort"

	"github.com/creditguardian/lexindex/domain/lexical"
	"golang.org/x/sync/errgroup"
)

// ContentCap is the maximum number of runes of article content considered
// for tag scoring. The cap is applied in tokenizeDocument, the single entry
// point used by both scoring passes, so document-frequency statistics and
// per-document scores always see the same truncation.
const ContentCap = 12000

// MaxTagsPerArticle is the number of tags kept per article after ranking.
const MaxTagsPerArticle = 5

// Document is one unit of text to score.
type Document struct {
	id      int64
	content string
}

// NewDocument creates a scoring Document.
func NewDocument(id int64, content string) Document {
	return Document{id: id, content: content}
}

// ID returns the document identifier.
func (d Document) ID() int64 { return d.id }

// Content returns the document text.
func (d Document) Content() string { return d.content }

// Scorer assigns weighted tags to a corpus of documents using two passes:
// corpus-wide document frequency, then per-document TF-IDF accumulation
// over the taxonomy's seed keywords. A single Score call operates over an
// immutable snapshot of its input, so both passes see identical text.
type Scorer struct {
	taxonomy Taxonomy
	workers  int
}

// NewScorer creates a Scorer over the given taxonomy.
func NewScorer(taxonomy Taxonomy) Scorer {
	return Scorer{taxonomy: taxonomy, workers: runtime.NumCPU()}
}

// WithWorkers returns a Scorer using n goroutines for the tokenization
// pass. Values <= 0 are clamped to 1.
func (s Scorer) WithWorkers(n int) Scorer {
	if n <= 0 {
		n = 1
	}
	s.workers = n
	return s
}

// Score tags every document in the corpus. The result contains at most
// MaxTagsPerArticle assignments per document, ordered by score descending
// with ties broken by tag name ascending. Documents matching no seed
// keyword contribute no assignments; that is a normal outcome, not an
// error. The only error cause is context cancellation.
func (s Scorer) Score(ctx context.Context, corpus []Document) ([]Assignment, error) {
	tokens, err := s.tokenizeCorpus(ctx, corpus)
	if err != nil {
		return nil, err
	}

	// Pass 1: document frequency over unique stems. Scoring must not start
	// before DF is complete.
	df := make(map[string]int)
	for _, toks := range tokens {
		seen := make(map[string]struct{}, len(toks))
		for _, t := range toks {
			if _, ok := seen[t]; ok {
				continue
			}
			seen[t] = struct{}{}
			df[t]++
		}
	}
	n := len(corpus)

	// Smoothed IDF per seed keyword.
	idf := make(map[string]float64, len(df))
	for _, tag := range s.taxonomy.Tags() {
		for _, kw := range s.taxonomy.Keywords(tag) {
			if _, ok := idf[kw]; ok {
				continue
			}
			idf[kw] = math.Log(float64(n+1)/float64(df[kw]+1)) + 1
		}
	}

	// Pass 2: per-document term frequency and tag accumulation.
	var assignments []Assignment
	for i, doc := range corpus {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		tf := make(map[string]int, len(tokens[i]))
		for _, t := range tokens[i] {
			tf[t]++
		}

		assignments = append(assignments, s.scoreDocument(doc.ID(), tf, idf)...)
	}

	return assignments, nil
}

// scoreDocument ranks tags for a single document against previously
// computed corpus statistics.
func (s Scorer) scoreDocument(docID int64, tf map[string]int, idf map[string]float64) []Assignment {
	type scored struct {
		tag   string
		score float64
	}

	var candidates []scored
	for _, tag := range s.taxonomy.Tags() {
		score := 0.0
		for _, kw := range s.taxonomy.Keywords(tag) {
			count, ok := tf[kw]
			if !ok {
				continue
			}
			// Augmented frequency: 1 + ln(tf).
			score += (1 + math.Log(float64(count))) * idf[kw]
		}
		if score > 0 {
			candidates = append(candidates, scored{tag: tag, score: score})
		}
	}

	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].score != candidates[j].score {
			return candidates[i].score > candidates[j].score
		}
		return candidates[i].tag < candidates[j].tag
	})

	if len(candidates) > MaxTagsPerArticle {
		candidates = candidates[:MaxTagsPerArticle]
	}

	result := make([]Assignment, len(candidates))
	for i, c := range candidates {
		result[i] = NewAssignment(docID, c.tag, c.score)
	}
	return result
}

// tokenizeCorpus tokenizes every document concurrently. Normalization is
// pure, so documents are processed independently.
func (s Scorer) tokenizeCorpus(ctx context.Context, corpus []Document) ([][]string, error) {
	tokens := make([][]string, len(corpus))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)

	for i, doc := range corpus {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			tokens[i] = tokenizeDocument(doc.Content())
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return tokens, nil
}

// tokenizeDocument caps content at ContentCap runes and tokenizes it. Both
// scoring passes go through this helper; keeping the truncation in one
// place is what keeps DF statistics consistent with per-document scores.
func tokenizeDocument(content string) []string {
	runes := []rune(content)
	if len(runes) > ContentCap {
		content = string(runes[:ContentCap])
	}
	return lexical.Tokenize(content)
}
