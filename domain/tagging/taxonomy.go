// Package tagging assigns weighted thematic tags to legal articles using
// TF-IDF scoring over a fixed keyword taxonomy.
package tagging

import (
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/creditguardian/lexindex/domain/lexical"
	"gopkg.in/yaml.v3"
)

// Taxonomy configuration errors. These are fatal: a malformed taxonomy
// aborts a rebuild before any writes.
var (
	ErrEmptyTaxonomy = errors.New("taxonomy has no tags")
	ErrInvalidTag    = errors.New("invalid taxonomy tag")
)

// Taxonomy maps tag names to their stemmed seed keyword sets.
type Taxonomy struct {
	vocab map[string]map[string]struct{}
}

// taxonomyFile is the YAML shape: {tag_name: {seed_keywords: [...]}}.
type taxonomyFile map[string]struct {
	SeedKeywords []string `yaml:"seed_keywords"`
}

// NewTaxonomy builds a Taxonomy from raw tag → keyword lists. Keywords are
// normalized through the lexical stemmer so they compare directly against
// tokenized article text.
func NewTaxonomy(raw map[string][]string) (Taxonomy, error) {
	if len(raw) == 0 {
		return Taxonomy{}, ErrEmptyTaxonomy
	}

	vocab := make(map[string]map[string]struct{}, len(raw))
	for tag, keywords := range raw {
		if tag == "" {
			return Taxonomy{}, fmt.Errorf("%w: empty tag name", ErrInvalidTag)
		}
		if len(keywords) == 0 {
			return Taxonomy{}, fmt.Errorf("%w: tag %q has no seed keywords", ErrInvalidTag, tag)
		}
		stems := make(map[string]struct{}, len(keywords))
		for _, kw := range keywords {
			stem := lexical.Stem(kw)
			if stem == "" {
				return Taxonomy{}, fmt.Errorf("%w: tag %q keyword %q normalizes to nothing", ErrInvalidTag, tag, kw)
			}
			stems[stem] = struct{}{}
		}
		vocab[tag] = stems
	}

	return Taxonomy{vocab: vocab}, nil
}

// LoadTaxonomy reads a YAML taxonomy file ({tag: {seed_keywords: [...]}}).
func LoadTaxonomy(path string) (Taxonomy, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Taxonomy{}, fmt.Errorf("read taxonomy: %w", err)
	}

	var file taxonomyFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return Taxonomy{}, fmt.Errorf("parse taxonomy: %w", err)
	}

	raw := make(map[string][]string, len(file))
	for tag, entry := range file {
		raw[tag] = entry.SeedKeywords
	}
	return NewTaxonomy(raw)
}

// Tags returns all tag names sorted ascending.
func (t Taxonomy) Tags() []string {
	tags := make([]string, 0, len(t.vocab))
	for tag := range t.vocab {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}

// Keywords returns the stemmed seed keywords for a tag, sorted ascending.
func (t Taxonomy) Keywords(tag string) []string {
	stems, ok := t.vocab[tag]
	if !ok {
		return nil
	}
	out := make([]string, 0, len(stems))
	for s := range stems {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}

// Len returns the number of tags in the taxonomy.
func (t Taxonomy) Len() int { return len(t.vocab) }

// DefaultTaxonomy returns the built-in Bulgarian legal taxonomy.
func DefaultTaxonomy() Taxonomy {
	t, err := NewTaxonomy(map[string][]string{
		"labor":                     {"труд", "работник", "работодател", "възнаграждение", "заплата", "отпуск"},
		"social_security":           {"осигуряване", "пенсия", "инвалидност", "осигурителен", "болничен"},
		"tax_procedure":             {"данък", "данъчен", "декларация", "ревизия", "обжалване"},
		"civil_procedure":           {"иск", "заповед", "съд", "дело", "процедура", "жалба"},
		"penal_substantive":         {"престъпление", "наказание", "лишаване", "свобода", "глоба", "умисъл"},
		"criminal_procedure":        {"досъдебно", "обвиняем", "разследване", "съдебно", "производство", "арест"},
		"family":                    {"брак", "съпруг", "родител", "осиновяване", "семейство", "издръжка"},
		"maritime":                  {"кораб", "плаване", "морско", "пристанище", "капитан"},
		"private_international_law": {"приложимо", "колизия", "международно", "частно", "компетентност"},
		"insurance":                 {"застраховка", "застраховател", "премия", "застрахован", "щета"},
		"elections":                 {"избор", "кампания", "гласуване", "секция", "мандат"},
		"ethics_lawyer":             {"адвокат", "етичен", "поведение", "достойно"},
		"ethics_medical":            {"дентална", "фармацевт", "медицинска", "етика"},
	})
	if err != nil {
		// The built-in table is static; a failure here is a programming error.
		panic(err)
	}
	return t
}
