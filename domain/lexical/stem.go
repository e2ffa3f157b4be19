// Package lexical provides heuristic lexical normalization for Bulgarian
// legal text: a rule-based suffix-stripping stemmer and a Cyrillic
// tokenizer. It is an approximation tuned for tag scoring, not a
// linguistically complete morphological analyzer.
package lexical

import (
	"sort"
	"strings"
	"unicode/utf8"
)

// minStemRunes is the minimum number of runes a stem must keep after suffix
// removal. Shorter results would over-stem common short words.
const minStemRunes = 3

// suffixes is the ranked list of known inflectional and derivational
// endings. Longest match wins; ties resolve by declaration order.
var suffixes = []string{
	"ите", "ият", "ията", "овете", "евете", "ове", "еве", "ия", "ът", "ят",
	"та", "то", "те", "ените", "ения", "ени", "ността", "ност", "чески",
	"ов", "ев", "ите", "ки", "ски", "ско", "ни", "на", "ен", "ий", "ия",
	"а", "и",
}

// rankedSuffixes holds suffixes sorted by rune length descending, with the
// original declaration order preserved among equal lengths.
var rankedSuffixes = func() []string {
	ranked := make([]string, len(suffixes))
	copy(ranked, suffixes)
	sort.SliceStable(ranked, func(i, j int) bool {
		return utf8.RuneCountInString(ranked[i]) > utf8.RuneCountInString(ranked[j])
	})
	return ranked
}()

// Stem normalizes a single token to a comparable root: lower-case, collapse
// 'й' into 'и', trim non-Cyrillic runes from both ends, then strip the
// longest matching suffix as long as at least three runes remain. At most
// one suffix is removed. Any input, including empty or punctuation-only
// strings, yields a (possibly empty) string; Stem never fails.
func Stem(word string) string {
	w := strings.ToLower(word)
	w = strings.ReplaceAll(w, "й", "и")
	w = strings.TrimFunc(w, func(r rune) bool {
		return !isCyrillicLower(r)
	})

	wLen := utf8.RuneCountInString(w)
	for _, suf := range rankedSuffixes {
		if !strings.HasSuffix(w, suf) {
			continue
		}
		if wLen-utf8.RuneCountInString(suf) < minStemRunes {
			continue
		}
		return strings.TrimSuffix(w, suf)
	}
	return w
}

func isCyrillicLower(r rune) bool {
	return r >= 'а' && r <= 'я'
}
