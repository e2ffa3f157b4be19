package lexical

import (
	"regexp"
	"strings"
)

// tokenPattern matches maximal runs of Cyrillic letters.
var tokenPattern = regexp.MustCompile(`[а-я]+`)

// Tokenize splits text into stemmed tokens: maximal runs of Cyrillic
// letters, each normalized through Stem. Order is preserved and duplicates
// are retained, so the result can feed frequency counting directly.
// Tokenize is pure and safe for concurrent use.
func Tokenize(text string) []string {
	raw := tokenPattern.FindAllString(strings.ToLower(text), -1)
	if raw == nil {
		return nil
	}

	tokens := make([]string, 0, len(raw))
	for _, t := range raw {
		tokens = append(tokens, Stem(t))
	}
	return tokens
}

// UniqueTokens returns the set of distinct stemmed tokens in text.
func UniqueTokens(text string) map[string]struct{} {
	tokens := Tokenize(text)
	set := make(map[string]struct{}, len(tokens))
	for _, t := range tokens {
		set[t] = struct{}{}
	}
	return set
}
