package lexical

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStem(t *testing.T) {
	tests := []struct {
		name     string
		word     string
		expected string
	}{
		{name: "definite plural", word: "договорите", expected: "договор"},
		{name: "indefinite singular", word: "договора", expected: "договор"},
		{name: "plural ove", word: "дановете", expected: "дан"},
		{name: "uppercase input", word: "ДОГОВОРИТЕ", expected: "договор"},
		{name: "short word kept whole", word: "съд", expected: "съд"},
		{name: "suffix would leave too little", word: "дете", expected: "дете"},
		{name: "i-kratko folded", word: "край", expected: "кра"},
		{name: "empty string", word: "", expected: ""},
		{name: "non cyrillic trimmed", word: "чл.5", expected: "чл"},
		{name: "only non cyrillic", word: "123", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Stem(tt.word))
		})
	}
}

func TestStem_InflectionsShareStem(t *testing.T) {
	// Inflected forms of the same lemma must normalize identically, or
	// document frequency counts would fragment across surface forms.
	forms := []string{"договор", "договора", "договорът", "договорите"}
	base := Stem(forms[0])
	for _, f := range forms[1:] {
		assert.Equal(t, base, Stem(f), "form %q", f)
	}
}

func TestStem_SingleStrip(t *testing.T) {
	// Only the longest matching suffix comes off; stripping never cascades.
	once := Stem("осигурителните")
	assert.Equal(t, "осигурителн", once)
	assert.Equal(t, once, Stem(once), "stemming must be stable")
}

func TestTokenize(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected []string
	}{
		{
			name:     "latin and digits ignored",
			text:     "Чл. 5 ал. 2 text 123",
			expected: []string{"чл", "ал"},
		},
		{
			name:     "duplicates preserved",
			text:     "договор договор",
			expected: []string{"договор", "договор"},
		},
		{
			name:     "empty input",
			text:     "",
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Tokenize(tt.text))
		})
	}
}

func TestUniqueTokens(t *testing.T) {
	set := UniqueTokens("договорът урежда договора и договорите")
	_, ok := set["договор"]
	assert.True(t, ok)
	// Three inflections of one lemma collapse into a single set entry.
	assert.NotContains(t, set, "договорът")
	assert.NotContains(t, set, "договорите")
}
