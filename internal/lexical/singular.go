// Package lexical reduces surface words to a canonical singular form using
// fixed per-language suffix heuristics. It is not a morphological analyzer:
// the rules trade precision for recall when matching pictogram labels.
package lexical

import (
	"strings"

	"github.com/openaac/pictoapi/internal/domain"
)

// rule rewrites a single suffix. The first rule whose suffix matches wins;
// there is no backtracking.
type rule struct {
	suffix      string
	replacement string
	minLen      int
}

var rules = map[string][]rule{
	// Trailing vowel is replaced by the canonical singular vowel.
	"it": {
		{suffix: "i", replacement: "o"},
		{suffix: "e", replacement: "a"},
	},
	"de": {
		{suffix: "en", replacement: ""},
		{suffix: "er", replacement: ""},
		{suffix: "e", replacement: ""},
	},
	"fr": {
		{suffix: "aux", replacement: "al"},
		{suffix: "ux", replacement: "l"},
		{suffix: "s", replacement: ""},
	},
	"es": {
		{suffix: "es", replacement: "", minLen: 4},
		{suffix: "s", replacement: ""},
	},
	"en": {
		{suffix: "ies", replacement: "y", minLen: 4},
		{suffix: "ves", replacement: "f", minLen: 4},
		// "ss" is a keep-rule: "glass", "dress" are already singular and
		// stripping their final s would loop on repeated application.
		{suffix: "ss", replacement: "ss"},
		{suffix: "s", replacement: "", minLen: 2},
	},
}

// Singularize reduces word to its singular form using the rule set for the
// given language code. The word is returned unchanged when no rule matches.
// An unknown language yields domain.ErrUnsupportedLanguage; callers must
// treat that as "no usable form", never as a lookup key.
func Singularize(word, language string) (string, error) {
	rs, ok := rules[domain.NormalizeLanguage(language)]
	if !ok {
		return "", domain.ErrUnsupportedLanguage
	}

	for _, r := range rs {
		if !strings.HasSuffix(word, r.suffix) {
			continue
		}
		if len(word) < r.minLen || len(word) == len(r.suffix) {
			continue
		}
		return word[:len(word)-len(r.suffix)] + r.replacement, nil
	}
	return word, nil
}

// Supported reports whether a rule set exists for the language code.
func Supported(language string) bool {
	_, ok := rules[domain.NormalizeLanguage(language)]
	return ok
}
