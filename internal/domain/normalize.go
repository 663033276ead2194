package domain

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// NormalizeToken prepares a raw token for lookup:
//   - trims whitespace
//   - strips quote characters left over from the tokenizer output
//   - applies Unicode NFKC normalization
//   - converts to lowercase
//
// Apostrophes are preserved: they are part of words in the supported
// languages ("l'acqua"), not tokenizer artifacts.
//
// Lowercasing makes the result a canonical lookup key; stores and corpus
// files must hold lowercase names for exact matching to see them.
func NormalizeToken(word string) string {
	word = strings.TrimSpace(word)
	word = strings.ReplaceAll(word, `"`, "")
	word = norm.NFKC.String(word)
	return strings.ToLower(word)
}

// NormalizeLanguage reduces a language code to its lowercase base form:
// "IT" and "it-IT" both become "it". Empty input stays empty.
func NormalizeLanguage(code string) string {
	code = strings.ToLower(strings.TrimSpace(code))
	if i := strings.IndexAny(code, "-_"); i > 0 {
		code = code[:i]
	}
	return code
}
