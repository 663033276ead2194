package llm

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/openaac/pictoapi/internal/domain"
)

// StripFences removes a surrounding markdown code fence, with or without
// a language tag, from a model reply. Replies without fences pass through
// unchanged.
func StripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		// drop the language tag line ("json", "JSON", ...)
		s = s[i+1:]
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

type tokenJSON struct {
	Origin string `json:"origin"`
	Token  string `json:"token"`
}

// ParseTokens decodes a tokenizer reply. The expected shape is a JSON
// array of {origin, token} objects, optionally wrapped as {"tokens":
// [...]}. A non-JSON reply degrades to whitespace splitting with quote
// characters stripped per word, each word standing as its own origin.
// Only a reply with no recoverable words at all is
// domain.ErrInvalidExternalResponse.
func ParseTokens(s string) ([]domain.Token, error) {
	s = StripFences(s)

	payload := s
	if wrapped := gjson.Get(s, "tokens"); wrapped.IsArray() {
		payload = wrapped.Raw
	}

	var raw []tokenJSON
	if err := json.Unmarshal([]byte(payload), &raw); err == nil {
		tokens := make([]domain.Token, 0, len(raw))
		for _, r := range raw {
			if r.Token == "" {
				continue
			}
			origin := r.Origin
			if origin == "" {
				origin = r.Token
			}
			tokens = append(tokens, domain.Token{Origin: origin, Surface: r.Token})
		}
		return tokens, nil
	}

	if tokens, ok := parseBareWords(s); ok {
		return tokens, nil
	}

	return nil, fmt.Errorf("tokenizer reply %q: %w", truncate(s, 80), domain.ErrInvalidExternalResponse)
}

// parseBareWords handles the legacy reply shape: key words separated by
// whitespace, quoted or not.
func parseBareWords(s string) ([]domain.Token, bool) {
	var tokens []domain.Token
	for _, field := range strings.Fields(s) {
		word := strings.ReplaceAll(field, `"`, "")
		if word == "" {
			continue
		}
		tokens = append(tokens, domain.Token{Origin: word, Surface: word})
	}
	if len(tokens) == 0 {
		return nil, false
	}
	return tokens, true
}

// ExtractFoundWord pulls the found_word field out of a disambiguation
// reply. A reply that does not decode as JSON is
// domain.ErrInvalidExternalResponse; a decodable reply whose found_word
// is absent or empty is domain.ErrNotFound.
func ExtractFoundWord(s string) (string, error) {
	s = StripFences(s)
	if !gjson.Valid(s) {
		return "", fmt.Errorf("disambiguation reply %q: %w", truncate(s, 80), domain.ErrInvalidExternalResponse)
	}

	found := gjson.Get(s, "found_word")
	if !found.Exists() || found.String() == "" {
		return "", fmt.Errorf("disambiguation reply without found_word: %w", domain.ErrNotFound)
	}
	return found.String(), nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
