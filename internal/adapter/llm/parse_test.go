package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openaac/pictoapi/internal/domain"
)

func TestStripFences(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "no fence", in: `{"a":1}`, want: `{"a":1}`},
		{name: "json fence", in: "```json\n{\"a\":1}\n```", want: `{"a":1}`},
		{name: "bare fence", in: "```\n[1,2]\n```", want: `[1,2]`},
		{name: "surrounding whitespace", in: "  ```json\n{}\n```  ", want: `{}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, StripFences(tt.in))
		})
	}
}

func TestParseTokens_Array(t *testing.T) {
	t.Parallel()

	tokens, err := ParseTokens(`[
		{"origin": "il bambino", "token": "bambino"},
		{"origin": "mangia", "token": "mangiare"}
	]`)
	require.NoError(t, err)
	require.Len(t, tokens, 2)
	assert.Equal(t, domain.Token{Origin: "il bambino", Surface: "bambino"}, tokens[0])
	assert.Equal(t, domain.Token{Origin: "mangia", Surface: "mangiare"}, tokens[1])
}

func TestParseTokens_WrappedObject(t *testing.T) {
	t.Parallel()

	tokens, err := ParseTokens(`{"tokens": [{"origin": "la mela", "token": "mela"}]}`)
	require.NoError(t, err)
	require.Len(t, tokens, 1)
	assert.Equal(t, "mela", tokens[0].Surface)
}

func TestParseTokens_Fenced(t *testing.T) {
	t.Parallel()

	tokens, err := ParseTokens("```json\n[{\"origin\": \"gatti\", \"token\": \"gatto\"}]\n```")
	require.NoError(t, err)
	require.Len(t, tokens, 1)
	assert.Equal(t, "gatto", tokens[0].Surface)
}

func TestParseTokens_QuotedWordsFallback(t *testing.T) {
	t.Parallel()

	tokens, err := ParseTokens(`"bambino" "mangiare" "mela"`)
	require.NoError(t, err)
	require.Len(t, tokens, 3)
	for _, tok := range tokens {
		assert.Equal(t, tok.Origin, tok.Surface)
	}
	assert.Equal(t, "mangiare", tokens[1].Surface)
}

func TestParseTokens_BareWordsFallback(t *testing.T) {
	t.Parallel()

	tokens, err := ParseTokens("bambino mangiare mela")
	require.NoError(t, err)
	require.Len(t, tokens, 3)
	assert.Equal(t, domain.Token{Origin: "bambino", Surface: "bambino"}, tokens[0])
	assert.Equal(t, domain.Token{Origin: "mela", Surface: "mela"}, tokens[2])
}

func TestParseTokens_MixedQuotingFallback(t *testing.T) {
	t.Parallel()

	tokens, err := ParseTokens(`"bambino" mangiare  "mela"`)
	require.NoError(t, err)
	require.Len(t, tokens, 3)
	assert.Equal(t, "mangiare", tokens[1].Surface)
}

func TestParseTokens_SkipsEmptyToken(t *testing.T) {
	t.Parallel()

	tokens, err := ParseTokens(`[{"origin": "e", "token": ""}, {"origin": "", "token": "mela"}]`)
	require.NoError(t, err)
	require.Len(t, tokens, 1)
	assert.Equal(t, "mela", tokens[0].Origin)
	assert.Equal(t, "mela", tokens[0].Surface)
}

func TestParseTokens_NothingRecoverable(t *testing.T) {
	t.Parallel()

	for _, in := range []string{"", "   ", `""  ""`} {
		_, err := ParseTokens(in)
		require.Error(t, err, "input %q", in)
		assert.ErrorIs(t, err, domain.ErrInvalidExternalResponse)
	}
}

func TestExtractFoundWord(t *testing.T) {
	t.Parallel()

	word, err := ExtractFoundWord(`{"found_word": "gatto"}`)
	require.NoError(t, err)
	assert.Equal(t, "gatto", word)

	word, err = ExtractFoundWord("```json\n{\"found_word\": \"mela\"}\n```")
	require.NoError(t, err)
	assert.Equal(t, "mela", word)
}

func TestExtractFoundWord_NotJSON(t *testing.T) {
	t.Parallel()

	_, err := ExtractFoundWord("not json")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidExternalResponse)
}

func TestExtractFoundWord_MissingOrEmpty(t *testing.T) {
	t.Parallel()

	for _, in := range []string{`{}`, `{"found_word": ""}`, `{"other": "x"}`} {
		_, err := ExtractFoundWord(in)
		require.Error(t, err, "input %q", in)
		assert.ErrorIs(t, err, domain.ErrNotFound, "input %q", in)
		assert.NotErrorIs(t, err, domain.ErrInvalidExternalResponse, "input %q", in)
	}
}

func TestTokenizePrompt_FallsBackToEnglish(t *testing.T) {
	t.Parallel()

	assert.Equal(t, tokenizePrompts["en"], tokenizePrompt("pt"))
	assert.Equal(t, tokenizePrompts["it"], tokenizePrompt("it"))
}
