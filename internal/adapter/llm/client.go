// Package llm wraps the Anthropic API for the two language tasks the
// resolver cannot do locally: tokenizing a free-form phrase and picking
// the best replacement word from a list of options.
package llm

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	anthropic "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/openaac/pictoapi/internal/config"
	"github.com/openaac/pictoapi/internal/domain"
)

const maxResponseTokens = 1024

type Client struct {
	api     anthropic.Client
	model   string
	timeout time.Duration
	log     *slog.Logger
}

func New(cfg config.LLMConfig, log *slog.Logger) *Client {
	return &Client{
		api:     anthropic.NewClient(option.WithAPIKey(cfg.APIKey)),
		model:   cfg.Model,
		timeout: cfg.Timeout,
		log:     log,
	}
}

// Tokenize breaks a phrase into resolvable tokens. The model lemmatizes
// verbs, drops articles and pronouns, replaces proper names with generic
// nouns and fixes obvious typos. Returns domain.ErrNoExternalResponse
// when the model produced no content.
func (c *Client) Tokenize(ctx context.Context, phrase, language string) ([]domain.Token, error) {
	p := tokenizePrompt(language)

	text, err := c.complete(ctx, p.system, strings.ReplaceAll(p.user, "{sentence}", phrase))
	if err != nil {
		return nil, fmt.Errorf("tokenize %q: %w", phrase, err)
	}

	tokens, err := ParseTokens(text)
	if err != nil {
		c.log.Warn("unparseable tokenizer response",
			slog.String("phrase", phrase),
			slog.String("response", text))
		return nil, fmt.Errorf("tokenize %q: %w", phrase, err)
	}
	return tokens, nil
}

// FindMissingWord asks the model to pick, from options, the word closest
// in meaning to missing within the context of sentence. The reply must be
// a JSON object carrying a found_word field: a non-JSON reply is
// domain.ErrInvalidExternalResponse, a JSON reply without a usable
// found_word is domain.ErrNotFound.
func (c *Client) FindMissingWord(ctx context.Context, sentence, missing string, options []string) (string, error) {
	user := fmt.Sprintf(
		"Given this sentence '%s' and the missing word '%s', and this list of options: %s, "+
			"understand the context and replace the missing word with one from the list. "+
			"Return only a JSON object with a single field found_word holding a word from the list.",
		sentence, missing, strings.Join(options, ", "))

	text, err := c.complete(ctx, "You are an expert at finding synonyms for words.", user)
	if err != nil {
		return "", fmt.Errorf("find missing word %q: %w", missing, err)
	}

	found, err := ExtractFoundWord(text)
	if err != nil {
		c.log.Warn("unusable disambiguation reply",
			slog.String("missing", missing),
			slog.String("response", text))
		return "", fmt.Errorf("find missing word %q: %w", missing, err)
	}
	return found, nil
}

func (c *Client) complete(ctx context.Context, system, user string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	msg, err := c.api.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(c.model),
		MaxTokens: maxResponseTokens,
		System: []anthropic.TextBlockParam{
			{Text: system},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(user)),
		},
	})
	if err != nil {
		return "", fmt.Errorf("%w: %w", domain.ErrNoExternalResponse, err)
	}
	if len(msg.Content) == 0 || msg.Content[0].Text == "" {
		return "", domain.ErrNoExternalResponse
	}
	return msg.Content[0].Text, nil
}
