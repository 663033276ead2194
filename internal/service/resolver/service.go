// Package resolver implements the token-to-pictogram resolution pipeline:
// database lookup first, static corpus second, model-assisted
// disambiguation last.
package resolver

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/openaac/pictoapi/internal/config"
	"github.com/openaac/pictoapi/internal/domain"
	"github.com/openaac/pictoapi/internal/lexical"
	"github.com/openaac/pictoapi/internal/match"
)

// Store is the database lookup surface of the pipeline.
type Store interface {
	FindExact(ctx context.Context, name, language string) (*domain.FuzzyHit, error)
	FindFuzzy(ctx context.Context, name, language string, threshold float64) ([]domain.FuzzyHit, error)
}

// Corpus is the static pictogram corpus, keyed by language.
type Corpus interface {
	Get(language string) []domain.Candidate
	FindExact(language, name string) (domain.Candidate, bool)
}

// Tokenizer is the external language model surface.
type Tokenizer interface {
	Tokenize(ctx context.Context, phrase, language string) ([]domain.Token, error)
	FindMissingWord(ctx context.Context, sentence, missing string, options []string) (string, error)
}

type Service struct {
	store     Store
	corpus    Corpus
	tokenizer Tokenizer
	cfg       config.ResolverConfig
	lang      string
	log       *slog.Logger
}

// New creates the resolver. lang is the default language used when a
// request carries none.
func New(store Store, corpus Corpus, tokenizer Tokenizer, cfg config.ResolverConfig, lang string, log *slog.Logger) *Service {
	return &Service{
		store:     store,
		corpus:    corpus,
		tokenizer: tokenizer,
		cfg:       cfg,
		lang:      domain.NormalizeLanguage(lang),
		log:       log.With("component", "resolver"),
	}
}

func (s *Service) language(requested string) string {
	if l := domain.NormalizeLanguage(requested); l != "" {
		return l
	}
	return s.lang
}

// ResolvePhrase tokenizes the phrase and resolves every token. The result
// holds exactly one outcome per non-empty token, in token order. A token
// that cannot be resolved carries its failure in Outcome.Err; the whole
// call fails only on a tokenization failure or an unexpected store error.
func (s *Service) ResolvePhrase(ctx context.Context, phrase, language string) ([]domain.Outcome, error) {
	lang := s.language(language)

	tokens, err := s.tokenizer.Tokenize(ctx, phrase, lang)
	if err != nil {
		return nil, fmt.Errorf("resolve phrase: %w", err)
	}

	outcomes := make([]domain.Outcome, 0, len(tokens))
	for _, tok := range tokens {
		word := domain.NormalizeToken(tok.Surface)
		if word == "" {
			continue
		}
		out, err := s.resolveToken(ctx, phrase, word, lang)
		if err != nil {
			return nil, fmt.Errorf("resolve phrase: %w", err)
		}
		outcomes = append(outcomes, out)
	}
	return outcomes, nil
}

// resolveToken runs one token through the pipeline stages. Misses degrade
// to the next stage; only unexpected store failures abort the call.
func (s *Service) resolveToken(ctx context.Context, phrase, word, lang string) (domain.Outcome, error) {
	out, ok, err := s.lookupDB(ctx, word, lang)
	if err != nil {
		return domain.Outcome{}, err
	}
	if ok {
		return out, nil
	}
	if out, ok := s.lookupCorpus(word, lang); ok {
		return out, nil
	}
	return s.applyPolicy(s.disambiguate(ctx, phrase, word, lang)), nil
}

// lookupDB tries an exact match first, then a trigram search, taking the
// best fuzzy hit when present. A store failure other than not-found is
// returned as-is: connection loss is not a per-token condition.
func (s *Service) lookupDB(ctx context.Context, word, lang string) (domain.Outcome, bool, error) {
	hit, err := s.store.FindExact(ctx, word, lang)
	if err == nil {
		return dbOutcome(word, hit), true, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		s.log.Error("database exact lookup failed", slog.String("word", word), slog.String("error", err.Error()))
		return domain.Outcome{}, false, fmt.Errorf("exact lookup %q: %w", word, err)
	}

	hits, err := s.store.FindFuzzy(ctx, word, lang, s.cfg.TrigramThreshold)
	if err != nil {
		s.log.Error("database fuzzy lookup failed", slog.String("word", word), slog.String("error", err.Error()))
		return domain.Outcome{}, false, fmt.Errorf("fuzzy lookup %q: %w", word, err)
	}
	if len(hits) == 0 {
		return domain.Outcome{}, false, nil
	}
	return dbOutcome(word, &hits[0]), true, nil
}

// lookupCorpus tries the static corpus with the word as-is, then with its
// singular form for languages the lexical normalizer supports.
func (s *Service) lookupCorpus(word, lang string) (domain.Outcome, bool) {
	if cand, ok := s.corpus.FindExact(lang, word); ok {
		return corpusOutcome(word, cand.ID), true
	}

	singular, err := lexical.Singularize(word, lang)
	if err != nil || singular == word {
		return domain.Outcome{}, false
	}
	if cand, ok := s.corpus.FindExact(lang, singular); ok {
		return corpusOutcome(word, cand.ID), true
	}
	return domain.Outcome{}, false
}

// disambiguate asks the model to pick a corpus word close to the token,
// then re-checks the corpus with the model's pick.
func (s *Service) disambiguate(ctx context.Context, phrase, word, lang string) domain.Outcome {
	options := match.Options(word, s.corpus.Get(lang), s.cfg.SimilarityThreshold)
	if len(options) > s.cfg.MaxOptions {
		options = options[:s.cfg.MaxOptions]
	}
	if len(options) == 0 {
		return domain.Outcome{Word: word, Err: domain.ErrNotFound}
	}

	found, err := s.tokenizer.FindMissingWord(ctx, phrase, word, options)
	if err != nil {
		s.log.Warn("disambiguation failed", slog.String("word", word), slog.String("error", err.Error()))
		switch {
		case errors.Is(err, domain.ErrInvalidExternalResponse):
			return domain.Outcome{Word: word, Err: domain.ErrInvalidExternalResponse}
		case errors.Is(err, domain.ErrNotFound):
			return domain.Outcome{Word: word, Err: domain.ErrNotFound}
		default:
			return domain.Outcome{Word: word, Err: domain.ErrNoExternalResponse}
		}
	}

	if cand, ok := s.corpus.FindExact(lang, found); ok {
		return corpusOutcome(word, cand.ID)
	}
	return domain.Outcome{Word: word, Err: domain.ErrNotFound}
}

// applyPolicy substitutes the configured default pictogram for unresolved
// outcomes when the sentinel policy is active.
func (s *Service) applyPolicy(out domain.Outcome) domain.Outcome {
	if out.Err == nil || s.cfg.Policy != config.PolicySentinel {
		return out
	}
	return corpusOutcome(out.Word, s.cfg.DefaultPictogramID)
}

// Options returns pictogram alternatives for a single word, ranked by
// trigram similarity in the database. Each outcome's word is the matched
// name, preferring the translation over the custom name.
func (s *Service) Options(ctx context.Context, word, language string) ([]domain.Outcome, error) {
	word = domain.NormalizeToken(word)
	if word == "" {
		return nil, fmt.Errorf("word is required: %w", domain.ErrValidation)
	}
	lang := s.language(language)

	hits, err := s.store.FindFuzzy(ctx, word, lang, s.cfg.TrigramThreshold)
	if err != nil {
		return nil, fmt.Errorf("options for %q: %w", word, err)
	}

	outcomes := make([]domain.Outcome, 0, len(hits))
	for _, hit := range hits {
		outcomes = append(outcomes, domain.Outcome{
			Word: hit.Name(),
			ID:   hit.ID.String(),
			URL:  hit.ImageURL,
		})
	}
	return outcomes, nil
}

func dbOutcome(word string, hit *domain.FuzzyHit) domain.Outcome {
	return domain.Outcome{
		Word: word,
		ID:   hit.ID.String(),
		URL:  fmt.Sprintf("/api/v1/pecs/%s/image", hit.ID),
	}
}

func corpusOutcome(word string, id int) domain.Outcome {
	return domain.Outcome{
		Word: word,
		ID:   strconv.Itoa(id),
		URL:  fmt.Sprintf("https://api.arasaac.org/v1/pictograms/%d?download=false", id),
	}
}
