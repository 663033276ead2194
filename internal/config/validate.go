package config

import (
	"errors"
	"fmt"
)

// Validate checks cross-field constraints that tag-level validation cannot
// express. It returns the first violation found.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port %d out of range", c.Server.Port)
	}

	if c.Resolver.SimilarityThreshold < 0 || c.Resolver.SimilarityThreshold > 1 {
		return fmt.Errorf("resolver.similarity_threshold %v must be in [0, 1]", c.Resolver.SimilarityThreshold)
	}
	if c.Resolver.TrigramThreshold < 0 || c.Resolver.TrigramThreshold > 1 {
		return fmt.Errorf("resolver.trigram_threshold %v must be in [0, 1]", c.Resolver.TrigramThreshold)
	}
	if c.Resolver.FuzzyPhaseLimit <= 0 {
		return errors.New("resolver.fuzzy_phase_limit must be positive")
	}
	if c.Resolver.FuzzyPhaseTwoTrigger <= 0 {
		return errors.New("resolver.fuzzy_phase_two_trigger must be positive")
	}
	if c.Resolver.MaxOptions <= 0 {
		return errors.New("resolver.max_options must be positive")
	}

	switch c.Resolver.Policy {
	case PolicyStrict, PolicySentinel:
	default:
		return fmt.Errorf("resolver.policy %q must be %q or %q", c.Resolver.Policy, PolicyStrict, PolicySentinel)
	}
	if c.Resolver.Policy == PolicySentinel && c.Resolver.DefaultPictogramID <= 0 {
		return errors.New("resolver.default_pictogram_id must be positive with the sentinel policy")
	}

	if c.Corpus.DefaultLanguage == "" {
		return errors.New("corpus.default_language must not be empty")
	}

	if c.LLM.Timeout <= 0 {
		return errors.New("llm.timeout must be positive")
	}

	return nil
}
