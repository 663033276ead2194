package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() Config {
	return Config{
		Server: ServerConfig{Port: 8080},
		Corpus: CorpusConfig{Dir: "./data", DefaultLanguage: "it"},
		LLM:    LLMConfig{APIKey: "key", Model: "claude-3-5-haiku-latest", Timeout: 30_000_000_000},
		Resolver: ResolverConfig{
			SimilarityThreshold:  0.6,
			TrigramThreshold:     0.3,
			FuzzyPhaseLimit:      3,
			FuzzyPhaseTwoTrigger: 4,
			MaxOptions:           10,
			Policy:               PolicyStrict,
			DefaultPictogramID:   3418,
		},
	}
}

func TestValidate_OK(t *testing.T) {
	t.Parallel()

	cfg := validConfig()
	require.NoError(t, cfg.Validate())
}

func TestValidate_Violations(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{name: "port zero", mutate: func(c *Config) { c.Server.Port = 0 }},
		{name: "similarity threshold above one", mutate: func(c *Config) { c.Resolver.SimilarityThreshold = 1.5 }},
		{name: "trigram threshold negative", mutate: func(c *Config) { c.Resolver.TrigramThreshold = -0.1 }},
		{name: "phase limit zero", mutate: func(c *Config) { c.Resolver.FuzzyPhaseLimit = 0 }},
		{name: "unknown policy", mutate: func(c *Config) { c.Resolver.Policy = "lenient" }},
		{name: "sentinel without id", mutate: func(c *Config) {
			c.Resolver.Policy = PolicySentinel
			c.Resolver.DefaultPictogramID = 0
		}},
		{name: "empty default language", mutate: func(c *Config) { c.Corpus.DefaultLanguage = "" }},
		{name: "llm timeout zero", mutate: func(c *Config) { c.LLM.Timeout = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := validConfig()
			tt.mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestValidate_SentinelPolicyOK(t *testing.T) {
	t.Parallel()

	cfg := validConfig()
	cfg.Resolver.Policy = PolicySentinel
	assert.NoError(t, cfg.Validate())
}
