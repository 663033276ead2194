package config

import "time"

// Config is the root application configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Corpus   CorpusConfig   `yaml:"corpus"`
	LLM      LLMConfig      `yaml:"llm"`
	Resolver ResolverConfig `yaml:"resolver"`
	Log      LogConfig      `yaml:"log"`
	CORS     CORSConfig     `yaml:"cors"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:"0.0.0.0"`
	Port            int           `yaml:"port"             env:"SERVER_PORT"             env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"60s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"SERVER_IDLE_TIMEOUT"     env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"                env:"DATABASE_DSN"                env-required:"true"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"25"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"5"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
}

// CorpusConfig holds static pictogram corpus settings.
type CorpusConfig struct {
	Dir             string `yaml:"dir"              env:"CORPUS_DIR"              env-default:"./data"`
	DefaultLanguage string `yaml:"default_language" env:"CORPUS_DEFAULT_LANGUAGE" env-default:"it"`
}

// LLMConfig holds settings for the external tokenizer/disambiguation service.
type LLMConfig struct {
	APIKey  string        `yaml:"api_key" env:"LLM_API_KEY" env-required:"true"`
	Model   string        `yaml:"model"   env:"LLM_MODEL"   env-default:"claude-3-5-haiku-latest"`
	Timeout time.Duration `yaml:"timeout" env:"LLM_TIMEOUT" env-default:"30s"`
}

// Fallback policies for tokens that no strategy resolves.
const (
	PolicyStrict   = "strict"   // emit a typed per-token error
	PolicySentinel = "sentinel" // emit the configured default pictogram
)

// ResolverConfig holds resolution pipeline tuning.
//
// The fuzzy-search limits reproduce the historical store behavior: custom
// names are searched first (top FuzzyPhaseLimit), translations are appended
// only when the first phase returned fewer than FuzzyPhaseTwoTrigger rows.
type ResolverConfig struct {
	SimilarityThreshold float64 `yaml:"similarity_threshold"   env:"RESOLVER_SIMILARITY_THRESHOLD" env-default:"0.6"`
	TrigramThreshold    float64 `yaml:"trigram_threshold"      env:"RESOLVER_TRIGRAM_THRESHOLD"    env-default:"0.3"`
	FuzzyPhaseLimit     int     `yaml:"fuzzy_phase_limit"      env:"RESOLVER_FUZZY_PHASE_LIMIT"    env-default:"3"`
	FuzzyPhaseTwoTrigger int    `yaml:"fuzzy_phase_two_trigger" env:"RESOLVER_FUZZY_PHASE_TWO_TRIGGER" env-default:"4"`
	MaxOptions          int     `yaml:"max_options"            env:"RESOLVER_MAX_OPTIONS"          env-default:"10"`
	Policy              string  `yaml:"policy"                 env:"RESOLVER_POLICY"               env-default:"strict"`
	DefaultPictogramID  int     `yaml:"default_pictogram_id"   env:"RESOLVER_DEFAULT_PICTOGRAM_ID" env-default:"3418"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins   string `yaml:"allowed_origins"   env:"CORS_ALLOWED_ORIGINS"   env-default:"*"`
	AllowedMethods   string `yaml:"allowed_methods"   env:"CORS_ALLOWED_METHODS"   env-default:"GET,POST,OPTIONS"`
	AllowedHeaders   string `yaml:"allowed_headers"   env:"CORS_ALLOWED_HEADERS"   env-default:"Authorization,Content-Type"`
	AllowCredentials bool   `yaml:"allow_credentials" env:"CORS_ALLOW_CREDENTIALS" env-default:"true"`
	MaxAge           int    `yaml:"max_age"           env:"CORS_MAX_AGE"           env-default:"86400"`
}
