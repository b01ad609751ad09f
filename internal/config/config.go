// Package config loads runtime settings from the environment (and an optional .env file).
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Port        string
	DatabaseURL string
	LogLevel    string
	LogFormat   string
	LogOutput   string
	Seed        bool

	// OpenAI-compatible chat completion API
	OpenAIAPIKey      string
	OpenAIBaseURL     string
	OpenAIAdviceModel string

	// Advice cache; empty RedisURL disables caching
	RedisURL       string
	AdviceCacheTTL time.Duration

	// Langfuse tracing, feedback scores and managed prompts
	LangfuseBaseURL      string
	LangfusePublicKey    string
	LangfuseSecretKey    string
	LangfuseEnv          string
	LangfuseAdvicePrompt string
	LangfusePromptLabel  string
	AdvicePromptFile     string
}

// keys maps each setting to its environment variable and default.
var keys = []struct {
	key, env string
	def      any
}{
	{"port", "PORT", "8080"},
	{"database_url", "DATABASE_URL", "sleep.db"},
	{"log_level", "LOG_LEVEL", "info"},
	{"log_format", "LOG_FORMAT", "json"},
	{"log_output", "LOG_OUTPUT", "stdout"},
	{"seed", "SEED", false},
	{"openai_api_key", "OPENAI_API_KEY", ""},
	{"openai_base_url", "OPENAI_BASE_URL", ""},
	{"openai_advice_model", "OPENAI_ADVICE_MODEL", "gpt-4o-mini"},
	{"redis_url", "REDIS_URL", ""},
	{"advice_cache_ttl", "ADVICE_CACHE_TTL", "10m"},
	{"langfuse_base_url", "LANGFUSE_BASE_URL", ""},
	{"langfuse_public_key", "LANGFUSE_PUBLIC_KEY", ""},
	{"langfuse_secret_key", "LANGFUSE_SECRET_KEY", ""},
	{"langfuse_env", "LANGFUSE_ENV", "development"},
	{"langfuse_advice_prompt", "LANGFUSE_ADVICE_PROMPT", ""},
	{"langfuse_prompt_label", "LANGFUSE_PROMPT_LABEL", "production"},
	{"advice_prompt_file", "ADVICE_PROMPT_FILE", ""},
}

// Load reads the configuration. A .env file in the working directory is
// loaded first if present; real environment variables take precedence.
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	for _, k := range keys {
		v.SetDefault(k.key, k.def)
		_ = v.BindEnv(k.key, k.env)
	}

	ttl := v.GetDuration("advice_cache_ttl")
	if raw := v.GetString("advice_cache_ttl"); ttl <= 0 && raw != "0" && raw != "0s" {
		return nil, fmt.Errorf("invalid ADVICE_CACHE_TTL %q", raw)
	}

	cfg := &Config{
		Port:        v.GetString("port"),
		DatabaseURL: v.GetString("database_url"),
		LogLevel:    strings.ToLower(v.GetString("log_level")),
		LogFormat:   strings.ToLower(v.GetString("log_format")),
		LogOutput:   v.GetString("log_output"),
		Seed:        v.GetBool("seed"),

		OpenAIAPIKey:      v.GetString("openai_api_key"),
		OpenAIBaseURL:     v.GetString("openai_base_url"),
		OpenAIAdviceModel: v.GetString("openai_advice_model"),

		RedisURL:       v.GetString("redis_url"),
		AdviceCacheTTL: ttl,

		LangfuseBaseURL:      strings.TrimSuffix(v.GetString("langfuse_base_url"), "/"),
		LangfusePublicKey:    v.GetString("langfuse_public_key"),
		LangfuseSecretKey:    v.GetString("langfuse_secret_key"),
		LangfuseEnv:          v.GetString("langfuse_env"),
		LangfuseAdvicePrompt: v.GetString("langfuse_advice_prompt"),
		LangfusePromptLabel:  v.GetString("langfuse_prompt_label"),
		AdvicePromptFile:     v.GetString("advice_prompt_file"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Validate checks settings that would otherwise fail late at runtime.
func (c *Config) Validate() error {
	if c.Port == "" {
		return fmt.Errorf("PORT is required")
	}
	if c.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	switch c.LogFormat {
	case "json", "console":
	default:
		return fmt.Errorf("LOG_FORMAT must be json or console, got %q", c.LogFormat)
	}
	return nil
}

// LangfuseEnabled reports whether all Langfuse credentials are set.
func (c *Config) LangfuseEnabled() bool {
	return c.LangfuseBaseURL != "" && c.LangfusePublicKey != "" && c.LangfuseSecretKey != ""
}

// UsesPostgres reports whether DATABASE_URL points at PostgreSQL rather than a SQLite file.
func (c *Config) UsesPostgres() bool {
	return strings.HasPrefix(c.DatabaseURL, "postgres://") || strings.HasPrefix(c.DatabaseURL, "postgresql://")
}
