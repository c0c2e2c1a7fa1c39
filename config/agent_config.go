package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config is the process-wide application configuration. All mutable
// global state (prompt defaults, API credential) flows from here into
// the service constructors.
type Config struct {
	Port        string `env:"PORT" envDefault:"8080"`
	Environment string `env:"ENV" envDefault:"development"`

	// Database
	DatabasePath string `env:"DATABASE_PATH" envDefault:"./data/inbox_agent.db"`

	// OpenAI
	OpenAIAPIKey    string        `env:"OPENAI_API_KEY,required"`
	OpenAIBaseURL   string        `env:"OPENAI_BASE_URL"` // optional override for self-hosted gateways
	LLMModel        string        `env:"LLM_MODEL" envDefault:"gpt-4o-mini"`
	LLMMaxTokens    int           `env:"LLM_MAX_TOKENS" envDefault:"2048"`
	LLMTemperature  float64       `env:"LLM_TEMPERATURE" envDefault:"0.7"`
	LLMTimeout      time.Duration `env:"LLM_TIMEOUT" envDefault:"60s"`
	LLMMaxRetries   int           `env:"LLM_MAX_RETRIES" envDefault:"3"`
	LLMRetryBackoff time.Duration `env:"LLM_RETRY_BACKOFF" envDefault:"500ms"`

	// Content sent to the model is cut to this many characters,
	// keeping the head of the body.
	LLMMaxContentChars int `env:"LLM_MAX_CONTENT_CHARS" envDefault:"6000"`

	// Bulk enrichment worker pool
	EnrichWorkers   int `env:"ENRICH_WORKERS" envDefault:"4"`
	EnrichQueueSize int `env:"ENRICH_QUEUE_SIZE" envDefault:"256"`

	// Chat
	ChatContextLimit int `env:"CHAT_CONTEXT_LIMIT" envDefault:"20"`

	// Seed inbox (loaded by /sync/seed when the file exists)
	SeedInboxPath string `env:"SEED_INBOX_PATH" envDefault:"./data/seed_inbox.json"`

	// CORS
	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envSeparator:"," envDefault:"http://localhost:3000,http://localhost:5173"`

	// Logging
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
}

// Load reads configuration from the environment, honoring a local .env
// file when present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if cfg.LLMMaxRetries < 0 {
		return nil, fmt.Errorf("LLM_MAX_RETRIES must be >= 0, got %d", cfg.LLMMaxRetries)
	}
	if cfg.LLMMaxContentChars <= 0 {
		return nil, fmt.Errorf("LLM_MAX_CONTENT_CHARS must be positive, got %d", cfg.LLMMaxContentChars)
	}

	return cfg, nil
}

// IsDevelopment returns true if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
