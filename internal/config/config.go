package config

import (
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/custodia-labs/segmenta-core/internal/core/domain"
)

// Config holds environment-driven configuration for the smoke binary.
// Library callers configure the engine through domain settings structs
// directly; this layer only exists where a process boundary does.
type Config struct {
	AnalyzerProvider string `env:"ANALYZER_PROVIDER" envDefault:"structural"`
	AnalyzerModel    string `env:"ANALYZER_MODEL" envDefault:"gpt-4o-mini"`
	AnalyzerAPIKey   string `env:"ANALYZER_API_KEY"`
	AnalyzerBaseURL  string `env:"ANALYZER_BASE_URL"`
	ContextBudget    int    `env:"ANALYZER_CONTEXT_BUDGET" envDefault:"0"`

	CacheBackend    string        `env:"CACHE_BACKEND" envDefault:"memory"`
	RedisAddr       string        `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPassword   string        `env:"REDIS_PASSWORD"`
	CacheTTL        time.Duration `env:"CACHE_TTL" envDefault:"24h"`
	CacheMaxEntries int           `env:"CACHE_MAX_ENTRIES" envDefault:"4096"`

	MaxChunkSize  int     `env:"MAX_CHUNK_SIZE" envDefault:"1000"`
	MinConfidence float64 `env:"MIN_CONFIDENCE" envDefault:"0"`

	WindowSize        int     `env:"WINDOW_SIZE" envDefault:"800"`
	WindowOverlap     float64 `env:"WINDOW_OVERLAP" envDefault:"0.5"`
	LargeDocThreshold int     `env:"LARGE_DOC_THRESHOLD" envDefault:"4000"`
	Concurrency       int     `env:"ANALYZER_CONCURRENCY" envDefault:"4"`

	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
}

// Load parses configuration from the environment
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// AnalyzerSettings maps the config to domain analyzer settings
func (c *Config) AnalyzerSettings() *domain.AnalyzerSettings {
	return &domain.AnalyzerSettings{
		Provider:      domain.AnalyzerProvider(c.AnalyzerProvider),
		Model:         c.AnalyzerModel,
		APIKey:        c.AnalyzerAPIKey,
		BaseURL:       c.AnalyzerBaseURL,
		ContextBudget: c.ContextBudget,
	}
}

// CacheSettings maps the config to domain cache settings
func (c *Config) CacheSettings() domain.CacheSettings {
	return domain.CacheSettings{
		TTL:        c.CacheTTL,
		MaxEntries: c.CacheMaxEntries,
	}
}

// SegmenterSettings maps the config to domain pipeline settings
func (c *Config) SegmenterSettings() domain.SegmenterSettings {
	return domain.SegmenterSettings{
		WindowSize:        c.WindowSize,
		WindowOverlap:     c.WindowOverlap,
		LargeDocThreshold: c.LargeDocThreshold,
		Concurrency:       c.Concurrency,
	}
}

// SegmentOptions maps the config to per-request segmentation options
func (c *Config) SegmentOptions() domain.SegmentOptions {
	return domain.SegmentOptions{
		MaxChunkSize:  c.MaxChunkSize,
		MinConfidence: c.MinConfidence,
	}
}
