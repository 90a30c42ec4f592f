package newsdesk

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultCategories is the editor's built-in category list. Deployments
// can override it in the config file; publish validates against whatever
// set is configured.
var DefaultCategories = []string{
	"Politics", "Science", "Health", "Sports", "India", "World",
	"Business", "Tech", "Travel", "Art", "Environment", "Education",
	"Food", "Fashion", "Automotive", "Space", "Culture", "Lifestyle", "Gaming",
}

// Configuration validation errors.
var (
	ErrNoCategories    = errors.New("at least one category is required")
	ErrEmptyCategory   = errors.New("categories must not be blank")
	ErrInvalidLogLevel = errors.New("log_level must be one of: debug, info, warn, error")
)

// Config holds all settings for the publisher and the reading surface.
type Config struct {
	SiteName string `yaml:"site_name"` // default "Classic News"
	SiteURL  string `yaml:"site_url"`  // external base URL for feed/sitemap links
	Addr     string `yaml:"addr"`      // listen address (default ":3000")

	StoreDir   string   `yaml:"store_dir"`  // artifact store root (default "News")
	IndexPath  string   `yaml:"index_path"` // shared JSON index (default "Data/news.json")
	Categories []string `yaml:"categories"`

	// ClearAfterPublish tells the host UI to clear the form for a new
	// draft after a successful publish instead of disabling all inputs.
	// The published document itself is immutable either way.
	ClearAfterPublish bool `yaml:"clear_after_publish"`

	CacheTTL time.Duration `yaml:"cache_ttl"` // index read cache TTL (default 5min)
	LogLevel string        `yaml:"log_level"` // default "info"

	Summarizer SummarizerConfig `yaml:"summarizer"`
}

// SummarizerConfig configures the LLM summarize endpoint.
type SummarizerConfig struct {
	APIKey    string `yaml:"api_key"`
	Model     string `yaml:"model"`      // default "gpt-4o-mini"
	BaseURL   string `yaml:"base_url"`   // optional OpenAI-compatible endpoint
	CachePath string `yaml:"cache_path"` // SQLite path (default "Data/summaries.db")
}

func (c *Config) setDefaults() {
	if c.SiteName == "" {
		c.SiteName = "Classic News"
	}
	if c.SiteURL == "" {
		c.SiteURL = "http://localhost:3000"
	} else {
		c.SiteURL = strings.TrimSuffix(c.SiteURL, "/")
	}
	if c.Addr == "" {
		c.Addr = ":3000"
	}
	if c.StoreDir == "" {
		c.StoreDir = "News"
	}
	if c.IndexPath == "" {
		c.IndexPath = "Data/news.json"
	}
	if len(c.Categories) == 0 {
		c.Categories = append([]string(nil), DefaultCategories...)
	}
	if c.CacheTTL == 0 {
		c.CacheTTL = 5 * time.Minute
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.Summarizer.Model == "" {
		c.Summarizer.Model = "gpt-4o-mini"
	}
	if c.Summarizer.CachePath == "" {
		c.Summarizer.CachePath = "Data/summaries.db"
	}
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	if len(c.Categories) == 0 {
		return ErrNoCategories
	}
	for i, cat := range c.Categories {
		if strings.TrimSpace(cat) == "" {
			return fmt.Errorf("%w: categories[%d]", ErrEmptyCategory, i)
		}
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: %q", ErrInvalidLogLevel, c.LogLevel)
	}
	return nil
}

// AllowsCategory reports whether name is in the configured category set.
func (c *Config) AllowsCategory(name string) bool {
	for _, cat := range c.Categories {
		if cat == name {
			return true
		}
	}
	return false
}

// DefaultConfig returns a config with all defaults applied.
func DefaultConfig() *Config {
	cfg := &Config{}
	cfg.setDefaults()
	return cfg
}

// LoadConfig loads configuration from a YAML file, applies defaults, and
// validates the result.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	cfg.setDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return &cfg, nil
}

// NewLogger builds a text slog.Logger at the given level, defaulting to
// info for unknown values.
func NewLogger(level string) *slog.Logger {
	lvl := new(slog.LevelVar)
	switch strings.ToLower(level) {
	case "debug":
		lvl.Set(slog.LevelDebug)
	case "warn":
		lvl.Set(slog.LevelWarn)
	case "error":
		lvl.Set(slog.LevelError)
	default:
		lvl.Set(slog.LevelInfo)
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
}
