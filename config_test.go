package newsdesk

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.SiteName != "Classic News" {
		t.Errorf("SiteName = %q", cfg.SiteName)
	}
	if cfg.Addr != ":3000" {
		t.Errorf("Addr = %q", cfg.Addr)
	}
	if cfg.StoreDir != "News" || cfg.IndexPath != "Data/news.json" {
		t.Errorf("store paths = %q %q", cfg.StoreDir, cfg.IndexPath)
	}
	if cfg.CacheTTL != 5*time.Minute {
		t.Errorf("CacheTTL = %v", cfg.CacheTTL)
	}
	if len(cfg.Categories) != len(DefaultCategories) {
		t.Errorf("Categories = %d entries, want %d", len(cfg.Categories), len(DefaultCategories))
	}
	if cfg.ClearAfterPublish {
		t.Error("ClearAfterPublish should default to false (lock the form)")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config must validate: %v", err)
	}
}

func TestLoadConfigFromYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "newsdesk.yaml")
	content := `site_name: Desk Test
site_url: https://news.example.com/
addr: ":8080"
store_dir: out/news
categories: [World, Tech]
clear_after_publish: true
log_level: debug
summarizer:
  model: gpt-4o
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.SiteName != "Desk Test" || cfg.Addr != ":8080" {
		t.Errorf("overrides not applied: %q %q", cfg.SiteName, cfg.Addr)
	}
	if cfg.SiteURL != "https://news.example.com" {
		t.Errorf("SiteURL = %q, trailing slash must be stripped", cfg.SiteURL)
	}
	if len(cfg.Categories) != 2 || cfg.Categories[0] != "World" {
		t.Errorf("Categories = %v", cfg.Categories)
	}
	if !cfg.ClearAfterPublish {
		t.Error("ClearAfterPublish not read")
	}
	if cfg.Summarizer.Model != "gpt-4o" {
		t.Errorf("Summarizer.Model = %q", cfg.Summarizer.Model)
	}
	// Unset values fall back to defaults.
	if cfg.IndexPath != "Data/news.json" {
		t.Errorf("IndexPath default missing: %q", cfg.IndexPath)
	}
	if cfg.Summarizer.CachePath != "Data/summaries.db" {
		t.Errorf("Summarizer.CachePath default missing: %q", cfg.Summarizer.CachePath)
	}
}

func TestLoadConfigErrors(t *testing.T) {
	dir := t.TempDir()

	if _, err := LoadConfig(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("missing file should fail")
	}

	bad := filepath.Join(dir, "bad.yaml")
	os.WriteFile(bad, []byte("categories: [unclosed"), 0o644)
	if _, err := LoadConfig(bad); err == nil {
		t.Error("unparsable YAML should fail")
	}

	invalid := filepath.Join(dir, "invalid.yaml")
	os.WriteFile(invalid, []byte("log_level: loud\n"), 0o644)
	if _, err := LoadConfig(invalid); !errors.Is(err, ErrInvalidLogLevel) {
		t.Errorf("bad log level = %v, want ErrInvalidLogLevel", err)
	}
}

func TestConfigValidateCategories(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Categories = []string{"World", "  "}
	if err := cfg.Validate(); !errors.Is(err, ErrEmptyCategory) {
		t.Errorf("blank category = %v, want ErrEmptyCategory", err)
	}

	cfg.Categories = nil
	if err := cfg.Validate(); !errors.Is(err, ErrNoCategories) {
		t.Errorf("no categories = %v, want ErrNoCategories", err)
	}
}

func TestAllowsCategory(t *testing.T) {
	cfg := DefaultConfig()
	if !cfg.AllowsCategory("World") {
		t.Error("World should be allowed by default")
	}
	if cfg.AllowsCategory("world") {
		t.Error("category match is case-sensitive")
	}
	if cfg.AllowsCategory("Astrology") {
		t.Error("unknown category should be rejected")
	}
}
