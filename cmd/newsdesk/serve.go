package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/pflag"
	"go.uber.org/automaxprocs/maxprocs"

	"github.com/classicnews/newsdesk"
	"github.com/classicnews/newsdesk/summarize"
)

// runServe starts the reading surface: listing page, JSON API, artifact
// store, feed/sitemap, and the summarize endpoint when an API key is
// configured.
func runServe(args []string) error {
	fs := pflag.NewFlagSet("serve", pflag.ContinueOnError)
	configPath := configFlag(fs)
	addr := fs.String("addr", "", "listen address (overrides config)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		return err
	}
	if *addr != "" {
		cfg.Addr = *addr
	}
	if cfg.Summarizer.APIKey == "" {
		cfg.Summarizer.APIKey = os.Getenv("OPENAI_API_KEY")
	}

	logger := newsdesk.NewLogger(cfg.LogLevel)
	slog.SetDefault(logger)

	// Respect container CPU quotas.
	if _, err := maxprocs.Set(maxprocs.Logger(func(format string, a ...any) {
		logger.Info(fmt.Sprintf(format, a...))
	})); err != nil {
		logger.Warn("failed to set GOMAXPROCS", "error", err)
	}

	index := newsdesk.NewIndexStore(cfg.IndexPath, logger)
	cache := newsdesk.NewRecordCache(index, cfg.CacheTTL)

	var svc *summarize.Service
	if cfg.Summarizer.APIKey != "" {
		llm, err := summarize.NewOpenAILLM(cfg.Summarizer.APIKey, cfg.Summarizer.Model, cfg.Summarizer.BaseURL)
		if err != nil {
			return err
		}
		store, err := summarize.NewStore(cfg.Summarizer.CachePath)
		if err != nil {
			return fmt.Errorf("open summary cache: %w", err)
		}
		defer store.Close()
		svc = summarize.New(llm, store, logger)
	} else {
		logger.Info("summarizer disabled, no API key configured")
	}

	return newsdesk.NewServer(cfg, cache, svc, logger).Start()
}
