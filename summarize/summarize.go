// Package summarize condenses published article artifacts with a language
// model. It fetches an artifact over HTTP, extracts the text from the
// renderer's documented container/paragraph structure, and asks an LLM
// for a concise summary. Results are cached by URL so repeat requests do
// not re-bill the model.
package summarize

import (
	"context"
	"errors"
	"fmt"
	"html"
	"io"
	"log/slog"
	"net/http"
	"regexp"
	"strings"
	"time"
)

// Sentinel errors for artifact fetching and extraction.
var (
	ErrFetch        = errors.New("failed to fetch article")
	ErrNoContainer  = errors.New("could not find the main news container")
	ErrNoParagraphs = errors.New("could not find any paragraph content")
)

// The artifact renderer guarantees a single <div class="container">
// wrapping the headline and paragraphs. These patterns are a narrow
// parser over that known shape, not a general HTML parser.
var (
	reContainer = regexp.MustCompile(`(?s)<div class="container">(.*?)</div>`)
	reParagraph = regexp.MustCompile(`(?s)<p[^>]*>(.*?)</p>`)
	reTag       = regexp.MustCompile(`<[^>]+>`)
)

const maxArtifactBytes = 8 << 20

// Service fetches artifacts and produces summaries.
type Service struct {
	llm    LLM
	cache  *Store // optional; nil disables caching
	client *http.Client
	log    *slog.Logger
}

// New creates a summarize service. cache may be nil; a nil logger falls
// back to slog.Default.
func New(llm LLM, cache *Store, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		llm:    llm,
		cache:  cache,
		client: &http.Client{Timeout: 15 * time.Second},
		log:    logger,
	}
}

// Summarize fetches the artifact at url and returns a model-written
// summary, serving from the cache when possible.
func (s *Service) Summarize(ctx context.Context, url string) (string, error) {
	if s.cache != nil {
		if summary, ok, err := s.cache.Get(url); err != nil {
			s.log.Warn("summary cache read failed", "url", url, "error", err)
		} else if ok {
			return summary, nil
		}
	}

	text, err := s.fetchArticleText(ctx, url)
	if err != nil {
		return "", err
	}
	summary, err := s.llm.Complete(ctx, summarizerSystemPrompt, text)
	if err != nil {
		return "", fmt.Errorf("generate summary: %w", err)
	}
	summary = strings.TrimSpace(summary)

	if s.cache != nil {
		if err := s.cache.Put(url, summary); err != nil {
			s.log.Warn("summary cache write failed", "url", url, "error", err)
		}
	}
	return summary, nil
}

// fetchArticleText downloads an artifact and extracts its paragraph text.
func (s *Service) fetchArticleText(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrFetch, err)
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrFetch, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: unexpected status %s", ErrFetch, resp.Status)
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxArtifactBytes))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrFetch, err)
	}
	return ExtractArticleText(string(body))
}

// ExtractArticleText pulls the readable text out of a rendered artifact:
// every paragraph inside the container element, tags stripped, joined
// with single spaces.
func ExtractArticleText(artifact string) (string, error) {
	container := reContainer.FindStringSubmatch(artifact)
	if container == nil {
		return "", ErrNoContainer
	}
	var parts []string
	for _, m := range reParagraph.FindAllStringSubmatch(container[1], -1) {
		text := html.UnescapeString(reTag.ReplaceAllString(m[1], ""))
		text = strings.Join(strings.Fields(text), " ")
		if text != "" {
			parts = append(parts, text)
		}
	}
	if len(parts) == 0 {
		return "", ErrNoParagraphs
	}
	return strings.Join(parts, " "), nil
}
