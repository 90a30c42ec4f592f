package newsdesk

import (
	"encoding/hex"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Index summaries are capped at 200 characters plus an ellipsis marker.
const (
	summaryLimit    = 200
	summaryEllipsis = "..."
)

// Publisher runs the one-shot publish transaction: validate, derive
// metadata, render, write the artifact into the category-partitioned file
// store, merge the record into the shared index, then seal the document.
type Publisher struct {
	cfg   *Config
	index *IndexStore
	log   *slog.Logger

	// Injected for tests; production uses the wall clock and random ids.
	now   func() time.Time
	newID func() string
}

// NewPublisher returns a publisher writing to the store and index named
// by cfg. A nil logger falls back to slog.Default.
func NewPublisher(cfg *Config, logger *slog.Logger) *Publisher {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Publisher{
		cfg:   cfg,
		index: NewIndexStore(cfg.IndexPath, logger),
		log:   logger,
		now:   time.Now,
		newID: NewUniqueID,
	}
}

// Index exposes the underlying index store (shared with the reading
// surface).
func (p *Publisher) Index() *IndexStore { return p.index }

// NewUniqueID returns a random 128-bit identifier as 32 hex characters.
// Collisions are not checked; the id space makes them a non-concern.
func NewUniqueID() string {
	id := uuid.New()
	return hex.EncodeToString(id[:])
}

// Summarize derives the index summary from plain text: the first 200
// characters, with an ellipsis marker appended only when truncated.
func Summarize(text string) string {
	runes := []rune(text)
	if len(runes) <= summaryLimit {
		return text
	}
	return string(runes[:summaryLimit]) + summaryEllipsis
}

// ArtifactPath returns where a record's rendered artifact lives in the
// file store.
func (c *Config) ArtifactPath(rec ArticleRecord) string {
	return filepath.Join(c.StoreDir, rec.Category, rec.UniqueID+ArtifactExt)
}

// Publish exports doc as a standalone HTML artifact and appends its
// record to the shared index. On success the document transitions to its
// terminal published state and the new record is returned.
//
// Validation failures leave the filesystem untouched. A failed artifact
// write leaves the index untouched. A failed index rewrite after a
// successful artifact write leaves an orphaned HTML file with no index
// entry; that window is accepted and recoverable by a reconciliation
// pass, not rolled back.
func (p *Publisher) Publish(doc *Document, headline, category, location string) (ArticleRecord, error) {
	if doc.Published() {
		return ArticleRecord{}, ErrPublished
	}

	headline = strings.TrimSpace(headline)
	location = strings.TrimSpace(location)
	plain := doc.PlainText()

	var missing []string
	if headline == "" {
		missing = append(missing, "headline")
	}
	if strings.TrimSpace(plain) == "" {
		missing = append(missing, "content")
	}
	if location == "" {
		missing = append(missing, "location")
	}
	if len(missing) > 0 {
		return ArticleRecord{}, fmt.Errorf("%w: %s cannot be empty",
			ErrValidation, strings.Join(missing, ", "))
	}
	if !p.cfg.AllowsCategory(category) {
		return ArticleRecord{}, fmt.Errorf("%w: category %q is not in the configured set",
			ErrValidation, category)
	}

	id := p.newID()
	now := p.now()
	rec := ArticleRecord{
		Title:    headline,
		Summary:  Summarize(plain),
		Category: category,
		Date:     now.Format("2006-01-02"),
		Time:     now.Format("15:04:05"),
		Location: location,
		UniqueID: id,
	}
	if lead := doc.FirstImage(); lead != nil {
		rec.Img = lead.DataURI()
	}

	artifact := RenderArticle(doc, headline, location, now)

	categoryDir := filepath.Join(p.cfg.StoreDir, category)
	if err := os.MkdirAll(categoryDir, 0o755); err != nil {
		return ArticleRecord{}, fmt.Errorf("%w: create %s: %v", ErrStorage, categoryDir, err)
	}
	artifactPath := p.cfg.ArtifactPath(rec)
	if err := os.WriteFile(artifactPath, []byte(artifact), 0o644); err != nil {
		return ArticleRecord{}, fmt.Errorf("%w: write %s: %v", ErrStorage, artifactPath, err)
	}

	if err := p.index.Append(rec); err != nil {
		p.log.Error("artifact written but index update failed, leaving orphan",
			"artifact", artifactPath, "error", err)
		return ArticleRecord{}, err
	}

	if err := doc.MarkPublished(); err != nil {
		return ArticleRecord{}, err
	}
	p.log.Info("published article", "id", id, "category", category, "artifact", artifactPath)
	return rec, nil
}
