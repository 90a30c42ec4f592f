package newsdesk

import (
	"errors"
	"sync"
	"time"
)

// ErrRecordNotFound is returned when a requested article record does not
// exist in the index.
var ErrRecordNotFound = errors.New("article record not found")

// RecordCache is an in-memory cache of index records with TTL, so the
// listing and feed handlers do not reparse the JSON index on every
// request.
type RecordCache struct {
	mu      sync.RWMutex
	records []ArticleRecord
	fetched time.Time
	ttl     time.Duration
	store   *IndexStore
}

// NewRecordCache creates a RecordCache backed by the given IndexStore.
func NewRecordCache(s *IndexStore, ttl time.Duration) *RecordCache {
	return &RecordCache{store: s, ttl: ttl}
}

func (c *RecordCache) valid() bool {
	return c.records != nil && time.Since(c.fetched) < c.ttl
}

// Invalidate clears the cache so the next read triggers a fresh load.
func (c *RecordCache) Invalidate() {
	c.mu.Lock()
	c.records = nil
	c.mu.Unlock()
}

// ensureLoaded returns cached records after ensuring the cache is fresh.
// It tries a read lock first; only takes a write lock if a reload is
// needed.
func (c *RecordCache) ensureLoaded() ([]ArticleRecord, error) {
	c.mu.RLock()
	if c.valid() {
		records := c.records
		c.mu.RUnlock()
		return records, nil
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.valid() {
		return c.records, nil
	}
	records, err := c.store.Load()
	if err != nil {
		return nil, err
	}
	if records == nil {
		records = []ArticleRecord{}
	}
	c.records = records
	c.fetched = time.Now()
	return c.records, nil
}

// List returns index records, optionally filtered by category.
func (c *RecordCache) List(category string) ([]ArticleRecord, error) {
	records, err := c.ensureLoaded()
	if err != nil {
		return nil, err
	}
	if category == "" {
		return records, nil
	}
	var filtered []ArticleRecord
	for _, r := range records {
		if r.Category == category {
			filtered = append(filtered, r)
		}
	}
	return filtered, nil
}

// Get returns a single record by its unique id.
func (c *RecordCache) Get(uniqueID string) (ArticleRecord, error) {
	records, err := c.ensureLoaded()
	if err != nil {
		return ArticleRecord{}, err
	}
	for _, r := range records {
		if r.UniqueID == uniqueID {
			return r, nil
		}
	}
	return ArticleRecord{}, ErrRecordNotFound
}
