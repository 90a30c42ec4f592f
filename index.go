package newsdesk

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// ArticleRecord is one entry in the shared article index, created exactly
// once at publish time and never mutated afterward. Field order matches
// the on-disk JSON shape consumed by the reading surface.
type ArticleRecord struct {
	Img      string `json:"img"`
	Title    string `json:"title"`
	Summary  string `json:"summary"`
	Category string `json:"category"`
	Date     string `json:"date"`
	Time     string `json:"Time"`
	Location string `json:"location"`
	UniqueID string `json:"uniqueId"`
}

// IndexStore persists the article index as a single pretty-printed JSON
// array. Appending means parse, push, serialize the whole array back.
// There is no cross-process locking: concurrent writers race on the
// read-modify-write cycle and the last rewrite wins, which is accepted
// for a single-author tool.
type IndexStore struct {
	path string
	log  *slog.Logger
}

// NewIndexStore returns a store for the index file at path. A nil logger
// falls back to slog.Default.
func NewIndexStore(path string, logger *slog.Logger) *IndexStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &IndexStore{path: path, log: logger}
}

// Path returns the index file location.
func (s *IndexStore) Path() string { return s.path }

// Load reads all records. A missing file yields an empty index. A file
// that cannot be parsed as a JSON array also yields an empty index: the
// condition is logged and the corrupt original stays on disk untouched
// until the next successful rewrite.
func (s *IndexStore) Load() ([]ArticleRecord, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %v", ErrStorage, s.path, err)
	}
	var records []ArticleRecord
	if err := json.Unmarshal(data, &records); err != nil {
		s.log.Warn("index is not a JSON array, continuing with an empty index",
			"path", s.path, "error", err)
		return nil, nil
	}
	return records, nil
}

// Append adds rec to the index and rewrites the file.
func (s *IndexStore) Append(rec ArticleRecord) error {
	records, err := s.Load()
	if err != nil {
		return err
	}
	return s.Rewrite(append(records, rec))
}

// Rewrite replaces the entire index with records. The new content is
// written to a temporary file in the same directory and renamed over the
// index, so an interrupted write never leaves a truncated file behind.
func (s *IndexStore) Rewrite(records []ArticleRecord) error {
	if records == nil {
		records = []ArticleRecord{}
	}
	data, err := json.MarshalIndent(records, "", "    ")
	if err != nil {
		return fmt.Errorf("%w: marshal index: %v", ErrStorage, err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("%w: create %s: %v", ErrStorage, dir, err)
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(s.path)+"-*")
	if err != nil {
		return fmt.Errorf("%w: create temp in %s: %v", ErrStorage, dir, err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("%w: write %s: %v", ErrStorage, tmp.Name(), err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("%w: close %s: %v", ErrStorage, tmp.Name(), err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("%w: rename %s: %v", ErrStorage, s.path, err)
	}
	return nil
}
