// Package newsdesk is a news article composition and publishing pipeline.
// It models rich article documents (styled text runs interleaved with
// embedded images), provides the image decode/resize/encode codec and an
// image edit controller, renders self-contained HTML artifacts, and
// publishes them atomically into a category-partitioned store with a
// shared JSON index. The Server type exposes the reading surface over
// the published store.
package newsdesk

import "os"

// EnvOr returns the value of the environment variable key, or fallback
// if it is unset or empty.
func EnvOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
