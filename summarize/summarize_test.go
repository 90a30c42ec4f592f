package summarize

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type scriptedLLM struct {
	reply    string
	err      error
	calls    int
	lastUser string
}

func (s *scriptedLLM) Complete(ctx context.Context, system, user string) (string, error) {
	s.calls++
	s.lastUser = user
	return s.reply, s.err
}

const sampleArtifact = `<!DOCTYPE html>
<html><head><title>t</title></head><body>
<header><h1>Classic News</h1></header>
<div class="container">
  <p class="metadata-line">Chennai | 2025-03-14 09:30:00</p>
  <h2>Storm hits coast</h2>
  <p style="text-align:justify;"><span style="font-weight:bold;">A powerful storm</span> made landfall overnight.</p>
  <img src="data:image/png;base64,AAAA" width="10" height="10"/>
  <p style="text-align:justify;">Officials urged residents to stay indoors &amp; follow updates.</p>
</div>
<footer>&copy; 2025 Classic News</footer>
</body></html>`

func TestExtractArticleText(t *testing.T) {
	text, err := ExtractArticleText(sampleArtifact)
	if err != nil {
		t.Fatalf("ExtractArticleText failed: %v", err)
	}
	for _, want := range []string{
		"Chennai | 2025-03-14 09:30:00",
		"A powerful storm made landfall overnight.",
		"Officials urged residents to stay indoors & follow updates.",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("extracted text missing %q\ngot: %s", want, text)
		}
	}
	if strings.Contains(text, "<") {
		t.Errorf("tags leaked into extracted text: %s", text)
	}
	if strings.Contains(text, "Classic News") {
		t.Errorf("content outside the container leaked: %s", text)
	}
}

func TestExtractArticleTextErrors(t *testing.T) {
	if _, err := ExtractArticleText("<html><body>nothing here</body></html>"); !errors.Is(err, ErrNoContainer) {
		t.Errorf("no container = %v, want ErrNoContainer", err)
	}
	if _, err := ExtractArticleText(`<div class="container"><h2>only a headline</h2></div>`); !errors.Is(err, ErrNoParagraphs) {
		t.Errorf("no paragraphs = %v, want ErrNoParagraphs", err)
	}
}

func TestServiceSummarize(t *testing.T) {
	origin := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(sampleArtifact))
	}))
	defer origin.Close()

	llm := &scriptedLLM{reply: "  Storm made landfall; residents told to stay indoors.  "}
	svc := New(llm, nil, testLogger())

	summary, err := svc.Summarize(context.Background(), origin.URL)
	if err != nil {
		t.Fatalf("Summarize failed: %v", err)
	}
	if summary != "Storm made landfall; residents told to stay indoors." {
		t.Fatalf("summary = %q, want trimmed model reply", summary)
	}
	if !strings.Contains(llm.lastUser, "A powerful storm made landfall") {
		t.Fatalf("model prompt missing article text: %q", llm.lastUser)
	}
}

func TestServiceSummarizeFetchErrors(t *testing.T) {
	origin := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer origin.Close()

	svc := New(&scriptedLLM{reply: "x"}, nil, testLogger())
	if _, err := svc.Summarize(context.Background(), origin.URL); !errors.Is(err, ErrFetch) {
		t.Fatalf("non-200 fetch = %v, want ErrFetch", err)
	}
	if _, err := svc.Summarize(context.Background(), "http://127.0.0.1:0/"); !errors.Is(err, ErrFetch) {
		t.Fatalf("unreachable host = %v, want ErrFetch", err)
	}
}

func TestServiceSummarizeUsesCache(t *testing.T) {
	origin := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(sampleArtifact))
	}))
	defer origin.Close()

	store, err := NewStore(filepath.Join(t.TempDir(), "summaries.db"))
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}
	defer store.Close()

	llm := &scriptedLLM{reply: "cached summary"}
	svc := New(llm, store, testLogger())

	first, err := svc.Summarize(context.Background(), origin.URL)
	if err != nil {
		t.Fatalf("first Summarize failed: %v", err)
	}
	second, err := svc.Summarize(context.Background(), origin.URL)
	if err != nil {
		t.Fatalf("second Summarize failed: %v", err)
	}
	if first != second {
		t.Fatalf("cache returned different summary: %q vs %q", first, second)
	}
	if llm.calls != 1 {
		t.Fatalf("model called %d times, want 1 (second hit served from cache)", llm.calls)
	}
}

func TestStoreGetPut(t *testing.T) {
	store, err := NewStore(filepath.Join(t.TempDir(), "nested", "summaries.db"))
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}
	defer store.Close()

	if _, ok, err := store.Get("http://example.com/a"); err != nil || ok {
		t.Fatalf("Get on empty store = ok=%v err=%v", ok, err)
	}
	if err := store.Put("http://example.com/a", "first"); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	got, ok, err := store.Get("http://example.com/a")
	if err != nil || !ok || got != "first" {
		t.Fatalf("Get = %q ok=%v err=%v, want first", got, ok, err)
	}

	// Put is an upsert.
	if err := store.Put("http://example.com/a", "second"); err != nil {
		t.Fatalf("second Put failed: %v", err)
	}
	got, _, _ = store.Get("http://example.com/a")
	if got != "second" {
		t.Fatalf("Get after upsert = %q, want second", got)
	}
}
