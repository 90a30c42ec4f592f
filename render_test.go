package newsdesk

import (
	"strings"
	"testing"
	"time"
)

var renderTS = time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC)

func TestRenderArticleContainerContract(t *testing.T) {
	d := NewDocument()
	mustInsertText(t, d, "First paragraph.\nSecond paragraph.", DefaultTextFormat())

	out := RenderArticle(d, "Storm hits coast", "Chennai", renderTS)

	for _, want := range []string{
		"<!DOCTYPE html>",
		"<title>Storm hits coast</title>",
		"<div class=\"container\">",
		"<p class=\"metadata-line\">Chennai | 2025-03-14 09:30:00</p>",
		"<h2>Storm hits coast</h2>",
		"First paragraph.",
		"Second paragraph.",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("artifact missing %q", want)
		}
	}
	// Newlines are paragraph breaks: two <p style= bodies plus the
	// metadata line.
	if got := strings.Count(out, "<p style="); got != 2 {
		t.Errorf("body paragraphs = %d, want 2", got)
	}
}

func TestRenderArticleDeterministic(t *testing.T) {
	d := NewDocument()
	mustInsertText(t, d, "Same input, same bytes.", DefaultTextFormat())
	if err := d.InsertImage(testNode(t, 12, 8)); err != nil {
		t.Fatalf("InsertImage failed: %v", err)
	}

	a := RenderArticle(d, "Headline", "Oslo", renderTS)
	b := RenderArticle(d, "Headline", "Oslo", renderTS)
	if a != b {
		t.Fatal("identical inputs must render byte-identical artifacts")
	}
}

func TestRenderArticleInlinesImages(t *testing.T) {
	d := NewDocument()
	mustInsertText(t, d, "Before image.", DefaultTextFormat())
	node := testNode(t, 12, 8)
	if err := d.InsertImage(node); err != nil {
		t.Fatalf("InsertImage failed: %v", err)
	}
	mustInsertText(t, d, "After image.", DefaultTextFormat())

	out := RenderArticle(d, "Pics", "Lagos", renderTS)
	if !strings.Contains(out, "src=\"data:image/png;base64,") {
		t.Fatal("image not inlined as a data URI")
	}
	if !strings.Contains(out, "width=\"12\" height=\"8\"") {
		t.Fatal("image dimensions missing from the img tag")
	}
	if strings.Contains(out, "http://") || strings.Contains(out, "https://") {
		t.Fatal("artifact must be self-contained, no external references")
	}
	// The image interrupts the paragraph flow.
	imgAt := strings.Index(out, "<img ")
	beforeAt := strings.Index(out, "Before image.")
	afterAt := strings.Index(out, "After image.")
	if !(beforeAt < imgAt && imgAt < afterAt) {
		t.Fatal("block order not preserved in output")
	}
}

func TestRenderArticleEscapesContent(t *testing.T) {
	d := NewDocument()
	mustInsertText(t, d, "a < b & c > d", DefaultTextFormat())

	out := RenderArticle(d, `<script>alert("x")</script>`, "O'Hare & Co", renderTS)
	if strings.Contains(out, "<script>") {
		t.Fatal("headline markup not escaped")
	}
	if !strings.Contains(out, "a &lt; b &amp; c &gt; d") {
		t.Fatal("body text not escaped")
	}
	if !strings.Contains(out, "O&#39;Hare &amp; Co") {
		t.Fatal("location not escaped")
	}
}

func TestRenderArticleFormatting(t *testing.T) {
	d := NewDocument()
	bold := DefaultTextFormat()
	bold.Bold = true
	bold.PointSize = 18
	mustInsertText(t, d, "loud", bold)

	centered := DefaultTextFormat()
	centered.Alignment = AlignCenter
	mustInsertText(t, d, "\ncentered line", centered)

	out := RenderArticle(d, "Styles", "Paris", renderTS)
	if !strings.Contains(out, "font-weight:bold;") {
		t.Error("bold style missing")
	}
	if !strings.Contains(out, "font-size:18pt;") {
		t.Error("point size missing")
	}
	if !strings.Contains(out, "text-align:center;") {
		t.Error("alignment missing")
	}
	if !strings.Contains(out, "font-family:'Arial';") {
		t.Error("font family missing")
	}
}
