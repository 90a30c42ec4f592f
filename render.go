package newsdesk

import (
	"bytes"
	"fmt"
	"html"
	"strings"
	"time"
)

// Artifact file extension and the timestamp layout shown on the metadata line.
const (
	ArtifactExt     = ".html"
	timestampLayout = "2006-01-02 15:04:05"
)

// RenderArticle renders a document plus its metadata as a complete,
// self-contained HTML artifact. All images are inlined as data: URIs with
// explicit width/height attributes; the page needs no scripts or external
// resources to display.
//
// Consumers (the summarize service in particular) rely on this exact
// container shape, which is a stable contract across renders:
//
//	<div class="container">
//	  <p class="metadata-line">location | timestamp</p>
//	  <h2>headline</h2>
//	  <p ...>article text</p>... <img .../>...
//	</div>
//
// Output is byte-identical for identical inputs; the timestamp is taken as
// an argument, never read from a clock.
func RenderArticle(doc *Document, headline, location string, ts time.Time) string {
	var buf bytes.Buffer
	buf.WriteString("<!DOCTYPE html>\n<html lang=\"en\">\n<head>\n")
	buf.WriteString("<meta charset=\"UTF-8\">\n")
	buf.WriteString("<meta name=\"viewport\" content=\"width=device-width, initial-scale=1.0\">\n")
	buf.WriteString("<title>" + html.EscapeString(headline) + "</title>\n")
	buf.WriteString("<style>\n" + artifactCSS + "</style>\n")
	buf.WriteString("</head>\n<body>\n")
	buf.WriteString("<header>\n  <h1>Classic News</h1>\n</header>\n")
	buf.WriteString("<div class=\"container\">\n")
	fmt.Fprintf(&buf, "  <p class=\"metadata-line\">%s | %s</p>\n",
		html.EscapeString(location), ts.Format(timestampLayout))
	fmt.Fprintf(&buf, "  <h2>%s</h2>\n", html.EscapeString(headline))
	renderBody(&buf, doc.Blocks())
	buf.WriteString("</div>\n")
	buf.WriteString("<footer>&copy; 2025 Classic News | Educational Demo</footer>\n")
	buf.WriteString("</body>\n</html>\n")
	return buf.String()
}

// renderBody writes the document blocks as paragraphs and inline images.
// Newlines inside text runs are paragraph breaks; an image always closes
// the open paragraph and stands on its own.
func renderBody(buf *bytes.Buffer, blocks []Block) {
	inPara := false
	flushPara := func() {
		if inPara {
			buf.WriteString("</p>\n")
			inPara = false
		}
	}
	openPara := func(a Alignment) {
		if !inPara {
			fmt.Fprintf(buf, "<p style=\"text-align:%s;\">", a.CSS())
			inPara = true
		}
	}

	for _, b := range blocks {
		switch blk := b.(type) {
		case *TextRun:
			for i, part := range strings.Split(blk.Text, "\n") {
				if i > 0 {
					flushPara()
				}
				if part == "" {
					continue
				}
				openPara(blk.Format.Alignment)
				buf.WriteString(renderSpan(part, blk.Format))
			}
		case *ImageNode:
			flushPara()
			fmt.Fprintf(buf, "<img src=\"%s\" width=\"%d\" height=\"%d\"/>\n",
				blk.DataURI(), blk.Width, blk.Height)
		}
	}
	flushPara()
}

// renderSpan wraps escaped text in a span carrying the run's character
// formatting. Formatting attributes come from the structured model, never
// from user-supplied markup, so only the text itself needs escaping.
func renderSpan(text string, f TextFormat) string {
	var style strings.Builder
	if f.FontFamily != "" {
		fmt.Fprintf(&style, "font-family:'%s';", f.FontFamily)
	}
	if f.PointSize > 0 {
		fmt.Fprintf(&style, "font-size:%gpt;", f.PointSize)
	}
	if f.Bold {
		style.WriteString("font-weight:bold;")
	}
	if f.Italic {
		style.WriteString("font-style:italic;")
	}
	if f.Underline {
		style.WriteString("text-decoration:underline;")
	}
	escaped := html.EscapeString(text)
	if style.Len() == 0 {
		return escaped
	}
	return "<span style=\"" + style.String() + "\">" + escaped + "</span>"
}

// artifactCSS is the fixed newspaper-style sheet wrapped around every
// published article.
const artifactCSS = `body {
    font-family: 'Arial', -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, "Helvetica Neue", Arial, sans-serif;
    background: #f9f9f9;
    color: #222;
    text-align: justify;
    padding: 30px;
    line-height: 1.6;
}
header {
    background: linear-gradient(90deg, #1e3c72 0%, #2a5298 100%);
    color: white;
    padding: 20px;
    text-align: center;
    border-radius: 8px;
    margin-bottom: 30px;
}
footer {
    background: linear-gradient(90deg, #1e3c72 0%, #2a5298 100%);
    color: white;
    text-align: center;
    padding: 15px;
    margin-top: 50px;
    border-radius: 8px;
}
.container {
    max-width: 900px;
    margin: auto;
    padding: 40px;
    background: #fff;
    border-radius: 12px;
    box-shadow: 0 6px 20px rgba(0,0,0,0.15);
}
h2 {
    font-size: 2.2em;
    color: #333;
    margin-bottom: 20px;
    text-align: center;
}
.metadata-line {
    font-weight: bold;
    font-style: italic;
    margin: 15px 0 25px 0;
    color: #666;
    text-align: center;
    font-size: 0.95em;
}
img {
    display: block;
    margin: 30px auto;
    max-width: 95%;
    height: auto;
    border-radius: 10px;
    box-shadow: 0 4px 15px rgba(0,0,0,0.1);
}
p {
    margin-bottom: 18px;
    font-size: 1.1em;
    color: #444;
}
`
