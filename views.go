package newsdesk

import (
	"bytes"
	"context"
	"html"
	"io"
	"net/url"

	"github.com/a-h/templ"
)

// ArtifactURL returns the path where the record's rendered artifact is
// served, relative to the site root.
func (r ArticleRecord) ArtifactURL() string {
	return "/news/" + url.PathEscape(r.Category) + "/" + url.PathEscape(r.UniqueID) + ArtifactExt
}

// ListingPage renders the front page: a card grid of published articles
// with a category filter bar. Newest records come last in the index, so
// the grid shows them first.
func ListingPage(siteName string, records []ArticleRecord, active string, categories []string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var buf bytes.Buffer
		renderListing(&buf, siteName, records, active, categories)
		_, err := w.Write(buf.Bytes())
		return err
	})
}

const listingCSS = `body{font-family:Arial,sans-serif;margin:0;background:#f4f4f4;color:#333}` +
	`header{background:#222;color:#fff;padding:18px 24px}` +
	`header h1{margin:0;font-size:26px}` +
	`nav{padding:10px 24px;background:#fff;border-bottom:1px solid #ddd;overflow-x:auto;white-space:nowrap}` +
	`nav a{margin-right:14px;color:#555;text-decoration:none;font-size:14px}` +
	`nav a.active{color:#c00;font-weight:bold}` +
	`.grid{display:grid;grid-template-columns:repeat(auto-fill,minmax(280px,1fr));gap:18px;padding:24px;max-width:1200px;margin:0 auto}` +
	`.card{background:#fff;border-radius:6px;overflow:hidden;box-shadow:0 1px 3px rgba(0,0,0,.15);text-decoration:none;color:inherit;display:block}` +
	`.card img{width:100%;height:170px;object-fit:cover;display:block}` +
	`.card h3{margin:10px 12px 6px;font-size:17px}` +
	`.card p{margin:0 12px 10px;font-size:13px;color:#666}` +
	`.card .meta{margin:0 12px 12px;font-size:12px;color:#999}` +
	`.empty{padding:40px;text-align:center;color:#888}`

func renderListing(buf *bytes.Buffer, siteName string, records []ArticleRecord, active string, categories []string) {
	buf.WriteString("<!DOCTYPE html>\n<html lang=\"en\">\n<head>\n")
	buf.WriteString("<meta charset=\"utf-8\"/>\n")
	buf.WriteString("<meta name=\"viewport\" content=\"width=device-width, initial-scale=1\"/>\n")
	buf.WriteString("<title>" + html.EscapeString(siteName) + "</title>\n")
	buf.WriteString("<style>" + listingCSS + "</style>\n")
	buf.WriteString("</head>\n<body>\n")
	buf.WriteString("<header><h1>" + html.EscapeString(siteName) + "</h1></header>\n")

	buf.WriteString("<nav>")
	writeFilterLink(buf, "All", "/", active == "")
	for _, cat := range categories {
		writeFilterLink(buf, cat, "/?category="+url.QueryEscape(cat), active == cat)
	}
	buf.WriteString("</nav>\n")

	if len(records) == 0 {
		buf.WriteString("<p class=\"empty\">No articles published yet.</p>\n")
	} else {
		buf.WriteString("<div class=\"grid\">\n")
		// Newest first.
		for i := len(records) - 1; i >= 0; i-- {
			writeCard(buf, records[i])
		}
		buf.WriteString("</div>\n")
	}
	buf.WriteString("</body>\n</html>\n")
}

func writeFilterLink(buf *bytes.Buffer, label, href string, active bool) {
	class := ""
	if active {
		class = " class=\"active\""
	}
	buf.WriteString("<a" + class + " href=\"" + html.EscapeString(href) + "\">" + html.EscapeString(label) + "</a>")
}

func writeCard(buf *bytes.Buffer, rec ArticleRecord) {
	buf.WriteString("<a class=\"card\" href=\"" + html.EscapeString(rec.ArtifactURL()) + "\">")
	if rec.Img != "" {
		buf.WriteString("<img src=\"" + html.EscapeString(rec.Img) + "\" alt=\"" + html.EscapeString(rec.Title) + "\"/>")
	}
	buf.WriteString("<h3>" + html.EscapeString(rec.Title) + "</h3>")
	if rec.Summary != "" {
		buf.WriteString("<p>" + html.EscapeString(rec.Summary) + "</p>")
	}
	meta := rec.Category + " | " + rec.Date + " " + rec.Time
	if rec.Location != "" {
		meta += " | " + rec.Location
	}
	buf.WriteString("<div class=\"meta\">" + html.EscapeString(meta) + "</div>")
	buf.WriteString("</a>\n")
}
