package newsdesk

import (
	"encoding/xml"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/classicnews/newsdesk/summarize"
)

// Server is the reading surface: it serves the article listing, the raw
// JSON index, the published artifacts, feed/sitemap XML, and the
// LLM-backed summarize endpoint.
type Server struct {
	cfg        *Config
	cache      *RecordCache
	summarizer *summarize.Service // nil when no API key is configured
	limiter    *RequestLimiter
	log        *slog.Logger
}

// NewServer wires a Server from its collaborators. summarizer may be nil;
// the /summarize endpoint then reports the feature as unavailable.
func NewServer(cfg *Config, cache *RecordCache, summarizer *summarize.Service, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		cfg:        cfg,
		cache:      cache,
		summarizer: summarizer,
		limiter:    NewRequestLimiter(5, time.Minute),
		log:        logger,
	}
}

// Start runs the HTTP server on the configured address until it fails.
func (s *Server) Start() error {
	e := s.router()
	s.log.Info("starting reading surface", "addr", s.cfg.Addr)
	if err := e.Start(s.cfg.Addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) router() *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.IPExtractor = echo.ExtractIPFromXFFHeader(
		echo.TrustLoopback(true),
		echo.TrustLinkLocal(false),
		echo.TrustPrivateNet(true),
	)

	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus:  true,
		LogURI:     true,
		LogMethod:  true,
		LogLatency: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			s.log.Info("request", "method", v.Method, "uri", v.URI, "status", v.Status, "latency", v.Latency)
			return nil
		},
	}))
	e.Use(middleware.Recover())
	e.Use(s.cacheControl)

	e.Static("/news", s.cfg.StoreDir)
	e.GET("/", s.handleHome)
	e.GET("/api/news", s.handleListRecords)
	e.GET("/api/news/:id", s.handleGetRecord)
	e.GET("/feed.xml", s.handleFeed)
	e.GET("/sitemap.xml", s.handleSitemap)
	e.GET("/robots.txt", s.handleRobots)
	e.POST("/summarize", s.handleSummarize)
	return e
}

// cacheControl sets Cache-Control headers based on the request path.
// Artifacts are immutable once written, so they can be cached hard.
func (s *Server) cacheControl(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		p := c.Request().URL.Path
		switch {
		case strings.HasPrefix(p, "/news/"):
			c.Response().Header().Set("Cache-Control", "public, max-age=31536000, immutable")
		case p == "/sitemap.xml" || p == "/feed.xml" || p == "/robots.txt":
			c.Response().Header().Set("Cache-Control", "public, max-age=86400")
		case strings.HasPrefix(p, "/api/") || p == "/summarize":
			c.Response().Header().Set("Cache-Control", "no-store")
		default:
			c.Response().Header().Set("Cache-Control", "public, max-age=60")
		}
		return next(c)
	}
}

// handleHome serves the article listing page, optionally filtered by
// category.
func (s *Server) handleHome(c echo.Context) error {
	category := c.QueryParam("category")
	records, err := s.cache.List(category)
	if err != nil {
		return err
	}
	return render(c, ListingPage(s.cfg.SiteName, records, category, s.cfg.Categories))
}

// handleListRecords serves the index records as JSON, the same shape the
// index file holds on disk.
func (s *Server) handleListRecords(c echo.Context) error {
	records, err := s.cache.List(c.QueryParam("category"))
	if err != nil {
		return err
	}
	if records == nil {
		records = []ArticleRecord{}
	}
	return c.JSON(http.StatusOK, records)
}

func (s *Server) handleGetRecord(c echo.Context) error {
	rec, err := s.cache.Get(c.Param("id"))
	if err != nil {
		if errors.Is(err, ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "article not found")
		}
		return err
	}
	return c.JSON(http.StatusOK, rec)
}

func (s *Server) handleRobots(c echo.Context) error {
	body := "User-agent: *\nAllow: /\n\nSitemap: " + s.cfg.SiteURL + "/sitemap.xml\n"
	return c.String(http.StatusOK, body)
}

type summarizeRequest struct {
	URL string `json:"url"`
}

type summarizeResponse struct {
	Summary string `json:"summary"`
}

// handleSummarize proxies an artifact URL to the LLM summarizer. The
// endpoint is rate limited per client IP because every miss costs a
// model call.
func (s *Server) handleSummarize(c echo.Context) error {
	if s.summarizer == nil {
		return echo.NewHTTPError(http.StatusServiceUnavailable, "summarizer is not configured")
	}
	if !s.limiter.Allow(c.RealIP()) {
		return echo.NewHTTPError(http.StatusTooManyRequests, "too many summarize requests, try again later")
	}
	var req summarizeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if strings.TrimSpace(req.URL) == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "url is required")
	}

	summary, err := s.summarizer.Summarize(c.Request().Context(), req.URL)
	switch {
	case err == nil:
		return c.JSON(http.StatusOK, summarizeResponse{Summary: summary})
	case errors.Is(err, summarize.ErrNoContainer), errors.Is(err, summarize.ErrNoParagraphs):
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, summarize.ErrFetch):
		return echo.NewHTTPError(http.StatusBadGateway, err.Error())
	default:
		s.log.Error("summarize failed", "url", req.URL, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to generate summary")
	}
}

// render writes a templ component as an HTTP 200 HTML response.
func render(c echo.Context, cmp templ.Component) error {
	c.Response().Header().Set(echo.HeaderContentType, echo.MIMETextHTMLCharsetUTF8)
	c.Response().WriteHeader(http.StatusOK)
	return cmp.Render(c.Request().Context(), c.Response().Writer)
}

// --- Feed and sitemap ---

type rssXML struct {
	XMLName xml.Name   `xml:"rss"`
	Version string     `xml:"version,attr"`
	Channel rssChannel `xml:"channel"`
}

type rssChannel struct {
	Title       string    `xml:"title"`
	Link        string    `xml:"link"`
	Description string    `xml:"description"`
	Items       []rssItem `xml:"item"`
}

type rssItem struct {
	Title       string `xml:"title"`
	Link        string `xml:"link"`
	Description string `xml:"description"`
	Category    string `xml:"category,omitempty"`
	PubDate     string `xml:"pubDate"`
	GUID        string `xml:"guid"`
}

func (s *Server) handleFeed(c echo.Context) error {
	records, err := s.cache.List("")
	if err != nil {
		return err
	}
	items := make([]rssItem, 0, len(records))
	for i := len(records) - 1; i >= 0; i-- {
		rec := records[i]
		pubDate := ""
		if t, err := time.Parse(timestampLayout, rec.Date+" "+rec.Time); err == nil {
			pubDate = t.Format(time.RFC1123Z)
		}
		link := s.cfg.SiteURL + rec.ArtifactURL()
		items = append(items, rssItem{
			Title:       rec.Title,
			Link:        link,
			Description: rec.Summary,
			Category:    rec.Category,
			PubDate:     pubDate,
			GUID:        rec.UniqueID,
		})
	}
	feed := rssXML{
		Version: "2.0",
		Channel: rssChannel{
			Title:       s.cfg.SiteName,
			Link:        s.cfg.SiteURL,
			Description: s.cfg.SiteName + " latest articles",
			Items:       items,
		},
	}
	c.Response().Header().Set(echo.HeaderContentType, "application/rss+xml; charset=utf-8")
	c.Response().WriteHeader(http.StatusOK)
	c.Response().Write([]byte(xml.Header))
	return xml.NewEncoder(c.Response()).Encode(feed)
}

type sitemapURLSet struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc     string `xml:"loc"`
	LastMod string `xml:"lastmod,omitempty"`
}

func (s *Server) handleSitemap(c echo.Context) error {
	records, err := s.cache.List("")
	if err != nil {
		return err
	}
	urls := []sitemapURL{{Loc: buildURL(s.cfg.SiteURL)}}
	for _, rec := range records {
		urls = append(urls, sitemapURL{
			Loc:     s.cfg.SiteURL + rec.ArtifactURL(),
			LastMod: rec.Date,
		})
	}
	sitemap := sitemapURLSet{
		XMLNS: "http://www.sitemaps.org/schemas/sitemap/0.9",
		URLs:  urls,
	}
	c.Response().Header().Set(echo.HeaderContentType, "application/xml; charset=utf-8")
	c.Response().WriteHeader(http.StatusOK)
	c.Response().Write([]byte(xml.Header))
	return xml.NewEncoder(c.Response()).Encode(sitemap)
}

func buildURL(base string, pathSegments ...string) string {
	u, err := url.Parse(base)
	if err != nil {
		return base
	}
	u.Path = path.Join(u.Path, path.Join(pathSegments...))
	return u.String()
}
