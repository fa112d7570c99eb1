package scrapers

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"concerts.xdoubleu.com/internal/clock"
	"github.com/PuerkitoBio/goquery"
	"github.com/gocolly/colly/v2"
)

const userAgent = "concerts.xdoubleu.com/1.0"

// Options configure a scraper. BaseURL replaces every host the scraper
// talks to, which lets tests point a scraper at a local server.
type Options struct {
	Logger  *slog.Logger
	Clock   clock.Clock
	BaseURL string
}

func (opts Options) urlOr(defaultURL string) string {
	if opts.BaseURL != "" {
		return strings.TrimSuffix(opts.BaseURL, "/")
	}

	return defaultURL
}

type base struct {
	logger  *slog.Logger
	clock   clock.Clock
	venue   string
	baseURL string
}

func newBase(opts Options, venue string, defaultURL string) base {
	return base{
		logger:  opts.Logger.With("venue", venue),
		clock:   opts.Clock,
		venue:   venue,
		baseURL: opts.urlOr(defaultURL),
	}
}

func (s *base) Venue() string {
	return s.venue
}

func (s *base) location() *time.Location {
	return s.clock.Now().Location()
}

func (s *base) collector(ctx context.Context) *colly.Collector {
	return colly.NewCollector(
		colly.StdlibContext(ctx),
		colly.UserAgent(userAgent),
		colly.AllowURLRevisit(),
		colly.DetectCharset(),
	)
}

// visit loads url and calls onEvent for every element matching selector.
func (s *base) visit(
	ctx context.Context,
	url string,
	selector string,
	onEvent func(h *colly.HTMLElement),
) error {
	c := s.collector(ctx)
	c.OnHTML(selector, onEvent)
	return c.Visit(url)
}

// fetch performs a single request and returns the raw response body.
func (s *base) fetch(
	ctx context.Context,
	method string,
	url string,
	body []byte,
	headers http.Header,
) ([]byte, error) {
	c := s.collector(ctx)

	var result []byte
	c.OnResponse(func(r *colly.Response) {
		result = r.Body
	})

	err := c.Request(method, url, bytes.NewReader(body), nil, headers)
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (s *base) fetchJSON(
	ctx context.Context,
	method string,
	url string,
	body []byte,
	headers http.Header,
	dst any,
) error {
	data, err := s.fetch(ctx, method, url, body, headers)
	if err != nil {
		return err
	}

	return json.Unmarshal(data, dst)
}

func (s *base) fetchDocument(ctx context.Context, url string) (*goquery.Document, error) {
	data, err := s.fetch(ctx, http.MethodGet, url, nil, nil)
	if err != nil {
		return nil, err
	}

	return goquery.NewDocumentFromReader(bytes.NewReader(data))
}

func trimmed(sel *goquery.Selection) string {
	return strings.TrimSpace(sel.First().Text())
}
