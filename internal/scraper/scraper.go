package scraper

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/cenkalti/backoff/v4"
	"golang.org/x/net/html/charset"
	"golang.org/x/sync/errgroup"

	"github.com/pfrederiksen/yo-yo/internal/league"
	"github.com/pfrederiksen/yo-yo/internal/logger"
)

const (
	// DefaultURLTemplate is formatted with the season notation.
	DefaultURLTemplate = "https://www.rsssf.org/engpaul/FLA/%s.html"
	UserAgent          = "yo-yo/1.0 (github.com/pfrederiksen/yo-yo)"
	Timeout            = 30 * time.Second
	DefaultMaxRetries  = 3

	defaultInitialBackoff = 500 * time.Millisecond
	maxElapsedBackoff     = 2 * time.Minute
)

// ErrSeasonNotFound is returned when the archive has no page for a season.
var ErrSeasonNotFound = errors.New("season page not found")

// Scraper handles fetching RSSSF season pages
type Scraper struct {
	client         *http.Client
	urlTemplate    string
	userAgent      string
	maxRetries     uint64
	initialBackoff time.Duration
	log            *logger.Logger
}

// Option configures a Scraper.
type Option func(*Scraper)

// WithURLTemplate sets the page URL pattern; %s is replaced by the season.
func WithURLTemplate(template string) Option {
	return func(s *Scraper) {
		if template != "" {
			s.urlTemplate = template
		}
	}
}

// WithUserAgent sets the User-Agent header sent with every request.
func WithUserAgent(ua string) Option {
	return func(s *Scraper) {
		if ua != "" {
			s.userAgent = ua
		}
	}
}

// WithTimeout sets the per-request HTTP timeout.
func WithTimeout(d time.Duration) Option {
	return func(s *Scraper) {
		if d > 0 {
			s.client.Timeout = d
		}
	}
}

// WithMaxRetries sets how many times a failed request is retried.
func WithMaxRetries(n int) Option {
	return func(s *Scraper) {
		if n >= 0 {
			s.maxRetries = uint64(n)
		}
	}
}

// WithLogger sets the logger used to report retries.
func WithLogger(l *logger.Logger) Option {
	return func(s *Scraper) {
		if l != nil {
			s.log = l
		}
	}
}

// New creates a new Scraper instance
func New(opts ...Option) *Scraper {
	s := &Scraper{
		client: &http.Client{
			Timeout: Timeout,
		},
		urlTemplate:    DefaultURLTemplate,
		userAgent:      UserAgent,
		maxRetries:     DefaultMaxRetries,
		initialBackoff: defaultInitialBackoff,
		log:            logger.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SeasonURL returns the page address for the season starting in year.
func (s *Scraper) SeasonURL(year int) string {
	return fmt.Sprintf(s.urlTemplate, league.YearToSeason(year))
}

// FetchSeason downloads the page for the season starting in year and returns
// its table text.
func (s *Scraper) FetchSeason(ctx context.Context, year int) (string, error) {
	url := s.SeasonURL(year)
	season := league.YearToSeason(year)

	var text string
	operation := func() error {
		t, err := s.fetch(ctx, url)
		if err != nil {
			return err
		}
		text = t
		return nil
	}

	notify := func(err error, wait time.Duration) {
		s.log.Warn("Retrying season fetch", logger.Fields{
			"season": season,
			"url":    url,
			"wait":   wait.String(),
			"error":  err.Error(),
		})
	}

	if err := backoff.RetryNotify(operation, s.newBackOff(ctx), notify); err != nil {
		return "", fmt.Errorf("fetching season %s: %w", season, err)
	}

	return text, nil
}

// FetchSeasons downloads several seasons in parallel, at most concurrency at
// a time. Seasons without a page are left out of the result. On error the
// pages downloaded before the failure are returned along with it.
func (s *Scraper) FetchSeasons(ctx context.Context, years []int, concurrency int) (map[int]string, error) {
	g, gctx := errgroup.WithContext(ctx)
	if concurrency > 0 {
		g.SetLimit(concurrency)
	}

	var mu sync.Mutex
	pages := make(map[int]string, len(years))

	for _, year := range years {
		year := year
		g.Go(func() error {
			text, err := s.FetchSeason(gctx, year)
			if errors.Is(err, ErrSeasonNotFound) {
				return nil
			}
			if err != nil {
				return err
			}

			mu.Lock()
			pages[year] = text
			mu.Unlock()
			return nil
		})
	}

	err := g.Wait()
	return pages, err
}

func (s *Scraper) newBackOff(ctx context.Context) backoff.BackOff {
	eb := backoff.NewExponentialBackOff()
	eb.InitialInterval = s.initialBackoff
	eb.MaxElapsedTime = maxElapsedBackoff
	return backoff.WithContext(backoff.WithMaxRetries(eb, s.maxRetries), ctx)
}

// fetch performs one request. Errors wrapped with backoff.Permanent are not
// retried.
func (s *Scraper) fetch(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", backoff.Permanent(fmt.Errorf("creating request: %w", err))
	}
	req.Header.Set("User-Agent", s.userAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetching page: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
	case resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusGone:
		return "", backoff.Permanent(fmt.Errorf("%w: %s", ErrSeasonNotFound, url))
	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
		return "", fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	default:
		return "", backoff.Permanent(fmt.Errorf("unexpected status code: %d", resp.StatusCode))
	}

	text, err := PageText(resp.Body, resp.Header.Get("Content-Type"))
	if err != nil {
		return "", backoff.Permanent(err)
	}
	return text, nil
}

// PageText decodes an HTML page to UTF-8 and returns its table text. The
// encoding comes from contentType when given, else from the page itself.
func PageText(r io.Reader, contentType string) (string, error) {
	body, err := charset.NewReader(r, contentType)
	if err != nil {
		return "", fmt.Errorf("decoding page: %w", err)
	}
	return ExtractText(body)
}

// ExtractText returns the text of every <pre> block in an HTML page, joined
// by newlines. Pages without <pre> blocks yield the text of <body>.
func ExtractText(r io.Reader) (string, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return "", fmt.Errorf("parsing HTML: %w", err)
	}

	blocks := doc.Find("pre")
	if blocks.Length() == 0 {
		return doc.Find("body").Text(), nil
	}

	parts := make([]string, 0, blocks.Length())
	blocks.Each(func(i int, sel *goquery.Selection) {
		parts = append(parts, sel.Text())
	})

	return strings.Join(parts, "\n"), nil
}
