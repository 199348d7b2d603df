package scraper

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"golang.org/x/net/html/charset"
	"golang.org/x/sync/errgroup"

	"github.com/pfrederiksen/nar-calendar/internal/config"
	"github.com/pfrederiksen/nar-calendar/internal/logger"
	"github.com/pfrederiksen/nar-calendar/internal/metrics"
	"github.com/pfrederiksen/nar-calendar/internal/schedule"
)

// Scraper fetches and parses the monthly NAR schedule pages
type Scraper struct {
	client      *http.Client
	url         string
	userAgent   string
	concurrency int
	metrics     *metrics.Recorder
}

// Option configures a Scraper.
type Option func(*Scraper)

// WithConfig applies base URL, user agent, timeout and concurrency from cfg.
func WithConfig(cfg *config.Config) Option {
	return func(s *Scraper) {
		s.url = cfg.BaseURL
		s.userAgent = cfg.UserAgent
		s.client.Timeout = cfg.Timeout
		if cfg.Concurrency > 0 {
			s.concurrency = cfg.Concurrency
		}
	}
}

// WithHTTPClient replaces the HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(s *Scraper) {
		if c != nil {
			s.client = c
		}
	}
}

// WithMetrics records fetch and parse metrics on r.
func WithMetrics(r *metrics.Recorder) Option {
	return func(s *Scraper) {
		s.metrics = r
	}
}

// New creates a new Scraper instance
func New(opts ...Option) *Scraper {
	s := &Scraper{
		client: &http.Client{
			Timeout: config.DefaultTimeout,
		},
		url:         config.DefaultBaseURL,
		userAgent:   config.DefaultUserAgent,
		concurrency: config.DefaultConcurrency,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// MonthURL returns the schedule page URL for a month.
func (s *Scraper) MonthURL(year int, month time.Month) string {
	sep := "?"
	if strings.Contains(s.url, "?") {
		sep = "&"
	}
	return fmt.Sprintf("%s%sk_year=%d&k_month=%d", s.url, sep, year, int(month))
}

// FetchMonth fetches and parses the schedule page for one month.
func (s *Scraper) FetchMonth(ctx context.Context, year int, month time.Month) (*MonthPage, error) {
	start := time.Now()
	page, err := s.fetchMonth(ctx, year, month)
	s.metrics.ObserveFetch(time.Since(start), err)
	if err != nil {
		return nil, err
	}

	if page.Year != year || page.Month != month {
		logger.Warn("Page reports a different month than requested", logger.Fields{
			"requested": fmt.Sprintf("%04d-%02d", year, int(month)),
			"page":      fmt.Sprintf("%04d-%02d", page.Year, int(page.Month)),
		})
	}
	for _, name := range page.Unrecognized {
		logger.Warn("Skipping row with unrecognized venue", logger.Fields{
			"venue_name": name,
			"year":       page.Year,
			"month":      int(page.Month),
		})
	}
	s.metrics.AddUnrecognizedVenues(len(page.Unrecognized))
	s.metrics.AddEntries(page.Entries)

	logger.Debug("Parsed month", logger.Fields{
		"year":    page.Year,
		"month":   int(page.Month),
		"entries": len(page.Entries),
	})
	return page, nil
}

func (s *Scraper) fetchMonth(ctx context.Context, year int, month time.Month) (*MonthPage, error) {
	url := s.MonthURL(year, month)
	logger.Debug("Fetching month", logger.Fields{"url": url})

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &FetchError{Year: year, Month: month, URL: url, Err: fmt.Errorf("creating request: %w", err)}
	}
	req.Header.Set("User-Agent", s.userAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, &FetchError{Year: year, Month: month, URL: url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &FetchError{Year: year, Month: month, URL: url, StatusCode: resp.StatusCode}
	}

	// The page declares its own encoding; charset sniffs the header and meta tags.
	body, err := charset.NewReader(resp.Body, resp.Header.Get("Content-Type"))
	if err != nil {
		return nil, &FetchError{Year: year, Month: month, URL: url, Err: fmt.Errorf("decoding body: %w", err)}
	}

	page, err := ParseMonth(body)
	if err != nil {
		var pe *ParseError
		if errors.As(err, &pe) {
			pe.Year, pe.Month = year, month
		}
		return nil, err
	}
	return page, nil
}

// FetchYear fetches all twelve months of year and returns their entries in
// month order, then row and day order within each page. Months are fetched
// concurrently up to the configured limit; any failure aborts the whole year.
func (s *Scraper) FetchYear(ctx context.Context, year int) ([]schedule.Entry, error) {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)

	months := make([][]schedule.Entry, 12)
	for m := time.January; m <= time.December; m++ {
		m := m
		g.Go(func() error {
			page, err := s.FetchMonth(ctx, year, m)
			if err != nil {
				return err
			}
			months[m-1] = page.Entries
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	total := 0
	for _, entries := range months {
		total += len(entries)
	}
	all := make([]schedule.Entry, 0, total)
	for _, entries := range months {
		all = append(all, entries...)
	}

	logger.Info("Fetched schedule", logger.Fields{
		"year":    year,
		"entries": len(all),
	})
	return all, nil
}
