package scraper

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"AvkuWeb/internal/domain/models"
	drepo "AvkuWeb/internal/domain/repository"
)

const (
	DefaultURLTemplate = "https://send.monobank.ua/jar/%s"
	serviceName        = "scrape"
)

// PageReader returns the rendered visible text of a page.
type PageReader interface {
	ReadText(ctx context.Context, pageURL string) (string, error)
}

// Option configures Scraper.
type Option func(*Scraper)

// Scraper resolves jars from the public jar page.
type Scraper struct {
	urlTemplate string
	reader      PageReader
	timeout     time.Duration
}

// New creates a scraper reading pages through reader.
func New(reader PageReader, opts ...Option) drepo.JarSource {
	s := &Scraper{
		urlTemplate: DefaultURLTemplate,
		reader:      reader,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// WithURLTemplate sets the page URL; %s receives the escaped sendId.
func WithURLTemplate(tpl string) Option {
	return func(s *Scraper) {
		if tpl != "" {
			s.urlTemplate = tpl
		}
	}
}

// WithTimeout bounds a whole scrape.
func WithTimeout(d time.Duration) Option {
	return func(s *Scraper) {
		s.timeout = d
	}
}

// Name is the cache and metrics namespace of this source.
func (s *Scraper) Name() string { return "scrape" }

// PageURL returns the public page address for sendID.
func (s *Scraper) PageURL(sendID string) string {
	return fmt.Sprintf(s.urlTemplate, url.PathEscape(sendID))
}

// FetchJar renders the jar page and extracts amounts from its text.
func (s *Scraper) FetchJar(ctx context.Context, sendID string) (*models.Jar, error) {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	text, err := s.reader.ReadText(ctx, s.PageURL(sendID))
	if err != nil {
		return nil, &models.UpstreamError{Service: serviceName, Err: err}
	}

	balance, goal := ExtractAmounts(text)
	return &models.Jar{
		SendID:  sendID,
		Balance: balance,
		Goal:    goal,
		Source:  models.SourceScrape,
	}, nil
}
