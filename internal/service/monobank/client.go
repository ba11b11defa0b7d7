package monobank

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"AvkuWeb/internal/domain/models"
	drepo "AvkuWeb/internal/domain/repository"
	xhttp "AvkuWeb/pkg/http"
)

const (
	DefaultBaseURL = "https://api.monobank.ua"
	clientInfoPath = "/personal/client-info"
	serviceName    = "monobank"
)

// Option configures Client.
type Option func(*Client)

// Client resolves jars from the personal client-info endpoint.
type Client struct {
	token   string
	baseURL string
	timeout time.Duration
	http    *xhttp.Client
}

type clientInfo struct {
	ClientID string    `json:"clientId"`
	Name     string    `json:"name"`
	Jars     []jarInfo `json:"jars"`
}

type jarInfo struct {
	ID           string `json:"id"`
	SendID       string `json:"sendId"`
	Title        string `json:"title"`
	Description  string `json:"description"`
	CurrencyCode int    `json:"currencyCode"`
	Balance      int64  `json:"balance"`
	Goal         *int64 `json:"goal"`
}

// New creates a client authenticated with token. An empty token is accepted
// here and reported on each lookup.
func New(token string, opts ...Option) drepo.JarSource {
	c := &Client{
		token:   token,
		baseURL: DefaultBaseURL,
		timeout: 10 * time.Second,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.http == nil {
		c.http = xhttp.NewClient(xhttp.WithBaseURL(c.baseURL), xhttp.WithTimeout(c.timeout))
	}
	return c
}

// WithBaseURL overrides the API host.
func WithBaseURL(u string) Option {
	return func(c *Client) {
		if u != "" {
			c.baseURL = u
		}
	}
}

// WithTimeout bounds each API call.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithHTTPClient replaces the HTTP client.
func WithHTTPClient(h *xhttp.Client) Option {
	return func(c *Client) {
		c.http = h
	}
}

// Name is the cache and metrics namespace of this source.
func (c *Client) Name() string { return "api" }

// FetchJar looks sendID up in the client's jar list.
func (c *Client) FetchJar(ctx context.Context, sendID string) (*models.Jar, error) {
	if c.token == "" {
		return nil, &models.ConfigError{Setting: "MONO_TOKEN"}
	}

	resp, err := c.http.SendRequest(ctx, &xhttp.RequestOptions{
		Method:  xhttp.MethodGet,
		URL:     clientInfoPath,
		Headers: map[string]string{"X-Token": c.token},
	})
	if err != nil {
		return nil, &models.UpstreamError{Service: serviceName, Err: err}
	}
	if !resp.IsSuccess() {
		return nil, &models.UpstreamError{Service: serviceName, Status: resp.StatusCode}
	}

	var info clientInfo
	if err := json.Unmarshal(resp.Body, &info); err != nil {
		return nil, &models.UpstreamError{Service: serviceName, Err: fmt.Errorf("decode client-info: %w", err)}
	}

	for i := range info.Jars {
		j := &info.Jars[i]
		if j.SendID != sendID {
			continue
		}
		return &models.Jar{
			SendID:       j.SendID,
			Title:        j.Title,
			CurrencyCode: j.CurrencyCode,
			Balance:      j.Balance,
			Goal:         j.Goal,
			Source:       models.SourceAPI,
		}, nil
	}

	return nil, models.ErrJarNotFound
}

// Ready reports a missing token before any cache or network access.
func (c *Client) Ready() error {
	if c.token == "" {
		return &models.ConfigError{Setting: "MONO_TOKEN"}
	}
	return nil
}
