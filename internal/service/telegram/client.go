package telegram

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"AvkuWeb/internal/domain/models"
	drepo "AvkuWeb/internal/domain/repository"
	xhttp "AvkuWeb/pkg/http"
)

const DefaultBaseURL = "https://api.telegram.org"

// Option configures Client.
type Option func(*Client)

// Client sends messages to one chat through the Bot API.
type Client struct {
	token   string
	chatID  string
	baseURL string
	timeout time.Duration
	http    *xhttp.Client
}

type sendMessageRequest struct {
	ChatID                string `json:"chat_id"`
	Text                  string `json:"text"`
	ParseMode             string `json:"parse_mode"`
	DisableWebPagePreview bool   `json:"disable_web_page_preview"`
}

type apiResponse struct {
	OK          bool   `json:"ok"`
	ErrorCode   int    `json:"error_code"`
	Description string `json:"description"`
}

// New creates a bot client. Missing credentials are reported per send.
func New(token, chatID string, opts ...Option) drepo.Notifier {
	c := &Client{
		token:   token,
		chatID:  chatID,
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

// WithBaseURL overrides the Bot API host.
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

// SendMessage posts Markdown text to the configured chat.
// The ok flag of the reply decides success, whatever the HTTP status.
func (c *Client) SendMessage(ctx context.Context, text string) error {
	switch {
	case c.token == "":
		return &models.ConfigError{Setting: "TELEGRAM_BOT_TOKEN"}
	case c.chatID == "":
		return &models.ConfigError{Setting: "TELEGRAM_CHAT_ID"}
	}

	resp, err := c.http.SendRequest(ctx, &xhttp.RequestOptions{
		Method: xhttp.MethodPost,
		URL:    fmt.Sprintf("/bot%s/sendMessage", c.token),
		Body: sendMessageRequest{
			ChatID:                c.chatID,
			Text:                  text,
			ParseMode:             "Markdown",
			DisableWebPagePreview: true,
		},
	})
	if err != nil {
		return fmt.Errorf("send message: %w", &redactedError{err: err, secret: c.token})
	}

	var result apiResponse
	if err := json.Unmarshal(resp.Body, &result); err != nil {
		return fmt.Errorf("decode response (status %d): %w", resp.StatusCode, err)
	}
	if !result.OK {
		code := result.ErrorCode
		if code == 0 {
			code = resp.StatusCode
		}
		return &APIError{ErrorCode: code, Description: result.Description}
	}
	return nil
}
