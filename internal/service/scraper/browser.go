package scraper

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/chromedp/chromedp"
)

// readyExpr is true once the jar widget has rendered amounts or the top-up button.
const readyExpr = `(() => {
	const t = document.body ? document.body.innerText : "";
	return /₴|грн/i.test(t) || /Поповнити банку|Пополнить банку/i.test(t);
})()`

// ErrNotReady is returned when the page never showed jar content.
var ErrNotReady = errors.New("jar content did not appear")

// BrowserOption configures Browser.
type BrowserOption func(*Browser)

// Browser reads pages with a fresh headless Chrome per call.
type Browser struct {
	execPath    string
	width       int
	height      int
	navTimeout  time.Duration
	waitTimeout time.Duration
}

// NewBrowser creates a chromedp-backed PageReader.
func NewBrowser(opts ...BrowserOption) *Browser {
	b := &Browser{
		width:       1200,
		height:      900,
		navTimeout:  30 * time.Second,
		waitTimeout: 15 * time.Second,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// WithExecPath uses a specific Chrome binary instead of searching PATH.
func WithExecPath(p string) BrowserOption {
	return func(b *Browser) {
		b.execPath = p
	}
}

// WithViewport sets the window size.
func WithViewport(w, h int) BrowserOption {
	return func(b *Browser) {
		if w > 0 && h > 0 {
			b.width, b.height = w, h
		}
	}
}

// WithTimeouts sets the navigation and content wait limits.
func WithTimeouts(nav, wait time.Duration) BrowserOption {
	return func(b *Browser) {
		if nav > 0 {
			b.navTimeout = nav
		}
		if wait > 0 {
			b.waitTimeout = wait
		}
	}
}

// ReadText navigates to pageURL, waits for jar content and returns document.body.innerText.
// The browser process is torn down before returning on every path.
func (b *Browser) ReadText(ctx context.Context, pageURL string) (string, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.WindowSize(b.width, b.height),
		chromedp.NoSandbox,
		chromedp.DisableGPU,
	)
	if b.execPath != "" {
		opts = append(opts, chromedp.ExecPath(b.execPath))
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	defer cancelAlloc()

	tabCtx, cancelTab := chromedp.NewContext(allocCtx)
	defer cancelTab()

	// Start the browser on the long-lived tab context; a timeout on the first
	// Run would otherwise own the browser lifetime.
	if err := chromedp.Run(tabCtx); err != nil {
		return "", fmt.Errorf("start browser: %w", err)
	}

	navCtx, cancelNav := context.WithTimeout(tabCtx, b.navTimeout)
	defer cancelNav()
	if err := chromedp.Run(navCtx, chromedp.Navigate(pageURL)); err != nil {
		return "", fmt.Errorf("navigate %s: %w", pageURL, err)
	}

	var ready bool
	err := chromedp.Run(tabCtx, chromedp.Poll(readyExpr, &ready,
		chromedp.WithPollingTimeout(b.waitTimeout),
		chromedp.WithPollingInterval(250*time.Millisecond),
	))
	if err != nil {
		if errors.Is(err, chromedp.ErrPollingTimeout) {
			return "", fmt.Errorf("%w after %s", ErrNotReady, b.waitTimeout)
		}
		return "", fmt.Errorf("wait for content: %w", err)
	}

	var text string
	if err := chromedp.Run(tabCtx, chromedp.Evaluate(`document.body.innerText`, &text)); err != nil {
		return "", fmt.Errorf("read text: %w", err)
	}
	return text, nil
}
