package transparency

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/chromedp/chromedp"
)

const browserUserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) " +
	"AppleWebKit/537.36 (KHTML, like Gecko) " +
	"Chrome/122.0.0.0 Safari/537.36"

type BrowserOptions struct {
	// Headful disables headless mode, useful when watching the
	// heuristics interact with the portal.
	Headful bool
	// UserAgent defaults to a desktop Chrome user agent.
	UserAgent string
	// NavigationTimeout bounds full page loads. Defaults to 60s.
	NavigationTimeout time.Duration
	// WaitTimeout bounds element waits and script evaluation.
	// Defaults to 30s.
	WaitTimeout time.Duration
	// ScreenshotDir enables per-stage screenshot dumps when non-empty.
	ScreenshotDir string
	// DevtoolsURL attaches to a running browser over the devtools
	// protocol instead of launching one.
	DevtoolsURL string
}

// Browser drives a headless Chrome session against the portal.
type Browser struct {
	opts BrowserOptions
}

func NewBrowser(opts BrowserOptions) *Browser {
	if opts.UserAgent == "" {
		opts.UserAgent = browserUserAgent
	}
	if opts.NavigationTimeout <= 0 {
		opts.NavigationTimeout = time.Minute
	}
	if opts.WaitTimeout <= 0 {
		opts.WaitTimeout = time.Second * 30
	}
	return &Browser{opts: opts}
}

// newSession allocates a fresh browser tab. Every scrape runs in its own
// session so a wedged page can't poison the next request.
func (b *Browser) newSession(ctx context.Context) (context.Context, context.CancelFunc) {
	var allocCtx context.Context
	var allocCancel context.CancelFunc

	if b.opts.DevtoolsURL != "" {
		allocCtx, allocCancel = chromedp.NewRemoteAllocator(ctx, b.opts.DevtoolsURL)
	} else {
		opts := []chromedp.ExecAllocatorOption{
			chromedp.NoFirstRun,
			chromedp.NoDefaultBrowserCheck,
			chromedp.DisableGPU,
			chromedp.NoSandbox,
			chromedp.WindowSize(1280, 720),
			chromedp.UserAgent(b.opts.UserAgent),
		}
		if !b.opts.Headful {
			opts = append(opts, chromedp.Headless)
		}
		allocCtx, allocCancel = chromedp.NewExecAllocator(ctx, opts...)
	}

	sctx, cancel := chromedp.NewContext(allocCtx)
	return sctx, func() {
		cancel()
		allocCancel()
	}
}

func (b *Browser) navigate(ctx context.Context, url string) error {
	nctx, cancel := context.WithTimeout(ctx, b.opts.NavigationTimeout)
	defer cancel()

	return chromedp.Run(nctx,
		chromedp.Navigate(url),
		chromedp.WaitReady("body", chromedp.ByQuery),
	)
}

func (b *Browser) location(ctx context.Context) (string, error) {
	wctx, cancel := context.WithTimeout(ctx, b.opts.WaitTimeout)
	defer cancel()

	var href string
	err := chromedp.Run(wctx, chromedp.Evaluate(locationScript, &href))
	return href, err
}

// screenshot dumps the current viewport into the configured directory.
// Failures only warn, a missing screenshot never fails a scrape.
func (b *Browser) screenshot(ctx context.Context, name string) {
	if b.opts.ScreenshotDir == "" {
		return
	}

	sctx, cancel := context.WithTimeout(ctx, b.opts.WaitTimeout)
	defer cancel()

	var buf []byte
	err := chromedp.Run(sctx, chromedp.CaptureScreenshot(&buf))
	if err != nil {
		slog.WarnContext(ctx, "failed to capture screenshot", "name", name, "err", err)
		return
	}

	err = os.MkdirAll(b.opts.ScreenshotDir, 0755)
	if err != nil {
		slog.WarnContext(ctx, "failed to create screenshot dir", "err", err)
		return
	}
	path := filepath.Join(b.opts.ScreenshotDir, fmt.Sprintf("%s.png", name))
	err = os.WriteFile(path, buf, 0644)
	if err != nil {
		slog.WarnContext(ctx, "failed to write screenshot", "path", path, "err", err)
	}
}
