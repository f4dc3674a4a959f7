package transparency

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/chromedp/chromedp"
	"github.com/chromedp/chromedp/kb"
	"github.com/mazen160/go-random"
	"go.opentelemetry.io/otel/codes"
)

// ErrNoAdvertiser is returned when every search strategy came up empty.
var ErrNoAdvertiser = errors.New("no advertiser id found")

// searchInputSelector is the selector the portal currently uses for its
// search box. The fallback strategies exist for when this rots.
const searchInputSelector = "input.input.input-area"

// SearchAdvertiser looks up an advertiser's identifier by driving the
// portal's search UI. It works through two strategies: filling the known
// search input directly, then blind keyboard navigation. Both watch for
// a URL change and fall back to scanning the page content.
func (b *Browser) SearchAdvertiser(ctx context.Context, name string) (string, error) {
	ctx, span := tracer.Start(ctx, "browser:SearchAdvertiser")
	defer span.End()

	sctx, cancel := b.newSession(ctx)
	defer cancel()

	err := b.navigate(sctx, BaseURL)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to load portal")
		return "", fmt.Errorf("failed to load portal: %w", err)
	}
	b.screenshot(sctx, "initial_page")

	id, err := b.searchDirect(sctx, name)
	if err != nil {
		span.RecordError(err)
		slog.WarnContext(ctx, "direct search strategy failed", "advertiser", name, "err", err)
		b.screenshot(sctx, "strategy1_error")
	}

	if id == "" {
		id, err = b.searchKeyboard(sctx, name)
		if err != nil {
			span.RecordError(err)
			slog.WarnContext(ctx, "keyboard search strategy failed", "advertiser", name, "err", err)
			b.screenshot(sctx, "strategy2_error")
		}
	}

	if id == "" {
		span.SetStatus(codes.Error, ErrNoAdvertiser.Error())
		return "", ErrNoAdvertiser
	}

	slog.InfoContext(ctx, "found advertiser id", "advertiser", name, "id", id)
	return id, nil
}

// searchDirect fills the known search input and submits with Enter.
func (b *Browser) searchDirect(ctx context.Context, name string) (string, error) {
	wctx, cancel := context.WithTimeout(ctx, time.Second*10)
	err := chromedp.Run(wctx, chromedp.WaitVisible(searchInputSelector, chromedp.ByQuery))
	cancel()
	if err != nil {
		return "", fmt.Errorf("search input never became visible: %w", err)
	}

	preURL, err := b.location(ctx)
	if err != nil {
		return "", err
	}

	err = chromedp.Run(ctx,
		chromedp.Click(searchInputSelector, chromedp.ByQuery),
		chromedp.Sleep(time.Millisecond*500),
		chromedp.Clear(searchInputSelector, chromedp.ByQuery),
		chromedp.SendKeys(searchInputSelector, name, chromedp.ByQuery),
	)
	if err != nil {
		return "", fmt.Errorf("failed to fill search input: %w", err)
	}
	b.screenshot(ctx, "before_search")

	err = chromedp.Run(ctx, chromedp.SendKeys(searchInputSelector, kb.Enter, chromedp.ByQuery))
	if err != nil {
		return "", fmt.Errorf("failed to submit search: %w", err)
	}
	b.screenshot(ctx, "after_search")

	id := b.pollForURLChange(ctx, preURL)
	if id != "" {
		return id, nil
	}

	id = b.clickFirstResult(ctx)
	if id != "" {
		return id, nil
	}

	return b.extractFromContent(ctx, name)
}

// searchKeyboard reloads the portal and tabs blindly into the search
// input. Last resort for when the input selector no longer matches.
func (b *Browser) searchKeyboard(ctx context.Context, name string) (string, error) {
	err := b.navigate(ctx, BaseURL)
	if err != nil {
		return "", err
	}

	err = chromedp.Run(ctx, chromedp.Click("body", chromedp.ByQuery))
	if err != nil {
		return "", err
	}
	for i := 0; i < 3; i++ {
		err = chromedp.Run(ctx,
			chromedp.KeyEvent(kb.Tab),
			chromedp.Sleep(time.Millisecond*300),
		)
		if err != nil {
			return "", err
		}
	}

	preURL, err := b.location(ctx)
	if err != nil {
		return "", err
	}

	err = chromedp.Run(ctx,
		chromedp.KeyEvent(name),
		chromedp.KeyEvent(kb.Enter),
	)
	if err != nil {
		return "", fmt.Errorf("failed to type search query: %w", err)
	}

	id := b.pollForURLChange(ctx, preURL)
	if id != "" {
		return id, nil
	}

	return b.extractFromContent(ctx, name)
}

// pollForURLChange watches for a soft navigation away from preURL and
// extracts an advertiser id from the new URL. The portal routes through
// script so there is no navigation event to wait on, only polling.
func (b *Browser) pollForURLChange(ctx context.Context, preURL string) string {
	for attempt := 0; attempt < 3; attempt++ {
		jitterSleep(ctx, time.Millisecond*1500, time.Millisecond*2500)

		current, err := b.location(ctx)
		if err != nil {
			slog.WarnContext(ctx, "failed to read current url", "attempt", attempt+1, "err", err)
			continue
		}
		if current == "" || current == preURL {
			continue
		}

		slog.DebugContext(ctx, "url changed after search", "url", current)
		id := ExtractIDFromURL(current)
		if id != "" {
			return id
		}
	}
	return ""
}

// clickFirstResult drives the in-page result-clicking script and
// re-checks the URL afterwards.
func (b *Browser) clickFirstResult(ctx context.Context) string {
	b.screenshot(ctx, "before_clicking_results")

	wctx, cancel := context.WithTimeout(ctx, b.opts.WaitTimeout)
	defer cancel()

	var clicked bool
	err := chromedp.Run(wctx, chromedp.Evaluate(clickFirstResultScript, &clicked))
	if err != nil {
		slog.WarnContext(ctx, "failed to click search results", "err", err)
		return ""
	}
	if !clicked {
		return ""
	}

	err = chromedp.Run(wctx, chromedp.Sleep(time.Second*3))
	if err != nil {
		return ""
	}

	current, err := b.location(ctx)
	if err != nil {
		slog.WarnContext(ctx, "failed to read url after clicking result", "err", err)
		return ""
	}
	return ExtractIDFromURL(current)
}

// extractFromContent scans the serialized DOM for identifier patterns,
// then asks the page for candidates near the advertiser's name and
// ranks them by similarity.
func (b *Browser) extractFromContent(ctx context.Context, name string) (string, error) {
	b.screenshot(ctx, "page_content")

	wctx, cancel := context.WithTimeout(ctx, b.opts.WaitTimeout)
	defer cancel()

	var content string
	err := chromedp.Run(wctx, chromedp.OuterHTML("html", &content, chromedp.ByQuery))
	if err != nil {
		return "", fmt.Errorf("failed to read page content: %w", err)
	}

	id := ExtractIDFromContent(content)
	if id != "" {
		return id, nil
	}

	script := fmt.Sprintf(candidateScanScript, fmt.Sprintf("%q", strings.ToLower(name)))
	var candidates []Candidate
	err = chromedp.Run(wctx, chromedp.Evaluate(script, &candidates))
	if err != nil {
		slog.WarnContext(ctx, "candidate scan script failed", "err", err)
		return "", nil
	}

	return bestCandidate(name, candidates), nil
}

// jitterSleep paces polling attempts. The spread avoids hammering the
// portal in lockstep across concurrent lookups.
func jitterSleep(ctx context.Context, min, max time.Duration) {
	spread := int(max - min)
	offset, err := random.IntRange(0, spread)
	if err != nil {
		offset = spread / 2
	}

	select {
	case <-time.After(min + time.Duration(offset)):
	case <-ctx.Done():
	}
}
