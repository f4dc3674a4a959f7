package transparency

import (
	"context"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/chromedp/chromedp"
	"go.opentelemetry.io/otel/codes"
)

const searchPlaceholderText = "Search by advertiser or website name"

// PageProbe is a diagnostic snapshot of the portal's landing page.
type PageProbe struct {
	// SearchInput is the outer HTML of the element the discovery
	// heuristics settled on, "" when nothing matched.
	SearchInput string
	// DOM is the serialized page content.
	DOM string
}

// ProbeSearchInput fetches the portal and runs the search-box discovery
// heuristics over it. Used from the CLI to diagnose selector rot
// without running a full lookup.
func (b *Browser) ProbeSearchInput(ctx context.Context) (PageProbe, error) {
	ctx, span := tracer.Start(ctx, "browser:ProbeSearchInput")
	defer span.End()

	sctx, cancel := b.newSession(ctx)
	defer cancel()

	err := b.navigate(sctx, BaseURL)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to load portal")
		return PageProbe{}, fmt.Errorf("failed to load portal: %w", err)
	}

	wctx, cancelWait := context.WithTimeout(sctx, b.opts.WaitTimeout)
	defer cancelWait()

	var content string
	err = chromedp.Run(wctx, chromedp.OuterHTML("html", &content, chromedp.ByQuery))
	if err != nil {
		span.RecordError(err)
		return PageProbe{}, fmt.Errorf("failed to read page content: %w", err)
	}

	probe := PageProbe{DOM: content}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(content))
	if err != nil {
		span.RecordError(err)
		return probe, err
	}

	probe.SearchInput = findSearchInput(doc)
	if probe.SearchInput == "" {
		// the static heuristics struck out, ask the live page
		err = chromedp.Run(wctx, chromedp.Evaluate(searchInputProbeScript, &probe.SearchInput))
		if err != nil {
			span.RecordError(err)
		}
	}

	if probe.SearchInput == "" {
		b.screenshot(sctx, "search_input_not_found")
	}
	return probe, nil
}

// findSearchInput works through ordered fallbacks to locate the search
// input in a parsed document: placeholder text, class naming, ARIA
// roles, then containers with search-adjacent wording.
func findSearchInput(doc *goquery.Document) string {
	if html := inputByPlaceholderSpan(doc); html != "" {
		return html
	}
	if html := inputBySearchClass(doc); html != "" {
		return html
	}
	if html := inputBySearchRole(doc); html != "" {
		return html
	}
	return inputBySearchContainer(doc)
}

func renderFirst(sel *goquery.Selection) string {
	if sel.Length() == 0 {
		return ""
	}
	html, err := goquery.OuterHtml(sel.First())
	if err != nil {
		return ""
	}
	return strings.TrimSpace(html)
}

func inputByPlaceholderSpan(doc *goquery.Document) string {
	found := ""
	doc.Find("span").EachWithBreak(func(_ int, span *goquery.Selection) bool {
		if !strings.Contains(span.Text(), searchPlaceholderText) {
			return true
		}
		found = renderFirst(span.Parent().Find("input"))
		return found == ""
	})
	return found
}

var searchClassFragments = []string{"search", "query", "input-area"}

func inputBySearchClass(doc *goquery.Document) string {
	inputs := doc.Find("input").FilterFunction(func(_ int, input *goquery.Selection) bool {
		class := input.AttrOr("class", "")
		for _, fragment := range searchClassFragments {
			if strings.Contains(class, fragment) {
				return true
			}
		}
		return false
	})
	return renderFirst(inputs)
}

func inputBySearchRole(doc *goquery.Document) string {
	roles := doc.Find(`[role="search"], [role="searchbox"], [role="combobox"]`)

	found := ""
	roles.EachWithBreak(func(_ int, el *goquery.Selection) bool {
		if goquery.NodeName(el) == "input" {
			found = renderFirst(el)
			return false
		}
		found = renderFirst(el.Find("input"))
		return found == ""
	})
	return found
}

var searchContainerWords = []string{"search", "find", "lookup"}

func inputBySearchContainer(doc *goquery.Document) string {
	containers := doc.Find("div, section, form").FilterFunction(func(_ int, el *goquery.Selection) bool {
		text := strings.ToLower(el.Text())
		for _, word := range searchContainerWords {
			if strings.Contains(text, word) {
				return true
			}
		}
		return false
	})

	found := ""
	containers.EachWithBreak(func(_ int, el *goquery.Selection) bool {
		found = renderFirst(el.Find("input"))
		return found == ""
	})
	return found
}
