package transparency

import (
	"regexp"
	"strings"

	"adtransparency-backend/lib/htmlutil"

	"github.com/antzucaro/matchr"
)

// BaseURL is the root of the ad transparency portal.
const BaseURL = "https://adstransparency.google.com/"

var (
	advertiserPathRegex = regexp.MustCompile(`advertiser/([A-Z0-9]+)`)
	advertiserIdRegex   = regexp.MustCompile(`AR\d+`)
	idParamRegex        = regexp.MustCompile(`[?&]id=([A-Z0-9]+)`)
)

// ExtractIDFromURL pulls an advertiser identifier out of a portal URL.
// It tries the /advertiser/<id> path segment first, then a bare AR<digits>
// token, then an id= query parameter. Returns "" when nothing matches.
func ExtractIDFromURL(url string) string {
	groups := advertiserPathRegex.FindStringSubmatch(url)
	if len(groups) >= 2 {
		return groups[1]
	}

	match := advertiserIdRegex.FindString(url)
	if match != "" {
		return match
	}

	groups = idParamRegex.FindStringSubmatch(url)
	if len(groups) >= 2 {
		return groups[1]
	}

	return ""
}

// ExtractIDFromContent scans a serialized DOM for the first advertiser
// identifier it can find.
func ExtractIDFromContent(content string) string {
	groups := advertiserPathRegex.FindStringSubmatch(content)
	if len(groups) >= 2 {
		return groups[1]
	}
	return advertiserIdRegex.FindString(content)
}

// Candidate is an advertiser identifier scraped from the page together
// with the display name it was found next to, when one exists.
type Candidate struct {
	Id   string `json:"id"`
	Name string `json:"name"`
}

// bestCandidate ranks candidates against the queried name by JaroWinkler
// similarity over their nearby display text. Candidates without display
// text only win when nothing named matches at all.
func bestCandidate(name string, candidates []Candidate) string {
	if len(candidates) == 0 {
		return ""
	}

	query := strings.ToLower(htmlutil.NormalizeText(name))

	best := ""
	var bestScore float64
	for _, c := range candidates {
		if c.Id == "" || c.Name == "" {
			continue
		}
		score := matchr.JaroWinkler(query, strings.ToLower(htmlutil.NormalizeText(c.Name)), false)
		if score > bestScore {
			bestScore = score
			best = c.Id
		}
	}
	if best != "" {
		return best
	}

	for _, c := range candidates {
		if c.Id != "" {
			return c.Id
		}
	}
	return ""
}
