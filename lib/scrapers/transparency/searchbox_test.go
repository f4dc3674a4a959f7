package transparency

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"
)

func parseDoc(t *testing.T, html string) *goquery.Document {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)
	return doc
}

func TestFindSearchInputByPlaceholderSpan(t *testing.T) {
	doc := parseDoc(t, `<html><body>
		<input name="decoy">
		<div>
			<span>Search by advertiser or website name</span>
			<input class="input input-area" aria-label="portal search">
		</div>
	</body></html>`)

	html := findSearchInput(doc)
	require.Contains(t, html, "input-area")
	require.NotContains(t, html, "decoy")
}

func TestFindSearchInputByClass(t *testing.T) {
	doc := parseDoc(t, `<html><body>
		<input name="csrf" type="hidden">
		<input class="query-box" name="q">
	</body></html>`)

	require.Contains(t, findSearchInput(doc), "query-box")
}

func TestFindSearchInputByRole(t *testing.T) {
	doc := parseDoc(t, `<html><body>
		<div role="combobox">
			<input name="advertiser">
		</div>
	</body></html>`)

	require.Contains(t, findSearchInput(doc), "advertiser")
}

func TestFindSearchInputByContainerText(t *testing.T) {
	doc := parseDoc(t, `<html><body>
		<form>
			<label>Find an advertiser</label>
			<input name="term">
		</form>
	</body></html>`)

	require.Contains(t, findSearchInput(doc), "term")
}

func TestFindSearchInputNothingMatches(t *testing.T) {
	doc := parseDoc(t, `<html><body><p>static page</p></body></html>`)
	require.Equal(t, "", findSearchInput(doc))
}
