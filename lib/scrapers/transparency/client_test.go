package transparency

import (
	"net/url"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestSummarizePage(t *testing.T) {
	base, err := url.Parse("https://adstransparency.google.com/advertiser/AR123")
	require.NoError(t, err)

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(`<html><head></head><body>
		<div>
			<img src="https://cdn.example.com/creative.png">
			<img src="/assets/logo.png">
			<img src="data:image/png;base64,AAAA">
			<img>
		</div>
	</body></html>`))
	require.NoError(t, err)

	summary := summarizePage(base, doc)

	expectedTags := []string{"body", "div", "head", "html", "img"}
	if diff := cmp.Diff(expectedTags, summary.Tags); diff != "" {
		t.Fatalf("unexpected tag inventory (-want +got):\n%s", diff)
	}

	expectedImages := []string{
		"https://cdn.example.com/creative.png",
		"https://adstransparency.google.com/assets/logo.png",
	}
	if diff := cmp.Diff(expectedImages, summary.ImageURLs); diff != "" {
		t.Fatalf("unexpected image urls (-want +got):\n%s", diff)
	}
}

func TestNewClient(t *testing.T) {
	client, err := NewClient()
	require.NoError(t, err)
	require.Equal(t, "adstransparency.google.com", client.BaseUrl.Hostname())
	require.NotNil(t, client.Http)
}
