package transparency

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestExtractIDFromURL(t *testing.T) {
	testCases := []struct {
		url      string
		expected string
	}{
		{
			url:      "https://adstransparency.google.com/advertiser/AR14017378248766259201?region=US",
			expected: "AR14017378248766259201",
		},
		{
			url:      "https://adstransparency.google.com/?result=AR123456789",
			expected: "AR123456789",
		},
		{
			url:      "https://adstransparency.google.com/search?id=XY12AB34",
			expected: "XY12AB34",
		},
		{
			url:      "https://adstransparency.google.com/search?region=US&id=XY12AB34",
			expected: "XY12AB34",
		},
		{
			url:      "https://adstransparency.google.com/",
			expected: "",
		},
	}

	for _, tc := range testCases {
		require.Equal(t, tc.expected, ExtractIDFromURL(tc.url), "url: %s", tc.url)
	}
}

func TestExtractIDFromContent(t *testing.T) {
	testCases := []struct {
		content  string
		expected string
	}{
		{
			content:  `<a href="/advertiser/AR98765">acme</a>`,
			expected: "AR98765",
		},
		{
			content:  `<div data-id="AR555000111">acme</div>`,
			expected: "AR555000111",
		},
		{
			content:  `<div>nothing to see</div>`,
			expected: "",
		},
	}

	for _, tc := range testCases {
		require.Equal(t, tc.expected, ExtractIDFromContent(tc.content))
	}
}

func TestBestCandidate(t *testing.T) {
	candidates := []Candidate{
		{Id: "AR111", Name: "Acme Holdings International"},
		{Id: "AR222", Name: "Acme"},
		{Id: "AR333", Name: "Completely Unrelated Corp"},
	}

	require.Equal(t, "AR222", bestCandidate("acme", candidates))
	require.Equal(t, "AR111", bestCandidate("acme holdings international", candidates))
}

func TestBestCandidateFallsBackToUnnamed(t *testing.T) {
	candidates := []Candidate{
		{Id: "", Name: "no id here"},
		{Id: "AR444"},
	}
	require.Equal(t, "AR444", bestCandidate("acme", candidates))

	require.Equal(t, "", bestCandidate("acme", nil))
}
