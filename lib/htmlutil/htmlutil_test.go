package htmlutil

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
)

func TestGetText(t *testing.T) {
	node, err := html.Parse(strings.NewReader(
		`<div><span>Acme</span> <b>Corp</b></div>`,
	))
	require.NoError(t, err)

	require.Equal(t, "Acme Corp", GetText(node))
}

func TestNormalizeText(t *testing.T) {
	testCases := []struct {
		input    string
		expected string
	}{
		{"  Acme   Corp \n", "Acme Corp"},
		{"Acme​Corp", "AcmeCorp"},
		{"plain", "plain"},
	}

	for _, tc := range testCases {
		require.Equal(t, tc.expected, NormalizeText(tc.input))
	}
}
