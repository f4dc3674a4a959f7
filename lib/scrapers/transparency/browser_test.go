package transparency

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/url"
	"testing"
	"time"

	"adtransparency-backend/lib/telemetry"

	"github.com/chromedp/chromedp"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// spins up a disposable headless chrome and points a Browser at its
// devtools socket
func setupRemoteBrowser(t *testing.T) *Browser {
	testcontainers.Logger = log.New(io.Discard, "", 0)

	ctx := context.Background()
	chrome, err := testcontainers.GenericContainer(
		ctx,
		testcontainers.GenericContainerRequest{
			Started: true,
			ContainerRequest: testcontainers.ContainerRequest{
				Image:        "chromedp/headless-shell:stable",
				ExposedPorts: []string{"9222/tcp"},
				WaitingFor:   wait.ForListeningPort("9222/tcp").WithStartupTimeout(time.Minute),
			},
		},
	)
	if err != nil {
		t.Skipf("could not start headless-shell container: %s", err)
	}
	t.Cleanup(func() {
		_ = chrome.Terminate(context.Background())
	})

	host, err := chrome.Host(ctx)
	require.NoError(t, err)
	port, err := chrome.MappedPort(ctx, "9222")
	require.NoError(t, err)

	return NewBrowser(BrowserOptions{
		DevtoolsURL: fmt.Sprintf("ws://%s:%s", host, port.Port()),
	})
}

func TestExtractFromContentInBrowser(t *testing.T) {
	cleanup := telemetry.SetupForTesting(t, "test:transparency")
	defer cleanup()

	b := setupRemoteBrowser(t)

	sctx, cancel := b.newSession(context.Background())
	defer cancel()

	page := `<html><body>
		<div class="result-row">
			<span>Acme Corp</span>
			<a href="/advertiser/AR12345678">view ads</a>
		</div>
	</body></html>`
	err := b.navigate(sctx, "data:text/html,"+url.PathEscape(page))
	require.NoError(t, err)

	id, err := b.extractFromContent(sctx, "acme corp")
	require.NoError(t, err)
	require.Equal(t, "AR12345678", id)
}

func TestVideoCountScriptInBrowser(t *testing.T) {
	cleanup := telemetry.SetupForTesting(t, "test:transparency")
	defer cleanup()

	b := setupRemoteBrowser(t)

	sctx, cancel := b.newSession(context.Background())
	defer cancel()

	testCases := []struct {
		name     string
		page     string
		expected int
	}{
		{
			name: "video containers",
			page: `<html><body>
				<div class="video-container"></div>
				<div class="video-container"></div>
			</body></html>`,
			expected: 2,
		},
		{
			name:     "explicit empty state",
			page:     `<html><body><p>No ads to show</p></body></html>`,
			expected: 0,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := b.navigate(sctx, "data:text/html,"+url.PathEscape(tc.page))
			require.NoError(t, err)

			var count int
			err = chromedp.Run(sctx, chromedp.Evaluate(videoCountScript, &count))
			require.NoError(t, err)
			require.Equal(t, tc.expected, count)
		})
	}
}
