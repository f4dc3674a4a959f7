package commands

import (
	scraper "adtransparency-backend/lib/scrapers/transparency"

	"github.com/spf13/cobra"
)

var headful bool
var screenshotDir string
var devtoolsUrl string
var region string

// addBrowserFlags registers the flags shared by every command that
// drives a live browser session instead of talking to the server.
func addBrowserFlags(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&headful, "headful", false, "Run the browser with a visible window.")
	cmd.Flags().StringVar(&screenshotDir, "screenshots", "", "Dump per-stage screenshots into this directory.")
	cmd.Flags().StringVar(&devtoolsUrl, "devtools", "", "Attach to a running browser over the devtools protocol.")
	cmd.Flags().StringVar(&region, "region", "US", "Region to scope portal queries to.")
}

func newBrowser() *scraper.Browser {
	return scraper.NewBrowser(scraper.BrowserOptions{
		Headful:       headful,
		ScreenshotDir: screenshotDir,
		DevtoolsURL:   devtoolsUrl,
	})
}
