package commands

import (
	"fmt"
	"os"
	"os/exec"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(doctorCmd)
}

// chromedp probes a similar list when launching, checking them here
// gives a faster answer than waiting for a scrape to fail.
var chromeCandidates = []string{
	"google-chrome",
	"google-chrome-stable",
	"chromium",
	"chromium-browser",
	"headless-shell",
	"headless_shell",
	"/Applications/Google Chrome.app/Contents/MacOS/Google Chrome",
}

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Checks that a browser the scraper can drive is installed.",
	Run: func(cmd *cobra.Command, args []string) {
		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.AppendHeader(table.Row{"Binary", "Path"})

		found := false
		for _, candidate := range chromeCandidates {
			path, err := exec.LookPath(candidate)
			if err != nil {
				t.AppendRow(table.Row{candidate, "not found"})
				continue
			}
			found = true
			t.AppendRow(table.Row{candidate, path})
		}
		t.SetStyle(table.StyleRounded)
		t.Render()

		if !found {
			fmt.Fprintln(os.Stderr, "no usable browser found, install Chrome or Chromium")
			os.Exit(1)
		}
	},
}
