package commands

import (
	"log"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func init() {
	addBrowserFlags(videosCmd)
	rootCmd.AddCommand(videosCmd)
}

var videosCmd = &cobra.Command{
	Use:   "videos <advertiser id>",
	Short: "Counts video ads for an advertiser ID with a live browser session.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		stats, err := newBrowser().CountVideos(cmd.Context(), args[0], region)
		if err != nil {
			log.Fatal(err)
		}

		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.AppendHeader(table.Row{"Advertiser ID", "Has videos", "Video count"})
		t.AppendRow(table.Row{args[0], stats.HasVideos, stats.Count})
		t.SetStyle(table.StyleRounded)
		t.Render()
	},
}
