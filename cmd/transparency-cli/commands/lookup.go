package commands

import (
	"fmt"
	"log"
	"os"

	"adtransparency-backend/services/transparency"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(lookupCmd)
}

var lookupCmd = &cobra.Command{
	Use:   "lookup <advertiser name>",
	Short: "Resolves an advertiser name to its portal ID through the lookup server.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		var body transparency.AdvertiserResponse
		var apiErr transparency.ErrorResponse
		res, err := serverClient().R().
			SetContext(cmd.Context()).
			SetBody(transparency.AdvertiserRequest{AdvertiserName: args[0]}).
			SetResult(&body).
			SetError(&apiErr).
			Post("/scrape")
		if err != nil {
			log.Fatal(err)
		}
		if res.IsError() {
			if apiErr.Detail != "" {
				log.Fatalf("%s: %s", res.Status(), apiErr.Detail)
			}
			log.Fatalf("server returned %s", res.Status())
		}

		videoCount := "unknown"
		if body.VideoCount != nil {
			videoCount = fmt.Sprint(*body.VideoCount)
		}

		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.AppendHeader(table.Row{"Advertiser", "Google ID", "Has videos", "Video count"})
		t.AppendRow(table.Row{args[0], body.AdvertiserGoogleID, body.HasVideos, videoCount})
		t.SetStyle(table.StyleRounded)
		t.Render()
	},
}
