package commands

import (
	"log"
	"os"

	scraper "adtransparency-backend/lib/scrapers/transparency"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var pageRegion string

func init() {
	pageCmd.Flags().StringVar(&pageRegion, "region", "US", "Region to scope the page to.")
	rootCmd.AddCommand(pageCmd)
}

var pageCmd = &cobra.Command{
	Use:   "page <advertiser id>",
	Short: "Fetches an advertiser page without a browser and inventories its markup.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		client, err := scraper.NewClient()
		if err != nil {
			log.Fatal(err)
		}
		summary, err := client.FetchAdvertiserPage(cmd.Context(), args[0], pageRegion)
		if err != nil {
			log.Fatal(err)
		}

		tags := table.NewWriter()
		tags.SetOutputMirror(os.Stdout)
		tags.AppendHeader(table.Row{"Tag"})
		for _, tag := range summary.Tags {
			tags.AppendRow(table.Row{tag})
		}
		tags.SetStyle(table.StyleRounded)
		tags.Render()

		images := table.NewWriter()
		images.SetOutputMirror(os.Stdout)
		images.AppendHeader(table.Row{"Image URL"})
		for _, u := range summary.ImageURLs {
			images.AppendRow(table.Row{u})
		}
		images.SetStyle(table.StyleRounded)
		images.Render()
	},
}
