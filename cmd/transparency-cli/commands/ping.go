package commands

import (
	"log"
	"os"

	"adtransparency-backend/services/transparency"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(pingCmd)
}

var pingCmd = &cobra.Command{
	Use:   "ping",
	Short: "Checks whether the lookup server is up.",
	Run: func(cmd *cobra.Command, args []string) {
		var body transparency.PingResponse
		res, err := serverClient().R().
			SetContext(cmd.Context()).
			SetResult(&body).
			Get("/ping")
		if err != nil {
			log.Fatal(err)
		}
		if res.IsError() {
			log.Fatalf("server returned %s", res.Status())
		}

		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.AppendHeader(table.Row{"Status", "Version", "Timestamp"})
		t.AppendRow(table.Row{body.Status, body.Version, body.Timestamp})
		t.SetStyle(table.StyleRounded)
		t.Render()
	},
}
