package commands

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"
)

var searchboxDump string

func init() {
	addBrowserFlags(searchboxCmd)
	searchboxCmd.Flags().StringVar(
		&searchboxDump, "dump", "",
		"Write the full page DOM to this file for offline inspection.",
	)
	rootCmd.AddCommand(searchboxCmd)
}

var searchboxCmd = &cobra.Command{
	Use:   "searchbox",
	Short: "Probes the portal landing page for its search input element.",
	Long: "Probes the portal landing page for its search input element. " +
		"Useful when a portal redesign breaks the search heuristics and the " +
		"selectors need updating.",
	Run: func(cmd *cobra.Command, args []string) {
		probe, err := newBrowser().ProbeSearchInput(cmd.Context())
		if err != nil {
			log.Fatal(err)
		}

		if probe.SearchInput == "" {
			fmt.Println("no search input found")
		} else {
			fmt.Println(probe.SearchInput)
		}

		if searchboxDump != "" {
			err := os.WriteFile(searchboxDump, []byte(probe.DOM), 0644)
			if err != nil {
				log.Fatal(err)
			}
			fmt.Fprintf(os.Stderr, "wrote %d bytes of DOM to %s\n", len(probe.DOM), searchboxDump)
		}
	},
}
