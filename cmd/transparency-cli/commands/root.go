package commands

import (
	"context"
	"fmt"
	"os"

	"adtransparency-backend/lib/telemetry"

	"github.com/go-resty/resty/v2"
	"github.com/spf13/cobra"
)

var baseUrl string
var verbose bool

var rootCmd = &cobra.Command{
	Use:   "transparency-cli",
	Short: "transparency-cli pokes at the ad transparency portal and the lookup server.",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		telemetry.InitSlog(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(
		&baseUrl, "base-url", "http://localhost:8000",
		"Base URL of a running transparency-server.",
	)
	rootCmd.PersistentFlags().BoolVarP(
		&verbose, "verbose", "v", false,
		"Enable verbose logging.",
	)
}

func serverClient() *resty.Client {
	return resty.New().SetBaseURL(baseUrl)
}

func ExecuteContext(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
