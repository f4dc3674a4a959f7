package main

import (
	"context"
	"log/slog"
	"os"

	"adtransparency-backend/lib/restyutil"
	scraper "adtransparency-backend/lib/scrapers/transparency"
	"adtransparency-backend/lib/serviceutil"
	"adtransparency-backend/lib/telemetry"
)

func InitTelemetry(ctx context.Context, verbose bool) {
	telemetry.InitSlog(verbose)

	t, err := telemetry.SetupFromEnv(ctx, "transparency-server")
	if os.IsNotExist(err) {
		slog.WarnContext(ctx, "no telemetry.json5 found, traces and metrics are disabled")
	} else if err != nil {
		serviceutil.Fatal("setup telemetry", err)
	} else {
		go func() {
			<-ctx.Done()
			t.Shutdown(context.Background())
		}()
		telemetry.InstrumentPerfStats(ctx)
	}

	if !verbose {
		return
	}
	scraper.SetRestyInstrumentOutput(
		restyutil.NewFilesystemOutput(".dev/resty/transparency"),
	)
}
