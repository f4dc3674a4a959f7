package main

import (
	"context"

	"adtransparency-backend/cmd/transparency-cli/commands"
	"adtransparency-backend/lib/telemetry"
)

func main() {
	telemetry.SetupFromEnv(context.Background(), "transparency-cli")
	commands.ExecuteContext(context.Background())
}
