package main

import (
	"context"
	"os"
	"time"

	"github.com/haoyu-chen-me/seawolf-dine/cmd/seawolf-dine/commands"
	"github.com/haoyu-chen-me/seawolf-dine/internal/components/serviceutil"
	"github.com/haoyu-chen-me/seawolf-dine/internal/components/telemetry"
)

func main() {
	ctx := serviceutil.SignalContext(context.Background())

	otel, err := telemetry.SetupFromEnv(ctx, "seawolf-dine")
	if err != nil {
		serviceutil.Fatal("setup telemetry", err)
	}

	err = commands.ExecuteContext(ctx)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	shutdownErr := otel.Shutdown(shutdownCtx)
	cancel()
	if shutdownErr != nil {
		serviceutil.Fatal("shutdown telemetry", shutdownErr)
	}
	if err != nil {
		os.Exit(1)
	}
}
