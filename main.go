// Thermolog records and reports temperature and humidity readings.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/huangsam/thermolog/cmd"
	"github.com/huangsam/thermolog/internal/contract"
	"github.com/huangsam/thermolog/internal/iocache"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	defer iocache.CloseCaching()

	if err := cmd.Execute(ctx); err != nil {
		iocache.CloseCaching()
		stop()
		contract.LogFatal("Error", err)
	}
}
