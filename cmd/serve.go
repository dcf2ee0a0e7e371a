package cmd

import (
	"log/slog"
	"os"

	"github.com/huangsam/thermolog/internal/api"
	"github.com/spf13/cobra"
)

// serveCmd runs the read-only HTTP API.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve reports and records over HTTP",
	Long: `Start an HTTP server exposing the readings.

Routes:
  GET /healthz     liveness probe
  GET /report      statistics of a zone and month (zone, year, month, shift)
  GET /records     matching readings, newest first (also limit)
  GET /export.csv  the spreadsheet export layout
  GET /check       range check of one value (zone, kind, value)
  GET /zones       selector values and the zone limit table
  GET /metrics     Prometheus metrics

Examples:
  thermolog serve --listen :9090 --endpoint https://script.google.com/macros/s/.../exec`,
	PreRunE: sharedSetupWrapper,
	RunE: func(_ *cobra.Command, _ []string) error {
		logger := slog.New(slog.NewJSONHandler(os.Stderr, nil))
		return api.ListenAndServe(rootCtx, cfg, cacheManager, logger)
	},
}
