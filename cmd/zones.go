package cmd

import (
	"time"

	"github.com/huangsam/thermolog/core"
	"github.com/spf13/cobra"
)

// zonesCmd prints what the selectors accept.
var zonesCmd = &cobra.Command{
	Use:   "zones",
	Short: "List zones, shifts, months, years and the zone limit table",
	Long: `Print the acceptable ranges of every configured zone, followed by the
zones, shifts, months and years that can be selected.

Zone limits can be overridden in .thermolog.yaml:

  limits:
    - zone: FARMACIA
      temperature: {min: 15, max: 25}
    - zone: default
      humidity: {min: 30, max: 65}`,
	PreRunE: sharedSetupWrapper,
	RunE: func(_ *cobra.Command, _ []string) error {
		return core.ExecuteZones(cfg, time.Now())
	},
}
