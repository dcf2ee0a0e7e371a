package cmd

import (
	"github.com/huangsam/thermolog/core"
	"github.com/spf13/cobra"
)

// runExecutor adapts a core executor to Cobra's RunE.
func runExecutor(exec core.ExecutorFunc) func(*cobra.Command, []string) error {
	return func(_ *cobra.Command, _ []string) error {
		return exec(rootCtx, cfg, cacheManager)
	}
}

// reportCmd prints the statistics view of one zone and month.
var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Summarize a zone's readings for one month",
	Long: `Fetch the readings and summarize the selected zone, month and shift.

The report shows the zone's acceptable ranges, one chart point per day
(and shift, when all shifts are shown), the mean of each value and how
many current readings fall outside their range.

Examples:
  # Current month of the default zone
  thermolog report --endpoint https://script.google.com/macros/s/.../exec

  # Afternoon readings of the pharmacy in March 2024, as JSON
  thermolog report --zone FARMACIA --year 2024 --month marzo --shift tarde --output json`,
	PreRunE: sharedSetupWrapper,
	RunE:    runExecutor(core.ExecuteReport),
}

// recordsCmd lists the matching readings.
var recordsCmd = &cobra.Command{
	Use:   "records",
	Short: "List a zone's readings for one month, newest first",
	Long: `List every reading of the selected zone, month and shift, newest first.

Out-of-range current values are flagged in the Rango column.

Examples:
  thermolog records --zone OPTICA --month 3
  thermolog records --offline --output csv --output-file marzo.csv`,
	PreRunE: sharedSetupWrapper,
	RunE:    runExecutor(core.ExecuteRecords),
}

// exportCmd writes the spreadsheet export layout.
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export a zone's readings in the spreadsheet layout",
	Long: `Write the selected readings with the 13 export columns (Tipo, Fecha, Hora,
Area, Jornada, T.Min, T.Act, T.Max, H.Min, H.Act, H.Max, Resp, Obs).

The export is always CSV; use "records --output parquet" for columnar output.

Examples:
  thermolog export --zone OPTICA --month 3 --output-file registros.csv`,
	PreRunE: sharedSetupWrapper,
	RunE:    runExecutor(core.ExecuteExport),
}
