package cmd

import (
	"strings"
	"time"

	"github.com/huangsam/thermolog/core"
	"github.com/huangsam/thermolog/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// addFormFlags declares the per-reading flags of submit.
func addFormFlags(flags *pflag.FlagSet) {
	flags.StringP("kind", "k", string(schema.TemperatureKind), "Reading kind: temperature or humidity")
	flags.StringP("date", "d", "", "Reading date as YYYY-MM-DD (default today)")
	flags.String("time", "", "Reading time as HH:MM")
	flags.String("by", "", "Operator who took the reading")
	flags.String("notes", "", "Free-text observations")
	flags.String("min", "", "Minimum value shown by the device")
	flags.String("current", "", "Current value shown by the device")
	flags.String("max", "", "Maximum value shown by the device")
}

// formFromFlags builds the submission form from the submit flags plus the
// global zone and shift. The date defaults to now's day and the shift to
// the morning.
func formFromFlags(flags *pflag.FlagSet, zone, shift string, now time.Time) schema.Form {
	get := func(name string) string {
		v, _ := flags.GetString(name)
		return v
	}
	form := schema.Form{
		Kind:       schema.ParseKind(get("kind")),
		Date:       get("date"),
		Time:       get("time"),
		Shift:      schema.ParseShift(shift),
		Zone:       zone,
		RecordedBy: get("by"),
		Notes:      get("notes"),
		Min:        get("min"),
		Current:    get("current"),
		Max:        get("max"),
	}
	if strings.TrimSpace(shift) == "" {
		form.Shift = schema.MorningShift
	}
	if form.Date == "" {
		form.Date = now.Format("2006-01-02")
	}
	return form
}

// submitCmd posts one reading.
var submitCmd = &cobra.Command{
	Use:   "submit",
	Short: "Submit a reading and wait for it to show up",
	Long: `Post one temperature or humidity reading to the spreadsheet.

The endpoint does not answer with the stored row, so thermolog keeps the
submission pending and re-reads the spreadsheet until the reading appears
(confirmed) or --confirm-timeout elapses (stale). A rejected post is failed.
Every step is recorded in the submission ledger.

Without --shift the reading is filed under the morning shift; "all" is
rejected since a reading belongs to one shift. Only the values of the
selected kind are sent. A current value outside the
zone's range is reported before posting but does not block it.

Examples:
  thermolog submit --zone OPTICA --shift morning --by Ana --current 24,5
  thermolog submit -z FARMACIA -s tarde -k humidity --by Luis --min 40 --current 52 --max 60`,
	PreRunE: sharedSetupWrapper,
	RunE: func(cmd *cobra.Command, _ []string) error {
		form := formFromFlags(cmd.Flags(), viper.GetString("zone"), viper.GetString("shift"), time.Now())
		return core.ExecuteSubmit(rootCtx, cfg, cacheManager, form)
	},
}
