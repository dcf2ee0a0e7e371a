package cmd

import (
	"github.com/huangsam/thermolog/core"
	"github.com/huangsam/thermolog/schema"
	"github.com/spf13/cobra"
)

// checkCmd flags a typed value against its zone's range.
var checkCmd = &cobra.Command{
	Use:   "check <value>",
	Short: "Check a value against the zone's acceptable range",
	Long: `Tell whether a value is inside the selected zone's range before submitting it.

Decimal commas are accepted. Values that are not numbers are never flagged.

Examples:
  thermolog check --zone OPTICA 31
  thermolog check --zone "LABORATORIO - NEVERA" --kind humidity 72,5`,
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetupWrapper,
	RunE: func(cmd *cobra.Command, args []string) error {
		kind, _ := cmd.Flags().GetString("kind")
		return core.ExecuteCheck(cfg, cfg.Criteria.Zone, schema.ParseKind(kind), args[0])
	},
}
