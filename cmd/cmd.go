// Package cmd defines the command-line interface for thermolog.
package cmd

import (
	"github.com/huangsam/thermolog/internal/contract"
	"github.com/huangsam/thermolog/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(recordsCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(submitCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(zonesCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(cacheCmd)
	rootCmd.AddCommand(submissionsCmd)
	rootCmd.AddCommand(mcpCmd)
	rootCmd.AddCommand(serveCmd)

	// Add the cache subcommands to the parent cache command
	cacheCmd.AddCommand(cacheClearCmd)
	cacheCmd.AddCommand(cacheStatusCmd)

	// Add the submissions subcommands to the parent submissions command
	submissionsCmd.AddCommand(submissionsStatusCmd)
	submissionsCmd.AddCommand(submissionsListCmd)
	submissionsCmd.AddCommand(submissionsResubmitCmd)
	submissionsCmd.AddCommand(submissionsMigrateCmd)
	submissionsCmd.AddCommand(submissionsClearCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().String("endpoint", "", "URL of the readings spreadsheet web app")
	rootCmd.PersistentFlags().String("timeout", contract.DefaultTimeout.String(), "Timeout of each request to the endpoint")
	rootCmd.PersistentFlags().Bool("offline", false, "Use the last saved snapshot instead of the endpoint")
	rootCmd.PersistentFlags().StringP("zone", "z", "", "Zone to report on or submit for")
	rootCmd.PersistentFlags().IntP("year", "y", 0, "Year to report on (0 = current year)")
	rootCmd.PersistentFlags().StringP("month", "m", "", "Month to report on: 1-12 or a month name (default current month)")
	rootCmd.PersistentFlags().StringP("shift", "s", "", "Shift: all or morning or afternoon (mañana/tarde)")
	rootCmd.PersistentFlags().String("output", string(schema.TextOut), "Output format: text or csv or json or parquet")
	rootCmd.PersistentFlags().String("output-file", "", "Optional path to write output to")
	rootCmd.PersistentFlags().Int("precision", contract.DefaultPrecision, "Decimal precision for numeric columns")
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored labels in output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().Int("width", 0, "Terminal width override (0 = auto-detect)")
	rootCmd.PersistentFlags().String("cache-backend", string(schema.SQLiteBackend), "Snapshot cache backend: sqlite or mysql or postgresql or none")
	rootCmd.PersistentFlags().String("cache-db-connect", "", "Database connection string for mysql/postgresql (e.g., user:pass@tcp(host:port)/dbname)")
	rootCmd.PersistentFlags().String("ledger-backend", string(schema.SQLiteBackend), "Submission ledger backend: sqlite or mysql or postgresql or none")
	rootCmd.PersistentFlags().String("ledger-db-connect", "", "Database connection string for the submission ledger (must differ from cache-db-connect)")
	rootCmd.PersistentFlags().String("confirm-timeout", contract.DefaultConfirmTimeout.String(), "How long to wait for a submission to show up in the spreadsheet")
	rootCmd.PersistentFlags().String("confirm-interval", contract.DefaultConfirmInterval.String(), "How often to look for a pending submission")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// Form flags are read directly from the command, not through Viper
	addFormFlags(submitCmd.Flags())

	checkCmd.Flags().StringP("kind", "k", string(schema.TemperatureKind), "Reading kind: temperature or humidity")

	submissionsListCmd.Flags().String("status", "", "Only list submissions in this status: pending or confirmed or stale or failed")
	submissionsListCmd.Flags().IntP("limit", "l", contract.DefaultListLimit, "Number of submissions to list")

	serveCmd.Flags().String("listen", contract.DefaultListen, "Address the HTTP API listens on")
	if err := viper.BindPFlags(serveCmd.Flags()); err != nil {
		contract.LogFatal("Error binding serve flags", err)
	}

	submissionsMigrateCmd.Flags().Int("target-version", -1, "Target migration version (-1 means latest, 0 means rollback to initial state)")
	if err := viper.BindPFlags(submissionsMigrateCmd.Flags()); err != nil {
		contract.LogFatal("Error binding submissions migrate flags", err)
	}
}
