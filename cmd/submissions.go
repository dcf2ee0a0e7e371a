package cmd

import (
	"fmt"
	"strings"

	"github.com/huangsam/thermolog/core"
	"github.com/huangsam/thermolog/internal/contract"
	"github.com/huangsam/thermolog/internal/iocache"
	"github.com/huangsam/thermolog/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// ledgerConfig reads and validates the ledger backend settings.
func ledgerConfig() (schema.DatabaseBackend, string, error) {
	if err := loadConfigFile(); err != nil {
		return "", "", err
	}
	backend := schema.DatabaseBackend(strings.ToLower(viper.GetString("ledger-backend")))
	if backend == "" {
		backend = schema.NoneBackend
	}
	connStr := viper.GetString("ledger-db-connect")
	if err := contract.ValidateDatabaseConnectionString(backend, connStr); err != nil {
		return "", "", err
	}
	return backend, connStr, nil
}

// ledgerSetup loads minimal configuration needed for ledger operations.
func ledgerSetup(_ *cobra.Command, _ []string) error {
	backend, connStr, err := ledgerConfig()
	if err != nil {
		return err
	}
	if err := iocache.InitCaching("", "", backend, connStr); err != nil {
		return fmt.Errorf("failed to initialize submission ledger: %w", err)
	}
	cfg.LedgerBackend = backend
	cfg.LedgerDBConnect = connStr
	return nil
}

// ledgerMigrateSetup does NOT open the ledger, so migrations can run on a
// fresh database before any table exists.
func ledgerMigrateSetup(_ *cobra.Command, _ []string) error {
	backend, connStr, err := ledgerConfig()
	if err != nil {
		return err
	}
	if backend == schema.SQLiteBackend && connStr == "" {
		connStr = contract.GetLedgerDBFilePath()
	}
	cfg.LedgerBackend = backend
	cfg.LedgerDBConnect = connStr
	return nil
}

// submissionsCmd focused on the submission ledger.
var submissionsCmd = &cobra.Command{
	Use:   "submissions",
	Short: "Inspect and retry submitted readings",
	Long: `Manage the ledger of submitted readings.

Every submission is recorded with its status:
  pending   - posted, not yet seen in the spreadsheet
  confirmed - seen in a later read of the spreadsheet
  stale     - not seen before the confirmation window closed
  failed    - the post itself was rejected

Supported backends: SQLite (default), MySQL, PostgreSQL, or None (disabled)

Subcommands:
  status   - Show ledger statistics
  list     - List recorded submissions
  resubmit - Post a failed or stale submission again
  migrate  - Run database schema migrations
  clear    - Remove all recorded submissions`,
}

var submissionsStatusCmd = &cobra.Command{
	Use:     "status",
	Short:   "Display ledger statistics and connection details",
	PreRunE: ledgerSetup,
	Run: func(_ *cobra.Command, _ []string) {
		ledger := iocache.Manager.GetLedgerStore()
		if ledger == nil {
			contract.LogFatal("Failed to get ledger status", fmt.Errorf("submission ledger is not initialized"))
		}
		status, err := ledger.GetStatus()
		if err != nil {
			contract.LogFatal("Failed to get ledger status", err)
		}
		iocache.PrintLedgerStatus(status)
	},
}

var submissionsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recorded submissions, newest first",
	Long: `List the submissions in the ledger, newest first.

Examples:
  thermolog submissions list
  thermolog submissions list --status stale --limit 10 --output json`,
	PreRunE: sharedSetupWrapper,
	RunE: func(cmd *cobra.Command, _ []string) error {
		statusStr, _ := cmd.Flags().GetString("status")
		limit, _ := cmd.Flags().GetInt("limit")
		status := schema.SubmissionStatus(strings.ToLower(strings.TrimSpace(statusStr)))
		if _, ok := schema.ValidSubmissionStatuses[status]; status != "" && !ok {
			return fmt.Errorf("invalid status '%s'. must be pending, confirmed, stale, failed", statusStr)
		}
		return core.ExecuteSubmissionsList(cfg, cacheManager, status, limit)
	},
}

var submissionsResubmitCmd = &cobra.Command{
	Use:   "resubmit <id>",
	Short: "Post a failed or stale submission again",
	Long: `Post the reading of a failed or stale submission again under the same ID
and follow it through the confirmation window.

Stale submissions may already be in the spreadsheet; check with
"thermolog records" first to avoid a duplicate row.`,
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetupWrapper,
	RunE: func(_ *cobra.Command, args []string) error {
		return core.ExecuteResubmit(rootCtx, cfg, cacheManager, args[0])
	},
}

var submissionsMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run submission ledger schema migrations",
	Long: `Apply the embedded ledger migrations.

Examples:
  # Migrate to the latest version
  thermolog submissions migrate

  # Roll everything back
  thermolog submissions migrate --target-version 0`,
	PreRunE: ledgerMigrateSetup,
	Run: func(_ *cobra.Command, _ []string) {
		target := viper.GetInt("target-version")
		if err := iocache.MigrateLedger(cfg.LedgerBackend, cfg.LedgerDBConnect, target); err != nil {
			contract.LogFatal("Failed to migrate submission ledger", err)
		}
		fmt.Println("Submission ledger migrated successfully.")
	},
}

var submissionsClearCmd = &cobra.Command{
	Use:     "clear",
	Short:   "Remove all recorded submissions",
	PreRunE: ledgerMigrateSetup,
	Run: func(_ *cobra.Command, _ []string) {
		if err := iocache.ClearLedger(cfg.LedgerBackend, cfg.LedgerDBConnect, cfg.LedgerDBConnect); err != nil {
			contract.LogFatal("Failed to clear submission ledger", err)
		}
		fmt.Println("Submission ledger cleared successfully.")
	},
}
