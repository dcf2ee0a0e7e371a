// Package core ties the reading pipeline together: it fetches, reduces and
// renders readings, and runs the submission protocol.
package core

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/huangsam/thermolog/core/rules"
	"github.com/huangsam/thermolog/internal/contract"
	"github.com/huangsam/thermolog/internal/outwriter"
	"github.com/huangsam/thermolog/internal/remote"
	"github.com/huangsam/thermolog/schema"
)

// recentYearCount is how many years the year selector offers.
const recentYearCount = 5

// ExecutorFunc defines the function signature for the commands that read the dataset.
type ExecutorFunc func(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) error

// limitTable builds the zone limit table from the configured overrides.
func limitTable(cfg *contract.Config) *rules.Table {
	return rules.NewTable(cfg.Limits)
}

// NewRecordStore returns the remote store for cfg, or ErrNoEndpoint when none is set.
func NewRecordStore(cfg *contract.Config) (contract.RecordStore, error) {
	if cfg.Endpoint == "" {
		return nil, schema.ErrNoEndpoint
	}
	return remote.NewClient(cfg.Endpoint, cfg.Timeout, nil), nil
}

// BuildReport fetches the dataset and derives the report for cfg's criteria.
func BuildReport(ctx context.Context, cfg *contract.Config, store contract.RecordStore, mgr contract.CacheManager) schema.Report {
	return View(loadState(ctx, cfg, store, mgr), time.Now())
}

// LoadRecords fetches the dataset and returns the records matching cfg's
// criteria, newest first.
func LoadRecords(ctx context.Context, cfg *contract.Config, store contract.RecordStore, mgr contract.CacheManager) []schema.Record {
	return loadState(ctx, cfg, store, mgr).Filtered()
}

// ExecuteReport prints the statistics report for the configured zone, month and shift.
func ExecuteReport(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) error {
	start := time.Now()
	store, err := NewRecordStore(cfg)
	if err != nil {
		return err
	}
	report := BuildReport(ctx, cfg, store, mgr)
	return outwriter.NewOutWriter().WriteReport(report, cfg, time.Since(start))
}

// ExecuteRecords prints the filtered readings, newest first.
func ExecuteRecords(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) error {
	start := time.Now()
	store, err := NewRecordStore(cfg)
	if err != nil {
		return err
	}
	records := LoadRecords(ctx, cfg, store, mgr)
	limits := limitTable(cfg).Resolve(cfg.Criteria.Zone)
	return outwriter.NewOutWriter().WriteRecords(records, limits, cfg, time.Since(start))
}

// ExecuteExport writes the filtered readings in the spreadsheet export layout.
func ExecuteExport(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) error {
	store, err := NewRecordStore(cfg)
	if err != nil {
		return err
	}
	records := LoadRecords(ctx, cfg, store, mgr)
	return outwriter.NewOutWriter().WriteExport(records, cfg)
}

// ExecuteSubmit posts one reading and follows it until it is confirmed,
// goes stale or fails.
func ExecuteSubmit(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager, form schema.Form) error {
	store, err := NewRecordStore(cfg)
	if err != nil {
		return err
	}
	if check := limitTable(cfg).Check(form.Zone, form.Kind, form.Current); check.OutOfRange {
		fmt.Fprintf(os.Stderr, "⚠️  %s is outside %s for %s\n", check.Input, formatRange(check.Range), check.Zone)
	}

	submitter := NewSubmitter(store, ledgerStore(mgr), cfg.ConfirmTimeout, cfg.ConfirmInterval)
	sub, err := submitter.Submit(ctx, form, logSubmission)
	if sub.ID == "" {
		return err
	}
	if printErr := outwriter.NewOutWriter().WriteSubmissions([]schema.Submission{sub}, cfg); printErr != nil {
		contract.LogWarn("Cannot print submission", printErr)
	}
	return err
}

// ExecuteResubmit posts a failed or stale submission again.
func ExecuteResubmit(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager, id string) error {
	store, err := NewRecordStore(cfg)
	if err != nil {
		return err
	}
	submitter := NewSubmitter(store, ledgerStore(mgr), cfg.ConfirmTimeout, cfg.ConfirmInterval)
	sub, err := submitter.Resubmit(ctx, id, logSubmission)
	if sub.ID == "" {
		return err
	}
	if printErr := outwriter.NewOutWriter().WriteSubmissions([]schema.Submission{sub}, cfg); printErr != nil {
		contract.LogWarn("Cannot print submission", printErr)
	}
	return err
}

// ExecuteSubmissionsList prints the ledger, newest first.
func ExecuteSubmissionsList(cfg *contract.Config, mgr contract.CacheManager, status schema.SubmissionStatus, limit int) error {
	ledger := ledgerStore(mgr)
	if ledger == nil {
		return fmt.Errorf("submission ledger is not initialized")
	}
	subs, err := ledger.List(status, limit)
	if err != nil {
		return err
	}
	return outwriter.NewOutWriter().WriteSubmissions(subs, cfg)
}

// CheckValue evaluates a typed value against its zone's range.
func CheckValue(cfg *contract.Config, zone string, kind schema.Kind, input string) schema.RangeCheck {
	return limitTable(cfg).Check(zone, kind, input)
}

// BuildCatalog returns the selector values and limit table for cfg.
func BuildCatalog(cfg *contract.Config, now time.Time) schema.Catalog {
	return schema.Catalog{
		Zones:  schema.Zones,
		Shifts: schema.Shifts,
		Months: schema.MonthNames,
		Years:  schema.RecentYears(now.Year(), recentYearCount),
		Limits: limitTable(cfg).Entries(),
	}
}

// ExecuteCheck prints whether a typed value is inside its zone's range.
func ExecuteCheck(cfg *contract.Config, zone string, kind schema.Kind, input string) error {
	check := CheckValue(cfg, zone, kind, input)
	return outwriter.NewOutWriter().WriteCheck(check, cfg)
}

// ExecuteZones prints the limit table and the zone, shift, month and year lists.
func ExecuteZones(cfg *contract.Config, now time.Time) error {
	years := schema.RecentYears(now.Year(), recentYearCount)
	return outwriter.NewOutWriter().WriteZones(limitTable(cfg).Entries(), years, cfg)
}

// logSubmission prints each protocol step on stderr.
func logSubmission(sub schema.Submission) {
	switch sub.Status {
	case schema.PendingStatus:
		fmt.Fprintf(os.Stderr, "📤 Submitted %s, waiting for confirmation\n", sub.ID)
	case schema.ConfirmedStatus:
		fmt.Fprintf(os.Stderr, "✅ %s confirmed\n", sub.ID)
	case schema.StaleStatus:
		fmt.Fprintf(os.Stderr, "⏳ %s not seen before the confirmation window closed\n", sub.ID)
	case schema.FailedStatus:
		fmt.Fprintf(os.Stderr, "❌ %s failed: %s\n", sub.ID, sub.LastError)
	}
}

func formatRange(r schema.Range) string {
	return fmt.Sprintf("[%g, %g]", r.Min, r.Max)
}
