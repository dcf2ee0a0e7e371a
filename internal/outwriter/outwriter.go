// Package outwriter has output and writer logic.
package outwriter

import (
	"os"
	"time"

	"github.com/huangsam/thermolog/internal/contract"
	"github.com/huangsam/thermolog/schema"
	"golang.org/x/term"
)

// OutWriter provides a unified interface for all output operations.
// It encapsulates the various output formats and provides a clean API for the core logic.
type OutWriter struct{}

// NewOutWriter creates a new instance of the output writer.
func NewOutWriter() *OutWriter {
	return &OutWriter{}
}

// WriteReport prints the statistics report using the configured output format.
func (ow *OutWriter) WriteReport(report schema.Report, cfg *contract.Config, duration time.Duration) error {
	return PrintReport(report, cfg, duration)
}

// WriteRecords prints readings using the configured output format.
func (ow *OutWriter) WriteRecords(records []schema.Record, limits schema.ZoneLimits, cfg *contract.Config, duration time.Duration) error {
	return PrintRecords(records, limits, cfg, duration)
}

// WriteExport writes readings in the spreadsheet export layout.
func (ow *OutWriter) WriteExport(records []schema.Record, cfg *contract.Config) error {
	return PrintExport(records, cfg)
}

// WriteSubmissions prints submissions using the configured output format.
func (ow *OutWriter) WriteSubmissions(subs []schema.Submission, cfg *contract.Config) error {
	return PrintSubmissions(subs, cfg)
}

// WriteCheck prints the feedback for one typed value.
func (ow *OutWriter) WriteCheck(check schema.RangeCheck, cfg *contract.Config) error {
	return PrintCheck(check, cfg)
}

// WriteZones prints the zone limit table and the other enumerations.
func (ow *OutWriter) WriteZones(entries []schema.ZoneLimitEntry, years []int, cfg *contract.Config) error {
	return PrintZones(entries, years, cfg)
}

// getMaxTableTextWidth calculates the maximum width for free-text columns
// (zone, operator, notes) based on terminal width.
func getMaxTableTextWidth(cfg *contract.Config) int {
	var termWidth int

	// Check for absolute width override from flag/env
	if cfg.Width > 0 {
		termWidth = cfg.Width
	}

	if termWidth == 0 { // Not set by override
		detectedWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
		if err != nil || detectedWidth <= 0 {
			termWidth = 80 // Conservative default for narrow terminals and CI
		} else {
			termWidth = detectedWidth
		}
	}

	// Date, time, shift, kind, value and range columns with borders/padding
	available := (termWidth - 70) / 2
	if available < 10 {
		return 10
	}
	if available > 40 {
		return 40
	}
	return available
}
