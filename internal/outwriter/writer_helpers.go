package outwriter

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/huangsam/thermolog/core/rules"
	"github.com/huangsam/thermolog/internal/contract"
	"github.com/huangsam/thermolog/schema"
)

// writeWithFile handles the common pattern of opening a file, writing to it, and cleaning up.
// It accepts a writer function that takes an io.Writer and returns an error.
func writeWithFile(outputFile string, writer func(io.Writer) error, successMsg string) error {
	file, err := contract.SelectOutputFile(outputFile)
	if err != nil {
		return err
	}
	// Only close if it's not stdout
	if file != os.Stdout {
		defer func() { _ = file.Close() }()
	}

	if err := writer(file); err != nil {
		return err
	}

	if file != os.Stdout {
		fmt.Fprintf(os.Stderr, "💾 %s to %s\n", successMsg, outputFile)
	}
	return nil
}

// writeJSON is a generic JSON encoder that handles indentation consistently.
func writeJSON(w io.Writer, data any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(data); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}

// writeCSVWithHeader handles the common pattern of creating a CSV writer,
// writing a header, and writing data rows.
func writeCSVWithHeader(w io.Writer, header []string, writeRows func(*csv.Writer) error) error {
	csvWriter := csv.NewWriter(w)
	defer csvWriter.Flush()

	if err := csvWriter.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	if err := writeRows(csvWriter); err != nil {
		return err
	}
	csvWriter.Flush()
	return csvWriter.Error()
}

// createFormatter returns the closure used to render nullable readings.
func createFormatter(precision int) func(*float64) string {
	return func(v *float64) string {
		return schema.FormatValue(v, precision, schema.MissingValueMarker)
	}
}

// recordOutOfRange reports whether the record's current value breaks limits.
func recordOutOfRange(r *schema.Record, limits schema.ZoneLimits) bool {
	return rules.OutOfRange(r.Current(), limits.For(r.Kind))
}

// rangeLabel renders the range flag, colored only for terminal tables.
func rangeLabel(outOfRange bool, cfg *contract.Config) string {
	if cfg.UseColors && !color.NoColor {
		return contract.GetColorLabel(outOfRange)
	}
	return contract.GetPlainLabel(outOfRange)
}

// statusLabel renders a submission status, colored only for terminal tables.
func statusLabel(status schema.SubmissionStatus, cfg *contract.Config) string {
	if cfg.UseColors && !color.NoColor {
		return contract.GetStatusLabel(status)
	}
	return string(status)
}

// formatRange renders an inclusive range with the given precision.
func formatRange(r schema.Range, precision int) string {
	return fmt.Sprintf("[%.*f, %.*f]", precision, r.Min, precision, r.Max)
}

// shiftCode is the one-letter shift marker used in compact columns.
func shiftCode(s schema.Shift) string {
	switch s {
	case schema.MorningShift:
		return "M"
	case schema.AfternoonShift:
		return "T"
	default:
		return schema.MissingValueMarker
	}
}
