package outwriter

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/huangsam/thermolog/internal/contract"
	"github.com/huangsam/thermolog/internal/parquet"
	"github.com/huangsam/thermolog/schema"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// ExportHeader is the column layout of the spreadsheet export.
var ExportHeader = []string{
	"Tipo", "Fecha", "Hora", "Area", "Jornada",
	"T.Min", "T.Act", "T.Max", "H.Min", "H.Act", "H.Max",
	"Resp", "Obs",
}

// PrintRecords outputs readings, dispatching based on the output format configured.
func PrintRecords(records []schema.Record, limits schema.ZoneLimits, cfg *contract.Config, duration time.Duration) error {
	fmtValue := createFormatter(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		if err := printJSONResultsForRecords(records, limits, cfg); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := PrintExport(records, cfg); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.ParquetOut:
		rows := parquet.ConvertRecords(records, func(r *schema.Record) bool {
			return recordOutOfRange(r, limits)
		}, time.Now())
		if err := parquet.WriteReadingsParquet(rows, cfg.OutputFile); err != nil {
			return fmt.Errorf("error writing Parquet output: %w", err)
		}
		fmt.Fprintf(os.Stderr, "💾 Wrote %d readings to %s\n", len(rows), cfg.OutputFile)
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeRecordsTable(w, records, limits, cfg, fmtValue, duration)
		}, "Wrote table")
	}
	return nil
}

// PrintExport writes readings in the spreadsheet export layout.
func PrintExport(records []schema.Record, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return WriteExportCSV(w, records)
	}, "Wrote CSV export")
}

// WriteExportCSV writes the 13-column export. Absent values render as "-"
// and notes are always wrapped in double quotes.
func WriteExportCSV(w io.Writer, records []schema.Record) error {
	if _, err := io.WriteString(w, strings.Join(ExportHeader, ",")+"\n"); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for i := range records {
		if _, err := io.WriteString(w, exportLine(&records[i])+"\n"); err != nil {
			return err
		}
	}
	return nil
}

// exportLine renders one record as an export row.
func exportLine(r *schema.Record) string {
	value := func(v *float64) string {
		return schema.FormatValue(v, -1, schema.MissingValueMarker)
	}
	fields := []string{
		schema.KindLabel(r.Kind),
		exportField(r.Date),
		exportField(orMissing(r.Time)),
		exportField(r.Zone),
		schema.ShiftLabel(r.Shift),
		value(r.TempMin), value(r.TempCurrent), value(r.TempMax),
		value(r.HumMin), value(r.HumCurrent), value(r.HumMax),
		exportField(r.RecordedBy),
		quote(r.Notes),
	}
	return strings.Join(fields, ",")
}

// exportField quotes a free-text field only when it would break the row.
func exportField(s string) string {
	if strings.ContainsAny(s, ",\"\r\n") {
		return quote(s)
	}
	return s
}

// orMissing returns the missing marker for a blank field.
func orMissing(s string) string {
	if strings.TrimSpace(s) == "" {
		return schema.MissingValueMarker
	}
	return s
}

func quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

// printJSONResultsForRecords handles opening the file and calling the JSON writer.
func printJSONResultsForRecords(records []schema.Record, limits schema.ZoneLimits, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeJSONResultsForRecords(w, records, limits)
	}, "Wrote JSON")
}

// writeJSONResultsForRecords writes readings with their range label added.
func writeJSONResultsForRecords(w io.Writer, records []schema.Record, limits schema.ZoneLimits) error {
	type JSONRecord struct {
		Label string `json:"label"`
		schema.Record
	}

	output := make([]JSONRecord, len(records))
	for i := range records {
		output[i] = JSONRecord{
			Label:  contract.GetPlainLabel(recordOutOfRange(&records[i], limits)),
			Record: records[i],
		}
	}
	return writeJSON(w, output)
}

// writeRecordsTable renders the history view, newest first.
func writeRecordsTable(w io.Writer, records []schema.Record, limits schema.ZoneLimits, cfg *contract.Config, fmtValue func(*float64) string, duration time.Duration) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"#", "Fecha", "Hora", "Jornada", "Tipo", "Min", "Actual", "Max", "Rango", "Resp", "Obs"})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	textWidth := getMaxTableTextWidth(cfg)
	var data [][]string
	outOfRange := 0
	for i := range records {
		r := &records[i]
		var minimum, current, maximum *float64
		if r.Kind == schema.HumidityKind {
			minimum, current, maximum = r.HumMin, r.HumCurrent, r.HumMax
		} else {
			minimum, current, maximum = r.TempMin, r.TempCurrent, r.TempMax
		}
		flagged := recordOutOfRange(r, limits)
		if flagged {
			outOfRange++
		}
		data = append(data, []string{
			strconv.Itoa(i + 1),
			r.Date,
			r.Time,
			shiftCode(r.Shift),
			schema.KindLabel(r.Kind),
			fmtValue(minimum),
			fmtValue(current),
			fmtValue(maximum),
			rangeLabel(flagged, cfg),
			contract.TruncateText(r.RecordedBy, textWidth),
			contract.TruncateText(r.Notes, textWidth),
		})
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Showing %d readings (%d out of range)\n", len(records), outOfRange); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Loaded in %v. Cache backend: %s\n", duration, cfg.CacheBackend); err != nil {
		return err
	}
	return nil
}
