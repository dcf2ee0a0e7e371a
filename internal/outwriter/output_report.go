package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/huangsam/thermolog/internal/contract"
	"github.com/huangsam/thermolog/internal/parquet"
	"github.com/huangsam/thermolog/schema"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// seriesHeader is shared by the CSV series output and the text table.
var seriesHeader = []string{"label", "date", "shift", "temp_min", "temp_current", "temp_max", "hum_min", "hum_current", "hum_max"}

// PrintReport outputs the statistics report, dispatching based on the output format configured.
func PrintReport(report schema.Report, cfg *contract.Config, duration time.Duration) error {
	fmtValue := createFormatter(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, report)
		}, "Wrote JSON report"); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCSVWithHeader(w, seriesHeader, func(cw *csv.Writer) error {
				return writeCSVResultsForSeries(cw, report.Series, fmtValue)
			})
		}, "Wrote CSV series"); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.ParquetOut:
		rows := parquet.ConvertSeries(report.Series)
		if err := parquet.WriteSeriesParquet(rows, cfg.OutputFile); err != nil {
			return fmt.Errorf("error writing Parquet output: %w", err)
		}
		fmt.Fprintf(os.Stderr, "💾 Wrote %d series points to %s\n", len(rows), cfg.OutputFile)
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeReportText(w, report, cfg, fmtValue, duration)
		}, "Wrote report")
	}
	return nil
}

// writeCSVResultsForSeries writes chart buckets in CSV format.
func writeCSVResultsForSeries(w *csv.Writer, points []schema.ChartPoint, fmtValue func(*float64) string) error {
	for _, p := range points {
		rec := []string{
			p.Label,
			p.Date,
			string(p.Shift),
			fmtValue(p.TempMin), fmtValue(p.TempCurrent), fmtValue(p.TempMax),
			fmtValue(p.HumMin), fmtValue(p.HumCurrent), fmtValue(p.HumMax),
		}
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	return nil
}

// writeReportText renders the header, the zone limits, the daily series and the summary.
func writeReportText(w io.Writer, report schema.Report, cfg *contract.Config, fmtValue func(*float64) string, duration time.Duration) error {
	if err := writeReportHeader(w, report, cfg); err != nil {
		return err
	}

	table := tablewriter.NewWriter(w)
	table.Header([]string{"Día", "T.Min", "T.Act", "T.Max", "H.Min", "H.Act", "H.Max"})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})
	var data [][]string
	for _, p := range report.Series {
		data = append(data, []string{
			p.Label,
			fmtValue(p.TempMin), fmtValue(p.TempCurrent), fmtValue(p.TempMax),
			fmtValue(p.HumMin), fmtValue(p.HumCurrent), fmtValue(p.HumMax),
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	if err := writeSummaryTable(w, report.Summary); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Report built in %v. Cache backend: %s\n", duration, cfg.CacheBackend); err != nil {
		return err
	}
	return nil
}

// writeReportHeader prints the report title block.
func writeReportHeader(w io.Writer, report schema.Report, cfg *contract.Config) error {
	title := fmt.Sprintf("🌡️  %s · Jornada: %s · %s", report.Criteria.Zone, schema.ShiftLabel(report.Criteria.Shift), report.Period)
	if cfg.UseColors {
		title = contract.InfoColor.Sprint(title)
	}
	lines := []string{
		title,
		fmt.Sprintf("Generado: %s", report.GeneratedAt.Format("2006-01-02 15:04")),
		fmt.Sprintf("Límites: temperatura %s °C · humedad %s %%",
			formatRange(report.Limits.Temperature, cfg.Precision),
			formatRange(report.Limits.Humidity, cfg.Precision)),
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// writeSummaryTable prints the six means, the record count and the out of range count.
func writeSummaryTable(w io.Writer, summary schema.Summary) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"Campo", "Promedio"})
	var data [][]string
	for _, f := range schema.AllFields {
		data = append(data, []string{string(f), summary.Means[f].String()})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "Registros: %d · Fuera de rango: %d\n", summary.Count, summary.OutOfRange)
	return err
}
