// Package parquet provides data structures and functions for exporting
// readings and chart series to Parquet files using github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"os"
	"time"

	"github.com/huangsam/thermolog/schema"
	"github.com/parquet-go/parquet-go"
)

// ReadingRow is one normalized reading.
type ReadingRow struct {
	// ID is the ingestion position within the fetch that produced the row
	ID int32 `parquet:"id,snappy"`

	Date       string  `parquet:"date,snappy"`
	Time       *string `parquet:"time,optional,snappy"`
	Shift      *string `parquet:"shift,optional,snappy"`
	Zone       string  `parquet:"zone,snappy"`
	Kind       string  `parquet:"kind,snappy"`
	RecordedBy string  `parquet:"recorded_by,snappy"`
	Notes      *string `parquet:"notes,optional,snappy"`

	TempMin     *float64 `parquet:"temp_min,optional,snappy"`
	TempCurrent *float64 `parquet:"temp_current,optional,snappy"`
	TempMax     *float64 `parquet:"temp_max,optional,snappy"`
	HumMin      *float64 `parquet:"hum_min,optional,snappy"`
	HumCurrent  *float64 `parquet:"hum_current,optional,snappy"`
	HumMax      *float64 `parquet:"hum_max,optional,snappy"`

	// OutOfRange is set when the current value falls outside the zone's range
	OutOfRange bool `parquet:"out_of_range,snappy"`

	// ExportedAt is when the file was written (stored as TIMESTAMP with nanosecond precision)
	ExportedAt time.Time `parquet:"exported_at,snappy"`
}

// SeriesRow is one bucket of a chart series.
type SeriesRow struct {
	Label       string   `parquet:"label,snappy"`
	Date        string   `parquet:"date,snappy"`
	Shift       *string  `parquet:"shift,optional,snappy"`
	TempMin     *float64 `parquet:"temp_min,optional,snappy"`
	TempCurrent *float64 `parquet:"temp_current,optional,snappy"`
	TempMax     *float64 `parquet:"temp_max,optional,snappy"`
	HumMin      *float64 `parquet:"hum_min,optional,snappy"`
	HumCurrent  *float64 `parquet:"hum_current,optional,snappy"`
	HumMax      *float64 `parquet:"hum_max,optional,snappy"`
}

// WriteReadingsParquet writes readings to a Parquet file.
func WriteReadingsParquet(data []ReadingRow, outputPath string) error {
	return writeParquet(data, outputPath)
}

// WriteSeriesParquet writes chart buckets to a Parquet file.
func WriteSeriesParquet(data []SeriesRow, outputPath string) error {
	return writeParquet(data, outputPath)
}

// writeParquet writes rows of any tagged struct type to outputPath.
// The schema is derived from the struct tags of T.
func writeParquet[T any](data []T, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	writer := parquet.NewGenericWriter[T](file)
	if _, err := writer.Write(data); err != nil {
		_ = writer.Close()
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finalize parquet file: %w", err)
	}
	return nil
}

func optionalString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// ConvertRecords converts records to rows. outOfRange reports the range flag of each record.
func ConvertRecords(records []schema.Record, outOfRange func(*schema.Record) bool, exportedAt time.Time) []ReadingRow {
	result := make([]ReadingRow, len(records))
	for i := range records {
		r := &records[i]
		result[i] = ReadingRow{
			ID:          int32(r.ID),
			Date:        r.Date,
			Time:        optionalString(r.Time),
			Shift:       optionalString(string(r.Shift)),
			Zone:        r.Zone,
			Kind:        string(r.Kind),
			RecordedBy:  r.RecordedBy,
			Notes:       optionalString(r.Notes),
			TempMin:     r.TempMin,
			TempCurrent: r.TempCurrent,
			TempMax:     r.TempMax,
			HumMin:      r.HumMin,
			HumCurrent:  r.HumCurrent,
			HumMax:      r.HumMax,
			OutOfRange:  outOfRange != nil && outOfRange(r),
			ExportedAt:  exportedAt,
		}
	}
	return result
}

// ConvertSeries converts chart points to rows.
func ConvertSeries(points []schema.ChartPoint) []SeriesRow {
	result := make([]SeriesRow, len(points))
	for i, p := range points {
		result[i] = SeriesRow{
			Label:       p.Label,
			Date:        p.Date,
			Shift:       optionalString(string(p.Shift)),
			TempMin:     p.TempMin,
			TempCurrent: p.TempCurrent,
			TempMax:     p.TempMax,
			HumMin:      p.HumMin,
			HumCurrent:  p.HumCurrent,
			HumMax:      p.HumMax,
		}
	}
	return result
}
