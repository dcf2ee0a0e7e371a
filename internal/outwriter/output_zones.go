package outwriter

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/huangsam/thermolog/internal/contract"
	"github.com/huangsam/thermolog/schema"
	"github.com/olekukonko/tablewriter"
)

// PrintZones outputs the zone limit table plus the zone, shift, month and year lists.
func PrintZones(entries []schema.ZoneLimitEntry, years []int, cfg *contract.Config) error {
	if cfg.Output == schema.JSONOut {
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, schema.Catalog{
				Zones:  schema.Zones,
				Shifts: schema.Shifts,
				Months: schema.MonthNames,
				Years:  years,
				Limits: entries,
			})
		}, "Wrote JSON zones")
	}
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeZonesText(w, entries, years, cfg)
	}, "Wrote zones")
}

func writeZonesText(w io.Writer, entries []schema.ZoneLimitEntry, years []int, cfg *contract.Config) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"Clave", "Temperatura (°C)", "Humedad (%)"})
	var data [][]string
	for _, e := range entries {
		data = append(data, []string{
			e.Key,
			formatRange(e.Limits.Temperature, cfg.Precision),
			formatRange(e.Limits.Humidity, cfg.Precision),
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	shifts := make([]string, len(schema.Shifts))
	for i, s := range schema.Shifts {
		shifts[i] = schema.ShiftLabel(s)
	}
	yearText := make([]string, len(years))
	for i, y := range years {
		yearText[i] = strconv.Itoa(y)
	}
	lines := []string{
		"Zonas: " + strings.Join(schema.Zones, ", "),
		"Jornadas: " + strings.Join(shifts, ", "),
		"Meses: " + strings.Join(schema.MonthNames, ", "),
		"Años: " + strings.Join(yearText, ", "),
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// PrintCheck prints the pre-submission feedback for one typed value.
func PrintCheck(check schema.RangeCheck, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		if cfg.Output == schema.JSONOut {
			return writeJSON(w, check)
		}
		return writeCheckText(w, check, cfg)
	}, "Wrote check")
}

func writeCheckText(w io.Writer, check schema.RangeCheck, cfg *contract.Config) error {
	unit := "°C"
	if check.Kind == schema.HumidityKind {
		unit = "%"
	}
	value := schema.FormatValue(check.Value, cfg.Precision, schema.MissingValueMarker)
	_, err := fmt.Fprintf(w, "%s %s %s %s: %s (rango %s %s)\n",
		rangeLabel(check.OutOfRange, cfg),
		check.Zone,
		schema.KindLabel(check.Kind),
		value,
		checkMessage(check),
		formatRange(check.Range, cfg.Precision),
		unit,
	)
	return err
}

func checkMessage(check schema.RangeCheck) string {
	switch {
	case check.Value == nil:
		return "sin valor"
	case check.OutOfRange:
		return "fuera de rango"
	default:
		return "dentro de rango"
	}
}
