package agg

import (
	"sort"

	"github.com/huangsam/thermolog/schema"
)

// bucketKey groups records by day of month, and by shift when all shifts
// are shown.
func bucketKey(d Date, shift schema.Shift, all bool) string {
	key := pad(d.Day, 2)
	if all {
		key += "-" + string(shift)
	}
	return key
}

// bucketLabel is the axis label of a chart point, e.g. "15 (M)".
func bucketLabel(d Date, shift schema.Shift, all bool) string {
	label := pad(d.Day, 2)
	if !all {
		return label
	}
	initial := []rune(schema.ShiftLabel(shift))[0]
	return label + " (" + string(initial) + ")"
}

// BuildSeries buckets records into chart points in chronological order.
// Records sharing a bucket overwrite each other's non-nil values; the
// latest by date, then time, then ingestion order wins, whatever order the
// input is in. Records without a usable date are skipped.
func BuildSeries(records []schema.Record, c schema.Criteria) []schema.ChartPoint {
	type dated struct {
		date Date
		rec  *schema.Record
	}
	sorted := make([]dated, 0, len(records))
	for i := range records {
		if d, ok := ParseDate(records[i].Date); ok {
			sorted = append(sorted, dated{date: d, rec: &records[i]})
		}
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if a.date != b.date {
			return a.date.Before(b.date)
		}
		if a.rec.Time != b.rec.Time {
			return a.rec.Time < b.rec.Time
		}
		return a.rec.ID < b.rec.ID
	})

	all := c.Shift == schema.ShiftAll
	index := make(map[string]int)
	points := make([]schema.ChartPoint, 0)

	for _, item := range sorted {
		key := bucketKey(item.date, item.rec.Shift, all)
		pos, ok := index[key]
		if !ok {
			pos = len(points)
			index[key] = pos
			p := schema.ChartPoint{
				Label: bucketLabel(item.date, item.rec.Shift, all),
				Date:  item.date.String(),
			}
			if all {
				p.Shift = item.rec.Shift
			}
			points = append(points, p)
		}
		merge(&points[pos], item.rec)
	}

	sort.SliceStable(points, func(i, j int) bool {
		return points[i].Date < points[j].Date
	})
	return points
}

// merge copies the non-nil values of the record's own kind into p.
func merge(p *schema.ChartPoint, r *schema.Record) {
	overwrite := func(dst **float64, src *float64) {
		if src != nil {
			v := *src
			*dst = &v
		}
	}
	if r.Kind == schema.HumidityKind {
		overwrite(&p.HumMin, r.HumMin)
		overwrite(&p.HumCurrent, r.HumCurrent)
		overwrite(&p.HumMax, r.HumMax)
		return
	}
	overwrite(&p.TempMin, r.TempMin)
	overwrite(&p.TempCurrent, r.TempCurrent)
	overwrite(&p.TempMax, r.TempMax)
}
