// Package agg has filtering and aggregation logic for sensor readings.
package agg

import (
	"sort"
	"strconv"
	"strings"

	"github.com/huangsam/thermolog/schema"
)

// Date is the calendar part of a record date. Month is zero-indexed.
type Date struct {
	Year  int
	Month int
	Day   int
}

// Before reports whether d is earlier than o.
func (d Date) Before(o Date) bool {
	if d.Year != o.Year {
		return d.Year < o.Year
	}
	if d.Month != o.Month {
		return d.Month < o.Month
	}
	return d.Day < o.Day
}

// String renders the date as YYYY-MM-DD.
func (d Date) String() string {
	return pad(d.Year, 4) + "-" + pad(d.Month+1, 2) + "-" + pad(d.Day, 2)
}

func pad(n, width int) string {
	s := strconv.Itoa(n)
	for len(s) < width {
		s = "0" + s
	}
	return s
}

// datePortion strips any time-of-day from a possibly timestamped string.
func datePortion(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexAny(s, "T "); i >= 0 {
		s = s[:i]
	}
	return s
}

// ParseDate reads the calendar date of a record. Strings with fewer than
// three dash-separated parts, or a non-numeric year or month, are rejected.
// A non-numeric day parses as zero.
func ParseDate(s string) (Date, bool) {
	parts := strings.Split(datePortion(s), "-")
	if len(parts) < 3 {
		return Date{}, false
	}
	year, err := strconv.Atoi(parts[0])
	if err != nil {
		return Date{}, false
	}
	month, err := strconv.Atoi(parts[1])
	if err != nil {
		return Date{}, false
	}
	day, _ := strconv.Atoi(parts[2])
	return Date{Year: year, Month: month - 1, Day: day}, true
}

// Matches reports whether a record satisfies the criteria.
func Matches(r *schema.Record, c schema.Criteria) bool {
	if r.Zone != c.Zone {
		return false
	}
	d, ok := ParseDate(r.Date)
	if !ok || d.Year != c.Year || d.Month != c.Month {
		return false
	}
	return c.Shift == schema.ShiftAll || r.Shift == c.Shift
}

// Filter returns the records matching the criteria, in input order.
func Filter(records []schema.Record, c schema.Criteria) []schema.Record {
	out := make([]schema.Record, 0)
	for i := range records {
		if Matches(&records[i], c) {
			out = append(out, records[i])
		}
	}
	return out
}

// SortNewestFirst orders records by date, latest first, for history
// listings. Records without a usable date sink to the end.
func SortNewestFirst(records []schema.Record) {
	sort.SliceStable(records, func(i, j int) bool {
		di, oki := ParseDate(records[i].Date)
		dj, okj := ParseDate(records[j].Date)
		if oki != okj {
			return oki
		}
		if !oki {
			return false
		}
		if di != dj {
			return dj.Before(di)
		}
		return records[i].Time > records[j].Time
	})
}
