package rules

import (
	"strings"

	"github.com/huangsam/thermolog/core/norm"
	"github.com/huangsam/thermolog/schema"
)

// OutOfRange reports whether v lies outside the inclusive range r.
// A nil value is never flagged.
func OutOfRange(v *float64, r schema.Range) bool {
	if v == nil {
		return false
	}
	return *v < r.Min || *v > r.Max
}

// CheckInput flags a typed value against r. Blank or unparsable input is
// not flagged.
func CheckInput(input string, r schema.Range) bool {
	return OutOfRange(norm.ParseNumber(input), r)
}

// Check resolves the zone's range for kind and evaluates input against it.
func (t *Table) Check(zone string, kind schema.Kind, input string) schema.RangeCheck {
	r := t.Resolve(zone).For(kind)
	v := norm.ParseNumber(input)
	return schema.RangeCheck{
		Zone:       zone,
		Kind:       kind,
		Input:      strings.TrimSpace(input),
		Value:      v,
		Range:      r,
		OutOfRange: OutOfRange(v, r),
	}
}

// CountOutOfRange counts records whose current reading is outside their
// zone's range for the record's kind.
func (t *Table) CountOutOfRange(records []schema.Record) int {
	n := 0
	for i := range records {
		r := &records[i]
		if OutOfRange(r.Current(), t.Resolve(r.Zone).For(r.Kind)) {
			n++
		}
	}
	return n
}
