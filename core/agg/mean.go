package agg

import (
	"math"

	"github.com/huangsam/thermolog/core/rules"
	"github.com/huangsam/thermolog/schema"
)

// Mean averages the non-nil values of field f, rounded to one decimal.
// The result is invalid when no record carries the field.
func Mean(records []schema.Record, f schema.Field) schema.Mean {
	var sum float64
	n := 0
	for i := range records {
		if v := records[i].Value(f); v != nil {
			sum += *v
			n++
		}
	}
	if n == 0 {
		return schema.Mean{}
	}
	return schema.Mean{Value: math.Round(sum/float64(n)*10) / 10, Valid: true}
}

// Summarize computes the summary statistics of a filtered record set.
func Summarize(records []schema.Record, table *rules.Table) schema.Summary {
	means := make(map[schema.Field]schema.Mean, len(schema.AllFields))
	for _, f := range schema.AllFields {
		means[f] = Mean(records, f)
	}
	return schema.Summary{
		Count:      len(records),
		Means:      means,
		OutOfRange: table.CountOutOfRange(records),
	}
}
