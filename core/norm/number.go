// Package norm turns loosely-structured remote rows into canonical records.
package norm

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// ParseNumber converts a value of unknown type into a number. Absent,
// empty and unparsable input yields nil; it never fails.
// A decimal comma is accepted in place of a decimal point ("24,5" == "24.5").
func ParseNumber(v any) *float64 {
	var f float64
	switch n := v.(type) {
	case nil:
		return nil
	case float64:
		f = n
	case float32:
		f = float64(n)
	case int:
		f = float64(n)
	case int32:
		f = float64(n)
	case int64:
		f = float64(n)
	case uint:
		f = float64(n)
	case uint32:
		f = float64(n)
	case uint64:
		f = float64(n)
	case json.Number:
		return parseNumericString(n.String())
	case string:
		return parseNumericString(n)
	default:
		return nil
	}
	return &f
}

// parseNumericString parses s after swapping its first decimal comma.
func parseNumericString(s string) *float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	s = strings.Replace(s, ",", ".", 1)
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	return &f
}
