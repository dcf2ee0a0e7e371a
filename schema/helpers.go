package schema

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// FoldAccents lower-cases s, trims it and strips combining marks,
// so "  Mañana " and "MANANA" compare equal.
func FoldAccents(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		folded = s
	}
	return strings.ToLower(strings.TrimSpace(folded))
}

// ParseShift maps loosely typed shift names to a Shift. Unknown input
// yields NoShift.
func ParseShift(s string) Shift {
	switch FoldAccents(s) {
	case "manana", "morning", "am", "m":
		return MorningShift
	case "tarde", "afternoon", "pm", "t":
		return AfternoonShift
	case "all", "todas", "todos", "*":
		return ShiftAll
	default:
		return NoShift
	}
}

// ParseKind maps a type string to a Kind. Anything mentioning humidity is
// Humidity; everything else, including empty input, is Temperature.
func ParseKind(s string) Kind {
	if strings.Contains(strings.ToLower(s), "hum") {
		return HumidityKind
	}
	return TemperatureKind
}

// ParseMonth accepts 1-12 or a Spanish or English month name (any case,
// accents optional) and returns the zero-indexed month.
func ParseMonth(s string) (int, error) {
	s = FoldAccents(s)
	if n, err := strconv.Atoi(s); err == nil {
		if n < 1 || n > 12 {
			return 0, fmt.Errorf("month must be between 1 and 12 (received %d)", n)
		}
		return n - 1, nil
	}
	english := []string{
		"january", "february", "march", "april", "may", "june",
		"july", "august", "september", "october", "november", "december",
	}
	for i, name := range MonthNames {
		if s == FoldAccents(name) || s == english[i] {
			return i, nil
		}
	}
	return 0, fmt.Errorf("invalid month %q", s)
}

// RecentYears returns the current year followed by the n-1 years before it.
func RecentYears(current, n int) []int {
	years := make([]int, 0, n)
	for i := range n {
		years = append(years, current-i)
	}
	return years
}

func itoa(n int) string {
	return strconv.Itoa(n)
}
