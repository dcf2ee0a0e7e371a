package schema

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Sentinel errors shared across packages.
var (
	ErrMissingOperator = errors.New("recorded-by is required")
	ErrMissingCurrent  = errors.New("current value is required for the selected kind")
	ErrMissingZone     = errors.New("zone is required")
	ErrMissingDate     = errors.New("date is required")
	ErrMissingShift    = errors.New("shift must be morning or afternoon")
	ErrUnknownField    = errors.New("unknown field")

	ErrSubmissionNotFound = errors.New("submission not found")
	ErrNoEndpoint         = errors.New("no endpoint configured; set --endpoint or THERMOLOG_ENDPOINT")
)

// RawRecord is one row as received from the remote store. Keys and value
// types vary across the store's history, so nothing about it is trusted.
type RawRecord map[string]any

// Record is the canonical shape every raw row is normalized into.
// Only the field group selected by Kind may carry values.
type Record struct {
	ID         int    `json:"id"`
	Date       string `json:"date"`
	Time       string `json:"time,omitempty"`
	Shift      Shift  `json:"shift,omitempty"`
	Zone       string `json:"zone"`
	RecordedBy string `json:"recordedBy"`
	Notes      string `json:"notes,omitempty"`
	Kind       Kind   `json:"kind"`

	TempMin     *float64 `json:"tempMin"`
	TempCurrent *float64 `json:"tempCurrent"`
	TempMax     *float64 `json:"tempMax"`

	HumMin     *float64 `json:"humMin"`
	HumCurrent *float64 `json:"humCurrent"`
	HumMax     *float64 `json:"humMax"`
}

// Value returns the record's value for the named field.
func (r *Record) Value(f Field) *float64 {
	switch f {
	case TempMinField:
		return r.TempMin
	case TempCurrentField:
		return r.TempCurrent
	case TempMaxField:
		return r.TempMax
	case HumMinField:
		return r.HumMin
	case HumCurrentField:
		return r.HumCurrent
	case HumMaxField:
		return r.HumMax
	default:
		return nil
	}
}

// Current returns the current value of the record's own kind.
func (r *Record) Current() *float64 {
	if r.Kind == HumidityKind {
		return r.HumCurrent
	}
	return r.TempCurrent
}

// Fingerprint identifies a reading independently of its ingestion ID, so a
// posted record can be recognized in a later fetch.
func (r *Record) Fingerprint() string {
	date, _, _ := strings.Cut(strings.TrimSpace(r.Date), "T")
	return strings.Join([]string{
		string(r.Kind),
		date,
		string(r.Shift),
		strings.ToUpper(strings.TrimSpace(r.Zone)),
		strings.ToLower(strings.TrimSpace(r.RecordedBy)),
		FormatValue(r.Current(), 2, ""),
	}, "|")
}

// ParseField resolves a field name, case-insensitively.
func ParseField(s string) (Field, error) {
	for _, f := range AllFields {
		if strings.EqualFold(string(f), strings.TrimSpace(s)) {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownField, s)
}

// KindLabel returns the Spanish label used by exports and report headers.
func KindLabel(k Kind) string {
	if k == HumidityKind {
		return "Humedad"
	}
	return "Temperatura"
}

// ShiftLabel returns the Spanish label of a shift, or "-" when unset.
func ShiftLabel(s Shift) string {
	switch s {
	case MorningShift:
		return "Mañana"
	case AfternoonShift:
		return "Tarde"
	case ShiftAll:
		return "Todas"
	default:
		return MissingValueMarker
	}
}

// FormatValue renders a nullable number with the given precision, or the
// missing marker when nil. Trailing zeros are kept so columns line up.
func FormatValue(v *float64, precision int, missing string) string {
	if v == nil {
		return missing
	}
	return strconv.FormatFloat(*v, 'f', precision, 64)
}

// Float returns a pointer to v. Handy for literals in tests and fixtures.
func Float(v float64) *float64 {
	return &v
}
