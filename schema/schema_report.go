package schema

import "time"

// Range is an inclusive [Min, Max] interval of acceptable values.
type Range struct {
	Min float64 `json:"min" mapstructure:"min"`
	Max float64 `json:"max" mapstructure:"max"`
}

// ZoneLimits holds the acceptable ranges of one zone.
type ZoneLimits struct {
	Temperature Range `json:"temperature"`
	Humidity    Range `json:"humidity"`
}

// For returns the range that applies to readings of kind k.
func (z ZoneLimits) For(k Kind) Range {
	if k == HumidityKind {
		return z.Humidity
	}
	return z.Temperature
}

// DefaultLimits applies to any zone no other limit entry matches.
var DefaultLimits = ZoneLimits{
	Temperature: Range{Min: 15, Max: 30},
	Humidity:    Range{Min: 35, Max: 70},
}

// ZoneLimitEntry is one keyed row of a zone limit table.
type ZoneLimitEntry struct {
	Key    string     `json:"key"`
	Limits ZoneLimits `json:"limits"`
}

// Criteria selects the records shown in a report. Month is zero-indexed.
type Criteria struct {
	Zone  string `json:"zone"`
	Year  int    `json:"year"`
	Month int    `json:"month"`
	Shift Shift  `json:"shift"`
}

// PeriodLabel renders the criteria's month and year, e.g. "Marzo 2024".
func (c Criteria) PeriodLabel() string {
	if c.Month < 0 || c.Month >= len(MonthNames) {
		return ""
	}
	return MonthNames[c.Month] + " " + itoa(c.Year)
}

// ChartPoint is one bucket of a chart series.
type ChartPoint struct {
	Label       string   `json:"label"`
	Date        string   `json:"date"`
	Shift       Shift    `json:"shift,omitempty"`
	TempMin     *float64 `json:"tempMin"`
	TempCurrent *float64 `json:"tempCurrent"`
	TempMax     *float64 `json:"tempMax"`
	HumMin      *float64 `json:"humMin"`
	HumCurrent  *float64 `json:"humCurrent"`
	HumMax      *float64 `json:"humMax"`
}

// Mean is an average rounded to one decimal, or no data.
type Mean struct {
	Value float64 `json:"value"`
	Valid bool    `json:"valid"`
}

// String renders the mean with one decimal, or the no-data marker.
func (m Mean) String() string {
	if !m.Valid {
		return NoDataMarker
	}
	return FormatValue(&m.Value, 1, NoDataMarker)
}

// MarshalText lets a Mean appear as its rendered string in JSON.
func (m Mean) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// Summary holds the aggregate statistics of a filtered record set.
type Summary struct {
	Count      int            `json:"count"`
	Means      map[Field]Mean `json:"means"`
	OutOfRange int            `json:"out_of_range"`
}

// Report is everything one rendering of the statistics view needs.
type Report struct {
	Criteria    Criteria     `json:"criteria"`
	Period      string       `json:"period"`
	Limits      ZoneLimits   `json:"limits"`
	Records     []Record     `json:"records"`
	Series      []ChartPoint `json:"series"`
	Summary     Summary      `json:"summary"`
	GeneratedAt time.Time    `json:"generated_at"`
}

// RangeCheck is the pre-submission feedback for a typed value.
type RangeCheck struct {
	Zone       string   `json:"zone"`
	Kind       Kind     `json:"kind"`
	Input      string   `json:"input"`
	Value      *float64 `json:"value"`
	Range      Range    `json:"range"`
	OutOfRange bool     `json:"out_of_range"`
}

// Catalog lists the values a zone, shift, month or year selector offers,
// along with the zone limit table.
type Catalog struct {
	Zones  []string         `json:"zones"`
	Shifts []Shift          `json:"shifts"`
	Months []string         `json:"months"`
	Years  []int            `json:"years"`
	Limits []ZoneLimitEntry `json:"limits"`
}
