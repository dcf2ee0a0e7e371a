package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFoldAccents(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"  Mañana ", "manana"},
		{"MÍNIMA", "minima"},
		{"Área", "area"},
		{"hora registro", "hora registro"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FoldAccents(tt.in), tt.in)
	}
}

func TestParseShift(t *testing.T) {
	assert.Equal(t, MorningShift, ParseShift("Mañana"))
	assert.Equal(t, MorningShift, ParseShift("morning"))
	assert.Equal(t, AfternoonShift, ParseShift(" TARDE "))
	assert.Equal(t, AfternoonShift, ParseShift("Afternoon"))
	assert.Equal(t, ShiftAll, ParseShift("Todas"))
	assert.Equal(t, NoShift, ParseShift("noche"))
	assert.Equal(t, NoShift, ParseShift(""))
}

func TestParseKind(t *testing.T) {
	assert.Equal(t, HumidityKind, ParseKind("Humedad"))
	assert.Equal(t, HumidityKind, ParseKind("humidity"))
	assert.Equal(t, TemperatureKind, ParseKind("Temperatura"))
	assert.Equal(t, TemperatureKind, ParseKind(""))
	assert.Equal(t, TemperatureKind, ParseKind("presion"))
}

func TestParseMonth(t *testing.T) {
	m, err := ParseMonth("3")
	require.NoError(t, err)
	assert.Equal(t, 2, m)

	m, err = ParseMonth("marzo")
	require.NoError(t, err)
	assert.Equal(t, 2, m)

	m, err = ParseMonth("December")
	require.NoError(t, err)
	assert.Equal(t, 11, m)

	_, err = ParseMonth("13")
	assert.Error(t, err)

	_, err = ParseMonth("brumaire")
	assert.Error(t, err)
}

func TestRecentYears(t *testing.T) {
	assert.Equal(t, []int{2024, 2023, 2022, 2021, 2020}, RecentYears(2024, 5))
	assert.Empty(t, RecentYears(2024, 0))
}

func TestFormatValue(t *testing.T) {
	assert.Equal(t, "-", FormatValue(nil, 1, MissingValueMarker))
	assert.Equal(t, "24.5", FormatValue(Float(24.5), 1, MissingValueMarker))
	assert.Equal(t, "0.0", FormatValue(Float(0), 1, MissingValueMarker))
}

func TestMeanString(t *testing.T) {
	assert.Equal(t, NoDataMarker, Mean{}.String())
	assert.Equal(t, "22.0", Mean{Value: 22, Valid: true}.String())
}

func TestRecordFingerprint(t *testing.T) {
	a := Record{Kind: TemperatureKind, Date: "2024-03-15T05:00:00.000Z", Shift: MorningShift, Zone: "optica ", RecordedBy: "Ana", TempCurrent: Float(24.5)}
	b := Record{ID: 9, Kind: TemperatureKind, Date: "2024-03-15", Shift: MorningShift, Zone: "OPTICA", RecordedBy: "ana", TempCurrent: Float(24.5)}
	assert.Equal(t, a.Fingerprint(), b.Fingerprint())

	b.TempCurrent = Float(24.6)
	assert.NotEqual(t, a.Fingerprint(), b.Fingerprint())
}

func TestCriteriaPeriodLabel(t *testing.T) {
	assert.Equal(t, "Marzo 2024", Criteria{Year: 2024, Month: 2}.PeriodLabel())
	assert.Empty(t, Criteria{Year: 2024, Month: 12}.PeriodLabel())
}

func TestParseField(t *testing.T) {
	f, err := ParseField("TEMPCURRENT")
	require.NoError(t, err)
	assert.Equal(t, TempCurrentField, f)

	_, err = ParseField("pressure")
	assert.ErrorIs(t, err, ErrUnknownField)
}
