package core

import (
	"testing"
	"time"

	"github.com/huangsam/thermolog/core/norm"
	"github.com/huangsam/thermolog/core/rules"
	"github.com/huangsam/thermolog/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func marchCriteria() schema.Criteria {
	return schema.Criteria{Zone: "OPTICA", Year: 2024, Month: 2, Shift: schema.ShiftAll}
}

func sheetRows() []schema.RawRecord {
	return []schema.RawRecord{
		{"Fecha": "2024-03-15", "Jornada": "Mañana", "Area": "OPTICA", "Responsable": "Ana", "Tipo": "Temperatura", "Actual": "24,5"},
		{"Fecha": "2024-03-16T00:00:00.000Z", "Jornada": "Tarde", "Area": "OPTICA", "Responsable": "Ana", "Tipo": "Temperatura", "Actual": 31},
		{"Fecha": "2024-03-16", "Jornada": "Tarde", "Area": "OPTICA", "Responsable": "Luis", "Tipo": "Humedad", "Actual": "50"},
		{"Fecha": "2024-04-01", "Jornada": "Mañana", "Area": "OPTICA", "Responsable": "Ana", "Actual": "22"},
		{"Fecha": "2024-03-15", "Jornada": "Mañana", "Area": "FARMACIA", "Responsable": "Eva", "Actual": "22"},
		{"Fecha": "", "Area": "OPTICA", "Actual": "20"},
	}
}

func TestReduce_FetchCompletedSortsNewestFirst(t *testing.T) {
	s := NewState(marchCriteria(), nil)
	s = Reduce(s, FetchCompleted{Records: norm.NormalizeAll(sheetRows())})

	require.Len(t, s.Records, 6)
	assert.Equal(t, "2024-04-01", s.Records[0].Date)
	assert.Equal(t, "", s.Records[5].Date, "undated records sort last")
}

func TestReduce_LaterFetchReplacesCollection(t *testing.T) {
	s := NewState(marchCriteria(), nil)
	s = Reduce(s, FetchCompleted{Records: norm.NormalizeAll(sheetRows())})
	s = Reduce(s, FetchCompleted{Records: norm.NormalizeAll(sheetRows()[:1])})
	assert.Len(t, s.Records, 1)
}

func TestReduce_DoesNotMutateInput(t *testing.T) {
	records := norm.NormalizeAll(sheetRows())
	first := records[0].Date

	s := NewState(marchCriteria(), nil)
	next := Reduce(s, FetchCompleted{Records: records})
	assert.Equal(t, first, records[0].Date, "input slice keeps its order")
	assert.Empty(t, s.Records)

	withSub := Reduce(next, SubmissionUpdated{Submission: schema.Submission{ID: "a", Status: schema.PendingStatus}})
	assert.Empty(t, next.Submissions)
	assert.Equal(t, schema.PendingStatus, withSub.Submissions["a"].Status)

	updated := Reduce(withSub, SubmissionUpdated{Submission: schema.Submission{ID: "a", Status: schema.ConfirmedStatus}})
	assert.Equal(t, schema.PendingStatus, withSub.Submissions["a"].Status)
	assert.Equal(t, schema.ConfirmedStatus, updated.Submissions["a"].Status)
}

func TestReduce_CriteriaChanged(t *testing.T) {
	s := NewState(marchCriteria(), nil)
	s = Reduce(s, FetchCompleted{Records: norm.NormalizeAll(sheetRows())})
	assert.Len(t, s.Filtered(), 3)

	april := marchCriteria()
	april.Month = 3
	s = Reduce(s, CriteriaChanged{Criteria: april})
	require.Len(t, s.Filtered(), 1)
	assert.Equal(t, "2024-04-01", s.Filtered()[0].Date)

	morning := marchCriteria()
	morning.Shift = schema.MorningShift
	s = Reduce(s, CriteriaChanged{Criteria: morning})
	assert.Len(t, s.Filtered(), 1)
}

func TestView(t *testing.T) {
	s := NewState(marchCriteria(), rules.DefaultTable())
	s = Reduce(s, FetchCompleted{Records: norm.NormalizeAll(sheetRows())})
	now := time.Date(2024, 3, 20, 9, 0, 0, 0, time.UTC)

	report := View(s, now)
	assert.Equal(t, "Marzo 2024", report.Period)
	assert.Equal(t, schema.DefaultLimits, report.Limits)
	assert.Equal(t, now, report.GeneratedAt)
	require.Len(t, report.Records, 3)
	assert.Equal(t, "2024-03-16", report.Records[0].Date[:10])

	require.Len(t, report.Series, 2)
	assert.Equal(t, "15 (M)", report.Series[0].Label)
	assert.Equal(t, "16 (T)", report.Series[1].Label)
	require.NotNil(t, report.Series[1].TempCurrent)
	require.NotNil(t, report.Series[1].HumCurrent)
	assert.Equal(t, 31.0, *report.Series[1].TempCurrent)
	assert.Equal(t, 50.0, *report.Series[1].HumCurrent)

	assert.Equal(t, 3, report.Summary.Count)
	assert.Equal(t, "27.8", report.Summary.Means[schema.TempCurrentField].String())
	assert.Equal(t, "--", report.Summary.Means[schema.TempMinField].String())
	assert.Equal(t, 1, report.Summary.OutOfRange)
}

func TestView_LaterReadingWinsSharedBucket(t *testing.T) {
	rows := []schema.RawRecord{
		{"Fecha": "2024-03-15", "Hora": "08:00", "Jornada": "Mañana", "Area": "OPTICA", "Responsable": "Ana", "Tipo": "Temperatura", "Actual": "20"},
		{"Fecha": "2024-03-15", "Hora": "10:00", "Jornada": "Mañana", "Area": "OPTICA", "Responsable": "Ana", "Tipo": "Temperatura", "Actual": "25"},
	}
	criteria := schema.Criteria{Zone: "OPTICA", Year: 2024, Month: 2, Shift: schema.MorningShift}
	s := Reduce(NewState(criteria, nil), FetchCompleted{Records: norm.NormalizeAll(rows)})

	// The history view lists the 10:00 reading first.
	require.Len(t, s.Records, 2)
	assert.Equal(t, "10:00", s.Records[0].Time)

	report := View(s, time.Now())
	require.Len(t, report.Series, 1)
	require.NotNil(t, report.Series[0].TempCurrent)
	assert.Equal(t, 25.0, *report.Series[0].TempCurrent)
}

func TestView_EmptyState(t *testing.T) {
	report := View(NewState(marchCriteria(), nil), time.Now())
	assert.Empty(t, report.Records)
	assert.Empty(t, report.Series)
	assert.Equal(t, 0, report.Summary.Count)
}
