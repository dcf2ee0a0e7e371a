package schema

// Custom string types for type safety.
type (
	// Kind is whether a record holds a temperature or a humidity reading.
	Kind string

	// Shift is the reporting period within a day a reading was taken.
	Shift string

	// Field names one of the six numeric fields of a record or chart point.
	Field string

	// OutputMode represents the format of the output.
	OutputMode string

	// DatabaseBackend represents the database backend for caching.
	DatabaseBackend string

	// SubmissionStatus is the state of a write in the submission protocol.
	SubmissionStatus string
)

// All reading kinds supported.
const (
	TemperatureKind Kind = "Temperature" // default
	HumidityKind    Kind = "Humidity"
)

// All shifts supported. ShiftAll is a filter sentinel, never stored on a record.
const (
	MorningShift   Shift = "Morning"
	AfternoonShift Shift = "Afternoon"
	NoShift        Shift = ""
	ShiftAll       Shift = "All"
)

// Numeric fields of a record.
const (
	TempMinField     Field = "tempMin"
	TempCurrentField Field = "tempCurrent"
	TempMaxField     Field = "tempMax"
	HumMinField      Field = "humMin"
	HumCurrentField  Field = "humCurrent"
	HumMaxField      Field = "humMax"
)

// All output modes supported.
const (
	CSVOut     OutputMode = "csv"
	TextOut    OutputMode = "text" // default
	JSONOut    OutputMode = "json"
	ParquetOut OutputMode = "parquet"
)

// All cache backends supported.
const (
	SQLiteBackend     DatabaseBackend = "sqlite" // default
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
	NoneBackend       DatabaseBackend = "none"
)

// States of the write protocol.
const (
	PendingStatus   SubmissionStatus = "pending"
	ConfirmedStatus SubmissionStatus = "confirmed"
	StaleStatus     SubmissionStatus = "stale"
	FailedStatus    SubmissionStatus = "failed"
)

// NoDataMarker is rendered wherever a mean has no values to average.
const NoDataMarker = "--"

// MissingValueMarker is rendered for absent numeric values in exports.
const MissingValueMarker = "-"

// DefaultZoneKey names the fallback entry of every zone limit table.
const DefaultZoneKey = "DEFAULT"

// Zones lists the facility areas offered for entry and filtering.
var Zones = []string{
	"OPTICA",
	"FARMACIA",
	"PROCEDIMIENTOS",
	"TOMA MUESTRA",
	"ODONTOLOGIA",
	"LABORATORIO",
	"LABORATORIO - NEVERA",
	"LABORATORIO - CONGELADOR",
}

// Shifts lists the shifts offered for entry, in display order.
var Shifts = []Shift{MorningShift, AfternoonShift}

// MonthNames holds the report month labels, indexed from zero.
var MonthNames = []string{
	"Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio",
	"Julio", "Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre",
}

// AllFields lists the numeric fields in display order.
var AllFields = []Field{
	TempMinField, TempCurrentField, TempMaxField,
	HumMinField, HumCurrentField, HumMaxField,
}

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	CSVOut:     {},
	TextOut:    {},
	JSONOut:    {},
	ParquetOut: {},
}

// ValidDatabaseBackends lists all valid database backends.
var ValidDatabaseBackends = map[DatabaseBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	NoneBackend:       {},
}

// ValidSubmissionStatuses lists all submission statuses.
var ValidSubmissionStatuses = map[SubmissionStatus]struct{}{
	PendingStatus:   {},
	ConfirmedStatus: {},
	StaleStatus:     {},
	FailedStatus:    {},
}
