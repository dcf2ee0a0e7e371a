package contract

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/huangsam/thermolog/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2024, time.March, 20, 10, 0, 0, 0, time.UTC)

// validInput returns the raw input the root command produces with its defaults.
func validInput(t *testing.T) *ConfigRawInput {
	dir := t.TempDir()
	return &ConfigRawInput{
		Endpoint:        "https://script.example.com/exec",
		Precision:       1,
		Output:          "text",
		Color:           "yes",
		CacheBackend:    "sqlite",
		CacheDBConnect:  filepath.Join(dir, "cache.db"),
		LedgerBackend:   "sqlite",
		LedgerDBConnect: filepath.Join(dir, "ledger.db"),
	}
}

func TestProcessAndValidate_Defaults(t *testing.T) {
	cfg := &Config{}
	require.NoError(t, ProcessAndValidate(cfg, validInput(t), fixedNow))

	assert.Equal(t, schema.Criteria{Zone: schema.Zones[0], Year: 2024, Month: 2, Shift: schema.ShiftAll}, cfg.Criteria)
	assert.Equal(t, DefaultTimeout, cfg.Timeout)
	assert.Equal(t, DefaultConfirmTimeout, cfg.ConfirmTimeout)
	assert.Equal(t, DefaultConfirmInterval, cfg.ConfirmInterval)
	assert.Equal(t, DefaultListen, cfg.Listen)
	assert.Equal(t, schema.TextOut, cfg.Output)
	assert.True(t, cfg.UseColors)
	assert.Empty(t, cfg.Limits)
}

func TestProcessAndValidate(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(*ConfigRawInput)
		expectError bool
	}{
		{"valid criteria", func(in *ConfigRawInput) {
			in.Zone, in.Year, in.Month, in.Shift = "FARMACIA", 2023, "marzo", "Mañana"
		}, false},
		{"numeric month", func(in *ConfigRawInput) { in.Month = "12" }, false},
		{"month out of range", func(in *ConfigRawInput) { in.Month = "13" }, true},
		{"unknown month name", func(in *ConfigRawInput) { in.Month = "smarch" }, true},
		{"invalid shift", func(in *ConfigRawInput) { in.Shift = "night" }, true},
		{"invalid year", func(in *ConfigRawInput) { in.Year = 24 }, true},
		{"invalid precision", func(in *ConfigRawInput) { in.Precision = 3 }, true},
		{"invalid output", func(in *ConfigRawInput) { in.Output = "xml" }, true},
		{"parquet without file", func(in *ConfigRawInput) { in.Output = "parquet" }, true},
		{"parquet with file", func(in *ConfigRawInput) { in.Output, in.OutputFile = "parquet", "out.parquet" }, false},
		{"invalid color", func(in *ConfigRawInput) { in.Color = "maybe" }, true},
		{"negative width", func(in *ConfigRawInput) { in.Width = -1 }, true},
		{"empty endpoint allowed", func(in *ConfigRawInput) { in.Endpoint = "" }, false},
		{"endpoint without scheme", func(in *ConfigRawInput) { in.Endpoint = "script.example.com/exec" }, true},
		{"endpoint ftp", func(in *ConfigRawInput) { in.Endpoint = "ftp://example.com/x" }, true},
		{"timeout seconds", func(in *ConfigRawInput) { in.Timeout = "20" }, false},
		{"timeout garbage", func(in *ConfigRawInput) { in.Timeout = "soon" }, true},
		{"timeout zero", func(in *ConfigRawInput) { in.Timeout = "0s" }, true},
		{"interval above timeout", func(in *ConfigRawInput) { in.ConfirmTimeout, in.ConfirmInterval = "2s", "5s" }, true},
		{"invalid cache backend", func(in *ConfigRawInput) { in.CacheBackend = "redis" }, true},
		{"invalid ledger backend", func(in *ConfigRawInput) { in.LedgerBackend = "redis" }, true},
		{"mysql without connect", func(in *ConfigRawInput) { in.LedgerBackend, in.LedgerDBConnect = "mysql", "" }, true},
		{"none backends", func(in *ConfigRawInput) { in.CacheBackend, in.LedgerBackend = "none", "none" }, false},
		{"shared sqlite file", func(in *ConfigRawInput) { in.LedgerDBConnect = in.CacheDBConnect }, true},
		{"limit without zone", func(in *ConfigRawInput) { in.Limits = []LimitRawInput{{}} }, true},
		{"limit inverted range", func(in *ConfigRawInput) {
			in.Limits = []LimitRawInput{{Zone: "FARMACIA", Temperature: &schema.Range{Min: 30, Max: 10}}}
		}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := validInput(t)
			tt.mutate(input)
			err := ProcessAndValidate(&Config{}, input, fixedNow)
			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestProcessAndValidate_Criteria(t *testing.T) {
	input := validInput(t)
	input.Zone, input.Year, input.Month, input.Shift = " LABORATORIO - NEVERA ", 2023, "Septiembre", "tarde"

	cfg := &Config{}
	require.NoError(t, ProcessAndValidate(cfg, input, fixedNow))
	assert.Equal(t, schema.Criteria{Zone: "LABORATORIO - NEVERA", Year: 2023, Month: 8, Shift: schema.AfternoonShift}, cfg.Criteria)
}

func TestProcessAndValidate_Limits(t *testing.T) {
	input := validInput(t)
	input.Limits = []LimitRawInput{
		{Zone: "farmacia", Temperature: &schema.Range{Min: 15, Max: 25}},
		{Zone: "default", Humidity: &schema.Range{Min: 30, Max: 65}},
	}

	cfg := &Config{}
	require.NoError(t, ProcessAndValidate(cfg, input, fixedNow))
	require.Len(t, cfg.Limits, 2)
	assert.Equal(t, "FARMACIA", cfg.Limits[0].Key)
	assert.Equal(t, schema.Range{Min: 15, Max: 25}, cfg.Limits[0].Limits.Temperature)
	assert.Equal(t, schema.DefaultLimits.Humidity, cfg.Limits[0].Limits.Humidity)
	assert.Equal(t, "DEFAULT", cfg.Limits[1].Key)
	assert.Equal(t, schema.Range{Min: 30, Max: 65}, cfg.Limits[1].Limits.Humidity)
}

func TestValidateDatabaseConnectionString(t *testing.T) {
	assert.NoError(t, ValidateDatabaseConnectionString(schema.SQLiteBackend, ""))
	assert.NoError(t, ValidateDatabaseConnectionString(schema.NoneBackend, ""))
	assert.NoError(t, ValidateDatabaseConnectionString(schema.MySQLBackend, "user:pass@tcp(localhost:3306)/thermolog"))
	assert.Error(t, ValidateDatabaseConnectionString(schema.MySQLBackend, "user:pass@localhost"))
	assert.NoError(t, ValidateDatabaseConnectionString(schema.PostgreSQLBackend, "host=localhost dbname=thermolog"))
	assert.Error(t, ValidateDatabaseConnectionString(schema.PostgreSQLBackend, "host=localhost"))
}

func TestConfigClone(t *testing.T) {
	cfg := &Config{Limits: []schema.ZoneLimitEntry{{Key: "A"}}}
	clone := cfg.CloneWithCriteria(schema.Criteria{Zone: "FARMACIA"})
	clone.Limits[0].Key = "B"
	assert.Equal(t, "A", cfg.Limits[0].Key)
	assert.Equal(t, "FARMACIA", clone.Criteria.Zone)
	assert.Empty(t, cfg.Criteria.Zone)
}

func TestOverrideCriteria(t *testing.T) {
	base := schema.Criteria{Zone: "OPTICA", Year: 2024, Month: 2, Shift: schema.ShiftAll}

	same, err := OverrideCriteria(base, "", 0, "", "")
	require.NoError(t, err)
	assert.Equal(t, base, same)

	c, err := OverrideCriteria(base, "FARMACIA", 2022, "12", "morning")
	require.NoError(t, err)
	assert.Equal(t, schema.Criteria{Zone: "FARMACIA", Year: 2022, Month: 11, Shift: schema.MorningShift}, c)

	_, err = OverrideCriteria(base, "", 0, "13", "")
	assert.Error(t, err)
	_, err = OverrideCriteria(base, "", 0, "", "night")
	assert.Error(t, err)
	_, err = OverrideCriteria(base, "", 123, "", "")
	assert.Error(t, err)
}
