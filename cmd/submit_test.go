package cmd

import (
	"testing"
	"time"

	"github.com/huangsam/thermolog/schema"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func submitFlags(t *testing.T, args ...string) *pflag.FlagSet {
	t.Helper()
	flags := pflag.NewFlagSet("submit", pflag.ContinueOnError)
	addFormFlags(flags)
	require.NoError(t, flags.Parse(args))
	return flags
}

func TestFormFromFlags(t *testing.T) {
	now := time.Date(2024, time.March, 15, 9, 30, 0, 0, time.UTC)

	t.Run("defaults", func(t *testing.T) {
		form := formFromFlags(submitFlags(t, "--by", "Ana", "--current", "24,5"), "OPTICA", "mañana", now)
		assert.Equal(t, schema.TemperatureKind, form.Kind)
		assert.Equal(t, "2024-03-15", form.Date)
		assert.Equal(t, schema.MorningShift, form.Shift)
		assert.Equal(t, "OPTICA", form.Zone)
		assert.Equal(t, "Ana", form.RecordedBy)
		assert.Equal(t, "24,5", form.Current)
	})

	t.Run("humidity with explicit date", func(t *testing.T) {
		form := formFromFlags(submitFlags(t, "-k", "humidity", "-d", "2024-02-01", "--min", "40", "--max", "60", "--current", "52"), "FARMACIA", "tarde", now)
		assert.Equal(t, schema.HumidityKind, form.Kind)
		assert.Equal(t, "2024-02-01", form.Date)
		assert.Equal(t, schema.AfternoonShift, form.Shift)
		assert.Equal(t, "40", form.Min)
		assert.Equal(t, "60", form.Max)
	})

	t.Run("no shift defaults to morning", func(t *testing.T) {
		form := formFromFlags(submitFlags(t), "", "", now)
		assert.Equal(t, schema.MorningShift, form.Shift)
		assert.Empty(t, form.Zone)
	})

	t.Run("all shifts is kept for validation", func(t *testing.T) {
		form := formFromFlags(submitFlags(t), "OPTICA", "all", now)
		assert.Equal(t, schema.ShiftAll, form.Shift)
	})
}

func TestCommandTree(t *testing.T) {
	for _, path := range [][]string{
		{"report"}, {"records"}, {"export"}, {"submit"}, {"check"}, {"zones"},
		{"cache", "status"}, {"cache", "clear"},
		{"submissions", "status"}, {"submissions", "list"}, {"submissions", "resubmit"},
		{"submissions", "migrate"}, {"submissions", "clear"},
		{"mcp"}, {"serve"}, {"version"},
	} {
		found, _, err := rootCmd.Find(path)
		require.NoError(t, err, path)
		assert.Equal(t, path[len(path)-1], found.Name())
	}
}
