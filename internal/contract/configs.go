package contract

import (
	"fmt"
	"net/url"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/huangsam/thermolog/schema"
)

// Default values for configuration.
const (
	DefaultTimeout         = 15 * time.Second
	DefaultConfirmTimeout  = 30 * time.Second
	DefaultConfirmInterval = time.Second
	DefaultPrecision       = 1
	DefaultListen          = ":8080"
	DefaultListLimit       = 50
)

// DateTimeFormat is the default date time representation.
var DateTimeFormat = time.RFC3339

// LimitRawInput is one zone range override from the YAML config file.
// Missing ranges fall back to the DEFAULT limits.
type LimitRawInput struct {
	Zone        string        `mapstructure:"zone"`
	Temperature *schema.Range `mapstructure:"temperature"`
	Humidity    *schema.Range `mapstructure:"humidity"`
}

// Config holds the runtime configuration.
// This struct remains the "final, validated" config.
type Config struct {
	Endpoint string
	Timeout  time.Duration
	Offline  bool

	Criteria schema.Criteria

	Precision  int
	Output     schema.OutputMode
	OutputFile string
	Width      int // Terminal width override (0 = auto-detect)
	UseColors  bool

	CacheBackend   schema.DatabaseBackend
	CacheDBConnect string // Please use env var as this is plaintext

	LedgerBackend   schema.DatabaseBackend
	LedgerDBConnect string // Please use env var as this is plaintext

	ConfirmTimeout  time.Duration
	ConfirmInterval time.Duration

	// Limits are the zone range overrides, consulted before the built-in table
	Limits []schema.ZoneLimitEntry

	Listen string
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	// --- Fields from rootCmd.PersistentFlags() ---
	Endpoint        string `mapstructure:"endpoint"`
	Timeout         string `mapstructure:"timeout"`
	Offline         bool   `mapstructure:"offline"`
	Zone            string `mapstructure:"zone"`
	Year            int    `mapstructure:"year"`
	Month           string `mapstructure:"month"`
	Shift           string `mapstructure:"shift"`
	Output          string `mapstructure:"output"`
	OutputFile      string `mapstructure:"output-file"`
	Precision       int    `mapstructure:"precision"`
	Color           string `mapstructure:"color"`
	Width           int    `mapstructure:"width"`
	CacheBackend    string `mapstructure:"cache-backend"`
	CacheDBConnect  string `mapstructure:"cache-db-connect"`
	LedgerBackend   string `mapstructure:"ledger-backend"`
	LedgerDBConnect string `mapstructure:"ledger-db-connect"`

	// --- Fields from submitCmd.Flags() ---
	ConfirmTimeout  string `mapstructure:"confirm-timeout"`
	ConfirmInterval string `mapstructure:"confirm-interval"`

	// --- Fields from serveCmd.Flags() ---
	Listen string `mapstructure:"listen"`

	// --- Zone range overrides from config file ---
	Limits []LimitRawInput `mapstructure:"limits"`
}

// Clone returns a deep copy of the Config struct.
func (c *Config) Clone() *Config {
	clone := *c
	clone.Limits = slices.Clone(c.Limits)
	return &clone
}

// CloneWithCriteria creates a copy of the Config with different report criteria.
func (c *Config) CloneWithCriteria(criteria schema.Criteria) *Config {
	clone := c.Clone()
	clone.Criteria = criteria
	return clone
}

// ProcessAndValidate performs all parsing and validation on the raw inputs
// and updates the final Config struct. Year and month default to the ones of now.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput, now time.Time) error {
	if err := validateSimpleInputs(cfg, input); err != nil {
		return err
	}
	if err := processEndpoint(cfg, input); err != nil {
		return err
	}
	if err := processCriteria(cfg, input, now); err != nil {
		return err
	}
	if err := processDurations(cfg, input); err != nil {
		return err
	}
	if err := validateBackendConfigs(cfg, input); err != nil {
		return err
	}
	return processLimits(cfg, input)
}

// ValidateDatabaseConnectionString validates the format of database connection strings
// for MySQL and PostgreSQL backends.
func ValidateDatabaseConnectionString(backend schema.DatabaseBackend, connStr string) error {
	switch backend {
	case schema.SQLiteBackend, schema.NoneBackend:
		return nil
	case schema.MySQLBackend:
		if connStr == "" {
			return fmt.Errorf("a connection string is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "@tcp(") {
			return fmt.Errorf("MySQL connection string must contain '@tcp(' for host:port specification")
		}
		if !strings.Contains(connStr, "/") {
			return fmt.Errorf("MySQL connection string must contain '/' followed by database name")
		}
	case schema.PostgreSQLBackend:
		if connStr == "" {
			return fmt.Errorf("a connection string is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "host=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'host=' parameter")
		}
		if !strings.Contains(connStr, "dbname=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'dbname=' parameter")
		}
	}
	return nil
}

// validateSimpleInputs processes and validates output related fields.
func validateSimpleInputs(cfg *Config, input *ConfigRawInput) error {
	cfg.OutputFile = input.OutputFile
	cfg.Offline = input.Offline
	cfg.Width = input.Width
	cfg.Listen = strings.TrimSpace(input.Listen)
	if cfg.Listen == "" {
		cfg.Listen = DefaultListen
	}

	colors, err := ParseBoolString(input.Color)
	if err != nil {
		return fmt.Errorf("invalid --color value: %w", err)
	}
	cfg.UseColors = colors

	if input.Precision < 1 || input.Precision > 2 {
		return fmt.Errorf("precision must be 1 or 2 (received %d)", input.Precision)
	}
	cfg.Precision = input.Precision

	cfg.Output = schema.OutputMode(strings.ToLower(input.Output))
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid output format '%s'. must be text, csv, json, parquet", input.Output)
	}
	if cfg.Output == schema.ParquetOut && cfg.OutputFile == "" {
		return fmt.Errorf("parquet output requires --output-file")
	}
	if input.Width < 0 {
		return fmt.Errorf("width cannot be negative (received %d)", input.Width)
	}
	return nil
}

// processEndpoint validates the remote store URL. An empty endpoint is
// allowed here; commands that talk to the store reject it later.
func processEndpoint(cfg *Config, input *ConfigRawInput) error {
	cfg.Endpoint = strings.TrimSpace(input.Endpoint)
	if cfg.Endpoint == "" {
		return nil
	}
	u, err := url.Parse(cfg.Endpoint)
	if err != nil {
		return fmt.Errorf("invalid endpoint '%s': %w", cfg.Endpoint, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("endpoint must be an http or https URL (received '%s')", cfg.Endpoint)
	}
	if u.Host == "" {
		return fmt.Errorf("endpoint '%s' has no host", cfg.Endpoint)
	}
	return nil
}

// processCriteria builds the report criteria.
func processCriteria(cfg *Config, input *ConfigRawInput, now time.Time) error {
	base := schema.Criteria{Zone: schema.Zones[0], Year: now.Year(), Month: int(now.Month()) - 1, Shift: schema.ShiftAll}
	criteria, err := OverrideCriteria(base, input.Zone, input.Year, input.Month, input.Shift)
	if err != nil {
		return err
	}
	cfg.Criteria = criteria
	return nil
}

// OverrideCriteria returns base with every non-empty argument applied.
// A zero year keeps the base year; month accepts 1-12 or a month name.
func OverrideCriteria(base schema.Criteria, zone string, year int, month, shift string) (schema.Criteria, error) {
	c := base
	if z := strings.TrimSpace(zone); z != "" {
		c.Zone = z
	}

	if year != 0 {
		c.Year = year
	}
	if c.Year < 1900 || c.Year > 9999 {
		return base, fmt.Errorf("year must be between 1900 and 9999 (received %d)", c.Year)
	}

	if strings.TrimSpace(month) != "" {
		m, err := schema.ParseMonth(month)
		if err != nil {
			return base, err
		}
		c.Month = m
	}

	if strings.TrimSpace(shift) != "" {
		c.Shift = schema.ParseShift(shift)
		if c.Shift == schema.NoShift {
			return base, fmt.Errorf("invalid shift '%s'. must be all, morning, afternoon", shift)
		}
	}
	return c, nil
}

// processDurations parses the network and confirmation timings.
func processDurations(cfg *Config, input *ConfigRawInput) error {
	var err error
	if cfg.Timeout, err = parseDuration("timeout", input.Timeout, DefaultTimeout); err != nil {
		return err
	}
	if cfg.ConfirmTimeout, err = parseDuration("confirm-timeout", input.ConfirmTimeout, DefaultConfirmTimeout); err != nil {
		return err
	}
	if cfg.ConfirmInterval, err = parseDuration("confirm-interval", input.ConfirmInterval, DefaultConfirmInterval); err != nil {
		return err
	}
	if cfg.ConfirmInterval > cfg.ConfirmTimeout {
		return fmt.Errorf("confirm-interval (%s) cannot exceed confirm-timeout (%s)", cfg.ConfirmInterval, cfg.ConfirmTimeout)
	}
	return nil
}

// parseDuration accepts Go durations ("1m30s") or a bare number of seconds.
func parseDuration(name, s string, fallback time.Duration) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		secs, convErr := strconv.Atoi(s)
		if convErr != nil {
			return 0, fmt.Errorf("invalid %s '%s': %w", name, s, err)
		}
		d = time.Duration(secs) * time.Second
	}
	if d <= 0 {
		return 0, fmt.Errorf("%s must be positive (received %s)", name, s)
	}
	return d, nil
}

// validateBackendConfigs validates cache and ledger backend configurations.
func validateBackendConfigs(cfg *Config, input *ConfigRawInput) error {
	// --- Cache Backend Validation ---
	cfg.CacheBackend = schema.DatabaseBackend(strings.ToLower(input.CacheBackend))
	if _, ok := schema.ValidDatabaseBackends[cfg.CacheBackend]; !ok {
		return fmt.Errorf("invalid cache backend '%s'. must be sqlite, mysql, postgresql, none", input.CacheBackend)
	}
	cfg.CacheDBConnect = input.CacheDBConnect
	if err := ValidateDatabaseConnectionString(cfg.CacheBackend, cfg.CacheDBConnect); err != nil {
		return fmt.Errorf("cache-db-connect: %w", err)
	}

	// --- Ledger Backend Validation ---
	cfg.LedgerBackend = schema.DatabaseBackend(strings.ToLower(input.LedgerBackend))
	if _, ok := schema.ValidDatabaseBackends[cfg.LedgerBackend]; !ok {
		return fmt.Errorf("invalid ledger backend '%s'. must be sqlite, mysql, postgresql, none", input.LedgerBackend)
	}
	cfg.LedgerDBConnect = input.LedgerDBConnect
	if err := ValidateDatabaseConnectionString(cfg.LedgerBackend, cfg.LedgerDBConnect); err != nil {
		return fmt.Errorf("ledger-db-connect: %w", err)
	}

	// For SQLite, resolve to actual file paths to catch default path conflicts
	if cfg.CacheBackend == schema.SQLiteBackend && cfg.LedgerBackend == schema.SQLiteBackend {
		cachePath := cfg.CacheDBConnect
		if cachePath == "" {
			cachePath = GetCacheDBFilePath()
		}
		ledgerPath := cfg.LedgerDBConnect
		if ledgerPath == "" {
			ledgerPath = GetLedgerDBFilePath()
		}
		if cachePath == ledgerPath {
			return fmt.Errorf("cache and ledger storage must use different SQLite database files. Both resolve to %q", cachePath)
		}
	}
	return nil
}

// processLimits converts the zone range overrides, filling missing ranges
// from the DEFAULT limits.
func processLimits(cfg *Config, input *ConfigRawInput) error {
	cfg.Limits = nil
	for i, raw := range input.Limits {
		key := strings.TrimSpace(raw.Zone)
		if key == "" {
			return fmt.Errorf("limits[%d]: zone is required", i)
		}
		entry := schema.ZoneLimitEntry{Key: strings.ToUpper(key), Limits: schema.DefaultLimits}
		if raw.Temperature != nil {
			entry.Limits.Temperature = *raw.Temperature
		}
		if raw.Humidity != nil {
			entry.Limits.Humidity = *raw.Humidity
		}
		for _, r := range []schema.Range{entry.Limits.Temperature, entry.Limits.Humidity} {
			if r.Min > r.Max {
				return fmt.Errorf("limits[%d] (%s): min %.1f is greater than max %.1f", i, key, r.Min, r.Max)
			}
		}
		cfg.Limits = append(cfg.Limits, entry)
	}
	return nil
}
