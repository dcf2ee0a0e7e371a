// Package rules resolves zone limits and flags readings outside them.
package rules

import (
	"strings"

	"github.com/huangsam/thermolog/schema"
)

// Table is an ordered zone limit table. Entries are matched by substring,
// first match wins, and a DEFAULT entry always exists.
// A Table is never mutated after construction.
type Table struct {
	entries  []schema.ZoneLimitEntry
	fallback schema.ZoneLimits
}

// builtinEntries are the cold-storage zones of the facility.
var builtinEntries = []schema.ZoneLimitEntry{
	{Key: "CONGELADOR", Limits: schema.ZoneLimits{Temperature: schema.Range{Min: -25, Max: -15}, Humidity: schema.DefaultLimits.Humidity}},
	{Key: "FREEZER", Limits: schema.ZoneLimits{Temperature: schema.Range{Min: -25, Max: -15}, Humidity: schema.DefaultLimits.Humidity}},
	{Key: "NEVERA", Limits: schema.ZoneLimits{Temperature: schema.Range{Min: 2, Max: 8}, Humidity: schema.DefaultLimits.Humidity}},
	{Key: "REFRIGERADOR", Limits: schema.ZoneLimits{Temperature: schema.Range{Min: 2, Max: 8}, Humidity: schema.DefaultLimits.Humidity}},
	{Key: "FRIDGE", Limits: schema.ZoneLimits{Temperature: schema.Range{Min: 2, Max: 8}, Humidity: schema.DefaultLimits.Humidity}},
}

// DefaultTable returns the built-in zone limit table.
func DefaultTable() *Table {
	return NewTable(nil)
}

// NewTable builds a table whose overrides are consulted before the built-in
// entries. An override keyed DEFAULT replaces the fallback limits.
func NewTable(overrides []schema.ZoneLimitEntry) *Table {
	t := &Table{fallback: schema.DefaultLimits}
	for _, e := range overrides {
		key := strings.ToUpper(strings.TrimSpace(e.Key))
		if key == "" {
			continue
		}
		if key == schema.DefaultZoneKey {
			t.fallback = e.Limits
			continue
		}
		t.entries = append(t.entries, schema.ZoneLimitEntry{Key: key, Limits: e.Limits})
	}
	t.entries = append(t.entries, builtinEntries...)
	return t
}

// Resolve returns the limits of the first entry whose key is contained in
// zone, ignoring case, or the DEFAULT limits.
func (t *Table) Resolve(zone string) schema.ZoneLimits {
	upper := strings.ToUpper(zone)
	for _, e := range t.entries {
		if strings.Contains(upper, e.Key) {
			return e.Limits
		}
	}
	return t.fallback
}

// Entries lists the table in match order, DEFAULT last.
func (t *Table) Entries() []schema.ZoneLimitEntry {
	out := make([]schema.ZoneLimitEntry, 0, len(t.entries)+1)
	out = append(out, t.entries...)
	return append(out, schema.ZoneLimitEntry{Key: schema.DefaultZoneKey, Limits: t.fallback})
}
