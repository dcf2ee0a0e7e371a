// Package schema has configs, models and enumerations for all parts of thermolog.
package schema

import "time"

// Snapshot is one fetched copy of the remote dataset as stored in the cache.
type Snapshot struct {
	Endpoint  string      `json:"endpoint"`
	FetchedAt time.Time   `json:"fetched_at"`
	Rows      []RawRecord `json:"rows"`
}
