package schema

import "time"

// CacheStatus represents the status of the cache store.
type CacheStatus struct {
	Backend         string    `json:"backend"`
	Connected       bool      `json:"connected"`
	TotalEntries    int       `json:"total_entries"`
	LastEntryTime   time.Time `json:"last_entry_time"`
	OldestEntryTime time.Time `json:"oldest_entry_time"`
	TableSizeBytes  int64     `json:"table_size_bytes"`
}

// LedgerStatus represents the status of the submission ledger.
type LedgerStatus struct {
	Backend          string                   `json:"backend"`
	Connected        bool                     `json:"connected"`
	TotalSubmissions int                      `json:"total_submissions"`
	ByStatus         map[SubmissionStatus]int `json:"by_status"`
	LastSubmitted    time.Time                `json:"last_submitted"`
}

// Submission tracks one write through the pending → confirmed/stale protocol.
type Submission struct {
	ID          string           `json:"id"`
	Fingerprint string           `json:"fingerprint"`
	Status      SubmissionStatus `json:"status"`
	Record      Record           `json:"record"`
	SubmittedAt time.Time        `json:"submitted_at"`
	ResolvedAt  *time.Time       `json:"resolved_at,omitempty"`
	LastError   string           `json:"last_error,omitempty"`
}

// Resolved reports whether the submission left the pending state.
func (s *Submission) Resolved() bool {
	return s.Status != PendingStatus
}

// Form is what an operator types in before submitting a reading.
// Numeric inputs stay strings until submission so that decimal commas and
// blanks are handled by the same tolerant parser as remote data.
type Form struct {
	Kind       Kind   `json:"kind"`
	Date       string `json:"date"`
	Time       string `json:"time,omitempty"`
	Shift      Shift  `json:"shift"`
	Zone       string `json:"zone"`
	RecordedBy string `json:"recordedBy"`
	Notes      string `json:"notes,omitempty"`
	Min        string `json:"min,omitempty"`
	Current    string `json:"current"`
	Max        string `json:"max,omitempty"`
}
