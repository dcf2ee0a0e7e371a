// Package contract provides interfaces and shared utilities for internal architecture.
package contract

import (
	"context"

	"github.com/huangsam/thermolog/schema"
)

// RecordStore is the remote read/append log holding every submitted reading.
// This allows the ingestion and submission logic to be tested without a live endpoint.
type RecordStore interface {
	// Fetch returns every raw row currently held by the store.
	Fetch(ctx context.Context) ([]schema.RawRecord, error)

	// Append dispatches one canonical record. A nil error only means the
	// request left the client; it says nothing about the store accepting it.
	Append(ctx context.Context, rec schema.Record) error
}

// CacheManager defines the interface for managing cache stores.
// This allows the cache layer to be mocked for testing.
type CacheManager interface {
	GetSnapshotStore() CacheStore
	GetLedgerStore() LedgerStore
}

// CacheStore defines the interface for cache data storage.
// This allows mocking the store for testing.
type CacheStore interface {
	Get(key string) ([]byte, int, int64, error)
	Set(key string, value []byte, version int, timestamp int64) error
	GetStatus() (schema.CacheStatus, error)
	Clear() error
	Close() error
}

// LedgerStore keeps the status of every submission across runs.
type LedgerStore interface {
	// Save inserts or updates a submission by ID.
	Save(sub schema.Submission) error

	// Get returns one submission by ID.
	Get(id string) (schema.Submission, error)

	// List returns submissions newest first. An empty status lists all of them.
	List(status schema.SubmissionStatus, limit int) ([]schema.Submission, error)

	// GetStatus returns status information about the ledger store
	GetStatus() (schema.LedgerStatus, error)

	// Clear removes every submission.
	Clear() error

	// Close closes the underlying connection
	Close() error
}
