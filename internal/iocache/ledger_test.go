package iocache

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/huangsam/thermolog/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSubmission(id string, status schema.SubmissionStatus, at time.Time) schema.Submission {
	rec := schema.Record{
		Date: "2024-03-15", Shift: schema.MorningShift, Zone: "OPTICA", RecordedBy: "Ana",
		Kind: schema.TemperatureKind, TempCurrent: schema.Float(24.5),
	}
	return schema.Submission{
		ID:          id,
		Fingerprint: rec.Fingerprint(),
		Status:      status,
		Record:      rec,
		SubmittedAt: at,
	}
}

func TestLedgerStore_SQLite(t *testing.T) {
	store, err := NewLedgerStore(schema.SQLiteBackend, filepath.Join(t.TempDir(), "ledger.db"))
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	base := time.Date(2024, 3, 15, 8, 0, 0, 0, time.UTC)
	first := newTestSubmission("a", schema.PendingStatus, base)
	second := newTestSubmission("b", schema.FailedStatus, base.Add(time.Minute))
	second.LastError = "dial tcp: connection refused"

	require.NoError(t, store.Save(first))
	require.NoError(t, store.Save(second))

	got, err := store.Get("a")
	require.NoError(t, err)
	assert.Equal(t, schema.PendingStatus, got.Status)
	assert.Equal(t, first.Fingerprint, got.Fingerprint)
	assert.Equal(t, 24.5, *got.Record.TempCurrent)
	assert.Nil(t, got.Record.HumCurrent)
	assert.True(t, base.Equal(got.SubmittedAt))
	assert.Nil(t, got.ResolvedAt)

	// Update in place
	resolved := base.Add(2 * time.Second)
	first.Status = schema.ConfirmedStatus
	first.ResolvedAt = &resolved
	require.NoError(t, store.Save(first))

	got, err = store.Get("a")
	require.NoError(t, err)
	assert.Equal(t, schema.ConfirmedStatus, got.Status)
	require.NotNil(t, got.ResolvedAt)
	assert.True(t, resolved.Equal(*got.ResolvedAt))

	all, err := store.List("", 10)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "b", all[0].ID)
	assert.Equal(t, "dial tcp: connection refused", all[0].LastError)

	failed, err := store.List(schema.FailedStatus, 0)
	require.NoError(t, err)
	require.Len(t, failed, 1)
	assert.Equal(t, "b", failed[0].ID)

	status, err := store.GetStatus()
	require.NoError(t, err)
	assert.Equal(t, 2, status.TotalSubmissions)
	assert.Equal(t, 1, status.ByStatus[schema.ConfirmedStatus])
	assert.Equal(t, 1, status.ByStatus[schema.FailedStatus])
	assert.True(t, base.Add(time.Minute).Equal(status.LastSubmitted))

	_, err = store.Get("missing")
	assert.ErrorIs(t, err, schema.ErrSubmissionNotFound)

	require.NoError(t, store.Clear())
	all, err = store.List("", 10)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestLedgerStore_RejectsEmptyID(t *testing.T) {
	store, err := NewLedgerStore(schema.SQLiteBackend, filepath.Join(t.TempDir(), "ledger.db"))
	require.NoError(t, err)
	defer func() { _ = store.Close() }()
	assert.Error(t, store.Save(schema.Submission{}))
}

func TestLedgerStore_None(t *testing.T) {
	store, err := NewLedgerStore(schema.NoneBackend, "")
	require.NoError(t, err)

	assert.NoError(t, store.Save(newTestSubmission("a", schema.PendingStatus, time.Now())))
	_, err = store.Get("a")
	assert.ErrorIs(t, err, schema.ErrSubmissionNotFound)

	subs, err := store.List("", 10)
	require.NoError(t, err)
	assert.Empty(t, subs)

	status, err := store.GetStatus()
	require.NoError(t, err)
	assert.False(t, status.Connected)
	assert.NoError(t, store.Clear())
	assert.NoError(t, store.Close())
}

func TestGetUpsertSubmissionQuery(t *testing.T) {
	assert.Contains(t, (&LedgerStoreImpl{backend: schema.SQLiteBackend}).getUpsertSubmissionQuery(), "INSERT OR REPLACE")
	assert.Contains(t, (&LedgerStoreImpl{backend: schema.MySQLBackend}).getUpsertSubmissionQuery(), "ON DUPLICATE KEY UPDATE")
	assert.Contains(t, (&LedgerStoreImpl{backend: schema.PostgreSQLBackend}).getUpsertSubmissionQuery(), "ON CONFLICT (submission_id)")
}

func TestMigrateLedger_SQLite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ledger.db")

	require.NoError(t, MigrateLedger(schema.SQLiteBackend, path, -1))
	// Running again is a no-op
	require.NoError(t, MigrateLedger(schema.SQLiteBackend, path, -1))

	store, err := NewLedgerStore(schema.SQLiteBackend, path)
	require.NoError(t, err)
	require.NoError(t, store.Save(newTestSubmission("a", schema.PendingStatus, time.Now())))
	require.NoError(t, store.Close())

	require.NoError(t, MigrateLedger(schema.SQLiteBackend, path, 0))
	assert.Error(t, MigrateLedger(schema.NoneBackend, "", -1))
}

func TestClearLedger(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ledger.db")
	store, err := NewLedgerStore(schema.SQLiteBackend, path)
	require.NoError(t, err)
	require.NoError(t, store.Close())

	assert.NoError(t, ClearLedger(schema.SQLiteBackend, path, ""))
	assert.NoError(t, ClearLedger(schema.NoneBackend, "", ""))
}
