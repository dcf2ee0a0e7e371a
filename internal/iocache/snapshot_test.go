package iocache

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/huangsam/thermolog/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestSnapshotRoundTrip(t *testing.T) {
	store, err := NewCacheStore(snapshotTable, schema.SQLiteBackend, filepath.Join(t.TempDir(), "cache.db"))
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	fetched := time.Date(2024, 3, 15, 9, 0, 0, 0, time.UTC)
	snap := schema.Snapshot{
		Endpoint:  "https://example.com/exec",
		FetchedAt: fetched,
		Rows:      []schema.RawRecord{{"Fecha": "2024-03-15", "Actual": "24,5"}},
	}
	require.NoError(t, SaveSnapshot(store, snap))

	got, err := LoadSnapshot(store, snap.Endpoint)
	require.NoError(t, err)
	assert.True(t, fetched.Equal(got.FetchedAt))
	require.Len(t, got.Rows, 1)
	assert.Equal(t, "24,5", got.Rows[0]["Actual"])

	_, err = LoadSnapshot(store, "https://other.example.com")
	assert.ErrorIs(t, err, ErrNoSnapshot)
}

func TestSnapshotKey(t *testing.T) {
	short := SnapshotKey("https://example.com/exec")
	long := SnapshotKey("https://script.google.com/macros/s/" + strings.Repeat("A", 400) + "/exec?sheet=Registros&format=json")

	assert.Len(t, short, len("snapshot:")+64)
	assert.Len(t, long, len(short))
	assert.LessOrEqual(t, len(long), 255)
	assert.NotEqual(t, short, long)
	assert.Equal(t, short, SnapshotKey("https://example.com/exec"))
	assert.NotContains(t, short, "example.com")
}

func TestSnapshotRoundTrip_LongEndpoint(t *testing.T) {
	store, err := NewCacheStore(snapshotTable, schema.SQLiteBackend, filepath.Join(t.TempDir(), "cache.db"))
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	endpoint := "https://script.google.com/macros/s/" + strings.Repeat("x", 300) + "/exec"
	require.NoError(t, SaveSnapshot(store, schema.Snapshot{Endpoint: endpoint, FetchedAt: time.Now(), Rows: []schema.RawRecord{{"Actual": "20"}}}))

	got, err := LoadSnapshot(store, endpoint)
	require.NoError(t, err)
	assert.Equal(t, endpoint, got.Endpoint)
	require.Len(t, got.Rows, 1)
}

func TestLoadSnapshot_VersionMismatch(t *testing.T) {
	store := &MockCacheStore{}
	store.On("Get", SnapshotKey("e")).Return([]byte(`{}`), snapshotVersion+1, int64(0), nil)

	_, err := LoadSnapshot(store, "e")
	assert.ErrorIs(t, err, ErrNoSnapshot)
	store.AssertExpectations(t)
}

func TestSnapshot_NilStore(t *testing.T) {
	assert.NoError(t, SaveSnapshot(nil, schema.Snapshot{}))
	_, err := LoadSnapshot(nil, "e")
	assert.ErrorIs(t, err, ErrNoSnapshot)
}

func TestSaveSnapshot_StoreError(t *testing.T) {
	store := &MockCacheStore{}
	store.On("Set", SnapshotKey("e"), mock.Anything, snapshotVersion, mock.Anything).Return(errors.New("disk full"))
	assert.Error(t, SaveSnapshot(store, schema.Snapshot{Endpoint: "e"}))
}
