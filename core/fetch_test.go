package core

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/huangsam/thermolog/internal/contract"
	"github.com/huangsam/thermolog/internal/iocache"
	"github.com/huangsam/thermolog/internal/remote"
	"github.com/huangsam/thermolog/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const testEndpoint = "https://sheets.example.com/exec"

func managerWith(snapshot contract.CacheStore) *iocache.MockCacheManager {
	mgr := &iocache.MockCacheManager{}
	mgr.On("GetSnapshotStore").Return(snapshot)
	return mgr
}

func TestFetchRecords_SavesSnapshot(t *testing.T) {
	store := &remote.MockRecordStore{}
	store.On("Fetch", mock.Anything).Return(sheetRows(), nil)

	cache := &iocache.MockCacheStore{}
	cache.On("Set", iocache.SnapshotKey(testEndpoint), mock.Anything, 1, mock.Anything).Return(nil)

	cfg := &contract.Config{Endpoint: testEndpoint}
	ev := fetchRecords(context.Background(), cfg, store, managerWith(cache))

	assert.Len(t, ev.Records, len(sheetRows()))
	assert.False(t, ev.FetchedAt.IsZero())
	cache.AssertExpectations(t)
}

func TestFetchRecords_FailureYieldsEmptyDataset(t *testing.T) {
	store := &remote.MockRecordStore{}
	store.On("Fetch", mock.Anything).Return(nil, errors.New("dial tcp: connection refused"))

	cache := &iocache.MockCacheStore{}
	cfg := &contract.Config{Endpoint: testEndpoint}
	ev := fetchRecords(context.Background(), cfg, store, managerWith(cache))

	assert.NotNil(t, ev.Records)
	assert.Empty(t, ev.Records)
	cache.AssertNotCalled(t, "Set", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestFetchRecords_SnapshotErrorIsNotFatal(t *testing.T) {
	store := &remote.MockRecordStore{}
	store.On("Fetch", mock.Anything).Return(sheetRows(), nil)

	cache := &iocache.MockCacheStore{}
	cache.On("Set", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(errors.New("disk full"))

	ev := fetchRecords(context.Background(), &contract.Config{Endpoint: testEndpoint}, store, managerWith(cache))
	assert.Len(t, ev.Records, len(sheetRows()))
}

func TestFetchRecords_NilManager(t *testing.T) {
	store := &remote.MockRecordStore{}
	store.On("Fetch", mock.Anything).Return(sheetRows()[:2], nil)

	ev := fetchRecords(context.Background(), &contract.Config{Endpoint: testEndpoint}, store, nil)
	assert.Len(t, ev.Records, 2)
}

func TestFetchRecords_Offline(t *testing.T) {
	fetchedAt := time.Date(2024, 3, 19, 18, 0, 0, 0, time.UTC)
	data, err := json.Marshal(schema.Snapshot{Endpoint: testEndpoint, FetchedAt: fetchedAt, Rows: sheetRows()})
	require.NoError(t, err)

	cache := &iocache.MockCacheStore{}
	cache.On("Get", iocache.SnapshotKey(testEndpoint)).Return(data, 1, fetchedAt.Unix(), nil)

	store := &remote.MockRecordStore{}
	cfg := &contract.Config{Endpoint: testEndpoint, Offline: true}
	ev := fetchRecords(WithQuiet(context.Background()), cfg, store, managerWith(cache))

	assert.Len(t, ev.Records, len(sheetRows()))
	assert.True(t, fetchedAt.Equal(ev.FetchedAt))
	store.AssertNotCalled(t, "Fetch", mock.Anything)
}

func TestFetchRecords_OfflineWithoutSnapshot(t *testing.T) {
	cache := &iocache.MockCacheStore{}
	cache.On("Get", mock.Anything).Return(nil, 0, int64(0), errors.New("sql: no rows in result set"))

	cfg := &contract.Config{Endpoint: testEndpoint, Offline: true}
	ev := fetchRecords(context.Background(), cfg, &remote.MockRecordStore{}, managerWith(cache))
	assert.Empty(t, ev.Records)
}
