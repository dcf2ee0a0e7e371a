package iocache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/huangsam/thermolog/internal/contract"
	"github.com/huangsam/thermolog/schema"
)

// snapshotVersion is bumped whenever schema.Snapshot changes shape.
const snapshotVersion = 1

// ErrNoSnapshot is returned when no usable snapshot exists for an endpoint.
var ErrNoSnapshot = errors.New("no cached snapshot")

// SnapshotKey is the cache key of the last fetch from endpoint. The endpoint
// is hashed so the key fits the cache_key column whatever the URL length.
func SnapshotKey(endpoint string) string {
	sum := sha256.Sum256([]byte(endpoint))
	return "snapshot:" + hex.EncodeToString(sum[:])
}

// SaveSnapshot stores the raw rows of a successful fetch.
func SaveSnapshot(store contract.CacheStore, snap schema.Snapshot) error {
	if store == nil {
		return nil
	}
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}
	return store.Set(SnapshotKey(snap.Endpoint), data, snapshotVersion, snap.FetchedAt.Unix())
}

// LoadSnapshot returns the last stored fetch for endpoint.
func LoadSnapshot(store contract.CacheStore, endpoint string) (schema.Snapshot, error) {
	var snap schema.Snapshot
	if store == nil {
		return snap, ErrNoSnapshot
	}
	data, version, ts, err := store.Get(SnapshotKey(endpoint))
	if err != nil {
		return snap, fmt.Errorf("%w for %s: %v", ErrNoSnapshot, endpoint, err)
	}
	if version != snapshotVersion {
		return snap, fmt.Errorf("%w for %s: version %d is not %d", ErrNoSnapshot, endpoint, version, snapshotVersion)
	}
	if err := json.Unmarshal(data, &snap); err != nil {
		return snap, fmt.Errorf("%w for %s: %v", ErrNoSnapshot, endpoint, err)
	}
	if snap.FetchedAt.IsZero() {
		snap.FetchedAt = time.Unix(ts, 0)
	}
	return snap, nil
}
