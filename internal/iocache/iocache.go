// Package iocache is for caching I/O calls and keeping the submission ledger.
package iocache

import (
	"sync"

	"github.com/huangsam/thermolog/internal/contract"
)

// CacheStoreManager manages the snapshot cache and the submission ledger.
type CacheStoreManager struct {
	sync.RWMutex // Protects the store pointers during initialization
	snapshot     contract.CacheStore
	ledger       contract.LedgerStore
}

var _ contract.CacheManager = &CacheStoreManager{} // Compile-time check

// NewCacheStoreManager wires already-opened stores, mostly for tests and
// for callers that do not use the global Manager.
func NewCacheStoreManager(snapshot contract.CacheStore, ledger contract.LedgerStore) *CacheStoreManager {
	return &CacheStoreManager{snapshot: snapshot, ledger: ledger}
}

// GetSnapshotStore returns the snapshot CacheStore.
func (mgr *CacheStoreManager) GetSnapshotStore() contract.CacheStore {
	mgr.RLock()
	defer mgr.RUnlock()
	return mgr.snapshot
}

// GetLedgerStore returns the submission LedgerStore.
func (mgr *CacheStoreManager) GetLedgerStore() contract.LedgerStore {
	mgr.RLock()
	defer mgr.RUnlock()
	return mgr.ledger
}
