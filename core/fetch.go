package core

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/huangsam/thermolog/core/norm"
	"github.com/huangsam/thermolog/internal/contract"
	"github.com/huangsam/thermolog/internal/iocache"
	"github.com/huangsam/thermolog/schema"
)

// snapshotStore returns the snapshot store of mgr, tolerating a nil manager.
func snapshotStore(mgr contract.CacheManager) contract.CacheStore {
	if mgr == nil {
		return nil
	}
	return mgr.GetSnapshotStore()
}

// ledgerStore returns the ledger store of mgr, tolerating a nil manager.
func ledgerStore(mgr contract.CacheManager) contract.LedgerStore {
	if mgr == nil {
		return nil
	}
	return mgr.GetLedgerStore()
}

// fetchRecords loads the dataset and returns it as a FetchCompleted event.
//
// Online, the rows come from store and are saved as the endpoint's snapshot.
// Offline, the last snapshot is read instead. Any failure is logged and
// yields an empty dataset so callers still render an (empty) report.
func fetchRecords(ctx context.Context, cfg *contract.Config, store contract.RecordStore, mgr contract.CacheManager) FetchCompleted {
	empty := FetchCompleted{Records: []schema.Record{}, FetchedAt: time.Now()}

	if cfg.Offline {
		snap, err := iocache.LoadSnapshot(snapshotStore(mgr), cfg.Endpoint)
		if err != nil {
			contract.LogWarn("Cannot read offline snapshot", err)
			return empty
		}
		if !isQuiet(ctx) {
			fmt.Fprintf(os.Stderr, "📦 Using snapshot of %d rows from %s\n", len(snap.Rows), snap.FetchedAt.Format(contract.DateTimeFormat))
		}
		return FetchCompleted{Records: norm.NormalizeAll(snap.Rows), FetchedAt: snap.FetchedAt}
	}

	rows, err := store.Fetch(ctx)
	if err != nil {
		contract.LogWarn("Cannot fetch readings", err)
		return empty
	}

	fetchedAt := time.Now()
	snap := schema.Snapshot{Endpoint: cfg.Endpoint, FetchedAt: fetchedAt, Rows: rows}
	if err := iocache.SaveSnapshot(snapshotStore(mgr), snap); err != nil {
		contract.LogWarn("Cannot save snapshot", err)
	}
	return FetchCompleted{Records: norm.NormalizeAll(rows), FetchedAt: fetchedAt}
}

// loadState builds the state for cfg and reduces one fetch into it.
func loadState(ctx context.Context, cfg *contract.Config, store contract.RecordStore, mgr contract.CacheManager) State {
	state := NewState(cfg.Criteria, limitTable(cfg))
	return Reduce(state, fetchRecords(ctx, cfg, store, mgr))
}
