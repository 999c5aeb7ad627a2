package store

import (
	"github.com/oxhq/vmatch/internal/config"
	"github.com/oxhq/vmatch/internal/value"
)

// New builds a LargeValueStore for items, choosing a backend per
// SPEC_FULL.md §3.1:
//
//   - memoryStore when cfg.Backend is BackendMemory, or when it's empty
//     and estimateBytes stays under cfg.SpillThresholdBytes.
//   - sqliteStore when cfg.Backend is BackendSQLite — an explicit opt-in,
//     independent of the byte estimate.
//   - diskStore (JSONL) otherwise — the default spill target, matching
//     spec.md §4.2's baseline.
//
// estimateBytes is normally policy.EstimateTotal(items); callers that
// already know the cost (e.g. from a prior pass) may pass it directly.
func New(items []value.Value, estimateBytes int64, cfg config.StoreConfig) (LargeValueStore, error) {
	switch cfg.Backend {
	case config.BackendMemory:
		return newMemoryStore(items), nil
	case config.BackendSQLite:
		return newSQLiteStore(items, SQLiteConfig{DSN: cfg.DSN, AuthToken: cfg.AuthToken, Debug: cfg.Debug})
	case config.BackendJSONL:
		return newDiskStore(items)
	default:
		threshold := cfg.SpillThresholdBytes
		if threshold <= 0 {
			threshold = config.DefaultSpillThresholdBytes
		}
		if estimateBytes < threshold {
			return newMemoryStore(items), nil
		}
		return newDiskStore(items)
	}
}
