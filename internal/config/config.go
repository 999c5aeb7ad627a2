// Package config loads the one documented tunable spec.md's Large Value
// Store actually exposes — the disk-spill byte threshold — plus the
// store-backend selection this expansion adds (SPEC_FULL.md §3.1).
// Grounded on the teacher's internal/config.LoadConfig: environment
// variables with defaults, optionally seeded from a .env file via
// github.com/joho/godotenv.
package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Backend names accepted by StoreConfig.Backend.
const (
	BackendMemory = "memory"
	BackendJSONL  = "jsonl"
	BackendSQLite = "sqlite"
)

// DefaultSpillThresholdBytes is the byte estimate above which a candidate
// collection spills to disk instead of staying in memory, absent an
// override.
const DefaultSpillThresholdBytes = 8 << 20 // 8 MiB

// StoreConfig configures internal/store.New's backend selection.
type StoreConfig struct {
	// Backend is one of BackendMemory, BackendJSONL, BackendSQLite. Empty
	// means "decide automatically from the byte estimate" (jsonl is the
	// spill target).
	Backend string
	// SpillThresholdBytes is the policy.EstimateTotal cutoff above which
	// an automatically-chosen backend spills to disk.
	SpillThresholdBytes int64
	// DSN, AuthToken, Debug configure the sqlite backend's connection
	// (see internal/store.SQLiteConfig). Unused by the other backends.
	DSN       string
	AuthToken string
	Debug     bool
}

// envPrefix mirrors the teacher's MORFX_ convention, renamed to this
// module.
const envPrefix = "VMATCH_"

// Load reads StoreConfig from the environment, optionally after loading a
// .env file (ignored if absent — godotenv.Load returns an error the
// teacher's LoadConfig would also have silently tolerated, since picking
// up a .env file is a convenience, not a requirement).
func Load() StoreConfig {
	_ = godotenv.Load()

	cfg := StoreConfig{
		Backend:             os.Getenv(envPrefix + "STORE_BACKEND"),
		SpillThresholdBytes: DefaultSpillThresholdBytes,
		DSN:                 os.Getenv(envPrefix + "STORE_DSN"),
		AuthToken:           os.Getenv(envPrefix + "STORE_AUTH_TOKEN"),
	}

	if v := os.Getenv(envPrefix + "STORE_SPILL_THRESHOLD_BYTES"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil && n > 0 {
			cfg.SpillThresholdBytes = n
		}
	}
	if v := os.Getenv(envPrefix + "STORE_DEBUG"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Debug = b
		}
	}

	return cfg
}
