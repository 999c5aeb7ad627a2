package config

import (
	"github.com/spf13/pflag"
)

// BindFlags registers the store-backend flags onto fs, defaulting every
// value to whatever base already holds (normally the output of Load()),
// and returns a function that must be called after fs.Parse to produce
// the final StoreConfig. Grounded on the teacher's
// internal/config.BuildConfigFromFlags — pflag vars bound up front,
// resolved into a config value once parsing is done.
func BindFlags(fs *pflag.FlagSet, base StoreConfig) func() StoreConfig {
	backend := fs.String("store-backend", base.Backend, "large value store backend: memory, jsonl, or sqlite")
	threshold := fs.Int64("store-spill-threshold-bytes", base.SpillThresholdBytes, "byte estimate above which a collection spills out of memory")
	dsn := fs.String("store-dsn", base.DSN, "sqlite backend DSN (file path, or libsql:// / https:// for a remote database)")
	authToken := fs.String("store-auth-token", base.AuthToken, "auth token for a remote libsql DSN")
	debug := fs.Bool("store-debug", base.Debug, "enable verbose gorm logging for the sqlite backend")

	return func() StoreConfig {
		return StoreConfig{
			Backend:             *backend,
			SpillThresholdBytes: *threshold,
			DSN:                 *dsn,
			AuthToken:           *authToken,
			Debug:               debug != nil && *debug,
		}
	}
}
