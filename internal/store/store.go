// Package store implements the Large Value Store (spec.md §4.2): a
// streaming container abstraction the match engine iterates over instead
// of holding every candidate list in memory. Small collections stay in a
// plain slice; large ones spill to disk (default) or to a SQLite database
// (opt-in, grounded on the teacher's db.Connect), chosen by
// internal/config.StoreConfig and the byte-size estimate in policy.go.
package store

import "github.com/oxhq/vmatch/internal/value"

// LargeValueStore is a sequence of values supporting O(1) size, random
// access, and single-pass iteration. Implementations hold an exclusive
// backing resource (an open file, a DB handle) that Close releases;
// every method after Close returns ErrClosed.
type LargeValueStore interface {
	// Size returns the number of elements. O(1).
	Size() int
	// Get returns the i-th element. O(log n) at worst (disk-backed store
	// does one seek plus one buffered read).
	Get(i int) (value.Value, error)
	// Iterator returns a fresh single-pass cursor over the store.
	Iterator() Iterator
	// Close releases the backing resource. Idempotent.
	Close() error
}

// Iterator is a single-pass cursor. The disk and SQLite iterators hold a
// handle of their own (an open file, a row cursor) that is released when
// Next reaches the end or hits an error; an iterator abandoned before that
// keeps its handle open, and closing the store does not release it.
type Iterator interface {
	// Next advances the cursor and reports whether a value is available.
	Next() bool
	// Value returns the element at the current cursor position. Only
	// valid after a Next call that returned true.
	Value() value.Value
	// Err returns the first error encountered during iteration, if any.
	Err() error
}
