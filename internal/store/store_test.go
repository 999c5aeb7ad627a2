package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oxhq/vmatch/internal/config"
	"github.com/oxhq/vmatch/internal/value"
)

func sampleItems() []value.Value {
	return []value.Value{
		value.Of("alpha"),
		value.Of(int64(42)),
		value.Of(true),
		value.NullValue(),
		value.Of([]any{1.0, 2.0, 3.0}),
	}
}

// assertStoreInvariants is the shared black-box suite SPEC_FULL.md §8
// promises "against all three backends (memory, JSONL, sqlite)": Size,
// Get and Iterator must all agree with items, in order, regardless of
// which LargeValueStore implementation is under test.
func assertStoreInvariants(t *testing.T, items []value.Value, s LargeValueStore) {
	t.Helper()

	require.Equal(t, len(items), s.Size())

	for i := range items {
		v, err := s.Get(i)
		require.NoError(t, err)
		assert.Equal(t, items[i].JSONString(), v.JSONString())
	}

	it := s.Iterator()
	n := 0
	for it.Next() {
		assert.Equal(t, items[n].JSONString(), it.Value().JSONString())
		n++
	}
	require.NoError(t, it.Err())
	assert.Equal(t, len(items), n)
}

func TestMemoryStoreSizeGetIterate(t *testing.T) {
	items := sampleItems()
	s := newMemoryStore(items)
	defer s.Close()
	assertStoreInvariants(t, items, s)
}

func TestMemoryStoreClosedAfterClose(t *testing.T) {
	s := newMemoryStore(sampleItems())
	require.NoError(t, s.Close())
	_, err := s.Get(0)
	assert.ErrorIs(t, err, ErrClosed)
}

func TestDiskStoreMatchesMemoryStore(t *testing.T) {
	items := sampleItems()
	ds, err := newDiskStore(items)
	require.NoError(t, err)
	defer ds.Close()
	assertStoreInvariants(t, items, ds)
}

func TestDiskStoreGetMatchesIteratorOrder(t *testing.T) {
	items := sampleItems()
	ds, err := newDiskStore(items)
	require.NoError(t, err)
	defer ds.Close()

	it := ds.Iterator()
	i := 0
	for it.Next() {
		viaGet, err := ds.Get(i)
		require.NoError(t, err)
		assert.Equal(t, it.Value().JSONString(), viaGet.JSONString())
		i++
	}
}

func TestDiskStoreClosedAfterClose(t *testing.T) {
	ds, err := newDiskStore(sampleItems())
	require.NoError(t, err)
	require.NoError(t, ds.Close())
	_, err = ds.Get(0)
	assert.ErrorIs(t, err, ErrClosed)
}

// newTestSQLiteStore opens an sqliteStore against the same in-memory DSN
// sqliteDialector falls back to for an empty SQLiteConfig.DSN
// ("file::memory:?cache=shared") — no on-disk file, no network, safe to
// run in any test environment.
func newTestSQLiteStore(t *testing.T, items []value.Value) *sqliteStore {
	t.Helper()
	s, err := newSQLiteStore(items, SQLiteConfig{})
	require.NoError(t, err)
	return s
}

func TestSQLiteStoreMatchesMemoryStore(t *testing.T) {
	items := sampleItems()
	s := newTestSQLiteStore(t, items)
	defer s.Close()
	assertStoreInvariants(t, items, s)
}

func TestSQLiteStoreGetMatchesIteratorOrder(t *testing.T) {
	items := sampleItems()
	s := newTestSQLiteStore(t, items)
	defer s.Close()

	it := s.Iterator()
	require.NoError(t, it.Err())
	i := 0
	for it.Next() {
		viaGet, err := s.Get(i)
		require.NoError(t, err)
		assert.Equal(t, it.Value().JSONString(), viaGet.JSONString())
		i++
	}
	require.NoError(t, it.Err())
}

func TestSQLiteStoreEmpty(t *testing.T) {
	s := newTestSQLiteStore(t, nil)
	defer s.Close()
	assert.Equal(t, 0, s.Size())

	it := s.Iterator()
	assert.False(t, it.Next())
	require.NoError(t, it.Err())

	_, err := s.Get(0)
	assert.ErrorIs(t, err, ErrOutOfRange)
}

func TestSQLiteStoreClosedAfterClose(t *testing.T) {
	s := newTestSQLiteStore(t, sampleItems())
	require.NoError(t, s.Close())
	_, err := s.Get(0)
	assert.ErrorIs(t, err, ErrClosed)
	// Close is idempotent, matching memoryStore/diskStore.
	require.NoError(t, s.Close())
}

func TestEstimateBytesGrowsWithNesting(t *testing.T) {
	flat := value.Of("hello")
	nested := value.Of([]any{"hello", "hello", "hello"})
	assert.Greater(t, EstimateBytes(nested), EstimateBytes(flat))
}

func TestNewChoosesMemoryUnderThreshold(t *testing.T) {
	items := sampleItems()
	s, err := New(items, 10, config.StoreConfig{SpillThresholdBytes: 1 << 20})
	require.NoError(t, err)
	defer s.Close()
	_, isMemory := s.(*memoryStore)
	assert.True(t, isMemory)
}

func TestNewSpillsToDiskOverThreshold(t *testing.T) {
	items := sampleItems()
	s, err := New(items, 1<<30, config.StoreConfig{SpillThresholdBytes: 1 << 10})
	require.NoError(t, err)
	defer s.Close()
	_, isDisk := s.(*diskStore)
	assert.True(t, isDisk)
}

func TestNewForcesBackend(t *testing.T) {
	items := sampleItems()
	s, err := New(items, 1, config.StoreConfig{Backend: config.BackendJSONL})
	require.NoError(t, err)
	defer s.Close()
	_, isDisk := s.(*diskStore)
	assert.True(t, isDisk)
}

func TestNewSelectsSQLiteBackend(t *testing.T) {
	items := sampleItems()
	s, err := New(items, 1, config.StoreConfig{Backend: config.BackendSQLite})
	require.NoError(t, err)
	defer s.Close()
	sqs, isSQLite := s.(*sqliteStore)
	require.True(t, isSQLite)
	assertStoreInvariants(t, items, sqs)
}
