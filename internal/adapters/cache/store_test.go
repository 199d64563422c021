package cache_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"testing"
	"testing/synctest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/vigil/internal/adapters/cache"
	"go.trai.ch/vigil/internal/core/domain"
	"go.trai.ch/vigil/internal/core/ports"
	"go.trai.ch/vigil/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

const key = "3f2a9c0e7d1b4a6f8e5c2b1a0d9f8e7c6b5a4f3e2d1c0b9a8f7e6d5c4b3a2f10"

type quote struct {
	Symbol string  `json:"symbol"`
	Price  float64 `json:"price"`
}

// newStore returns a store whose logger and metrics accept any call.
func newStore(t *testing.T) (*cache.Store, string) {
	t.Helper()

	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Error(gomock.Any()).AnyTimes()
	m := mocks.NewMockMetrics(ctrl)
	m.EXPECT().CacheLookup(gomock.Any()).AnyTimes()
	m.EXPECT().CacheStored().AnyTimes()
	m.EXPECT().CacheSwept(gomock.Any()).AnyTimes()
	m.EXPECT().StorageError(gomock.Any()).AnyTimes()

	dir := filepath.Join(t.TempDir(), "cache")
	return cache.NewStore(dir, 0, log, m), dir
}

func decode[T any](t *testing.T, raw json.RawMessage) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(raw, &v))
	return v
}

func TestStore_SetGet(t *testing.T) {
	t.Parallel()

	store, dir := newStore(t)
	store.Set(key, quote{Symbol: "AAPL", Price: 187.5}, time.Minute)

	raw, ok := store.Get(key)
	require.True(t, ok)
	assert.Equal(t, quote{Symbol: "AAPL", Price: 187.5}, decode[quote](t, raw))

	_, err := os.Stat(filepath.Join(dir, key+".json"))
	require.NoError(t, err)
}

func TestStore_DefaultTTL(t *testing.T) {
	t.Parallel()

	store, _ := newStore(t)
	assert.Equal(t, domain.DefaultTTL, store.DefaultTTL())
}

func TestStore_MissingKey(t *testing.T) {
	t.Parallel()

	store, _ := newStore(t)
	_, ok := store.Get(key)
	assert.False(t, ok)
}

func TestStore_NonPositiveTTLStoresNothing(t *testing.T) {
	t.Parallel()

	store, _ := newStore(t)

	store.Set(key, "first", 0)
	_, ok := store.Get(key)
	assert.False(t, ok)

	store.Set(key, "second", time.Minute)
	_, ok = store.Get(key)
	require.True(t, ok)

	store.Set(key, "third", -time.Second)
	_, ok = store.Get(key)
	assert.False(t, ok, "a non-positive ttl removes the previous entry")
}

func TestStore_OverwriteReplacesValue(t *testing.T) {
	t.Parallel()

	store, _ := newStore(t)
	store.Set(key, "old", time.Minute)
	store.Set(key, "new", time.Minute)

	raw, ok := store.Get(key)
	require.True(t, ok)
	assert.Equal(t, "new", decode[string](t, raw))
}

func TestStore_EmptyValuesAreStorable(t *testing.T) {
	t.Parallel()

	store, _ := newStore(t)
	store.Set(key, "", time.Minute)

	raw, ok := store.Get(key)
	require.True(t, ok)
	assert.Equal(t, "", decode[string](t, raw))
}

func TestStore_Expiry(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		store, dir := newStore(t)
		path := filepath.Join(dir, key+".json")

		store.Set(key, 42, time.Second)

		time.Sleep(500 * time.Millisecond)
		raw, ok := store.Get(key)
		require.True(t, ok)
		assert.Equal(t, 42, decode[int](t, raw))

		time.Sleep(time.Second)
		_, ok = store.Get(key)
		assert.False(t, ok)

		_, err := os.Stat(path)
		assert.True(t, os.IsNotExist(err), "expired entry should be deleted on read")

		_, ok = store.Get(key)
		assert.False(t, ok, "second read of an expired key stays absent")
	})
}

func TestStore_Sweep(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		store, _ := newStore(t)

		for i := range 3 {
			store.Set("short"+strconv.Itoa(i), i, time.Second)
		}
		for i := range 2 {
			store.Set("long"+strconv.Itoa(i), i, time.Hour)
		}

		time.Sleep(2 * time.Second)

		assert.Equal(t, 3, store.Sweep())
		assert.Equal(t, 0, store.Sweep())

		raw, ok := store.Get("long1")
		require.True(t, ok)
		assert.Equal(t, 1, decode[int](t, raw))

		stats := store.Stats()
		assert.Equal(t, 2, stats.Entries)
		assert.Equal(t, 0, stats.Expired)
		assert.Positive(t, stats.Bytes)
	})
}

func TestStore_StatsCountsExpired(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		store, _ := newStore(t)
		store.Set("a", 1, time.Second)
		store.Set("b", 2, time.Hour)

		time.Sleep(2 * time.Second)

		stats := store.Stats()
		assert.Equal(t, 2, stats.Entries)
		assert.Equal(t, 1, stats.Expired)
	})
}

func TestStore_Clear(t *testing.T) {
	t.Parallel()

	store, dir := newStore(t)
	store.Set("a", 1, time.Hour)
	store.Set("b", 2, time.Hour)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "c.123.tmp"), []byte("partial"), domain.FilePerm))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "README"), []byte("keep"), domain.FilePerm))

	store.Clear()

	_, ok := store.Get("a")
	assert.False(t, ok)
	_, ok = store.Get("b")
	assert.False(t, ok)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "README", entries[0].Name())

	store.Clear()
}

func TestStore_ClearMissingDirectory(t *testing.T) {
	t.Parallel()

	store, dir := newStore(t)
	require.NoError(t, os.RemoveAll(dir))

	store.Clear()
	assert.Equal(t, 0, store.Sweep())
}

func TestStore_CorruptEntry(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)
	m := mocks.NewMockMetrics(ctrl)

	dir := t.TempDir()
	path := filepath.Join(dir, key+".json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), domain.FilePerm))

	store := cache.NewStore(dir, time.Hour, log, m)

	log.EXPECT().Error(gomock.Any()).Times(2)
	m.EXPECT().CacheLookup(ports.CacheCorrupt)
	m.EXPECT().CacheSwept(0)

	_, ok := store.Get(key)
	assert.False(t, ok)
	assert.Equal(t, 0, store.Sweep())

	_, err := os.Stat(path)
	require.NoError(t, err, "corrupt entries are left in place")

	assert.Equal(t, 1, store.Stats().Corrupt)
}

func TestStore_ChecksumMismatch(t *testing.T) {
	t.Parallel()

	store, dir := newStore(t)
	store.Set(key, "genuine", time.Hour)

	path := filepath.Join(dir, key+".json")
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, []byte(strings.Replace(string(data), "genuine", "tampered", 1)), domain.FilePerm))

	_, ok := store.Get(key)
	assert.False(t, ok)
}

func TestStore_InvalidTimestamps(t *testing.T) {
	t.Parallel()

	store, dir := newStore(t)
	store.Set(key, "value", time.Hour)

	path := filepath.Join(dir, key+".json")
	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var entry domain.CacheEntry
	require.NoError(t, json.Unmarshal(data, &entry))
	entry.ExpiresAt = entry.CachedAt
	data, err = json.Marshal(entry)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, data, domain.FilePerm))

	_, ok := store.Get(key)
	assert.False(t, ok)
}

func TestStore_EntryLayout(t *testing.T) {
	t.Parallel()

	store, dir := newStore(t)
	before := float64(time.Now().UnixNano()) / float64(time.Second)
	store.Set(key, map[string]int{"b": 2, "a": 1}, time.Minute)

	data, err := os.ReadFile(filepath.Join(dir, key+".json"))
	require.NoError(t, err)

	var entry domain.CacheEntry
	require.NoError(t, json.Unmarshal(data, &entry))
	assert.JSONEq(t, `{"a":1,"b":2}`, string(entry.Value))
	assert.GreaterOrEqual(t, entry.CachedAt, before)
	assert.InDelta(t, 60, entry.ExpiresAt-entry.CachedAt, 0.001)
	assert.Len(t, entry.Checksum, 16)
}

func TestStore_ConcurrentWriters(t *testing.T) {
	t.Parallel()

	store, dir := newStore(t)

	var wg sync.WaitGroup
	for i := range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			store.Set(key, i, time.Minute)
		}()
	}
	wg.Wait()

	raw, ok := store.Get(key)
	require.True(t, ok)
	got := decode[int](t, raw)
	assert.GreaterOrEqual(t, got, 0)
	assert.Less(t, got, 16)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temp files are left behind")
}

func TestStore_LazyDeleteKeepsFreshEntry(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		store, _ := newStore(t)

		store.Set(key, "stale", time.Second)
		time.Sleep(2 * time.Second)
		observed := time.Now()

		// A writer refreshes the key between the expired read and the delete.
		store.Set(key, "fresh", time.Minute)
		store.RemoveExpired(key, observed)

		raw, ok := store.Get(key)
		require.True(t, ok)
		assert.Equal(t, "fresh", decode[string](t, raw))
	})
}

func TestStore_MetricsOutcomes(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		ctrl := gomock.NewController(t)
		log := mocks.NewMockLogger(ctrl)
		m := mocks.NewMockMetrics(ctrl)

		store := cache.NewStore(t.TempDir(), time.Hour, log, m)

		gomock.InOrder(
			m.EXPECT().CacheLookup(ports.CacheMiss),
			m.EXPECT().CacheStored(),
			m.EXPECT().CacheLookup(ports.CacheHit),
			m.EXPECT().CacheLookup(ports.CacheExpired),
		)

		store.Get(key)
		store.Set(key, true, time.Second)
		store.Get(key)
		time.Sleep(2 * time.Second)
		store.Get(key)
	})
}
