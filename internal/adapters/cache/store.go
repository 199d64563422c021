// Package cache implements the file-per-key response cache.
package cache

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/vigil/internal/core/domain"
	"go.trai.ch/vigil/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.ResponseCache = (*Store)(nil)

const (
	stripeCount = 64
	tempSuffix  = ".tmp"
)

// Store implements ports.ResponseCache with one JSON file per key.
// Readers never lock: every write lands through an atomic rename.
// Writers and lazy deletes of the same key share a striped mutex.
type Store struct {
	root       string
	defaultTTL time.Duration
	logger     ports.Logger
	metrics    ports.Metrics

	stripes [stripeCount]sync.Mutex
}

// NewStore creates a Store rooted at dir. A non-positive defaultTTL falls
// back to domain.DefaultTTL.
func NewStore(dir string, defaultTTL time.Duration, logger ports.Logger, metrics ports.Metrics) *Store {
	if defaultTTL <= 0 {
		defaultTTL = domain.DefaultTTL
	}
	s := &Store{
		root:       filepath.Clean(dir),
		defaultTTL: defaultTTL,
		logger:     logger,
		metrics:    metrics,
	}
	if err := os.MkdirAll(s.root, domain.DirPerm); err != nil {
		s.fail("create", zerr.With(zerr.Wrap(err, domain.ErrCacheCreateFailed.Error()), "dir", s.root))
	}
	return s
}

// Root returns the cache directory.
func (s *Store) Root() string {
	return s.root
}

// DefaultTTL returns the TTL applied when a caller does not choose one.
func (s *Store) DefaultTTL() time.Duration {
	return s.defaultTTL
}

// Get returns the value stored under key if it is present, intact and not
// expired. An expired entry is removed before returning.
func (s *Store) Get(key string) (json.RawMessage, bool) {
	now := time.Now()

	entry, ok, err := s.read(key)
	if err != nil {
		s.metrics.CacheLookup(ports.CacheCorrupt)
		s.logger.Error(err)
		return nil, false
	}
	if !ok {
		s.metrics.CacheLookup(ports.CacheMiss)
		return nil, false
	}

	if !entry.ValidAt(now) {
		s.metrics.CacheLookup(ports.CacheExpired)
		s.removeExpired(key, now)
		return nil, false
	}

	s.metrics.CacheLookup(ports.CacheHit)
	return entry.Value, true
}

// Set stores value under key for ttl, overwriting any previous entry.
// A non-positive ttl stores nothing and removes the existing entry.
func (s *Store) Set(key string, value any, ttl time.Duration) {
	mu := s.stripe(key)
	mu.Lock()
	defer mu.Unlock()

	if ttl <= 0 {
		s.remove(key)
		return
	}

	raw, err := json.Marshal(value)
	if err != nil {
		s.fail("marshal", zerr.With(zerr.Wrap(err, domain.ErrCacheMarshalFailed.Error()), "key", key))
		return
	}

	entry := domain.NewCacheEntry(raw, checksum(raw), time.Now(), ttl)
	data, err := json.Marshal(entry)
	if err != nil {
		s.fail("marshal", zerr.With(zerr.Wrap(err, domain.ErrCacheMarshalFailed.Error()), "key", key))
		return
	}

	if err := s.writeAtomic(key, data); err != nil {
		s.fail("write", err)
		return
	}
	s.metrics.CacheStored()
}

// Clear removes every entry and any temp file left behind by an interrupted write.
func (s *Store) Clear() {
	entries, err := os.ReadDir(s.root)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			s.fail("clear", zerr.With(zerr.Wrap(err, domain.ErrCacheReadFailed.Error()), "dir", s.root))
		}
		return
	}

	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || (!strings.HasSuffix(name, domain.EntryExt) && !strings.HasSuffix(name, tempSuffix)) {
			continue
		}
		path := filepath.Join(s.root, name)
		if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			s.fail("clear", zerr.With(zerr.Wrap(err, domain.ErrCacheRemoveFailed.Error()), "path", path))
		}
	}
}

// Sweep removes every entry whose expiry lies before now and returns the
// number removed. Corrupt entries are reported and left in place.
func (s *Store) Sweep() int {
	now := time.Now()
	removed := 0

	for _, key := range s.keys() {
		mu := s.stripe(key)
		mu.Lock()
		entry, ok, err := s.read(key)
		switch {
		case err != nil:
			s.logger.Error(err)
		case ok && entry.ExpiredAt(now):
			if s.remove(key) {
				removed++
			}
		}
		mu.Unlock()
	}

	s.metrics.CacheSwept(removed)
	return removed
}

// Stats summarizes the entries currently on disk.
func (s *Store) Stats() domain.CacheStats {
	now := time.Now()
	var stats domain.CacheStats

	for _, key := range s.keys() {
		entry, ok, err := s.read(key)
		switch {
		case err != nil:
			stats.Corrupt++
		case !ok:
			continue
		case entry.ExpiredAt(now):
			stats.Expired++
		}
		stats.Entries++

		if info, err := os.Stat(s.path(key)); err == nil {
			stats.Bytes += info.Size()
		}
	}

	return stats
}

// read loads the entry for key. A missing file is reported as ok == false
// with a nil error; anything unreadable or inconsistent is an error.
func (s *Store) read(key string) (domain.CacheEntry, bool, error) {
	path := s.path(key)

	//nolint:gosec // Path is constructed from the cache root and a hex key
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return domain.CacheEntry{}, false, nil
		}
		return domain.CacheEntry{}, false, zerr.With(zerr.Wrap(err, domain.ErrCacheReadFailed.Error()), "path", path)
	}

	var entry domain.CacheEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		return domain.CacheEntry{}, false, zerr.With(zerr.Wrap(err, domain.ErrCacheUnmarshalFailed.Error()), "path", path)
	}
	if !entry.WellFormed() {
		return domain.CacheEntry{}, false, zerr.With(domain.ErrCacheEntryInvalid, "path", path)
	}
	if checksum(entry.Value) != entry.Checksum {
		return domain.CacheEntry{}, false, zerr.With(domain.ErrCacheChecksumMismatch, "path", path)
	}

	return entry, true, nil
}

// removeExpired deletes key unless a concurrent writer replaced the expired
// entry with a fresh one since it was read.
func (s *Store) removeExpired(key string, now time.Time) {
	mu := s.stripe(key)
	mu.Lock()
	defer mu.Unlock()

	entry, ok, err := s.read(key)
	if err != nil || !ok || entry.ValidAt(now) {
		return
	}
	s.remove(key)
}

// remove deletes the entry file for key. It reports whether a file was removed.
func (s *Store) remove(key string) bool {
	path := s.path(key)
	if err := os.Remove(path); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			s.fail("remove", zerr.With(zerr.Wrap(err, domain.ErrCacheRemoveFailed.Error()), "path", path))
		}
		return false
	}
	return true
}

func (s *Store) writeAtomic(key string, data []byte) error {
	if err := os.MkdirAll(s.root, domain.DirPerm); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrCacheCreateFailed.Error()), "dir", s.root)
	}

	tmp, err := os.CreateTemp(s.root, key+".*"+tempSuffix)
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrCacheWriteFailed.Error()), "key", key)
	}
	tmpName := tmp.Name()

	_, err = tmp.Write(data)
	if closeErr := tmp.Close(); err == nil {
		err = closeErr
	}
	if err == nil {
		err = os.Chmod(tmpName, domain.FilePerm)
	}
	if err == nil {
		err = os.Rename(tmpName, s.path(key))
	}
	if err != nil {
		_ = os.Remove(tmpName)
		return zerr.With(zerr.Wrap(err, domain.ErrCacheWriteFailed.Error()), "key", key)
	}

	return nil
}

// keys lists the keys of every entry file under the root.
func (s *Store) keys() []string {
	entries, err := os.ReadDir(s.root)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			s.fail("list", zerr.With(zerr.Wrap(err, domain.ErrCacheReadFailed.Error()), "dir", s.root))
		}
		return nil
	}

	keys := make([]string, 0, len(entries))
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, domain.EntryExt) {
			continue
		}
		keys = append(keys, strings.TrimSuffix(name, domain.EntryExt))
	}
	return keys
}

func (s *Store) fail(op string, err error) {
	s.metrics.StorageError(op)
	s.logger.Error(err)
}

func (s *Store) path(key string) string {
	return filepath.Join(s.root, key+domain.EntryExt)
}

func (s *Store) stripe(key string) *sync.Mutex {
	return &s.stripes[xxhash.Sum64String(key)%stripeCount]
}

func checksum(data []byte) string {
	return fmt.Sprintf("%016x", xxhash.Sum64(data))
}
