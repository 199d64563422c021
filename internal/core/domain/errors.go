package domain

import "go.trai.ch/zerr"

var (
	// ErrCacheCreateFailed is returned when the cache directory cannot be created.
	ErrCacheCreateFailed = zerr.New("failed to create cache directory")

	// ErrCacheReadFailed is returned when a cache entry cannot be read.
	ErrCacheReadFailed = zerr.New("failed to read cache entry")

	// ErrCacheUnmarshalFailed is returned when a cache entry cannot be decoded.
	ErrCacheUnmarshalFailed = zerr.New("failed to unmarshal cache entry")

	// ErrCacheMarshalFailed is returned when a value cannot be encoded for caching.
	ErrCacheMarshalFailed = zerr.New("failed to marshal cache entry")

	// ErrCacheWriteFailed is returned when a cache entry cannot be written.
	ErrCacheWriteFailed = zerr.New("failed to write cache entry")

	// ErrCacheRemoveFailed is returned when a cache entry cannot be deleted.
	ErrCacheRemoveFailed = zerr.New("failed to remove cache entry")

	// ErrCacheChecksumMismatch is returned when a cache entry's value does not match its checksum.
	ErrCacheChecksumMismatch = zerr.New("cache entry checksum mismatch")

	// ErrCacheEntryInvalid is returned when a cache entry violates expires_at > cached_at.
	ErrCacheEntryInvalid = zerr.New("cache entry has invalid timestamps")

	// ErrFingerprintFailed is returned when call arguments cannot be canonicalized.
	ErrFingerprintFailed = zerr.New("failed to fingerprint call")

	// ErrSnapshotReadFailed is returned when the health snapshot cannot be read.
	ErrSnapshotReadFailed = zerr.New("failed to read health snapshot")

	// ErrSnapshotUnmarshalFailed is returned when the health snapshot cannot be decoded.
	ErrSnapshotUnmarshalFailed = zerr.New("failed to unmarshal health snapshot")

	// ErrSnapshotMarshalFailed is returned when the health snapshot cannot be encoded.
	ErrSnapshotMarshalFailed = zerr.New("failed to marshal health snapshot")

	// ErrSnapshotWriteFailed is returned when the health snapshot cannot be written.
	ErrSnapshotWriteFailed = zerr.New("failed to write health snapshot")

	// ErrCheckTimeout is returned when a health check does not finish within its timeout.
	ErrCheckTimeout = zerr.New("health check timed out")

	// ErrCheckPanicked is returned when a health check panics.
	ErrCheckPanicked = zerr.New("health check panicked")

	// ErrCheckStatus is returned when a probed endpoint answers with a non-2xx status.
	ErrCheckStatus = zerr.New("unexpected status from health endpoint")

	// ErrCheckRequestFailed is returned when a probe request cannot be performed.
	ErrCheckRequestFailed = zerr.New("health check request failed")

	// ErrSourceUnconfigured is returned when a call is skipped because its source lacks an API key.
	ErrSourceUnconfigured = zerr.New("source requires an API key that is not configured")

	// ErrSourceNotFound is returned when a requested source has never been registered.
	ErrSourceNotFound = zerr.New("source not found")

	// ErrAllSourcesFailed is returned when every source of a multi-source fetch failed.
	ErrAllSourcesFailed = zerr.New("all sources failed")

	// ErrConfigReadFailed is returned when the config file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when the config file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse config file")

	// ErrInvalidSourceName is returned when a source name contains invalid characters.
	ErrInvalidSourceName = zerr.New("source name can only contain alphanumeric characters, dots, hyphens and underscores")

	// ErrDuplicateSourceName is returned when two configured sources share a name.
	ErrDuplicateSourceName = zerr.New("duplicate source name")

	// ErrNegativeDuration is returned when a configured duration is negative.
	ErrNegativeDuration = zerr.New("duration must not be negative")

	// ErrWatcherFailed is returned when the config watcher cannot be started.
	ErrWatcherFailed = zerr.New("failed to watch config file")

	// ErrFetchFailed is returned when a fetch through the guard fails.
	ErrFetchFailed = zerr.New("fetch failed")
)
