package domain

import (
	"path/filepath"
	"time"
)

const (
	// VigilDirName is the name of the internal state directory.
	VigilDirName = ".vigil"

	// CacheDirName is the name of the response cache directory.
	CacheDirName = "cache"

	// SnapshotFileName is the name of the persisted health snapshot.
	SnapshotFileName = "health_metrics.json"

	// ConfigFileName is the name of the configuration file.
	ConfigFileName = "vigil.yaml"

	// ConfigEnvVar names the environment variable that overrides config discovery.
	ConfigEnvVar = "VIGIL_CONFIG"

	// EntryExt is the file extension of cache entries.
	EntryExt = ".json"

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644
)

const (
	// DefaultTTL is the cache TTL used when none is configured.
	DefaultTTL = time.Hour

	// DefaultCheckTimeout bounds a health check when no timeout is given.
	DefaultCheckTimeout = 10 * time.Second

	// DefaultProbeConcurrency is the number of health checks run in parallel.
	DefaultProbeConcurrency = 4

	// DefaultProbeInterval is the pause between rounds in watch mode.
	DefaultProbeInterval = time.Minute

	// PersistEvery is the per-source request count between snapshot writes.
	PersistEvery = 10

	// MaxErrorLength caps the stored LastError message in bytes.
	MaxErrorLength = 500
)

// DefaultCachePath returns the default directory of the response cache.
// It joins .vigil and cache.
func DefaultCachePath() string {
	return filepath.Join(VigilDirName, CacheDirName)
}

// DefaultSnapshotPath returns the default path of the health snapshot.
// It joins .vigil and health_metrics.json.
func DefaultSnapshotPath() string {
	return filepath.Join(VigilDirName, SnapshotFileName)
}
