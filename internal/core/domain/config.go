package domain

import "time"

// Config is the resolved runtime configuration.
type Config struct {
	// Path is the file the configuration was read from; empty when defaults are used.
	Path string

	CacheDir   string
	DefaultTTL time.Duration

	SnapshotPath string
	CheckTimeout time.Duration

	ProbeConcurrency int
	ProbeInterval    time.Duration

	Sources []Source
}

// DefaultConfig returns the configuration used when no config file exists.
func DefaultConfig() *Config {
	return &Config{
		CacheDir:         DefaultCachePath(),
		DefaultTTL:       DefaultTTL,
		SnapshotPath:     DefaultSnapshotPath(),
		CheckTimeout:     DefaultCheckTimeout,
		ProbeConcurrency: DefaultProbeConcurrency,
		ProbeInterval:    DefaultProbeInterval,
	}
}
