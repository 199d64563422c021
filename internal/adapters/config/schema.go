package config

import "time"

// File represents the structure of the vigil.yaml configuration file.
type File struct {
	Version string      `yaml:"version"`
	Cache   CacheDTO    `yaml:"cache"`
	Health  HealthDTO   `yaml:"health"`
	Probe   ProbeDTO    `yaml:"probe"`
	Sources []SourceDTO `yaml:"sources"`
}

// CacheDTO configures the response cache.
type CacheDTO struct {
	Dir        string        `yaml:"dir"`
	DefaultTTL time.Duration `yaml:"default_ttl"`
}

// HealthDTO configures the health tracker.
type HealthDTO struct {
	Snapshot     string        `yaml:"snapshot"`
	CheckTimeout time.Duration `yaml:"check_timeout"`
}

// ProbeDTO configures the prober.
type ProbeDTO struct {
	Concurrency int           `yaml:"concurrency"`
	Interval    time.Duration `yaml:"interval"`
}

// SourceDTO registers one data source.
type SourceDTO struct {
	Name             string `yaml:"name"`
	RequiresAPIKey   bool   `yaml:"requires_api_key"`
	APIKeyEnv        string `yaml:"api_key_env"`
	APIKeyConfigured bool   `yaml:"api_key_configured"`
	CheckURL         string `yaml:"check_url"`
}
