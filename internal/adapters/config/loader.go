// Package config provides the configuration loader for vigil.
package config

import (
	"os"
	"path/filepath"
	"regexp"
	"time"

	"go.trai.ch/vigil/internal/core/domain"
	"go.trai.ch/vigil/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

var _ ports.ConfigLoader = (*Loader)(nil)

var validSourceNameRegex = regexp.MustCompile(`^[a-zA-Z0-9_.-]+$`)

// Loader implements ports.ConfigLoader using a YAML file.
type Loader struct {
	Logger ports.Logger
	// Getenv resolves VIGIL_CONFIG and api_key_env references. It defaults to os.Getenv.
	Getenv func(string) string
}

// NewLoader creates a new Loader with the given logger.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{Logger: logger, Getenv: os.Getenv}
}

// Load resolves the configuration for cwd. The file named by VIGIL_CONFIG
// wins; otherwise vigil.yaml is searched from cwd upwards. Without a file
// the defaults apply, rooted at cwd.
func (l *Loader) Load(cwd string) (*domain.Config, error) {
	path, found, err := l.Find(cwd)
	if err != nil {
		return nil, err
	}

	if !found {
		l.Logger.Debug("no " + domain.ConfigFileName + " found, using defaults")
		cfg := domain.DefaultConfig()
		cfg.CacheDir = filepath.Join(cwd, cfg.CacheDir)
		cfg.SnapshotPath = filepath.Join(cwd, cfg.SnapshotPath)
		return cfg, nil
	}

	var file File
	if err := readAndUnmarshalYAML(path, &file); err != nil {
		return nil, err
	}

	cfg, err := l.build(path, &file)
	if err != nil {
		return nil, zerr.With(err, "path", path)
	}
	l.Logger.Debug("loaded configuration from " + path)
	return cfg, nil
}

// Find locates the configuration file for cwd.
func (l *Loader) Find(cwd string) (string, bool, error) {
	if explicit := l.Getenv(domain.ConfigEnvVar); explicit != "" {
		if !filepath.IsAbs(explicit) {
			explicit = filepath.Join(cwd, explicit)
		}
		if _, err := os.Stat(explicit); err != nil {
			return "", false, zerr.With(zerr.Wrap(err, domain.ErrConfigReadFailed.Error()), "path", explicit)
		}
		return explicit, true, nil
	}

	currentDir := cwd
	for {
		candidate := filepath.Join(currentDir, domain.ConfigFileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			return "", false, nil
		}
		currentDir = parentDir
	}
}

func (l *Loader) build(path string, file *File) (*domain.Config, error) {
	root := filepath.Dir(path)
	cfg := domain.DefaultConfig()

	cfg.Path = path
	cfg.CacheDir = resolvePath(root, file.Cache.Dir, cfg.CacheDir)
	cfg.SnapshotPath = resolvePath(root, file.Health.Snapshot, cfg.SnapshotPath)

	durations := []struct {
		name  string
		value time.Duration
		dst   *time.Duration
	}{
		{"cache.default_ttl", file.Cache.DefaultTTL, &cfg.DefaultTTL},
		{"health.check_timeout", file.Health.CheckTimeout, &cfg.CheckTimeout},
		{"probe.interval", file.Probe.Interval, &cfg.ProbeInterval},
	}
	for _, d := range durations {
		if d.value < 0 {
			return nil, zerr.With(zerr.With(domain.ErrNegativeDuration, "field", d.name), "value", d.value.String())
		}
		if d.value > 0 {
			*d.dst = d.value
		}
	}

	if file.Probe.Concurrency > 0 {
		cfg.ProbeConcurrency = file.Probe.Concurrency
	}

	seen := make(map[string]bool, len(file.Sources))
	for _, dto := range file.Sources {
		if !validSourceNameRegex.MatchString(dto.Name) {
			return nil, zerr.With(domain.ErrInvalidSourceName, "source", dto.Name)
		}
		if seen[dto.Name] {
			return nil, zerr.With(domain.ErrDuplicateSourceName, "source", dto.Name)
		}
		seen[dto.Name] = true

		configured := dto.APIKeyConfigured
		if !configured && dto.APIKeyEnv != "" {
			configured = l.Getenv(dto.APIKeyEnv) != ""
		}

		cfg.Sources = append(cfg.Sources, domain.Source{
			Name:             dto.Name,
			RequiresAPIKey:   dto.RequiresAPIKey,
			APIKeyConfigured: configured,
			CheckURL:         dto.CheckURL,
		})
	}

	return cfg, nil
}

func readAndUnmarshalYAML(path string, dst any) error {
	//nolint:gosec // Path is discovered from the working directory or VIGIL_CONFIG
	data, err := os.ReadFile(path)
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrConfigReadFailed.Error()), "path", path)
	}

	if err := yaml.Unmarshal(data, dst); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrConfigParseFailed.Error()), "path", path)
	}

	return nil
}

// resolvePath anchors a relative configured path at root. An empty value
// anchors fallback instead.
func resolvePath(root, value, fallback string) string {
	if value == "" {
		value = fallback
	}
	if filepath.IsAbs(value) {
		return filepath.Clean(value)
	}
	return filepath.Join(root, value)
}
