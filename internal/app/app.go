// Package app implements the application layer for vigil.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"slices"
	"time"

	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.trai.ch/vigil/internal/adapters/cache"
	"go.trai.ch/vigil/internal/adapters/health"
	"go.trai.ch/vigil/internal/adapters/report"
	"go.trai.ch/vigil/internal/adapters/telemetry"
	"go.trai.ch/vigil/internal/core/domain"
	"go.trai.ch/vigil/internal/core/ports"
	"go.trai.ch/vigil/internal/engine/guard"
	"go.trai.ch/vigil/internal/engine/prober"
	"go.trai.ch/zerr"
)

// HTTPClient checks and fetches source endpoints.
type HTTPClient interface {
	ports.Checker
	Fetch(ctx context.Context, url string) (string, error)
}

// LogControl adjusts the logger at runtime.
type LogControl interface {
	SetVerbose(enable bool)
	SetJSON(enable bool)
}

// App represents the main application logic.
type App struct {
	loader        ports.ConfigLoader
	logger        ports.Logger
	metrics       ports.Metrics
	fingerprinter ports.Fingerprinter
	tracer        ports.Tracer
	watcher       ports.Watcher
	client        HTTPClient
	openCache     cache.Opener
	openTracker   health.Opener

	logControl LogControl
	provider   *sdktrace.TracerProvider
	stdout     io.Writer
	workDir    string
}

// New creates a new App instance.
func New(
	loader ports.ConfigLoader,
	log ports.Logger,
	metrics ports.Metrics,
	fingerprinter ports.Fingerprinter,
	tracer ports.Tracer,
	watcher ports.Watcher,
	client HTTPClient,
	openCache cache.Opener,
	openTracker health.Opener,
) *App {
	return &App{
		loader:        loader,
		logger:        log,
		metrics:       metrics,
		fingerprinter: fingerprinter,
		tracer:        tracer,
		watcher:       watcher,
		client:        client,
		openCache:     openCache,
		openTracker:   openTracker,
		stdout:        os.Stdout,
	}
}

// WithOutput sets the writer that receives reports and fetched bodies.
func (a *App) WithOutput(w io.Writer) *App {
	a.stdout = w
	return a
}

// WithWorkDir sets the directory config discovery starts from.
// It defaults to the process working directory.
func (a *App) WithWorkDir(dir string) *App {
	a.workDir = dir
	return a
}

// WithLogControl lets Configure adjust the logger.
func (a *App) WithLogControl(c LogControl) *App {
	a.logControl = c
	return a
}

// GlobalOptions are the settings shared by every command.
type GlobalOptions struct {
	Verbose bool
	JSON    bool
}

// Configure applies global options. In verbose mode finished spans are
// written to the debug log.
func (a *App) Configure(opts GlobalOptions) {
	if a.logControl != nil {
		a.logControl.SetVerbose(opts.Verbose)
		a.logControl.SetJSON(opts.JSON)
	}
	if opts.Verbose && a.provider == nil {
		a.provider = telemetry.NewProvider(a.logger)
		otel.SetTracerProvider(a.provider)
	}
}

// Shutdown flushes telemetry.
func (a *App) Shutdown(ctx context.Context) error {
	if a.provider == nil {
		return nil
	}
	return a.provider.Shutdown(ctx)
}

// StatusOptions configuration for the Status method.
type StatusOptions struct {
	Sources []string
	JSON    bool
}

// Status prints the health report of every known source, or of the named ones.
func (a *App) Status(_ context.Context, opts StatusOptions) error {
	cfg, err := a.loadConfig()
	if err != nil {
		return err
	}
	tracker := a.tracker(cfg)

	records := tracker.AllStatuses()
	if len(opts.Sources) > 0 {
		selected := make(map[string]domain.SourceHealth, len(opts.Sources))
		for _, name := range opts.Sources {
			h, ok := records[name]
			if !ok {
				return zerr.With(zerr.Wrap(domain.ErrSourceNotFound, "unknown source"), "source", name)
			}
			selected[name] = h
		}
		records = selected
	}

	r := report.New(a.stdout)
	if opts.JSON {
		return r.RenderJSON(records)
	}
	return r.Render(records)
}

// ProbeOptions configuration for the Probe method.
type ProbeOptions struct {
	Watch       bool
	Interval    time.Duration
	Concurrency int
	Timeout     time.Duration
}

// Probe checks every configured source that has a check URL and prints the
// resulting report. In watch mode it repeats until ctx is done.
func (a *App) Probe(ctx context.Context, opts ProbeOptions) (err error) {
	cfg, err := a.loadConfig()
	if err != nil {
		return err
	}
	tracker := a.tracker(cfg)
	defer func() {
		err = errors.Join(err, tracker.Close())
	}()

	p := prober.New(tracker, a.client, a.logger)
	popts := prober.Options{
		Concurrency: firstPositive(opts.Concurrency, cfg.ProbeConcurrency),
		Timeout:     firstPositive(opts.Timeout, cfg.CheckTimeout),
		Interval:    opts.Interval,
	}

	r := report.New(a.stdout)
	if opts.Watch {
		popts.OnRound = func(results map[string]domain.CheckResult) {
			a.logFailures(results)
			if err := r.Render(tracker.AllStatuses()); err != nil {
				a.logger.Error(err)
			}
		}
		return p.Watch(ctx, a.loader, a.watcher, a.cwd(), popts)
	}

	results := p.Run(ctx, cfg.Sources, popts)
	a.logFailures(results)
	return r.Render(tracker.AllStatuses())
}

// FetchOptions configuration for the Fetch method.
type FetchOptions struct {
	Source string
	URL    string
	TTL    time.Duration
}

// Fetch performs a GET of URL through the guard on behalf of Source and
// writes the body.
func (a *App) Fetch(ctx context.Context, opts FetchOptions) (err error) {
	cfg, err := a.loadConfig()
	if err != nil {
		return err
	}
	responses := a.openCache(cfg)
	tracker := a.tracker(cfg)
	defer func() {
		err = errors.Join(err, tracker.Close())
	}()

	g := guard.New(responses, tracker, a.fingerprinter, a.logger, a.tracer, a.metrics)

	var guardOpts []guard.Option
	if opts.TTL > 0 {
		guardOpts = append(guardOpts, guard.WithTTL(opts.TTL))
	}
	// The source is part of the operation so sources sharing a URL keep
	// separate entries and separate request history.
	get := guard.Wrap(g, opts.Source, opts.Source+".http.get", a.client.Fetch, guardOpts...)

	body, err := get(ctx, opts.URL)
	if err != nil {
		return zerr.With(err, "source", opts.Source)
	}
	_, err = io.WriteString(a.stdout, body)
	return err
}

// Sweep removes expired cache entries and returns how many were removed.
func (a *App) Sweep(_ context.Context) (int, error) {
	cfg, err := a.loadConfig()
	if err != nil {
		return 0, err
	}
	removed := a.openCache(cfg).Sweep()
	a.logger.Info(fmt.Sprintf("removed %d expired cache entries", removed))
	return removed, nil
}

// CleanOptions configuration for the Clean method.
type CleanOptions struct {
	Cache  bool
	Health bool
}

// Clean removes cached responses and the health snapshot based on the
// provided options.
func (a *App) Clean(_ context.Context, options CleanOptions) error {
	cfg, err := a.loadConfig()
	if err != nil {
		return err
	}

	var errs error
	if options.Cache {
		a.logger.Info("clearing response cache...")
		a.openCache(cfg).Clear()
		a.logger.Info("cleared response cache")
	}

	if options.Health {
		a.logger.Info("removing health snapshot...")
		if err := os.Remove(cfg.SnapshotPath); err != nil && !errors.Is(err, fs.ErrNotExist) {
			errs = errors.Join(errs, zerr.With(zerr.Wrap(err, "failed to remove health snapshot"), "path", cfg.SnapshotPath))
		} else {
			a.logger.Info("removed health snapshot")
		}
	}

	return errs
}

// Metrics writes the Prometheus exposition of the cache and every source.
func (a *App) Metrics(_ context.Context) error {
	cfg, err := a.loadConfig()
	if err != nil {
		return err
	}

	a.metrics.CacheStats(a.openCache(cfg).Stats())

	records := a.tracker(cfg).AllStatuses()
	names := make([]string, 0, len(records))
	for name := range records {
		names = append(names, name)
	}
	slices.Sort(names)
	for _, name := range names {
		a.metrics.SourceHealth(records[name])
	}

	return a.metrics.WriteText(a.stdout)
}

func (a *App) loadConfig() (*domain.Config, error) {
	cfg, err := a.loader.Load(a.cwd())
	if err != nil {
		return nil, zerr.Wrap(err, "failed to load configuration")
	}
	return cfg, nil
}

// tracker opens the tracker and applies the configured API-key flags of
// every source over whatever the snapshot remembered.
func (a *App) tracker(cfg *domain.Config) *health.Tracker {
	t := a.openTracker(cfg)
	for _, src := range cfg.Sources {
		t.Configure(src.Name, src.RequiresAPIKey, src.APIKeyConfigured)
	}
	return t
}

func (a *App) cwd() string {
	if a.workDir != "" {
		return a.workDir
	}
	wd, err := os.Getwd()
	if err != nil {
		return "."
	}
	return wd
}

func (a *App) logFailures(results map[string]domain.CheckResult) {
	names := make([]string, 0, len(results))
	for name, res := range results {
		if !res.Success {
			names = append(names, name)
		}
	}
	slices.Sort(names)
	for _, name := range names {
		a.logger.Warn(name + " check failed: " + results[name].Error)
	}
}

func firstPositive[T int | time.Duration](values ...T) T {
	for _, v := range values {
		if v > 0 {
			return v
		}
	}
	var zero T
	return zero
}
