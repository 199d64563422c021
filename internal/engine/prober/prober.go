// Package prober runs health checks for configured sources on a bounded
// worker pool.
package prober

import (
	"context"
	"sync"
	"time"

	"go.trai.ch/vigil/internal/core/domain"
	"go.trai.ch/vigil/internal/core/ports"
	"golang.org/x/sync/errgroup"
)

// Options controls a probe round and watch mode.
type Options struct {
	// Concurrency bounds the checks in flight; <= 0 uses the default.
	Concurrency int
	// Timeout bounds each check; <= 0 uses the tracker default.
	Timeout time.Duration
	// Interval is the pause between rounds in watch mode; <= 0 uses the default.
	Interval time.Duration
	// OnRound receives the results of every round in watch mode.
	OnRound func(results map[string]domain.CheckResult)
}

// Prober runs health checks through a tracker.
type Prober struct {
	tracker ports.HealthTracker
	checker ports.Checker
	logger  ports.Logger
}

// New creates a Prober.
func New(tracker ports.HealthTracker, checker ports.Checker, logger ports.Logger) *Prober {
	return &Prober{tracker: tracker, checker: checker, logger: logger}
}

// Run applies the current API-key flags of every source and checks those
// with a CheckURL. Sources that need a missing API key are never checked.
func (p *Prober) Run(ctx context.Context, sources []domain.Source, opts Options) map[string]domain.CheckResult {
	concurrency := opts.Concurrency
	if concurrency <= 0 {
		concurrency = domain.DefaultProbeConcurrency
	}

	var (
		g       errgroup.Group
		mu      sync.Mutex
		results = make(map[string]domain.CheckResult)
	)
	g.SetLimit(concurrency)

	for _, src := range sources {
		p.tracker.Configure(src.Name, src.RequiresAPIKey, src.APIKeyConfigured)

		switch {
		case src.RequiresAPIKey && !src.APIKeyConfigured:
			p.logger.Debug("not probing " + src.Name + ": API key missing")
			continue
		case src.CheckURL == "":
			continue
		}

		g.Go(func() error {
			if ctx.Err() != nil {
				return nil
			}
			res := p.tracker.RunCheck(ctx, src.Name, p.checker.Check(src.CheckURL), opts.Timeout)

			mu.Lock()
			results[src.Name] = res
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	return results
}

// Watch runs a round every interval until ctx is done. When the config file
// changes the sources are reloaded; a reload that fails keeps the previous
// sources.
func (p *Prober) Watch(ctx context.Context, loader ports.ConfigLoader, watcher ports.Watcher, cwd string, opts Options) error {
	cfg, err := loader.Load(cwd)
	if err != nil {
		return err
	}

	interval := opts.Interval
	if interval <= 0 {
		interval = cfg.ProbeInterval
	}
	if interval <= 0 {
		interval = domain.DefaultProbeInterval
	}

	var mu sync.Mutex
	sources := cfg.Sources
	current := func() []domain.Source {
		mu.Lock()
		defer mu.Unlock()
		return sources
	}

	ctx, cancel := context.WithCancel(ctx)
	var wg sync.WaitGroup
	defer func() {
		cancel()
		wg.Wait()
	}()

	if cfg.Path != "" && watcher != nil {
		wg.Go(func() {
			err := watcher.Watch(ctx, []string{cfg.Path}, func([]string) {
				next, err := loader.Load(cwd)
				if err != nil {
					p.logger.Error(err)
					return
				}
				mu.Lock()
				sources = next.Sources
				mu.Unlock()
				for _, src := range next.Sources {
					p.tracker.Configure(src.Name, src.RequiresAPIKey, src.APIKeyConfigured)
				}
				p.logger.Info("reloaded sources from " + cfg.Path)
			})
			if err != nil {
				p.logger.Error(err)
			}
		})
	}

	for {
		results := p.Run(ctx, current(), opts)
		if ctx.Err() != nil {
			return nil
		}
		if opts.OnRound != nil {
			opts.OnRound(results)
		}

		select {
		case <-ctx.Done():
			return nil
		case <-time.After(interval):
		}
	}
}
