package watcher

import (
	"context"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.trai.ch/vigil/internal/core/domain"
	"go.trai.ch/vigil/internal/core/ports"
	"go.trai.ch/zerr"
)

// DefaultDebounceWindow is the default time window for debouncing file events.
const DefaultDebounceWindow = 100 * time.Millisecond

var _ ports.Watcher = (*Watcher)(nil)

// Watcher implements ports.Watcher using fsnotify.
//
// Parent directories are watched rather than the files themselves, because
// editors and atomic writers replace a file by renaming over it.
type Watcher struct {
	window time.Duration
	logger ports.Logger
}

// NewWatcher creates a watcher that batches events within window.
func NewWatcher(window time.Duration, logger ports.Logger) *Watcher {
	if window <= 0 {
		window = DefaultDebounceWindow
	}
	return &Watcher{window: window, logger: logger}
}

// Watch blocks until ctx is done, calling onChange with the changed paths.
func (w *Watcher) Watch(ctx context.Context, paths []string, onChange func(paths []string)) error {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return zerr.Wrap(err, domain.ErrWatcherFailed.Error())
	}
	defer func() { _ = fsWatcher.Close() }()

	targets := make(map[string]bool, len(paths))
	dirs := make(map[string]bool)
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			return zerr.With(zerr.Wrap(err, domain.ErrWatcherFailed.Error()), "path", p)
		}
		targets[abs] = true
		dirs[filepath.Dir(abs)] = true
	}

	for dir := range dirs {
		if err := fsWatcher.Add(dir); err != nil {
			return zerr.With(zerr.Wrap(err, domain.ErrWatcherFailed.Error()), "dir", dir)
		}
	}

	debouncer := NewDebouncer(w.window, onChange)
	defer debouncer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-fsWatcher.Events:
			if !ok {
				return nil
			}
			if !relevant(event) {
				continue
			}
			abs, err := filepath.Abs(event.Name)
			if err != nil || !targets[abs] {
				continue
			}
			w.logger.Debug("config change: " + event.String())
			debouncer.Add(abs)
		case err, ok := <-fsWatcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Error(zerr.Wrap(err, "file watcher error"))
		}
	}
}

func relevant(event fsnotify.Event) bool {
	return event.Has(fsnotify.Write) ||
		event.Has(fsnotify.Create) ||
		event.Has(fsnotify.Remove) ||
		event.Has(fsnotify.Rename)
}
