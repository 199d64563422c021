package ports

import "context"

// Watcher reports changes to a set of files.
//
//go:generate mockgen -source=watcher.go -destination=mocks/mock_watcher.go -package=mocks
type Watcher interface {
	// Watch calls onChange with the changed paths until ctx is done.
	Watch(ctx context.Context, paths []string, onChange func(paths []string)) error
}
