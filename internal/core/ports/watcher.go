package ports

import (
	"context"
	"iter"
)

// WatchEvent is one file system change on a watched path.
type WatchEvent struct {
	Path string
}

// Watcher observes the project's manifest and config files for changes.
//
//go:generate go run go.uber.org/mock/mockgen -source=watcher.go -destination=mocks/mock_watcher.go -package=mocks
type Watcher interface {
	// Start begins watching the given files. Watching stops when ctx is
	// cancelled or Stop is called.
	Start(ctx context.Context, paths []string) error

	// Events returns an iterator over change events. The iterator ends
	// when the watcher stops.
	Events() iter.Seq[WatchEvent]

	// Stop stops the watcher and releases its resources.
	Stop() error
}
