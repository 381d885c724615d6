// Package watcher implements file system watching using fsnotify.
package watcher

import (
	"context"
	"iter"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/capstan-tools/capstan/internal/core/ports"
)

const eventChannelBuffer = 100

// Watcher watches a fixed set of files (manifest and cargo config) for
// changes. fsnotify watches their parent directories; events are filtered
// back down to the requested paths so editors that replace files via rename
// are still observed.
type Watcher struct {
	fsWatcher *fsnotify.Watcher
	watched   map[string]bool
	events    chan ports.WatchEvent
}

// NewWatcher creates a new file watcher.
func NewWatcher() (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	return &Watcher{
		fsWatcher: fsWatcher,
		watched:   make(map[string]bool),
		events:    make(chan ports.WatchEvent, eventChannelBuffer),
	}, nil
}

// Start begins watching the given files.
func (w *Watcher) Start(ctx context.Context, paths []string) error {
	dirs := make(map[string]bool)
	for _, p := range paths {
		clean := filepath.Clean(p)
		w.watched[clean] = true
		dirs[filepath.Dir(clean)] = true
	}
	for dir := range dirs {
		// A missing directory (no .cargo/ yet) is fine; it just has
		// nothing to report.
		_ = w.fsWatcher.Add(dir)
	}

	go w.processEvents(ctx)
	return nil
}

// Stop stops the watcher and releases all resources.
func (w *Watcher) Stop() error {
	return w.fsWatcher.Close()
}

// Events returns an iterator of file change events. It ends when the watcher
// stops or the start context is cancelled.
func (w *Watcher) Events() iter.Seq[ports.WatchEvent] {
	return func(yield func(ports.WatchEvent) bool) {
		for event := range w.events {
			if !yield(event) {
				return
			}
		}
	}
}

func (w *Watcher) processEvents(ctx context.Context) {
	defer close(w.events)
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			if !w.watched[filepath.Clean(event.Name)] {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
				continue
			}
			select {
			case w.events <- ports.WatchEvent{Path: event.Name}:
			default:
				// Drop rather than block; a refresh is already due.
			}
		case _, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
		}
	}
}

var _ ports.Watcher = (*Watcher)(nil)
