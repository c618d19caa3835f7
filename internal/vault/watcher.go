package vault

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Op is the kind of change reported for a note.
type Op int

const (
	// Modified covers creation and content changes.
	Modified Op = iota + 1
	// Deleted covers removal and renaming away.
	Deleted
)

func (o Op) String() string {
	switch o {
	case Modified:
		return "modified"
	case Deleted:
		return "deleted"
	default:
		return "unknown"
	}
}

// Event reports a change to one markdown note.
type Event struct {
	Op      Op
	RelPath string
}

// Watcher reports changes to markdown notes anywhere below the vault root.
type Watcher struct {
	manager *Manager
	watcher *fsnotify.Watcher
	logger  *slog.Logger
}

// NewWatcher starts watching the vault root and all non-hidden folders
// below it.
func NewWatcher(m *Manager) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}

	w := &Watcher{
		manager: m,
		watcher: fw,
		logger:  slog.Default().With("component", "watcher"),
	}
	if err := w.addTree(m.Root()); err != nil {
		_ = fw.Close()
		return nil, err
	}
	return w, nil
}

// addTree adds dir and every non-hidden folder below it to the watch list.
func (w *Watcher) addTree(dir string) error {
	return filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() {
			return nil
		}
		if path != dir && skipDir(info.Name()) {
			return filepath.SkipDir
		}
		if err := w.watcher.Add(path); err != nil {
			return fmt.Errorf("failed to watch %s: %w", path, err)
		}
		return nil
	})
}

// Run delivers events to handle until ctx is done or the watcher is closed.
// handle runs on the Run goroutine.
func (w *Watcher) Run(ctx context.Context, handle func(Event)) {
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if ev, ok := w.translate(event); ok {
				handle(ev)
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("watcher error", "error", err)
		}
	}
}

// translate maps a raw notification to a note event. New folders are added
// to the watch list on the way.
func (w *Watcher) translate(event fsnotify.Event) (Event, bool) {
	if event.Has(fsnotify.Create) {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if !skipDir(info.Name()) {
				if err := w.addTree(event.Name); err != nil {
					w.logger.Warn("cannot watch new folder", "path", event.Name, "error", err)
				}
			}
			return Event{}, false
		}
	}

	if !IsMarkdown(event.Name) || skipDir(filepath.Base(event.Name)) {
		return Event{}, false
	}
	relPath, err := w.manager.RelPath(event.Name)
	if err != nil {
		return Event{}, false
	}

	switch {
	case event.Has(fsnotify.Remove), event.Has(fsnotify.Rename):
		return Event{Op: Deleted, RelPath: relPath}, true
	case event.Has(fsnotify.Create), event.Has(fsnotify.Write):
		return Event{Op: Modified, RelPath: relPath}, true
	}
	return Event{}, false
}

// Close stops the watcher and ends Run.
func (w *Watcher) Close() error {
	return w.watcher.Close()
}
