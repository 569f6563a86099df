package registry

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"

	"github.com/whiskers-launcher/companion/logging"
	"github.com/whiskers-launcher/companion/schema"
)

// Watcher re-indexes the registry whenever the extensions root changes.
// Bursts of events are coalesced: indexing runs once the tree has been quiet
// for the debounce interval.
type Watcher struct {
	registry  *Registry
	watcher   *fsnotify.Watcher
	debounce  time.Duration
	onIndexed func([]schema.ExtensionManifest, error)
	logger    *logrus.Entry

	mu      sync.Mutex
	watched map[string]bool
	timer   *time.Timer
}

// NewWatcher creates a watcher over the registry root. onIndexed, if set, is
// called after every re-index.
func NewWatcher(r *Registry, debounceMs int, onIndexed func([]schema.ExtensionManifest, error)) (*Watcher, error) {
	if err := os.MkdirAll(r.root, 0755); err != nil {
		return nil, err
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	if debounceMs <= 0 {
		debounceMs = 100
	}

	w := &Watcher{
		registry:  r,
		watcher:   fsw,
		debounce:  time.Duration(debounceMs) * time.Millisecond,
		onIndexed: onIndexed,
		logger:    logging.NewLogger("registry-watcher"),
		watched:   make(map[string]bool),
	}

	if err := w.addTree(r.root); err != nil {
		fsw.Close()
		return nil, err
	}
	return w, nil
}

// addTree watches dir and every non-ignored directory below it.
// fsnotify is not recursive.
func (w *Watcher) addTree(dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == dir {
				return err
			}
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if path != w.registry.root && w.registry.ignored(path) {
			return filepath.SkipDir
		}

		w.mu.Lock()
		defer w.mu.Unlock()
		if w.watched[path] {
			return nil
		}
		if err := w.watcher.Add(path); err != nil {
			w.logger.WithError(err).Warnf("Failed to watch %s", path)
			return nil
		}
		w.watched[path] = true
		w.logger.Debugf("Watching directory: %s", path)
		return nil
	})
}

// Run blocks until ctx is cancelled, re-indexing after changes.
func (w *Watcher) Run(ctx context.Context) {
	defer w.watcher.Close()

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.logger.Debugf("fsnotify event: %s op=%v", event.Name, event.Op)
			w.handleEvent(ctx, event)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Errorf("Watcher error: %v", err)
		case <-ctx.Done():
			w.mu.Lock()
			if w.timer != nil {
				w.timer.Stop()
			}
			w.mu.Unlock()
			return
		}
	}
}

func (w *Watcher) handleEvent(ctx context.Context, event fsnotify.Event) {
	if event.Op&fsnotify.Create != 0 {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if err := w.addTree(event.Name); err != nil {
				w.logger.WithError(err).Warnf("Failed to watch new directory %s", event.Name)
			}
		}
	}
	if event.Op&(fsnotify.Remove|fsnotify.Rename) != 0 {
		w.mu.Lock()
		delete(w.watched, event.Name)
		w.mu.Unlock()
	}
	if w.registry.ignored(event.Name) {
		return
	}
	if event.Op == fsnotify.Chmod {
		return
	}
	w.schedule(ctx)
}

// schedule (re)arms the debounce timer.
func (w *Watcher) schedule(ctx context.Context) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, func() {
		if ctx.Err() != nil {
			return
		}
		w.reindex(ctx)
	})
}

func (w *Watcher) reindex(ctx context.Context) {
	manifests, err := w.registry.IndexExtensions(ctx)
	if err != nil {
		w.logger.WithError(err).Error("Re-indexing extensions failed")
	} else {
		w.logger.WithField("count", len(manifests)).Info("Extensions changed, re-indexed")
	}
	if w.onIndexed != nil {
		w.onIndexed(manifests, err)
	}
}
