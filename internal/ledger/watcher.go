package ledger

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Watcher observes the ledger directory and forwards external file
// changes into the registry, so ledgers written by other processes
// trigger the same notifications as local records.
type Watcher struct {
	watcher  *fsnotify.Watcher
	registry *Registry
	logger   *zap.Logger
}

// NewWatcher starts watching the given directory. Close the returned
// watcher (or cancel the context passed to Run) to release it.
func NewWatcher(dir string, registry *Registry, logger *zap.Logger) (*Watcher, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("ledger: create watcher: %w", err)
	}
	if err := fw.Add(dir); err != nil {
		fw.Close()
		return nil, fmt.Errorf("ledger: watch %q: %w", dir, err)
	}
	return &Watcher{watcher: fw, registry: registry, logger: logger}, nil
}

// Run forwards events until the context is cancelled or the underlying
// watcher closes.
func (w *Watcher) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			w.handle(event)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("ledger watch error", zap.Error(err))
		}
	}
}

// handle forwards writes and renames of ledger files. Temporary files
// from in-flight atomic writes are ignored; only the final rename onto
// cache_<stem>.json notifies.
func (w *Watcher) handle(event fsnotify.Event) {
	if !event.Op.Has(fsnotify.Write) && !event.Op.Has(fsnotify.Create) && !event.Op.Has(fsnotify.Rename) {
		return
	}

	name := filepath.Base(event.Name)
	if !strings.HasPrefix(name, "cache_") || !strings.HasSuffix(name, ".json") {
		return
	}

	source := strings.TrimSuffix(strings.TrimPrefix(name, "cache_"), ".json")
	w.logger.Debug("ledger changed on disk",
		zap.String("source", source), zap.String("op", event.Op.String()))
	w.registry.Notify(source)
}

// Close stops the watcher.
func (w *Watcher) Close() error {
	return w.watcher.Close()
}
