package adapter

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	m "github.com/mouse-blink/splint/internal/model"
)

// Watcher reports changes of watched files.
type Watcher interface {
	// Watch calls onChange for every write to one of files until ctx is done.
	Watch(ctx context.Context, files []m.Path, onChange func(m.Path)) error
}

// FSWatcher is an fsnotify-backed Watcher. Events for the same file arriving
// within the debounce window are coalesced.
type FSWatcher struct {
	debounce time.Duration
	logger   *slog.Logger
}

// NewFSWatcher constructs an FSWatcher.
func NewFSWatcher(debounce time.Duration, logger *slog.Logger) *FSWatcher {
	if logger == nil {
		logger = slog.Default()
	}

	return &FSWatcher{debounce: debounce, logger: logger}
}

// Watch implements Watcher. Directories are watched rather than files so that
// editors replacing files by rename keep being observed.
func (w *FSWatcher) Watch(ctx context.Context, files []m.Path, onChange func(m.Path)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to start watcher: %w", err)
	}

	defer func() {
		_ = watcher.Close()
	}()

	wanted := make(map[string]m.Path, len(files))
	dirs := make(map[string]struct{})

	for _, f := range files {
		abs, err := filepath.Abs(string(f))
		if err != nil {
			return err
		}

		wanted[abs] = f
		dirs[filepath.Dir(abs)] = struct{}{}
	}

	for dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			return fmt.Errorf("failed to watch %s: %w", dir, err)
		}
	}

	pending := make(map[string]time.Time)
	ticker := time.NewTicker(w.tick())

	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}

			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}

			if _, ok := wanted[event.Name]; ok {
				pending[event.Name] = time.Now()
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}

			w.logger.Warn("watcher error", "error", err)
		case now := <-ticker.C:
			for name, at := range pending {
				if now.Sub(at) < w.debounce {
					continue
				}

				delete(pending, name)
				onChange(wanted[name])
			}
		}
	}
}

func (w *FSWatcher) tick() time.Duration {
	if half := w.debounce / 2; half > 0 {
		return half
	}

	return 10 * time.Millisecond
}
