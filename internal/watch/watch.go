// Package watch reruns a conversion when its input file changes.
package watch

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"git.home.luguber.info/inful/mdhtml/internal/logfields"
	"git.home.luguber.info/inful/mdhtml/internal/retry"
)

// DefaultDebounce is the quiet period after the last event before onChange runs.
const DefaultDebounce = 200 * time.Millisecond

// reappear bounds the wait for a file that an editor is replacing by rename.
var reappear = retry.NewPolicy(retry.Exponential, 20*time.Millisecond, 200*time.Millisecond, 4)

// File watches path and calls onChange once per burst of writes, until ctx is
// canceled. The parent directory is watched so editors that replace the file
// by rename are still seen. Errors from onChange are logged, not returned.
func File(ctx context.Context, path string, debounce time.Duration, logger *slog.Logger, onChange func(context.Context) error) error {
	if logger == nil {
		logger = slog.Default()
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("watch: resolve %s: %w", path, err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("fsnotify: %w", err)
	}
	defer func() { _ = watcher.Close() }()
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("watch: add %s: %w", filepath.Dir(abs), err)
	}

	changed, trigger, stop := newDebouncer(debounce)
	defer stop()
	logger.Info("Watching for changes", logfields.Path(abs))

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !relevant(abs, ev) {
				continue
			}
			logger.Debug("File change detected", logfields.Path(ev.Name), logfields.Event(ev.Op.String()))
			trigger()
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watcher error", logfields.Error(err))
		case <-changed:
			if err := reappear.Do(ctx, func() error { _, err := os.Stat(abs); return err }); err != nil {
				logger.Warn("watched file unavailable", logfields.Path(abs), logfields.Error(err))
				continue
			}
			if err := onChange(ctx); err != nil {
				logger.Warn("conversion after change failed", logfields.Path(abs), logfields.Error(err))
			}
		}
	}
}

// relevant reports whether ev touches the watched file itself.
func relevant(abs string, ev fsnotify.Event) bool {
	if ev.Op == fsnotify.Chmod {
		return false
	}
	name, err := filepath.Abs(ev.Name)
	if err != nil {
		return false
	}
	if name != abs {
		return false
	}
	return !isTempName(filepath.Base(name))
}

func isTempName(base string) bool {
	return strings.HasSuffix(base, "~") ||
		strings.HasSuffix(base, ".swp") ||
		strings.HasSuffix(base, ".swx") ||
		strings.HasPrefix(base, ".#")
}

// newDebouncer returns a channel that receives one value per burst of trigger
// calls separated by less than d.
func newDebouncer(d time.Duration) (<-chan struct{}, func(), func()) {
	var mu sync.Mutex
	var timer *time.Timer
	fired := make(chan struct{}, 1)

	trigger := func() {
		mu.Lock()
		defer mu.Unlock()
		if timer != nil {
			timer.Stop()
		}
		timer = time.AfterFunc(d, func() {
			select {
			case fired <- struct{}{}:
			default:
			}
		})
	}
	stop := func() {
		mu.Lock()
		defer mu.Unlock()
		if timer != nil {
			timer.Stop()
		}
	}
	return fired, trigger, stop
}
