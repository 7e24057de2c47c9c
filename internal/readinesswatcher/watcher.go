// Package readinesswatcher watches a TOML drain file and toggles a
// mooring instance's readiness accordingly: an operator (or a rollout
// controller) flips "drain = true" in the file to pull a pod out of
// rotation ahead of a disruptive operation, without restarting it.
package readinesswatcher

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	toml "github.com/pelletier/go-toml/v2"

	"github.com/bft-labs/mooring/pkg/log"
)

// Togglable is the narrow surface of mooring.Mooring the watcher drives.
type Togglable interface {
	SignalReady()
	SignalNotReady()
}

// drainFile is the on-disk shape the watcher parses.
type drainFile struct {
	Drain bool `toml:"drain"`
}

// Watcher watches a single file for changes and applies its "drain" flag
// to a Togglable target, debouncing bursts of writes from editors that
// save in multiple steps.
type Watcher struct {
	path          string
	target        Togglable
	logger        log.Logger
	debounceDelay time.Duration

	mu       sync.Mutex
	debounce *time.Timer
	cancel   context.CancelFunc
	wg       sync.WaitGroup
}

// New builds a Watcher for path. It does not start watching until Start
// is called.
func New(path string, target Togglable, logger log.Logger) *Watcher {
	return &Watcher{
		path:          path,
		target:        target,
		logger:        logger,
		debounceDelay: 100 * time.Millisecond,
	}
}

// Start applies the file's initial state and begins watching for
// changes. It returns an error if the watcher could not be created or
// the directory containing path could not be watched; a missing file is
// not an error, since the directory watch will pick it up once created.
func (w *Watcher) Start(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}

	dir := filepath.Dir(w.path)
	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return fmt.Errorf("watch %s: %w", dir, err)
	}

	w.applyCurrentState()

	watchCtx, cancel := context.WithCancel(ctx)
	w.cancel = cancel

	w.wg.Add(1)
	go w.loop(watchCtx, watcher)

	return nil
}

// Stop stops watching and waits for the watch loop to exit.
func (w *Watcher) Stop() {
	if w.cancel != nil {
		w.cancel()
	}
	w.wg.Wait()
}

func (w *Watcher) loop(ctx context.Context, watcher *fsnotify.Watcher) {
	defer w.wg.Done()
	defer watcher.Close()

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if filepath.Base(event.Name) != filepath.Base(w.path) {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			w.debounceApply()

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			w.logger.Error("readiness watcher error", log.Err(err))
		}
	}
}

func (w *Watcher) debounceApply() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.debounce != nil {
		w.debounce.Stop()
	}
	w.debounce = time.AfterFunc(w.debounceDelay, w.applyCurrentState)
}

func (w *Watcher) applyCurrentState() {
	df, err := w.read()
	if err != nil {
		if !os.IsNotExist(err) {
			w.logger.Error("readiness watcher: read drain file failed", log.Err(err))
		}
		return
	}

	if df.Drain {
		w.logger.Info("readiness watcher: draining")
		w.target.SignalNotReady()
	} else {
		w.logger.Info("readiness watcher: undraining")
		w.target.SignalReady()
	}
}

func (w *Watcher) read() (drainFile, error) {
	var df drainFile
	b, err := os.ReadFile(w.path)
	if err != nil {
		return df, err
	}
	if err := toml.Unmarshal(b, &df); err != nil {
		return df, err
	}
	return df, nil
}
