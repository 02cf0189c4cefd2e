// Package watch re-runs a job whenever a file changes.
//
// Editors save files in bursts (truncate, write, rename), so events are
// debounced. Every run gets a generation number; when a newer run starts,
// the older one's context is cancelled and [Watcher.Commit] refuses its
// output, so the last save always wins.
package watch

import (
	"context"
	"io"
	"path/filepath"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is the quiet period after the last event before a run.
const DefaultDebounce = 200 * time.Millisecond

// Handler runs one job. gen identifies the run for [Watcher.Commit].
type Handler func(ctx context.Context, gen uint64)

// Watcher watches one file.
type Watcher struct {
	path     string
	debounce time.Duration
	logger   *log.Logger

	mu     sync.Mutex
	gen    uint64
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithDebounce sets the debounce duration.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) { w.debounce = d }
}

// WithLogger sets the logger. The default discards output.
func WithLogger(l *log.Logger) Option {
	return func(w *Watcher) { w.logger = l }
}

// New creates a watcher for path.
func New(path string, opts ...Option) *Watcher {
	w := &Watcher{
		path:     path,
		debounce: DefaultDebounce,
		logger:   log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Watch runs h once immediately and again after every debounced change. It
// blocks until ctx is cancelled and waits for the running handler to
// return.
func (w *Watcher) Watch(ctx context.Context, h Handler) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer fw.Close()

	// The directory is watched so that editors replacing the file by
	// rename keep triggering events.
	abs, err := filepath.Abs(w.path)
	if err != nil {
		return err
	}
	if err := fw.Add(filepath.Dir(abs)); err != nil {
		return err
	}
	w.logger.Info("watching", "path", w.path)

	defer w.wg.Wait()
	defer w.stop()

	w.start(ctx, h)

	var fire <-chan time.Time
	for {
		select {
		case ev, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != abs {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			w.logger.Debug("file event", "op", ev.Op.String())
			fire = time.After(w.debounce)

		case <-fire:
			fire = nil
			w.logger.Info("file changed", "path", w.path)
			w.start(ctx, h)

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watcher error", "error", err)

		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// start cancels the current run and launches a new generation.
func (w *Watcher) start(ctx context.Context, h Handler) {
	w.mu.Lock()
	if w.cancel != nil {
		w.cancel()
	}
	w.gen++
	gen := w.gen
	runCtx, cancel := context.WithCancel(ctx)
	w.cancel = cancel
	w.mu.Unlock()

	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		h(runCtx, gen)
	}()
}

func (w *Watcher) stop() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.cancel != nil {
		w.cancel()
	}
}

// Generation returns the number of the most recent run.
func (w *Watcher) Generation() uint64 {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.gen
}

// Commit calls fn only if gen is still the most recent run and reports
// whether it did. No new run can start while fn executes.
func (w *Watcher) Commit(gen uint64, fn func()) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	if gen != w.gen {
		w.logger.Debug("discarding superseded result", "generation", gen, "latest", w.gen)
		return false
	}
	fn()
	return true
}
