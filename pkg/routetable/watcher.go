package routetable

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

const defaultDebounce = 100 * time.Millisecond

// Watcher reloads a route table file into a Store whenever it changes.
// A file that fails to parse is logged and the previous snapshot stays live.
type Watcher struct {
	store     *Store
	watcher   *fsnotify.Watcher
	logger    *slog.Logger
	onReload  func(*Table)
	onError   func(error)
	stopCh    chan struct{}
	stoppedCh chan struct{}
	path      string
	debounce  time.Duration
	mu        sync.Mutex
	running   bool
}

// WatcherOption configures a Watcher.
type WatcherOption func(*Watcher)

// WithDebounce sets how long the watcher waits for writes to settle.
// Default: 100ms.
func WithDebounce(d time.Duration) WatcherOption {
	return func(w *Watcher) {
		if d > 0 {
			w.debounce = d
		}
	}
}

// WithWatcherLogger sets the logger used for reload results.
func WithWatcherLogger(l *slog.Logger) WatcherOption {
	return func(w *Watcher) {
		if l != nil {
			w.logger = l
		}
	}
}

// WithReloadCallback registers fn to run after every successful reload.
func WithReloadCallback(fn func(*Table)) WatcherOption {
	return func(w *Watcher) {
		w.onReload = fn
	}
}

// WithReloadErrorCallback registers fn to run when a changed file fails to load.
func WithReloadErrorCallback(fn func(error)) WatcherOption {
	return func(w *Watcher) {
		w.onError = fn
	}
}

// NewWatcher creates a watcher for the route table at path.
// The file is not read until Start.
func NewWatcher(path string, store *Store, opts ...WatcherOption) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		path:      abs,
		store:     store,
		watcher:   fsw,
		debounce:  defaultDebounce,
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
		stopCh:    make(chan struct{}),
		stoppedCh: make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

// Start loads the table once and begins watching for changes.
// The initial load must succeed; later failures only log.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.running {
		return nil
	}
	select {
	case <-w.stopCh:
		return ErrWatcherStopped
	default:
	}

	t, err := LoadFile(w.path)
	if err != nil {
		return err
	}
	w.store.Replace(t)

	// Watch the directory: editors and indexers often replace the file by rename.
	if err := w.watcher.Add(filepath.Dir(w.path)); err != nil {
		return err
	}

	w.running = true
	w.logger.InfoContext(ctx, "watching route table",
		slog.String("path", w.path),
		slog.Int("routes", t.Len()),
	)

	go w.loop(ctx)
	return nil
}

// Stop ends the watch loop and releases the underlying watcher.
func (w *Watcher) Stop() error {
	w.mu.Lock()
	running := w.running
	w.running = false
	w.mu.Unlock()

	if running {
		close(w.stopCh)
		<-w.stoppedCh
	}
	return w.watcher.Close()
}

func (w *Watcher) loop(ctx context.Context) {
	defer close(w.stoppedCh)

	var (
		timer    *time.Timer
		debounce <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.stopCh:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.NewTimer(w.debounce)
			debounce = timer.C
		case <-debounce:
			debounce = nil
			w.reload(ctx)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.WarnContext(ctx, "route table watcher error", slog.Any("error", err))
		}
	}
}

func (w *Watcher) reload(ctx context.Context) {
	data, err := os.ReadFile(w.path)
	if err == nil && len(bytes.TrimSpace(data)) == 0 {
		// Truncated by a writer that has not finished yet; the next event reloads.
		return
	}
	var t *Table
	if err == nil {
		t, err = Parse(data)
	}
	if err != nil {
		w.logger.ErrorContext(ctx, "route table reload failed, keeping previous snapshot",
			slog.String("path", w.path),
			slog.Any("error", err),
		)
		if w.onError != nil {
			w.onError(err)
		}
		return
	}

	w.store.Replace(t)
	w.logger.InfoContext(ctx, "route table reloaded",
		slog.String("path", w.path),
		slog.Int("routes", t.Len()),
	)
	if w.onReload != nil {
		w.onReload(t)
	}
}
