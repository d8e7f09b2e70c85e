package catalog

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/randalmurphal/nestplate/pkg/nestplate/observability"
)

// DefaultDebounce is how long a Watcher waits after the last change
// before reloading.
const DefaultDebounce = 200 * time.Millisecond

// Watcher reloads a directory of locale files into a Store whenever one
// of them changes. Formats removed from a file stay in the store until
// deleted explicitly.
type Watcher struct {
	store    Store
	dir      string
	debounce time.Duration
	logger   *slog.Logger
	onReload func(formats int, err error)

	fsw  *fsnotify.Watcher
	stop chan struct{}
	done chan struct{}
	once sync.Once
}

// WatchOption configures a Watcher.
type WatchOption func(*Watcher)

// WithDebounce sets the quiet period before a reload. Default: DefaultDebounce.
func WithDebounce(d time.Duration) WatchOption {
	return func(w *Watcher) {
		w.debounce = d
	}
}

// WithWatchLogger logs reloads and watcher errors.
func WithWatchLogger(logger *slog.Logger) WatchOption {
	return func(w *Watcher) {
		w.logger = logger
	}
}

// WithOnReload registers fn to run after every reload attempt,
// including the initial load.
func WithOnReload(fn func(formats int, err error)) WatchOption {
	return func(w *Watcher) {
		w.onReload = fn
	}
}

// Watch loads every locale file in dir into store and keeps reloading
// them on change until Close is called. The initial load must succeed.
//
// Example:
//
//	w, err := catalog.Watch(store, "./locales")
//	if err != nil {
//	    return err
//	}
//	defer w.Close()
func Watch(store Store, dir string, opts ...WatchOption) (*Watcher, error) {
	w := &Watcher{
		store:    store,
		dir:      dir,
		debounce: DefaultDebounce,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}

	if err := w.reload(); err != nil {
		return nil, err
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := fsw.Add(dir); err != nil {
		_ = fsw.Close()
		return nil, fmt.Errorf("watch %s: %w", dir, err)
	}
	w.fsw = fsw

	go w.loop()
	return w, nil
}

// Dir returns the watched directory.
func (w *Watcher) Dir() string {
	return w.dir
}

// Close stops watching. It is safe to call more than once.
func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.stop)
		err = w.fsw.Close()
		<-w.done
	})
	return err
}

func (w *Watcher) loop() {
	defer close(w.done)

	var (
		timer  *time.Timer
		timerC <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-w.stop:
			return
		case <-timerC:
			timerC = nil
			_ = w.reload()
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			observability.LogCatalogReload(w.logger, w.dir, 0, err)
		case evt, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if !isLocaleEvent(evt) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(w.debounce)
			}
			timerC = timer.C
		}
	}
}

func (w *Watcher) reload() error {
	n, err := LoadFS(w.store, os.DirFS(w.dir))
	observability.LogCatalogReload(w.logger, w.dir, n, err)
	if w.onReload != nil {
		w.onReload(n, err)
	}
	return err
}

// isLocaleEvent reports whether evt touches a visible .yaml or .yml file.
func isLocaleEvent(evt fsnotify.Event) bool {
	if evt.Name == "" {
		return false
	}
	if !evt.Op.Has(fsnotify.Create) && !evt.Op.Has(fsnotify.Write) && !evt.Op.Has(fsnotify.Rename) {
		return false
	}
	base := filepath.Base(evt.Name)
	if strings.HasPrefix(base, ".") {
		return false
	}
	switch strings.ToLower(filepath.Ext(base)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}
